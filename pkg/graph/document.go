package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// =============================================================================
// Document - Rendered Network Serialization
// =============================================================================

// Document is the JSON export of a rendered network.
type Document struct {
	Hash  string `json:"hash"`
	Seed  uint64 `json:"seed"`
	Title string `json:"title,omitempty"`
	Nodes []Node `json:"nodes"`
	Links []Link `json:"edges"`
}

// Node is a party as drawn.
type Node struct {
	Code       int     `json:"code"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Candidates int     `json:"candidates"`
	Incumbents int     `json:"incumbents"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// Link is an edge with its share of the source party's candidates.
type Link struct {
	Edge
	Ratio float64 `json:"ratio"`
}

// MarshalDocument converts a document to indented JSON bytes.
func MarshalDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument writes a document as indented JSON to w.
func WriteDocument(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDocument decodes a JSON document from r.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}
