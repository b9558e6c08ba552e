package io

import (
	"bytes"

	"github.com/spf13/afero"

	"github.com/matzehuels/partynet/pkg/errors"
	"github.com/matzehuels/partynet/pkg/graph"
)

// ExportDocument writes doc as indented JSON to path.
func ExportDocument(fsys afero.Fs, path string, doc graph.Document) error {
	data, err := graph.MarshalDocument(doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal %s", path)
	}
	return WriteFileAtomic(fsys, path, data)
}

// ImportDocument reads a document previously written by [ExportDocument].
func ImportDocument(fsys afero.Fs, path string) (graph.Document, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return graph.Document{}, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	doc, err := graph.ReadDocument(bytes.NewReader(data))
	if err != nil {
		return graph.Document{}, errors.Wrap(errors.ErrCodeDataFormat, err, "%s", path)
	}
	for _, l := range doc.Links {
		if l.Count <= 0 {
			return graph.Document{}, errors.New(errors.ErrCodeDataFormat,
				"%s: edge %d -> %d has non-positive count %d", path, l.From, l.To, l.Count)
		}
	}
	return doc, nil
}
