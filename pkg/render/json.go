package render

import (
	"github.com/matzehuels/partynet/pkg/graph"
	"github.com/matzehuels/partynet/pkg/layout"
)

// Document assembles the JSON export of a rendered network. Node
// coordinates are the layout positions in [-1, 1], not pixels.
func Document(s *Scene, pos layout.Positions, hash string, seed uint64) graph.Document {
	doc := graph.Document{
		Hash:  hash,
		Seed:  seed,
		Title: s.Title.Value,
		Nodes: make([]graph.Node, 0, len(s.Nodes)),
		Links: make([]graph.Link, 0, len(s.Edges)),
	}
	for _, n := range s.Nodes {
		p := pos[n.Code]
		doc.Nodes = append(doc.Nodes, graph.Node{
			Code:       n.Code,
			Name:       n.Label.Value,
			Color:      n.Color,
			Candidates: n.Candidates,
			Incumbents: n.Incumbents,
			X:          p.X,
			Y:          p.Y,
		})
	}
	for _, e := range s.Edges {
		doc.Links = append(doc.Links, graph.Link{
			Edge:  graph.Edge{From: e.From, To: e.To, Count: e.Count},
			Ratio: e.Ratio,
		})
	}
	return doc
}
