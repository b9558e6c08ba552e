package render

import "testing"

func TestDocument(t *testing.T) {
	in := fixture()
	s, err := BuildScene(in, SceneOptions{})
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	doc := Document(s, in.Positions, in.Graph.Hash(), 16)

	if doc.Seed != 16 || doc.Hash != in.Graph.Hash() || doc.Title != DefaultTitle {
		t.Errorf("header = seed %d hash %q title %q", doc.Seed, doc.Hash, doc.Title)
	}
	if len(doc.Nodes) != 3 || len(doc.Links) != 4 {
		t.Fatalf("nodes/links = %d/%d, want 3/4", len(doc.Nodes), len(doc.Links))
	}
	n := doc.Nodes[1]
	if n.Code != 2 || n.Name != "公明党" || n.X != 1 || n.Y != 0.5 || n.Candidates != 3 || n.Incumbents != 1 {
		t.Errorf("node 2 = %+v", n)
	}
	l := doc.Links[0]
	if l.From != 1 || l.To != 2 || l.Count != 4 || !near(l.Ratio, 0.4) {
		t.Errorf("link 0 = %+v", l)
	}
}
