package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 content hash of the graph's edges as a
// 64-character hex string. Graphs with equal edge counts hash equally.
func (g *Graph) Hash() string {
	data, _ := json.Marshal(g.Edges())
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
