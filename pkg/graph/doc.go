// Package graph builds the directed party preference graph and defines its
// JSON document format.
//
// # Building
//
// [Build] turns aggregated edge counts into a [Graph]. Nodes are the party
// codes that appear at either end of at least one edge; parties nobody
// named and who named nobody are absent. Each directed pair becomes one
// edge weighted by its count.
//
// The graph is backed by gonum's simple.WeightedDirectedGraph so the
// layout package can run gonum's force-directed algorithms on it directly.
// gonum simple graphs reject self edges, so a party naming itself is kept
// alongside as a loop and reported through [Graph.Loops].
//
// # Serialization
//
// [Document] is the exported JSON form of a rendered network: nodes with
// display name, color, counts and position, plus weighted edges:
//
//	{
//	  "hash": "3f1c...",
//	  "seed": 16,
//	  "nodes": [{"code": 1, "name": "自民党", "color": "#d7033a", ...}],
//	  "edges": [{"from": 1, "to": 2, "count": 2, "ratio": 0.5}]
//	}
//
// Use [WriteDocument] / [ReadDocument] for streams and [MarshalDocument]
// for in-memory data.
package graph
