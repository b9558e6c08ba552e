// Package render draws the party preference network.
//
// # Overview
//
// Rendering happens in two steps. [BuildScene] combines the graph, the
// tally, resolved styles and layout positions into a [Scene]: every node
// as a sized, colored circle in pixel coordinates and every edge as a
// curved, trimmed path with an arrowhead. The scene is then handed to a
// sink:
//
//   - [RenderPNG]: raster image via gg, cropped to content
//   - [RenderSVG]: vector image with the same geometry
//   - [ToDOT]: Graphviz DOT with pinned node positions
//   - [RenderGraphvizSVG]: the DOT laid out by Graphviz neato
//   - [Document]: the network as a graph.Document for JSON export
//
// BuildScene validates that every node has a name, a color and a position
// before anything is drawn, so a missing style never produces a partial
// image.
//
// # Sizes
//
// Node area is [NodeAreaScale] square points per incumbent, so a party with
// no incumbents is drawn as a bare label. Edge width is [EdgeWidthScale]
// points times the edge count divided by the source party's candidate
// count, i.e. the share of that party's candidates naming the target.
//
//	render.NodeArea(4)         // 80 pt²
//	render.EdgeWidth(4, 10)    // 4.0 pt
//
// # Edges
//
// Edges are quadratic arcs bending to one side by [DefaultCurvature] of
// their length, so reciprocal edges between two parties do not overlap.
// Ends are trimmed to the node circles. A party naming itself gets a loop
// above its node.
package render
