// Package wgraph builds the W-graph of a filled block: vertices are
// block elements, edges carry the mu-coefficients that drive
// Kazhdan-Lusztig cell decomposition (spec §4.7).
package wgraph

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/atlasklv/klv/block"
	"github.com/atlasklv/klv/kl"
	"github.com/atlasklv/klv/klsupport"
)

// Graph wraps the weighted directed graph built from a block's mu-data,
// keyed by block.Elt cast to the node IDs simple.WeightedDirectedGraph
// expects.
type Graph struct {
	g *simple.WeightedDirectedGraph
	b *block.Block
}

// Build constructs the W-graph from e's block. Every element up to and
// including the highest y that e.Fill reached must already be filled;
// Build reads mu(x,y) and descentSet(x)/(y) for every pair with x < y.
func Build(e *kl.Engine) *Graph {
	b := e.Block()
	g := simple.NewWeightedDirectedGraph(0, 0)
	for z := block.Elt(0); z < block.Elt(b.Size()); z++ {
		g.AddNode(simple.Node(z))
	}

	for y := block.Elt(0); y < block.Elt(b.Size()); y++ {
		if !e.Filled(y) {
			continue
		}
		dy := klsupport.DescentSet(b, y)
		ly := b.Length(y)
		for _, x := range e.MuRow(y) {
			if x >= y {
				continue
			}
			mu := e.Mu(x, y)
			if mu == 0 {
				continue
			}
			dx := klsupport.DescentSet(b, x)
			if dx == dy {
				continue
			}
			lx := b.Length(x)
			weight := float64(mu)
			if ly-lx > 1 {
				g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(x), simple.Node(y), weight))
				continue
			}
			if !isSubset(dy, dx) {
				g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(x), simple.Node(y), weight))
			}
			if !isSubset(dx, dy) {
				g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(y), simple.Node(x), weight))
			}
		}
	}
	return &Graph{g: g, b: b}
}

// isSubset reports whether every bit set in a is also set in b.
func isSubset(a, b uint64) bool { return a&b == a }

// Underlying returns the gonum graph, for clients that want to run
// further graph algorithms (shortest paths, traversal) over it.
func (wg *Graph) Underlying() *simple.WeightedDirectedGraph { return wg.g }

// Weight returns the edge weight (mu) from x to y, and whether that
// edge exists.
func (wg *Graph) Weight(x, y block.Elt) (float64, bool) {
	return wg.g.Weight(int64(x), int64(y))
}

// Cells returns the Kazhdan-Lusztig cells: the strongly connected
// components of the W-graph, each as a slice of block elements. Order
// among cells and within a cell follows topo.TarjanSCC's own ordering
// (a reverse topological order of the condensation).
func (wg *Graph) Cells() [][]block.Elt {
	sccs := topo.TarjanSCC(wg.g)
	out := make([][]block.Elt, len(sccs))
	for i, scc := range sccs {
		cell := make([]block.Elt, len(scc))
		for j, n := range scc {
			cell[j] = block.Elt(n.ID())
		}
		out[i] = cell
	}
	return out
}

var _ graph.Directed = (*simple.WeightedDirectedGraph)(nil)
