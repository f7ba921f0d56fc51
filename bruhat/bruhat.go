// Package bruhat builds the Bruhat order on a block: a Hasse diagram
// of covering relations, and the transitive closure of that diagram as
// a symmetric comparison query (spec §4.8).
package bruhat

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/atlasklv/klv/block"
)

// wordBits is the width of one comparison-bitmap word.
const wordBits = 64

// bitset is a fixed-size, growable-at-construction bitmap over block
// elements, used to hold "z' <= z" membership per z (spec §4.8's
// "symmetric comparison bitmap").
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+wordBits-1)/wordBits)
}

func (s bitset) set(i int) { s[i/wordBits] |= 1 << uint(i%wordBits) }

func (s bitset) has(i int) bool { return s[i/wordBits]&(1<<uint(i%wordBits)) != 0 }

func (s bitset) or(other bitset) {
	for i := range s {
		s[i] |= other[i]
	}
}

// Order holds the Bruhat order of a block: each element's cover set
// (immediate predecessors in the Hasse diagram) and the transitive
// closure needed to answer arbitrary comparisons.
type Order struct {
	b     *block.Block
	hasse [][]block.Elt
	below []bitset // below[z] = { z' : z' <= z }, z included
}

// Build constructs the Bruhat order of b. It relies on b's canonical
// layout (elements weakly increasing by length) so that, when
// processing z, every element its cover set or insertAscents refers to
// has strictly smaller length and is already complete.
func Build(b *block.Block) *Order {
	n := b.Size()
	o := &Order{b: b, hasse: make([][]block.Elt, n), below: make([]bitset, n)}

	for z := block.Elt(0); z < block.Elt(n); z++ {
		o.hasse[z] = coverSet(b, o.hasse, z)

		bs := newBitset(n)
		bs.set(int(z))
		for _, c := range o.hasse[z] {
			bs.or(o.below[c])
		}
		o.below[z] = bs
	}
	return o
}

// firstStrictGoodDescent returns the first generator at which z has a
// strict descent (ComplexDescent, RealTypeI, or RealTypeII) that is
// not RealTypeII, or -1 if none exists.
func firstStrictGoodDescent(b *block.Block, z block.Elt) int {
	for s := 0; s < b.Rank(); s++ {
		switch b.Descent(z, s) {
		case block.ComplexDescent, block.RealTypeI:
			return s
		}
	}
	return -1
}

// coverSet computes the immediate predecessors of z in the Hasse
// diagram (spec §4.8).
func coverSet(b *block.Block, hasse [][]block.Elt, z block.Elt) []block.Elt {
	set := map[block.Elt]bool{}

	if s := firstStrictGoodDescent(b, z); s >= 0 {
		switch b.Descent(z, s) {
		case block.ComplexDescent:
			sz := b.Cross(s, z)
			set[sz] = true
			insertAscents(set, hasse[sz], s, b)
		case block.RealTypeI:
			first, second := b.InverseCayley(s, z)
			set[first] = true
			set[second] = true
			insertAscents(set, hasse[first], s, b)
		}
	} else {
		for s := 0; s < b.Rank(); s++ {
			if b.Descent(z, s) == block.RealTypeII {
				first, _ := b.InverseCayley(s, z)
				set[first] = true
			}
		}
	}

	out := make([]block.Elt, 0, len(set))
	for x := range set {
		out = append(out, x)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// insertAscents adds, for each predecessor z' in hr, the ascent of z'
// through s, to hs: the cross image for a ComplexAscent, the Cayley
// image(s) for ImaginaryTypeI/II. Anything else is not a strict
// ascent and is skipped.
func insertAscents(hs map[block.Elt]bool, hr []block.Elt, s int, b *block.Block) {
	for _, z := range hr {
		switch b.Descent(z, s) {
		case block.ComplexAscent:
			hs[b.Cross(s, z)] = true
		case block.ImaginaryTypeI:
			first, _ := b.Cayley(s, z)
			hs[first] = true
		case block.ImaginaryTypeII:
			first, second := b.Cayley(s, z)
			hs[first] = true
			hs[second] = true
		}
	}
}

// Covers returns z's immediate predecessors in the Hasse diagram.
func (o *Order) Covers(z block.Elt) []block.Elt { return o.hasse[z] }

// LessOrEqual reports whether x <= y in the Bruhat order.
func (o *Order) LessOrEqual(x, y block.Elt) bool { return o.below[y].has(int(x)) }

// Comparable reports whether x and y are related either way.
func (o *Order) Comparable(x, y block.Elt) bool {
	return o.LessOrEqual(x, y) || o.LessOrEqual(y, x)
}

// Graph returns the Hasse diagram as a gonum directed graph, edges
// oriented from each element to its covers (so edges point toward
// smaller length), for callers that want to run topo.Sort or other
// gonum graph algorithms over it.
func (o *Order) Graph() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for z := block.Elt(0); z < block.Elt(len(o.hasse)); z++ {
		g.AddNode(simple.Node(z))
	}
	for z, covers := range o.hasse {
		for _, c := range covers {
			g.SetEdge(g.NewEdge(simple.Node(block.Elt(z)), simple.Node(c)))
		}
	}
	return g
}

// Acyclic reports whether the Hasse diagram built from the block has
// no directed cycles, a basic structural sanity check (the cover
// relation should always be a DAG since it strictly decreases length).
func (o *Order) Acyclic() bool {
	_, err := topo.Sort(o.Graph())
	return err == nil
}
