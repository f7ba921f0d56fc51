// Package block builds and represents a KLV block: the finite,
// partially-ordered set of (x,y) parameter pairs derived from two
// dual one-sided KGB views, together with its cross/Cayley tables,
// length function, and descent status (spec §3, §4.4).
package block

import (
	"github.com/atlasklv/klv/internal/fail"
	"github.com/atlasklv/klv/kgb"
)

// Elt is a block-element index in the canonical layout: grouped by
// involution, then by x, then by y, with length weakly increasing
// throughout (spec §3 invariants).
type Elt int32

// Undef is the sentinel for an absent cross/Cayley link, reserved
// outside [0, N) for any block of size N.
const Undef Elt = -1

// noGoodAscent marks a block element with no "good" ascent available
// to the Bruhat-order/new-recursion pivot search (SPEC_FULL.md
// supplemented feature: best-good-ascent dump field, spec §6.2).
const noGoodAscent = Elt(-2)

// Block is an immutable, built block. Use Build or BuildNonIntegral to
// construct one; there is no public mutator.
type Block struct {
	rank int

	bx []kgb.Elt
	by []kgb.Elt

	length  []int32
	descent [][]Status // [z][s]

	cross     [][]Elt // [z][s]
	cayleyFst [][]Elt // [z][s]
	cayleySnd [][]Elt // [z][s]
	invCayFst [][]Elt // [z][s]
	invCaySnd [][]Elt // [z][s]

	firstZOfX []int32 // indexed by kgb.Elt x, size K.Size()+1
	support   []uint64
	cartan    []int32

	bestGoodAscent []Elt
}

// Size returns the number of block elements.
func (b *Block) Size() int { return len(b.bx) }

// Rank returns the semisimple rank (number of simple generators).
func (b *Block) Rank() int { return b.rank }

// X returns the real-side parameter of z.
func (b *Block) X(z Elt) kgb.Elt { return b.bx[z] }

// Y returns the dual-side parameter of z.
func (b *Block) Y(z Elt) kgb.Elt { return b.by[z] }

// Length returns the length of z.
func (b *Block) Length(z Elt) int { return int(b.length[z]) }

// Descent returns the descent status of z at generator s.
func (b *Block) Descent(z Elt, s int) Status { return b.descent[z][s] }

// Cross returns the cross-action image of generator s at z. Always
// defined.
func (b *Block) Cross(s int, z Elt) Elt { return b.cross[z][s] }

// Cayley returns the Cayley transform image(s) of generator s at z.
// The first component is Undef unless the descent status is
// ImaginaryTypeI or ImaginaryTypeII; the second is additionally
// defined only for ImaginaryTypeII.
func (b *Block) Cayley(s int, z Elt) (first, second Elt) {
	return b.cayleyFst[z][s], b.cayleySnd[z][s]
}

// InverseCayley returns the inverse-Cayley preimage(s) of generator s
// at z. The first component is Undef unless the descent status is
// RealTypeI or RealTypeII; the second is additionally defined only
// for RealTypeI.
func (b *Block) InverseCayley(s int, z Elt) (first, second Elt) {
	return b.invCayFst[z][s], b.invCaySnd[z][s]
}

// InvolutionSupport returns the bitmask of simple generators appearing
// in a reduced word for z's involution.
func (b *Block) InvolutionSupport(z Elt) uint64 { return b.support[z] }

// CartanClass returns the Cartan class tag of z (shared by x(z)).
func (b *Block) CartanClass(z Elt) int { return int(b.cartan[z]) }

// CartanClasses returns the sorted distinct Cartan class tags present
// in the block (SPEC_FULL.md supplemented feature).
func (b *Block) CartanClasses() []int {
	seen := make(map[int32]bool)
	var out []int
	for _, c := range b.cartan {
		if !seen[c] {
			seen[c] = true
			out = append(out, int(c))
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// BestGoodAscent returns the first generator that is a ComplexAscent,
// ImaginaryTypeII ascent, or ImaginaryCompact for z, or noGoodAscent
// (exposed externally as block.NoGoodAscent()) if none exists. Cached at
// build time (SPEC_FULL.md supplemented feature, grounded on the
// block-file "best good ascent" field of spec §6.2).
func (b *Block) BestGoodAscent(z Elt) Elt { return b.bestGoodAscent[z] }

// IsUnitaryAtRho reports whether z's descent status is a descent for
// every simple generator in the support of z's involution
// (SPEC_FULL.md supplemented feature, grounds the `blocku` CLI
// surface of spec §6.5).
func (b *Block) IsUnitaryAtRho(z Elt) bool {
	support := b.support[z]
	for s := 0; s < b.rank; s++ {
		if support&(1<<uint(s)) == 0 {
			continue
		}
		if !b.descent[z][s].IsDescent() {
			return false
		}
	}
	return true
}

// Element looks up the block element with the given (x,y) pair in
// O(1), using the canonical layout's first_z_of_x table (spec §4.4
// step 4). It panics with fail.LookupMissing-shaped information if no
// such element exists; this indicates incompatible coordinates, a
// programmer error per spec §7.
func (b *Block) Element(x, y kgb.Elt) Elt {
	lo := b.firstZOfX[x]
	hi := b.firstZOfX[x+1]
	if lo == hi {
		panic(fail.LookupMissing{X: int(x), Y: int(y)})
	}
	y0 := b.by[lo]
	off := int32(y) - int32(y0)
	z := lo + off
	if off < 0 || z >= hi || b.by[z] != y {
		panic(fail.LookupMissing{X: int(x), Y: int(y)})
	}
	return Elt(z)
}
