package kl

import (
	"github.com/atlasklv/klv/block"
)

// firstDirectRecursion picks the first generator that is a ComplexDescent
// or RealTypeI descent of y (spec §4.6.1). sy is the element one step
// down: cross(s,y) for ComplexDescent, inverseCayley(s,y).first for
// RealTypeI. ok is false if every descent of y is RealTypeII, the
// signal to fall back to the new recursion (§4.6.4).
func firstDirectRecursion(b *block.Block, y block.Elt) (s int, sy block.Elt, ok bool) {
	for s := 0; s < b.Rank(); s++ {
		switch b.Descent(y, s) {
		case block.ComplexDescent:
			return s, b.Cross(s, y), true
		case block.RealTypeI:
			first, _ := b.InverseCayley(s, y)
			return s, first, true
		}
	}
	return 0, 0, false
}

// firstNiceAndReal finds a generator that is RealNonparity for y and
// one of ComplexAscent, ImaginaryTypeII, or ImaginaryCompact for x
// (spec §4.6.4 step 2).
func firstNiceAndReal(b *block.Block, x, y block.Elt) (s int, ok bool) {
	for s := 0; s < b.Rank(); s++ {
		if b.Descent(y, s) != block.RealNonparity {
			continue
		}
		switch b.Descent(x, s) {
		case block.ComplexAscent, block.ImaginaryTypeII, block.ImaginaryCompact:
			return s, true
		}
	}
	return 0, false
}

// firstEndgamePair finds a pair (s,t): s is RealNonparity for y and
// ImaginaryTypeI for x; t is RealTypeII for y and ImaginaryTypeI or
// ImaginaryTypeII for cross(s,x) (spec §4.6.4 step 3).
func firstEndgamePair(b *block.Block, x, y block.Elt) (s, t int, ok bool) {
	for s = 0; s < b.Rank(); s++ {
		if b.Descent(y, s) != block.RealNonparity || b.Descent(x, s) != block.ImaginaryTypeI {
			continue
		}
		sx := b.Cross(s, x)
		for t = 0; t < b.Rank(); t++ {
			if b.Descent(y, t) != block.RealTypeII {
				continue
			}
			switch b.Descent(sx, t) {
			case block.ImaginaryTypeI, block.ImaginaryTypeII:
				return s, t, true
			}
		}
	}
	return 0, 0, false
}
