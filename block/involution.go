package block

import "github.com/atlasklv/klv/kgb"

// computeInvolutionSupport fills b.support for every element, per spec
// §4.4 step 7. Block elements are visited in their canonical index
// order, which is also weakly increasing in length (spec §3
// invariant), so any element reached via a strict descent has already
// had its support computed by the time it is needed.
func computeInvolutionSupport(b *Block, K kgb.View, opts Options) {
	for z := Elt(0); z < Elt(b.Size()); z++ {
		s, kind, ok := firstStrictDescent(b, z)
		if !ok {
			b.support[z] = seedSupport(K, opts, b.bx[z])
			continue
		}
		switch kind {
		case ComplexDescent:
			src := b.cross[z][s]
			mask := b.support[src]
			mask |= 1 << uint(s)
			mask |= 1 << uint(opts.twist(s))
			b.support[z] = mask
		case RealTypeI, RealTypeII:
			src := b.invCayFst[z][s]
			mask := b.support[src]
			mask |= 1 << uint(s)
			b.support[z] = mask
		default:
			panic("block: unexpected strict descent kind during support propagation")
		}
	}
}

func firstStrictDescent(b *Block, z Elt) (s int, kind Status, ok bool) {
	for s := 0; s < b.rank; s++ {
		if b.descent[z][s].IsStrictDescent() {
			return s, b.descent[z][s], true
		}
	}
	return 0, 0, false
}

func seedSupport(K kgb.View, opts Options, x kgb.Elt) uint64 {
	if opts.InvolutionWord == nil {
		return 0
	}
	var mask uint64
	for _, letter := range opts.InvolutionWord(K.InvolutionOf(x)) {
		mask |= 1 << uint(letter)
	}
	return mask
}

// computeBestGoodAscent fills b.bestGoodAscent: the first generator
// that is a ComplexAscent, ImaginaryTypeII, or ImaginaryCompact for z,
// used as the dump format's "best good ascent" field (spec §6.2).
func computeBestGoodAscent(b *Block) {
	b.bestGoodAscent = make([]Elt, b.Size())
	for z := Elt(0); z < Elt(b.Size()); z++ {
		b.bestGoodAscent[z] = noGoodAscent
		for s := 0; s < b.rank; s++ {
			switch b.descent[z][s] {
			case ComplexAscent, ImaginaryTypeII, ImaginaryCompact:
				b.bestGoodAscent[z] = Elt(s)
			}
			if b.bestGoodAscent[z] != noGoodAscent {
				break
			}
		}
	}
}

// NoGoodAscent exposes the noGoodAscent sentinel to other packages
// (e.g. dump) without making the constant itself public API that
// callers might confuse with Undef.
func NoGoodAscent() Elt { return noGoodAscent }
