package block

import (
	"sort"

	"github.com/atlasklv/klv/kgb"
)

// Seed names the single block element a non-integral block is grown
// from. Grounded on blocks.cpp's gamma_block/non_integral_block
// constructors (spec §4.4 "builder variants" paragraph): for a
// singular or non-integral infinitesimal character, the block is not
// the full product of K's and Kd's involution packets the way Build
// assumes — it is the set of (x,y) pairs reachable from one base point
// by cross and Cayley moves, discovered by breadth-first search.
type Seed struct {
	X, Y kgb.Elt
}

type xyPair struct{ x, y kgb.Elt }

// BuildNonIntegral discovers a block by breadth-first search from seed
// rather than enumerating K and Kd's involution packets in full. Cross
// always stays within the orbit (it is an involution of the ambient
// KGB set), but a Cayley transform may step to a pair the dominant-
// integral construction would never have visited; that reachable set,
// not the full product, is the block.
func BuildNonIntegral(K, Kd kgb.View, seed Seed, opts Options) *Block {
	rank := K.Rank()
	if Kd.Rank() != rank {
		panic("block: real and dual KGB views disagree on rank")
	}

	index := map[xyPair]int{}
	var pairs []xyPair
	add := func(p xyPair) {
		if _, ok := index[p]; ok {
			return
		}
		index[p] = len(pairs)
		pairs = append(pairs, p)
	}

	add(xyPair{seed.X, seed.Y})
	for frontier := 0; frontier < len(pairs); frontier++ {
		p := pairs[frontier]
		for s := 0; s < rank; s++ {
			add(xyPair{K.Cross(s, p.x), Kd.Cross(s, p.y)})
			switch Classify(s, p.x, p.y, K, Kd) {
			case ImaginaryTypeI, ImaginaryTypeII:
				yFst, ySnd := Kd.InverseCayley(s, p.y)
				add(xyPair{K.Cayley(s, p.x), yFst})
				if ySnd != kgb.Undef {
					add(xyPair{K.Cayley(s, p.x), ySnd})
				}
			}
			// RealTypeI/RealTypeII moves downward in length; the pair
			// they reach was already added as the ImaginaryTypeI/II
			// upward step of whichever element is its Cayley preimage,
			// so there is nothing further to discover from here.
		}
	}

	order := make([]int, len(pairs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		pi, pj := pairs[order[i]], pairs[order[j]]
		li, lj := K.Length(pi.x), K.Length(pj.x)
		if li != lj {
			return li < lj
		}
		if pi.x != pj.x {
			return pi.x < pj.x
		}
		return pi.y < pj.y
	})

	n := len(pairs)
	b := &Block{
		rank:      rank,
		bx:        make([]kgb.Elt, n),
		by:        make([]kgb.Elt, n),
		length:    make([]int32, n),
		descent:   make([][]Status, n),
		cross:     make([][]Elt, n),
		cayleyFst: make([][]Elt, n),
		cayleySnd: make([][]Elt, n),
		invCayFst: make([][]Elt, n),
		invCaySnd: make([][]Elt, n),
		support:   make([]uint64, n),
		cartan:    make([]int32, n),
	}
	posOf := make(map[xyPair]Elt, n)
	for newPos, oldIdx := range order {
		p := pairs[oldIdx]
		b.bx[newPos] = p.x
		b.by[newPos] = p.y
		b.length[newPos] = int32(K.Length(p.x))
		b.cartan[newPos] = int32(K.CartanClass(p.x))
		posOf[p] = Elt(newPos)
		b.descent[newPos] = make([]Status, rank)
		b.cross[newPos] = make([]Elt, rank)
		b.cayleyFst[newPos] = undefRow(rank)
		b.cayleySnd[newPos] = undefRow(rank)
		b.invCayFst[newPos] = undefRow(rank)
		b.invCaySnd[newPos] = undefRow(rank)
	}

	b.firstZOfX = make([]int32, K.Size()+1)
	for x := 0; x <= K.Size(); x++ {
		lo := sort.Search(n, func(i int) bool { return b.bx[i] >= kgb.Elt(x) })
		b.firstZOfX[x] = int32(lo)
	}

	resolve := func(p xyPair) Elt {
		pos, ok := posOf[p]
		if !ok {
			panic("block: BFS discovery did not close under a cross/Cayley move; inconsistent KGB data")
		}
		return pos
	}

	for zi := Elt(0); zi < Elt(n); zi++ {
		x, y := b.bx[zi], b.by[zi]
		for s := 0; s < rank; s++ {
			b.descent[zi][s] = Classify(s, x, y, K, Kd)
			b.cross[zi][s] = resolve(xyPair{K.Cross(s, x), Kd.Cross(s, y)})
		}
	}

	for zi := Elt(0); zi < Elt(n); zi++ {
		x, y := b.bx[zi], b.by[zi]
		for s := 0; s < rank; s++ {
			switch b.descent[zi][s] {
			case ImaginaryTypeII:
				_, ySnd := Kd.InverseCayley(s, y)
				z1 := resolve(xyPair{K.Cayley(s, x), ySnd})
				b.cayleySnd[zi][s] = z1
				setFirstFreeSlot(b.invCayFst[z1], b.invCaySnd[z1], s, zi)
				fallthrough
			case ImaginaryTypeI:
				yFst, _ := Kd.InverseCayley(s, y)
				z0 := resolve(xyPair{K.Cayley(s, x), yFst})
				b.cayleyFst[zi][s] = z0
				setFirstFreeSlot(b.invCayFst[z0], b.invCaySnd[z0], s, zi)
			}
		}
	}

	computeInvolutionSupport(b, K, opts)
	computeBestGoodAscent(b)

	return b
}
