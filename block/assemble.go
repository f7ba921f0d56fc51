package block

import "github.com/atlasklv/klv/kgb"

// Fixture is a fully-specified block, assembled directly from its
// tables rather than derived from two KGB views. It is the
// counterpart, for hand-built low-rank test scenarios (spec §8), to
// Build's KGB-driven construction. BuildNonIntegral does not go
// through Fixture; it fills its Block directly.
type Fixture struct {
	Rank int

	X, Y []kgb.Elt
	// Length[z] must be weakly increasing in z (spec §3 invariant).
	Length []int

	// Descent[z][s] is the descent status of z at generator s.
	Descent [][]Status

	// Cross[z][s] is the cross-action image of generator s at z.
	Cross [][]Elt

	// CayleyFst/CayleySnd[z][s] are the Cayley targets of z at s
	// (Undef unless ImaginaryTypeI/II).
	CayleyFst, CayleySnd [][]Elt

	// InvCayFst/InvCaySnd[z][s] are the inverse-Cayley preimages of z
	// at s (Undef unless RealTypeI/II).
	InvCayFst, InvCaySnd [][]Elt

	// Support[z] is the involution-support bitmask of z.
	Support []uint64

	// Cartan[z] is the Cartan class tag of z.
	Cartan []int
}

// Assemble builds an immutable Block from a Fixture, computing
// first_z_of_x and the best-good-ascent cache from the supplied
// tables. It does not validate the invariants of spec §3/§8; callers
// constructing fixtures by hand are expected to honor them.
func Assemble(f Fixture) *Block {
	n := len(f.X)
	b := &Block{
		rank:      f.Rank,
		bx:        append([]kgb.Elt(nil), f.X...),
		by:        append([]kgb.Elt(nil), f.Y...),
		length:    make([]int32, n),
		descent:   f.Descent,
		cross:     f.Cross,
		cayleyFst: f.CayleyFst,
		cayleySnd: f.CayleySnd,
		invCayFst: f.InvCayFst,
		invCaySnd: f.InvCaySnd,
		support:   append([]uint64(nil), f.Support...),
		cartan:    make([]int32, n),
	}
	for i, l := range f.Length {
		b.length[i] = int32(l)
	}
	for i, c := range f.Cartan {
		b.cartan[i] = int32(c)
	}

	maxX := kgb.Elt(0)
	for _, x := range f.X {
		if x > maxX {
			maxX = x
		}
	}
	b.firstZOfX = make([]int32, maxX+2)
	z := 0
	for x := kgb.Elt(0); x <= maxX; x++ {
		b.firstZOfX[x] = int32(z)
		for z < n && b.bx[z] == x {
			z++
		}
	}
	b.firstZOfX[maxX+1] = int32(n)

	if b.support == nil {
		b.support = make([]uint64, n)
	}

	computeBestGoodAscent(b)
	return b
}
