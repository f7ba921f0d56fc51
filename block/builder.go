package block

import "github.com/atlasklv/klv/kgb"

// Options supplies the external collaborators the builder needs (spec
// §6.1): the dual-involution map, a reduced-word expander for an
// involution (used only to seed involution support at minimal
// length), and the diagram-automorphism twist applied to a generator
// when support is propagated across a ComplexDescent. Twist may be
// nil, meaning the identity (the untwisted/inner-twist-trivial case,
// true of every split or quasisplit scenario in spec §8).
type Options struct {
	DualInvolution func(invReal int) int
	InvolutionWord func(invReal int) []int
	Twist          func(s int) int
}

func (o Options) twist(s int) int {
	if o.Twist == nil {
		return s
	}
	return o.Twist(s)
}

// Build constructs a Block from two dual KGB views, following spec
// §4.4 steps 1-7.
func Build(K, Kd kgb.View, opts Options) *Block {
	rank := K.Rank()
	if Kd.Rank() != rank {
		panic("block: real and dual KGB views disagree on rank")
	}

	// Step 1: total size.
	nInv := K.NrInvolutions()
	dualInv := make([]int, nInv)
	n := 0
	for i := 0; i < nInv; i++ {
		invR := K.NthInvolution(i)
		invD := opts.DualInvolution(invR)
		dualInv[i] = invD
		n += K.PacketSize(invR) * Kd.PacketSize(invD)
	}

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
	for z := 0; z < n; z++ {
		b.descent[z] = make([]Status, rank)
		b.cross[z] = make([]Elt, rank)
		b.cayleyFst[z] = undefRow(rank)
		b.cayleySnd[z] = undefRow(rank)
		b.invCayFst[z] = undefRow(rank)
		b.invCaySnd[z] = undefRow(rank)
	}

	// Step 2: populate (x,y) in canonical layout; record first_z_of_x.
	//
	// This requires the external KGB view to enumerate involutions (via
	// NthInvolution) so that TauPacket ranges are visited in increasing
	// order of x — the precondition the canonical layout's O(1) Element
	// lookup depends on (spec §4.4 step 2, §9 "descent ordering"). Any
	// x with no y's in its packet (impossible in practice, since every
	// x belongs to exactly one involution's packet) still gets a
	// first_z_of_x entry equal to the next x's boundary.
	b.firstZOfX = make([]int32, K.Size()+1)
	z := int32(0)
	nextX := kgb.Elt(0)
	for i := 0; i < nInv; i++ {
		invR := K.NthInvolution(i)
		invD := dualInv[i]
		xlo, xhi := K.TauPacket(invR)
		ylo, yhi := Kd.TauPacket(invD)
		for x := nextX; x < xlo; x++ {
			b.firstZOfX[x] = z
		}
		for x := xlo; x < xhi; x++ {
			b.firstZOfX[x] = z
			for y := ylo; y < yhi; y++ {
				b.bx[z] = x
				b.by[z] = y
				b.length[z] = int32(K.Length(x))
				b.cartan[z] = int32(K.CartanClass(x))
				z++
			}
		}
		nextX = xhi
	}
	for x := nextX; int(x) < len(b.firstZOfX); x++ {
		b.firstZOfX[x] = z
	}

	// Step 3: descent status and length (length already set above).
	for zi := Elt(0); zi < Elt(n); zi++ {
		x, y := b.bx[zi], b.by[zi]
		for s := 0; s < rank; s++ {
			b.descent[zi][s] = Classify(s, x, y, K, Kd)
		}
	}

	// Step 5: cross links, always defined.
	for zi := Elt(0); zi < Elt(n); zi++ {
		x, y := b.bx[zi], b.by[zi]
		for s := 0; s < rank; s++ {
			b.cross[zi][s] = b.Element(K.Cross(s, x), Kd.Cross(s, y))
		}
	}

	// Step 6: Cayley links, per descent kind, "first free slot"
	// discipline for the inverse side.
	for zi := Elt(0); zi < Elt(n); zi++ {
		x, y := b.bx[zi], b.by[zi]
		for s := 0; s < rank; s++ {
			switch b.descent[zi][s] {
			case ImaginaryTypeII:
				_, ySnd := Kd.InverseCayley(s, y)
				z1 := b.Element(K.Cayley(s, x), ySnd)
				b.cayleySnd[zi][s] = z1
				setFirstFreeSlot(b.invCayFst[z1], b.invCaySnd[z1], s, zi)
				fallthrough
			case ImaginaryTypeI:
				yFst, _ := Kd.InverseCayley(s, y)
				z0 := b.Element(K.Cayley(s, x), yFst)
				b.cayleyFst[zi][s] = z0
				setFirstFreeSlot(b.invCayFst[z0], b.invCaySnd[z0], s, zi)
			}
		}
	}

	// Step 7: involution support, propagated by length.
	computeInvolutionSupport(b, K, opts)

	computeBestGoodAscent(b)

	return b
}

func undefRow(rank int) []Elt {
	r := make([]Elt, rank)
	for i := range r {
		r[i] = Undef
	}
	return r
}

// setFirstFreeSlot assigns value into fst[s] if it is Undef, else into
// snd[s], which must then be Undef (spec §4.4 step 6 "first free slot"
// discipline for inverse Cayley targets).
func setFirstFreeSlot(fst, snd []Elt, s int, value Elt) {
	if fst[s] == Undef {
		fst[s] = value
		return
	}
	if snd[s] != Undef {
		panic("block: inverse Cayley slot already full; inconsistent KGB data")
	}
	snd[s] = value
}
