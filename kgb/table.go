package kgb

// TableView is a dense, explicitly-tabulated View: every field is
// supplied by the caller as plain slices, indexed by Elt and by
// generator. It is how the external KGB construction (root datum,
// real form, orbit enumeration — spec §6.1, explicitly out of scope
// here) is expected to hand its result to the block builder, and it is
// what the low-rank scenarios of spec §8 are built from directly.
type TableView struct {
	rank int

	length     []int
	status     [][]Status
	cross      [][]Elt
	cayleyFwd  [][]Elt
	invCayFst  [][]Elt
	invCaySnd  [][]Elt
	descent    [][]bool
	involution []int
	cartan     []int

	// packets maps an involution token to the contiguous [lo,hi) range
	// of elements sharing it, and invOrder lists involution tokens in
	// canonical enumeration order.
	packets  map[int][2]int
	invOrder []int
}

// NewTableView builds a TableView for the given rank and number of
// elements; callers fill in the per-element fields via the setters
// below, then call Finish to compute involution packets.
func NewTableView(rank, n int) *TableView {
	t := &TableView{
		rank:       rank,
		length:     make([]int, n),
		status:     make([][]Status, n),
		cross:      make([][]Elt, n),
		cayleyFwd:  make([][]Elt, n),
		invCayFst:  make([][]Elt, n),
		invCaySnd:  make([][]Elt, n),
		descent:    make([][]bool, n),
		involution: make([]int, n),
		cartan:     make([]int, n),
	}
	for x := 0; x < n; x++ {
		t.status[x] = make([]Status, rank)
		t.cross[x] = make([]Elt, rank)
		t.cayleyFwd[x] = fillUndef(rank)
		t.invCayFst[x] = fillUndef(rank)
		t.invCaySnd[x] = fillUndef(rank)
		t.descent[x] = make([]bool, rank)
	}
	return t
}

func fillUndef(n int) []Elt {
	s := make([]Elt, n)
	for i := range s {
		s[i] = Undef
	}
	return s
}

// SetLength sets the KGB length of x.
func (t *TableView) SetLength(x Elt, l int) { t.length[x] = l }

// SetInvolution sets the involution token and Cartan class of x.
func (t *TableView) SetInvolution(x Elt, inv, cartan int) {
	t.involution[x] = inv
	t.cartan[x] = cartan
}

// SetComplex marks generator s at x as Complex status, with the given
// cross image and descent flag.
func (t *TableView) SetComplex(x Elt, s int, cross Elt, isDescent bool) {
	t.status[x][s] = Complex
	t.cross[x][s] = cross
	t.descent[x][s] = isDescent
}

// SetImaginaryCompact marks generator s at x as ImaginaryCompact; the
// cross action on an ImaginaryCompact generator is the identity.
func (t *TableView) SetImaginaryCompact(x Elt, s int) {
	t.status[x][s] = ImaginaryCompact
	t.cross[x][s] = x
}

// SetImaginaryNoncompact marks generator s at x as ImaginaryNoncompact
// with cross image cross and (single-valued) Cayley image c.
func (t *TableView) SetImaginaryNoncompact(x Elt, s int, cross, c Elt) {
	t.status[x][s] = ImaginaryNoncompact
	t.cross[x][s] = cross
	t.cayleyFwd[x][s] = c
}

// SetReal marks generator s at x as Real with cross image cross and
// inverse-Cayley preimage(s) p1 (and p2 for type I; pass Undef for
// type II).
func (t *TableView) SetReal(x Elt, s int, cross, p1, p2 Elt) {
	t.status[x][s] = Real
	t.cross[x][s] = cross
	t.invCayFst[x][s] = p1
	t.invCaySnd[x][s] = p2
	t.descent[x][s] = true
}

// Finish computes involution packets from the SetInvolution calls made
// so far. It must be called once after all elements are populated.
func (t *TableView) Finish() {
	t.packets = make(map[int][2]int)
	for x, inv := range t.involution {
		rng, ok := t.packets[inv]
		if !ok {
			t.packets[inv] = [2]int{x, x + 1}
			t.invOrder = append(t.invOrder, inv)
			continue
		}
		if x < rng[0] {
			rng[0] = x
		}
		if x+1 > rng[1] {
			rng[1] = x + 1
		}
		t.packets[inv] = rng
	}
}

func (t *TableView) Size() int { return len(t.length) }
func (t *TableView) Rank() int { return t.rank }

func (t *TableView) Length(x Elt) int                { return t.length[x] }
func (t *TableView) Status(s int, x Elt) Status      { return t.status[x][s] }
func (t *TableView) Cross(s int, x Elt) Elt          { return t.cross[x][s] }
func (t *TableView) InvolutionOf(x Elt) int          { return t.involution[x] }
func (t *TableView) CartanClass(x Elt) int           { return t.cartan[x] }
func (t *TableView) IsDescent(s int, x Elt) bool      { return t.descent[x][s] }
func (t *TableView) IsAscent(s int, x Elt) bool       { return !t.descent[x][s] }

func (t *TableView) Cayley(s int, x Elt) Elt {
	return t.cayleyFwd[x][s]
}

func (t *TableView) InverseCayley(s int, x Elt) (first, second Elt) {
	return t.invCayFst[x][s], t.invCaySnd[x][s]
}

func (t *TableView) TauPacket(inv int) (lo, hi Elt) {
	r := t.packets[inv]
	return Elt(r[0]), Elt(r[1])
}

func (t *TableView) NthInvolution(i int) int { return t.invOrder[i] }
func (t *TableView) NrInvolutions() int      { return len(t.invOrder) }
func (t *TableView) PacketSize(inv int) int {
	r := t.packets[inv]
	return r[1] - r[0]
}
