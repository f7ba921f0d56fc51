package block

import (
	"testing"

	"github.com/atlasklv/klv/kgb"
)

// buildRank1Split constructs the minimal rank-1 split block: two
// length-0 elements related by an ImaginaryTypeI cross pair, Cayley
// transforming to a single length-1 RealTypeI element whose inverse
// Cayley recovers both of them. This is the smallest block exhibiting
// a genuine (non-degenerate) Cayley link in both directions.
func buildRank1Split() *Block {
	K := kgb.NewTableView(1, 3)
	K.SetLength(0, 0)
	K.SetLength(1, 0)
	K.SetLength(2, 1)
	K.SetInvolution(0, 0, 0)
	K.SetInvolution(1, 0, 0)
	K.SetInvolution(2, 1, 0)
	K.SetImaginaryNoncompact(0, 0, 1, 2)
	K.SetImaginaryNoncompact(1, 0, 0, 2)
	K.SetReal(2, 0, 2, 0, 1)
	K.Finish()

	Kd := kgb.NewTableView(1, 2)
	Kd.SetLength(0, 0)
	Kd.SetLength(1, 1)
	Kd.SetInvolution(0, 0, 0)
	Kd.SetInvolution(1, 1, 0)
	Kd.SetReal(0, 0, 0, 1, -1)
	Kd.SetImaginaryNoncompact(1, 0, 1, -1)
	Kd.Finish()

	opts := Options{DualInvolution: func(inv int) int { return inv }}
	return Build(K, Kd, opts)
}

func TestBuildRank1Split(t *testing.T) {
	b := buildRank1Split()

	if got, want := b.Size(), 3; got != want {
		t.Fatalf("Size() = %d, want %d", got, want)
	}

	// Canonical layout: length weakly increasing.
	for z := Elt(1); z < Elt(b.Size()); z++ {
		if b.Length(z) < b.Length(z-1) {
			t.Errorf("length not weakly increasing at z=%d", z)
		}
	}

	z0 := b.Element(0, 0)
	z0b := b.Element(1, 0)
	z1 := b.Element(2, 1)

	if b.Descent(z0, 0) != ImaginaryTypeI || b.Descent(z0b, 0) != ImaginaryTypeI {
		t.Errorf("expected both length-0 elements to be ImaginaryTypeI, got %v, %v", b.Descent(z0, 0), b.Descent(z0b, 0))
	}
	if b.Descent(z1, 0) != RealTypeI {
		t.Errorf("Descent(z1) = %v, want RealTypeI", b.Descent(z1, 0))
	}

	// Cross involutivity.
	if got := b.Cross(0, z0); got != z0b {
		t.Errorf("Cross(z0) = %d, want z0b=%d", got, z0b)
	}
	if got := b.Cross(0, z0b); got != z0 {
		t.Errorf("Cross(z0b) = %d, want z0=%d", got, z0)
	}
	if got := b.Cross(0, z1); got != z1 {
		t.Errorf("Cross(z1) = %d, want z1=%d (self-paired)", got, z1)
	}

	// Cayley/inverse-Cayley reciprocity.
	c0, _ := b.Cayley(0, z0)
	c0b, _ := b.Cayley(0, z0b)
	if c0 != z1 || c0b != z1 {
		t.Errorf("Cayley(z0)=%d, Cayley(z0b)=%d, want both = z1=%d", c0, c0b, z1)
	}
	f, s := b.InverseCayley(0, z1)
	if !((f == z0 && s == z0b) || (f == z0b && s == z0)) {
		t.Errorf("InverseCayley(z1) = (%d,%d), want {z0=%d,z0b=%d} in some order", f, s, z0, z0b)
	}

	if b.CartanClass(z0) != 0 || b.CartanClass(z1) != 0 {
		t.Errorf("expected single Cartan class 0 throughout this fixture")
	}
	classes := b.CartanClasses()
	if len(classes) != 1 || classes[0] != 0 {
		t.Errorf("CartanClasses() = %v, want [0]", classes)
	}
}

func TestBuildRank1SplitLookupMiss(t *testing.T) {
	b := buildRank1Split()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nonexistent (x,y) pair")
		}
	}()
	b.Element(2, 0)
}

// toyFixture is a hand-assembled 2-element block used only to
// exercise Block's own accessor surface (Element, BestGoodAscent,
// IsUnitaryAtRho) without deriving it from two KGB views.
func toyFixture() *Block {
	return Assemble(Fixture{
		Rank:   1,
		X:      []kgb.Elt{0, 1},
		Y:      []kgb.Elt{0, 0},
		Length: []int{0, 1},
		Descent: [][]Status{
			{ImaginaryTypeI},
			{RealTypeI},
		},
		Cross: [][]Elt{
			{0},
			{1},
		},
		CayleyFst: [][]Elt{
			{1},
			{Undef},
		},
		CayleySnd: [][]Elt{
			{Undef},
			{Undef},
		},
		InvCayFst: [][]Elt{
			{Undef},
			{0},
		},
		InvCaySnd: [][]Elt{
			{Undef},
			{Undef},
		},
		Support: []uint64{0, 1},
		Cartan:  []int{0, 0},
	})
}

func TestAssembleToyFixture(t *testing.T) {
	b := toyFixture()
	if b.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", b.Size())
	}
	if z := b.Element(0, 0); z != 0 {
		t.Errorf("Element(0,0) = %d, want 0", z)
	}
	if z := b.Element(1, 0); z != 1 {
		t.Errorf("Element(1,0) = %d, want 1", z)
	}
	if got := b.BestGoodAscent(0); got != NoGoodAscent() {
		t.Errorf("BestGoodAscent(0) = %d, want NoGoodAscent (z0's only ascent is ImaginaryTypeI, not a good ascent)", got)
	}
	if !b.IsUnitaryAtRho(1) {
		t.Errorf("IsUnitaryAtRho(1) = false, want true: z1's sole generator is a RealTypeI descent")
	}
}
