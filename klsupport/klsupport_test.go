package klsupport

import (
	"testing"

	"github.com/atlasklv/klv/block"
	"github.com/atlasklv/klv/kgb"
)

// buildRank1Split mirrors block's own minimal non-degenerate rank-1
// split block fixture: two ImaginaryTypeI/RealTypeI-paired length-0
// elements Cayley-transforming to a single RealTypeI length-1 element.
func buildRank1Split(t *testing.T) (*block.Block, block.Elt, block.Elt, block.Elt) {
	t.Helper()
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

	opts := block.Options{DualInvolution: func(inv int) int { return inv }}
	b := block.Build(K, Kd, opts)
	return b, b.Element(0, 0), b.Element(1, 0), b.Element(2, 1)
}

func TestDescentSetAndRows(t *testing.T) {
	b, z0, z0b, z1 := buildRank1Split(t)

	if got := DescentSet(b, z1); got != 1 {
		t.Errorf("DescentSet(z1) = %b, want 1 (generator 0 is a RealTypeI descent)", got)
	}
	if got := DescentSet(b, z0); got != 0 {
		t.Errorf("DescentSet(z0) = %b, want 0 (ImaginaryTypeI is not a descent)", got)
	}

	prim := PrimitiveRow(b, z1)
	if prim.Len() != 1 || prim.At(0) != z1 {
		t.Errorf("PrimitiveRow(z1) = %v, want [z1=%d]", prim.Elements(), z1)
	}
	if i, ok := prim.Index(z1); !ok || i != prim.SelfIndex() {
		t.Errorf("Index(z1) = (%d,%v), want (%d,true)", i, ok, prim.SelfIndex())
	}
	if _, ok := prim.Index(z0); ok {
		t.Errorf("z0 must not appear in the primitive row for z1")
	}

	ext := ExtremalRow(b, z1)
	if ext.Len() != 1 || ext.At(0) != z1 {
		t.Errorf("ExtremalRow(z1) = %v, want [z1]", ext.Elements())
	}

	down := DownSet(b, z1)
	if len(down) != 2 || !((down[0] == z0 && down[1] == z0b) || (down[0] == z0b && down[1] == z0)) {
		t.Errorf("DownSet(z1) = %v, want {z0=%d,z0b=%d}", down, z0, z0b)
	}
}

func TestPrimitivize(t *testing.T) {
	b, z0, z0b, z1 := buildRank1Split(t)

	if x, outcome := Primitivize(b, z0, z1); outcome != Identity || x != z1 {
		t.Errorf("Primitivize(z0,z1) = (%d,%v), want (z1=%d,Identity)", x, outcome, z1)
	}
	if x, outcome := Primitivize(b, z0b, z1); outcome != Identity || x != z1 {
		t.Errorf("Primitivize(z0b,z1) = (%d,%v), want (z1=%d,Identity)", x, outcome, z1)
	}
	if x, outcome := Primitivize(b, z1, z0); outcome != Vanishes || x != z1 {
		t.Errorf("Primitivize(z1,z0) = (%d,%v), want (z1=%d,Vanishes)", x, outcome, z1)
	}
	if x, outcome := Primitivize(b, z1, z1); outcome != Identity || x != z1 {
		t.Errorf("Primitivize(z1,z1) = (%d,%v), want (z1=%d,Identity)", x, outcome, z1)
	}
}
