package kl

import (
	"testing"

	"github.com/atlasklv/klv/block"
	"github.com/atlasklv/klv/kgb"
	"github.com/atlasklv/klv/poly"
)

// buildRank1Split mirrors the minimal rank-1 split block used across
// block_test.go and klsupport_test.go: two length-0 elements paired by
// an ImaginaryTypeI cross, Cayley-transforming to one length-1
// RealTypeI element whose inverse Cayley recovers both.
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

func TestFillRank1Split(t *testing.T) {
	b, z0, z0b, z1 := buildRank1Split(t)
	e := NewEngine(b)
	if err := e.Fill(z1); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	for _, c := range []struct {
		name string
		x, y block.Elt
		want poly.Polynomial
	}{
		{"P(z0,z0)", z0, z0, poly.One},
		{"P(z0b,z0b)", z0b, z0b, poly.One},
		{"P(z1,z1)", z1, z1, poly.One},
		{"P(z0,z1)", z0, z1, poly.One},
		{"P(z0b,z1)", z0b, z1, poly.One},
		{"P(z0b,z0)", z0b, z0, poly.Zero},
		{"P(z0,z0b)", z0, z0b, poly.Zero},
	} {
		if got := e.P(c.x, c.y); !got.Equal(c.want) {
			t.Errorf("%s = %v, want %v", c.name, got, c.want)
		}
	}

	if got := e.Mu(z0, z1); got != 1 {
		t.Errorf("Mu(z0,z1) = %d, want 1", got)
	}
	if got := e.Mu(z0b, z1); got != 1 {
		t.Errorf("Mu(z0b,z1) = %d, want 1", got)
	}
}

func TestFillIsIdempotentOnRefill(t *testing.T) {
	b, _, _, z1 := buildRank1Split(t)
	e := NewEngine(b)
	if err := e.Fill(z1); err != nil {
		t.Fatalf("first Fill: %v", err)
	}
	before := e.store.Len()
	if err := e.Fill(z1); err != nil {
		t.Fatalf("second Fill: %v", err)
	}
	if after := e.store.Len(); after != before {
		t.Errorf("store grew from %d to %d on a no-op refill", before, after)
	}
}
