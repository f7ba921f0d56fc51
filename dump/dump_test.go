package dump

import (
	"bytes"
	"testing"

	"github.com/atlasklv/klv/block"
	"github.com/atlasklv/klv/kgb"
	"github.com/atlasklv/klv/kl"
	"github.com/atlasklv/klv/poly"
)

// buildRank1Split mirrors the fixture shared across block, klsupport,
// kl, wgraph and bruhat tests.
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

func TestBlockRoundTrip(t *testing.T) {
	b, _, _, _ := buildRank1Split(t)

	var buf bytes.Buffer
	if err := WriteBlock(&buf, b); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}

	d, err := ReadBlock(&buf)
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if d.Rank != b.Rank() || d.Size() != b.Size() {
		t.Fatalf("Rank/Size = %d/%d, want %d/%d", d.Rank, d.Size(), b.Rank(), b.Size())
	}
	for z := block.Elt(0); z < block.Elt(b.Size()); z++ {
		if d.Length[z] != int32(b.Length(z)) {
			t.Errorf("z=%d: Length = %d, want %d", z, d.Length[z], b.Length(z))
		}
		if d.BestGoodAscent[z] != b.BestGoodAscent(z) {
			t.Errorf("z=%d: BestGoodAscent = %d, want %d", z, d.BestGoodAscent[z], b.BestGoodAscent(z))
		}
		for s := 0; s < b.Rank(); s++ {
			if d.Descent[z][s] != b.Descent(z, s) {
				t.Errorf("z=%d s=%d: Descent = %v, want %v", z, s, d.Descent[z][s], b.Descent(z, s))
			}
			if d.Cross[z][s] != b.Cross(s, z) {
				t.Errorf("z=%d s=%d: Cross = %d, want %d", z, s, d.Cross[z][s], b.Cross(s, z))
			}
			fst, snd := b.Cayley(s, z)
			if d.CayleyFst[z][s] != fst || d.CayleySnd[z][s] != snd {
				t.Errorf("z=%d s=%d: Cayley = (%d,%d), want (%d,%d)", z, s, d.CayleyFst[z][s], d.CayleySnd[z][s], fst, snd)
			}
		}
	}
}

func TestMatrixAndPolyStoreRoundTrip(t *testing.T) {
	b, _, _, z1 := buildRank1Split(t)
	e := kl.NewEngine(b)
	if err := e.Fill(z1); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	var polyBuf bytes.Buffer
	if err := WritePolyStore(&polyBuf, e.Store()); err != nil {
		t.Fatalf("WritePolyStore: %v", err)
	}
	polys, err := ReadPolyStore(&polyBuf)
	if err != nil {
		t.Fatalf("ReadPolyStore: %v", err)
	}
	if len(polys) != e.Store().Len() {
		t.Fatalf("decoded %d polynomials, want %d", len(polys), e.Store().Len())
	}
	for i, p := range polys {
		if !p.Equal(e.Store().Poly(int32(i))) {
			t.Errorf("poly[%d] = %v, want %v", i, p, e.Store().Poly(int32(i)))
		}
	}

	var matBuf bytes.Buffer
	if err := WriteMatrix(&matBuf, e, z1); err != nil {
		t.Fatalf("WriteMatrix: %v", err)
	}
	rows, err := ReadMatrix(&matBuf, int(z1)+1)
	if err != nil {
		t.Fatalf("ReadMatrix: %v", err)
	}

	// z1's row lists only the primitive x below it in length. z0 and
	// z0b are ImaginaryTypeI ascents at z1's only descent, so neither
	// is primitive (their P_{x,z1}=1 comes from primitivizing to z1
	// itself) and the row is empty.
	row := rows[z1]
	if len(row.PolyIndex) != 0 {
		t.Fatalf("z1's matrix row has %d entries, want 0", len(row.PolyIndex))
	}
	for _, idx := range row.PolyIndex {
		if !polys[idx].Equal(poly.One) {
			t.Errorf("z1's row entry = %v, want the constant 1", polys[idx])
		}
	}
}
