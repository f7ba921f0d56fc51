package wgraph

import (
	"testing"

	"github.com/atlasklv/klv/block"
	"github.com/atlasklv/klv/kgb"
	"github.com/atlasklv/klv/kl"
)

// buildRank1Split mirrors the fixture shared by block_test.go,
// klsupport_test.go and kl_test.go: z0, z0b at length 0 cross-paired,
// Cayley-transforming to z1 at length 1 with mu(z0,z1)=mu(z0b,z1)=1.
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

// TestBuildRank1Split checks spec scenario 1 (§8): an edge z0 -> z1 of
// weight 1 and an edge z0b -> z1 of weight 1 (z1's RealTypeI descent
// lands z0 and z0b in z1's mu-row with differing descent sets), with
// no edge between z0 and z0b (mu(z0,z0b) is never computed; they have
// the same length).
func TestBuildRank1Split(t *testing.T) {
	b, z0, z0b, z1 := buildRank1Split(t)
	e := kl.NewEngine(b)
	if err := e.Fill(z1); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	wg := Build(e)

	if w, ok := wg.Weight(z0, z1); !ok || w != 1 {
		t.Errorf("Weight(z0,z1) = %v, %v, want 1, true", w, ok)
	}
	if w, ok := wg.Weight(z0b, z1); !ok || w != 1 {
		t.Errorf("Weight(z0b,z1) = %v, %v, want 1, true", w, ok)
	}
	if _, ok := wg.Weight(z1, z0); ok {
		t.Errorf("Weight(z1,z0) exists, want no edge (z0's descent set is a subset check against an ImaginaryTypeI vertex, which never receives a downward edge from a length-1 RealTypeI y)")
	}
	if _, ok := wg.Weight(z0, z0b); ok {
		t.Errorf("Weight(z0,z0b) exists, want no edge between same-length elements")
	}
}

// TestCellsCoverAllVertices checks Cells partitions every block element
// into exactly one strongly connected component; with a single mu-edge
// direction throughout (z0->z1, z0b->z1, no back edges), every vertex
// is its own singleton cell.
func TestCellsCoverAllVertices(t *testing.T) {
	b, _, _, z1 := buildRank1Split(t)
	e := kl.NewEngine(b)
	if err := e.Fill(z1); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	wg := Build(e)
	cells := wg.Cells()

	total := 0
	for _, c := range cells {
		total += len(c)
		if len(c) != 1 {
			t.Errorf("cell %v has size %d, want 1 (no cycles in this fixture)", c, len(c))
		}
	}
	if total != b.Size() {
		t.Errorf("cells cover %d elements, want %d", total, b.Size())
	}
}
