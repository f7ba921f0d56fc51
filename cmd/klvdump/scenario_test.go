package main

import "testing"

// TestBuildA1Compact checks spec scenario 2: a single block element
// with a trivial table (cross(0,z)=z, no Cayley link in either
// direction since the generator is ImaginaryCompact on both sides).
func TestBuildA1Compact(t *testing.T) {
	b := buildA1Compact()
	if b.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", b.Size())
	}
	if got := b.Cross(0, 0); got != 0 {
		t.Errorf("Cross(0,0) = %d, want 0", got)
	}
	fst, snd := b.Cayley(0, 0)
	if fst != -1 || snd != -1 {
		t.Errorf("Cayley(0,0) = (%d,%d), want (Undef,Undef)", fst, snd)
	}
}

// TestBuildA1Split checks the fixture used by a1-split has its three
// block elements (z0, z0b, z1).
func TestBuildA1Split(t *testing.T) {
	b := buildA1Split()
	if b.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", b.Size())
	}
}

func TestLookupScenarioUnknown(t *testing.T) {
	if _, err := lookupScenario("does-not-exist"); err == nil {
		t.Errorf("lookupScenario of an unknown name returned no error")
	}
}
