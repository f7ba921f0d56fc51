// Package klsupport provides the descent-set bookkeeping the KL engine
// recursion needs on top of a built block: extremal/primitive
// filtering, primitive-row indexing, and the down-set of an element
// (spec §4.5).
package klsupport

import (
	"sort"

	"github.com/atlasklv/klv/block"
)

// DescentSet returns the bitmask of generators that are a descent of
// y.
func DescentSet(b *block.Block, y block.Elt) uint64 {
	var mask uint64
	for s := 0; s < b.Rank(); s++ {
		if b.Descent(y, s).IsDescent() {
			mask |= 1 << uint(s)
		}
	}
	return mask
}

// IsExtremal reports whether every descent of y (as given by
// descentSet) is also a descent of x.
func IsExtremal(b *block.Block, x block.Elt, descentSet uint64) bool {
	for s := 0; s < b.Rank(); s++ {
		if descentSet&(1<<uint(s)) == 0 {
			continue
		}
		if !b.Descent(x, s).IsDescent() {
			return false
		}
	}
	return true
}

// IsPrimitive reports whether every descent of y is either a descent
// of x or an ImaginaryTypeII ascent of x.
func IsPrimitive(b *block.Block, x block.Elt, descentSet uint64) bool {
	for s := 0; s < b.Rank(); s++ {
		if descentSet&(1<<uint(s)) == 0 {
			continue
		}
		d := b.Descent(x, s)
		if !d.IsDescent() && d != block.ImaginaryTypeII {
			return false
		}
	}
	return true
}

// AscentDescent returns a generator that is a descent of y and an
// ImaginaryTypeII ascent of x: the witness that x is primitive but not
// extremal for y. ok is false if x is extremal (no such s exists).
func AscentDescent(b *block.Block, x block.Elt, descentSet uint64) (s int, ok bool) {
	for s := 0; s < b.Rank(); s++ {
		if descentSet&(1<<uint(s)) == 0 {
			continue
		}
		if b.Descent(x, s) == block.ImaginaryTypeII {
			return s, true
		}
	}
	return 0, false
}

// Row is the set of x (0 <= x <= y, ascending) that are primitive for
// y, together with the ordinal ("prim_index") of each.
type Row struct {
	elements []block.Elt
}

// PrimitiveRow builds the primitive row for y: the primitive x with
// length(x) < length(y), in ascending order, followed by y itself as
// the final element. y is always primitive for itself (every descent
// of y is trivially a descent of y), but is never found by the
// length(x) < length(y) scan, so it is appended explicitly rather than
// caught by the loop.
func PrimitiveRow(b *block.Block, y block.Elt) Row {
	descentSet := DescentSet(b, y)
	var out []block.Elt
	for x := block.Elt(0); x < y; x++ {
		if b.Length(x) >= b.Length(y) {
			break
		}
		if IsPrimitive(b, x, descentSet) {
			out = append(out, x)
		}
	}
	out = append(out, y)
	return Row{elements: out}
}

// ExtremalRow is the extremal subset of PrimitiveRow(b,y) restricted
// to length(x) < length(y), in the same ascending order, with y itself
// appended as the final element (extremal for itself for the same
// reason it is primitive for itself).
func ExtremalRow(b *block.Block, y block.Elt) Row {
	descentSet := DescentSet(b, y)
	var out []block.Elt
	for x := block.Elt(0); x < y; x++ {
		if b.Length(x) >= b.Length(y) {
			break
		}
		if IsExtremal(b, x, descentSet) {
			out = append(out, x)
		}
	}
	out = append(out, y)
	return Row{elements: out}
}

// Elements returns the row's elements in ascending order.
func (r Row) Elements() []block.Elt { return r.elements }

// Len is the number of elements in the row.
func (r Row) Len() int { return len(r.elements) }

// At returns the i-th element.
func (r Row) At(i int) block.Elt { return r.elements[i] }

// Index returns the prim_index of x in the row: its ordinal among the
// row's elements, or ok=false if x is not present.
func (r Row) Index(x block.Elt) (i int, ok bool) {
	i = sort.Search(len(r.elements), func(i int) bool { return r.elements[i] >= x })
	if i < len(r.elements) && r.elements[i] == x {
		return i, true
	}
	return 0, false
}

// SelfIndex is the ordinal of y within its own primitive row: always
// the last element, since y is primitive for itself and nothing
// primitive for y can exceed its length.
func (r Row) SelfIndex() int { return len(r.elements) - 1 }

// DownSet returns the elements reached from y by a single descent of
// kind ComplexDescent, RealTypeI (both inverse-Cayley images), or
// RealTypeII (its single inverse-Cayley image), each implicitly
// contributing mu(x,y)=1 (spec §4.5, §4.6.6). The result is sorted
// ascending with duplicates removed.
func DownSet(b *block.Block, y block.Elt) []block.Elt {
	seen := make(map[block.Elt]bool)
	var out []block.Elt
	add := func(x block.Elt) {
		if x == block.Undef || seen[x] {
			return
		}
		seen[x] = true
		out = append(out, x)
	}
	for s := 0; s < b.Rank(); s++ {
		switch b.Descent(y, s) {
		case block.ComplexDescent:
			add(b.Cross(s, y))
		case block.RealTypeI:
			f, snd := b.InverseCayley(s, y)
			add(f)
			add(snd)
		case block.RealTypeII:
			f, _ := b.InverseCayley(s, y)
			add(f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Primitivize reduces x with respect to y's descent set, following
// the loop of spec §4.5: while some descent of y is an ascent of x,
// apply the corresponding move. It returns one of three outcomes:
//
//   - x == y: Outcome is Identity, the P_{y,y}=1 sentinel.
//   - length(x) >= length(y) and x != y: Outcome is Vanishes, P=0.
//   - x is primitive (possibly non-extremal): Outcome is Reduced, with
//     Result holding the reduced element (extremal or not — callers
//     distinguish via IsExtremal/AscentDescent).
func Primitivize(b *block.Block, x, y block.Elt) (result block.Elt, outcome Outcome) {
	descentSet := DescentSet(b, y)
	for {
		if x == y {
			return x, Identity
		}
		if b.Length(x) >= b.Length(y) {
			return x, Vanishes
		}
		if IsPrimitive(b, x, descentSet) {
			return x, Reduced
		}
		s, ok := firstReducibleAscent(b, x, descentSet)
		if !ok {
			panic("klsupport: no reducing move found for a non-primitive x; inconsistent block")
		}
		switch b.Descent(x, s) {
		case block.ComplexAscent:
			x = b.Cross(s, x)
		case block.ImaginaryTypeI:
			x, _ = b.Cayley(s, x)
		default:
			panic("klsupport: unexpected status for a reducible ascent")
		}
	}
}

// Outcome classifies the result of Primitivize.
type Outcome int

const (
	Identity Outcome = iota
	Vanishes
	Reduced
)

// firstReducibleAscent finds a generator s, among the descents of y,
// that is a ComplexAscent or ImaginaryTypeI ascent of x: one with a
// defined single-valued move. ImaginaryTypeII ascents are not
// "reducible" here — they stop the Primitivize loop (x is already
// primitive by then) rather than being applied.
func firstReducibleAscent(b *block.Block, x block.Elt, descentSet uint64) (s int, ok bool) {
	for s := 0; s < b.Rank(); s++ {
		if descentSet&(1<<uint(s)) == 0 {
			continue
		}
		switch b.Descent(x, s) {
		case block.ComplexAscent, block.ImaginaryTypeI:
			return s, true
		}
	}
	return 0, false
}
