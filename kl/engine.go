// Package kl computes Kazhdan-Lusztig-Vogan polynomials over a built
// block: for each y, in increasing order of length, it fills the
// primitive row of P_{x,y} and the accompanying mu-coefficients,
// using the direct recursion when some descent of y is ComplexDescent
// or RealTypeI, and the new recursion (spec §4.6.4) when every descent
// of y is RealTypeII (spec §4.6).
package kl

import (
	"github.com/atlasklv/klv/block"
	"github.com/atlasklv/klv/internal/fail"
	"github.com/atlasklv/klv/klsupport"
	"github.com/atlasklv/klv/poly"
)

// muEntry is one nonzero mu-coefficient in a row's mu-row: mu(z,y) for
// the row belonging to y.
type muEntry struct {
	z  block.Elt
	mu poly.Coeff
}

// rowState is everything retained for one y once its row is filled:
// the primitive row itself, the polynomial-store index of P_{x,y} for
// each primitive x (parallel to prim.Elements()), and the mu-row,
// sorted ascending by z (spec §4.6.7).
type rowState struct {
	prim    klsupport.Row
	polyIdx []int32
	mu      []muEntry
}

// Engine fills and holds the KL data (P_{x,y} and mu(x,y)) for a
// block, one row per y, in a hash-consed polynomial store.
type Engine struct {
	b     *block.Block
	store *poly.Store
	rows  []*rowState
}

// NewEngine returns an Engine over b with an empty polynomial store
// (d_zero and d_one pre-installed, per poly.NewStore).
func NewEngine(b *block.Block) *Engine {
	return &Engine{b: b, store: poly.NewStore(), rows: make([]*rowState, b.Size())}
}

// Block returns the block this engine was built over.
func (e *Engine) Block() *block.Block { return e.b }

// Filled reports whether y's row has been computed.
func (e *Engine) Filled(y block.Elt) bool { return e.rows[y] != nil }

// P returns P_{x,y}, the KL polynomial of the pair (x,y). y's row must
// already be filled (Fill must have been called with a limit at least
// y); this is the public counterpart of the internal klPol used by the
// recursion itself.
func (e *Engine) P(x, y block.Elt) poly.Polynomial { return e.klPol(x, y) }

// Mu returns mu(x,y), or 0 if x does not appear in y's mu-row.
func (e *Engine) Mu(x, y block.Elt) poly.Coeff {
	row := e.rows[y]
	if row == nil {
		panic("kl: Mu queried before y's row was filled")
	}
	for _, m := range row.mu {
		if m.z == x {
			return m.mu
		}
	}
	return 0
}

// MuRow returns the sorted (ascending by element) mu-row of y: every x
// with mu(x,y) != 0.
func (e *Engine) MuRow(y block.Elt) []block.Elt {
	row := e.rows[y]
	if row == nil {
		panic("kl: MuRow queried before y's row was filled")
	}
	out := make([]block.Elt, len(row.mu))
	for i, m := range row.mu {
		out[i] = m.z
	}
	return out
}

// klPol looks up P_{x,y}, reducing x against y's descent set first
// (spec §4.5): the identity and vanishing outcomes never touch the
// store, and a Reduced outcome is always present in y's already-filled
// primitive row.
func (e *Engine) klPol(x, y block.Elt) poly.Polynomial {
	rx, outcome := klsupport.Primitivize(e.b, x, y)
	switch outcome {
	case klsupport.Identity:
		return poly.One
	case klsupport.Vanishes:
		return poly.Zero
	}
	row := e.rows[y]
	if row == nil {
		panic("kl: klPol queried a row that has not been filled yet")
	}
	i, ok := row.prim.Index(rx)
	if !ok {
		panic("kl: primitivized element missing from its own primitive row")
	}
	return e.store.Poly(row.polyIdx[i])
}

// PolyIndex returns the polynomial-store index of P_{x,y} (0 for the
// zero polynomial, 1 for the constant 1, per poly.Store's pre-installed
// entries), without materializing the polynomial itself. y's row must
// already be filled. Used by the dump codec's matrix file (spec §6.3),
// which records store indices rather than expanded polynomials.
func (e *Engine) PolyIndex(x, y block.Elt) int32 {
	rx, outcome := klsupport.Primitivize(e.b, x, y)
	switch outcome {
	case klsupport.Identity:
		return poly.DOne
	case klsupport.Vanishes:
		return poly.DZero
	}
	row := e.rows[y]
	if row == nil {
		panic("kl: PolyIndex queried a row that has not been filled yet")
	}
	i, ok := row.prim.Index(rx)
	if !ok {
		panic("kl: primitivized element missing from its own primitive row")
	}
	return row.polyIdx[i]
}

// Store returns the engine's polynomial store, for dumping §6.4's
// polynomial-store file.
func (e *Engine) Store() *poly.Store { return e.store }

// Fill computes every row up to and including lastY, in increasing
// order of y (skipping rows already filled). On a NumericOverflow,
// NumericUnderflow, or NumericNondivisible failure it rolls the
// polynomial store and the set of filled rows back to their state
// before this call and returns a *fail.KLError naming the (x,y) pair
// being computed when the failure occurred (spec §4.6.8, §5).
func (e *Engine) Fill(lastY block.Elt) error {
	cp := e.store.Mark()
	saved := append([]*rowState(nil), e.rows...)

	var failX, failY block.Elt
	outer := fail.Maybe(func() {
		for y := block.Elt(0); y <= lastY; y++ {
			if e.rows[y] != nil {
				continue
			}
			row, x, err := e.buildRow(y)
			if err != nil {
				failX, failY = x, y
				panic(err.(fail.Error))
			}
			e.rows[y] = row
		}
	})
	if outer != nil {
		e.store.Rollback(cp)
		copy(e.rows, saved)
		return &fail.KLError{X: int(failX), Y: int(failY), Err: outer}
	}
	return nil
}

// buildRow fills the row for y, returning the element being processed
// when a poly arithmetic failure occurred (for KLError context).
func (e *Engine) buildRow(y block.Elt) (*rowState, block.Elt, error) {
	if s, sy, ok := firstDirectRecursion(e.b, y); ok {
		return e.directRecursionRow(y, s, sy)
	}
	return e.newRecursionRow(y)
}

// muRowSum computes sum_{z in row, decreasing by length(z)} mu(z,*) *
// q^d * P_{x,z}, d = (yLen - length(z) + extra) / 2, stopping as soon
// as length(z) <= length(x) (spec §4.6.5). row's storage order is
// given by ascending: true means row is sorted ascending by element
// (the final row.mu convention, so it is walked tail-first); false
// means row is already walked head-first (the order a new-recursion
// row accumulates it in, longest-length first, before its own final
// reversal).
func (e *Engine) muRowSum(x block.Elt, row []muEntry, ascending bool, s, yLen, extra int) (poly.Polynomial, error) {
	sum := poly.Zero
	lx := e.b.Length(x)
	n := len(row)
	for k := 0; k < n; k++ {
		var m muEntry
		if ascending {
			m = row[n-1-k]
		} else {
			m = row[k]
		}
		lz := e.b.Length(m.z)
		if lz <= lx {
			break
		}
		if !e.b.Descent(m.z, s).IsDescent() {
			continue
		}
		d := (yLen - lz + extra) / 2
		var err error
		sum, err = poly.AddShiftScale(sum, e.klPol(x, m.z), d, m.mu)
		if err != nil {
			return nil, err
		}
	}
	return sum, nil
}

// muContribution reports the mu-coefficient of x in y's row, if p has
// the maximal degree allowed by an odd length difference between x
// and y (spec §4.6.6, §4.6.7): floor((l(y)-l(x)-1)/2), only reachable
// when l(y)-l(x) is odd.
func muContribution(lx, ly int, p poly.Polynomial) (poly.Coeff, bool) {
	diff := ly - lx
	if diff <= 0 || diff%2 == 0 {
		return 0, false
	}
	maxDeg := (diff - 1) / 2
	if p.Degree() != maxDeg {
		return 0, false
	}
	return p.Coefficient(maxDeg), true
}

// mergeDownSet appends y's down-set (spec §4.6.6) to a mu-row, each
// with implicit coefficient 1, insertion-sorting by element so the
// result stays ascending (spec §4.6.4's final merge step).
func mergeDownSet(b *block.Block, y block.Elt, mu []muEntry) []muEntry {
	for _, x := range klsupport.DownSet(b, y) {
		found := false
		for _, m := range mu {
			if m.z == x {
				found = true
				break
			}
		}
		if found {
			continue
		}
		mu = append(mu, muEntry{z: x, mu: 1})
	}
	for i := 1; i < len(mu); i++ {
		for j := i; j > 0 && mu[j-1].z > mu[j].z; j-- {
			mu[j-1], mu[j] = mu[j], mu[j-1]
		}
	}
	return mu
}
