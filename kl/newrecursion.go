package kl

import (
	"github.com/atlasklv/klv/block"
	"github.com/atlasklv/klv/klsupport"
	"github.com/atlasklv/klv/poly"
)

// niceAndRealStep computes P_{x,y} for the nice-and-real case (spec
// §4.6.4 step 2), given mu-sum(x,y,s) already computed.
func (e *Engine) niceAndRealStep(x, y block.Elt, s int, muSum poly.Polynomial) (poly.Polynomial, error) {
	switch e.b.Descent(x, s) {
	case block.ComplexAscent:
		sx := e.b.Cross(s, x)
		return poly.SubShift(muSum, e.klPol(sx, y), 1) // muSum - q*P_{sx,y}
	case block.ImaginaryTypeII:
		x1, x2 := e.b.Cayley(s, x)
		sum, err := poly.Add(e.klPol(x1, y), e.klPol(x2, y))
		if err != nil {
			return nil, err
		}
		pol, err := poly.Add(muSum, sum) // muSum + sum
		if err != nil {
			return nil, err
		}
		pol, err = poly.SubShift(pol, sum, 1) // - q*sum
		if err != nil {
			return nil, err
		}
		return poly.Divide(pol, 2)
	case block.ImaginaryCompact:
		maxDeg := (e.b.Length(y) - e.b.Length(x) - 1) / 2
		return poly.QuotientByPlusOne(muSum, maxDeg)
	default:
		panic("kl: nice-and-real x has an unexpected status at the chosen generator")
	}
}

// endgamePSxY computes P_{cross(s,x),y} directly via the §4.6.3
// Cayley-sum identity at t, without needing cross(s,x) to be a
// separately stored row entry: t is ImaginaryTypeI (single Cayley
// image) or ImaginaryTypeII (two) for sx.
func (e *Engine) endgamePSxY(sx, y block.Elt, t int) (poly.Polynomial, error) {
	c1, c2 := e.b.Cayley(t, sx)
	if c2 == block.Undef {
		return e.klPol(c1, y), nil
	}
	return poly.Add(e.klPol(c1, y), e.klPol(c2, y))
}

// endgameStep computes P_{x,y} for the endgame-pair case (spec §4.6.4
// step 3).
func (e *Engine) endgameStep(x, y block.Elt, s, t int, muSum poly.Polynomial) (poly.Polynomial, error) {
	xPrime, _ := e.b.Cayley(s, x)
	pxp := e.klPol(xPrime, y)
	pol, err := poly.Add(muSum, pxp) // muSum + P_{x',y}
	if err != nil {
		return nil, err
	}
	pol, err = poly.SubShift(pol, pxp, 1) // - q*P_{x',y}
	if err != nil {
		return nil, err
	}
	sx := e.b.Cross(s, x)
	psxy, err := e.endgamePSxY(sx, y, t)
	if err != nil {
		return nil, err
	}
	return poly.SubShift(pol, psxy, 0) // - P_{sx,y}
}

// newRecursionRow fills y's row when every descent of y is RealTypeII
// (spec §4.6.4): the primitive row is scanned in decreasing order of
// position (decreasing length), with y itself seeded as the identity
// before the scan and the mu-row accumulated as it goes.
func (e *Engine) newRecursionRow(y block.Elt) (*rowState, block.Elt, error) {
	prim := klsupport.PrimitiveRow(e.b, y)
	polyIdx := make([]int32, prim.Len())
	descentSet := klsupport.DescentSet(e.b, y)

	self := prim.SelfIndex()
	polyIdx[self] = e.store.Match(poly.One)

	var mu []muEntry // accumulated in decreasing length (reverse element) order
	ly := e.b.Length(y)

	for j := self - 1; j >= 0; j-- {
		x := prim.At(j)

		var p poly.Polynomial
		var err error

		if sAsc, ok := klsupport.AscentDescent(e.b, x, descentSet); ok {
			c1, c2 := e.b.Cayley(sAsc, x)
			p, err = poly.Add(e.klPol(c1, y), e.klPol(c2, y))
		} else if s, ok := firstNiceAndReal(e.b, x, y); ok {
			var ms poly.Polynomial
			ms, err = e.muRowSum(x, mu, false, s, ly, 1)
			if err == nil {
				p, err = e.niceAndRealStep(x, y, s, ms)
			}
		} else if s, t, ok := firstEndgamePair(e.b, x, y); ok {
			var ms poly.Polynomial
			ms, err = e.muRowSum(x, mu, false, s, ly, 1)
			if err == nil {
				p, err = e.endgameStep(x, y, s, t, ms)
			}
		} else {
			p = poly.Zero
		}
		if err != nil {
			return nil, x, err
		}

		polyIdx[j] = e.store.Match(p)
		if coef, yes := muContribution(e.b.Length(x), ly, p); yes {
			mu = append(mu, muEntry{z: x, mu: coef})
		}
	}

	// mu was accumulated from longest to shortest x; reverse it to the
	// ascending-by-element convention before merging the down-set.
	for i, j := 0, len(mu)-1; i < j; i, j = i+1, j-1 {
		mu[i], mu[j] = mu[j], mu[i]
	}
	mu = mergeDownSet(e.b, y, mu)

	return &rowState{prim: prim, polyIdx: polyIdx, mu: mu}, y, nil
}
