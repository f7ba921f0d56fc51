package kl

import (
	"github.com/atlasklv/klv/block"
	"github.com/atlasklv/klv/klsupport"
	"github.com/atlasklv/klv/poly"
)

// directRecursionStep computes the pre-mu-correction value of P_{x,y}
// for an extremal x, from the status of x at the chosen generator s
// (spec §4.6.2's table). Every status reachable here is a descent
// kind, since x is extremal for y and s is a descent of y.
func (e *Engine) directRecursionStep(x block.Elt, s int, sy block.Elt) (poly.Polynomial, error) {
	pxsy := e.klPol(x, sy)
	switch e.b.Descent(x, s) {
	case block.ImaginaryCompact:
		return poly.AddShift(pxsy, pxsy, 1) // (q+1)*P_{x,sy}
	case block.ComplexDescent:
		sx := e.b.Cross(s, x)
		return poly.AddShift(e.klPol(sx, sy), pxsy, 1) // P_{sx,sy} + q*P_{x,sy}
	case block.RealTypeI:
		x1, x2 := e.b.InverseCayley(s, x)
		sum, err := poly.Add(e.klPol(x1, sy), e.klPol(x2, sy))
		if err != nil {
			return nil, err
		}
		sum, err = poly.AddShift(sum, pxsy, 1) // + q*P_{x,sy}
		if err != nil {
			return nil, err
		}
		return poly.SubShift(sum, pxsy, 0) // - P_{x,sy}
	case block.RealTypeII:
		x1, _ := e.b.InverseCayley(s, x)
		sx := e.b.Cross(s, x)
		sum, err := poly.AddShift(e.klPol(x1, sy), pxsy, 1) // P_{x1,sy} + q*P_{x,sy}
		if err != nil {
			return nil, err
		}
		return poly.SubShift(sum, e.klPol(sx, sy), 0) // - P_{sx,sy}
	default:
		panic("kl: extremal x has a non-descent status at the row's recursion generator")
	}
}

// directRecursionRow fills y's row by direct recursion on generator s
// (spec §4.6.2, §4.6.3, §4.6.7): one pass over the extremal row
// applying directRecursionStep and the mu-correction from sy's
// already-filled mu-row, then a pass extending to primitive
// non-extremal x via the Cayley-sum identity.
func (e *Engine) directRecursionRow(y block.Elt, s int, sy block.Elt) (*rowState, block.Elt, error) {
	prim := klsupport.PrimitiveRow(e.b, y)
	ext := klsupport.ExtremalRow(e.b, y)
	polyIdx := make([]int32, prim.Len())
	var mu []muEntry

	syMu := e.rows[sy].mu
	for i := 0; i < ext.Len(); i++ {
		x := ext.At(i)
		step, err := e.directRecursionStep(x, s, sy)
		if err != nil {
			return nil, x, err
		}
		corr, err := e.muRowSum(x, syMu, true, s, e.b.Length(y), 0)
		if err != nil {
			return nil, x, err
		}
		p, err := poly.SubShift(step, corr, 0)
		if err != nil {
			return nil, x, err
		}
		j, ok := prim.Index(x)
		if !ok {
			panic("kl: extremal x missing from its own primitive row")
		}
		polyIdx[j] = e.store.Match(p)
		if coef, yes := muContribution(e.b.Length(x), e.b.Length(y), p); yes {
			mu = append(mu, muEntry{z: x, mu: coef})
		}
	}

	descentSet := klsupport.DescentSet(e.b, y)
	for j := 0; j < prim.Len(); j++ {
		x := prim.At(j)
		if klsupport.IsExtremal(e.b, x, descentSet) {
			continue
		}
		sAsc, ok := klsupport.AscentDescent(e.b, x, descentSet)
		if !ok {
			panic("kl: primitive non-extremal x has no witnessing ImaginaryTypeII ascent")
		}
		c1, c2 := e.b.Cayley(sAsc, x)
		p, err := poly.Add(e.klPol(c1, y), e.klPol(c2, y))
		if err != nil {
			return nil, x, err
		}
		polyIdx[j] = e.store.Match(p)
	}

	mu = mergeDownSet(e.b, y, mu)
	return &rowState{prim: prim, polyIdx: polyIdx, mu: mu}, y, nil
}
