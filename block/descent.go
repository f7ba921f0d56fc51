package block

import "github.com/atlasklv/klv/kgb"

// Status is the descent status of a block element at a simple
// generator: one of eight kinds (spec §3, §4.3).
type Status int8

const (
	ComplexAscent Status = iota
	ComplexDescent
	ImaginaryTypeI
	ImaginaryTypeII
	ImaginaryCompact
	RealTypeI
	RealTypeII
	RealNonparity
)

func (d Status) String() string {
	switch d {
	case ComplexAscent:
		return "ComplexAscent"
	case ComplexDescent:
		return "ComplexDescent"
	case ImaginaryTypeI:
		return "ImaginaryTypeI"
	case ImaginaryTypeII:
		return "ImaginaryTypeII"
	case ImaginaryCompact:
		return "ImaginaryCompact"
	case RealTypeI:
		return "RealTypeI"
	case RealTypeII:
		return "RealTypeII"
	case RealNonparity:
		return "RealNonparity"
	default:
		return "Status(?)"
	}
}

// IsDescent reports whether d is one of the four descent kinds:
// ComplexDescent, ImaginaryCompact, RealTypeI, RealTypeII.
func (d Status) IsDescent() bool {
	switch d {
	case ComplexDescent, ImaginaryCompact, RealTypeI, RealTypeII:
		return true
	default:
		return false
	}
}

// IsStrictDescent is IsDescent excluding ImaginaryCompact.
func (d Status) IsStrictDescent() bool {
	return d.IsDescent() && d != ImaginaryCompact
}

// Classify computes the descent status of the pair (x,y) at generator
// s, from the real-side view K and the dual-side view Kd, following
// the truth table of spec §4.3. Only the eight listed combinations of
// (status on x, status on y) occur; any other combination indicates
// inconsistent KGB data and is a programmer error, not a recoverable
// condition.
func Classify(s int, x, y kgb.Elt, K, Kd kgb.View) Status {
	sx := K.Status(s, x)
	sy := Kd.Status(s, y)

	switch {
	case sx == kgb.Complex && sy == kgb.Complex:
		if K.IsDescent(s, x) {
			return ComplexDescent
		}
		return ComplexAscent

	case sx == kgb.ImaginaryNoncompact && sy == kgb.Real:
		if K.Cross(s, x) != x {
			return ImaginaryTypeI
		}
		return ImaginaryTypeII

	case sx == kgb.Real && sy == kgb.ImaginaryNoncompact:
		if Kd.Cross(s, y) != y {
			return RealTypeII
		}
		return RealTypeI

	case sx == kgb.Real && sy == kgb.Real:
		return RealNonparity

	case sx == kgb.ImaginaryCompact && sy == kgb.ImaginaryCompact:
		return ImaginaryCompact

	default:
		panic("block: inconsistent KGB status pair for (x,y,s); views are not dual")
	}
}
