// Package poly implements dense, non-negative-integer-coefficient
// polynomials over q, and a hash-consed store of them, as used by the
// KLV polynomial engine. A Polynomial is its coefficient sequence,
// lowest degree first, with no trailing zero coefficient; the zero
// polynomial is the empty sequence.
package poly

import "github.com/atlasklv/klv/internal/fail"

// Coeff is a fixed-width non-negative coefficient. Overflow of this
// width is a NumericOverflow error, not an arbitrary-precision
// fallback: the system deliberately bounds coefficients to machine
// integers (spec Non-goal: arbitrary precision).
type Coeff uint32

// MaxCoeff is the largest representable coefficient; arithmetic that
// would exceed it fails with fail.NumericOverflow.
const MaxCoeff = Coeff(1<<32 - 1)

// Polynomial is a dense coefficient sequence, lowest degree first. The
// highest-index entry, if any, is non-zero. nil and an empty slice
// both represent the zero polynomial.
type Polynomial []Coeff

// Zero is the zero polynomial.
var Zero = Polynomial(nil)

// One is the constant polynomial 1.
var One = Polynomial{1}

// IsZero reports whether p is the zero polynomial.
func (p Polynomial) IsZero() bool { return len(p) == 0 }

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Polynomial) Degree() int { return len(p) - 1 }

// Coefficient returns the coefficient of q^d in p, or 0 if d is out of
// range.
func (p Polynomial) Coefficient(d int) Coeff {
	if d < 0 || d >= len(p) {
		return 0
	}
	return p[d]
}

// trim drops trailing zero coefficients so the result carries no
// trailing zero, per the representation invariant. An all-zero input
// yields nil, the same value as Zero.
func trim(c []Coeff) Polynomial {
	n := len(c)
	for n > 0 && c[n-1] == 0 {
		n--
	}
	if n == 0 {
		return nil
	}
	return Polynomial(c[:n])
}

// Clone returns an independent copy of p.
func (p Polynomial) Clone() Polynomial {
	if len(p) == 0 {
		return nil
	}
	c := make(Polynomial, len(p))
	copy(c, p)
	return c
}

// Equal reports whether p and q have identical coefficient sequences.
func (p Polynomial) Equal(q Polynomial) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

func addCoeff(a, b Coeff) (Coeff, error) {
	s := a + b
	if s < a {
		return 0, fail.NumericOverflow
	}
	return s, nil
}

// Add returns p + q. It allocates a new result; it does not mutate
// either operand. The shift/scale variants below follow the same
// pure-value style.
func Add(p, q Polynomial) (Polynomial, error) {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make([]Coeff, n)
	var err error
	for i := 0; i < n; i++ {
		out[i], err = addCoeff(p.Coefficient(i), q.Coefficient(i))
		if err != nil {
			return nil, err
		}
	}
	return trim(out), nil
}

// AddShift returns p + q*x^d, d >= 0.
func AddShift(p, q Polynomial, d int) (Polynomial, error) {
	if d < 0 {
		panic("poly: negative shift")
	}
	n := len(p)
	if len(q)+d > n {
		n = len(q) + d
	}
	out := make([]Coeff, n)
	copy(out, p)
	var err error
	for i, c := range q {
		out[i+d], err = addCoeff(out[i+d], c)
		if err != nil {
			return nil, err
		}
	}
	return trim(out), nil
}

// AddShiftScale returns p + mu*q*x^d, d >= 0, mu >= 0. Overflow during
// the scale-multiply or the add is reported as NumericOverflow.
func AddShiftScale(p, q Polynomial, d int, mu Coeff) (Polynomial, error) {
	if d < 0 {
		panic("poly: negative shift")
	}
	if mu == 0 || q.IsZero() {
		return p.Clone(), nil
	}
	n := len(p)
	if len(q)+d > n {
		n = len(q) + d
	}
	out := make([]Coeff, n)
	copy(out, p)
	for i, c := range q {
		scaled := uint64(c) * uint64(mu)
		if scaled > uint64(MaxCoeff) {
			return nil, fail.NumericOverflow
		}
		sum := uint64(out[i+d]) + scaled
		if sum > uint64(MaxCoeff) {
			return nil, fail.NumericOverflow
		}
		out[i+d] = Coeff(sum)
	}
	return trim(out), nil
}

// SubShift returns p - q*x^d, d >= 0. It fails with NumericUnderflow
// if any resulting coefficient would go negative.
func SubShift(p, q Polynomial, d int) (Polynomial, error) {
	if d < 0 {
		panic("poly: negative shift")
	}
	n := len(p)
	if len(q)+d > n {
		n = len(q) + d
	}
	out := make([]Coeff, n)
	copy(out, p)
	for i, c := range q {
		if out[i+d] < c {
			return nil, fail.NumericUnderflow
		}
		out[i+d] -= c
	}
	return trim(out), nil
}

// SubShiftScale returns p - mu*q*x^d, d >= 0, mu >= 0: the mu-weighted
// counterpart of SubShift. The KL engine's mu-correction does not call
// it; it sums with AddShiftScale and subtracts once with SubShift.
// Fails with NumericOverflow if the scale-multiply overflows, or
// NumericUnderflow if any resulting coefficient would go negative.
func SubShiftScale(p, q Polynomial, d int, mu Coeff) (Polynomial, error) {
	if d < 0 {
		panic("poly: negative shift")
	}
	if mu == 0 || q.IsZero() {
		return p.Clone(), nil
	}
	n := len(p)
	if len(q)+d > n {
		n = len(q) + d
	}
	out := make([]Coeff, n)
	copy(out, p)
	for i, c := range q {
		scaled := uint64(c) * uint64(mu)
		if scaled > uint64(MaxCoeff) {
			return nil, fail.NumericOverflow
		}
		if uint64(out[i+d]) < scaled {
			return nil, fail.NumericUnderflow
		}
		out[i+d] -= Coeff(scaled)
	}
	return trim(out), nil
}

// Divide returns p / c exactly. It fails with NumericNondivisible if
// any coefficient of p is not a multiple of c.
func Divide(p Polynomial, c Coeff) (Polynomial, error) {
	if c == 0 {
		panic("poly: division by zero")
	}
	out := make([]Coeff, len(p))
	for i, v := range p {
		if v%c != 0 {
			return nil, fail.NumericNondivisible
		}
		out[i] = v / c
	}
	return trim(out), nil
}

// QuotientByPlusOne divides p by (q+1) exactly, using the standard
// linear recurrence: writing p = sum a_i q^i and the quotient as
// b_0 + b_1 q + ..., b_i = a_i - b_{i-1} (b_{-1} = 0), and the final
// remainder a_n - b_{n-1} must be zero. maxDegree bounds the quotient
// degree the caller expects (typically floor((lengthDiff-1)/2)); a
// quotient of higher degree is not truncated but fails with
// NumericUnderflow. Fails with NumericUnderflow if the remainder is
// non-zero, mirroring
// the failure mode spec'd for this routine (it is a subtraction-based
// recurrence, so a "doesn't divide" failure manifests as an attempted
// negative coefficient or a non-zero remainder).
func QuotientByPlusOne(p Polynomial, maxDegree int) (Polynomial, error) {
	if p.IsZero() {
		return nil, nil
	}
	n := len(p)
	quotDeg := n - 2 // deg(p) - 1, since deg(q+1) = 1
	if quotDeg < 0 {
		// p is a nonzero constant; (q+1) cannot divide it exactly
		// unless p == 0, which was handled above.
		return nil, fail.NumericUnderflow
	}
	b := make([]Coeff, quotDeg+1)
	var prev Coeff
	for i := 0; i <= quotDeg; i++ {
		a := p.Coefficient(i)
		if a < prev {
			return nil, fail.NumericUnderflow
		}
		b[i] = a - prev
		prev = b[i]
	}
	// Remainder check: coefficient of q^(n-1) in p must equal b[quotDeg].
	if p.Coefficient(quotDeg+1) != prev {
		return nil, fail.NumericUnderflow
	}
	if quotDeg > maxDegree {
		// The recurrence produced a higher-degree quotient than the
		// caller's bound allows; this indicates the division was not
		// actually exact with a degree-bounded quotient.
		for i := maxDegree + 1; i <= quotDeg; i++ {
			if b[i] != 0 {
				return nil, fail.NumericUnderflow
			}
		}
	}
	return trim(b), nil
}
