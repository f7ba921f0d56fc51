// Package kgb defines the read-only view of a one-sided parameter set
// (orbits of K on G/B, or the analogous dual-side set) that the block
// builder consumes. Construction of an actual KGB structure from a
// complex reductive group and a real form is an external collaborator
// (spec §6.1); this package only fixes the interface and provides a
// small in-memory implementation used by tests and the low-rank
// scenarios.
package kgb

// Elt is an index into a one-sided parameter set.
type Elt int32

// Undef is the sentinel marking an absent KGB element, e.g. a Cayley
// transform target when the generator is not imaginary-noncompact.
const Undef Elt = -1

// Status is the status of a simple generator at a KGB element, named
// the way kgb.h's gradings::Status is: each generator is one of
// Complex, ImaginaryCompact, ImaginaryNoncompact, or Real.
type Status int8

const (
	Complex Status = iota
	ImaginaryCompact
	ImaginaryNoncompact
	Real
)

func (s Status) String() string {
	switch s {
	case Complex:
		return "Complex"
	case ImaginaryCompact:
		return "ImaginaryCompact"
	case ImaginaryNoncompact:
		return "ImaginaryNoncompact"
	case Real:
		return "Real"
	default:
		return "Status(?)"
	}
}

// Involution is an opaque twisted-involution token. Equality and word
// expansion are provided by the external Weyl-group word machinery
// (spec §6.1); this package only needs comparable values and a way to
// expand one to the letters of a reduced word.
type Involution interface {
	comparable
}

// View is the read-only capability set a block builder needs from one
// side's parameter set (spec §4.2). Implementations are never asked to
// mutate anything; View is consumed purely functionally.
type View interface {
	// Size is the number of parameters (KGB elements) in the set.
	Size() int

	// Rank is the semisimple rank, i.e. the number of simple
	// generators.
	Rank() int

	// Length returns the KGB length of x.
	Length(x Elt) int

	// Status returns the status of generator s at x.
	Status(s int, x Elt) Status

	// Cross returns the cross-action image of generator s at x. Always
	// defined.
	Cross(s int, x Elt) Elt

	// Cayley returns the Cayley transform image of generator s at x,
	// or Undef if Status(s,x) != ImaginaryNoncompact. It is
	// single-valued on the KGB side regardless of whether the block
	// builder will classify the pair as ImaginaryTypeI or
	// ImaginaryTypeII: that distinction is resolved by the dual side's
	// InverseCayley (see block.Classify, block.Build).
	Cayley(s int, x Elt) Elt

	// InverseCayley returns the inverse-Cayley preimage(s) of
	// generator s at x. Only defined when Status(s,x)==Real; the
	// second component is Undef on RealTypeII.
	InverseCayley(s int, x Elt) (first, second Elt)

	// IsDescent reports whether s is a descent for x in the sense used
	// by the Complex case of the classifier table (spec §4.3): true
	// iff the generator lowers x under the relevant ordering.
	IsDescent(s int, x Elt) bool

	// IsAscent is the complement of IsDescent for Complex-status
	// generators.
	IsAscent(s int, x Elt) bool

	// InvolutionOf returns x's twisted involution.
	InvolutionOf(x Elt) int

	// CartanClass returns the Cartan class tag of x.
	CartanClass(x Elt) int

	// TauPacket returns the range [lo, hi) of elements sharing
	// involution inv, under the canonical enumeration order.
	TauPacket(inv int) (lo, hi Elt)

	// NthInvolution returns the token for the i-th involution in the
	// view's fixed enumeration order.
	NthInvolution(i int) int

	// NrInvolutions is the number of distinct involutions.
	NrInvolutions() int

	// PacketSize returns the size of the R-packet for involution inv.
	PacketSize(inv int) int
}
