package dump

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/atlasklv/klv/poly"
)

// zeroDegreeSentinel marks the zero polynomial's degree byte: its true
// degree (poly.Polynomial.Degree()) is -1, which does not fit the
// 1-byte degree field's natural 0..255 range of an actual polynomial
// degree, so it gets its own reserved value and no coefficient bytes
// follow it. Every other stored polynomial has a non-negative degree
// strictly less than this sentinel in any block of practical size.
const zeroDegreeSentinel = 0xFF

// WritePolyStore encodes store per spec §6.4: an 8-byte count, then
// (not specified by name in the spec's prose, but required for a
// reader to know how wide each variable-byte coefficient is before it
// reads the first one) a 1-byte coefficient width, then each
// polynomial as a 1-byte degree followed by (degree+1) coefficients of
// that width, little-endian.
func WritePolyStore(w io.Writer, store *poly.Store) error {
	bw := bufio.NewWriter(w)

	n := store.Len()
	width := 1
	for i := int32(0); i < int32(n); i++ {
		p := store.Poly(i)
		for _, c := range p {
			if need := coeffWidth(c); need > width {
				width = need
			}
		}
	}

	if err := binary.Write(bw, binary.LittleEndian, uint64(n)); err != nil {
		return err
	}
	if err := bw.WriteByte(byte(width)); err != nil {
		return err
	}

	for i := int32(0); i < int32(n); i++ {
		p := store.Poly(i)
		if p.IsZero() {
			if err := bw.WriteByte(zeroDegreeSentinel); err != nil {
				return err
			}
			continue
		}
		deg := p.Degree()
		if deg < 0 || deg >= zeroDegreeSentinel {
			return fmt.Errorf("dump: polynomial degree %d out of the 1-byte range", deg)
		}
		if err := bw.WriteByte(byte(deg)); err != nil {
			return err
		}
		for d := 0; d <= deg; d++ {
			if err := writeWidth(bw, uint32(p.Coefficient(d)), width); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// coeffWidth returns the minimum byte count needed to represent c.
func coeffWidth(c poly.Coeff) int {
	switch {
	case c <= 0xFF:
		return 1
	case c <= 0xFFFF:
		return 2
	case c <= 0xFFFFFF:
		return 3
	default:
		return 4
	}
}

func writeWidth(w io.ByteWriter, v uint32, width int) error {
	for i := 0; i < width; i++ {
		if err := w.WriteByte(byte(v)); err != nil {
			return err
		}
		v >>= 8
	}
	return nil
}

func readWidth(r io.ByteReader, width int) (uint32, error) {
	var v uint32
	for i := 0; i < width; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= uint32(b) << uint(8*i)
	}
	return v, nil
}

// ReadPolyStore decodes a polynomial-store file written by
// WritePolyStore, returning the polynomials in store order (index i in
// the slice is the i-th polynomial on disk; indices 0 and 1 are the
// zero and one polynomials by the same convention poly.Store uses).
func ReadPolyStore(r io.Reader) ([]poly.Polynomial, error) {
	br := bufio.NewReader(r)
	var n uint64
	if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	widthByte, err := br.ReadByte()
	if err != nil {
		return nil, err
	}
	width := int(widthByte)

	out := make([]poly.Polynomial, n)
	for i := range out {
		degByte, err := br.ReadByte()
		if err != nil {
			return nil, err
		}
		if degByte == zeroDegreeSentinel {
			out[i] = poly.Zero
			continue
		}
		deg := int(degByte)
		p := make(poly.Polynomial, deg+1)
		for d := 0; d <= deg; d++ {
			v, err := readWidth(br, width)
			if err != nil {
				return nil, err
			}
			p[d] = poly.Coeff(v)
		}
		out[i] = p
	}
	return out, nil
}
