// Package dump implements the stable binary dump formats for blocks,
// KL matrices, and the KL polynomial store (spec §6.2-6.4), the wire
// counterpart of the in-memory block/kl/poly packages.
package dump

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/atlasklv/klv/block"
	"github.com/atlasklv/klv/kl"
	"github.com/atlasklv/klv/klsupport"
)

// blockMagic is the four-byte little-endian prefix of a block file.
const blockMagic uint32 = 0x06ABdCF0

// BlockData is the on-disk shape of a block (spec §6.2): the
// structural tables needed to recreate cross/Cayley navigation and
// descent lookups, without the KGB (x,y) pairs, Cartan class, or
// involution-support data a live *block.Block additionally carries —
// those are caller-side context, not part of the stable wire format.
type BlockData struct {
	Rank           int
	Length         []int32
	Descent        [][]block.Status // [z][s]
	Cross          [][]block.Elt    // [z][s]
	CayleyFst      [][]block.Elt    // [z][s]
	CayleySnd      [][]block.Elt    // [z][s]
	BestGoodAscent []block.Elt      // [z]
}

// Size is the number of block elements described.
func (d *BlockData) Size() int { return len(d.Length) }

// WriteBlock encodes b per spec §6.2. The "best good ascent" index is
// written once per (z,s) pair, inside the generator loop, matching the
// format's literal per-generator record layout even though the value
// only varies with z — this keeps every per-generator record a fixed
// 1+4*4=17 bytes, so a reader need not special-case the last
// generator of each z.
//
// block.Undef (-1) and block.NoGoodAscent() (-2) reinterpret bit-for-
// bit as the wire sentinels 0xFFFFFFFF and 0xFFFFFFFE under a plain
// uint32 conversion, so no sentinel remapping is needed on either
// side.
func WriteBlock(w io.Writer, b *block.Block) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, blockMagic); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(b.Rank())); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(b.Size())); err != nil {
		return err
	}

	rank := b.Rank()
	for z := block.Elt(0); z < block.Elt(b.Size()); z++ {
		length := b.Length(z)
		if length < 0 || length > 0xFF {
			return fmt.Errorf("dump: element %d has length %d, out of the 1-byte range", z, length)
		}
		if err := bw.WriteByte(byte(length)); err != nil {
			return err
		}
		best := uint32(b.BestGoodAscent(z))
		for s := 0; s < rank; s++ {
			if err := bw.WriteByte(byte(b.Descent(z, s))); err != nil {
				return err
			}
			fst, snd := b.Cayley(s, z)
			vals := [4]uint32{uint32(b.Cross(s, z)), uint32(fst), uint32(snd), best}
			for _, v := range vals {
				if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}

// ReadBlock decodes a block file written by WriteBlock.
func ReadBlock(r io.Reader) (*BlockData, error) {
	br := bufio.NewReader(r)
	var magic, rank, size uint32
	if err := binary.Read(br, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != blockMagic {
		return nil, fmt.Errorf("dump: bad block-file magic %#x, want %#x", magic, blockMagic)
	}
	if err := binary.Read(br, binary.LittleEndian, &rank); err != nil {
		return nil, err
	}
	if err := binary.Read(br, binary.LittleEndian, &size); err != nil {
		return nil, err
	}

	d := &BlockData{
		Rank:           int(rank),
		Length:         make([]int32, size),
		Descent:        make([][]block.Status, size),
		Cross:          make([][]block.Elt, size),
		CayleyFst:      make([][]block.Elt, size),
		CayleySnd:      make([][]block.Elt, size),
		BestGoodAscent: make([]block.Elt, size),
	}

	for z := uint32(0); z < size; z++ {
		lb, err := br.ReadByte()
		if err != nil {
			return nil, err
		}
		d.Length[z] = int32(lb)
		d.Descent[z] = make([]block.Status, rank)
		d.Cross[z] = make([]block.Elt, rank)
		d.CayleyFst[z] = make([]block.Elt, rank)
		d.CayleySnd[z] = make([]block.Elt, rank)

		for s := uint32(0); s < rank; s++ {
			db, err := br.ReadByte()
			if err != nil {
				return nil, err
			}
			d.Descent[z][s] = block.Status(db)

			var cross, fst, snd, best uint32
			for _, v := range []*uint32{&cross, &fst, &snd, &best} {
				if err := binary.Read(br, binary.LittleEndian, v); err != nil {
					return nil, err
				}
			}
			d.Cross[z][s] = block.Elt(int32(cross))
			d.CayleyFst[z][s] = block.Elt(int32(fst))
			d.CayleySnd[z][s] = block.Elt(int32(snd))
			d.BestGoodAscent[z] = block.Elt(int32(best))
		}
	}
	return d, nil
}

// WriteMatrix encodes the KL matrix file for the block elements up to
// and including lastY, following the block file it is paired with
// (spec §6.3): per y, a count of primitive x strictly below y in
// length, then each such x's polynomial-store index.
func WriteMatrix(w io.Writer, e *kl.Engine, lastY block.Elt) error {
	bw := bufio.NewWriter(w)
	b := e.Block()
	for y := block.Elt(0); y <= lastY; y++ {
		if !e.Filled(y) {
			return fmt.Errorf("dump: row y=%d has not been filled", y)
		}
		descentSet := klsupport.DescentSet(b, y)
		ly := b.Length(y)
		var below []block.Elt
		for x := block.Elt(0); x < y; x++ {
			if b.Length(x) >= ly {
				continue
			}
			if !klsupport.IsPrimitive(b, x, descentSet) {
				continue
			}
			below = append(below, x)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(below))); err != nil {
			return err
		}
		for _, x := range below {
			idx := e.PolyIndex(x, y)
			if err := binary.Write(bw, binary.LittleEndian, uint32(idx)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// MatrixRow is one decoded row of a matrix file: the polynomial-store
// index for every primitive element below y in length, in increasing
// order of x.
type MatrixRow struct {
	PolyIndex []int32
}

// ReadMatrix decodes n rows (one per y in [0,n)) from a matrix file
// written by WriteMatrix.
func ReadMatrix(r io.Reader, n int) ([]MatrixRow, error) {
	br := bufio.NewReader(r)
	rows := make([]MatrixRow, n)
	for y := 0; y < n; y++ {
		var count uint32
		if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
			return nil, err
		}
		idx := make([]int32, count)
		for i := range idx {
			var v uint32
			if err := binary.Read(br, binary.LittleEndian, &v); err != nil {
				return nil, err
			}
			idx[i] = int32(v)
		}
		rows[y] = MatrixRow{PolyIndex: idx}
	}
	return rows, nil
}
