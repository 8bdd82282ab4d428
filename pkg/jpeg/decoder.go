package jpeg

import (
	"jsteg/pkg/bitio"
	"jsteg/pkg/jpegerr"
)

// unstuff copies data from startOffset onward into a working buffer,
// collapsing every FF 00 byte pair to a single FF, and stops as soon
// as it observes the EOI marker. This is the preprocessing step of
// spec.md §4.6.
func unstuff(data []byte, startOffset int) []byte {
	out := make([]byte, 0, len(data)-startOffset)
	i := startOffset
	for i < len(data) {
		b := data[i]
		if b != 0xFF {
			out = append(out, b)
			i++
			continue
		}
		if i+1 >= len(data) {
			out = append(out, b)
			break
		}
		next := data[i+1]
		switch {
		case next == 0x00:
			out = append(out, 0xFF)
			i += 2
		case Marker(next) == MarkerEOI:
			return out
		default:
			// any other marker byte terminates the entropy stream too
			return out
		}
	}
	return out
}

// signExtend converts the s-bit unsigned value u read after a Huffman
// symbol into the signed coefficient it encodes, per spec.md §4.6: if
// u is below the halfway point of the s-bit range it denotes a
// negative value; otherwise it denotes itself.
func signExtend(u uint32, s uint) int32 {
	if s == 0 {
		return 0
	}
	half := uint32(1) << (s - 1)
	if u < half {
		return int32(u) - int32(uint32(1)<<s) + 1
	}
	return int32(u)
}

// decodeBlock decodes one 8x8 block: a DC symbol/value followed by up
// to 63 AC symbol/value pairs, per spec.md §4.6. It returns the number
// of AC coefficients whose decoded value is neither 0 nor 1 (the
// embedding capacity contribution of this block; -1 counts).
func decodeBlock(r *bitio.Reader, dc, ac *HuffmanTable) (Channel, int, error) {
	var ch Channel

	dcSym, err := NextSymbol(r, dc)
	if err != nil {
		return ch, 0, err
	}
	s := uint(dcSym & 0x0F)
	if s > 11 {
		return ch, 0, jpegerr.New(jpegerr.InvalidContainer, "DC coefficient length %d exceeds baseline maximum of 11", s)
	}
	if s == 0 {
		ch.DC = 0
	} else {
		u := r.NextBits(s)
		ch.DC = signExtend(u, s)
	}

	usable := 0
	k := 0
	for k < 63 {
		sym, err := NextSymbol(r, ac)
		if err != nil {
			return ch, usable, err
		}
		if sym == 0x00 { // EOB
			break
		}
		if sym == 0xF0 { // ZRL
			k += 16
			continue
		}
		run := int(sym >> 4)
		size := uint(sym & 0x0F)
		k += run
		if k >= 63 {
			return ch, usable, jpegerr.New(jpegerr.InvalidContainer, "AC coefficient index %d out of range after run of %d", k, run)
		}
		if size > 10 {
			return ch, usable, jpegerr.New(jpegerr.InvalidContainer, "AC coefficient length %d exceeds baseline maximum", size)
		}
		u := r.NextBits(size)
		v := signExtend(u, size)
		ch.AC[k] = v
		if v != 0 && v != 1 {
			usable++
		}
		k++
	}

	return ch, usable, nil
}

// DecodedImage is the entropy decoder's output: the MCU sequence in
// raster order, plus the total embedding capacity (spec.md §4.6).
type DecodedImage struct {
	Header   *Header
	Geometry Geometry
	MCUs     []MCU
	Capacity int // number of usable (v != 0 && v != 1) AC coefficients
}

// Decode parses data as a JFIF/JPEG container and reconstructs the
// quantised coefficient MCU sequence.
func Decode(data []byte) (*DecodedImage, error) {
	res, err := scan(data)
	if err != nil {
		return nil, err
	}
	h := res.header

	for _, c := range h.Components {
		if h.DCTables[c.DCHuffID] == nil {
			return nil, jpegerr.New(jpegerr.MalformedTable, "component %d references undefined DC table %d", c.Identifier, c.DCHuffID)
		}
		if h.ACTables[c.ACHuffID] == nil {
			return nil, jpegerr.New(jpegerr.MalformedTable, "component %d references undefined AC table %d", c.Identifier, c.ACHuffID)
		}
	}

	geom := ComputeGeometry(h)
	entropy := unstuff(data, res.entropyOffset)
	r := bitio.NewReader(entropy)

	luma := h.LumaComponent()
	blocksPerMCU := luma.HSamp * luma.VSamp

	mcus := make([]MCU, geom.TotalMCUs())
	capacity := 0

	for m := range mcus {
		mcu := MCU{Y: make([]Channel, blocksPerMCU)}
		for i := 0; i < blocksPerMCU; i++ {
			ch, usable, err := decodeBlock(r, h.DCTables[luma.DCHuffID], h.ACTables[luma.ACHuffID])
			if err != nil {
				return nil, err
			}
			mcu.Y[i] = ch
			capacity += usable
		}
		if h.HasChroma() {
			cb := h.Components[1]
			cr := h.Components[2]

			cbCh, usable, err := decodeBlock(r, h.DCTables[cb.DCHuffID], h.ACTables[cb.ACHuffID])
			if err != nil {
				return nil, err
			}
			capacity += usable
			mcu.Cb = &cbCh

			crCh, usable, err := decodeBlock(r, h.DCTables[cr.DCHuffID], h.ACTables[cr.ACHuffID])
			if err != nil {
				return nil, err
			}
			capacity += usable
			mcu.Cr = &crCh
		}
		mcus[m] = mcu
	}

	if r.Exhausted() {
		return nil, jpegerr.New(jpegerr.InvalidContainer, "entropy stream ran out before all MCUs were decoded")
	}

	return &DecodedImage{Header: h, Geometry: geom, MCUs: mcus, Capacity: capacity}, nil
}
