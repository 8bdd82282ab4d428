package jpeg

import (
	"encoding/binary"

	"jsteg/pkg/jpegerr"
)

// scanResult is everything the marker scanner produces: a populated
// Header plus the offset at which the entropy-coded stream begins
// (the first byte after the SOS segment).
type scanResult struct {
	header        *Header
	entropyOffset int
}

// scan walks a JPEG container from offset 0, dispatching to the
// per-marker parsers of spec.md §4.4, and stops as soon as SOS has
// been consumed.
func scan(data []byte) (*scanResult, error) {
	if len(data) < 4 || data[0] != 0xFF || Marker(data[1]) != MarkerSOI {
		return nil, jpegerr.New(jpegerr.InvalidContainer, "missing SOI marker")
	}

	h := newHeader()
	pos := 2

	for {
		if pos+1 >= len(data) {
			return nil, jpegerr.New(jpegerr.InvalidContainer, "truncated container after offset %d", pos)
		}
		if data[pos] != 0xFF {
			return nil, jpegerr.New(jpegerr.InvalidContainer, "expected marker prefix 0xFF at offset %d, got 0x%02X", pos, data[pos])
		}

		// skip fill bytes (extra 0xFF before the real marker byte)
		mpos := pos + 1
		for mpos < len(data) && data[mpos] == 0xFF {
			mpos++
		}
		if mpos >= len(data) {
			return nil, jpegerr.New(jpegerr.InvalidContainer, "truncated marker at offset %d", pos)
		}
		marker := Marker(data[mpos])
		pos = mpos + 1

		if !hasLengthField(marker) {
			return nil, jpegerr.New(jpegerr.InvalidContainer, "unexpected marker 0xFF%02X with no length field", byte(marker))
		}

		if pos+2 > len(data) {
			return nil, jpegerr.New(jpegerr.InvalidContainer, "truncated segment length at offset %d", pos)
		}
		segLen := int(binary.BigEndian.Uint16(data[pos : pos+2]))
		if segLen < 2 {
			return nil, jpegerr.New(jpegerr.InvalidContainer, "segment length %d below minimum of 2", segLen)
		}
		if pos+segLen > len(data) {
			return nil, jpegerr.New(jpegerr.InvalidContainer, "segment at offset %d claims length %d past end of file", pos, segLen)
		}
		body := data[pos+2 : pos+segLen] // segment body, excluding the length field itself

		switch marker {
		case MarkerAPP0:
			h.APP0Payload = append([]byte(nil), body...)

		case MarkerDQT:
			if err := parseDQT(h, body); err != nil {
				return nil, err
			}

		case MarkerSOF0:
			if err := parseSOF0(h, body); err != nil {
				return nil, err
			}

		case MarkerDHT:
			if err := parseDHT(h, body); err != nil {
				return nil, err
			}

		case MarkerDRI:
			if err := parseDRI(h, body); err != nil {
				return nil, err
			}

		case MarkerSOS:
			if err := parseSOS(h, body); err != nil {
				return nil, err
			}
			h.sosSeen = true
			return &scanResult{header: h, entropyOffset: pos + segLen}, nil

		case MarkerSOF2:
			return nil, jpegerr.New(jpegerr.UnsupportedFeature, "progressive JPEG (SOF2) is not supported")

		default:
			if byte(marker) >= 0xC1 && byte(marker) <= 0xCF && marker != MarkerDHT {
				return nil, jpegerr.New(jpegerr.UnsupportedFeature, "unsupported frame marker 0xFF%02X", byte(marker))
			}
			if byte(marker) >= 0xE0 && byte(marker) <= 0xEF {
				h.ExtraAPPSegments = append(h.ExtraAPPSegments, ExtraSegment{
					Marker:  marker,
					Payload: append([]byte(nil), body...),
				})
			} else {
				return nil, jpegerr.New(jpegerr.InvalidContainer, "unsupported marker 0xFF%02X", byte(marker))
			}
		}

		pos += segLen
	}
}

func parseDQT(h *Header, body []byte) error {
	off := 0
	for off < len(body) {
		pq := (body[off] >> 4) & 0x0F
		tq := int(body[off] & 0x0F)
		off++
		if tq > 3 {
			return jpegerr.New(jpegerr.MalformedTable, "DQT destination %d out of range 0-3", tq)
		}

		var t QuantTable
		t.DestID = tq
		if pq == 0 {
			t.Precision = 8
			if off+64 > len(body) {
				return jpegerr.New(jpegerr.InvalidContainer, "DQT segment truncated")
			}
			for i := 0; i < 64; i++ {
				t.Values[i] = uint16(body[off+i])
			}
			off += 64
		} else {
			t.Precision = 16
			if off+128 > len(body) {
				return jpegerr.New(jpegerr.InvalidContainer, "DQT segment truncated")
			}
			for i := 0; i < 64; i++ {
				t.Values[i] = binary.BigEndian.Uint16(body[off+2*i : off+2*i+2])
			}
			off += 128
		}
		t.Set = true
		h.QuantTables[tq] = t
	}
	return nil
}

func parseSOF0(h *Header, body []byte) error {
	if len(body) < 6 {
		return jpegerr.New(jpegerr.InvalidContainer, "SOF0 segment too short")
	}
	h.Precision = int(body[0])
	h.Height = int(binary.BigEndian.Uint16(body[1:3]))
	h.Width = int(binary.BigEndian.Uint16(body[3:5]))
	numComponents := int(body[5])
	if len(body) < 6+numComponents*3 {
		return jpegerr.New(jpegerr.InvalidContainer, "SOF0 component list truncated")
	}

	comps := make([]Component, numComponents)
	for i := 0; i < numComponents; i++ {
		off := 6 + i*3
		id := int(body[off])
		if id == 0 {
			h.ZeroBased = true
		}
		comps[i] = Component{
			Identifier:       id,
			HSamp:            int(body[off+1] >> 4),
			VSamp:            int(body[off+1] & 0x0F),
			QuantTableNumber: int(body[off+2]),
		}
	}
	if h.ZeroBased {
		for i := range comps {
			comps[i].Identifier++
		}
	}
	for _, c := range comps {
		if c.Identifier == 4 || c.Identifier == 5 || c.Identifier < 1 || c.Identifier > 3 {
			return jpegerr.New(jpegerr.UnsupportedFeature, "component id %d not supported (only 1-3, post zero-base remap)", c.Identifier)
		}
	}
	h.Components = comps

	return validateSOF(h)
}

func parseDHT(h *Header, body []byte) error {
	off := 0
	for off < len(body) {
		if off >= len(body) {
			return jpegerr.New(jpegerr.InvalidContainer, "DHT segment truncated")
		}
		class := (body[off] >> 4) & 0x0F
		dest := int(body[off] & 0x0F)
		off++
		if dest > 3 {
			return jpegerr.New(jpegerr.MalformedTable, "DHT destination %d out of range 0-3", dest)
		}
		if off+16 > len(body) {
			return jpegerr.New(jpegerr.InvalidContainer, "DHT segment truncated")
		}
		var counts [16]byte
		copy(counts[:], body[off:off+16])
		off += 16

		total := 0
		for _, c := range counts {
			total += int(c)
		}
		if off+total > len(body) {
			return jpegerr.New(jpegerr.InvalidContainer, "DHT segment truncated")
		}
		symbols := append([]byte(nil), body[off:off+total]...)
		off += total

		table, err := NewHuffmanTable(counts, symbols)
		if err != nil {
			return err
		}

		var slot **HuffmanTable
		if class == 0 {
			slot = &h.DCTables[dest]
		} else {
			slot = &h.ACTables[dest]
		}
		if *slot != nil {
			return jpegerr.New(jpegerr.MalformedTable, "duplicate huffman table definition for class %d destination %d", class, dest)
		}
		*slot = table
	}
	return nil
}

func parseDRI(h *Header, body []byte) error {
	if len(body) != 2 {
		return jpegerr.New(jpegerr.InvalidContainer, "DRI segment length must be 4 (2 bytes of body), got %d", len(body)+2)
	}
	h.RestartInterval = int(binary.BigEndian.Uint16(body))
	if h.RestartInterval != 0 {
		return jpegerr.New(jpegerr.UnsupportedFeature, "restart intervals are not supported (DRI=%d)", h.RestartInterval)
	}
	return nil
}

func parseSOS(h *Header, body []byte) error {
	if len(body) < 1 {
		return jpegerr.New(jpegerr.InvalidContainer, "SOS segment too short")
	}
	numComponents := int(body[0])
	if numComponents != len(h.Components) {
		return jpegerr.New(jpegerr.InvalidContainer, "SOS component count %d does not match SOF0 count %d", numComponents, len(h.Components))
	}
	if len(body) < 1+numComponents*2+3 {
		return jpegerr.New(jpegerr.InvalidContainer, "SOS segment truncated")
	}

	byID := make(map[int]*Component, numComponents)
	for i := range h.Components {
		byID[h.Components[i].Identifier] = &h.Components[i]
	}

	for i := 0; i < numComponents; i++ {
		off := 1 + i*2
		id := int(body[off])
		if h.ZeroBased {
			id++
		}
		c, ok := byID[id]
		if !ok {
			return jpegerr.New(jpegerr.InvalidContainer, "SOS references component id %d absent from SOF0", id)
		}
		c.DCHuffID = int(body[off+1] >> 4)
		c.ACHuffID = int(body[off+1] & 0x0F)
	}

	tail := body[1+numComponents*2:]
	h.StartOfSelection = int(tail[0])
	h.EndOfSelection = int(tail[1])
	h.SuccessiveApproxHigh = int(tail[2] >> 4)
	h.SuccessiveApproxLow = int(tail[2] & 0x0F)

	if h.StartOfSelection != 0 || h.EndOfSelection != 63 ||
		h.SuccessiveApproxHigh != 0 || h.SuccessiveApproxLow != 0 {
		return jpegerr.New(jpegerr.UnsupportedFeature,
			"non-baseline spectral selection/successive approximation (%d,%d,%d,%d)",
			h.StartOfSelection, h.EndOfSelection, h.SuccessiveApproxHigh, h.SuccessiveApproxLow)
	}
	return nil
}
