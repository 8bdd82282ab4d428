package jpeg

import (
	"encoding/binary"
)

// writeSegment appends a marker and its length-prefixed body (the
// length field counts itself, per ITU T.81).
func writeSegment(out []byte, marker Marker, body []byte) []byte {
	out = append(out, 0xFF, byte(marker))
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(body)+2))
	out = append(out, lenBuf[:]...)
	return append(out, body...)
}

func buildDQTBody(h *Header) []byte {
	var body []byte
	for id, t := range h.QuantTables {
		if !t.Set {
			continue
		}
		prec := byte(0)
		if t.Precision == 16 {
			prec = 1
		}
		body = append(body, (prec<<4)|byte(id))
		if t.Precision == 8 {
			for _, v := range t.Values {
				body = append(body, byte(v))
			}
		} else {
			for _, v := range t.Values {
				var b [2]byte
				binary.BigEndian.PutUint16(b[:], v)
				body = append(body, b[:]...)
			}
		}
	}
	return body
}

func buildSOF0Body(h *Header) []byte {
	body := make([]byte, 0, 6+len(h.Components)*3)
	body = append(body, byte(h.Precision))
	var hb, wb [2]byte
	binary.BigEndian.PutUint16(hb[:], uint16(h.Height))
	binary.BigEndian.PutUint16(wb[:], uint16(h.Width))
	body = append(body, hb[:]...)
	body = append(body, wb[:]...)
	body = append(body, byte(len(h.Components)))
	for _, c := range h.Components {
		id := c.Identifier
		if h.ZeroBased {
			id--
		}
		body = append(body, byte(id), byte(c.HSamp<<4|c.VSamp), byte(c.QuantTableNumber))
	}
	return body
}

func buildDHTBody(class, dest int, counts [16]byte, symbols []byte) []byte {
	body := make([]byte, 0, 1+16+len(symbols))
	body = append(body, byte(class<<4|dest))
	body = append(body, counts[:]...)
	body = append(body, symbols...)
	return body
}

func buildSOSBody(h *Header, dcLumDest, dcChrDest, acLumDest, acChrDest int) []byte {
	body := make([]byte, 0, 1+len(h.Components)*2+3)
	body = append(body, byte(len(h.Components)))
	for i, c := range h.Components {
		id := c.Identifier
		if h.ZeroBased {
			id--
		}
		dc, ac := dcLumDest, acLumDest
		if i > 0 {
			dc, ac = dcChrDest, acChrDest
		}
		body = append(body, byte(id), byte(dc<<4|ac))
	}
	body = append(body, 0x00, 0x3F, 0x00) // Ss=0, Se=63, Ah/Al=0
	return body
}

// Encode assembles a full JPEG byte stream from a (possibly mutated)
// DecodedImage: SOI, APP0 (if present), any preserved APPn segments,
// DQT (original tables, verbatim values), SOF0, DHT x4 (always the
// standard Annex K.3.3 tables), SOS, the re-encoded entropy stream,
// EOI. Spec.md §4.10/§6.
func Encode(img *DecodedImage) ([]byte, error) {
	std, err := NewStandardTables()
	if err != nil {
		return nil, err
	}
	entropy, err := EncodeEntropy(img, std)
	if err != nil {
		return nil, err
	}

	h := img.Header
	out := make([]byte, 0, len(entropy)+1024)
	out = append(out, 0xFF, byte(MarkerSOI))

	if h.APP0Payload != nil {
		out = writeSegment(out, MarkerAPP0, h.APP0Payload)
	}
	for _, seg := range h.ExtraAPPSegments {
		out = writeSegment(out, seg.Marker, seg.Payload)
	}

	out = writeSegment(out, MarkerDQT, buildDQTBody(h))
	out = writeSegment(out, MarkerSOF0, buildSOF0Body(h))

	const dcLumDest, dcChrDest, acLumDest, acChrDest = 0, 1, 0, 1
	out = writeSegment(out, MarkerDHT, buildDHTBody(0, dcLumDest, stdDCLuminanceCounts, stdDCLuminanceSymbols))
	out = writeSegment(out, MarkerDHT, buildDHTBody(0, dcChrDest, stdDCChrominanceCounts, stdDCChrominanceSymbols))
	out = writeSegment(out, MarkerDHT, buildDHTBody(1, acLumDest, stdACLuminanceCounts, stdACLuminanceSymbols))
	out = writeSegment(out, MarkerDHT, buildDHTBody(1, acChrDest, stdACChrominanceCounts, stdACChrominanceSymbols))

	out = writeSegment(out, MarkerSOS, buildSOSBody(h, dcLumDest, dcChrDest, acLumDest, acChrDest))
	out = append(out, entropy...)
	out = append(out, 0xFF, byte(MarkerEOI))

	return out, nil
}
