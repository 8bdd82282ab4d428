package jsteg

import (
	"jsteg/pkg/jpeg"
	"jsteg/pkg/jpegerr"
)

// lsb returns bit 0 of v, treating v as an 8-bit two's-complement byte
// (spec.md §4.9: "the signed coefficient treated as an 8-bit two's
// complement byte when masking").
func lsb(v int32) uint32 {
	return uint32(byte(v)) & 1
}

// withBit0 returns v with bit 0 cleared or set to bit, re-signing the
// result as the same 8-bit two's-complement byte it was masked
// through.
func withBit0(v int32, bit uint32) int32 {
	b := byte(v)
	b &^= 1
	b |= byte(bit & 1)
	return int32(int8(b))
}

// Capacity returns how many bits of payload the decoded image can
// carry: one bit per AC coefficient whose decoded value is neither 0
// nor 1 (spec.md §4.6's capacity counter).
func Capacity(img *jpeg.DecodedImage) int { return img.Capacity }

// Embed hides frame's bits, MSB-first within each byte, in the LSBs
// of img's usable AC coefficients, mutating img.MCUs in place.
// Capacity is checked before any mutation so a CapacityExceeded error
// never leaves the image partially modified.
func Embed(img *jpeg.DecodedImage, frame []byte) error {
	needed := len(frame) * 8
	if needed > img.Capacity {
		return jpegerr.New(jpegerr.CapacityExceeded,
			"secret frame needs %d bits but the cover image has only %d usable AC coefficients", needed, img.Capacity)
	}

	w := NewWalker(img.MCUs, img.Header.HasChroma())
	for _, b := range frame {
		for bitPos := 7; bitPos >= 0; bitPos-- {
			bit := uint32((b >> uint(bitPos)) & 1)
			loc, v, err := w.NextUsableCoefficient()
			if err != nil {
				return err
			}
			Set(img.MCUs, loc, withBit0(v, bit))
		}
	}
	return nil
}

// readByte reconstructs one byte from eight usable coefficients,
// MSB-first, mirroring the bit order Embed wrote a frame byte in.
func readByte(w *Walker) (byte, error) {
	var b byte
	for bitPos := 7; bitPos >= 0; bitPos-- {
		_, v, err := w.NextUsableCoefficient()
		if err != nil {
			return 0, err
		}
		b |= byte(lsb(v)) << uint(bitPos)
	}
	return b, nil
}

// Extract reverses Embed: it reads the 32-bit length prefix, then that
// many bytes of frame body, from img's usable AC coefficients, and
// splits the result into secret bytes and basename via Unframe. The
// length prefix's four bytes are stored LSB-first (spec.md §4.9), so
// they combine little-endian once each is reconstructed MSB-first.
func Extract(img *jpeg.DecodedImage) (data []byte, filename string, err error) {
	w := NewWalker(img.MCUs, img.Header.HasChroma())

	var lenBytes [lengthPrefixSize]byte
	for i := range lenBytes {
		b, err := readByte(w)
		if err != nil {
			return nil, "", err
		}
		lenBytes[i] = b
	}
	length := uint32(lenBytes[0]) | uint32(lenBytes[1])<<8 | uint32(lenBytes[2])<<16 | uint32(lenBytes[3])<<24

	body := make([]byte, length)
	for i := range body {
		b, err := readByte(w)
		if err != nil {
			return nil, "", err
		}
		body[i] = b
	}

	return Unframe(body)
}
