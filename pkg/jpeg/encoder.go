package jpeg

import (
	"jsteg/pkg/bitio"
)

// minBitLength returns the minimum number of bits needed to represent
// |v|: 0 for a zero coefficient, otherwise the bit length of the
// absolute value.
func minBitLength(v int32) uint {
	if v < 0 {
		v = -v
	}
	n := uint(0)
	for v > 0 {
		n++
		v >>= 1
	}
	return n
}

// magnitudeBits returns the s low bits written for coefficient v,
// applying the one's-complement rule of spec.md §4.5/§4.7: a negative
// value is first decremented by one before its low s bits are taken.
func magnitudeBits(v int32, s uint) uint32 {
	if s == 0 {
		return 0
	}
	if v < 0 {
		v--
	}
	return uint32(v) & ((1 << s) - 1)
}

// encodeDC writes one DC coefficient: a Huffman-coded symbol giving
// its bit length, followed by that many magnitude bits.
func encodeDC(w *bitio.Writer, dcTable *HuffmanTable, v int32) error {
	s := minBitLength(v)
	code, length, err := SymbolToCode(dcTable, byte(s))
	if err != nil {
		return err
	}
	w.WriteCode(code, length)
	if s > 0 {
		w.WriteCode(magnitudeBits(v, s), s)
	}
	return nil
}

// encodeAC writes the 63 AC coefficients of ch: runs of 16 zeroes are
// chunked as ZRL (0xF0), a nonzero coefficient is written as
// (run<<4 | size) followed by its magnitude bits, and a trailing run
// of zeroes through index 62 collapses to a single EOB (0x00).
func encodeAC(w *bitio.Writer, acTable *HuffmanTable, ch *Channel) error {
	run := 0
	for k := 0; k < 63; k++ {
		v := ch.AC[k]
		if v == 0 {
			run++
			continue
		}
		for run >= 16 {
			code, length, err := SymbolToCode(acTable, 0xF0)
			if err != nil {
				return err
			}
			w.WriteCode(code, length)
			run -= 16
		}
		s := minBitLength(v)
		symbol := byte(run<<4) | byte(s)
		code, length, err := SymbolToCode(acTable, symbol)
		if err != nil {
			return err
		}
		w.WriteCode(code, length)
		w.WriteCode(magnitudeBits(v, s), s)
		run = 0
	}
	if run > 0 {
		code, length, err := SymbolToCode(acTable, 0x00)
		if err != nil {
			return err
		}
		w.WriteCode(code, length)
	}
	return nil
}

func encodeBlock(w *bitio.Writer, dc, ac *HuffmanTable, ch *Channel) error {
	if err := encodeDC(w, dc, ch.DC); err != nil {
		return err
	}
	return encodeAC(w, ac, ch)
}

// EncodeEntropy re-emits img's MCU sequence as a Huffman-coded,
// 0xFF00-stuffed byte stream using the standard JFIF K.3.3 tables
// (spec.md §4.7, §3 "Lifecycles").
func EncodeEntropy(img *DecodedImage, std *StandardTables) ([]byte, error) {
	w := bitio.NewWriter()
	hasChroma := img.Header.HasChroma()

	for _, mcu := range img.MCUs {
		for i := range mcu.Y {
			if err := encodeBlock(w, std.DCLuminance, std.ACLuminance, &mcu.Y[i]); err != nil {
				return nil, err
			}
		}
		if hasChroma {
			if err := encodeBlock(w, std.DCChrominance, std.ACChrominance, mcu.Cb); err != nil {
				return nil, err
			}
			if err := encodeBlock(w, std.DCChrominance, std.ACChrominance, mcu.Cr); err != nil {
				return nil, err
			}
		}
	}

	return w.StuffedBytes(), nil
}
