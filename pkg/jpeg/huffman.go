package jpeg

import (
	"jsteg/pkg/bitio"
	"jsteg/pkg/jpegerr"
)

// HuffmanTable is a canonical Huffman table as defined by spec.md §3/§4.5:
// Offsets[k] is the index in Symbols at which codes of bit-length k+1
// begin, Offsets[16] is the total symbol count, and Codes holds the
// canonically assigned integer code for each entry in Symbols.
type HuffmanTable struct {
	Offsets [17]int
	Symbols []byte
	Codes   []uint16
	Set     bool
}

// NewHuffmanTable derives a canonical table from the wire form: 16
// per-length counts and the concatenated symbols in canonical order.
func NewHuffmanTable(counts [16]byte, symbols []byte) (*HuffmanTable, error) {
	t := &HuffmanTable{Symbols: symbols}

	total := 0
	for i, c := range counts {
		total += int(c)
		t.Offsets[i+1] = total
	}
	if total != len(symbols) {
		return nil, jpegerr.New(jpegerr.MalformedTable, "huffman table symbol count mismatch: counts sum to %d, got %d symbols", total, len(symbols))
	}

	t.Codes = make([]uint16, len(symbols))
	code := uint16(0)
	for length := 1; length <= 16; length++ {
		start, end := t.Offsets[length-1], t.Offsets[length]
		for i := start; i < end; i++ {
			t.Codes[i] = code
			code++
		}
		code <<= 1
	}
	t.Set = true
	return t, nil
}

// lengthOf returns the bit length of the code at symbols index i.
func (t *HuffmanTable) lengthOf(i int) int {
	for l := 1; l <= 16; l++ {
		if i < t.Offsets[l] {
			return l
		}
	}
	return 0
}

// NextSymbol decodes one Huffman symbol from r using t, per spec.md
// §4.5: bits are accumulated one at a time and, after each bit, the
// active length's slot is scanned for a matching code.
func NextSymbol(r *bitio.Reader, t *HuffmanTable) (byte, error) {
	code := uint32(0)
	for length := 1; length <= 16; length++ {
		code = (code << 1) | r.NextBit()
		start, end := t.Offsets[length-1], t.Offsets[length]
		for i := start; i < end; i++ {
			if uint32(t.Codes[i]) == code {
				return t.Symbols[i], nil
			}
		}
	}
	return 0, jpegerr.New(jpegerr.MalformedTable, "huffman code exceeds 16 bits without a match")
}

// SymbolToCode returns the (code, length) pair JFIF assigned to symbol
// in t. Failure means the table is not total over the symbols the
// encoder needs to emit, which is fatal.
func SymbolToCode(t *HuffmanTable, symbol byte) (code uint32, length uint, err error) {
	for i, s := range t.Symbols {
		if s == symbol {
			return uint32(t.Codes[i]), uint(t.lengthOf(i)), nil
		}
	}
	return 0, 0, jpegerr.New(jpegerr.MalformedTable, "symbol 0x%02X has no code in table", symbol)
}
