package jpeg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"jsteg/pkg/bitio"
)

func TestHuffmanTableRejectsSymbolCountMismatch(t *testing.T) {
	var counts [16]byte
	counts[0] = 2 // claims two 1-bit codes
	_, err := NewHuffmanTable(counts, []byte{0x01})
	require.Error(t, err)
}

func TestHuffmanTableCanonicalCodesRoundTrip(t *testing.T) {
	// 3 symbols of length 2, 1 symbol of length 3 (a small, valid
	// canonical table shaped like the start of the standard DC
	// chrominance table).
	var counts [16]byte
	counts[1] = 3
	counts[2] = 1
	symbols := []byte{0x00, 0x01, 0x02, 0x03}

	table, err := NewHuffmanTable(counts, symbols)
	require.NoError(t, err)

	for _, sym := range symbols {
		code, length, err := SymbolToCode(table, sym)
		require.NoError(t, err)

		w := bitio.NewWriter()
		w.WriteCode(code, length)
		r := bitio.NewReader(w.Bytes())

		got, err := NextSymbol(r, table)
		require.NoError(t, err)
		require.Equal(t, sym, got)
	}
}

func TestSymbolToCodeUnknownSymbolErrors(t *testing.T) {
	var counts [16]byte
	counts[0] = 1
	table, err := NewHuffmanTable(counts, []byte{0x05})
	require.NoError(t, err)

	_, _, err = SymbolToCode(table, 0xAA)
	require.Error(t, err)
}
