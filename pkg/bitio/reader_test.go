package bitio_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"jsteg/pkg/bitio"
)

func TestReaderNextBitsMSBFirst(t *testing.T) {
	r := bitio.NewReader([]byte{0b10110100, 0b00000001})

	require.Equal(t, uint32(0b1011), r.NextBits(4))
	require.Equal(t, uint32(0b0), r.NextBit())
	require.Equal(t, uint32(0b100), r.NextBits(3))
	require.Equal(t, uint32(0b00000001), r.NextBits(8))
	require.False(t, r.Exhausted())
}

func TestReaderExhaustionYieldsZeroBits(t *testing.T) {
	r := bitio.NewReader([]byte{0xFF})

	require.Equal(t, uint32(0xFF), r.NextBits(8))
	require.False(t, r.Exhausted())

	require.Equal(t, uint32(0), r.NextBits(4))
	require.True(t, r.Exhausted())
}

func TestReaderRoundTripsWriter(t *testing.T) {
	w := bitio.NewWriter()
	w.WriteCode(0b10110, 5)
	w.WriteCode(0b1, 1)
	w.WriteCode(0b11001100, 8)

	r := bitio.NewReader(w.Bytes())
	require.Equal(t, uint32(0b10110), r.NextBits(5))
	require.Equal(t, uint32(0b1), r.NextBits(1))
	require.Equal(t, uint32(0b11001100), r.NextBits(8))
}
