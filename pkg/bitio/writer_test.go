package bitio_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"jsteg/pkg/bitio"
)

func TestWriterStuffedBytesInsertsZeroAfterFF(t *testing.T) {
	w := bitio.NewWriter()
	w.WriteCode(0xFF, 8)
	w.WriteCode(0x01, 8)
	w.WriteCode(0xFF, 8)

	require.Equal(t, []byte{0xFF, 0x01, 0xFF}, w.Bytes())
	require.Equal(t, []byte{0xFF, 0x00, 0x01, 0xFF, 0x00}, w.StuffedBytes())
}

func TestWriterLeavesPartialFinalByteAsWritten(t *testing.T) {
	w := bitio.NewWriter()
	w.WriteBit(1)
	w.WriteBit(0)
	w.WriteBit(1)

	require.Equal(t, []byte{0b10100000}, w.Bytes())
}
