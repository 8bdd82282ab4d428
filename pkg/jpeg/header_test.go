package jpeg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"jsteg/pkg/jpeg"
	"jsteg/pkg/jpeg/jpegtest"
	"jsteg/pkg/jpegerr"
)

func TestDecodeRejectsTruncatedContainer(t *testing.T) {
	data, err := jpegtest.Grayscale(16, 16, 80)
	require.NoError(t, err)

	_, err = jpeg.Decode(data[:len(data)-20])
	require.Error(t, err)
}

func TestDecodeRejectsMissingSOI(t *testing.T) {
	_, err := jpeg.Decode([]byte{0x00, 0x01, 0x02})
	require.Error(t, err)
	require.True(t, jpegerr.Is(err, jpegerr.InvalidContainer))
}

func TestDecodePreservesExtraAPPSegments(t *testing.T) {
	data, err := jpegtest.Grayscale(16, 16, 80)
	require.NoError(t, err)

	// Splice in a synthetic APP1 segment right after the first segment
	// following SOI (the fixture encoder writes no APP0, so that first
	// segment is DQT).
	firstSegEnd := findSegmentEnd(t, data, 2)
	app1 := []byte{0xFF, 0xE1, 0x00, 0x06, 'h', 'i', 0x00, 0x00}
	spliced := append([]byte(nil), data[:firstSegEnd]...)
	spliced = append(spliced, app1...)
	spliced = append(spliced, data[firstSegEnd:]...)

	img, err := jpeg.Decode(spliced)
	require.NoError(t, err)
	require.Len(t, img.Header.ExtraAPPSegments, 1)
	require.Equal(t, jpeg.MarkerAPP0+1, img.Header.ExtraAPPSegments[0].Marker)

	reencoded, err := jpeg.Encode(img)
	require.NoError(t, err)

	roundTripped, err := jpeg.Decode(reencoded)
	require.NoError(t, err)
	require.Equal(t, img.Header.ExtraAPPSegments, roundTripped.Header.ExtraAPPSegments)
}

func findSegmentEnd(t *testing.T, data []byte, pos int) int {
	t.Helper()
	require.Equal(t, byte(0xFF), data[pos])
	segLen := int(data[pos+2])<<8 | int(data[pos+3])
	return pos + 2 + segLen
}
