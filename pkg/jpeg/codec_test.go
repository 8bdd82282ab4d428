package jpeg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"jsteg/pkg/jpeg"
	"jsteg/pkg/jpeg/jpegtest"
	"jsteg/pkg/jpegerr"
)

func TestDecodeGrayscaleProducesSingleComponentHeader(t *testing.T) {
	data, err := jpegtest.Grayscale(32, 24, 80)
	require.NoError(t, err)

	img, err := jpeg.Decode(data)
	require.NoError(t, err)
	require.Len(t, img.Header.Components, 1)
	require.False(t, img.Header.HasChroma())
	require.Equal(t, 32, img.Header.Width)
	require.Equal(t, 24, img.Header.Height)
	require.Equal(t, img.Geometry.TotalMCUs(), len(img.MCUs))
}

func TestDecodeColorProducesThreeComponentHeader(t *testing.T) {
	data, err := jpegtest.Color(48, 48, 85)
	require.NoError(t, err)

	img, err := jpeg.Decode(data)
	require.NoError(t, err)
	require.Len(t, img.Header.Components, 3)
	require.True(t, img.Header.HasChroma())
	for _, mcu := range img.MCUs {
		require.NotNil(t, mcu.Cb)
		require.NotNil(t, mcu.Cr)
	}
}

func TestDecodeRejectsProgressiveJPEG(t *testing.T) {
	data, err := jpegtest.Progressive(32, 32)
	require.NoError(t, err)

	_, err = jpeg.Decode(data)
	require.Error(t, err)
	require.True(t, jpegerr.Is(err, jpegerr.UnsupportedFeature))
}

func TestEncodeReencodesDecodableStructurallyEquivalentImage(t *testing.T) {
	data, err := jpegtest.Grayscale(32, 32, 85)
	require.NoError(t, err)

	img, err := jpeg.Decode(data)
	require.NoError(t, err)

	reencoded, err := jpeg.Encode(img)
	require.NoError(t, err)

	roundTripped, err := jpeg.Decode(reencoded)
	require.NoError(t, err)

	require.Equal(t, img.Header.Width, roundTripped.Header.Width)
	require.Equal(t, img.Header.Height, roundTripped.Header.Height)
	require.Equal(t, img.MCUs, roundTripped.MCUs)
}

func TestEncodeAlwaysEmitsStandardHuffmanTables(t *testing.T) {
	// Two different cover images, re-encoded, must carry byte-identical
	// DHT segments: the encoder always writes the Annex K.3.3 standard
	// tables regardless of what the source image's own tables were
	// (spec.md Scenario 5).
	a, err := jpegtest.Grayscale(16, 16, 60)
	require.NoError(t, err)
	b, err := jpegtest.Grayscale(64, 64, 95)
	require.NoError(t, err)

	imgA, err := jpeg.Decode(a)
	require.NoError(t, err)
	imgB, err := jpeg.Decode(b)
	require.NoError(t, err)

	encA, err := jpeg.Encode(imgA)
	require.NoError(t, err)
	encB, err := jpeg.Encode(imgB)
	require.NoError(t, err)

	require.Equal(t, extractDHTSegments(t, encA), extractDHTSegments(t, encB))
}

// extractDHTSegments pulls out every raw DHT segment (length field
// through end of body, without the marker) from a re-encoded stream,
// in order.
func extractDHTSegments(t *testing.T, data []byte) [][]byte {
	t.Helper()
	var segments [][]byte
	i := 2 // skip SOI
	for i+3 < len(data) {
		require.Equal(t, byte(0xFF), data[i])
		marker := data[i+1]
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == byte(jpeg.MarkerSOS) {
			break
		}
		if marker == byte(jpeg.MarkerDHT) {
			segments = append(segments, append([]byte(nil), data[i+2:i+2+segLen]...))
		}
		i += 2 + segLen
	}
	return segments
}
