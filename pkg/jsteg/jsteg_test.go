package jsteg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"jsteg/pkg/jpeg"
	"jsteg/pkg/jpeg/jpegtest"
	"jsteg/pkg/jpegerr"
	"jsteg/pkg/jsteg"
)

func TestFrameUnframeRoundTrip(t *testing.T) {
	frame := jsteg.Frame([]byte("ABC"), "msg.txt")
	data, filename, err := jsteg.Unframe(frame[4:])
	require.NoError(t, err)
	require.Equal(t, []byte("ABC"), data)
	require.Equal(t, "msg.txt", filename)
}

func TestEmbedExtractGrayscaleRoundTrip(t *testing.T) {
	cover, err := jpegtest.Grayscale(64, 64, 85)
	require.NoError(t, err)

	img, err := jpeg.Decode(cover)
	require.NoError(t, err)

	frame := jsteg.Frame([]byte("ABC"), "msg.txt")
	require.NoError(t, jsteg.Embed(img, frame))

	stego, err := jpeg.Encode(img)
	require.NoError(t, err)

	recovered, err := jpeg.Decode(stego)
	require.NoError(t, err)

	data, filename, err := jsteg.Extract(recovered)
	require.NoError(t, err)
	require.Equal(t, []byte("ABC"), data)
	require.Equal(t, "msg.txt", filename)
}

func TestEmbedExtractColorRoundTrip(t *testing.T) {
	cover, err := jpegtest.Color(96, 96, 90)
	require.NoError(t, err)

	img, err := jpeg.Decode(cover)
	require.NoError(t, err)

	payload := make([]byte, 64)
	for i := range payload {
		payload[i] = byte(i)
	}
	frame := jsteg.Frame(payload, "blob.bin")
	require.NoError(t, jsteg.Embed(img, frame))

	stego, err := jpeg.Encode(img)
	require.NoError(t, err)

	recovered, err := jpeg.Decode(stego)
	require.NoError(t, err)

	data, filename, err := jsteg.Extract(recovered)
	require.NoError(t, err)
	require.Equal(t, payload, data)
	require.Equal(t, "blob.bin", filename)
}

func TestEmbedRejectsOversizePayloadWithoutMutating(t *testing.T) {
	cover, err := jpegtest.Flat(8, 8, 120)
	require.NoError(t, err)

	img, err := jpeg.Decode(cover)
	require.NoError(t, err)
	require.Equal(t, 0, jsteg.Capacity(img))

	before := cloneMCUs(img)
	err = jsteg.Embed(img, make([]byte, 2048))
	require.Error(t, err)
	require.True(t, jpegerr.Is(err, jpegerr.CapacityExceeded))
	require.Equal(t, before, img.MCUs)
}

func TestEmbedNeverDisturbsZeroOrOneCoefficients(t *testing.T) {
	cover, err := jpegtest.Grayscale(64, 64, 85)
	require.NoError(t, err)

	img, err := jpeg.Decode(cover)
	require.NoError(t, err)

	before := cloneMCUs(img)
	frame := jsteg.Frame([]byte("hello world"), "f")
	require.NoError(t, jsteg.Embed(img, frame))

	for m := range img.MCUs {
		for c := range img.MCUs[m].Y {
			for k := 0; k < 63; k++ {
				v := before[m].Y[c].AC[k]
				if v == 0 || v == 1 {
					require.Equal(t, v, img.MCUs[m].Y[c].AC[k], "mcu %d channel %d ac %d", m, c, k)
				}
			}
		}
	}
}

func cloneMCUs(img *jpeg.DecodedImage) []jpeg.MCU {
	out := make([]jpeg.MCU, len(img.MCUs))
	for i, mcu := range img.MCUs {
		out[i].Y = append([]jpeg.Channel(nil), mcu.Y...)
		if mcu.Cb != nil {
			cb := *mcu.Cb
			out[i].Cb = &cb
		}
		if mcu.Cr != nil {
			cr := *mcu.Cr
			out[i].Cr = &cr
		}
	}
	return out
}
