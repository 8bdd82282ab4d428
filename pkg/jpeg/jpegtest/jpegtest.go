// Package jpegtest builds small, real baseline JPEG byte streams for
// use as test fixtures, so pkg/jpeg and pkg/jsteg tests exercise the
// decoder against images nobody hand-assembled one marker at a time.
// It leans on the standard library's image/jpeg encoder only as a
// fixture generator — the module's own codec never touches it.
package jpegtest

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"math"
)

// Grayscale returns a width x height single-component baseline JPEG
// with a smooth gradient pattern, encoded at quality (1-100). A
// gradient gives the DCT enough non-zero, non-unity AC energy to
// produce usable embedding capacity once decoded.
func Grayscale(width, height, quality int) ([]byte, error) {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(128 + 96*math.Sin(float64(x)/3) + 32*math.Cos(float64(y)/5))
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Flat returns a width x height single-component baseline JPEG filled
// with a single constant grey value, which DCTs down to an all-DC,
// zero-AC block and therefore carries zero embedding capacity.
func Flat(width, height int, level uint8) ([]byte, error) {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: level})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Color returns a width x height 4:2:0 YCbCr baseline JPEG with a
// colourful gradient pattern, so every MCU carries luma and chroma
// blocks.
func Color(width, height, quality int) ([]byte, error) {
	img := image.NewYCbCr(image.Rect(0, 0, width, height), image.YCbCrSubsampleRatio420)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			yi := img.YOffset(x, y)
			ci := img.COffset(x, y)
			img.Y[yi] = uint8(128 + 96*math.Sin(float64(x)/4))
			img.Cb[ci] = uint8(128 + 64*math.Cos(float64(y)/6))
			img.Cr[ci] = uint8(128 + 64*math.Sin(float64(x+y)/7))
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Progressive returns a width x height progressive (SOF2) JPEG, used
// to exercise rejection of unsupported scan modes. The standard
// library encoder never emits progressive JPEGs on its own, so this
// patches the SOF marker byte of a baseline stream from 0xC0 to 0xC2.
func Progressive(width, height int) ([]byte, error) {
	data, err := Grayscale(width, height, 85)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	for i := 0; i+1 < len(out); i++ {
		if out[i] == 0xFF && out[i+1] == 0xC0 {
			out[i+1] = 0xC2
			break
		}
	}
	return out, nil
}
