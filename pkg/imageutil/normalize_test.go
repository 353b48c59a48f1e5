package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeResizesWideImages(t *testing.T) {
	input := encodePNG(t, 100, 50)

	out, err := NormalizeToJPEG(input, 40)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, decoded.Bounds().Dx())
	assert.Equal(t, 20, decoded.Bounds().Dy())
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	input := encodePNG(t, 30, 30)

	out, err := NormalizeToJPEG(input, 40)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 30, decoded.Bounds().Dx())
	assert.Equal(t, 30, decoded.Bounds().Dy())
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := NormalizeToJPEG([]byte("definitely not an image"), 40)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = NormalizeToJPEG(nil, 40)
	assert.Error(t, err)
}
