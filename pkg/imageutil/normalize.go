// Package imageutil normalizes uploaded profile pictures: decode
// jpeg/png/webp, honor EXIF orientation, cap the width and re-encode
// as JPEG so the stored files have a uniform format.
package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const jpegQuality = 85

var ErrUnsupportedFormat = errors.New("unsupported image format (jpeg/png/webp)")

// NormalizeToJPEG decodes the input, applies the EXIF orientation,
// shrinks it to maxWidth if wider and returns JPEG bytes.
func NormalizeToJPEG(input []byte, maxWidth int) ([]byte, error) {
	if len(input) == 0 {
		return nil, errors.New("empty image")
	}

	img, err := decode(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}

	img = applyOrientation(img, orientation(bytes.NewReader(input)))

	if maxWidth > 0 {
		img = shrinkToWidth(img, maxWidth)
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func decode(r *bytes.Reader) (image.Image, error) {
	if img, err := jpeg.Decode(r); err == nil {
		return img, nil
	}
	r.Seek(0, io.SeekStart)
	if img, err := png.Decode(r); err == nil {
		return img, nil
	}
	r.Seek(0, io.SeekStart)
	if img, err := webp.Decode(r); err == nil {
		return img, nil
	}
	return nil, ErrUnsupportedFormat
}

func orientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	ori, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return ori
}

// applyOrientation maps the eight EXIF orientation values onto pixel
// remapping. Value 1 (and anything unknown) is a no-op.
func applyOrientation(src image.Image, ori int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	switch ori {
	case 2:
		return remap(src, w, h, func(x, y int) (int, int) { return w - 1 - x, y })
	case 3:
		return remap(src, w, h, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
	case 4:
		return remap(src, w, h, func(x, y int) (int, int) { return x, h - 1 - y })
	case 5:
		return remap(src, h, w, func(x, y int) (int, int) { return y, x })
	case 6:
		return remap(src, h, w, func(x, y int) (int, int) { return h - 1 - y, x })
	case 7:
		return remap(src, h, w, func(x, y int) (int, int) { return h - 1 - y, w - 1 - x })
	case 8:
		return remap(src, h, w, func(x, y int) (int, int) { return y, w - 1 - x })
	default:
		return src
	}
}

func remap(src image.Image, dstW, dstH int, at func(x, y int) (int, int)) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dx, dy := at(x, y)
			dst.Set(dx, dy, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func shrinkToWidth(src image.Image, maxW int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW || w <= 0 || h <= 0 {
		return src
	}

	newH := int(math.Round(float64(h) * float64(maxW) / float64(w)))
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
