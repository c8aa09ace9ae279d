// Package imgcrop applies crop results and live transforms to decoded pixels.
package imgcrop

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	// Extra source formats beyond imaging's jpeg/png/gif/tiff.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/frudas24/zoomkit/internal/crop"
	"github.com/frudas24/zoomkit/internal/geom"
)

// ErrEmptyCrop is returned when a crop region misses the source image.
var ErrEmptyCrop = errors.New("crop region outside image")

// Open decodes the image at path honoring EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

// SizeOf returns the pixel size of img.
func SizeOf(img image.Image) geom.Size[float64] {
	b := img.Bounds()
	return geom.Sz(float64(b.Dx()), float64(b.Dy()))
}

// Apply cuts r out of src and applies its flips, rotation and fixed-width
// resize, in that order.
func Apply(src image.Image, r crop.Result) (*image.NRGBA, error) {
	b := src.Bounds()
	rect := r.Rect().Add(b.Min).Intersect(b)
	if rect.Empty() {
		return nil, ErrEmptyCrop
	}

	img := imaging.Crop(src, rect)
	if r.Context.FlipHorizontal {
		img = imaging.FlipH(img)
	}
	if r.Context.FlipVertical {
		img = imaging.FlipV(img)
	}
	img = rotate(img, r.Context.Degrees())

	f := r.Factor
	if f <= 0 {
		f = 1
	}
	w := int(math.Round(r.Output.Width / f))
	h := int(math.Round(r.Output.Height / f))
	if w > 0 && h > 0 && (w < img.Bounds().Dx() || h < img.Bounds().Dy()) {
		img = imaging.CropCenter(img, min(w, img.Bounds().Dx()), min(h, img.Bounds().Dy()))
	}

	if f != 1 {
		ow := int(math.Round(r.Output.Width))
		oh := int(math.Round(r.Output.Height))
		if ow > 0 && oh > 0 {
			img = imaging.Resize(img, ow, oh, imaging.Lanczos)
		}
	}
	return img, nil
}

// rotate turns img clockwise by deg. Quarter turns are lossless.
func rotate(img *image.NRGBA, deg float64) *image.NRGBA {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	const eps = 1e-6
	switch {
	case deg < eps || 360-deg < eps:
		return img
	case math.Abs(deg-90) < eps:
		return imaging.Rotate270(img)
	case math.Abs(deg-180) < eps:
		return imaging.Rotate180(img)
	case math.Abs(deg-270) < eps:
		return imaging.Rotate90(img)
	default:
		return imaging.Rotate(img, -deg, color.Transparent)
	}
}

// Viewport renders what the crop box shows: src scaled into container, then
// moved by m, which maps container-centered points to crop-centered points.
func Viewport(src image.Image, m f64.Aff3, container, cropSize geom.Size[float64]) *image.NRGBA {
	w := int(math.Round(cropSize.Width))
	h := int(math.Round(cropSize.Height))
	dst := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))

	res := SizeOf(src)
	if !geom.Valid(res) || !geom.Valid(container) {
		return dst
	}
	b := src.Bounds()
	toContainer := geom.Mul(
		geom.Scaling(container.Width/res.Width, container.Height/res.Height),
		geom.Translation(geom.V(-float64(b.Min.X)-res.Width/2, -float64(b.Min.Y)-res.Height/2)),
	)
	s2d := geom.Mul(geom.Translation(geom.V(cropSize.Width/2, cropSize.Height/2)), geom.Mul(m, toContainer))
	draw.ApproxBiLinear.Transform(dst, s2d, src, b, draw.Over, nil)
	return dst
}
