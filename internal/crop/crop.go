// Package crop maps an on-screen transform back onto source image pixels.
package crop

import (
	"image"
	"math"

	"github.com/frudas24/zoomkit/internal/geom"
)

// Context carries the orientation a consumer must apply after cropping.
type Context struct {
	// RotationAngle is in radians, clockwise on screen.
	RotationAngle  float64 `json:"rotationAngle"`
	FlipHorizontal bool    `json:"flipHorizontal"`
	FlipVertical   bool    `json:"flipVertical"`
}

// Degrees returns the rotation in degrees.
func (c Context) Degrees() float64 {
	return c.RotationAngle * 180 / math.Pi
}

// Result is a pixel-space crop region of the unrotated source image.
type Result struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
	Context Context `json:"context"`
	// Output is the crop box size in pixels after rotation is applied.
	Output geom.Size[float64] `json:"output"`
	// Factor is the fixed-width rescale applied to every pixel field; 1 when none.
	Factor float64 `json:"factor"`
}

// Rect returns the region rounded to whole pixels, in source pixel units
// (before any fixed-width rescale).
func (r Result) Rect() image.Rectangle {
	f := r.Factor
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		f = 1
	}
	x0 := int(math.Round(r.OriginX / f))
	y0 := int(math.Round(r.OriginY / f))
	x1 := int(math.Round((r.OriginX + r.Width) / f))
	y1 := int(math.Round((r.OriginY + r.Height) / f))
	return image.Rect(x0, y0, x1, y1)
}

// Params is the transform snapshot a crop is resolved from.
type Params struct {
	// Container is the unrotated display size of the image.
	Container  geom.Size[float64]
	CropSize   geom.Size[float64]
	Resolution geom.Size[float64]
	// Position is the translation of the container center from the crop center.
	Position geom.Vec
	Scale    float64
	Context  Context
	// FixedWidth rescales the result so Width equals it; ignored when <= 0.
	FixedWidth float64
}

// Resolve returns the source pixels under the crop box. Degenerate inputs
// yield the whole image.
func Resolve(p Params) Result {
	if !valid(p) {
		return full(p)
	}
	kx := p.Resolution.Width / p.Container.Width
	ky := p.Resolution.Height / p.Container.Height
	angle := p.Context.RotationAngle

	// crop center in container space: undo translate, rotation, scale, then mirror
	q := geom.Rotate(p.Position.Mul(-1), -angle).Mul(1 / p.Scale)
	if p.Context.FlipHorizontal {
		q.X = -q.X
	}
	if p.Context.FlipVertical {
		q.Y = -q.Y
	}

	size := geom.RotatedBounds(p.CropSize, angle).Mul(1 / p.Scale)
	topLeft := geom.Half(p.Container).Add(q).Sub(geom.Half(size))

	x0, x1 := span(topLeft.X*kx, size.Width*kx, p.Resolution.Width)
	y0, y1 := span(topLeft.Y*ky, size.Height*ky, p.Resolution.Height)

	r := Result{
		Width:   x1 - x0,
		Height:  y1 - y0,
		OriginX: x0,
		OriginY: y0,
		Context: p.Context,
		Output: geom.Size[float64]{
			Width:  p.CropSize.Width * kx / p.Scale,
			Height: p.CropSize.Height * ky / p.Scale,
		},
		Factor: 1,
	}
	return rescale(r, p.FixedWidth)
}

// span clamps [origin, origin+length] into [0, limit].
func span(origin, length, limit float64) (float64, float64) {
	lo := geom.Clamp(origin, 0, limit)
	hi := geom.Clamp(origin+length, 0, limit)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// rescale applies a fixed width to every pixel field.
func rescale(r Result, fixedWidth float64) Result {
	if fixedWidth <= 0 || math.IsNaN(fixedWidth) || math.IsInf(fixedWidth, 0) || r.Width <= 0 {
		return r
	}
	f := fixedWidth / r.Width
	r.Width = fixedWidth
	r.Height *= f
	r.OriginX *= f
	r.OriginY *= f
	r.Output = r.Output.Mul(f)
	r.Factor = f
	return r
}

// full returns the whole source image.
func full(p Params) Result {
	res := p.Resolution
	if !geom.Valid(res) {
		res = geom.Size[float64]{}
	}
	r := Result{Width: res.Width, Height: res.Height, Context: p.Context, Output: res, Factor: 1}
	return rescale(r, p.FixedWidth)
}

// valid reports whether p can be resolved without a non-finite result.
func valid(p Params) bool {
	return geom.Valid(p.Container) &&
		geom.Valid(p.CropSize) &&
		geom.Valid(p.Resolution) &&
		geom.Finite(p.Position) &&
		p.Scale > 0 && !math.IsInf(p.Scale, 0) &&
		!math.IsNaN(p.Context.RotationAngle) && !math.IsInf(p.Context.RotationAngle, 0)
}
