package geom

import "math"

// RotatedSize returns the smallest size with the given aspect ratio that,
// rotated by angle, still covers crop. At angle 0 it is the cover fit.
// A degenerate aspect ratio or crop box returns crop unchanged.
func RotatedSize(crop Size[float64], aspectRatio, angle float64) Size[float64] {
	if !Valid(crop) || !finite(aspectRatio) || aspectRatio <= 0 || !finite(angle) {
		return crop
	}
	sin, cos := math.Sincos(angle)
	sin, cos = math.Abs(sin), math.Abs(cos)

	// the crop box seen from the image frame must fit inside the image
	footW := crop.Width*cos + crop.Height*sin
	footH := crop.Width*sin + crop.Height*cos
	width := math.Max(footW, footH*aspectRatio)
	return Size[float64]{Width: width, Height: width / aspectRatio}
}

// FitRotated returns the largest size with the given aspect ratio whose
// footprint, rotated by angle, fits inside box. At angle 0 it is the contain fit.
func FitRotated(box Size[float64], aspectRatio, angle float64) Size[float64] {
	if !Valid(box) || !finite(aspectRatio) || aspectRatio <= 0 || !finite(angle) {
		return box
	}
	sin, cos := math.Sincos(angle)
	sin, cos = math.Abs(sin), math.Abs(cos)

	width := math.Min(
		box.Width/(cos+sin/aspectRatio),
		box.Height/(sin+cos/aspectRatio),
	)
	return Size[float64]{Width: width, Height: width / aspectRatio}
}

// RotatedBounds returns the axis-aligned footprint of size rotated by angle.
func RotatedBounds(size Size[float64], angle float64) Size[float64] {
	sin, cos := math.Sincos(angle)
	sin, cos = math.Abs(sin), math.Abs(cos)
	return Size[float64]{
		Width:  size.Width*cos + size.Height*sin,
		Height: size.Width*sin + size.Height*cos,
	}
}
