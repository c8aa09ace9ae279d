package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Identity is the identity affine matrix.
var Identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Mul returns p·q, so q is applied first.
func Mul(p, q f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		p[0]*q[0] + p[1]*q[3],
		p[0]*q[1] + p[1]*q[4],
		p[0]*q[2] + p[1]*q[5] + p[2],
		p[3]*q[0] + p[4]*q[3],
		p[3]*q[1] + p[4]*q[4],
		p[3]*q[2] + p[4]*q[5] + p[5],
	}
}

// Translation returns a translation matrix.
func Translation(v Vec) f64.Aff3 {
	return f64.Aff3{1, 0, v.X, 0, 1, v.Y}
}

// Scaling returns a non-uniform scale matrix.
func Scaling(sx, sy float64) f64.Aff3 {
	return f64.Aff3{sx, 0, 0, 0, sy, 0}
}

// Rotation returns a rotation matrix for angle radians.
func Rotation(angle float64) f64.Aff3 {
	sin, cos := math.Sincos(angle)
	return f64.Aff3{cos, -sin, 0, sin, cos, 0}
}

// Apply maps v through m.
func Apply(m f64.Aff3, v Vec) Vec {
	return Vec{X: m[0]*v.X + m[1]*v.Y + m[2], Y: m[3]*v.X + m[4]*v.Y + m[5]}
}

// TransformMatrix maps container-centered points to crop-centered screen
// points: translate, then scale, then rotate, then mirror the flipped axes.
func TransformMatrix(translate Vec, scale, rotation float64, flipH, flipV bool) f64.Aff3 {
	fx, fy := 1.0, 1.0
	if flipH {
		fx = -1
	}
	if flipV {
		fy = -1
	}
	m := Mul(Translation(translate), Scaling(scale, scale))
	m = Mul(m, Rotation(rotation))
	return Mul(m, Scaling(fx, fy))
}
