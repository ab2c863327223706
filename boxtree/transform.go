package boxtree

import "math"

// Affine is a 2D affine transform [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// Adapted from willow's own [a,b,c,d,tx,ty] matrix layout and composition
// (transform.go), generalized here into a free-standing value type
// instead of node-owned mutable fields.
type Affine [6]float64

// Identity is the identity affine transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Mul composes m with other, applying other first: (m.Mul(other)).Apply(p)
// equals m.Apply(other.Apply(p)).
func (m Affine) Mul(other Affine) Affine {
	return Affine{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Invert returns the inverse transform. Returns Identity if the matrix is
// singular (determinant near zero), matching willow's invertAffine guard.
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms a point by the matrix.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformRect transforms r's four corners and returns their conservative
// axis-aligned bounding box in the destination space.
func (m Affine) TransformRect(r Rect) Rect {
	x0, y0 := m.Apply(r.MinX, r.MinY)
	x1, y1 := m.Apply(r.MaxX, r.MinY)
	x2, y2 := m.Apply(r.MinX, r.MaxY)
	x3, y3 := m.Apply(r.MaxX, r.MaxY)
	return Rect{
		MinX: math.Min(math.Min(x0, x1), math.Min(x2, x3)),
		MinY: math.Min(math.Min(y0, y1), math.Min(y2, y3)),
		MaxX: math.Max(math.Max(x0, x1), math.Max(x2, x3)),
		MaxY: math.Max(math.Max(y0, y1), math.Max(y2, y3)),
	}
}
