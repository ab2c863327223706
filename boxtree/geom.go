package boxtree

import (
	"math"

	"github.com/no-materials/understory/index"
)

// Rect is a world- or local-space axis-aligned rectangle, (minX, minY) to
// (maxX, maxY). It is empty iff MaxX < MinX or MaxY < MinY, matching the
// spatial index's own AABB convention.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewRect builds a Rect from explicit bounds.
func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// IsEmpty reports whether the rect is degenerate on either axis.
func (r Rect) IsEmpty() bool { return r.MaxX < r.MinX || r.MaxY < r.MinY }

// Width and Height return the rect's extents; negative for an empty rect.
func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// ContainsPoint reports whether (x, y) lies within the rect, inclusive of
// the boundary.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Intersect returns the clamped overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		MinX: math.Max(r.MinX, o.MinX),
		MinY: math.Max(r.MinY, o.MinY),
		MaxX: math.Min(r.MaxX, o.MaxX),
		MaxY: math.Min(r.MaxY, o.MaxY),
	}
}

func (r Rect) toAABB() index.AABB[float64] {
	return index.AABB[float64]{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}
}

func rectFromAABB(a index.AABB[float64]) Rect {
	return Rect{MinX: a.MinX, MinY: a.MinY, MaxX: a.MaxX, MaxY: a.MaxY}
}

// RoundedRect is a clip rectangle with an optional uniform corner radius.
// Hit testing against the clip is best-effort: only the rectangular
// bounds are honored, corner radii are not modeled geometrically (per
// the conservative-AABB stance the whole tree takes for non-rectangular
// shapes).
type RoundedRect struct {
	Rect   Rect
	Radius float64
}
