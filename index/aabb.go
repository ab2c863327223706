package index

import "cmp"

// AABB is an axis-aligned bounding box over a scalar type T (float32,
// float64, or int64). It is empty iff MaxX < MinX or MaxY < MinY.
type AABB[T cmp.Ordered] struct {
	MinX, MinY, MaxX, MaxY T
}

// FromXYWH builds an AABB from an origin and a non-negative width/height.
func FromXYWH[T cmp.Ordered](x, y, w, h T, ops Ops[T]) AABB[T] {
	_ = ops
	return AABB[T]{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// IsEmpty reports whether the box is degenerate (inverted on either axis).
func (a AABB[T]) IsEmpty() bool {
	return a.MaxX < a.MinX || a.MaxY < a.MinY
}

// ContainsPoint reports whether (x, y) lies within the box, inclusive of
// the boundary.
func (a AABB[T]) ContainsPoint(x, y T) bool {
	if a.IsEmpty() {
		return false
	}
	return x >= a.MinX && x <= a.MaxX && y >= a.MinY && y <= a.MaxY
}

// Intersect returns the clamped overlap of a and b. The result IsEmpty if
// the boxes do not overlap (or either input is already empty): the
// componentwise min/max clamp naturally yields MaxX < MinX or
// MaxY < MinY in that case, with no separate pre-check needed.
func (a AABB[T]) Intersect(b AABB[T]) AABB[T] {
	return AABB[T]{
		MinX: maxT(a.MinX, b.MinX),
		MinY: maxT(a.MinY, b.MinY),
		MaxX: minT(a.MaxX, b.MaxX),
		MaxY: minT(a.MaxY, b.MaxY),
	}
}

// Width and Height return the box's extents, clamped to zero for
// degenerate boxes via the supplied Ops.
func (a AABB[T]) Width(ops Ops[T]) T  { return ops.ClampZero(ops.Sub(a.MaxX, a.MinX)) }
func (a AABB[T]) Height(ops Ops[T]) T { return ops.ClampZero(ops.Sub(a.MaxY, a.MinY)) }

// area computes the widened area of a box, 0 for empty boxes.
func area[T cmp.Ordered](a AABB[T], ops Ops[T]) float64 {
	if a.IsEmpty() {
		return 0
	}
	return ops.WidenArea(a.Width(ops), a.Height(ops))
}

// CentroidX and CentroidY return the overflow-safe midpoint of each axis,
// used to sort items for SAH/STR splits.
func (a AABB[T]) CentroidX(ops Ops[T]) T { return ops.Mid(a.MinX, a.MaxX) }
func (a AABB[T]) CentroidY(ops Ops[T]) T { return ops.Mid(a.MinY, a.MaxY) }

func minT[T cmp.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxT[T cmp.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// unionAABB returns the smallest box enclosing both a and b. An empty
// input is treated as not contributing to the union.
func unionAABB[T cmp.Ordered](a, b AABB[T]) AABB[T] {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	return AABB[T]{
		MinX: minT(a.MinX, b.MinX),
		MinY: minT(a.MinY, b.MinY),
		MaxX: maxT(a.MaxX, b.MaxX),
		MaxY: maxT(a.MaxY, b.MaxY),
	}
}
