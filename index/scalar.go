// Package index implements a generational, batched spatial index over
// axis-aligned bounding boxes with interchangeable backends.
package index

import "math/bits"

// Ops supplies the numeric behavior a scalar type needs for AABB and SAH
// math that Go cannot express as methods on built-in types directly:
// widening to an accumulator for area costs, and an overflow-safe
// midpoint. Pass a concrete Ops[T] at construction the same way
// sort.Interface or hash.Hash let a caller inject behavior instead of
// requiring it on the value's own type.
type Ops[T any] interface {
	// Zero returns the zero value of T.
	Zero() T
	// Sub returns a - b.
	Sub(a, b T) T
	// ClampZero returns v if v > 0, else 0.
	ClampZero(v T) T
	// Mid returns the overflow-safe midpoint of a and b (a <= b assumed
	// for integer types; for floats this is a plain average).
	Mid(a, b T) T
	// WidenArea multiplies two non-negative extents and returns the
	// product widened to an accumulator large enough to keep SAH costs
	// well-ordered without overflow.
	WidenArea(w, h T) float64
}

// Float64Ops implements Ops[float64].
type Float64Ops struct{}

func (Float64Ops) Zero() float64            { return 0 }
func (Float64Ops) Sub(a, b float64) float64 { return a - b }
func (Float64Ops) ClampZero(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
func (Float64Ops) Mid(a, b float64) float64      { return a + (b-a)/2 }
func (Float64Ops) WidenArea(w, h float64) float64 { return w * h }

// Float32Ops implements Ops[float32].
type Float32Ops struct{}

func (Float32Ops) Zero() float32            { return 0 }
func (Float32Ops) Sub(a, b float32) float32 { return a - b }
func (Float32Ops) ClampZero(v float32) float32 {
	if v > 0 {
		return v
	}
	return 0
}
func (Float32Ops) Mid(a, b float32) float32 { return a + (b-a)/2 }
func (Float32Ops) WidenArea(w, h float32) float64 {
	return float64(w) * float64(h)
}

// Int64Ops implements Ops[int64]. Sub saturates at the int64 limits
// rather than wrapping, matching the reference's saturating_sub.
type Int64Ops struct{}

func (Int64Ops) Zero() int64 { return 0 }

func (Int64Ops) Sub(a, b int64) int64 {
	r := a - b
	// Overflow check for subtraction: signs of a and b differ and the
	// sign of the result doesn't match a.
	if (a^b)&(a^r) < 0 {
		if a < b {
			return minInt64
		}
		return maxInt64
	}
	return r
}

func (Int64Ops) ClampZero(v int64) int64 {
	if v > 0 {
		return v
	}
	return 0
}

// Mid computes the overflow-safe midpoint (a & b) + ((a ^ b) >> 1), the
// classic bit trick that avoids the intermediate overflow of (a+b)/2.
func (Int64Ops) Mid(a, b int64) int64 {
	return (a & b) + ((a ^ b) >> 1)
}

// WidenArea multiplies two non-negative extents using a 128-bit-wide
// intermediate (via math/bits.Mul64 on the unsigned magnitudes) so that
// SAH costs over large integer scenes stay well-ordered instead of
// silently wrapping in a 64-bit product. The widened product is then
// narrowed to float64, which has 53 bits of exact integer precision --
// ample for ranking split costs, which only need a consistent total
// order, not exact integer arithmetic.
func (Int64Ops) WidenArea(w, h int64) float64 {
	hi, lo := bits.Mul64(uint64(w), uint64(h))
	if hi == 0 {
		return float64(lo)
	}
	return float64(hi)*18446744073709551616.0 + float64(lo)
}

const (
	maxInt64 = int64(1<<63 - 1)
	minInt64 = -maxInt64 - 1
)
