package index

import "cmp"

// Backend is the spatial-structure abstraction used by Index. All
// backends share the same observable semantics (insert/update/remove by
// opaque slot, point/rect queries over live slots) so higher layers can
// swap them without churn. Concrete backends are held by value inside
// Index[T, P, B], giving static dispatch with no interface boxing on the
// hot query path.
type Backend[T cmp.Ordered, P any] interface {
	// Insert adds slot with the given AABB.
	Insert(slot int, aabb AABB[T])
	// Update replaces slot's AABB. For a slot that was never inserted,
	// FlatVec and the grid backends do nothing, while RTree and BVH insert
	// it.
	Update(slot int, aabb AABB[T])
	// Remove drops slot from the structure. No-op if already absent.
	Remove(slot int)
	// Clear drops all backend state.
	Clear()
	// QueryPoint appends every slot whose AABB contains (x, y) to dst
	// and returns the extended slice.
	QueryPoint(dst []int, x, y T) []int
	// QueryRect appends every slot whose AABB intersects rect to dst and
	// returns the extended slice.
	QueryRect(dst []int, rect AABB[T]) []int
}
