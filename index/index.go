package index

import "cmp"

// Key is a generational handle: a slot paired with a generation counter
// so a stale handle to a freed-then-reused slot fails lookups instead of
// silently aliasing a different entry.
type Key struct {
	slot       int
	generation uint32
}

func newKey(slot int, generation uint32) Key { return Key{slot: slot, generation: generation} }

type mark int

const (
	markNone mark = iota
	markAdded
	markUpdated
	markRemoved
)

type entry[T cmp.Ordered, P any] struct {
	generation uint32
	aabb       AABB[T]
	payload    P
	mark       mark
	prevAABB   AABB[T]
	hasPrev    bool
}

// Index is a generic AABB index parameterized by a spatial backend B.
// Mutations (Insert/Update/Remove) only mark entries; Commit is what
// actually pushes changes into the backend and reports the batched
// Damage since the last Commit. This mirrors the commit-then-query
// lifecycle every backend and the scene box tree share.
type Index[T cmp.Ordered, P any, B Backend[T, P]] struct {
	entries  []entry[T, P]
	alive    []bool
	freeList []int
	backend  B
}

// New constructs an index over an already-built backend.
func New[T cmp.Ordered, P any, B Backend[T, P]](backend B) *Index[T, P, B] {
	return &Index[T, P, B]{backend: backend}
}

// NewFlat constructs a default flat-vector-backed index.
func NewFlat[T cmp.Ordered, P any]() *Index[T, P, *FlatVec[T, P]] {
	return New[T, P, *FlatVec[T, P]](NewFlatVec[T, P]())
}

// NewUniformGridF64 constructs a float64 uniform-grid-backed index.
func NewUniformGridF64[P any](cellW, cellH, originX, originY float64) *Index[float64, P, *GridF64[P]] {
	return New[float64, P, *GridF64[P]](NewGridF64[P](cellW, cellH, originX, originY))
}

// NewUniformGridF32 constructs a float32 uniform-grid-backed index.
func NewUniformGridF32[P any](cellW, cellH, originX, originY float32) *Index[float32, P, *GridF32[P]] {
	return New[float32, P, *GridF32[P]](NewGridF32[P](cellW, cellH, originX, originY))
}

// NewUniformGridI64 constructs an int64 uniform-grid-backed index.
func NewUniformGridI64[P any](cellW, cellH, originX, originY int64) *Index[int64, P, *GridI64[P]] {
	return New[int64, P, *GridI64[P]](NewGridI64[P](cellW, cellH, originX, originY))
}

// NewRTreeF64 constructs an incrementally-built f64 R-tree-backed index.
func NewRTreeF64[P any]() *Index[float64, P, *RTree[float64, P]] {
	return New[float64, P, *RTree[float64, P]](newRTreeBackendF64[P]())
}

// NewRTreeF32 constructs an incrementally-built f32 R-tree-backed index.
func NewRTreeF32[P any]() *Index[float32, P, *RTree[float32, P]] {
	return New[float32, P, *RTree[float32, P]](newRTreeBackendF32[P]())
}

// NewRTreeI64 constructs an incrementally-built i64 R-tree-backed index.
func NewRTreeI64[P any]() *Index[int64, P, *RTree[int64, P]] {
	return New[int64, P, *RTree[int64, P]](newRTreeBackendI64[P]())
}

// NewBVHF64 constructs a f64 BVH-backed index.
func NewBVHF64[P any]() *Index[float64, P, *BVH[float64, P]] {
	return New[float64, P, *BVH[float64, P]](newBVHBackendF64[P]())
}

// NewBVHF32 constructs a f32 BVH-backed index.
func NewBVHF32[P any]() *Index[float32, P, *BVH[float32, P]] {
	return New[float32, P, *BVH[float32, P]](newBVHBackendF32[P]())
}

// NewBVHI64 constructs an i64 BVH-backed index.
func NewBVHI64[P any]() *Index[int64, P, *BVH[int64, P]] {
	return New[int64, P, *BVH[int64, P]](newBVHBackendI64[P]())
}

// RTreeBulkEntry is one (aabb, payload) pair supplied to a bulk R-tree
// build.
type RTreeBulkEntry[T cmp.Ordered, P any] struct {
	AABB    AABB[T]
	Payload P
}

func newRTreeBulk[T cmp.Ordered, P any](ops Ops[T], entries []RTreeBulkEntry[T, P]) *Index[T, P, *RTree[T, P]] {
	idx := &Index[T, P, *RTree[T, P]]{entries: make([]entry[T, P], 0, len(entries))}
	pairs := make([]struct {
		Slot int
		BBox AABB[T]
	}, len(entries))
	for i, e := range entries {
		idx.entries = append(idx.entries, entry[T, P]{generation: 1, aabb: e.AABB, payload: e.Payload})
		idx.alive = append(idx.alive, true)
		pairs[i] = struct {
			Slot int
			BBox AABB[T]
		}{Slot: i, BBox: e.AABB}
	}
	idx.backend = NewRTreeBulk[T, P](ops, pairs)
	return idx
}

// NewRTreeBulkF64 builds an f64 R-tree-backed index in one pass from a
// fixed entry set using an STR-like packed layout.
func NewRTreeBulkF64[P any](entries []RTreeBulkEntry[float64, P]) *Index[float64, P, *RTree[float64, P]] {
	return newRTreeBulk[float64, P](Float64Ops{}, entries)
}

// NewRTreeBulkF32 builds an f32 R-tree-backed index in one pass.
func NewRTreeBulkF32[P any](entries []RTreeBulkEntry[float32, P]) *Index[float32, P, *RTree[float32, P]] {
	return newRTreeBulk[float32, P](Float32Ops{}, entries)
}

// NewRTreeBulkI64 builds an i64 R-tree-backed index in one pass.
func NewRTreeBulkI64[P any](entries []RTreeBulkEntry[int64, P]) *Index[int64, P, *RTree[int64, P]] {
	return newRTreeBulk[int64, P](Int64Ops{}, entries)
}

// Reserve grows the entries slice's capacity to at least n, avoiding
// reallocation churn when the caller knows the expected scene size.
func (ix *Index[T, P, B]) Reserve(n int) {
	if cap(ix.entries) < n {
		grown := make([]entry[T, P], len(ix.entries), n)
		copy(grown, ix.entries)
		ix.entries = grown
	}
}

// Insert adds aabb with payload, returning a stable handle.
func (ix *Index[T, P, B]) Insert(aabb AABB[T], payload P) Key {
	var slot int
	var generation uint32
	if n := len(ix.freeList); n > 0 {
		slot = ix.freeList[n-1]
		ix.freeList = ix.freeList[:n-1]
		generation = ix.entries[slot].generation + 1
		ix.entries[slot] = entry[T, P]{generation: generation, aabb: aabb, payload: payload, mark: markAdded}
		ix.alive[slot] = true
	} else {
		generation = 1
		ix.entries = append(ix.entries, entry[T, P]{generation: generation, aabb: aabb, payload: payload, mark: markAdded})
		ix.alive = append(ix.alive, true)
		slot = len(ix.entries) - 1
	}
	return newKey(slot, generation)
}

// Update replaces an existing entry's AABB. No-op for a stale or unknown
// key.
func (ix *Index[T, P, B]) Update(key Key, aabb AABB[T]) {
	e := ix.entryMut(key)
	if e == nil {
		return
	}
	if e.mark == markNone {
		e.prevAABB = e.aabb
		e.hasPrev = true
	}
	e.aabb = aabb
	if e.mark != markAdded {
		e.mark = markUpdated
	}
}

// Remove drops an existing entry. No-op for a stale or unknown key. An
// entry added and removed within the same commit cycle never reaches the
// backend at all.
func (ix *Index[T, P, B]) Remove(key Key) {
	slot := key.slot
	if slot < 0 || slot >= len(ix.entries) || !ix.alive[slot] || ix.entries[slot].generation != key.generation {
		return
	}
	if ix.entries[slot].mark == markAdded {
		ix.alive[slot] = false
		gen := ix.entries[slot].generation
		ix.entries[slot] = entry[T, P]{generation: gen}
		ix.freeList = append(ix.freeList, slot)
		return
	}
	ix.entries[slot].mark = markRemoved
}

// Clear drops all entries and backend state without reporting damage.
func (ix *Index[T, P, B]) Clear() {
	ix.entries = nil
	ix.alive = nil
	ix.freeList = nil
	ix.backend.Clear()
}

// Commit pushes every pending mark into the backend and returns the
// batched damage since the previous Commit.
func (ix *Index[T, P, B]) Commit() Damage[T] {
	var dmg Damage[T]
	for i := range ix.entries {
		if !ix.alive[i] {
			continue
		}
		e := &ix.entries[i]
		m := e.mark
		e.mark = markNone
		switch m {
		case markAdded:
			ix.backend.Insert(i, e.aabb)
			dmg.Added = append(dmg.Added, e.aabb)
		case markRemoved:
			ix.backend.Remove(i)
			dmg.Removed = append(dmg.Removed, e.aabb)
			ix.alive[i] = false
			gen := e.generation
			ix.entries[i] = entry[T, P]{generation: gen}
			ix.freeList = append(ix.freeList, i)
		case markUpdated:
			ix.backend.Update(i, e.aabb)
			if e.hasPrev {
				prev := e.prevAABB
				e.hasPrev = false
				if prev != e.aabb {
					dmg.Moved = append(dmg.Moved, MovedAABB[T]{Old: prev, New: e.aabb})
				}
			}
		case markNone:
		}
	}
	return dmg
}

// QueryPoint returns every (Key, payload) whose AABB contains (x, y).
func (ix *Index[T, P, B]) QueryPoint(x, y T) []struct {
	Key     Key
	Payload P
} {
	slots := ix.backend.QueryPoint(nil, x, y)
	out := make([]struct {
		Key     Key
		Payload P
	}, 0, len(slots))
	for _, i := range slots {
		if i >= 0 && i < len(ix.entries) && ix.alive[i] {
			e := ix.entries[i]
			out = append(out, struct {
				Key     Key
				Payload P
			}{Key: newKey(i, e.generation), Payload: e.payload})
		}
	}
	return out
}

// QueryRect returns every (Key, payload) whose AABB intersects rect.
func (ix *Index[T, P, B]) QueryRect(rect AABB[T]) []struct {
	Key     Key
	Payload P
} {
	slots := ix.backend.QueryRect(nil, rect)
	out := make([]struct {
		Key     Key
		Payload P
	}, 0, len(slots))
	for _, i := range slots {
		if i >= 0 && i < len(ix.entries) && ix.alive[i] {
			e := ix.entries[i]
			out = append(out, struct {
				Key     Key
				Payload P
			}{Key: newKey(i, e.generation), Payload: e.payload})
		}
	}
	return out
}

func (ix *Index[T, P, B]) entryMut(key Key) *entry[T, P] {
	if key.slot < 0 || key.slot >= len(ix.entries) || !ix.alive[key.slot] {
		return nil
	}
	e := &ix.entries[key.slot]
	if e.generation != key.generation {
		return nil
	}
	return e
}
