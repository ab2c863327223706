package index

import "cmp"

// FlatVec is a dense slice of optional AABBs keyed by slot, scanned
// linearly on every query. It is the reference oracle backend used in
// tests and a reasonable default for small scenes where spatial-index
// overhead outweighs its benefit.
type FlatVec[T cmp.Ordered, P any] struct {
	entries []flatEntry[T]
}

type flatEntry[T cmp.Ordered] struct {
	aabb AABB[T]
	live bool
}

// NewFlatVec constructs an empty FlatVec backend.
func NewFlatVec[T cmp.Ordered, P any]() *FlatVec[T, P] {
	return &FlatVec[T, P]{}
}

func (f *FlatVec[T, P]) Insert(slot int, aabb AABB[T]) {
	if slot >= len(f.entries) {
		grown := make([]flatEntry[T], slot+1)
		copy(grown, f.entries)
		f.entries = grown
	}
	f.entries[slot] = flatEntry[T]{aabb: aabb, live: true}
}

func (f *FlatVec[T, P]) Update(slot int, aabb AABB[T]) {
	if slot < len(f.entries) && f.entries[slot].live {
		f.entries[slot].aabb = aabb
	}
}

func (f *FlatVec[T, P]) Remove(slot int) {
	if slot < len(f.entries) {
		f.entries[slot] = flatEntry[T]{}
	}
}

func (f *FlatVec[T, P]) Clear() {
	f.entries = nil
}

func (f *FlatVec[T, P]) QueryPoint(dst []int, x, y T) []int {
	for i, e := range f.entries {
		if e.live && e.aabb.ContainsPoint(x, y) {
			dst = append(dst, i)
		}
	}
	return dst
}

func (f *FlatVec[T, P]) QueryRect(dst []int, rect AABB[T]) []int {
	for i, e := range f.entries {
		if e.live && !e.aabb.Intersect(rect).IsEmpty() {
			dst = append(dst, i)
		}
	}
	return dst
}
