package boxtree

import (
	"math"
	"sort"

	"github.com/no-materials/understory/index"
)

// node is the arena-resident storage for one NodeId slot. A freed slot is
// zero-valued and queued on Tree.freeList until reused by Insert, at which
// point its generation is bumped so any previously-issued NodeId for that
// slot reads as dead.
type node struct {
	alive       bool
	generation  uint32
	hasParent   bool
	parent      NodeId
	children    []NodeId
	local       LocalNode
	world       worldNode
	dirty       dirtyFlags
	indexKey    index.Key
	hasIndexKey bool
}

// Damage describes the screen regions a Tree.Commit touched.
type Damage struct {
	DirtyRects []Rect
}

// IsEmpty reports whether nothing changed.
func (d Damage) IsEmpty() bool { return len(d.DirtyRects) == 0 }

// Union returns the bounding box of every dirty rect, or false if Damage is
// empty.
func (d Damage) Union() (Rect, bool) {
	if len(d.DirtyRects) == 0 {
		return Rect{}, false
	}
	u := d.DirtyRects[0]
	for _, r := range d.DirtyRects[1:] {
		u = Rect{
			MinX: math.Min(u.MinX, r.MinX),
			MinY: math.Min(u.MinY, r.MinY),
			MaxX: math.Max(u.MaxX, r.MaxX),
			MaxY: math.Max(u.MaxY, r.MaxY),
		}
	}
	return u, true
}

// Tree owns a hierarchy of LocalNode geometry plus the derived world
// transforms, clips, and bounds, and mirrors every live node's world bounds
// into a flat spatial index for point and rect queries.
//
// Grounded on the box tree's tree.rs: an arena of slots with a free list,
// unconditional full re-traversal from every root on Commit, and damage
// reported only for non-degenerate bounds that actually changed. The
// hierarchy operations (Insert/Remove/Reparent, cycle guards via debug
// assertions) follow willow's node.go AddChild/RemoveChild idiom.
type Tree struct {
	nodes        []node
	freeList     []uint32
	roots        []NodeId
	idx          *index.Index[float64, NodeId, *index.FlatVec[float64, NodeId]]
	pendingDamage []Rect
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{idx: index.NewFlat[float64, NodeId]()}
}

func (t *Tree) isAlive(id NodeId) bool {
	i := id.idx()
	if i < 0 || i >= len(t.nodes) {
		return false
	}
	n := &t.nodes[i]
	return n.alive && n.generation == id.generation
}

// IsAlive reports whether id still refers to a live node.
func (t *Tree) IsAlive(id NodeId) bool { return t.isAlive(id) }

// IsNewer reports whether a is considered newer than b, per NodeId's
// generation-then-slot total order.
func (t *Tree) IsNewer(a, b NodeId) bool { return idIsNewer(a, b) }

// Insert adds a new node with the given local geometry under parent, or as
// a root if parent is nil.
func (t *Tree) Insert(parent *NodeId, local LocalNode) NodeId {
	var slot uint32
	var generation uint32
	if n := len(t.freeList); n > 0 {
		slot = t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		generation = t.nodes[slot].generation + 1
		t.nodes[slot] = node{alive: true, generation: generation, local: local, dirty: allDirty()}
	} else {
		generation = 1
		t.nodes = append(t.nodes, node{alive: true, generation: 1, local: local, dirty: allDirty()})
		slot = uint32(len(t.nodes) - 1)
	}
	id := newNodeId(slot, generation)
	if parent != nil {
		debugAssert(t.isAlive(*parent), "Insert: parent %v is not alive", *parent)
		if t.isAlive(*parent) {
			p := &t.nodes[parent.idx()]
			p.children = append(p.children, id)
			t.nodes[slot].hasParent = true
			t.nodes[slot].parent = *parent
		} else {
			t.roots = append(t.roots, id)
		}
	} else {
		t.roots = append(t.roots, id)
	}
	return id
}

func removeFromSlice(s []NodeId, id NodeId) []NodeId {
	for i, v := range s {
		if v == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func (t *Tree) detach(id NodeId) {
	n := &t.nodes[id.idx()]
	if n.hasParent {
		p := &t.nodes[n.parent.idx()]
		p.children = removeFromSlice(p.children, id)
	} else {
		t.roots = removeFromSlice(t.roots, id)
	}
	n.hasParent = false
}

func (t *Tree) freeSubtree(id NodeId) {
	n := t.nodes[id.idx()]
	for _, c := range n.children {
		t.freeSubtree(c)
	}
	if n.hasIndexKey {
		t.idx.Remove(n.indexKey)
	}
	t.nodes[id.idx()] = node{generation: n.generation}
	t.freeList = append(t.freeList, uint32(id.idx()))
}

// Remove deletes id and its entire subtree. No-op (debug-assert-guarded)
// for a stale or unknown id.
func (t *Tree) Remove(id NodeId) {
	if !t.isAlive(id) {
		debugAssert(false, "Remove: %v is not alive", id)
		return
	}
	t.detach(id)
	t.freeSubtree(id)
}

func (t *Tree) isDescendantOf(candidate, root NodeId) bool {
	if candidate == root {
		return true
	}
	n := t.nodes[root.idx()]
	for _, c := range n.children {
		if t.isDescendantOf(candidate, c) {
			return true
		}
	}
	return false
}

// Reparent moves id (with its subtree) under newParent, or to the root set
// if newParent is nil. Rejected (debug-assert-guarded no-op) if it would
// create a cycle or either id is stale.
func (t *Tree) Reparent(id NodeId, newParent *NodeId) {
	if !t.isAlive(id) {
		debugAssert(false, "Reparent: %v is not alive", id)
		return
	}
	if newParent != nil {
		if !t.isAlive(*newParent) {
			debugAssert(false, "Reparent: new parent %v is not alive", *newParent)
			return
		}
		if *newParent == id || t.isDescendantOf(*newParent, id) {
			debugAssert(false, "Reparent: %v would create a cycle", id)
			return
		}
	}
	t.detach(id)
	if newParent != nil {
		p := &t.nodes[newParent.idx()]
		p.children = append(p.children, id)
		n := &t.nodes[id.idx()]
		n.hasParent = true
		n.parent = *newParent
	} else {
		t.roots = append(t.roots, id)
	}
	t.markSubtreeDirty(id, allDirty())
}

func mergeDirty(d *dirtyFlags, add dirtyFlags) {
	d.layout = d.layout || add.layout
	d.transform = d.transform || add.transform
	d.clip = d.clip || add.clip
	d.z = d.z || add.z
	d.index = d.index || add.index
}

func (t *Tree) markSubtreeDirty(id NodeId, flags dirtyFlags) {
	n := &t.nodes[id.idx()]
	mergeDirty(&n.dirty, flags)
	for _, c := range n.children {
		t.markSubtreeDirty(c, flags)
	}
}

// SetLocalBounds replaces a node's untransformed bounds.
func (t *Tree) SetLocalBounds(id NodeId, bounds Rect) {
	debugAssert(t.isAlive(id), "SetLocalBounds: %v is not alive", id)
	if !t.isAlive(id) {
		return
	}
	n := &t.nodes[id.idx()]
	n.local.LocalBounds = bounds
	n.dirty.layout = true
	n.dirty.index = true
}

// SetLocalTransform replaces a node's parent-relative transform. Dirties
// the whole subtree since every descendant's world transform depends on
// it.
func (t *Tree) SetLocalTransform(id NodeId, tr Affine) {
	debugAssert(t.isAlive(id), "SetLocalTransform: %v is not alive", id)
	if !t.isAlive(id) {
		return
	}
	t.nodes[id.idx()].local.LocalTransform = tr
	t.markSubtreeDirty(id, dirtyFlags{transform: true, index: true})
}

// SetLocalClip replaces a node's clip rect, enabling or disabling it.
// Dirties the whole subtree since clips intersect down the tree.
func (t *Tree) SetLocalClip(id NodeId, clip RoundedRect, has bool) {
	debugAssert(t.isAlive(id), "SetLocalClip: %v is not alive", id)
	if !t.isAlive(id) {
		return
	}
	n := &t.nodes[id.idx()]
	n.local.LocalClip = clip
	n.local.HasLocalClip = has
	t.markSubtreeDirty(id, dirtyFlags{clip: true, index: true})
}

// SetFlags replaces a node's visibility/pickability flags.
func (t *Tree) SetFlags(id NodeId, flags NodeFlags) {
	debugAssert(t.isAlive(id), "SetFlags: %v is not alive", id)
	if !t.isAlive(id) {
		return
	}
	t.nodes[id.idx()].local.Flags = flags
}

// SetZIndex replaces a node's stacking order. Hit tests and rect queries
// compare ZIndex across all candidate nodes, not per parent.
func (t *Tree) SetZIndex(id NodeId, z int32) {
	debugAssert(t.isAlive(id), "SetZIndex: %v is not alive", id)
	if !t.isAlive(id) {
		return
	}
	n := &t.nodes[id.idx()]
	n.local.ZIndex = z
	n.dirty.z = true
}

// ZIndex returns a live node's z-index.
func (t *Tree) ZIndex(id NodeId) (int32, bool) {
	if !t.isAlive(id) {
		return 0, false
	}
	return t.nodes[id.idx()].local.ZIndex, true
}

// WorldBounds returns a live node's last-committed world bounds.
func (t *Tree) WorldBounds(id NodeId) (Rect, bool) {
	if !t.isAlive(id) {
		return Rect{}, false
	}
	return t.nodes[id.idx()].world.worldBounds, true
}

// ParentOf returns id's parent, or false if id is a root or stale.
func (t *Tree) ParentOf(id NodeId) (NodeId, bool) {
	if !t.isAlive(id) {
		return NodeId{}, false
	}
	n := t.nodes[id.idx()]
	if !n.hasParent {
		return NodeId{}, false
	}
	return n.parent, true
}

// updateWorldRecursive recomputes id's world transform, clip, and bounds
// from its parent's already-computed values, mirrors the result into the
// spatial index, records damage for a non-degenerate bounds change, and
// recurses into children. Called unconditionally for every live node on
// every Commit, regardless of dirty flags.
func (t *Tree) updateWorldRecursive(id NodeId, parentTransform Affine, parentClip Rect, hasParentClip bool) {
	n := &t.nodes[id.idx()]

	worldTransform := parentTransform.Mul(n.local.LocalTransform)
	bbox := worldTransform.TransformRect(n.local.LocalBounds)

	clipRect := parentClip
	hasClip := hasParentClip
	if n.local.HasLocalClip {
		localClipWorld := worldTransform.TransformRect(n.local.LocalClip.Rect)
		if hasParentClip {
			clipRect = clipRect.Intersect(localClipWorld)
		} else {
			clipRect = localClipWorld
		}
		hasClip = true
	}

	worldBounds := bbox
	if hasClip {
		worldBounds = bbox.Intersect(clipRect)
	}

	oldBounds := n.world.worldBounds
	changed := oldBounds != worldBounds

	n.world = worldNode{worldTransform: worldTransform, worldBounds: worldBounds, worldClip: clipRect, hasWorldClip: hasClip}
	n.dirty = dirtyFlags{}

	if changed {
		if !oldBounds.IsEmpty() {
			t.pendingDamage = append(t.pendingDamage, oldBounds)
		}
		if !worldBounds.IsEmpty() {
			t.pendingDamage = append(t.pendingDamage, worldBounds)
		}
	}

	aabb := worldBounds.toAABB()
	if n.hasIndexKey {
		t.idx.Update(n.indexKey, aabb)
	} else {
		n.indexKey = t.idx.Insert(aabb, id)
		n.hasIndexKey = true
	}

	children := n.children
	for _, c := range children {
		t.updateWorldRecursive(c, worldTransform, clipRect, hasClip)
	}
}

// Commit re-derives world transforms, clips, and bounds for every live
// node from every root down, mirrors the result into the spatial index,
// and returns the accumulated damage.
func (t *Tree) Commit() Damage {
	t.pendingDamage = t.pendingDamage[:0]
	for _, root := range t.roots {
		t.updateWorldRecursive(root, Identity, Rect{}, false)
	}
	if u, ok := t.idx.Commit().Union(); ok {
		t.pendingDamage = append(t.pendingDamage, rectFromAABB(u))
	}
	return Damage{DirtyRects: append([]Rect(nil), t.pendingDamage...)}
}

func (t *Tree) pathToRoot(id NodeId) []NodeId {
	var path []NodeId
	cur := id
	for {
		path = append(path, cur)
		n := &t.nodes[cur.idx()]
		if !n.hasParent {
			break
		}
		cur = n.parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// HitTestPoint finds the topmost node (by strictly-higher ZIndex, then
// newer NodeId) whose world clip contains (x, y) and whose local clip (if
// any) and local bounds contain the point after transforming it into the
// node's local space.
func (t *Tree) HitTestPoint(x, y float64, filter QueryFilter) (Hit, bool) {
	candidates := t.idx.QueryPoint(x, y)
	var best NodeId
	haveBest := false
	for _, c := range candidates {
		id := c.Payload
		if !t.isAlive(id) {
			continue
		}
		n := &t.nodes[id.idx()]
		if filter.VisibleOnly && !n.local.Flags.Has(FlagVisible) {
			continue
		}
		if filter.PickableOnly && !n.local.Flags.Has(FlagPickable) {
			continue
		}
		if n.world.hasWorldClip && !n.world.worldClip.ContainsPoint(x, y) {
			continue
		}
		lx, ly := n.world.worldTransform.Invert().Apply(x, y)
		if n.local.HasLocalClip && !n.local.LocalClip.Rect.ContainsPoint(lx, ly) {
			continue
		}
		if !n.local.LocalBounds.ContainsPoint(lx, ly) {
			continue
		}
		if !haveBest {
			best, haveBest = id, true
			continue
		}
		bestZ := t.nodes[best.idx()].local.ZIndex
		if n.local.ZIndex > bestZ || (n.local.ZIndex == bestZ && idIsNewer(id, best)) {
			best = id
		}
	}
	if !haveBest {
		return Hit{}, false
	}
	return Hit{Node: best, Path: t.pathToRoot(best)}, true
}

// IntersectRect returns every live node (subject to filter) whose world
// bounds intersect rect, ordered topmost-first by ZIndex then newer
// NodeId.
func (t *Tree) IntersectRect(rect Rect, filter QueryFilter) []NodeId {
	candidates := t.idx.QueryRect(rect.toAABB())
	out := make([]NodeId, 0, len(candidates))
	for _, c := range candidates {
		id := c.Payload
		if !t.isAlive(id) {
			continue
		}
		n := &t.nodes[id.idx()]
		if filter.VisibleOnly && !n.local.Flags.Has(FlagVisible) {
			continue
		}
		if filter.PickableOnly && !n.local.Flags.Has(FlagPickable) {
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := &t.nodes[out[i].idx()], &t.nodes[out[j].idx()]
		if ni.local.ZIndex != nj.local.ZIndex {
			return ni.local.ZIndex > nj.local.ZIndex
		}
		return idIsNewer(out[i], out[j])
	})
	return out
}
