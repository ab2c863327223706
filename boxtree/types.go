// Package boxtree maintains a hierarchy of world-space transforms, clips,
// and bounds and mirrors live nodes into a spatial index for hit testing
// and rectangle queries.
package boxtree

// NodeId is a small, copyable handle that stays stable across updates but
// becomes invalid when the underlying slot is reused. It consists of a
// slot index and a generation counter.
//
// On insert, a fresh slot is allocated with generation 1. On remove, the
// slot is freed; any existing NodeId that pointed to that slot is now
// stale. On reuse of a freed slot, its generation is incremented,
// producing a new, distinct NodeId.
//
// A NodeId is considered newer than another when it has a higher
// generation; if generations are equal, the one with the higher slot
// index is considered newer. This total order is used for deterministic
// tie-breaks in Tree.HitTestPoint and Tree.IntersectRect, and is exposed
// through Tree.IsNewer. Use Tree.IsAlive to
// check whether a NodeId still refers to a live node: stale NodeIds never
// alias a different live node because the generation must match.
type NodeId struct {
	slot       uint32
	generation uint32
}

func newNodeId(slot, generation uint32) NodeId {
	return NodeId{slot: slot, generation: generation}
}

func (id NodeId) idx() int { return int(id.slot) }

// idIsNewer reports whether a is considered newer than b: higher
// generation wins outright; equal generations fall back to slot index.
func idIsNewer(a, b NodeId) bool {
	return a.generation > b.generation || (a.generation == b.generation && a.slot > b.slot)
}

// NodeFlags controls visibility and picking participation.
type NodeFlags uint8

const (
	// FlagVisible marks a node as participating in rendering and
	// intersection queries.
	FlagVisible NodeFlags = 1 << iota
	// FlagPickable marks a node as participating in hit testing.
	FlagPickable
)

// DefaultNodeFlags is visible and pickable, the flag set new nodes get
// unless LocalNode.Flags is set explicitly.
const DefaultNodeFlags = FlagVisible | FlagPickable

// Has reports whether all bits in want are set.
func (f NodeFlags) Has(want NodeFlags) bool { return f&want == want }

// LocalNode is the local (parent-relative) geometry supplied for a node.
type LocalNode struct {
	// LocalBounds is the untransformed bounds. For non-axis-aligned
	// content, supply a conservative AABB.
	LocalBounds Rect
	// LocalTransform is this node's transform relative to its parent.
	LocalTransform Affine
	// LocalClip, if set, is intersected into the node's (and its
	// subtree's) world bounds. The clip's AABB is used for spatial
	// indexing; precise hit testing against the rounded rect is
	// best-effort (corner radii are not modeled).
	LocalClip    RoundedRect
	HasLocalClip bool
	// ZIndex orders nodes for hit tests and rect queries; it is compared
	// across all candidate nodes, not per parent. Higher wins hit tests.
	ZIndex int32
	// Flags controls visibility and picking. Zero-value LocalNode gets
	// DefaultNodeFlags via NewLocalNode.
	Flags NodeFlags
}

// NewLocalNode returns a LocalNode with an identity transform and
// DefaultNodeFlags, ready to have LocalBounds set.
func NewLocalNode(bounds Rect) LocalNode {
	return LocalNode{LocalBounds: bounds, LocalTransform: Identity, Flags: DefaultNodeFlags}
}

type worldNode struct {
	worldTransform Affine
	worldBounds    Rect // AABB of transformed (and clipped) local bounds
	worldClip      Rect
	hasWorldClip   bool
}

type dirtyFlags struct {
	layout    bool
	transform bool
	clip      bool
	z         bool
	index     bool
}

func allDirty() dirtyFlags {
	return dirtyFlags{layout: true, transform: true, clip: true, z: true, index: true}
}

// QueryFilter narrows HitTestPoint and IntersectRect to a subset of
// nodes.
type QueryFilter struct {
	// VisibleOnly restricts to nodes with FlagVisible set.
	VisibleOnly bool
	// PickableOnly restricts to nodes with FlagPickable set.
	PickableOnly bool
}

// Hit is the result of a successful HitTestPoint.
type Hit struct {
	// Node is the matched node.
	Node NodeId
	// Path is the root-to-node path, inclusive of both ends.
	Path []NodeId
}
