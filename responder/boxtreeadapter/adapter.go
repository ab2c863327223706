// Package boxtreeadapter wires a boxtree.Tree into the responder package:
// a ParentLookup over boxtree.NodeId, generation-aware tie-break
// comparators, and convenience hit builders that populate a real
// z-index-derived DepthKey instead of a placeholder.
package boxtreeadapter

import (
	"github.com/no-materials/understory/boxtree"
	"github.com/no-materials/understory/responder"
)

// ParentLookup adapts boxtree.Tree.ParentOf to responder.ParentLookup.
type ParentLookup struct {
	Tree *boxtree.Tree
}

// ParentOf returns node's parent, or false if node is a root or stale.
func (p ParentLookup) ParentOf(node boxtree.NodeId) (boxtree.NodeId, bool) {
	return p.Tree.ParentOf(node)
}

// IsNewer reports whether a is considered newer than b, per NodeId's
// generation-then-slot order. Suitable for Router.IsNewer.
func IsNewer(tree *boxtree.Tree) func(a, b boxtree.NodeId) bool {
	return func(a, b boxtree.NodeId) bool { return tree.IsNewer(a, b) }
}

// IDLess reports whether a sorts before b using the same total order as
// IsNewer (the "older" direction). Suitable for Router.IDLess.
func IDLess(tree *boxtree.Tree) func(a, b boxtree.NodeId) bool {
	return func(a, b boxtree.NodeId) bool { return tree.IsNewer(b, a) }
}

// NewRouter builds a responder.Router wired to tree: a ParentLookup over
// the tree's hierarchy and generation-aware tie-break comparators.
func NewRouter[W any, M any](tree *boxtree.Tree, lookup responder.WidgetLookup[boxtree.NodeId, W]) *responder.Router[boxtree.NodeId, W, M] {
	r := responder.WithParent[boxtree.NodeId, W, M](lookup, ParentLookup{Tree: tree})
	r.IsNewer = IsNewer(tree)
	r.IDLess = IDLess(tree)
	return r
}

// TopHitForPoint builds a single resolved hit for the topmost node under a
// point, or false if nothing matches filter. The path comes straight from
// the box tree's hit test, so the router needs no parent lookup to route
// it. DepthKey is the node's real z-index, not a placeholder.
func TopHitForPoint[M any](tree *boxtree.Tree, x, y float64, filter boxtree.QueryFilter) (responder.ResolvedHit[boxtree.NodeId, M], bool) {
	var zero responder.ResolvedHit[boxtree.NodeId, M]
	hit, ok := tree.HitTestPoint(x, y, filter)
	if !ok {
		return zero, false
	}
	z, _ := tree.ZIndex(hit.Node)
	return responder.ResolvedHit[boxtree.NodeId, M]{
		Node:     hit.Node,
		Path:     append([]boxtree.NodeId(nil), hit.Path...),
		HasPath:  true,
		DepthKey: responder.Z(z),
	}, true
}

// HitsForRect builds resolved hits for every node intersecting rect. Path
// is left unpopulated; a router built with NewRouter reconstructs one via
// ParentLookup. DepthKey carries each node's real z-index so Router can
// rank overlapping candidates correctly.
func HitsForRect[M any](tree *boxtree.Tree, rect boxtree.Rect, filter boxtree.QueryFilter) []responder.ResolvedHit[boxtree.NodeId, M] {
	ids := tree.IntersectRect(rect, filter)
	out := make([]responder.ResolvedHit[boxtree.NodeId, M], 0, len(ids))
	for _, id := range ids {
		z, ok := tree.ZIndex(id)
		if !ok {
			continue
		}
		out = append(out, responder.ResolvedHit[boxtree.NodeId, M]{
			Node:     id,
			DepthKey: responder.Z(z),
		})
	}
	return out
}
