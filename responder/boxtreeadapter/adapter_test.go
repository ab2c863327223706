package boxtreeadapter

import (
	"testing"

	"github.com/no-materials/understory/boxtree"
	"github.com/no-materials/understory/responder"
)

type widgetLookup struct{}

func (widgetLookup) WidgetOf(id boxtree.NodeId) (int, bool) { return 0, true }

func TestTopHitForPointUsesRealZIndex(t *testing.T) {
	tree := boxtree.NewTree()
	lowLocal := boxtree.NewLocalNode(boxtree.NewRect(0, 0, 100, 100))
	lowLocal.ZIndex = 1
	low := tree.Insert(nil, lowLocal)

	highLocal := boxtree.NewLocalNode(boxtree.NewRect(0, 0, 100, 100))
	highLocal.ZIndex = 5
	high := tree.Insert(nil, highLocal)
	tree.Commit()

	hit, ok := TopHitForPoint[struct{}](tree, 50, 50, boxtree.QueryFilter{})
	if !ok {
		t.Fatalf("expected a hit")
	}
	if hit.Node != high {
		t.Fatalf("expected higher z-index node %v to win, got %v (low=%v)", high, hit.Node, low)
	}
	if hit.DepthKey.Cmp(responder.Z(1)) <= 0 {
		t.Fatalf("expected resolved depth key to reflect the winning node's z-index")
	}
}

func TestNewRouterRoutesThroughTreeHierarchy(t *testing.T) {
	tree := boxtree.NewTree()
	parent := tree.Insert(nil, boxtree.NewLocalNode(boxtree.NewRect(0, 0, 100, 100)))
	child := tree.Insert(&parent, boxtree.NewLocalNode(boxtree.NewRect(0, 0, 10, 10)))
	tree.Commit()

	router := NewRouter[int, struct{}](tree, widgetLookup{})
	hits := []responder.ResolvedHit[boxtree.NodeId, struct{}]{
		{Node: child, DepthKey: responder.Z(0)},
	}
	out := router.HandleWithHits(hits)
	if len(out) != 5 {
		t.Fatalf("expected capture(parent,child)+target+bubble(child,parent) = 5 steps, got %d", len(out))
	}
	if out[0].Node != parent || out[1].Node != child {
		t.Fatalf("expected path reconstructed via tree hierarchy, got %+v", out[:2])
	}
}

func TestHitsForRectSkipsDeadNodes(t *testing.T) {
	tree := boxtree.NewTree()
	id := tree.Insert(nil, boxtree.NewLocalNode(boxtree.NewRect(0, 0, 10, 10)))
	dead := tree.Insert(nil, boxtree.NewLocalNode(boxtree.NewRect(0, 0, 10, 10)))
	tree.Commit()
	// Removed but not yet committed: the index still holds its entry.
	tree.Remove(dead)

	hits := HitsForRect[struct{}](tree, boxtree.NewRect(0, 0, 10, 10), boxtree.QueryFilter{})
	if len(hits) != 1 || hits[0].Node != id {
		t.Fatalf("expected one hit for %v, got %v", id, hits)
	}
}
