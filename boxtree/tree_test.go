package boxtree

import "testing"

func TestInsertAndHitTest(t *testing.T) {
	tr := NewTree()
	id := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 10, 10)))
	tr.Commit()

	hit, ok := tr.HitTestPoint(5, 5, QueryFilter{})
	if !ok || hit.Node != id {
		t.Fatalf("expected hit on %v, got %v ok=%v", id, hit.Node, ok)
	}
	if len(hit.Path) != 1 || hit.Path[0] != id {
		t.Fatalf("expected single-element path, got %v", hit.Path)
	}

	if _, ok := tr.HitTestPoint(50, 50, QueryFilter{}); ok {
		t.Fatalf("expected no hit outside bounds")
	}
}

func TestTransformAndDamage(t *testing.T) {
	tr := NewTree()
	id := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 10, 10)))
	dmg := tr.Commit()
	if dmg.IsEmpty() {
		t.Fatalf("expected damage on first commit")
	}

	dmg = tr.Commit()
	if !dmg.IsEmpty() {
		t.Fatalf("expected no damage on unchanged re-commit, got %v", dmg.DirtyRects)
	}

	tr.SetLocalTransform(id, Affine{1, 0, 0, 1, 100, 100})
	dmg = tr.Commit()
	if dmg.IsEmpty() {
		t.Fatalf("expected damage after translating node")
	}

	if _, ok := tr.HitTestPoint(5, 5, QueryFilter{}); ok {
		t.Fatalf("expected no hit at old location after translate")
	}
	hit, ok := tr.HitTestPoint(105, 105, QueryFilter{})
	if !ok || hit.Node != id {
		t.Fatalf("expected hit at new location, got ok=%v node=%v", ok, hit.Node)
	}
}

func TestRotatedBBoxExpands(t *testing.T) {
	tr := NewTree()
	local := NewLocalNode(NewRect(-1, -1, 1, 1))
	local.LocalTransform = Affine{0, 1, -1, 0, 0, 0} // 90 degree rotation
	id := tr.Insert(nil, local)
	tr.Commit()

	hit, ok := tr.HitTestPoint(0.5, 0.5, QueryFilter{})
	if !ok || hit.Node != id {
		t.Fatalf("expected rotated square to still contain origin-adjacent point")
	}
}

func TestLivenessInsertRemoveReuse(t *testing.T) {
	tr := NewTree()
	id1 := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 1, 1)))
	tr.Remove(id1)
	if tr.IsAlive(id1) {
		t.Fatalf("expected id1 to be dead after Remove")
	}

	id2 := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 1, 1)))
	if !tr.IsAlive(id2) {
		t.Fatalf("expected id2 to be alive")
	}
	if tr.IsAlive(id1) {
		t.Fatalf("id1 must stay dead even if its slot was reused")
	}
}

func TestNewerThanSemantics(t *testing.T) {
	tr := NewTree()
	id1 := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 1, 1)))
	tr.Remove(id1)
	id2 := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 1, 1)))

	if id1.idx() == id2.idx() && !tr.IsNewer(id2, id1) {
		t.Fatalf("reused slot with higher generation must be newer")
	}
}

func TestHitEqualZNewerWins(t *testing.T) {
	tr := NewTree()
	a := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 10, 10)))
	b := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 10, 10)))
	tr.Commit()

	hit, ok := tr.HitTestPoint(5, 5, QueryFilter{})
	if !ok {
		t.Fatalf("expected a hit")
	}
	if tr.IsNewer(b, a) && hit.Node != b {
		t.Fatalf("expected newer sibling %v to win tie at equal z, got %v", b, hit.Node)
	}
}

func TestZIndexAccessorRespectsLiveness(t *testing.T) {
	tr := NewTree()
	local := NewLocalNode(NewRect(0, 0, 1, 1))
	local.ZIndex = 7
	id := tr.Insert(nil, local)

	z, ok := tr.ZIndex(id)
	if !ok || z != 7 {
		t.Fatalf("expected z=7 ok=true, got z=%d ok=%v", z, ok)
	}

	tr.Remove(id)
	if _, ok := tr.ZIndex(id); ok {
		t.Fatalf("expected ZIndex to report dead for removed node")
	}
}

func TestUpdateBoundsAndDamageAndHit(t *testing.T) {
	tr := NewTree()
	id := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 10, 10)))
	tr.Commit()

	tr.SetLocalBounds(id, NewRect(0, 0, 100, 100))
	dmg := tr.Commit()
	if dmg.IsEmpty() {
		t.Fatalf("expected damage after growing bounds")
	}

	if _, ok := tr.HitTestPoint(50, 50, QueryFilter{}); !ok {
		t.Fatalf("expected hit inside grown bounds")
	}
}

func TestWorldBoundsReflectsTransform(t *testing.T) {
	tr := NewTree()
	id := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 10, 10)))
	tr.SetLocalTransform(id, Affine{1, 0, 0, 1, 20, 30})
	tr.Commit()

	wb, ok := tr.WorldBounds(id)
	if !ok {
		t.Fatalf("expected world bounds for a live node")
	}
	want := NewRect(20, 30, 30, 40)
	if wb != want {
		t.Fatalf("got %+v want %+v", wb, want)
	}

	tr.Remove(id)
	if _, ok := tr.WorldBounds(id); ok {
		t.Fatalf("expected WorldBounds to report dead for removed node")
	}
}

func TestHierarchyWorldTransformComposes(t *testing.T) {
	tr := NewTree()
	parent := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 100, 100)))
	parentLocal := NewLocalNode(NewRect(0, 0, 100, 100))
	parentLocal.LocalTransform = Affine{1, 0, 0, 1, 50, 50}
	tr.SetLocalTransform(parent, parentLocal.LocalTransform)

	childLocal := NewLocalNode(NewRect(0, 0, 10, 10))
	child := tr.Insert(&parent, childLocal)
	tr.Commit()

	hit, ok := tr.HitTestPoint(55, 55, QueryFilter{})
	if !ok || hit.Node != child {
		t.Fatalf("expected child hit at parent-offset point, got ok=%v node=%v", ok, hit.Node)
	}
	if len(hit.Path) != 2 || hit.Path[0] != parent || hit.Path[1] != child {
		t.Fatalf("expected path [parent, child], got %v", hit.Path)
	}
}

func TestRemoveDetachesFromIndexAndParent(t *testing.T) {
	tr := NewTree()
	parent := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 100, 100)))
	child := tr.Insert(&parent, NewLocalNode(NewRect(0, 0, 10, 10)))
	tr.Commit()

	tr.Remove(child)
	if tr.IsAlive(child) {
		t.Fatalf("expected child to be dead")
	}
	if !tr.IsAlive(parent) {
		t.Fatalf("expected parent to remain alive")
	}
	tr.Commit()
	if hit, ok := tr.HitTestPoint(5, 5, QueryFilter{}); !ok || hit.Node != parent {
		t.Fatalf("expected the parent, not the removed child, to be hit at (5,5); got ok=%v node=%v", ok, hit.Node)
	}
}

func TestReparentRejectsCycle(t *testing.T) {
	tr := NewTree()
	parent := tr.Insert(nil, NewLocalNode(NewRect(0, 0, 100, 100)))
	child := tr.Insert(&parent, NewLocalNode(NewRect(0, 0, 10, 10)))

	tr.Reparent(parent, &child)
	gotParent, ok := tr.ParentOf(parent)
	if ok && gotParent == child {
		t.Fatalf("reparenting an ancestor under its own descendant must be rejected")
	}
}

func TestQueryFilterVisiblePickable(t *testing.T) {
	tr := NewTree()
	local := NewLocalNode(NewRect(0, 0, 10, 10))
	local.Flags = FlagVisible // not pickable
	id := tr.Insert(nil, local)
	tr.Commit()

	if _, ok := tr.HitTestPoint(5, 5, QueryFilter{PickableOnly: true}); ok {
		t.Fatalf("expected no hit for non-pickable node under PickableOnly filter")
	}
	hit, ok := tr.HitTestPoint(5, 5, QueryFilter{})
	if !ok || hit.Node != id {
		t.Fatalf("expected unfiltered query to still hit")
	}
}
