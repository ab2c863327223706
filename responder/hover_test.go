package responder

import (
	"reflect"
	"testing"
)

func TestHoverEnterOnFreshPath(t *testing.T) {
	h := NewHoverState[uint32]()
	ev := h.UpdatePath([]uint32{1, 2, 3})
	want := []HoverEvent[uint32]{Enter[uint32](1), Enter[uint32](2), Enter[uint32](3)}
	if !reflect.DeepEqual(ev, want) {
		t.Fatalf("got %v want %v", ev, want)
	}
	if !reflect.DeepEqual(h.CurrentPath(), []uint32{1, 2, 3}) {
		t.Fatalf("unexpected current path %v", h.CurrentPath())
	}
}

func TestHoverLeaveToEmpty(t *testing.T) {
	h := NewHoverState[uint32]()
	h.UpdatePath([]uint32{1, 2})
	ev := h.Clear()
	want := []HoverEvent[uint32]{Leave[uint32](2), Leave[uint32](1)}
	if !reflect.DeepEqual(ev, want) {
		t.Fatalf("got %v want %v", ev, want)
	}
	if len(h.CurrentPath()) != 0 {
		t.Fatalf("expected empty path after clear")
	}
}

func TestHoverBranchChange(t *testing.T) {
	h := NewHoverState[uint32]()
	h.UpdatePath([]uint32{1, 2, 3})
	ev := h.UpdatePath([]uint32{1, 4})
	want := []HoverEvent[uint32]{Leave[uint32](3), Leave[uint32](2), Enter[uint32](4)}
	if !reflect.DeepEqual(ev, want) {
		t.Fatalf("got %v want %v", ev, want)
	}
	if !reflect.DeepEqual(h.CurrentPath(), []uint32{1, 4}) {
		t.Fatalf("unexpected current path %v", h.CurrentPath())
	}
}

func TestHoverDisjointPaths(t *testing.T) {
	h := NewHoverState[uint32]()
	h.UpdatePath([]uint32{1, 2, 3})
	ev := h.UpdatePath([]uint32{4, 5})
	want := []HoverEvent[uint32]{
		Leave[uint32](3), Leave[uint32](2), Leave[uint32](1),
		Enter[uint32](4), Enter[uint32](5),
	}
	if !reflect.DeepEqual(ev, want) {
		t.Fatalf("got %v want %v", ev, want)
	}
}

func TestHoverDeepLCA(t *testing.T) {
	h := NewHoverState[uint32]()
	h.UpdatePath([]uint32{1, 2, 3, 4, 5})
	ev := h.UpdatePath([]uint32{1, 2, 3, 9, 10})
	want := []HoverEvent[uint32]{
		Leave[uint32](5), Leave[uint32](4),
		Enter[uint32](9), Enter[uint32](10),
	}
	if !reflect.DeepEqual(ev, want) {
		t.Fatalf("got %v want %v", ev, want)
	}
}

func TestHoverSamePathNoEvents(t *testing.T) {
	h := NewHoverState[uint32]()
	h.UpdatePath([]uint32{7, 8})
	ev := h.UpdatePath([]uint32{7, 8})
	if len(ev) != 0 {
		t.Fatalf("expected no transitions for an unchanged path, got %v", ev)
	}
}

func TestPathFromDispatchStopsAtTarget(t *testing.T) {
	seq := []Dispatch[uint32, uint32, string]{
		{Phase: PhaseCapture, Node: 1},
		{Phase: PhaseCapture, Node: 2},
		{Phase: PhaseTarget, Node: 2},
		{Phase: PhaseBubble, Node: 2},
		{Phase: PhaseBubble, Node: 1},
	}
	path := PathFromDispatch(seq)
	if !reflect.DeepEqual(path, []uint32{1, 2}) {
		t.Fatalf("got %v", path)
	}
}
