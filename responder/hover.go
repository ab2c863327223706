package responder

// HoverEvent is a hover transition produced by HoverState.UpdatePath.
type HoverEvent[K any] struct {
	Node  K
	Enter bool // true for Enter, false for Leave
}

// Enter builds an Enter transition for node.
func Enter[K any](node K) HoverEvent[K] { return HoverEvent[K]{Node: node, Enter: true} }

// Leave builds a Leave transition for node.
func Leave[K any](node K) HoverEvent[K] { return HoverEvent[K]{Node: node, Enter: false} }

// HoverState tracks the currently hovered root-to-target path and computes
// the minimal leave/enter transitions needed to move to a new path.
//
// Leave events are emitted inner-most to outer-most; Enter events
// outer-most to inner-most, matching common UI hover expectations as the
// pointer moves across siblings and their ancestors.
type HoverState[K comparable] struct {
	current []K
}

// NewHoverState returns an empty hover state.
func NewHoverState[K comparable]() *HoverState[K] {
	return &HoverState[K]{}
}

// CurrentPath returns the current root-to-target path.
func (h *HoverState[K]) CurrentPath() []K { return h.current }

// Clear empties the hover path, returning Leave events inner-most to
// outer-most.
func (h *HoverState[K]) Clear() []HoverEvent[K] {
	out := make([]HoverEvent[K], 0, len(h.current))
	for i := len(h.current) - 1; i >= 0; i-- {
		out = append(out, Leave(h.current[i]))
	}
	h.current = nil
	return out
}

// UpdatePath transitions from the current path to newPath, returning the
// leave/enter events required: leaves from the old tail back to the
// shared ancestry (inner to outer), then enters from the shared ancestry
// out to the new tail (outer to inner).
func (h *HoverState[K]) UpdatePath(newPath []K) []HoverEvent[K] {
	lca := 0
	for lca < len(h.current) && lca < len(newPath) && h.current[lca] == newPath[lca] {
		lca++
	}

	out := make([]HoverEvent[K], 0, (len(h.current)-lca)+(len(newPath)-lca))
	for i := len(h.current) - 1; i >= lca; i-- {
		out = append(out, Leave(h.current[i]))
	}
	for i := lca; i < len(newPath); i++ {
		out = append(out, Enter(newPath[i]))
	}

	h.current = append([]K(nil), newPath...)
	return out
}

// PathFromDispatch extracts the root-to-target path from a router
// dispatch sequence, assuming it begins with every Capture step for the
// path (as Router.HandleWithHits produces).
func PathFromDispatch[K any, W any, M any](seq []Dispatch[K, W, M]) []K {
	var path []K
	for _, d := range seq {
		if d.Phase != PhaseCapture {
			break
		}
		path = append(path, d.Node)
	}
	return path
}
