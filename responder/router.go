package responder

// Router orders resolved hits, reconstructs root-to-target paths, and
// emits a deterministic capture/target/bubble dispatch sequence for the
// single winning candidate.
//
// Target selection ranks candidates by DepthKey; ties at equal depth fall
// back to IsNewer/IDLess if supplied (see SetDefaultTieBreak), and
// otherwise to stable last-wins. SetScope filters candidates before
// ranking. Capture overrides selection entirely until released.
//
// K must be a value usable as a map/comparison key (NodeId and similar
// small handles qualify). M is fixed per Router instance: Go methods
// cannot introduce additional type parameters, so unlike the reference
// this router is routed, a router handling more than one metadata shape
// needs one instance per shape.
type Router[K comparable, W any, M any] struct {
	lookup           WidgetLookup[K, W]
	parent           ParentLookup[K]
	defaultTieBreak  TieBreakPolicy
	scope            func(K) bool
	focus            *K
	captured         *K

	// IsNewer and IDLess are injectable comparators used to break ties at
	// equal depth. Left nil, ties resolve to stable last-wins, matching
	// the behavior of having no inherent ordering over K. Supply these
	// (e.g. boxtreeadapter wires boxtree.Tree.IsNewer) to get a
	// meaningful Newer/Older/MinID/MaxID tie-break.
	IsNewer func(a, b K) bool
	IDLess  func(a, b K) bool
}

// New builds a router with default policies and a parent lookup that
// treats every node as a root.
func New[K comparable, W any, M any](lookup WidgetLookup[K, W]) *Router[K, W, M] {
	return &Router[K, W, M]{
		lookup:          lookup,
		parent:          NoParent[K]{},
		defaultTieBreak: TieBreakNewer,
	}
}

// WithParent builds a router with an explicit parent lookup, enabling
// path reconstruction when a ResolvedHit omits its Path.
func WithParent[K comparable, W any, M any](lookup WidgetLookup[K, W], parent ParentLookup[K]) *Router[K, W, M] {
	return &Router[K, W, M]{
		lookup:          lookup,
		parent:          parent,
		defaultTieBreak: TieBreakNewer,
	}
}

// SetDefaultTieBreak sets the policy used to break equal-depth ties.
func (r *Router[K, W, M]) SetDefaultTieBreak(p TieBreakPolicy) { r.defaultTieBreak = p }

// SetScope installs a filter; only nodes for which scope returns true are
// considered during ranking. Pass nil to clear it. Capture bypasses this
// filter.
func (r *Router[K, W, M]) SetScope(scope func(K) bool) { r.scope = scope }

// SetFocus records the focused node. Reserved for higher-level policies;
// the router itself does not consult it during routing.
func (r *Router[K, W, M]) SetFocus(node *K) { r.focus = node }

// Capture sets (or, passed nil, releases) the captured node. While set,
// HandleWithHits routes to it unconditionally, bypassing ranking and
// scope.
func (r *Router[K, W, M]) Capture(node *K) { r.captured = node }

// HandleWithHits selects a winning hit (or honors an active capture) and
// returns the resulting capture, target, bubble dispatch sequence. Empty
// if no hit survives scope filtering and no capture is set.
func (r *Router[K, W, M]) HandleWithHits(hits []ResolvedHit[K, M]) []Dispatch[K, W, M] {
	if r.captured != nil {
		cap := *r.captured
		var capHit *ResolvedHit[K, M]
		for i := len(hits) - 1; i >= 0; i-- {
			if hits[i].Node == cap {
				capHit = &hits[i]
				break
			}
		}
		var localizer Localizer
		var meta M
		hasMeta := false
		var path []K
		if capHit != nil {
			if capHit.HasPath {
				path = append([]K(nil), capHit.Path...)
			} else {
				path = r.reconstructPath(cap)
			}
			localizer = capHit.Localizer
			meta = capHit.Meta
			hasMeta = true
		} else {
			path = r.reconstructPath(cap)
		}
		return r.emitPath(path, localizer, meta, hasMeta)
	}

	bestIdx := -1
	for i := range hits {
		h := &hits[i]
		if r.scope != nil && !r.scope(h.Node) {
			continue
		}
		if bestIdx < 0 {
			bestIdx = i
			continue
		}
		a := &hits[bestIdx]
		better := false
		switch c := a.DepthKey.Cmp(h.DepthKey); {
		case c < 0:
			better = true // h nearer than a
		case c > 0:
			better = false // a nearer than h
		default:
			switch tb := r.tiebreak(a.Node, h.Node); {
			case tb < 0:
				better = true // h preferred by policy
			case tb > 0:
				better = false // a preferred by policy
			default:
				better = true // stable last wins
			}
		}
		if better {
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return nil
	}
	best := &hits[bestIdx]
	var path []K
	if best.HasPath {
		path = append([]K(nil), best.Path...)
	} else {
		path = r.reconstructPath(best.Node)
	}
	return r.emitPath(path, best.Localizer, best.Meta, true)
}

func (r *Router[K, W, M]) makeDispatch(phase Phase, node K, localizer Localizer, meta M, hasMeta bool) Dispatch[K, W, M] {
	w, ok := r.lookup.WidgetOf(node)
	return Dispatch[K, W, M]{Phase: phase, Node: node, Widget: w, HasWidget: ok, Localizer: localizer, Meta: meta, HasMeta: hasMeta}
}

func (r *Router[K, W, M]) reconstructPath(target K) []K {
	var out []K
	cur := target
	for {
		out = append(out, cur)
		p, ok := r.parent.ParentOf(cur)
		if !ok {
			break
		}
		cur = p
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (r *Router[K, W, M]) emitPath(path []K, localizer Localizer, meta M, hasMeta bool) []Dispatch[K, W, M] {
	if len(path) == 0 {
		return nil
	}
	out := make([]Dispatch[K, W, M], 0, 2*len(path)+1)
	for _, n := range path {
		out = append(out, r.makeDispatch(PhaseCapture, n, localizer, meta, hasMeta))
	}
	target := path[len(path)-1]
	out = append(out, r.makeDispatch(PhaseTarget, target, localizer, meta, hasMeta))
	for i := len(path) - 1; i >= 0; i-- {
		out = append(out, r.makeDispatch(PhaseBubble, path[i], localizer, meta, hasMeta))
	}
	return out
}

func (r *Router[K, W, M]) tiebreak(a, b K) int {
	switch r.defaultTieBreak {
	case TieBreakNewer:
		if r.isNewer(a, b) {
			return 1
		}
		if r.isNewer(b, a) {
			return -1
		}
		return 0
	case TieBreakOlder:
		if r.isNewer(b, a) {
			return 1
		}
		if r.isNewer(a, b) {
			return -1
		}
		return 0
	case TieBreakMinID:
		return -r.idCmp(a, b)
	case TieBreakMaxID:
		return r.idCmp(a, b)
	default:
		return 0
	}
}

func (r *Router[K, W, M]) isNewer(a, b K) bool {
	if r.IsNewer == nil {
		return false
	}
	return r.IsNewer(a, b)
}

func (r *Router[K, W, M]) idCmp(a, b K) int {
	if r.IDLess == nil {
		return 0
	}
	if r.IDLess(a, b) {
		return -1
	}
	if r.IDLess(b, a) {
		return 1
	}
	return 0
}
