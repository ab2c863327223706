// Package responder routes resolved pointer/ray hits to a deterministic
// capture/target/bubble dispatch sequence, and tracks hover enter/leave
// transitions across consecutive hits.
package responder

import "math"

// Phase identifies where a Dispatch sits in event propagation.
type Phase int

const (
	// PhaseCapture is the root-to-target traversal.
	PhaseCapture Phase = iota
	// PhaseTarget is the target node itself.
	PhaseTarget
	// PhaseBubble is the target-to-root traversal.
	PhaseBubble
)

func (p Phase) String() string {
	switch p {
	case PhaseCapture:
		return "Capture"
	case PhaseTarget:
		return "Target"
	case PhaseBubble:
		return "Bubble"
	default:
		return "Unknown"
	}
}

// Outcome is the value a per-node handler returns to a higher-level
// dispatcher to control whether propagation continues.
type Outcome int

const (
	// OutcomeContinue continues propagation within the current phase.
	OutcomeContinue Outcome = iota
	// OutcomeStop halts propagation within the current phase.
	OutcomeStop
	// OutcomeStopAndConsume halts propagation and marks the event consumed.
	OutcomeStopAndConsume
)

// TieBreakPolicy documents how equal-depth candidates should be preferred.
// The router only has meaningful data for this when IsNewer or IDLess is
// supplied; otherwise ties fall back to stable last-wins.
type TieBreakPolicy int

const (
	// TieBreakNewer prefers the more recently created identifier.
	TieBreakNewer TieBreakPolicy = iota
	// TieBreakOlder prefers the less recently created identifier.
	TieBreakOlder
	// TieBreakMinID prefers the smaller identifier.
	TieBreakMinID
	// TieBreakMaxID prefers the larger identifier.
	TieBreakMaxID
)

// DepthKey is the primary ordering key used to rank hits. Exactly one of
// Z or Distance is meaningful, selected by the constructor used.
//
// Z(a) vs Z(b): higher is nearer and wins. Distance(a) vs Distance(b):
// lower is nearer and wins. Across kinds, Z always outranks Distance. A
// NaN distance compares Equal to any other distance, falling back to
// stable order; against a Z key it still ranks below.
type DepthKey struct {
	isZ  bool
	z    int32
	dist float32
}

// Z builds a 2D stacking-order depth key; higher is nearer.
func Z(z int32) DepthKey { return DepthKey{isZ: true, z: z} }

// Distance builds a 3D ray-distance depth key; lower is nearer.
func Distance(d float32) DepthKey { return DepthKey{isZ: false, dist: d} }

// Cmp returns -1, 0, or 1 as k sorts before, equal to, or after other,
// with "after" meaning nearer the viewer (wins target selection).
func (k DepthKey) Cmp(other DepthKey) int {
	switch {
	case k.isZ && other.isZ:
		switch {
		case k.z < other.z:
			return -1
		case k.z > other.z:
			return 1
		default:
			return 0
		}
	case !k.isZ && !other.isZ:
		if math.IsNaN(float64(k.dist)) || math.IsNaN(float64(other.dist)) {
			return 0
		}
		// Lower distance is nearer and ranks higher, so compare reversed.
		switch {
		case other.dist < k.dist:
			return -1
		case other.dist > k.dist:
			return 1
		default:
			return 0
		}
	case k.isZ && !other.isZ:
		return 1
	default:
		return -1
	}
}

// Less reports whether k sorts strictly before other.
func (k DepthKey) Less(other DepthKey) bool { return k.Cmp(other) < 0 }

// Localizer carries world-to-local transform context for a hit. Empty for
// now; reserved for inverse transforms or scroll offsets a toolkit may
// want threaded through to handlers.
type Localizer struct{}

// ResolvedHit is one candidate fed to Router.HandleWithHits, typically
// produced by a picker (a box tree hit test, a ray cast, ...).
type ResolvedHit[K any, M any] struct {
	// Node is the hit node.
	Node K
	// Path is the root-to-target path, if the caller already has one.
	Path []K
	// HasPath reports whether Path was supplied; if false the router
	// consults its ParentLookup to reconstruct one.
	HasPath bool
	// DepthKey ranks this hit against its competitors.
	DepthKey DepthKey
	// Localizer carries world-to-local transform context.
	Localizer Localizer
	// Meta is arbitrary metadata carried alongside the hit.
	Meta M
}

// WidgetLookup maps a node key to a toolkit widget identifier.
type WidgetLookup[K comparable, W any] interface {
	WidgetOf(node K) (W, bool)
}

// ParentLookup finds a node's parent so Router can reconstruct a
// root-to-target path when a ResolvedHit doesn't supply one.
type ParentLookup[K comparable] interface {
	ParentOf(node K) (K, bool)
}

// NoParent is the default ParentLookup: every node is treated as a root.
type NoParent[K comparable] struct{}

// ParentOf always reports no parent.
func (NoParent[K]) ParentOf(node K) (K, bool) {
	var zero K
	return zero, false
}

// Dispatch is one step of a capture/target/bubble propagation sequence
// produced by Router.HandleWithHits.
type Dispatch[K any, W any, M any] struct {
	Phase Phase
	Node  K
	// Widget is the node's widget id, if WidgetLookup resolved one.
	Widget    W
	HasWidget bool
	Localizer Localizer
	// Meta is cloned from the winning hit.
	Meta    M
	HasMeta bool
}
