package gesture

import "github.com/1broseidon/snaptile/internal/tiling"

// Phase represents the current phase of a pointer gesture.
type Phase int

const (
	// PhaseIdle means no gesture is in progress.
	PhaseIdle Phase = iota
	// PhaseDraggingFloat means a floating window follows the pointer.
	PhaseDraggingFloat
	// PhasePendingUnsnap means a tiled window was pressed but not yet moved
	// past the unsnap threshold.
	PhasePendingUnsnap
	// PhaseDraggingUnsnapped means a tiled window was pulled out during this
	// gesture and now follows the pointer.
	PhaseDraggingUnsnapped
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDraggingFloat:
		return "dragging-float"
	case PhasePendingUnsnap:
		return "pending-unsnap"
	case PhaseDraggingUnsnapped:
		return "dragging-unsnapped"
	default:
		return "unknown"
	}
}

// Dragging reports whether the phase moves a floating window.
func (p Phase) Dragging() bool {
	return p == PhaseDraggingFloat || p == PhaseDraggingUnsnapped
}

// Intent is a provisional snap target computed during a drag. A nil Path
// means the surface was empty and the snap seeds the root.
type Intent struct {
	Path      tiling.Path      `json:"path"`
	Direction tiling.Direction `json:"direction"`
	Indicator tiling.Rect      `json:"indicator"`
}

// drag holds the bookkeeping for the gesture in progress.
type drag struct {
	windowID     string
	startX       int
	startY       int
	initialX     int
	initialY     int
	width        int
	height       int
	suppressSnap bool
}

// state holds the gesture phase plus its drag and intent.
type state struct {
	phase  Phase
	drag   drag
	intent *Intent
}

func (s *state) reset() {
	s.phase = PhaseIdle
	s.drag = drag{}
	s.intent = nil
}
