// Package desktop holds the window registry, the floating set and the layout
// tree as a single immutable State value.
package desktop

import (
	"fmt"
	"sort"

	"github.com/1broseidon/snaptile/internal/tiling"
)

// Floating windows share a fixed footprint.
const (
	DefaultWidth  = 300
	DefaultHeight = 200
)

// Window is the registry record for a live window.
type Window struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tag   string `json:"tag"`
	Seq   int    `json:"seq"`
}

// FloatingEntry positions a floating window. Z grows monotonically.
type FloatingEntry struct {
	WindowID string `json:"window_id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Z        int    `json:"z"`
}

// Rect returns the on-surface rectangle of the entry.
func (f FloatingEntry) Rect() tiling.Rect {
	return tiling.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// Placement says where a window currently lives.
type Placement int

const (
	PlacementNone Placement = iota
	PlacementFloating
	PlacementTiled
)

func (p Placement) String() string {
	switch p {
	case PlacementFloating:
		return "floating"
	case PlacementTiled:
		return "tiled"
	default:
		return "none"
	}
}

// State is the combined registry + floating set + layout tree. Mutators
// return a new State and never modify the receiver, so a State can be shared
// freely once built.
type State struct {
	windows  map[string]Window
	floating []FloatingEntry
	root     tiling.Node
	nextZ    int
	nextSeq  int
}

// New returns an empty desktop.
func New() State {
	return State{windows: map[string]Window{}, nextZ: 1}
}

// Root returns the layout tree, nil when nothing is tiled.
func (s State) Root() tiling.Node { return s.root }

// NextZ is the z-order the next raised window will get.
func (s State) NextZ() int {
	if s.nextZ < 1 {
		return 1
	}
	return s.nextZ
}

// Window looks up a registry record.
func (s State) Window(id string) (Window, bool) {
	w, ok := s.windows[id]
	return w, ok
}

// Windows lists registry records in creation order.
func (s State) Windows() []Window {
	out := make([]Window, 0, len(s.windows))
	for _, w := range s.windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// WindowCount is the number of live windows.
func (s State) WindowCount() int { return len(s.windows) }

// Floating returns a copy of the floating set in insertion order.
func (s State) Floating() []FloatingEntry {
	out := make([]FloatingEntry, len(s.floating))
	copy(out, s.floating)
	return out
}

// FloatingByZ returns the floating set bottom-most first.
func (s State) FloatingByZ() []FloatingEntry {
	out := s.Floating()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}

// FloatingEntry returns the floating entry for id.
func (s State) FloatingEntry(id string) (FloatingEntry, bool) {
	if i := s.floatingIndex(id); i >= 0 {
		return s.floating[i], true
	}
	return FloatingEntry{}, false
}

// Placement reports whether id is floating, tiled or unknown.
func (s State) Placement(id string) Placement {
	if _, ok := s.windows[id]; !ok {
		return PlacementNone
	}
	if s.floatingIndex(id) >= 0 {
		return PlacementFloating
	}
	if tiling.Contains(s.root, id) {
		return PlacementTiled
	}
	return PlacementNone
}

// CreateWindow registers a new floating window at (x, y) on top of the stack.
func (s State) CreateWindow(id, tag string, x, y int) State {
	if _, exists := s.windows[id]; exists || id == "" {
		return s
	}

	next := s.clone()
	next.nextSeq++
	next.windows[id] = Window{
		ID:    id,
		Title: fmt.Sprintf("Window %d", len(s.windows)+1),
		Tag:   tag,
		Seq:   next.nextSeq,
	}
	next.floating = append(next.floating, FloatingEntry{
		WindowID: id,
		X:        x,
		Y:        y,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Z:        s.NextZ(),
	})
	next.nextZ = s.NextZ() + 1
	return next
}

// MoveWindow repositions a floating window. Tiled or unknown IDs are ignored.
func (s State) MoveWindow(id string, x, y int) (State, bool) {
	i := s.floatingIndex(id)
	if i < 0 {
		return s, false
	}
	next := s.clone()
	next.floating[i].X = x
	next.floating[i].Y = y
	return next, true
}

// BringToFront gives a floating window the next z-order.
func (s State) BringToFront(id string) (State, bool) {
	i := s.floatingIndex(id)
	if i < 0 {
		return s, false
	}
	next := s.clone()
	next.floating[i].Z = s.NextZ()
	next.nextZ = s.NextZ() + 1
	return next, true
}

// CloseWindow removes a window from the registry and from whichever region
// holds it.
func (s State) CloseWindow(id string) (State, bool) {
	if _, ok := s.windows[id]; !ok {
		return s, false
	}
	next := s.clone()
	delete(next.windows, id)
	if i := s.floatingIndex(id); i >= 0 {
		next.floating = removeAt(next.floating, i)
	} else {
		next.root = tiling.RemoveWindow(s.root, id)
	}
	return next, true
}

// SnapWindow moves a floating window into the tree. With no tree it seeds a
// root split; otherwise path must address an existing node. A nil path on a
// non-empty tree, a malformed path or a non-floating window is a no-op.
func (s State) SnapWindow(id string, path tiling.Path, dir tiling.Direction) (State, bool) {
	i := s.floatingIndex(id)
	if i < 0 {
		return s, false
	}

	var (
		root tiling.Node
		ok   bool
	)
	if s.root == nil {
		root, ok = tiling.InsertAtRoot(dir, id)
	} else if path != nil {
		root, ok = tiling.InsertAtPath(s.root, path, dir, id)
	}
	if !ok {
		return s, false
	}

	next := s.clone()
	next.floating = removeAt(next.floating, i)
	next.root = root
	return next, true
}

// UnsnapWindow takes a tiled window out of the tree and floats it at (x, y)
// with the default footprint on top of the stack.
func (s State) UnsnapWindow(id string, x, y int) (State, bool) {
	if _, ok := s.windows[id]; !ok {
		return s, false
	}
	if s.floatingIndex(id) >= 0 {
		return s, false
	}

	next := s.clone()
	next.root = tiling.RemoveWindow(s.root, id)
	next.floating = append(next.floating, FloatingEntry{
		WindowID: id,
		X:        x,
		Y:        y,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Z:        s.NextZ(),
	})
	next.nextZ = s.NextZ() + 1
	return next, true
}

// Validate checks that each window is floating xor tiled exactly once and
// that the tree only references live windows.
func (s State) Validate() error {
	if err := tiling.Validate(s.root); err != nil {
		return err
	}
	tiled := make(map[string]bool)
	for _, id := range tiling.Windows(s.root) {
		if _, ok := s.windows[id]; !ok {
			return fmt.Errorf("tree references unknown window %s", id)
		}
		tiled[id] = true
	}
	floating := make(map[string]bool)
	for _, f := range s.floating {
		if _, ok := s.windows[f.WindowID]; !ok {
			return fmt.Errorf("floating entry for unknown window %s", f.WindowID)
		}
		if floating[f.WindowID] {
			return fmt.Errorf("window %s floating twice", f.WindowID)
		}
		if tiled[f.WindowID] {
			return fmt.Errorf("window %s is both floating and tiled", f.WindowID)
		}
		floating[f.WindowID] = true
	}
	for id := range s.windows {
		if !tiled[id] && !floating[id] {
			return fmt.Errorf("window %s is neither floating nor tiled", id)
		}
	}
	return nil
}

func (s State) floatingIndex(id string) int {
	for i, f := range s.floating {
		if f.WindowID == id {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	windows := make(map[string]Window, len(s.windows)+1)
	for id, w := range s.windows {
		windows[id] = w
	}
	return State{
		windows:  windows,
		floating: s.Floating(),
		root:     s.root,
		nextZ:    s.NextZ(),
		nextSeq:  s.nextSeq,
	}
}

func removeAt(entries []FloatingEntry, i int) []FloatingEntry {
	out := make([]FloatingEntry, 0, len(entries)-1)
	out = append(out, entries[:i]...)
	return append(out, entries[i+1:]...)
}
