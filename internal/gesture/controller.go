package gesture

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/1broseidon/snaptile/internal/desktop"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// Defaults for the gesture tunables.
const (
	DefaultSnapMargin      = 30
	DefaultUnsnapThreshold = 3.0
	DefaultGrabOffsetY     = 20
)

// DefaultPalette is the set of decorative tags handed to new windows.
var DefaultPalette = []string{
	"#f87171",
	"#fb923c",
	"#fbbf24",
	"#a3e635",
	"#34d399",
	"#22d3ee",
	"#818cf8",
	"#e879f9",
	"#f472b6",
}

// Settings holds the tunables of the state machine.
type Settings struct {
	// SnapMargin is how close (exclusive) a window edge must come to a region
	// edge to produce a snap candidate.
	SnapMargin int
	// UnsnapThreshold is the pointer travel that pulls a tiled window out.
	UnsnapThreshold float64
	// GrabOffsetY places the cursor this far below the top of a freshly
	// unsnapped window.
	GrabOffsetY int
}

// DefaultSettings returns the stock tunables.
func DefaultSettings() Settings {
	return Settings{
		SnapMargin:      DefaultSnapMargin,
		UnsnapThreshold: DefaultUnsnapThreshold,
		GrabOffsetY:     DefaultGrabOffsetY,
	}
}

// Options configures a Controller. A zero Settings means DefaultSettings.
// Otherwise a non-positive SnapMargin or UnsnapThreshold and a negative
// GrabOffsetY fall back to their defaults, so a GrabOffsetY of 0 is kept.
type Options struct {
	Surface  tiling.Rect
	Settings Settings
	Palette  []string
	Logger   *slog.Logger
	// NewID allocates window IDs. Defaults to random UUIDs.
	NewID func() string
	// Rand drives window placement and tag selection.
	Rand *rand.Rand
}

// Snapshot is a consistent read of the controller.
type Snapshot struct {
	Desktop desktop.State
	Surface tiling.Rect
	Phase   Phase
	Intent  *Intent
	// Dragging is the window under the pointer, empty when idle.
	Dragging string
}

// Controller owns the desktop state and the gesture in progress. Every entry
// point runs under one lock so each event is applied atomically.
type Controller struct {
	mu       sync.Mutex
	desk     desktop.State
	surface  tiling.Rect
	settings Settings
	palette  []string
	logger   *slog.Logger
	newID    func() string
	rng      *rand.Rand
	gesture  state
}

// NewController creates a controller over an empty desktop.
func NewController(opts Options) *Controller {
	settings := opts.Settings
	if settings == (Settings{}) {
		settings = DefaultSettings()
	}
	if settings.SnapMargin <= 0 {
		settings.SnapMargin = DefaultSnapMargin
	}
	if settings.UnsnapThreshold <= 0 {
		settings.UnsnapThreshold = DefaultUnsnapThreshold
	}
	if settings.GrabOffsetY < 0 {
		settings.GrabOffsetY = DefaultGrabOffsetY
	}

	palette := opts.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Controller{
		desk:     desktop.New(),
		surface:  opts.Surface,
		settings: settings,
		palette:  append([]string(nil), palette...),
		logger:   logger,
		newID:    newID,
		rng:      rng,
	}
}

// Snapshot returns the current state. Desktop states are immutable so the
// copy is cheap.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Desktop:  c.desk,
		Surface:  c.surface,
		Phase:    c.gesture.phase,
		Dragging: c.gesture.drag.windowID,
	}
	if c.gesture.intent != nil {
		intent := *c.gesture.intent
		intent.Path = intent.Path.Clone()
		snap.Intent = &intent
	}
	return snap
}

// Desktop returns the current desktop state.
func (c *Controller) Desktop() desktop.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.desk
}

// Phase returns the current gesture phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gesture.phase
}

// Indicator returns the advisory snap preview rectangle, if any.
func (c *Controller) Indicator() (tiling.Rect, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gesture.intent == nil {
		return tiling.Rect{}, false
	}
	return c.gesture.intent.Indicator, true
}

// Surface returns the container rectangle used for layout.
func (c *Controller) Surface() tiling.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface
}

// SetSurface replaces the container rectangle.
func (c *Controller) SetSurface(r tiling.Rect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface = r
}

// SetSettings replaces the tunables. A gesture in progress keeps going with
// the new values.
func (c *Controller) SetSettings(s Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.SnapMargin > 0 {
		c.settings.SnapMargin = s.SnapMargin
	}
	if s.UnsnapThreshold > 0 {
		c.settings.UnsnapThreshold = s.UnsnapThreshold
	}
	if s.GrabOffsetY >= 0 {
		c.settings.GrabOffsetY = s.GrabOffsetY
	}
}

// CreateWindow adds a floating window at a random spot that keeps its
// footprint on the surface, and returns its ID.
func (c *Controller) CreateWindow() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.newID()
	x := c.surface.X + randomOffset(c.rng, c.surface.Width-desktop.DefaultWidth)
	y := c.surface.Y + randomOffset(c.rng, c.surface.Height-desktop.DefaultHeight)
	tag := c.palette[c.rng.Intn(len(c.palette))]

	c.desk = c.desk.CreateWindow(id, tag, x, y)
	c.logger.Info("window created", "window", id, "x", x, "y", y, "tag", tag)
	return id
}

// MoveWindow repositions a floating window.
func (c *Controller) MoveWindow(id string, x, y int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ok bool
	c.desk, ok = c.desk.MoveWindow(id, x, y)
	return ok
}

// BringToFront raises a floating window.
func (c *Controller) BringToFront(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ok bool
	c.desk, ok = c.desk.BringToFront(id)
	return ok
}

// CloseWindow removes a window. Closing the window under the pointer ends
// the gesture.
func (c *Controller) CloseWindow(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	var ok bool
	c.desk, ok = c.desk.CloseWindow(id)
	if !ok {
		return false
	}
	if c.gesture.drag.windowID == id {
		c.gesture.reset()
	}
	c.logger.Info("window closed", "window", id, "layout", tiling.String(c.desk.Root()))
	return true
}

// SnapWindow inserts a floating window into the tree.
func (c *Controller) SnapWindow(id string, path tiling.Path, dir tiling.Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapLocked(id, path, dir)
}

// UnsnapWindow floats a tiled window at (x, y).
func (c *Controller) UnsnapWindow(id string, x, y int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsnapLocked(id, x, y)
}

func (c *Controller) snapLocked(id string, path tiling.Path, dir tiling.Direction) bool {
	var ok bool
	c.desk, ok = c.desk.SnapWindow(id, path, dir)
	if !ok {
		c.logger.Debug("snap ignored", "window", id, "path", path.String(), "direction", dir)
		return false
	}
	c.logger.Info("window snapped", "window", id, "path", path.String(), "direction", dir,
		"layout", tiling.String(c.desk.Root()))
	return true
}

func (c *Controller) unsnapLocked(id string, x, y int) bool {
	var ok bool
	c.desk, ok = c.desk.UnsnapWindow(id, x, y)
	if !ok {
		c.logger.Debug("unsnap ignored", "window", id)
		return false
	}
	c.logger.Info("window unsnapped", "window", id, "x", x, "y", y,
		"layout", tiling.String(c.desk.Root()))
	return true
}

// PointerDown starts a gesture on whichever kind of window id is.
func (c *Controller) PointerDown(id string, px, py int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.desk.Placement(id) {
	case desktop.PlacementFloating:
		return c.beginFloatLocked(id, px, py)
	case desktop.PlacementTiled:
		return c.beginPendingLocked(id, px, py)
	default:
		return false
	}
}

// BeginFloatDrag starts dragging a floating window by its title region. The
// window is raised immediately.
func (c *Controller) BeginFloatDrag(id string, px, py int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginFloatLocked(id, px, py)
}

// BeginPendingUnsnap records a press on a tiled window. Nothing changes until
// the pointer moves past the unsnap threshold.
func (c *Controller) BeginPendingUnsnap(id string, px, py int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginPendingLocked(id, px, py)
}

func (c *Controller) beginFloatLocked(id string, px, py int) bool {
	entry, ok := c.desk.FloatingEntry(id)
	if !ok {
		return false
	}
	c.desk, _ = c.desk.BringToFront(id)

	c.gesture.reset()
	c.gesture.phase = PhaseDraggingFloat
	c.gesture.drag = drag{
		windowID: id,
		startX:   px,
		startY:   py,
		initialX: entry.X,
		initialY: entry.Y,
		width:    entry.Width,
		height:   entry.Height,
	}
	c.logger.Debug("drag started", "window", id, "x", px, "y", py)
	return true
}

func (c *Controller) beginPendingLocked(id string, px, py int) bool {
	if c.desk.Placement(id) != desktop.PlacementTiled {
		return false
	}

	c.gesture.reset()
	c.gesture.phase = PhasePendingUnsnap
	c.gesture.drag = drag{windowID: id, startX: px, startY: py}
	c.logger.Debug("pending unsnap", "window", id, "x", px, "y", py)
	return true
}

// OnPointerMove advances the gesture with a new cursor position.
func (c *Controller) OnPointerMove(px, py int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.gesture.phase {
	case PhasePendingUnsnap:
		c.promoteLocked(px, py)
	case PhaseDraggingFloat, PhaseDraggingUnsnapped:
		c.dragLocked(px, py)
	case PhaseIdle:
	}
}

// OnPointerUp ends the gesture, committing the recorded snap intent if there
// is one. It reports whether a snap was committed.
func (c *Controller) OnPointerUp() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	committed := false
	if c.gesture.phase.Dragging() && c.gesture.intent != nil {
		intent := c.gesture.intent
		committed = c.snapLocked(c.gesture.drag.windowID, intent.Path, intent.Direction)
	}
	c.gesture.reset()
	return committed
}

func (c *Controller) promoteLocked(px, py int) {
	d := c.gesture.drag
	dist := math.Hypot(float64(px-d.startX), float64(py-d.startY))
	if dist < c.settings.UnsnapThreshold {
		return
	}

	x := px - desktop.DefaultWidth/2
	y := py - c.settings.GrabOffsetY
	if !c.unsnapLocked(d.windowID, x, y) {
		// The window vanished or changed region under us; abandon the gesture.
		c.gesture.reset()
		return
	}

	c.gesture.phase = PhaseDraggingUnsnapped
	c.gesture.intent = nil
	c.gesture.drag = drag{
		windowID:     d.windowID,
		startX:       px,
		startY:       py,
		initialX:     x,
		initialY:     y,
		width:        desktop.DefaultWidth,
		height:       desktop.DefaultHeight,
		suppressSnap: true,
	}
}

func (c *Controller) dragLocked(px, py int) {
	d := c.gesture.drag
	x := d.initialX + (px - d.startX)
	y := d.initialY + (py - d.startY)
	c.desk, _ = c.desk.MoveWindow(d.windowID, x, y)

	c.gesture.intent = nil
	if d.suppressSnap {
		return
	}

	win := tiling.Rect{X: x, Y: y, Width: d.width, Height: d.height}
	intent, ok := DetectSnap(c.desk.Root(), c.surface, px, py, win, c.settings.SnapMargin)
	if ok {
		c.gesture.intent = &intent
	}
}

func randomOffset(rng *rand.Rand, span int) int {
	if span <= 0 {
		return 0
	}
	return rng.Intn(span)
}
