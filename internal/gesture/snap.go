package gesture

import "github.com/1broseidon/snaptile/internal/tiling"

// DetectSnap decides whether a dragged window at win, with the cursor at
// (cx, cy), should snap into root. An absent root is treated as one empty
// region covering the surface. Edges are checked left, right, top, bottom and
// the first within margin wins.
func DetectSnap(root tiling.Node, surface tiling.Rect, cx, cy int, win tiling.Rect, margin int) (Intent, bool) {
	var hit tiling.Hit
	if root == nil {
		hit = tiling.Hit{Node: &tiling.Empty{}, Path: nil, Rect: surface}
	} else {
		var ok bool
		hit, ok = tiling.HitTest(root, cx, cy, surface)
		if !ok {
			return Intent{}, false
		}
	}

	rect := hit.Rect
	_, isEmpty := hit.Node.(*tiling.Empty)
	square := abs(rect.Width-rect.Height) < 1
	allowH := root == nil || isEmpty || rect.Width > rect.Height || square
	allowV := root == nil || isEmpty || rect.Height > rect.Width || square

	distLeft := abs(win.X - rect.X)
	distRight := abs(win.X + win.Width - (rect.X + rect.Width))
	distTop := abs(win.Y - rect.Y)
	distBottom := abs(win.Y + win.Height - (rect.Y + rect.Height))

	var dir tiling.Direction
	switch {
	case allowH && distLeft < margin:
		dir = tiling.DirLeft
	case allowH && distRight < margin:
		dir = tiling.DirRight
	case allowV && distTop < margin:
		dir = tiling.DirTop
	case allowV && distBottom < margin:
		dir = tiling.DirBottom
	default:
		return Intent{}, false
	}

	// Filling a nested empty slot takes the whole region; the bare surface
	// still splits in half.
	fill := isEmpty && root != nil
	return Intent{
		Path:      hit.Path.Clone(),
		Direction: dir,
		Indicator: tiling.IndicatorRect(rect, dir, fill),
	}, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
