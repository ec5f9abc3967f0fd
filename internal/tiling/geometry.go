package tiling

// Rect represents a region of the surface in pixel units.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Contains reports whether the point lies inside r, edges included.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Hit is the deepest leaf under a point.
type Hit struct {
	Node Node
	Path Path
	Rect Rect
}

// Leaf pairs a leaf node with its rectangle.
type Leaf struct {
	Node Node
	Path Path
	Rect Rect
}

// SplitRect divides r along axis. The first part gets floor(extent*ratio),
// the second the remainder, so the two always tile r exactly.
func SplitRect(r Rect, axis Axis, ratio float64) (Rect, Rect) {
	first, second := r, r
	switch axis {
	case AxisRow:
		w := int(float64(r.Width) * ratio)
		first.Width = w
		second.X = r.X + w
		second.Width = r.Width - w
	case AxisColumn:
		h := int(float64(r.Height) * ratio)
		first.Height = h
		second.Y = r.Y + h
		second.Height = r.Height - h
	}
	return first, second
}

func childRects(s *Split, r Rect) [2]Rect {
	first, second := SplitRect(r, s.Axis, s.ratio())
	return [2]Rect{first, second}
}

// RectForPath returns the rectangle of the node addressed by path. It reports
// false for an absent root or a path that runs through a leaf.
func RectForPath(root Node, path Path, container Rect) (Rect, bool) {
	if root == nil {
		return Rect{}, false
	}

	rect := container
	node := root
	for _, idx := range path {
		split, ok := node.(*Split)
		if !ok || idx < 0 || idx > 1 {
			return Rect{}, false
		}
		rect = childRects(split, rect)[idx]
		node = split.Children[idx]
	}
	return rect, true
}

// nodeAt returns the node addressed by path.
func nodeAt(root Node, path Path) (Node, bool) {
	node := root
	if node == nil {
		return nil, false
	}
	for _, idx := range path {
		split, ok := node.(*Split)
		if !ok || idx < 0 || idx > 1 {
			return nil, false
		}
		node = split.Children[idx]
	}
	return node, true
}

// HitTest finds the deepest leaf containing (x, y). Child 0 is tried first so
// it wins points on the shared boundary.
func HitTest(root Node, x, y int, container Rect) (Hit, bool) {
	if root == nil || !container.Contains(x, y) {
		return Hit{}, false
	}

	switch n := root.(type) {
	case *Slot, *Empty:
		return Hit{Node: n, Path: Path{}, Rect: container}, true
	case *Split:
		rects := childRects(n, container)
		for i, child := range n.Children {
			hit, ok := HitTest(child, x, y, rects[i])
			if ok {
				hit.Path = append(Path{i}, hit.Path...)
				return hit, true
			}
		}
	}
	return Hit{}, false
}

// Leaves returns every leaf with its rectangle, first child first.
func Leaves(root Node, container Rect) []Leaf {
	var out []Leaf
	var walk func(Node, Path, Rect)
	walk = func(n Node, path Path, r Rect) {
		switch n := n.(type) {
		case *Split:
			rects := childRects(n, r)
			for i, child := range n.Children {
				walk(child, append(path.Clone(), i), rects[i])
			}
		case *Slot, *Empty:
			out = append(out, Leaf{Node: n, Path: path, Rect: r})
		}
	}
	if root != nil {
		walk(root, Path{}, container)
	}
	return out
}

// IndicatorRect is the preview area for a snap against region. Filling an
// empty slot covers the whole region; otherwise the snapping half, with the
// far half aligned to the region's far edge.
func IndicatorRect(region Rect, dir Direction, fill bool) Rect {
	out := region
	if fill {
		return out
	}

	switch dir {
	case DirLeft:
		out.Width = region.Width / 2
	case DirRight:
		half := region.Width / 2
		out.X += region.Width - half
		out.Width = half
	case DirTop:
		out.Height = region.Height / 2
	case DirBottom:
		half := region.Height / 2
		out.Y += region.Height - half
		out.Height = half
	}
	return out
}
