package tiling

import (
	"fmt"
	"strings"
)

// DefaultRatio is the share of a split's extent given to its first child.
const DefaultRatio = 0.5

// Axis is the direction along which a Split divides its rectangle.
type Axis string

const (
	// AxisRow places children side by side (left | right).
	AxisRow Axis = "row"
	// AxisColumn stacks children (top / bottom).
	AxisColumn Axis = "column"
)

// Direction is the edge a window is snapped against.
type Direction string

const (
	DirLeft   Direction = "left"
	DirRight  Direction = "right"
	DirTop    Direction = "top"
	DirBottom Direction = "bottom"
)

// ParseDirection converts user input into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("invalid direction %q: must be one of left, right, top, bottom", s)
	}
	return d, nil
}

// Valid reports whether d is one of the four snap directions.
func (d Direction) Valid() bool {
	switch d {
	case DirLeft, DirRight, DirTop, DirBottom:
		return true
	default:
		return false
	}
}

// Axis returns the split axis a snap in this direction produces.
func (d Direction) Axis() Axis {
	if d == DirTop || d == DirBottom {
		return AxisColumn
	}
	return AxisRow
}

// Leading reports whether the snapped window takes the first child slot.
func (d Direction) Leading() bool {
	return d == DirLeft || d == DirTop
}

// Path addresses a node by child indices from the root. An empty path is the
// root itself.
type Path []int

func (p Path) String() string {
	if p == nil {
		return "none"
	}
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Clone returns a copy of p that preserves the nil/empty distinction.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// ParsePath reads a path from user input. "none" (or an empty string) is the
// nil path addressing an empty surface, "root" is the root node, and a comma
// separated list such as "0,1" walks child indices.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "null":
		return nil, nil
	case "root", "[]":
		return Path{}, nil
	}

	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	parts := strings.Split(s, ",")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch part {
		case "0":
			out = append(out, 0)
		case "1":
			out = append(out, 1)
		default:
			return nil, fmt.Errorf("invalid path element %q: must be 0 or 1", part)
		}
	}
	return out, nil
}

// Node is one of *Split, *Slot or *Empty. Nodes are immutable once built;
// mutation helpers return new nodes and share untouched subtrees.
type Node interface {
	isNode()
}

// Split divides its rectangle between exactly two children.
type Split struct {
	Axis     Axis
	Children [2]Node
	Ratio    float64
}

// Slot holds a single tiled window.
type Slot struct {
	WindowID string
}

// Empty occupies space without content until a window fills it.
type Empty struct{}

func (*Split) isNode() {}
func (*Slot) isNode()  {}
func (*Empty) isNode() {}

// NewSplit builds a Split at the default ratio.
func NewSplit(axis Axis, first, second Node) *Split {
	return &Split{
		Axis:     axis,
		Children: [2]Node{first, second},
		Ratio:    DefaultRatio,
	}
}

func (s *Split) ratio() float64 {
	if s.Ratio <= 0 || s.Ratio >= 1 {
		return DefaultRatio
	}
	return s.Ratio
}

// Equal reports structural equality of two trees.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Split:
		y, ok := b.(*Split)
		return ok && x.Axis == y.Axis && x.ratio() == y.ratio() &&
			Equal(x.Children[0], y.Children[0]) && Equal(x.Children[1], y.Children[1])
	case *Slot:
		y, ok := b.(*Slot)
		return ok && x.WindowID == y.WindowID
	case *Empty:
		_, ok := b.(*Empty)
		return ok
	default:
		return false
	}
}

// Contains reports whether windowID has a slot in the tree.
func Contains(root Node, windowID string) bool {
	for _, id := range Windows(root) {
		if id == windowID {
			return true
		}
	}
	return false
}

// Windows lists the tiled window IDs in depth-first, first-child-first order.
func Windows(root Node) []string {
	var out []string
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Split:
			walk(n.Children[0])
			walk(n.Children[1])
		case *Slot:
			out = append(out, n.WindowID)
		case *Empty, nil:
		}
	}
	walk(root)
	return out
}

// depth returns the number of levels in the tree; 0 for an absent root.
func depth(root Node) int {
	switch n := root.(type) {
	case *Split:
		return 1 + max(depth(n.Children[0]), depth(n.Children[1]))
	case *Slot, *Empty:
		return 1
	default:
		return 0
	}
}

// Validate checks the structural invariants of a tree: every split has two
// distinct non-nil children and no window appears twice.
func Validate(root Node) error {
	seen := make(map[string]Path)
	var walk func(Node, Path) error
	walk = func(n Node, path Path) error {
		switch n := n.(type) {
		case *Split:
			if n.Axis != AxisRow && n.Axis != AxisColumn {
				return fmt.Errorf("split at %s: invalid axis %q", path, n.Axis)
			}
			if n.Children[0] == nil || n.Children[1] == nil {
				return fmt.Errorf("split at %s: missing child", path)
			}
			if n.Children[0] == n.Children[1] {
				return fmt.Errorf("split at %s: both children are the same subtree", path)
			}
			for i, child := range n.Children {
				if err := walk(child, append(path.Clone(), i)); err != nil {
					return err
				}
			}
		case *Slot:
			if prev, dup := seen[n.WindowID]; dup {
				return fmt.Errorf("window %s tiled twice (at %s and %s)", n.WindowID, prev, path)
			}
			seen[n.WindowID] = path
		case *Empty:
		case nil:
			return fmt.Errorf("nil node at %s", path)
		}
		return nil
	}
	if root == nil {
		return nil
	}
	return walk(root, Path{})
}

// String renders a compact form such as row(A,column(B,empty)).
func String(root Node) string {
	switch n := root.(type) {
	case *Split:
		return fmt.Sprintf("%s(%s,%s)", n.Axis, String(n.Children[0]), String(n.Children[1]))
	case *Slot:
		return n.WindowID
	case *Empty:
		return "empty"
	default:
		return "none"
	}
}
