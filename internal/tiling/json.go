package tiling

import "fmt"

// Node type tags used on the wire.
const (
	TypeSplit  = "split"
	TypeWindow = "window"
	TypeEmpty  = "empty"
)

// NodeJSON is the tagged wire form of a Node.
type NodeJSON struct {
	Type     string      `json:"type"`
	Axis     Axis        `json:"axis,omitempty"`
	Ratio    float64     `json:"ratio,omitempty"`
	Children []*NodeJSON `json:"children,omitempty"`
	WindowID string      `json:"window_id,omitempty"`
}

// Encode converts a tree to its wire form. A nil root encodes as nil.
func Encode(root Node) *NodeJSON {
	switch n := root.(type) {
	case *Split:
		return &NodeJSON{
			Type:     TypeSplit,
			Axis:     n.Axis,
			Ratio:    n.ratio(),
			Children: []*NodeJSON{Encode(n.Children[0]), Encode(n.Children[1])},
		}
	case *Slot:
		return &NodeJSON{Type: TypeWindow, WindowID: n.WindowID}
	case *Empty:
		return &NodeJSON{Type: TypeEmpty}
	default:
		return nil
	}
}

// Decode rebuilds a tree from its wire form and validates it.
func Decode(j *NodeJSON) (Node, error) {
	root, err := decode(j, Path{})
	if err != nil {
		return nil, err
	}
	if err := Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

func decode(j *NodeJSON, path Path) (Node, error) {
	if j == nil {
		if len(path) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("node at %s: missing", path)
	}

	switch j.Type {
	case TypeSplit:
		if j.Axis != AxisRow && j.Axis != AxisColumn {
			return nil, fmt.Errorf("node at %s: invalid axis %q", path, j.Axis)
		}
		if len(j.Children) != 2 {
			return nil, fmt.Errorf("node at %s: split needs 2 children, got %d", path, len(j.Children))
		}
		split := &Split{Axis: j.Axis, Ratio: j.Ratio}
		for i, child := range j.Children {
			n, err := decode(child, append(path.Clone(), i))
			if err != nil {
				return nil, err
			}
			split.Children[i] = n
		}
		split.Ratio = split.ratio()
		return split, nil
	case TypeWindow:
		if j.WindowID == "" {
			return nil, fmt.Errorf("node at %s: window node without window_id", path)
		}
		return &Slot{WindowID: j.WindowID}, nil
	case TypeEmpty:
		return &Empty{}, nil
	default:
		return nil, fmt.Errorf("node at %s: unknown type %q", path, j.Type)
	}
}
