package tiling

// InsertAtRoot seeds an empty surface: the window takes the side named by
// dir and an Empty holds the other half.
func InsertAtRoot(dir Direction, windowID string) (Node, bool) {
	if !dir.Valid() {
		return nil, false
	}
	return wrap(dir, &Slot{WindowID: windowID}, &Empty{}), true
}

// InsertAtPath places windowID at the node addressed by path. An Empty target
// is filled in place. A Slot target and a Split target (a path that stops at
// an internal node) are both wrapped in a new Split with the incoming window
// on the dir side. Ancestors are rebuilt and untouched subtrees are shared
// with root.
// A malformed path or invalid direction leaves the tree unchanged.
func InsertAtPath(root Node, path Path, dir Direction, windowID string) (Node, bool) {
	if root == nil || !dir.Valid() {
		return root, false
	}

	if len(path) == 0 {
		incoming := &Slot{WindowID: windowID}
		switch n := root.(type) {
		case *Empty:
			return incoming, true
		case *Slot, *Split:
			return wrap(dir, incoming, n), true
		default:
			return root, false
		}
	}

	split, ok := root.(*Split)
	if !ok {
		return root, false
	}
	idx := path[0]
	if idx < 0 || idx > 1 {
		return root, false
	}

	child, ok := InsertAtPath(split.Children[idx], path[1:], dir, windowID)
	if !ok {
		return root, false
	}
	next := *split
	next.Children[idx] = child
	return &next, true
}

// RemoveWindow drops the slot holding windowID. The parent split of the
// removed slot collapses into the surviving sibling. Removing the last leaf
// yields nil. Unknown IDs return root itself.
func RemoveWindow(root Node, windowID string) Node {
	return remove(root, windowID)
}

func remove(n Node, windowID string) Node {
	switch n := n.(type) {
	case *Slot:
		if n.WindowID == windowID {
			return nil
		}
		return n
	case *Empty:
		return n
	case *Split:
		first := remove(n.Children[0], windowID)
		second := remove(n.Children[1], windowID)
		if first == nil {
			return second
		}
		if second == nil {
			return first
		}
		if first == n.Children[0] && second == n.Children[1] {
			return n
		}
		next := *n
		next.Children = [2]Node{first, second}
		return &next
	default:
		return nil
	}
}

func wrap(dir Direction, incoming, existing Node) *Split {
	if dir.Leading() {
		return NewSplit(dir.Axis(), incoming, existing)
	}
	return NewSplit(dir.Axis(), existing, incoming)
}
