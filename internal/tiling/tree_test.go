package tiling

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestInsertAtRoot(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirLeft, "row(A,empty)"},
		{DirRight, "row(empty,A)"},
		{DirTop, "column(A,empty)"},
		{DirBottom, "column(empty,A)"},
	}
	for _, tt := range tests {
		root, ok := InsertAtRoot(tt.dir, "A")
		if !ok {
			t.Fatalf("InsertAtRoot(%s) failed", tt.dir)
		}
		if got := String(root); got != tt.want {
			t.Errorf("InsertAtRoot(%s) = %s, want %s", tt.dir, got, tt.want)
		}
		if split := root.(*Split); split.Ratio != DefaultRatio {
			t.Errorf("expected ratio %v, got %v", DefaultRatio, split.Ratio)
		}
	}

	if _, ok := InsertAtRoot(Direction("diagonal"), "A"); ok {
		t.Fatalf("expected invalid direction to fail")
	}
}

func TestInsertAtPath_FillsEmptyWithoutSplitting(t *testing.T) {
	root, _ := InsertAtRoot(DirLeft, "A")
	next, ok := InsertAtPath(root, Path{1}, DirRight, "B")
	if !ok {
		t.Fatalf("expected insert to succeed")
	}
	if got := String(next); got != "row(A,B)" {
		t.Fatalf("expected row(A,B), got %s", got)
	}
	if got := String(root); got != "row(A,empty)" {
		t.Fatalf("input tree mutated: %s", got)
	}
	if next.(*Split).Children[0] != root.(*Split).Children[0] {
		t.Fatalf("expected untouched sibling to be shared")
	}
}

func TestInsertAtPath_WrapsSlot(t *testing.T) {
	root := NewSplit(AxisRow, &Slot{WindowID: "A"}, &Slot{WindowID: "B"})
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirLeft, "row(row(C,A),B)"},
		{DirRight, "row(row(A,C),B)"},
		{DirTop, "row(column(C,A),B)"},
		{DirBottom, "row(column(A,C),B)"},
	}
	for _, tt := range tests {
		next, ok := InsertAtPath(root, Path{0}, tt.dir, "C")
		if !ok {
			t.Fatalf("InsertAtPath(%s) failed", tt.dir)
		}
		if got := String(next); got != tt.want {
			t.Errorf("InsertAtPath([0], %s) = %s, want %s", tt.dir, got, tt.want)
		}
		if err := Validate(next); err != nil {
			t.Errorf("invalid tree: %v", err)
		}
	}
}

func TestInsertAtPath_RootLeaf(t *testing.T) {
	next, ok := InsertAtPath(&Slot{WindowID: "A"}, Path{}, DirBottom, "B")
	if !ok || String(next) != "column(A,B)" {
		t.Fatalf("expected column(A,B), got %s (ok=%v)", String(next), ok)
	}
	next, ok = InsertAtPath(&Empty{}, Path{}, DirLeft, "B")
	if !ok || String(next) != "B" {
		t.Fatalf("expected empty root to be filled, got %s (ok=%v)", String(next), ok)
	}
}

func TestInsertAtPath_WrapsSplit(t *testing.T) {
	inner := NewSplit(AxisRow, &Slot{WindowID: "A"}, &Slot{WindowID: "B"})
	root := NewSplit(AxisColumn, inner, &Slot{WindowID: "D"})
	tests := []struct {
		name string
		path Path
		dir  Direction
		want string
	}{
		{"root top", Path{}, DirTop, "column(C,column(row(A,B),D))"},
		{"root right", Path{}, DirRight, "row(column(row(A,B),D),C)"},
		{"inner bottom", Path{0}, DirBottom, "column(column(row(A,B),C),D)"},
		{"inner left", Path{0}, DirLeft, "column(row(C,row(A,B)),D)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := InsertAtPath(root, tt.path, tt.dir, "C")
			if !ok {
				t.Fatalf("InsertAtPath(%s, %s) failed", tt.path, tt.dir)
			}
			if got := String(next); got != tt.want {
				t.Fatalf("InsertAtPath(%s, %s) = %s, want %s", tt.path, tt.dir, got, tt.want)
			}
			if err := Validate(next); err != nil {
				t.Fatalf("invalid tree: %v", err)
			}
		})
	}
}

func TestInsertAtPath_MalformedPathIsNoMatch(t *testing.T) {
	root := NewSplit(AxisRow, &Slot{WindowID: "A"}, &Empty{})
	for _, path := range []Path{{0, 0}, {3}, {1, 1, 1}} {
		next, ok := InsertAtPath(root, path, DirLeft, "C")
		if ok {
			t.Fatalf("InsertAtPath(%s) should fail", path)
		}
		if next != Node(root) {
			t.Fatalf("InsertAtPath(%s) should return the input tree", path)
		}
	}
	if _, ok := InsertAtPath(nil, Path{}, DirLeft, "C"); ok {
		t.Fatalf("expected nil root to fail")
	}
}

func TestRemoveWindow_CollapsesParent(t *testing.T) {
	root := NewSplit(AxisRow,
		&Slot{WindowID: "A"},
		NewSplit(AxisColumn, &Slot{WindowID: "B"}, &Slot{WindowID: "C"}),
	)

	next := RemoveWindow(root, "B")
	if got := String(next); got != "row(A,C)" {
		t.Fatalf("expected row(A,C), got %s", got)
	}
	if depth(next) >= depth(root) {
		t.Fatalf("expected depth to decrease: %d -> %d", depth(root), depth(next))
	}
	if next.(*Split).Children[0] != root.Children[0] {
		t.Fatalf("expected untouched sibling A to be shared")
	}

	next = RemoveWindow(root, "A")
	if next != root.Children[1] {
		t.Fatalf("expected surviving subtree to take the root position, got %s", String(next))
	}
}

func TestRemoveWindow_EmptySiblingSurvives(t *testing.T) {
	root, _ := InsertAtRoot(DirLeft, "A")
	next := RemoveWindow(root, "A")
	if _, ok := next.(*Empty); !ok {
		t.Fatalf("expected Empty to survive, got %s", String(next))
	}
}

func TestRemoveWindow_LastWindowYieldsNil(t *testing.T) {
	if next := RemoveWindow(&Slot{WindowID: "A"}, "A"); next != nil {
		t.Fatalf("expected nil root, got %s", String(next))
	}
	if next := RemoveWindow(nil, "A"); next != nil {
		t.Fatalf("expected nil root to stay nil")
	}
}

func TestRemoveWindow_UnknownIsNoop(t *testing.T) {
	root := sampleTree()
	if next := RemoveWindow(root, "Z"); next != root {
		t.Fatalf("expected unknown id to return the same tree")
	}
}

func TestValidate(t *testing.T) {
	shared := &Slot{WindowID: "A"}
	tests := []struct {
		name    string
		root    Node
		wantErr string
	}{
		{"valid", sampleTree(), ""},
		{"absent", nil, ""},
		{"same subtree twice", &Split{Axis: AxisRow, Children: [2]Node{shared, shared}}, "same subtree"},
		{"duplicate window", NewSplit(AxisRow, &Slot{WindowID: "A"}, &Slot{WindowID: "A"}), "tiled twice"},
		{"missing child", &Split{Axis: AxisRow, Children: [2]Node{&Empty{}, nil}}, "missing child"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.root)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDecode_RejectsMalformedTrees(t *testing.T) {
	inputs := []string{
		`{"type":"split","axis":"row","children":[{"type":"empty"}]}`,
		`{"type":"split","axis":"diagonal","children":[{"type":"empty"},{"type":"empty"}]}`,
		`{"type":"window"}`,
		`{"type":"bogus"}`,
	}
	for _, in := range inputs {
		var j NodeJSON
		if err := json.Unmarshal([]byte(in), &j); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if _, err := Decode(&j); err == nil {
			t.Errorf("expected Decode(%s) to fail", in)
		}
	}
}

func TestEncodeDecode_PreservesShape(t *testing.T) {
	root := sampleTree()
	data, err := json.Marshal(Encode(root))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var j NodeJSON
	if err := json.Unmarshal(data, &j); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	back, err := Decode(&j)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !Equal(root, back) {
		t.Fatalf("expected %s, got %s", String(root), String(back))
	}
}

func TestRenderASCII_LabelsLeaves(t *testing.T) {
	root := NewSplit(AxisRow, &Slot{WindowID: "A"}, &Empty{})
	lines := RenderASCII(root, func(n Node) string {
		if s, ok := n.(*Slot); ok {
			return s.WindowID
		}
		return "."
	}, 40, 10)
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "A") || !strings.Contains(joined, ".") {
		t.Fatalf("expected both leaf labels in preview:\n%s", joined)
	}
	if !strings.HasPrefix(lines[0], "╔") {
		t.Fatalf("expected outer border, got %q", lines[0])
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in      string
		want    Path
		wantErr bool
	}{
		{"none", nil, false},
		{"", nil, false},
		{"root", Path{}, false},
		{"[]", Path{}, false},
		{"0", Path{0}, false},
		{"0,1", Path{0, 1}, false},
		{"[1, 0]", Path{1, 0}, false},
		{"2", nil, true},
		{"0,,1", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", tt.in, err)
			}
			if (got == nil) != (tt.want == nil) || got.String() != tt.want.String() {
				t.Fatalf("ParsePath(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
