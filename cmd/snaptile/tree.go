package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/snaptile/internal/ipc"
	"github.com/1broseidon/snaptile/internal/tiling"
)

var (
	treeHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	treeDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func runTree(args []string) int {
	fs := flag.NewFlagSet("tree", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	width := fs.Int("width", 0, "Preview width in characters (default: terminal width)")
	height := fs.Int("height", 0, "Preview height in characters (default: from width and surface aspect)")
	asJSON := fs.Bool("json", false, "Print the layout tree as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snaptile tree [--width N] [--height N] [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Draw the tiled layout as an ASCII preview.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	state, err := ipc.NewClient().GetState()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state.Tree); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	root, err := state.Root()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	w, h := previewSize(*width, *height, state.Surface)
	fmt.Println(treeHeaderStyle.Render("layout: " + state.Layout))
	fmt.Println(treeDimStyle.Render(fmt.Sprintf("surface %dx%d, %d leaves, phase %s",
		state.Surface.Width, state.Surface.Height, len(state.Leaves), state.Phase)))

	labels := make(map[string]string, len(state.Windows))
	for _, win := range state.Windows {
		labels[win.ID] = shortID(win.ID)
	}
	lines := tiling.RenderASCII(root, func(n tiling.Node) string {
		if slot, ok := n.(*tiling.Slot); ok {
			return labels[slot.WindowID]
		}
		return ""
	}, w, h)
	fmt.Println(strings.Join(lines, "\n"))
	return 0
}

// previewSize picks a canvas size. Terminal cells are roughly twice as tall
// as wide, so height is halved against the surface aspect.
func previewSize(width, height int, surface tiling.Rect) (int, int) {
	if width <= 0 {
		width = 80
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
				width = tw
			}
		}
	}
	if height <= 0 {
		height = 20
		if surface.Width > 0 && surface.Height > 0 {
			height = width * surface.Height / surface.Width / 2
		}
		if height < 3 {
			height = 3
		}
	}
	return width, height
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
