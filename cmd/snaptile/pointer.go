package main

import (
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/snaptile/internal/ipc"
)

func printPointerUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  snaptile pointer down <id> <x> <y>")
	fmt.Fprintln(w, "  snaptile pointer move <x> <y>")
	fmt.Fprintln(w, "  snaptile pointer up")
}

func runPointer(args []string) int {
	if len(args) == 0 {
		printPointerUsage(os.Stderr)
		return 2
	}

	client := ipc.NewClient()
	switch args[0] {
	case "down":
		if len(args) != 4 {
			fmt.Fprintln(os.Stderr, "pointer down requires <id> <x> <y>")
			return 2
		}
		x, y, err := parsePoint(args[2], args[3])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		started, err := client.PointerDown(args[1], x, y)
		return reportChanged(started, err)

	case "move":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, "pointer move requires <x> <y>")
			return 2
		}
		x, y, err := parsePoint(args[1], args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		state, err := client.PointerMove(x, y)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("phase: %s\n", state.Phase)
		if state.Intent != nil {
			r := state.Intent.Indicator
			fmt.Printf("intent: %s at %s (%dx%d+%d+%d)\n",
				state.Intent.Direction, state.Intent.Path, r.Width, r.Height, r.X, r.Y)
		} else {
			fmt.Println("intent: none")
		}
		return 0

	case "up":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "pointer up takes no arguments")
			return 2
		}
		committed, err := client.PointerUp()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if committed {
			fmt.Println("snapped")
		} else {
			fmt.Println("released")
		}
		return 0

	case "help", "-h", "--help":
		printPointerUsage(os.Stdout)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown pointer command: %s\n\n", args[0])
		printPointerUsage(os.Stderr)
		return 2
	}
}
