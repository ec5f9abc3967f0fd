package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/1broseidon/snaptile/internal/ipc"
	"github.com/1broseidon/snaptile/internal/tiling"
)

func printWindowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  snaptile window create")
	fmt.Fprintln(w, "  snaptile window list [--json]")
	fmt.Fprintln(w, "  snaptile window move <id> <x> <y>")
	fmt.Fprintln(w, "  snaptile window front <id>")
	fmt.Fprintln(w, "  snaptile window close <id>")
	fmt.Fprintln(w, "  snaptile window snap [--path none|root|0,1] <id> <left|right|top|bottom>")
	fmt.Fprintln(w, "  snaptile window unsnap <id> <x> <y>")
}

func runWindow(args []string) int {
	if len(args) == 0 {
		printWindowUsage(os.Stderr)
		return 2
	}

	client := ipc.NewClient()
	switch args[0] {
	case "create":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "window create takes no arguments")
			return 2
		}
		id, err := client.CreateWindow()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(id)
		return 0

	case "list":
		return runWindowList(client, args[1:])

	case "move", "unsnap":
		if len(args) != 4 {
			fmt.Fprintf(os.Stderr, "window %s requires <id> <x> <y>\n", args[0])
			return 2
		}
		x, y, err := parsePoint(args[2], args[3])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		var changed bool
		if args[0] == "move" {
			changed, err = client.MoveWindow(args[1], x, y)
		} else {
			changed, err = client.UnsnapWindow(args[1], x, y)
		}
		return reportChanged(changed, err)

	case "front", "close":
		if len(args) != 2 {
			fmt.Fprintf(os.Stderr, "window %s requires <id>\n", args[0])
			return 2
		}
		var (
			changed bool
			err     error
		)
		if args[0] == "front" {
			changed, err = client.BringToFront(args[1])
		} else {
			changed, err = client.CloseWindow(args[1])
		}
		return reportChanged(changed, err)

	case "snap":
		return runWindowSnap(client, args[1:])

	case "help", "-h", "--help":
		printWindowUsage(os.Stdout)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n\n", args[0])
		printWindowUsage(os.Stderr)
		return 2
	}
}

func runWindowList(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print the window list as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	state, err := client.GetState()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(state.Windows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLACEMENT\tRECT\tZ\tTAG")
	for _, w := range state.Windows {
		z := "-"
		if w.Placement == "floating" {
			z = strconv.Itoa(w.Z)
		}
		fmt.Fprintf(tw, "%s\t%s\t%dx%d+%d+%d\t%s\t%s\n",
			w.ID, w.Placement, w.Rect.Width, w.Rect.Height, w.Rect.X, w.Rect.Y, z, w.Tag)
	}
	tw.Flush()
	return 0
}

func runWindowSnap(client *ipc.Client, args []string) int {
	fs := flag.NewFlagSet("snap", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	pathFlag := fs.String("path", "none", "Target leaf: none (empty surface), root, or child indices like 0,1")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "window snap requires <id> <direction>")
		return 2
	}

	path, err := tiling.ParsePath(*pathFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	dir, err := tiling.ParseDirection(fs.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	changed, err := client.SnapWindow(fs.Arg(0), path, dir)
	return reportChanged(changed, err)
}

func parsePoint(xs, ys string) (int, int, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x %q: %w", xs, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y %q: %w", ys, err)
	}
	return x, y, nil
}

// reportChanged prints the outcome of a mutating command. Unchanged is not a
// failure but exits 1 so scripts can branch on it.
func reportChanged(changed bool, err error) int {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !changed {
		fmt.Println("unchanged")
		return 1
	}
	fmt.Println("ok")
	return 0
}
