package x11

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var (
	readDirFn    = os.ReadDir
	statFn       = os.Stat
	getenvFn     = os.Getenv
	setenvFn     = os.Setenv
	userHomeFn   = os.UserHomeDir
	x11SocketDir = "/tmp/.X11-unix"
)

// ResolveDisplay picks the display to connect to: the configured one, then
// $DISPLAY, then the highest numbered socket under /tmp/.X11-unix. It also
// exports XAUTHORITY from the configured path or ~/.Xauthority when the
// process has none, since xgb reads the cookie from the environment.
func ResolveDisplay(display string, xauthority string) (string, error) {
	display = strings.TrimSpace(display)
	if display == "" {
		display = strings.TrimSpace(getenvFn("DISPLAY"))
	}
	if display == "" {
		display = detectDisplayFromSockets(x11SocketDir)
	}
	if display == "" {
		return "", fmt.Errorf("no X11 display: set display in config (e.g. display: \":1\") or export DISPLAY")
	}

	if strings.TrimSpace(getenvFn("XAUTHORITY")) == "" {
		xauthority = strings.TrimSpace(xauthority)
		if xauthority == "" {
			if home, err := userHomeFn(); err == nil && home != "" {
				candidate := filepath.Join(home, ".Xauthority")
				if _, err := statFn(candidate); err == nil {
					xauthority = candidate
				}
			}
		}
		if xauthority != "" {
			if err := setenvFn("XAUTHORITY", xauthority); err != nil {
				return "", fmt.Errorf("failed to set XAUTHORITY: %w", err)
			}
		}
	}

	return display, nil
}

func detectDisplayFromSockets(dir string) string {
	entries, err := readDirFn(dir)
	if err != nil {
		return ""
	}

	var displays []int
	for _, entry := range entries {
		name := entry.Name()
		if len(name) < 2 || name[0] != 'X' {
			continue
		}
		n, err := strconv.Atoi(name[1:])
		if err != nil {
			continue
		}
		displays = append(displays, n)
	}

	if len(displays) == 0 {
		return ""
	}
	sort.Ints(displays)
	return fmt.Sprintf(":%d", displays[len(displays)-1])
}
