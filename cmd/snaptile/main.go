package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/daemon"
	"github.com/1broseidon/snaptile/internal/gesture"
	"github.com/1broseidon/snaptile/internal/ipc"
	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/runtimepath"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: snaptile daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: snaptile daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "window":
		os.Exit(runWindow(os.Args[2:]))
	case "pointer":
		os.Exit(runPointer(os.Args[2:]))
	case "tree":
		os.Exit(runTree(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: snaptile <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the snaptile daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  reload              Reload daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  window create       Open a floating window")
	fmt.Fprintln(w, "  window list         List windows")
	fmt.Fprintln(w, "  window move         Move a floating window")
	fmt.Fprintln(w, "  window front        Raise a floating window")
	fmt.Fprintln(w, "  window close        Close a window")
	fmt.Fprintln(w, "  window snap         Tile a floating window")
	fmt.Fprintln(w, "  window unsnap       Float a tiled window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  pointer down        Press the pointer on a window")
	fmt.Fprintln(w, "  pointer move        Move the pointer")
	fmt.Fprintln(w, "  pointer up          Release the pointer")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tree                Draw the tiled layout")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config path         Print the config file path")
	fmt.Fprintln(w, "  config init         Write a default config file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'snaptile <command> --help' for command-specific options.")
}

var (
	statusKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(16)
	statusValStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
)

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snaptile status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	rows := [][2]string{
		{"daemon_running", strconv.FormatBool(status.DaemonRunning)},
		{"uptime_seconds", strconv.FormatInt(status.UptimeSeconds, 10)},
		{"surface_source", status.SurfaceSource},
		{"surface", fmt.Sprintf("%dx%d+%d+%d", status.Surface.Width, status.Surface.Height, status.Surface.X, status.Surface.Y)},
		{"windows", strconv.Itoa(status.WindowCount)},
		{"floating", strconv.Itoa(status.FloatingCount)},
		{"tiled", strconv.Itoa(status.TiledCount)},
		{"phase", status.Phase},
		{"layout", status.Layout},
	}
	for _, row := range rows {
		fmt.Println(statusKeyStyle.Render(row[0]+":") + statusValStyle.Render(row[1]))
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: snaptile reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the daemon to re-read its configuration file.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config reloaded")
	return 0
}

func runDaemon() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (surface: %s, snap margin: %dpx)", cfg.SurfaceSource, cfg.SnapMargin)

	level := new(slog.LevelVar)
	level.Set(cfg.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	provider, err := platform.NewSurfaceProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to open surface provider: %v", err)
	}
	surface, err := provider.Surface()
	if err != nil {
		log.Printf("Warning: failed to read surface from %s, using configured surface: %v", provider.Name(), err)
		surface = cfg.Surface.Rect()
	}
	log.Printf("Surface %dx%d+%d+%d from %s", surface.Width, surface.Height, surface.X, surface.Y, provider.Name())

	ctrl := gesture.NewController(gesture.Options{
		Surface:  surface,
		Settings: cfg.GestureSettings(),
		Palette:  cfg.Palette,
		Logger:   logger,
	})

	// Create config reload channel
	reloadChan := make(chan struct{}, 1)

	// Start IPC server
	ipcServer, err := ipc.NewServer(cfg, ctrl, reloadChan)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	pidPath, err := runtimepath.PIDPath()
	if err == nil {
		if err := os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())+"\n"), 0600); err != nil {
			log.Printf("Warning: failed to write pid file: %v", err)
		} else {
			defer os.Remove(pidPath)
		}
	}

	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: 10 * time.Second,
		Logger:   logger,
	}, provider, ctrl)
	defer reconciler.SetProvider(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reconciler.Run(ctx)

	log.Println("snaptile daemon started successfully")

	apply := func(newCfg *config.Config) {
		level.Set(newCfg.SlogLevel())
		ctrl.SetSettings(newCfg.GestureSettings())

		p, err := platform.NewSurfaceProvider(newCfg)
		if err != nil {
			log.Printf("Config reload: keeping surface provider: %v", err)
			return
		}
		reconciler.SetProvider(p)
		reconciler.ReconcileNow()
	}

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading config...")
				newCfg, err := config.Load()
				if err != nil {
					log.Printf("Config reload failed: %v", err)
					continue
				}
				ipcServer.UpdateConfig(newCfg)
				apply(newCfg)
				log.Println("Config reloaded successfully")

			case os.Interrupt, syscall.SIGTERM:
				log.Println("Shutting down snaptile daemon...")
				return
			}

		case <-reloadChan:
			// Config was reloaded via IPC; the server already swapped it.
			apply(ipcServer.GetConfig())
		}
	}
}
