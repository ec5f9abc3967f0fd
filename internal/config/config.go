package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/snaptile/internal/gesture"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// SurfaceSource selects where the daemon gets its surface rectangle from.
type SurfaceSource string

const (
	SurfaceAuto   SurfaceSource = "auto"   // X11 work area, falling back to the static surface.
	SurfaceX11    SurfaceSource = "x11"    // X11 work area only.
	SurfaceStatic SurfaceSource = "static" // The configured surface rectangle.
)

// Surface is the static container rectangle.
type Surface struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Rect converts the surface to a layout rectangle.
func (s Surface) Rect() tiling.Rect {
	return tiling.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

const (
	DefaultSurfaceWidth  = 1920
	DefaultSurfaceHeight = 1080
)

// Config is the effective daemon configuration.
type Config struct {
	SurfaceSource SurfaceSource `yaml:"surface_source"`
	Surface       Surface       `yaml:"surface"`

	// SnapMargin is the edge distance (exclusive) that produces a snap.
	SnapMargin int `yaml:"snap_margin"`
	// UnsnapThreshold is the pointer travel that pulls a tiled window out.
	UnsnapThreshold float64 `yaml:"unsnap_threshold"`
	// GrabOffsetY is the cursor offset below the top of an unsnapped window.
	GrabOffsetY int `yaml:"grab_offset_y"`

	// Palette holds the decorative tags assigned to new windows.
	Palette []string `yaml:"palette"`

	LogLevel string `yaml:"log_level"`

	// Display overrides $DISPLAY for the X11 surface provider.
	Display    string `yaml:"display,omitempty"`
	XAuthority string `yaml:"xauthority,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		SurfaceSource: SurfaceAuto,
		Surface: Surface{
			Width:  DefaultSurfaceWidth,
			Height: DefaultSurfaceHeight,
		},
		SnapMargin:      gesture.DefaultSnapMargin,
		UnsnapThreshold: gesture.DefaultUnsnapThreshold,
		GrabOffsetY:     gesture.DefaultGrabOffsetY,
		Palette:         append([]string(nil), gesture.DefaultPalette...),
		LogLevel:        "info",
	}
}

// GestureSettings returns the tunables for the gesture controller.
func (c *Config) GestureSettings() gesture.Settings {
	return gesture.Settings{
		SnapMargin:      c.SnapMargin,
		UnsnapThreshold: c.UnsnapThreshold,
		GrabOffsetY:     c.GrabOffsetY,
	}
}

// SlogLevel maps log_level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Marshal renders the effective config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to path, creating parent directories.
//
// Note: comments from an existing file are not preserved.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.SurfaceSource {
	case SurfaceAuto, SurfaceX11, SurfaceStatic:
	default:
		return &ValidationError{Path: "surface_source", Err: fmt.Errorf("surface_source must be one of: auto, x11, static")}
	}
	if c.Surface.Width <= 0 {
		return &ValidationError{Path: "surface.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Surface.Height <= 0 {
		return &ValidationError{Path: "surface.height", Err: fmt.Errorf("height must be > 0")}
	}
	if c.SnapMargin <= 0 {
		return &ValidationError{Path: "snap_margin", Err: fmt.Errorf("snap_margin must be > 0")}
	}
	if c.UnsnapThreshold <= 0 {
		return &ValidationError{Path: "unsnap_threshold", Err: fmt.Errorf("unsnap_threshold must be > 0")}
	}
	if c.GrabOffsetY < 0 {
		return &ValidationError{Path: "grab_offset_y", Err: fmt.Errorf("grab_offset_y must be >= 0")}
	}
	if len(c.Palette) == 0 {
		return &ValidationError{Path: "palette", Err: fmt.Errorf("palette must not be empty")}
	}
	for i, tag := range c.Palette {
		if strings.TrimSpace(tag) == "" {
			return &ValidationError{Path: "palette", Err: fmt.Errorf("palette entry %d is empty", i)}
		}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}
