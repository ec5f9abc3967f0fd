package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	surface_source
//	surface
//	surface.x | surface.y | surface.width | surface.height
//	snap_margin
//	unsnap_threshold
//	grab_offset_y
//	palette
//	log_level
//	display
//	xauthority
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	if parts[0] == "surface" && len(parts) == 2 {
		switch parts[1] {
		case "x":
			return cfg.Surface.X, nil
		case "y":
			return cfg.Surface.Y, nil
		case "width":
			return cfg.Surface.Width, nil
		case "height":
			return cfg.Surface.Height, nil
		}
		return nil, fmt.Errorf("unknown path: %s", path)
	}
	if len(parts) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	switch path {
	case "surface_source":
		return cfg.SurfaceSource, nil
	case "surface":
		return cfg.Surface, nil
	case "snap_margin":
		return cfg.SnapMargin, nil
	case "unsnap_threshold":
		return cfg.UnsnapThreshold, nil
	case "grab_offset_y":
		return cfg.GrabOffsetY, nil
	case "palette":
		return cfg.Palette, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "display":
		return cfg.Display, nil
	case "xauthority":
		return cfg.XAuthority, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
