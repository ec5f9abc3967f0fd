package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw over DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.SurfaceSource != nil {
		cfg.SurfaceSource = *raw.SurfaceSource
	}
	if raw.Surface != nil {
		cfg.Surface.X = derefInt(raw.Surface.X, cfg.Surface.X)
		cfg.Surface.Y = derefInt(raw.Surface.Y, cfg.Surface.Y)
		cfg.Surface.Width = derefInt(raw.Surface.Width, cfg.Surface.Width)
		cfg.Surface.Height = derefInt(raw.Surface.Height, cfg.Surface.Height)
	}
	if raw.SnapMargin != nil {
		cfg.SnapMargin = *raw.SnapMargin
	}
	if raw.UnsnapThreshold != nil {
		cfg.UnsnapThreshold = *raw.UnsnapThreshold
	}
	if raw.GrabOffsetY != nil {
		cfg.GrabOffsetY = *raw.GrabOffsetY
	}
	if raw.Palette != nil {
		cfg.Palette = append([]string(nil), raw.Palette...)
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}

	return cfg
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
