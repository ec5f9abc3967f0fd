package platform

import (
	"fmt"
	"log"

	"github.com/1broseidon/snaptile/internal/config"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// SurfaceProvider reports the rectangle windows are laid out in.
type SurfaceProvider interface {
	Name() string
	Surface() (tiling.Rect, error)
	Close() error
}

// StaticSurface always reports the same rectangle.
type StaticSurface struct {
	Rect tiling.Rect
}

var _ SurfaceProvider = StaticSurface{}

func (s StaticSurface) Name() string { return "static" }

func (s StaticSurface) Surface() (tiling.Rect, error) {
	if s.Rect.Width <= 0 || s.Rect.Height <= 0 {
		return tiling.Rect{}, fmt.Errorf("static surface has no area: %dx%d", s.Rect.Width, s.Rect.Height)
	}
	return s.Rect, nil
}

func (s StaticSurface) Close() error { return nil }

// FallbackSurface asks Primary first and uses Fallback when it fails.
type FallbackSurface struct {
	Primary  SurfaceProvider
	Fallback SurfaceProvider
}

var _ SurfaceProvider = (*FallbackSurface)(nil)

func (f *FallbackSurface) Name() string {
	return f.Primary.Name() + "+" + f.Fallback.Name()
}

func (f *FallbackSurface) Surface() (tiling.Rect, error) {
	rect, err := f.Primary.Surface()
	if err == nil && rect.Width > 0 && rect.Height > 0 {
		return rect, nil
	}
	return f.Fallback.Surface()
}

func (f *FallbackSurface) Close() error {
	perr := f.Primary.Close()
	ferr := f.Fallback.Close()
	if perr != nil {
		return perr
	}
	return ferr
}

// NewSurfaceProvider builds the provider selected by surface_source.
func NewSurfaceProvider(cfg *config.Config) (SurfaceProvider, error) {
	static := StaticSurface{Rect: cfg.Surface.Rect()}

	switch cfg.SurfaceSource {
	case config.SurfaceStatic:
		return static, nil
	case config.SurfaceX11:
		x, err := NewX11Surface(cfg.Display, cfg.XAuthority)
		if err != nil {
			return nil, err
		}
		return x, nil
	case config.SurfaceAuto, "":
		x, err := NewX11Surface(cfg.Display, cfg.XAuthority)
		if err != nil {
			log.Printf("Surface: X11 unavailable (%v), using static %dx%d", err, cfg.Surface.Width, cfg.Surface.Height)
			return static, nil
		}
		return &FallbackSurface{Primary: x, Fallback: static}, nil
	default:
		return nil, fmt.Errorf("unknown surface_source %q", cfg.SurfaceSource)
	}
}
