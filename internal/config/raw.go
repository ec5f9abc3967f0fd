package config

type RawSurface struct {
	X      *int `yaml:"x"`
	Y      *int `yaml:"y"`
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

// RawConfig mirrors the YAML file. Nil fields were not set and keep their
// defaults.
type RawConfig struct {
	SurfaceSource   *SurfaceSource `yaml:"surface_source"`
	Surface         *RawSurface    `yaml:"surface"`
	SnapMargin      *int           `yaml:"snap_margin"`
	UnsnapThreshold *float64       `yaml:"unsnap_threshold"`
	GrabOffsetY     *int           `yaml:"grab_offset_y"`
	Palette         []string       `yaml:"palette"`
	LogLevel        *string        `yaml:"log_level"`
	Display         *string        `yaml:"display"`
	XAuthority      *string        `yaml:"xauthority"`
}
