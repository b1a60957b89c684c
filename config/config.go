package config

import (
	"image"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/setanarut/spritebuilder"
)

const (
	appName        = "spritebuilder"
	configFileName = "config.toml"
	localFileName  = "spritebuilder.toml"
)

// Config mirrors the TOML file. Unset numeric fields fall back to the
// package defaults; pointer fields distinguish "unset" from a meaningful zero.
type Config struct {
	Mask       MaskConfig       `koanf:"mask"`
	Components ComponentsConfig `koanf:"components"`
	Fader      FaderConfig      `koanf:"fader"`
	Knob       KnobConfig       `koanf:"knob"`
}

type MaskConfig struct {
	Threshold *int   `koanf:"threshold"` // 0-255, default 10
	Mode      string `koanf:"mode"`      // "max" or "luminance"
}

type ComponentsConfig struct {
	MinArea   *int   `koanf:"min_area"`  // default: 2000, capped at 1% of the image
	Despeckle bool   `koanf:"despeckle"` // 3x3 opening before labelling
	Swatches  *bool  `koanf:"swatches"`  // default: true
	Swatch    string `koanf:"swatch"`    // "dominantcolor" or "kmeans"
}

type LayoutConfig struct {
	Frames      int    `koanf:"frames"`      // 2-256, default 64
	Arrangement string `koanf:"arrangement"` // "horizontal", "vertical" or "grid"
	Columns     int    `koanf:"columns"`     // grid only, default 8
	Offset      int    `koanf:"offset"`      // px between frames, may be negative
}

type FaderConfig struct {
	StartX float64      `koanf:"start_x"`
	StartY float64      `koanf:"start_y"`
	EndX   float64      `koanf:"end_x"`
	EndY   float64      `koanf:"end_y"`
	Layout LayoutConfig `koanf:"layout"`
}

type KnobConfig struct {
	PivotX       *float64     `koanf:"pivot_x"` // default: image centre
	PivotY       *float64     `koanf:"pivot_y"`
	StartAngle   *float64     `koanf:"start_angle"`
	EndAngle     *float64     `koanf:"end_angle"`
	PointerAngle *float64     `koanf:"pointer_angle"`
	Reverse      bool         `koanf:"reverse"`
	Supersample  int          `koanf:"supersample"` // 1-8, default 4
	Layout       LayoutConfig `koanf:"layout"`
}

// Load reads the given TOML files in order, later files overriding earlier
// ones. Missing files are skipped. Without paths the user config directory
// and then ./spritebuilder.toml are tried.
func Load(paths ...string) (*Config, error) {
	k := koanf.New(".")

	if len(paths) == 0 {
		paths = getConfigPaths()
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, configFileName),
		localFileName,
	}
}

// MaskOptions returns validated background removal settings.
func (c *Config) MaskOptions() (spritebuilder.MaskOptions, error) {
	opt := spritebuilder.DefaultMaskOptions()
	if c.Mask.Threshold != nil {
		opt.Threshold = *c.Mask.Threshold
	}
	mode, err := spritebuilder.ParseMaskMode(c.Mask.Mode)
	if err != nil {
		return opt, err
	}
	opt.Mode = mode
	return opt, opt.Validate()
}

// ComponentOptions returns validated labelling settings for a source of the
// given size.
func (c *Config) ComponentOptions(size image.Point) (spritebuilder.ComponentOptions, error) {
	opt := spritebuilder.ComponentOptionsFromSize(size)
	if c.Components.MinArea != nil {
		opt.MinArea = *c.Components.MinArea
	}
	opt.Despeckle = c.Components.Despeckle
	if c.Components.Swatches != nil {
		opt.Swatches = *c.Components.Swatches
	}
	method, err := spritebuilder.ParsePaletteMethod(c.Components.Swatch)
	if err != nil {
		return opt, err
	}
	opt.SwatchMethod = method
	return opt, opt.Validate()
}

// FaderOptions returns validated fader sheet settings.
func (c *Config) FaderOptions() (spritebuilder.FaderOptions, error) {
	opt := spritebuilder.DefaultFaderOptions()
	opt.Start = r2.Vec{X: c.Fader.StartX, Y: c.Fader.StartY}
	opt.End = r2.Vec{X: c.Fader.EndX, Y: c.Fader.EndY}
	layout, err := c.Fader.Layout.layout()
	if err != nil {
		return opt, err
	}
	opt.Layout = layout
	return opt, opt.Validate()
}

// KnobOptions returns validated knob sheet settings for a knob image of the
// given size.
func (c *Config) KnobOptions(size image.Point) (spritebuilder.KnobOptions, error) {
	opt := spritebuilder.DefaultKnobOptions(size)
	k := c.Knob
	if k.PivotX != nil {
		opt.Pivot.X = *k.PivotX
	}
	if k.PivotY != nil {
		opt.Pivot.Y = *k.PivotY
	}
	if k.StartAngle != nil {
		opt.StartAngle = *k.StartAngle
	}
	if k.EndAngle != nil {
		opt.EndAngle = *k.EndAngle
	}
	if k.PointerAngle != nil {
		opt.PointerAngle = *k.PointerAngle
	}
	opt.Reverse = k.Reverse
	if k.Supersample != 0 {
		opt.Supersample = k.Supersample
	}
	layout, err := k.Layout.layout()
	if err != nil {
		return opt, err
	}
	opt.Layout = layout
	return opt, opt.Validate()
}

func (l LayoutConfig) layout() (spritebuilder.Layout, error) {
	out := spritebuilder.DefaultLayout()
	if l.Frames != 0 {
		out.FrameCount = l.Frames
	}
	arr, err := spritebuilder.ParseArrangement(l.Arrangement)
	if err != nil {
		return out, err
	}
	if l.Arrangement != "" {
		out.Arrangement = arr
	}
	if l.Columns != 0 {
		out.Columns = l.Columns
	}
	out.Offset = l.Offset
	return out, out.Validate()
}
