// Package config loads intersection descriptions from TOML, YAML or JSON
// files through viper. Missing keys take the values of
// intersection.DefaultConfig and any key can be overridden from the
// environment with the CROSSING_ prefix (CROSSING_ROAD_HEIGHT,
// CROSSING_FOOTPATHS_NORTH, CROSSING_CONNECT="north,south").
//
// Example (TOML):
//
//	road_height = -0.15
//	connect = ["north", "east", "south"]
//
//	[size]
//	x = 14
//	z = 12
//
//	[footpaths]
//	west = 1.5
//
//	[corners.ne]
//	x_size = 4
//	[corners.ne.curb]
//	gutter_width = 0.4
package config

import (
	"strings"

	"github.com/chazu/crossing/pkg/intersection"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// File mirrors the on-disk layout.
type File struct {
	Size       Vec2               `mapstructure:"size"`
	RoadHeight float64            `mapstructure:"road_height"`
	Connect    []string           `mapstructure:"connect"`
	Curb       Curb               `mapstructure:"curb"`
	CornerSize Vec2               `mapstructure:"corner_size"`
	Corners    map[string]Corner  `mapstructure:"corners"`
	Footpaths  map[string]float64 `mapstructure:"footpaths"`
}

// Vec2 is an X/Z pair.
type Vec2 struct {
	X float64 `mapstructure:"x"`
	Z float64 `mapstructure:"z"`
}

// Curb is a curb profile. Nil fields inherit from the shared profile.
type Curb struct {
	SkirtOut    *float64 `mapstructure:"skirt_out"`
	SkirtDown   *float64 `mapstructure:"skirt_down"`
	GutterDepth *float64 `mapstructure:"gutter_depth"`
	GutterWidth *float64 `mapstructure:"gutter_width"`
}

func (c Curb) apply(base intersection.CurbGutter) intersection.CurbGutter {
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{c.SkirtOut, &base.SkirtOut},
		{c.SkirtDown, &base.SkirtDown},
		{c.GutterDepth, &base.GutterDepth},
		{c.GutterWidth, &base.GutterWidth},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	return base
}

// Corner overrides one corner of the uniform corner_size.
type Corner struct {
	XSize *float64 `mapstructure:"x_size"`
	ZSize *float64 `mapstructure:"z_size"`
	Curb  *Curb    `mapstructure:"curb"`
}

// Load reads path, applies defaults and CROSSING_ environment overrides, and
// validates the result. The format follows the file extension.
func Load(path string) (intersection.Config, error) {
	v := NewViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return intersection.Config{}, errors.Wrapf(err, "config: reading %s", path)
	}
	cfg, err := LoadWithViper(v)
	if err != nil {
		return intersection.Config{}, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// NewViper returns a viper instance with defaults and environment binding
// but no config file.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// LoadWithViper decodes and validates the configuration held by v.
func LoadWithViper(v *viper.Viper) (intersection.Config, error) {
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return intersection.Config{}, errors.Wrap(err, "decoding")
	}
	cfg, err := f.Config()
	if err != nil {
		return intersection.Config{}, err
	}
	if res := intersection.Validate(cfg); !res.OK() {
		return intersection.Config{}, errors.Wrapf(intersection.ErrInvalidConfig, "%s", res.Errors[0])
	}
	return cfg, nil
}

// Config converts the file layout into an intersection.Config.
func (f File) Config() (intersection.Config, error) {
	cfg := intersection.Config{
		Size:       intersection.Size{X: f.Size.X, Z: f.Size.Z},
		RoadHeight: f.RoadHeight,
		Curb:       f.Curb.apply(intersection.DefaultCurbGutter()),
		Corners:    intersection.UniformCorners(f.CornerSize.X, f.CornerSize.Z),
	}

	for _, name := range f.Connect {
		name = strings.TrimSpace(name)
		if name == "" || name == "none" {
			continue
		}
		s, err := intersection.ParseSide(name)
		if err != nil {
			return cfg, errors.Wrap(err, "connect")
		}
		cfg.Connected[s] = true
	}

	for name, d := range f.Footpaths {
		s, err := intersection.ParseSide(name)
		if err != nil {
			return cfg, errors.Wrap(err, "footpaths")
		}
		cfg.Footpaths[s] = d
	}

	for name, c := range f.Corners {
		id, err := intersection.ParseCorner(name)
		if err != nil {
			return cfg, errors.Wrap(err, "corners")
		}
		spec := &cfg.Corners[id]
		if c.XSize != nil {
			spec.XSize = *c.XSize
		}
		if c.ZSize != nil {
			spec.ZSize = *c.ZSize
		}
		if c.Curb != nil {
			p := c.Curb.apply(cfg.Curb)
			spec.Curb = &p
		}
	}
	return cfg, nil
}
