package config

import (
	"github.com/chazu/crossing/pkg/intersection"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. CROSSING_SIZE_X.
const EnvPrefix = "CROSSING"

// SetDefaults registers every key with the value intersection.DefaultConfig
// would give it. Keys must be registered for environment overrides to apply.
func SetDefaults(v *viper.Viper) {
	d := intersection.DefaultConfig()

	v.SetDefault("size.x", d.Size.X)
	v.SetDefault("size.z", d.Size.Z)
	v.SetDefault("road_height", d.RoadHeight)

	var connect []string
	for _, s := range intersection.AllSides {
		if d.Connected[s] {
			connect = append(connect, s.String())
		}
	}
	v.SetDefault("connect", connect)

	v.SetDefault("curb.skirt_out", d.Curb.SkirtOut)
	v.SetDefault("curb.skirt_down", d.Curb.SkirtDown)
	v.SetDefault("curb.gutter_depth", d.Curb.GutterDepth)
	v.SetDefault("curb.gutter_width", d.Curb.GutterWidth)

	v.SetDefault("corner_size.x", d.Corners[intersection.SW].XSize)
	v.SetDefault("corner_size.z", d.Corners[intersection.SW].ZSize)

	for _, s := range intersection.AllSides {
		v.SetDefault("footpaths."+s.String(), d.Footpaths[s])
	}
}
