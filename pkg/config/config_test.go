package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/crossing/pkg/intersection"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadWithViper_Defaults(t *testing.T) {
	cfg, err := LoadWithViper(NewViper())
	require.NoError(t, err)
	assert.Equal(t, intersection.DefaultConfig(), cfg)
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{
			name: "toml",
			file: "tee.toml",
			body: `
road_height = -0.2
connect = ["north", "east", "south"]

[size]
x = 14
z = 10

[footpaths]
west = 1.5

[corners.ne]
x_size = 4
[corners.ne.curb]
gutter_width = 0.4
`,
		},
		{
			name: "yaml",
			file: "tee.yaml",
			body: `
road_height: -0.2
connect: [north, east, south]
size:
  x: 14
  z: 10
footpaths:
  west: 1.5
corners:
  ne:
    x_size: 4
    curb:
      gutter_width: 0.4
`,
		},
		{
			name: "json",
			file: "tee.json",
			body: `{
  "road_height": -0.2,
  "connect": ["north", "east", "south"],
  "size": {"x": 14, "z": 10},
  "footpaths": {"west": 1.5},
  "corners": {"ne": {"x_size": 4, "curb": {"gutter_width": 0.4}}}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.body))
			require.NoError(t, err)

			assert.Equal(t, intersection.Size{X: 14, Z: 10}, cfg.Size)
			assert.InDelta(t, -0.2, cfg.RoadHeight, 1e-12)
			assert.Equal(t, intersection.TJunction, cfg.Connected.Topology())
			assert.False(t, cfg.Connected[intersection.West])

			assert.Equal(t, intersection.FootpathDepthSet{2, 2, 2, 1.5}, cfg.Footpaths)
			assert.Equal(t, intersection.DefaultCurbGutter(), cfg.Curb)

			ne := cfg.Corners[intersection.NE]
			assert.Equal(t, 4.0, ne.XSize)
			assert.Equal(t, 3.0, ne.ZSize)
			require.NotNil(t, ne.Curb)
			assert.Equal(t, 0.4, ne.Curb.GutterWidth)
			assert.Equal(t, cfg.Curb.SkirtOut, ne.Curb.SkirtOut)

			assert.Nil(t, cfg.Corners[intersection.SW].Curb)
		})
	}
}

func TestLoad_Plaza(t *testing.T) {
	cfg, err := Load(writeFile(t, "plaza.toml", `connect = ["none"]`))
	require.NoError(t, err)
	assert.Equal(t, intersection.Plaza, cfg.Connected.Topology())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CROSSING_ROAD_HEIGHT", "-0.3")
	t.Setenv("CROSSING_FOOTPATHS_NORTH", "2.5")
	t.Setenv("CROSSING_CONNECT", "north,south")

	cfg, err := Load(writeFile(t, "base.yaml", "road_height: -0.1\n"))
	require.NoError(t, err)

	assert.InDelta(t, -0.3, cfg.RoadHeight, 1e-12)
	assert.Equal(t, 2.5, cfg.Footpaths[intersection.North])
	assert.Equal(t, intersection.Straight, cfg.Connected.Topology())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		invalid bool
	}{
		{"bad side", "a.toml", `connect = ["up"]`, false},
		{"bad corner", "b.toml", "[corners.middle]\nx_size = 2\n", false},
		{"bad footpath side", "c.toml", "[footpaths]\ntop = 2\n", false},
		{"zero size", "d.toml", "[size]\nx = 0\n", true},
		{"negative depth", "e.toml", "[footpaths]\neast = -1\n", true},
		{"malformed", "f.json", `{"size": `, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, intersection.ErrInvalidConfig), "%v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
