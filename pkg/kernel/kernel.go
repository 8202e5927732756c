// Package kernel defines the mesh sink boundary of the geometry layer.
// Builders push tagged quads and triangles into a Sink; implementations
// (flat meshes for the desktop host, face logs for tests, STL files via
// sdfx) decide what to do with them. The geometry layer never assumes
// shared vertex indices across faces.
package kernel

import (
	"fmt"

	"github.com/cockroachdb/errors"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Winding selects which side of a face is the front. With
// CounterClockwise the front is the side that (b-a) x (c-a) points to;
// Clockwise flips it.
type Winding int

const (
	CounterClockwise Winding = iota
	Clockwise
)

func (w Winding) String() string {
	switch w {
	case CounterClockwise:
		return "ccw"
	case Clockwise:
		return "cw"
	default:
		return fmt.Sprintf("Winding(%d)", int(w))
	}
}

// Surface classifies a face for material and vertex-colour assignment.
type Surface int

const (
	Footpath   Surface = iota // pedestrian surface
	CurbFace                  // sloped curb skirt
	GutterDrop                // vertical gutter apron
	GutterRun                 // gutter floor rising back to the road
	Road                      // roadway surface
)

// AllSurfaces lists the surfaces in emission order.
var AllSurfaces = []Surface{Footpath, CurbFace, GutterDrop, GutterRun, Road}

func (s Surface) String() string {
	switch s {
	case Footpath:
		return "footpath"
	case CurbFace:
		return "curb"
	case GutterDrop:
		return "gutter-drop"
	case GutterRun:
		return "gutter-run"
	case Road:
		return "road"
	default:
		return fmt.Sprintf("Surface(%d)", int(s))
	}
}

// ParseSurface converts a surface name such as "gutter-run" to a Surface.
func ParseSurface(name string) (Surface, error) {
	for _, s := range AllSurfaces {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, errors.Newf("unknown surface %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Surface) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Sink receives emitted faces. Points are in the pivot-centred world frame.
type Sink interface {
	AddTriangleFace(a, b, c v3.Vec, w Winding, tag Surface)
	AddQuadFace(a, b, c, d v3.Vec, w Winding, tag Surface)
}

// FrontNormal returns the unit normal of the front side of triangle a, b, c
// under winding w. Degenerate triangles return the zero vector.
func FrontNormal(a, b, c v3.Vec, w Winding) v3.Vec {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l == 0 {
		return v3.Vec{}
	}
	n = n.MulScalar(1 / l)
	if w == Clockwise {
		n = n.MulScalar(-1)
	}
	return n
}

// Tee forwards every face to all sinks in order.
type Tee []Sink

// AddTriangleFace implements Sink.
func (t Tee) AddTriangleFace(a, b, c v3.Vec, w Winding, tag Surface) {
	for _, s := range t {
		s.AddTriangleFace(a, b, c, w, tag)
	}
}

// AddQuadFace implements Sink.
func (t Tee) AddQuadFace(a, b, c, d v3.Vec, w Winding, tag Surface) {
	for _, s := range t {
		s.AddQuadFace(a, b, c, d, w, tag)
	}
}

// RGB is a linear colour with components in [0, 1].
type RGB struct {
	R, G, B float32
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// surfaceColors is the default palette: pale concrete footpaths, darker
// curb and gutter, asphalt road.
var surfaceColors = map[Surface]RGB{
	Footpath:   {0.78, 0.76, 0.72},
	CurbFace:   {0.62, 0.61, 0.58},
	GutterDrop: {0.50, 0.50, 0.48},
	GutterRun:  {0.44, 0.44, 0.43},
	Road:       {0.20, 0.21, 0.23},
}

// Color returns the display colour of surface s. Unknown surfaces are
// magenta.
func (s Surface) Color() RGB {
	if c, ok := surfaceColors[s]; ok {
		return c
	}
	return RGB{1, 0, 1}
}
