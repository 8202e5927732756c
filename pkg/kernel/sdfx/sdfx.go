// Package sdfx implements kernel.Sink on top of the github.com/deadsy/sdfx
// CAD library, collecting faces as sdf.Triangle3 soup for STL export.
package sdfx

import (
	"github.com/chazu/crossing/pkg/kernel"
	"github.com/cockroachdb/errors"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Sink = (*STLSink)(nil)

// STLSink collects emitted faces as front-facing triangles. An optional
// transform is applied to every vertex, e.g. to scale metres to the
// millimetres most slicers expect.
type STLSink struct {
	transform sdf.M44
	filter    map[kernel.Surface]bool
	tris      []*sdf.Triangle3
	counts    map[kernel.Surface]int
}

// Option configures an STLSink.
type Option func(*STLSink)

// WithTransform applies m to every vertex before it is stored.
func WithTransform(m sdf.M44) Option {
	return func(s *STLSink) { s.transform = m }
}

// WithScale scales every vertex uniformly about the origin.
func WithScale(k float64) Option {
	return WithTransform(sdf.Scale3d(v3.Vec{X: k, Y: k, Z: k}))
}

// WithSurfaces keeps only faces tagged with one of the given surfaces.
func WithSurfaces(tags ...kernel.Surface) Option {
	return func(s *STLSink) {
		s.filter = make(map[kernel.Surface]bool, len(tags))
		for _, t := range tags {
			s.filter[t] = true
		}
	}
}

// New returns an empty STLSink.
func New(opts ...Option) *STLSink {
	s := &STLSink{
		transform: sdf.Identity3d(),
		counts:    make(map[kernel.Surface]int),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *STLSink) keep(tag kernel.Surface) bool {
	return s.filter == nil || s.filter[tag]
}

func (s *STLSink) add(a, b, c v3.Vec, w kernel.Winding) {
	if w == kernel.Clockwise {
		b, c = c, b
	}
	t := sdf.Triangle3{
		s.transform.MulPosition(a),
		s.transform.MulPosition(b),
		s.transform.MulPosition(c),
	}
	s.tris = append(s.tris, &t)
}

// AddTriangleFace implements kernel.Sink.
func (s *STLSink) AddTriangleFace(a, b, c v3.Vec, w kernel.Winding, tag kernel.Surface) {
	if !s.keep(tag) {
		return
	}
	s.add(a, b, c, w)
	s.counts[tag]++
}

// AddQuadFace implements kernel.Sink.
func (s *STLSink) AddQuadFace(a, b, c, d v3.Vec, w kernel.Winding, tag kernel.Surface) {
	if !s.keep(tag) {
		return
	}
	s.add(a, b, c, w)
	s.add(a, c, d, w)
	s.counts[tag]++
}

// Triangles returns the collected triangles, counter-clockwise seen from
// the front.
func (s *STLSink) Triangles() []*sdf.Triangle3 {
	return s.tris
}

// Faces returns the number of faces kept per surface.
func (s *STLSink) Faces() map[kernel.Surface]int {
	return s.counts
}

// Bounds returns the bounding box of the collected triangles.
func (s *STLSink) Bounds() (sdf.Box3, bool) {
	if len(s.tris) == 0 {
		return sdf.Box3{}, false
	}
	lo, hi := s.tris[0][0], s.tris[0][0]
	for _, t := range s.tris {
		for _, p := range t {
			lo = lo.Min(p)
			hi = hi.Max(p)
		}
	}
	return sdf.Box3{Min: lo, Max: hi}, true
}

// Save writes the collected triangles to path as binary STL.
func (s *STLSink) Save(path string) error {
	if len(s.tris) == 0 {
		return errors.Newf("sdfx: nothing to write to %s", path)
	}
	if err := render.SaveSTL(path, s.tris); err != nil {
		return errors.Wrapf(err, "sdfx: writing %s", path)
	}
	return nil
}
