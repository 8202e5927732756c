// Package builder turns an intersection.Model into tagged faces. The corner,
// footpath and road-fill builders each author their geometry in a canonical
// local frame and hand it to an emitter, which places it, picks the winding
// and forwards it to a kernel.Sink.
package builder

import (
	"github.com/chazu/crossing/pkg/intersection"
	"github.com/chazu/crossing/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// degenerateEps is the squared-length threshold below which two points are
// treated as one and a face normal as zero.
const degenerateEps = 1e-18

// emitter places local-frame faces and forwards them to a sink. Placements
// are proper rotations plus translations, so a winding chosen in the local
// frame stays correct after placement.
type emitter struct {
	sink   kernel.Sink
	place  intersection.Placement
	counts map[kernel.Surface]int
}

func newEmitter(sink kernel.Sink, place intersection.Placement, counts map[kernel.Surface]int) *emitter {
	return &emitter{sink: sink, place: place, counts: counts}
}

// facing returns the front direction of a surface strip whose profile
// advances by du along out and dy along up: the profile's left normal.
func facing(out v3.Vec, du, dy float64) v3.Vec {
	return out.MulScalar(-dy).Add(intersection.Up.MulScalar(du))
}

// newellNormal returns the area-weighted normal of a polygon.
func newellNormal(pts []v3.Vec) v3.Vec {
	var n v3.Vec
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		n = n.Add(a.Cross(b))
	}
	return n
}

// dedupe drops consecutive coincident points, including last-to-first.
func dedupe(pts []v3.Vec) []v3.Vec {
	out := make([]v3.Vec, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 {
			d := p.Sub(out[len(out)-1])
			if d.Dot(d) < degenerateEps {
				continue
			}
		}
		out = append(out, p)
	}
	for len(out) > 1 {
		d := out[0].Sub(out[len(out)-1])
		if d.Dot(d) >= degenerateEps {
			break
		}
		out = out[:len(out)-1]
	}
	return out
}

// polygon emits a local-frame triangle or quad whose front faces toward
// front. Collapsed quads become triangles; zero-area faces are dropped.
func (e *emitter) polygon(front v3.Vec, tag kernel.Surface, pts ...v3.Vec) {
	pts = dedupe(pts)
	if len(pts) < 3 {
		return
	}
	n := newellNormal(pts)
	if n.Dot(n) < degenerateEps {
		return
	}
	w := kernel.CounterClockwise
	if n.Dot(front) < 0 {
		w = kernel.Clockwise
	}

	world := make([]v3.Vec, len(pts))
	for i, p := range pts {
		world[i] = e.place.Apply(p)
	}
	e.emitWorld(w, tag, world...)
}

// polygonWorld emits a face whose last point is already in site
// coordinates. Used where a vertex must match a model value exactly.
func (e *emitter) polygonWorld(front v3.Vec, tag kernel.Surface, local []v3.Vec, site v3.Vec) {
	pts := append(append([]v3.Vec{}, local...), e.place.Inverse(site))
	pts = dedupe(pts)
	if len(pts) < 3 {
		return
	}
	n := newellNormal(pts)
	if n.Dot(n) < degenerateEps {
		return
	}
	w := kernel.CounterClockwise
	if n.Dot(front) < 0 {
		w = kernel.Clockwise
	}

	world := make([]v3.Vec, len(pts))
	for i, p := range pts {
		world[i] = e.place.Apply(p)
	}
	if len(pts) == len(local)+1 {
		world[len(world)-1] = e.place.Recenter(site)
	}
	e.emitWorld(w, tag, world...)
}

func (e *emitter) emitWorld(w kernel.Winding, tag kernel.Surface, pts ...v3.Vec) {
	switch len(pts) {
	case 3:
		e.sink.AddTriangleFace(pts[0], pts[1], pts[2], w, tag)
	case 4:
		e.sink.AddQuadFace(pts[0], pts[1], pts[2], pts[3], w, tag)
	default:
		return
	}
	if e.counts != nil {
		e.counts[tag]++
	}
}

// pt is shorthand for a local-frame point.
func pt(x, y, z float64) v3.Vec {
	return v3.Vec{X: x, Y: y, Z: z}
}
