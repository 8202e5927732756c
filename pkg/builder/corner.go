package builder

import (
	"github.com/chazu/crossing/pkg/intersection"
	"github.com/chazu/crossing/pkg/kernel"
	"github.com/cockroachdb/errors"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var (
	localX    = v3.Vec{X: 1}
	localZ    = v3.Vec{Z: 1}
	localDiag = v3.Vec{X: 1, Z: 1}
)

// cornerFrame holds the local-frame measurements shared by both corner
// shapes. The corner's road lies toward +X and +Z.
type cornerFrame struct {
	sx, sz float64 // pad extents
	so     float64 // skirt out
	yS     float64 // skirt bottom
	yB     float64 // gutter floor
	rh     float64 // road height
	ax, az float64 // apex, local
	rise   float64 // gutter floor to road
	gw     float64 // gutter width
}

func newCornerFrame(c intersection.CornerModel, roadHeight float64) cornerFrame {
	sx, sz := c.LocalSize()
	p := c.Geometry.Curb
	j := p.Join()
	yB := p.GutterFloor()
	return cornerFrame{
		sx:   sx,
		sz:   sz,
		so:   p.SkirtOut,
		yS:   -p.SkirtDown,
		yB:   yB,
		rh:   roadHeight,
		ax:   sx + j,
		az:   sz + j,
		rise: roadHeight - yB,
		gw:   p.GutterWidth,
	}
}

// BuildCorner emits the faces of one existing corner. Calling it for a corner
// that does not exist is a programming error.
func BuildCorner(sink kernel.Sink, m *intersection.Model, id intersection.CornerID) (map[kernel.Surface]int, error) {
	if !id.Valid() {
		return nil, errors.AssertionFailedf("builder: invalid corner id %d", int(id))
	}
	c := m.Corners[id]
	if !c.Exists {
		return nil, errors.AssertionFailedf("builder: corner %s does not exist", id)
	}

	counts := make(map[kernel.Surface]int)
	e := newEmitter(sink, c.Placement(m.Size), counts)
	f := newCornerFrame(c, m.RoadHeight)

	switch c.Type {
	case intersection.InwardFacing:
		buildInwardCorner(e, f, c.Apex)
	case intersection.OutwardFacing:
		buildOutwardCorner(e, f, c.Apex)
	default:
		return nil, errors.AssertionFailedf("builder: corner %s has unknown type %s", id, c.Type)
	}
	return counts, nil
}

// buildInwardCorner emits the concave curb return around a pad that sits in
// the corner of two roads. The skirts, aprons and gutter runs follow the
// pad's two inner edges and are closed at the miter by caps; the road wedge
// ends on the model apex so the road-fill core abuts it exactly.
func buildInwardCorner(e *emitter, f cornerFrame, apex v3.Vec) {
	sx, sz, so := f.sx, f.sz, f.so
	yS, yB, rh := f.yS, f.yB, f.rh
	ax, az := f.ax, f.az

	// Footpath pad.
	e.polygon(intersection.Up, kernel.Footpath,
		pt(0, 0, 0), pt(sx, 0, 0), pt(sx, 0, sz), pt(0, 0, sz))

	// Curb skirts off the two inner edges.
	e.polygon(facing(localX, so, yS), kernel.CurbFace,
		pt(sx, 0, 0), pt(sx, 0, sz), pt(sx+so, yS, sz), pt(sx+so, yS, 0))
	e.polygon(facing(localZ, so, yS), kernel.CurbFace,
		pt(0, 0, sz), pt(0, yS, sz+so), pt(sx, yS, sz+so), pt(sx, 0, sz))

	// Wedge cap closing the skirt miter.
	e.polygon(facing(localDiag, so, yS), kernel.CurbFace,
		pt(sx, 0, sz), pt(sx+so, yS, sz), pt(sx, yS, sz+so))

	// Gutter aprons straight down from the skirt bottoms.
	e.polygon(localX, kernel.GutterDrop,
		pt(sx+so, yS, 0), pt(sx+so, yS, sz), pt(sx+so, yB, sz), pt(sx+so, yB, 0))
	e.polygon(localZ, kernel.GutterDrop,
		pt(0, yS, sz+so), pt(0, yB, sz+so), pt(sx, yB, sz+so), pt(sx, yS, sz+so))

	// Apron cap across the miter.
	e.polygon(localDiag, kernel.GutterDrop,
		pt(sx+so, yS, sz), pt(sx, yS, sz+so), pt(sx, yB, sz+so), pt(sx+so, yB, sz))

	// Gutter runs out to road height.
	e.polygon(facing(localX, f.gw, f.rise), kernel.GutterRun,
		pt(sx+so, yB, 0), pt(sx+so, yB, sz), pt(ax, rh, sz), pt(ax, rh, 0))
	e.polygon(facing(localZ, f.gw, f.rise), kernel.GutterRun,
		pt(0, yB, sz+so), pt(0, rh, az), pt(sx, rh, az), pt(sx, yB, sz+so))

	// Gutter-run cap across the miter.
	e.polygon(facing(localDiag, f.gw, f.rise), kernel.GutterRun,
		pt(sx+so, yB, sz), pt(ax, rh, sz), pt(sx, rh, az), pt(sx, yB, sz+so))

	// Road wedge up to the apex.
	e.polygonWorld(intersection.Up, kernel.Road,
		[]v3.Vec{pt(ax, rh, sz), pt(sx, rh, az)}, apex)
}

// buildOutwardCorner emits the pad filling the L between two footpaths and
// the curb wrapping the road's corner. Skirts and aprons meet on a miter
// with no cap, and the gutter runs fold into two triangles that end on the
// apex. The rims at local x = ax and z = az carry the same profile as the
// neighbouring footpath ends.
func buildOutwardCorner(e *emitter, f cornerFrame, apex v3.Vec) {
	sx, sz, so := f.sx, f.sz, f.so
	yS, yB := f.yS, f.yB
	ax, az := f.ax, f.az
	mx, mz := sx+so, sz+so // skirt-bottom miter point

	// Footpath: pad plus the two arms reaching the rims.
	e.polygon(intersection.Up, kernel.Footpath,
		pt(0, 0, 0), pt(sx, 0, 0), pt(sx, 0, sz), pt(0, 0, sz))
	e.polygon(intersection.Up, kernel.Footpath,
		pt(sx, 0, 0), pt(ax, 0, 0), pt(ax, 0, sz), pt(sx, 0, sz))
	e.polygon(intersection.Up, kernel.Footpath,
		pt(0, 0, sz), pt(sx, 0, sz), pt(sx, 0, az), pt(0, 0, az))

	// Mitered curb skirts.
	e.polygon(facing(localZ, so, yS), kernel.CurbFace,
		pt(sx, 0, sz), pt(ax, 0, sz), pt(ax, yS, mz), pt(mx, yS, mz))
	e.polygon(facing(localX, so, yS), kernel.CurbFace,
		pt(sx, 0, sz), pt(mx, yS, mz), pt(mx, yS, az), pt(sx, 0, az))

	// Mitered gutter aprons.
	e.polygon(localZ, kernel.GutterDrop,
		pt(mx, yS, mz), pt(ax, yS, mz), pt(ax, yB, mz), pt(mx, yB, mz))
	e.polygon(localX, kernel.GutterDrop,
		pt(mx, yS, mz), pt(mx, yB, mz), pt(mx, yB, az), pt(mx, yS, az))

	// Gutter runs folding up to the apex.
	e.polygonWorld(facing(localZ, f.gw, f.rise), kernel.GutterRun,
		[]v3.Vec{pt(mx, yB, mz), pt(ax, yB, mz)}, apex)
	e.polygonWorld(facing(localX, f.gw, f.rise), kernel.GutterRun,
		[]v3.Vec{pt(mx, yB, az), pt(mx, yB, mz)}, apex)
}
