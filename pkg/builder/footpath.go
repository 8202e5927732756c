package builder

import (
	"fmt"

	"github.com/chazu/crossing/pkg/intersection"
	"github.com/chazu/crossing/pkg/kernel"
	"github.com/cockroachdb/errors"
)

// BuildFootpath emits the footpath ribbon along one side: slab, curb skirt,
// gutter apron and gutter run, spanning the side's usable extent. Calling it
// for a side that carries a road is a programming error. An empty span is
// reported as a warning and nothing is emitted.
func BuildFootpath(sink kernel.Sink, m *intersection.Model, s intersection.Side) (map[kernel.Surface]int, []Warning, error) {
	if !s.Valid() {
		return nil, nil, errors.AssertionFailedf("builder: invalid side %d", int(s))
	}
	fp := m.Footpaths[s]
	if !fp.Exists {
		return nil, nil, errors.AssertionFailedf("builder: footpath %s does not exist", s)
	}

	xL, xR := m.FootpathSpan(s)
	if xL >= xR {
		return nil, []Warning{{
			Region:  "footpath " + s.String(),
			Message: fmt.Sprintf("empty span [%.3f, %.3f] along a %.3f edge, skipped", xL, xR, fp.EdgeLength),
		}}, nil
	}

	counts := make(map[kernel.Surface]int)
	e := newEmitter(sink, fp.Placement(m.Size), counts)

	p := fp.Curb
	d := fp.Depth
	so := p.SkirtOut
	yS := -p.SkirtDown
	yB := p.GutterFloor()
	rh := m.RoadHeight
	zG := d + so
	zR := d + p.Join()

	e.polygon(intersection.Up, kernel.Footpath,
		pt(xL, 0, 0), pt(xR, 0, 0), pt(xR, 0, d), pt(xL, 0, d))
	e.polygon(facing(localZ, so, yS), kernel.CurbFace,
		pt(xL, 0, d), pt(xR, 0, d), pt(xR, yS, zG), pt(xL, yS, zG))
	e.polygon(localZ, kernel.GutterDrop,
		pt(xL, yS, zG), pt(xR, yS, zG), pt(xR, yB, zG), pt(xL, yB, zG))
	e.polygon(facing(localZ, p.GutterWidth, rh-yB), kernel.GutterRun,
		pt(xL, yB, zG), pt(xR, yB, zG), pt(xR, rh, zR), pt(xL, rh, zR))

	return counts, nil, nil
}
