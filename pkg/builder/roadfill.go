package builder

import (
	"fmt"

	"github.com/chazu/crossing/pkg/intersection"
	"github.com/chazu/crossing/pkg/kernel"
)

// ArmRect returns the road arm band for side s: from the core's edge on that
// axis out to the site boundary, restricted to the core's cross extent.
func ArmRect(core intersection.Rect, size intersection.Size, s intersection.Side) intersection.Rect {
	switch s {
	case intersection.South:
		return intersection.Rect{XMin: core.XMin, XMax: core.XMax, ZMin: 0, ZMax: core.ZMin}
	case intersection.North:
		return intersection.Rect{XMin: core.XMin, XMax: core.XMax, ZMin: core.ZMax, ZMax: size.Z}
	case intersection.West:
		return intersection.Rect{XMin: 0, XMax: core.XMin, ZMin: core.ZMin, ZMax: core.ZMax}
	case intersection.East:
		return intersection.Rect{XMin: core.XMax, XMax: size.X, ZMin: core.ZMin, ZMax: core.ZMax}
	}
	return intersection.Rect{}
}

// BuildRoadFill emits the roadway surface: the core rectangle spanned by the
// four apexes plus one arm per connected side. The same routine yields every
// topology (plaza = core only, four-way = core + 4 arms). A degenerate core
// is reported as a warning and no road fill is emitted.
func BuildRoadFill(sink kernel.Sink, m *intersection.Model) (map[kernel.Surface]int, []Warning) {
	core := m.Core()
	if core.Empty() {
		return nil, []Warning{{
			Region: "road core",
			Message: fmt.Sprintf("degenerate core x[%.3f, %.3f] z[%.3f, %.3f]: corner profiles exceed half the site, skipped",
				core.XMin, core.XMax, core.ZMin, core.ZMax),
		}}
	}

	counts := make(map[kernel.Surface]int)
	e := newEmitter(sink, intersection.SiteFrame(m.Size), counts)
	rh := m.RoadHeight

	quad := func(r intersection.Rect) {
		e.polygon(intersection.Up, kernel.Road,
			pt(r.XMin, rh, r.ZMin), pt(r.XMax, rh, r.ZMin), pt(r.XMax, rh, r.ZMax), pt(r.XMin, rh, r.ZMax))
	}

	quad(core)
	for _, s := range intersection.AllSides {
		if !m.Connected[s] {
			continue
		}
		if arm := ArmRect(core, m.Size, s); !arm.Empty() {
			quad(arm)
		}
	}
	return counts, nil
}
