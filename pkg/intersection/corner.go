package intersection

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// CornerType discriminates the two corner shapes. The zero value marks a
// corner with no geometry of its own.
type CornerType int

const (
	// InwardFacing: both adjacent sides carry a road. The footpath pad
	// recedes into the corner and the curb returns around it (concave street
	// corner).
	InwardFacing CornerType = iota + 1
	// OutwardFacing: neither adjacent side carries a road. The pad fills the
	// L between the two footpaths and the curb wraps the road's corner
	// (convex street corner).
	OutwardFacing
)

func (t CornerType) String() string {
	switch t {
	case InwardFacing:
		return "inward"
	case OutwardFacing:
		return "outward"
	case 0:
		return "none"
	default:
		return fmt.Sprintf("CornerType(%d)", int(t))
	}
}

// CornerModel is the resolved state of one rectangle corner.
type CornerModel struct {
	ID       CornerID       `json:"id" yaml:"id"`
	Exists   bool           `json:"exists" yaml:"exists"`
	Type     CornerType     `json:"type" yaml:"type"`
	Origin   v3.Vec         `json:"origin" yaml:"origin"` // rectangle corner, y = 0
	Apex     v3.Vec         `json:"apex" yaml:"apex"`     // y = RoadHeight
	AdjA     Side           `json:"adj_a" yaml:"adj_a"`   // runs along the local X axis
	AdjB     Side           `json:"adj_b" yaml:"adj_b"`   // runs along the local Z axis
	Geometry CornerGeometry `json:"geometry" yaml:"geometry"`
}

// CornerState derives existence and type from the connection of the two
// adjacent sides.
func CornerState(connA, connB bool) (exists bool, t CornerType) {
	switch {
	case connA && connB:
		return true, InwardFacing
	case !connA && !connB:
		return true, OutwardFacing
	default:
		return false, 0
	}
}

// ComputeApex returns origin + inwardSign * apexOffset with y = roadHeight.
func ComputeApex(id CornerID, origin v3.Vec, g CornerGeometry, roadHeight float64) v3.Vec {
	sx, sz := InwardSign(id)
	ox, oz := g.ApexOffset()
	return v3.Vec{
		X: origin.X + sx*ox,
		Y: roadHeight,
		Z: origin.Z + sz*oz,
	}
}

// LocalSize returns the pad extents along the corner's local X and Z axes.
// The SE and NW frames are rotated by an odd number of quarter turns, so
// their local X runs along world Z.
func (c CornerModel) LocalSize() (sx, sz float64) {
	if c.ID == SE || c.ID == NW {
		return c.Geometry.ZSize, c.Geometry.XSize
	}
	return c.Geometry.XSize, c.Geometry.ZSize
}

// Placement returns the transform from the canonical SW frame to the
// pivot-centred world frame.
func (c CornerModel) Placement(size Size) Placement {
	return CornerPlacement(c.ID, size)
}

// thicknessSides returns the sides adjacent to id whose footpath strip is
// measured along world X and world Z respectively.
func thicknessSides(id CornerID) (xSide, zSide Side) {
	a, b := AdjacentOf(id)
	if a == East || a == West {
		return a, b
	}
	return b, a
}

// resolveCorner builds the CornerModel for id. A corner bordering a
// footpath takes that footpath's depth as its size along the footpath's
// thickness axis and the shared curb profile, so the corner rim, the
// footpath end and the road core edge coincide.
func resolveCorner(cfg Config, id CornerID) CornerModel {
	a, b := AdjacentOf(id)
	exists, t := CornerState(cfg.Connected[a], cfg.Connected[b])

	spec := cfg.Corners[id]
	geom := CornerGeometry{XSize: spec.XSize, ZSize: spec.ZSize, Curb: cfg.Curb}
	if t == InwardFacing {
		geom.Curb = cfg.CornerCurb(id)
	}

	xSide, zSide := thicknessSides(id)
	if !cfg.Connected[xSide] {
		geom.XSize = cfg.Footpaths[xSide]
	}
	if !cfg.Connected[zSide] {
		geom.ZSize = cfg.Footpaths[zSide]
	}

	origin := CornerPosition(id, cfg.Size)
	return CornerModel{
		ID:       id,
		Exists:   exists,
		Type:     t,
		Origin:   origin,
		Apex:     ComputeApex(id, origin, geom, cfg.RoadHeight),
		AdjA:     a,
		AdjB:     b,
		Geometry: geom,
	}
}

// resolveCorners resolves all four corners. A corner with no geometry of its
// own still bounds the road core: along its connected side it takes the apex
// of the inward corner across that road, so both set the same core edge.
func resolveCorners(cfg Config) [4]CornerModel {
	var cs [4]CornerModel
	for _, id := range AllCorners {
		cs[id] = resolveCorner(cfg, id)
	}
	for _, s := range AllSides {
		if !cfg.Connected[s] {
			continue
		}
		l, r := CornerAtLeft(s), CornerAtRight(s)
		switch {
		case cs[l].Type == InwardFacing && !cs[r].Exists:
			alignAcross(&cs[r], cs[l], s)
		case cs[r].Type == InwardFacing && !cs[l].Exists:
			alignAcross(&cs[l], cs[r], s)
		}
	}
	return cs
}

// alignAcross moves c's apex onto the road edge set by the inward corner on
// the same side s. South and north corners share an apex Z, east and west
// corners an apex X. The size is rewritten to match under c's own profile.
func alignAcross(c *CornerModel, inward CornerModel, s Side) {
	shift := inward.Geometry.Curb.Join() - c.Geometry.Curb.Join()
	if s == South || s == North {
		c.Geometry.ZSize = inward.Geometry.ZSize + shift
		c.Apex.Z = inward.Apex.Z
		return
	}
	c.Geometry.XSize = inward.Geometry.XSize + shift
	c.Apex.X = inward.Apex.X
}

// otherCorner returns the corner at the far end of side s from id.
func otherCorner(s Side, id CornerID) CornerID {
	if l := CornerAtLeft(s); l != id {
		return l
	}
	return CornerAtRight(s)
}

// MarshalText implements encoding.TextMarshaler.
func (t CornerType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }
