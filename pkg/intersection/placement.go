package intersection

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Up is the world vertical.
var Up = v3.Vec{X: 0, Y: 1, Z: 0}

// quarterTurns holds the local X (right) and local Z (inward) axes after a
// rotation of -90deg * k about Y. Entries are exact so that seams placed by
// different rotations land on identical coordinates.
var quarterTurns = [4]struct{ right, inward v3.Vec }{
	{right: v3.Vec{X: 1}, inward: v3.Vec{Z: 1}},
	{right: v3.Vec{Z: 1}, inward: v3.Vec{X: -1}},
	{right: v3.Vec{X: -1}, inward: v3.Vec{Z: -1}},
	{right: v3.Vec{Z: -1}, inward: v3.Vec{X: 1}},
}

// inwardSigns is indexed by CornerID: the world X/Z direction pointing from
// the rectangle corner into the site.
var inwardSigns = [4][2]float64{
	SW: {+1, +1},
	SE: {-1, +1},
	NE: {-1, -1},
	NW: {+1, -1},
}

// InwardSign returns the per-axis sign pointing from corner c into the site.
func InwardSign(c CornerID) (sx, sz float64) {
	s := inwardSigns[c]
	return s[0], s[1]
}

// CornerPosition returns the rectangle corner c in site coordinates
// (SW at the origin, y = 0).
func CornerPosition(c CornerID, size Size) v3.Vec {
	switch c {
	case SE:
		return v3.Vec{X: size.X}
	case NE:
		return v3.Vec{X: size.X, Z: size.Z}
	case NW:
		return v3.Vec{Z: size.Z}
	default:
		return v3.Vec{}
	}
}

// Placement maps a canonical local frame (x along the edge, y up, z inward)
// onto the site, then shifts the site so its centre is the pivot.
type Placement struct {
	Origin v3.Vec // local origin in site coordinates
	Right  v3.Vec // world direction of local +X
	Inward v3.Vec // world direction of local +Z
	Pivot  v3.Vec // subtracted after placement
}

// Apply transforms a local point to pivot-centred world coordinates.
func (p Placement) Apply(local v3.Vec) v3.Vec {
	w := p.Origin.
		Add(p.Right.MulScalar(local.X)).
		Add(Up.MulScalar(local.Y)).
		Add(p.Inward.MulScalar(local.Z))
	return w.Sub(p.Pivot)
}

// Recenter shifts a site-coordinate point into the pivot-centred frame.
func (p Placement) Recenter(site v3.Vec) v3.Vec {
	return site.Sub(p.Pivot)
}

// Pivot returns the centre of the site rectangle at y = 0.
func Pivot(size Size) v3.Vec {
	return v3.Vec{X: size.X / 2, Z: size.Z / 2}
}

// CornerPlacement is the placement of corner c's canonical SW frame: rotated
// by -90deg * c and moved to the corner's rectangle position.
func CornerPlacement(c CornerID, size Size) Placement {
	q := quarterTurns[c]
	return Placement{
		Origin: CornerPosition(c, size),
		Right:  q.right,
		Inward: q.inward,
		Pivot:  Pivot(size),
	}
}

// SidePlacement is the placement of side s's canonical South frame. Side k
// starts at corner k, so it shares that corner's rotation and origin.
func SidePlacement(s Side, size Size) Placement {
	return CornerPlacement(CornerAtLeft(s), size)
}

// SiteFrame is the identity placement with recentering only, used for
// geometry authored directly in site coordinates.
func SiteFrame(size Size) Placement {
	return Placement{Right: quarterTurns[0].right, Inward: quarterTurns[0].inward, Pivot: Pivot(size)}
}

// edgeLength returns the length of side s.
func edgeLength(s Side, size Size) float64 {
	if s == East || s == West {
		return size.Z
	}
	return size.X
}

// Inverse maps a site-coordinate point back into the local frame.
func (p Placement) Inverse(site v3.Vec) v3.Vec {
	d := site.Sub(p.Origin)
	return v3.Vec{X: d.Dot(p.Right), Y: d.Y, Z: d.Dot(p.Inward)}
}
