package intersection

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// FootpathModel is the resolved state of the footpath along one side. A side
// carries a footpath exactly when it carries no road.
type FootpathModel struct {
	Side   Side       `json:"side" yaml:"side"`
	Exists bool       `json:"exists" yaml:"exists"`
	Depth  float64    `json:"depth" yaml:"depth"`
	Curb   CurbGutter `json:"curb" yaml:"curb"`

	EdgeOrigin v3.Vec  `json:"edge_origin" yaml:"edge_origin"` // site coordinates, y = 0
	EdgeRight  v3.Vec  `json:"edge_right" yaml:"edge_right"`   // unit, along the edge
	EdgeInward v3.Vec  `json:"edge_inward" yaml:"edge_inward"` // unit, into the site
	EdgeLength float64 `json:"edge_length" yaml:"edge_length"`

	LeftCorner     CornerID `json:"left_corner" yaml:"left_corner"`
	RightCorner    CornerID `json:"right_corner" yaml:"right_corner"`
	LeftAdjSide    Side     `json:"left_adj_side" yaml:"left_adj_side"`
	RightAdjSide   Side     `json:"right_adj_side" yaml:"right_adj_side"`
	LeftAdjExists  bool     `json:"left_adj_exists" yaml:"left_adj_exists"`
	RightAdjExists bool     `json:"right_adj_exists" yaml:"right_adj_exists"`
}

// EdgeMid returns half the edge length.
func (f FootpathModel) EdgeMid() float64 {
	return f.EdgeLength / 2
}

// Reach is the distance from the site edge to the outer gutter edge, where
// the roadway begins.
func (f FootpathModel) Reach() float64 {
	return f.Depth + f.Curb.Join()
}

// Placement returns the transform from the canonical South frame to the
// pivot-centred world frame.
func (f FootpathModel) Placement(size Size) Placement {
	return SidePlacement(f.Side, size)
}

// Project returns the coordinate of p along the edge, clamped to
// [0, EdgeLength].
func (f FootpathModel) Project(p v3.Vec) float64 {
	d := p.Sub(f.EdgeOrigin).Dot(f.EdgeRight)
	return math.Max(0, math.Min(f.EdgeLength, d))
}

func resolveFootpath(cfg Config, s Side) FootpathModel {
	p := SidePlacement(s, cfg.Size)
	left := CornerAtLeft(s)
	right := CornerAtRight(s)
	_, leftAdj := AdjacentOf(left)
	rightAdj, _ := AdjacentOf(right)

	return FootpathModel{
		Side:           s,
		Exists:         !cfg.Connected[s],
		Depth:          cfg.Footpaths[s],
		Curb:           cfg.Curb,
		EdgeOrigin:     p.Origin,
		EdgeRight:      p.Right,
		EdgeInward:     p.Inward,
		EdgeLength:     edgeLength(s, cfg.Size),
		LeftCorner:     left,
		RightCorner:    right,
		LeftAdjSide:    leftAdj,
		RightAdjSide:   rightAdj,
		LeftAdjExists:  !cfg.Connected[leftAdj],
		RightAdjExists: !cfg.Connected[rightAdj],
	}
}
