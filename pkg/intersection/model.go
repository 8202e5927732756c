package intersection

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Model is the complete, immutable description of one intersection. It is
// produced by Build and never mutated; a parameter change means a new Model.
type Model struct {
	Size       Size        `json:"size" yaml:"size"`
	RoadHeight float64     `json:"road_height" yaml:"road_height"`
	Connected  Connections `json:"connected" yaml:"connected"`
	Topology   Topology    `json:"topology" yaml:"topology"`

	Corners   [4]CornerModel   `json:"corners" yaml:"corners"`     // indexed by CornerID
	Footpaths [4]FootpathModel `json:"footpaths" yaml:"footpaths"` // indexed by Side

	Config   Config              `json:"config" yaml:"config"`
	Warnings []ValidationWarning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ErrInvalidConfig is returned by Build when validation finds blocking errors.
var ErrInvalidConfig = errors.New("invalid intersection config")

// Build validates cfg and derives the corner and footpath models from it.
// It is a pure function: identical configs give identical models.
func Build(cfg Config) (*Model, error) {
	res := Validate(cfg)
	if len(res.Errors) > 0 {
		msgs := make([]string, 0, len(res.Errors))
		for _, e := range res.Errors {
			msgs = append(msgs, e.Error())
		}
		return nil, errors.WithDetail(
			errors.Wrapf(ErrInvalidConfig, "%d problem(s)", len(res.Errors)),
			strings.Join(msgs, "\n"),
		)
	}

	m := &Model{
		Size:       cfg.Size,
		RoadHeight: cfg.RoadHeight,
		Connected:  cfg.Connected,
		Topology:   cfg.Connected.Topology(),
		Config:     cfg,
		Warnings:   res.Warnings,
	}
	m.Corners = resolveCorners(cfg)
	for _, s := range AllSides {
		m.Footpaths[s] = resolveFootpath(cfg, s)
	}
	return m, nil
}

// MustBuild is Build for known-good configs such as DefaultConfig. It panics
// on validation failure.
func MustBuild(cfg Config) *Model {
	m, err := Build(cfg)
	if err != nil {
		panic(err)
	}
	return m
}

// Corner returns the model of corner id.
func (m *Model) Corner(id CornerID) CornerModel {
	return m.Corners[id]
}

// Footpath returns the model of the footpath on side s.
func (m *Model) Footpath(s Side) FootpathModel {
	return m.Footpaths[s]
}

// ExistingCorners returns the corners that carry geometry, in CornerID order.
func (m *Model) ExistingCorners() []CornerModel {
	var out []CornerModel
	for _, c := range m.Corners {
		if c.Exists {
			out = append(out, c)
		}
	}
	return out
}

// ExistingFootpaths returns the footpaths that carry geometry, in Side order.
func (m *Model) ExistingFootpaths() []FootpathModel {
	var out []FootpathModel
	for _, f := range m.Footpaths {
		if f.Exists {
			out = append(out, f)
		}
	}
	return out
}

// FootpathSpan returns the usable extent [xL, xR] along side s. Each end is
// the adjacent corner's apex projected onto the edge when that corner
// exists. Only OutwardFacing corners can border a footpath, and their apex
// lies one join distance (skirtOut + gutterWidth) past the neighbouring
// footpath's depth, so the projection is the slab end extended to meet the
// corner rim. A missing corner leaves the raw edge end.
func (m *Model) FootpathSpan(s Side) (xL, xR float64) {
	f := m.Footpaths[s]
	xL, xR = 0, f.EdgeLength
	if c := m.Corners[f.LeftCorner]; c.Exists {
		xL = f.Project(c.Apex)
	}
	if c := m.Corners[f.RightCorner]; c.Exists {
		xR = f.Project(c.Apex)
	}
	return xL, xR
}

// Rect is an axis-aligned rectangle in site X/Z.
type Rect struct {
	XMin float64 `json:"x_min" yaml:"x_min"`
	XMax float64 `json:"x_max" yaml:"x_max"`
	ZMin float64 `json:"z_min" yaml:"z_min"`
	ZMax float64 `json:"z_max" yaml:"z_max"`
}

// Empty reports whether r has no positive area.
func (r Rect) Empty() bool {
	return r.XMin >= r.XMax || r.ZMin >= r.ZMax
}

// Area returns the rectangle's area, or 0 if it is empty.
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return (r.XMax - r.XMin) * (r.ZMax - r.ZMin)
}

// Core returns the roadway core rectangle bounded by the four apexes. The
// result may be empty when profiles exceed half the site.
func (m *Model) Core() Rect {
	sw, se := m.Corners[SW].Apex, m.Corners[SE].Apex
	ne, nw := m.Corners[NE].Apex, m.Corners[NW].Apex
	return Rect{
		XMin: max(sw.X, nw.X),
		XMax: min(se.X, ne.X),
		ZMin: max(sw.Z, se.Z),
		ZMax: min(nw.Z, ne.Z),
	}
}
