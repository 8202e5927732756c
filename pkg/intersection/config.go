package intersection

// ---------------------------------------------------------------------------
// Cross-section profile
// ---------------------------------------------------------------------------

// CurbGutter is the cross-section stepping down from footpath level to the
// roadway: a sloped curb skirt, a vertical gutter apron, then a gutter run
// rising (or falling) back to RoadHeight.
type CurbGutter struct {
	SkirtOut    float64 `json:"skirt_out" yaml:"skirt_out"`       // horizontal run of the curb skirt
	SkirtDown   float64 `json:"skirt_down" yaml:"skirt_down"`     // vertical drop of the curb skirt
	GutterDepth float64 `json:"gutter_depth" yaml:"gutter_depth"` // vertical drop of the gutter apron
	GutterWidth float64 `json:"gutter_width" yaml:"gutter_width"` // horizontal run of the gutter to the road
}

// Join is the horizontal distance from the footpath edge to the roadway,
// skirtOut + gutterWidth.
func (p CurbGutter) Join() float64 {
	return p.SkirtOut + p.GutterWidth
}

// GutterFloor is the height of the gutter bottom relative to footpath level.
func (p CurbGutter) GutterFloor() float64 {
	return -(p.SkirtDown + p.GutterDepth)
}

// DefaultCurbGutter is the standard street profile in metres.
func DefaultCurbGutter() CurbGutter {
	return CurbGutter{
		SkirtOut:    0.35,
		SkirtDown:   0.15,
		GutterDepth: 0.05,
		GutterWidth: 0.5,
	}
}

// ---------------------------------------------------------------------------
// Corner geometry
// ---------------------------------------------------------------------------

// CornerGeometry is the resolved footprint of one corner: the footpath span
// along each world axis plus the curb profile wrapped around it.
type CornerGeometry struct {
	XSize float64    `json:"x_size" yaml:"x_size"`
	ZSize float64    `json:"z_size" yaml:"z_size"`
	Curb  CurbGutter `json:"curb" yaml:"curb"`
}

// ApexOffset returns size + skirtOut + gutterWidth along each axis.
func (g CornerGeometry) ApexOffset() (x, z float64) {
	j := g.Curb.Join()
	return g.XSize + j, g.ZSize + j
}

// CornerSpec is the user-supplied geometry of one corner. A nil Curb means
// the shared profile applies.
type CornerSpec struct {
	XSize float64     `json:"x_size" yaml:"x_size"`
	ZSize float64     `json:"z_size" yaml:"z_size"`
	Curb  *CurbGutter `json:"curb,omitempty" yaml:"curb,omitempty"`
}

// CornerGeometryConfig holds one CornerSpec per corner, indexed by CornerID.
type CornerGeometryConfig [4]CornerSpec

// UniformCorners returns a config with the same pad size on every corner.
func UniformCorners(xSize, zSize float64) CornerGeometryConfig {
	var c CornerGeometryConfig
	for i := range c {
		c[i] = CornerSpec{XSize: xSize, ZSize: zSize}
	}
	return c
}

// FootpathDepthSet holds the footpath depth (distance from the site edge to
// the curb) per side, indexed by Side.
type FootpathDepthSet [4]float64

// UniformDepths returns the same depth on every side.
func UniformDepths(d float64) FootpathDepthSet {
	return FootpathDepthSet{d, d, d, d}
}

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// Size is the site rectangle in world X and Z.
type Size struct {
	X float64 `json:"x" yaml:"x"`
	Z float64 `json:"z" yaml:"z"`
}

// Config is the complete input of an intersection. It is passed by value;
// there are no package-level defaults beyond DefaultConfig.
type Config struct {
	Size       Size                 `json:"size" yaml:"size"`
	RoadHeight float64              `json:"road_height" yaml:"road_height"`
	Connected  Connections          `json:"connected" yaml:"connected"`
	Curb       CurbGutter           `json:"curb" yaml:"curb"`
	Corners    CornerGeometryConfig `json:"corners" yaml:"corners"`
	Footpaths  FootpathDepthSet     `json:"footpaths" yaml:"footpaths"`
}

// DefaultConfig returns a 12x12 four-way intersection with 3m corner pads,
// 2m footpaths and the default curb profile. The road surface sits level
// with the top of the gutter apron.
func DefaultConfig() Config {
	curb := DefaultCurbGutter()
	return Config{
		Size:       Size{X: 12, Z: 12},
		RoadHeight: -curb.SkirtDown,
		Connected:  Connections{true, true, true, true},
		Curb:       curb,
		Corners:    UniformCorners(3, 3),
		Footpaths:  UniformDepths(2),
	}
}

// CornerCurb returns the curb profile of corner c, falling back to the
// shared profile.
func (c Config) CornerCurb(id CornerID) CurbGutter {
	if p := c.Corners[id].Curb; p != nil {
		return *p
	}
	return c.Curb
}

// WithConnections returns a copy of c with the given connection flags.
func (c Config) WithConnections(n, e, s, w bool) Config {
	c.Connected = NewConnections(n, e, s, w)
	return c
}
