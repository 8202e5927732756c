package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/crossing/pkg/intersection"
	"github.com/cockroachdb/errors"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites intersection Lisp into something zygomys reads:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbol and cannot collide with user variables.
//  2. ; line comments become // comments.
//  3. Hyphens between identifier characters become underscores
//     (road-width -> road_width); zygomys reads a bare hyphen as minus.
//
// String literals (double-quoted and backtick) pass through untouched.
func preprocessSource(source string) string {
	out := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			j := skipQuoted(b, i, '"', true)
			out = append(out, b[i:j]...)
			i = j
			continue

		case b[i] == '`':
			j := skipQuoted(b, i, '`', false)
			out = append(out, b[i:j]...)
			i = j
			continue

		case b[i] == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}
			continue

		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2
			continue

		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j
			continue

		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++
			continue
		}
		out = append(out, b[i])
		i++
	}
	return string(out)
}

// skipQuoted returns the index just past the literal opened at b[start].
func skipQuoted(b []byte, start int, quote byte, escapes bool) int {
	i := start + 1
	for i < len(b) && b[i] != quote {
		if escapes && b[i] == '\\' && i+1 < len(b) {
			i += 2
			continue
		}
		i++
	}
	if i < len(b) {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values between builtins
// ---------------------------------------------------------------------------

type sexpVec2 struct {
	x, z float64
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.x, v.z)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

type sexpCurb struct {
	curb intersection.CurbGutter
}

func (c *sexpCurb) SexpString(ps *zygo.PrintState) string {
	p := c.curb
	return fmt.Sprintf("(curb :skirt-out %g :skirt-down %g :gutter-depth %g :gutter-width %g)",
		p.SkirtOut, p.SkirtDown, p.GutterDepth, p.GutterWidth)
}
func (c *sexpCurb) Type() *zygo.RegisteredType { return nil }

// sexpCorner carries a corner spec. Fields left out of the form are nil and
// keep the intersection's default.
type sexpCorner struct {
	id           intersection.CornerID
	xSize, zSize *float64
	curb         *intersection.CurbGutter
}

func (c *sexpCorner) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(corner :%s)", c.id)
}
func (c *sexpCorner) Type() *zygo.RegisteredType { return nil }

type sexpFootpaths struct {
	depths [4]*float64 // indexed by Side
}

func (f *sexpFootpaths) SexpString(ps *zygo.PrintState) string {
	var parts []string
	for _, s := range intersection.AllSides {
		if d := f.depths[s]; d != nil {
			parts = append(parts, fmt.Sprintf(":%s %g", s, *d))
		}
	}
	return "(footpaths " + strings.Join(parts, " ") + ")"
}
func (f *sexpFootpaths) Type() *zygo.RegisteredType { return nil }

type sexpIntersection struct {
	cfg intersection.Config
}

func (x *sexpIntersection) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(intersection %s %gx%g)", x.cfg.Connected.Topology(), x.cfg.Size.X, x.cfg.Size.Z)
}
func (x *sexpIntersection) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments. The
// argument after a keyword is always its value, so keyword values such as
// :connect :north work.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		result.order = append(result.order, name)
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			// Keyword at end with no value: treat as flag with nil.
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// unknown returns an error naming the first keyword not in allowed.
func (a kwArgs) unknown(allowed ...string) error {
	for _, name := range a.order {
		found := false
		for _, ok := range allowed {
			if name == ok {
				found = true
				break
			}
		}
		if !found {
			return errors.Newf("unknown keyword :%s", name)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a SexpInt or SexpFloat.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, errors.Newf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", errors.Newf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

func toSide(s zygo.Sexp) (intersection.Side, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, err
	}
	return intersection.ParseSide(name)
}

func toVec2(s zygo.Sexp) (*sexpVec2, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v, nil
	}
	return nil, errors.Newf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

func toCurb(s zygo.Sexp) (intersection.CurbGutter, error) {
	if c, ok := s.(*sexpCurb); ok {
		return c.curb, nil
	}
	return intersection.CurbGutter{}, errors.Newf("expected curb, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, errors.Newf("expected list or array, got %T", s)
}

// floatKW reads an optional numeric keyword into dst.
func floatKW(a kwArgs, name string, dst *float64) error {
	v, ok := a.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return errors.Wrapf(err, "%s", name)
	}
	*dst = f
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// collector receives the intersection form evaluated by user code.
type collector struct {
	cfg   *intersection.Config
	count int
}

// registerBuiltins installs the intersection DSL into a zygomys
// environment. Source must go through preprocessSource first so :keyword
// tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, c *collector) {

	// (vec2 12 12)
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, errors.Newf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "vec2: x")
		}
		z, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "vec2: z")
		}
		return &sexpVec2{x: x, z: z}, nil
	})

	// (curb :skirt-out 0.35 :skirt-down 0.15 :gutter-depth 0.05 :gutter-width 0.5)
	// Omitted fields take the default profile.
	env.AddFunction("curb", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.unknown("skirt-out", "skirt-down", "gutter-depth", "gutter-width"); err != nil {
			return zygo.SexpNull, errors.Wrap(err, "curb")
		}
		p := intersection.DefaultCurbGutter()
		for _, f := range []struct {
			kw  string
			dst *float64
		}{
			{"skirt-out", &p.SkirtOut},
			{"skirt-down", &p.SkirtDown},
			{"gutter-depth", &p.GutterDepth},
			{"gutter-width", &p.GutterWidth},
		} {
			if err := floatKW(pa, f.kw, f.dst); err != nil {
				return zygo.SexpNull, errors.Wrap(err, "curb")
			}
		}
		return &sexpCurb{curb: p}, nil
	})

	// (corner :sw :x 3 :z 3 :curb (curb ...))
	// The corner name comes first.
	env.AddFunction("corner", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, errors.New("corner requires a corner name (:sw :se :ne :nw)")
		}
		cname, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "corner: name")
		}
		id, err := intersection.ParseCorner(cname)
		if err != nil {
			return zygo.SexpNull, errors.Wrap(err, "corner")
		}
		out := &sexpCorner{id: id}

		pa := parseArgs(args[1:])
		if err := pa.unknown("x", "z", "curb"); err != nil {
			return zygo.SexpNull, errors.Wrap(err, "corner")
		}
		if _, ok := pa.kw["x"]; ok {
			var v float64
			if err := floatKW(pa, "x", &v); err != nil {
				return zygo.SexpNull, errors.Wrap(err, "corner")
			}
			out.xSize = &v
		}
		if _, ok := pa.kw["z"]; ok {
			var v float64
			if err := floatKW(pa, "z", &v); err != nil {
				return zygo.SexpNull, errors.Wrap(err, "corner")
			}
			out.zSize = &v
		}
		if v, ok := pa.kw["curb"]; ok {
			p, err := toCurb(v)
			if err != nil {
				return zygo.SexpNull, errors.Wrap(err, "corner: curb")
			}
			out.curb = &p
		}
		return out, nil
	})

	// (footpaths :all 2 :north 2.5)
	// :all applies first; named sides override it.
	env.AddFunction("footpaths", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		out := &sexpFootpaths{}
		if _, ok := pa.kw["all"]; ok {
			var d float64
			if err := floatKW(pa, "all", &d); err != nil {
				return zygo.SexpNull, errors.Wrap(err, "footpaths")
			}
			for _, s := range intersection.AllSides {
				v := d
				out.depths[s] = &v
			}
		}
		for _, kw := range pa.order {
			if kw == "all" {
				continue
			}
			s, err := intersection.ParseSide(kw)
			if err != nil {
				return zygo.SexpNull, errors.Wrap(err, "footpaths")
			}
			var d float64
			if err := floatKW(pa, kw, &d); err != nil {
				return zygo.SexpNull, errors.Wrap(err, "footpaths")
			}
			out.depths[s] = &d
		}
		return out, nil
	})

	// (intersection :size (vec2 12 12) :road-height -0.15
	//               :connect (list :north :south)
	//               :corner-size (vec2 3 3)
	//               :curb (curb ...) :corners (list (corner ...) ...)
	//               :footpaths (footpaths ...))
	env.AddFunction("intersection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.unknown("size", "road-height", "connect", "corner-size", "curb", "corners", "footpaths"); err != nil {
			return zygo.SexpNull, errors.Wrap(err, "intersection")
		}
		cfg := intersection.DefaultConfig()

		if v, ok := pa.kw["size"]; ok {
			vec, err := toVec2(v)
			if err != nil {
				return zygo.SexpNull, errors.Wrap(err, "intersection: size")
			}
			cfg.Size = intersection.Size{X: vec.x, Z: vec.z}
		}
		if err := floatKW(pa, "road-height", &cfg.RoadHeight); err != nil {
			return zygo.SexpNull, errors.Wrap(err, "intersection")
		}
		if v, ok := pa.kw["connect"]; ok {
			conn, err := toConnections(v)
			if err != nil {
				return zygo.SexpNull, errors.Wrap(err, "intersection: connect")
			}
			cfg.Connected = conn
		}
		if v, ok := pa.kw["corner-size"]; ok {
			vec, err := toVec2(v)
			if err != nil {
				return zygo.SexpNull, errors.Wrap(err, "intersection: corner-size")
			}
			cfg.Corners = intersection.UniformCorners(vec.x, vec.z)
		}
		if v, ok := pa.kw["curb"]; ok {
			p, err := toCurb(v)
			if err != nil {
				return zygo.SexpNull, errors.Wrap(err, "intersection: curb")
			}
			cfg.Curb = p
		}
		if v, ok := pa.kw["corners"]; ok {
			items, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, errors.Wrap(err, "intersection: corners")
			}
			for i, item := range items {
				sc, ok := item.(*sexpCorner)
				if !ok {
					return zygo.SexpNull, errors.Newf("intersection: corners: entry %d: expected corner, got %T (%s)",
						i, item, item.SexpString(nil))
				}
				spec := &cfg.Corners[sc.id]
				if sc.xSize != nil {
					spec.XSize = *sc.xSize
				}
				if sc.zSize != nil {
					spec.ZSize = *sc.zSize
				}
				if sc.curb != nil {
					p := *sc.curb
					spec.Curb = &p
				}
			}
		}
		if v, ok := pa.kw["footpaths"]; ok {
			fp, ok := v.(*sexpFootpaths)
			if !ok {
				return zygo.SexpNull, errors.Newf("intersection: footpaths: expected footpaths, got %T (%s)",
					v, v.SexpString(nil))
			}
			for _, s := range intersection.AllSides {
				if d := fp.depths[s]; d != nil {
					cfg.Footpaths[s] = *d
				}
			}
		}

		c.count++
		c.cfg = &cfg
		return &sexpIntersection{cfg: cfg}, nil
	})
}

// toConnections reads :connect, which is a list of side keywords, a single
// side keyword, or :none / :all.
func toConnections(v zygo.Sexp) (intersection.Connections, error) {
	var conn intersection.Connections
	if name, ok := isKW(v); ok {
		switch name {
		case "none":
			return conn, nil
		case "all":
			return intersection.Connections{true, true, true, true}, nil
		}
		s, err := intersection.ParseSide(name)
		if err != nil {
			return conn, err
		}
		conn[s] = true
		return conn, nil
	}
	items, err := sexpListToSlice(v)
	if err != nil {
		return conn, err
	}
	for _, item := range items {
		s, err := toSide(item)
		if err != nil {
			return conn, err
		}
		conn[s] = true
	}
	return conn, nil
}
