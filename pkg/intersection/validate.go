package intersection

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a validation finding blocks Build or
// is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks Build
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Subject  string             // "size", "curb", "corner sw", "footpath north", ...
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Subject, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Subject string `json:"subject" yaml:"subject"`
	Message string `json:"message" yaml:"message"`
}

func (w ValidationWarning) String() string {
	if w.Subject == "" {
		return w.Message
	}
	return w.Subject + ": " + w.Message
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether the result has no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks cfg without building anything. Dimensional problems are
// errors; combinations that still build but may look wrong are warnings.
func Validate(cfg Config) ValidationResult {
	var res ValidationResult
	res.Errors = append(res.Errors, validateDimensions(cfg)...)
	res.Errors = append(res.Errors, validateProfiles(cfg)...)
	res.Warnings = append(res.Warnings, validateSeams(cfg)...)
	res.Warnings = append(res.Warnings, validateCornerSizes(cfg)...)
	res.Warnings = append(res.Warnings, validateHeights(cfg)...)
	return res
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func errorf(subject, format string, args ...any) ValidationError {
	return ValidationError{Subject: subject, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

// validateDimensions checks the site size, road height, corner pads and
// footpath depths.
func validateDimensions(cfg Config) []ValidationError {
	var errs []ValidationError

	if !finite(cfg.Size.X) || cfg.Size.X <= 0 {
		errs = append(errs, errorf("size", "X is %.4f, must be positive", cfg.Size.X))
	}
	if !finite(cfg.Size.Z) || cfg.Size.Z <= 0 {
		errs = append(errs, errorf("size", "Z is %.4f, must be positive", cfg.Size.Z))
	}
	if !finite(cfg.RoadHeight) {
		errs = append(errs, errorf("road height", "must be finite, got %v", cfg.RoadHeight))
	}

	for _, id := range AllCorners {
		spec := cfg.Corners[id]
		subject := "corner " + id.String()
		if !finite(spec.XSize) || spec.XSize < 0 {
			errs = append(errs, errorf(subject, "x size is %.4f, must not be negative", spec.XSize))
		}
		if !finite(spec.ZSize) || spec.ZSize < 0 {
			errs = append(errs, errorf(subject, "z size is %.4f, must not be negative", spec.ZSize))
		}
	}

	for _, s := range AllSides {
		d := cfg.Footpaths[s]
		if !finite(d) || d < 0 {
			errs = append(errs, errorf("footpath "+s.String(), "depth is %.4f, must not be negative", d))
		}
	}

	return errs
}

// validateProfiles checks every curb/gutter profile component is finite and
// non-negative.
func validateProfiles(cfg Config) []ValidationError {
	var errs []ValidationError
	errs = append(errs, checkProfile("curb", cfg.Curb)...)
	for _, id := range AllCorners {
		if p := cfg.Corners[id].Curb; p != nil {
			errs = append(errs, checkProfile("corner "+id.String()+" curb", *p)...)
		}
	}
	return errs
}

func checkProfile(subject string, p CurbGutter) []ValidationError {
	var errs []ValidationError
	fields := []struct {
		name string
		v    float64
	}{
		{"skirt out", p.SkirtOut},
		{"skirt down", p.SkirtDown},
		{"gutter depth", p.GutterDepth},
		{"gutter width", p.GutterWidth},
	}
	for _, f := range fields {
		if !finite(f.v) || f.v < 0 {
			errs = append(errs, errorf(subject, "%s is %.4f, must not be negative", f.name, f.v))
		}
	}
	return errs
}

// seamEps is the largest difference between two edge positions that still
// counts as the same edge.
const seamEps = 1e-9

// validateSeams warns about combinations that leave the surface open or
// drop part of the input. Corners bordering a footpath share the footpath's
// profile so the seam stays closed; a curb override there is ignored. Two
// inward corners on one road must reach equally far from its edge, or the
// road fill leaves a gap against the shorter one.
func validateSeams(cfg Config) []ValidationWarning {
	var warnings []ValidationWarning
	for _, s := range AllSides {
		if !cfg.Connected[s] {
			continue
		}
		l, r := CornerAtLeft(s), CornerAtRight(s)
		rl, okL := inwardReach(cfg, l, s)
		rr, okR := inwardReach(cfg, r, s)
		if !okL || !okR || math.Abs(rl-rr) <= seamEps {
			continue
		}
		warnings = append(warnings, ValidationWarning{
			Subject: "road " + s.String(),
			Message: fmt.Sprintf("corners %s and %s reach %.3f and %.3f from the %s edge: the road fill leaves a gap against the shorter one",
				l, r, rl, rr, s),
		})
	}
	for _, id := range AllCorners {
		p := cfg.Corners[id].Curb
		if p == nil || *p == cfg.Curb {
			continue
		}
		a, b := AdjacentOf(id)
		if _, t := CornerState(cfg.Connected[a], cfg.Connected[b]); t == InwardFacing {
			continue
		}
		warnings = append(warnings, ValidationWarning{
			Subject: "corner " + id.String(),
			Message: "curb override ignored: the corner borders a footpath and uses the shared profile",
		})
	}
	return warnings
}

// inwardReach returns how far inward corner id reaches from the edge of
// side s: pad size plus curb join along s's thickness axis. ok is false when
// the corner is not inward facing.
func inwardReach(cfg Config, id CornerID, s Side) (reach float64, ok bool) {
	a, b := AdjacentOf(id)
	if !cfg.Connected[a] || !cfg.Connected[b] {
		return 0, false
	}
	g := CornerGeometry{XSize: cfg.Corners[id].XSize, ZSize: cfg.Corners[id].ZSize, Curb: cfg.CornerCurb(id)}
	ox, oz := g.ApexOffset()
	if s == South || s == North {
		return oz, true
	}
	return ox, true
}

// validateCornerSizes warns when a per-corner pad size cannot apply. A side
// without a road fixes the size to its footpath depth, and a corner with no
// geometry of its own follows the inward corner across its road. A size
// shared by most corners is the common pad and resolves silently.
func validateCornerSizes(cfg Config) []ValidationWarning {
	var xs, zs [4]float64
	for i, spec := range cfg.Corners {
		xs[i], zs[i] = spec.XSize, spec.ZSize
	}
	xBase, xOK := commonSize(xs)
	zBase, zOK := commonSize(zs)

	var warnings []ValidationWarning
	resolved := resolveCorners(cfg)
	for _, id := range AllCorners {
		spec, got := cfg.Corners[id], resolved[id].Geometry
		xSide, zSide := thicknessSides(id)
		if !xOK || spec.XSize != xBase {
			if w, ok := ignoredSize(cfg, id, "x", xSide, spec.XSize, got.XSize); ok {
				warnings = append(warnings, w)
			}
		}
		if !zOK || spec.ZSize != zBase {
			if w, ok := ignoredSize(cfg, id, "z", zSide, spec.ZSize, got.ZSize); ok {
				warnings = append(warnings, w)
			}
		}
	}
	return warnings
}

// commonSize returns the value held by more corners than any other. ok is
// false on a tie.
func commonSize(v [4]float64) (size float64, ok bool) {
	best, tied := 0, false
	for i := range v {
		n := 0
		for j := range v {
			if v[j] == v[i] {
				n++
			}
		}
		switch {
		case n > best:
			best, size, tied = n, v[i], false
		case n == best && v[i] != size:
			tied = true
		}
	}
	return size, !tied
}

// ignoredSize reports a configured size along side s's thickness axis that
// resolved to a different value.
func ignoredSize(cfg Config, id CornerID, axis string, s Side, want, got float64) (ValidationWarning, bool) {
	if !finite(want) || math.Abs(want-got) <= seamEps {
		return ValidationWarning{}, false
	}
	cause := fmt.Sprintf("by the %s footpath depth", s)
	if cfg.Connected[s] {
		cause = fmt.Sprintf("to meet corner %s across the %s road", otherCorner(s, id), s)
	}
	return ValidationWarning{
		Subject: "corner " + id.String(),
		Message: fmt.Sprintf("%s size %.3f ignored: set to %.3f %s", axis, want, got, cause),
	}, true
}

// validateHeights warns when the roadway sits above footpath level, which
// turns the gutter run into an upward ramp past the footpath.
func validateHeights(cfg Config) []ValidationWarning {
	if cfg.RoadHeight > 0 {
		return []ValidationWarning{{
			Subject: "road height",
			Message: fmt.Sprintf("road surface %.3f is above footpath level", cfg.RoadHeight),
		}}
	}
	return nil
}
