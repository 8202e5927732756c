package builder

import (
	"github.com/chazu/crossing/pkg/intersection"
	"github.com/chazu/crossing/pkg/kernel"
	"github.com/cockroachdb/errors"
)

// Warning is a non-fatal configuration problem found while building. The
// affected region is skipped and the rest of the intersection is emitted.
type Warning struct {
	Region  string `json:"region" yaml:"region"`
	Message string `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	return w.Region + ": " + w.Message
}

// Report summarises one Build.
type Report struct {
	Faces    map[kernel.Surface]int `json:"faces" yaml:"faces"`
	Warnings []Warning              `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// TotalFaces returns the number of faces emitted across all surfaces.
func (r Report) TotalFaces() int {
	n := 0
	for _, c := range r.Faces {
		n += c
	}
	return n
}

func (r *Report) merge(counts map[kernel.Surface]int) {
	for tag, n := range counts {
		r.Faces[tag] += n
	}
}

// Build emits the whole intersection into sink: existing corners in
// CornerID order, existing footpaths in Side order, then the road fill.
// Output is deterministic for a given model.
func Build(sink kernel.Sink, m *intersection.Model) (Report, error) {
	rep := Report{Faces: make(map[kernel.Surface]int)}
	if m == nil {
		return rep, errors.AssertionFailedf("builder: nil model")
	}

	for _, c := range m.ExistingCorners() {
		counts, err := BuildCorner(sink, m, c.ID)
		if err != nil {
			return rep, errors.Wrapf(err, "corner %s", c.ID)
		}
		rep.merge(counts)
	}

	for _, f := range m.ExistingFootpaths() {
		counts, warnings, err := BuildFootpath(sink, m, f.Side)
		if err != nil {
			return rep, errors.Wrapf(err, "footpath %s", f.Side)
		}
		rep.merge(counts)
		rep.Warnings = append(rep.Warnings, warnings...)
	}

	counts, warnings := BuildRoadFill(sink, m)
	rep.merge(counts)
	rep.Warnings = append(rep.Warnings, warnings...)

	return rep, nil
}
