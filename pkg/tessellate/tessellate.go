// Package tessellate turns an intersection model into render-ready meshes,
// one per surface, by running the builders into a kernel.MeshSink.
package tessellate

import (
	"github.com/chazu/crossing/internal/logger"
	"github.com/chazu/crossing/pkg/builder"
	"github.com/chazu/crossing/pkg/intersection"
	"github.com/chazu/crossing/pkg/kernel"
	"github.com/cockroachdb/errors"
)

// Result is the output of one tessellation pass.
type Result struct {
	Meshes []*kernel.Mesh  `json:"meshes"`
	Report builder.Report `json:"report"`
}

// Tessellate builds every face of m into per-surface meshes. Additional
// sinks receive the same faces in the same order, so a caller can export
// the exact geometry it renders. Skipped regions are logged and reported;
// they never fail the pass.
func Tessellate(m *intersection.Model, extra ...kernel.Sink) (*Result, error) {
	if m == nil {
		return &Result{Report: builder.Report{Faces: map[kernel.Surface]int{}}}, nil
	}

	ms := kernel.NewMeshSink()
	var sink kernel.Sink = ms
	if len(extra) > 0 {
		sink = append(kernel.Tee{ms}, extra...)
	}

	rep, err := builder.Build(sink, m)
	if err != nil {
		return nil, errors.Wrap(err, "tessellate")
	}

	log := logger.Named("tessellate")
	for _, w := range m.Warnings {
		log.Warnw("config", "subject", w.Subject, "message", w.Message)
	}
	for _, w := range rep.Warnings {
		log.Warnw("skipped", "region", w.Region, "message", w.Message)
	}
	log.Debugw("tessellated",
		"topology", m.Topology.String(),
		"faces", rep.TotalFaces(),
		"meshes", len(ms.Meshes()))

	return &Result{Meshes: ms.Meshes(), Report: rep}, nil
}

// FromConfig validates cfg, builds the model and tessellates it.
func FromConfig(cfg intersection.Config, extra ...kernel.Sink) (*intersection.Model, *Result, error) {
	m, err := intersection.Build(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := Tessellate(m, extra...)
	if err != nil {
		return m, nil, err
	}
	return m, res, nil
}
