package commands

import (
	"fmt"

	"github.com/chazu/crossing/internal/logger"
	"github.com/chazu/crossing/pkg/kernel"
	"github.com/chazu/crossing/pkg/kernel/sdfx"
	"github.com/chazu/crossing/pkg/tessellate"
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ExportCmd writes an intersection to a binary STL file
var ExportCmd = newExportCmd()

type exportOptions struct {
	source   sourceFlags
	out      string
	scale    float64
	surfaces []string
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an intersection as STL",
		Long: `Build an intersection and write its faces to a binary STL file.

Coordinates are metres centred on the site; use --scale 1000 for slicers
that expect millimetres.

Examples:
  crossing export --out crossing.stl
  crossing export --config tee.toml --out tee.stl --scale 1000
  crossing export --lisp plaza.lisp --out road.stl --surface road`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}
	opts.source.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output STL path")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "Uniform scale applied to every vertex")
	cmd.Flags().StringSliceVar(&opts.surfaces, "surface", nil,
		"Only export these surfaces (footpath, curb, gutter-drop, gutter-run, road)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runExport(cmd *cobra.Command, opts *exportOptions) error {
	if opts.scale <= 0 {
		return errors.Newf("scale must be positive, got %g", opts.scale)
	}
	sinkOpts := []sdfx.Option{sdfx.WithScale(opts.scale)}
	if len(opts.surfaces) > 0 {
		tags := make([]kernel.Surface, 0, len(opts.surfaces))
		for _, name := range opts.surfaces {
			s, err := kernel.ParseSurface(name)
			if err != nil {
				return errors.Wrap(err, "--surface")
			}
			tags = append(tags, s)
		}
		sinkOpts = append(sinkOpts, sdfx.WithSurfaces(tags...))
	}

	cfg, err := opts.source.load()
	if err != nil {
		return err
	}

	stl := sdfx.New(sinkOpts...)
	m, _, err := tessellate.FromConfig(cfg, stl)
	if err != nil {
		return err
	}
	if err := stl.Save(opts.out); err != nil {
		return err
	}

	logger.Named("export").Debugw("wrote stl",
		"path", opts.out,
		"topology", m.Topology.String(),
		"triangles", len(stl.Triangles()))

	fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("%s: %d triangles (%s)",
		opts.out, len(stl.Triangles()), m.Topology))
	return nil
}
