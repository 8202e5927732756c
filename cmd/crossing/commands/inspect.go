package commands

import (
	"fmt"
	"io"

	"github.com/chazu/crossing/pkg/kernel"
	"github.com/chazu/crossing/pkg/tessellate"
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// InspectCmd dumps the resolved model and a per-surface face summary
var InspectCmd = newInspectCmd()

type inspectOptions struct {
	source sourceFlags
	format string
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the resolved intersection model",
		Long: `Resolve an intersection description and print the model as YAML,
followed by a table of the faces emitted per surface.

Examples:
  crossing inspect                          # default four-way intersection
  crossing inspect --config tee.toml
  crossing inspect --lisp plaza.lisp --format table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, opts)
		},
	}
	opts.source.register(cmd)
	cmd.Flags().StringVar(&opts.format, "format", "all", "Output: yaml, table or all")
	return cmd
}

func runInspect(cmd *cobra.Command, opts *inspectOptions) error {
	switch opts.format {
	case "yaml", "table", "all":
	default:
		return errors.Newf("unsupported format: %s (supported: yaml, table, all)", opts.format)
	}

	cfg, err := opts.source.load()
	if err != nil {
		return err
	}

	rec := &kernel.FaceRecorder{}
	m, res, err := tessellate.FromConfig(cfg, rec)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format != "table" {
		data, err := yaml.Marshal(m)
		if err != nil {
			return errors.Wrap(err, "marshalling model")
		}
		fmt.Fprintf(out, "# %s intersection\n%s", m.Topology, data)
	}
	if opts.format == "yaml" {
		return nil
	}

	if err := renderFaceTable(out, rec); err != nil {
		return err
	}
	for _, w := range m.Warnings {
		fmt.Fprint(out, pterm.Warning.Sprintfln("%s", w))
	}
	for _, w := range res.Report.Warnings {
		fmt.Fprint(out, pterm.Warning.Sprintfln("skipped %s", w))
	}
	return nil
}

func renderFaceTable(out io.Writer, rec *kernel.FaceRecorder) error {
	counts := rec.CountBySurface()
	areas := rec.AreaBySurface()

	data := pterm.TableData{{"Surface", "Faces", "Area (m²)"}}
	total, totalArea := 0, 0.0
	for _, s := range kernel.AllSurfaces {
		data = append(data, []string{
			s.String(),
			fmt.Sprintf("%d", counts[s]),
			fmt.Sprintf("%.3f", areas[s]),
		})
		total += counts[s]
		totalArea += areas[s]
	}
	data = append(data, []string{"total", fmt.Sprintf("%d", total), fmt.Sprintf("%.3f", totalArea)})

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "rendering face table")
	}
	fmt.Fprintln(out, table)
	return nil
}
