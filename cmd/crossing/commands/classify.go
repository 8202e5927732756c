package commands

import (
	"fmt"
	"strconv"

	"github.com/chazu/crossing/pkg/intersection"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// ClassifyCmd prints the topology of a connection pattern
var ClassifyCmd = newClassifyCmd()

func newClassifyCmd() *cobra.Command {
	var showCorners bool

	cmd := &cobra.Command{
		Use:   "classify <north> <east> <south> <west>",
		Short: "Classify a connection pattern",
		Long: `Print the topology formed by the four road connections.

Each argument is a boolean (1/0, true/false, t/f).

Examples:
  crossing classify 1 0 1 0            # straight
  crossing classify 1 1 1 0 --corners  # t-junction with corner states`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args, showCorners)
		},
	}
	cmd.Flags().BoolVar(&showCorners, "corners", false, "Also list the state of each corner")
	return cmd
}

func runClassify(cmd *cobra.Command, args []string, showCorners bool) error {
	var flags [4]bool
	for i, a := range args {
		v, err := strconv.ParseBool(a)
		if err != nil {
			return errors.Wrapf(err, "argument %d", i+1)
		}
		flags[i] = v
	}
	conn := intersection.NewConnections(flags[0], flags[1], flags[2], flags[3])

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, conn.Topology())
	if !showCorners {
		return nil
	}
	for _, id := range intersection.AllCorners {
		a, b := intersection.AdjacentOf(id)
		_, t := intersection.CornerState(conn[a], conn[b])
		fmt.Fprintf(out, "%s\t%s\n", id, t)
	}
	return nil
}
