package commands

import (
	"os"

	"github.com/chazu/crossing/pkg/config"
	"github.com/chazu/crossing/pkg/engine"
	"github.com/chazu/crossing/pkg/intersection"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// sourceFlags selects where an intersection description comes from. With
// neither flag set the default four-way intersection is used.
type sourceFlags struct {
	configPath string
	lispPath   string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "TOML, YAML or JSON intersection file")
	cmd.Flags().StringVarP(&f.lispPath, "lisp", "l", "", "Lisp intersection source")
	cmd.MarkFlagsMutuallyExclusive("config", "lisp")
}

func (f *sourceFlags) load() (intersection.Config, error) {
	switch {
	case f.configPath != "":
		return config.Load(f.configPath)
	case f.lispPath != "":
		return loadLisp(f.lispPath)
	}
	return intersection.DefaultConfig(), nil
}

func loadLisp(path string) (intersection.Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return intersection.Config{}, errors.Wrapf(err, "reading %s", path)
	}
	cfg, evalErrs, err := engine.NewEngine().Evaluate(string(src))
	if err != nil {
		return intersection.Config{}, errors.Wrapf(err, "evaluating %s", path)
	}
	if len(evalErrs) > 0 {
		return intersection.Config{}, errors.Newf("%s: %s", path, evalErrs[0].Error())
	}
	if cfg == nil {
		return intersection.Config{}, errors.WithHint(
			errors.Newf("%s: no intersection form", path),
			"add an (intersection ...) form to the file")
	}
	return *cfg, nil
}
