package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const examplesDir = "../../../examples"

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassify(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"0", "0", "0", "0"}, "plaza\n"},
		{[]string{"1", "0", "0", "0"}, "dead-end\n"},
		{[]string{"true", "false", "true", "false"}, "straight\n"},
		{[]string{"1", "1", "0", "0"}, "turn\n"},
		{[]string{"1", "1", "1", "0"}, "t-junction\n"},
		{[]string{"t", "t", "t", "t"}, "four-way\n"},
	}
	for _, tt := range tests {
		out, err := execute(t, newClassifyCmd(), tt.args...)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out, "args %v", tt.args)
	}
}

func TestClassifyCorners(t *testing.T) {
	out, err := execute(t, newClassifyCmd(), "1", "1", "1", "0", "--corners")
	require.NoError(t, err)
	assert.Equal(t, "t-junction\nsw\tnone\nse\tinward\nne\tinward\nnw\tnone\n", out)

	out, err = execute(t, newClassifyCmd(), "0", "0", "0", "0", "--corners")
	require.NoError(t, err)
	assert.Equal(t, "plaza\nsw\toutward\nse\toutward\nne\toutward\nnw\toutward\n", out)
}

func TestClassifyErrors(t *testing.T) {
	_, err := execute(t, newClassifyCmd(), "1", "0", "1")
	assert.Error(t, err)

	_, err = execute(t, newClassifyCmd(), "1", "0", "yes", "0")
	assert.Error(t, err)
}

func TestInspectYAML(t *testing.T) {
	out, err := execute(t, newInspectCmd(), "--lisp", filepath.Join(examplesDir, "plaza.lisp"), "--format", "yaml")
	require.NoError(t, err)

	var doc struct {
		Topology string `yaml:"topology"`
		Size     struct {
			X float64 `yaml:"x"`
			Z float64 `yaml:"z"`
		} `yaml:"size"`
		Corners []struct {
			ID   string `yaml:"id"`
			Type string `yaml:"type"`
		} `yaml:"corners"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "plaza", doc.Topology)
	assert.Equal(t, 16.0, doc.Size.X)
	assert.Equal(t, 12.0, doc.Size.Z)
	require.Len(t, doc.Corners, 4)
	for _, c := range doc.Corners {
		assert.Equal(t, "outward", c.Type, "corner %s", c.ID)
	}
}

func TestInspectTable(t *testing.T) {
	out, err := execute(t, newInspectCmd(), "--config", filepath.Join(examplesDir, "tee.toml"), "--format", "table")
	require.NoError(t, err)
	for _, want := range []string{"footpath", "curb", "gutter-drop", "gutter-run", "road", "total"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "topology:")
}

func TestInspectDefault(t *testing.T) {
	out, err := execute(t, newInspectCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "# four-way intersection")
	assert.Contains(t, out, "total")
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.lisp")
	require.NoError(t, os.WriteFile(empty, []byte("(def x 1)\n"), 0o644))

	_, err := execute(t, newInspectCmd(), "--lisp", empty)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "intersection")

	_, err = execute(t, newInspectCmd(), "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t, newInspectCmd(),
		"--config", filepath.Join(examplesDir, "tee.toml"),
		"--lisp", filepath.Join(examplesDir, "plaza.lisp"))
	assert.Error(t, err, "--config and --lisp are mutually exclusive")

	_, err = execute(t, newInspectCmd(), "--lisp", filepath.Join(dir, "missing.lisp"))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()

	all := filepath.Join(dir, "four_way.stl")
	out, err := execute(t, newExportCmd(), "--lisp", filepath.Join(examplesDir, "four_way.lisp"), "--out", all)
	require.NoError(t, err)
	assert.Contains(t, out, "four-way")

	road := filepath.Join(dir, "road.stl")
	_, err = execute(t, newExportCmd(), "--out", road, "--surface", "road", "--scale", "1000")
	require.NoError(t, err)

	allInfo, err := os.Stat(all)
	require.NoError(t, err)
	roadInfo, err := os.Stat(road)
	require.NoError(t, err)

	assert.Greater(t, roadInfo.Size(), int64(84))
	assert.Greater(t, allInfo.Size(), roadInfo.Size())
}

func TestExportErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{"missing out", nil},
		{"bad scale", []string{"--out", filepath.Join(dir, "a.stl"), "--scale", "0"}},
		{"bad surface", []string{"--out", filepath.Join(dir, "b.stl"), "--surface", "kerb"}},
		{"bad config", []string{"--out", filepath.Join(dir, "c.stl"), "--config", filepath.Join(dir, "none.toml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, newExportCmd(), tt.args...)
			assert.Error(t, err)
		})
	}
}
