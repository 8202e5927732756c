package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/chazu/crossing/pkg/intersection"
)

// ---------------------------------------------------------------------------
// Empty editor: empty string -> 0 meshes, 0 errors, non-nil slices.
// ---------------------------------------------------------------------------

func TestE2EEmptySourceExtended(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected 0 warnings for empty source, got %d", len(result.Warnings))
	}
	// Ensure slices are non-nil (JSON should serialize as [] not null).
	if result.Meshes == nil {
		t.Error("Meshes should be non-nil empty slice, got nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
	if result.Warnings == nil {
		t.Error("Warnings should be non-nil empty slice, got nil")
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("empty result serializes with null: %s", data)
	}
}

// ---------------------------------------------------------------------------
// Syntax error on a later line: eval error with a message, 0 meshes.
// ---------------------------------------------------------------------------

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	app := NewApp()

	source := "(def pad 3)\n(intersection :corner-size (vec2 pad pad)"
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on syntax error, got %d", len(result.Meshes))
	}
	if result.Errors[0].Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
}

// ---------------------------------------------------------------------------
// Source without an intersection form draws nothing.
// ---------------------------------------------------------------------------

func TestE2ECommentsOnly(t *testing.T) {
	app := NewApp()
	for _, src := range []string{
		";; just a comment",
		"  ;; comment\n\n  ;; another\n  ",
		"(def road-width 7)",
	} {
		result := app.Evaluate(src)
		if len(result.Errors) != 0 || len(result.Meshes) != 0 {
			t.Errorf("source %q: got %d errors, %d meshes; want none",
				src, len(result.Errors), len(result.Meshes))
		}
	}
}

// ---------------------------------------------------------------------------
// Invalid dimensions are reported as errors, not panics.
// ---------------------------------------------------------------------------

func TestE2EInvalidDimensions(t *testing.T) {
	app := NewApp()
	sources := map[string]string{
		"zero size":      `(intersection :size (vec2 0 12))`,
		"negative depth": `(intersection :footpaths (footpaths :east -1))`,
		"negative curb":  `(intersection :curb (curb :gutter-width -0.5))`,
	}
	for name, src := range sources {
		result := app.Evaluate(src)
		if len(result.Errors) == 0 {
			t.Errorf("%s: expected an error", name)
			continue
		}
		if !strings.Contains(result.Errors[0].Message, "invalid intersection config") {
			t.Errorf("%s: error %q does not name the config as invalid", name, result.Errors[0].Message)
		}
		if len(result.Meshes) != 0 {
			t.Errorf("%s: expected 0 meshes, got %d", name, len(result.Meshes))
		}
	}
}

// ---------------------------------------------------------------------------
// Skipped regions and advisory findings surface as warnings.
// ---------------------------------------------------------------------------

func TestE2EDegenerateCoreWarns(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(intersection :corner-size (vec2 5.8 5.8))`)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "road core") {
		t.Errorf("warnings = %v, want one road core warning", result.Warnings)
	}
	if len(result.Meshes) == 0 {
		t.Error("corners should still be emitted")
	}
}

func TestE2ERaisedRoadWarns(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(intersection :road-height 0.1)`)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "road height") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want a road height warning", result.Warnings)
	}
}

// ---------------------------------------------------------------------------
// Rapid evaluation (debounce simulation): no panics.
// ---------------------------------------------------------------------------

func TestE2ERapidEvaluationAlternating(t *testing.T) {
	// Calls are sequential: zygomys keeps global state that is not safe for
	// concurrent sandbox creation. The engine mutex serializes calls anyway.
	app := NewApp()

	sources := []string{
		`(intersection)`,
		`(intersection :connect`,
		``,
		`(intersection :connect :north)`,
		`(intersection :lanes 4)`,
		`;; just a comment`,
		`(intersection :connect (list :east :west) :size (vec2 20 10))`,
		`(undefined-func 1 2 3)`,
		`(intersection :connect :none)`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, source, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}

	// The engine recovers cleanly after errors.
	result := app.Evaluate(`(intersection :connect (list :north :south))`)
	if len(result.Errors) != 0 || result.Topology != "straight" {
		t.Errorf("after errors: topology %q, errors %v", result.Topology, result.Errors)
	}
}

// ---------------------------------------------------------------------------
// Large sites tessellate without trouble.
// ---------------------------------------------------------------------------

func TestE2ELargeDimensions(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(intersection :size (vec2 400 250) :corner-size (vec2 40 30))`)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	for _, m := range result.Meshes {
		for i, v := range m.Vertices {
			if v > 250 || v < -250 {
				t.Fatalf("surface %s vertex component %d = %v outside the pivot-centred site", m.Surface, i, v)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Build binding: direct config, no Lisp.
// ---------------------------------------------------------------------------

func TestBuildMatchesEvaluate(t *testing.T) {
	app := NewApp()

	fromLisp := app.Evaluate(`(intersection :connect (list :north :east :south))`)
	direct := app.Build(intersection.DefaultConfig().WithConnections(true, true, true, false))

	if fromLisp.Topology != direct.Topology {
		t.Errorf("topology %q != %q", fromLisp.Topology, direct.Topology)
	}
	if len(fromLisp.Meshes) != len(direct.Meshes) {
		t.Fatalf("mesh count %d != %d", len(fromLisp.Meshes), len(direct.Meshes))
	}
	for i := range direct.Meshes {
		if len(fromLisp.Meshes[i].Vertices) != len(direct.Meshes[i].Vertices) {
			t.Errorf("mesh %d vertex count differs", i)
		}
	}
}

func TestDefaultConfigBinding(t *testing.T) {
	app := NewApp()
	if got := app.DefaultConfig(); got != intersection.DefaultConfig() {
		t.Errorf("DefaultConfig() = %+v", got)
	}
}
