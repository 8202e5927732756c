package main

import (
	"context"

	"github.com/chazu/crossing/internal/logger"
	"github.com/chazu/crossing/pkg/engine"
	"github.com/chazu/crossing/pkg/intersection"
	"github.com/chazu/crossing/pkg/tessellate"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Colors   []float32 `json:"colors"`
	Indices  []uint32  `json:"indices"`
	Surface  string    `json:"surface"`
	Color    string    `json:"color"`
}

// MessageData is a JSON-serializable error or warning for the frontend.
type MessageData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Topology string         `json:"topology"`
	Meshes   []MeshData     `json:"meshes"`
	Faces    map[string]int `json:"faces"`
	Errors   []MessageData  `json:"errors"`
	Warnings []MessageData  `json:"warnings"`
}

func newResult() EvalResult {
	return EvalResult{
		Meshes:   []MeshData{},
		Faces:    map[string]int{},
		Errors:   []MessageData{},
		Warnings: []MessageData{},
	}
}

// NewApp creates a new App with its own Lisp engine.
func NewApp() *App {
	return &App{engine: engine.NewEngine()}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate takes Lisp source and returns mesh data + errors.
// This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	log := logger.Named("app")

	cfg, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, superseded)
		log.Errorw("evaluate failed", "error", err)
		result := newResult()
		result.Errors = append(result.Errors, MessageData{Message: err.Error()})
		return result
	}

	if len(evalErrs) > 0 {
		result := newResult()
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, MessageData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// No (intersection ...) form yet: nothing to draw.
	if cfg == nil {
		return newResult()
	}
	return a.Build(*cfg)
}

// Build tessellates cfg directly. The frontend's form view calls it
// without going through Lisp.
func (a *App) Build(cfg intersection.Config) EvalResult {
	result := newResult()

	m, res, err := tessellate.FromConfig(cfg)
	if err != nil {
		logger.Named("app").Warnw("build failed", "error", err)
		result.Errors = append(result.Errors, MessageData{Message: err.Error()})
		return result
	}

	result.Topology = m.Topology.String()
	for _, w := range m.Warnings {
		result.Warnings = append(result.Warnings, MessageData{Message: w.String()})
	}
	for _, w := range res.Report.Warnings {
		result.Warnings = append(result.Warnings, MessageData{Message: w.String()})
	}
	for tag, n := range res.Report.Faces {
		result.Faces[tag.String()] = n
	}

	for _, mesh := range res.Meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: mesh.Vertices,
			Normals:  mesh.Normals,
			Colors:   mesh.Colors,
			Indices:  mesh.Indices,
			Surface:  mesh.Surface.String(),
			Color:    mesh.Surface.Color().Hex(),
		})
	}
	return result
}

// DefaultConfig returns the starting configuration for the form view.
func (a *App) DefaultConfig() intersection.Config {
	return intersection.DefaultConfig()
}
