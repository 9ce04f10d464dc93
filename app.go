package main

import (
	"context"
	"log"
	"time"

	"github.com/bricklab/brickscope/pkg/compose"
	"github.com/bricklab/brickscope/pkg/distribution"
	"github.com/bricklab/brickscope/pkg/inventory"
	"github.com/bricklab/brickscope/pkg/recipe"
	regionsdfx "github.com/bricklab/brickscope/pkg/region/sdfx"
	"github.com/bricklab/brickscope/pkg/scatter"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *recipe.Engine
}

// ConfigData is the JSON-serializable distribution config edited by the
// frontend. Seed 0 means "pick a random seed"; the actual seed used is
// echoed back in results so a generated scene can be reproduced.
type ConfigData struct {
	Parts       []distribution.Entry `json:"parts"`
	Colors      []distribution.Entry `json:"colors"`
	TotalPieces int                  `json:"totalPieces"`
	Seed        int64                `json:"seed"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// SampleResult is the full result of a sampling call returned to the
// frontend.
type SampleResult struct {
	Requests []distribution.PlacementRequest `json:"requests"`
	Stats    inventory.Stats                 `json:"stats"`
	Seed     int64                           `json:"seed"`
	Errors   []string                        `json:"errors"`
}

// RecipeResult is the full result of a recipe evaluation.
type RecipeResult struct {
	Requests []distribution.PlacementRequest `json:"requests"`
	Stats    inventory.Stats                 `json:"stats"`
	Errors   []EvalErrorData                 `json:"errors"`
	Warnings []string                        `json:"warnings"`
}

// ScatterResult carries placement positions for the 3D preview.
type ScatterResult struct {
	Placements []scatter.Placement `json:"placements"`
	Errors     []string            `json:"errors"`
}

// NewApp creates a new App with a recipe engine.
func NewApp() *App {
	return &App{
		engine: recipe.NewEngine(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Defaults returns the stock bucket configuration: common parts and
// colors with their default weights, mirroring the presets an operator
// loads before tweaking sliders.
func (a *App) Defaults() ConfigData {
	return ConfigData{
		Parts:       distribution.CommonParts().Entries,
		Colors:      distribution.CommonColors().Entries,
		TotalPieces: 100,
	}
}

// Sample generates placement requests from an edited config. This is the
// primary binding behind the "generate" button.
func (a *App) Sample(data ConfigData) SampleResult {
	result := SampleResult{
		Requests: []distribution.PlacementRequest{},
		Errors:   []string{},
	}

	seed := data.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	result.Seed = seed

	cfg := &distribution.Config{
		Parts:       distribution.FromEntries(data.Parts...),
		Colors:      distribution.FromEntries(data.Colors...),
		TotalPieces: data.TotalPieces,
		Seed:        &seed,
	}

	requests, err := cfg.GeneratePairs()
	if err != nil {
		log.Printf("Sample error: %v", err)
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Requests = requests
	result.Stats = inventory.Build(requests).Stats()
	return result
}

// EvaluateRecipe takes recipe source and returns the composed scene.
// This is the binding called by the frontend recipe editor.
func (a *App) EvaluateRecipe(source string) RecipeResult {
	result := RecipeResult{
		Requests: []distribution.PlacementRequest{},
		Errors:   []EvalErrorData{},
		Warnings: []string{},
	}

	scene, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("EvaluateRecipe fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	if warnings, err := compose.ValidateLayers(scene.Layers); err == nil {
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, w.Message)
		}
	}

	requests, err := scene.Compose()
	if err != nil {
		log.Printf("Compose error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	result.Requests = requests
	result.Stats = inventory.Build(requests).Stats()
	return result
}

// ScatterPreview places requests inside a box region of the given
// dimensions for the frontend's 3D preview. Mode is "volume" or
// "surface".
func (a *App) ScatterPreview(requests []distribution.PlacementRequest, width, depth, height float64, mode string, seed int64) ScatterResult {
	result := ScatterResult{
		Placements: []scatter.Placement{},
		Errors:     []string{},
	}

	m, err := scatter.ParseMode(mode)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if width <= 0 || depth <= 0 || height <= 0 {
		result.Errors = append(result.Errors, "region dimensions must be positive")
		return result
	}

	placements, err := scatter.Plan(requests, regionsdfx.Box(width, depth, height), m, distribution.NewSource(seed))
	if err != nil {
		log.Printf("ScatterPreview error: %v", err)
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Placements = placements
	return result
}
