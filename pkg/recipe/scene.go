package recipe

import (
	"github.com/bricklab/brickscope/pkg/compose"
	"github.com/bricklab/brickscope/pkg/distribution"
)

// Mode selects how a multi-layer scene combines its layers. The mode is
// always declared explicitly in the recipe; it is never inferred from
// which layer fields are populated.
type Mode int

const (
	ModeFixed    Mode = iota // per-layer counts are authoritative
	ModeWeighted             // scene total allocated across layer weights
)

func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeWeighted:
		return "weighted"
	default:
		return "unknown"
	}
}

// Scene is the result of evaluating a recipe: either a bare part/color
// config (no layers) or a stack of layers with a composition mode.
type Scene struct {
	Parts       *distribution.Distribution
	Colors      *distribution.Distribution
	Layers      []compose.Layer
	Mode        Mode
	TotalPieces int
	Seed        *int64
}

// Compose produces the scene's placement requests.
//
// With no layers the scene is a single distribution config and samples
// TotalPieces pairs directly. With layers, unseeded layers get a seed
// derived from the scene seed and their declaration index, so one scene
// seed reproduces the whole stack; explicitly seeded layers keep their
// own seed.
func (s *Scene) Compose() ([]distribution.PlacementRequest, error) {
	if len(s.Layers) == 0 {
		cfg := &distribution.Config{
			Parts:       s.Parts,
			Colors:      s.Colors,
			TotalPieces: s.TotalPieces,
			Seed:        s.Seed,
		}
		return cfg.GeneratePairs()
	}

	layers := make([]compose.Layer, len(s.Layers))
	copy(layers, s.Layers)
	for i := range layers {
		if layers[i].Seed == nil {
			if s.Seed == nil {
				return nil, &distribution.ConfigError{
					Op:      "scene",
					Message: "layer " + layers[i].Name + " has no seed and the scene seed is not set",
				}
			}
			derived := distribution.DeriveSeed(*s.Seed, int64(i))
			layers[i].Seed = &derived
		}
	}

	switch s.Mode {
	case ModeWeighted:
		return compose.Weighted(layers, s.TotalPieces)
	default:
		return compose.Fixed(layers)
	}
}
