// brickgen generates synthetic scene plans in batch: it samples N scenes
// from a distribution config or recipe, optionally scatters them into a
// box region, and writes one plan JSON per scene for the downstream
// importer.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bricklab/brickscope/pkg/batch"
	"github.com/bricklab/brickscope/pkg/distribution"
	"github.com/bricklab/brickscope/pkg/inventory"
	"github.com/bricklab/brickscope/pkg/recipe"
	regionsdfx "github.com/bricklab/brickscope/pkg/region/sdfx"
	"github.com/bricklab/brickscope/pkg/scatter"
)

// scenePlan is the artifact written per scene, consumed by the import/
// placement stage.
type scenePlan struct {
	SceneIndex int                             `json:"scene_index"`
	Seed       int64                           `json:"seed"`
	Requests   []distribution.PlacementRequest `json:"requests"`
	Placements []scatter.Placement             `json:"placements,omitempty"`
	Inventory  inventory.Plan                  `json:"inventory"`
}

func main() {
	var (
		configPath  = flag.String("config", "", "distribution config JSON file")
		recipePath  = flag.String("recipe", "", "scene recipe file (alternative to -config)")
		scenes      = flag.Int("scenes", 1, "number of scenes to generate")
		baseSeed    = flag.Int64("seed", 1, "base seed; scene seeds are derived from it")
		workers     = flag.Int("workers", 0, "parallel workers (0 = all CPUs)")
		outDir      = flag.String("out", "out", "output directory for scene plans")
		scatterMode = flag.String("scatter", "", "scatter placements: volume, surface, or empty to skip")
		regionDims  = flag.String("region", "4x4x2", "box region dimensions WxDxH")
	)
	flag.Parse()

	generate, err := buildGenerator(*configPath, *recipePath)
	if err != nil {
		log.Fatalf("brickgen: %v", err)
	}

	result, err := batch.Run(batch.Config{
		Scenes:   *scenes,
		Workers:  *workers,
		BaseSeed: *baseSeed,
		Generate: generate,
	})
	if err != nil {
		log.Fatalf("brickgen: %v", err)
	}

	var mode scatter.Mode
	if *scatterMode != "" {
		mode, err = scatter.ParseMode(*scatterMode)
		if err != nil {
			log.Fatalf("brickgen: %v", err)
		}
	}
	var w, d, h float64
	if *scatterMode != "" {
		if _, err := fmt.Sscanf(*regionDims, "%fx%fx%f", &w, &d, &h); err != nil {
			log.Fatalf("brickgen: invalid -region %q: %v", *regionDims, err)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("brickgen: %v", err)
	}

	written := 0
	for _, s := range result.Scenes {
		if s.Err != nil {
			log.Printf("scene %d (seed %d): skipped: %v", s.Index, s.Seed, s.Err)
			continue
		}

		plan := scenePlan{
			SceneIndex: s.Index,
			Seed:       s.Seed,
			Requests:   s.Requests,
			Inventory:  inventory.Build(s.Requests),
		}
		if *scatterMode != "" {
			placements, err := scatter.Plan(s.Requests, regionsdfx.Box(w, d, h), mode, distribution.NewSource(s.Seed))
			if err != nil {
				log.Printf("scene %d: scatter failed: %v", s.Index, err)
				continue
			}
			plan.Placements = placements
		}

		path := filepath.Join(*outDir, fmt.Sprintf("scene_%04d.json", s.Index))
		if err := writePlan(path, plan); err != nil {
			log.Fatalf("brickgen: %v", err)
		}
		written++
	}

	log.Printf("wrote %d of %d scene plans to %s (%d failed)", written, *scenes, *outDir, result.Failed)
}

// buildGenerator loads the scene source: exactly one of -config or
// -recipe must be given.
func buildGenerator(configPath, recipePath string) (batch.GenerateFunc, error) {
	switch {
	case configPath != "" && recipePath != "":
		return nil, fmt.Errorf("use either -config or -recipe, not both")

	case configPath != "":
		cfg, err := distribution.Load(configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return batch.FromConfig(cfg), nil

	case recipePath != "":
		source, err := os.ReadFile(recipePath)
		if err != nil {
			return nil, err
		}
		scene, evalErrs, err := recipe.NewEngine().Evaluate(string(source))
		if err != nil {
			return nil, err
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				log.Printf("%s: %s", recipePath, e.Error())
			}
			return nil, fmt.Errorf("recipe has %d errors", len(evalErrs))
		}
		return batch.FromScene(scene), nil

	default:
		return nil, fmt.Errorf("one of -config or -recipe is required")
	}
}

func writePlan(path string, plan scenePlan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
