// Package batch drives dataset generation: many scenes, each sampled
// from the same configuration with its own derived seed, fanned out over
// parallel workers. Every worker owns its random sources, so the batch is
// reproducible from the base seed regardless of worker count or
// scheduling.
package batch

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/bricklab/brickscope/pkg/distribution"
	"github.com/bricklab/brickscope/pkg/recipe"
)

// GenerateFunc produces one scene's placement requests from a seed. It
// must be safe for concurrent calls and must not share mutable state
// between calls.
type GenerateFunc func(seed int64) ([]distribution.PlacementRequest, error)

// Config describes a batch run.
type Config struct {
	Scenes   int   // number of scenes to generate
	Workers  int   // parallel workers; <= 0 means GOMAXPROCS
	BaseSeed int64 // scene i uses distribution.DeriveSeed(BaseSeed, i)
	Generate GenerateFunc
}

// SceneResult is the outcome for one scene index. A scene with a
// configuration error carries Err and no requests; the batch continues
// past it.
type SceneResult struct {
	Index    int
	Seed     int64
	Requests []distribution.PlacementRequest
	Err      error
}

// Result holds all scene results in index order.
type Result struct {
	Scenes []SceneResult
	Failed int
}

// Run generates cfg.Scenes scenes. Per-scene configuration errors are
// recorded and skipped rather than aborting the batch; only an invalid
// batch config itself returns an error.
func Run(cfg Config) (*Result, error) {
	if cfg.Generate == nil {
		return nil, &distribution.ConfigError{Op: "batch", Message: "no generate function"}
	}
	if cfg.Scenes < 0 {
		return nil, &distribution.ConfigError{
			Op:      "batch",
			Message: fmt.Sprintf("negative scene count %d", cfg.Scenes),
		}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > cfg.Scenes {
		workers = cfg.Scenes
	}

	result := &Result{Scenes: make([]SceneResult, cfg.Scenes)}
	if cfg.Scenes == 0 {
		return result, nil
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				seed := distribution.DeriveSeed(cfg.BaseSeed, int64(i))
				requests, err := cfg.Generate(seed)
				// Each worker writes only its own index; no lock needed.
				result.Scenes[i] = SceneResult{Index: i, Seed: seed, Requests: requests, Err: err}
			}
		}()
	}
	for i := 0; i < cfg.Scenes; i++ {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	for _, s := range result.Scenes {
		if s.Err != nil {
			result.Failed++
		}
	}
	return result, nil
}

// FromConfig adapts a distribution config into a GenerateFunc: each scene
// samples the same distributions with its own seed.
func FromConfig(c *distribution.Config) GenerateFunc {
	return func(seed int64) ([]distribution.PlacementRequest, error) {
		scene := *c
		scene.Seed = &seed
		return scene.GeneratePairs()
	}
}

// FromScene adapts an evaluated recipe scene into a GenerateFunc. The
// scene seed is replaced per call; layers with explicit seeds keep them,
// which pins those layers to identical content across the batch.
func FromScene(s *recipe.Scene) GenerateFunc {
	return func(seed int64) ([]distribution.PlacementRequest, error) {
		scene := *s
		scene.Seed = &seed
		return scene.Compose()
	}
}
