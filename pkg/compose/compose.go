// Package compose merges one or more weighted sampling layers into a
// single ordered list of placement requests. It offers two explicit
// modes: fixed per-layer counts, and weight-driven allocation of a global
// piece count. The mode is chosen by the caller through the entry point,
// never inferred from which fields happen to be populated.
package compose

import (
	"fmt"
	"math"
	"sort"

	"github.com/bricklab/brickscope/pkg/distribution"
)

// Layer is one named, independently seeded sampling unit. Count fixes how
// many requests the layer contributes in fixed mode; Weight scales its
// share in weighted mode (and is documentary in fixed mode).
type Layer struct {
	Name   string                     `json:"name"`
	Parts  *distribution.Distribution `json:"parts"`
	Colors *distribution.Distribution `json:"colors"`
	Count  int                        `json:"count"`
	Weight float64                    `json:"weight"`
	Seed   *int64                     `json:"seed,omitempty"`
}

// Warning is a non-blocking advisory finding about a layer set.
type Warning struct {
	Layer   string
	Message string
}

// ValidateLayers checks a layer set before composition. It returns
// blocking configuration errors (negative counts, negative weights,
// invalid distributions) and advisory warnings (duplicate layer names).
// Layers are position-identified, so duplicate names are allowed, but two
// same-named layers are never merged.
func ValidateLayers(layers []Layer) ([]Warning, error) {
	var warnings []Warning
	seen := make(map[string]bool, len(layers))
	for i, l := range layers {
		if l.Count < 0 {
			return nil, &distribution.ConfigError{
				Op:      "compose",
				Message: fmt.Sprintf("layer %q has negative count %d", l.Name, l.Count),
			}
		}
		if l.Weight < 0 {
			return nil, &distribution.ConfigError{
				Op:      "compose",
				Message: fmt.Sprintf("layer %q has negative weight %g", l.Name, l.Weight),
			}
		}
		if math.IsNaN(l.Weight) || math.IsInf(l.Weight, 0) {
			return nil, &distribution.ConfigError{
				Op:      "compose",
				Message: fmt.Sprintf("layer %q has non-finite weight %g", l.Name, l.Weight),
			}
		}
		if l.Parts == nil || l.Colors == nil {
			return nil, &distribution.ConfigError{
				Op:      "compose",
				Message: fmt.Sprintf("layer %q is missing a parts or colors distribution", l.Name),
			}
		}
		if err := l.Parts.Validate(); err != nil {
			return nil, fmt.Errorf("layer %q parts: %w", l.Name, err)
		}
		if err := l.Colors.Validate(); err != nil {
			return nil, fmt.Errorf("layer %q colors: %w", l.Name, err)
		}
		if l.Name != "" && seen[l.Name] {
			warnings = append(warnings, Warning{
				Layer:   l.Name,
				Message: fmt.Sprintf("duplicate layer name %q (layer %d); layers remain separate", l.Name, i),
			})
		}
		seen[l.Name] = true
	}
	return warnings, nil
}

// Fixed composes layers using each layer's own Count as authoritative.
// Output is layer-declaration order, then draw order within a layer; two
// runs with identical layers and seeds produce identical sequences. Layer
// Weight is ignored in this mode.
func Fixed(layers []Layer) ([]distribution.PlacementRequest, error) {
	if _, err := ValidateLayers(layers); err != nil {
		return nil, err
	}

	var total int
	for _, l := range layers {
		total += l.Count
	}
	out := make([]distribution.PlacementRequest, 0, total)

	for i, l := range layers {
		requests, err := sampleLayer(l, l.Count)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%q): %w", i, l.Name, err)
		}
		out = append(out, requests...)
	}
	return out, nil
}

// Weighted composes layers by allocating totalPieces across them in
// proportion to their weights, then sampling each layer with its
// allocated count. Allocation uses the largest-remainder rule, so the
// result length equals totalPieces exactly.
func Weighted(layers []Layer, totalPieces int) ([]distribution.PlacementRequest, error) {
	if totalPieces < 0 {
		return nil, &distribution.ConfigError{
			Op:      "compose",
			Message: fmt.Sprintf("negative total piece count %d", totalPieces),
		}
	}
	if len(layers) == 0 {
		if totalPieces == 0 {
			return []distribution.PlacementRequest{}, nil
		}
		return nil, &distribution.ConfigError{
			Op:      "compose",
			Message: fmt.Sprintf("no layers to allocate %d pieces across", totalPieces),
		}
	}
	if _, err := ValidateLayers(layers); err != nil {
		return nil, err
	}

	weights := make([]float64, len(layers))
	for i, l := range layers {
		weights[i] = l.Weight
	}
	counts, err := Allocate(weights, totalPieces)
	if err != nil {
		return nil, err
	}

	allocated := make([]Layer, len(layers))
	copy(allocated, layers)
	for i := range allocated {
		allocated[i].Count = counts[i]
	}
	return Fixed(allocated)
}

// Allocate apportions total units across weights using the
// largest-remainder rule: each weight gets the floor of its exact
// proportional share, then leftover units go to the largest fractional
// remainders. Ties on remainder are broken by lower index (declaration
// order). The returned counts always sum to total.
func Allocate(weights []float64, total int) ([]int, error) {
	if total < 0 {
		return nil, &distribution.ConfigError{
			Op:      "allocate",
			Message: fmt.Sprintf("negative total %d", total),
		}
	}
	var sum float64
	for i, w := range weights {
		if w < 0 {
			return nil, &distribution.ConfigError{
				Op:      "allocate",
				Message: fmt.Sprintf("negative weight %g at index %d", w, i),
			}
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, &distribution.ConfigError{
				Op:      "allocate",
				Message: fmt.Sprintf("non-finite weight %g at index %d", w, i),
			}
		}
		sum += w
	}
	if sum == 0 {
		if total == 0 {
			return make([]int, len(weights)), nil
		}
		return nil, &distribution.ConfigError{
			Op:      "allocate",
			Message: "all layer weights are zero",
		}
	}

	counts := make([]int, len(weights))
	remainders := make([]float64, len(weights))
	assigned := 0
	for i, w := range weights {
		exact := w / sum * float64(total)
		counts[i] = int(exact)
		remainders[i] = exact - float64(counts[i])
		assigned += counts[i]
	}

	// Distribute leftovers to the largest remainders, lower index first
	// on ties.
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	leftover := total - assigned
	for i := 0; i < leftover; i++ {
		counts[order[i%len(order)]]++
	}

	check := 0
	for _, c := range counts {
		check += c
	}
	if check != total {
		// A mismatch here is a defect in this function, not caller input.
		panic(fmt.Sprintf("compose: allocation invariant violated: allocated %d of %d", check, total))
	}
	return counts, nil
}

// sampleLayer draws count requests from one layer's distributions. The
// part stream uses the layer seed and the color stream seed+1, matching
// single-config pair generation.
func sampleLayer(l Layer, count int) ([]distribution.PlacementRequest, error) {
	// A zero-count layer draws nothing, so it needs no seed.
	if count == 0 {
		return nil, nil
	}
	if l.Seed == nil {
		return nil, &distribution.ConfigError{
			Op:      "compose",
			Message: "layer seed is not set",
		}
	}

	partIDs, err := l.Parts.Sample(count, distribution.NewSource(*l.Seed))
	if err != nil {
		return nil, fmt.Errorf("parts: %w", err)
	}
	colorIDs, err := l.Colors.Sample(count, distribution.NewSource(*l.Seed+1))
	if err != nil {
		return nil, fmt.Errorf("colors: %w", err)
	}

	requests := make([]distribution.PlacementRequest, count)
	for i := range requests {
		requests[i] = distribution.PlacementRequest{PartID: partIDs[i], ColorID: colorIDs[i]}
	}
	return requests, nil
}
