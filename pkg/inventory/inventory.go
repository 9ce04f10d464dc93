// Package inventory groups a sampled scene into unique part+color
// combinations. The downstream importer imports each combination once and
// instances the rest, so the import plan is what it actually consumes.
package inventory

import "github.com/bricklab/brickscope/pkg/distribution"

// Combo is one unique (part, color) combination and how many instances
// of it the scene needs.
type Combo struct {
	PartID  string `json:"part_id"`
	ColorID string `json:"color_id"`
	Count   int    `json:"count"`
}

// Plan is the import plan for one scene: unique combos in first-seen
// order. The order is deterministic because the sample it was built from
// is.
type Plan struct {
	Combos []Combo `json:"combos"`
	Total  int     `json:"total"`
}

// Stats summarizes an import plan for display and logging.
type Stats struct {
	Combos       int `json:"combos"`
	UniqueParts  int `json:"unique_parts"`
	UniqueColors int `json:"unique_colors"`
	TotalPieces  int `json:"total_pieces"`
}

// Build groups requests into unique combos, preserving first-seen order.
func Build(requests []distribution.PlacementRequest) Plan {
	index := make(map[distribution.PlacementRequest]int, len(requests))
	plan := Plan{Total: len(requests)}
	for _, req := range requests {
		if i, ok := index[req]; ok {
			plan.Combos[i].Count++
			continue
		}
		index[req] = len(plan.Combos)
		plan.Combos = append(plan.Combos, Combo{PartID: req.PartID, ColorID: req.ColorID, Count: 1})
	}
	return plan
}

// Stats computes summary counts for the plan.
func (p Plan) Stats() Stats {
	parts := make(map[string]bool)
	colors := make(map[string]bool)
	for _, c := range p.Combos {
		parts[c.PartID] = true
		colors[c.ColorID] = true
	}
	return Stats{
		Combos:       len(p.Combos),
		UniqueParts:  len(parts),
		UniqueColors: len(colors),
		TotalPieces:  p.Total,
	}
}
