package distribution

// Entry is a single weighted item in a distribution: an LDraw part number
// or an LDraw color code, with a relative sampling weight.
type Entry struct {
	ID     string  `json:"id"`     // LDraw part number or color code
	Name   string  `json:"name"`   // human-readable name
	Weight float64 `json:"weight"` // relative frequency, >= 0
}

// PlacementRequest is one sampled (part, color) pair. It is the unit of
// output handed to the downstream import/placement stage.
type PlacementRequest struct {
	PartID  string `json:"part_id"`
	ColorID string `json:"color_id"`
}

// Config is the unit of configuration for one sampling layer: a part
// distribution, a color distribution, how many pieces to generate, and an
// optional seed. Given the seed it fully determines the generated pairs.
type Config struct {
	Parts       *Distribution `json:"parts"`
	Colors      *Distribution `json:"colors"`
	TotalPieces int           `json:"total_pieces"`
	Seed        *int64        `json:"seed,omitempty"`
}
