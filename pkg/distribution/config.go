package distribution

import (
	"encoding/json"
	"fmt"
	"os"
)

// NewConfig returns a config with empty distributions and the given piece
// count. Seed is left unset; callers that need reproducibility assign one.
func NewConfig(totalPieces int) *Config {
	return &Config{
		Parts:       New(),
		Colors:      New(),
		TotalPieces: totalPieces,
	}
}

// WithSeed sets the seed and returns the config for chaining.
func (c *Config) WithSeed(seed int64) *Config {
	c.Seed = &seed
	return c
}

// Validate checks the config without sampling: both distributions must be
// structurally valid and the piece count must be positive.
func (c *Config) Validate() error {
	if c.Parts == nil || c.Colors == nil {
		return configErrorf("config", "parts and colors distributions must be set")
	}
	if c.TotalPieces <= 0 {
		return configErrorf("config", "total_pieces must be positive, got %d", c.TotalPieces)
	}
	if err := c.Parts.Validate(); err != nil {
		return fmt.Errorf("parts: %w", err)
	}
	if err := c.Colors.Validate(); err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	return nil
}

// GeneratePairs samples TotalPieces placement requests: one independent
// part draw and one independent color draw per request. The part stream is
// seeded with the config seed and the color stream with seed+1, so the two
// dimensions stay independent while the whole result is a function of one
// seed. Seed must be set; unseeded configs are resolved by the caller
// (shell or batch driver), never inside the library.
func (c *Config) GeneratePairs() ([]PlacementRequest, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Seed == nil {
		return nil, configErrorf("config", "seed is not set")
	}

	partIDs, err := c.Parts.Sample(c.TotalPieces, NewSource(*c.Seed))
	if err != nil {
		return nil, fmt.Errorf("parts: %w", err)
	}
	colorIDs, err := c.Colors.Sample(c.TotalPieces, NewSource(*c.Seed+1))
	if err != nil {
		return nil, fmt.Errorf("colors: %w", err)
	}

	pairs := make([]PlacementRequest, c.TotalPieces)
	for i := range pairs {
		pairs[i] = PlacementRequest{PartID: partIDs[i], ColorID: colorIDs[i]}
	}
	return pairs, nil
}

// Save writes the config as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a config from a JSON file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if c.Parts == nil {
		c.Parts = New()
	}
	if c.Colors == nil {
		c.Colors = New()
	}
	return &c, nil
}
