package distribution

import (
	"path/filepath"
	"testing"
)

func testConfig(seed int64) *Config {
	c := NewConfig(3)
	c.Parts.Add("3001", "Brick 2x4", 1.0)
	c.Parts.Add("3003", "Brick 2x2", 0.5)
	c.Colors.Add("4", "Red", 1.0)
	return c.WithSeed(seed)
}

func TestGeneratePairsLengthAndColors(t *testing.T) {
	pairs, err := testConfig(11).GeneratePairs()
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 3 {
		t.Fatalf("got %d pairs, want 3", len(pairs))
	}
	for i, p := range pairs {
		if p.ColorID != "4" {
			t.Errorf("pair %d color = %q, want 4 (only color)", i, p.ColorID)
		}
		if p.PartID != "3001" && p.PartID != "3003" {
			t.Errorf("pair %d part = %q, not in distribution", i, p.PartID)
		}
	}
}

func TestGeneratePairsDeterminism(t *testing.T) {
	first, err := testConfig(11).GeneratePairs()
	if err != nil {
		t.Fatal(err)
	}
	second, err := testConfig(11).GeneratePairs()
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pair %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGeneratePairsRequiresSeed(t *testing.T) {
	c := NewConfig(3)
	c.Parts.Add("3001", "Brick 2x4", 1.0)
	c.Colors.Add("4", "Red", 1.0)

	pairs, err := c.GeneratePairs()
	if err == nil {
		t.Fatal("expected error for unseeded config")
	}
	if !IsConfigError(err) {
		t.Errorf("expected ConfigError, got %T: %v", err, err)
	}
	if pairs != nil {
		t.Error("failed call should return no partial output")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"zero total", testConfigWithTotal(0)},
		{"negative total", testConfigWithTotal(-5)},
		{"nil distributions", &Config{TotalPieces: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func testConfigWithTotal(total int) *Config {
	c := NewConfig(total)
	c.Parts.Add("3001", "Brick 2x4", 1.0)
	c.Colors.Add("4", "Red", 1.0)
	return c
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	orig := testConfig(42)
	if err := orig.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.TotalPieces != 3 {
		t.Errorf("total_pieces = %d, want 3", loaded.TotalPieces)
	}
	if loaded.Seed == nil || *loaded.Seed != 42 {
		t.Errorf("seed = %v, want 42", loaded.Seed)
	}
	if loaded.Parts.Len() != 2 || loaded.Colors.Len() != 1 {
		t.Errorf("loaded %d parts and %d colors, want 2 and 1", loaded.Parts.Len(), loaded.Colors.Len())
	}

	// The loaded config reproduces the original's output exactly.
	origPairs, err := orig.GeneratePairs()
	if err != nil {
		t.Fatal(err)
	}
	loadedPairs, err := loaded.GeneratePairs()
	if err != nil {
		t.Fatal(err)
	}
	for i := range origPairs {
		if origPairs[i] != loadedPairs[i] {
			t.Fatalf("pair %d differs after round trip", i)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
