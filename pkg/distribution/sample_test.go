package distribution

import (
	"math"
	"testing"
)

func TestSampleLength(t *testing.T) {
	d := CommonParts()
	for _, n := range []int{1, 7, 100, 1000} {
		ids, err := d.Sample(n, NewSource(1))
		if err != nil {
			t.Fatalf("Sample(%d) error: %v", n, err)
		}
		if len(ids) != n {
			t.Errorf("Sample(%d) returned %d ids", n, len(ids))
		}
	}
}

func TestSampleZeroCount(t *testing.T) {
	d := CommonParts()
	ids, err := d.Sample(0, NewSource(1))
	if err != nil {
		t.Fatalf("Sample(0) error: %v", err)
	}
	if ids == nil {
		t.Fatal("Sample(0) should return empty slice, not nil")
	}
	if len(ids) != 0 {
		t.Errorf("Sample(0) returned %d ids", len(ids))
	}
}

func TestSampleDeterminism(t *testing.T) {
	d := CommonParts()

	first, err := d.Sample(200, NewSource(42))
	if err != nil {
		t.Fatal(err)
	}
	second, err := d.Sample(200, NewSource(42))
	if err != nil {
		t.Fatal(err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("draw %d differs: %q vs %q", i, first[i], second[i])
		}
	}

	// A different seed is allowed to differ (and virtually always does).
	other, err := d.Sample(200, NewSource(43))
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range first {
		if first[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical 200-draw sequences")
	}
}

func TestSampleErrors(t *testing.T) {
	tests := []struct {
		name string
		dist *Distribution
		n    int
	}{
		{"empty entry set", New(), 5},
		{"all weights zero", FromEntries(Entry{ID: "a", Weight: 0}, Entry{ID: "b", Weight: 0}), 5},
		{"negative count", CommonParts(), -1},
		{"duplicate ids", FromEntries(Entry{ID: "a", Weight: 1}, Entry{ID: "a", Weight: 1}), 5},
		// A NaN weight poisons the cumulative sums: without validation
		// every draw would land on the last entry, so it must be rejected
		// up front rather than silently sampled.
		{"nan weight", FromEntries(Entry{ID: "live", Weight: math.NaN()}, Entry{ID: "dead", Weight: 0}), 5},
		{"infinite weight", FromEntries(Entry{ID: "a", Weight: math.Inf(1)}, Entry{ID: "b", Weight: 1}), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := tt.dist.Sample(tt.n, NewSource(1))
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsConfigError(err) {
				t.Errorf("expected ConfigError, got %T: %v", err, err)
			}
			if ids != nil {
				t.Errorf("failed sample should return no partial output, got %d ids", len(ids))
			}
		})
	}
}

func TestSampleZeroWeightNeverDrawn(t *testing.T) {
	d := FromEntries(
		Entry{ID: "live", Weight: 1.0},
		Entry{ID: "dead", Weight: 0},
		Entry{ID: "also-live", Weight: 0.5},
	)

	ids, err := d.Sample(5000, NewSource(9))
	if err != nil {
		t.Fatal(err)
	}
	for i, id := range ids {
		if id == "dead" {
			t.Fatalf("zero-weight entry drawn at index %d", i)
		}
	}
}

func TestSampleWeightRatio(t *testing.T) {
	// 2:1 weighting should hold over many draws.
	d := FromEntries(
		Entry{ID: "3001", Weight: 1.0},
		Entry{ID: "3003", Weight: 0.5},
	)

	const n = 10000
	ids, err := d.Sample(n, NewSource(7))
	if err != nil {
		t.Fatal(err)
	}

	counts := map[string]int{}
	for _, id := range ids {
		counts[id]++
	}

	ratio := float64(counts["3001"]) / float64(counts["3003"])
	if math.Abs(ratio-2.0) > 0.15 {
		t.Errorf("observed ratio %g over %d draws, want ~2.0 (counts: %v)", ratio, n, counts)
	}
}

func TestSampleRespectsEntryOrder(t *testing.T) {
	// Entry iteration order maps the random stream to outcomes, so two
	// distributions with the same entries in different orders may
	// disagree draw-by-draw, but the same order must always agree.
	a := FromEntries(Entry{ID: "x", Weight: 1}, Entry{ID: "y", Weight: 1})
	b := FromEntries(Entry{ID: "x", Weight: 1}, Entry{ID: "y", Weight: 1})

	idsA, err := a.Sample(64, NewSource(3))
	if err != nil {
		t.Fatal(err)
	}
	idsB, err := b.Sample(64, NewSource(3))
	if err != nil {
		t.Fatal(err)
	}
	for i := range idsA {
		if idsA[i] != idsB[i] {
			t.Fatalf("same entry order and seed diverged at draw %d", i)
		}
	}
}

func TestDeriveSeed(t *testing.T) {
	if DeriveSeed(1, 0) != DeriveSeed(1, 0) {
		t.Error("DeriveSeed is not deterministic")
	}
	if DeriveSeed(1, 0) == DeriveSeed(1, 1) {
		t.Error("adjacent indices should derive different seeds")
	}
	if DeriveSeed(1, 5) == DeriveSeed(2, 5) {
		t.Error("different base seeds should derive different seeds")
	}
}
