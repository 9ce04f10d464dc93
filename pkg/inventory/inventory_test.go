package inventory

import (
	"testing"

	"github.com/bricklab/brickscope/pkg/distribution"
)

func TestBuildGroupsDuplicates(t *testing.T) {
	requests := []distribution.PlacementRequest{
		{PartID: "3001", ColorID: "4"},
		{PartID: "3003", ColorID: "1"},
		{PartID: "3001", ColorID: "4"},
		{PartID: "3001", ColorID: "1"},
		{PartID: "3001", ColorID: "4"},
	}
	plan := Build(requests)

	want := []Combo{
		{PartID: "3001", ColorID: "4", Count: 3},
		{PartID: "3003", ColorID: "1", Count: 1},
		{PartID: "3001", ColorID: "1", Count: 1},
	}
	if len(plan.Combos) != len(want) {
		t.Fatalf("got %d combos, want %d", len(plan.Combos), len(want))
	}
	for i, c := range plan.Combos {
		if c != want[i] {
			t.Errorf("combo %d = %+v, want %+v (first-seen order)", i, c, want[i])
		}
	}
	if plan.Total != 5 {
		t.Errorf("total = %d, want 5", plan.Total)
	}
}

func TestBuildEmpty(t *testing.T) {
	plan := Build(nil)
	if len(plan.Combos) != 0 || plan.Total != 0 {
		t.Errorf("empty input produced %+v", plan)
	}
}

func TestStats(t *testing.T) {
	requests := []distribution.PlacementRequest{
		{PartID: "3001", ColorID: "4"},
		{PartID: "3001", ColorID: "1"},
		{PartID: "3003", ColorID: "4"},
		{PartID: "3003", ColorID: "4"},
	}
	stats := Build(requests).Stats()

	if stats.Combos != 3 {
		t.Errorf("combos = %d, want 3", stats.Combos)
	}
	if stats.UniqueParts != 2 {
		t.Errorf("unique parts = %d, want 2", stats.UniqueParts)
	}
	if stats.UniqueColors != 2 {
		t.Errorf("unique colors = %d, want 2", stats.UniqueColors)
	}
	if stats.TotalPieces != 4 {
		t.Errorf("total pieces = %d, want 4", stats.TotalPieces)
	}
}
