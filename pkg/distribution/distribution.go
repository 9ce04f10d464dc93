package distribution

import (
	"math"
	"math/rand"
	"sort"
)

// Distribution is an ordered set of weighted entries. Entry order is the
// insertion order and is canonical: sampling maps the random stream onto
// entries in this order, so two distributions with the same entries in the
// same order produce identical samples from the same seed.
type Distribution struct {
	Entries []Entry `json:"items"`
}

// New returns an empty distribution.
func New() *Distribution {
	return &Distribution{}
}

// FromEntries returns a distribution containing the given entries in order.
func FromEntries(entries ...Entry) *Distribution {
	d := New()
	d.Entries = append(d.Entries, entries...)
	return d
}

// Add appends an entry. Negative weights are clamped to zero.
func (d *Distribution) Add(id, name string, weight float64) {
	if weight < 0 {
		weight = 0
	}
	d.Entries = append(d.Entries, Entry{ID: id, Name: name, Weight: weight})
}

// Remove deletes all entries with the given id. It reports whether any
// entry was removed.
func (d *Distribution) Remove(id string) bool {
	kept := d.Entries[:0]
	removed := false
	for _, e := range d.Entries {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	d.Entries = kept
	return removed
}

// Get returns a pointer to the first entry with the given id, or nil.
func (d *Distribution) Get(id string) *Entry {
	for i := range d.Entries {
		if d.Entries[i].ID == id {
			return &d.Entries[i]
		}
	}
	return nil
}

// SetWeight updates the weight of the entry with the given id, clamping
// negative values to zero. It reports whether the entry was found.
func (d *Distribution) SetWeight(id string, weight float64) bool {
	e := d.Get(id)
	if e == nil {
		return false
	}
	if weight < 0 {
		weight = 0
	}
	e.Weight = weight
	return true
}

// Len returns the number of entries.
func (d *Distribution) Len() int {
	return len(d.Entries)
}

// TotalWeight returns the sum of all entry weights.
func (d *Distribution) TotalWeight() float64 {
	var total float64
	for _, e := range d.Entries {
		total += e.Weight
	}
	return total
}

// NormalizedWeights returns each entry's weight divided by the total, in
// entry order. The result is nil when the total weight is zero.
func (d *Distribution) NormalizedWeights() []float64 {
	total := d.TotalWeight()
	if total == 0 {
		return nil
	}
	weights := make([]float64, len(d.Entries))
	for i, e := range d.Entries {
		weights[i] = e.Weight / total
	}
	return weights
}

// ExpectedCounts returns the rounded expected count per entry id for a
// total of n draws. It is advisory (for UI display); rounded counts need
// not sum to n. Returns nil when the total weight is zero.
func (d *Distribution) ExpectedCounts(n int) map[string]int {
	normalized := d.NormalizedWeights()
	if normalized == nil {
		return nil
	}
	counts := make(map[string]int, len(d.Entries))
	for i, e := range d.Entries {
		counts[e.ID] = int(normalized[i]*float64(n) + 0.5)
	}
	return counts
}

// Validate checks the distribution for configuration errors: duplicate
// entry ids and negative or non-finite weights. A valid distribution may
// still be unsamplable (empty, or all weights zero); Sample reports those
// because they only matter when draws are requested.
func (d *Distribution) Validate() error {
	seen := make(map[string]bool, len(d.Entries))
	for _, e := range d.Entries {
		if seen[e.ID] {
			return configErrorf("distribution", "duplicate entry id %q", e.ID)
		}
		seen[e.ID] = true
		if e.Weight < 0 {
			return configErrorf("distribution", "entry %q has negative weight %g", e.ID, e.Weight)
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return configErrorf("distribution", "entry %q has non-finite weight %g", e.ID, e.Weight)
		}
	}
	return nil
}

// Sample draws n independent entries with replacement, each selected with
// probability weight/total. The returned slice holds entry IDs in draw
// order. n == 0 returns an empty slice. The random source is the only
// state mutated; callers that need reproducibility must own the source.
func (d *Distribution) Sample(n int, rng *rand.Rand) ([]string, error) {
	if n < 0 {
		return nil, configErrorf("sample", "negative sample count %d", n)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if n == 0 {
		return []string{}, nil
	}
	if len(d.Entries) == 0 {
		return nil, configErrorf("sample", "distribution has no entries")
	}

	// Cumulative weights in entry order; binary search per draw.
	cumulative := make([]float64, len(d.Entries))
	var total float64
	for i, e := range d.Entries {
		total += e.Weight
		cumulative[i] = total
	}
	if total == 0 {
		return nil, configErrorf("sample", "all entry weights are zero")
	}

	ids := make([]string, n)
	for i := 0; i < n; i++ {
		x := rng.Float64() * total
		// First index whose cumulative weight exceeds x. Zero-weight
		// entries occupy zero-width intervals and are never selected.
		j := sort.SearchFloat64s(cumulative, x)
		for j < len(cumulative) && cumulative[j] == x {
			j++
		}
		if j >= len(cumulative) {
			j = len(cumulative) - 1
		}
		ids[i] = d.Entries[j].ID
	}
	return ids, nil
}
