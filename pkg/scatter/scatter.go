// Package scatter turns sampled placement requests into concrete
// positions inside a target region. It plans one placement per request,
// in request order, so the downstream importer can instantiate pieces
// without re-deriving anything. Planning is deterministic per seed.
package scatter

import (
	"fmt"
	"math/rand"

	"github.com/bricklab/brickscope/pkg/distribution"
	"github.com/bricklab/brickscope/pkg/region"
)

// Mode selects where placement points land.
type Mode int

const (
	// ModeVolume scatters points anywhere inside the region.
	ModeVolume Mode = iota
	// ModeSurface scatters points on the region's floor plane (z at the
	// bottom of its bounds), for pieces laid out flat before a physics
	// settle pass.
	ModeSurface
)

func (m Mode) String() string {
	switch m {
	case ModeVolume:
		return "volume"
	case ModeSurface:
		return "surface"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name ("volume", "surface") to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "volume":
		return ModeVolume, nil
	case "surface":
		return ModeSurface, nil
	}
	return 0, fmt.Errorf("invalid scatter mode %q, expected volume or surface", name)
}

// Placement is one placed piece: the sampled request plus where it goes.
// Rotation is Euler angles in degrees.
type Placement struct {
	distribution.PlacementRequest
	Position region.Vec3 `json:"position"`
	Rotation region.Vec3 `json:"rotation"`
}

// maxAttempts bounds rejection sampling per point. A region thinner than
// roughly 1/maxAttempts of its bounding box will fail rather than spin.
const maxAttempts = 10000

// Plan assigns a position and yaw rotation to every request. Volume mode
// rejection-samples points against the region's containment test; surface
// mode scatters on the floor plane of the region's bounds. The random
// source is owned by this call; the same requests, region, mode, and seed
// always yield identical placements.
func Plan(requests []distribution.PlacementRequest, r region.Region, mode Mode, rng *rand.Rand) ([]Placement, error) {
	if r == nil {
		return nil, fmt.Errorf("scatter: nil region")
	}
	min, max := r.Bounds()
	if max.X <= min.X || max.Y <= min.Y || max.Z <= min.Z {
		return nil, fmt.Errorf("scatter: region has empty bounds")
	}

	placements := make([]Placement, 0, len(requests))
	for i, req := range requests {
		var p region.Vec3
		var err error
		switch mode {
		case ModeVolume:
			p, err = samplePoint(r, min, max, rng)
		case ModeSurface:
			p = region.Vec3{
				X: min.X + rng.Float64()*(max.X-min.X),
				Y: min.Y + rng.Float64()*(max.Y-min.Y),
				Z: min.Z,
			}
		default:
			return nil, fmt.Errorf("scatter: unknown mode %d", mode)
		}
		if err != nil {
			return nil, fmt.Errorf("scatter: request %d: %w", i, err)
		}

		placements = append(placements, Placement{
			PlacementRequest: req,
			Position:         p,
			// Random yaw only; pieces rest upright until the physics
			// settle pass tumbles them.
			Rotation: region.Vec3{Z: rng.Float64() * 360},
		})
	}
	return placements, nil
}

// samplePoint rejection-samples a point inside the region.
func samplePoint(r region.Region, min, max region.Vec3, rng *rand.Rand) (region.Vec3, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		p := region.Vec3{
			X: min.X + rng.Float64()*(max.X-min.X),
			Y: min.Y + rng.Float64()*(max.Y-min.Y),
			Z: min.Z + rng.Float64()*(max.Z-min.Z),
		}
		if r.Contains(p) {
			return p, nil
		}
	}
	return region.Vec3{}, fmt.Errorf("no point found inside region after %d attempts", maxAttempts)
}
