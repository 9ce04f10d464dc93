// Package region defines the abstract scatter-region interface.
// Implementations (sdfx-backed solids) provide containment tests and
// bounds behind this interface. The abstraction keeps the scatter
// planner independent of the geometry backend.
package region

// Vec3 is a point or Euler rotation in scene space (units follow the
// host tool; the original pipeline works in Blender meters).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Region is a bounded volume that placement points are scattered into.
type Region interface {
	// Contains reports whether the point lies inside the region.
	Contains(p Vec3) bool
	// Bounds returns the axis-aligned bounding box.
	Bounds() (min, max Vec3)
}
