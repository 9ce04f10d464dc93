// Package sdfx implements the region.Region interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/bricklab/brickscope/pkg/region"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ region.Region = (*Solid)(nil)

// Solid wraps an sdf.SDF3 to implement region.Region. A point is inside
// the region where the signed distance is non-positive.
type Solid struct {
	s sdf.SDF3
}

// FromSDF3 wraps an arbitrary sdf.SDF3 as a region.
func FromSDF3(s sdf.SDF3) *Solid {
	return &Solid{s: s}
}

// Box creates a box region with the given dimensions. The solid has its
// minimum corner at the origin (0,0,0) so that region placement works
// intuitively alongside floor-plane scattering. sdf.Box3D centers the box
// at the origin, so we translate by half-dimensions.
func Box(x, y, z float64) *Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return &Solid{s: sdf.Transform3D(s, m)}
}

// Cylinder creates a cylinder region with the given height and radius,
// resting on the z=0 plane and centered on the z axis.
func Cylinder(height, radius float64) *Solid {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Cylinder3D: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{Z: height / 2})
	return &Solid{s: sdf.Transform3D(s, m)}
}

// Translate moves a region by (x, y, z).
func Translate(r *Solid, x, y, z float64) *Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return &Solid{s: sdf.Transform3D(r.s, m)}
}

// Contains reports whether the point is inside the solid.
func (r *Solid) Contains(p region.Vec3) bool {
	return r.s.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z}) <= 0
}

// Bounds returns the axis-aligned bounding box.
func (r *Solid) Bounds() (min, max region.Vec3) {
	bb := r.s.BoundingBox()
	min = region.Vec3{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z}
	max = region.Vec3{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z}
	return min, max
}
