package sdfx

import (
	"testing"

	"github.com/bricklab/brickscope/pkg/region"
)

func TestBoxContains(t *testing.T) {
	box := Box(4, 4, 2)

	inside := []region.Vec3{
		{X: 2, Y: 2, Z: 1},
		{X: 0.1, Y: 0.1, Z: 0.1},
		{X: 3.9, Y: 3.9, Z: 1.9},
	}
	for _, p := range inside {
		if !box.Contains(p) {
			t.Errorf("point %+v should be inside 4x4x2 box", p)
		}
	}

	outside := []region.Vec3{
		{X: -1, Y: 2, Z: 1},
		{X: 2, Y: 2, Z: 3},
		{X: 5, Y: 5, Z: 5},
	}
	for _, p := range outside {
		if box.Contains(p) {
			t.Errorf("point %+v should be outside 4x4x2 box", p)
		}
	}
}

func TestBoxBounds(t *testing.T) {
	min, max := Box(4, 6, 2).Bounds()
	approx := func(got, want float64) bool {
		d := got - want
		return d < 1e-9 && d > -1e-9
	}
	if !approx(min.X, 0) || !approx(min.Y, 0) || !approx(min.Z, 0) {
		t.Errorf("min = %+v, want origin", min)
	}
	if !approx(max.X, 4) || !approx(max.Y, 6) || !approx(max.Z, 2) {
		t.Errorf("max = %+v, want (4,6,2)", max)
	}
}

func TestCylinderContains(t *testing.T) {
	cyl := Cylinder(2, 1)

	if !cyl.Contains(region.Vec3{X: 0, Y: 0, Z: 1}) {
		t.Error("axis midpoint should be inside cylinder")
	}
	if cyl.Contains(region.Vec3{X: 1.5, Y: 0, Z: 1}) {
		t.Error("point beyond radius should be outside")
	}
	if cyl.Contains(region.Vec3{X: 0, Y: 0, Z: -0.5}) {
		t.Error("point below z=0 should be outside")
	}
	if cyl.Contains(region.Vec3{X: 0, Y: 0, Z: 2.5}) {
		t.Error("point above height should be outside")
	}
}

func TestTranslate(t *testing.T) {
	moved := Translate(Box(2, 2, 2), 10, 0, 0)

	if moved.Contains(region.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Error("original position should be empty after translation")
	}
	if !moved.Contains(region.Vec3{X: 11, Y: 1, Z: 1}) {
		t.Error("translated position should contain the point")
	}
}
