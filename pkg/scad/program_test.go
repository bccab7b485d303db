package scad

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fablab-tools/lbracket/pkg/kernel"
)

func TestBoxSource(t *testing.T) {
	k := New()
	s, err := k.Box(kernel.Vec{Y: -38}, 96, 76, 5)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}

	expected := "translate([0, -38, 0]) cube([96, 76, 5]);"
	if s.(*solid).src != expected {
		t.Errorf("Box source failed:\nexpected %q\ngot      %q", expected, s.(*solid).src)
	}
}

func TestExtrudeSymmetric(t *testing.T) {
	k := New()
	plane := kernel.Plane{
		Origin: kernel.Vec{X: 5, Z: 43},
		UDir:   kernel.Vec{Y: 1},
		Normal: kernel.Vec{X: 1},
	}

	s, err := k.Extrude(plane, []kernel.Point{{}}, 56, 7, true)
	if err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}

	expected := "translate([5, 0, 43]) rotate([0, 90, 0]) cylinder(h=14, d=56, center=true);"
	if s.(*solid).src != expected {
		t.Errorf("Extrude source failed:\nexpected %q\ngot      %q", expected, s.(*solid).src)
	}
}

func TestExtrudeGroupsPoints(t *testing.T) {
	k := New()
	plane := kernel.Plane{
		Origin: kernel.Vec{X: 5, Z: 43},
		UDir:   kernel.Vec{Y: 1},
		Normal: kernel.Vec{X: 1},
	}
	points := []kernel.Point{
		{U: -24.75, V: -24.75},
		{U: -24.75, V: 24.75},
		{U: 24.75, V: -24.75},
		{U: 24.75, V: 24.75},
	}

	s, err := k.Extrude(plane, points, 5, 7, true)
	if err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}

	src := s.(*solid).src
	if !strings.HasPrefix(src, "union() {") {
		t.Errorf("multi-point cutter should be a union block: %q", src)
	}
	if n := strings.Count(src, "cylinder"); n != 4 {
		t.Errorf("expected 4 cylinders, got %d", n)
	}
}

func TestExtrudeRejectsDiagonalNormal(t *testing.T) {
	k := New()
	plane := kernel.Plane{
		UDir:   kernel.Vec{Y: 1},
		Normal: kernel.Vec{X: 1, Z: 1},
	}
	if _, err := k.Extrude(plane, []kernel.Point{{}}, 5, 7, true); err == nil {
		t.Error("expected error for non-principal plane normal")
	}
}

func TestExportScadFile(t *testing.T) {
	k := New()

	box, err := k.Box(kernel.Vec{Y: -10}, 40, 20, 5)
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	face := kernel.Plane{
		Origin: kernel.Vec{X: 20, Z: 5},
		UDir:   kernel.Vec{X: 1},
		Normal: kernel.Vec{Z: 1},
	}
	drilled, err := k.Drill(box, face, []kernel.Point{{U: -10}, {U: 10}}, 4, 5)
	if err != nil {
		t.Fatalf("Drill failed: %v", err)
	}

	// Parent directory must be created on demand
	path := filepath.Join(t.TempDir(), "nested", "plate.scad")
	if err := k.Export(drilled, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export failed: %v", err)
	}
	program := string(data)
	if len(program) == 0 {
		t.Fatal("exported program is empty")
	}
	for _, want := range []string{"$fn = 64;", "difference()", "cube(", "cylinder("} {
		if !strings.Contains(program, want) {
			t.Errorf("program missing %q:\n%s", want, program)
		}
	}
	if n := strings.Count(program, "cylinder"); n != 2 {
		t.Errorf("expected 2 drilled holes, got %d", n)
	}
}

func TestRenderRequiresOpenSCAD(t *testing.T) {
	if _, err := os.Stat("/usr/bin/openscad"); err == nil {
		t.Skip("openscad installed, cannot exercise the missing-binary path")
	}

	err := Render("model.scad", "model.stl")
	if err == nil {
		t.Skip("openscad available on PATH")
	}
	if !strings.Contains(err.Error(), "openscad") {
		t.Errorf("error should mention the missing binary: %v", err)
	}
}
