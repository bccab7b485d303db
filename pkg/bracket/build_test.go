package bracket

import (
	"errors"
	"strings"
	"testing"

	"github.com/fablab-tools/lbracket/pkg/kernel"
)

type recordedBox struct {
	origin     kernel.Vec
	dx, dy, dz float64
}

type recordedExtrude struct {
	plane     kernel.Plane
	points    []kernel.Point
	diameter  float64
	depth     float64
	symmetric bool
}

type recordedDrill struct {
	face     kernel.Plane
	points   []kernel.Point
	diameter float64
	depth    float64
}

type fakeSolid int

// fakeKernel records the operation sequence the emitter issues
type fakeKernel struct {
	boxes    []recordedBox
	extrudes []recordedExtrude
	drills   []recordedDrill
	cuts     int
	unions   int
	exported string

	exportErr error
	next      int
}

func (f *fakeKernel) newSolid() kernel.Solid {
	f.next++
	return fakeSolid(f.next)
}

func (f *fakeKernel) Box(origin kernel.Vec, dx, dy, dz float64) (kernel.Solid, error) {
	f.boxes = append(f.boxes, recordedBox{origin: origin, dx: dx, dy: dy, dz: dz})
	return f.newSolid(), nil
}

func (f *fakeKernel) Extrude(plane kernel.Plane, points []kernel.Point, diameter, depth float64, symmetric bool) (kernel.Solid, error) {
	f.extrudes = append(f.extrudes, recordedExtrude{plane: plane, points: points, diameter: diameter, depth: depth, symmetric: symmetric})
	return f.newSolid(), nil
}

func (f *fakeKernel) Cut(target, tool kernel.Solid) (kernel.Solid, error) {
	f.cuts++
	return f.newSolid(), nil
}

func (f *fakeKernel) Union(a, b kernel.Solid) (kernel.Solid, error) {
	f.unions++
	return f.newSolid(), nil
}

func (f *fakeKernel) Drill(s kernel.Solid, face kernel.Plane, points []kernel.Point, diameter, depth float64) (kernel.Solid, error) {
	f.drills = append(f.drills, recordedDrill{face: face, points: points, diameter: diameter, depth: depth})
	return f.newSolid(), nil
}

func (f *fakeKernel) Export(s kernel.Solid, path string) error {
	if f.exportErr != nil {
		return f.exportErr
	}
	f.exported = path
	return nil
}

func TestBuildCallSequence(t *testing.T) {
	fake := &fakeKernel{}
	dims := Resolve(DefaultMotorSpec(), DefaultBracketParams())

	if _, err := Build(fake, dims); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(fake.boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(fake.boxes))
	}
	base, wall := fake.boxes[0], fake.boxes[1]
	if base.dx != dims.BaseLength || base.dy != dims.WallWidth || base.dz != dims.Thickness {
		t.Errorf("base plate size failed: got %+v", base)
	}
	if wall.dx != dims.Thickness || wall.dy != dims.WallWidth || wall.dz != dims.WallHeight {
		t.Errorf("wall size failed: got %+v", wall)
	}
	// Both boxes run from X=0 and Z=0, centered on Y
	want := kernel.Vec{Y: -dims.WallWidth / 2.0}
	if base.origin != want || wall.origin != want {
		t.Errorf("box origins failed: base %+v wall %+v, want %+v", base.origin, wall.origin, want)
	}

	if len(fake.extrudes) != 2 {
		t.Fatalf("expected 2 extrudes, got %d", len(fake.extrudes))
	}
	mountCut, pilotCut := fake.extrudes[0], fake.extrudes[1]
	if len(mountCut.points) != 4 || mountCut.diameter != dims.MountHoleDia {
		t.Errorf("mount hole cutter failed: %+v", mountCut)
	}
	if len(pilotCut.points) != 1 || pilotCut.diameter != dims.PilotDia {
		t.Errorf("pilot cutter failed: %+v", pilotCut)
	}
	for _, e := range fake.extrudes {
		if !e.symmetric || e.depth != dims.Thickness+2.0 {
			t.Errorf("cutter not symmetric with 2 mm overshoot: %+v", e)
		}
		wantPlane := kernel.Plane{
			Origin: kernel.Vec{X: dims.Thickness, Z: dims.MountCenterZ},
			UDir:   kernel.Vec{Y: 1},
			Normal: kernel.Vec{X: 1},
		}
		if e.plane != wantPlane {
			t.Errorf("mount plane failed: got %+v, want %+v", e.plane, wantPlane)
		}
	}

	if fake.cuts != 2 {
		t.Errorf("expected 2 cuts (mount holes, pilot), got %d", fake.cuts)
	}

	if len(fake.drills) != 1 {
		t.Fatalf("expected 1 drill call, got %d", len(fake.drills))
	}
	drill := fake.drills[0]
	if len(drill.points) != 4 || drill.diameter != dims.BaseHoleDia || drill.depth != dims.Thickness {
		t.Errorf("base drill failed: %+v", drill)
	}
	wantFace := kernel.Plane{
		Origin: kernel.Vec{X: dims.BaseLength / 2.0, Z: dims.Thickness},
		UDir:   kernel.Vec{X: 1},
		Normal: kernel.Vec{Z: 1},
	}
	if drill.face != wantFace {
		t.Errorf("base face failed: got %+v, want %+v", drill.face, wantFace)
	}

	if fake.unions != 1 {
		t.Errorf("expected 1 union, got %d", fake.unions)
	}
}

func TestGenerateExports(t *testing.T) {
	fake := &fakeKernel{}
	dims, err := Generate(fake, DefaultMotorSpec(), DefaultBracketParams(), "out/bracket.stl")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if fake.exported != "out/bracket.stl" {
		t.Errorf("export path failed: got %q", fake.exported)
	}
	if !almostEqual(dims.WallHeight, 83.0) {
		t.Errorf("returned dimensions failed: %+v", dims)
	}
}

func TestGenerateExportError(t *testing.T) {
	fake := &fakeKernel{exportErr: errors.New("disk full")}
	_, err := Generate(fake, DefaultMotorSpec(), DefaultBracketParams(), "out/bracket.stl")
	if err == nil {
		t.Fatal("expected export error")
	}
	if !strings.Contains(err.Error(), "out/bracket.stl") {
		t.Errorf("export error should name the path: %v", err)
	}
}
