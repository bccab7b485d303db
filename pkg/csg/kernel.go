package csg

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/fablab-tools/lbracket/pkg/kernel"
)

// drillOvershoot extends drilled through-holes past both faces so the
// cut never stops on a face boundary
const drillOvershoot = 2.0

// meshCells is the marching-cubes resolution used for STL export
const meshCells = 300

// Kernel implements the geometry capability interface with sdfx,
// modeling solids as signed distance fields. No external tooling is
// required; STL meshing happens in-process.
type Kernel struct{}

// New creates an sdfx-backed kernel
func New() *Kernel {
	return &Kernel{}
}

// Box constructs an axis-aligned box with its minimum corner at origin
func (k *Kernel) Box(origin kernel.Vec, dx, dy, dz float64) (kernel.Solid, error) {
	box, err := sdf.Box3D(v3.Vec{X: dx, Y: dy, Z: dz}, 0)
	if err != nil {
		return nil, err
	}
	// Box3D centers on the world origin; shift the minimum corner into place
	offset := v3.Vec{X: origin.X + dx/2.0, Y: origin.Y + dy/2.0, Z: origin.Z + dz/2.0}
	return sdf.Transform3D(box, sdf.Translate3d(offset)), nil
}

// Extrude builds one cylinder per point, aligned to the plane normal
// and merged into a single cutting solid
func (k *Kernel) Extrude(plane kernel.Plane, points []kernel.Point, diameter, depth float64, symmetric bool) (kernel.Solid, error) {
	rotation, rotated, err := rotationFor(plane.Normal)
	if err != nil {
		return nil, err
	}

	height := depth
	if symmetric {
		height = 2.0 * depth
	}

	cutters := make([]sdf.SDF3, 0, len(points))
	for _, pt := range points {
		cyl, err := sdf.Cylinder3D(height, diameter/2.0, 0)
		if err != nil {
			return nil, err
		}
		center := plane.Point3(pt)
		if !symmetric {
			center = center.Add(plane.Normal.Scale(depth / 2.0))
		}
		if rotated {
			cyl = sdf.Transform3D(cyl, rotation)
		}
		cyl = sdf.Transform3D(cyl, sdf.Translate3d(vec(center)))
		cutters = append(cutters, cyl)
	}
	return sdf.Union3D(cutters...), nil
}

// Cut subtracts tool from target
func (k *Kernel) Cut(target, tool kernel.Solid) (kernel.Solid, error) {
	return sdf.Difference3D(target.(sdf.SDF3), tool.(sdf.SDF3)), nil
}

// Union merges two solids
func (k *Kernel) Union(a, b kernel.Solid) (kernel.Solid, error) {
	return sdf.Union3D(a.(sdf.SDF3), b.(sdf.SDF3)), nil
}

// Drill cuts through-holes at the face points, through the material
// depth plus an overshoot on both sides
func (k *Kernel) Drill(s kernel.Solid, face kernel.Plane, points []kernel.Point, diameter, depth float64) (kernel.Solid, error) {
	cutter, err := k.Extrude(face, points, diameter, depth+drillOvershoot, true)
	if err != nil {
		return nil, err
	}
	return k.Cut(s, cutter)
}

// Export meshes the solid with marching cubes and writes an STL file
func (k *Kernel) Export(s kernel.Solid, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Surface unwritable targets before the renderer runs; the renderer
	// reports write failures on its own channel rather than returning them
	probe, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := probe.Close(); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	render.ToSTL(s.(sdf.SDF3), path, render.NewMarchingCubesOctree(meshCells))

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stl export produced no file: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(path)
		return fmt.Errorf("stl export produced an empty file: %s", path)
	}
	return nil
}

// rotationFor maps a principal-axis plane normal to the transform that
// tilts a Z-aligned cylinder onto that axis. A Z normal needs no
// rotation, reported through the second result.
func rotationFor(n kernel.Vec) (sdf.M44, bool, error) {
	switch {
	case n.X == 0 && n.Y == 0 && n.Z != 0:
		return sdf.M44{}, false, nil
	case n.Y == 0 && n.Z == 0 && n.X != 0:
		return sdf.RotateY(sdf.DtoR(90)), true, nil
	case n.X == 0 && n.Z == 0 && n.Y != 0:
		return sdf.RotateX(sdf.DtoR(-90)), true, nil
	}
	return sdf.M44{}, false, fmt.Errorf("plane normal %+v is not a principal axis", n)
}

func vec(v kernel.Vec) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
