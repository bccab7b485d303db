package scad

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fablab-tools/lbracket/pkg/kernel"
)

// drillOvershoot extends drilled through-holes past both faces so the
// cut never stops on a face boundary
const drillOvershoot = 2.0

// solid is one CSG expression of the OpenSCAD program under construction
type solid struct {
	src string
}

// Kernel implements the geometry capability interface by emitting an
// OpenSCAD CSG program. Meshing is delegated entirely to the openscad
// binary; exporting to a .scad path writes the program source itself.
type Kernel struct {
	segments int // circle facet count passed as $fn
}

// New creates an OpenSCAD program kernel
func New() *Kernel {
	return &Kernel{segments: 64}
}

// Box constructs an axis-aligned cube with its minimum corner at origin
func (k *Kernel) Box(origin kernel.Vec, dx, dy, dz float64) (kernel.Solid, error) {
	src := fmt.Sprintf("translate([%s, %s, %s]) cube([%s, %s, %s]);",
		num(origin.X), num(origin.Y), num(origin.Z), num(dx), num(dy), num(dz))
	return &solid{src: src}, nil
}

// Extrude emits one centered cylinder per point, oriented along the
// plane normal, grouped into a single cutting solid
func (k *Kernel) Extrude(plane kernel.Plane, points []kernel.Point, diameter, depth float64, symmetric bool) (kernel.Solid, error) {
	rotate, err := rotationFor(plane.Normal)
	if err != nil {
		return nil, err
	}

	height := depth
	if symmetric {
		height = 2.0 * depth
	}

	var cylinders []string
	for _, pt := range points {
		center := plane.Point3(pt)
		if !symmetric {
			center = center.Add(plane.Normal.Scale(depth / 2.0))
		}
		cylinders = append(cylinders, fmt.Sprintf(
			"translate([%s, %s, %s]) %scylinder(h=%s, d=%s, center=true);",
			num(center.X), num(center.Y), num(center.Z), rotate, num(height), num(diameter)))
	}
	if len(cylinders) == 1 {
		return &solid{src: cylinders[0]}, nil
	}
	return &solid{src: block("union()", cylinders...)}, nil
}

// Cut subtracts tool from target
func (k *Kernel) Cut(target, tool kernel.Solid) (kernel.Solid, error) {
	return &solid{src: block("difference()", target.(*solid).src, tool.(*solid).src)}, nil
}

// Union merges two solids
func (k *Kernel) Union(a, b kernel.Solid) (kernel.Solid, error) {
	return &solid{src: block("union()", a.(*solid).src, b.(*solid).src)}, nil
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

// Export writes the program. A .scad target receives the source text;
// any other extension is rendered through the openscad binary.
func (k *Kernel) Export(s kernel.Solid, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	program := k.Program(s)

	if strings.EqualFold(filepath.Ext(path), ".scad") {
		if err := os.WriteFile(path, []byte(program), 0o644); err != nil {
			return fmt.Errorf("failed to write scad program: %w", err)
		}
		return nil
	}

	tmpDir, err := os.MkdirTemp("", "lbracket-scad-")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	scadFile := filepath.Join(tmpDir, "model.scad")
	if err := os.WriteFile(scadFile, []byte(program), 0o644); err != nil {
		return fmt.Errorf("failed to write scad program: %w", err)
	}

	return Render(scadFile, path)
}

// Program returns the complete OpenSCAD source for a solid
func (k *Kernel) Program(s kernel.Solid) string {
	var b strings.Builder
	b.WriteString("// lbracket generated model\n")
	fmt.Fprintf(&b, "$fn = %d;\n\n", k.segments)
	b.WriteString(s.(*solid).src)
	b.WriteString("\n")
	return b.String()
}

// rotationFor maps a principal-axis plane normal to the rotate() call
// that tilts a Z-aligned cylinder onto that axis
func rotationFor(n kernel.Vec) (string, error) {
	switch {
	case n.X == 0 && n.Y == 0 && n.Z != 0:
		return "", nil
	case n.Y == 0 && n.Z == 0 && n.X > 0:
		return "rotate([0, 90, 0]) ", nil
	case n.Y == 0 && n.Z == 0 && n.X < 0:
		return "rotate([0, -90, 0]) ", nil
	case n.X == 0 && n.Z == 0 && n.Y > 0:
		return "rotate([-90, 0, 0]) ", nil
	case n.X == 0 && n.Z == 0 && n.Y < 0:
		return "rotate([90, 0, 0]) ", nil
	}
	return "", fmt.Errorf("plane normal %+v is not a principal axis", n)
}

// block renders a CSG grouping operation with indented children
func block(head string, children ...string) string {
	var b strings.Builder
	b.WriteString(head)
	b.WriteString(" {\n")
	for _, child := range children {
		for _, line := range strings.Split(child, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("}")
	return b.String()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
