package kernel

// Vec is a point or direction in model space, in millimeters
type Vec struct {
	X, Y, Z float64
}

// Add returns the sum of two vectors
func (v Vec) Add(other Vec) Vec {
	return Vec{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Scale multiplies the vector by a scalar
func (v Vec) Scale(s float64) Vec {
	return Vec{
		X: v.X * s,
		Y: v.Y * s,
		Z: v.Z * s,
	}
}

// Cross returns the cross product of two vectors
func (v Vec) Cross(other Vec) Vec {
	return Vec{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Point is a 2D point in the local (U, V) frame of a working plane
type Point struct {
	U, V float64
}

// Plane is a 2D working plane anchored in model space. UDir is the
// in-plane U axis; the V axis is implied by Normal × UDir.
type Plane struct {
	Origin Vec
	UDir   Vec
	Normal Vec
}

// VDir returns the in-plane V axis
func (p Plane) VDir() Vec {
	return p.Normal.Cross(p.UDir)
}

// Point3 maps a local (U, V) point into model space
func (p Plane) Point3(pt Point) Vec {
	return p.Origin.Add(p.UDir.Scale(pt.U)).Add(p.VDir().Scale(pt.V))
}

// Solid is an opaque handle to a kernel-owned solid
type Solid interface{}

// Kernel is the capability surface this program needs from a solid
// modeling engine. All boolean and meshing work belongs to the
// implementation; callers only sequence these operations and treat
// any returned error as fatal.
type Kernel interface {
	// Box constructs an axis-aligned box of size dx×dy×dz with its
	// minimum corner at origin.
	Box(origin Vec, dx, dy, dz float64) (Solid, error)

	// Extrude places circular profiles of the given diameter at each
	// point of the plane and extrudes them along the plane normal into
	// a cutting solid. When symmetric, the extrusion spans depth on
	// both sides of the plane; otherwise it extends depth along the
	// normal only.
	Extrude(plane Plane, points []Point, diameter, depth float64, symmetric bool) (Solid, error)

	// Cut subtracts tool from target.
	Cut(target, tool Solid) (Solid, error)

	// Union merges two solids into one.
	Union(a, b Solid) (Solid, error)

	// Drill cuts through-holes of the given diameter at each point on a
	// planar face, through the given material depth.
	Drill(s Solid, face Plane, points []Point, diameter, depth float64) (Solid, error)

	// Export writes the solid to path, creating parent directories as
	// needed.
	Export(s Solid, path string) error
}
