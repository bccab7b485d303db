package bracket

import (
	"fmt"

	"github.com/fablab-tools/lbracket/pkg/kernel"
)

// cutterOvershoot extends hole cutters past the wall faces so a
// boolean cut never leaves a coplanar skin behind
const cutterOvershoot = 2.0

// Build constructs the bracket solid through the geometry kernel and
// returns the unioned result. The base plate runs along +X from the
// origin, centered on Y; the wall rises along +Z at the X=0 end and
// carries the motor mounting holes on its outward face.
func Build(k kernel.Kernel, dims Dimensions) (kernel.Solid, error) {
	t := dims.Thickness
	corner := kernel.Vec{Y: -dims.WallWidth / 2.0}

	base, err := k.Box(corner, dims.BaseLength, dims.WallWidth, t)
	if err != nil {
		return nil, fmt.Errorf("base plate: %w", err)
	}
	wall, err := k.Box(corner, t, dims.WallWidth, dims.WallHeight)
	if err != nil {
		return nil, fmt.Errorf("wall: %w", err)
	}

	// Mount-face working plane with local (u, v) mapping to model (Y, Z)
	mountPlane := kernel.Plane{
		Origin: kernel.Vec{X: t, Z: dims.MountCenterZ},
		UDir:   kernel.Vec{Y: 1},
		Normal: kernel.Vec{X: 1},
	}

	holeCutter, err := k.Extrude(mountPlane, dims.MountHoles[:], dims.MountHoleDia, t+cutterOvershoot, true)
	if err != nil {
		return nil, fmt.Errorf("mount hole cutter: %w", err)
	}
	pilotCutter, err := k.Extrude(mountPlane, []kernel.Point{{}}, dims.PilotDia, t+cutterOvershoot, true)
	if err != nil {
		return nil, fmt.Errorf("pilot cutter: %w", err)
	}

	wall, err = k.Cut(wall, holeCutter)
	if err != nil {
		return nil, fmt.Errorf("cut mount holes: %w", err)
	}
	wall, err = k.Cut(wall, pilotCutter)
	if err != nil {
		return nil, fmt.Errorf("cut pilot hole: %w", err)
	}

	// Base hole points are expressed relative to the top-face center
	baseTop := kernel.Plane{
		Origin: kernel.Vec{X: dims.BaseLength / 2.0, Z: t},
		UDir:   kernel.Vec{X: 1},
		Normal: kernel.Vec{Z: 1},
	}
	base, err = k.Drill(base, baseTop, dims.BaseHoles[:], dims.BaseHoleDia, t)
	if err != nil {
		return nil, fmt.Errorf("drill base holes: %w", err)
	}

	solid, err := k.Union(base, wall)
	if err != nil {
		return nil, fmt.Errorf("union base and wall: %w", err)
	}
	return solid, nil
}

// Generate resolves the bracket dimensions, builds the solid, and
// exports it to outPath. It returns the resolved dimensions so callers
// can report them.
func Generate(k kernel.Kernel, motor MotorFixedSpec, params BracketParams, outPath string) (Dimensions, error) {
	dims := Resolve(motor, params)

	solid, err := Build(k, dims)
	if err != nil {
		return dims, err
	}
	if err := k.Export(solid, outPath); err != nil {
		return dims, fmt.Errorf("export %s: %w", outPath, err)
	}
	return dims, nil
}
