package bracket

import (
	"math"

	"github.com/fablab-tools/lbracket/pkg/kernel"
)

// Dimensions holds every derived value needed to build the bracket
// solid. Hole points are 2D coordinates in the local frame of their
// working plane: mount holes relative to the mount-plane center, base
// holes relative to the center of the base plate's top face.
type Dimensions struct {
	Thickness    float64
	MountCenterZ float64
	WallHeight   float64
	WallWidth    float64
	BaseLength   float64

	MountHoleDia float64 // fastener diameter plus clearance
	PilotDia     float64 // shaft pilot diameter plus clearance
	BaseHoleDia  float64

	MountHoles [4]kernel.Point
	BaseHoles  [4]kernel.Point
}

// Resolve derives all bracket dimensions from the motor spec and the
// design parameters. It is a pure function: identical inputs always
// produce identical output, and nothing is validated here.
func Resolve(motor MotorFixedSpec, params BracketParams) Dimensions {
	// The mounting plane must clear the motor body above the base plate
	mountCenterZ := params.Thickness + motor.BodyDiameter/2.0 + params.BodyClearance

	// The wall extends past the mounting center by whichever is larger:
	// flange overhang plus top margin, or hole position plus edge margin
	wallHeight := mountCenterZ + math.Max(
		motor.FlangeSize/2.0+params.TopMargin,
		motor.MountHolePitch/2.0+params.HoleEdgeMargin,
	)
	wallWidth := math.Max(
		motor.FlangeSize+2.0*params.BodyClearance,
		motor.MountHolePitch+2.0*params.HoleEdgeMargin,
	)

	// 24 mm guarantees a minimum span between the two base hole columns
	baseLength := math.Max(
		wallWidth+params.BaseLengthExtra,
		2.0*params.BaseHoleEdgeOffset+24.0,
	)

	halfPitch := motor.MountHolePitch / 2.0
	mountHoles := [4]kernel.Point{
		{U: -halfPitch, V: -halfPitch},
		{U: -halfPitch, V: +halfPitch},
		{U: +halfPitch, V: -halfPitch},
		{U: +halfPitch, V: +halfPitch},
	}

	// Spread the base holes for stability, but keep them inside the wall
	// footprint projected onto the base
	yOff := math.Max(wallWidth*0.28, params.BaseHoleDiameter+4.0)
	yOff = math.Min(yOff, wallWidth/2.0-params.HoleEdgeMargin+2.0)

	x1 := params.BaseHoleEdgeOffset
	x2 := baseLength - params.BaseHoleEdgeOffset
	baseHoles := [4]kernel.Point{
		{U: x1 - baseLength/2.0, V: -yOff},
		{U: x1 - baseLength/2.0, V: +yOff},
		{U: x2 - baseLength/2.0, V: -yOff},
		{U: x2 - baseLength/2.0, V: +yOff},
	}

	return Dimensions{
		Thickness:    params.Thickness,
		MountCenterZ: mountCenterZ,
		WallHeight:   wallHeight,
		WallWidth:    wallWidth,
		BaseLength:   baseLength,
		MountHoleDia: motor.MountHoleDiameter + motor.MountHoleClearance,
		PilotDia:     motor.PilotDiameter + motor.PilotClearance,
		BaseHoleDia:  params.BaseHoleDiameter,
		MountHoles:   mountHoles,
		BaseHoles:    baseHoles,
	}
}
