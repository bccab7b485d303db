package bracket

import "fmt"

// MotorFixedSpec holds the fixed mounting dimensions of one motor
// family in millimeters. It is constructed once at startup and never
// mutated afterwards.
type MotorFixedSpec struct {
	FlangeSize         float64
	BodyDiameter       float64
	MountHolePitch     float64
	MountHoleDiameter  float64
	MountHoleClearance float64
	PilotDiameter      float64
	PilotClearance     float64
}

// DefaultMotorSpec returns the mounting dimensions of the M206 family
func DefaultMotorSpec() MotorFixedSpec {
	return MotorFixedSpec{
		FlangeSize:         60.0,
		BodyDiameter:       60.0,
		MountHolePitch:     49.5,
		MountHoleDiameter:  4.5,
		MountHoleClearance: 0.5,
		PilotDiameter:      54.0,
		PilotClearance:     2.0,
	}
}

// BracketParams are the adjustable design parameters of the L-bracket
// in millimeters.
type BracketParams struct {
	Thickness          float64
	HoleEdgeMargin     float64 // minimum clearance between a mount hole and the plate edge
	BodyClearance      float64
	TopMargin          float64
	BaseLengthExtra    float64
	BaseHoleDiameter   float64
	BaseHoleEdgeOffset float64
}

// DefaultBracketParams returns the baseline bracket design parameters
func DefaultBracketParams() BracketParams {
	return BracketParams{
		Thickness:          5.0,
		HoleEdgeMargin:     12.0,
		BodyClearance:      8.0,
		TopMargin:          10.0,
		BaseLengthExtra:    20.0,
		BaseHoleDiameter:   6.6,
		BaseHoleEdgeOffset: 18.0,
	}
}

// Validate rejects inputs that would hand a degenerate solid to the
// geometry kernel. Resolve itself accepts anything; this is the only
// domain check before geometry construction starts.
func Validate(motor MotorFixedSpec, params BracketParams) error {
	motorFields := map[string]float64{
		"flange_size":          motor.FlangeSize,
		"body_diameter":        motor.BodyDiameter,
		"mount_hole_pitch":     motor.MountHolePitch,
		"mount_hole_diameter":  motor.MountHoleDiameter,
		"mount_hole_clearance": motor.MountHoleClearance,
		"pilot_diameter":       motor.PilotDiameter,
		"pilot_clearance":      motor.PilotClearance,
	}
	for name, v := range motorFields {
		if v <= 0 {
			return fmt.Errorf("motor %s must be positive, got %g", name, v)
		}
	}

	if params.Thickness <= 0 {
		return fmt.Errorf("thickness must be positive, got %g", params.Thickness)
	}
	if params.BaseHoleDiameter <= 0 {
		return fmt.Errorf("base_hole_diameter must be positive, got %g", params.BaseHoleDiameter)
	}
	margins := map[string]float64{
		"hole_edge_margin":      params.HoleEdgeMargin,
		"body_clearance":        params.BodyClearance,
		"top_margin":            params.TopMargin,
		"base_length_extra":     params.BaseLengthExtra,
		"base_hole_edge_offset": params.BaseHoleEdgeOffset,
	}
	for name, v := range margins {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %g", name, v)
		}
	}

	return nil
}
