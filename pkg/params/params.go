package params

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fablab-tools/lbracket/pkg/bracket"
)

// file mirrors the TOML parameter file layout. Field names follow the
// bracket drawing conventions, all values in millimeters.
type file struct {
	Motor struct {
		FlangeSize         float64 `toml:"flange_size"`
		BodyDiameter       float64 `toml:"body_diameter"`
		MountHolePitch     float64 `toml:"mount_hole_pitch"`
		MountHoleDiameter  float64 `toml:"mount_hole_diameter"`
		MountHoleClearance float64 `toml:"mount_hole_clearance"`
		PilotDiameter      float64 `toml:"pilot_diameter"`
		PilotClearance     float64 `toml:"pilot_clearance"`
	} `toml:"motor"`
	Bracket struct {
		Thickness          float64 `toml:"thickness"`
		HoleEdgeMargin     float64 `toml:"hole_edge_margin"`
		BodyClearance      float64 `toml:"body_clearance"`
		TopMargin          float64 `toml:"top_margin"`
		BaseLengthExtra    float64 `toml:"base_length_extra"`
		BaseHoleDiameter   float64 `toml:"base_hole_diameter"`
		BaseHoleEdgeOffset float64 `toml:"base_hole_edge_offset"`
	} `toml:"bracket"`
}

// Load reads a TOML parameter file and overlays the values it defines
// onto motor and params. Keys absent from the file keep their current
// values; unknown keys are rejected.
func Load(path string, motor *bracket.MotorFixedSpec, params *bracket.BracketParams) error {
	var f file
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return fmt.Errorf("failed to read parameter file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in parameter file %s: %s", path, strings.Join(keys, ", "))
	}

	overlay := []struct {
		section, key string
		src          float64
		dst          *float64
	}{
		{"motor", "flange_size", f.Motor.FlangeSize, &motor.FlangeSize},
		{"motor", "body_diameter", f.Motor.BodyDiameter, &motor.BodyDiameter},
		{"motor", "mount_hole_pitch", f.Motor.MountHolePitch, &motor.MountHolePitch},
		{"motor", "mount_hole_diameter", f.Motor.MountHoleDiameter, &motor.MountHoleDiameter},
		{"motor", "mount_hole_clearance", f.Motor.MountHoleClearance, &motor.MountHoleClearance},
		{"motor", "pilot_diameter", f.Motor.PilotDiameter, &motor.PilotDiameter},
		{"motor", "pilot_clearance", f.Motor.PilotClearance, &motor.PilotClearance},
		{"bracket", "thickness", f.Bracket.Thickness, &params.Thickness},
		{"bracket", "hole_edge_margin", f.Bracket.HoleEdgeMargin, &params.HoleEdgeMargin},
		{"bracket", "body_clearance", f.Bracket.BodyClearance, &params.BodyClearance},
		{"bracket", "top_margin", f.Bracket.TopMargin, &params.TopMargin},
		{"bracket", "base_length_extra", f.Bracket.BaseLengthExtra, &params.BaseLengthExtra},
		{"bracket", "base_hole_diameter", f.Bracket.BaseHoleDiameter, &params.BaseHoleDiameter},
		{"bracket", "base_hole_edge_offset", f.Bracket.BaseHoleEdgeOffset, &params.BaseHoleEdgeOffset},
	}
	for _, o := range overlay {
		if md.IsDefined(o.section, o.key) {
			*o.dst = o.src
		}
	}

	return nil
}
