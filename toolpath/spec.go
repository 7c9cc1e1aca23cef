package toolpath

import (
	"math"

	"github.com/santanalab/pptool/coord"
)

// LineSpec configures a straight line test.
type LineSpec struct {
	// Length of the line in mm. Negative values run in the reverse direction.
	Length float64

	// ExtrusionRate in mm/s. The sign selects extrude or retract.
	ExtrusionRate float64

	// MoveRate is the travel speed in mm/s.
	MoveRate float64

	Axis coord.Axis
}

// CircleSpec configures a full circle test that starts and ends at the start position.
type CircleSpec struct {
	Radius        float64
	ExtrusionRate float64
	MoveRate      float64
}

// GradientSpec configures a line test where speed or flow changes stepwise.
//
// Initial and Final are the end values of the varied quantity; Constant is
// the value of the held one. All are in mm/s.
type GradientSpec struct {
	Steps    int
	Length   float64
	Initial  float64
	Final    float64
	Constant float64
	Axis     coord.Axis
	Mode     Mode
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

type field struct {
	name string
	v    float64
}

// checkFinite reports the first non-finite field in order.
func checkFinite(fields ...field) error {
	for _, f := range fields {
		if !finite(f.v) {
			return invalid(f.name, f.v, "must be a finite number")
		}
	}
	return nil
}

func checkLineAxis(a coord.Axis) error {
	if a != coord.X && a != coord.Y {
		return invalid("axis", a, "must be X or Y")
	}
	return nil
}

func checkStart(p coord.Point) error {
	if !p.IsFinite() {
		return invalid("start", p, "must be a finite position")
	}
	return nil
}

func (s LineSpec) Validate() error {
	err := checkFinite(
		field{"length", s.Length},
		field{"extrusionRate", s.ExtrusionRate},
		field{"moveRate", s.MoveRate},
	)
	if err != nil {
		return err
	}
	if s.MoveRate <= 0 {
		return invalid("moveRate", s.MoveRate, "must be positive")
	}
	return checkLineAxis(s.Axis)
}

func (s CircleSpec) Validate() error {
	err := checkFinite(
		field{"radius", s.Radius},
		field{"extrusionRate", s.ExtrusionRate},
		field{"moveRate", s.MoveRate},
	)
	if err != nil {
		return err
	}
	if s.Radius <= 0 {
		return invalid("radius", s.Radius, "must be positive")
	}
	if s.MoveRate <= 0 {
		return invalid("moveRate", s.MoveRate, "must be positive")
	}
	return nil
}

func (s GradientSpec) Validate() error {
	if s.Steps < 2 {
		return invalid("steps", s.Steps, "must be at least 2")
	}
	err := checkFinite(
		field{"length", s.Length},
		field{"initial", s.Initial},
		field{"final", s.Final},
		field{"constant", s.Constant},
	)
	if err != nil {
		return err
	}
	err = checkLineAxis(s.Axis)
	if err != nil {
		return err
	}

	switch s.Mode {
	case ConstantSpeed:
		if s.Constant <= 0 {
			return invalid("constant", s.Constant, "speed must be positive")
		}
	case ConstantFlowRate, ConstantVolume:
		// every interpolated speed divides the segment length
		if s.Initial <= 0 {
			return invalid("initial", s.Initial, "speed must be positive")
		}
		if s.Final <= 0 {
			return invalid("final", s.Final, "speed must be positive")
		}
	default:
		return invalid("mode", s.Mode, "is not a known gradient mode")
	}
	return nil
}
