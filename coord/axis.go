package coord

import "strings"

// Axis names a single machine axis.
type Axis string

const (
	X Axis = "X"
	Y Axis = "Y"
	Z Axis = "Z"
)

// Letter returns the G-code word letter for the axis.
func (a Axis) Letter() byte {
	if len(a) == 0 {
		return 0
	}
	return a[0]
}

func (a Axis) Valid() bool {
	switch a {
	case X, Y, Z:
		return true
	}
	return false
}

// NormalizeAxis maps "x", "X", "x axis" and similar to an Axis. The result
// is not checked; see Valid.
func NormalizeAxis(s string) Axis {
	s = strings.ToUpper(strings.TrimSpace(s))
	return Axis(strings.TrimSpace(strings.TrimSuffix(s, "AXIS")))
}
