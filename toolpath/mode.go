package toolpath

import (
	"strings"
)

// Mode selects which variable a gradient test holds constant.
type Mode string

const (
	// ConstantSpeed varies the extrusion rate at a fixed feed rate.
	ConstantSpeed Mode = "speed"

	// ConstantFlowRate varies the feed rate at a fixed volumetric flow, so
	// each segment dispenses less as it gets faster.
	ConstantFlowRate Mode = "flow"

	// ConstantVolume varies the feed rate and dispenses the same amount on
	// every segment.
	ConstantVolume Mode = "volume"
)

var modeNames = map[string]Mode{
	"speed":              ConstantSpeed,
	"constant speed":     ConstantSpeed,
	"flow":               ConstantFlowRate,
	"flow rate":          ConstantFlowRate,
	"constant flow rate": ConstantFlowRate,
	"volume":             ConstantVolume,
	"constant volume":    ConstantVolume,
}

// ParseMode accepts the short names and the "Constant ..." labels,
// case-insensitively.
func ParseMode(s string) (Mode, error) {
	key := strings.Join(strings.Fields(strings.ToLower(s)), " ")
	m, ok := modeNames[key]
	if !ok {
		return "", invalid("mode", s, "is not a known gradient mode")
	}
	return m, nil
}

func (m Mode) String() string { return string(m) }
