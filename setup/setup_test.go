package setup

import (
	"testing"

	"github.com/santanalab/pptool/coord"
	"github.com/santanalab/pptool/gcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(h []gcode.Block) []string {
	res := make([]string, len(h))
	for i, b := range h {
		res[i] = b.String()
	}
	return res
}

func TestHeader_Default(t *testing.T) {
	h := DefaultOptions().Header(DefaultStart)
	assert.Equal(t, []string{
		"G21",
		"G90",
		"M83",
		"",
		"G28",
		"G0 F1000",
		"G0 X110 Y110 Z2",
		"T0",
		"G4 S2",
		"",
	}, render(h))
}

func TestHeader_Options(t *testing.T) {
	opt := Options{InitFeed: 1500, Tool: 1}
	h := opt.Header(coord.Point{X: 90.5, Y: 100, Z: 0.4})
	assert.Equal(t, []string{
		"G21",
		"G90",
		"M83",
		"",
		"G0 F1500",
		"G0 X90.5 Y100 Z0.4",
		"T1",
		"",
	}, render(h))
}

func TestHeader_EndsAtStart(t *testing.T) {
	start := coord.Point{X: 12, Y: 34, Z: 5}
	s, err := gcode.Summarize(DefaultOptions().Header(start))
	require.NoError(t, err)
	assert.Equal(t, start, s.End)
	assert.Zero(t, s.Extruded)
}

func TestHeader_Fresh(t *testing.T) {
	opt := DefaultOptions()
	a := opt.Header(DefaultStart)
	a[0][0].Arg = 20
	b := opt.Header(DefaultStart)
	assert.Equal(t, "G21", b[0].String())
}
