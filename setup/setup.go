// Package setup builds the machine-init header that every test starts with.
package setup

import (
	"github.com/santanalab/pptool/coord"
	"github.com/santanalab/pptool/gcode"
)

// DefaultStart is the start position offered for every test.
var DefaultStart = coord.Point{X: 110, Y: 110, Z: 2}

// Options configure the header.
type Options struct {
	// Home runs G28 before moving to the start position.
	Home bool

	// InitFeed is the feed rate in mm/min for the move to the start position.
	InitFeed float64

	Tool int

	// Dwell is the pause in seconds after selecting the tool.
	Dwell float64
}

func DefaultOptions() Options {
	return Options{
		Home:     true,
		InitFeed: 1000,
		Tool:     0,
		Dwell:    2,
	}
}

// MoveTo returns the rapid move to p.
func MoveTo(p coord.Point) gcode.Block {
	return gcode.Block{
		{W: 'G', Arg: 0},
		{W: 'X', Arg: p.X},
		{W: 'Y', Arg: p.Y},
		{W: 'Z', Arg: p.Z},
	}
}

// Header returns a new header that ends with the machine at start, ready to
// extrude with tool opt.Tool in metric, absolute, relative-extrusion mode.
//
// Empty blocks are spacers and render as blank lines.
func (opt Options) Header(start coord.Point) []gcode.Block {
	h := []gcode.Block{
		{{W: 'G', Arg: 21}},
		{{W: 'G', Arg: 90}},
		{{W: 'M', Arg: 83}},
		{},
	}
	if opt.Home {
		h = append(h, gcode.Block{{W: 'G', Arg: 28}})
	}
	h = append(h,
		gcode.Block{{W: 'G', Arg: 0}, {W: 'F', Arg: opt.InitFeed}},
		MoveTo(start),
		gcode.Block{{W: 'T', Arg: float64(opt.Tool)}},
	)
	if opt.Dwell > 0 {
		h = append(h, gcode.Block{{W: 'G', Arg: 4}, {W: 'S', Arg: opt.Dwell}})
	}
	return append(h, gcode.Block{})
}
