// Package toolpath generates the gcode for the line, circle and gradient
// parameterization tests.
//
// Generators are pure: they copy the machine header, append the motion for
// one test and return the result. Writing it anywhere is up to the caller.
package toolpath

import (
	"math"

	"github.com/santanalab/pptool/coord"
	"github.com/santanalab/pptool/gcode"
)

// Sequence is an ordered list of blocks, one per output line.
type Sequence []gcode.Block

// Lines renders every block with at most prec decimals.
func (s Sequence) Lines(prec int) []string {
	res := make([]string, len(s))
	for i, b := range s {
		res[i] = b.Format(prec)
	}
	return res
}

// Motions returns the blocks that contain a G1, G2 or G3 word.
func (s Sequence) Motions() []gcode.Block {
	var res []gcode.Block
	for _, b := range s {
		if b.Has(g1) || b.Has(g2) || b.Has(gcode.Word{W: 'G', Arg: 3}) {
			res = append(res, b)
		}
	}
	return res
}

var (
	g0 = gcode.Word{W: 'G', Arg: 0}
	g1 = gcode.Word{W: 'G', Arg: 1}
	g2 = gcode.Word{W: 'G', Arg: 2}
)

// perMinute converts mm/s to the mm/min feed rate used on the wire.
func perMinute(mmPerSec float64) float64 { return mmPerSec * 60 }

func newSequence(header []gcode.Block, extra int) Sequence {
	seq := make(Sequence, 0, len(header)+extra)
	for _, b := range header {
		seq = append(seq, b.Clone())
	}
	return seq
}

func feedBlock(mmPerSec float64) gcode.Block {
	return gcode.Block{g0, {W: 'F', Arg: perMinute(mmPerSec)}}
}

func moveBlock(axis coord.Axis, pos, amount float64) gcode.Block {
	return gcode.Block{g1, {W: axis.Letter(), Arg: pos}, {W: 'E', Arg: amount}}
}

// Line generates a single straight move along spec.Axis that extrudes at
// spec.ExtrusionRate for the duration of the move.
func Line(spec LineSpec, header []gcode.Block, start coord.Point) (Sequence, error) {
	err := spec.Validate()
	if err != nil {
		return nil, err
	}
	err = checkStart(start)
	if err != nil {
		return nil, err
	}

	seq := newSequence(header, 2)
	seq = append(seq, feedBlock(spec.MoveRate))

	t := spec.Length / spec.MoveRate
	end := start.Get(spec.Axis) + spec.Length
	seq = append(seq, moveBlock(spec.Axis, end, spec.ExtrusionRate*t))

	return seq, nil
}

// Circle generates one clockwise full circle of spec.Radius that departs from
// and returns to the start position.
func Circle(spec CircleSpec, header []gcode.Block, start coord.Point) (Sequence, error) {
	err := spec.Validate()
	if err != nil {
		return nil, err
	}
	err = checkStart(start)
	if err != nil {
		return nil, err
	}

	seq := newSequence(header, 2)
	seq = append(seq, feedBlock(spec.MoveRate))

	t := (spec.Radius * 2 * math.Pi) / spec.MoveRate
	seq = append(seq, gcode.Block{
		g2,
		{W: 'X', Arg: start.X},
		{W: 'Y', Arg: start.Y},
		{W: 'E', Arg: spec.ExtrusionRate * t},
		{W: 'R', Arg: spec.Radius},
	})

	return seq, nil
}

// Gradient generates spec.Steps moves that evenly divide spec.Length along
// spec.Axis. The first move targets the start coordinate itself.
func Gradient(spec GradientSpec, header []gcode.Block, start coord.Point) (Sequence, error) {
	err := spec.Validate()
	if err != nil {
		return nil, err
	}
	err = checkStart(start)
	if err != nil {
		return nil, err
	}

	n := spec.Steps
	div := float64(n - 1)
	seg := spec.Length / div
	step := (spec.Final - spec.Initial) / div
	origin := start.Get(spec.Axis)
	pos := func(i int) float64 { return origin + seg*float64(i) }

	var seq Sequence
	switch spec.Mode {
	case ConstantSpeed:
		seq = newSequence(header, n+1)
		seq = append(seq, feedBlock(spec.Constant))

		// rate is scaled by the time of the whole line, not of the segment
		t := spec.Length / spec.Constant
		for i := 0; i < n; i++ {
			rate := spec.Initial + step*float64(i)
			seq = append(seq, moveBlock(spec.Axis, pos(i), rate*t))
		}

	case ConstantFlowRate:
		seq = newSequence(header, 2*n)
		for i := 0; i < n; i++ {
			speed := spec.Initial + step*float64(i)
			t := seg / speed
			seq = append(seq, feedBlock(speed), moveBlock(spec.Axis, pos(i), spec.Constant*t))
		}

	case ConstantVolume:
		var total float64
		for i := 0; i < n; i++ {
			total += seg / (spec.Initial + step*float64(i))
		}
		// the amount for the whole line is repeated on every segment
		amount := spec.Constant * total

		seq = newSequence(header, 2*n)
		for i := 0; i < n; i++ {
			speed := spec.Initial + step*float64(i)
			seq = append(seq, feedBlock(speed), moveBlock(spec.Axis, pos(i), amount))
		}
	}

	return seq, nil
}
