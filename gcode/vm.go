package gcode

import (
	"errors"
	"math"
	"time"

	"github.com/santanalab/pptool/coord"
)

// VM will track state and interpret generated gcode.
//
// It follows position, feed rate and extruder state closely enough to
// summarize a toolpath; it does not model acceleration.
type VM struct {
	pos coord.Point

	modal [256]float64

	feed     float64 // mm/min
	lastE    float64
	travel   float64
	extruded float64
	elapsed  time.Duration
}

// NewVM constructs a new VM with default state.
func NewVM() *VM {
	vm := &VM{}

	// using marlin defaults
	vm.modal[ModalGroupMotion] = 0
	vm.modal[ModalGroupPlaneSelection] = 17
	vm.modal[ModalGroupDistanceMode] = 90
	vm.modal[ModalGroupFeedRateMode] = 94
	vm.modal[ModalGroupUnits] = 21
	vm.modal[ModalGroupExtruderMode] = 82

	return vm
}

func (vm VM) Inches() bool           { return vm.modal[ModalGroupUnits] == 20 }
func (vm VM) RelativeMotion() bool   { return vm.modal[ModalGroupDistanceMode] == 91 }
func (vm VM) RelativeExtruder() bool { return vm.modal[ModalGroupExtruderMode] == 83 }

func (vm VM) Pos() coord.Point       { return vm.pos }
func (vm *VM) SetPos(p coord.Point)  { vm.pos = p }
func (vm VM) Feed() float64          { return vm.feed }
func (vm VM) Travel() float64        { return vm.travel }
func (vm VM) Extruded() float64      { return vm.extruded }
func (vm VM) Elapsed() time.Duration { return vm.elapsed }

func isSupported(g Word) bool {
	if g.IsAxis() {
		return true
	}

	switch g.W {
	case 'G':
		switch g.Arg {
		case 0, 1, 2, 3, 4, 17, 20, 21, 28, 90, 91, 94:
			return true
		}
	case 'M':
		switch g.Arg {
		case 82, 83:
			return true
		}
	case 'F', 'E', 'R', 'S', 'P', 'T':
		return true
	}

	return false
}

func applyBlock(p coord.Point, b Block, mul float64) coord.Point {
	for _, g := range b {
		switch g.W {
		case 'X':
			p.X = g.Arg * mul
		case 'Y':
			p.Y = g.Arg * mul
		case 'Z':
			p.Z = g.Arg * mul
		}
	}

	return p
}

func hasAxis(b Block) bool {
	for _, g := range b {
		if g.IsAxis() {
			return true
		}
	}
	return false
}

// arcLength returns the XY length of an R-form arc from a to b.
func arcLength(a, b coord.Point, r float64) (float64, error) {
	if r == 0 {
		return 0, errors.New("arc radius must be non-zero")
	}
	chord := a.DistanceXY(b.X, b.Y)
	rad := math.Abs(r)
	if chord == 0 {
		return 2 * math.Pi * rad, nil
	}
	if chord > 2*rad+1e-9 {
		return 0, errors.New("arc radius too small for endpoints")
	}
	theta := 2 * math.Asin(math.Min(1, chord/(2*rad)))
	if r < 0 {
		theta = 2*math.Pi - theta
	}
	return rad * theta, nil
}

func (vm *VM) Run(b Block) error {
	err := b.Validate()
	if err != nil {
		return err
	}
	var home bool
	for _, g := range b {
		if !isSupported(g) {
			return errors.New("unsupported code: " + g.String())
		}
		mg := g.ModalGroup()
		if mg != ModalGroupNone && mg != ModalGroupNonModal && mg != ModalGroupFeedRate {
			vm.modal[mg] = g.Arg
		}
		switch {
		case g.W == 'F':
			if g.Arg <= 0 {
				return errors.New("feed rate must be positive: " + g.String())
			}
			vm.feed = g.Arg
		case g == (Word{W: 'G', Arg: 28}):
			home = true
		}
	}

	mul := 1.0
	if vm.Inches() {
		mul = 25.4
	}

	if b.Has(Word{W: 'G', Arg: 4}) {
		if ok, s := b.Arg('S'); ok {
			vm.elapsed += time.Duration(s * float64(time.Second))
		} else if ok, ms := b.Arg('P'); ok {
			vm.elapsed += time.Duration(ms * float64(time.Millisecond))
		}
		return nil
	}

	if home {
		// homing moves are not counted as travel
		if !hasAxis(b) {
			vm.pos = coord.Point{}
		} else {
			vm.pos = applyBlock(vm.pos, b.Args(), 0)
		}
		return nil
	}

	args := b.Args()
	ok, e := args.Arg('E')
	if !hasAxis(args) && !ok {
		return nil
	}

	// apply motion
	start := vm.pos
	if vm.RelativeMotion() {
		vm.pos = vm.pos.Add(applyBlock(coord.Point{}, args, mul))
	} else {
		vm.pos = applyBlock(vm.pos, args, mul)
	}

	var dist float64
	switch vm.modal[ModalGroupMotion] {
	case 2, 3:
		okR, r := args.Arg('R')
		if !okR {
			return errors.New("arc without R word is unsupported")
		}
		l, err := arcLength(start, vm.pos, r*mul)
		if err != nil {
			return err
		}
		dz := vm.pos.Z - start.Z
		dist = math.Sqrt(l*l + dz*dz)
	default:
		dist = start.Distance(vm.pos)
	}
	vm.travel += dist
	if vm.feed > 0 {
		vm.elapsed += time.Duration(dist / vm.feed * float64(time.Minute))
	}

	if ok {
		e *= mul
		if vm.RelativeExtruder() {
			vm.extruded += e
		} else {
			vm.extruded += e - vm.lastE
			vm.lastE = e
		}
	}

	return nil
}

// Summary describes the effect of running a sequence of blocks.
type Summary struct {
	Blocks   int
	End      coord.Point
	Travel   float64
	Extruded float64
	Duration time.Duration
}

// Summarize runs blocks on a fresh VM.
func Summarize(blocks []Block) (*Summary, error) {
	vm := NewVM()
	var s Summary
	for _, b := range blocks {
		if len(b) == 0 {
			continue
		}
		err := vm.Run(b)
		if err != nil {
			return nil, errors.New("block " + b.String() + ": " + err.Error())
		}
		s.Blocks++
	}
	s.End = vm.pos
	s.Travel = vm.travel
	s.Extruded = vm.extruded
	s.Duration = vm.elapsed
	return &s, nil
}
