package main

import (
	"time"

	"github.com/santanalab/pptool/artifact"
	"github.com/santanalab/pptool/config"
	"github.com/santanalab/pptool/coord"
	"github.com/santanalab/pptool/gcode"
	"github.com/santanalab/pptool/setup"
	"github.com/santanalab/pptool/toolpath"
	"go.trai.ch/zerr"
)

// LineRequest is the input of a line test.
type LineRequest struct {
	Start coord.Point
	toolpath.LineSpec
}

// CircleRequest is the input of a circle test.
type CircleRequest struct {
	Start coord.Point
	toolpath.CircleSpec
}

// GradientRequest is the input of a gradient test.
type GradientRequest struct {
	Start coord.Point
	toolpath.GradientSpec
}

func newLineRequest() LineRequest {
	return LineRequest{Start: setup.DefaultStart, LineSpec: toolpath.LineSpec{Axis: coord.X}}
}
func newCircleRequest() CircleRequest {
	return CircleRequest{Start: setup.DefaultStart}
}
func newGradientRequest() GradientRequest {
	return GradientRequest{Start: setup.DefaultStart, GradientSpec: toolpath.GradientSpec{Axis: coord.X, Mode: toolpath.ConstantSpeed}}
}

// Result describes a written artifact.
type Result struct {
	Kind     artifact.Kind
	File     string
	Blocks   int
	Travel   float64
	Extruded float64
	Duration time.Duration
}

type app struct {
	cfg    config.Config
	writer artifact.Writer
}

func newApp(cfg config.Config, dir string) *app {
	return &app{
		cfg:    cfg,
		writer: artifact.Writer{Dir: dir, Precision: cfg.Output.Precision},
	}
}

func (a *app) header(start coord.Point) []gcode.Block {
	return a.cfg.Setup().Header(start)
}

// extrusion converts an entered rate to the rate sent to the machine.
func (a *app) extrusion(rate float64) float64 {
	if a.cfg.Extruder.Reverse {
		return -rate
	}
	return rate
}

func normalizeAxis(a coord.Axis) coord.Axis {
	return coord.NormalizeAxis(string(a))
}

func (a *app) line(req LineRequest) (toolpath.Sequence, error) {
	spec := req.LineSpec
	spec.Axis = normalizeAxis(spec.Axis)
	spec.ExtrusionRate = a.extrusion(spec.ExtrusionRate)
	return toolpath.Line(spec, a.header(req.Start), req.Start)
}

func (a *app) circle(req CircleRequest) (toolpath.Sequence, error) {
	spec := req.CircleSpec
	spec.ExtrusionRate = a.extrusion(spec.ExtrusionRate)
	return toolpath.Circle(spec, a.header(req.Start), req.Start)
}

func (a *app) gradient(req GradientRequest) (toolpath.Sequence, error) {
	spec := req.GradientSpec
	spec.Axis = normalizeAxis(spec.Axis)
	m, err := toolpath.ParseMode(string(spec.Mode))
	if err != nil {
		return nil, err
	}
	spec.Mode = m
	return toolpath.Gradient(spec, a.header(req.Start), req.Start)
}

// save summarizes seq and writes it as the artifact for kind.
func (a *app) save(kind artifact.Kind, seq toolpath.Sequence) (*Result, error) {
	sum, err := gcode.Summarize(seq)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to summarize toolpath"), "kind", string(kind))
	}
	name, err := a.writer.Write(kind, seq)
	if err != nil {
		return nil, zerr.With(err, "kind", string(kind))
	}
	return &Result{
		Kind:     kind,
		File:     name,
		Blocks:   sum.Blocks,
		Travel:   sum.Travel,
		Extruded: sum.Extruded,
		Duration: sum.Duration,
	}, nil
}
