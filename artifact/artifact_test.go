package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/santanalab/pptool/coord"
	"github.com/santanalab/pptool/gcode"
	"github.com/santanalab/pptool/setup"
	"github.com/santanalab/pptool/toolpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	assert.Equal(t, "Line_Test.gcode", Line.Filename())
	assert.Equal(t, "Circle_Test.gcode", Circle.Filename())
	assert.Equal(t, "Gradient_Test.gcode", Gradient.Filename())

	for in, exp := range map[string]Kind{
		"line":                Line,
		"Circle":              Circle,
		"gradient_test":       Gradient,
		"Gradient_Test.gcode": Gradient,
	} {
		k, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, exp, k)
	}

	_, err := ParseKind("square")
	assert.Error(t, err)
}

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dir: filepath.Join(dir, "out"), Precision: 5}

	header := setup.DefaultOptions().Header(setup.DefaultStart)
	seq, err := toolpath.Line(toolpath.LineSpec{Length: 10, ExtrusionRate: -1, MoveRate: 5, Axis: coord.X}, header, setup.DefaultStart)
	require.NoError(t, err)

	name, err := w.Write(Line, seq)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "Line_Test.gcode"), name)

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
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
		"G0 F300",
		"G1 X120 E-2",
	}, "\n")+"\n", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files should remain")
}

func TestWriter_RoundTrip(t *testing.T) {
	w := Writer{Dir: t.TempDir(), Precision: 10}

	spec := toolpath.GradientSpec{Steps: 6, Length: 50, Initial: 2, Final: 12, Constant: 0.8, Axis: coord.Y, Mode: toolpath.ConstantFlowRate}
	seq, err := toolpath.Gradient(spec, setup.DefaultOptions().Header(setup.DefaultStart), setup.DefaultStart)
	require.NoError(t, err)

	name, err := w.Write(Gradient, seq)
	require.NoError(t, err)

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	parsed, err := gcode.ParseAll(string(data))
	require.NoError(t, err)

	require.Len(t, parsed, len(seq))
	for i := range parsed {
		assert.Equal(t, seq[i].Format(10), parsed[i].Format(10))
	}
}

func TestWriter_ExactByDefault(t *testing.T) {
	w := Writer{Dir: t.TempDir(), Precision: gcode.DefaultPrecision}

	line, err := toolpath.Line(toolpath.LineSpec{Length: 1, ExtrusionRate: -0.00001, MoveRate: 10, Axis: coord.X}, nil, setup.DefaultStart)
	require.NoError(t, err)
	circle, err := toolpath.Circle(toolpath.CircleSpec{Radius: 5, ExtrusionRate: 1, MoveRate: 10}, nil, setup.DefaultStart)
	require.NoError(t, err)

	for k, seq := range map[Kind]toolpath.Sequence{Line: line, Circle: circle} {
		name, err := w.Write(k, seq)
		require.NoError(t, err)
		data, err := os.ReadFile(name)
		require.NoError(t, err)
		parsed, err := gcode.ParseAll(string(data))
		require.NoError(t, err)
		require.Len(t, parsed, len(seq), k)

		ok, exp := seq[1].Arg('E')
		require.True(t, ok)
		ok, e := parsed[1].Arg('E')
		require.True(t, ok, k)
		assert.NotZero(t, e, k)
		assert.Equal(t, exp, e, k)
	}

	data, err := os.ReadFile(w.Path(Circle))
	require.NoError(t, err)
	assert.Equal(t, "G0 F600\nG2 X110 Y110 E3.141592653589793 R5\n", string(data))
}

func TestWriter_Overwrite(t *testing.T) {
	w := Writer{Dir: t.TempDir(), Precision: 5}

	_, err := w.Write(Circle, []gcode.Block{{{W: 'G', Arg: 21}}, {{W: 'G', Arg: 90}}})
	require.NoError(t, err)
	name, err := w.Write(Circle, []gcode.Block{{{W: 'M', Arg: 83}}})
	require.NoError(t, err)

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "M83\n", string(data))
}

func TestWriter_BadDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := Writer{Dir: file}.Write(Line, nil)
	assert.Error(t, err)
}

func TestWriter_DefaultDir(t *testing.T) {
	assert.Equal(t, "Line_Test.gcode", Writer{}.Path(Line))
}
