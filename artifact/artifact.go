// Package artifact persists generated toolpaths to their well-known files.
package artifact

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/santanalab/pptool/gcode"
	"go.trai.ch/zerr"
)

// Kind names a test type and its output file.
type Kind string

const (
	Line     Kind = "Line_Test"
	Circle   Kind = "Circle_Test"
	Gradient Kind = "Gradient_Test"
)

// Ext is appended to every artifact name.
const Ext = ".gcode"

// Kinds lists every artifact kind.
var Kinds = []Kind{Line, Circle, Gradient}

func (k Kind) Filename() string { return string(k) + Ext }

// ParseKind accepts "line", "circle", "gradient" or a full kind name.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), strings.ToLower(Ext))
	for _, k := range Kinds {
		if s == strings.ToLower(string(k)) || s+"_test" == strings.ToLower(string(k)) {
			return k, nil
		}
	}
	return "", zerr.With(zerr.New("unknown artifact kind"), "kind", s)
}

// Writer writes artifacts into Dir.
type Writer struct {
	Dir string

	// Precision is the maximum number of decimals per number. Negative
	// values write every number exactly, see gcode.DefaultPrecision.
	Precision int
}

// Path returns the file a kind is written to.
func (w Writer) Path(k Kind) string {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, k.Filename())
}

// Write replaces the artifact for k with blocks, one line each.
//
// The file is written next to its final name and renamed into place; on
// failure the previous artifact, if any, is left as it was.
func (w Writer) Write(k Kind, blocks []gcode.Block) (string, error) {
	name := w.Path(k)
	dir := filepath.Dir(name)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", dir)
	}

	f, err := os.CreateTemp(dir, "."+k.Filename()+".*")
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create artifact"), "path", name)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	_, err = io.Copy(f, gcode.NewBufferPrecision(&gcode.BlocksReader{Blocks: blocks}, w.Precision))
	if err != nil {
		f.Close()
		return "", zerr.With(zerr.Wrap(err, "failed to write artifact"), "path", name)
	}
	err = f.Close()
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write artifact"), "path", name)
	}

	err = os.Chmod(tmp, 0644)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write artifact"), "path", name)
	}
	err = os.Rename(tmp, name)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to replace artifact"), "path", name)
	}

	return name, nil
}
