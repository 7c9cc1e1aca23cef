package gcode

import (
	"strconv"
	"strings"
)

// DefaultPrecision is the precision used by String. A negative precision
// selects the shortest representation that parses back to the same value.
const DefaultPrecision = -1

type Word struct {
	W   byte
	Arg float64
}

func (w Word) IsAxis() bool {
	switch w.W {
	case 'X', 'Y', 'Z': // maybe someday 'A', 'B', 'C', 'U', 'V', 'W':
		return true
	}
	return false
}

func (w Word) IsValid() bool {
	return w.W >= 'A' && w.W <= 'Z'
}

func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	s = strings.TrimRight(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// Format renders the word with at most prec decimals, or exactly when prec
// is negative.
func (w Word) Format(prec int) string {
	return string(w.W) + formatFloat(w.Arg, prec)
}

func (w Word) String() string {
	return w.Format(DefaultPrecision)
}
