package gcode

import (
	"strings"
)

// Parse returns the blocks in data, skipping blank lines and comments.
func Parse(data string) ([]Block, error) {
	return ReadAll(NewParser(strings.NewReader(data)))
}

// ParseAll is like Parse but keeps blank lines as empty blocks.
func ParseAll(data string) ([]Block, error) {
	p := NewParser(strings.NewReader(data))
	p.KeepBlank = true
	return ReadAll(p)
}

func MustParse(data string) []Block {
	b, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return b
}
