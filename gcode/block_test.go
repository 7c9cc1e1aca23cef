package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlock_String(t *testing.T) {
	b := Block{{W: 'G', Arg: 2}, {W: 'X', Arg: 110}, {W: 'Y', Arg: 110}, {W: 'E', Arg: -3.14159265}, {W: 'R', Arg: 5}}
	assert.Equal(t, "G2 X110 Y110 E-3.14159265 R5", b.String())
	assert.Equal(t, "G2 X110 Y110 E-3.14159 R5", b.Format(5))
	assert.Equal(t, "G2 X110 Y110 E-3.1 R5", b.Format(1))
	assert.Equal(t, "", Block{}.String())
}

func TestBlock_Validate(t *testing.T) {
	assert.NoError(t, Block{{W: 'G', Arg: 4}, {W: 'S', Arg: 2}}.Validate())
	assert.NoError(t, Block{{W: 'G', Arg: 0}, {W: 'F', Arg: 1000}}.Validate())
	assert.Error(t, Block{{W: 'X', Arg: 1}, {W: 'X', Arg: 2}}.Validate())
	assert.Error(t, Block{{W: 'G', Arg: 0}, {W: 'G', Arg: 1}}.Validate())
	assert.Error(t, Block{{W: 'M', Arg: 82}, {W: 'M', Arg: 83}}.Validate())
	assert.Error(t, Block{{W: '1', Arg: 2}}.Validate())
}

func TestBlock_ArgsClone(t *testing.T) {
	b := Block{{W: 'G', Arg: 1}, {W: 'X', Arg: 120}, {W: 'E', Arg: -2}}
	assert.Equal(t, Block{{W: 'X', Arg: 120}, {W: 'E', Arg: -2}}, b.Args())

	ok, e := b.Arg('E')
	assert.True(t, ok)
	assert.Equal(t, -2.0, e)
	ok, _ = b.Arg('F')
	assert.False(t, ok)

	c := b.Clone()
	c.SetArg('X', 130)
	ok, x := b.Arg('X')
	assert.True(t, ok)
	assert.Equal(t, 120.0, x)
	assert.True(t, b.Has(Word{W: 'G', Arg: 1}))
	assert.True(t, b.HasModal())
	assert.False(t, b.Args().HasModal())
}

func TestCloneBlocks(t *testing.T) {
	orig := []Block{{{W: 'G', Arg: 21}}, {}}
	c := CloneBlocks(orig)
	c[0][0].Arg = 20
	c = append(c, Block{{W: 'T', Arg: 0}})

	assert.Equal(t, 21.0, orig[0][0].Arg)
	assert.Len(t, orig, 2)
	assert.Nil(t, CloneBlocks(nil))
}
