package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Add(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Point{X: 5, Y: 7, Z: 9}, a.Add(b))
}

func TestPoint_DistanceXY(t *testing.T) {
	dist := Point{X: 1, Y: 2, Z: 3}.DistanceXY(4, 5)
	assert.InEpsilon(t, 4.24264, dist, .01)
}

func TestPoint_Distance(t *testing.T) {
	assert.Equal(t, 5.0, Point{}.Distance(Point{X: 3, Z: 4}))
}

func TestPoint_GetWith(t *testing.T) {
	p := Point{X: 110, Y: 120, Z: 2}

	assert.Equal(t, 110.0, p.Get(X))
	assert.Equal(t, 120.0, p.Get(Y))
	assert.Equal(t, 2.0, p.Get(Z))

	q := p.With(Y, 130)
	assert.Equal(t, Point{X: 110, Y: 130, Z: 2}, q)
	assert.Equal(t, 120.0, p.Y, "With must not modify the receiver")
}

func TestPoint_IsFinite(t *testing.T) {
	assert.True(t, Point{X: 1}.IsFinite())
	assert.False(t, Point{Y: math.NaN()}.IsFinite())
	assert.False(t, Point{Z: math.Inf(-1)}.IsFinite())
}

func TestNormalizeAxis(t *testing.T) {
	for in, want := range map[string]Axis{"x": X, "Y": Y, " X axis": X, "z": Z} {
		a := NormalizeAxis(in)
		assert.Equal(t, want, a, in)
		assert.True(t, a.Valid(), in)
	}

	assert.Equal(t, Axis("E"), NormalizeAxis("e"))
	assert.False(t, NormalizeAxis("e").Valid())
	assert.Equal(t, byte('Y'), Y.Letter())
}
