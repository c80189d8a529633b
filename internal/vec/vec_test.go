package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLen(t *testing.T) {
	v := New(30, 40).ClampLen(5)
	assert.InDelta(t, 5, v.Len(), 1e-9)
	assert.InDelta(t, 3, v.X, 1e-9)
	assert.InDelta(t, 4, v.Y, 1e-9)

	short := New(1, 1)
	assert.Equal(t, short, short.ClampLen(5))
	assert.Equal(t, Zero, Zero.ClampLen(5))
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Zero, Zero.Normalize())
	assert.InDelta(t, 1, New(-3, 7).Normalize().Len(), 1e-12)
}

func TestFromAngleScreenAxes(t *testing.T) {
	right := FromAngle(0, 10)
	assert.InDelta(t, 10, right.X, 1e-9)
	assert.InDelta(t, 0, right.Y, 1e-9)

	up := FromAngle(90, 10)
	assert.InDelta(t, 0, up.X, 1e-9)
	assert.InDelta(t, -10, up.Y, 1e-9, "90 degrees points up the screen")

	diag := FromAngle(225, math.Sqrt2)
	assert.InDelta(t, -1, diag.X, 1e-9)
	assert.InDelta(t, 1, diag.Y, 1e-9)
}
