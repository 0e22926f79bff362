package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(5, 0, 3))
	assert.Equal(t, 0, Clamp(-1, 0, 3))
	assert.Equal(t, 2, Clamp(2, 0, 3))
	assert.Equal(t, float32(1.5), Clamp(float32(1.5), 1.0, 2.0))
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uint64(256), AlignUp(uint64(1), uint64(256)))
	assert.Equal(t, uint64(256), AlignUp(uint64(256), uint64(256)))
	assert.Equal(t, uint64(512), AlignUp(uint64(257), uint64(256)))
	assert.Equal(t, uint64(0), AlignUp(uint64(0), uint64(16)))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 7, Max(3, 7))
	assert.Equal(t, 3, Min(3, 7))
}
