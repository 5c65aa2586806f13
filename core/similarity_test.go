package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	a := map[string]float64{"i1": 1, "i2": 2}
	b := map[string]float64{"i1": 1, "i2": 2}
	assert.InDelta(t, 1.0, Cosine(a, b), 1e-9)
	// Symmetry
	c := map[string]float64{"i1": 3, "i3": 4}
	assert.InDelta(t, Cosine(a, c), Cosine(c, a), 1e-9)
	// Disjoint vectors
	d := map[string]float64{"i5": 1}
	assert.Equal(t, 0.0, Cosine(a, d))
	// Zero norm
	assert.Equal(t, 0.0, Cosine(a, map[string]float64{}))
	assert.Equal(t, 0.0, Cosine(map[string]float64{}, a))
}

func TestCosineFullNorms(t *testing.T) {
	// The denominator runs over all keys, not only the intersection.
	a := map[string]float64{"i1": 3, "i2": 4}
	b := map[string]float64{"i1": 1}
	assert.InDelta(t, 3.0/5.0, Cosine(a, b), 1e-9)
}
