package model

import "math/rand"

// RandomGenerator is a seeded random generator for parameter initialization.
type RandomGenerator struct {
	*rand.Rand
}

// NewRandomGenerator creates a random generator from a seed.
func NewRandomGenerator(seed int64) RandomGenerator {
	return RandomGenerator{rand.New(rand.NewSource(seed))}
}

// MakeNormalVector makes a vector filled with normal random values.
func (rng RandomGenerator) MakeNormalVector(size int, mean, stdDev float64) []float64 {
	ret := make([]float64, size)
	for i := range ret {
		ret[i] = rng.NormFloat64()*stdDev + mean
	}
	return ret
}

// MakeNormalMatrix makes a matrix filled with normal random values.
func (rng RandomGenerator) MakeNormalMatrix(row, col int, mean, stdDev float64) [][]float64 {
	ret := make([][]float64, row)
	for i := range ret {
		ret[i] = rng.MakeNormalVector(col, mean, stdDev)
	}
	return ret
}
