package core

import "math"

// Cosine computes the cosine similarity between two sparse vectors keyed by
// item identifier. The numerator runs over the key intersection while the
// norms run over each vector's entire key set. Returns 0 when either norm is
// zero.
func Cosine(a, b map[string]float64) float64 {
	dot := 0.0
	for key, value := range a {
		if other, exist := b[key]; exist {
			dot += value * other
		}
	}
	normA := 0.0
	for _, value := range a {
		normA += value * value
	}
	normB := 0.0
	for _, value := range b {
		normB += value * value
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
