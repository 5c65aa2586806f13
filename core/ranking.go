package core

import (
	"math"

	"github.com/prodrec/prodrec/base/heap"
)

// Score is a scored product shared by every recommendation surface.
type Score struct {
	Id    string  `json:"product_id"`
	Score float64 `json:"predicted_rating"`
}

// Round2 rounds a score to 2 decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ClampRating clamps a predicted rating into the valid range [0, 5].
func ClampRating(x float64) float64 {
	return math.Max(0, math.Min(5, x))
}

// TopN selects the n highest scores in descending order, rounded to 2
// decimal places. Order among equal scores is unspecified.
func TopN(scores []Score, n int) []Score {
	pq := heap.NewTopK[string, float64](n)
	for _, score := range scores {
		pq.Push(score.Id, score.Score)
	}
	elems := pq.PopAll()
	top := make([]Score, len(elems))
	for i, elem := range elems {
		top[i] = Score{Id: elem.Value, Score: Round2(elem.Weight)}
	}
	return top
}

// TopRatings selects the n highest scores and clamps them into the valid
// rating range. Used by prediction surfaces whose scores are ratings.
func TopRatings(scores []Score, n int) []Score {
	top := TopN(scores, n)
	for i := range top {
		top[i].Score = Round2(ClampRating(top[i].Score))
	}
	return top
}
