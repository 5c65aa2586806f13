package recommend

import (
	"time"

	"github.com/prodrec/prodrec/core"
)

// TopProducts ranks products by average rating over a trailing window of
// days, measured back from the newest timestamp in the record set. Products
// with fewer than minRatings ratings inside the window are dropped. A
// non-positive days keeps the whole record set.
func TopProducts(ratings []core.Rating, days int, minRatings, n int) []core.Score {
	var maxTime time.Time
	for _, rating := range ratings {
		if rating.Timestamp.After(maxTime) {
			maxTime = rating.Timestamp
		}
	}
	var cutoff time.Time
	if days > 0 {
		cutoff = maxTime.AddDate(0, 0, -days)
	}
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rating := range ratings {
		if days > 0 && rating.Timestamp.Before(cutoff) {
			continue
		}
		sums[rating.ItemId] += rating.Score
		counts[rating.ItemId]++
	}
	scores := make([]core.Score, 0, len(sums))
	for item, sum := range sums {
		if counts[item] >= minRatings {
			scores = append(scores, core.Score{Id: item, Score: sum / float64(counts[item])})
		}
	}
	return core.TopRatings(scores, n)
}
