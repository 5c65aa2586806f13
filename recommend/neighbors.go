package recommend

import (
	"math"
	"time"

	"github.com/juju/errors"

	"github.com/prodrec/prodrec/base/heap"
	"github.com/prodrec/prodrec/core"
)

// UserBased predicts ratings for a user from the k most similar users in the
// record set and returns the n best unrated products. The target user must
// appear in the records or a not-found error is returned. An empty
// neighborhood (no user with positive similarity) yields an empty result.
func UserBased(ratings []core.Rating, userId string, k, n int) ([]core.Score, error) {
	return userBased(ratings, userId, k, n, nil)
}

// UserBasedWithDecay is UserBased with every rating down-weighted by
// exp(-Δt·ln2/(daysTau·86400)), Δt measured back from the newest timestamp in
// the record set. The half-life daysTau is in days; as it grows the result
// converges to UserBased.
func UserBasedWithDecay(ratings []core.Rating, userId string, k, n int, daysTau float64) ([]core.Score, error) {
	var maxTime time.Time
	for _, rating := range ratings {
		if rating.Timestamp.After(maxTime) {
			maxTime = rating.Timestamp
		}
	}
	halfLife := daysTau * 86400
	return userBased(ratings, userId, k, n, func(ts time.Time) float64 {
		return math.Exp(-maxTime.Sub(ts).Seconds() * math.Ln2 / halfLife)
	})
}

func userBased(ratings []core.Rating, userId string, k, n int, weight func(ts time.Time) float64) ([]core.Score, error) {
	// Build per-user sparse vectors, last write wins on duplicates.
	vectors := make(map[string]map[string]float64)
	times := make(map[string]map[string]time.Time)
	for _, rating := range ratings {
		if _, exist := vectors[rating.UserId]; !exist {
			vectors[rating.UserId] = make(map[string]float64)
			times[rating.UserId] = make(map[string]time.Time)
		}
		vectors[rating.UserId][rating.ItemId] = rating.Score
		times[rating.UserId][rating.ItemId] = rating.Timestamp
	}
	target, exist := vectors[userId]
	if !exist {
		return nil, errors.NotFoundf("user %q", userId)
	}
	// Per-user mean ratings
	means := make(map[string]float64)
	for user, vector := range vectors {
		sum := 0.0
		for _, score := range vector {
			sum += score
		}
		means[user] = sum / float64(len(vector))
	}
	// Mean-centered, optionally decayed vectors
	centered := make(map[string]map[string]float64, len(vectors))
	for user, vector := range vectors {
		center := make(map[string]float64, len(vector))
		for item, score := range vector {
			value := score - means[user]
			if weight != nil {
				value *= weight(times[user][item])
			}
			center[item] = value
		}
		centered[user] = center
	}
	// Keep the k most similar users with positive similarity.
	neighbors := heap.NewTopK[string, float64](k)
	for user, vector := range centered {
		if user == userId {
			continue
		}
		if sim := core.Cosine(centered[userId], vector); sim > 0 {
			neighbors.Push(user, sim)
		}
	}
	// Aggregate neighbor deviations over products the target has not rated.
	numerators := make(map[string]float64)
	denominators := make(map[string]float64)
	for _, neighbor := range neighbors.PopAll() {
		user, sim := neighbor.Value, neighbor.Weight
		for item, score := range vectors[user] {
			if _, rated := target[item]; rated {
				continue
			}
			value := score - means[user]
			w := 1.0
			if weight != nil {
				w = weight(times[user][item])
			}
			numerators[item] += sim * value * w
			denominators[item] += math.Abs(sim) * w
		}
	}
	scores := make([]core.Score, 0, len(numerators))
	for item, numerator := range numerators {
		if denominators[item] != 0 {
			scores = append(scores, core.Score{
				Id:    item,
				Score: numerator/denominators[item] + means[userId],
			})
		}
	}
	return core.TopRatings(scores, n), nil
}
