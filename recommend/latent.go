// Package recommend builds ranked product recommendations from either a
// trained latent-factor model or on-the-fly user similarity.
package recommend

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"

	"github.com/prodrec/prodrec/core"
	"github.com/prodrec/prodrec/model"
)

// Latent returns the n products with the highest predicted rating for a user
// according to a trained model, evaluated at the given reference time. With
// excludeRated set, products the user rated during training are left out.
// Users unseen during training yield a not-found error.
func Latent(svd *model.TimeSVD, userId string, at time.Time, excludeRated bool, n int) ([]core.Score, error) {
	u, exist := svd.Users.ToIndex(userId)
	if !exist {
		return nil, errors.NotFoundf("user %q", userId)
	}
	t := core.NormalizeTime(at, svd.TMin, svd.TMax)
	rated := mapset.NewThreadUnsafeSet[int]()
	if excludeRated {
		for _, j := range svd.UserRated[u] {
			rated.Add(j)
		}
	}
	scores := make([]core.Score, 0, svd.Items.Len())
	for i, id := range svd.Items.Ids() {
		if rated.Contains(i) {
			continue
		}
		scores = append(scores, core.Score{Id: id, Score: svd.Predict(u, i, t)})
	}
	return core.TopRatings(scores, n), nil
}
