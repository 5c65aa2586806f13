package recommend

import (
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"

	"github.com/prodrec/prodrec/core"
)

func at(day int) time.Time {
	return time.Date(2020, 6, day, 0, 0, 0, 0, time.UTC)
}

func neighborRatings() []core.Rating {
	return []core.Rating{
		{UserId: "u1", ItemId: "p1", Score: 5, Timestamp: at(1)},
		{UserId: "u1", ItemId: "p2", Score: 3, Timestamp: at(2)},
		{UserId: "u2", ItemId: "p1", Score: 4, Timestamp: at(3)},
		{UserId: "u2", ItemId: "p2", Score: 2, Timestamp: at(4)},
		{UserId: "u2", ItemId: "p3", Score: 4, Timestamp: at(5)},
		{UserId: "u3", ItemId: "p1", Score: 1, Timestamp: at(6)},
		{UserId: "u3", ItemId: "p2", Score: 5, Timestamp: at(7)},
	}
}

func TestUserBased(t *testing.T) {
	// u2 agrees with u1 and rated p3 at 4 with own mean 10/3, u3 disagrees
	// (negative similarity, excluded), so the only candidate is
	// (4 - 10/3) + mean(u1) = 2/3 + 4.
	scores, err := UserBased(neighborRatings(), "u1", 5, 10)
	assert.NoError(t, err)
	assert.Equal(t, []core.Score{{Id: "p3", Score: 4.67}}, scores)
}

func TestUserBasedUnknownUser(t *testing.T) {
	_, err := UserBased(neighborRatings(), "nobody", 5, 10)
	assert.True(t, errors.IsNotFound(err))
	_, err = UserBased(nil, "u1", 5, 10)
	assert.True(t, errors.IsNotFound(err))
}

func TestUserBasedSingleUser(t *testing.T) {
	ratings := []core.Rating{
		{UserId: "u1", ItemId: "p1", Score: 5, Timestamp: at(1)},
		{UserId: "u1", ItemId: "p2", Score: 1, Timestamp: at(2)},
	}
	scores, err := UserBased(ratings, "u1", 1, 10)
	assert.NoError(t, err)
	assert.Empty(t, scores)
}

func TestUserBasedDisjointUsers(t *testing.T) {
	// No common products means zero similarity, which is not positive, so
	// the neighborhood stays empty.
	ratings := []core.Rating{
		{UserId: "u1", ItemId: "p1", Score: 5, Timestamp: at(1)},
		{UserId: "u1", ItemId: "p2", Score: 1, Timestamp: at(2)},
		{UserId: "u2", ItemId: "p3", Score: 5, Timestamp: at(3)},
		{UserId: "u2", ItemId: "p4", Score: 1, Timestamp: at(4)},
	}
	scores, err := UserBased(ratings, "u1", 5, 10)
	assert.NoError(t, err)
	assert.Empty(t, scores)
}

func TestUserBasedDuplicateRatings(t *testing.T) {
	// The later occurrence wins, flipping u2 into disagreement with u1.
	ratings := append(neighborRatings(),
		core.Rating{UserId: "u2", ItemId: "p1", Score: 1, Timestamp: at(8)},
		core.Rating{UserId: "u2", ItemId: "p2", Score: 5, Timestamp: at(9)})
	scores, err := UserBased(ratings, "u1", 5, 10)
	assert.NoError(t, err)
	assert.Empty(t, scores)
}

func TestUserBasedWithDecayConvergence(t *testing.T) {
	// A huge half-life weights every rating by almost exactly 1.
	plain, err := UserBased(neighborRatings(), "u1", 5, 10)
	assert.NoError(t, err)
	decayed, err := UserBasedWithDecay(neighborRatings(), "u1", 5, 10, 1e9)
	assert.NoError(t, err)
	assert.Equal(t, plain, decayed)
}

func TestUserBasedWithDecayEqualTimestamps(t *testing.T) {
	// A uniform weight cancels in both the similarity and the prediction
	// ratio, so equal timestamps reproduce the plain variant at any
	// half-life.
	ratings := neighborRatings()
	for i := range ratings {
		ratings[i].Timestamp = at(1)
	}
	plain, err := UserBased(ratings, "u1", 5, 10)
	assert.NoError(t, err)
	decayed, err := UserBasedWithDecay(ratings, "u1", 5, 10, 0.5)
	assert.NoError(t, err)
	assert.Equal(t, plain, decayed)
}
