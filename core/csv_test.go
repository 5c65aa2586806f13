package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeCSV(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "ratings.csv")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRatings(t *testing.T) {
	path := writeCSV(t, "user_id,product_id,rating,timestamp\n"+
		"u1,p1,5,1000\n"+
		"u2,p2,oops,2000\n"+
		",p3,4,3000\n"+
		"u3,p3,4,4000\n")
	ratings, err := LoadRatings(path)
	assert.NoError(t, err)
	assert.Len(t, ratings, 2)
	assert.Equal(t, "u1", ratings[0].UserId)
	assert.Equal(t, "p1", ratings[0].ItemId)
	assert.Equal(t, 5.0, ratings[0].Score)
	assert.Equal(t, time.Unix(1000, 0).UTC(), ratings[0].Timestamp)
	assert.Equal(t, "u3", ratings[1].UserId)
}

func TestLoadRatingsColumnOrder(t *testing.T) {
	path := writeCSV(t, "timestamp,rating,product_id,user_id\n"+
		"1000,3.5,p1,u1\n")
	ratings, err := LoadRatings(path)
	assert.NoError(t, err)
	assert.Len(t, ratings, 1)
	assert.Equal(t, 3.5, ratings[0].Score)
}

func TestLoadRatingsMissingColumn(t *testing.T) {
	path := writeCSV(t, "user_id,product_id,rating\nu1,p1,5\n")
	_, err := LoadRatings(path)
	assert.Error(t, err)
}

func TestClean(t *testing.T) {
	ratings := []Rating{
		{"u1", "p1", 4, time.Unix(1000, 0)},
		{"u1", "p2", 9, time.Unix(2000, 0)},
		{"u2", "p2", 2, time.Unix(0, 0)},
	}
	cleaned := Clean(ratings)
	// Invalid score imputed with the hybrid baseline:
	// global = 3, userMean(u1) = 4, itemMean(p2) = 2.
	assert.InDelta(t, 3.0, cleaned[1].Score, 1e-9)
	// Non-positive timestamp replaced with the smallest positive one.
	assert.Equal(t, time.Unix(1000, 0), cleaned[2].Timestamp)
	// Valid rows untouched.
	assert.Equal(t, 4.0, cleaned[0].Score)
}

func TestCleanClamped(t *testing.T) {
	ratings := []Rating{
		{"u1", "p1", 5, time.Unix(1000, 0)},
		{"u1", "p2", 5, time.Unix(1000, 0)},
		{"u2", "p2", 5, time.Unix(1000, 0)},
		{"u2", "p3", -1, time.Unix(1000, 0)},
	}
	cleaned := Clean(ratings)
	assert.LessOrEqual(t, cleaned[3].Score, 5.0)
	assert.GreaterOrEqual(t, cleaned[3].Score, 0.0)
}
