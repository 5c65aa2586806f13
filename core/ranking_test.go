package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopN(t *testing.T) {
	scores := []Score{
		{"p1", 4.9},
		{"p2", 4.95},
		{"p3", 4.2},
	}
	top := TopN(scores, 2)
	assert.Equal(t, []Score{{"p2", 4.95}, {"p1", 4.9}}, top)
}

func TestTopNFewerThanN(t *testing.T) {
	scores := []Score{{"p1", 3.456}}
	top := TopN(scores, 10)
	assert.Equal(t, []Score{{"p1", 3.46}}, top)
}

func TestTopNEmpty(t *testing.T) {
	assert.Empty(t, TopN(nil, 5))
}

func TestTopRatings(t *testing.T) {
	scores := []Score{
		{"p1", 5.7},
		{"p2", -0.3},
		{"p3", 4.123},
	}
	top := TopRatings(scores, 3)
	assert.Equal(t, []Score{{"p1", 5.0}, {"p3", 4.12}, {"p2", 0.0}}, top)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 4.12, Round2(4.123))
	assert.Equal(t, 4.13, Round2(4.125))
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 0.0, ClampRating(-1))
	assert.Equal(t, 5.0, ClampRating(6))
	assert.Equal(t, 3.3, ClampRating(3.3))
}
