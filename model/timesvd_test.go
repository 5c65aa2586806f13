package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/prodrec/prodrec/core"
)

func newTrivialModel() *TimeSVD {
	return &TimeSVD{
		Mu:           3,
		UserBias:     []float64{1},
		UserAlpha:    []float64{0.5},
		UserMeanTime: []float64{0.5},
		ItemBias:     []float64{-1, 0},
		ItemBinBias:  []float64{10, 10},
		UserFactor:   [][]float64{{2}},
		ItemFactor:   [][]float64{{1}, {0}},
		ImplFactor:   [][]float64{{1}, {3}},
		UserRated:    [][]int{{0, 1}},
		SqrtNu:       []float64{2},
	}
}

func TestPredictColdStart(t *testing.T) {
	svd := newTrivialModel()
	assert.Equal(t, 3.0, svd.Predict(core.NotId, core.NotId, 0.5))
	assert.Equal(t, 2.0, svd.Predict(core.NotId, 0, 0.5))
	assert.Equal(t, 4.0, svd.Predict(0, core.NotId, 0.5))
}

func TestPredict(t *testing.T) {
	svd := newTrivialModel()
	// dev = 0, sum_y = (1+3)/2 = 2, q·(p+sum_y) = 1*(2+2) = 4
	assert.InDelta(t, 3+1-1+4, svd.Predict(0, 0, 0.5), 1e-9)
	// dev = 0.5 adds alpha*dev = 0.25, q = 0 kills the factor term
	assert.InDelta(t, 3+1+0.25+0, svd.Predict(0, 1, 1.0), 1e-9)
	// The item bin bias never contributes at inference.
	assert.Less(t, svd.Predict(0, 0, 0.5), 10.0)
}

func trainingRatings() []core.Rating {
	ratings := make([]core.Rating, 0)
	users := []string{"u1", "u2", "u3", "u4"}
	items := []string{"p1", "p2", "p3"}
	scores := [][]float64{
		{5, 4, 1},
		{4, 5, 2},
		{1, 2, 5},
		{2, 1, 4},
	}
	for u, user := range users {
		for i, item := range items {
			ratings = append(ratings, core.Rating{
				UserId:    user,
				ItemId:    item,
				Score:     scores[u][i],
				Timestamp: time.Date(2020, time.Month(u+i+1), 1, 0, 0, 0, 0, time.UTC),
			})
		}
	}
	return ratings
}

func TestFit(t *testing.T) {
	table, users, items, tMin, tMax := core.Preprocess(trainingRatings())
	svd := NewTimeSVD(Params{
		NFactors:    4,
		NEpochs:     10,
		RandomState: 0,
	})
	epochs := 0
	err := svd.Fit(table, users, items, tMin, tMax,
		WithEpochCallback(func(epoch int, trainRMSE, testRMSE float64) {
			epochs = epoch
			assert.False(t, math.IsNaN(trainRMSE))
			assert.True(t, math.IsNaN(testRMSE))
		}))
	assert.NoError(t, err)
	assert.Equal(t, 10, epochs)
	assert.InDelta(t, table.MeanScore(), svd.Mu, 1e-9)
	// Prediction is pure.
	first := svd.Predict(0, 0, 0.5)
	assert.Equal(t, first, svd.Predict(0, 0, 0.5))
	assert.False(t, math.IsNaN(first))
	// Cold-start rules hold on a trained model.
	assert.Equal(t, svd.Mu, svd.Predict(core.NotId, core.NotId, 0.5))
}

func TestFitWithTestSet(t *testing.T) {
	table, users, items, tMin, tMax := core.Preprocess(trainingRatings())
	train, test := core.LeaveLastOut(table)
	svd := NewTimeSVD(Params{NFactors: 2, NEpochs: 5, RandomState: 42})
	err := svd.Fit(train, users, items, tMin, tMax,
		WithTestSet(test),
		WithEpochCallback(func(epoch int, trainRMSE, testRMSE float64) {
			assert.False(t, math.IsNaN(testRMSE))
		}))
	assert.NoError(t, err)
	assert.False(t, math.IsNaN(RMSE(svd, test)))
}

func TestFitDeterministic(t *testing.T) {
	table, users, items, tMin, tMax := core.Preprocess(trainingRatings())
	a := NewTimeSVD(Params{NFactors: 4, NEpochs: 5, RandomState: 7})
	b := NewTimeSVD(Params{NFactors: 4, NEpochs: 5, RandomState: 7})
	assert.NoError(t, a.Fit(table, users, items, tMin, tMax))
	assert.NoError(t, b.Fit(table, users, items, tMin, tMax))
	assert.Equal(t, a.Predict(0, 1, 0.3), b.Predict(0, 1, 0.3))
}
