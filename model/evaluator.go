package model

import (
	"math"

	"github.com/prodrec/prodrec/core"
)

// RMSE computes the root mean square error over a rating table:
//
//	RMSE = \sqrt{\frac{1}{|T|} \sum_{(u,i,r,t)\in T} (\hat{r}_{ui}(t) - r)^2}
func RMSE(svd *TimeSVD, table *core.Table) float64 {
	if table.Len() == 0 {
		return 0
	}
	sum := 0.0
	for r := 0; r < table.Len(); r++ {
		u, i, rating, t := table.Get(r)
		diff := svd.Predict(u, i, t) - rating
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(table.Len()))
}

// MAE computes the mean absolute error over a rating table:
//
//	MAE = \frac{1}{|T|} \sum_{(u,i,r,t)\in T} |\hat{r}_{ui}(t) - r|
func MAE(svd *TimeSVD, table *core.Table) float64 {
	if table.Len() == 0 {
		return 0
	}
	sum := 0.0
	for r := 0; r < table.Len(); r++ {
		u, i, rating, t := table.Get(r)
		sum += math.Abs(svd.Predict(u, i, t) - rating)
	}
	return sum / float64(table.Len())
}
