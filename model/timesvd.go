package model

import (
	"math"

	"github.com/juju/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/prodrec/prodrec/base/log"
	"github.com/prodrec/prodrec/core"
)

// TimeSVD is a temporal latent-factor model in the style of TimeSVD++.
// The prediction \hat{r}_{ui}(t) is set as:
//
//	\hat{r}_{ui}(t) = μ + b_u + α_u·dev_u(t) + b_i + q_i^T(p_u + |N(u)|^{-1/2} Σ_{j∈N(u)} y_j)
//
// where dev_u(t) = t - mean interaction time of u and N(u) is the set of
// items rated by u. All fields are exported for gob serialization. After
// Fit returns, the state is read-only and safe for concurrent Predict calls.
type TimeSVD struct {
	Mu           float64     // global mean rating
	TimeMean     float64     // global mean normalized time
	UserBias     []float64   // b_u
	UserAlpha    []float64   // α_u
	UserMeanTime []float64   // mean normalized time per user
	ItemBias     []float64   // b_i
	ItemBinBias  []float64   // β_i, updated during training only
	UserFactor   [][]float64 // p_u
	ItemFactor   [][]float64 // q_i
	ImplFactor   [][]float64 // y_j
	UserRated    [][]int     // N(u)
	SqrtNu       []float64   // sqrt(|N(u)|), 1 if empty
	TMin         float64
	TMax         float64
	Users        *core.Indexer
	Items        *core.Indexer
	Params       Params
}

// NewTimeSVD creates an untrained model.
// Parameters:
//
//	n_factors    - The number of latent factors. Default is 20.
//	n_epochs     - The number of SGD iterations. Default is 20.
//	lr           - The learning rate of SGD. Default is 0.005.
//	reg          - The regularization strength. Default is 0.02.
//	init_std_dev - The standard deviation of initial latent factors. Default is 0.01.
//	random_state - The seed of the random generator. Default is 0.
func NewTimeSVD(params Params) *TimeSVD {
	return &TimeSVD{Params: params.Copy()}
}

// Predict returns the predicted rating of item i by user u at normalized
// time t. Unknown users or items are passed as core.NotId and fall back to
// the bias terms that remain defined.
func (svd *TimeSVD) Predict(u, i int, t float64) float64 {
	switch {
	case u == core.NotId && i == core.NotId:
		return svd.Mu
	case u == core.NotId:
		return svd.Mu + svd.ItemBias[i]
	case i == core.NotId:
		return svd.Mu + svd.UserBias[u]
	}
	dev := t - svd.UserMeanTime[u]
	vec := svd.implicitFactor(u, nil)
	floats.Add(vec, svd.UserFactor[u])
	return svd.Mu + svd.UserBias[u] + svd.UserAlpha[u]*dev +
		svd.ItemBias[i] + floats.Dot(svd.ItemFactor[i], vec)
}

// implicitFactor computes |N(u)|^{-1/2} Σ_{j∈N(u)} y_j into buf, allocating
// when buf is nil.
func (svd *TimeSVD) implicitFactor(u int, buf []float64) []float64 {
	if buf == nil {
		buf = make([]float64, len(svd.UserFactor[u]))
	} else {
		for f := range buf {
			buf[f] = 0
		}
	}
	for _, j := range svd.UserRated[u] {
		floats.Add(buf, svd.ImplFactor[j])
	}
	floats.Scale(1/svd.SqrtNu[u], buf)
	return buf
}

// FitConfig carries optional arguments of Fit.
type FitConfig struct {
	TestSet *core.Table
	OnEpoch func(epoch int, trainRMSE, testRMSE float64)
}

// FitOption sets an optional argument of Fit.
type FitOption func(*FitConfig)

// WithTestSet reports the RMSE over a held-out set after every epoch.
func WithTestSet(test *core.Table) FitOption {
	return func(config *FitConfig) {
		config.TestSet = test
	}
}

// WithEpochCallback invokes a callback after every epoch. The test RMSE is
// NaN when no test set was supplied.
func WithEpochCallback(callback func(epoch int, trainRMSE, testRMSE float64)) FitOption {
	return func(config *FitConfig) {
		config.OnEpoch = callback
	}
}

// Fit trains the model by SGD over the training table. Rows are visited in
// input order, one pass per epoch, always for the full epoch count. The
// indexers and time bounds come from preprocessing and are retained for
// inference. A non-finite training error aborts the run.
func (svd *TimeSVD) Fit(train *core.Table, users, items *core.Indexer, tMin, tMax float64, options ...FitOption) error {
	config := new(FitConfig)
	for _, option := range options {
		option(config)
	}
	// Setup parameters
	nFactors := svd.Params.GetInt(NFactors, 20)
	nEpochs := svd.Params.GetInt(NEpochs, 20)
	lr := svd.Params.GetFloat64(Lr, 0.005)
	reg := svd.Params.GetFloat64(Reg, 0.02)
	initStdDev := svd.Params.GetFloat64(InitStdDev, 0.01)
	rng := NewRandomGenerator(svd.Params.GetInt64(RandomState, 0))
	// Initialize parameters
	userCount := users.Len()
	itemCount := items.Len()
	svd.Users = users
	svd.Items = items
	svd.TMin = tMin
	svd.TMax = tMax
	svd.Mu = train.MeanScore()
	svd.TimeMean = train.MeanTime()
	svd.UserBias = make([]float64, userCount)
	svd.UserAlpha = make([]float64, userCount)
	svd.ItemBias = make([]float64, itemCount)
	svd.ItemBinBias = make([]float64, itemCount)
	svd.UserFactor = rng.MakeNormalMatrix(userCount, nFactors, 0, initStdDev)
	svd.ItemFactor = rng.MakeNormalMatrix(itemCount, nFactors, 0, initStdDev)
	svd.ImplFactor = rng.MakeNormalMatrix(itemCount, nFactors, 0, initStdDev)
	svd.UserRated = train.UserRatedItems(userCount)
	svd.SqrtNu = make([]float64, userCount)
	svd.UserMeanTime = make([]float64, userCount)
	timeSums := make([]float64, userCount)
	for r := 0; r < train.Len(); r++ {
		u, _, _, t := train.Get(r)
		timeSums[u] += t
	}
	for u := 0; u < userCount; u++ {
		if n := len(svd.UserRated[u]); n > 0 {
			svd.SqrtNu[u] = math.Sqrt(float64(n))
			svd.UserMeanTime[u] = timeSums[u] / float64(n)
		} else {
			svd.SqrtNu[u] = 1
		}
	}
	// Create buffers
	sumY := make([]float64, nFactors)
	pOld := make([]float64, nFactors)
	// Stochastic gradient descent
	for epoch := 0; epoch < nEpochs; epoch++ {
		for r := 0; r < train.Len(); r++ {
			u, i, rating, t := train.Get(r)
			dev := t - svd.UserMeanTime[u]
			svd.implicitFactor(u, sumY)
			p := svd.UserFactor[u]
			q := svd.ItemFactor[i]
			// The training objective includes the item bin bias although
			// inference does not read it back.
			pred := svd.Mu + svd.UserBias[u] + svd.UserAlpha[u]*dev +
				svd.ItemBias[i] + svd.ItemBinBias[i]
			for f := 0; f < nFactors; f++ {
				pred += q[f] * (p[f] + sumY[f])
			}
			err := rating - pred
			if math.IsNaN(err) || math.IsInf(err, 0) {
				return errors.Errorf("non-finite training error at epoch %d row %d", epoch, r)
			}
			err = math.Max(-5, math.Min(5, err))
			// Update biases
			svd.UserBias[u] += lr * (err - reg*svd.UserBias[u])
			svd.ItemBias[i] += lr * (err - reg*svd.ItemBias[i])
			svd.UserAlpha[u] += lr * (err*dev - reg*svd.UserAlpha[u])
			svd.ItemBinBias[i] += lr * (err - reg*svd.ItemBinBias[i])
			// Update latent factors, using the pre-update user factor in
			// the item factor's gradient.
			copy(pOld, p)
			for f := 0; f < nFactors; f++ {
				p[f] += lr * (err*q[f] - reg*p[f])
			}
			for f := 0; f < nFactors; f++ {
				q[f] += lr * (err*(pOld[f]+sumY[f]) - reg*q[f])
			}
			// Update implicit factors with decoupled weight decay
			for _, j := range svd.UserRated[u] {
				y := svd.ImplFactor[j]
				for f := 0; f < nFactors; f++ {
					y[f] += lr * err * q[f] / svd.SqrtNu[u]
					y[f] *= 1 - lr*reg
				}
			}
		}
		trainRMSE := RMSE(svd, train)
		testRMSE := math.NaN()
		if config.TestSet != nil {
			testRMSE = RMSE(svd, config.TestSet)
		}
		log.Logger().Debug("fit TimeSVD",
			zap.Int("epoch", epoch+1),
			zap.Int("n_epochs", nEpochs),
			zap.Float64("train_rmse", trainRMSE),
			zap.Float64("test_rmse", testRMSE))
		if config.OnEpoch != nil {
			config.OnEpoch(epoch+1, trainRMSE, testRMSE)
		}
	}
	return nil
}
