package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prodrec/prodrec/core"
)

func TestSaveLoad(t *testing.T) {
	table, users, items, tMin, tMax := core.Preprocess(trainingRatings())
	svd := NewTimeSVD(Params{NFactors: 4, NEpochs: 2, RandomState: 0})
	assert.NoError(t, svd.Fit(table, users, items, tMin, tMax))
	path := filepath.Join(t.TempDir(), "models", "timesvd.gob")
	assert.NoError(t, Save(path, svd))
	loaded, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, svd.Mu, loaded.Mu)
	assert.Equal(t, svd.TMin, loaded.TMin)
	assert.Equal(t, svd.TMax, loaded.TMax)
	assert.Equal(t, svd.Users.Ids(), loaded.Users.Ids())
	assert.Equal(t, svd.Items.Ids(), loaded.Items.Ids())
	assert.Equal(t, svd.Predict(0, 1, 0.4), loaded.Predict(0, 1, 0.4))
	assert.Equal(t, core.NotId, loaded.Items.IndexOf("unknown"))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.gob"))
	assert.Error(t, err)
}
