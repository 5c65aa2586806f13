package model

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/juju/errors"
)

// Hyper-parameter values cross the gob boundary as interface values.
func init() {
	gob.Register(int(0))
	gob.Register(int64(0))
	gob.Register(float64(0))
}

// Save serializes a trained model to a file, creating parent directories as
// needed.
func Save(fileName string, svd *TimeSVD) error {
	if err := os.MkdirAll(filepath.Dir(fileName), os.ModePerm); err != nil {
		return errors.Trace(err)
	}
	file, err := os.Create(fileName)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	if err = gob.NewEncoder(file).Encode(svd); err != nil {
		return errors.Trace(err)
	}
	return nil
}

// Load deserializes a trained model from a file.
func Load(fileName string) (*TimeSVD, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	svd := new(TimeSVD)
	if err = gob.NewDecoder(file).Decode(svd); err != nil {
		return nil, errors.Trace(err)
	}
	return svd, nil
}
