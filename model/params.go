package model

// ParamName is the name of a hyper-parameter.
type ParamName string

// Predefined parameter names
const (
	NFactors    ParamName = "n_factors"    // latent dimension
	NEpochs     ParamName = "n_epochs"     // epoch count
	Lr          ParamName = "lr"           // learning rate
	Reg         ParamName = "reg"          // regularization strength
	InitStdDev  ParamName = "init_std_dev" // stddev of initial latent factors
	RandomState ParamName = "random_state" // seed of the random generator
)

// Params for a model. Given by:
//
//	model.Params{
//	   model.NFactors: 20,
//	   model.Lr:       0.005,
//	}
type Params map[ParamName]interface{}

// Copy parameters.
func (params Params) Copy() Params {
	newParams := make(Params)
	for name, value := range params {
		newParams[name] = value
	}
	return newParams
}

// GetInt gets an integer parameter.
func (params Params) GetInt(name ParamName, _default int) int {
	if value, exist := params[name]; exist {
		return value.(int)
	}
	return _default
}

// GetInt64 gets an int64 parameter. An int value is accepted as well.
func (params Params) GetInt64(name ParamName, _default int64) int64 {
	if value, exist := params[name]; exist {
		switch typed := value.(type) {
		case int64:
			return typed
		case int:
			return int64(typed)
		}
	}
	return _default
}

// GetFloat64 gets a float parameter.
func (params Params) GetFloat64(name ParamName, _default float64) float64 {
	if value, exist := params[name]; exist {
		return value.(float64)
	}
	return _default
}
