package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/viper"

	"github.com/prodrec/prodrec/model"
)

// Config is the configuration of the recommendation service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Model     ModelConfig     `mapstructure:"model"`
	Neighbors NeighborsConfig `mapstructure:"neighbors"`
	Popular   PopularConfig   `mapstructure:"popular"`
}

// ServerConfig is the configuration of the REST server.
type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"gt=0,lte=65535"`
}

// DataConfig locates the rating dataset and the trained model dump.
type DataConfig struct {
	RatingsPath string `mapstructure:"ratings_path" validate:"required"`
	ModelPath   string `mapstructure:"model_path" validate:"required"`
}

// ModelConfig holds the hyper-parameters of the latent-factor model.
type ModelConfig struct {
	NFactors    int     `mapstructure:"n_factors" validate:"gt=0"`
	NEpochs     int     `mapstructure:"n_epochs" validate:"gt=0"`
	Lr          float64 `mapstructure:"lr" validate:"gt=0"`
	Reg         float64 `mapstructure:"reg" validate:"gte=0"`
	InitStdDev  float64 `mapstructure:"init_std_dev" validate:"gt=0"`
	RandomState int64   `mapstructure:"random_state"`
}

// Params converts the model configuration to hyper-parameters.
func (config *ModelConfig) Params() model.Params {
	return model.Params{
		model.NFactors:    config.NFactors,
		model.NEpochs:     config.NEpochs,
		model.Lr:          config.Lr,
		model.Reg:         config.Reg,
		model.InitStdDev:  config.InitStdDev,
		model.RandomState: config.RandomState,
	}
}

// NeighborsConfig tunes the user-based recommender.
type NeighborsConfig struct {
	K       int     `mapstructure:"k" validate:"gt=0"`
	DaysTau float64 `mapstructure:"days_tau" validate:"gt=0"`
}

// PopularConfig tunes the top products aggregation.
type PopularConfig struct {
	Days       int `mapstructure:"days" validate:"gte=0"`
	MinRatings int `mapstructure:"min_ratings" validate:"gte=0"`
}

// GetDefaultConfig returns a configuration with default values.
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8087,
		},
		Data: DataConfig{
			RatingsPath: "data/ratings.csv",
			ModelPath:   "data/model.gob",
		},
		Model: ModelConfig{
			NFactors:    20,
			NEpochs:     20,
			Lr:          0.005,
			Reg:         0.02,
			InitStdDev:  0.01,
			RandomState: 0,
		},
		Neighbors: NeighborsConfig{
			K:       10,
			DaysTau: 90,
		},
		Popular: PopularConfig{
			Days:       30,
			MinRatings: 5,
		},
	}
}

// Validate checks the configuration against its constraints.
func (config *Config) Validate() error {
	return errors.Trace(validator.New().Struct(config))
}

// LoadConfig loads and validates a TOML configuration file. Missing keys keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	config := GetDefaultConfig()
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Trace(err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
