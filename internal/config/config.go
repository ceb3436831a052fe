package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBeta     = 0.5
	DefaultGamma    = 1.0 / 3.0
	DefaultSigma    = 0.2
	DefaultMu       = 0.01
	DefaultTStart   = 0.0
	DefaultTEnd     = 150.0
	DefaultInterval = 1.0
	DefaultI0       = 1.27e-6
)

type Config struct {
	Model      string          `yaml:"model"`
	Integrator string          `yaml:"integrator"`
	TStart     float64         `yaml:"t_start"`
	TEnd       float64         `yaml:"t_end"`
	Interval   float64         `yaml:"interval"`
	Tolerance  float64         `yaml:"tolerance"`
	Params     ParamsConfig    `yaml:"params"`
	InitState  InitStateConfig `yaml:"init_state"`
}

type ParamsConfig struct {
	Beta  float64 `yaml:"beta"`
	Gamma float64 `yaml:"gamma"`
	Sigma float64 `yaml:"sigma"`
	Mu    float64 `yaml:"mu"`
}

type InitStateConfig struct {
	S float64 `yaml:"s"`
	E float64 `yaml:"e"`
	I float64 `yaml:"i"`
	R float64 `yaml:"r"`
	D float64 `yaml:"d"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "sir",
		Integrator: "rk45",
		TStart:     DefaultTStart,
		TEnd:       DefaultTEnd,
		Interval:   DefaultInterval,
		Tolerance:  1e-8,
		Params: ParamsConfig{
			Beta:  DefaultBeta,
			Gamma: DefaultGamma,
			Sigma: DefaultSigma,
			Mu:    DefaultMu,
		},
		InitState: InitStateConfig{
			S: 1.0,
			I: DefaultI0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetInitState assembles the state vector in the compartment order the
// named model expects.
func (c *Config) GetInitState() []float64 {
	switch c.Model {
	case "seir":
		return []float64{c.InitState.S, c.InitState.E, c.InitState.I, c.InitState.R}
	case "sis":
		return []float64{c.InitState.S, c.InitState.I}
	case "sird":
		return []float64{c.InitState.S, c.InitState.I, c.InitState.R, c.InitState.D}
	default:
		return []float64{c.InitState.S, c.InitState.I, c.InitState.R}
	}
}

// GetParams flattens the parameter block into the map the model registry
// consumes.
func (c *Config) GetParams() map[string]float64 {
	return map[string]float64{
		"beta":  c.Params.Beta,
		"gamma": c.Params.Gamma,
		"sigma": c.Params.Sigma,
		"mu":    c.Params.Mu,
	}
}
