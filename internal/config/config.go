package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.1  // fs
	DefaultDuration    = 2000 // fs
	DefaultTemperature = 300  // K
	DefaultFriction    = 0.05 // 1/fs
	DefaultSmoothing   = 0.0
	DefaultMCSteps     = 200000
	DefaultMCBurnIn    = 20000
	DefaultMCThin      = 10
	DefaultMCDelta     = 0.05 // angstrom
)

type Config struct {
	Molecule    string  `yaml:"molecule"`
	Method      string  `yaml:"method"`
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	Temperature float64 `yaml:"temperature"`
	Friction    float64 `yaml:"friction"`
	Seed        int64   `yaml:"seed"`
	Smoothing   float64 `yaml:"smoothing"`
	Data        string  `yaml:"data"`

	Init InitConfig `yaml:"init"`
	MC   MCConfig   `yaml:"mc"`
}

// InitConfig is the starting phase-space point. Zero values mean "derive
// from the surface": r at the fitted equilibrium, v drawn thermally.
type InitConfig struct {
	R float64 `yaml:"r"`
	V float64 `yaml:"v"`
}

type MCConfig struct {
	Steps  int     `yaml:"steps"`
	BurnIn int     `yaml:"burn_in"`
	Thin   int     `yaml:"thin"`
	Delta  float64 `yaml:"delta"`
}

func DefaultConfig() *Config {
	return &Config{
		Molecule:    "hf",
		Method:      "bbk",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		Temperature: DefaultTemperature,
		Friction:    DefaultFriction,
		Smoothing:   DefaultSmoothing,
		MC: MCConfig{
			Steps:  DefaultMCSteps,
			BurnIn: DefaultMCBurnIn,
			Thin:   DefaultMCThin,
			Delta:  DefaultMCDelta,
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
