package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps   = 200
	DefaultModel   = "pendulum"
	DefaultMethod  = "deer"
	DefaultPrecise = "double"
)

// Config is one solver run. Zero or missing fields fall back to the model
// catalog defaults: an empty y0 broadcasts the model initial state, an
// empty time window uses the model span, params override by name.
type Config struct {
	Model           string             `yaml:"model"`
	Method          string             `yaml:"method"`
	Precision       string             `yaml:"precision"`
	Steps           int                `yaml:"steps"`
	T0              float64            `yaml:"t0"`
	T1              float64            `yaml:"t1"`
	Y0              []float64          `yaml:"y0,omitempty"`
	Params          map[string]float64 `yaml:"params,omitempty"`
	MaxIter         int                `yaml:"max_iter,omitempty"`
	MemoryEfficient bool               `yaml:"memory_efficient,omitempty"`
	Output          string             `yaml:"output,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:     DefaultModel,
		Method:    DefaultMethod,
		Precision: DefaultPrecise,
		Steps:     DefaultSteps,
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

// ParamVector merges the named parameter overrides over the catalog
// defaults. names and defaults pair entry by entry.
func (c *Config) ParamVector(names []string, defaults []float64) []float64 {
	out := append([]float64(nil), defaults...)
	for i, name := range names {
		if v, ok := c.Params[name]; ok {
			out[i] = v
		}
	}
	return out
}

// Grid returns the uniform time grid of the run: Steps+1 points over the
// configured window, or over span when the window is empty.
func (c *Config) Grid(span [2]float64) []float64 {
	t0, t1 := c.T0, c.T1
	if t1 <= t0 {
		t0, t1 = span[0], span[1]
	}
	steps := c.Steps
	if steps < 1 {
		steps = DefaultSteps
	}

	ts := make([]float64, steps+1)
	h := (t1 - t0) / float64(steps)
	for i := range ts {
		ts[i] = t0 + float64(i)*h
	}
	ts[steps] = t1
	return ts
}
