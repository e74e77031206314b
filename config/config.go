// Package config holds the runtime knobs of the training and inference binaries.
package config

import "os"
import "strconv"

import "github.com/pkg/errors"
import "gopkg.in/yaml.v3"
import "go.uber.org/multierr"

import "github.com/neurlang/digitclassifier/datasets/mnist"
import "github.com/neurlang/digitclassifier/errs"
import "github.com/neurlang/digitclassifier/hardware"
import "github.com/neurlang/digitclassifier/net/feedforward"

// Config captures the runtime knobs shared by all binaries.
type Config struct {
	Engine   string   `yaml:"engine"`
	ModelDir string   `yaml:"model_dir"`
	Debug    bool     `yaml:"debug"`
	Hardware Hardware `yaml:"hardware"`
	Train    Train    `yaml:"train"`
	Infer    Infer    `yaml:"infer"`
}

// Toggle is "auto", "true" or "false". Empty means auto.
type Toggle string

// Bool returns nil for auto
func (t Toggle) Bool() (*bool, error) {
	switch t {
	case "", "auto":
		return nil, nil
	}
	v, err := strconv.ParseBool(string(t))
	if err != nil {
		return nil, errs.Configurationf("toggle %q is not auto, true or false", string(t))
	}
	return &v, nil
}

// Hardware declares what the host provides
type Hardware struct {
	Accelerator Toggle `yaml:"accelerator"`
	Native      Toggle `yaml:"native"`

	// Strategy, if set, replaces the selection by availability
	Strategy string `yaml:"strategy"`
}

// Declared converts the toggles into a hardware declaration
func (h Hardware) Declared() (d hardware.Declared, err error) {
	if d.Accelerator, err = h.Accelerator.Bool(); err != nil {
		return d, errors.WithMessage(err, "hardware.accelerator")
	}
	if d.Native, err = h.Native.Bool(); err != nil {
		return d, errors.WithMessage(err, "hardware.native")
	}
	return d, nil
}

// Availability resolves the declaration against the probed host. A forced
// strategy declares exactly the backends it needs.
func (h Hardware) Availability(p hardware.Probe) (hardware.Availability, error) {
	if h.Strategy != "" {
		s, err := hardware.Parse(h.Strategy)
		if err != nil {
			return hardware.Availability{}, errs.Configurationf("hardware.strategy: %v", err)
		}
		return hardware.Availability{
			Accelerator: s == hardware.Accelerator,
			Native:      s == hardware.OptimizedNative,
		}, nil
	}
	d, err := h.Declared()
	if err != nil {
		return hardware.Availability{}, err
	}
	return d.Resolve(p), nil
}

// Select picks the strategy for the probed host
func (h Hardware) Select(p hardware.Probe) (hardware.Strategy, error) {
	a, err := h.Availability(p)
	if err != nil {
		return hardware.Naive, err
	}
	return hardware.Select(a), nil
}

// Rows is a half-open CSV row range
type Rows struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Range converts to the loader range
func (r Rows) Range() mnist.Range {
	return mnist.Range{Start: r.Start, End: r.End}
}

// Train configures train_mnist
type Train struct {
	Source     string  `yaml:"source"`
	Rows       Rows    `yaml:"rows"`
	HeldOut    Rows    `yaml:"held_out"`
	Topology   string  `yaml:"topology"`
	Iterations int     `yaml:"iterations"`
	Lambda     float64 `yaml:"lambda"`
	Model      string  `yaml:"model"`
}

// Infer configures the inference binaries
type Infer struct {
	Source      string `yaml:"source"`
	Rows        Rows   `yaml:"rows"`
	Predictions int    `yaml:"predictions"`
	Report      string `yaml:"report"`
	Workers     int    `yaml:"workers"`
	Display     bool   `yaml:"display"`
}

// Default returns the configuration of the stock MNIST run
func Default() *Config {
	return &Config{
		Engine:   "centroid",
		ModelDir: ".",
		Hardware: Hardware{Accelerator: "auto", Native: "auto"},
		Train: Train{
			Source:     "train.csv",
			Rows:       Rows{Start: 1, End: 1001},
			HeldOut:    Rows{Start: 32005, End: 42005},
			Topology:   "fnn",
			Iterations: 100,
			Model:      "mnist_fnn",
		},
		Infer: Infer{
			Source:      "test.csv",
			Rows:        Rows{Start: 1, End: 28001},
			Predictions: 100,
			Report:      "submission.csv",
		},
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (cfg *Config, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Resource(err, path)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	cfg = Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errs.Configurationf("parse %s: %v", path, err)
	}
	return cfg, nil
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Engine      string
	ModelDir    string
	Debug       bool
	Strategy    string
	TrainSource string
	Topology    string
	Iterations  int
	Lambda      float64
	Model       string
	InferSource string
	Predictions int
	Report      string
	Workers     int
	Display     bool
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Engine != "" {
		c.Engine = o.Engine
	}
	if o.ModelDir != "" {
		c.ModelDir = o.ModelDir
	}
	if o.Debug {
		c.Debug = true
	}
	if o.Strategy != "" {
		c.Hardware.Strategy = o.Strategy
	}
	if o.TrainSource != "" {
		c.Train.Source = o.TrainSource
	}
	if o.Topology != "" {
		c.Train.Topology = o.Topology
	}
	if o.Iterations > 0 {
		c.Train.Iterations = o.Iterations
	}
	if o.Lambda > 0 {
		c.Train.Lambda = o.Lambda
	}
	if o.Model != "" {
		c.Train.Model = o.Model
	}
	if o.InferSource != "" {
		c.Infer.Source = o.InferSource
	}
	if o.Predictions > 0 {
		c.Infer.Predictions = o.Predictions
	}
	if o.Report != "" {
		c.Infer.Report = o.Report
	}
	if o.Workers > 0 {
		c.Infer.Workers = o.Workers
	}
	if o.Display {
		c.Infer.Display = true
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errs.Configurationf("config is nil")
	}
	if c.Engine == "" {
		return errs.Configurationf("engine must be set")
	}
	if c.Train.Model == "" {
		return errs.Configurationf("train.model must be set")
	}
	if _, err := c.Hardware.Declared(); err != nil {
		return err
	}
	if c.Hardware.Strategy != "" {
		if _, err := hardware.Parse(c.Hardware.Strategy); err != nil {
			return errs.Configurationf("hardware.strategy: %v", err)
		}
	}
	if _, err := feedforward.Preset(c.Train.Topology); err != nil {
		return err
	}
	if c.Train.Iterations < 1 {
		return errs.Configurationf("train.iterations must be > 0 (got %d)", c.Train.Iterations)
	}
	if c.Train.Lambda < 0 {
		return errs.Configurationf("train.lambda must be >= 0 (got %v)", c.Train.Lambda)
	}
	for _, r := range []struct {
		name string
		rows Rows
	}{
		{"train.rows", c.Train.Rows},
		{"train.held_out", c.Train.HeldOut},
		{"infer.rows", c.Infer.Rows},
	} {
		if err := r.rows.Range().Validate(); err != nil {
			return errs.Configurationf("%s: %v", r.name, err)
		}
	}
	if c.Train.Rows.Range().Overlaps(c.Train.HeldOut.Range()) {
		return errs.Configurationf("train.rows [%d,%d) overlap train.held_out [%d,%d)",
			c.Train.Rows.Start, c.Train.Rows.End, c.Train.HeldOut.Start, c.Train.HeldOut.End)
	}
	if c.Infer.Predictions < 0 {
		return errs.Configurationf("infer.predictions must be >= 0 (got %d)", c.Infer.Predictions)
	}
	return nil
}
