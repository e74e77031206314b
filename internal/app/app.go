// Package app holds the flags and wiring shared by the digit classifier binaries.
package app

import "os"

import "github.com/urfave/cli/v2"
import "go.uber.org/zap"

import "github.com/neurlang/digitclassifier/classify"
import "github.com/neurlang/digitclassifier/config"
import "github.com/neurlang/digitclassifier/engine"
import _ "github.com/neurlang/digitclassifier/engine/centroid"
import "github.com/neurlang/digitclassifier/hardware"
import "github.com/neurlang/digitclassifier/logging"
import "github.com/neurlang/digitclassifier/repository"

// Flags.
const (
	FlagConfig   = "config"
	FlagModelDir = "model-dir"
	FlagEngine   = "engine"
	FlagStrategy = "strategy"
	FlagModel    = "model"
	FlagWorkers  = "workers"
	FlagDebug    = "debug"
)

// Flags returns the flags every binary accepts
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Usage:   "YAML config file, defaults are used when unset",
		},
		&cli.StringFlag{
			Name:  FlagModelDir,
			Usage: "directory holding the model files",
		},
		&cli.StringFlag{
			Name:  FlagEngine,
			Usage: "training engine name",
		},
		&cli.StringFlag{
			Name:  FlagStrategy,
			Usage: "force the hardware strategy: naive, optimized-native or accelerator",
		},
		&cli.StringFlag{
			Name:  FlagModel,
			Usage: "model name in the model directory",
		},
		&cli.IntFlag{
			Name:  FlagWorkers,
			Usage: "classify batches with this many goroutines",
		},
		&cli.BoolFlag{
			Name:  FlagDebug,
			Usage: "log at debug level",
		},
	}
}

// Config loads the config file named by the flags, applies o together with
// the shared flags and validates the result
func Config(c *cli.Context, o config.Overrides) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String(FlagConfig); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	o.ModelDir = c.String(FlagModelDir)
	o.Engine = c.String(FlagEngine)
	o.Strategy = c.String(FlagStrategy)
	o.Model = c.String(FlagModel)
	o.Workers = c.Int(FlagWorkers)
	o.Debug = c.Bool(FlagDebug)
	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger returns the logger of the binary called name
func Logger(name string, cfg *config.Config) *zap.SugaredLogger {
	return logging.NewLogger(name, cfg.Debug)
}

// Session is everything a binary needs to train or classify
type Session struct {
	Config     *config.Config
	Logger     *zap.SugaredLogger
	Engine     engine.Engine
	Repository *repository.Repository
	Probe      hardware.Probe
}

// Open looks up the engine and probes the host
func Open(cfg *config.Config, log *zap.SugaredLogger) (*Session, error) {
	eng, err := engine.Lookup(cfg.Engine)
	if err != nil {
		return nil, err
	}
	probe := hardware.Detect()
	log.Debugw("host probed", "cpu", probe.String(), "cores", probe.Cores, "accelerators", probe.Accelerators)
	return &Session{
		Config:     cfg,
		Logger:     log,
		Engine:     eng,
		Repository: repository.New(cfg.ModelDir, eng, log),
		Probe:      probe,
	}, nil
}

// Strategy selects the hardware strategy of the session
func (s *Session) Strategy() (hardware.Strategy, error) {
	return s.Config.Hardware.Select(s.Probe)
}

// Service loads the configured model and opens a classification service on it
func (s *Session) Service() (*classify.Service, error) {
	strategy, err := s.Strategy()
	if err != nil {
		return nil, err
	}
	h, err := s.Repository.Load(s.Config.Train.Model)
	if err != nil {
		return nil, err
	}
	s.Logger.Infow("model opened", "name", s.Config.Train.Model, "strategy", strategy.String())
	s.Logger.Info(h.DescribeTopology())

	svc := classify.New(h, strategy)
	svc.Workers = s.Config.Infer.Workers
	svc.Logger = s.Logger
	if s.Config.Infer.Display {
		svc.Observer = classify.Display{W: os.Stdout}
	}
	return svc, nil
}

// Main runs the app and exits non-zero after logging the error
func Main(a *cli.App) {
	if err := a.Run(os.Args); err != nil {
		logging.NewLogger(a.Name, false).Errorw("failed", "error", err)
		os.Exit(1)
	}
}
