package main

import "context"
import "os"
import "os/signal"
import "syscall"

import "github.com/urfave/cli/v2"
import "go.uber.org/multierr"

import "github.com/neurlang/digitclassifier/config"
import "github.com/neurlang/digitclassifier/errs"
import "github.com/neurlang/digitclassifier/internal/app"
import "github.com/neurlang/digitclassifier/trainer"

func main() {
	app.Main(&cli.App{
		Name:  "train_mnist",
		Usage: "train a digit classifier on train.csv",
		Flags: append(app.Flags(),
			&cli.StringFlag{Name: "source", Usage: "labeled training CSV"},
			&cli.StringFlag{Name: "topology", Usage: "network preset: fnn or cnn"},
			&cli.IntFlag{Name: "iterations", Usage: "training iterations"},
			&cli.Float64Flag{Name: "lambda", Usage: "regularization strength"},
			&cli.BoolFlag{Name: "pgo", Usage: "write a CPU profile to default.pgo"},
		),
		Action: train,
	})
}

func train(c *cli.Context) (err error) {
	cfg, err := app.Config(c, config.Overrides{
		TrainSource: c.String("source"),
		Topology:    c.String("topology"),
		Iterations:  c.Int("iterations"),
		Lambda:      c.Float64("lambda"),
	})
	if err != nil {
		return err
	}
	log := app.Logger(c.App.Name, cfg)
	defer func() { _ = log.Sync() }()

	if c.Bool("pgo") {
		stopProfile, perr := startProfile("default.pgo")
		if perr != nil {
			return errs.Resource(perr, "default.pgo")
		}
		defer multierr.AppendInvoke(&err, multierr.Invoke(stopProfile))
	}

	session, err := app.Open(cfg, log)
	if err != nil {
		return err
	}
	availability, err := cfg.Hardware.Availability(session.Probe)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	o := &trainer.Orchestrator{
		Engine:     session.Engine,
		Repository: session.Repository,
		Logger:     log,
	}
	res, err := o.Run(ctx, trainer.Plan{
		Source:       cfg.Train.Source,
		TrainRows:    cfg.Train.Rows.Range(),
		EvalRows:     cfg.Train.HeldOut.Range(),
		Topology:     cfg.Train.Topology,
		Iterations:   cfg.Train.Iterations,
		Lambda:       cfg.Train.Lambda,
		ModelName:    cfg.Train.Model,
		Availability: availability,
	})
	if err != nil {
		return err
	}
	log.Infow("done",
		"model", cfg.Train.Model,
		"strategy", res.Strategy.String(),
		"train accuracy", res.TrainAccuracy,
		"held-out accuracy", res.EvalAccuracy)
	return nil
}
