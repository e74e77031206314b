package main

import "github.com/urfave/cli/v2"

import "github.com/neurlang/digitclassifier/config"
import "github.com/neurlang/digitclassifier/datasets/mnist"
import "github.com/neurlang/digitclassifier/internal/app"

func main() {
	app.Main(&cli.App{
		Name:  "infer_mnist",
		Usage: "score a trained digit classifier and compare its first predictions",
		Flags: append(app.Flags(),
			&cli.StringFlag{Name: "source", Usage: "labeled CSV holding the held-out rows"},
			&cli.IntFlag{Name: "predictions", Usage: "number of held-out rows to print predicted and actual for"},
			&cli.BoolFlag{Name: "display", Usage: "draw every classified digit"},
		),
		Action: infer,
	})
}

func infer(c *cli.Context) error {
	cfg, err := app.Config(c, config.Overrides{
		TrainSource: c.String("source"),
		Predictions: c.Int("predictions"),
		Display:     c.Bool("display"),
	})
	if err != nil {
		return err
	}
	log := app.Logger(c.App.Name, cfg)
	defer func() { _ = log.Sync() }()

	session, err := app.Open(cfg, log)
	if err != nil {
		return err
	}
	svc, err := session.Service()
	if err != nil {
		return err
	}

	held, err := mnist.LoadLabeled(cfg.Train.Source, mnist.LabeledCSV{}, mnist.Labels{}, cfg.Train.HeldOut.Range())
	if err != nil {
		return err
	}
	observer := svc.Observer
	svc.Observer = nil
	acc, err := svc.AccuracyOf(held)
	if err != nil {
		return err
	}
	log.Infow("held-out accuracy", "rows", held.Len(), "accuracy", acc)

	svc.Observer = observer
	return compare(c.App.Writer, svc, held, cfg.Infer.Predictions)
}
