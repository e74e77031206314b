package main

import "os"

import "github.com/urfave/cli/v2"
import "go.uber.org/multierr"

import "github.com/neurlang/digitclassifier/classify"
import "github.com/neurlang/digitclassifier/config"
import "github.com/neurlang/digitclassifier/datasets/mnist"
import "github.com/neurlang/digitclassifier/errs"
import "github.com/neurlang/digitclassifier/internal/app"

func main() {
	app.Main(&cli.App{
		Name:  "infer_kaggle",
		Usage: "write a Kaggle submission for test.csv",
		Flags: append(app.Flags(),
			&cli.StringFlag{Name: "test", Usage: "unlabeled test CSV"},
			&cli.StringFlag{Name: "report", Usage: "submission file to write"},
		),
		Action: kaggle,
	})
}

func kaggle(c *cli.Context) (err error) {
	cfg, err := app.Config(c, config.Overrides{
		InferSource: c.String("test"),
		Report:      c.String("report"),
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
	features, err := mnist.Load(cfg.Infer.Source, mnist.UnlabeledCSV{}, cfg.Infer.Rows.Range())
	if err != nil {
		return err
	}
	predicted, err := svc.ClassifyBatch(features)
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.Infer.Report)
	if err != nil {
		return errs.Resource(err, cfg.Infer.Report)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	if err := classify.WriteReport(f, predicted); err != nil {
		return errs.Resource(err, cfg.Infer.Report)
	}
	log.Infow("report written", "path", cfg.Infer.Report, "rows", len(predicted))
	return nil
}
