package trainer

import "context"
import "time"

import "go.uber.org/zap"

import "github.com/neurlang/digitclassifier/datasets"
import "github.com/neurlang/digitclassifier/datasets/mnist"
import "github.com/neurlang/digitclassifier/engine"
import "github.com/neurlang/digitclassifier/errs"
import "github.com/neurlang/digitclassifier/hardware"
import "github.com/neurlang/digitclassifier/net/feedforward"

// Saver persists a hypothesis under a name
type Saver interface {
	Save(h engine.Hypothesis, name string) error
}

// Plan describes one training run
type Plan struct {
	// Source is the labeled CSV both row ranges are read from
	Source    string
	TrainRows mnist.Range
	EvalRows  mnist.Range

	// Topology names a feedforward preset
	Topology   string
	Iterations int
	Lambda     float64

	// ModelName is the repository key of the result
	ModelName string

	Availability hardware.Availability
}

// Validate checks the plan without touching the filesystem
func (p Plan) Validate() error {
	if p.Source == "" {
		return errs.Configurationf("training source is empty")
	}
	if p.ModelName == "" {
		return errs.Configurationf("model name is empty")
	}
	if err := p.TrainRows.Validate(); err != nil {
		return err
	}
	if err := p.EvalRows.Validate(); err != nil {
		return err
	}
	if p.TrainRows.Overlaps(p.EvalRows) {
		return errs.Configurationf("training rows %v overlap held-out rows %v", p.TrainRows, p.EvalRows)
	}
	if p.Iterations < 1 {
		return errs.Configurationf("iterations must be at least 1, got %d", p.Iterations)
	}
	if p.Lambda < 0 {
		return errs.Configurationf("lambda must not be negative, got %v", p.Lambda)
	}
	return nil
}

// Result reports a finished run
type Result struct {
	Hypothesis    engine.Hypothesis
	Topology      feedforward.FeedforwardNetwork
	Strategy      hardware.Strategy
	TrainRows     int
	EvalRows      int
	TrainAccuracy float64
	EvalAccuracy  float64
	Elapsed       time.Duration
}

// Orchestrator runs training plans
type Orchestrator struct {
	Engine     engine.Trainer
	Repository Saver
	Logger     *zap.SugaredLogger
}

func (o *Orchestrator) logger() *zap.SugaredLogger {
	if o.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return o.Logger
}

// Run trains once according to p, scores the hypothesis on both row ranges
// and saves it under p.ModelName
func (o *Orchestrator) Run(ctx context.Context, p Plan) (res Result, err error) {
	log := o.logger()
	if err := p.Validate(); err != nil {
		return res, err
	}
	if o.Engine == nil || o.Repository == nil {
		return res, errs.Configurationf("orchestrator needs an engine and a repository")
	}

	train, err := load(p.Source, p.TrainRows)
	if err != nil {
		return res, err
	}
	eval, err := load(p.Source, p.EvalRows)
	if err != nil {
		return res, err
	}
	res.TrainRows, res.EvalRows = train.Len(), eval.Len()
	log.Infow("datasets loaded", "source", p.Source, "train", res.TrainRows, "held-out", res.EvalRows)

	net, err := feedforward.Preset(p.Topology)
	if err != nil {
		return res, err
	}
	if err := net.Validate(mnist.Pixels, datasets.Classes); err != nil {
		return res, err
	}
	res.Strategy = hardware.Select(p.Availability)
	res.Topology = net.WithMatrixForm(res.Strategy.MatrixForm())
	log.Infow("topology assembled", "name", p.Topology, "strategy", res.Strategy.String(), "matrices", res.Topology.MatrixForm().String())
	log.Debug(res.Topology.String())

	start := time.Now()
	h, err := o.Engine.Train(ctx, res.Strategy, engine.TrainRequest{
		Topology:   res.Topology,
		Features:   train.FeatureMatrix(),
		Labels:     train.LabelMatrix(),
		Iterations: p.Iterations,
		Lambda:     p.Lambda,
	})
	if err != nil {
		return res, errs.Engine(err, "train", p.ModelName)
	}
	res.Elapsed = time.Since(start)
	res.Hypothesis = h

	if res.TrainAccuracy, err = h.Accuracy(res.Strategy, train.FeatureMatrix(), train.LabelMatrix()); err != nil {
		return res, errs.Engine(err, "accuracy", p.ModelName)
	}
	if res.EvalAccuracy, err = h.Accuracy(res.Strategy, eval.FeatureMatrix(), eval.LabelMatrix()); err != nil {
		return res, errs.Engine(err, "accuracy", p.ModelName)
	}
	log.Infow("trained", "elapsed", res.Elapsed, "train accuracy", res.TrainAccuracy, "held-out accuracy", res.EvalAccuracy)

	if err := o.Repository.Save(h, p.ModelName); err != nil {
		return res, err
	}
	return res, nil
}

func load(path string, r mnist.Range) (datasets.Dataset, error) {
	return mnist.LoadLabeled(path, mnist.LabeledCSV{}, mnist.Labels{}, r)
}
