// Package classify turns the activations of a trained hypothesis into digit decisions.
package classify

import "image"
import "sync"

import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/neurlang/digitclassifier/datasets"
import "github.com/neurlang/digitclassifier/datasets/mnist"
import "github.com/neurlang/digitclassifier/engine"
import "github.com/neurlang/digitclassifier/errs"
import "github.com/neurlang/digitclassifier/hardware"
import "github.com/neurlang/digitclassifier/parallel"

// Service classifies feature vectors using one hypothesis on one strategy
type Service struct {
	hypothesis engine.Hypothesis
	strategy   hardware.Strategy

	// Workers > 1 classifies batches concurrently
	Workers int

	// Observer, if set, sees every decision
	Observer Observer

	// Logger defaults to a nop logger
	Logger *zap.SugaredLogger

	mut sync.Mutex
}

// New returns a sequential service without observer
func New(h engine.Hypothesis, s hardware.Strategy) *Service {
	return &Service{hypothesis: h, strategy: s}
}

// Strategy returns the strategy the service was opened with
func (s *Service) Strategy() hardware.Strategy {
	return s.strategy
}

func (s *Service) logger() *zap.SugaredLogger {
	if s.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return s.Logger
}

// Classify returns the class with the highest activation; the lowest class wins ties
func (s *Service) Classify(fv datasets.FeatureVector) (int, error) {
	return s.classify(-1, fv)
}

func (s *Service) classify(n int, fv datasets.FeatureVector) (int, error) {
	out, err := s.hypothesis.Predict(s.strategy, fv)
	if err != nil {
		return 0, errs.Engine(err, "predict", "")
	}
	if len(out) != datasets.Classes {
		return 0, errs.Engine(errors.Errorf("activation vector has %d elements, want %d", len(out), datasets.Classes), "predict", "")
	}
	class := datasets.ArgMax(out)
	if s.Observer != nil {
		s.mut.Lock()
		s.Observer.Observe(Decision{Row: n, Features: fv, Activations: out, Class: class})
		s.mut.Unlock()
	}
	return class, nil
}

// ClassifyBatch classifies every row, keeping the row order
func (s *Service) ClassifyBatch(features []datasets.FeatureVector) ([]int, error) {
	out := make([]int, len(features))
	if s.Workers <= 1 {
		for n := range features {
			class, err := s.classify(n, features[n])
			if err != nil {
				return nil, err
			}
			out[n] = class
		}
		return out, nil
	}
	err := parallel.ForEach(len(features), s.Workers, func(n int) (err error) {
		out[n], err = s.classify(n, features[n])
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ClassifyImage extracts the features of a 28x28 image and classifies them
func (s *Service) ClassifyImage(img image.Image) (int, error) {
	fv, err := mnist.ImageFeatures(img)
	if err != nil {
		return 0, err
	}
	return s.Classify(fv)
}

// Accuracy returns the fraction of rows whose predicted class equals the label class
func (s *Service) Accuracy(features []datasets.FeatureVector, labels []datasets.LabelVector) (float64, error) {
	if len(features) != len(labels) {
		return 0, errs.Validationf("%d feature rows but %d label rows", len(features), len(labels))
	}
	if len(features) == 0 {
		return 0, errs.Validationf("no rows to score")
	}
	predicted, err := s.ClassifyBatch(features)
	if err != nil {
		return 0, err
	}
	var correct int
	for n := range predicted {
		if predicted[n] == labels[n].Class() {
			correct++
		}
	}
	acc := float64(correct) / float64(len(features))
	s.logger().Debugw("scored", "rows", len(features), "correct", correct, "accuracy", acc)
	return acc, nil
}

// AccuracyOf scores a labeled dataset
func (s *Service) AccuracyOf(d datasets.Dataset) (float64, error) {
	if !d.HasLabels() {
		return 0, errs.Validationf("dataset has no labels")
	}
	return s.Accuracy(d.FeatureRows(), d.LabelRows())
}
