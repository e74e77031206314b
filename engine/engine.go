// Package engine defines the contract of the external trainable model engine
package engine

import "context"
import "io"

import "github.com/neurlang/digitclassifier/hardware"
import "github.com/neurlang/digitclassifier/net/feedforward"

// TrainRequest is everything one training call needs
type TrainRequest struct {
	Topology   feedforward.FeedforwardNetwork
	Features   [][]float64
	Labels     [][]float64
	Iterations int
	Lambda     float64 // regularization coefficient
}

// Trainer produces a hypothesis function from data. One call fully determines
// the result, training is not resumable.
type Trainer interface {
	Train(ctx context.Context, s hardware.Strategy, req TrainRequest) (Hypothesis, error)
}

// Hypothesis is a trained model
type Hypothesis interface {

	// Predict returns the output activations for one feature vector
	Predict(s hardware.Strategy, features []float64) ([]float64, error)

	// Accuracy returns the fraction of rows whose predicted class is the label class
	Accuracy(s hardware.Strategy, features, labels [][]float64) (float64, error)

	// DescribeTopology returns a human readable summary of the model topology
	DescribeTopology() string
}

// Codec (de)serializes the hypotheses of one engine
type Codec interface {
	Encode(w io.Writer, h Hypothesis) error
	Decode(r io.Reader) (Hypothesis, error)
}

// Engine is a trainer together with its codec
type Engine interface {
	Trainer
	Codec
}
