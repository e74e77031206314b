// Package centroid implements a reference engine whose hypothesis scores each
// class by the distance of the input to the mean of that class. Only the input
// and output widths of the topology are used; hidden layers are recorded for
// DescribeTopology.
package centroid

import "context"
import "encoding/json"
import "fmt"
import "io"
import "math"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"
import "gonum.org/v1/gonum/mat"

import "github.com/neurlang/digitclassifier/datasets"
import "github.com/neurlang/digitclassifier/engine"
import "github.com/neurlang/digitclassifier/hardware"

// Name is the registry name of the engine
const Name = "centroid"

func init() {
	engine.Register(Name, Engine{})
}

// Engine trains and (de)serializes centroid hypotheses
type Engine struct{}

// Hypothesis holds one centroid per class
type Hypothesis struct {
	Topology  string      `json:"topology"`
	Width     int         `json:"width"`
	Centroids [][]float64 `json:"centroids"`
}

// Train computes the class means. Lambda pulls every mean towards the mean of
// all rows as if lambda extra rows of the overall mean were in each class.
// The means are exact after the first pass, so further iterations only check ctx.
func (Engine) Train(ctx context.Context, s hardware.Strategy, req engine.TrainRequest) (engine.Hypothesis, error) {
	if len(req.Features) == 0 {
		return nil, errors.New("centroid: no training rows")
	}
	if len(req.Features) != len(req.Labels) {
		return nil, errors.Errorf("centroid: %d feature rows but %d label rows", len(req.Features), len(req.Labels))
	}
	if req.Iterations < 1 {
		return nil, errors.Errorf("centroid: %d iterations", req.Iterations)
	}
	if req.Lambda < 0 {
		return nil, errors.Errorf("centroid: negative lambda %v", req.Lambda)
	}
	width, classes := req.Topology.Inputs(), req.Topology.Outputs()
	if err := req.Topology.Validate(width, classes); err != nil {
		return nil, err
	}

	sums := make([][]float64, classes)
	for i := range sums {
		sums[i] = make([]float64, width)
	}
	counts := make([]float64, classes)
	global := make([]float64, width)
	for n, row := range req.Features {
		if len(row) != width {
			return nil, errors.Errorf("centroid: row %d has %d features, topology reads %d", n, len(row), width)
		}
		if len(req.Labels[n]) != classes {
			return nil, errors.Errorf("centroid: label row %d has %d classes, topology produces %d", n, len(req.Labels[n]), classes)
		}
		class := datasets.ArgMax(req.Labels[n])
		floats.Add(sums[class], row)
		floats.Add(global, row)
		counts[class]++
	}
	floats.Scale(1/float64(len(req.Features)), global)

	for it := 0; it < req.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	h := &Hypothesis{
		Topology:  req.Topology.String(),
		Width:     width,
		Centroids: make([][]float64, classes),
	}
	for k := range sums {
		c := make([]float64, width)
		floats.AddScaledTo(c, sums[k], req.Lambda, global)
		if n := counts[k] + req.Lambda; n > 0 {
			floats.Scale(1/n, c)
		} else {
			copy(c, global)
		}
		h.Centroids[k] = c
	}
	return h, nil
}

// Predict returns the softmax of the negated squared distances to the centroids
func (h *Hypothesis) Predict(s hardware.Strategy, features []float64) ([]float64, error) {
	if len(features) != h.Width {
		return nil, errors.Errorf("centroid: %d features, want %d", len(features), h.Width)
	}
	out := make([]float64, len(h.Centroids))
	switch s {
	case hardware.Naive:
		for k, c := range h.Centroids {
			var d float64
			for i := range c {
				diff := features[i] - c[i]
				d += diff * diff
			}
			out[k] = -d
		}
	default:
		// no accelerator kernels here, the accelerator shares the native path
		x := mat.NewVecDense(len(features), features)
		diff := mat.NewVecDense(len(features), nil)
		for k, c := range h.Centroids {
			diff.SubVec(x, mat.NewVecDense(len(c), c))
			out[k] = -mat.Dot(diff, diff)
		}
	}
	softmax(out)
	return out, nil
}

// Accuracy compares the predicted class with the label class row by row
func (h *Hypothesis) Accuracy(s hardware.Strategy, features, labels [][]float64) (float64, error) {
	if len(features) != len(labels) {
		return 0, errors.Errorf("centroid: %d feature rows but %d label rows", len(features), len(labels))
	}
	if len(features) == 0 {
		return 0, errors.New("centroid: no rows")
	}
	var correct int
	for n := range features {
		out, err := h.Predict(s, features[n])
		if err != nil {
			return 0, errors.WithMessagef(err, "row %d", n)
		}
		if datasets.ArgMax(out) == datasets.ArgMax(labels[n]) {
			correct++
		}
	}
	return float64(correct) / float64(len(features)), nil
}

// DescribeTopology returns the topology summary recorded at training
func (h *Hypothesis) DescribeTopology() string {
	return fmt.Sprintf("%s engine, %d classes over %d features\n%s", Name, len(h.Centroids), h.Width, h.Topology)
}

func softmax(v []float64) {
	hi := floats.Max(v)
	var sum float64
	for i := range v {
		v[i] = math.Exp(v[i] - hi)
		sum += v[i]
	}
	floats.Scale(1/sum, v)
}

// Encode writes the hypothesis as JSON
func (Engine) Encode(w io.Writer, h engine.Hypothesis) error {
	c, ok := h.(*Hypothesis)
	if !ok {
		return errors.Errorf("centroid: cannot encode a %T", h)
	}
	return json.NewEncoder(w).Encode(c)
}

// Decode reads a hypothesis written by Encode
func (Engine) Decode(r io.Reader) (engine.Hypothesis, error) {
	var h Hypothesis
	if err := json.NewDecoder(r).Decode(&h); err != nil {
		return nil, errors.Wrap(err, "centroid: decode")
	}
	if len(h.Centroids) == 0 {
		return nil, errors.New("centroid: decoded hypothesis has no centroids")
	}
	for k, c := range h.Centroids {
		if len(c) != h.Width {
			return nil, errors.Errorf("centroid: centroid %d has %d values, want %d", k, len(c), h.Width)
		}
	}
	return &h, nil
}
