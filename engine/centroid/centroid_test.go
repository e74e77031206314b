package centroid

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/digitclassifier/datasets"
	"github.com/neurlang/digitclassifier/engine"
	"github.com/neurlang/digitclassifier/hardware"
	"github.com/neurlang/digitclassifier/layer"
	"github.com/neurlang/digitclassifier/layer/full"
	"github.com/neurlang/digitclassifier/net/feedforward"
)

func tiny() feedforward.FeedforwardNetwork {
	net := feedforward.New("tiny")
	net.NewLayer(full.MustNew(3, 4, layer.Sigmoid, true))
	net.NewLayer(full.MustNew(4, 2, layer.Softmax, true))
	return *net
}

func request() engine.TrainRequest {
	return engine.TrainRequest{
		Topology: tiny(),
		Features: [][]float64{
			{1, 0, 0}, {1, 1, 0},
			{0, 0, 1}, {0, 1, 1},
		},
		Labels: [][]float64{
			{1, 0}, {1, 0},
			{0, 1}, {0, 1},
		},
		Iterations: 3,
	}
}

func TestTrainPredict(t *testing.T) {
	h, err := Engine{}.Train(context.Background(), hardware.Naive, request())
	require.NoError(t, err)
	c := h.(*Hypothesis)
	assert.Equal(t, []float64{1, 0.5, 0}, c.Centroids[0])
	assert.Equal(t, []float64{0, 0.5, 1}, c.Centroids[1])

	for _, s := range []hardware.Strategy{hardware.Naive, hardware.OptimizedNative, hardware.Accelerator} {
		out, err := h.Predict(s, []float64{1, 0, 0})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.InDelta(t, 1.0, out[0]+out[1], 1e-12)
		assert.Equal(t, 0, datasets.ArgMax(out))

		acc, err := h.Accuracy(s, request().Features, request().Labels)
		require.NoError(t, err)
		assert.Equal(t, 1.0, acc)
	}

	_, err = h.Predict(hardware.Naive, []float64{1})
	assert.Error(t, err)
	assert.Contains(t, h.DescribeTopology(), "tiny")
}

func TestStrategiesAgree(t *testing.T) {
	h, err := Engine{}.Train(context.Background(), hardware.OptimizedNative, request())
	require.NoError(t, err)
	x := []float64{0.3, 0.9, 0.2}
	a, err := h.Predict(hardware.Naive, x)
	require.NoError(t, err)
	b, err := h.Predict(hardware.OptimizedNative, x)
	require.NoError(t, err)
	assert.InDeltaSlice(t, a, b, 1e-12)
}

func TestLambdaShrinks(t *testing.T) {
	req := request()
	req.Lambda = 4
	h, err := Engine{}.Train(context.Background(), hardware.Naive, req)
	require.NoError(t, err)
	// global mean is {0.5, 0.5, 0.5}; (2*{1,0.5,0} + 4*{0.5,0.5,0.5}) / 6
	assert.InDeltaSlice(t, []float64{4.0 / 6, 0.5, 2.0 / 6}, h.(*Hypothesis).Centroids[0], 1e-12)
}

func TestTrainRejects(t *testing.T) {
	ctx := context.Background()
	for name, mutate := range map[string]func(*engine.TrainRequest){
		"no rows":       func(r *engine.TrainRequest) { r.Features, r.Labels = nil, nil },
		"row mismatch":  func(r *engine.TrainRequest) { r.Labels = r.Labels[:1] },
		"iterations":    func(r *engine.TrainRequest) { r.Iterations = 0 },
		"lambda":        func(r *engine.TrainRequest) { r.Lambda = -1 },
		"feature width": func(r *engine.TrainRequest) { r.Features[0] = []float64{1} },
		"label width":   func(r *engine.TrainRequest) { r.Labels[0] = []float64{1, 0, 0} },
	} {
		req := request()
		mutate(&req)
		_, err := Engine{}.Train(ctx, hardware.Naive, req)
		assert.Error(t, err, name)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := Engine{}.Train(cancelled, hardware.Naive, request())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCodec(t *testing.T) {
	h, err := Engine{}.Train(context.Background(), hardware.Naive, request())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Engine{}.Encode(&buf, h))
	back, err := Engine{}.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, h, back)

	_, err = Engine{}.Decode(bytes.NewBufferString("{}"))
	assert.Error(t, err)
	_, err = Engine{}.Decode(bytes.NewBufferString(`{"width":2,"centroids":[[1]]}`))
	assert.Error(t, err)
	_, err = Engine{}.Decode(bytes.NewBufferString("not json"))
	assert.Error(t, err)
}

func TestRegistered(t *testing.T) {
	e, err := engine.Lookup(Name)
	require.NoError(t, err)
	assert.Equal(t, Engine{}, e)
}
