package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/digitclassifier/classify"
	"github.com/neurlang/digitclassifier/datasets"
	"github.com/neurlang/digitclassifier/hardware"
)

// firstFeature predicts the index of the highest feature
type firstFeature struct{}

func (firstFeature) Predict(s hardware.Strategy, fv []float64) ([]float64, error) {
	out := make([]float64, datasets.Classes)
	out[datasets.ArgMax(fv)] = 1
	return out, nil
}

func (firstFeature) Accuracy(hardware.Strategy, [][]float64, [][]float64) (float64, error) {
	return 0, nil
}

func (firstFeature) DescribeTopology() string { return "first feature" }

func heldOut(t *testing.T, pairs ...[2]int) datasets.Dataset {
	var features []datasets.FeatureVector
	var labels []datasets.LabelVector
	for _, p := range pairs {
		fv := make(datasets.FeatureVector, datasets.Classes)
		fv[p[0]] = 1
		lv, err := datasets.OneHot(p[1], datasets.Classes)
		require.NoError(t, err)
		features = append(features, fv)
		labels = append(labels, lv)
	}
	d, err := datasets.New(features, labels)
	require.NoError(t, err)
	return d
}

func TestCompare(t *testing.T) {
	held := heldOut(t, [2]int{3, 3}, [2]int{5, 7}, [2]int{1, 1})

	var seen []int
	svc := classify.New(firstFeature{}, hardware.Naive)
	svc.Observer = classify.ObserverFunc(func(d classify.Decision) { seen = append(seen, d.Class) })

	var buf bytes.Buffer
	require.NoError(t, compare(&buf, svc, held, 2))
	assert.Equal(t, "Predicted:3,Actual:3\nPredicted:5,Actual:7\n", buf.String())
	assert.Equal(t, []int{3, 5}, seen)

	buf.Reset()
	require.NoError(t, compare(&buf, svc, held, 100))
	assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte("\n")))
}
