package datasets

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/digitclassifier/errs"
)

func TestArgMax(t *testing.T) {
	assert.Equal(t, 2, ArgMax([]float64{0, 0, 1, 0, 0, 0, 0, 0, 0, 0}))
	assert.Equal(t, 1, ArgMax([]float64{0.1, 0.7, 0.2, 0.7}))
	assert.Equal(t, 0, ArgMax([]float64{0.5, 0.5}))
	assert.Equal(t, -1, ArgMax(nil))
}

func TestOneHot(t *testing.T) {
	l, err := OneHot(7, Classes)
	require.NoError(t, err)
	assert.Len(t, l, Classes)
	assert.Equal(t, 7, l.Class())
	assert.NoError(t, l.Validate())

	_, err = OneHot(10, Classes)
	assert.True(t, errors.Is(err, errs.ErrValidation))
	_, err = OneHot(-1, Classes)
	assert.True(t, errors.Is(err, errs.ErrValidation))
}

func TestLabelVectorValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		l    LabelVector
		ok   bool
	}{
		{"one hot", LabelVector{0, 1, 0}, true},
		{"none hot", LabelVector{0, 0, 0}, false},
		{"two hot", LabelVector{1, 1, 0}, false},
		{"fractional", LabelVector{0.5, 1, 0}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.l.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, errs.ErrValidation))
			}
		})
	}
}

func TestNewDataset(t *testing.T) {
	features := []FeatureVector{{0, 1}, {1, 0}}
	d, err := New(features, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.False(t, d.HasLabels())
	assert.Nil(t, d.LabelMatrix())

	_, err = New(features, []LabelVector{{1, 0}})
	assert.True(t, errors.Is(err, errs.ErrValidation))

	d, err = New(features, []LabelVector{{1, 0}, {0, 1}})
	require.NoError(t, err)
	assert.True(t, d.HasLabels())
	assert.Equal(t, 1, d.Labels(1).Class())
	assert.Equal(t, [][]float64{{0, 1}, {1, 0}}, d.FeatureMatrix())
}

func TestDatasetImmutable(t *testing.T) {
	features := []FeatureVector{{0, 1}}
	labels := []LabelVector{{1, 0}}
	d, err := New(features, labels)
	require.NoError(t, err)

	features[0][1] = 7
	labels[0][0] = 0
	d.FeatureMatrix()[0][0] = 42
	d.LabelMatrix()[0][1] = 5
	d.Features(0)[0] = 3
	d.FeatureRows()[0][1] = 9
	d.LabelRows()[0][0] = 2

	assert.Equal(t, FeatureVector{0, 1}, d.Features(0))
	assert.Equal(t, LabelVector{1, 0}, d.Labels(0))
}
