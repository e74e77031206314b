package classify

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/digitclassifier/datasets"
	"github.com/neurlang/digitclassifier/datasets/mnist"
	"github.com/neurlang/digitclassifier/errs"
	"github.com/neurlang/digitclassifier/hardware"
)

// lookup predicts the class stored for the index of the highest feature
type lookup struct {
	classes map[int]int
	width   int
	fail    error
}

func (l lookup) Predict(s hardware.Strategy, fv []float64) ([]float64, error) {
	if l.fail != nil {
		return nil, l.fail
	}
	width := l.width
	if width == 0 {
		width = datasets.Classes
	}
	out := make([]float64, width)
	if class, ok := l.classes[datasets.ArgMax(fv)]; ok && class < width {
		out[class] = 0.9
	}
	return out, nil
}

func (l lookup) Accuracy(hardware.Strategy, [][]float64, [][]float64) (float64, error) {
	return 0, errors.New("unused")
}

func (l lookup) DescribeTopology() string { return "lookup" }

func labels(t *testing.T, classes ...int) (o []datasets.LabelVector) {
	for _, c := range classes {
		l, err := datasets.OneHot(c, datasets.Classes)
		require.NoError(t, err)
		o = append(o, l)
	}
	return
}

func TestThreeRowScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte("label,p1,p2,p3\n3,0,0,255\n7,0,255,0\n3,255,0,0\n"), 0o644))

	d, err := mnist.LoadLabeled(path, mnist.LabeledCSV{Pixels: 3}, mnist.Labels{}, mnist.Range{Start: 1, End: 4})
	require.NoError(t, err)
	assert.Equal(t, []datasets.FeatureVector{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}}, d.FeatureRows())

	svc := New(lookup{classes: map[int]int{2: 3, 1: 7, 0: 7}}, hardware.Naive)
	predicted, err := svc.ClassifyBatch(d.FeatureRows())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7, 7}, predicted)

	acc, err := svc.AccuracyOf(d)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3, acc, 1e-12)
}

func TestAccuracyBounds(t *testing.T) {
	features := []datasets.FeatureVector{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	svc := New(lookup{classes: map[int]int{0: 0, 1: 1, 2: 2, 3: 3}}, hardware.OptimizedNative)

	for _, tc := range []struct {
		truth []int
		want  float64
	}{
		{[]int{0, 1, 2, 3}, 1},
		{[]int{9, 9, 9, 9}, 0},
		{[]int{0, 9, 2, 9}, 0.5},
		{[]int{0, 9, 9, 9}, 0.25},
	} {
		acc, err := svc.Accuracy(features, labels(t, tc.truth...))
		require.NoError(t, err)
		assert.Equal(t, tc.want, acc, "%v", tc.truth)
	}

	_, err := svc.Accuracy(features, labels(t, 0))
	assert.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.Accuracy(nil, nil)
	assert.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.AccuracyOf(datasets.Dataset{})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestClassifyTiesAndErrors(t *testing.T) {
	svc := New(lookup{}, hardware.Naive)
	class, err := svc.Classify(datasets.FeatureVector{1})
	require.NoError(t, err)
	assert.Equal(t, 0, class, "all zero activations tie on the lowest class")

	_, err = New(lookup{width: 9}, hardware.Naive).Classify(datasets.FeatureVector{1})
	assert.ErrorIs(t, err, errs.ErrEngine)

	boom := errors.New("boom")
	_, err = New(lookup{fail: boom}, hardware.Naive).Classify(datasets.FeatureVector{1})
	assert.ErrorIs(t, err, errs.ErrEngine)
	assert.ErrorIs(t, err, boom)
}

func TestConcurrentBatch(t *testing.T) {
	classes := map[int]int{}
	var features []datasets.FeatureVector
	for i := 0; i < 10; i++ {
		classes[i] = 9 - i
	}
	for n := 0; n < 200; n++ {
		fv := make(datasets.FeatureVector, 10)
		fv[n%10] = 1
		features = append(features, fv)
	}
	seq := New(lookup{classes: classes}, hardware.Naive)
	want, err := seq.ClassifyBatch(features)
	require.NoError(t, err)

	var seen int
	par := New(lookup{classes: classes}, hardware.Naive)
	par.Workers = 8
	par.Observer = ObserverFunc(func(Decision) { seen++ })
	got, err := par.ClassifyBatch(features)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, len(features), seen)

	par = New(lookup{fail: errors.New("boom")}, hardware.Naive)
	par.Workers = 4
	_, err = par.ClassifyBatch(features)
	assert.ErrorIs(t, err, errs.ErrEngine)
}

func TestClassifyImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 28, 28))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetGray(5, 0, color.Gray{Y: 0})

	svc := New(lookup{classes: map[int]int{5: 4}}, hardware.Naive)
	class, err := svc.ClassifyImage(img)
	require.NoError(t, err)
	assert.Equal(t, 4, class)

	_, err = svc.ClassifyImage(image.NewGray(image.Rect(0, 0, 10, 10)))
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.ClassifyImage(nil)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestDisplay(t *testing.T) {
	var buf bytes.Buffer
	fv := make([]float64, mnist.Pixels)
	fv[0] = 1
	Display{W: &buf}.Observe(Decision{Row: 3, Features: fv, Class: 7})
	lines := bytes.Split(buf.Bytes(), []byte("\n"))
	require.Len(t, lines, mnist.ImgSize+2)
	assert.Equal(t, byte('#'), lines[0][0])
	assert.Equal(t, "row 3: 7", string(lines[mnist.ImgSize]))
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, []int{7, 2, 1}))
	assert.Equal(t, "\"ImageId\",\"Label\"\n1,\"7\"\n2,\"2\"\n3,\"1\"\n", buf.String())
}
