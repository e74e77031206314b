// Package datasets implements the feature, label and dataset types of the digit classifier
package datasets

import "gonum.org/v1/gonum/floats"

import "github.com/neurlang/digitclassifier/errs"

// Classes is the number of digit classes.
const Classes = 10

// FeatureVector is the canonical numeric representation of one input record.
type FeatureVector []float64

// LabelVector is a one-hot vector identifying the class of one record.
type LabelVector []float64

// OneHot creates the label vector of class among classes.
func OneHot(class, classes int) (LabelVector, error) {
	if class < 0 || class >= classes {
		return nil, errs.Validationf("class %d out of range [0,%d)", class, classes)
	}
	l := make(LabelVector, classes)
	l[class] = 1
	return l, nil
}

// Validate checks that exactly one element is 1 and the rest are 0.
func (l LabelVector) Validate() error {
	var ones int
	for i, v := range l {
		switch v {
		case 1:
			ones++
		case 0:
		default:
			return errs.Validationf("label element %d is %v, not 0 or 1", i, v)
		}
	}
	if ones != 1 {
		return errs.Validationf("label vector has %d hot elements", ones)
	}
	return nil
}

// Class returns the class of the label vector.
func (l LabelVector) Class() int {
	return ArgMax(l)
}

// ArgMax returns the index of the highest element; the lowest index wins ties.
// Returns -1 for an empty vector.
func ArgMax(v []float64) int {
	if len(v) == 0 {
		return -1
	}
	return floats.MaxIdx(v)
}

// Dataset is a feature matrix with an optional row-aligned label matrix.
type Dataset struct {
	features []FeatureVector
	labels   []LabelVector
}

// New creates a dataset from copies of the rows. Labels may be nil, otherwise
// they must match the features row for row.
func New(features []FeatureVector, labels []LabelVector) (Dataset, error) {
	if labels != nil && len(labels) != len(features) {
		return Dataset{}, errs.Validationf("%d feature rows but %d label rows", len(features), len(labels))
	}
	d := Dataset{features: make([]FeatureVector, len(features))}
	for i, v := range features {
		d.features[i] = clone(v)
	}
	if labels != nil {
		d.labels = make([]LabelVector, len(labels))
		for i, v := range labels {
			d.labels[i] = clone(v)
		}
	}
	return d, nil
}

func clone[T ~[]float64](v T) T {
	return append(T(nil), v...)
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.features)
}

// HasLabels reports whether the dataset carries labels.
func (d Dataset) HasLabels() bool {
	return d.labels != nil
}

// Features returns a copy of the feature row n.
func (d Dataset) Features(n int) FeatureVector {
	return clone(d.features[n])
}

// Labels returns a copy of the label row n.
func (d Dataset) Labels(n int) LabelVector {
	return clone(d.labels[n])
}

// FeatureMatrix returns a copy of the feature rows as plain slices.
func (d Dataset) FeatureMatrix() [][]float64 {
	o := make([][]float64, len(d.features))
	for i, v := range d.features {
		o[i] = clone([]float64(v))
	}
	return o
}

// LabelMatrix returns a copy of the label rows as plain slices, nil if unlabeled.
func (d Dataset) LabelMatrix() [][]float64 {
	if d.labels == nil {
		return nil
	}
	o := make([][]float64, len(d.labels))
	for i, v := range d.labels {
		o[i] = clone([]float64(v))
	}
	return o
}

// FeatureRows returns a copy of the feature rows.
func (d Dataset) FeatureRows() []FeatureVector {
	o := make([]FeatureVector, len(d.features))
	for i, v := range d.features {
		o[i] = clone(v)
	}
	return o
}

// LabelRows returns a copy of the label rows, nil if unlabeled.
func (d Dataset) LabelRows() []LabelVector {
	if d.labels == nil {
		return nil
	}
	o := make([]LabelVector, len(d.labels))
	for i, v := range d.labels {
		o[i] = clone(v)
	}
	return o
}
