package mnist

import "encoding/csv"
import "io"
import "os"

import "github.com/pkg/errors"
import "go.uber.org/multierr"

import "github.com/neurlang/digitclassifier/datasets"
import "github.com/neurlang/digitclassifier/errs"

// Range selects CSV rows [Start, End). Row 0 is the header, data rows start at 1.
type Range struct {
	Start, End int
}

// Len returns the number of rows in range
func (r Range) Len() int {
	return r.End - r.Start
}

// Validate checks that the range is non-empty and excludes the header
func (r Range) Validate() error {
	if r.Start < 1 {
		return errs.Validationf("row range [%d,%d) includes the header row", r.Start, r.End)
	}
	if r.End <= r.Start {
		return errs.Validationf("row range [%d,%d) is empty", r.Start, r.End)
	}
	return nil
}

// Overlaps reports whether two ranges share a row
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Load extracts the feature vectors of rows in range from the CSV file at path
func Load(path string, ex Extractor, r Range) (features []datasets.FeatureVector, err error) {
	err = withFile(path, func(f io.Reader) (err error) {
		features, err = Read(f, ex, r)
		return err
	})
	return
}

// LoadLabeled extracts features and labels of rows in range from the CSV file
// at path, reading the file once
func LoadLabeled(path string, ex Extractor, lx LabelExtractor, r Range) (d datasets.Dataset, err error) {
	err = withFile(path, func(f io.Reader) error {
		features, labels, err := read(f, ex, lx, r)
		if err != nil {
			return err
		}
		d, err = datasets.New(features, labels)
		return err
	})
	return
}

// Read extracts the feature vectors of rows in range from a CSV stream
func Read(in io.Reader, ex Extractor, r Range) ([]datasets.FeatureVector, error) {
	features, _, err := read(in, ex, nil, r)
	return features, err
}

func withFile(path string, body func(f io.Reader) error) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return errs.Resource(err, path)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	if err = body(f); err != nil {
		return errors.WithMessagef(err, "loading %s", path)
	}
	return nil
}

func read(in io.Reader, ex Extractor, lx LabelExtractor, r Range) (features []datasets.FeatureVector, labels []datasets.LabelVector, err error) {
	if err := r.Validate(); err != nil {
		return nil, nil, err
	}
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	features = make([]datasets.FeatureVector, 0, r.Len())
	if lx != nil {
		labels = make([]datasets.LabelVector, 0, r.Len())
	}
	for row := 0; row < r.End; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			if row == 0 {
				return nil, nil, errs.Validationf("csv has no header row")
			}
			return nil, nil, errs.Validationf("row range [%d,%d) exceeds the %d data rows", r.Start, r.End, row-1)
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, nil, errs.Validationf("row %d: %s", row, err)
		}
		if err != nil {
			return nil, nil, errs.Resource(errors.WithMessagef(err, "row %d", row), "csv stream")
		}
		if row < r.Start {
			continue
		}
		fv, err := ex.Extract(Row(record))
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "row %d", row)
		}
		features = append(features, fv)
		if lx != nil {
			lv, err := lx.ExtractLabel(Row(record))
			if err != nil {
				return nil, nil, errors.WithMessagef(err, "row %d", row)
			}
			labels = append(labels, lv)
		}
	}
	return features, labels, nil
}
