// Package mnist converts MNIST style digit images and CSV rows into feature vectors
package mnist

import "image"
import "image/color"
import "strconv"
import "strings"

import "github.com/neurlang/digitclassifier/datasets"
import "github.com/neurlang/digitclassifier/errs"

// ImgSize is the side of a supported digit image
const ImgSize = 28

// Pixels is the feature vector length of a supported digit image
const Pixels = ImgSize * ImgSize

// Kind identifies an extractor variant
type Kind byte

const (
	KindImage Kind = iota
	KindLabeledCSV
	KindUnlabeledCSV
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindLabeledCSV:
		return "labeled-csv"
	case KindUnlabeledCSV:
		return "unlabeled-csv"
	}
	return "unknown"
}

// Record is one raw input record, either a Row or a Bitmap
type Record interface {
	record()
}

// Row is one tokenized CSV row
type Row []string

func (Row) record() {}

// Bitmap is one decoded image
type Bitmap struct {
	image.Image
}

func (Bitmap) record() {}

// Extractor converts one raw record into a feature vector
type Extractor interface {
	Kind() Kind
	Extract(r Record) (datasets.FeatureVector, error)
}

// LabelExtractor converts one CSV row into a label vector
type LabelExtractor interface {
	ExtractLabel(r Row) (datasets.LabelVector, error)
}

// Image extracts inverted luminance from 28x28 bitmaps
type Image struct{}

// Kind reports KindImage
func (Image) Kind() Kind {
	return KindImage
}

// Extract maps bitmap pixels to 1 - luminance, row by row
func (e Image) Extract(r Record) (datasets.FeatureVector, error) {
	b, ok := r.(Bitmap)
	if !ok || b.Image == nil {
		return nil, errs.Validationf("%s extractor cannot read a %T record", e.Kind(), r)
	}
	return ImageFeatures(b.Image)
}

// ImageFeatures maps a 28x28 image to its feature vector
func ImageFeatures(img image.Image) (datasets.FeatureVector, error) {
	if img == nil {
		return nil, errs.Validationf("image is nil")
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width != ImgSize || height != ImgSize {
		return nil, errs.Validationf("image dimensions unsupported: %dx%d, want %dx%d", width, height, ImgSize, ImgSize)
	}
	var data = make(datasets.FeatureVector, 0, width*height)
	for w := 0; w < width; w++ {
		for h := 0; h < height; h++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+h, bounds.Min.Y+w)).(color.NRGBA)
			data = append(data, 1-luminance(c.R, c.G, c.B))
		}
	}
	return data, nil
}

// luminance computes perceptual sRGB luminance in range 0 to 1
func luminance(r, g, b uint8) float64 {
	// integer weights keep pure white exactly at 1
	num := 2126*int(r) + 7152*int(g) + 722*int(b)
	return float64(num) / (10000 * 255)
}

// LabeledCSV binarizes the pixels of a row that starts with a label
type LabeledCSV struct {
	// Pixels is the number of pixel tokens after the label, Pixels if zero
	Pixels int
}

// Kind reports KindLabeledCSV
func (LabeledCSV) Kind() Kind {
	return KindLabeledCSV
}

// Tokens returns the number of tokens expected on a row
func (e LabeledCSV) Tokens() int {
	return pixelsOr(e.Pixels) + 1
}

// Extract skips the label and binarizes the rest of the row
func (e LabeledCSV) Extract(r Record) (datasets.FeatureVector, error) {
	row, err := checkRow(e, r, e.Tokens())
	if err != nil {
		return nil, err
	}
	return binarize(row[1:], 1)
}

// UnlabeledCSV binarizes every token of a row
type UnlabeledCSV struct {
	// Pixels is the number of pixel tokens, Pixels if zero
	Pixels int
}

// Kind reports KindUnlabeledCSV
func (UnlabeledCSV) Kind() Kind {
	return KindUnlabeledCSV
}

// Tokens returns the number of tokens expected on a row
func (e UnlabeledCSV) Tokens() int {
	return pixelsOr(e.Pixels)
}

// Extract binarizes the row
func (e UnlabeledCSV) Extract(r Record) (datasets.FeatureVector, error) {
	row, err := checkRow(e, r, e.Tokens())
	if err != nil {
		return nil, err
	}
	return binarize(row, 0)
}

// Labels reads the leading digit of a row as a one-hot label
type Labels struct {
	// Classes is the label vector length, datasets.Classes if zero
	Classes int
}

// ExtractLabel parses the first token as the class
func (e Labels) ExtractLabel(r Row) (datasets.LabelVector, error) {
	if len(r) == 0 {
		return nil, errs.Validationf("label row is empty")
	}
	class, err := strconv.Atoi(strings.TrimSpace(r[0]))
	if err != nil {
		return nil, errs.Validationf("label %q is not an integer", r[0])
	}
	classes := e.Classes
	if classes == 0 {
		classes = datasets.Classes
	}
	return datasets.OneHot(class, classes)
}

func pixelsOr(n int) int {
	if n == 0 {
		return Pixels
	}
	return n
}

func checkRow(e Extractor, r Record, tokens int) (Row, error) {
	row, ok := r.(Row)
	if !ok {
		return nil, errs.Validationf("%s extractor cannot read a %T record", e.Kind(), r)
	}
	if len(row) != tokens {
		return nil, errs.Validationf("%s extractor expects %d tokens, row has %d", e.Kind(), tokens, len(row))
	}
	return row, nil
}

// binarize maps 0 to 0 and every other number to 1. The offset is the
// position of the first token within the row, used for messages only.
func binarize(tokens []string, offset int) (datasets.FeatureVector, error) {
	var data = make(datasets.FeatureVector, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			return nil, errs.Validationf("token %d (%q) is not a number", i+offset, tok)
		}
		if v != 0 {
			data[i] = 1
		}
	}
	return data, nil
}
