// Package feedforward implements the feedforward network topology handed to the training engine
package feedforward

import "fmt"
import "strings"

import "github.com/neurlang/digitclassifier/errs"
import "github.com/neurlang/digitclassifier/hardware"
import "github.com/neurlang/digitclassifier/layer"

// FeedforwardNetwork is an ordered sequence of layer descriptors
type FeedforwardNetwork struct {
	name   string
	layers []layer.Descriptor
}

// New creates an empty named network
func New(name string) *FeedforwardNetwork {
	return &FeedforwardNetwork{name: name}
}

// Name returns the network name
func (f FeedforwardNetwork) Name() string {
	return f.name
}

// NewLayer adds a layer to the end of network
func (f *FeedforwardNetwork) NewLayer(l layer.Layer) {
	f.layers = append(f.layers, l.Lay())
}

// LenLayers returns the number of layers
func (f FeedforwardNetwork) LenLayers() int {
	return len(f.layers)
}

// GetLayer gets the n-th layer descriptor
func (f FeedforwardNetwork) GetLayer(n int) layer.Descriptor {
	return f.layers[n]
}

// Layers returns a copy of the layer descriptors
func (f FeedforwardNetwork) Layers() []layer.Descriptor {
	return append([]layer.Descriptor(nil), f.layers...)
}

// Inputs returns the input width of the first layer
func (f FeedforwardNetwork) Inputs() int {
	if len(f.layers) == 0 {
		return 0
	}
	return f.layers[0].Inputs
}

// Outputs returns the output width of the last layer
func (f FeedforwardNetwork) Outputs() int {
	if len(f.layers) == 0 {
		return 0
	}
	return f.layers[len(f.layers)-1].Outputs
}

// Validate checks that every layer feeds the next one, that the first layer reads
// inputs features and the last layer produces classes outputs
func (f FeedforwardNetwork) Validate(inputs, classes int) error {
	if len(f.layers) == 0 {
		return errs.Validationf("network %q has no layers", f.name)
	}
	for i := 0; i+1 < len(f.layers); i++ {
		if f.layers[i].Outputs != f.layers[i+1].Inputs {
			return errs.Validationf("network %q: layer %d outputs %d but layer %d reads %d",
				f.name, i, f.layers[i].Outputs, i+1, f.layers[i+1].Inputs)
		}
	}
	if f.Inputs() != inputs {
		return errs.Validationf("network %q reads %d features, want %d", f.name, f.Inputs(), inputs)
	}
	if f.Outputs() != classes {
		return errs.Validationf("network %q produces %d outputs, want %d classes", f.name, f.Outputs(), classes)
	}
	return nil
}

// WithMatrixForm returns a copy of the network whose layers keep their
// input matrices in form m
func (f FeedforwardNetwork) WithMatrixForm(m hardware.MatrixForm) FeedforwardNetwork {
	o := FeedforwardNetwork{name: f.name, layers: f.Layers()}
	for i := range o.layers {
		o.layers[i].MatrixForm = m
	}
	return o
}

// MatrixForm reports the input matrix form of the first layer
func (f FeedforwardNetwork) MatrixForm() hardware.MatrixForm {
	if len(f.layers) == 0 {
		return hardware.HostMatrix
	}
	return f.layers[0].MatrixForm
}

// String describes the network one layer per line
func (f FeedforwardNetwork) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d layers, %s matrices)\n", f.name, len(f.layers), f.MatrixForm())
	for i, l := range f.layers {
		fmt.Fprintf(&b, "  %d: %s\n", i, l)
	}
	return b.String()
}
