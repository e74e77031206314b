// Package full implements a fully connected layer
package full

import "fmt"

import "github.com/neurlang/digitclassifier/layer"

// FullLayer is a fully connected layer
type FullLayer struct {
	inputs, outputs int
	activation      layer.Activation
	bias            bool
}

// MustNew creates a new full layer with inputs, outputs, activation and bias
func MustNew(inputs, outputs int, activation layer.Activation, bias bool) *FullLayer {
	o, err := New(inputs, outputs, activation, bias)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new full layer with inputs, outputs, activation and bias
func New(inputs, outputs int, activation layer.Activation, bias bool) (o *FullLayer, err error) {
	if inputs <= 0 || outputs <= 0 {
		return nil, fmt.Errorf("New Full: widths %d->%d must be positive", inputs, outputs)
	}
	o = new(FullLayer)
	o.inputs = inputs
	o.outputs = outputs
	o.activation = activation
	o.bias = bias
	return
}

// Lay turns full layer into a descriptor
func (i *FullLayer) Lay() layer.Descriptor {
	return layer.Descriptor{
		Kind:       layer.FullyConnected,
		Inputs:     i.inputs,
		Outputs:    i.outputs,
		Activation: i.activation,
		Bias:       i.bias,
	}
}
