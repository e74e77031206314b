// Package conv2d implements a 2D convolution layer
package conv2d

import "fmt"

import "github.com/neurlang/digitclassifier/layer"

type Conv2DLayer struct {
	inputs, outputs int
	activation      layer.Activation
	bias            bool
	filters, depth  int
	subside         int
}

// MustNew creates a new Conv2D layer, see New
func MustNew(inputs, outputs int, activation layer.Activation, bias bool, filters, depth int) *Conv2DLayer {
	o, err := New(inputs, outputs, activation, bias, filters, depth)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new Conv2D layer reading depth square feature maps out of inputs values
// and producing filters square feature maps out of outputs values. The filter size
// follows from the map sides.
func New(inputs, outputs int, activation layer.Activation, bias bool, filters, depth int) (o *Conv2DLayer, err error) {
	side, err := layer.Side(inputs, depth)
	if err != nil {
		return nil, fmt.Errorf("New Conv2D: input: %w", err)
	}
	outside, err := layer.Side(outputs, filters)
	if err != nil {
		return nil, fmt.Errorf("New Conv2D: output: %w", err)
	}
	if outside > side {
		return nil, fmt.Errorf("New Conv2D: output side %d is larger than input side %d", outside, side)
	}
	o = new(Conv2DLayer)
	o.inputs = inputs
	o.outputs = outputs
	o.activation = activation
	o.bias = bias
	o.filters = filters
	o.depth = depth
	o.subside = side - outside + 1
	return
}

// Lay turns Conv2D layer into a descriptor
func (i *Conv2DLayer) Lay() layer.Descriptor {
	return layer.Descriptor{
		Kind:         layer.Convolutional,
		Inputs:       i.inputs,
		Outputs:      i.outputs,
		Activation:   i.activation,
		Bias:         i.bias,
		Filters:      i.filters,
		FilterWidth:  i.subside,
		FilterHeight: i.subside,
		Depth:        i.depth,
	}
}
