// Package maxpool2d implements a 2D max pooling layer
package maxpool2d

import "fmt"

import "github.com/neurlang/digitclassifier/layer"

type MaxPool2DLayer struct {
	inputs, outputs, depth int
	factor                 int
}

// New creates a new MaxPool2D layer subsampling depth square feature maps of inputs
// values into depth maps of outputs values
func New(inputs, outputs, depth int) (o *MaxPool2DLayer, err error) {
	side, err := layer.Side(inputs, depth)
	if err != nil {
		return nil, fmt.Errorf("New MaxPool2D: input: %w", err)
	}
	outside, err := layer.Side(outputs, depth)
	if err != nil {
		return nil, fmt.Errorf("New MaxPool2D: output: %w", err)
	}
	if side%outside != 0 {
		return nil, fmt.Errorf("New MaxPool2D: input side %d is not a multiple of output side %d", side, outside)
	}
	o = new(MaxPool2DLayer)
	o.inputs = inputs
	o.outputs = outputs
	o.depth = depth
	o.factor = side / outside
	return
}

// MustNew creates a new MaxPool2D layer, see New
func MustNew(inputs, outputs, depth int) *MaxPool2DLayer {
	o, err := New(inputs, outputs, depth)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// Lay turns MaxPool2D layer into a descriptor
func (i *MaxPool2DLayer) Lay() layer.Descriptor {
	return layer.Descriptor{
		Kind:       layer.Pooling,
		Inputs:     i.inputs,
		Outputs:    i.outputs,
		Activation: layer.Linear,
		PoolFactor: i.factor,
		Depth:      i.depth,
	}
}
