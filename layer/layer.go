// Package layer defines the closed set of layer descriptors a topology is made of
package layer

import "fmt"
import "math"

import "github.com/neurlang/digitclassifier/hardware"

// Kind is the layer kind
type Kind byte

const (
	FullyConnected Kind = iota
	Convolutional
	Pooling
)

func (k Kind) String() string {
	switch k {
	case FullyConnected:
		return "fully-connected"
	case Convolutional:
		return "convolutional"
	case Pooling:
		return "pooling"
	}
	return fmt.Sprintf("kind(%d)", byte(k))
}

// Activation is the activation function of a layer
type Activation byte

const (
	Linear Activation = iota
	Sigmoid
	Softmax
)

func (a Activation) String() string {
	switch a {
	case Linear:
		return "linear"
	case Sigmoid:
		return "sigmoid"
	case Softmax:
		return "softmax"
	}
	return fmt.Sprintf("activation(%d)", byte(a))
}

// Descriptor describes one layer handed to the training engine
type Descriptor struct {
	Kind       Kind
	Inputs     int
	Outputs    int
	Activation Activation
	Bias       bool

	// Convolutional only
	Filters      int
	FilterWidth  int
	FilterHeight int
	Depth        int // number of input feature maps, also used by pooling

	// Pooling only
	PoolFactor int

	// MatrixForm is how the engine keeps the layer's input matrices
	MatrixForm hardware.MatrixForm
}

func (d Descriptor) String() string {
	switch d.Kind {
	case Convolutional:
		return fmt.Sprintf("%s %d->%d %s bias=%t filters=%d size=%dx%d depth=%d",
			d.Kind, d.Inputs, d.Outputs, d.Activation, d.Bias, d.Filters, d.FilterWidth, d.FilterHeight, d.Depth)
	case Pooling:
		return fmt.Sprintf("%s %d->%d factor=%d depth=%d", d.Kind, d.Inputs, d.Outputs, d.PoolFactor, d.Depth)
	}
	return fmt.Sprintf("%s %d->%d %s bias=%t", d.Kind, d.Inputs, d.Outputs, d.Activation, d.Bias)
}

// Layer is implemented by every layer constructor package
type Layer interface {

	// Lay creates the descriptor
	Lay() Descriptor
}

// Side returns the side of the square feature maps when n values are split into depth
// maps, or an error if they are not square
func Side(n, depth int) (int, error) {
	if depth <= 0 || n <= 0 || n%depth != 0 {
		return 0, fmt.Errorf("%d values do not split into %d feature maps", n, depth)
	}
	per := n / depth
	side := int(math.Round(math.Sqrt(float64(per))))
	if side*side != per {
		return 0, fmt.Errorf("feature map of %d values is not square", per)
	}
	return side, nil
}
