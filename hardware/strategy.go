// Package hardware selects the execution backend used for training and inference
package hardware

import "fmt"

// Strategy is the execution backend of one training or inference session.
// It only affects performance, never results.
type Strategy byte

const (
	Naive Strategy = iota
	OptimizedNative
	Accelerator
)

func (s Strategy) String() string {
	switch s {
	case Naive:
		return "naive"
	case OptimizedNative:
		return "optimized-native"
	case Accelerator:
		return "accelerator"
	}
	return fmt.Sprintf("strategy(%d)", byte(s))
}

// MatrixForm is the representation layers keep their input matrices in
type MatrixForm byte

const (
	HostMatrix MatrixForm = iota
	AcceleratorMatrix
)

func (m MatrixForm) String() string {
	if m == AcceleratorMatrix {
		return "accelerator"
	}
	return "host"
}

// MatrixForm reports the input matrix form a topology must use under this strategy
func (s Strategy) MatrixForm() MatrixForm {
	if s == Accelerator {
		return AcceleratorMatrix
	}
	return HostMatrix
}

// Availability declares which backends can be used
type Availability struct {
	Accelerator bool
	Native      bool
}

// Select picks the accelerator when available, otherwise the native backend
// when available, otherwise the naive one
func Select(a Availability) Strategy {
	if a.Accelerator {
		return Accelerator
	}
	if a.Native {
		return OptimizedNative
	}
	return Naive
}

// Parse parses the String form of a strategy
func Parse(s string) (Strategy, error) {
	for _, v := range []Strategy{Naive, OptimizedNative, Accelerator} {
		if v.String() == s {
			return v, nil
		}
	}
	return Naive, fmt.Errorf("unknown hardware strategy %q", s)
}
