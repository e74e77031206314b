package classify

import "fmt"
import "io"
import "strings"

import "github.com/neurlang/digitclassifier/datasets/mnist"

// Decision is one classified row. Row is -1 outside of batches.
type Decision struct {
	Row         int
	Features    []float64
	Activations []float64
	Class       int
}

// Observer is notified after every decision
type Observer interface {
	Observe(Decision)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Decision)

// Observe calls f(d)
func (f ObserverFunc) Observe(d Decision) {
	f(d)
}

// Display draws each 28x28 input as text followed by its decision
type Display struct {
	W io.Writer
}

// Observe renders d to the writer. Inputs of other sizes print only the decision.
func (p Display) Observe(d Decision) {
	var b strings.Builder
	if len(d.Features) == mnist.Pixels {
		for y := 0; y < mnist.ImgSize; y++ {
			for x := 0; x < mnist.ImgSize; x++ {
				b.WriteByte(shade(d.Features[y*mnist.ImgSize+x]))
			}
			b.WriteByte('\n')
		}
	}
	fmt.Fprintf(&b, "row %d: %d\n", d.Row, d.Class)
	_, _ = io.WriteString(p.W, b.String())
}

func shade(v float64) byte {
	switch {
	case v >= 0.75:
		return '#'
	case v >= 0.5:
		return '+'
	case v >= 0.25:
		return '.'
	}
	return ' '
}
