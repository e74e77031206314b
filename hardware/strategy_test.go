package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	for _, tc := range []struct {
		a    Availability
		want Strategy
	}{
		{Availability{Accelerator: true, Native: true}, Accelerator},
		{Availability{Accelerator: true}, Accelerator},
		{Availability{Native: true}, OptimizedNative},
		{Availability{}, Naive},
	} {
		assert.Equal(t, tc.want, Select(tc.a), "%+v", tc.a)
	}
}

func TestMatrixForm(t *testing.T) {
	assert.Equal(t, AcceleratorMatrix, Accelerator.MatrixForm())
	assert.Equal(t, HostMatrix, OptimizedNative.MatrixForm())
	assert.Equal(t, HostMatrix, Naive.MatrixForm())
}

func TestParse(t *testing.T) {
	for _, s := range []Strategy{Naive, OptimizedNative, Accelerator} {
		got, err := Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := Parse("quantum")
	assert.Error(t, err)
	assert.Equal(t, "strategy(9)", Strategy(9).String())
}

func TestDeclaredResolve(t *testing.T) {
	yes, no := true, false
	p := Probe{Vector: true, Accelerators: 0}
	assert.Equal(t, Availability{Native: true}, Declared{}.Resolve(p))
	assert.Equal(t, Availability{Accelerator: true}, Declared{Accelerator: &yes, Native: &no}.Resolve(p))
	assert.Equal(t, Availability{Accelerator: true, Native: true}, Declared{}.Resolve(Probe{Vector: true, Accelerators: 2}))
}

func TestDetect(t *testing.T) {
	p := Detect()
	// without the cuda build tag no accelerator is ever reported
	if p.Accelerators == 0 {
		assert.False(t, p.Availability().Accelerator)
	}
	assert.NotPanics(t, func() { _ = p.String() })
}
