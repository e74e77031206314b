package hardware

import "strings"

import "github.com/klauspost/cpuid/v2"

// Probe reports what the host provides
type Probe struct {
	CPU          string
	Cores        int
	Vector       bool // wide SIMD with fused multiply add
	Accelerators int
	Device       string
}

// Availability converts the probe into an availability declaration
func (p Probe) Availability() Availability {
	return Availability{
		Accelerator: p.Accelerators > 0,
		Native:      p.Vector,
	}
}

func (p Probe) String() string {
	var b strings.Builder
	b.WriteString(p.CPU)
	if p.Vector {
		b.WriteString(" (vector)")
	}
	if p.Accelerators > 0 {
		b.WriteString(", ")
		b.WriteString(p.Device)
	}
	return b.String()
}

// Detect probes the CPU vector extensions and the accelerator devices
func Detect() Probe {
	p := Probe{
		CPU:   cpuid.CPU.BrandName,
		Cores: cpuid.CPU.PhysicalCores,
	}
	switch {
	case cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3):
		p.Vector = true
	case cpuid.CPU.Supports(cpuid.ASIMD):
		p.Vector = true
	}
	p.Accelerators, p.Device = accelerators()
	return p
}

// Declared is an availability override, nil fields are detected
type Declared struct {
	Accelerator *bool
	Native      *bool
}

// Resolve combines the declaration with the probe
func (d Declared) Resolve(p Probe) Availability {
	a := p.Availability()
	if d.Accelerator != nil {
		a.Accelerator = *d.Accelerator
	}
	if d.Native != nil {
		a.Native = *d.Native
	}
	return a
}
