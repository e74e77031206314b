//go:build cuda

package hardware

import "gorgonia.org/cu"

// accelerators counts the CUDA devices
func accelerators() (int, string) {
	devices, err := cu.NumDevices()
	if err != nil || devices == 0 {
		return 0, ""
	}
	name, err := cu.Device(0).Name()
	if err != nil {
		name = "cuda device 0"
	}
	return devices, name
}
