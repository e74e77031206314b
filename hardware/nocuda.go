//go:build !cuda

package hardware

func accelerators() (int, string) {
	return 0, ""
}
