// Package main classifies image files with a trained MNIST digit classifier.
// Images must be 28x28 unless --resize is given. PNG, JPEG, GIF, BMP and TIFF
// files are accepted.
package main
