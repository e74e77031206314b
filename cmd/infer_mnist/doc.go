// Package main provides a program for running inference with a trained MNIST digit
// classifier. It reports the accuracy on the held-out rows of train.csv and prints
// the predicted and actual class of the first of those rows, optionally drawing each digit.
package main
