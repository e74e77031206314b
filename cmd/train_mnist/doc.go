// Package main provides a program for training a handwritten digit classifier on
// the MNIST dataset. It reads the training and held-out rows of train.csv, hands
// the chosen topology to the configured engine once and saves the resulting model.
package main
