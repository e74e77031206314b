// Package main writes a Kaggle digit recognizer submission for test.csv using a
// trained MNIST digit classifier.
package main
