// Package trainer provides high-level training orchestration for the digit classifier.
// It loads the training and held-out rows, assembles the topology, selects the
// hardware strategy, hands everything to an engine once and stores the result.
package trainer
