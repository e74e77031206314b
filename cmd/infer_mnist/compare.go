package main

import "fmt"
import "io"

import "github.com/neurlang/digitclassifier/classify"
import "github.com/neurlang/digitclassifier/datasets"

// compare prints the predicted and the actual class of the first n rows of held
func compare(w io.Writer, svc *classify.Service, held datasets.Dataset, n int) error {
	if n > held.Len() {
		n = held.Len()
	}
	for i := 0; i < n; i++ {
		predicted, err := svc.Classify(held.Features(i))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Predicted:%d,Actual:%d\n", predicted, held.Labels(i).Class()); err != nil {
			return err
		}
	}
	return nil
}
