// Package parallel contains the bounded parallel ForEach used by batch classification.
package parallel

import "sync"

// ForEach executes a for loop with a limited number of concurrent goroutines.
// Each goroutine processes one integer, from 0 to length. Once body fails
// no further iterations are started and the first error is returned.
func ForEach(length, limit int, body func(i int) error) error {
	if limit <= 0 {
		limit = 1
	}
	if length <= 0 {
		return nil
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	var once sync.Once
	var first error
	failed := make(chan struct{})

	for i := 0; i < length; i++ {
		sem <- struct{}{}
		select {
		case <-failed:
			<-sem
			wg.Wait()
			return first
		default:
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := body(i); err != nil {
				once.Do(func() {
					first = err
					close(failed)
				})
			}
		}(i)
	}

	wg.Wait()
	return first
}
