package classify

import "bufio"
import "fmt"
import "io"

// WriteReport writes predictions in the Kaggle submission format,
// numbering images from 1
func WriteReport(w io.Writer, predictions []int) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("\"ImageId\",\"Label\"\n"); err != nil {
		return err
	}
	for n, class := range predictions {
		if _, err := fmt.Fprintf(bw, "%d,\"%d\"\n", n+1, class); err != nil {
			return err
		}
	}
	return bw.Flush()
}
