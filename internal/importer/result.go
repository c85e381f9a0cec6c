package importer

import (
	"fmt"
	"strings"
)

// ValidationError reports a row that was left out of the import.
type ValidationError struct {
	Row     int      `json:"row"`
	Missing []string `json:"missing"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("Row %d: missing required fields: %s", e.Row, strings.Join(e.Missing, ", "))
}

// Result holds the rows that passed validation and the ones that did not.
// Errors never block Records from being imported.
type Result[T any] struct {
	Records []T               `json:"records"`
	Errors  []ValidationError `json:"errors"`
}

// Messages renders Errors for display.
func (r Result[T]) Messages() []string {
	out := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		out[i] = e.Error()
	}
	return out
}

// Chunks splits records into consecutive batches of at most size, keeping
// input order.
func Chunks[T any](records []T, size int) [][]T {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var out [][]T
	for start := 0; start < len(records); start += size {
		out = append(out, records[start:min(start+size, len(records))])
	}
	return out
}

// DefaultBatchSize is the number of records written per store call.
const DefaultBatchSize = 20
