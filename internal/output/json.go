package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ablens/ablens/internal/analyze"
)

// JSONWriter outputs the full analysis result as JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, result *analyze.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
