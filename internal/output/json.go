package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONWriter outputs the full report as indented JSON. Values are written
// verbatim, without HTML escaping, so URLs and connection strings read the
// same as in the configuration file.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
