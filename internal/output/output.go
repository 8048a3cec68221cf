package output

import (
	"fmt"
	"io"
	"os"
)

// Entry is one resolved configuration key as shown to the user.
type Entry struct {
	Key   string  `json:"key" yaml:"key"`
	Group string  `json:"group,omitempty" yaml:"group,omitempty"`
	Type  string  `json:"type" yaml:"type"`
	Value *string `json:"value" yaml:"value"`
	// Masked is set when Value has been partially hidden.
	Masked bool `json:"masked,omitempty" yaml:"masked,omitempty"`
}

// Report is the resolved configuration of one store.
type Report struct {
	Path    string  `json:"path" yaml:"path"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "", "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "yaml", "yml":
		return &YAMLWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to outPath, or to w when outPath is empty.
func WriteReport(w io.Writer, report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return writer.Write(w, report)
}
