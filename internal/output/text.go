package output

import (
	"fmt"
	"io"
	"strings"
)

const notSet = "(not set)"

// TextWriter outputs a human-readable listing grouped by key group.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	ew.printf("Configuration: %s\n", report.Path)
	ew.println(strings.Repeat("─", 60))

	if len(report.Entries) == 0 {
		ew.println("No keys defined.")
		return ew.err
	}

	width := 0
	for _, e := range report.Entries {
		if len(e.Key) > width {
			width = len(e.Key)
		}
	}

	for _, group := range groupOrder(report.Entries) {
		label := group
		if label == "" {
			label = "(no group)"
		}
		ew.printf("\n%s\n", label)
		for _, e := range report.Entries {
			if e.Group != group {
				continue
			}
			value := notSet
			if e.Value != nil {
				value = *e.Value
			}
			ew.printf("  %-*s  %s\n", width, e.Key, value)
		}
	}
	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

// groupOrder lists the distinct groups in first-seen order.
func groupOrder(entries []Entry) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, e := range entries {
		if seen[e.Group] {
			continue
		}
		seen[e.Group] = true
		groups = append(groups, e.Group)
	}
	return groups
}
