package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// jsonEntry is one undecoded value from the configuration file.
type jsonEntry = json.RawMessage

// readEntries reads the configuration file as a JSON object. A missing file
// yields an empty map. Content that is not a JSON object yields a
// *malformedStoreError.
func readEntries(path string) (map[string]jsonEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]jsonEntry{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var entries map[string]jsonEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &malformedStoreError{path: path, err: err}
	}
	if entries == nil {
		return nil, &malformedStoreError{path: path, err: errors.New("top-level value is null")}
	}
	return entries, nil
}

// rawString converts one stored JSON value into its string form. JSON null
// yields nil. Numbers and booleans keep their literal text.
func rawString(msg json.RawMessage) (*string, error) {
	trimmed := bytes.TrimSpace(msg)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case json.Number:
		s = x.String()
	case bool:
		s = strconv.FormatBool(x)
	default:
		return nil, fmt.Errorf("unsupported JSON value %s", trimmed)
	}
	return &s, nil
}

// writeEntries writes the named values in order, followed by any extra
// entries sorted by name, as a JSON object indented by four spaces.
func writeEntries(path string, names []string, values map[string]Value, extra map[string]json.RawMessage) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	first := true
	add := func(name string, value []byte) error {
		k, err := json.Marshal(name)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteString(",")
		}
		first = false
		buf.WriteString("\n    ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(value)
		return nil
	}

	for _, name := range names {
		data, err := json.Marshal(values[name].Raw())
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", name, err)
		}
		if err := add(name, data); err != nil {
			return fmt.Errorf("marshaling %s: %w", name, err)
		}
	}

	extraNames := make([]string, 0, len(extra))
	for name := range extra {
		extraNames = append(extraNames, name)
	}
	sort.Strings(extraNames)
	for _, name := range extraNames {
		var compact bytes.Buffer
		if err := json.Compact(&compact, extra[name]); err != nil {
			return fmt.Errorf("marshaling %s: %w", name, err)
		}
		if err := add(name, compact.Bytes()); err != nil {
			return fmt.Errorf("marshaling %s: %w", name, err)
		}
	}

	if !first {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
