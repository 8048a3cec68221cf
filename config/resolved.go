package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Resolved holds one value per schema key, in schema order. File entries
// that the schema does not define are kept aside so that writing the
// resolved values back does not drop them, but they are not visible through
// Get.
type Resolved struct {
	names  []string
	values map[string]Value
	extra  map[string]json.RawMessage
}

func newResolved(schema Schema) *Resolved {
	names := schema.names()
	return &Resolved{
		names:  names,
		values: make(map[string]Value, len(names)),
		extra:  make(map[string]json.RawMessage),
	}
}

// Get returns the value for name. The boolean is false when name is not a
// schema key.
func (r *Resolved) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns the schema key names in order.
func (r *Resolved) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of schema keys.
func (r *Resolved) Len() int { return len(r.names) }

// Map returns the values as plain Go values. Absent keys map to nil.
func (r *Resolved) Map() map[string]any {
	m := make(map[string]any, len(r.names))
	for _, name := range r.names {
		m[name] = r.values[name].Interface()
	}
	return m
}

// Decode copies the present values into out, which must be a pointer to a
// struct or map. Struct fields are matched by their `config` tag, or by name.
func (r *Resolved) Decode(out any) error {
	input := make(map[string]any, len(r.names))
	for _, name := range r.names {
		v := r.values[name]
		if v.IsAbsent() {
			continue
		}
		input[name] = v.Interface()
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "config",
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("decoding configuration: %w", err)
	}
	return nil
}

// String renders the values as a single-line object. Strings and paths are
// quoted, absent values print as null.
func (r *Resolved) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, name := range r.names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		v := r.values[name]
		switch v.Kind() {
		case KindAbsent:
			b.WriteString("null")
		case KindInteger:
			b.WriteString(v.String())
		default:
			b.WriteString(strconv.Quote(v.String()))
		}
	}
	b.WriteString("}")
	return b.String()
}

func (r *Resolved) set(name string, v Value) {
	r.values[name] = v
}
