package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// KeyType is the declared type of a configuration key.
type KeyType int

const (
	// String values are passed through unchanged.
	String KeyType = iota + 1
	// Integer values are parsed as base-10 integers.
	Integer
	// Path values are wrapped as filesystem paths with no existence check.
	Path
)

// ParseKeyType returns the KeyType for a type name. The short names "str"
// and "int" are accepted alongside "string" and "integer", and an empty name
// means String.
func ParseKeyType(name string) (KeyType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "string", "str":
		return String, nil
	case "integer", "int":
		return Integer, nil
	case "path":
		return Path, nil
	default:
		return 0, &ValidationError{Type: name}
	}
}

// String returns the canonical type name.
func (t KeyType) String() string {
	switch t {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Path:
		return "path"
	default:
		return fmt.Sprintf("KeyType(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared kinds.
func (t KeyType) Valid() bool {
	return t == String || t == Integer || t == Path
}

// Coerce converts a raw string into a Value of type t. Integers are plain
// base-10 with an optional sign and surrounding whitespace; digit separators
// ("1_000") and values outside the range of int fail with a
// *TypeCoercionError.
func (t KeyType) Coerce(raw string) (Value, error) {
	switch t {
	case String:
		return StringValue(raw), nil
	case Integer:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, &TypeCoercionError{Type: t, Value: raw, Err: err}
		}
		return IntegerValue(n), nil
	case Path:
		return PathValue(raw), nil
	default:
		return Value{}, &ValidationError{Type: t.String()}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t KeyType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, &ValidationError{Type: t.String()}
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *KeyType) UnmarshalText(b []byte) error {
	kt, err := ParseKeyType(string(b))
	if err != nil {
		return err
	}
	*t = kt
	return nil
}

// KeyDefinition is a named, typed configuration slot. The name doubles as
// the environment variable consulted during resolution.
type KeyDefinition struct {
	Name        string
	Group       string
	Type        KeyType
	Description string
}

// NewKey builds a KeyDefinition from a type name. An unknown type name or an
// empty key name fails with a *ValidationError.
func NewKey(name, group, typeName, description string) (KeyDefinition, error) {
	if strings.TrimSpace(name) == "" {
		return KeyDefinition{}, &ValidationError{Type: typeName, Reason: "key name must not be empty"}
	}
	kt, err := ParseKeyType(typeName)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.Key = name
		}
		return KeyDefinition{}, err
	}
	return KeyDefinition{
		Name:        name,
		Group:       group,
		Type:        kt,
		Description: description,
	}, nil
}

// Key builds a KeyDefinition from an already typed KeyType. It panics if t is
// not a valid KeyType, so it is meant for package-level schema literals.
func Key(name, group string, t KeyType, description string) KeyDefinition {
	if !t.Valid() {
		panic(&ValidationError{Key: name, Type: t.String()})
	}
	return KeyDefinition{Name: name, Group: group, Type: t, Description: description}
}

// Schema is an ordered list of key definitions.
type Schema []KeyDefinition

// Find returns the definition named name. When several definitions share a
// name the last one wins.
func (s Schema) Find(name string) (KeyDefinition, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Name == name {
			return s[i], true
		}
	}
	return KeyDefinition{}, false
}

// InGroup returns the keys whose group equals group, or every key when group
// is empty.
func (s Schema) InGroup(group string) Schema {
	if group == "" {
		return s
	}
	var out Schema
	for _, k := range s {
		if k.Group == group {
			out = append(out, k)
		}
	}
	return out
}

// Groups lists the distinct non-empty groups in first-seen order.
func (s Schema) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, k := range s {
		if k.Group == "" || seen[k.Group] {
			continue
		}
		seen[k.Group] = true
		groups = append(groups, k.Group)
	}
	return groups
}

// names returns the distinct key names in schema order.
func (s Schema) names() []string {
	seen := make(map[string]bool, len(s))
	names := make([]string, 0, len(s))
	for _, k := range s {
		if seen[k.Name] {
			continue
		}
		seen[k.Name] = true
		names = append(names, k.Name)
	}
	return names
}
