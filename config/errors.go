package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports an invalid key definition.
type ValidationError struct {
	Key    string
	Type   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return "invalid key definition: " + e.Reason
	}
	allowed := strings.Join([]string{String.String(), Integer.String(), Path.String()}, ", ")
	if e.Key != "" {
		return fmt.Sprintf("key %q: type %q must be one of [%s]", e.Key, e.Type, allowed)
	}
	return fmt.Sprintf("type %q must be one of [%s]", e.Type, allowed)
}

// TypeCoercionError reports a stored or entered value that cannot be
// converted to its key's declared type.
type TypeCoercionError struct {
	Key   string
	Type  KeyType
	Value string
	Err   error
}

func (e *TypeCoercionError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("key %q: cannot use %q as %s", e.Key, e.Value, e.Type)
	}
	return fmt.Sprintf("cannot use %q as %s", e.Value, e.Type)
}

func (e *TypeCoercionError) Unwrap() error { return e.Err }

// KeyNotConfiguredError reports a lookup of a schema key that no source
// supplies a value for.
type KeyNotConfiguredError struct {
	Key     string
	Group   string
	Command string
}

func (e *KeyNotConfiguredError) Error() string {
	return fmt.Sprintf("The key %q is not in your configuration file, run \"%s %s\" to set value.", e.Key, e.Command, e.Group)
}

// UnknownKeyError reports a lookup of a name the schema does not define.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("%q is not a valid configuration key", e.Key)
}

// malformedStoreError marks a configuration file that is not a JSON object.
// Load handles it by deleting the file.
type malformedStoreError struct {
	path string
	err  error
}

func (e *malformedStoreError) Error() string {
	return fmt.Sprintf("malformed configuration file %s: %v", e.path, e.err)
}

func (e *malformedStoreError) Unwrap() error { return e.err }

// IsNotConfigured reports whether err is a *KeyNotConfiguredError.
func IsNotConfigured(err error) bool {
	var e *KeyNotConfiguredError
	return errors.As(err, &e)
}

// IsUnknownKey reports whether err is an *UnknownKeyError.
func IsUnknownKey(err error) bool {
	var e *UnknownKeyError
	return errors.As(err, &e)
}
