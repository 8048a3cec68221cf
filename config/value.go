package config

import (
	"strconv"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindInteger
	KindPath
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindPath:
		return "path"
	default:
		return "absent"
	}
}

// Value is a resolved configuration value. The zero Value is absent.
type Value struct {
	kind Kind
	str  string
	num  int
}

// Absent returns the absent Value.
func Absent() Value { return Value{} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntegerValue returns an integer Value.
func IntegerValue(n int) Value { return Value{kind: KindInteger, num: n} }

// PathValue returns a path Value.
func PathValue(p string) Value { return Value{kind: KindPath, str: p} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether no source supplied v.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Int returns the integer held by v.
func (v Value) Int() (int, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.num, true
}

// Path returns the path held by v.
func (v Value) Path() (string, bool) {
	if v.kind != KindPath {
		return "", false
	}
	return v.str, true
}

// Str returns the string held by a string Value.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// String returns the string form written to disk. Absent values render as
// the empty string; use Raw to tell them apart.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.Itoa(v.num)
	case KindString, KindPath:
		return v.str
	default:
		return ""
	}
}

// Raw returns the serialized form of v: nil when absent, otherwise a pointer
// to its string form.
func (v Value) Raw() *string {
	if v.IsAbsent() {
		return nil
	}
	s := v.String()
	return &s
}

// Interface returns v as a plain Go value: nil, string or int.
func (v Value) Interface() any {
	switch v.kind {
	case KindInteger:
		return v.num
	case KindString, KindPath:
		return v.str
	default:
		return nil
	}
}

// Equal reports whether v and o hold the same variant and contents.
func (v Value) Equal(o Value) bool {
	return v == o
}
