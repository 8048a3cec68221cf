package config

import "os"

// Environment supplies override values by key name.
type Environment interface {
	Lookup(name string) (string, bool)
}

// EnvFunc adapts a lookup function to the Environment interface.
type EnvFunc func(name string) (string, bool)

// Lookup implements Environment.
func (f EnvFunc) Lookup(name string) (string, bool) { return f(name) }

// OSEnvironment reads the process environment. A variable that is set to the
// empty string counts as present.
var OSEnvironment Environment = EnvFunc(os.LookupEnv)

// MapEnvironment is a fixed set of variables, mostly useful in tests.
type MapEnvironment map[string]string

// Lookup implements Environment.
func (m MapEnvironment) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
