package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest describes a tool's configuration in a YAML file: its name, the
// command users run to configure it, where its file lives, and its keys.
//
//	name: example_module
//	command: example_module configure
//	path: ~/.cache/example_module/config.json
//	keys:
//	  - name: DATA_DIR
//	    group: info
//	    type: path
//	    description: directory to store data
type Manifest struct {
	Name    string
	Command string
	Path    string
	Keys    Schema
}

type manifestFile struct {
	Name    string        `yaml:"name"`
	Command string        `yaml:"command"`
	Path    string        `yaml:"path"`
	Keys    []manifestKey `yaml:"keys"`
}

type manifestKey struct {
	Name        string `yaml:"name"`
	Group       string `yaml:"group"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// ReadManifest parses a manifest. Unknown fields are rejected. When command
// is omitted it defaults to "<name> configure".
func ReadManifest(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var mf manifestFile
	if err := dec.Decode(&mf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parsing manifest: empty document")
		}
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	m := &Manifest{
		Name:    strings.TrimSpace(mf.Name),
		Command: strings.TrimSpace(mf.Command),
		Path:    strings.TrimSpace(mf.Path),
	}
	if m.Name == "" && m.Path == "" {
		return nil, errors.New("manifest must set name or path")
	}
	if m.Command == "" {
		m.Command = m.Name + " configure"
	}
	if len(mf.Keys) == 0 {
		return nil, errors.New("manifest defines no keys")
	}
	for i, k := range mf.Keys {
		def, err := NewKey(k.Name, k.Group, k.Type, k.Description)
		if err != nil {
			return nil, fmt.Errorf("manifest key %d: %w", i, err)
		}
		m.Keys = append(m.Keys, def)
	}
	return m, nil
}

// LoadManifest reads a manifest from a file.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()
	return ReadManifest(f)
}

// ConfigPath returns the manifest's path, or the default path for its name.
func (m *Manifest) ConfigPath() (string, error) {
	if m.Path != "" {
		return m.Path, nil
	}
	return DefaultPath(m.Name)
}

// Open returns a Store for the manifest's keys at its config path.
func (m *Manifest) Open(opts ...Option) (*Store, error) {
	path, err := m.ConfigPath()
	if err != nil {
		return nil, err
	}
	return New(path, m.Keys, m.Command, opts...)
}
