package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dshills/confmaker/internal/redact"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
)

// Store resolves a schema against one JSON file and an environment. It owns
// the file; concurrent writers from other processes are not coordinated.
type Store struct {
	path     string
	schema   Schema
	command  string
	env      Environment
	in       io.Reader
	prompter Prompter
	out      io.Writer
	logger   *zap.Logger

	autoloadDotenv bool
	dotenvFiles    []string
}

// Option configures a Store.
type Option func(*Store)

// WithEnvironment replaces the process environment as the source of
// override values.
func WithEnvironment(env Environment) Option {
	return func(s *Store) {
		s.env = env
	}
}

// WithPrompter sets the prompter used by Update.
func WithPrompter(p Prompter) Option {
	return func(s *Store) {
		s.prompter = p
	}
}

// WithInput sets the reader the default prompter reads answers from.
func WithInput(r io.Reader) Option {
	return func(s *Store) {
		s.in = r
	}
}

// WithOutput sets where Update writes descriptions, prompts and the
// confirmation message.
func WithOutput(w io.Writer) Option {
	return func(s *Store) {
		s.out = w
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithDotenv loads the given dotenv files instead of ./.env.
func WithDotenv(files ...string) Option {
	return func(s *Store) {
		s.autoloadDotenv = true
		s.dotenvFiles = files
	}
}

// WithoutDotenv disables dotenv loading.
func WithoutDotenv() Option {
	return func(s *Store) {
		s.autoloadDotenv = false
	}
}

// New returns a Store for the file at path. The parent directory is created
// if needed. Unless WithoutDotenv is given, variables from ./.env (or the
// files passed to WithDotenv) are added to the process environment; variables
// that are already set keep their values.
func New(path string, schema Schema, command string, opts ...Option) (*Store, error) {
	s := &Store{
		schema:         schema,
		command:        command,
		env:            OSEnvironment,
		in:             os.Stdin,
		out:            os.Stdout,
		logger:         zap.NewNop(),
		autoloadDotenv: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.prompter == nil {
		s.prompter = NewLinePrompter(s.in, s.out)
	}

	for _, k := range schema {
		if !k.Type.Valid() {
			return nil, &ValidationError{Key: k.Name, Type: k.Type.String()}
		}
	}

	abs, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	s.path = abs
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	if s.autoloadDotenv {
		if err := loadDotenv(s.dotenvFiles); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("configuration store ready",
		zap.String("path", s.path),
		zap.Int("keys", len(schema)),
	)
	return s, nil
}

func loadDotenv(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := gotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading dotenv file %s: %w", f, err)
		}
	}
	return nil
}

// Path returns the absolute path of the configuration file.
func (s *Store) Path() string { return s.path }

// Schema returns the key definitions.
func (s *Store) Schema() Schema { return s.schema }

// Command returns the command users run to configure missing keys.
func (s *Store) Command() string { return s.command }

// Load resolves every schema key from the environment, then the file. A file
// that is not a JSON object is deleted and treated as empty.
func (s *Store) Load() (*Resolved, error) {
	entries, err := s.readFile()
	if err != nil {
		return nil, err
	}

	r := newResolved(s.schema)
	for _, name := range r.names {
		def, _ := s.schema.Find(name)
		v, source, err := s.resolve(def, entries)
		if err != nil {
			return nil, err
		}
		r.set(name, v)
		s.logger.Debug("resolved key",
			zap.String("key", name),
			zap.String("source", source),
			zap.Stringer("kind", v.Kind()),
		)
	}
	for name, msg := range entries {
		if _, ok := r.values[name]; !ok {
			r.extra[name] = msg
		}
	}
	return r, nil
}

func (s *Store) resolve(def KeyDefinition, entries map[string]jsonEntry) (Value, string, error) {
	if raw, ok := s.env.Lookup(def.Name); ok {
		v, err := coerce(def, raw)
		return v, "environment", err
	}
	msg, ok := entries[def.Name]
	if !ok {
		return Absent(), "none", nil
	}
	raw, err := rawString(msg)
	if err != nil {
		return Value{}, "file", &TypeCoercionError{Key: def.Name, Type: def.Type, Value: string(msg), Err: err}
	}
	if raw == nil {
		return Absent(), "file", nil
	}
	v, err := coerce(def, *raw)
	return v, "file", err
}

func coerce(def KeyDefinition, raw string) (Value, error) {
	v, err := def.Type.Coerce(raw)
	if err != nil {
		var ce *TypeCoercionError
		if errors.As(err, &ce) {
			ce.Key = def.Name
		}
		return Value{}, err
	}
	return v, nil
}

func (s *Store) readFile() (map[string]jsonEntry, error) {
	entries, err := readEntries(s.path)
	var malformed *malformedStoreError
	if errors.As(err, &malformed) {
		s.logger.Warn("removing malformed configuration file",
			zap.String("path", s.path),
			zap.Error(malformed.err),
		)
		if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("removing malformed config file: %w", rmErr)
		}
		return map[string]jsonEntry{}, nil
	}
	return entries, err
}

// Update prompts for every key in group, or every key when group is empty,
// and writes all resolved values to the file. Blank answers keep the current
// value; with reset the current value is neither shown nor kept. If an
// answer cannot be coerced to its key's type, Update returns the error and
// the file is left untouched.
func (s *Store) Update(group string, reset bool) error {
	r, err := s.Load()
	if err != nil {
		return err
	}

	// lipgloss writers downsample styles to what s.out supports, so plain
	// files and pipes get no escape sequences.
	if _, err := lipgloss.Fprintf(s.out, "\n\n%s\n", hintStyle.Render("(leave blank to keep existing value)")); err != nil {
		return err
	}
	for _, def := range s.schema.InGroup(group) {
		current := Absent()
		if !reset {
			current, _ = r.Get(def.Name)
		}
		label := def.Name
		if !current.IsAbsent() {
			label += " [" + redact.Mask(current.String()) + "]"
		}
		if def.Description != "" {
			if _, err := lipgloss.Fprintln(s.out, descriptionStyle.Render(def.Description)); err != nil {
				return err
			}
		}

		answer, err := s.prompter.Prompt(label + ": ")
		if err != nil {
			return fmt.Errorf("reading value for %s: %w", def.Name, err)
		}
		if _, err := fmt.Fprintln(s.out); err != nil {
			return err
		}

		value := current
		if answer != "" {
			value, err = coerce(def, answer)
			if err != nil {
				return err
			}
		}
		r.set(def.Name, value)
	}

	if err := writeEntries(s.path, r.names, r.values, r.extra); err != nil {
		return err
	}
	s.logger.Info("configuration saved",
		zap.String("path", s.path),
		zap.String("group", group),
		zap.Bool("reset", reset),
	)
	_, err = fmt.Fprintf(s.out, "configuration saved to %s\n", s.path)
	return err
}

// Get loads the configuration and returns the value for name. An unset
// schema key yields a *KeyNotConfiguredError naming the command to run; a
// name outside the schema yields an *UnknownKeyError.
func (s *Store) Get(name string) (Value, error) {
	r, err := s.Load()
	if err != nil {
		return Value{}, err
	}
	if v, ok := r.Get(name); ok && !v.IsAbsent() {
		return v, nil
	}
	if def, ok := s.schema.Find(name); ok {
		return Value{}, &KeyNotConfiguredError{Key: name, Group: def.Group, Command: s.command}
	}
	return Value{}, &UnknownKeyError{Key: name}
}

// GetString returns the string form of name's value.
func (s *Store) GetString(name string) (string, error) {
	v, err := s.Get(name)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// GetInt returns the value of an integer key.
func (s *Store) GetInt(name string) (int, error) {
	v, err := s.Get(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.Int()
	if !ok {
		return 0, fmt.Errorf("key %q is a %s, not an integer", name, v.Kind())
	}
	return n, nil
}

// GetPath returns the value of a path key.
func (s *Store) GetPath(name string) (string, error) {
	v, err := s.Get(name)
	if err != nil {
		return "", err
	}
	p, ok := v.Path()
	if !ok {
		return "", fmt.Errorf("key %q is a %s, not a path", name, v.Kind())
	}
	return p, nil
}

// Decode loads the configuration and copies it into out. See
// Resolved.Decode.
func (s *Store) Decode(out any) error {
	r, err := s.Load()
	if err != nil {
		return err
	}
	return r.Decode(out)
}

func (s *Store) String() string {
	r, err := s.Load()
	if err != nil {
		return fmt.Sprintf("<error: %v>", err)
	}
	return r.String()
}
