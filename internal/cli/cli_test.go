package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/confmaker/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const testManifest = `name: example_module
command: example_module configure
keys:
  - name: CMK_TEST_NAME
    group: info
  - name: CMK_TEST_DATA_DIR
    group: info
    type: path
    description: directory to store data
  - name: CMK_TEST_NUMBER
    group: info
    type: int
  - name: CMK_TEST_API_TOKEN
    group: auth
    description: token for the remote API
`

// resetFlags resets all package-level flag variables to their defaults.
func resetFlags() {
	flagSchema = defaultSchemaFile
	flagConfig = ""
	flagEnvFiles = nil
	flagNoDotenv = false
	flagVerbose = false
	flagReset = false
	flagFormat = "text"
	flagReveal = false
	flagOut = ""

	cmds := append([]*cobra.Command{rootCmd}, rootCmd.Commands()...)
	for _, c := range cmds {
		unchanged := func(f *pflag.Flag) { f.Changed = false }
		c.Flags().VisitAll(unchanged)
		c.PersistentFlags().VisitAll(unchanged)
	}
}

type fixture struct {
	schema string
	config string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	resetFlags()
	dir := t.TempDir()
	schema := filepath.Join(dir, "confmaker.yaml")
	if err := os.WriteFile(schema, []byte(testManifest), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return fixture{schema: schema, config: filepath.Join(dir, "state", "config.json")}
}

func (f fixture) run(t *testing.T, input string, args ...string) (int, string, string) {
	t.Helper()
	resetFlags()
	var out, errOut bytes.Buffer
	full := append([]string{"--schema", f.schema, "--config", f.config, "--no-dotenv"}, args...)
	code := run(full, strings.NewReader(input), &out, &errOut)
	return code, out.String(), errOut.String()
}

func (f fixture) write(t *testing.T, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(f.config), 0o755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(f.config, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func TestConfigureThenGet(t *testing.T) {
	f := newFixture(t)

	code, out, errOut := f.run(t, "alice\n/tmp/data\n42\n", "configure", "info")
	if code != ExitSuccess {
		t.Fatalf("configure exit = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(out, "configuration saved to "+f.config) {
		t.Errorf("Missing confirmation in output:\n%s", out)
	}
	if !strings.Contains(out, "directory to store data") {
		t.Errorf("Missing description in output:\n%s", out)
	}

	code, out, errOut = f.run(t, "", "get", "CMK_TEST_NUMBER")
	if code != ExitSuccess {
		t.Fatalf("get exit = %d, stderr: %s", code, errOut)
	}
	if out != "42\n" {
		t.Errorf("get output = %q, want %q", out, "42\n")
	}
}

func TestConfigure_ResetAndMasking(t *testing.T) {
	f := newFixture(t)
	f.write(t, `{"CMK_TEST_NAME": "abcdef"}`)

	_, out, _ := f.run(t, "\n\n\n", "configure", "info")
	if !strings.Contains(out, "CMK_TEST_NAME [**cdef]: ") {
		t.Errorf("Expected masked current value:\n%s", out)
	}

	_, out, _ = f.run(t, "\n\n\n", "configure", "info", "--reset")
	if strings.Contains(out, "**cdef") {
		t.Errorf("Reset should hide the current value:\n%s", out)
	}

	code, _, errOut := f.run(t, "", "get", "CMK_TEST_NAME")
	if code != ExitConfigError {
		t.Errorf("get after reset exit = %d, want %d (stderr %s)", code, ExitConfigError, errOut)
	}
}

func TestConfigure_InvalidInteger(t *testing.T) {
	f := newFixture(t)

	code, _, errOut := f.run(t, "alice\n\nnot-a-number\n", "configure", "info")
	if code != ExitConfigError {
		t.Errorf("exit = %d, want %d", code, ExitConfigError)
	}
	if !strings.Contains(errOut, "CMK_TEST_NUMBER") {
		t.Errorf("Error should name the key: %s", errOut)
	}
	if _, err := os.Stat(f.config); !errors.Is(err, os.ErrNotExist) {
		t.Error("Config file should not be written after a failed update")
	}
}

func TestConfigure_UnknownGroup(t *testing.T) {
	f := newFixture(t)

	code, _, errOut := f.run(t, "", "configure", "nope")
	if code != ExitConfigError {
		t.Errorf("exit = %d, want %d", code, ExitConfigError)
	}
	if !strings.Contains(errOut, "info, auth") {
		t.Errorf("Error should list known groups: %s", errOut)
	}
}

func TestConfigure_AllGroups(t *testing.T) {
	f := newFixture(t)

	code, _, errOut := f.run(t, "a\nb\n1\ntok\n", "configure")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, errOut)
	}
	_, out, _ := f.run(t, "", "get", "CMK_TEST_API_TOKEN")
	if out != "tok\n" {
		t.Errorf("get output = %q, want %q", out, "tok\n")
	}
}

func TestGet_Errors(t *testing.T) {
	f := newFixture(t)

	code, _, errOut := f.run(t, "", "get", "CMK_TEST_NUMBER")
	if code != ExitConfigError {
		t.Errorf("exit = %d, want %d", code, ExitConfigError)
	}
	if !strings.Contains(errOut, `run "example_module configure info"`) {
		t.Errorf("Error should explain how to configure: %s", errOut)
	}

	code, _, errOut = f.run(t, "", "get", "NOT_A_KEY")
	if code != ExitConfigError {
		t.Errorf("exit = %d, want %d", code, ExitConfigError)
	}
	if !strings.Contains(errOut, "is not a valid configuration key") {
		t.Errorf("Unexpected error: %s", errOut)
	}

	code, _, _ = f.run(t, "", "get")
	if code != ExitUsageError {
		t.Errorf("get without key exit = %d, want %d", code, ExitUsageError)
	}
}

func TestGet_EnvironmentOverride(t *testing.T) {
	f := newFixture(t)
	f.write(t, `{"CMK_TEST_NAME": "from-file"}`)
	t.Setenv("CMK_TEST_NAME", "from-env")

	_, out, _ := f.run(t, "", "get", "CMK_TEST_NAME")
	if out != "from-env\n" {
		t.Errorf("get output = %q, want %q", out, "from-env\n")
	}
}

func TestShow_JSON(t *testing.T) {
	f := newFixture(t)
	f.write(t, `{"CMK_TEST_NAME": "alice", "CMK_TEST_API_TOKEN": "tok-123456"}`)

	code, out, errOut := f.run(t, "", "show", "--format", "json")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, errOut)
	}
	var report struct {
		Path    string `json:"path"`
		Entries []struct {
			Key    string  `json:"key"`
			Value  *string `json:"value"`
			Masked bool    `json:"masked"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, out)
	}
	if report.Path != f.config {
		t.Errorf("Path = %q, want %q", report.Path, f.config)
	}
	if len(report.Entries) != 4 {
		t.Fatalf("Entries = %d, want 4", len(report.Entries))
	}
	if *report.Entries[0].Value != "alice" {
		t.Errorf("Name = %q", *report.Entries[0].Value)
	}
	if report.Entries[2].Value != nil {
		t.Error("Unset key should be null")
	}
	token := report.Entries[3]
	if !token.Masked || *token.Value != "******3456" {
		t.Errorf("Token entry = %+v, want masked", token)
	}
}

func TestShow_Reveal(t *testing.T) {
	f := newFixture(t)
	f.write(t, `{"CMK_TEST_API_TOKEN": "tok-123456"}`)

	_, out, _ := f.run(t, "", "show", "--reveal")
	if !strings.Contains(out, "tok-123456") {
		t.Errorf("Expected revealed token:\n%s", out)
	}
	if !strings.Contains(out, "(not set)") {
		t.Errorf("Expected unset marker:\n%s", out)
	}
}

func TestShow_CorruptFile(t *testing.T) {
	f := newFixture(t)
	f.write(t, "{{ definitely not json")

	code, _, errOut := f.run(t, "", "show")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, errOut)
	}
	if _, err := os.Stat(f.config); !errors.Is(err, os.ErrNotExist) {
		t.Error("Corrupt config file should be removed")
	}
}

func TestTestCommand(t *testing.T) {
	f := newFixture(t)
	f.write(t, `{"CMK_TEST_NAME": "alice", "CMK_TEST_DATA_DIR": "/tmp/data", "CMK_TEST_NUMBER": "3", "CMK_TEST_API_TOKEN": "t"}`)

	code, out, errOut := f.run(t, "", "test")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, errOut)
	}
	for _, want := range []string{
		"CMK_TEST_NAME saved as alice\n",
		"CMK_TEST_DATA_DIR located at /tmp/data\n",
		"CMK_TEST_NUMBER saved as 3\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestTestCommand_Unconfigured(t *testing.T) {
	f := newFixture(t)
	f.write(t, `{"CMK_TEST_NAME": "alice"}`)

	code, out, errOut := f.run(t, "", "test")
	if code != ExitConfigError {
		t.Errorf("exit = %d, want %d", code, ExitConfigError)
	}
	if !strings.Contains(out, "CMK_TEST_NAME saved as alice") {
		t.Errorf("Keys before the failure should be printed:\n%s", out)
	}
	if !strings.Contains(errOut, "CMK_TEST_DATA_DIR") {
		t.Errorf("Error should name the missing key: %s", errOut)
	}
}

func TestKeys(t *testing.T) {
	f := newFixture(t)

	code, out, _ := f.run(t, "", "keys")
	if code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	for _, want := range []string{"KEY", "CMK_TEST_DATA_DIR", "path", "directory to store data", "integer", "auth"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestMissingSchema(t *testing.T) {
	resetFlags()
	var out, errOut bytes.Buffer
	code := run([]string{"--schema", filepath.Join(t.TempDir(), "missing.yaml"), "--no-dotenv", "show"}, strings.NewReader(""), &out, &errOut)
	if code != ExitRuntimeError {
		t.Errorf("exit = %d, want %d", code, ExitRuntimeError)
	}
	if !strings.Contains(errOut.String(), "opening manifest") {
		t.Errorf("Unexpected error: %s", errOut.String())
	}
}

func TestSettingsFromEnvironment(t *testing.T) {
	f := newFixture(t)
	f.write(t, `{"CMK_TEST_NAME": "alice"}`)
	t.Setenv("CONFMAKER_SCHEMA", f.schema)
	t.Setenv("CONFMAKER_CONFIG", f.config)
	t.Setenv("CONFMAKER_NO_DOTENV", "true")

	resetFlags()
	var out, errOut bytes.Buffer
	code := run([]string{"get", "CMK_TEST_NAME"}, strings.NewReader(""), &out, &errOut)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, errOut.String())
	}
	if out.String() != "alice\n" {
		t.Errorf("output = %q, want %q", out.String(), "alice\n")
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	f := newFixture(t)

	code, _, errOut := f.run(t, "", "--verbose", "show")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, errOut)
	}
	if !strings.Contains(errOut, "loaded schema manifest") {
		t.Errorf("Expected debug log on stderr:\n%s", errOut)
	}
}

func TestVersion(t *testing.T) {
	resetFlags()
	var out bytes.Buffer
	code := run([]string{"version"}, strings.NewReader(""), &out, &bytes.Buffer{})
	if code != ExitSuccess {
		t.Fatalf("exit = %d", code)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("version output = %q", out.String())
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"not configured", &config.KeyNotConfiguredError{Key: "A"}, ExitConfigError},
		{"unknown key", &config.UnknownKeyError{Key: "A"}, ExitConfigError},
		{"coercion", &config.TypeCoercionError{Key: "A", Type: config.Integer, Value: "x"}, ExitConfigError},
		{"validation", &config.ValidationError{Type: "bool"}, ExitConfigError},
		{"unknown group", &unknownGroupError{group: "x"}, ExitConfigError},
		{"other", errors.New("disk full"), ExitRuntimeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
