package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/confmaker/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultSchemaFile = "confmaker.yaml"

// Global flags
var (
	flagSchema   string
	flagConfig   string
	flagEnvFiles []string
	flagNoDotenv bool
	flagVerbose  bool
)

// settings resolves global flags, falling back to CONFMAKER_* variables.
var settings = viper.New()

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagSchema, "schema", defaultSchemaFile, "Schema manifest describing the configuration keys")
	pf.StringVar(&flagConfig, "config", "", "Configuration file path (overrides the manifest)")
	pf.StringSliceVar(&flagEnvFiles, "env-file", nil, "Dotenv files to load (default ./.env)")
	pf.BoolVar(&flagNoDotenv, "no-dotenv", false, "Do not load any dotenv file")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log resolution details to stderr")

	settings.SetEnvPrefix("CONFMAKER")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	for _, name := range []string{"schema", "config", "env-file", "no-dotenv", "verbose"} {
		if err := settings.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

// newLogger returns a console logger on w when verbose, and a no-op logger
// otherwise.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core)
}

// openStore builds the store described by the schema manifest, wired to the
// command's input and output.
func openStore(cmd *cobra.Command) (*config.Store, error) {
	logger := newLogger(settings.GetBool("verbose"), cmd.ErrOrStderr())

	schemaPath := settings.GetString("schema")
	m, err := config.LoadManifest(schemaPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded schema manifest",
		zap.String("schema", schemaPath),
		zap.Int("keys", len(m.Keys)),
	)

	path := settings.GetString("config")
	if path == "" {
		path, err = m.ConfigPath()
		if err != nil {
			return nil, err
		}
	}

	opts := []config.Option{
		config.WithLogger(logger),
		config.WithInput(cmd.InOrStdin()),
		config.WithOutput(cmd.OutOrStdout()),
	}
	switch files := settings.GetStringSlice("env-file"); {
	case settings.GetBool("no-dotenv"):
		opts = append(opts, config.WithoutDotenv())
	case len(files) > 0:
		opts = append(opts, config.WithDotenv(files...))
	}
	return config.New(path, m.Keys, m.Command, opts...)
}

// reportError prints err and sets the exit code for it.
func reportError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	exitCode = exitCodeFor(err)
}

func exitCodeFor(err error) int {
	var (
		coercion   *config.TypeCoercionError
		validation *config.ValidationError
		group      *unknownGroupError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case config.IsNotConfigured(err), config.IsUnknownKey(err),
		errors.As(err, &coercion), errors.As(err, &validation), errors.As(err, &group):
		return ExitConfigError
	default:
		return ExitRuntimeError
	}
}
