// Package cli wires together the Cobra command tree for the confmaker binary.
//
// Global flags (--schema, --config, --env-file, --no-dotenv, --verbose) are
// resolved through viper, so each can also come from a CONFMAKER_* variable.
// Subcommands (show, test, get, keys, configure, version) open the store
// described by the schema manifest and return deterministic exit codes.
package cli
