// Confmaker resolves and edits the typed configuration file of a
// command-line tool.
//
// The keys are declared in a YAML schema manifest. Each key is read from an
// environment variable of the same name, then from the JSON configuration
// file, and can be set interactively by group.
//
// Usage:
//
//	confmaker --schema keys.yaml show          # print resolved values
//	confmaker --schema keys.yaml test          # fail on the first unset key
//	confmaker --schema keys.yaml get NAME      # print one value
//	confmaker --schema keys.yaml keys          # list declared keys
//	confmaker --schema keys.yaml configure info [--reset]
package main
