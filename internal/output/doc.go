// Package output formats a resolved configuration for display or machine
// consumption.
//
// Three formats are supported:
//   - text: keys listed under their group, unset keys shown as "(not set)"
//   - json: the full [Report] as indented JSON
//   - yaml: the full [Report] as YAML
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*Report]. [WriteReport] also
// handles writing to a file.
package output
