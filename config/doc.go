// Package config defines and persists a typed configuration file for a
// command-line tool.
//
// A [Schema] lists the named, typed keys the tool needs. A [Store] binds that
// schema to a JSON file on disk and resolves each key from, in order:
//  1. An environment variable with the same name as the key
//  2. The JSON file
//  3. Nothing (the key is absent)
//
// [Store.Load] recomputes the resolved values on every call; nothing is
// cached between calls. [Store.Update] prompts for the keys of one group on
// the terminal and writes every resolved value back to the file, and
// [Store.Get] performs a point lookup that explains how to configure a
// missing key.
//
// On disk every value is a JSON string or null. Values are coerced to their
// declared [KeyType] only when they are read or entered. A file that does not
// parse as JSON is deleted and treated as empty.
package config
