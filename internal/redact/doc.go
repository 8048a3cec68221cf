// Package redact hides configuration values before they are shown on a
// terminal.
//
// [Mask] keeps only the last four characters of a value, so a stored token
// can be recognized without being disclosed. It is used for the current
// value shown in interactive prompts and for secret-looking values printed
// by the show command.
//
// A value is considered secret when its key name matches a glob pattern
// such as "*TOKEN*" (see [DefaultKeyPatterns]) or when the value itself has a
// common secret shape: AWS access key IDs, JWTs, private key blocks,
// GitHub and Slack tokens, provider API keys, and connection strings with an
// inline password.
package redact
