package redact

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// visibleSuffix is how many trailing characters Mask leaves readable.
const visibleSuffix = 4

// DefaultKeyPatterns match key names whose values should not be printed.
var DefaultKeyPatterns = []string{
	"*TOKEN*",
	"*SECRET*",
	"*PASSWORD*",
	"*PASSWD*",
	"*CREDENTIAL*",
	"*API_KEY*",
	"*APIKEY*",
	"*PRIVATE_KEY*",
}

// secretPatterns are regex heuristics for values that look like secrets
// regardless of the key they are stored under.
var secretPatterns = []*regexp.Regexp{
	// AWS access key IDs
	regexp.MustCompile(`^AKIA[0-9A-Z]{16}$`),
	// JWTs (three base64 segments separated by dots)
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}$`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`^gh[pousr]_[A-Za-z0-9_]{36,}$`),
	// Slack tokens
	regexp.MustCompile(`^xox[bporas]-[A-Za-z0-9-]{10,}$`),
	// Anthropic and OpenAI style API keys
	regexp.MustCompile(`^sk-(ant-)?[A-Za-z0-9_-]{20,}$`),
	// Database connection strings with inline passwords
	regexp.MustCompile(`^[a-z][a-z0-9+.-]*://[^:/@\s]+:[^@\s]+@`),
}

// Mask replaces all but the last four characters of value with '*'. Values
// of four characters or fewer are returned unchanged.
func Mask(value string) string {
	n := utf8.RuneCountInString(value)
	masked := n - visibleSuffix
	if masked <= 0 {
		return value
	}
	runes := []rune(value)
	return strings.Repeat("*", masked) + string(runes[masked:])
}

// LooksSecret reports whether value matches a known secret shape.
func LooksSecret(value string) bool {
	for _, pat := range secretPatterns {
		if pat.MatchString(value) {
			return true
		}
	}
	return false
}

// ShouldMaskKey reports whether a key name matches any of the glob patterns.
// Matching ignores case.
func ShouldMaskKey(name string, patterns []string) bool {
	upper := strings.ToUpper(name)
	for _, pattern := range patterns {
		matched, err := filepath.Match(strings.ToUpper(pattern), upper)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// Value masks value when its key matches patterns or the value itself looks
// like a secret, and returns it unchanged otherwise.
func Value(name, value string, patterns []string) string {
	if ShouldMaskKey(name, patterns) || LooksSecret(value) {
		return Mask(value)
	}
	return value
}
