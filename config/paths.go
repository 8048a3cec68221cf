package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultDir returns the platform-appropriate config directory for app.
func DefaultDir(app string) (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, app), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", app), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, app), nil
		}
		return filepath.Join(home, "AppData", "Roaming", app), nil
	default:
		return filepath.Join(home, ".config", app), nil
	}
}

// DefaultPath returns the full path to the config file for app.
func DefaultPath(app string) (string, error) {
	dir, err := DefaultDir(app)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// expandPath expands a leading "~" to the home directory and makes the
// result absolute.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}
	return abs, nil
}
