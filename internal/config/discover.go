package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates no config file exists in any searched location.
var ErrNotFound = errors.New("config not found")

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./kinobot.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "kinobot", "config.toml")
}

// Discover finds the config file using the standard search order:
//  1. KINOBOT_CONFIG environment variable
//  2. ./kinobot.toml (current directory)
//  3. $XDG_CONFIG_HOME/kinobot/config.toml
//  4. /etc/kinobot/config.toml
//
// A KINOBOT_CONFIG that points nowhere is an error; an empty search returns
// an error wrapping ErrNotFound.
func Discover() (string, error) {
	if envPath := os.Getenv("KINOBOT_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("KINOBOT_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./kinobot.toml",
		DefaultPath(),
		"/etc/kinobot/config.toml",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}
