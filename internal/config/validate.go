package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if strings.TrimSpace(c.Bot.Token) == "" {
		errs = append(errs, fmt.Sprintf("bot.token: required (set it in the config or via %s)", TokenEnv))
	}
	if c.Bot.Prefix == "" || strings.IndexFunc(c.Bot.Prefix, unicode.IsSpace) >= 0 {
		errs = append(errs, fmt.Sprintf("bot.prefix: must be non-empty without spaces, got %q", c.Bot.Prefix))
	}
	if !validLogLevels[c.Bot.LogLevel] {
		errs = append(errs, fmt.Sprintf("bot.log_level: must be one of debug, info, warn, error; got %q", c.Bot.LogLevel))
	}

	if c.Watchlist.Path == "" {
		errs = append(errs, "watchlist.path: required")
	}
	if c.Titles.Path == "" {
		errs = append(errs, "titles.path: required")
	}
	if c.Watchlist.Path != "" && filepath.Clean(c.Watchlist.Path) == filepath.Clean(c.Titles.Path) {
		errs = append(errs, "watchlist.path: must differ from titles.path")
	}

	if c.Events.Retention < 0 {
		errs = append(errs, fmt.Sprintf("events.retention: must not be negative, got %s", c.Events.Retention))
	}

	return errs
}
