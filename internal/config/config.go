// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// TokenEnv is the environment variable that supplies the bot token when the
// config file does not.
const TokenEnv = "KINOBOT_TOKEN"

// Config is the root configuration structure.
type Config struct {
	Bot       BotConfig       `toml:"bot"`
	Watchlist WatchlistConfig `toml:"watchlist"`
	Titles    TitlesConfig    `toml:"titles"`
	Events    EventsConfig    `toml:"events"`
}

type BotConfig struct {
	Token    string `toml:"token"`
	Prefix   string `toml:"prefix"`
	LogLevel string `toml:"log_level"`
}

type WatchlistConfig struct {
	Path string `toml:"path"`
}

type TitlesConfig struct {
	Path string `toml:"path"`
}

// EventsConfig controls the SQLite event log. An empty path disables it.
type EventsConfig struct {
	Path      string        `toml:"path"`
	Retention time.Duration `toml:"retention"`
}

// Load reads, substitutes, decodes and validates the configuration file.
// Unresolved variables and validation failures are returned together as a
// *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := decode(path)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// Read decodes the configuration file with defaults applied but neither
// requires its environment variables nor validates it. Unresolved references
// stay in the values verbatim. Tools that only need file locations use it.
func Read(path string) (*Config, error) {
	cfg, _, err := decode(path)
	return cfg, err
}

func decode(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		if len(missing) > 0 {
			// An unresolved reference outside a string breaks the syntax.
			return nil, missing, &ConfigError{Path: path, Missing: missing}
		}
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

// Default returns the configuration used when no file exists: built-in
// defaults with the token taken from KINOBOT_TOKEN. It is not validated.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Bot.Token == "" {
		c.Bot.Token = os.Getenv(TokenEnv)
	}
	if c.Bot.Prefix == "" {
		c.Bot.Prefix = "/"
	}
	if c.Bot.LogLevel == "" {
		c.Bot.LogLevel = "info"
	}
	if c.Watchlist.Path == "" {
		c.Watchlist.Path = "./list.json"
	}
	if c.Titles.Path == "" {
		c.Titles.Path = "./movies.json"
	}
	if c.Events.Path != "" && c.Events.Retention == 0 {
		c.Events.Retention = 30 * 24 * time.Hour
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars expands environment references in content. Comment lines
// are copied unchanged. References that cannot be resolved are left in place
// and reported in missing; for ${VAR:?message} the entry is "VAR: message".
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	expand := func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, set := os.LookupEnv(name)

		switch op {
		case ":-":
			if value == "" {
				return arg
			}
			return value
		case ":?":
			if value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, arg))
				return match
			}
			return value
		default:
			if !set {
				missing = append(missing, name)
				return match
			}
			return value
		}
	}

	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines[i] = envVarPattern.ReplaceAllStringFunc(line, expand)
	}
	return strings.Join(lines, ""), missing
}
