package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Bot:       BotConfig{Token: "abc", Prefix: "/", LogLevel: "info"},
		Watchlist: WatchlistConfig{Path: "list.json"},
		Titles:    TitlesConfig{Path: "movies.json"},
	}
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestValidate_MinimalValid(t *testing.T) {
	assert.Empty(t, validConfig().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing token", func(c *Config) { c.Bot.Token = "" }, "bot.token"},
		{"blank token", func(c *Config) { c.Bot.Token = "  " }, "bot.token"},
		{"empty prefix", func(c *Config) { c.Bot.Prefix = "" }, "bot.prefix"},
		{"prefix with space", func(c *Config) { c.Bot.Prefix = "! " }, "bot.prefix"},
		{"bad log level", func(c *Config) { c.Bot.LogLevel = "verbose" }, "bot.log_level"},
		{"no watchlist path", func(c *Config) { c.Watchlist.Path = "" }, "watchlist.path"},
		{"no titles path", func(c *Config) { c.Titles.Path = "" }, "titles.path"},
		{"same file twice", func(c *Config) { c.Titles.Path = "./list.json" }, "must differ"},
		{"negative retention", func(c *Config) { c.Events.Retention = -time.Hour }, "events.retention"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			errs := cfg.Validate()
			assert.True(t, containsError(errs, tt.want), "expected %q in %v", tt.want, errs)
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := &Config{Bot: BotConfig{LogLevel: "loud"}}
	errs := cfg.Validate()
	assert.GreaterOrEqual(t, len(errs), 4)
}

func TestConfigError(t *testing.T) {
	assert.Equal(t, "", (&ConfigError{Path: "x.toml"}).Error())
	assert.False(t, (&ConfigError{}).HasErrors())

	e := &ConfigError{
		Path:    "x.toml",
		Missing: []string{"A", "B"},
		Errors:  []string{"bot.token: required"},
	}
	assert.True(t, e.HasErrors())
	assert.Equal(t,
		"x.toml: missing environment variables: A, B\nvalidation failed:\n  - bot.token: required",
		e.Error())
}
