package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/vmunix/kinobot/internal/config"
)

var version = "dev"

// cliContext resolves file locations for the subcommands. Paths come from
// explicit flags first, then from --config, then from built-in defaults.
type cliContext struct {
	configPath    string
	watchlistPath string
	titlesPath    string
	eventsPath    string
	jsonOutput    bool

	once   sync.Once
	config *config.Config
	err    error
}

func (c *cliContext) ensureConfig() (*config.Config, error) {
	c.once.Do(func() {
		path := strings.TrimSpace(c.configPath)
		if path == "" {
			c.config = config.Default()
			return
		}
		// Operator commands only need file locations, not a bot token.
		c.config, c.err = config.Read(path)
	})
	return c.config, c.err
}

func (c *cliContext) resolve(flag string, fromConfig func(*config.Config) string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return fromConfig(cfg), nil
}

func (c *cliContext) watchlistFile() (string, error) {
	return c.resolve(c.watchlistPath, func(cfg *config.Config) string { return cfg.Watchlist.Path })
}

func (c *cliContext) titlesFile() (string, error) {
	return c.resolve(c.titlesPath, func(cfg *config.Config) string { return cfg.Titles.Path })
}

func (c *cliContext) eventsFile() (string, error) {
	return c.resolve(c.eventsPath, func(cfg *config.Config) string { return cfg.Events.Path })
}

func newRootCommand() *cobra.Command {
	ctx := &cliContext{}

	rootCmd := &cobra.Command{
		Use:   "kinobot",
		Short: "Operator CLI for the kinobot Discord watchlist bot",
		Long: `kinobot - operator CLI for the kinobot Discord watchlist bot

Inspects the watchlist file, queries the title dataset and reads the
event log without connecting to Discord.

Run 'kinobotd' to start the bot.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	rootCmd.SetVersionTemplate("kinobot {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configPath, "config", "c", "", "Read file locations from this config file")
	flags.StringVar(&ctx.watchlistPath, "watchlist", "", "Watchlist file (overrides config)")
	flags.StringVar(&ctx.titlesPath, "titles", "", "Title dataset file (overrides config)")
	flags.StringVar(&ctx.eventsPath, "db", "", "Event log database (overrides config)")
	flags.BoolVar(&ctx.jsonOutput, "json", false, "Output as JSON")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newLookupCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
