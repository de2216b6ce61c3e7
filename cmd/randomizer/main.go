// randomizer rolls random Bloons TD 6 setups: a mode, a map, a hero and a
// set of towers that fit together.
//
// Usage:
//
//	randomizer list [kind]    - List modes, maps, heroes or towers
//	randomizer roll           - Roll one setup and print it
//	randomizer menu           - Pick restrictions interactively and roll
//	randomizer serve          - Start SSH server for remote rolling
//	randomizer history [id]   - Show recent rolls
//	randomizer config         - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--catalog <path>    - Custom catalog YAML
//	--db <path>         - Roll history database (default: ~/.randomizer/history.db)
//	--seed <value>      - RNG seed for a reproducible roll
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/btd6-randomizer/internal/assets"
	"github.com/vovakirdan/btd6-randomizer/internal/catalog"
	"github.com/vovakirdan/btd6-randomizer/internal/config"
	"github.com/vovakirdan/btd6-randomizer/internal/logging"
	"github.com/vovakirdan/btd6-randomizer/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagCatalog  string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "randomizer",
	Short: "BTD6 Randomizer - Roll random Bloons TD 6 setups",
	Long: `BTD6 Randomizer picks a random game mode, map, hero and tower set for
Bloons TD 6 while respecting what the game allows: water towers only on
maps with water, category-only modes get only that category, and so on.

Available commands:
  list     - Show modes, maps, heroes or towers
  roll     - Roll one setup
  menu     - Interactive restriction picker
  serve    - Start SSH server for remote rolling
  history  - View recent rolls
  config   - Print the effective or default configuration

Examples:
  randomizer list towers
  randomizer roll --mode CHIMPS --towers 4
  randomizer roll --seed 42 --format json
  randomizer menu
  randomizer serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to custom catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to roll history database (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// app bundles what every command needs after flags are parsed.
type app struct {
	cfg    config.Config
	cat    *catalog.Catalog
	images *assets.Index
	logger *log.Logger
	closer io.Closer
}

// loadConfig reads the config file and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	// Flags win over the config file
	if flagCatalog != "" {
		cfg.Catalog.Path = flagCatalog
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg, nil
}

// loadApp resolves config, catalog, images and logger from flags.
// It exits the process on error.
func loadApp(prefix string) *app {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("Error loading config: %v", err)
	}

	logger, closer, err := logging.New(cfg.Logging, prefix)
	if err != nil {
		fatalf("Error creating logger: %v", err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		closer.Close()
		fatalf("Error loading catalog: %v", err)
	}
	logger.Debug("catalog loaded", "name", cat.Name(), "modes", len(cat.Modes()), "maps", len(cat.Maps()), "heroes", len(cat.Heroes()), "towers", len(cat.Towers()))

	images, err := assets.LoadIndex(cfg.Assets.Path)
	if err != nil {
		closer.Close()
		fatalf("Error loading image index: %v", err)
	}

	return &app{
		cfg:    cfg,
		cat:    cat,
		images: images,
		logger: logger,
		closer: closer,
	}
}

// Close flushes the log file, if any.
func (a *app) Close() {
	//nolint:errcheck // Best-effort close on exit
	a.closer.Close()
}

// openStore opens the roll history, logging instead of failing.
// Returns nil when the database cannot be opened.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(a.cfg.Storage.DBPath)
	if err != nil {
		a.logger.Warn("could not open history database", "path", a.cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
