package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/btd6-randomizer/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration",
	Long: `Print the configuration the other commands would use, after the
config file search and global flags are applied. With --defaults, print the
built-in default file instead, ready to copy to ~/.randomizer/config.yaml.

Examples:
  randomizer config
  randomizer config --db ./history.db
  randomizer config --defaults > ~/.randomizer/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default config")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.GetDefaultYAML())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fatalf("Error loading config: %v", err)
	}
	if err := writeConfig(os.Stdout, cfg); err != nil {
		fatalf("Error writing config: %v", err)
	}
}

func writeConfig(w io.Writer, cfg config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	_, err = w.Write(data)
	return err
}
