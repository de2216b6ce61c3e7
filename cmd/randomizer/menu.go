package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/btd6-randomizer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick restrictions interactively and roll",
	Long: `Start the randomizer in interactive mode.

The picker starts from the config file's roll section. Choose which modes,
maps and heroes may come up, set the tower options, then press Enter to roll.
Every roll is saved to the history.

Controls:
  Left/Right/h/l  - Switch section (Modes, Maps, Heroes, Options)
  Up/Down/j/k     - Move
  Space           - Toggle item
  a               - Select all / none
  +/-             - Change tower count or max duplicates
  Enter           - Roll
  r               - Re-roll (on the result screen)
  i               - Show image URLs (on the result screen)
  Tab             - History
  Esc/b           - Back
  Q               - Quit

Examples:
  randomizer menu
  randomizer menu --seed 42
  randomizer menu --db ./history.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a := loadApp("randomizer")
	defer a.Close()

	initial, err := a.cfg.Roll.Restriction(a.cat)
	if err != nil {
		a.Close()
		fatalf("Error in config roll section: %v", err)
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := tui.SessionConfig{
		Catalog: a.cat,
		Initial: initial,
		Images:  a.images,
		Seed:    flagSeed,
		Width:   width,
		Height:  height,
		Logger:  a.logger,
	}

	store := a.openStore()
	if store != nil {
		defer store.Close()
		cfg.Store = store
	}

	if err := tui.RunSession(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.Close()
		os.Exit(1)
	}
}
