package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/btd6-randomizer/internal/storage"
)

var (
	flagLimit int
	flagStats bool
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show recent rolls",
	Long: `Display the most recent rolls, newest first. With an ID, show that
single roll in full.

Examples:
  randomizer history
  randomizer history --limit 5
  randomizer history --stats
  randomizer history 3f0c6b1e-6f0a-4a53-9d1e-8f7f3c0a2b11
  randomizer history --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 0, "Number of rolls to show (default from config)")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Show how often each mode was rolled")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole history")
}

func runHistory(cmd *cobra.Command, args []string) {
	a := loadApp("randomizer")
	defer a.Close()

	store, err := storage.Open(a.cfg.Storage.DBPath)
	if err != nil {
		a.Close()
		fatalf("Error opening history database: %v", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRolls(); err != nil {
			store.Close()
			a.Close()
			fatalf("Error clearing history: %v", err)
		}
		a.logger.Info("history cleared", "path", a.cfg.Storage.DBPath)
		fmt.Println("History cleared.")

	case len(args) == 1:
		roll, err := store.RollByID(args[0])
		if err != nil {
			store.Close()
			a.Close()
			fatalf("Error retrieving roll: %v", err)
		}
		if roll == nil {
			store.Close()
			a.Close()
			fatalf("Error: no roll with ID %q", args[0])
		}
		printRoll(os.Stdout, *roll)

	case flagStats:
		if err := writeStats(os.Stdout, store); err != nil {
			store.Close()
			a.Close()
			fatalf("Error retrieving stats: %v", err)
		}

	default:
		limit := a.cfg.Storage.HistoryLimit
		if cmd.Flags().Changed("limit") {
			limit = flagLimit
		}
		rolls, err := store.RecentRolls(limit)
		if err != nil {
			store.Close()
			a.Close()
			fatalf("Error retrieving history: %v", err)
		}
		printRolls(os.Stdout, rolls)
	}
}

func printRolls(w io.Writer, rolls []storage.Roll) {
	fmt.Fprintln(w, "Recent Rolls")
	fmt.Fprintln(w)

	if len(rolls) == 0 {
		fmt.Fprintln(w, "No rolls recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'randomizer roll' to record the first one!")
		return
	}

	// Print header
	fmt.Fprintf(w, "  %-16s  %-20s  %-24s  %-18s  %s\n", "Date", "Mode", "Map", "Hero", "Towers")
	fmt.Fprintf(w, "  %-16s  %-20s  %-24s  %-18s  %s\n", "----", "----", "---", "----", "------")

	for _, r := range rolls {
		fmt.Fprintf(w, "  %-16s  %-20s  %-24s  %-18s  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Mode, r.Map, r.Hero,
			strings.Join(r.Towers, ", "),
		)
	}
}

func printRoll(w io.Writer, r storage.Roll) {
	fmt.Fprintf(w, "ID:      %s\n", r.ID)
	fmt.Fprintf(w, "Date:    %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if r.User != "" {
		fmt.Fprintf(w, "User:    %s\n", r.User)
	}
	fmt.Fprintf(w, "Seed:    %d\n", r.Seed)
	fmt.Fprintf(w, "Mode:    %s\n", r.Mode)
	fmt.Fprintf(w, "Map:     %s\n", r.Map)
	fmt.Fprintf(w, "Hero:    %s\n", r.Hero)
	fmt.Fprintf(w, "Towers:  %s\n", strings.Join(r.Towers, ", "))
	for _, adv := range r.Advisories {
		fmt.Fprintf(w, "Note:    %s\n", adv)
	}
}

// writeStats prints the mode breakdown of everything in the store.
func writeStats(w io.Writer, store *storage.Store) error {
	counts, err := store.ModeCounts()
	if err != nil {
		return err
	}
	total, err := store.CountRolls()
	if err != nil {
		return err
	}
	printModeCounts(w, counts, total)
	return nil
}

// printModeCounts prints each mode's share of the total recorded rolls.
func printModeCounts(w io.Writer, counts []storage.ModeCount, total int) {
	fmt.Fprintln(w, "Modes Rolled")
	fmt.Fprintln(w)

	if len(counts) == 0 || total == 0 {
		fmt.Fprintln(w, "No rolls recorded yet.")
		return
	}

	fmt.Fprintf(w, "  %-20s  %5s  %s\n", "Mode", "Rolls", "Share")
	fmt.Fprintf(w, "  %-20s  %5s  %s\n", "----", "-----", "-----")
	for _, c := range counts {
		fmt.Fprintf(w, "  %-20s  %5d  %4.1f%%\n", c.Mode, c.Count, 100*float64(c.Count)/float64(total))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %d\n", total)
}
