package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/btd6-randomizer/internal/catalog"
)

var listKinds = []string{"modes", "maps", "heroes", "towers"}

var listCmd = &cobra.Command{
	Use:   "list [modes|maps|heroes|towers]",
	Short: "List catalog entries",
	Long: `Shows the modes, maps, heroes and towers the randomizer knows about.
Without an argument every kind is listed.

Towers are shown in canonical order with their category; maps and heroes
show whether they have or need water.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: listKinds,
	Run:       runList,
}

func runList(_ *cobra.Command, args []string) {
	a := loadApp("randomizer")
	defer a.Close()

	kinds := listKinds
	if len(args) == 1 {
		kinds = args
	}

	for i, kind := range kinds {
		if i > 0 {
			fmt.Println()
		}
		printKind(os.Stdout, a.cat, kind)
	}
}

// printKind writes one catalog section as an aligned table.
func printKind(w io.Writer, cat *catalog.Catalog, kind string) {
	switch kind {
	case "modes":
		modes := cat.Modes()
		width := nameWidth(len(modes), func(i int) string { return modes[i].Name })
		fmt.Fprintf(w, "Modes (%d):\n", len(modes))
		for _, m := range modes {
			fmt.Fprintf(w, "  %-*s  %s\n", width, m.Name, m.Rule)
		}

	case "maps":
		maps := cat.Maps()
		width := nameWidth(len(maps), func(i int) string { return maps[i].Name })
		fmt.Fprintf(w, "Maps (%d):\n", len(maps))
		for _, m := range maps {
			water := "dry"
			if m.HasWater {
				water = "water"
			}
			fmt.Fprintf(w, "  %-*s  %s\n", width, m.Name, water)
		}

	case "heroes":
		heroes := cat.Heroes()
		width := nameWidth(len(heroes), func(i int) string { return heroes[i].Name })
		fmt.Fprintf(w, "Heroes (%d):\n", len(heroes))
		for _, h := range heroes {
			note := ""
			if h.RequiresWater {
				note = "needs water"
			}
			fmt.Fprintf(w, "  %-*s  %s\n", width, h.Name, note)
		}

	case "towers":
		towers := cat.Towers()
		cat.Order().SortTowers(towers)
		width := nameWidth(len(towers), func(i int) string { return towers[i].Name })
		fmt.Fprintf(w, "Towers (%d):\n", len(towers))
		for _, t := range towers {
			note := ""
			if t.RequiresWater {
				note = "needs water"
			}
			fmt.Fprintf(w, "  %-*s  %-8s  %s\n", width, t.Name, t.Category.Title(), note)
		}
	}
}

func nameWidth(n int, name func(int) string) int {
	width := 4
	for i := 0; i < n; i++ {
		if l := len(name(i)); l > width {
			width = l
		}
	}
	return width
}
