package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/btd6-randomizer/internal/assets"
	"github.com/vovakirdan/btd6-randomizer/internal/catalog"
	"github.com/vovakirdan/btd6-randomizer/internal/config"
	"github.com/vovakirdan/btd6-randomizer/internal/selector"
	"github.com/vovakirdan/btd6-randomizer/internal/storage"
)

var (
	flagModes      []string
	flagMaps       []string
	flagHeroes     []string
	flagTowers     int
	flagDuplicates bool
	flagMaxDupes   int
	flagFormat     string
	flagImages     bool
	flagNoSave     bool
)

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll one random setup",
	Long: `Roll a random mode, map, hero and tower set and print it.

Restrictions default to the config file. --mode, --map and --hero may be
repeated to draw from several names; without them the whole catalog is used.

Adjustments such as a reduced tower count are printed to stderr. A roll that
cannot be satisfied exits with status 1.

Examples:
  randomizer roll
  randomizer roll --mode CHIMPS --mode "Magic Only" --towers 3
  randomizer roll --map Logs --hero "Admiral Brickell"
  randomizer roll --duplicates=false --towers 8 --format yaml
  randomizer roll --seed 42 --images --format json`,
	Args: cobra.NoArgs,
	Run:  runRoll,
}

func init() {
	rollCmd.Flags().StringArrayVar(&flagModes, "mode", nil, "Allowed mode (repeatable)")
	rollCmd.Flags().StringArrayVar(&flagMaps, "map", nil, "Allowed map (repeatable)")
	rollCmd.Flags().StringArrayVar(&flagHeroes, "hero", nil, "Allowed hero (repeatable)")
	rollCmd.Flags().IntVar(&flagTowers, "towers", 0, "Number of towers (default from config)")
	rollCmd.Flags().BoolVar(&flagDuplicates, "duplicates", true, "Allow the same tower more than once")
	rollCmd.Flags().IntVar(&flagMaxDupes, "max-dupes", 0, "Max copies of one tower (default from config)")
	rollCmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, yaml, json")
	rollCmd.Flags().BoolVar(&flagImages, "images", false, "Include image URLs")
	rollCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the roll in history")
}

func runRoll(cmd *cobra.Command, _ []string) {
	if !validFormat(flagFormat) {
		fatalf("Error: unknown format %q (want text, yaml or json)", flagFormat)
	}

	a := loadApp("randomizer")
	defer a.Close()

	roll := a.cfg.Roll
	applyRollFlags(cmd, &roll)

	restriction, err := roll.Restriction(a.cat)
	if err != nil {
		var unknown *catalog.UnknownNameError
		if errors.As(err, &unknown) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Run 'randomizer list %s' to see valid names.\n", pluralKind(unknown.Kind))
			a.Close()
			os.Exit(1)
		}
		a.Close()
		fatalf("Error: %v", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	res, err := selector.New(a.cat).Generate(restriction, rand.New(rand.NewSource(seed)))
	if err != nil {
		a.logger.Debug("roll failed", "seed", seed, "error", err)
		a.Close()
		fatalf("Error: %v", err)
	}
	a.logger.Debug("rolled", "seed", seed, "mode", res.Mode.Name, "map", res.Map.Name, "hero", res.Hero.Name)

	for _, adv := range res.Advisories {
		fmt.Fprintf(os.Stderr, "Note: %s\n", adv.Message)
	}

	var id string
	if !flagNoSave {
		if store := a.openStore(); store != nil {
			id, err = store.SaveRoll(storage.NewRoll(res, seed, ""))
			if err != nil {
				a.logger.Warn("could not save roll", "error", err)
			}
			store.Close()
		}
	}

	out := newRollOutput(res, seed, id)
	if flagImages {
		out.Images = imageOutputs(assets.ForConfiguration(a.images, res.Configuration))
	}

	if err := writeRoll(os.Stdout, out, flagFormat); err != nil {
		a.Close()
		fatalf("Error writing output: %v", err)
	}
}

// applyRollFlags overrides the config roll section with explicitly set flags.
func applyRollFlags(cmd *cobra.Command, roll *config.RollConfig) {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		roll.Modes = flagModes
	}
	if flags.Changed("map") {
		roll.Maps = flagMaps
	}
	if flags.Changed("hero") {
		roll.Heroes = flagHeroes
	}
	if flags.Changed("towers") {
		roll.TowerCount = flagTowers
	}
	if flags.Changed("duplicates") {
		roll.AllowDuplicates = flagDuplicates
	}
	if flags.Changed("max-dupes") {
		roll.MaxDuplicates = flagMaxDupes
	}
}

// rollOutput is the printable form of a roll.
type rollOutput struct {
	ID         string        `yaml:"id,omitempty" json:"id,omitempty"`
	Seed       int64         `yaml:"seed" json:"seed"`
	Mode       string        `yaml:"mode" json:"mode"`
	Map        string        `yaml:"map" json:"map"`
	Hero       string        `yaml:"hero" json:"hero"`
	Towers     []string      `yaml:"towers" json:"towers"`
	Advisories []string      `yaml:"advisories,omitempty" json:"advisories,omitempty"`
	Images     []imageOutput `yaml:"images,omitempty" json:"images,omitempty"`

	mapWater bool
	modeRule string
	towers   []catalog.Tower
}

type imageOutput struct {
	Kind string `yaml:"kind" json:"kind"`
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

func newRollOutput(res selector.Result, seed int64, id string) rollOutput {
	out := rollOutput{
		ID:       id,
		Seed:     seed,
		Mode:     res.Mode.Name,
		Map:      res.Map.Name,
		Hero:     res.Hero.Name,
		Towers:   res.TowerNames(),
		mapWater: res.Map.HasWater,
		modeRule: res.Mode.Rule.String(),
		towers:   res.Towers,
	}
	for _, adv := range res.Advisories {
		out.Advisories = append(out.Advisories, adv.Message)
	}
	return out
}

func imageOutputs(images []assets.Image) []imageOutput {
	out := make([]imageOutput, len(images))
	for i, img := range images {
		out[i] = imageOutput{Kind: img.Kind.String(), Name: img.Name, URL: img.URL}
	}
	return out
}

func validFormat(format string) bool {
	switch format {
	case "text", "yaml", "json":
		return true
	}
	return false
}

// writeRoll prints a roll in the requested format.
func writeRoll(w io.Writer, out rollOutput, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case "text":
		return writeRollText(w, out)
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeRollText(w io.Writer, out rollOutput) error {
	water := "dry"
	if out.mapWater {
		water = "water"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Mode:    %s (%s)\n", out.Mode, out.modeRule)
	fmt.Fprintf(&b, "Map:     %s (%s)\n", out.Map, water)
	fmt.Fprintf(&b, "Hero:    %s\n", out.Hero)
	fmt.Fprintf(&b, "Towers:  %d\n", len(out.Towers))

	// Copies of a tower are adjacent in canonical order
	for i := 0; i < len(out.towers); {
		j := i + 1
		for j < len(out.towers) && out.towers[j].Name == out.towers[i].Name {
			j++
		}
		fmt.Fprintf(&b, "  %dx %-20s %s\n", j-i, out.towers[i].Name, out.towers[i].Category.Title())
		i = j
	}

	fmt.Fprintf(&b, "Seed:    %d\n", out.Seed)
	if out.ID != "" {
		fmt.Fprintf(&b, "ID:      %s\n", out.ID)
	}

	if len(out.Images) > 0 {
		b.WriteString("Images:\n")
		for _, img := range out.Images {
			fmt.Fprintf(&b, "  %-5s %s: %s\n", img.Kind, img.Name, img.URL)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func pluralKind(kind string) string {
	if kind == "hero" {
		return "heroes"
	}
	return kind + "s"
}
