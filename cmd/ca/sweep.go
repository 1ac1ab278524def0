package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"decay-ca/internal/sweep"
	"decay-ca/pkg/sims/life"
)

var (
	flagSweepRules   []string
	flagSweepDecays  []int
	flagSweepSeeds   int
	flagSweepGens    int
	flagSweepWorkers int
	flagSweepTop     int
	flagSweepOut     string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare rules across decay lengths and seeds",
	Long: `Run every combination of rule, decay length and seed headless on a
worker pool, then print the scenarios with the highest mean live population.
The board shape and pattern come from the usual config and flags.

Examples:
  ca sweep --pattern random --density 0.3
  ca sweep --rules life,highlife,3/4/0/ --decays 0,2,6 --seeds 8
  ca sweep --out sweep.csv`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringSliceVar(&flagSweepRules, "rules", nil, "Presets or rule texts (default: every preset)")
	sweepCmd.Flags().IntSliceVar(&flagSweepDecays, "decays", nil, "Decay lengths to try (default: each rule's own)")
	sweepCmd.Flags().IntVar(&flagSweepSeeds, "seeds", 4, "Seeds per scenario, counting up from the board seed")
	sweepCmd.Flags().IntVar(&flagSweepGens, "generations", 0, "Generations per scenario (0 = config run.generations)")
	sweepCmd.Flags().IntVar(&flagSweepWorkers, "workers", runtime.NumCPU(), "Number of worker goroutines")
	sweepCmd.Flags().IntVar(&flagSweepTop, "top", 5, "Results to print")
	sweepCmd.Flags().StringVar(&flagSweepOut, "out", "", "Write every result to this CSV file")
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := cfg.Logger("decay-ca")

	names := flagSweepRules
	if len(names) == 0 {
		names = cfg.PresetNames()
	}
	rules := make([]life.Rule, 0, len(names))
	for _, name := range names {
		r, err := cfg.ResolveRule(name)
		if err != nil {
			return fmt.Errorf("rule %q: %w", name, err)
		}
		rules = append(rules, r)
	}
	decays := make([]uint8, 0, len(flagSweepDecays))
	for _, d := range flagSweepDecays {
		if d < 0 || d > 255 {
			return fmt.Errorf("decay length %d out of range 0..255", d)
		}
		decays = append(decays, uint8(d))
	}
	base := runSeed(cfg)
	seeds := make([]int64, max(flagSweepSeeds, 1))
	for i := range seeds {
		seeds[i] = base + int64(i)
	}
	gens := cfg.Run.Generations
	if flagSweepGens > 0 {
		gens = flagSweepGens
	}

	opts := sweep.Options{
		Width:       cfg.Board.Width,
		Height:      cfg.Board.Height,
		Pattern:     cfg.Board.Pattern,
		Density:     cfg.Board.Density,
		Generations: gens,
		Workers:     flagSweepWorkers,
	}
	scenarios := sweep.Grid(rules, decays, seeds)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sweeping %d scenarios (%d workers, %d generations)\n", len(scenarios), opts.Workers, gens)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	start := time.Now()
	results, err := sweep.Run(ctx, opts, scenarios)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if flagSweepOut != "" {
		f, err := os.Create(flagSweepOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", flagSweepOut, err)
		}
		defer f.Close()
		if err := gocsv.MarshalFile(&results, f); err != nil {
			return fmt.Errorf("writing %s: %w", flagSweepOut, err)
		}
		logger.Info("sweep written", "path", flagSweepOut, "rows", len(results))
	}

	sweep.Rank(results)
	fmt.Fprintf(out, "\nTop %d results (elapsed %s):\n", min(flagSweepTop, len(results)), elapsed.Round(time.Millisecond))
	for i := 0; i < len(results) && i < flagSweepTop; i++ {
		fmt.Fprintf(out, "%2d) %s\n", i+1, results[i])
	}
	return nil
}
