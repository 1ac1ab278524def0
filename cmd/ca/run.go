package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"decay-ca/internal/control"
	"decay-ca/internal/session"
	"decay-ca/internal/telemetry"
	"decay-ca/pkg/core"
)

var (
	flagGenerations int
	flagRunTPS      int
	flagOutDir      string
	flagStdinRules  bool
	flagPlot        bool
	flagNoRecord    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run headless for a number of generations",
	Long: `Run the board without a display, then print a population summary.

With --stdin-rules every line read from stdin is submitted as a rule edit
and applied before the next generation; combine with --tps to type edits
while the run progresses.

Examples:
  ca run --generations 1000 --rule fade --pattern random --seed 3
  ca run --out runs/highlife --rule highlife
  ca run --tps 5 --stdin-rules`,
	RunE: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagGenerations, "generations", 0, "Generations to run (0 = config value)")
	runCmd.Flags().IntVar(&flagRunTPS, "tps", -1, "Generations per second, 0 for unpaced (default from config)")
	runCmd.Flags().StringVar(&flagOutDir, "out", "", "Directory for population.csv (default from config)")
	runCmd.Flags().BoolVar(&flagStdinRules, "stdin-rules", false, "Read rule edits from stdin while running")
	runCmd.Flags().BoolVar(&flagPlot, "plot", true, "Plot the live population when done")
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the run in history")
}

func runHeadless(cmd *cobra.Command, _ []string) error {
	cfg, logger, sim, err := setup(cmd)
	if err != nil {
		return err
	}
	generations := cfg.Run.Generations
	if flagGenerations > 0 {
		generations = flagGenerations
	}
	tps := cfg.Run.TPS
	if flagRunTPS >= 0 {
		tps = flagRunTPS
	}
	outDir := cfg.Run.OutputDir
	if flagOutDir != "" {
		outDir = flagOutDir
	}
	plot := cfg.Run.Plot
	if cmd.Flag("plot").Changed {
		plot = flagPlot
	}
	if flagNoRecord {
		cfg.Storage.Enabled = false
	}

	collector := telemetry.NewCollector(0)
	q := control.NewQueue(256)
	sess, err := session.New(sim, q, logger, runSeed(cfg), session.WithCollector(collector))
	if err != nil {
		return err
	}
	output, err := telemetry.NewOutput(outDir)
	if err != nil {
		return err
	}
	defer output.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if flagStdinRules {
		// Not part of the group: a read on stdin cannot be interrupted, and
		// the run must not wait for the operator to close it.
		go func() {
			if err := control.ReadRules(ctx, os.Stdin, q); err != nil {
				logger.Warn("rule input stopped", "error", err)
			}
		}()
	}

	logger.Info("run started", "rule", sim.Rule().String(), "w", sim.Size().W, "h", sim.Size().H,
		"pattern", sim.Config().Pattern, "generations", generations, "tps", tps)

	completed, err := driveRun(ctx, sess, generations, tps, output)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if completed < generations {
		logger.Warn("run interrupted", "completed", completed, "of", generations)
	}

	sum := collector.Summary()
	printSummary(cmd.OutOrStdout(), sess, sum)
	if plot && len(collector.Samples()) > 1 {
		fmt.Fprintln(cmd.OutOrStdout(), asciigraph.Plot(collector.AliveSeries(),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("live cells per generation"),
		))
	}
	if output != nil {
		logger.Info("population written", "dir", output.Dir())
	}
	recordRun(cfg, logger, sess)
	return nil
}

// driveRun ticks the session in one goroutine and streams samples to the CSV
// writer in another. It returns the number of generations completed.
func driveRun(ctx context.Context, sess *session.Session, generations, tps int, output *telemetry.Output) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	samples := make(chan telemetry.Sample, 64)
	completed := 0

	g.Go(func() error {
		defer close(samples)
		var pacer *core.FixedStep
		if tps > 0 {
			pacer = core.NewFixedStep(tps)
		}
		collector := sess.Collector()
		for completed < generations && !sess.Done() {
			if pacer != nil {
				if err := pacer.Wait(ctx); err != nil {
					return err
				}
			} else if err := ctx.Err(); err != nil {
				return err
			}
			if err := sess.Tick(); err != nil {
				return err
			}
			if sess.Done() {
				return nil
			}
			completed++
			all := collector.Samples()
			select {
			case samples <- all[len(all)-1]:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		batch := make([]telemetry.Sample, 0, 64)
		for s := range samples {
			batch = append(batch, s)
			if len(batch) == cap(batch) {
				if err := output.Write(batch); err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
		return output.Write(batch)
	})

	err := g.Wait()
	return completed, err
}

func printSummary(w io.Writer, sess *session.Session, sum telemetry.Summary) {
	sim := sess.Sim()
	alive, decaying := sim.Population()
	fmt.Fprintf(w, "rule %s  board %dx%d  seed %d\n", sim.Rule(), sim.Size().W, sim.Size().H, sess.Seed())
	fmt.Fprintf(w, "generations %d  alive %d  decaying %d\n", sim.Generation(), alive, decaying)
	fmt.Fprintf(w, "alive mean %.2f  std %.2f  peak %d\n", sum.MeanAlive, sum.StdAlive, sum.PeakAlive)
	if err := sess.LastError(); err != nil {
		fmt.Fprintf(w, "last rule edit rejected: %v\n", err)
	}
}
