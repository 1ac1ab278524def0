package main

import (
	"github.com/spf13/cobra"

	"decay-ca/internal/app"
	"decay-ca/internal/telemetry"
)

var (
	flagScale    int
	flagHUDWidth int
	flagWinTPS   int
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open the simulation window",
	Long: `Open an ebiten window showing the board. Requires a build with -tags ebiten.

Controls:
  Space     - Pause / resume
  Click     - Toggle a cell (while paused)
  /         - Type a new rule on stdin
  N         - Single step (while paused)
  R         - Reset with the same seed
  S         - Reseed
  Q/Esc     - Quit

The decay -/+ buttons in the side panel edit the rule's decay length.`,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagScale, "scale", 0, "Pixels per cell (0 = config value)")
	windowCmd.Flags().IntVar(&flagHUDWidth, "hud-width", 220, "Side panel width in pixels (0 hides it)")
	windowCmd.Flags().IntVar(&flagWinTPS, "tps", 0, "Generations per second (0 = config value)")
}

func runWindow(cmd *cobra.Command, _ []string) error {
	cfg, logger, sim, err := setup(cmd)
	if err != nil {
		return err
	}
	opts := app.Options{
		Title:     cfg.Window.Title,
		Scale:     cfg.Window.CellSize,
		HUDWidth:  flagHUDWidth,
		TPS:       cfg.Window.TPS,
		Seed:      runSeed(cfg),
		Collector: telemetry.NewCollector(0),
	}
	if flagScale > 0 {
		opts.Scale = flagScale
	}
	if flagWinTPS > 0 {
		opts.TPS = flagWinTPS
	}

	sess, err := app.Run(sim, logger, opts)
	if err != nil {
		return err
	}
	recordRun(cfg, logger, sess)
	return nil
}
