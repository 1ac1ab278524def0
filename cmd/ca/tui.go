package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"decay-ca/internal/telemetry"
	"decay-ca/internal/tui"
	"decay-ca/pkg/sims/life"
)

var flagTUITPS int

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the board in the terminal",
	Long: `Run the board in the terminal. Unless --width/--height are given the
board is fitted to the terminal, capped at the configured size.

Controls:
  Arrows/hjkl  - Move cursor
  Enter/t      - Toggle the cursor cell (while paused)
  Space/p      - Pause / resume
  /            - Edit the rule inline (Enter submits, Esc cancels)
  n            - Single step (while paused)
  r / s        - Reset / reseed
  ?            - Full help
  q            - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&flagTUITPS, "tps", 0, "Generations per second (0 = config value)")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, logger, sim, err := setup(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flag("width").Changed && !cmd.Flag("height").Changed {
		tw, th := tui.TerminalSize()
		lc := sim.Config()
		lc.Width, lc.Height = tui.BoardSize(tw, th, cfg.Board.Width, cfg.Board.Height)
		sim = life.NewWithConfig(lc)
	}
	tps := cfg.TUI.TPS
	if flagTUITPS > 0 {
		tps = flagTUITPS
	}

	// The status line reports rule edits; only errors reach stderr.
	logger.SetLevel(max(logger.GetLevel(), log.ErrorLevel))

	m, err := tui.Run(sim, logger, tui.Options{
		TPS:       tps,
		Seed:      runSeed(cfg),
		Collector: telemetry.NewCollector(0),
	})
	if err != nil {
		return err
	}
	recordRun(cfg, logger, m.Session())
	return nil
}
