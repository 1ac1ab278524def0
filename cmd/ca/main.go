// ca runs a toroidal life-like cellular automaton with decaying cells.
//
// Usage:
//
//	ca window                - Open the ebiten window (build with -tags ebiten)
//	ca tui                   - Run in the terminal
//	ca run                   - Run headless for N generations
//	ca rule <text>...        - Parse and print rules
//	ca presets               - List named rules
//	ca history               - Show recorded runs
//	ca serve                 - Serve boards over SSH
//	ca sweep                 - Compare rules across decay lengths and seeds
//
// Global flags:
//
//	--config <path>  - Config file (default search: ~/.decay-ca/config.yaml, ./configs/decay-ca.yaml)
//	--rule <r>       - Preset name or birth/survive/decay text
//	--seed <value>   - RNG seed for the random pattern
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"decay-ca/internal/config"
	"decay-ca/internal/session"
	"decay-ca/internal/storage"
	"decay-ca/pkg/sims/life"
)

var (
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
	flagWidth    int
	flagHeight   int
	flagRule     string
	flagPattern  string
	flagDensity  float64
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ca",
	Short: "Life-like cellular automaton with decay",
	Long: `ca evolves a wrapping grid under a birth/survive/decay rule.

Rules are written as three slash-separated segments, e.g. 3/23/4/:
birth neighbour counts, survive neighbour counts, and the number of
decay states a dying cell passes through (0 disables fading).

Examples:
  ca tui --rule highlife
  ca window --rule 3/23/6/ --pattern random --seed 7
  ca run --generations 500 --out runs/fade --rule fade
  ca rule 3/23/4/ 36/23/0/`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config value, or time based)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.IntVar(&flagWidth, "width", 0, "Board width in cells")
	pf.IntVar(&flagHeight, "height", 0, "Board height in cells")
	pf.StringVar(&flagRule, "rule", "", "Preset name or rule text")
	pf.StringVar(&flagPattern, "pattern", "", "Initial pattern: empty, blinker, glider, random")
	pf.Float64Var(&flagDensity, "density", 0, "Live fraction for the random pattern")
	pf.StringVar(&flagDBPath, "db", "", "Run history database path")

	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(ruleCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sweepCmd)
}

// loadConfig resolves the config file and applies any flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}
	if changed("width") {
		cfg.Board.Width = flagWidth
	}
	if changed("height") {
		cfg.Board.Height = flagHeight
	}
	if changed("rule") {
		cfg.Rule = flagRule
	}
	if changed("pattern") {
		cfg.Board.Pattern = flagPattern
	}
	if changed("density") {
		cfg.Board.Density = flagDensity
	}
	if changed("seed") {
		cfg.Board.Seed = flagSeed
	}
	if changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads config and builds the logger and board shared by every host.
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, *life.Life, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := cfg.Logger("decay-ca")
	lc, err := cfg.LifeConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Debug("config loaded", "source", cfg.Source, "rule", lc.Rule.String(), "w", lc.Width, "h", lc.Height)
	return cfg, logger, life.NewWithConfig(lc), nil
}

func runSeed(cfg *config.Config) int64 {
	if cfg.Board.Seed != 0 {
		return cfg.Board.Seed
	}
	return time.Now().UnixNano()
}

// recordRun stores a finished session in the history database when enabled.
func recordRun(cfg *config.Config, logger *log.Logger, sess *session.Session) {
	if sess == nil || sess.Collector() == nil || !cfg.Storage.Enabled {
		return
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open run history", "error", err)
		return
	}
	defer store.Close()

	run := storage.RecordOf(sess.Sim(), sess.Seed(), sess.Collector().Summary())
	id, err := store.SaveRun(run)
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Info("run recorded", "id", id, "rule", run.Rule, "generations", run.Generations)
}
