package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"decay-ca/internal/storage"
)

var (
	flagHistoryRule  string
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Show the most recent runs from the history database, newest first.

Examples:
  ca history
  ca history --rule 3/23/4/ --limit 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryRule, "filter-rule", "", "Only show runs with this canonical rule text")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum runs to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	filter := ""
	if flagHistoryRule != "" {
		r, err := cfg.ResolveRule(flagHistoryRule)
		if err != nil {
			return err
		}
		filter = r.String()
	}
	runs, err := store.RecentRuns(filter, flagHistoryLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tRULE\tBOARD\tPATTERN\tGENS\tFINAL\tPEAK\tMEAN\tDATE")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%dx%d\t%s\t%d\t%d\t%d\t%.1f\t%s\n",
			r.ID, r.Name, r.Rule, r.Width, r.Height, r.Pattern, r.Generations,
			r.FinalAlive, r.PeakAlive, r.MeanAlive, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
