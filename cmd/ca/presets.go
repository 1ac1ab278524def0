package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List named rules",
	Long: `List built-in rule presets and those defined under 'presets' in the
config file. Config presets shadow built-ins of the same name.`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func runPresets(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	table := cfg.PresetTable()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRULE\tSOURCE")
	for _, name := range cfg.PresetNames() {
		source := "built-in"
		if _, ok := cfg.Presets[name]; ok {
			source = cfg.Source
		}
		marker := ""
		if name == cfg.Rule {
			marker = " *"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\n", name, marker, table[name], source)
	}
	return w.Flush()
}
