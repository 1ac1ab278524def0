package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"decay-ca/pkg/sims/life"
)

var flagRuleBase string

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var ruleCmd = &cobra.Command{
	Use:   "rule <text>...",
	Short: "Parse rules and print their canonical form",
	Long: `Parse each argument the way a rule edit is parsed and print the result.

Segments are birth/survive/decay. Characters other than digits in the
birth and survive segments are ignored. An empty decay segment keeps the
base rule's decay length. A decay value above 255 is rejected.

Examples:
  ca rule 3/23/4/
  ca rule 36/23 --base fade
  ca rule highlife`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRule,
}

func init() {
	ruleCmd.Flags().StringVar(&flagRuleBase, "base", "", "Rule that supplies unchanged fields (default from config)")
}

func runRule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	baseName := cfg.Rule
	if flagRuleBase != "" {
		baseName = flagRuleBase
	}
	base, err := cfg.ResolveRule(baseName)
	if err != nil {
		return fmt.Errorf("base rule: %w", err)
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, arg := range args {
		var r life.Rule
		if text, ok := cfg.PresetTable()[arg]; ok {
			r, err = life.ParseRule(text, life.Rule{})
		} else {
			r, err = life.ParseRule(arg, base)
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s  %s\n", arg, badStyle.Render(err.Error()))
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", headerStyle.Render(r.String()), dimStyle.Render(describeRule(r)))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d rules rejected", failed, len(args))
	}
	return nil
}

func describeRule(r life.Rule) string {
	decay := "no decay"
	if r.DecayStates > 0 {
		decay = fmt.Sprintf("%d decay states", r.DecayStates)
	}
	return fmt.Sprintf("birth %v  survive %v  %s", r.Birth.Counts(), r.Survive.Counts(), decay)
}
