package cli

import (
	"fmt"
	"os"

	"github.com/siripat/labelcheck/internal/rules"
	"github.com/spf13/cobra"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the loaded reference rule tables",
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load every rule table and report malformed thresholds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		store := rules.NewStore(cfg.Data)

		tables, err := store.Tables()
		if err != nil {
			return fmt.Errorf("loading tables: %w", err)
		}

		broken := 0
		for _, set := range [][]rules.ClaimRule{tables.Listed, tables.Unlisted} {
			for _, rule := range set {
				if rule.Err != nil {
					broken++
					fmt.Fprintf(os.Stderr, "BROKEN %s %q: %v\n", rule.Nutrient, rule.ClaimText, rule.Err)
				}
			}
		}

		fmt.Printf("Loaded %d listed rules, %d unlisted rules, %d disclaimers, %d food groups, %d RDIs, %d conditions\n",
			len(tables.Listed), len(tables.Unlisted), len(tables.Disclaimers),
			len(tables.Servings), len(tables.RDIs), len(tables.Conditions))
		if broken > 0 {
			return fmt.Errorf("%d rules carry unparseable thresholds", broken)
		}
		fmt.Println("All thresholds parse.")
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the claim rules and their thresholds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		store := rules.NewStore(cfg.Data)

		tables, err := store.Tables()
		if err != nil {
			return fmt.Errorf("loading tables: %w", err)
		}

		print := func(title string, set []rules.ClaimRule) {
			fmt.Printf("%s:\n", title)
			for _, rule := range set {
				state := ""
				if rule.State != "" {
					state = fmt.Sprintf(" [%s]", rule.State)
				}
				fmt.Printf("  %-16s %s%s: %s", rule.Nutrient, rule.ClaimText, state, rule.ThresholdText)
				if rule.RDIThresholdText != "" {
					fmt.Printf(" (alt: %s)", rule.RDIThresholdText)
				}
				fmt.Println()
			}
			fmt.Println()
		}
		print("Listed foods", tables.Listed)
		print("Unlisted foods (per 100 g/ml)", tables.Unlisted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesShowCmd)
}
