package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/siripat/labelcheck/internal/model"
	"github.com/siripat/labelcheck/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON      string
	outMD        string
	checkTimeout time.Duration
	noFooter     bool
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <submission.yaml>",
	Short: "Evaluate one submission and generate an eligibility report",
	Long: `Check evaluates a single product submission to:
- Convert nutrient figures onto the regulatory serving bases
- Apply the legally mandated display rounding
- Decide claim eligibility against the reference thresholds
- Flag mandatory disclaiming statements
- Generate JSON and Markdown reports

Example:
  labelcheck check product.yaml
  labelcheck check product.yaml --json report.json --md report.md
  labelcheck check product.yaml --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	checkCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", time.Minute, "overall check timeout")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM summary generation")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Output.IncludeFooter = !noFooter
	if err := configureLLM(cfg); err != nil {
		return err
	}

	sub, err := pipeline.LoadSubmission(path)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s (%s)\n", sub.Product, path)
		fmt.Fprintf(os.Stderr, "Data dir: %s\n", cfg.Data.Dir)
		if sub.FoodGroup != "" {
			fmt.Fprintf(os.Stderr, "Food group: %s\n", sub.FoodGroup)
		} else {
			fmt.Fprintln(os.Stderr, "Food group: not listed, evaluating per 100 g/ml")
		}
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)
	report, err := p.Check(ctx, sub)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Evaluated %d claims, %d disclaimers\n", len(report.Claims), len(report.Disclaimers))
		if report.LLM != nil && report.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "Generated LLM summary using %s/%s\n", report.LLM.Provider, report.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// configureLLM applies the llm flags and reads the API key from the
// environment.
func configureLLM(cfg *model.Config) error {
	if !llmEnabled {
		cfg.LLM.Provider = ""
		return nil
	}
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	if llmProvider == "openai" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	return nil
}
