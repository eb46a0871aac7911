// Package pipeline wires submission loading, evaluation, report assembly,
// and the optional plain-language summary into one Check call.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/siripat/labelcheck/internal/convert"
	"github.com/siripat/labelcheck/internal/engine"
	"github.com/siripat/labelcheck/internal/llm"
	"github.com/siripat/labelcheck/internal/model"
	"github.com/siripat/labelcheck/internal/rules"
)

// Pipeline orchestrates the complete check process
type Pipeline struct {
	store      *rules.Store
	renderer   *Renderer
	summarizer *llm.Summarizer // Optional LLM summarizer (nil if disabled)
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	// Create LLM summarizer if configured
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		store:      rules.NewStore(cfg.Data),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		summarizer: summarizer,
		config:     cfg,
	}
}

// Store exposes the table store, for commands that inspect the rule tables.
func (p *Pipeline) Store() *rules.Store {
	return p.store
}

// LoadSubmission reads and validates a YAML submission file.
func LoadSubmission(path string) (*model.Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading submission: %w", err)
	}
	var sub model.Submission
	if err := yaml.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("parsing submission %s: %w", path, err)
	}
	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("submission %s: %w", path, err)
	}
	return &sub, nil
}

// Check evaluates one submission into a full report.
func (p *Pipeline) Check(ctx context.Context, sub *model.Submission) (*model.Report, error) {
	tables, err := p.store.Tables()
	if err != nil {
		return nil, fmt.Errorf("loading reference tables: %w", err)
	}

	result, err := engine.New(tables).Evaluate(sub)
	if err != nil {
		return nil, err
	}

	report := buildReport(sub, result)

	// Generate LLM summary if enabled (AFTER evaluation, never affects results)
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return report, nil
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("Wrote Markdown: %s\n", mdPath)
		}
	}

	// Write the LLM summary next to the Markdown report if present
	if report.LLM != nil && report.LLM.Enabled && mdPath != "" {
		llmMdPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		if md := llm.RenderSeparateMarkdown(report.LLM); md != "" {
			if err := os.WriteFile(llmMdPath, []byte(md), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to write LLM summary: %v\n", err)
			} else if verbose {
				fmt.Printf("Wrote LLM Summary: %s\n", llmMdPath)
			}
		}
	}

	p.renderer.RenderSummary(report)
	return nil
}

func buildReport(sub *model.Submission, result *engine.Result) *model.Report {
	report := &model.Report{
		Product:        sub.Product,
		EvaluatedAt:    time.Now(),
		FoodGroup:      sub.FoodGroup,
		ReferenceBasis: result.Sets.ReferenceBasis,
		Claims:         result.Claims,
		Disclaimers:    result.Disclaimers,
		Notes:          result.Notes,
	}

	sets := result.Sets
	for _, n := range model.Nutrients() {
		reading, ok := sub.Nutrients[n]
		if !ok {
			continue
		}

		row := model.RoundingRow{
			Nutrient: n,
			ThaiName: n.ThaiName(),
			Unit:     n.Unit(),
			Input:    readingDisplay(reading),
		}
		if v, ok := sets.Per100.Amount(n); ok {
			row.Per100 = formatRaw(v)
		}
		if v, ok := sets.Label.Amount(n); ok {
			row.PerServing = formatRaw(v)
			row.PerServingRounded = convert.Round(v, n).Display()
		}
		if v, ok := sets.Reference.Amount(n); ok {
			row.PerReference = formatRaw(v)
			row.PerReferenceRounded = convert.Round(v, n).Display()
		}
		report.Rounding = append(report.Rounding, row)

		rdiRow := model.RDIRow{Nutrient: n, ThaiName: n.ThaiName()}
		if pct, ok := sets.Label.RDIPercent(n); ok {
			rdiRow.LabelPercent = &pct
		}
		if pct, ok := sets.Reference.RDIPercent(n); ok {
			rdiRow.ReferencePercent = &pct
		}
		if rdiRow.LabelPercent != nil || rdiRow.ReferencePercent != nil {
			report.RDI = append(report.RDI, rdiRow)
		}
	}

	return report
}

func readingDisplay(r model.Reading) string {
	switch {
	case r.Amount != nil:
		return formatRaw(*r.Amount)
	case r.RDIPercent != nil:
		return formatRaw(*r.RDIPercent) + " %RDI"
	default:
		return ""
	}
}

// formatRaw prints an unrounded figure, trimmed to four decimals so float
// artifacts from chained scaling do not leak into the report.
func formatRaw(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
