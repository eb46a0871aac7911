package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/siripat/labelcheck/internal/model"
)

// Summarizer wraps a provider with rate limiting and graceful degradation:
// a failed summary is reported inside the summary itself, never as a check
// failure.
type Summarizer struct {
	provider Provider
	config   Config
	limiter  *rate.Limiter
}

// NewSummarizer creates a summarizer from configuration. An empty provider
// yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if config.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerMinute/60), 1)
	}

	return &Summarizer{
		provider: provider,
		config:   config,
		limiter:  limiter,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the active provider's name, or "" when disabled
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces the plain-language summary for a report. Returns
// nil when disabled. Provider failures degrade to a summary carrying the
// warning instead of an error.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return &model.LLMSummary{
				Enabled:  true,
				Provider: s.provider.Name(),
				Warnings: []string{fmt.Sprintf("Summary generation failed: %v", err)},
			}, nil
		}
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:  true,
			Provider: s.provider.Name(),
			Warnings: []string{fmt.Sprintf("Provider %s is not available (check API key and connectivity)", s.provider.Name())},
		}, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return &model.LLMSummary{
			Enabled:  true,
			Provider: s.provider.Name(),
			Model:    s.config.Model,
			Warnings: []string{fmt.Sprintf("Summary generation failed: %v", err)},
		}, nil
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
		Warnings:  []string{fmt.Sprintf("Tokens used: %d", resp.TokensUsed)},
	}, nil
}

// RenderSeparateMarkdown renders a standalone Markdown document for the
// summary, for writing next to the main report.
func RenderSeparateMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled || summary.SummaryMD == "" {
		return ""
	}

	md := "# Plain-Language Summary\n\n"
	md += fmt.Sprintf("_Generated by %s", summary.Provider)
	if summary.Model != "" {
		md += fmt.Sprintf(" (%s)", summary.Model)
	}
	md += "; advisory only, decisions come from the rule tables._\n\n"
	md += summary.SummaryMD + "\n"
	return md
}
