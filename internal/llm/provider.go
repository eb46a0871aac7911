// Package llm generates optional plain-language summaries of evaluation
// reports. Summaries are advisory output for the operator; they never feed
// back into claim or disclaimer results.
package llm

import (
	"context"
	"fmt"

	"github.com/siripat/labelcheck/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a plain-language summary of the report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the evaluation report to summarize
	Report model.Report

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerMinute rate-limits calls during batch runs. Zero disables
	// the limiter.
	RequestsPerMinute float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default
		Model:             "",
		Timeout:           30,
		MaxTokens:         800,
		RequestsPerMinute: 20,
	}
}

// BuildPrompt constructs the default summarization prompt. The report
// already holds every decision; the model only restates it.
func BuildPrompt(report model.Report) string {
	passed, failed := 0, 0
	for _, c := range report.Claims {
		if c.Pass {
			passed++
		} else {
			failed++
		}
	}

	prompt := fmt.Sprintf(`You are restating a Thai nutrition-claim eligibility report in plain language for a food-label operator.

CRITICAL RULES:
1. The eligibility decisions below are final. DO NOT re-evaluate, question, or change any pass/fail outcome.
2. DO NOT invent nutrient figures, thresholds, or regulations not present in the report.
3. This is regulatory pre-screening, not legal advice; say so in one closing sentence.

Report:
- Product: %s
- Reference basis: %s
- Claims eligible: %d
- Claims not eligible: %d
- Mandatory disclaimers triggered: %d

Claim decisions:
`, report.Product, report.ReferenceBasis, passed, failed, len(report.Disclaimers))

	for _, c := range report.Claims {
		status := "NOT ELIGIBLE"
		if c.Pass {
			status = "eligible"
		}
		prompt += fmt.Sprintf("- %s (%s): %s. %s\n", c.ClaimText, c.NutrientLabel, status, c.Rationale)
	}
	for _, d := range report.Disclaimers {
		prompt += fmt.Sprintf("- disclaimer: %s (%s)\n", d.Message, d.ThaiName)
	}

	prompt += "\nProvide a 3-5 sentence summary in English covering which claims the label may carry, which it may not and why, and any mandatory disclaimers."
	return prompt
}
