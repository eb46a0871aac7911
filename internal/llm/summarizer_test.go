package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/siripat/labelcheck/internal/model"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	response  *SummarizeResponse
	err       error
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

type mockError struct{ msg string }

func (e *mockError) Error() string { return e.msg }

func testReport() model.Report {
	return model.Report{
		Product:        "test snack",
		ReferenceBasis: "40 g",
		Claims: []model.ClaimResult{
			{ClaimText: "ไขมันต่ำ", NutrientLabel: "ไขมันทั้งหมด", Pass: true, Rationale: "meets the threshold"},
			{ClaimText: "โซเดียมต่ำ", NutrientLabel: "โซเดียม", Pass: false, Rationale: "fails the threshold on the reference serving"},
		},
	}
}

func TestNewSummarizer_DisabledProvider(t *testing.T) {
	summarizer, err := NewSummarizer(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summarizer.IsEnabled() {
		t.Error("Expected summarizer to be disabled")
	}
	if summarizer.ProviderName() != "" {
		t.Error("Expected empty provider name when disabled")
	}

	summary, err := summarizer.GenerateSummary(context.Background(), testReport())
	if err != nil || summary != nil {
		t.Errorf("Disabled summarizer = %v, %v; want nil, nil", summary, err)
	}
}

func TestNewSummarizer_UnknownProvider(t *testing.T) {
	if _, err := NewSummarizer(Config{Provider: "telepathy"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestSummarizer_GenerateSummary_ProviderUnavailable(t *testing.T) {
	summarizer := &Summarizer{
		provider: &MockProvider{name: "test-provider", available: false},
		config:   Config{},
	}

	summary, err := summarizer.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Expected graceful degradation, got %v", err)
	}
	if summary == nil || !summary.Enabled {
		t.Fatal("Expected enabled summary with warning")
	}
	found := false
	for _, w := range summary.Warnings {
		if strings.Contains(w, "not available") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected unavailability warning, got %v", summary.Warnings)
	}
}

func TestSummarizer_GenerateSummary_Success(t *testing.T) {
	summarizer := &Summarizer{
		provider: &MockProvider{
			name:      "test-provider",
			available: true,
			response: &SummarizeResponse{
				Summary:    "The label may carry the low-fat claim.",
				Model:      "test-model",
				TokensUsed: 150,
			},
		},
		config: Config{Model: "test-model"},
	}

	summary, err := summarizer.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summary == nil || !summary.Enabled {
		t.Fatal("Expected enabled summary")
	}
	if summary.Provider != "test-provider" || summary.Model != "test-model" {
		t.Errorf("summary = %+v", summary)
	}
	if summary.SummaryMD != "The label may carry the low-fat claim." {
		t.Errorf("SummaryMD = %q", summary.SummaryMD)
	}
}

func TestSummarizer_GenerateSummary_ProviderError(t *testing.T) {
	summarizer := &Summarizer{
		provider: &MockProvider{
			name:      "test-provider",
			available: true,
			err:       &mockError{msg: "API rate limit exceeded"},
		},
		config: Config{Model: "test-model"},
	}

	summary, err := summarizer.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Errorf("Expected graceful degradation, got %v", err)
	}
	if summary == nil || !summary.Enabled {
		t.Fatal("Expected summary with error warning")
	}
	found := false
	for _, w := range summary.Warnings {
		if strings.Contains(w, "failed") && strings.Contains(w, "rate limit") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected failure warning, got %v", summary.Warnings)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testReport())
	for _, want := range []string{"test snack", "ไขมันต่ำ", "NOT ELIGIBLE", "DO NOT re-evaluate"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestRenderSeparateMarkdown(t *testing.T) {
	if md := RenderSeparateMarkdown(nil); md != "" {
		t.Errorf("nil summary = %q, want empty", md)
	}
	if md := RenderSeparateMarkdown(&model.LLMSummary{Enabled: false}); md != "" {
		t.Errorf("disabled summary = %q, want empty", md)
	}

	md := RenderSeparateMarkdown(&model.LLMSummary{
		Enabled:   true,
		Provider:  "openai",
		Model:     "test-model",
		SummaryMD: "Summary body.",
	})
	if !strings.Contains(md, "Summary body.") || !strings.Contains(md, "openai") {
		t.Errorf("markdown = %q", md)
	}
}
