package model

import "time"

// Report is the complete evaluation result for one submission, handed to
// the UI or document renderer.
type Report struct {
	Product     string    `json:"product"`
	EvaluatedAt time.Time `json:"evaluated_at"`

	// FoodGroup echoes the submission's reference-list entry, empty when
	// the product is evaluated per 100 g/ml.
	FoodGroup string `json:"food_group,omitempty"`
	// ReferenceBasis describes the basis reference-side figures were
	// computed on, e.g. "40 g (doubled from 20 g)" or "100 ml".
	ReferenceBasis string `json:"reference_basis"`

	Claims      []ClaimResult   `json:"claims"`
	Disclaimers []DisclaimerHit `json:"disclaimers"`
	Rounding    []RoundingRow   `json:"rounding"`
	RDI         []RDIRow        `json:"rdi"`

	// Notes are operator-facing informational messages: skipped rules,
	// malformed thresholds, missing RDI references. They never abort an
	// evaluation.
	Notes []string `json:"notes,omitempty"`

	LLM *LLMSummary `json:"llm,omitempty"` // optional, never affects results
}

// BasisTag records which serving basis (or bases) carried a claim decision.
type BasisTag string

const (
	BasisTagReferenceOnly BasisTag = "reference_only"
	BasisTagLabelOnly     BasisTag = "label_only"
	BasisTagPer100kcal    BasisTag = "per_100kcal"
	BasisTagBoth          BasisTag = "both"
)

// ClaimResult is the outcome of one claim-table row for one submission.
type ClaimResult struct {
	Nutrient      Nutrient `json:"nutrient"`
	NutrientLabel string   `json:"nutrient_label"` // display text from the rule table
	ClaimText     string   `json:"claim_text"`
	Threshold     string   `json:"threshold"` // display form of the deciding threshold
	Pass          bool     `json:"pass"`
	Basis         BasisTag `json:"basis,omitempty"`
	Rationale     string   `json:"rationale,omitempty"`
	Conditions    []string `json:"conditions,omitempty"` // resolved condition notes
	Warnings      []string `json:"warnings,omitempty"`   // accompaniment requirements
}

// DisclaimerHit flags a nutrient whose magnitude requires a disclaiming
// statement on the label, independent of claim eligibility.
type DisclaimerHit struct {
	Nutrient       Nutrient `json:"nutrient"`
	ThaiName       string   `json:"thai_name"`
	LabelValue     *float64 `json:"label_value,omitempty"`
	ReferenceValue *float64 `json:"reference_value,omitempty"`
	Threshold      float64  `json:"threshold"`
	Unit           string   `json:"unit"`
	Message        string   `json:"message"`
}

// RoundingRow shows one nutrient at every conversion stage, raw and in its
// legally rounded display form.
type RoundingRow struct {
	Nutrient            Nutrient `json:"nutrient"`
	ThaiName            string   `json:"thai_name"`
	Input               string   `json:"input"`
	Per100              string   `json:"per_100"`
	PerServing          string   `json:"per_serving"`
	PerServingRounded   string   `json:"per_serving_rounded"`
	PerReference        string   `json:"per_reference"`
	PerReferenceRounded string   `json:"per_reference_rounded"`
	Unit                string   `json:"unit"`
}

// RDIRow shows a nutrient's %RDI on the label-serving and reference bases.
type RDIRow struct {
	Nutrient         Nutrient `json:"nutrient"`
	ThaiName         string   `json:"thai_name"`
	LabelPercent     *float64 `json:"label_percent,omitempty"`
	ReferencePercent *float64 `json:"reference_percent,omitempty"`
}

// LLMSummary is an optional plain-language restatement of the report.
// It is generated after evaluation and never feeds back into results.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
