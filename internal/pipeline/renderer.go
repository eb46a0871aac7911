package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/siripat/labelcheck/internal/model"
)

// Renderer writes reports as JSON and Markdown and prints the terminal
// summary.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes the full Markdown report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(report)), 0o644)
}

// Markdown renders the report document.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Label Check: %s\n\n", report.Product)
	fmt.Fprintf(&b, "- Evaluated: %s\n", report.EvaluatedAt.Format("2006-01-02 15:04"))
	if report.FoodGroup != "" {
		fmt.Fprintf(&b, "- Food group: %s\n", report.FoodGroup)
	} else {
		b.WriteString("- Food group: not on the reference serving list\n")
	}
	fmt.Fprintf(&b, "- Reference basis: %s\n\n", report.ReferenceBasis)

	b.WriteString("## Claim Eligibility\n\n")
	if len(report.Claims) == 0 {
		b.WriteString("No claim rules apply to the entered nutrients.\n\n")
	} else {
		b.WriteString("| Claim | Nutrient | Result | Rationale |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, c := range report.Claims {
			result := "not eligible"
			if c.Pass {
				result = "eligible"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ClaimText, c.NutrientLabel, result, c.Rationale)
		}
		b.WriteString("\n")

		for _, c := range report.Claims {
			if len(c.Conditions) == 0 && len(c.Warnings) == 0 {
				continue
			}
			fmt.Fprintf(&b, "**%s**\n\n", c.ClaimText)
			for _, cond := range c.Conditions {
				fmt.Fprintf(&b, "- Condition: %s\n", cond)
			}
			for _, w := range c.Warnings {
				fmt.Fprintf(&b, "- Warning: %s\n", w)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Mandatory Disclaimers\n\n")
	if len(report.Disclaimers) == 0 {
		b.WriteString("None triggered.\n\n")
	} else {
		for _, d := range report.Disclaimers {
			fmt.Fprintf(&b, "- %s (%s", d.Message, d.ThaiName)
			if d.LabelValue != nil {
				fmt.Fprintf(&b, ", label %s %s", trimFloat(*d.LabelValue), d.Unit)
			}
			if d.ReferenceValue != nil {
				fmt.Fprintf(&b, ", reference %s %s", trimFloat(*d.ReferenceValue), d.Unit)
			}
			fmt.Fprintf(&b, ", trigger >%s %s)\n", trimFloat(d.Threshold), d.Unit)
		}
		b.WriteString("\n")
	}

	if len(report.Rounding) > 0 {
		b.WriteString("## Declared Values\n\n")
		b.WriteString("| Nutrient | Input | Per 100 | Per serving | Declared (serving) | Per reference | Declared (reference) |\n")
		b.WriteString("|---|---|---|---|---|---|---|\n")
		for _, row := range report.Rounding {
			fmt.Fprintf(&b, "| %s (%s) | %s | %s | %s | %s | %s | %s |\n",
				row.ThaiName, row.Unit, row.Input, row.Per100,
				row.PerServing, row.PerServingRounded,
				row.PerReference, row.PerReferenceRounded)
		}
		b.WriteString("\n")
	}

	if len(report.RDI) > 0 {
		b.WriteString("## %RDI\n\n")
		b.WriteString("| Nutrient | Label serving | Reference |\n")
		b.WriteString("|---|---|---|\n")
		for _, row := range report.RDI {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", row.ThaiName, pctCell(row.LabelPercent), pctCell(row.ReferencePercent))
		}
		b.WriteString("\n")
	}

	if len(report.Notes) > 0 {
		b.WriteString("## Notes\n\n")
		for _, note := range report.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString("\n")
	}

	if report.LLM != nil && report.LLM.Enabled && report.LLM.SummaryMD != "" {
		b.WriteString("## Plain-Language Summary\n\n")
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Pre-screening against the nutrition labeling notification; not legal advice. Confirm with the current regulation text before printing labels.\n")
	}

	return b.String()
}

// RenderSummary prints a short result overview to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	passed := 0
	for _, c := range report.Claims {
		if c.Pass {
			passed++
		}
	}
	fmt.Printf("%s: %d/%d claims eligible, %d disclaimers\n",
		report.Product, passed, len(report.Claims), len(report.Disclaimers))
	for _, c := range report.Claims {
		mark := "x"
		if c.Pass {
			mark = "ok"
		}
		fmt.Printf("  [%s] %s (%s)\n", mark, c.ClaimText, c.NutrientLabel)
	}
	for _, d := range report.Disclaimers {
		fmt.Printf("  [!] %s\n", d.Message)
	}
}

func pctCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return trimFloat(*v) + "%"
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
