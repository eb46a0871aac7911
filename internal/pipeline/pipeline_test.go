package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/siripat/labelcheck/internal/model"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Data.Dir = filepath.Join("testdata", "data")
	cfg.Data.CacheTTL = time.Minute
	return cfg
}

func TestLoadSubmission(t *testing.T) {
	sub, err := LoadSubmission(filepath.Join("testdata", "submission.yaml"))
	if err != nil {
		t.Fatalf("LoadSubmission: %v", err)
	}
	if sub.Product != "ถั่วอบกรอบ" || sub.FoodGroup != "ขนมขบเคี้ยว" {
		t.Errorf("submission = %+v", sub)
	}
	// Scalar readings and mapping readings both parse into amounts.
	if v, ok := sub.Amount(model.NutrientFat); !ok || v != 4 {
		t.Errorf("fat amount = %v, %v; want 4", v, ok)
	}
	if v, ok := sub.Amount(model.NutrientCalcium); !ok || v != 480 {
		t.Errorf("calcium amount = %v, %v; want 480", v, ok)
	}
}

func TestLoadSubmissionMissing(t *testing.T) {
	if _, err := LoadSubmission(filepath.Join("testdata", "nope.yaml")); err == nil {
		t.Error("missing file must be an error")
	}
}

func TestCheckBuildsFullReport(t *testing.T) {
	p := NewPipeline(testConfig())
	sub, err := LoadSubmission(filepath.Join("testdata", "submission.yaml"))
	if err != nil {
		t.Fatalf("LoadSubmission: %v", err)
	}

	report, err := p.Check(context.Background(), sub)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	if report.Product != "ถั่วอบกรอบ" {
		t.Errorf("product = %q", report.Product)
	}
	// The 30 g snack reference doubles to 60 g.
	if !strings.Contains(report.ReferenceBasis, "60") {
		t.Errorf("reference basis = %q, want the doubled 60 g", report.ReferenceBasis)
	}

	var lowFat, freeFat, lowSodium *model.ClaimResult
	for i := range report.Claims {
		switch report.Claims[i].ClaimText {
		case "ไขมันต่ำ":
			lowFat = &report.Claims[i]
		case "ปราศจากไขมัน":
			freeFat = &report.Claims[i]
		case "โซเดียมต่ำ":
			lowSodium = &report.Claims[i]
		}
	}
	if lowFat == nil || !lowFat.Pass {
		t.Errorf("low-fat claim = %+v, want eligible", lowFat)
	}
	if freeFat == nil || freeFat.Pass {
		t.Errorf("fat-free claim = %+v, want not eligible", freeFat)
	}
	// 300 mg per 100 g is 180 mg on the 60 g reference, above the trigger.
	if lowSodium == nil || lowSodium.Pass {
		t.Errorf("low-sodium claim = %+v, want not eligible", lowSodium)
	}

	if len(report.Rounding) == 0 {
		t.Fatal("rounding table missing")
	}
	var calcium *model.RDIRow
	for i := range report.RDI {
		if report.RDI[i].Nutrient == model.NutrientCalcium {
			calcium = &report.RDI[i]
		}
	}
	if calcium == nil || calcium.LabelPercent == nil || *calcium.LabelPercent != 15 {
		t.Fatalf("calcium rdi row = %+v, want label 15%%", calcium)
	}
	// 288 mg on the 60 g reference is a raw 36%, rounded to 35 on the 5-step.
	if calcium.ReferencePercent == nil || *calcium.ReferencePercent != 35 {
		t.Errorf("calcium reference percent = %+v, want 35", calcium.ReferencePercent)
	}

	if report.LLM != nil {
		t.Error("LLM summary should be absent when no provider is configured")
	}
}

func TestMarkdownRendering(t *testing.T) {
	p := NewPipeline(testConfig())
	sub, err := LoadSubmission(filepath.Join("testdata", "submission.yaml"))
	if err != nil {
		t.Fatalf("LoadSubmission: %v", err)
	}
	report, err := p.Check(context.Background(), sub)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	md := NewRenderer(true).Markdown(report)
	for _, want := range []string{
		"# Label Check: ถั่วอบกรอบ",
		"## Claim Eligibility",
		"## Declared Values",
		"## %RDI",
		"not legal advice",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	bare := NewRenderer(false).Markdown(report)
	if strings.Contains(bare, "not legal advice") {
		t.Error("footer rendered despite being disabled")
	}
}
