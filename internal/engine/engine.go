package engine

import (
	"fmt"
	"strings"

	"github.com/siripat/labelcheck/internal/convert"
	"github.com/siripat/labelcheck/internal/expr"
	"github.com/siripat/labelcheck/internal/model"
	"github.com/siripat/labelcheck/internal/rules"
)

// Engine evaluates submissions against one loaded set of reference tables.
// It is stateless apart from the tables and safe for concurrent use.
type Engine struct {
	tables *rules.Tables
}

// New creates an engine over the given tables.
func New(tables *rules.Tables) *Engine {
	return &Engine{tables: tables}
}

// Result is the raw evaluation outcome before report rendering.
type Result struct {
	Sets        *Sets
	Claims      []model.ClaimResult
	Disclaimers []model.DisclaimerHit
	Notes       []string
}

// Evaluate runs the full claim and disclaimer evaluation for one
// submission.
func (e *Engine) Evaluate(sub *model.Submission) (*Result, error) {
	if err := sub.Validate(); err != nil {
		return nil, fmt.Errorf("invalid submission: %w", err)
	}

	var (
		servingAmount *float64
		listed        bool
	)
	if sub.FoodGroup != "" {
		serving, ok := e.tables.Serving(sub.FoodGroup)
		if !ok {
			return nil, fmt.Errorf("food group %q is not on the reference serving list; leave it empty to evaluate per 100 g/ml", sub.FoodGroup)
		}
		listed = true
		switch {
		case sub.ManualReference != nil:
			servingAmount = sub.ManualReference
		case serving.HasAmount:
			amount := serving.Amount
			servingAmount = &amount
		}
	}

	sets, notes, err := BuildSets(sub, servingAmount, listed, e.tables.RDIs)
	if err != nil {
		return nil, err
	}

	result := &Result{Sets: sets, Notes: notes}
	result.Claims = e.evaluateClaims(sub, sets, result)
	result.Disclaimers = e.evaluateDisclaimers(sets)

	if sub.NoAddedSugar {
		result.Notes = append(result.Notes,
			"no-added-sugar claim: no ingredient may add sugar, including honey, fruit juice concentrate, and malt extract")
		if energy, ok := sets.Reference.Amount(model.NutrientEnergy); ok && convert.Round(energy, model.NutrientEnergy).Value > 40 {
			result.Notes = append(result.Notes,
				"no-added-sugar claim: the product is not low in energy, the claim must not imply low energy")
		}
	}

	return result, nil
}

func (e *Engine) evaluateClaims(sub *model.Submission, sets *Sets, result *Result) []model.ClaimResult {
	ruleSet := e.tables.Unlisted
	if sets.Listed {
		ruleSet = e.tables.Listed
	}

	var claims []model.ClaimResult
	seen := make(map[string]bool, len(ruleSet))
	for _, rule := range ruleSet {
		if rule.State != "" && rule.State != sub.FoodState {
			continue
		}
		key := string(rule.Nutrient) + "|" + rule.ClaimText
		if seen[key] {
			continue
		}
		seen[key] = true

		if _, ok := sets.Raw.Amount(rule.Nutrient); !ok {
			continue
		}

		claims = append(claims, e.evalRule(rule, sub, sets, result))
	}
	return claims
}

// evalRule decides one claim. A panic inside threshold evaluation fails
// this rule only; the rest of the run continues.
func (e *Engine) evalRule(rule rules.ClaimRule, sub *model.Submission, sets *Sets, result *Result) (res model.ClaimResult) {
	res = model.ClaimResult{
		Nutrient:      rule.Nutrient,
		NutrientLabel: rule.NutrientLabel,
		ClaimText:     rule.ClaimText,
		Threshold:     rule.ThresholdText,
	}
	defer func() {
		if r := recover(); r != nil {
			res.Pass = false
			res.Rationale = fmt.Sprintf("evaluation aborted: %v", r)
			result.Notes = append(result.Notes, fmt.Sprintf("%s %q: %s", rule.Nutrient, rule.ClaimText, res.Rationale))
		}
	}()

	if rule.Err != nil {
		res.Rationale = fmt.Sprintf("threshold not evaluable: %v", rule.Err)
		result.Notes = append(result.Notes, fmt.Sprintf("%s %q: %v", rule.Nutrient, rule.ClaimText, rule.Err))
		return res
	}

	var pass bool
	var failure string
	if sets.Listed {
		pass, failure = e.evalListed(rule, sets, &res)
	} else {
		pass, failure = e.evalUnlisted(rule, sub, sets, &res)
	}

	if pass {
		pass, failure = e.evalCoConditions(rule, sub, sets)
	}

	res.Pass = pass
	if pass {
		if res.Rationale == "" {
			res.Rationale = "meets the threshold"
		}
		res.Conditions = e.tables.ConditionTexts(rule.ConditionIDs)
		res.Warnings = e.claimWarnings(rule, sets)
	} else if failure != "" {
		res.Rationale = failure
	}
	return res
}

// evalListed checks a reference-listed claim: every threshold must hold on
// both the effective reference serving and the declared label serving.
func (e *Engine) evalListed(rule rules.ClaimRule, sets *Sets, res *model.ClaimResult) (bool, string) {
	res.Basis = model.BasisTagBoth
	for _, check := range []struct {
		name string
		set  *ValueSet
	}{
		{"reference serving", sets.Reference},
		{"label serving", sets.Label},
	} {
		ok, err := evalOn(rule.Threshold, rule.Nutrient, check.set, sets.Raw)
		if err != nil {
			return false, fmt.Sprintf("threshold not evaluable on the %s: %v", check.name, err)
		}
		if !ok {
			return false, fmt.Sprintf("fails the threshold on the %s (%s)", check.name, check.set.Basis)
		}
		if rule.RDIThreshold != nil {
			ok, err = evalOn(rule.RDIThreshold, rule.Nutrient, check.set, sets.Raw)
			if err != nil {
				return false, fmt.Sprintf("%%RDI threshold not evaluable on the %s: %v", check.name, err)
			}
			if !ok {
				return false, fmt.Sprintf("fails the %%RDI threshold on the %s", check.name)
			}
		}
	}
	res.Rationale = "meets the threshold on both the reference and label servings"
	return true, ""
}

// evalUnlisted checks a per-100 g/ml claim. Protein, fiber, vitamins and
// minerals may instead qualify on the 100 kcal basis; liquid fiber
// qualifies on the 100 kcal basis alone.
func (e *Engine) evalUnlisted(rule rules.ClaimRule, sub *model.Submission, sets *Sets, res *model.ClaimResult) (bool, string) {
	alt := rule.RDIThreshold

	if rule.Nutrient == model.NutrientFiber && sub.FoodState == model.StateLiquid && alt != nil {
		res.Basis = model.BasisTagPer100kcal
		res.Threshold = rule.RDIThresholdText
		if sets.Per100kcal == nil {
			return false, "the 100 kcal basis needs an energy figure greater than zero"
		}
		ok, err := evalOn(alt, rule.Nutrient, sets.Per100kcal, sets.Raw)
		if err != nil {
			return false, fmt.Sprintf("threshold not evaluable per 100 kcal: %v", err)
		}
		if !ok {
			return false, "fails the threshold on the 100 kcal basis"
		}
		res.Rationale = "meets the threshold per 100 kcal"
		return true, ""
	}

	res.Basis = model.BasisTagReferenceOnly
	ok, err := evalOn(rule.Threshold, rule.Nutrient, sets.Reference, sets.Raw)
	if err != nil {
		return false, fmt.Sprintf("threshold not evaluable per %s: %v", sets.Reference.Basis, err)
	}
	if ok {
		res.Rationale = fmt.Sprintf("meets the threshold per %s", sets.Reference.Basis)
		return true, ""
	}

	if alt != nil && sets.Per100kcal != nil {
		altOK, err := evalOn(alt, rule.Nutrient, sets.Per100kcal, sets.Raw)
		if err == nil && altOK {
			res.Basis = model.BasisTagPer100kcal
			res.Threshold = rule.RDIThresholdText
			res.Rationale = "meets the alternative threshold per 100 kcal"
			return true, ""
		}
	}
	return false, fmt.Sprintf("fails the threshold per %s", sets.Reference.Basis)
}

// evalCoConditions applies the structured secondary thresholds, the
// saturated-fat energy cap, and the rounded sugar-free check.
func (e *Engine) evalCoConditions(rule rules.ClaimRule, sub *model.Submission, sets *Sets) (bool, string) {
	for _, sec := range rule.Special {
		for _, set := range []*ValueSet{sets.Reference, sets.Label} {
			amount, ok := set.Amount(sec.Nutrient)
			if !ok {
				return false, fmt.Sprintf("co-condition %s needs a %s figure", sec, sec.Nutrient.ThaiName())
			}
			cmp := expr.Compare{Target: expr.TargetNutrient, Nutrient: sec.Nutrient, Op: sec.Op, Value: sec.Value}
			ok, err := cmp.Eval(expr.Context{Nutrient: rule.Nutrient, Values: set, Raw: sets.Raw})
			if err != nil || !ok {
				return false, fmt.Sprintf("fails the co-condition %s (%s, value %v)", sec, set.Basis, amount)
			}
		}
	}

	if rule.SatFatEnergyMax != nil {
		pct, ok := sets.Per100.SatFatEnergyPercent()
		if !ok {
			return false, "the saturated-fat energy cap needs energy and saturated fat figures"
		}
		if pct > *rule.SatFatEnergyMax {
			return false, fmt.Sprintf("saturated fat contributes %.1f%% of energy, above the %v%% cap", pct, *rule.SatFatEnergyMax)
		}
	}

	// A free-of-sugar claim on analysis figures must also survive the
	// display rounding: the declared value has to read as zero.
	if rule.Nutrient == model.NutrientSugar &&
		strings.Contains(rule.ClaimText, "ปราศจาก") &&
		sub.InputMethod == model.InputAnalysis {
		for _, set := range []*ValueSet{sets.Reference, sets.Label} {
			amount, ok := set.Amount(model.NutrientSugar)
			if !ok {
				return false, "the sugar-free check needs a sugar figure"
			}
			if !convert.Round(amount, model.NutrientSugar).IsZero() {
				return false, fmt.Sprintf("sugar does not round to zero on the %s basis", set.Basis)
			}
		}
	}

	return true, ""
}

// claimWarnings returns the accompaniment warnings for a passing claim.
func (e *Engine) claimWarnings(rule rules.ClaimRule, sets *Sets) []string {
	var warnings []string
	if rule.Nutrient == model.NutrientFiber {
		pct, ok := sets.Reference.RDIPercent(model.NutrientFiber)
		fat, fatOK := sets.Reference.Amount(model.NutrientFat)
		if ok && pct >= 10 && fatOK && fat > 3 && fat <= 13 {
			warnings = append(warnings,
				"a fiber claim at this level must declare the fat content alongside the claim text")
		}
	}
	return warnings
}

func evalOn(x expr.Expr, nutrient model.Nutrient, set *ValueSet, raw *ValueSet) (bool, error) {
	if x == nil {
		return false, fmt.Errorf("no threshold expression")
	}
	return x.Eval(expr.Context{Nutrient: nutrient, Values: set, Raw: raw})
}
