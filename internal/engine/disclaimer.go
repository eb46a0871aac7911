package engine

import (
	"github.com/siripat/labelcheck/internal/convert"
	"github.com/siripat/labelcheck/internal/model"
)

// evaluateDisclaimers flags nutrients whose rounded declared amount
// strictly exceeds the disclaimer threshold. Listed foods are checked on
// both the label and reference servings; unlisted foods only on the
// per-100 g/ml basis. Sentinel values sit below their cutoff and never
// trigger.
func (e *Engine) evaluateDisclaimers(sets *Sets) []model.DisclaimerHit {
	var hits []model.DisclaimerHit
	for _, rule := range e.tables.Disclaimers {
		if _, ok := sets.Raw.Amount(rule.Nutrient); !ok {
			continue
		}

		var labelValue, refValue *float64
		exceeded := false

		if refAmount, ok := sets.Reference.Amount(rule.Nutrient); ok {
			rounded := convert.Round(refAmount, rule.Nutrient)
			if rounded.Exceeds(rule.Threshold) {
				v := rounded.Value
				refValue = &v
				exceeded = true
			}
		}
		if sets.Listed {
			if labelAmount, ok := sets.Label.Amount(rule.Nutrient); ok {
				rounded := convert.Round(labelAmount, rule.Nutrient)
				if rounded.Exceeds(rule.Threshold) {
					v := rounded.Value
					labelValue = &v
					exceeded = true
				}
			}
		}

		if !exceeded {
			continue
		}
		hits = append(hits, model.DisclaimerHit{
			Nutrient:       rule.Nutrient,
			ThaiName:       rule.Nutrient.ThaiName(),
			LabelValue:     labelValue,
			ReferenceValue: refValue,
			Threshold:      rule.Threshold,
			Unit:           rule.Nutrient.Unit(),
			Message:        rule.Message,
		})
	}
	return hits
}
