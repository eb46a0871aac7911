package rules

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/siripat/labelcheck/internal/expr"
	"github.com/siripat/labelcheck/internal/model"
	"github.com/siripat/labelcheck/internal/rdi"
)

// table reads a CSV file into header-keyed rows. The first record is the
// header; column order in the files is not significant.
type table struct {
	path    string
	columns map[string]int
	rows    [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		rows = append(rows, rec)
	}
	return &table{path: path, columns: columns, rows: rows}, nil
}

func (t *table) get(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// LoadClaims reads a claim table. Threshold parse failures do not fail the
// load; they are recorded on the rule for per-rule reporting.
func LoadClaims(path string) ([]ClaimRule, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	rules := make([]ClaimRule, 0, len(t.rows))
	for i, row := range t.rows {
		key := t.get(row, "nutrient")
		nutrient, ok := model.ParseNutrient(key)
		if !ok {
			return nil, fmt.Errorf("%s row %d: unknown nutrient %q", path, i+2, key)
		}

		rule := ClaimRule{
			Nutrient:         nutrient,
			NutrientLabel:    t.get(row, "label"),
			ClaimText:        t.get(row, "claim"),
			ThresholdText:    t.get(row, "threshold"),
			RDIThresholdText: t.get(row, "rdi_threshold"),
		}
		if rule.NutrientLabel == "" {
			rule.NutrientLabel = nutrient.ThaiName()
		}
		if rule.ClaimText == "" {
			return nil, fmt.Errorf("%s row %d: empty claim text", path, i+2)
		}

		switch state := t.get(row, "state"); state {
		case "":
		case string(model.StateSolid):
			rule.State = model.StateSolid
		case string(model.StateLiquid):
			rule.State = model.StateLiquid
		default:
			return nil, fmt.Errorf("%s row %d: bad state %q", path, i+2, state)
		}

		if rule.ThresholdText != "" {
			if rule.Threshold, err = expr.Parse(rule.ThresholdText); err != nil {
				rule.Err = fmt.Errorf("threshold %q: %w", rule.ThresholdText, err)
			}
		}
		if rule.RDIThresholdText != "" && rule.Err == nil {
			if rule.RDIThreshold, err = expr.Parse(rule.RDIThresholdText); err != nil {
				rule.Err = fmt.Errorf("rdi threshold %q: %w", rule.RDIThresholdText, err)
			}
		}

		if special := t.get(row, "special"); special != "" && rule.Err == nil {
			for _, part := range strings.Split(special, ";") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				sec, err := parseSecondary(part)
				if err != nil {
					rule.Err = fmt.Errorf("co-condition %q: %w", part, err)
					break
				}
				rule.Special = append(rule.Special, sec)
			}
		}

		if max := t.get(row, "satfat_energy_max"); max != "" {
			v, err := strconv.ParseFloat(max, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: satfat_energy_max %q: %w", path, i+2, max, err)
			}
			rule.SatFatEnergyMax = &v
		}

		if conds := t.get(row, "conditions"); conds != "" {
			for _, id := range strings.Split(conds, "|") {
				if id = strings.TrimSpace(id); id != "" {
					rule.ConditionIDs = append(rule.ConditionIDs, id)
				}
			}
		}

		rules = append(rules, rule)
	}
	return rules, nil
}

// LoadDisclaimers reads the disclaimer trigger table.
func LoadDisclaimers(path string) ([]DisclaimerRule, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	rules := make([]DisclaimerRule, 0, len(t.rows))
	for i, row := range t.rows {
		key := t.get(row, "nutrient")
		nutrient, ok := model.ParseNutrient(key)
		if !ok {
			return nil, fmt.Errorf("%s row %d: unknown nutrient %q", path, i+2, key)
		}
		threshold, err := strconv.ParseFloat(t.get(row, "threshold"), 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: threshold: %w", path, i+2, err)
		}
		rules = append(rules, DisclaimerRule{
			Nutrient:  nutrient,
			Threshold: threshold,
			Message:   t.get(row, "message"),
		})
	}
	return rules, nil
}

// LoadServings reads the reference serving list. An empty amount marks a
// listed food group without a published serving.
func LoadServings(path string) (map[string]ReferenceServing, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	servings := make(map[string]ReferenceServing, len(t.rows))
	for i, row := range t.rows {
		group := t.get(row, "food_group")
		if group == "" {
			return nil, fmt.Errorf("%s row %d: empty food group", path, i+2)
		}
		s := ReferenceServing{FoodGroup: group, Unit: t.get(row, "unit")}
		if amount := t.get(row, "amount"); amount != "" {
			v, err := strconv.ParseFloat(amount, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: amount %q: %w", path, i+2, amount, err)
			}
			s.Amount = v
			s.HasAmount = true
		}
		servings[group] = s
	}
	return servings, nil
}

// LoadRDIs reads the Thai RDI table.
func LoadRDIs(path string) (rdi.Table, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	table := make(rdi.Table, len(t.rows))
	for i, row := range t.rows {
		key := t.get(row, "nutrient")
		nutrient, ok := model.ParseNutrient(key)
		if !ok {
			return nil, fmt.Errorf("%s row %d: unknown nutrient %q", path, i+2, key)
		}
		v, err := strconv.ParseFloat(t.get(row, "rdi"), 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: rdi: %w", path, i+2, err)
		}
		table[nutrient] = v
	}
	return table, nil
}

// LoadConditions reads the condition note lookup.
func LoadConditions(path string) (map[string]string, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}

	conditions := make(map[string]string, len(t.rows))
	for i, row := range t.rows {
		id := t.get(row, "id")
		text := t.get(row, "text")
		if id == "" || text == "" {
			return nil, fmt.Errorf("%s row %d: condition needs id and text", path, i+2)
		}
		conditions[id] = text
	}
	return conditions, nil
}
