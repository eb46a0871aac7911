// Package expr parses and evaluates the textual threshold expressions from
// the claim rule tables. Expressions mix comparison operators, %RDI
// references, raw-input references, and Thai/English nutrient names joined
// by หรือ/และ connectives.
package expr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/siripat/labelcheck/internal/model"
)

// Op is a comparison operator. Unicode ≤ and ≥ are normalized to their
// two-character forms during parsing.
type Op string

const (
	OpLT Op = "<"
	OpLE Op = "<="
	OpGT Op = ">"
	OpGE Op = ">="
	OpEQ Op = "="
)

func (o Op) apply(left, right float64) bool {
	switch o {
	case OpLT:
		return left < right
	case OpLE:
		return left <= right
	case OpGT:
		return left > right
	case OpGE:
		return left >= right
	case OpEQ:
		return left == right
	default:
		return false
	}
}

// Target selects which figure the left-hand side of a comparison reads.
type Target int

const (
	// TargetValue is the amount of the rule's own nutrient on the basis
	// under evaluation.
	TargetValue Target = iota
	// TargetRDI is the %RDI of the rule's own nutrient.
	TargetRDI
	// TargetRaw is the unconverted user input for a named nutrient.
	TargetRaw
	// TargetNutrient is the amount of an explicitly named nutrient.
	TargetNutrient
	// TargetNutrientRDI is the %RDI of an explicitly named nutrient.
	TargetNutrientRDI
)

// Values supplies nutrient figures on one serving basis.
type Values interface {
	// Amount returns the nutrient amount on this basis, false when the
	// nutrient was not entered.
	Amount(n model.Nutrient) (float64, bool)
	// RDIPercent returns the raw %RDI on this basis, false when the
	// nutrient was not entered or has no RDI.
	RDIPercent(n model.Nutrient) (float64, bool)
}

// Context is everything a single evaluation needs: the rule's subject
// nutrient, the basis value set, and the raw user inputs for raw_
// references.
type Context struct {
	Nutrient model.Nutrient
	Values   Values
	Raw      Values
}

// Expr is a parsed threshold expression. Eval fails closed: a missing
// figure yields false with an error describing what was absent.
type Expr interface {
	Eval(ctx Context) (bool, error)
}

// Compare is a single comparison node.
type Compare struct {
	Target   Target
	Nutrient model.Nutrient // set for TargetRaw/TargetNutrient/TargetNutrientRDI
	Op       Op
	Value    float64
}

func (c Compare) Eval(ctx Context) (bool, error) {
	var (
		left float64
		ok   bool
	)
	switch c.Target {
	case TargetValue:
		left, ok = ctx.Values.Amount(ctx.Nutrient)
	case TargetRDI:
		left, ok = ctx.Values.RDIPercent(ctx.Nutrient)
	case TargetRaw:
		if ctx.Raw == nil {
			return false, fmt.Errorf("no raw inputs available for raw_%s", c.Nutrient)
		}
		left, ok = ctx.Raw.Amount(c.Nutrient)
	case TargetNutrient:
		left, ok = ctx.Values.Amount(c.Nutrient)
	case TargetNutrientRDI:
		left, ok = ctx.Values.RDIPercent(c.Nutrient)
	}
	if !ok {
		n := c.Nutrient
		if c.Target == TargetValue || c.Target == TargetRDI {
			n = ctx.Nutrient
		}
		return false, fmt.Errorf("no value for %s", n)
	}
	return c.Op.apply(left, c.Value), nil
}

// And passes when every child passes. A child error fails the whole node.
type And struct {
	Exprs []Expr
}

func (a And) Eval(ctx Context) (bool, error) {
	for _, e := range a.Exprs {
		ok, err := e.Eval(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Or passes when any child passes. Child errors are tolerated as long as
// another child passes; if none passes, the first error is reported.
type Or struct {
	Exprs []Expr
}

func (o Or) Eval(ctx Context) (bool, error) {
	var firstErr error
	for _, e := range o.Exprs {
		ok, err := e.Eval(ctx)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			return true, nil
		}
	}
	return false, firstErr
}

var (
	rawRe     = regexp.MustCompile(`^raw_([a-z_]+)\s*(<=|>=|<|>|=)\s*([0-9.]+)$`)
	rdiRe     = regexp.MustCompile(`^(<=|>=|<|>|=)\s*([0-9.]+)\s*%?\s*(?i:rdi)$`)
	bareRe    = regexp.MustCompile(`^(<=|>=|<|>|=)\s*([0-9.]+)$`)
	namedRe   = regexp.MustCompile(`^(.+?)\s*(<=|>=|<|>|=)\s*([0-9.]+)\s*(%?\s*(?i:rdi))?$`)
	normalize = strings.NewReplacer("≤", "<=", "≥", ">=", " ", " ")
)

// Parse turns a threshold expression from the rule tables into an Expr.
// Recognized forms, tried in order:
//
//	raw_sugar<=0.5           raw user input
//	>=15%RDI                 %RDI of the rule's nutrient
//	<=0.5                    amount of the rule's nutrient
//	A หรือ B / A or B         disjunction
//	A และ B / A and B         conjunction
//	ไขมันอิ่มตัว<=1.5          named-nutrient comparison via synonyms
func Parse(text string) (Expr, error) {
	s := strings.TrimSpace(normalize.Replace(text))
	if s == "" {
		return nil, fmt.Errorf("empty threshold expression")
	}

	if m := rawRe.FindStringSubmatch(s); m != nil {
		n, ok := model.ParseNutrient(m[1])
		if !ok {
			return nil, fmt.Errorf("unknown nutrient in %q", s)
		}
		v, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return nil, fmt.Errorf("bad number in %q: %w", s, err)
		}
		return Compare{Target: TargetRaw, Nutrient: n, Op: Op(m[2]), Value: v}, nil
	}

	if m := rdiRe.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad number in %q: %w", s, err)
		}
		return Compare{Target: TargetRDI, Op: Op(m[1]), Value: v}, nil
	}

	if m := bareRe.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad number in %q: %w", s, err)
		}
		return Compare{Target: TargetValue, Op: Op(m[1]), Value: v}, nil
	}

	if parts := splitConnective(s, "หรือ", " or "); len(parts) > 1 {
		exprs, err := parseAll(parts)
		if err != nil {
			return nil, err
		}
		return Or{Exprs: exprs}, nil
	}

	if parts := splitConnective(s, "และ", " and "); len(parts) > 1 {
		exprs, err := parseAll(parts)
		if err != nil {
			return nil, err
		}
		return And{Exprs: exprs}, nil
	}

	if m := namedRe.FindStringSubmatch(s); m != nil {
		n, ok := ResolveNutrient(m[1])
		if !ok {
			return nil, fmt.Errorf("unrecognized nutrient name %q in %q", strings.TrimSpace(m[1]), s)
		}
		v, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return nil, fmt.Errorf("bad number in %q: %w", s, err)
		}
		target := TargetNutrient
		if m[4] != "" {
			target = TargetNutrientRDI
		}
		return Compare{Target: target, Nutrient: n, Op: Op(m[2]), Value: v}, nil
	}

	return nil, fmt.Errorf("cannot parse threshold expression %q", s)
}

// splitConnective splits s on the Thai or English connective, trimming the
// pieces. Returns nil when the connective does not occur.
func splitConnective(s, thai, english string) []string {
	var parts []string
	switch {
	case strings.Contains(s, thai):
		parts = strings.Split(s, thai)
	case strings.Contains(strings.ToLower(s), english):
		parts = splitFold(s, english)
	default:
		return nil
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// splitFold splits s on sep case-insensitively.
func splitFold(s, sep string) []string {
	lower := strings.ToLower(s)
	var parts []string
	for {
		i := strings.Index(lower, sep)
		if i < 0 {
			parts = append(parts, s)
			return parts
		}
		parts = append(parts, s[:i])
		s = s[i+len(sep):]
		lower = lower[i+len(sep):]
	}
}

func parseAll(parts []string) ([]Expr, error) {
	exprs := make([]Expr, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		e, err := Parse(p)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if len(exprs) < 2 {
		return nil, fmt.Errorf("connective expression needs at least two operands")
	}
	return exprs, nil
}
