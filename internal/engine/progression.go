package engine

import (
	"motionfit/routine-app/internal/domain"
)

// applyOp performs one arithmetic step. Division by zero leaves the value
// unchanged: explicit policy, not an error.
func applyOp(v, q float64, op domain.Operation) float64 {
	switch op {
	case domain.OpAdd:
		return v + q
	case domain.OpSubtract:
		return v - q
	case domain.OpMultiply:
		return v * q
	case domain.OpDivide:
		if q == 0 {
			return v
		}
		return v / q
	}
	return v
}

// firings returns, in application order, every (rule, week) step that fires
// when evaluating a variable up to upToWeek. Progression is simulated week by
// week starting at week 2 (week 1 is always the authored baseline), rule
// slots in order within each week, so a rule targeting weeks {2,4} fires
// twice when evaluating week 4.
func firings(v domain.Variable, rules []domain.ProgressionRule, upToWeek int) []domain.ProgressionRule {
	var steps []domain.ProgressionRule
	for week := 2; week <= upToWeek; week++ {
		for _, r := range rules {
			if !r.Active() || r.Variable != v || !r.AppliesTo(week) {
				continue
			}
			steps = append(steps, r)
		}
	}
	return steps
}

// EvaluateScalar progresses a numeric-or-blank scalar up to the given week.
// Blank or non-numeric base values are returned unchanged: a rule never
// invents a value out of blank state. Each step is rounded to the nearest
// integer, except RIR which keeps one decimal.
func EvaluateScalar(base string, v domain.Variable, rules []domain.ProgressionRule, upToWeek int) string {
	val, ok := parseNumber(base)
	if !ok {
		return base
	}
	steps := firings(v, rules, upToWeek)
	if len(steps) == 0 {
		return base
	}
	for _, r := range steps {
		q, ok := parseNumber(r.Quantity)
		if !ok {
			continue
		}
		val = applyOp(val, q, r.Operation)
		if v == domain.VarRIR {
			val = roundTenth(val)
		} else {
			val = float64(roundInt(val))
		}
	}
	return formatNumber(val)
}

// EvaluateSets progresses the integer set count.
func EvaluateSets(base int, rules []domain.ProgressionRule, upToWeek int) int {
	val := float64(base)
	for _, r := range firings(domain.VarSets, rules, upToWeek) {
		q, ok := parseNumber(r.Quantity)
		if !ok {
			continue
		}
		val = float64(roundInt(applyOp(val, q, r.Operation)))
	}
	n := roundInt(val)
	if n < 0 {
		n = 0
	}
	return n
}

// EvaluateRepRange progresses both rep bounds with the same steps. A blank
// bound stays blank.
func EvaluateRepRange(min, max *int, rules []domain.ProgressionRule, upToWeek int) (*int, *int) {
	minV, maxV := intPtrCopy(min), intPtrCopy(max)
	for _, r := range firings(domain.VarReps, rules, upToWeek) {
		q, ok := parseNumber(r.Quantity)
		if !ok {
			continue
		}
		if minV != nil {
			n := roundInt(applyOp(float64(*minV), q, r.Operation))
			minV = &n
		}
		if maxV != nil {
			n := roundInt(applyOp(float64(*maxV), q, r.Operation))
			maxV = &n
		}
	}
	return minV, maxV
}

// ResolveEntry returns a copy of the entry with every progression-relevant
// field advanced to the given week. The input is not mutated; committed and
// previewed values are always computed from the authored baseline so that
// separate invocations never double-apply.
func ResolveEntry(e domain.ExerciseEntry, upToWeek int) domain.ExerciseEntry {
	out := e
	out.Weight = EvaluateScalar(e.Weight, domain.VarWeight, e.Rules, upToWeek)
	out.Speed = EvaluateScalar(e.Speed, domain.VarSpeed, e.Rules, upToWeek)
	out.TimeSeconds = EvaluateScalar(e.TimeSeconds, domain.VarTime, e.Rules, upToWeek)
	out.RestMinutes = EvaluateScalar(e.RestMinutes, domain.VarRest, e.Rules, upToWeek)
	out.RIR = EvaluateScalar(e.RIR, domain.VarRIR, e.Rules, upToWeek)
	out.Sets = EvaluateSets(e.Sets, e.Rules, upToWeek)
	out.RepsMin, out.RepsMax = EvaluateRepRange(e.RepsMin, e.RepsMax, e.Rules, upToWeek)
	out.Clamp()
	return out
}

func intPtrCopy(p *int) *int {
	if p == nil {
		return nil
	}
	n := *p
	return &n
}
