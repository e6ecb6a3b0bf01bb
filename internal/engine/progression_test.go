package engine

import (
	"testing"

	"motionfit/routine-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weightRule(op domain.Operation, quantity string, weeks ...int) domain.ProgressionRule {
	return domain.ProgressionRule{
		Variable:    domain.VarWeight,
		Operation:   op,
		Quantity:    quantity,
		TargetWeeks: weeks,
	}
}

func TestEvaluateScalarWeekOneIsBaseline(t *testing.T) {
	rules := []domain.ProgressionRule{weightRule(domain.OpAdd, "5", 1, 2)}
	// Week 1 is never progressed, even when a rule targets it.
	assert.Equal(t, "100", EvaluateScalar("100", domain.VarWeight, rules, 1))
}

func TestEvaluateScalarAddAtTargetWeek(t *testing.T) {
	rules := []domain.ProgressionRule{weightRule(domain.OpAdd, "5", 2)}
	assert.Equal(t, "105", EvaluateScalar("100", domain.VarWeight, rules, 2))
	// Weeks past the target keep the applied value.
	assert.Equal(t, "105", EvaluateScalar("100", domain.VarWeight, rules, 4))
}

func TestEvaluateScalarIsCumulative(t *testing.T) {
	rules := []domain.ProgressionRule{weightRule(domain.OpAdd, "5", 2, 3)}
	got := make([]string, 0, 4)
	for week := 1; week <= 4; week++ {
		got = append(got, EvaluateScalar("100", domain.VarWeight, rules, week))
	}
	assert.Equal(t, []string{"100", "105", "110", "110"}, got)
}

func TestEvaluateScalarRoundsEachStep(t *testing.T) {
	rules := []domain.ProgressionRule{weightRule(domain.OpAdd, "2.5", 2)}
	assert.Equal(t, "103", EvaluateScalar("100", domain.VarWeight, rules, 2))
}

func TestEvaluateScalarDivideByZeroIsNoOp(t *testing.T) {
	rules := []domain.ProgressionRule{weightRule(domain.OpDivide, "0", 2)}
	assert.Equal(t, "100", EvaluateScalar("100", domain.VarWeight, rules, 2))
}

func TestEvaluateScalarBlankBaseStaysBlank(t *testing.T) {
	rules := []domain.ProgressionRule{weightRule(domain.OpAdd, "5", 2)}
	assert.Equal(t, "", EvaluateScalar("", domain.VarWeight, rules, 4))
	assert.Equal(t, "bodyweight", EvaluateScalar("bodyweight", domain.VarWeight, rules, 4))
}

func TestEvaluateScalarRIRKeepsOneDecimal(t *testing.T) {
	rules := []domain.ProgressionRule{{
		Variable:    domain.VarRIR,
		Operation:   domain.OpSubtract,
		Quantity:    "0.25",
		TargetWeeks: []int{2, 3},
	}}
	assert.Equal(t, "1.8", EvaluateScalar("2", domain.VarRIR, rules, 2))
	assert.Equal(t, "1.6", EvaluateScalar("2", domain.VarRIR, rules, 3))
}

func TestEvaluateSetsClampsAtZero(t *testing.T) {
	rules := []domain.ProgressionRule{{
		Variable:    domain.VarSets,
		Operation:   domain.OpSubtract,
		Quantity:    "5",
		TargetWeeks: []int{2},
	}}
	assert.Equal(t, 0, EvaluateSets(3, rules, 2))
}

func TestEvaluateSetsMultiply(t *testing.T) {
	rules := []domain.ProgressionRule{{
		Variable:    domain.VarSets,
		Operation:   domain.OpMultiply,
		Quantity:    "2",
		TargetWeeks: []int{2},
	}}
	assert.Equal(t, 6, EvaluateSets(3, rules, 2))
}

func TestEvaluateRepRange(t *testing.T) {
	rules := []domain.ProgressionRule{{
		Variable:    domain.VarReps,
		Operation:   domain.OpAdd,
		Quantity:    "1",
		TargetWeeks: []int{2},
	}}
	min, max := 8, 12
	gotMin, gotMax := EvaluateRepRange(&min, &max, rules, 2)
	require.NotNil(t, gotMin)
	require.NotNil(t, gotMax)
	assert.Equal(t, 9, *gotMin)
	assert.Equal(t, 13, *gotMax)
	// Original bounds untouched.
	assert.Equal(t, 8, min)
	assert.Equal(t, 12, max)
}

func TestEvaluateRepRangeBlankBoundStaysBlank(t *testing.T) {
	rules := []domain.ProgressionRule{{
		Variable:    domain.VarReps,
		Operation:   domain.OpAdd,
		Quantity:    "2",
		TargetWeeks: []int{2},
	}}
	min := 10
	gotMin, gotMax := EvaluateRepRange(&min, nil, rules, 2)
	require.NotNil(t, gotMin)
	assert.Equal(t, 12, *gotMin)
	assert.Nil(t, gotMax)
}

func TestInertRuleNeverFires(t *testing.T) {
	rules := []domain.ProgressionRule{
		{Variable: domain.VarWeight, Operation: domain.OpAdd, TargetWeeks: []int{2}},  // no quantity
		{Variable: domain.VarWeight, Quantity: "5", TargetWeeks: []int{2}},            // no operation
		{Operation: domain.OpAdd, Quantity: "5", TargetWeeks: []int{2}},               // no variable
	}
	assert.Equal(t, "100", EvaluateScalar("100", domain.VarWeight, rules, 4))
}

func TestResolveEntryDoesNotMutateInput(t *testing.T) {
	min := 8
	entry := domain.ExerciseEntry{
		Segment: domain.SegmentWorkOut,
		Circuit: "D",
		Name:    "Sentadilla",
		Sets:    3,
		RepsMin: &min,
		Weight:  "100",
		Rules: []domain.ProgressionRule{
			weightRule(domain.OpAdd, "10", 2, 3),
		},
	}

	resolved := ResolveEntry(entry, 3)
	assert.Equal(t, "120", resolved.Weight)
	assert.Equal(t, "100", entry.Weight)

	// Resolving again from the baseline gives the same answer: no
	// double-application across invocations.
	again := ResolveEntry(entry, 3)
	assert.Equal(t, resolved.Weight, again.Weight)
}

func TestResolveEntryClampsCircuit(t *testing.T) {
	entry := domain.ExerciseEntry{
		Segment: domain.SegmentWarmUp,
		Circuit: "F", // invalid for Warm Up
		Name:    "Movilidad",
	}
	resolved := ResolveEntry(entry, 1)
	assert.Equal(t, "A", resolved.Circuit)
	assert.Equal(t, domain.SegmentWarmUp, resolved.Segment)
}
