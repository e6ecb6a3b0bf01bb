package engine

import (
	"testing"

	"motionfit/routine-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeEntryCanonicalRecord(t *testing.T) {
	raw := map[string]any{
		"segment":   "Work Out",
		"circuit":   "D",
		"name":      "Sentadilla",
		"sets":      3,
		"reps_min":  8,
		"reps_max":  12,
		"weight":    "100",
		"rir":       "2",
		"progression_rules": []any{
			map[string]any{
				"variable":     "weight",
				"operation":    "add",
				"quantity":     "5",
				"target_weeks": []any{2, 3},
			},
		},
	}

	e := NormalizeEntry(raw)
	require.NotNil(t, e)
	assert.Equal(t, "Sentadilla", e.Name)
	assert.Equal(t, domain.SegmentWorkOut, e.Segment)
	assert.Equal(t, "D", e.Circuit)
	assert.Equal(t, 3, e.Sets)
	require.NotNil(t, e.RepsMin)
	require.NotNil(t, e.RepsMax)
	assert.Equal(t, 8, *e.RepsMin)
	assert.Equal(t, 12, *e.RepsMax)
	assert.Equal(t, "100", e.Weight)
	assert.Equal(t, "2", e.RIR)
	require.Len(t, e.Rules, 1)
	assert.Equal(t, domain.VarWeight, e.Rules[0].Variable)
	assert.Equal(t, domain.OpAdd, e.Rules[0].Operation)
	assert.Equal(t, "5", e.Rules[0].Quantity)
	assert.Equal(t, []int{2, 3}, e.Rules[0].TargetWeeks)
}

func TestNormalizeEntryLegacySpanishRecord(t *testing.T) {
	raw := map[string]any{
		"Ejercicio":     "Press Banca",
		"Circuito":      "d",
		"Sección":       "Work Out",
		"Peso":          "80kg",
		"Series":        "3",
		"repeticiones":  "8-12",
		"Descanso":      "2,5",
		"Variable_1":    "peso",
		"Operacion_1":   "suma",
		"Cantidad_1":    "5",
		"Semanas_1":     "2,3",
		"coach_responsable": "Laura",
	}

	e := NormalizeEntry(raw)
	require.NotNil(t, e)
	assert.Equal(t, "Press Banca", e.Name)
	assert.Equal(t, "D", e.Circuit)
	assert.Equal(t, domain.SegmentWorkOut, e.Segment)
	assert.Equal(t, "80", e.Weight)
	assert.Equal(t, "2.5", e.RestMinutes)
	assert.Equal(t, 3, e.Sets)
	require.NotNil(t, e.RepsMin)
	require.NotNil(t, e.RepsMax)
	assert.Equal(t, 8, *e.RepsMin)
	assert.Equal(t, 12, *e.RepsMax)
	assert.Equal(t, "Laura", e.ResponsibleCoach)

	require.Len(t, e.Rules, 1)
	assert.Equal(t, domain.VarWeight, e.Rules[0].Variable)
	assert.Equal(t, domain.OpAdd, e.Rules[0].Operation)
	assert.Equal(t, []int{2, 3}, e.Rules[0].TargetWeeks)
}

func TestNormalizeEntryNamelessIsNil(t *testing.T) {
	assert.Nil(t, NormalizeEntry(map[string]any{"name": "   "}))
	assert.Nil(t, NormalizeEntry(map[string]any{"weight": "100"}))
}

func TestNormalizeEntrySegmentFallsBackToCircuit(t *testing.T) {
	e := NormalizeEntry(map[string]any{"name": "Movilidad", "circuit": "B"})
	require.NotNil(t, e)
	assert.Equal(t, domain.SegmentWarmUp, e.Segment)

	e = NormalizeEntry(map[string]any{"name": "Sentadilla", "circuit": "E"})
	require.NotNil(t, e)
	assert.Equal(t, domain.SegmentWorkOut, e.Segment)
}

func TestNormalizeEntryUnparseableNumbersCoerceToBlank(t *testing.T) {
	e := NormalizeEntry(map[string]any{"name": "Sentadilla", "weight": "heavy", "sets": "muchas"})
	require.NotNil(t, e)
	assert.Equal(t, "", e.Weight)
	assert.Equal(t, 0, e.Sets)
}

func TestNormalizeEntryIsIdempotent(t *testing.T) {
	raw := map[string]any{
		"Ejercicio":    "Peso Muerto",
		"Circuito":     "e",
		"Peso":         "120,5kg",
		"Series":       "4",
		"repeticiones": "5",
		"Variable_1":   "peso",
		"Operacion_1":  "suma",
		"Cantidad_1":   "2.5",
		"Semanas_1":    "2",
	}
	first := NormalizeEntry(raw)
	require.NotNil(t, first)

	// Re-normalize the canonical form as a document reader would see it.
	second := NormalizeEntry(map[string]any{
		"segment":  string(first.Segment),
		"circuit":  first.Circuit,
		"name":     first.Name,
		"sets":     first.Sets,
		"reps_min": *first.RepsMin,
		"weight":   first.Weight,
		"progression_rules": []any{
			map[string]any{
				"variable":     string(first.Rules[0].Variable),
				"operation":    string(first.Rules[0].Operation),
				"quantity":     first.Rules[0].Quantity,
				"target_weeks": []any{2},
			},
		},
	})
	require.NotNil(t, second)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Circuit, second.Circuit)
	assert.Equal(t, first.Weight, second.Weight)
	assert.Equal(t, first.Sets, second.Sets)
	assert.Equal(t, first.Rules, second.Rules)
}

func TestNormalizeEntryBSONTypes(t *testing.T) {
	raw := primitive.M{
		"name":    "Remo",
		"circuit": "F",
		"sets":    int32(3),
		"weight":  float64(60),
		"progression_rules": primitive.A{
			primitive.M{
				"variable":     "weight",
				"operation":    "add",
				"quantity":     int64(5),
				"target_weeks": primitive.A{int32(2)},
			},
		},
	}
	e := NormalizeEntry(raw)
	require.NotNil(t, e)
	assert.Equal(t, 3, e.Sets)
	assert.Equal(t, "60", e.Weight)
	require.Len(t, e.Rules, 1)
	assert.Equal(t, "5", e.Rules[0].Quantity)
	assert.Equal(t, []int{2}, e.Rules[0].TargetWeeks)
}

func TestDayEntriesShapes(t *testing.T) {
	squat := map[string]any{"name": "Sentadilla", "circuit": "D"}
	press := map[string]any{"name": "Press Militar", "circuit": "E"}

	t.Run("plain list", func(t *testing.T) {
		entries := DayEntries([]any{squat, press})
		require.Len(t, entries, 2)
		assert.Equal(t, "Sentadilla", entries[0].Name)
	})

	t.Run("index-keyed map preserves numeric order", func(t *testing.T) {
		entries := DayEntries(map[string]any{"1": press, "0": squat})
		require.Len(t, entries, 2)
		assert.Equal(t, "Sentadilla", entries[0].Name)
		assert.Equal(t, "Press Militar", entries[1].Name)
	})

	t.Run("wrapped in ejercicios", func(t *testing.T) {
		entries := DayEntries(map[string]any{"ejercicios": []any{squat}})
		require.Len(t, entries, 1)
	})

	t.Run("single-element wrapped list", func(t *testing.T) {
		entries := DayEntries([]any{map[string]any{"ejercicios": []any{squat, press}}})
		require.Len(t, entries, 2)
	})

	t.Run("bare string entry", func(t *testing.T) {
		entries := DayEntries([]any{"Sentadilla"})
		require.Len(t, entries, 1)
		assert.Equal(t, "Sentadilla", entries[0].Name)
	})

	t.Run("nameless entries dropped", func(t *testing.T) {
		entries := DayEntries([]any{map[string]any{"weight": "100"}, squat})
		require.Len(t, entries, 1)
	})

	t.Run("nil and unknown shapes", func(t *testing.T) {
		assert.Empty(t, DayEntries(nil))
		assert.Empty(t, DayEntries(42))
	})
}

func TestNormalizeEntrySeriesData(t *testing.T) {
	raw := map[string]any{
		"name":    "Sentadilla",
		"circuit": "D",
		"sets":    2,
		"weight":  "100",
		"series_data": []any{
			map[string]any{"reps": "8", "peso": "100", "rir": "2"},
			map[string]any{"reps": "7", "weight": "100", "rir": "1"},
		},
	}
	e := NormalizeEntry(raw)
	require.NotNil(t, e)
	require.Len(t, e.SeriesData, 2)
	assert.Equal(t, "100", e.SeriesData[0].Weight)
	assert.Equal(t, "7", e.SeriesData[1].Reps)
}
