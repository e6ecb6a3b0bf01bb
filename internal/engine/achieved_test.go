package engine

import (
	"testing"

	"motionfit/routine-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeries(t *testing.T) {
	series := []domain.SeriesSet{
		{Reps: "8", Weight: "100", RIR: "2"},
		{Reps: "10", Weight: "95", RIR: "1"},
		{Reps: "", Weight: "102,5", RIR: ""},
	}

	weight, reps, rir := ParseSeries(series)
	require.NotNil(t, weight)
	require.NotNil(t, reps)
	require.NotNil(t, rir)
	assert.Equal(t, 102.5, *weight) // best weight across sets
	assert.Equal(t, 10, *reps)      // best reps across sets
	assert.Equal(t, 1.0, *rir)      // lowest RIR across sets
}

func TestParseSeriesAllBlank(t *testing.T) {
	weight, reps, rir := ParseSeries([]domain.SeriesSet{{}, {}})
	assert.Nil(t, weight)
	assert.Nil(t, reps)
	assert.Nil(t, rir)
}

func TestRecomputeAchievedKeepsPreviousWhenNothingLogged(t *testing.T) {
	prev := 100.0
	e := &domain.ExerciseEntry{
		AchievedWeight: &prev,
		SeriesData:     []domain.SeriesSet{{Reps: "8"}},
	}
	RecomputeAchieved(e)
	require.NotNil(t, e.AchievedWeight)
	assert.Equal(t, 100.0, *e.AchievedWeight)
	require.NotNil(t, e.AchievedReps)
	assert.Equal(t, 8, *e.AchievedReps)
}

func TestResizeSeriesPadsWithPrescriptionDefaults(t *testing.T) {
	min := 8
	e := &domain.ExerciseEntry{
		Sets:    3,
		RepsMin: &min,
		Weight:  "100",
		RIR:     "2",
		SeriesData: []domain.SeriesSet{
			{Reps: "7", Weight: "", RIR: "1"},
		},
	}
	ResizeSeries(e)
	require.Len(t, e.SeriesData, 3)
	// Existing set keeps logged values, blanks fill from the prescription.
	assert.Equal(t, "7", e.SeriesData[0].Reps)
	assert.Equal(t, "100", e.SeriesData[0].Weight)
	assert.Equal(t, "1", e.SeriesData[0].RIR)
	// Padded sets carry the prescription defaults.
	assert.Equal(t, domain.SeriesSet{Reps: "8", Weight: "100", RIR: "2"}, e.SeriesData[1])
	assert.Equal(t, domain.SeriesSet{Reps: "8", Weight: "100", RIR: "2"}, e.SeriesData[2])
}

func TestResizeSeriesTruncates(t *testing.T) {
	e := &domain.ExerciseEntry{
		Sets: 2,
		SeriesData: []domain.SeriesSet{
			{Reps: "8"}, {Reps: "8"}, {Reps: "8"},
		},
	}
	ResizeSeries(e)
	assert.Len(t, e.SeriesData, 2)
}

func TestResizeSeriesZeroSetsClears(t *testing.T) {
	e := &domain.ExerciseEntry{
		SeriesData: []domain.SeriesSet{{Reps: "8"}},
	}
	ResizeSeries(e)
	assert.Nil(t, e.SeriesData)
}
