package service

import (
	"context"
	"testing"
	"time"

	"motionfit/routine-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedBlock writes a three week block for ana@example.com starting Monday
// 2026-01-05: Sentadilla at 100/110/120 (add 10 in weeks 2 and 3) and Press
// Banca at a flat 80.
func seedBlock(t *testing.T, repo *testingRoutineRepo) {
	t.Helper()
	_, err := NewPlannerService(repo).CreateBlock(context.Background(), BlockInput{
		TrainerEmail: "coach@example.com",
		ClientName:   "Ana",
		ClientEmail:  "ana@example.com",
		StartDate:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		WeekCount:    3,
		Days:         baselineDays(),
	})
	require.NoError(t, err)
}

func loggedSquat(weight string) domain.ExerciseEntry {
	return domain.ExerciseEntry{
		Segment: domain.SegmentWorkOut,
		Circuit: "D",
		Name:    "Sentadilla",
		Sets:    3,
		Weight:  "100",
		SeriesData: []domain.SeriesSet{
			{Reps: "8", Weight: weight, RIR: "2"},
			{Reps: "8", Weight: weight, RIR: "2"},
			{Reps: "7", Weight: weight, RIR: "1"},
		},
	}
}

func TestSubmitExerciseResultPropagatesDelta(t *testing.T) {
	repo := newTestRepo(t)
	seedBlock(t, repo)
	svc := NewSessionService(repo)
	planner := NewPlannerService(repo)

	result, err := svc.SubmitExerciseResult(context.Background(), SubmitInput{
		ClientEmail: "ana@example.com",
		WeekMonday:  "2026-01-05",
		Day:         1,
		Entry:       loggedSquat("105"),
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, result.Delta)
	assert.Equal(t, []string{"2026-01-12", "2026-01-19"}, result.PropagatedWeeks)

	// Current week records the achieved weight.
	week1, err := planner.LoadWeek(context.Background(), "ana@example.com", "2026-01-05")
	require.NoError(t, err)
	squat := week1.Days[1][0]
	require.NotNil(t, squat.AchievedWeight)
	assert.Equal(t, 105.0, *squat.AchievedWeight)
	require.NotNil(t, squat.AchievedRIR)
	assert.Equal(t, 1.0, *squat.AchievedRIR)

	// Future weeks shift by the delta; week 1 plan is untouched.
	week2, err := planner.LoadWeek(context.Background(), "ana@example.com", "2026-01-12")
	require.NoError(t, err)
	assert.Equal(t, "115", week2.Days[1][0].Weight)

	week3, err := planner.LoadWeek(context.Background(), "ana@example.com", "2026-01-19")
	require.NoError(t, err)
	assert.Equal(t, "125", week3.Days[1][0].Weight)

	// The other exercise is never touched.
	assert.Equal(t, "80", week2.Days[1][1].Weight)
}

func TestSubmitExerciseResultResubmitIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	seedBlock(t, repo)
	svc := NewSessionService(repo)
	planner := NewPlannerService(repo)

	_, err := svc.SubmitExerciseResult(context.Background(), SubmitInput{
		ClientEmail: "ana@example.com",
		WeekMonday:  "2026-01-05",
		Day:         1,
		Entry:       loggedSquat("105"),
	})
	require.NoError(t, err)

	// Same result again: delta is measured against the recorded achieved
	// weight, so nothing moves a second time.
	result, err := svc.SubmitExerciseResult(context.Background(), SubmitInput{
		ClientEmail: "ana@example.com",
		WeekMonday:  "2026-01-05",
		Day:         1,
		Entry:       loggedSquat("105"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Delta)
	assert.Empty(t, result.PropagatedWeeks)

	week2, err := planner.LoadWeek(context.Background(), "ana@example.com", "2026-01-12")
	require.NoError(t, err)
	assert.Equal(t, "115", week2.Days[1][0].Weight)
}

func TestSubmitExerciseResultSecondImprovementCompounds(t *testing.T) {
	repo := newTestRepo(t)
	seedBlock(t, repo)
	svc := NewSessionService(repo)
	planner := NewPlannerService(repo)

	_, err := svc.SubmitExerciseResult(context.Background(), SubmitInput{
		ClientEmail: "ana@example.com",
		WeekMonday:  "2026-01-05",
		Day:         1,
		Entry:       loggedSquat("105"),
	})
	require.NoError(t, err)

	// A better second attempt moves future weeks by the new difference only.
	result, err := svc.SubmitExerciseResult(context.Background(), SubmitInput{
		ClientEmail: "ana@example.com",
		WeekMonday:  "2026-01-05",
		Day:         1,
		Entry:       loggedSquat("107.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, result.Delta)

	week2, err := planner.LoadWeek(context.Background(), "ana@example.com", "2026-01-12")
	require.NoError(t, err)
	assert.Equal(t, "117.5", week2.Days[1][0].Weight)
}

func TestSubmitExerciseResultMidBlockOnlyMovesLaterWeeks(t *testing.T) {
	repo := newTestRepo(t)
	seedBlock(t, repo)
	svc := NewSessionService(repo)
	planner := NewPlannerService(repo)

	entry := loggedSquat("120")
	entry.Weight = "110"
	result, err := svc.SubmitExerciseResult(context.Background(), SubmitInput{
		ClientEmail: "ana@example.com",
		WeekMonday:  "2026-01-12",
		Day:         1,
		Entry:       entry,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, result.Delta)
	assert.Equal(t, []string{"2026-01-19"}, result.PropagatedWeeks)

	// The earlier week keeps its plan.
	week1, err := planner.LoadWeek(context.Background(), "ana@example.com", "2026-01-05")
	require.NoError(t, err)
	assert.Equal(t, "100", week1.Days[1][0].Weight)

	week3, err := planner.LoadWeek(context.Background(), "ana@example.com", "2026-01-19")
	require.NoError(t, err)
	assert.Equal(t, "130", week3.Days[1][0].Weight)
}

func TestSubmitExerciseResultStopsAtBlockBoundary(t *testing.T) {
	repo := newTestRepo(t)
	seedBlock(t, repo)
	planner := NewPlannerService(repo)

	// A follow-up block re-baselines the squat lower.
	_, err := planner.CreateBlock(context.Background(), BlockInput{
		TrainerEmail: "coach@example.com",
		ClientName:   "Ana",
		ClientEmail:  "ana@example.com",
		StartDate:    time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		WeekCount:    2,
		Days: map[int][]domain.ExerciseEntry{
			1: {{Segment: domain.SegmentWorkOut, Circuit: "D", Name: "Sentadilla", Sets: 3, Weight: "90"}},
		},
	})
	require.NoError(t, err)

	svc := NewSessionService(repo)
	result, err := svc.SubmitExerciseResult(context.Background(), SubmitInput{
		ClientEmail: "ana@example.com",
		WeekMonday:  "2026-01-05",
		Day:         1,
		Entry:       loggedSquat("110"),
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, result.Delta)
	assert.Equal(t, []string{"2026-01-12", "2026-01-19"}, result.PropagatedWeeks)

	// The next block keeps its own baseline in every week.
	for _, monday := range []string{"2026-02-02", "2026-02-09"} {
		week, err := planner.LoadWeek(context.Background(), "ana@example.com", monday)
		require.NoError(t, err)
		assert.Equal(t, "90", week.Days[1][0].Weight)
	}
}

func TestSubmitExerciseResultLegacyWeeksWithoutBlockID(t *testing.T) {
	repo := newTestRepo(t)
	for _, monday := range []string{"2026-01-05", "2026-01-12"} {
		require.NoError(t, repo.Put(context.Background(), &domain.WeekDocument{
			ClientName:  "Ana",
			ClientEmail: "ana@example.com",
			WeekMonday:  monday,
			Days: map[string]any{
				"1": []domain.ExerciseEntry{{
					Segment: domain.SegmentWorkOut,
					Circuit: "D",
					Name:    "Sentadilla",
					Sets:    3,
					Weight:  "100",
				}},
			},
		}))
	}
	svc := NewSessionService(repo)

	// Documents written before blocks existed still propagate forward.
	result, err := svc.SubmitExerciseResult(context.Background(), SubmitInput{
		ClientEmail: "ana@example.com",
		WeekMonday:  "2026-01-05",
		Day:         1,
		Entry:       loggedSquat("105"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-12"}, result.PropagatedWeeks)
}

func TestSubmitExerciseResultSameNameDifferentCircuit(t *testing.T) {
	repo := newTestRepo(t)
	planner := NewPlannerService(repo)

	// The same exercise programmed twice in one day, in circuits D and F.
	_, err := planner.CreateBlock(context.Background(), BlockInput{
		TrainerEmail: "coach@example.com",
		ClientName:   "Ana",
		ClientEmail:  "ana@example.com",
		StartDate:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		WeekCount:    2,
		Days: map[int][]domain.ExerciseEntry{
			1: {
				{Segment: domain.SegmentWorkOut, Circuit: "D", Name: "Sentadilla", Sets: 3, Weight: "100"},
				{Segment: domain.SegmentWorkOut, Circuit: "F", Name: "Sentadilla", Sets: 3, Weight: "100"},
			},
		},
	})
	require.NoError(t, err)

	svc := NewSessionService(repo)
	result, err := svc.SubmitExerciseResult(context.Background(), SubmitInput{
		ClientEmail: "ana@example.com",
		WeekMonday:  "2026-01-05",
		Day:         1,
		Entry:       loggedSquat("110"), // circuit D
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, result.Delta)

	// Only the circuit D occurrence shifts next week.
	week2, err := planner.LoadWeek(context.Background(), "ana@example.com", "2026-01-12")
	require.NoError(t, err)
	require.Len(t, week2.Days[1], 2)
	assert.Equal(t, "110", week2.Days[1][0].Weight)
	assert.Equal(t, "100", week2.Days[1][1].Weight)
}

func TestSubmitExerciseResultWeekMissing(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewSessionService(repo)

	_, err := svc.SubmitExerciseResult(context.Background(), SubmitInput{
		ClientEmail: "ana@example.com",
		WeekMonday:  "2026-01-05",
		Day:         1,
		Entry:       loggedSquat("105"),
	})
	assert.ErrorIs(t, err, ErrWeekNotFound)
}

func TestSaveDay(t *testing.T) {
	repo := newTestRepo(t)
	seedBlock(t, repo)
	svc := NewSessionService(repo)
	planner := NewPlannerService(repo)

	rpe := 7.5
	entries := []domain.ExerciseEntry{
		loggedSquat("102"),
		{Circuit: "E"}, // filler row typed into the grid
	}
	err := svc.SaveDay(context.Background(), "ana@example.com", "2026-01-05", 1, entries, &rpe, "Laura")
	require.NoError(t, err)

	week, err := planner.LoadWeek(context.Background(), "ana@example.com", "2026-01-05")
	require.NoError(t, err)
	require.Len(t, week.Days[1], 1, "nameless rows are dropped")

	saved := week.Days[1][0]
	assert.Equal(t, "Laura", saved.ResponsibleCoach)
	require.NotNil(t, saved.AchievedWeight)
	assert.Equal(t, 102.0, *saved.AchievedWeight)
	assert.Equal(t, 7.5, week.DayRPE[1])
}

func TestSaveDayAttributesCoachOnlyToLoggedEntries(t *testing.T) {
	repo := newTestRepo(t)
	seedBlock(t, repo)
	svc := NewSessionService(repo)
	planner := NewPlannerService(repo)

	// One logged entry, one row saved exactly as planned.
	entries := []domain.ExerciseEntry{
		loggedSquat("102"),
		{Segment: domain.SegmentWorkOut, Circuit: "E", Name: "Press Banca", Sets: 3, Weight: "80"},
	}
	err := svc.SaveDay(context.Background(), "ana@example.com", "2026-01-05", 1, entries, nil, "Laura")
	require.NoError(t, err)

	week, err := planner.LoadWeek(context.Background(), "ana@example.com", "2026-01-05")
	require.NoError(t, err)
	require.Len(t, week.Days[1], 2)
	assert.Equal(t, "Laura", week.Days[1][0].ResponsibleCoach)
	assert.Empty(t, week.Days[1][1].ResponsibleCoach, "untouched row keeps no attribution")
}

func TestGetPreviousSession(t *testing.T) {
	repo := newTestRepo(t)
	seedBlock(t, repo)
	svc := NewSessionService(repo)

	_, err := svc.SubmitExerciseResult(context.Background(), SubmitInput{
		ClientEmail: "ana@example.com",
		WeekMonday:  "2026-01-05",
		Day:         1,
		Entry:       loggedSquat("105"),
	})
	require.NoError(t, err)

	prev, err := svc.GetPreviousSession(context.Background(), "ana@example.com", "2026-01-12", 1, domain.ExerciseEntry{
		Segment: domain.SegmentWorkOut,
		Circuit: "D",
		Name:    "sentadilla", // matching ignores case
	})
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, "2026-01-05", prev.WeekMonday)
	require.NotNil(t, prev.Entry.AchievedWeight)
	assert.Equal(t, 105.0, *prev.Entry.AchievedWeight)

	// No session before week 1.
	prev, err = svc.GetPreviousSession(context.Background(), "ana@example.com", "2026-01-05", 1, loggedSquat("105"))
	require.NoError(t, err)
	assert.Nil(t, prev)
}
