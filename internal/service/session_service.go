package service

import (
	"context"
	"errors"
	"strings"

	"motionfit/routine-app/internal/domain"
	"motionfit/routine-app/internal/engine"
	"motionfit/routine-app/internal/repository"
	"motionfit/routine-app/internal/textnorm"

	"github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrDayOutOfRange = errors.New("day number out of range")
	ErrEntryNameless = errors.New("exercise entry requires a name")
)

// SubmitInput is one logged exercise result: the entry as edited in the
// session view, with its per-set series data filled in.
type SubmitInput struct {
	ClientEmail string
	WeekMonday  string
	Day         int
	Entry       domain.ExerciseEntry
	RPE         *float64
	CoachName   string
}

// SubmitResult reports what a logged result changed: the weight delta against
// the plan and the future week Mondays it was propagated to.
type SubmitResult struct {
	Delta           float64  `json:"delta"`
	PropagatedWeeks []string `json:"propagatedWeeks,omitempty"`
}

// PreviousSession is the same exercise as last performed in an earlier week.
type PreviousSession struct {
	WeekMonday string               `json:"weekMonday"`
	Entry      domain.ExerciseEntry `json:"entry"`
}

// SessionService records what athletes actually performed: whole-day saves,
// single exercise results with forward weight propagation, and lookup of the
// previous session of an exercise.
type SessionService interface {
	SaveDay(ctx context.Context, clientEmail, weekMonday string, day int, entries []domain.ExerciseEntry, rpe *float64, coachName string) error
	SubmitExerciseResult(ctx context.Context, input SubmitInput) (*SubmitResult, error)
	GetPreviousSession(ctx context.Context, clientEmail, weekMonday string, day int, entry domain.ExerciseEntry) (*PreviousSession, error)
}

// sessionService implements the SessionService interface.
type sessionService struct {
	routineRepo repository.RoutineRepository
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(routineRepo repository.RoutineRepository) SessionService {
	return &sessionService{
		routineRepo: routineRepo,
	}
}

// SaveDay persists a whole day's entries, re-deriving achieved metrics and
// re-clamping every entry on the way in. Nameless rows are dropped. Only the
// addressed day is touched.
func (s *sessionService) SaveDay(ctx context.Context, clientEmail, weekMonday string, day int, entries []domain.ExerciseEntry, rpe *float64, coachName string) error {
	if day < 1 || day > domain.MaxDays {
		return ErrDayOutOfRange
	}

	var saved []domain.ExerciseEntry
	for _, e := range entries {
		if !e.HasName() {
			continue
		}
		prepareEntry(&e, coachName)
		saved = append(saved, e)
	}
	engine.SortByCircuit(saved)

	key := domain.WeekKey(clientEmail, weekMonday)
	return s.routineRepo.MergeDay(ctx, key, day, saved, rpe)
}

// SubmitExerciseResult saves one logged exercise and propagates the weight
// delta forward. The delta is the achieved weight minus the week's expected
// weight, where the expectation is the previously achieved weight when one
// was recorded and the planned weight otherwise. Re-submitting the same
// result therefore yields a zero delta and changes nothing downstream.
//
// Propagation adjusts the planned weight of the matching exercise in every
// later week of the client, best effort: a week that fails to update is
// logged and skipped, it never blocks the current save.
func (s *sessionService) SubmitExerciseResult(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	if input.Day < 1 || input.Day > domain.MaxDays {
		return nil, ErrDayOutOfRange
	}
	entry := input.Entry
	if !entry.HasName() {
		return nil, ErrEntryNameless
	}

	// 1. Load the current week and normalize the addressed day
	key := domain.WeekKey(input.ClientEmail, input.WeekMonday)
	doc, err := s.routineRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	dayEntries := engine.DayEntries(doc.DayRaw(input.Day))

	// 2. Derive achieved metrics from the submitted series data
	prepareEntry(&entry, input.CoachName)

	// 3. Delta baseline: previously achieved weight if any, else the plan
	var baseline float64
	stored := findEntry(dayEntries, entry)
	if stored != nil && stored.AchievedWeight != nil {
		baseline = *stored.AchievedWeight
	} else {
		ref := stored
		if ref == nil {
			ref = &entry
		}
		baseline = engine.WeightOrZero(ref.Weight)
	}
	var delta float64
	if entry.AchievedWeight != nil {
		delta = *entry.AchievedWeight - baseline
	}

	// 4. Replace the matched entry (or append a new one) and save the day
	if stored != nil {
		*stored = entry
	} else {
		dayEntries = append(dayEntries, entry)
	}
	engine.SortByCircuit(dayEntries)
	if err := s.routineRepo.MergeDay(ctx, key, input.Day, dayEntries, input.RPE); err != nil {
		return nil, err
	}

	result := &SubmitResult{Delta: delta}
	if delta == 0 {
		return result, nil
	}

	// 5. Propagate the delta to the same exercise in every later week
	result.PropagatedWeeks = s.propagateDelta(ctx, doc, input.Day, entry, delta)
	return result, nil
}

// propagateDelta adds delta to the planned weight of the matching exercise in
// every later week of the same block. Another block's weeks are someone
// else's baseline and are never touched. Weeks predating block IDs fall back
// to every later week of the client. Failures are per week and non-fatal.
func (s *sessionService) propagateDelta(ctx context.Context, current *domain.WeekDocument, day int, entry domain.ExerciseEntry, delta float64) []string {
	var (
		weeks []domain.WeekDocument
		err   error
	)
	if current.BlockID != "" {
		weeks, err = s.routineRepo.QueryByBlock(ctx, current.BlockID)
	} else {
		weeks, err = s.routineRepo.QueryByClient(ctx, current.ClientEmail)
	}
	if err != nil {
		logrus.WithError(err).WithField("client", current.ClientEmail).
			Warn("delta propagation: listing weeks failed")
		return nil
	}

	var propagated []string
	for i := range weeks {
		future := &weeks[i]
		if future.WeekMonday <= current.WeekMonday {
			continue
		}

		futureEntries := engine.DayEntries(future.DayRaw(day))
		target := findEntry(futureEntries, entry)
		if target == nil {
			continue
		}
		target.Weight = engine.AddWeight(target.Weight, delta)

		if err := s.routineRepo.MergeDay(ctx, future.Key, day, futureEntries, nil); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"key": future.Key,
				"day": day,
			}).Warn("delta propagation: week update failed")
			continue
		}
		propagated = append(propagated, future.WeekMonday)
	}
	return propagated
}

// GetPreviousSession finds the most recent earlier week where the same
// exercise appears on the same day. ErrNotFound-shaped nil result when there
// is no earlier session.
func (s *sessionService) GetPreviousSession(ctx context.Context, clientEmail, weekMonday string, day int, entry domain.ExerciseEntry) (*PreviousSession, error) {
	if day < 1 || day > domain.MaxDays {
		return nil, ErrDayOutOfRange
	}
	weeks, err := s.routineRepo.QueryByClient(ctx, clientEmail)
	if err != nil {
		return nil, err
	}

	// Weeks arrive oldest first; walk backwards for the nearest earlier one.
	for i := len(weeks) - 1; i >= 0; i-- {
		w := &weeks[i]
		if w.WeekMonday >= weekMonday {
			continue
		}
		if match := findEntry(engine.DayEntries(w.DayRaw(day)), entry); match != nil {
			return &PreviousSession{WeekMonday: w.WeekMonday, Entry: *match}, nil
		}
	}
	return nil, nil
}

// prepareEntry puts a submitted entry into persistable shape: clamped,
// series resized to the set count, achieved metrics re-derived. Coach
// attribution is set only when the entry actually carries a log or comment,
// and the logged state is read before the resize pads the series from the
// prescription defaults.
func prepareEntry(e *domain.ExerciseEntry, coachName string) {
	logged := e.Comment != "" || len(e.SeriesData) > 0 ||
		e.AchievedWeight != nil || e.AchievedReps != nil || e.AchievedRIR != nil
	e.Clamp()
	engine.ResizeSeries(e)
	engine.RecomputeAchieved(e)
	if coachName != "" && logged {
		e.ResponsibleCoach = strings.TrimSpace(coachName)
	}
}

// findEntry locates the stored entry for the same exercise: same folded name,
// circuit letter and segment.
func findEntry(entries []domain.ExerciseEntry, want domain.ExerciseEntry) *domain.ExerciseEntry {
	for i := range entries {
		e := &entries[i]
		if textnorm.Fold(e.Name) == textnorm.Fold(want.Name) &&
			strings.EqualFold(e.Circuit, want.Circuit) &&
			e.Segment == want.Segment {
			return e
		}
	}
	return nil
}
