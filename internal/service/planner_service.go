package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"motionfit/routine-app/internal/domain"
	"motionfit/routine-app/internal/engine"
	"motionfit/routine-app/internal/repository"
	"motionfit/routine-app/internal/textnorm"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrInvalidBlock  = errors.New("block requires a client email, at least one week and at least one day")
	ErrWeekNotFound  = errors.New("week routine not found")
	ErrBlockNotFound = errors.New("training block not found")
)

// BlockInput is a training block as authored: one set of days with baseline
// prescriptions and progression rules, to be materialized over WeekCount
// weeks starting at the Monday of StartDate.
type BlockInput struct {
	TrainerEmail string
	ClientName   string
	ClientEmail  string
	StartDate    time.Time
	WeekCount    int
	Days         map[int][]domain.ExerciseEntry
}

// BlockResult reports what a committed block wrote.
type BlockResult struct {
	BlockID     string   `json:"blockId"`
	WeekMondays []string `json:"weekMondays"`
}

// WeekSummary is one stored week as listed for browsing or load-as-base.
type WeekSummary struct {
	Key        string `json:"key"`
	WeekMonday string `json:"weekMonday"`
	ClientName string `json:"clientName"`
	BlockID    string `json:"blockId,omitempty"`
}

// LoadedWeek is a stored week with every day normalized to the canonical
// entry schema.
type LoadedWeek struct {
	Key         string                        `json:"key"`
	ClientName  string                        `json:"clientName"`
	ClientEmail string                        `json:"clientEmail"`
	WeekMonday  string                        `json:"weekMonday"`
	BlockID     string                        `json:"blockId,omitempty"`
	Days        map[int][]domain.ExerciseEntry `json:"days"`
	DayRPE      map[int]float64               `json:"dayRpe,omitempty"`
}

// BlockPosition locates a week inside its block: week Index of Total, both
// derived from Monday-date order, never from a stored counter.
type BlockPosition struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

// PlannerService authors training blocks: previews the progressed weeks,
// commits them as one document per week, and lists stored weeks so an old
// one can be loaded as the base of a new block.
type PlannerService interface {
	PreviewBlock(days map[int][]domain.ExerciseEntry, weekCount int) (map[int]map[int][]domain.ExerciseEntry, error)
	CreateBlock(ctx context.Context, input BlockInput) (*BlockResult, error)
	ListWeeks(ctx context.Context, clientEmail string) ([]WeekSummary, error)
	LoadWeek(ctx context.Context, clientEmail, weekMonday string) (*LoadedWeek, error)
	GetBlockPosition(ctx context.Context, clientEmail, weekMonday string) (*BlockPosition, error)
}

// plannerService implements the PlannerService interface.
type plannerService struct {
	routineRepo repository.RoutineRepository
}

// NewPlannerService creates a new instance of plannerService.
func NewPlannerService(routineRepo repository.RoutineRepository) PlannerService {
	return &plannerService{
		routineRepo: routineRepo,
	}
}

// PreviewBlock materializes the fully-progressed entry lists for every week
// and day without touching storage.
func (s *plannerService) PreviewBlock(days map[int][]domain.ExerciseEntry, weekCount int) (map[int]map[int][]domain.ExerciseEntry, error) {
	if weekCount < 1 || len(days) == 0 {
		return nil, ErrInvalidBlock
	}
	return engine.Preview(days, weekCount), nil
}

// CreateBlock commits a block as one week document per non-empty week. Every
// week's values are resolved from the authored baseline, so week 1 is the
// baseline itself and later weeks carry the cumulative rule applications.
// Writing stops at the first storage failure; weeks already written stay.
func (s *plannerService) CreateBlock(ctx context.Context, input BlockInput) (*BlockResult, error) {
	// 1. Validate input
	if input.ClientEmail == "" || input.WeekCount < 1 || len(input.Days) == 0 {
		return nil, ErrInvalidBlock
	}
	clientEmail := textnorm.Email(input.ClientEmail)
	monday := domain.MondayOf(input.StartDate)

	// 2. One block ID ties all written weeks together
	blockID := uuid.NewString()

	result := &BlockResult{BlockID: blockID}
	for week := 1; week <= input.WeekCount; week++ {
		// 3. Resolve every day from the authored baseline
		days := make(map[string]any)
		for day, entries := range input.Days {
			if day < 1 || day > domain.MaxDays {
				return nil, fmt.Errorf("day %d out of range", day)
			}
			var resolved []domain.ExerciseEntry
			for _, e := range entries {
				if !e.HasName() {
					continue
				}
				resolved = append(resolved, engine.ResolveEntry(e, week))
			}
			if len(resolved) == 0 {
				continue
			}
			engine.SortByCircuit(resolved)
			days[domain.DayKey(day)] = resolved
		}
		if len(days) == 0 {
			continue
		}

		weekMonday := monday.AddDate(0, 0, 7*(week-1)).Format(domain.DateLayout)
		doc := &domain.WeekDocument{
			Key:          domain.WeekKey(clientEmail, weekMonday),
			ClientName:   input.ClientName,
			ClientEmail:  clientEmail,
			WeekMonday:   weekMonday,
			TrainerEmail: textnorm.Email(input.TrainerEmail),
			BlockID:      blockID,
			Days:         days,
		}

		// 4. An existing document at this key gets overwritten wholesale
		if existing, err := s.routineRepo.Get(ctx, doc.Key); err == nil {
			logrus.WithFields(logrus.Fields{
				"key":      doc.Key,
				"oldBlock": existing.BlockID,
				"newBlock": blockID,
			}).Warn("overwriting existing week routine")
		}

		if err := s.routineRepo.Put(ctx, doc); err != nil {
			return nil, fmt.Errorf("write week %s: %w", weekMonday, err)
		}
		result.WeekMondays = append(result.WeekMondays, weekMonday)
	}

	return result, nil
}

// ListWeeks returns every stored week for a client, oldest first.
func (s *plannerService) ListWeeks(ctx context.Context, clientEmail string) ([]WeekSummary, error) {
	if clientEmail == "" {
		return nil, errors.New("client email is required")
	}
	docs, err := s.routineRepo.QueryByClient(ctx, clientEmail)
	if err != nil {
		return nil, err
	}
	summaries := make([]WeekSummary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, WeekSummary{
			Key:        d.Key,
			WeekMonday: d.WeekMonday,
			ClientName: d.ClientName,
			BlockID:    d.BlockID,
		})
	}
	return summaries, nil
}

// LoadWeek fetches one stored week and normalizes every day to the canonical
// schema, so it can seed the authoring form of a new block.
func (s *plannerService) LoadWeek(ctx context.Context, clientEmail, weekMonday string) (*LoadedWeek, error) {
	doc, err := s.routineRepo.Get(ctx, domain.WeekKey(clientEmail, weekMonday))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}

	loaded := &LoadedWeek{
		Key:         doc.Key,
		ClientName:  doc.ClientName,
		ClientEmail: doc.ClientEmail,
		WeekMonday:  doc.WeekMonday,
		BlockID:     doc.BlockID,
		Days:        make(map[int][]domain.ExerciseEntry),
	}
	for day := 1; day <= domain.MaxDays; day++ {
		entries := engine.DayEntries(doc.DayRaw(day))
		if len(entries) == 0 {
			continue
		}
		engine.SortByCircuit(entries)
		loaded.Days[day] = entries

		if raw, ok := doc.Days[domain.RPEKey(day)]; ok {
			if rpe, ok := toFloat(raw); ok {
				if loaded.DayRPE == nil {
					loaded.DayRPE = make(map[int]float64)
				}
				loaded.DayRPE[day] = rpe
			}
		}
	}
	return loaded, nil
}

// GetBlockPosition reports where a week sits inside its block ("week 2 of 4").
// Weeks without a block ID count as a block of one.
func (s *plannerService) GetBlockPosition(ctx context.Context, clientEmail, weekMonday string) (*BlockPosition, error) {
	doc, err := s.routineRepo.Get(ctx, domain.WeekKey(clientEmail, weekMonday))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	if doc.BlockID == "" {
		return &BlockPosition{Index: 1, Total: 1}, nil
	}

	siblings, err := s.routineRepo.QueryByBlock(ctx, doc.BlockID)
	if err != nil {
		return nil, err
	}
	if len(siblings) == 0 {
		return nil, ErrBlockNotFound
	}

	pos := &BlockPosition{Total: len(siblings)}
	for i, d := range siblings {
		if d.Key == doc.Key {
			pos.Index = i + 1
			break
		}
	}
	return pos, nil
}

// toFloat coerces the numeric types the driver can decode an RPE into.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
