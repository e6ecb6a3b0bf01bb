package engine

import (
	"strconv"

	"motionfit/routine-app/internal/domain"
)

// ParseSeries derives the session's achieved metrics from the per-set logs:
// best weight, best reps, lowest RIR. A nil result means no usable value was
// logged for that metric.
func ParseSeries(series []domain.SeriesSet) (weight *float64, reps *int, rir *float64) {
	for _, s := range series {
		if w, ok := parseNumber(s.Weight); ok {
			if weight == nil || w > *weight {
				v := w
				weight = &v
			}
		}
		if r, ok := parseInt(s.Reps); ok {
			if reps == nil || r > *reps {
				v := r
				reps = &v
			}
		}
		if rr, ok := parseNumber(s.RIR); ok {
			if rir == nil || rr < *rir {
				v := rr
				rir = &v
			}
		}
	}
	return weight, reps, rir
}

// RecomputeAchieved refreshes the entry's derived achieved fields from its
// series data. Metrics with no logged value keep their previous state.
func RecomputeAchieved(e *domain.ExerciseEntry) {
	weight, reps, rir := ParseSeries(e.SeriesData)
	if weight != nil {
		e.AchievedWeight = weight
	}
	if reps != nil {
		e.AchievedReps = reps
	}
	if rir != nil {
		e.AchievedRIR = rir
	}
}

// ResizeSeries forces len(SeriesData) == Sets: shorter is padded with the
// entry's prescription defaults, longer is truncated. Blank fields on
// existing sets are also filled from the defaults.
func ResizeSeries(e *domain.ExerciseEntry) {
	repsDef, weightDef, rirDef := seriesDefaults(e)
	if e.Sets <= 0 {
		e.SeriesData = nil
		return
	}
	for i := range e.SeriesData {
		s := &e.SeriesData[i]
		if s.Reps == "" {
			s.Reps = repsDef
		}
		if s.Weight == "" {
			s.Weight = weightDef
		}
		if s.RIR == "" {
			s.RIR = rirDef
		}
	}
	for len(e.SeriesData) < e.Sets {
		e.SeriesData = append(e.SeriesData, domain.SeriesSet{Reps: repsDef, Weight: weightDef, RIR: rirDef})
	}
	if len(e.SeriesData) > e.Sets {
		e.SeriesData = e.SeriesData[:e.Sets]
	}
}

func seriesDefaults(e *domain.ExerciseEntry) (reps, weight, rir string) {
	if e.RepsMin != nil {
		reps = strconv.Itoa(*e.RepsMin)
	}
	weight = numValue(e.Weight)
	rir = numValue(e.RIR)
	return reps, weight, rir
}
