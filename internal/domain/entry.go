package domain

// Segment is one of the two coarse phases of a training day.
type Segment string

const (
	SegmentWarmUp  Segment = "Warm Up"
	SegmentWorkOut Segment = "Work Out"
)

var (
	warmUpCircuits  = []string{"A", "B", "C"}
	workOutCircuits = []string{"D", "E", "F", "G", "H", "I", "J", "K", "L"}
)

// CircuitOptions returns the circuit letters valid for a segment.
func CircuitOptions(seg Segment) []string {
	if seg == SegmentWarmUp {
		return warmUpCircuits
	}
	return workOutCircuits
}

// ClampCircuit forces a circuit letter into the set valid for the segment.
// Invalid or stale values fall back to the first valid option. Stored values
// are never trusted: every mutation path re-clamps.
func ClampCircuit(circuit string, seg Segment) string {
	options := CircuitOptions(seg)
	for _, opt := range options {
		if circuit == opt {
			return circuit
		}
	}
	return options[0]
}

// SegmentForCircuit re-derives the segment from a circuit letter (Warm Up iff
// A-C). Display/matching fallback only; it must never overwrite a stored
// segment.
func SegmentForCircuit(circuit string) Segment {
	for _, opt := range warmUpCircuits {
		if circuit == opt {
			return SegmentWarmUp
		}
	}
	return SegmentWorkOut
}

// Variable names a prescribed quantity a progression rule can act on.
type Variable string

const (
	VarWeight Variable = "weight"
	VarSpeed  Variable = "speed"
	VarTime   Variable = "time"
	VarRest   Variable = "rest"
	VarRIR    Variable = "rir"
	VarSets   Variable = "sets"
	VarReps   Variable = "reps"
)

// Operation is the arithmetic applied by a progression rule.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
)

// ProgressionRule is a declarative instruction to change one variable at the
// listed week indices (1-based within the block). A rule with any of variable,
// operation or quantity missing is inert.
type ProgressionRule struct {
	Variable    Variable  `bson:"variable,omitempty" json:"variable,omitempty"`
	Quantity    string    `bson:"quantity,omitempty" json:"quantity,omitempty"` // numeric-or-blank
	Operation   Operation `bson:"operation,omitempty" json:"operation,omitempty"`
	TargetWeeks []int     `bson:"target_weeks,omitempty" json:"targetWeeks,omitempty"`
}

// Active reports whether the rule has all three required parts.
func (r ProgressionRule) Active() bool {
	return r.Variable != "" && r.Operation != "" && r.Quantity != ""
}

// AppliesTo reports whether the rule targets the given week.
func (r ProgressionRule) AppliesTo(week int) bool {
	for _, w := range r.TargetWeeks {
		if w == week {
			return true
		}
	}
	return false
}

// MaxProgressionRules is the number of independent rule slots per entry.
const MaxProgressionRules = 3

// SeriesSet is one per-set log of what the client actually performed. All
// three fields are free-form numeric-or-blank strings as typed in.
type SeriesSet struct {
	Reps   string `bson:"reps" json:"reps"`
	Weight string `bson:"weight" json:"weight"`
	RIR    string `bson:"rir" json:"rir"`
}

// ExerciseEntry is one prescribed movement within a day, in its canonical
// schema. Scalar prescription fields are numeric-or-blank strings; sets and
// rep bounds are typed because the engine progresses them as integers.
//
// Marshalling this struct is the allow-list: any legacy or UI-only key a
// stored record carried is gone once the record has been normalized into an
// ExerciseEntry and written back.
type ExerciseEntry struct {
	Segment Segment `bson:"segment" json:"segment"`
	Circuit string  `bson:"circuit" json:"circuit"`
	Name    string  `bson:"name" json:"name"`
	Detail  string  `bson:"detail,omitempty" json:"detail,omitempty"`

	Sets    int  `bson:"sets" json:"sets"`
	RepsMin *int `bson:"reps_min,omitempty" json:"repsMin,omitempty"`
	RepsMax *int `bson:"reps_max,omitempty" json:"repsMax,omitempty"`

	Weight      string `bson:"weight,omitempty" json:"weight,omitempty"`
	TimeSeconds string `bson:"time_seconds,omitempty" json:"timeSeconds,omitempty"`
	Speed       string `bson:"speed,omitempty" json:"speed,omitempty"`
	RestMinutes string `bson:"rest_minutes,omitempty" json:"restMinutes,omitempty"`
	RIR         string `bson:"rir,omitempty" json:"rir,omitempty"`

	ExerciseType string `bson:"exercise_type,omitempty" json:"exerciseType,omitempty"`
	VideoURL     string `bson:"video_url,omitempty" json:"videoUrl,omitempty"`

	Rules []ProgressionRule `bson:"progression_rules,omitempty" json:"progressionRules,omitempty"`

	SeriesData []SeriesSet `bson:"series_data,omitempty" json:"seriesData,omitempty"`

	// Derived from SeriesData on every save: best weight/reps, lowest RIR.
	AchievedWeight *float64 `bson:"achieved_weight,omitempty" json:"achievedWeight,omitempty"`
	AchievedReps   *int     `bson:"achieved_reps,omitempty" json:"achievedReps,omitempty"`
	AchievedRIR    *float64 `bson:"achieved_rir,omitempty" json:"achievedRir,omitempty"`

	Comment          string `bson:"comment,omitempty" json:"comment,omitempty"`
	ResponsibleCoach string `bson:"responsible_coach,omitempty" json:"responsibleCoach,omitempty"`
}

// HasName reports whether the entry names an exercise. Nameless rows are
// filler and are never persisted.
func (e *ExerciseEntry) HasName() bool {
	for _, r := range e.Name {
		if r != ' ' && r != '\t' {
			return true
		}
	}
	return false
}

// Clamp re-establishes the circuit/segment invariant in place.
func (e *ExerciseEntry) Clamp() {
	if e.Segment != SegmentWarmUp && e.Segment != SegmentWorkOut {
		e.Segment = SegmentForCircuit(e.Circuit)
	}
	e.Circuit = ClampCircuit(e.Circuit, e.Segment)
}
