// Package engine implements the progression and propagation core: schema
// normalization of stored exercise entries, progression rule evaluation,
// block previews and achieved-metric derivation. Everything here is pure;
// store access and HTTP binding live elsewhere.
package engine

import (
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"motionfit/routine-app/internal/domain"
	"motionfit/routine-app/internal/textnorm"
)

// NormalizeEntry maps one stored or submitted exercise record, in any of the
// historical shapes, onto the canonical schema. Returns nil when the record
// has no exercise name. Coercion failures degrade to blank values; this
// function never fails.
//
// Normalizing an already-canonical record is a no-op.
func NormalizeEntry(raw map[string]any) *domain.ExerciseEntry {
	name := firstString(raw, "name", "Name", "ejercicio", "Ejercicio")
	if strings.TrimSpace(name) == "" {
		return nil
	}

	e := &domain.ExerciseEntry{
		Name:    strings.TrimSpace(name),
		Circuit: strings.ToUpper(firstString(raw, "circuit", "Circuito", "circuito")),
		Detail:  firstString(raw, "detail", "Detalle", "detalle"),

		Weight:      numField(raw, "weight", "Peso", "peso"),
		TimeSeconds: numField(raw, "time_seconds", "Tiempo", "tiempo"),
		Speed:       numField(raw, "speed", "Velocidad", "velocidad"),
		RestMinutes: numField(raw, "rest_minutes", "Descanso", "descanso"),
		RIR:         numField(raw, "rir", "RIR"),

		ExerciseType: firstString(raw, "exercise_type", "Tipo", "tipo"),
		VideoURL:     firstString(raw, "video_url", "Video", "video"),

		Comment:          firstString(raw, "comment", "comentario"),
		ResponsibleCoach: firstString(raw, "responsible_coach", "coach_responsable"),
	}

	e.Segment = normalizeSegment(firstString(raw, "segment", "Sección", "seccion", "bloque"), e.Circuit)

	if sets, ok := parseInt(firstString(raw, "sets", "Series", "series")); ok && sets > 0 {
		e.Sets = sets
	}

	e.RepsMin, e.RepsMax = normalizeReps(raw)
	e.Rules = normalizeRules(raw)
	e.SeriesData = normalizeSeries(raw["series_data"])

	e.AchievedWeight = floatField(raw, "achieved_weight", "peso_alcanzado")
	e.AchievedReps = intField(raw, "achieved_reps", "reps_alcanzadas")
	e.AchievedRIR = floatField(raw, "achieved_rir", "rir_alcanzado")

	e.Clamp()
	ResizeSeries(e)
	return e
}

// DayEntries flattens a stored day value into an ordered list of canonical
// entries. Historical documents hold several shapes for the same day:
//
//	[ {...}, {...} ]
//	{ "0": {...}, "1": {...} }
//	{ "ejercicios": <either of the above> }
//	[ { "ejercicios": ... } ]
//
// Nameless records are dropped.
func DayEntries(raw any) []domain.ExerciseEntry {
	var out []domain.ExerciseEntry
	for _, item := range dayItems(raw) {
		if m, ok := asMap(item); ok {
			if e := NormalizeEntry(m); e != nil {
				out = append(out, *e)
			}
			continue
		}
		// Bare string entries exist in the oldest documents: just a name.
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			e := NormalizeEntry(map[string]any{"name": s})
			if e != nil {
				out = append(out, *e)
			}
		}
	}
	return out
}

func dayItems(raw any) []any {
	if raw == nil {
		return nil
	}
	if list, ok := asSlice(raw); ok {
		if len(list) == 1 {
			if m, ok := asMap(list[0]); ok {
				if wrapped, found := lookupAny(m, "ejercicios", "entries"); found {
					return dayItems(wrapped)
				}
			}
		}
		return list
	}
	if m, ok := asMap(raw); ok {
		if wrapped, found := lookupAny(m, "ejercicios", "entries"); found {
			return dayItems(wrapped)
		}
		// Index-keyed map: order by numeric key.
		type kv struct {
			idx int
			val any
		}
		var pairs []kv
		for k, v := range m {
			if idx, err := strconv.Atoi(k); err == nil {
				pairs = append(pairs, kv{idx, v})
			}
		}
		if len(pairs) > 0 {
			sort.Slice(pairs, func(i, j int) bool { return pairs[i].idx < pairs[j].idx })
			items := make([]any, 0, len(pairs))
			for _, p := range pairs {
				items = append(items, p.val)
			}
			return items
		}
	}
	return nil
}

func normalizeSegment(raw, circuit string) domain.Segment {
	switch textnorm.Fold(raw) {
	case "warm up", "warmup":
		return domain.SegmentWarmUp
	case "work out", "workout":
		return domain.SegmentWorkOut
	}
	return domain.SegmentForCircuit(circuit)
}

// normalizeReps recovers the rep bounds. Order: canonical snake_case fields,
// then legacy capitalized fields, then a combined "min-max" string, then a
// single unbounded value.
func normalizeReps(raw map[string]any) (*int, *int) {
	if hasAny(raw, "reps_min", "reps_max") {
		return intField(raw, "reps_min"), intField(raw, "reps_max")
	}
	if hasAny(raw, "RepsMin", "RepsMax") {
		return intField(raw, "RepsMin"), intField(raw, "RepsMax")
	}
	combined := strings.TrimSpace(firstString(raw, "repeticiones", "reps"))
	if combined == "" {
		return nil, nil
	}
	if i := strings.Index(combined, "-"); i >= 0 {
		return intPtrFromString(combined[:i]), intPtrFromString(combined[i+1:])
	}
	return intPtrFromString(combined), nil
}

func normalizeRules(raw map[string]any) []domain.ProgressionRule {
	var rules []domain.ProgressionRule

	if list, ok := asSlice(raw["progression_rules"]); ok {
		for _, item := range list {
			m, ok := asMap(item)
			if !ok {
				continue
			}
			r := domain.ProgressionRule{
				Variable:    canonVariable(firstString(m, "variable")),
				Operation:   canonOperation(firstString(m, "operation")),
				Quantity:    numValue(firstString(m, "quantity")),
				TargetWeeks: parseWeeks(m["target_weeks"]),
			}
			if r.Active() {
				rules = append(rules, r)
			}
		}
	} else {
		// Legacy slot columns Variable_1..3 / Cantidad_p / Operacion_p / Semanas_p.
		for p := 1; p <= domain.MaxProgressionRules; p++ {
			suffix := "_" + strconv.Itoa(p)
			r := domain.ProgressionRule{
				Variable:    canonVariable(firstString(raw, "Variable"+suffix)),
				Operation:   canonOperation(firstString(raw, "Operacion"+suffix)),
				Quantity:    numValue(firstString(raw, "Cantidad"+suffix)),
				TargetWeeks: parseWeeks(raw["Semanas"+suffix]),
			}
			if r.Active() {
				rules = append(rules, r)
			}
		}
	}

	if len(rules) > domain.MaxProgressionRules {
		rules = rules[:domain.MaxProgressionRules]
	}
	return rules
}

func canonVariable(raw string) domain.Variable {
	switch textnorm.Fold(raw) {
	case "weight", "peso":
		return domain.VarWeight
	case "speed", "velocidad":
		return domain.VarSpeed
	case "time", "tiempo":
		return domain.VarTime
	case "rest", "descanso":
		return domain.VarRest
	case "rir":
		return domain.VarRIR
	case "sets", "series":
		return domain.VarSets
	case "reps", "repeticiones":
		return domain.VarReps
	}
	return ""
}

func canonOperation(raw string) domain.Operation {
	switch textnorm.Fold(raw) {
	case "add", "suma":
		return domain.OpAdd
	case "subtract", "resta":
		return domain.OpSubtract
	case "multiply", "multiplicacion":
		return domain.OpMultiply
	case "divide", "division":
		return domain.OpDivide
	}
	return ""
}

func parseWeeks(v any) []int {
	var weeks []int
	appendWeek := func(w int) {
		if w > 0 {
			weeks = append(weeks, w)
		}
	}
	if list, ok := asSlice(v); ok {
		for _, item := range list {
			if w, ok := parseInt(stringOf(item)); ok {
				appendWeek(w)
			}
		}
		return weeks
	}
	for _, part := range strings.Split(stringOf(v), ",") {
		if w, ok := parseInt(part); ok {
			appendWeek(w)
		}
	}
	return weeks
}

// normalizeSeries rebuilds series_data with exactly the three known keys.
// Malformed items and unknown keys are dropped silently.
func normalizeSeries(v any) []domain.SeriesSet {
	list, ok := asSlice(v)
	if !ok {
		return nil
	}
	var out []domain.SeriesSet
	for _, item := range list {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		out = append(out, domain.SeriesSet{
			Reps:   strings.TrimSpace(firstString(m, "reps")),
			Weight: strings.TrimSpace(firstString(m, "weight", "peso")),
			RIR:    strings.TrimSpace(firstString(m, "rir")),
		})
	}
	return out
}

// --- raw value access -------------------------------------------------------

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case primitive.M:
		return m, true
	}
	return nil, false
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case primitive.A:
		return s, true
	}
	return nil, false
}

// stringOf renders any scalar the driver may hand back as a string.
func stringOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.Itoa(int(t))
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return formatNumber(t)
	case float32:
		return formatNumber(float64(t))
	}
	return ""
}

func lookupAny(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func hasAny(m map[string]any, keys ...string) bool {
	_, ok := lookupAny(m, keys...)
	return ok
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s := stringOf(v); strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}

// numField reads the first populated alias and canonicalizes it as a
// numeric-or-blank string. Unparseable values coerce to blank.
func numField(m map[string]any, keys ...string) string {
	return numValue(firstString(m, keys...))
}

func numValue(raw string) string {
	f, ok := parseNumber(raw)
	if !ok {
		return ""
	}
	return formatNumber(f)
}

func intField(m map[string]any, keys ...string) *int {
	return intPtrFromString(firstString(m, keys...))
}

func intPtrFromString(s string) *int {
	n, ok := parseInt(s)
	if !ok {
		return nil
	}
	return &n
}

func floatField(m map[string]any, keys ...string) *float64 {
	f, ok := parseNumber(firstString(m, keys...))
	if !ok {
		return nil
	}
	return &f
}
