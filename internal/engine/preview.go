package engine

import (
	"sort"

	"motionfit/routine-app/internal/domain"
)

// circuitRank orders circuit letters A→L; anything outside the known set
// sorts last.
func circuitRank(circuit string) int {
	if len(circuit) == 1 && circuit[0] >= 'A' && circuit[0] <= 'L' {
		return int(circuit[0] - 'A')
	}
	return 99
}

// SortByCircuit orders a day's entries by circuit letter, stable within a
// circuit.
func SortByCircuit(entries []domain.ExerciseEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return circuitRank(entries[i].Circuit) < circuitRank(entries[j].Circuit)
	})
}

// Preview materializes the fully-resolved exercise list for every week of a
// block and every day, for read-only display. Nameless rows are skipped and
// days that end up empty are omitted. The result is a value: it carries no
// identity back to storage and previewing never mutates anything.
func Preview(days map[int][]domain.ExerciseEntry, weekCount int) map[int]map[int][]domain.ExerciseEntry {
	out := make(map[int]map[int][]domain.ExerciseEntry, weekCount)
	for week := 1; week <= weekCount; week++ {
		weekDays := make(map[int][]domain.ExerciseEntry)
		for day, entries := range days {
			var resolved []domain.ExerciseEntry
			for _, e := range entries {
				if !e.HasName() {
					continue
				}
				resolved = append(resolved, ResolveEntry(e, week))
			}
			if len(resolved) == 0 {
				continue
			}
			SortByCircuit(resolved)
			weekDays[day] = resolved
		}
		out[week] = weekDays
	}
	return out
}
