package service

import (
	tableModel "tably/internal/domains/table/model"
)

// planAssignment picks tables for a party from the free set: the single table
// with capacity closest to the party size wins, ties broken by the higher
// priority score; only when no single table fits does the tightest valid
// combination get used. A nil result means the party cannot be seated.
func planAssignment(free []tableModel.Table, partySize int) []string {
	if best := bestSingleTable(free, partySize); best != nil {
		return []string{best.ID}
	}

	combos := generateCombinations(free, partySize)
	if len(combos) > 0 {
		return combos[0].ids()
	}

	return nil
}

func bestSingleTable(free []tableModel.Table, partySize int) *tableModel.Table {
	var best *tableModel.Table

	for i := range free {
		t := &free[i]
		if !t.FitsParty(partySize) {
			continue
		}

		if best == nil || better(t, best, partySize) {
			best = t
		}
	}

	return best
}

func better(candidate, current *tableModel.Table, partySize int) bool {
	candidateWaste := abs(candidate.Capacity - partySize)
	currentWaste := abs(current.Capacity - partySize)

	if candidateWaste != currentWaste {
		return candidateWaste < currentWaste
	}

	return candidate.PriorityScore > current.PriorityScore
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}
