package service

import (
	"sort"

	tableModel "tably/internal/domains/table/model"
)

// maxCombinationSize caps how many tables may be joined for one party.
// Raising it means generating larger tuples here; nothing else assumes pairs.
const maxCombinationSize = 2

type combination struct {
	tables []tableModel.Table
}

func (c combination) ids() []string {
	ids := make([]string, len(c.tables))
	for i, t := range c.tables {
		ids[i] = t.ID
	}

	return ids
}

func (c combination) totalCapacity() int {
	total := 0
	for _, t := range c.tables {
		total += t.Capacity
	}

	return total
}

func (c combination) totalMinCapacity() int {
	total := 0
	for _, t := range c.tables {
		total += t.MinCapacity
	}

	return total
}

// generateCombinations returns every unordered pair of combinable tables that
// can seat the party, tightest total capacity first. Pairing must be allowed
// by both tables' allow-lists.
func generateCombinations(tables []tableModel.Table, partySize int) []combination {
	var combos []combination

	for i := 0; i < len(tables); i++ {
		for j := i + 1; j < len(tables); j++ {
			a, b := tables[i], tables[j]

			if !a.AllowsPairing(b.ID) || !b.AllowsPairing(a.ID) {
				continue
			}

			combo := combination{tables: []tableModel.Table{a, b}}

			if combo.totalMinCapacity() <= partySize && partySize <= combo.totalCapacity() {
				combos = append(combos, combo)
			}
		}
	}

	sort.SliceStable(combos, func(i, j int) bool {
		return combos[i].totalCapacity() < combos[j].totalCapacity()
	})

	return combos
}
