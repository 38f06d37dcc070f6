package model

import (
	"github.com/lib/pq"

	"tably/shared/model"
)

const (
	TableName  = "restaurant_tables"
	EntityName = "table"

	FieldID            = "id"
	FieldRestaurantID  = "restaurant_id"
	FieldName          = "name"
	FieldCapacity      = "capacity"
	FieldMinCapacity   = "min_capacity"
	FieldMaxCapacity   = "max_capacity"
	FieldIsActive      = "is_active"
	FieldIsCombinable  = "is_combinable"
	FieldPriorityScore = "priority_score"
)

// Table is a physical table in a restaurant's roster. Immutable during a
// single allocation decision; mutated only through restaurant configuration.
type Table struct {
	ID           string `db:"id"`
	RestaurantID string `db:"restaurant_id"`
	Name         string `db:"name"`
	Capacity     int    `db:"capacity"`
	MinCapacity  int    `db:"min_capacity"`
	MaxCapacity  int    `db:"max_capacity"`
	IsActive     bool   `db:"is_active"`
	IsCombinable bool   `db:"is_combinable"`
	// CombinableWith lists table ids this table may be joined with.
	// Empty means combinable with any combinable table.
	CombinableWith pq.StringArray `db:"combinable_with"`
	PriorityScore  int            `db:"priority_score"`
	model.Metadata
}

// FitsParty reports whether the table alone seats the party.
func (t *Table) FitsParty(partySize int) bool {
	return t.MinCapacity <= partySize && partySize <= t.Capacity
}

// AllowsPairing reports whether t may be combined with the other table,
// honoring t's allow-list only; callers must check both directions.
func (t *Table) AllowsPairing(otherID string) bool {
	if !t.IsCombinable {
		return false
	}

	if len(t.CombinableWith) == 0 {
		return true
	}

	for _, id := range t.CombinableWith {
		if id == otherID {
			return true
		}
	}

	return false
}
