package model

import (
	"time"

	"tably/shared/model"
)

const (
	TableName        = "restaurants"
	EntityName       = "restaurant"
	HoursTableName   = "restaurant_operating_hours"
	ClosureTableName = "restaurant_special_closures"

	HoursEntityName   = "operating_window"
	ClosureEntityName = "special_closure"

	FieldID           = "id"
	FieldName         = "name"
	FieldIsActive     = "is_active"
	FieldRestaurantID = "restaurant_id"
	FieldWeekday      = "weekday"
	FieldEndsAt       = "ends_at"
)

// BookingPolicy controls whether bookings confirm instantly or await approval.
type BookingPolicy string

const (
	// PolicyInstant confirms bookings at creation.
	PolicyInstant BookingPolicy = "instant"
	// PolicyRequest holds bookings pending until staff accept them.
	PolicyRequest BookingPolicy = "request"
)

type Restaurant struct {
	ID                     string        `db:"id"`
	Name                   string        `db:"name"`
	Timezone               string        `db:"timezone"`
	BookingPolicy          BookingPolicy `db:"booking_policy"`
	RequestExpiryHours     int           `db:"request_expiry_hours"`
	AutoDeclineEnabled     bool          `db:"auto_decline_enabled"`
	DefaultTurnTimeMinutes int           `db:"default_turn_time_minutes"`
	IsActive               bool          `db:"is_active"`
	model.Metadata
}

// RequiresApproval reports whether a new booking must wait for staff acceptance.
func (r *Restaurant) RequiresApproval() bool {
	return r.BookingPolicy == PolicyRequest
}

// OperatingWindow is one weekly service window. A day may carry several
// (lunch and dinner services, for example).
type OperatingWindow struct {
	ID           string `db:"id"`
	RestaurantID string `db:"restaurant_id"`
	// Weekday follows time.Weekday numbering (Sunday = 0).
	Weekday  int    `db:"weekday"`
	OpensAt  string `db:"opens_at"`
	ClosesAt string `db:"closes_at"`
}

// SpecialClosure overrides the weekly schedule for a one-off interval,
// half-open like every interval in this engine.
type SpecialClosure struct {
	ID           string    `db:"id"`
	RestaurantID string    `db:"restaurant_id"`
	StartsAt     time.Time `db:"starts_at"`
	EndsAt       time.Time `db:"ends_at"`
	Reason       string    `db:"reason"`
}

// Covers reports whether the closure is in effect at the given instant.
func (c *SpecialClosure) Covers(at time.Time) bool {
	return !at.Before(c.StartsAt) && at.Before(c.EndsAt)
}

// HoursDecision is the oracle's answer for a single instant.
type HoursDecision struct {
	Open   bool   `json:"open"`
	Reason string `json:"reason,omitempty"`
}

// Schedule bundles everything the oracle needs to answer IsOpen for a
// restaurant; this is the unit the oracle caches.
type Schedule struct {
	Restaurant Restaurant        `json:"restaurant"`
	Windows    []OperatingWindow `json:"windows"`
	Closures   []SpecialClosure  `json:"closures"`
}
