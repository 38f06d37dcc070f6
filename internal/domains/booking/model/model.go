package model

import (
	"time"

	"github.com/lib/pq"

	"tably/shared/model"
)

const (
	TableName           = "bookings"
	EntityName          = "booking"
	AssignmentTableName = "booking_table_assignments"
	HistoryTableName    = "booking_status_history"

	FieldID               = "id"
	FieldRestaurantID     = "restaurant_id"
	FieldGuestName        = "guest_name"
	FieldGuestEmail       = "guest_email"
	FieldGuestPhone       = "guest_phone"
	FieldPartySize        = "party_size"
	FieldBookingTime      = "booking_time"
	FieldTurnTimeMinutes  = "turn_time_minutes"
	FieldStatus           = "status"
	FieldRequestExpiresAt = "request_expires_at"
	FieldConfirmationCode = "confirmation_code"
)

// Status is the closed set of booking lifecycle states owned by this engine.
// Downstream seating and order states are out of scope.
type Status string

const (
	StatusPending              Status = "pending"
	StatusConfirmed            Status = "confirmed"
	StatusDeclinedByRestaurant Status = "declined_by_restaurant"
	StatusAutoDeclined         Status = "auto_declined"
)

// Valid reports whether s is one of the engine's statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclinedByRestaurant, StatusAutoDeclined:
		return true
	}

	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s != StatusPending
}

// Occupying reports whether a booking in this status holds its tables
// for conflict purposes.
func (s Status) Occupying() bool {
	return s == StatusConfirmed
}

type Booking struct {
	ID               string         `db:"id"`
	RestaurantID     string         `db:"restaurant_id"`
	GuestName        string         `db:"guest_name"`
	GuestEmail       string         `db:"guest_email"`
	GuestPhone       string         `db:"guest_phone"`
	PartySize        int            `db:"party_size"`
	BookingTime      time.Time      `db:"booking_time"`
	TurnTimeMinutes  int            `db:"turn_time_minutes"`
	Status           Status         `db:"status"`
	RequestExpiresAt *time.Time     `db:"request_expires_at"`
	ConfirmationCode string         `db:"confirmation_code"`
	Notes            string         `db:"notes"`
	TableIDs         pq.StringArray `db:"table_ids" table:"ta"`
	model.Metadata
}

// GetJoinQuery folds the assignment rows into a table_ids array so every
// read of a booking carries its tables without a second round trip.
func (b Booking) GetJoinQuery() string {
	return "LEFT JOIN (SELECT booking_id, array_agg(table_id ORDER BY position) AS table_ids FROM " +
		AssignmentTableName + " GROUP BY booking_id) ta ON ta.booking_id = " + TableName + ".id"
}

// Start returns the beginning of the booking's occupied interval.
func (b *Booking) Start() time.Time {
	return b.BookingTime
}

// End returns the exclusive end of the booking's occupied interval.
func (b *Booking) End() time.Time {
	return b.BookingTime.Add(time.Duration(b.TurnTimeMinutes) * time.Minute)
}

// Expired reports whether the booking carries a request deadline that has passed.
func (b *Booking) Expired(now time.Time) bool {
	return b.RequestExpiresAt != nil && b.RequestExpiresAt.Before(now)
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not conflict. Every
// conflict decision in the engine goes through this predicate.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

type TableAssignment struct {
	BookingID string    `db:"booking_id"`
	TableID   string    `db:"table_id"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}

// StatusHistory is an append-only audit record of a lifecycle transition.
type StatusHistory struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	OldStatus Status    `db:"old_status"`
	NewStatus Status    `db:"new_status"`
	ChangedBy string    `db:"changed_by"`
	ChangedAt time.Time `db:"changed_at"`
	Reason    string    `db:"reason"`
	Metadata  []byte    `db:"metadata"`
}

// Conflict describes an existing booking that blocks a requested window on a table.
type Conflict struct {
	BookingID   string    `json:"booking_id"`
	TableID     string    `json:"table_id"`
	GuestName   string    `json:"guest_name"`
	PartySize   int       `json:"party_size"`
	BookingTime time.Time `json:"booking_time"`
	EndTime     time.Time `json:"end_time"`
}
