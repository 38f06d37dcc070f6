package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tably/internal/domains/booking/model"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{
			name:   "identical windows",
			aStart: at(0), aEnd: at(120), bStart: at(0), bEnd: at(120),
			want: true,
		},
		{
			name:   "partial overlap",
			aStart: at(0), aEnd: at(120), bStart: at(60), bEnd: at(180),
			want: true,
		},
		{
			name:   "containment",
			aStart: at(0), aEnd: at(180), bStart: at(30), bEnd: at(90),
			want: true,
		},
		{
			name:   "back to back does not conflict",
			aStart: at(0), aEnd: at(120), bStart: at(120), bEnd: at(240),
			want: false,
		},
		{
			name:   "back to back reversed does not conflict",
			aStart: at(120), aEnd: at(240), bStart: at(0), bEnd: at(120),
			want: false,
		},
		{
			name:   "fully disjoint",
			aStart: at(0), aEnd: at(60), bStart: at(180), bEnd: at(240),
			want: false,
		},
		{
			name:   "one minute of overlap",
			aStart: at(0), aEnd: at(121), bStart: at(120), bEnd: at(240),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			assert.Equal(t, tt.want, got)

			// The predicate is symmetric in its two intervals.
			assert.Equal(t, got, model.Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestBookingInterval(t *testing.T) {
	start := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

	booking := model.Booking{
		BookingTime:     start,
		TurnTimeMinutes: 90,
	}

	assert.Equal(t, start, booking.Start())
	assert.Equal(t, start.Add(90*time.Minute), booking.End())
}

func TestBookingExpired(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{name: "no deadline", expiresAt: nil, want: false},
		{name: "deadline passed", expiresAt: &past, want: true},
		{name: "deadline ahead", expiresAt: &future, want: false},
		{name: "deadline exactly now", expiresAt: &now, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{RequestExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, booking.Expired(now))
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		status    model.Status
		valid     bool
		terminal  bool
		occupying bool
	}{
		{model.StatusPending, true, false, false},
		{model.StatusConfirmed, true, true, true},
		{model.StatusDeclinedByRestaurant, true, true, false},
		{model.StatusAutoDeclined, true, true, false},
		{model.Status("seated"), false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
			assert.Equal(t, tt.terminal, tt.status.Terminal())
			assert.Equal(t, tt.occupying, tt.status.Occupying())
		})
	}
}
