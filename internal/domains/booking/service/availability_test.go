package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tably/internal/domains/booking/model"
	"tably/internal/domains/booking/model/dto"
	restaurantModel "tably/internal/domains/restaurant/model"
	tableModel "tably/internal/domains/table/model"
	"tably/shared/timezone"
)

func combinableTable(id string, minCapacity, capacity int) tableModel.Table {
	return tableModel.Table{
		ID:           id,
		RestaurantID: "rest-1",
		Name:         id,
		MinCapacity:  minCapacity,
		Capacity:     capacity,
		IsActive:     true,
		IsCombinable: true,
	}
}

func TestBookingService_CheckAvailability(t *testing.T) {
	start := timezone.Now().Add(48 * time.Hour)

	t.Run("free window is reported available", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: true}, nil).Times(2)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", start.Add(-24*time.Hour), start.Add(90*time.Minute), "").
			Return(nil, nil)

		res, err := f.svc.CheckAvailability(context.Background(), "rest-1", []string{"t1"}, start, 90, "")

		assert.NoError(t, err)
		assert.True(t, res.Available)
		assert.Empty(t, res.Conflicts)
	})

	t.Run("occupying booking on a requested table is a conflict", func(t *testing.T) {
		f := newBookingFixture(t)

		conflicting := model.Booking{
			ID:              "bk-other",
			GuestName:       "Grace",
			PartySize:       2,
			BookingTime:     start.Add(30 * time.Minute),
			TurnTimeMinutes: 90,
			Status:          model.StatusConfirmed,
			TableIDs:        []string{"t1", "t2"},
		}

		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: true}, nil).Times(2)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{conflicting}, nil)

		res, err := f.svc.CheckAvailability(context.Background(), "rest-1", []string{"t1"}, start, 90, "")

		assert.NoError(t, err)
		assert.False(t, res.Available)
		assert.Len(t, res.Conflicts, 1)
		assert.Equal(t, "bk-other", res.Conflicts[0].BookingID)
		assert.Equal(t, "t1", res.Conflicts[0].TableID)
	})

	t.Run("pending booking does not occupy its tables", func(t *testing.T) {
		f := newBookingFixture(t)

		pending := model.Booking{
			ID:              "bk-other",
			BookingTime:     start,
			TurnTimeMinutes: 90,
			Status:          model.StatusPending,
			TableIDs:        []string{"t1"},
		}

		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: true}, nil).Times(2)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{pending}, nil)

		res, err := f.svc.CheckAvailability(context.Background(), "rest-1", []string{"t1"}, start, 90, "")

		assert.NoError(t, err)
		assert.True(t, res.Available)
	})

	t.Run("back to back booking does not conflict", func(t *testing.T) {
		f := newBookingFixture(t)

		adjacent := model.Booking{
			ID:              "bk-other",
			BookingTime:     start.Add(90 * time.Minute),
			TurnTimeMinutes: 90,
			Status:          model.StatusConfirmed,
			TableIDs:        []string{"t1"},
		}

		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: true}, nil).Times(2)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{adjacent}, nil)

		res, err := f.svc.CheckAvailability(context.Background(), "rest-1", []string{"t1"}, start, 90, "")

		assert.NoError(t, err)
		assert.True(t, res.Available)
	})

	t.Run("closed restaurant short-circuits the conflict scan", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", start).
			Return(restaurantModel.HoursDecision{Open: false, Reason: "closed on Mondays"}, nil)

		res, err := f.svc.CheckAvailability(context.Background(), "rest-1", []string{"t1"}, start, 90, "")

		assert.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, "closed on Mondays", res.Reason)
	})

	t.Run("zero duration falls back to the restaurant turn time", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(instantSchedule(), nil)
		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: true}, nil).Times(2)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", start.Add(-24*time.Hour), start.Add(90*time.Minute), "").
			Return(nil, nil)

		res, err := f.svc.CheckAvailability(context.Background(), "rest-1", []string{"t1"}, start, 0, "")

		assert.NoError(t, err)
		assert.True(t, res.Available)
	})
}

func TestBookingService_GetFreeTables(t *testing.T) {
	start := timezone.Now().Add(48 * time.Hour)

	t.Run("roster splits into singles and combinations", func(t *testing.T) {
		f := newBookingFixture(t)

		roster := []tableModel.Table{
			fourTop("t1"),
			combinableTable("t2", 1, 2),
			combinableTable("t3", 1, 2),
		}

		occupying := model.Booking{
			ID:              "bk-other",
			BookingTime:     start,
			TurnTimeMinutes: 90,
			Status:          model.StatusConfirmed,
			TableIDs:        []string{"t1"},
		}

		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", start).
			Return(restaurantModel.HoursDecision{Open: true}, nil)
		f.tableRepo.EXPECT().GetActiveByRestaurant(gomock.Any(), "rest-1").Return(roster, nil)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{occupying}, nil)

		res, err := f.svc.GetFreeTables(context.Background(), "rest-1", start, 90, 4)

		assert.NoError(t, err)
		// t1 is taken; neither two-top alone seats four, but together they do.
		assert.Empty(t, res.SingleTables)
		assert.Len(t, res.Combinations, 1)
		assert.Equal(t, []string{"t2", "t3"}, res.Combinations[0].TableIDs)
		assert.Equal(t, 4, res.Combinations[0].TotalCapacity)
	})

	t.Run("closed slot returns the reason with empty partitions", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", start).
			Return(restaurantModel.HoursDecision{Open: false, Reason: "closed for a private event"}, nil)

		res, err := f.svc.GetFreeTables(context.Background(), "rest-1", start, 90, 4)

		assert.NoError(t, err)
		assert.Equal(t, "closed for a private event", res.Reason)
		assert.Empty(t, res.SingleTables)
		assert.Empty(t, res.Combinations)
	})
}

func TestBookingService_DeclineWithAlternatives(t *testing.T) {
	start := timezone.Now().Add(48 * time.Hour)

	f := newBookingFixture(t)

	booking := pendingBooking(start)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
	f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-1", model.StatusPending, model.StatusDeclinedByRestaurant, gomock.Any()).
		Return(true, nil)

	// Alternative probing is best effort across several nearby slots.
	f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
		Return(restaurantModel.HoursDecision{Open: true}, nil).AnyTimes()
	f.tableRepo.EXPECT().GetActiveByRestaurant(gomock.Any(), "rest-1").
		Return([]tableModel.Table{fourTop("t1"), fourTop("t2")}, nil).AnyTimes()
	f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).AnyTimes()

	res, err := f.svc.Decline(context.Background(), "bk-1", dto.DeclineRequest{SuggestAlternatives: true})

	assert.NoError(t, err)
	assert.True(t, res.Success)
	assert.NotNil(t, res.Alternatives)
	assert.NotEmpty(t, res.Alternatives.Tables)
	assert.LessOrEqual(t, len(res.Alternatives.Tables), 3)
	assert.LessOrEqual(t, len(res.Alternatives.Slots), 4)
}
