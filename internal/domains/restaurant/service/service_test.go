package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tably/config"
	"tably/infras/otel/mocks"
	restaurantMocks "tably/internal/domains/restaurant/mocks"
	"tably/internal/domains/restaurant/model"
	"tably/internal/domains/restaurant/service"
	cacheMocks "tably/shared/cache/mocks"
	"tably/shared/failure"
)

type restaurantFixture struct {
	repo *restaurantMocks.MockRepository
	svc  service.Restaurant
}

func newRestaurantFixture(t *testing.T) *restaurantFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := restaurantMocks.NewMockRepository(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Booking.DefaultTurnTimeMinutes = 120

	return &restaurantFixture{
		repo: mockRepo,
		svc:  service.New(mockRepo, cfg, mockCache, mocks.NewOtel()),
	}
}

func activeRestaurant(tz string) model.Restaurant {
	return model.Restaurant{
		ID:            "rest-1",
		Name:          "Trattoria",
		Timezone:      tz,
		BookingPolicy: model.PolicyInstant,
		IsActive:      true,
	}
}

func (f *restaurantFixture) expectSchedule(restaurant model.Restaurant, windows []model.OperatingWindow, closures []model.SpecialClosure) {
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(restaurant, nil)
	f.repo.EXPECT().GetWindows(gomock.Any(), restaurant.ID).Return(windows, nil)
	f.repo.EXPECT().GetClosures(gomock.Any(), restaurant.ID).Return(closures, nil)
}

func TestRestaurantService_IsOpen(t *testing.T) {
	// A Saturday evening in UTC.
	saturdayDinner := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)

	dinnerWindow := model.OperatingWindow{
		RestaurantID: "rest-1",
		Weekday:      int(time.Saturday),
		OpensAt:      "17:00",
		ClosesAt:     "23:00",
	}

	t.Run("inside a service window", func(t *testing.T) {
		f := newRestaurantFixture(t)
		f.expectSchedule(activeRestaurant("UTC"), []model.OperatingWindow{dinnerWindow}, nil)

		decision, err := f.svc.IsOpen(context.Background(), "rest-1", saturdayDinner)

		assert.NoError(t, err)
		assert.True(t, decision.Open)
	})

	t.Run("outside every window", func(t *testing.T) {
		f := newRestaurantFixture(t)
		f.expectSchedule(activeRestaurant("UTC"), []model.OperatingWindow{dinnerWindow}, nil)

		morning := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

		decision, err := f.svc.IsOpen(context.Background(), "rest-1", morning)

		assert.NoError(t, err)
		assert.False(t, decision.Open)
		assert.Equal(t, "restaurant is closed at the requested time", decision.Reason)
	})

	t.Run("no configured hours means closed", func(t *testing.T) {
		f := newRestaurantFixture(t)
		f.expectSchedule(activeRestaurant("UTC"), nil, nil)

		decision, err := f.svc.IsOpen(context.Background(), "rest-1", saturdayDinner)

		assert.NoError(t, err)
		assert.False(t, decision.Open)
		assert.Equal(t, "restaurant has no operating hours configured", decision.Reason)
	})

	t.Run("inactive restaurant is closed regardless of hours", func(t *testing.T) {
		f := newRestaurantFixture(t)

		inactive := activeRestaurant("UTC")
		inactive.IsActive = false

		f.expectSchedule(inactive, []model.OperatingWindow{dinnerWindow}, nil)

		decision, err := f.svc.IsOpen(context.Background(), "rest-1", saturdayDinner)

		assert.NoError(t, err)
		assert.False(t, decision.Open)
		assert.Equal(t, "restaurant is not accepting bookings", decision.Reason)
	})

	t.Run("special closure overrides an open window", func(t *testing.T) {
		f := newRestaurantFixture(t)

		closure := model.SpecialClosure{
			RestaurantID: "rest-1",
			StartsAt:     saturdayDinner.Add(-time.Hour),
			EndsAt:       saturdayDinner.Add(time.Hour),
			Reason:       "private event",
		}

		f.expectSchedule(activeRestaurant("UTC"), []model.OperatingWindow{dinnerWindow}, []model.SpecialClosure{closure})

		decision, err := f.svc.IsOpen(context.Background(), "rest-1", saturdayDinner)

		assert.NoError(t, err)
		assert.False(t, decision.Open)
		assert.Equal(t, "private event", decision.Reason)
	})

	t.Run("closure end is exclusive", func(t *testing.T) {
		f := newRestaurantFixture(t)

		closure := model.SpecialClosure{
			RestaurantID: "rest-1",
			StartsAt:     saturdayDinner.Add(-2 * time.Hour),
			EndsAt:       saturdayDinner,
		}

		f.expectSchedule(activeRestaurant("UTC"), []model.OperatingWindow{dinnerWindow}, []model.SpecialClosure{closure})

		decision, err := f.svc.IsOpen(context.Background(), "rest-1", saturdayDinner)

		assert.NoError(t, err)
		assert.True(t, decision.Open)
	})

	t.Run("hours are evaluated in the restaurant timezone", func(t *testing.T) {
		f := newRestaurantFixture(t)

		// 19:30 UTC on Saturday is already 04:30 Sunday in Tokyo.
		f.expectSchedule(activeRestaurant("Asia/Tokyo"), []model.OperatingWindow{dinnerWindow}, nil)

		decision, err := f.svc.IsOpen(context.Background(), "rest-1", saturdayDinner)

		assert.NoError(t, err)
		assert.False(t, decision.Open)
	})

	t.Run("overnight window spans midnight", func(t *testing.T) {
		f := newRestaurantFixture(t)

		lateBar := model.OperatingWindow{
			RestaurantID: "rest-1",
			Weekday:      int(time.Saturday),
			OpensAt:      "20:00",
			ClosesAt:     "02:00",
		}

		f.expectSchedule(activeRestaurant("UTC"), []model.OperatingWindow{lateBar}, nil)

		// 01:00 Sunday still belongs to Saturday's overnight service.
		earlySunday := time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)

		decision, err := f.svc.IsOpen(context.Background(), "rest-1", earlySunday)

		assert.NoError(t, err)
		assert.True(t, decision.Open)
	})

	t.Run("overnight window is closed after its closing time", func(t *testing.T) {
		f := newRestaurantFixture(t)

		lateBar := model.OperatingWindow{
			RestaurantID: "rest-1",
			Weekday:      int(time.Saturday),
			OpensAt:      "20:00",
			ClosesAt:     "02:00",
		}

		f.expectSchedule(activeRestaurant("UTC"), []model.OperatingWindow{lateBar}, nil)

		sundayMorning := time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC)

		decision, err := f.svc.IsOpen(context.Background(), "rest-1", sundayMorning)

		assert.NoError(t, err)
		assert.False(t, decision.Open)
	})

	t.Run("unknown restaurant is not found", func(t *testing.T) {
		f := newRestaurantFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Restaurant{}, nil)

		_, err := f.svc.IsOpen(context.Background(), "rest-404", saturdayDinner)

		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}
