package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tably/internal/domains/booking/model"
	"tably/shared/constant"
	"tably/shared/failure"
	"tably/shared/timezone"
)

func expiredBooking(id string) model.Booking {
	expires := timezone.Now().Add(-time.Hour)

	booking := pendingBooking(timezone.Now().Add(-30 * time.Minute))
	booking.ID = id
	booking.RequestExpiresAt = &expires

	return booking
}

func TestBookingService_AutoDeclineExpired(t *testing.T) {
	t.Run("overdue requests are auto-declined by the system actor", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().ListExpired(gomock.Any(), "rest-1", gomock.Any()).
			Return([]model.Booking{expiredBooking("bk-1"), expiredBooking("bk-2")}, nil)
		f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-1", model.StatusPending, model.StatusAutoDeclined, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _, _ model.Status, history model.StatusHistory) (bool, error) {
				assert.Equal(t, constant.ActorSystem, history.ChangedBy)
				assert.Equal(t, "Request expired automatically", history.Reason)

				return true, nil
			})
		f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-2", model.StatusPending, model.StatusAutoDeclined, gomock.Any()).
			Return(true, nil)

		res, err := f.svc.AutoDeclineExpired(context.Background(), "rest-1", "")

		assert.NoError(t, err)
		assert.Equal(t, 2, res.DeclinedCount)
		assert.Len(t, res.DeclinedBookings, 2)
		assert.Empty(t, res.Errors)
		assert.Equal(t, string(model.StatusAutoDeclined), res.DeclinedBookings[0].Status)
	})

	t.Run("booking accepted concurrently is skipped, not failed", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().ListExpired(gomock.Any(), "rest-1", gomock.Any()).
			Return([]model.Booking{expiredBooking("bk-1"), expiredBooking("bk-2")}, nil)
		f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-1", model.StatusPending, model.StatusAutoDeclined, gomock.Any()).
			Return(false, nil)
		f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-2", model.StatusPending, model.StatusAutoDeclined, gomock.Any()).
			Return(true, nil)

		res, err := f.svc.AutoDeclineExpired(context.Background(), "rest-1", "")

		assert.NoError(t, err)
		assert.Equal(t, 1, res.DeclinedCount)
		assert.Empty(t, res.Errors)
	})

	t.Run("one failing booking does not stop the sweep", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().ListExpired(gomock.Any(), "rest-1", gomock.Any()).
			Return([]model.Booking{expiredBooking("bk-1"), expiredBooking("bk-2")}, nil)
		f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-1", model.StatusPending, model.StatusAutoDeclined, gomock.Any()).
			Return(false, errors.New("deadlock detected"))
		f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-2", model.StatusPending, model.StatusAutoDeclined, gomock.Any()).
			Return(true, nil)

		res, err := f.svc.AutoDeclineExpired(context.Background(), "rest-1", "")

		assert.NoError(t, err)
		assert.Equal(t, 1, res.DeclinedCount)
		assert.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "bk-1")
	})

	t.Run("nothing overdue sweeps cleanly", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().ListExpired(gomock.Any(), "rest-1", gomock.Any()).Return(nil, nil)

		res, err := f.svc.AutoDeclineExpired(context.Background(), "rest-1", "staff-1")

		assert.NoError(t, err)
		assert.Zero(t, res.DeclinedCount)
	})
}

func TestBookingService_SweepAll(t *testing.T) {
	t.Run("every restaurant with overdue requests is swept", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().ListRestaurantIDsWithExpired(gomock.Any(), gomock.Any()).
			Return([]string{"rest-1", "rest-2"}, nil)
		f.repo.EXPECT().ListExpired(gomock.Any(), "rest-1", gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().ListExpired(gomock.Any(), "rest-2", gomock.Any()).Return(nil, nil)

		assert.NoError(t, f.svc.SweepAll(context.Background()))
	})

	t.Run("a failed restaurant surfaces as a system error after the others ran", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().ListRestaurantIDsWithExpired(gomock.Any(), gomock.Any()).
			Return([]string{"rest-1", "rest-2"}, nil)
		f.repo.EXPECT().ListExpired(gomock.Any(), "rest-1", gomock.Any()).
			Return(nil, errors.New("connection refused"))
		f.repo.EXPECT().ListExpired(gomock.Any(), "rest-2", gomock.Any()).Return(nil, nil)

		err := f.svc.SweepAll(context.Background())

		assert.Equal(t, failure.KindSystem, failure.GetKind(err))
	})
}
