package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tably/config"
	kafkaMocks "tably/infras/kafka/mocks"
	"tably/infras/otel/mocks"
	bookingMocks "tably/internal/domains/booking/mocks"
	"tably/internal/domains/booking/model"
	"tably/internal/domains/booking/model/dto"
	"tably/internal/domains/booking/repository"
	"tably/internal/domains/booking/service"
	restaurantMocks "tably/internal/domains/restaurant/mocks"
	restaurantModel "tably/internal/domains/restaurant/model"
	tableMocks "tably/internal/domains/table/mocks"
	tableModel "tably/internal/domains/table/model"
	cacheMocks "tably/shared/cache/mocks"
	"tably/shared/failure"
	"tably/shared/timezone"
)

type bookingFixture struct {
	repo       *bookingMocks.MockRepository
	tableRepo  *tableMocks.MockRepository
	restaurant *restaurantMocks.MockService
	svc        service.Booking
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockRepository(ctrl)
	mockTableRepo := tableMocks.NewMockRepository(ctrl)
	mockRestaurant := restaurantMocks.NewMockService(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	// Cache behavior is incidental to these tests: always miss, absorb the
	// asynchronous writes and invalidations.
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Booking.MaxAdvanceDays = 90
	cfg.Booking.MaxPartySize = 50
	cfg.Booking.DefaultTurnTimeMinutes = 120
	cfg.Booking.MaxTurnTimeMinutes = 1440
	cfg.Booking.CodeMaxAttempts = 3

	return &bookingFixture{
		repo:       mockRepo,
		tableRepo:  mockTableRepo,
		restaurant: mockRestaurant,
		svc:        service.New(mockRepo, mockTableRepo, mockRestaurant, cfg, mockCache, mockKafka, mocks.NewOtel()),
	}
}

func instantSchedule() restaurantModel.Schedule {
	return restaurantModel.Schedule{
		Restaurant: restaurantModel.Restaurant{
			ID:                     "rest-1",
			Name:                   "Trattoria",
			Timezone:               "UTC",
			BookingPolicy:          restaurantModel.PolicyInstant,
			DefaultTurnTimeMinutes: 90,
			IsActive:               true,
		},
	}
}

func requestSchedule() restaurantModel.Schedule {
	schedule := instantSchedule()
	schedule.Restaurant.BookingPolicy = restaurantModel.PolicyRequest
	schedule.Restaurant.RequestExpiryHours = 24
	schedule.Restaurant.AutoDeclineEnabled = true

	return schedule
}

func fourTop(id string) tableModel.Table {
	return tableModel.Table{
		ID:           id,
		RestaurantID: "rest-1",
		Name:         id,
		MinCapacity:  1,
		Capacity:     4,
		IsActive:     true,
	}
}

func pendingBooking(start time.Time) model.Booking {
	return model.Booking{
		ID:              "bk-1",
		RestaurantID:    "rest-1",
		GuestName:       "Ada",
		PartySize:       4,
		BookingTime:     start,
		TurnTimeMinutes: 90,
		Status:          model.StatusPending,
	}
}

func TestBookingService_Create(t *testing.T) {
	start := timezone.Now().Add(48 * time.Hour).Truncate(time.Minute)

	baseReq := dto.CreateBookingRequest{
		RestaurantID: "rest-1",
		GuestName:    "Ada",
		PartySize:    4,
		BookingTime:  start.Format(time.RFC3339),
	}

	t.Run("instant policy confirms immediately", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(instantSchedule(), nil)
		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: true}, nil).Times(2)
		f.tableRepo.EXPECT().GetActiveByRestaurant(gomock.Any(), "rest-1").
			Return([]tableModel.Table{fourTop("t1")}, nil)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
		f.repo.EXPECT().CodeExists(gomock.Any(), "rest-1", gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking, history model.StatusHistory) error {
				assert.Equal(t, model.StatusConfirmed, booking.Status)
				assert.Nil(t, booking.RequestExpiresAt)
				assert.Equal(t, []string{"t1"}, []string(booking.TableIDs))
				assert.Equal(t, model.StatusConfirmed, history.NewStatus)

				return nil
			})

		res, err := f.svc.Create(context.Background(), baseReq)

		assert.NoError(t, err)
		assert.False(t, res.IsRequest)
		assert.Nil(t, res.ExpiresAt)
		assert.NotEmpty(t, res.ConfirmationCode)
		assert.Equal(t, string(model.StatusConfirmed), res.Booking.Status)
	})

	t.Run("request policy holds the booking pending with a deadline", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(requestSchedule(), nil)
		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: true}, nil).Times(2)
		f.tableRepo.EXPECT().GetActiveByRestaurant(gomock.Any(), "rest-1").
			Return([]tableModel.Table{fourTop("t1")}, nil)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
		f.repo.EXPECT().CodeExists(gomock.Any(), "rest-1", gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking, _ model.StatusHistory) error {
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.NotNil(t, booking.RequestExpiresAt)

				return nil
			})

		res, err := f.svc.Create(context.Background(), baseReq)

		assert.NoError(t, err)
		assert.True(t, res.IsRequest)
		assert.NotNil(t, res.ExpiresAt)
		assert.Equal(t, string(model.StatusPending), res.Booking.Status)
	})

	t.Run("request policy without auto-decline carries no deadline", func(t *testing.T) {
		f := newBookingFixture(t)

		schedule := requestSchedule()
		schedule.Restaurant.AutoDeclineEnabled = false

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(schedule, nil)
		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: true}, nil).Times(2)
		f.tableRepo.EXPECT().GetActiveByRestaurant(gomock.Any(), "rest-1").
			Return([]tableModel.Table{fourTop("t1")}, nil)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
		f.repo.EXPECT().CodeExists(gomock.Any(), "rest-1", gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking, _ model.StatusHistory) error {
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.Nil(t, booking.RequestExpiresAt)

				return nil
			})

		res, err := f.svc.Create(context.Background(), baseReq)

		assert.NoError(t, err)
		assert.True(t, res.IsRequest)
		assert.Nil(t, res.ExpiresAt)
	})

	t.Run("party size above the limit is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		req := baseReq
		req.PartySize = 51

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("closed restaurant is rejected with the reason", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(instantSchedule(), nil)
		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: false, Reason: "closed for renovation"}, nil)

		_, err := f.svc.Create(context.Background(), baseReq)

		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
		assert.Contains(t, err.Error(), "closed for renovation")
	})

	t.Run("past booking time is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(instantSchedule(), nil)

		req := baseReq
		req.BookingTime = timezone.Now().Add(-time.Hour).Format(time.RFC3339)

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("booking too far ahead is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(instantSchedule(), nil)

		req := baseReq
		req.BookingTime = timezone.Now().AddDate(0, 0, 91).Format(time.RFC3339)

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("explicitly requested table with a conflict is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		conflicting := model.Booking{
			ID:              "bk-other",
			RestaurantID:    "rest-1",
			GuestName:       "Grace",
			PartySize:       2,
			BookingTime:     start,
			TurnTimeMinutes: 90,
			Status:          model.StatusConfirmed,
			TableIDs:        []string{"t1"},
		}

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(instantSchedule(), nil)
		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: true}, nil).Times(2)
		f.tableRepo.EXPECT().GetByIDs(gomock.Any(), "rest-1", []string{"t1"}).
			Return([]tableModel.Table{fourTop("t1")}, nil)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{conflicting}, nil)

		req := baseReq
		req.TableIDs = []string{"t1"}

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, failure.KindConflict, failure.GetKind(err))
	})

	t.Run("party nobody can seat is rejected as capacity", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(instantSchedule(), nil)
		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: true}, nil).Times(2)
		f.tableRepo.EXPECT().GetActiveByRestaurant(gomock.Any(), "rest-1").
			Return([]tableModel.Table{fourTop("t1")}, nil)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		req := baseReq
		req.PartySize = 30

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, failure.KindCapacity, failure.GetKind(err))
	})

	t.Run("turn time above the limit is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(instantSchedule(), nil)

		req := baseReq
		req.TurnTimeMinutes = 1441

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})

	t.Run("conflict caught inside the create transaction keeps its kind", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(instantSchedule(), nil)
		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: true}, nil).Times(2)
		f.tableRepo.EXPECT().GetByIDs(gomock.Any(), "rest-1", []string{"t1"}).
			Return([]tableModel.Table{fourTop("t1")}, nil)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
		f.repo.EXPECT().CodeExists(gomock.Any(), "rest-1", gomock.Any()).Return(false, nil)
		// Another create claimed the tables between the pre-check and commit.
		f.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(failure.Conflict("requested tables are already booked for this window"))

		req := baseReq
		req.TableIDs = []string{"t1"}

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, failure.KindConflict, failure.GetKind(err))
	})

	t.Run("malformed booking time is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		f.restaurant.EXPECT().GetSchedule(gomock.Any(), "rest-1").Return(instantSchedule(), nil)

		req := baseReq
		req.BookingTime = "tomorrow at eight"

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})
}

func TestBookingService_Accept(t *testing.T) {
	start := timezone.Now().Add(48 * time.Hour)

	t.Run("pending request with tables is confirmed", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking(start)
		booking.TableIDs = []string{"t1"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().TransitionWithAssignments(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params repository.TransitionParams) (repository.TransitionOutcome, error) {
				assert.Equal(t, model.StatusPending, params.From)
				assert.Equal(t, model.StatusConfirmed, params.To)
				assert.Equal(t, []string{"t1"}, params.TableIDs)

				return repository.TransitionOutcome{Found: true, Updated: true}, nil
			})

		res, err := f.svc.Accept(context.Background(), "bk-1", dto.AcceptRequest{})

		assert.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, string(model.StatusConfirmed), res.Booking.Status)
	})

	t.Run("confirmed booking cannot be accepted again", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking(start)
		booking.Status = model.StatusConfirmed

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.Accept(context.Background(), "bk-1", dto.AcceptRequest{})

		assert.Equal(t, failure.KindState, failure.GetKind(err))
	})

	t.Run("expired request is auto-declined and refused", func(t *testing.T) {
		f := newBookingFixture(t)

		expired := timezone.Now().Add(-time.Hour)
		booking := pendingBooking(start)
		booking.TableIDs = []string{"t1"}
		booking.RequestExpiresAt = &expired

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-1", model.StatusPending, model.StatusAutoDeclined, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _, _ model.Status, history model.StatusHistory) (bool, error) {
				assert.Equal(t, "Request expired automatically", history.Reason)

				return true, nil
			})

		_, err := f.svc.Accept(context.Background(), "bk-1", dto.AcceptRequest{})

		assert.Equal(t, failure.KindExpired, failure.GetKind(err))
	})

	t.Run("force accept does not override the expiry", func(t *testing.T) {
		f := newBookingFixture(t)

		expired := timezone.Now().Add(-time.Hour)
		booking := pendingBooking(start)
		booking.TableIDs = []string{"t1"}
		booking.RequestExpiresAt = &expired

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-1", model.StatusPending, model.StatusAutoDeclined, gomock.Any()).
			Return(true, nil)

		_, err := f.svc.Accept(context.Background(), "bk-1", dto.AcceptRequest{ForceAccept: true})

		assert.Equal(t, failure.KindExpired, failure.GetKind(err))
	})

	t.Run("expiry race already settled by the sweeper still reads expired", func(t *testing.T) {
		f := newBookingFixture(t)

		expired := timezone.Now().Add(-time.Hour)
		booking := pendingBooking(start)
		booking.TableIDs = []string{"t1"}
		booking.RequestExpiresAt = &expired

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-1", model.StatusPending, model.StatusAutoDeclined, gomock.Any()).
			Return(false, nil)

		_, err := f.svc.Accept(context.Background(), "bk-1", dto.AcceptRequest{})

		assert.Equal(t, failure.KindExpired, failure.GetKind(err))
	})

	t.Run("conflicting tables come back in the response, not as an error", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking(start)
		booking.TableIDs = []string{"t1"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().TransitionWithAssignments(gomock.Any(), gomock.Any()).
			Return(repository.TransitionOutcome{
				Found:     true,
				Conflicts: []model.Conflict{{BookingID: "bk-other", TableID: "t1"}},
			}, nil)

		res, err := f.svc.Accept(context.Background(), "bk-1", dto.AcceptRequest{})

		assert.NoError(t, err)
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Error)
	})

	t.Run("revalidation failure returns alternatives and leaves the request pending", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking(start)
		booking.PartySize = 6

		twoTop := fourTop("t1")
		twoTop.Capacity = 2

		bigTable := fourTop("t9")
		bigTable.Capacity = 8

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.tableRepo.EXPECT().GetByIDs(gomock.Any(), "rest-1", []string{"t1"}).
			Return([]tableModel.Table{twoTop}, nil)
		f.repo.EXPECT().AppendHistory(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, history model.StatusHistory) error {
				assert.Equal(t, model.StatusPending, history.OldStatus)
				assert.Equal(t, model.StatusPending, history.NewStatus)
				assert.Contains(t, history.Reason, "accept refused")

				return nil
			})
		f.tableRepo.EXPECT().GetActiveByRestaurant(gomock.Any(), "rest-1").
			Return([]tableModel.Table{bigTable}, nil)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), "bk-1").
			Return(nil, nil)
		f.restaurant.EXPECT().IsOpen(gomock.Any(), "rest-1", gomock.Any()).
			Return(restaurantModel.HoursDecision{Open: false}, nil).AnyTimes()

		res, err := f.svc.Accept(context.Background(), "bk-1", dto.AcceptRequest{
			TableIDs:            []string{"t1"},
			SuggestAlternatives: true,
		})

		assert.Equal(t, failure.KindCapacity, failure.GetKind(err))
		assert.NotNil(t, res.Alternatives)
		assert.NotEmpty(t, res.Alternatives.Tables)
	})

	t.Run("losing the race to another staff member is a state error", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking(start)
		booking.TableIDs = []string{"t1"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().TransitionWithAssignments(gomock.Any(), gomock.Any()).
			Return(repository.TransitionOutcome{
				Found:         true,
				CurrentStatus: model.StatusDeclinedByRestaurant,
			}, nil)

		_, err := f.svc.Accept(context.Background(), "bk-1", dto.AcceptRequest{})

		assert.Equal(t, failure.KindState, failure.GetKind(err))
	})

	t.Run("unplannable request reports the shortfall in the response", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking(start)
		booking.PartySize = 30

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.tableRepo.EXPECT().GetActiveByRestaurant(gomock.Any(), "rest-1").
			Return([]tableModel.Table{fourTop("t1")}, nil)
		f.repo.EXPECT().GetActiveBetween(gomock.Any(), "rest-1", gomock.Any(), gomock.Any(), "bk-1").
			Return(nil, nil)

		res, err := f.svc.Accept(context.Background(), "bk-1", dto.AcceptRequest{})

		assert.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "no table or combination can seat the party", res.Error)
	})

	t.Run("missing booking is not found", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Accept(context.Background(), "bk-404", dto.AcceptRequest{})

		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestBookingService_Decline(t *testing.T) {
	start := timezone.Now().Add(48 * time.Hour)

	t.Run("pending request is declined with the default reason", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking(start)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-1", model.StatusPending, model.StatusDeclinedByRestaurant, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _, _ model.Status, history model.StatusHistory) (bool, error) {
				assert.Equal(t, "request declined", history.Reason)

				return true, nil
			})

		res, err := f.svc.Decline(context.Background(), "bk-1", dto.DeclineRequest{})

		assert.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, string(model.StatusDeclinedByRestaurant), res.Booking.Status)
	})

	t.Run("declined booking cannot be declined again", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking(start)
		booking.Status = model.StatusDeclinedByRestaurant

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.Decline(context.Background(), "bk-1", dto.DeclineRequest{})

		assert.Equal(t, failure.KindState, failure.GetKind(err))
	})

	t.Run("losing the conditional update is a state error", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking(start)
		confirmed := pendingBooking(start)
		confirmed.Status = model.StatusConfirmed

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().TransitionStatus(gomock.Any(), "bk-1", model.StatusPending, model.StatusDeclinedByRestaurant, gomock.Any()).
			Return(false, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed, nil)

		_, err := f.svc.Decline(context.Background(), "bk-1", dto.DeclineRequest{})

		assert.Equal(t, failure.KindState, failure.GetKind(err))
	})
}

func TestBookingService_Reassign(t *testing.T) {
	start := timezone.Now().Add(48 * time.Hour)

	t.Run("confirmed booking moves to the new tables", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking(start)
		booking.Status = model.StatusConfirmed
		booking.TableIDs = []string{"t1"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.tableRepo.EXPECT().GetByIDs(gomock.Any(), "rest-1", []string{"t2"}).
			Return([]tableModel.Table{fourTop("t2")}, nil)
		f.repo.EXPECT().TransitionWithAssignments(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params repository.TransitionParams) (repository.TransitionOutcome, error) {
				assert.Equal(t, model.StatusConfirmed, params.From)
				assert.Equal(t, model.StatusConfirmed, params.To)
				assert.Equal(t, []string{"t2"}, params.TableIDs)

				return repository.TransitionOutcome{Found: true, Updated: true}, nil
			})

		res, err := f.svc.Reassign(context.Background(), "bk-1", dto.ReassignRequest{TableIDs: []string{"t2"}})

		assert.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, []string{"t2"}, res.Booking.TableIDs)
	})

	t.Run("pending booking cannot be reassigned", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(start), nil)

		_, err := f.svc.Reassign(context.Background(), "bk-1", dto.ReassignRequest{TableIDs: []string{"t2"}})

		assert.Equal(t, failure.KindState, failure.GetKind(err))
	})

	t.Run("inactive target table is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking(start)
		booking.Status = model.StatusConfirmed

		inactive := fourTop("t2")
		inactive.IsActive = false

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.tableRepo.EXPECT().GetByIDs(gomock.Any(), "rest-1", []string{"t2"}).
			Return([]tableModel.Table{inactive}, nil)

		_, err := f.svc.Reassign(context.Background(), "bk-1", dto.ReassignRequest{TableIDs: []string{"t2"}})

		assert.Equal(t, failure.KindValidation, failure.GetKind(err))
	})
}
