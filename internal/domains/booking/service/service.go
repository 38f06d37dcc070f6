package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names Booking=MockService

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tably/config"
	"tably/infras/kafka"
	"tably/infras/otel"
	"tably/internal/domains/booking/model"
	"tably/internal/domains/booking/model/dto"
	"tably/internal/domains/booking/repository"
	restaurantService "tably/internal/domains/restaurant/service"
	tableRepository "tably/internal/domains/table/repository"
	"tably/shared"
	"tably/shared/cache"
	"tably/shared/constant"
	gDto "tably/shared/dto"
	"tably/shared/failure"
	"tably/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Accept(ctx context.Context, bookingID string, req dto.AcceptRequest) (dto.TransitionResponse, error)
	Decline(ctx context.Context, bookingID string, req dto.DeclineRequest) (dto.TransitionResponse, error)
	Reassign(ctx context.Context, bookingID string, req dto.ReassignRequest) (dto.TransitionResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByCode(ctx context.Context, code string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	History(ctx context.Context, bookingID string) ([]dto.HistoryResponse, error)
	CheckAvailability(ctx context.Context, restaurantID string, tableIDs []string, start time.Time, durationMinutes int, excludeBookingID string) (dto.AvailabilityResponse, error)
	GetFreeTables(ctx context.Context, restaurantID string, start time.Time, durationMinutes, partySize int) (dto.FreeTablesResponse, error)
	AutoDeclineExpired(ctx context.Context, restaurantID, actorID string) (dto.SweepResponse, error)
	SweepAll(ctx context.Context) error
}

type serviceImpl struct {
	repo       repository.Booking
	tableRepo  tableRepository.Table
	restaurant restaurantService.Restaurant
	cfg        *config.Config
	cache      cache.RedisCache
	kafka      kafka.Client
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	tableRepo tableRepository.Table,
	restaurant restaurantService.Restaurant,
	cfg *config.Config,
	cache cache.RedisCache,
	kafkaClient kafka.Client,
	otl otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		tableRepo:  tableRepo,
		restaurant: restaurant,
		cfg:        cfg,
		cache:      cache,
		kafka:      kafkaClient,
		otel:       otl,
	}
}

// Create validates the request against policy, hours, and table conflicts,
// plans an assignment when the caller did not pin tables, and writes the
// booking with its initial history row in one transaction. Under an instant
// policy the booking confirms immediately; under a request policy it starts
// pending with an expiry deadline.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ActorGuest
	}

	if req.PartySize > s.cfg.Booking.MaxPartySize {
		return res, failure.Validation(fmt.Sprintf("party_size cannot exceed %d", s.cfg.Booking.MaxPartySize)) // nolint:wrapcheck
	}

	schedule, err := s.restaurant.GetSchedule(ctx, req.RestaurantID)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	turnTime := schedule.Restaurant.DefaultTurnTimeMinutes
	if turnTime == 0 {
		turnTime = s.cfg.Booking.DefaultTurnTimeMinutes
	}

	booking, err := req.ToModel(user, turnTime)
	if err != nil {
		return res, failure.Validation("booking_time must be RFC3339") // nolint:wrapcheck
	}

	// Conflict scans only look back a bounded window; an unbounded turn time
	// would let a booking outlive every later scan.
	if booking.TurnTimeMinutes > s.cfg.Booking.MaxTurnTimeMinutes {
		return res, failure.Validation(fmt.Sprintf("turn_time_minutes cannot exceed %d", s.cfg.Booking.MaxTurnTimeMinutes)) // nolint:wrapcheck
	}

	now := timezone.Now()

	if !req.WalkIn && booking.BookingTime.Before(now) {
		return res, failure.Validation("booking_time must be in the future") // nolint:wrapcheck
	}

	if booking.BookingTime.After(now.AddDate(0, 0, s.cfg.Booking.MaxAdvanceDays)) {
		return res, failure.Validation(fmt.Sprintf("booking_time cannot be more than %d days ahead", s.cfg.Booking.MaxAdvanceDays)) // nolint:wrapcheck
	}

	for _, at := range []time.Time{booking.Start(), booking.End()} {
		decision, openErr := s.restaurant.IsOpen(ctx, req.RestaurantID, at)
		if openErr != nil {
			return res, openErr // nolint:wrapcheck
		}

		if !decision.Open {
			return res, failure.Validation(decision.Reason) // nolint:wrapcheck
		}
	}

	tableIDs, err := s.resolveTables(ctx, booking, req.TableIDs)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	booking.TableIDs = tableIDs
	booking.ConfirmationCode = s.generateConfirmationCode(ctx, req.RestaurantID, now.UnixMilli())

	isRequest := schedule.Restaurant.RequiresApproval()

	switch {
	case !isRequest:
		booking.Status = model.StatusConfirmed
	case schedule.Restaurant.AutoDeclineEnabled:
		// The deadline only exists when the sweeper is allowed to act on it.
		expires := now.Add(time.Duration(schedule.Restaurant.RequestExpiryHours) * time.Hour)
		booking.RequestExpiresAt = &expires
	}

	history := newHistory(booking.ID, constant.Empty, booking.Status, user, "booking created")

	if err = s.repo.Create(ctx, booking, history); err != nil {
		// A conflict caught inside the create transaction means another
		// booking claimed the tables after the pre-check; surface it as-is.
		if failure.Is(err, failure.KindConflict) {
			return res, err // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.publishStatusEvent(ctx, eventCreated, booking)
	s.invalidate(ctx, booking.ID)

	res.IsRequest = isRequest
	res.ConfirmationCode = booking.ConfirmationCode
	res.Booking.FromModel(booking)

	if booking.RequestExpiresAt != nil {
		expires := timezone.Format(*booking.RequestExpiresAt, constant.DateFormat)
		res.ExpiresAt = &expires
	}

	return res, nil
}

// Accept confirms a pending request. Table conflicts are re-checked inside
// the repository transaction under row locks, so two staff members accepting
// competing requests settle with exactly one winner. Conflict and capacity
// outcomes come back in the response body rather than as errors so the caller
// can act on suggested alternatives.
func (s *serviceImpl) Accept(ctx context.Context, bookingID string, req dto.AcceptRequest) (res dto.TransitionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Accept")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getModel(ctx, bookingID)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	if booking.Status != model.StatusPending {
		return res, failure.State(fmt.Sprintf("booking is %s, only pending requests can be accepted", booking.Status)) // nolint:wrapcheck
	}

	if booking.Expired(timezone.Now()) {
		// The deadline has passed even though the sweeper has not caught the
		// booking yet; decline it here so the stored state matches the answer
		// the caller gets. Losing the conditional update to a concurrent
		// transition is fine, the request stays refused either way.
		updated, declineErr := s.repo.TransitionStatus(ctx, bookingID, model.StatusPending, model.StatusAutoDeclined,
			newHistory(bookingID, model.StatusPending, model.StatusAutoDeclined, user, expiredReason))
		if declineErr != nil {
			log.Error().Err(declineErr).Str("bookingID", bookingID).Msg("failed to auto-decline expired booking request")
		}

		if updated {
			booking.Status = model.StatusAutoDeclined
			s.publishStatusEvent(ctx, eventAutoDecl, booking)
			s.invalidate(ctx, bookingID)
		}

		return res, failure.Expired("booking request has expired") // nolint:wrapcheck
	}

	tableIDs := booking.TableIDs

	switch {
	case req.SkipTableAssignment:
		// Keep whatever is assigned; still conflict-checked below.
	case len(req.TableIDs) > 0:
		if !req.ForceAccept {
			if err = s.validateTableChoice(ctx, booking, req.TableIDs); err != nil {
				// The request stays pending; the refused attempt is recorded
				// and the caller still gets alternatives alongside the error.
				s.recordRefusedAccept(ctx, booking, user, err)
				s.attachAlternatives(ctx, &res, booking, req.SuggestAlternatives)

				return res, err // nolint:wrapcheck
			}
		}

		tableIDs = req.TableIDs
	case len(tableIDs) == 0:
		free, planErr := s.freeTablesAt(ctx, booking.RestaurantID, booking.Start(), booking.End(), booking.ID)
		if planErr != nil {
			return res, planErr // nolint:wrapcheck
		}

		tableIDs = planAssignment(free, booking.PartySize)
		if tableIDs == nil {
			res.Error = "no table or combination can seat the party"
			s.attachAlternatives(ctx, &res, booking, req.SuggestAlternatives)

			return res, nil
		}
	}

	outcome, err := s.repo.TransitionWithAssignments(ctx, repository.TransitionParams{
		BookingID:       bookingID,
		From:            model.StatusPending,
		To:              model.StatusConfirmed,
		TableIDs:        tableIDs,
		KeepAssignments: req.SkipTableAssignment,
		Force:           req.ForceAccept,
		History:         newHistory(bookingID, model.StatusPending, model.StatusConfirmed, user, "request accepted"),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to accept booking request")

		return res, fmt.Errorf("failed to accept booking request: %w", err)
	}

	if !outcome.Found {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if len(outcome.Conflicts) > 0 {
		res.Error = "requested tables are already booked for this window"
		s.attachAlternatives(ctx, &res, booking, req.SuggestAlternatives)

		return res, nil
	}

	if !outcome.Updated {
		return res, failure.State(fmt.Sprintf("booking is %s, only pending requests can be accepted", outcome.CurrentStatus)) // nolint:wrapcheck
	}

	booking.Status = model.StatusConfirmed
	booking.RequestExpiresAt = nil
	booking.TableIDs = tableIDs

	s.publishStatusEvent(ctx, eventConfirmed, booking)
	s.invalidate(ctx, bookingID)

	res.Success = true
	res.Booking = &dto.BookingResponse{}
	res.Booking.FromModel(booking)

	return res, nil
}

// Decline rejects a pending request. Optionally computes alternative tables
// and slots so staff can answer the guest with options instead of a bare no.
func (s *serviceImpl) Decline(ctx context.Context, bookingID string, req dto.DeclineRequest) (res dto.TransitionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Decline")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getModel(ctx, bookingID)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	if booking.Status != model.StatusPending {
		return res, failure.State(fmt.Sprintf("booking is %s, only pending requests can be declined", booking.Status)) // nolint:wrapcheck
	}

	reason := req.Reason
	if reason == constant.Empty {
		reason = "request declined"
	}

	updated, err := s.repo.TransitionStatus(ctx, bookingID, model.StatusPending, model.StatusDeclinedByRestaurant,
		newHistory(bookingID, model.StatusPending, model.StatusDeclinedByRestaurant, user, reason))
	if err != nil {
		log.Error().Err(err).Msg("failed to decline booking request")

		return res, fmt.Errorf("failed to decline booking request: %w", err)
	}

	if !updated {
		current, _ := s.getModel(ctx, bookingID)

		return res, failure.State(fmt.Sprintf("booking is %s, only pending requests can be declined", current.Status)) // nolint:wrapcheck
	}

	booking.Status = model.StatusDeclinedByRestaurant
	booking.RequestExpiresAt = nil

	s.publishStatusEvent(ctx, eventDeclined, booking)
	s.invalidate(ctx, bookingID)

	res.Success = true
	res.Booking = &dto.BookingResponse{}
	res.Booking.FromModel(booking)
	s.attachAlternatives(ctx, &res, booking, req.SuggestAlternatives)

	return res, nil
}

// Reassign moves a confirmed booking onto a different table set, revalidating
// conflicts inside the same transaction that rewrites the assignments.
func (s *serviceImpl) Reassign(ctx context.Context, bookingID string, req dto.ReassignRequest) (res dto.TransitionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Reassign")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getModel(ctx, bookingID)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	if booking.Status != model.StatusConfirmed {
		return res, failure.State(fmt.Sprintf("booking is %s, only confirmed bookings can be reassigned", booking.Status)) // nolint:wrapcheck
	}

	if err = s.validateTableChoice(ctx, booking, req.TableIDs); err != nil {
		return res, err // nolint:wrapcheck
	}

	outcome, err := s.repo.TransitionWithAssignments(ctx, repository.TransitionParams{
		BookingID: bookingID,
		From:      model.StatusConfirmed,
		To:        model.StatusConfirmed,
		TableIDs:  req.TableIDs,
		History:   newHistory(bookingID, model.StatusConfirmed, model.StatusConfirmed, user, "tables reassigned"),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to reassign tables")

		return res, fmt.Errorf("failed to reassign tables: %w", err)
	}

	if !outcome.Found {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if len(outcome.Conflicts) > 0 {
		res.Error = "requested tables are already booked for this window"

		return res, nil
	}

	if !outcome.Updated {
		return res, failure.State(fmt.Sprintf("booking is %s, only confirmed bookings can be reassigned", outcome.CurrentStatus)) // nolint:wrapcheck
	}

	booking.TableIDs = req.TableIDs

	s.publishStatusEvent(ctx, eventReassigned, booking)
	s.invalidate(ctx, bookingID)

	res.Success = true
	res.Booking = &dto.BookingResponse{}
	res.Booking.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	booking, err := s.getModel(ctx, id)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByCode(ctx context.Context, code string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(code, model.FieldConfirmationCode, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking by code")

		return res, fmt.Errorf("failed to get booking by code: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) History(ctx context.Context, bookingID string) (res []dto.HistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.History")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getModel(ctx, bookingID); err != nil {
		return nil, err // nolint:wrapcheck
	}

	rows, err := s.repo.ListHistory(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list booking history")

		return nil, fmt.Errorf("failed to list booking history: %w", err)
	}

	res = make([]dto.HistoryResponse, len(rows))
	for i, row := range rows {
		res[i].FromModel(row)
	}

	return res, nil
}

// resolveTables turns the caller's explicit table choice into a validated
// assignment, or plans one from the free set when no tables were pinned.
func (s *serviceImpl) resolveTables(ctx context.Context, booking model.Booking, requested []string) ([]string, error) {
	if len(requested) > 0 {
		if err := s.validateTableChoice(ctx, booking, requested); err != nil {
			return nil, err
		}

		conflicts, err := s.conflictsFor(ctx, booking.RestaurantID, requested, booking.Start(), booking.End(), booking.ID)
		if err != nil {
			return nil, err
		}

		if len(conflicts) > 0 {
			return nil, failure.Conflict("requested tables are already booked for this window") // nolint:wrapcheck
		}

		return requested, nil
	}

	free, err := s.freeTablesAt(ctx, booking.RestaurantID, booking.Start(), booking.End(), booking.ID)
	if err != nil {
		return nil, err
	}

	tableIDs := planAssignment(free, booking.PartySize)
	if tableIDs == nil {
		return nil, failure.Capacity("no table or combination can seat the party") // nolint:wrapcheck
	}

	return tableIDs, nil
}

// validateTableChoice checks that explicitly chosen tables exist, are active,
// and can jointly seat the party.
func (s *serviceImpl) validateTableChoice(ctx context.Context, booking model.Booking, tableIDs []string) error {
	if len(tableIDs) > maxCombinationSize {
		return failure.Validation(fmt.Sprintf("at most %d tables may be combined", maxCombinationSize)) // nolint:wrapcheck
	}

	tables, err := s.tableRepo.GetByIDs(ctx, booking.RestaurantID, tableIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to load requested tables")

		return fmt.Errorf("failed to load requested tables: %w", err)
	}

	if len(tables) != len(tableIDs) {
		return failure.NotFound("one or more requested tables do not exist") // nolint:wrapcheck
	}

	totalCapacity, totalMin := 0, 0

	for _, t := range tables {
		if !t.IsActive {
			return failure.Validation(fmt.Sprintf("table %s is not active", t.Name)) // nolint:wrapcheck
		}

		totalCapacity += t.Capacity
		totalMin += t.MinCapacity
	}

	if len(tables) > 1 {
		for i := range tables {
			for j := i + 1; j < len(tables); j++ {
				if !tables[i].AllowsPairing(tables[j].ID) || !tables[j].AllowsPairing(tables[i].ID) {
					return failure.Validation(fmt.Sprintf("tables %s and %s cannot be combined", tables[i].Name, tables[j].Name)) // nolint:wrapcheck
				}
			}
		}
	}

	if booking.PartySize > totalCapacity || booking.PartySize < totalMin {
		return failure.Capacity(fmt.Sprintf("requested tables seat %d-%d, party is %d", totalMin, totalCapacity, booking.PartySize)) // nolint:wrapcheck
	}

	return nil
}

// recordRefusedAccept appends an audit row for an accept attempt that failed
// revalidation. Best-effort: the refusal itself does not depend on it.
func (s *serviceImpl) recordRefusedAccept(ctx context.Context, booking model.Booking, actor string, cause error) {
	history := newHistory(booking.ID, booking.Status, booking.Status, actor, "accept refused: "+cause.Error())

	if err := s.repo.AppendHistory(ctx, history); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to record refused accept attempt")
	}
}

func (s *serviceImpl) getModel(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()
}

func newHistory(bookingID string, from, to model.Status, actor, reason string) model.StatusHistory {
	return model.StatusHistory{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		OldStatus: from,
		NewStatus: to,
		ChangedBy: actor,
		ChangedAt: timezone.Now(),
		Reason:    reason,
	}
}
