package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"tably/internal/domains/booking/model"
	"tably/internal/domains/booking/model/dto"
	"tably/shared/constant"
	"tably/shared/failure"
	"tably/shared/timezone"
)

// expiredReason is the history annotation for every expiry-driven decline,
// whether the sweeper found the booking or an accept call tripped over it.
const expiredReason = "Request expired automatically"

// AutoDeclineExpired moves every overdue pending request of the restaurant to
// auto_declined. Each booking is handled on its own: one failure neither
// stops the sweep nor taints the others. Bookings accepted or declined
// concurrently lose the conditional update and are skipped, which makes the
// sweep idempotent.
func (s *serviceImpl) AutoDeclineExpired(ctx context.Context, restaurantID, actorID string) (res dto.SweepResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.AutoDeclineExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actorID == constant.Empty {
		actorID = constant.ActorSystem
	}

	res.DeclinedBookings = []dto.BookingResponse{}
	res.Errors = []string{}

	expired, err := s.repo.ListExpired(ctx, restaurantID, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to list expired booking requests")

		return res, fmt.Errorf("failed to list expired booking requests: %w", err)
	}

	for _, booking := range expired {
		updated, transitionErr := s.repo.TransitionStatus(ctx, booking.ID, model.StatusPending, model.StatusAutoDeclined,
			newHistory(booking.ID, model.StatusPending, model.StatusAutoDeclined, actorID, expiredReason))
		if transitionErr != nil {
			log.Error().Err(transitionErr).Str("bookingID", booking.ID).Msg("failed to auto-decline booking request")
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", booking.ID, transitionErr))

			continue
		}

		if !updated {
			// Someone accepted or declined it since the listing; not ours.
			continue
		}

		booking.Status = model.StatusAutoDeclined
		booking.RequestExpiresAt = nil

		s.publishStatusEvent(ctx, eventAutoDecl, booking)
		s.invalidate(ctx, booking.ID)

		resp := dto.BookingResponse{}
		resp.FromModel(booking)

		res.DeclinedCount++
		res.DeclinedBookings = append(res.DeclinedBookings, resp)
	}

	return res, nil
}

// SweepAll runs the expiry sweep for every restaurant that currently has
// overdue requests. Used by the scheduled job.
func (s *serviceImpl) SweepAll(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".booking.SweepAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	ids, err := s.repo.ListRestaurantIDsWithExpired(ctx, timezone.Now())
	if err != nil {
		return fmt.Errorf("failed to list restaurants with expired requests: %w", err)
	}

	var failed int

	for _, restaurantID := range ids {
		res, sweepErr := s.AutoDeclineExpired(ctx, restaurantID, constant.ActorSystem)
		if sweepErr != nil {
			log.Error().Err(sweepErr).Str("restaurantID", restaurantID).Msg("sweep failed for restaurant")
			failed++

			continue
		}

		if res.DeclinedCount > 0 || len(res.Errors) > 0 {
			log.Info().
				Str("restaurantID", restaurantID).
				Int("declined", res.DeclinedCount).
				Int("errors", len(res.Errors)).
				Msg("expired booking requests swept")
		}
	}

	if failed > 0 {
		return failure.System(fmt.Sprintf("sweep failed for %d of %d restaurants", failed, len(ids))) // nolint:wrapcheck
	}

	return nil
}
