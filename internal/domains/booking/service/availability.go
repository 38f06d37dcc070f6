package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tably/internal/domains/booking/model"
	"tably/internal/domains/booking/model/dto"
	tableModel "tably/internal/domains/table/model"
	"tably/shared/constant"
)

// conflictLookback bounds how far back a candidate booking may start and
// still overlap the requested window. Creation caps turn times at the same
// bound (config MaxTurnTimeMinutes), so no booking can start earlier and
// still be running.
const conflictLookback = 24 * time.Hour

// CheckAvailability answers whether the given tables are free for the window
// starting at start. A closed restaurant short-circuits before any conflict
// scan; a free window is reported explicitly rather than by absence of error.
func (s *serviceImpl) CheckAvailability(ctx context.Context, restaurantID string, tableIDs []string, start time.Time, durationMinutes int, excludeBookingID string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if durationMinutes <= 0 {
		durationMinutes = s.turnTimeFor(ctx, restaurantID)
	}

	res.TableIDs = tableIDs
	res.Conflicts = []model.Conflict{}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	// The restaurant must be open for the whole window, not just its start.
	for _, at := range []time.Time{start, end} {
		decision, openErr := s.restaurant.IsOpen(ctx, restaurantID, at)
		if openErr != nil {
			return res, openErr // nolint:wrapcheck
		}

		if !decision.Open {
			res.Reason = decision.Reason

			return res, nil
		}
	}

	conflicts, err := s.conflictsFor(ctx, restaurantID, tableIDs, start, end, excludeBookingID)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	if len(conflicts) > 0 {
		res.Conflicts = conflicts
		res.Reason = "one or more tables are already booked for this window"

		return res, nil
	}

	res.Available = true

	return res, nil
}

// GetFreeTables partitions the roster for a slot into single tables that seat
// the party and valid combinations of the remaining free tables.
func (s *serviceImpl) GetFreeTables(ctx context.Context, restaurantID string, start time.Time, durationMinutes, partySize int) (res dto.FreeTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetFreeTables")
	defer scope.End()
	defer scope.TraceIfError(err)

	if durationMinutes <= 0 {
		durationMinutes = s.turnTimeFor(ctx, restaurantID)
	}

	res.SingleTables = []dto.TableSummary{}
	res.Combinations = []dto.CombinationOption{}

	decision, err := s.restaurant.IsOpen(ctx, restaurantID, start)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	if !decision.Open {
		res.Reason = decision.Reason

		return res, nil
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	free, err := s.freeTablesAt(ctx, restaurantID, start, end, constant.Empty)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	for _, t := range free {
		if t.FitsParty(partySize) {
			res.SingleTables = append(res.SingleTables, dto.TableSummaryFromModel(t))
		}
	}

	for _, combo := range generateCombinations(free, partySize) {
		res.Combinations = append(res.Combinations, dto.CombinationOption{
			TableIDs:         combo.ids(),
			TotalCapacity:    combo.totalCapacity(),
			TotalMinCapacity: combo.totalMinCapacity(),
		})
	}

	return res, nil
}

// conflictsFor scans non-terminal bookings around the window and reports
// those occupying one of the requested tables. The overlap decision itself
// lives in model.Overlaps.
func (s *serviceImpl) conflictsFor(ctx context.Context, restaurantID string, tableIDs []string, start, end time.Time, excludeBookingID string) ([]model.Conflict, error) {
	if len(tableIDs) == 0 {
		return nil, nil
	}

	candidates, err := s.repo.GetActiveBetween(ctx, restaurantID, start.Add(-conflictLookback), end, excludeBookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load candidate bookings")

		return nil, fmt.Errorf("failed to load candidate bookings: %w", err)
	}

	requested := make(map[string]struct{}, len(tableIDs))
	for _, id := range tableIDs {
		requested[id] = struct{}{}
	}

	var conflicts []model.Conflict

	for _, c := range candidates {
		if !c.Status.Occupying() || !model.Overlaps(start, end, c.Start(), c.End()) {
			continue
		}

		for _, tableID := range c.TableIDs {
			if _, ok := requested[tableID]; !ok {
				continue
			}

			conflicts = append(conflicts, model.Conflict{
				BookingID:   c.ID,
				TableID:     tableID,
				GuestName:   c.GuestName,
				PartySize:   c.PartySize,
				BookingTime: c.BookingTime,
				EndTime:     c.End(),
			})
		}
	}

	return conflicts, nil
}

// freeTablesAt returns the active tables with no occupying booking in the window.
func (s *serviceImpl) freeTablesAt(ctx context.Context, restaurantID string, start, end time.Time, excludeBookingID string) ([]tableModel.Table, error) {
	roster, err := s.tableRepo.GetActiveByRestaurant(ctx, restaurantID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load table roster")

		return nil, fmt.Errorf("failed to load table roster: %w", err)
	}

	candidates, err := s.repo.GetActiveBetween(ctx, restaurantID, start.Add(-conflictLookback), end, excludeBookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load candidate bookings")

		return nil, fmt.Errorf("failed to load candidate bookings: %w", err)
	}

	occupied := map[string]struct{}{}

	for _, c := range candidates {
		if !c.Status.Occupying() || !model.Overlaps(start, end, c.Start(), c.End()) {
			continue
		}

		for _, tableID := range c.TableIDs {
			occupied[tableID] = struct{}{}
		}
	}

	var free []tableModel.Table

	for _, t := range roster {
		if _, taken := occupied[t.ID]; !taken {
			free = append(free, t)
		}
	}

	return free, nil
}

func (s *serviceImpl) turnTimeFor(ctx context.Context, restaurantID string) int {
	schedule, err := s.restaurant.GetSchedule(ctx, restaurantID)
	if err == nil && schedule.Restaurant.DefaultTurnTimeMinutes > 0 {
		return schedule.Restaurant.DefaultTurnTimeMinutes
	}

	return s.cfg.Booking.DefaultTurnTimeMinutes
}
