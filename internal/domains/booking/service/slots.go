package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"tably/internal/domains/booking/model"
	"tably/internal/domains/booking/model/dto"
	"tably/shared/constant"
	"tably/shared/timezone"
)

const (
	maxAlternativeTables = 3
	maxAlternativeSlots  = 4
)

// slotOffsets are the nearby start times probed when suggesting alternatives,
// nearest first.
var slotOffsets = []time.Duration{
	-30 * time.Minute,
	30 * time.Minute,
	-60 * time.Minute,
	60 * time.Minute,
	-90 * time.Minute,
	90 * time.Minute,
}

// attachAlternatives fills the response with nearby options when the caller
// asked for them. Suggestion failures only get logged: the transition result
// must not depend on a best-effort extra.
func (s *serviceImpl) attachAlternatives(ctx context.Context, res *dto.TransitionResponse, booking model.Booking, wanted bool) {
	if !wanted {
		return
	}

	alternatives := &dto.Alternatives{}

	free, err := s.freeTablesAt(ctx, booking.RestaurantID, booking.Start(), booking.End(), booking.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute alternative tables")
	} else {
		for _, t := range free {
			if !t.FitsParty(booking.PartySize) {
				continue
			}

			alternatives.Tables = append(alternatives.Tables, dto.TableOption{
				TableIDs:      []string{t.ID},
				TotalCapacity: t.Capacity,
			})

			if len(alternatives.Tables) == maxAlternativeTables {
				break
			}
		}

		if len(alternatives.Tables) < maxAlternativeTables {
			for _, combo := range generateCombinations(free, booking.PartySize) {
				alternatives.Tables = append(alternatives.Tables, dto.TableOption{
					TableIDs:      combo.ids(),
					TotalCapacity: combo.totalCapacity(),
				})

				if len(alternatives.Tables) == maxAlternativeTables {
					break
				}
			}
		}
	}

	alternatives.Slots = s.alternativeSlots(ctx, booking)

	if len(alternatives.Tables) > 0 || len(alternatives.Slots) > 0 {
		res.Alternatives = alternatives
	}
}

// alternativeSlots probes nearby start times for the same party and reports
// those with at least one free table.
func (s *serviceImpl) alternativeSlots(ctx context.Context, booking model.Booking) []dto.SlotOption {
	var slots []dto.SlotOption

	now := timezone.Now()

	for _, offset := range slotOffsets {
		if len(slots) == maxAlternativeSlots {
			break
		}

		candidate := booking.BookingTime.Add(offset)
		if candidate.Before(now) {
			continue
		}

		decision, err := s.restaurant.IsOpen(ctx, booking.RestaurantID, candidate)
		if err != nil || !decision.Open {
			continue
		}

		end := candidate.Add(time.Duration(booking.TurnTimeMinutes) * time.Minute)

		free, err := s.freeTablesAt(ctx, booking.RestaurantID, candidate, end, booking.ID)
		if err != nil {
			log.Error().Err(err).Msg("failed to probe alternative slot")

			continue
		}

		fitting := 0

		for _, t := range free {
			if t.FitsParty(booking.PartySize) {
				fitting++
			}
		}

		if fitting == 0 && len(generateCombinations(free, booking.PartySize)) == 0 {
			continue
		}

		slots = append(slots, dto.SlotOption{
			Time:           timezone.Format(candidate, constant.DateFormat),
			FreeTableCount: fitting,
		})
	}

	return slots
}
