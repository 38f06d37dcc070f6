package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"tably/infras/kafka"
	"tably/internal/domains/booking/model"
	"tably/shared/constant"
	"tably/shared/timezone"
)

const (
	eventCreated    = "booking_created"
	eventConfirmed  = "booking_confirmed"
	eventDeclined   = "booking_declined"
	eventAutoDecl   = "booking_auto_declined"
	eventReassigned = "booking_tables_reassigned"
)

type statusEvent struct {
	EventType    string   `json:"event_type"`
	BookingID    string   `json:"booking_id"`
	RestaurantID string   `json:"restaurant_id"`
	Status       string   `json:"status"`
	PartySize    int      `json:"party_size"`
	BookingTime  string   `json:"booking_time"`
	TableIDs     []string `json:"table_ids"`
	OccurredAt   string   `json:"occurred_at"`
}

// publishStatusEvent emits a lifecycle event after the transition committed.
// Delivery is best effort; the booking state is already durable.
func (s *serviceImpl) publishStatusEvent(ctx context.Context, eventType string, booking model.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := statusEvent{
		EventType:    eventType,
		BookingID:    booking.ID,
		RestaurantID: booking.RestaurantID,
		Status:       string(booking.Status),
		PartySize:    booking.PartySize,
		BookingTime:  timezone.Format(booking.BookingTime, constant.DateFormat),
		TableIDs:     booking.TableIDs,
		OccurredAt:   timezone.Format(timezone.Now(), constant.DateFormat),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: booking.ID, Value: event}

		if err := s.kafka.SendMessages(c, constant.KafkaTopicBookingStatus, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish booking status event")
		}
	}()
}
