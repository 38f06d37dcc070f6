package dto

import (
	"time"

	"tably/internal/domains/booking/model"
	tableModel "tably/internal/domains/table/model"
	"tably/shared"
	"tably/shared/constant"
	gDto "tably/shared/dto"
	gModel "tably/shared/model"
	"tably/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RestaurantID    string   `json:"restaurant_id"     validate:"required"`
	GuestName       string   `json:"guest_name"        validate:"required,max=100"`
	GuestEmail      string   `json:"guest_email"       validate:"omitempty,email,max=100"`
	GuestPhone      string   `json:"guest_phone"       validate:"omitempty,max=20"`
	PartySize       int      `json:"party_size"        validate:"required,gt=0"`
	BookingTime     string   `json:"booking_time"      validate:"required"`
	TurnTimeMinutes int      `json:"turn_time_minutes" validate:"omitempty,gt=0"`
	TableIDs        []string `json:"table_ids"         validate:"omitempty,dive,required"`
	Notes           string   `json:"notes"             validate:"omitempty,max=500"`
	// WalkIn bookings may start immediately and skip the future-dated check.
	WalkIn bool `json:"walk_in"`
}

func (c *CreateBookingRequest) ToModel(user string, turnTime int) (model.Booking, error) {
	bookingTime, err := time.Parse(constant.DateFormat, c.BookingTime)
	if err != nil {
		return model.Booking{}, err
	}

	if c.TurnTimeMinutes > 0 {
		turnTime = c.TurnTimeMinutes
	}

	return model.Booking{
		ID:              uuid.NewString(),
		RestaurantID:    c.RestaurantID,
		GuestName:       c.GuestName,
		GuestEmail:      c.GuestEmail,
		GuestPhone:      c.GuestPhone,
		PartySize:       c.PartySize,
		BookingTime:     bookingTime,
		TurnTimeMinutes: turnTime,
		Status:          model.StatusPending,
		Notes:           c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type CreateBookingResponse struct {
	Booking          BookingResponse `json:"booking"`
	IsRequest        bool            `json:"is_request"`
	ExpiresAt        *string         `json:"expires_at,omitempty"`
	ConfirmationCode string          `json:"confirmation_code"`
}

type AcceptRequest struct {
	TableIDs            []string `json:"table_ids"             validate:"omitempty,dive,required"`
	ForceAccept         bool     `json:"force_accept"`
	SkipTableAssignment bool     `json:"skip_table_assignment"`
	SuggestAlternatives bool     `json:"suggest_alternatives"`
}

type DeclineRequest struct {
	Reason              string `json:"reason"               validate:"omitempty,max=500"`
	SuggestAlternatives bool   `json:"suggest_alternatives"`
}

type ReassignRequest struct {
	TableIDs []string `json:"table_ids" validate:"required,min=1,dive,required"`
}

// Alternatives carries suggestions computed for a failed or declined request.
type Alternatives struct {
	Tables []TableOption `json:"tables,omitempty"`
	Slots  []SlotOption  `json:"slots,omitempty"`
}

type TableOption struct {
	TableIDs      []string `json:"table_ids"`
	TotalCapacity int      `json:"total_capacity"`
}

type SlotOption struct {
	Time           string `json:"time"`
	FreeTableCount int    `json:"free_table_count"`
}

type TransitionResponse struct {
	Success      bool             `json:"success"`
	Booking      *BookingResponse `json:"booking,omitempty"`
	Error        string           `json:"error,omitempty"`
	Alternatives *Alternatives    `json:"alternatives,omitempty"`
}

type AvailabilityResponse struct {
	Available bool             `json:"available"`
	Reason    string           `json:"reason,omitempty"`
	Conflicts []model.Conflict `json:"conflicts"`
	TableIDs  []string         `json:"table_ids"`
}

type FreeTablesResponse struct {
	SingleTables []TableSummary      `json:"single_tables"`
	Combinations []CombinationOption `json:"combinations"`
	Reason       string              `json:"reason,omitempty"`
}

type TableSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Capacity      int    `json:"capacity"`
	MinCapacity   int    `json:"min_capacity"`
	PriorityScore int    `json:"priority_score"`
}

func TableSummaryFromModel(t tableModel.Table) TableSummary {
	return TableSummary{
		ID:            t.ID,
		Name:          t.Name,
		Capacity:      t.Capacity,
		MinCapacity:   t.MinCapacity,
		PriorityScore: t.PriorityScore,
	}
}

type CombinationOption struct {
	TableIDs         []string `json:"table_ids"`
	TotalCapacity    int      `json:"total_capacity"`
	TotalMinCapacity int      `json:"total_min_capacity"`
}

type SweepResponse struct {
	DeclinedCount    int               `json:"declined_count"`
	DeclinedBookings []BookingResponse `json:"declined_bookings"`
	Errors           []string          `json:"errors"`
}

type BookingResponse struct {
	ID               string   `json:"id"`
	RestaurantID     string   `json:"restaurant_id"`
	GuestName        string   `json:"guest_name"`
	GuestEmail       string   `json:"guest_email"`
	GuestPhone       string   `json:"guest_phone"`
	PartySize        int      `json:"party_size"`
	BookingTime      string   `json:"booking_time"`
	EndTime          string   `json:"end_time"`
	TurnTimeMinutes  int      `json:"turn_time_minutes"`
	Status           string   `json:"status"`
	RequestExpiresAt *string  `json:"request_expires_at,omitempty"`
	ConfirmationCode string   `json:"confirmation_code"`
	TableIDs         []string `json:"table_ids"`
	Notes            string   `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.RestaurantID = mod.RestaurantID
	r.GuestName = mod.GuestName
	r.GuestEmail = mod.GuestEmail
	r.GuestPhone = mod.GuestPhone
	r.PartySize = mod.PartySize
	r.BookingTime = timezone.Format(mod.BookingTime, constant.DateFormat)
	r.EndTime = timezone.Format(mod.End(), constant.DateFormat)
	r.TurnTimeMinutes = mod.TurnTimeMinutes
	r.Status = string(mod.Status)
	r.ConfirmationCode = mod.ConfirmationCode
	r.TableIDs = mod.TableIDs
	r.Notes = mod.Notes

	if mod.RequestExpiresAt != nil {
		expires := timezone.Format(*mod.RequestExpiresAt, constant.DateFormat)
		r.RequestExpiresAt = &expires
	}

	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type HistoryResponse struct {
	BookingID string `json:"booking_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedBy string `json:"changed_by"`
	ChangedAt string `json:"changed_at"`
	Reason    string `json:"reason,omitempty"`
}

func (r *HistoryResponse) FromModel(mod model.StatusHistory) {
	r.BookingID = mod.BookingID
	r.OldStatus = string(mod.OldStatus)
	r.NewStatus = string(mod.NewStatus)
	r.ChangedBy = mod.ChangedBy
	r.ChangedAt = timezone.Format(mod.ChangedAt, constant.DateFormat)
	r.Reason = mod.Reason
}
