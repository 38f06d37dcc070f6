package dto

import (
	"tably/internal/domains/restaurant/model"
	"tably/shared"
	gDto "tably/shared/dto"
	gModel "tably/shared/model"
	"tably/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateRestaurantRequest struct {
	Name                   string `json:"name"                      validate:"required,max=100"`
	Timezone               string `json:"timezone"                  validate:"required"`
	BookingPolicy          string `json:"booking_policy"            validate:"required,oneof=instant request"`
	RequestExpiryHours     int    `json:"request_expiry_hours"      validate:"omitempty,gt=0"`
	DefaultTurnTimeMinutes int    `json:"default_turn_time_minutes" validate:"omitempty,gt=0"`
	AutoDeclineEnabled     bool   `json:"auto_decline_enabled"`
}

func (c *CreateRestaurantRequest) ToModel(user string, defaultTurnTime int) model.Restaurant {
	expiry := c.RequestExpiryHours
	if expiry == 0 {
		expiry = 24
	}

	turnTime := c.DefaultTurnTimeMinutes
	if turnTime == 0 {
		turnTime = defaultTurnTime
	}

	return model.Restaurant{
		ID:                     uuid.NewString(),
		Name:                   c.Name,
		Timezone:               c.Timezone,
		BookingPolicy:          model.BookingPolicy(c.BookingPolicy),
		RequestExpiryHours:     expiry,
		AutoDeclineEnabled:     c.AutoDeclineEnabled,
		DefaultTurnTimeMinutes: turnTime,
		IsActive:               true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRestaurantRequest struct {
	Name                   string `db:"name"                      json:"name"                      validate:"omitempty,max=100"`
	Timezone               string `db:"timezone"                  json:"timezone"                  validate:"omitempty"`
	BookingPolicy          string `db:"booking_policy"            json:"booking_policy"            validate:"omitempty,oneof=instant request"`
	RequestExpiryHours     int    `db:"request_expiry_hours"      json:"request_expiry_hours"      validate:"omitempty,gt=0"`
	DefaultTurnTimeMinutes int    `db:"default_turn_time_minutes" json:"default_turn_time_minutes" validate:"omitempty,gt=0"`
}

// WindowRequest is one weekly service window in "15:04" wall-clock time.
type WindowRequest struct {
	Weekday  int    `json:"weekday"   validate:"gte=0,lte=6"`
	OpensAt  string `json:"opens_at"  validate:"required,len=5"`
	ClosesAt string `json:"closes_at" validate:"required,len=5"`
}

// SetHoursRequest replaces the whole weekly schedule in one call.
type SetHoursRequest struct {
	Windows []WindowRequest `json:"windows" validate:"required,dive"`
}

func (r *SetHoursRequest) ToModels(restaurantID string) []model.OperatingWindow {
	windows := make([]model.OperatingWindow, len(r.Windows))
	for i, w := range r.Windows {
		windows[i] = model.OperatingWindow{
			ID:           uuid.NewString(),
			RestaurantID: restaurantID,
			Weekday:      w.Weekday,
			OpensAt:      w.OpensAt,
			ClosesAt:     w.ClosesAt,
		}
	}

	return windows
}

type ClosureRequest struct {
	StartsAt string `json:"starts_at" validate:"required"`
	EndsAt   string `json:"ends_at"   validate:"required"`
	Reason   string `json:"reason"    validate:"omitempty,max=200"`
}

func (c *ClosureRequest) ToModel(restaurantID string) (model.SpecialClosure, error) {
	startsAt, err := time.Parse(time.RFC3339, c.StartsAt)
	if err != nil {
		return model.SpecialClosure{}, err //nolint:wrapcheck
	}

	endsAt, err := time.Parse(time.RFC3339, c.EndsAt)
	if err != nil {
		return model.SpecialClosure{}, err //nolint:wrapcheck
	}

	return model.SpecialClosure{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		Reason:       c.Reason,
	}, nil
}

type RestaurantResponse struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Timezone               string `json:"timezone"`
	BookingPolicy          string `json:"booking_policy"`
	RequestExpiryHours     int    `json:"request_expiry_hours"`
	AutoDeclineEnabled     bool   `json:"auto_decline_enabled"`
	DefaultTurnTimeMinutes int    `json:"default_turn_time_minutes"`
	IsActive               bool   `json:"is_active"`
	gDto.Metadata
}

func (r *RestaurantResponse) FromModel(mod model.Restaurant) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Timezone = mod.Timezone
	r.BookingPolicy = string(mod.BookingPolicy)
	r.RequestExpiryHours = mod.RequestExpiryHours
	r.AutoDeclineEnabled = mod.AutoDeclineEnabled
	r.DefaultTurnTimeMinutes = mod.DefaultTurnTimeMinutes
	r.IsActive = mod.IsActive
	r.Metadata.FromModel(mod.Metadata)
}

type GetRestaurantsResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetRestaurantsResponse) FromModels(models []model.Restaurant, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Restaurants = make([]RestaurantResponse, len(models))
	for i, mod := range models {
		r.Restaurants[i].FromModel(mod)
	}
}

type ScheduleResponse struct {
	Restaurant RestaurantResponse      `json:"restaurant"`
	Windows    []model.OperatingWindow `json:"windows"`
	Closures   []model.SpecialClosure  `json:"closures"`
}
