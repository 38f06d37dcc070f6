package booking

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"tably/infras/otel"
	"tably/internal/domains/booking/model"
	"tably/internal/domains/booking/model/dto"
	"tably/internal/domains/booking/service"
	"tably/shared/constant"
	gDto "tably/shared/dto"
	"tably/shared/failure"
	"tably/shared/validator"
	"tably/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth func(http.Handler) http.Handler) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		// Guest-facing endpoints need no credentials.
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Get("/free-tables", handler.GetFreeTables)
		routerGroup.Get("/code/{code}", handler.GetBookingByCode)

		// Staff endpoints.
		routerGroup.Group(func(staff chi.Router) {
			staff.Use(auth)
			staff.Get("/", handler.GetBookings)
			staff.Get("/{id}", handler.GetBookingByID)
			staff.Get("/{id}/history", handler.GetBookingHistory)
			staff.Post("/{id}/accept", handler.AcceptBooking)
			staff.Post("/{id}/decline", handler.DeclineBooking)
			staff.Post("/{id}/reassign", handler.ReassignBooking)
			staff.Post("/sweep-expired", handler.SweepExpired)
		})
	})
}

// CreateBooking places a new booking or booking request.
// @Summary Create a booking
// @Description Place a booking. Depending on the restaurant's policy it is confirmed immediately or held pending staff approval.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.CreateBookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings lists bookings filtered by restaurant and status.
// @Summary Get bookings
// @Description Retrieve bookings with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param restaurant_id query string false "Filter by restaurant"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	restaurantID := r.URL.Query().Get(model.FieldRestaurantID)
	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRestaurantID,
				Operator: gDto.FilterOperatorEq,
				Value:    restaurantID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    status,
				Table:    model.TableName,
			},
		},
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves one booking.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookingByCode looks a booking up by its confirmation code.
// @Summary Get a booking by confirmation code
// @Tags Booking
// @Produce json
// @Param code path string true "Confirmation code"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/code/{code} [get]
func (handler *Handler) GetBookingByCode(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByCode")
	defer scope.End()

	code := chi.URLParam(r, constant.RequestParamCode)

	booking, err := handler.service.GetByCode(ctx, code)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by code")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// GetBookingHistory returns the audit trail of a booking's transitions.
// @Summary Get booking status history
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.HistoryResponse] "Status history"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/history [get]
// @Security BearerAuth
func (handler *Handler) GetBookingHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingHistory")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	history, err := handler.service.History(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking history")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking history retrieved successfully")

	response.WithJSON(w, http.StatusOK, history)
}

// AcceptBooking confirms a pending booking request.
// @Summary Accept a booking request
// @Description Confirm a pending request. Conflicts and capacity problems come back in the response body with optional alternatives.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.AcceptRequest true "Accept Request"
// @Success 200 {object} response.Data[dto.TransitionResponse] "Transition result"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 410 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/accept [post]
// @Security BearerAuth
func (handler *Handler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.AcceptRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Accept(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to accept booking request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking accept processed")

	response.WithJSON(w, http.StatusOK, res)
}

// DeclineBooking rejects a pending booking request.
// @Summary Decline a booking request
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.DeclineRequest true "Decline Request"
// @Success 200 {object} response.Data[dto.TransitionResponse] "Transition result"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/decline [post]
// @Security BearerAuth
func (handler *Handler) DeclineBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeclineBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.DeclineRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Decline(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decline booking request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking declined successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// ReassignBooking moves a confirmed booking to different tables.
// @Summary Reassign a booking's tables
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ReassignRequest true "Reassign Request"
// @Success 200 {object} response.Data[dto.TransitionResponse] "Transition result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/reassign [post]
// @Security BearerAuth
func (handler *Handler) ReassignBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReassignBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ReassignRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Reassign(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reassign booking tables")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking tables reassigned")

	response.WithJSON(w, http.StatusOK, res)
}

// CheckAvailability reports whether tables are free for a window.
// @Summary Check table availability
// @Description Report whether the given tables are free for a window, with the conflicting bookings when they are not.
// @Tags Booking
// @Produce json
// @Param restaurant_id query string true "Restaurant ID"
// @Param table_ids query string true "Comma-separated table IDs"
// @Param start_time query string true "Window start (RFC3339)"
// @Param duration_minutes query int false "Window length in minutes"
// @Param exclude_booking_id query string false "Booking to ignore during the scan"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	query := r.URL.Query()

	restaurantID := query.Get(model.FieldRestaurantID)
	if restaurantID == constant.Empty {
		response.WithError(w, failure.Validation("restaurant_id is required"))

		return
	}

	tableIDs := splitIDs(query.Get("table_ids"))
	if len(tableIDs) == 0 {
		response.WithError(w, failure.Validation("table_ids is required"))

		return
	}

	start, err := time.Parse(constant.DateFormat, query.Get("start_time"))
	if err != nil {
		response.WithError(w, failure.Validation("start_time must be RFC3339"))

		return
	}

	duration, _ := strconv.Atoi(query.Get("duration_minutes"))
	excludeBookingID := query.Get("exclude_booking_id")

	res, err := handler.service.CheckAvailability(ctx, restaurantID, tableIDs, start, duration, excludeBookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability checked")

	response.WithJSON(w, http.StatusOK, res)
}

// GetFreeTables lists tables and combinations free for a slot.
// @Summary Get free tables for a slot
// @Description Partition the roster into free single tables that seat the party and valid table combinations.
// @Tags Booking
// @Produce json
// @Param restaurant_id query string true "Restaurant ID"
// @Param start_time query string true "Slot start (RFC3339)"
// @Param duration_minutes query int false "Slot length in minutes"
// @Param party_size query int true "Party size"
// @Success 200 {object} response.Data[dto.FreeTablesResponse] "Free tables"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/free-tables [get]
func (handler *Handler) GetFreeTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFreeTables")
	defer scope.End()

	query := r.URL.Query()

	restaurantID := query.Get(model.FieldRestaurantID)
	if restaurantID == constant.Empty {
		response.WithError(w, failure.Validation("restaurant_id is required"))

		return
	}

	start, err := time.Parse(constant.DateFormat, query.Get("start_time"))
	if err != nil {
		response.WithError(w, failure.Validation("start_time must be RFC3339"))

		return
	}

	partySize, err := strconv.Atoi(query.Get(model.FieldPartySize))
	if err != nil || partySize <= 0 {
		response.WithError(w, failure.Validation("party_size must be a positive integer"))

		return
	}

	duration, _ := strconv.Atoi(query.Get("duration_minutes"))

	res, err := handler.service.GetFreeTables(ctx, restaurantID, start, duration, partySize)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get free tables")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Free tables retrieved")

	response.WithJSON(w, http.StatusOK, res)
}

// SweepExpired auto-declines the overdue booking requests of a restaurant.
// @Summary Sweep expired booking requests
// @Description Auto-decline every pending request of the restaurant whose deadline has passed.
// @Tags Booking
// @Produce json
// @Param restaurant_id query string true "Restaurant ID"
// @Success 200 {object} response.Data[dto.SweepResponse] "Sweep result"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/sweep-expired [post]
// @Security BearerAuth
func (handler *Handler) SweepExpired(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SweepExpired")
	defer scope.End()

	restaurantID := r.URL.Query().Get(model.FieldRestaurantID)
	if restaurantID == constant.Empty {
		response.WithError(w, failure.Validation("restaurant_id is required"))

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.AutoDeclineExpired(ctx, restaurantID, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sweep expired booking requests")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Expired booking requests swept")

	response.WithJSON(w, http.StatusOK, res)
}

func splitIDs(raw string) []string {
	if raw == constant.Empty {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))

	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != constant.Empty {
			ids = append(ids, trimmed)
		}
	}

	return ids
}
