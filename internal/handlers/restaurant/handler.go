package restaurant

import (
	"net/http"
	"time"

	"tably/infras/otel"
	"tably/internal/domains/restaurant/model"
	"tably/internal/domains/restaurant/model/dto"
	"tably/internal/domains/restaurant/service"
	"tably/shared/constant"
	gDto "tably/shared/dto"
	"tably/shared/failure"
	"tably/shared/validator"
	"tably/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Restaurant
	otel    otel.Otel
}

func New(service service.Restaurant, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth func(http.Handler) http.Handler) {
	router.Route("/restaurants", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRestaurants)
		routerGroup.Get("/{id}", handler.GetRestaurantByID)
		routerGroup.Get("/{id}/schedule", handler.GetSchedule)
		routerGroup.Get("/{id}/open", handler.IsOpen)

		routerGroup.Group(func(staff chi.Router) {
			staff.Use(auth)
			staff.Post("/", handler.CreateRestaurant)
			staff.Patch("/{id}", handler.UpdateRestaurant)
			staff.Put("/{id}/hours", handler.SetHours)
			staff.Post("/{id}/closures", handler.AddClosure)
			staff.Delete("/{id}/closures/{closureID}", handler.RemoveClosure)
		})
	})
}

// CreateRestaurant registers a new restaurant.
// @Summary Create a restaurant
// @Tags Restaurant
// @Accept json
// @Produce json
// @Param request body dto.CreateRestaurantRequest true "Create Restaurant Request"
// @Success 201 {object} response.Message "Restaurant created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants [post]
// @Security BearerAuth
func (handler *Handler) CreateRestaurant(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRestaurant")
	defer scope.End()

	req := dto.CreateRestaurantRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create restaurant")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Restaurant created successfully")

	response.WithMessage(writer, http.StatusCreated, "Restaurant created successfully")
}

// GetRestaurants lists restaurants.
// @Summary Get restaurants
// @Tags Restaurant
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetRestaurantsResponse] "List of restaurants"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants [get]
func (handler *Handler) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRestaurants")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    name,
				Table:    model.TableName,
			},
		},
	}

	restaurants, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get restaurants")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Restaurants retrieved successfully")

	response.WithJSON(w, http.StatusOK, restaurants)
}

// GetRestaurantByID retrieves one restaurant.
// @Summary Get a restaurant by ID
// @Tags Restaurant
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} response.Data[dto.RestaurantResponse] "Restaurant details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id} [get]
func (handler *Handler) GetRestaurantByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRestaurantByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	restaurant, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get restaurant by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Restaurant retrieved successfully")

	response.WithJSON(w, http.StatusOK, restaurant)
}

// UpdateRestaurant updates a restaurant's settings.
// @Summary Update a restaurant
// @Tags Restaurant
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param request body dto.UpdateRestaurantRequest true "Update Restaurant Request"
// @Success 200 {object} response.Message "Restaurant updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRestaurant")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateRestaurantRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update restaurant")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Restaurant updated successfully")

	response.WithMessage(w, http.StatusOK, "Restaurant updated successfully")
}

// GetSchedule returns the weekly windows and special closures.
// @Summary Get a restaurant's schedule
// @Tags Restaurant
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} response.Data[dto.ScheduleResponse] "Schedule"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id}/schedule [get]
func (handler *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	schedule, err := handler.service.GetSchedule(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedule")

		response.WithError(w, err)

		return
	}

	res := dto.ScheduleResponse{
		Windows:  schedule.Windows,
		Closures: schedule.Closures,
	}
	res.Restaurant.FromModel(schedule.Restaurant)

	scope.AddEvent("Schedule retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// IsOpen answers whether the restaurant accepts bookings at an instant.
// @Summary Check whether a restaurant is open
// @Tags Restaurant
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param at query string true "Instant to check (RFC3339)"
// @Success 200 {object} response.Data[model.HoursDecision] "Open decision"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id}/open [get]
func (handler *Handler) IsOpen(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IsOpen")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	at, err := time.Parse(constant.DateFormat, r.URL.Query().Get("at"))
	if err != nil {
		response.WithError(w, failure.Validation("at must be RFC3339"))

		return
	}

	decision, err := handler.service.IsOpen(ctx, id, at)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check opening hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Opening hours checked")

	response.WithJSON(w, http.StatusOK, decision)
}

// SetHours replaces the weekly operating hours.
// @Summary Set a restaurant's weekly hours
// @Description Replace all weekly service windows. A day may carry several windows; overnight windows close on the next day.
// @Tags Restaurant
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param request body dto.SetHoursRequest true "Set Hours Request"
// @Success 200 {object} response.Message "Operating hours updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id}/hours [put]
// @Security BearerAuth
func (handler *Handler) SetHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetHours")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SetHoursRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetHours(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set operating hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Operating hours updated")

	response.WithMessage(w, http.StatusOK, "Operating hours updated")
}

// AddClosure schedules a special closure.
// @Summary Add a special closure
// @Tags Restaurant
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param request body dto.ClosureRequest true "Closure Request"
// @Success 201 {object} response.Message "Closure added"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id}/closures [post]
// @Security BearerAuth
func (handler *Handler) AddClosure(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddClosure")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.ClosureRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AddClosure(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add closure")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Closure added")

	response.WithMessage(w, http.StatusCreated, "Closure added")
}

// RemoveClosure deletes a scheduled closure.
// @Summary Remove a special closure
// @Tags Restaurant
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param closureID path string true "Closure ID"
// @Success 200 {object} response.Message "Closure removed"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id}/closures/{closureID} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveClosure(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveClosure")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	closureID := chi.URLParam(r, constant.RequestParamClosureID)

	if err := handler.service.RemoveClosure(ctx, id, closureID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove closure")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Closure removed")

	response.WithMessage(w, http.StatusOK, "Closure removed")
}
