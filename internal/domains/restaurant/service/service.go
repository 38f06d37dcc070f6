package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names Restaurant=MockService

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tably/config"
	"tably/infras/otel"
	"tably/internal/domains/restaurant/model"
	"tably/internal/domains/restaurant/model/dto"
	"tably/internal/domains/restaurant/repository"
	"tably/shared"
	"tably/shared/cache"
	"tably/shared/constant"
	gDto "tably/shared/dto"
	"tably/shared/failure"
)

const (
	cacheGetRestaurant     = "restaurant:get"
	cacheGetAllRestaurants = "restaurant:gets"
	cacheSchedule          = "restaurant:schedule"
)

// Restaurant owns restaurant configuration and answers the single question
// the allocation engine asks of it: is this restaurant open at instant t.
type Restaurant interface {
	Create(ctx context.Context, req dto.CreateRestaurantRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRestaurantsResponse, error)
	Get(ctx context.Context, id string) (dto.RestaurantResponse, error)
	Update(ctx context.Context, req dto.UpdateRestaurantRequest, id string) error
	SetHours(ctx context.Context, id string, req dto.SetHoursRequest) error
	AddClosure(ctx context.Context, id string, req dto.ClosureRequest) error
	RemoveClosure(ctx context.Context, id, closureID string) error
	GetSchedule(ctx context.Context, id string) (model.Schedule, error)
	IsOpen(ctx context.Context, id string, at time.Time) (model.HoursDecision, error)
	InvalidateHours(ctx context.Context, id string)
}

type serviceImpl struct {
	repo  repository.Restaurant
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Restaurant, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Restaurant {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRestaurantRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".restaurant.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	mod := req.ToModel(user, s.cfg.Booking.DefaultTurnTimeMinutes)

	if _, err = time.LoadLocation(mod.Timezone); err != nil {
		return failure.Validation(fmt.Sprintf("unknown timezone %q", mod.Timezone)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to create restaurant")

		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	s.invalidate(ctx, mod.ID)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRestaurantsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".restaurant.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRestaurants, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for restaurants")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count restaurants")

		return res, fmt.Errorf("failed to count restaurants: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurants")

		return res, fmt.Errorf("failed to get restaurants: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save restaurants to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".restaurant.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRestaurant, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	restaurant, err := s.getRestaurant(ctx, id)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	res.FromModel(restaurant)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save restaurant to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRestaurantRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".restaurant.Update")
	defer scope.End()

	if req == (dto.UpdateRestaurantRequest{}) {
		return failure.Validation("update request cannot be empty") // nolint:wrapcheck
	}

	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return failure.Validation(fmt.Sprintf("unknown timezone %q", req.Timezone)) // nolint:wrapcheck
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err := s.getRestaurant(ctx, id); err != nil {
		return err // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update restaurant")

		return fmt.Errorf("failed to update restaurant: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) SetHours(ctx context.Context, id string, req dto.SetHoursRequest) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".restaurant.SetHours")
	defer scope.End()

	if _, err := s.getRestaurant(ctx, id); err != nil {
		return err // nolint:wrapcheck
	}

	for _, w := range req.Windows {
		if _, err := time.Parse("15:04", w.OpensAt); err != nil {
			return failure.Validation(fmt.Sprintf("invalid opens_at %q", w.OpensAt)) // nolint:wrapcheck
		}

		if _, err := time.Parse("15:04", w.ClosesAt); err != nil {
			return failure.Validation(fmt.Sprintf("invalid closes_at %q", w.ClosesAt)) // nolint:wrapcheck
		}
	}

	if err := s.repo.ReplaceWindows(ctx, id, req.ToModels(id)); err != nil {
		log.Error().Err(err).Msg("failed to replace operating hours")

		return fmt.Errorf("failed to replace operating hours: %w", err)
	}

	s.InvalidateHours(ctx, id)

	return nil
}

func (s *serviceImpl) AddClosure(ctx context.Context, id string, req dto.ClosureRequest) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".restaurant.AddClosure")
	defer scope.End()

	if _, err := s.getRestaurant(ctx, id); err != nil {
		return err // nolint:wrapcheck
	}

	closure, err := req.ToModel(id)
	if err != nil {
		return failure.Validation("closure times must be RFC3339") // nolint:wrapcheck
	}

	if !closure.StartsAt.Before(closure.EndsAt) {
		return failure.Validation("closure must start before it ends") // nolint:wrapcheck
	}

	if err := s.repo.InsertClosure(ctx, closure); err != nil {
		log.Error().Err(err).Msg("failed to add closure")

		return fmt.Errorf("failed to add closure: %w", err)
	}

	s.InvalidateHours(ctx, id)

	return nil
}

func (s *serviceImpl) RemoveClosure(ctx context.Context, id, closureID string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".restaurant.RemoveClosure")
	defer scope.End()

	if err := s.repo.DeleteClosure(ctx, id, closureID); err != nil {
		log.Error().Err(err).Msg("failed to remove closure")

		return fmt.Errorf("failed to remove closure: %w", err)
	}

	s.InvalidateHours(ctx, id)

	return nil
}

// GetSchedule loads the restaurant, its weekly windows, and its closures as
// one cached unit. Every IsOpen answer derives from this bundle, so a single
// invalidation key covers all hours-related mutations.
func (s *serviceImpl) GetSchedule(ctx context.Context, id string) (schedule model.Schedule, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".restaurant.GetSchedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheSchedule, id)

	err = s.cache.Get(ctx, cacheKey, &schedule)
	if err == nil {
		return schedule, nil
	}

	restaurant, err := s.getRestaurant(ctx, id)
	if err != nil {
		return schedule, err // nolint:wrapcheck
	}

	windows, err := s.repo.GetWindows(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get operating hours")

		return schedule, fmt.Errorf("failed to get operating hours: %w", err)
	}

	closures, err := s.repo.GetClosures(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get closures")

		return schedule, fmt.Errorf("failed to get closures: %w", err)
	}

	schedule = model.Schedule{
		Restaurant: restaurant,
		Windows:    windows,
		Closures:   closures,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, schedule, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule to cache")
		}
	}()

	return schedule, nil
}

// IsOpen evaluates the instant in the restaurant's own timezone: closures
// first, then the weekly windows for that weekday. Windows whose closing
// time sorts before their opening time span midnight.
func (s *serviceImpl) IsOpen(ctx context.Context, id string, at time.Time) (decision model.HoursDecision, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".restaurant.IsOpen")
	defer scope.End()
	defer scope.TraceIfError(err)

	schedule, err := s.GetSchedule(ctx, id)
	if err != nil {
		return decision, err // nolint:wrapcheck
	}

	if !schedule.Restaurant.IsActive {
		return model.HoursDecision{Open: false, Reason: "restaurant is not accepting bookings"}, nil
	}

	for _, closure := range schedule.Closures {
		if closure.Covers(at) {
			reason := closure.Reason
			if reason == "" {
				reason = "restaurant is closed for a special event"
			}

			return model.HoursDecision{Open: false, Reason: reason}, nil
		}
	}

	loc, err := time.LoadLocation(schedule.Restaurant.Timezone)
	if err != nil {
		log.Error().Err(err).Str("timezone", schedule.Restaurant.Timezone).Msg("invalid restaurant timezone")

		return decision, fmt.Errorf("invalid restaurant timezone: %w", err)
	}

	local := at.In(loc)
	clock := local.Format("15:04")
	weekday := int(local.Weekday())

	for _, window := range schedule.Windows {
		if windowContains(window, weekday, clock) {
			return model.HoursDecision{Open: true}, nil
		}
	}

	// An overnight window started yesterday may still be running.
	yesterday := (weekday + 6) % 7
	for _, window := range schedule.Windows {
		if window.Weekday == yesterday && window.ClosesAt <= window.OpensAt && clock < window.ClosesAt {
			return model.HoursDecision{Open: true}, nil
		}
	}

	if len(schedule.Windows) == 0 {
		return model.HoursDecision{Open: false, Reason: "restaurant has no operating hours configured"}, nil
	}

	return model.HoursDecision{Open: false, Reason: "restaurant is closed at the requested time"}, nil
}

func (s *serviceImpl) InvalidateHours(ctx context.Context, id string) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".restaurant.InvalidateHours")
	defer scope.End()

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheSchedule, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete schedule from cache")
		}
	}()
}

func (s *serviceImpl) getRestaurant(ctx context.Context, id string) (model.Restaurant, error) {
	restaurant, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant")

		return restaurant, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant.ID == constant.Empty {
		return restaurant, failure.NotFound("restaurant not found") // nolint:wrapcheck
	}

	return restaurant, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRestaurant, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete restaurant from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheSchedule, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete schedule from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRestaurants)
	}()
}

func windowContains(window model.OperatingWindow, weekday int, clock string) bool {
	if window.Weekday != weekday {
		return false
	}

	if window.ClosesAt <= window.OpensAt {
		return clock >= window.OpensAt
	}

	return clock >= window.OpensAt && clock < window.ClosesAt
}
