package service

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/rs/zerolog/log"

	"tably/config"
	"tably/infras/otel"
	"tably/internal/domains/table/model"
	"tably/internal/domains/table/model/dto"
	"tably/internal/domains/table/repository"
	"tably/shared"
	"tably/shared/cache"
	"tably/shared/constant"
	gDto "tably/shared/dto"
	"tably/shared/failure"
)

const (
	cacheGetTable    = "table:get"
	cacheGetAllTable = "table:gets"
	cacheRoster      = "table:roster"
)

type Table interface {
	Create(ctx context.Context, req dto.CreateTableRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTablesResponse, error)
	Get(ctx context.Context, id string) (dto.TableResponse, error)
	Update(ctx context.Context, req dto.UpdateTableRequest, id string) error
	SetActive(ctx context.Context, id string, active bool) error
	SetCombinable(ctx context.Context, id string, combinable bool, combinableWith []string) error
	Roster(ctx context.Context, restaurantID string) ([]model.Table, error)
}

type serviceImpl struct {
	repo  repository.Table
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Table, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Table {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTableRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	mod := req.ToModel(user)

	if mod.MinCapacity > mod.Capacity {
		return failure.Validation("min_capacity cannot exceed capacity") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to create table")

		return fmt.Errorf("failed to create table: %w", err)
	}

	s.invalidate(ctx, mod.RestaurantID, mod.ID)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTable, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tables")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tables")

		return res, fmt.Errorf("failed to count tables: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tables to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTable, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	table, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return res, failure.NotFound("table not found") // nolint:wrapcheck
	}

	res.FromModel(table)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save table to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTableRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Update")
	defer scope.End()

	if req == (dto.UpdateTableRequest{}) {
		return failure.Validation("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	table, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return failure.NotFound("table not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update table")

		return fmt.Errorf("failed to update table: %w", err)
	}

	s.invalidate(ctx, table.RestaurantID, id)

	return nil
}

func (s *serviceImpl) SetActive(ctx context.Context, id string, active bool) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.SetActive")
	defer scope.End()

	return s.setFlags(ctx, id, map[string]any{model.FieldIsActive: active})
}

func (s *serviceImpl) SetCombinable(ctx context.Context, id string, combinable bool, combinableWith []string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.SetCombinable")
	defer scope.End()

	fields := map[string]any{model.FieldIsCombinable: combinable}
	if combinableWith != nil {
		fields["combinable_with"] = pq.StringArray(combinableWith)
	}

	return s.setFlags(ctx, id, fields)
}

// Roster returns the restaurant's active tables, cached briefly since the
// roster is read on every allocation decision but changes rarely.
func (s *serviceImpl) Roster(ctx context.Context, restaurantID string) (tables []model.Table, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Roster")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheRoster, restaurantID)

	err = s.cache.Get(ctx, cacheKey, &tables)
	if err == nil {
		return tables, nil
	}

	tables, err = s.repo.GetActiveByRestaurant(ctx, restaurantID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load table roster")

		return nil, fmt.Errorf("failed to load table roster: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, tables, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save table roster to cache")
		}
	}()

	return tables, nil
}

func (s *serviceImpl) setFlags(ctx context.Context, id string, fields map[string]any) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	table, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return failure.NotFound("table not found") // nolint:wrapcheck
	}

	fields[constant.FieldModifiedBy] = user

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update table flags")

		return fmt.Errorf("failed to update table flags: %w", err)
	}

	s.invalidate(ctx, table.RestaurantID, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, restaurantID, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTable, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete table from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheRoster, restaurantID)); err != nil {
			log.Error().Err(err).Msg("failed to delete table roster from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTable)
	}()
}
