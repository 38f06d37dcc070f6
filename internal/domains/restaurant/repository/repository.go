package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks -mock_names Restaurant=MockRepository

import (
	"context"
	"fmt"

	"tably/infras/otel"
	"tably/infras/postgres"
	"tably/internal/domains/restaurant/model"
	"tably/shared/constant"
	gDto "tably/shared/dto"
	gRepo "tably/shared/repository"
)

type Restaurant interface {
	Insert(ctx context.Context, model model.Restaurant) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Restaurant, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Restaurant, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	GetWindows(ctx context.Context, restaurantID string) ([]model.OperatingWindow, error)
	ReplaceWindows(ctx context.Context, restaurantID string, windows []model.OperatingWindow) error
	GetClosures(ctx context.Context, restaurantID string) ([]model.SpecialClosure, error)
	InsertClosure(ctx context.Context, closure model.SpecialClosure) error
	DeleteClosure(ctx context.Context, restaurantID, closureID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Restaurant]
	windows  gRepo.Repository[model.OperatingWindow]
	closures gRepo.Repository[model.SpecialClosure]
	db       *postgres.Connection
	otel     otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Restaurant {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Restaurant](model.EntityName, model.TableName, model.FieldID, db, otel),
		windows:    gRepo.NewRepository[model.OperatingWindow](model.HoursEntityName, model.HoursTableName, model.FieldID, db, otel),
		closures:   gRepo.NewRepository[model.SpecialClosure](model.ClosureEntityName, model.ClosureTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetWindows(ctx context.Context, restaurantID string) ([]model.OperatingWindow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".restaurant.GetWindows")
	defer scope.End()

	filter := byRestaurant(restaurantID, model.HoursTableName)
	params := gDto.QueryParams{SortBy: model.FieldWeekday, SortDir: gDto.SortDirAsc}

	return repo.windows.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// ReplaceWindows swaps the weekly schedule atomically so a reader never
// observes a half-written week.
func (repo *repositoryImpl) ReplaceWindows(ctx context.Context, restaurantID string, windows []model.OperatingWindow) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".restaurant.ReplaceWindows")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = repo.windows.DeleteTx(ctx, tx, byRestaurant(restaurantID, model.HoursTableName)); err != nil {
		return fmt.Errorf("failed to clear operating hours: %w", err)
	}

	if len(windows) > 0 {
		if err = repo.windows.InsertBulkTx(ctx, tx, windows); err != nil {
			return fmt.Errorf("failed to insert operating hours: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit operating hours: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) GetClosures(ctx context.Context, restaurantID string) ([]model.SpecialClosure, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".restaurant.GetClosures")
	defer scope.End()

	filter := byRestaurant(restaurantID, model.ClosureTableName)
	params := gDto.QueryParams{SortBy: "starts_at", SortDir: gDto.SortDirAsc}

	return repo.closures.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) InsertClosure(ctx context.Context, closure model.SpecialClosure) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".restaurant.InsertClosure")
	defer scope.End()

	return repo.closures.Insert(ctx, closure) //nolint:wrapcheck
}

func (repo *repositoryImpl) DeleteClosure(ctx context.Context, restaurantID, closureID string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".restaurant.DeleteClosure")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: closureID, Table: model.ClosureTableName},
			gDto.Filter{Field: model.FieldRestaurantID, Operator: gDto.FilterOperatorEq, Value: restaurantID, Table: model.ClosureTableName},
		},
	}

	return repo.closures.Delete(ctx, filter) //nolint:wrapcheck
}

func byRestaurant(restaurantID, table string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRestaurantID, Operator: gDto.FilterOperatorEq, Value: restaurantID, Table: table},
		},
	}
}
