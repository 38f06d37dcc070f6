package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks -mock_names Table=MockRepository

import (
	"context"

	"tably/infras/otel"
	"tably/infras/postgres"
	"tably/internal/domains/table/model"
	"tably/shared/constant"
	gDto "tably/shared/dto"
	gRepo "tably/shared/repository"
)

type Table interface {
	Insert(ctx context.Context, model model.Table) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Table, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Table, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetActiveByRestaurant(ctx context.Context, restaurantID string) ([]model.Table, error)
	GetByIDs(ctx context.Context, restaurantID string, ids []string) ([]model.Table, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Table]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Table {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Table](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetActiveByRestaurant(ctx context.Context, restaurantID string) ([]model.Table, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.GetActiveByRestaurant")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRestaurantID, Operator: gDto.FilterOperatorEq, Value: restaurantID, Table: model.TableName},
			gDto.Filter{Field: model.FieldIsActive, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldPriorityScore, SortDir: gDto.SortDirDesc}

	return repo.GetAll(ctx, params, filter)
}

func (repo *repositoryImpl) GetByIDs(ctx context.Context, restaurantID string, ids []string) ([]model.Table, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.GetByIDs")
	defer scope.End()

	if len(ids) == 0 {
		return nil, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRestaurantID, Operator: gDto.FilterOperatorEq, Value: restaurantID, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, ArgName: "table_ids", Operator: gDto.FilterOperatorIn, Value: ids, Table: model.TableName},
		},
	}

	return repo.GetAll(ctx, gDto.QueryParams{}, filter)
}
