package dto

import (
	"tably/internal/domains/table/model"
	"tably/shared"
	gDto "tably/shared/dto"
	gModel "tably/shared/model"
	"tably/shared/timezone"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	RestaurantID   string   `json:"restaurant_id"   validate:"required"`
	Name           string   `json:"name"            validate:"required,max=50"`
	Capacity       int      `json:"capacity"        validate:"required,gt=0"`
	MinCapacity    int      `json:"min_capacity"    validate:"omitempty,gte=0"`
	MaxCapacity    int      `json:"max_capacity"    validate:"omitempty,gte=0"`
	IsCombinable   bool     `json:"is_combinable"`
	CombinableWith []string `json:"combinable_with" validate:"omitempty,dive,required"`
	PriorityScore  int      `json:"priority_score"  validate:"omitempty,gte=0"`
}

func (c *CreateTableRequest) ToModel(user string) model.Table {
	minCapacity := c.MinCapacity
	if minCapacity == 0 {
		minCapacity = 1
	}

	maxCapacity := c.MaxCapacity
	if maxCapacity == 0 {
		maxCapacity = c.Capacity
	}

	return model.Table{
		ID:             uuid.NewString(),
		RestaurantID:   c.RestaurantID,
		Name:           c.Name,
		Capacity:       c.Capacity,
		MinCapacity:    minCapacity,
		MaxCapacity:    maxCapacity,
		IsActive:       true,
		IsCombinable:   c.IsCombinable,
		CombinableWith: c.CombinableWith,
		PriorityScore:  c.PriorityScore,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTableRequest struct {
	Name          string `db:"name"           json:"name"           validate:"omitempty,max=50"`
	Capacity      int    `db:"capacity"       json:"capacity"       validate:"omitempty,gt=0"`
	MinCapacity   int    `db:"min_capacity"   json:"min_capacity"   validate:"omitempty,gte=0"`
	MaxCapacity   int    `db:"max_capacity"   json:"max_capacity"   validate:"omitempty,gte=0"`
	PriorityScore int    `db:"priority_score" json:"priority_score" validate:"omitempty,gte=0"`
}

type TableResponse struct {
	ID             string   `json:"id"`
	RestaurantID   string   `json:"restaurant_id"`
	Name           string   `json:"name"`
	Capacity       int      `json:"capacity"`
	MinCapacity    int      `json:"min_capacity"`
	MaxCapacity    int      `json:"max_capacity"`
	IsActive       bool     `json:"is_active"`
	IsCombinable   bool     `json:"is_combinable"`
	CombinableWith []string `json:"combinable_with"`
	PriorityScore  int      `json:"priority_score"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(mod model.Table) {
	r.ID = mod.ID
	r.RestaurantID = mod.RestaurantID
	r.Name = mod.Name
	r.Capacity = mod.Capacity
	r.MinCapacity = mod.MinCapacity
	r.MaxCapacity = mod.MaxCapacity
	r.IsActive = mod.IsActive
	r.IsCombinable = mod.IsCombinable
	r.CombinableWith = mod.CombinableWith
	r.PriorityScore = mod.PriorityScore
	r.Metadata.FromModel(mod.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
