package dto

import (
	"fmt"
	"mime/multipart"

	"eventhub/internal/domains/catalog/model"
	"eventhub/shared"
	gDto "eventhub/shared/dto"
	gModel "eventhub/shared/model"
	"eventhub/shared/timezone"

	"github.com/google/uuid"
)

type ServicePackageResponse struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Features    []string `json:"features"`
	PerGuest    bool     `json:"per_guest"`
	gDto.Metadata
}

func (r *ServicePackageResponse) FromModel(mod model.ServicePackage) {
	r.ID = mod.ID
	r.Type = mod.Type
	r.Title = mod.Title
	r.Description = mod.Description
	r.Price = mod.Price
	r.Image = mod.Image
	r.Features = mod.Features
	r.PerGuest = mod.PerGuest()
	r.Metadata.FromModel(mod.Metadata)
}

type GetServicePackagesResponse struct {
	Services  []ServicePackageResponse `json:"services"`
	TotalPage int                      `json:"total_page"`
	TotalData int                      `json:"total_data"`
}

func (r *GetServicePackagesResponse) FromModels(models []model.ServicePackage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServicePackageResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

// CreateCustomPackageRequest materializes a planner suggestion as a bookable
// package. The price comes from the budget tier, never from the client.
type CreateCustomPackageRequest struct {
	EventType   string   `json:"event_type"  validate:"required,max=100"`
	Budget      string   `json:"budget"      validate:"required,oneof=Low Medium High"`
	Theme       string   `json:"theme"       validate:"required,max=200"`
	Suggestions []string `json:"suggestions" validate:"omitempty,max=10,dive,max=200"`
}

func (c *CreateCustomPackageRequest) ToModel() model.ServicePackage {
	return model.ServicePackage{
		ID:          uuid.NewString(),
		Type:        model.TypeCustom,
		Title:       c.Theme,
		Description: fmt.Sprintf("Custom %s based on AI recommendations.", c.EventType),
		Price:       model.CustomPrice(c.Budget),
		Features:    c.Suggestions,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=2"`
	ImageFile multipart.File        `json:"-"`
}
