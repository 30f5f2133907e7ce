package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"eventhub/infras/otel"
	"eventhub/infras/postgres"
	"eventhub/internal/domains/catalog/model"
	gDto "eventhub/shared/dto"
	gRepo "eventhub/shared/repository"
)

type Catalog interface {
	Insert(ctx context.Context, servicePackage model.ServicePackage) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ServicePackage, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServicePackage, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.ServicePackage]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Catalog {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ServicePackage](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
