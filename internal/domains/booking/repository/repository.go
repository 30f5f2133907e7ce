package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"eventhub/infras/otel"
	"eventhub/infras/postgres"
	"eventhub/internal/domains/booking/model"
	"eventhub/shared/constant"
	gDto "eventhub/shared/dto"
	"eventhub/shared/logger"
	gRepo "eventhub/shared/repository"
)

type Stats struct {
	TotalBookings int   `db:"total_bookings"`
	TotalRevenue  int64 `db:"total_revenue"`
	TotalGuests   int   `db:"total_guests"`
}

// ServiceRevenue is one per-package bucket of the dashboard aggregates.
type ServiceRevenue struct {
	ServiceID    string `db:"service_id"`
	ServiceTitle string `db:"service_title"`
	Bookings     int    `db:"bookings"`
	Revenue      int64  `db:"revenue"`
}

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetStats(ctx context.Context, filter gDto.FilterGroup) (Stats, error)
	GetServiceRevenue(ctx context.Context, filter gDto.FilterGroup) ([]ServiceRevenue, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetStats aggregates booking volume, revenue and headcount over the rows
// matched by the filter.
func (repo *repositoryImpl) GetStats(ctx context.Context, filter gDto.FilterGroup) (stats Stats, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf(`SELECT
		COUNT(%s.id) AS total_bookings,
		COALESCE(SUM(%s.total_amount), 0) AS total_revenue,
		COALESCE(SUM(%s.guest_count), 0) AS total_guests
	FROM %s %s`, model.TableName, model.TableName, model.TableName, model.TableName, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return stats, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &stats, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return stats, fmt.Errorf("failed to get booking stats: %w", err)
	}

	return stats, nil
}

// GetServiceRevenue groups the matched bookings by service package, ordered by
// revenue descending.
func (repo *repositoryImpl) GetServiceRevenue(ctx context.Context, filter gDto.FilterGroup) (buckets []ServiceRevenue, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetServiceRevenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf(`SELECT
		%s.service_id,
		%s.service_title,
		COUNT(%s.id) AS bookings,
		COALESCE(SUM(%s.total_amount), 0) AS revenue
	FROM %s %s
	GROUP BY %s.service_id, %s.service_title
	ORDER BY revenue DESC`,
		model.TableName, model.TableName, model.TableName, model.TableName,
		model.TableName, where, model.TableName, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &buckets, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get service revenue: %w", err)
	}

	return buckets, nil
}
