//go:build wireinject
// +build wireinject

package di

import (
	"eventhub/config"
	"eventhub/infras/jwt"
	"eventhub/infras/kafka"
	"eventhub/infras/mailer"
	"eventhub/infras/otel"
	"eventhub/infras/planner"
	"eventhub/infras/postgres"
	"eventhub/infras/redis"
	"eventhub/infras/s3"
	"eventhub/internal/workers/notifier"
	"eventhub/permissions"
	"eventhub/shared/cache"
	"eventhub/transport/http"
	"eventhub/transport/http/middleware"
	"eventhub/transport/http/router"

	bookingRepository "eventhub/internal/domains/booking/repository"
	bookingService "eventhub/internal/domains/booking/service"
	catalogRepository "eventhub/internal/domains/catalog/repository"
	catalogService "eventhub/internal/domains/catalog/service"
	userRepository "eventhub/internal/domains/user/repository"

	"github.com/google/wire"

	authService "eventhub/internal/domains/auth/service"
	plannerService "eventhub/internal/domains/planner/service"
	authHandler "eventhub/internal/handlers/auth"
	bookingHandler "eventhub/internal/handlers/booking"
	catalogHandler "eventhub/internal/handlers/catalog"
	plannerHandler "eventhub/internal/handlers/planner"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	mailer.New,
	planner.New,
	s3.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var plannerDomain = wire.NewSet(
	plannerService.New,
)

var domains = wire.NewSet(
	authDomain,
	catalogDomain,
	bookingDomain,
	plannerDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	catalogHandler.New,
	bookingHandler.New,
	plannerHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeNotifier() *notifier.Notifier {
	wire.Build(
		configurations,
		wire.NewSet(
			otel.New,
			kafka.New,
			mailer.New,
		),
		notifier.New,
	)

	return &notifier.Notifier{}
}
