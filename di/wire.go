//go:build wireinject
// +build wireinject

package di

import (
	"tably/config"
	"tably/infras/jwt"
	"tably/infras/kafka"
	"tably/infras/otel"
	"tably/infras/postgres"
	"tably/infras/redis"
	"tably/internal/jobs"
	"tably/shared/cache"
	"tably/transport/http"
	"tably/transport/http/middleware"
	"tably/transport/http/router"

	"github.com/google/wire"

	authService "tably/internal/domains/auth/service"
	bookingRepository "tably/internal/domains/booking/repository"
	bookingService "tably/internal/domains/booking/service"
	restaurantRepository "tably/internal/domains/restaurant/repository"
	restaurantService "tably/internal/domains/restaurant/service"
	tableRepository "tably/internal/domains/table/repository"
	tableService "tably/internal/domains/table/service"
	userRepository "tably/internal/domains/user/repository"
	userService "tably/internal/domains/user/service"

	authHandler "tably/internal/handlers/auth"
	bookingHandler "tably/internal/handlers/booking"
	restaurantHandler "tably/internal/handlers/restaurant"
	tableHandler "tably/internal/handlers/table"
	userHandler "tably/internal/handlers/user"
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
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var restaurantDomain = wire.NewSet(
	restaurantRepository.New,
	restaurantService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	authDomain,
	restaurantDomain,
	tableDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	restaurantHandler.New,
	tableHandler.New,
	bookingHandler.New,
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

func InitializeJobs() *jobs.Jobs {
	wire.Build(
		configurations,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		sharedHelpers,
		restaurantDomain,
		tableRepository.New,
		bookingDomain,
		jobs.New,
	)

	return &jobs.Jobs{}
}
