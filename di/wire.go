//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	authService "hotel/internal/domains/auth/service"
	availabilityService "hotel/internal/domains/availability/service"
	bookingEvent "hotel/internal/domains/booking/event"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	checkInRepository "hotel/internal/domains/checkin/repository"
	checkInService "hotel/internal/domains/checkin/service"
	customerRepository "hotel/internal/domains/customer/repository"
	customerService "hotel/internal/domains/customer/service"
	referenceRepository "hotel/internal/domains/reference/repository"
	referenceService "hotel/internal/domains/reference/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	staffRepository "hotel/internal/domains/staff/repository"
	staffService "hotel/internal/domains/staff/service"
	authHandler "hotel/internal/handlers/auth"
	bookingHandler "hotel/internal/handlers/booking"
	checkInHandler "hotel/internal/handlers/checkin"
	customerHandler "hotel/internal/handlers/customer"
	referenceHandler "hotel/internal/handlers/reference"
	roomHandler "hotel/internal/handlers/room"
	staffHandler "hotel/internal/handlers/staff"
	"hotel/jobs"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var referenceDomain = wire.NewSet(
	referenceRepository.NewBookingStatus,
	referenceRepository.NewRoomStatus,
	referenceRepository.NewRoomType,
	referenceService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
	authService.New,
)

var hotelDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
	roomRepository.New,
	roomService.New,
	bookingRepository.New,
	bookingEvent.NewPublisher,
	bookingService.New,
	checkInRepository.New,
	checkInService.New,
	availabilityService.New,
)

var domains = wire.NewSet(
	referenceDomain,
	staffDomain,
	hotelDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	staffHandler.New,
	referenceHandler.New,
	customerHandler.New,
	roomHandler.New,
	bookingHandler.New,
	checkInHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		jobs.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
