package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"sync"

	"hotel/infras/otel"
	"hotel/internal/domains/reference/model"
	"hotel/internal/domains/reference/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const storeName = "reference"

// Reference serves the lookup tables. The catalog is read from the store once per process;
// a failed load is retried on the next call.
type Reference interface {
	Catalog(ctx context.Context) (model.Catalog, error)
}

type serviceImpl struct {
	bookingStatusRepo repository.BookingStatus
	roomStatusRepo    repository.RoomStatus
	roomTypeRepo      repository.RoomType
	otel              otel.Otel

	mu      sync.Mutex
	loaded  bool
	catalog model.Catalog
}

func New(bookingStatusRepo repository.BookingStatus, roomStatusRepo repository.RoomStatus, roomTypeRepo repository.RoomType, otel otel.Otel) Reference {
	return &serviceImpl{
		bookingStatusRepo: bookingStatusRepo,
		roomStatusRepo:    roomStatusRepo,
		roomTypeRepo:      roomTypeRepo,
		otel:              otel,
	}
}

func (s *serviceImpl) Catalog(ctx context.Context) (res model.Catalog, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Catalog")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.catalog, nil
	}

	var (
		bookingStatuses []model.BookingStatus
		roomStatuses    []model.RoomStatus
		roomTypes       []model.RoomType
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		bookingStatuses, err = s.bookingStatusRepo.GetAll(groupCtx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})

	group.Go(func() (err error) {
		roomStatuses, err = s.roomStatusRepo.GetAll(groupCtx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})

	group.Go(func() (err error) {
		roomTypes, err = s.roomTypeRepo.GetAll(groupCtx, gDto.QueryParams{}, gDto.FilterGroup{})

		return err
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load reference catalog")

		return res, failure.StoreUnavailable(storeName, err)
	}

	s.catalog = model.NewCatalog(bookingStatuses, roomStatuses, roomTypes)
	s.loaded = true

	log.Info().
		Int("booking_statuses", len(bookingStatuses)).
		Int("room_statuses", len(roomStatuses)).
		Int("room_types", len(roomTypes)).
		Msg("reference catalog loaded")

	return s.catalog, nil
}
