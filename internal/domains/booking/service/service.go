package service

import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	availabilityModel "hotel/internal/domains/availability/model"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	customerModel "hotel/internal/domains/customer/model"
	customerRepo "hotel/internal/domains/customer/repository"
	refModel "hotel/internal/domains/reference/model"
	refService "hotel/internal/domains/reference/service"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	// Update reschedules a Pending or Confirmed booking.
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	ChangeStatus(ctx context.Context, req dto.ChangeStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	customerRepo customerRepo.Customer
	availability availabilityService.Availability
	reference    refService.Reference
	publisher    event.Publisher
	policy       availabilityModel.Policy
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	customerRepo customerRepo.Customer,
	availability availabilityService.Availability,
	reference refService.Reference,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		availability: availability,
		reference:    reference,
		publisher:    publisher,
		policy:       availabilityModel.NewPolicy(cfg),
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return constant.Empty, err
	}

	stay, err := s.policy.NewInterval(checkIn, checkOut)
	if err != nil {
		return constant.Empty, err
	}

	catalog, err := s.reference.Catalog(ctx)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to load reference catalog: %w", err)
	}

	status := req.Status
	if status == constant.Empty {
		status = refModel.BookingStatusPending
	}

	statusID, ok := catalog.BookingStatusID(status)
	if !ok {
		return constant.Empty, failure.BadRequestFromString(fmt.Sprintf("booking status %s does not exist", status))
	}

	if err = s.ensureRoomBookable(ctx, req.RoomID); err != nil {
		return constant.Empty, err
	}

	if err = s.ensureCustomer(ctx, req.CustomerID); err != nil {
		return constant.Empty, err
	}

	if err = s.ensureFree(ctx, req.RoomID, stay, constant.Empty); err != nil {
		return constant.Empty, err
	}

	booking := req.ToModel(user, stay.Start, stay.End, statusID)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to insert booking")

		return constant.Empty, mapStoreError(err)
	}

	s.invalidate(ctx, booking.ID)
	s.publish(ctx, newEvent(model.EventBookingCreated, booking, status))

	return booking.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	catalog, err := s.reference.Catalog(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to load reference catalog: %w", err)
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, catalog, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	catalog, err := s.reference.Catalog(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to load reference catalog: %w", err)
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, catalog)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	catalog, err := s.reference.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reference catalog: %w", err)
	}

	status, _ := catalog.BookingStatusName(current.StatusID)
	if status != refModel.BookingStatusPending && status != refModel.BookingStatusConfirmed {
		return failure.BadRequestFromString(fmt.Sprintf("a %s booking can no longer be changed", status))
	}

	updated := current
	fields := shared.TransformFields(req, user)

	if req.CustomerID != constant.Empty && req.CustomerID != current.CustomerID {
		if err = s.ensureCustomer(ctx, req.CustomerID); err != nil {
			return err
		}

		updated.CustomerID = req.CustomerID
	}

	if req.Reschedules() {
		if req.RoomID != constant.Empty && req.RoomID != current.RoomID {
			if err = s.ensureRoomBookable(ctx, req.RoomID); err != nil {
				return err
			}

			updated.RoomID = req.RoomID
		}

		checkIn, checkOut, err := req.Dates(current)
		if err != nil {
			return err
		}

		stay, err := s.policy.NewInterval(checkIn, checkOut)
		if err != nil {
			return err
		}

		if err = s.ensureFree(ctx, updated.RoomID, stay, current.ID); err != nil {
			return err
		}

		updated.CheckinDate, updated.CheckoutDate = stay.Start, stay.End
		fields[model.FieldCheckinDate] = stay.Start
		fields[model.FieldCheckoutDate] = stay.End
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return mapStoreError(err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, newEvent(model.EventBookingUpdated, updated, status))

	return nil
}

func (s *serviceImpl) ChangeStatus(ctx context.Context, req dto.ChangeStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangeStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	catalog, err := s.reference.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reference catalog: %w", err)
	}

	statusID, ok := catalog.BookingStatusID(req.Status)
	if !ok {
		return failure.BadRequestFromString(fmt.Sprintf("booking status %s does not exist", req.Status))
	}

	from, _ := catalog.BookingStatusName(current.StatusID)
	to, _ := catalog.BookingStatusName(statusID)

	if !model.CanTransition(from, to) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot change booking status from %s to %s", from, to))
	}

	fields := shared.TransformFields(struct{}{}, user)
	fields[model.FieldStatusID] = statusID

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to change booking status")

		return fmt.Errorf("failed to change booking status: %w", err)
	}

	current.StatusID = statusID

	s.invalidate(ctx, id)
	s.publish(ctx, newEvent(model.EventBookingStatusChanged, current, to))

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeFkViolation {
			return failure.Conflict("booking already has a check-in")
		}

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)
	s.publish(ctx, newEvent(model.EventBookingDeleted, current, constant.Empty))

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) ensureRoomBookable(ctx context.Context, roomID string) error {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty || !room.Active {
		return failure.BadRequestFromString(fmt.Sprintf("room %s does not exist", roomID))
	}

	return nil
}

func (s *serviceImpl) ensureCustomer(ctx context.Context, customerID string) error {
	exist, err := s.customerRepo.Exist(ctx, shared.FilterByID(customerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString(fmt.Sprintf("customer %s does not exist", customerID))
	}

	return nil
}

func (s *serviceImpl) ensureFree(ctx context.Context, roomID string, stay availabilityModel.Interval, excludeBookingID string) error {
	conflict, err := s.availability.Conflicts(ctx, roomID, stay.Start, stay.End, excludeBookingID)
	if err != nil {
		return err
	}

	if conflict {
		return failure.Conflict("room is already booked for the requested dates")
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, evt model.Event) {
	go func() {
		if err := s.publisher.Publish(context.WithoutCancel(ctx), evt); err != nil {
			log.Warn().Err(err).Str("event", evt.Type).Str("booking", evt.BookingID).Msg("booking event dropped")
		}
	}()
}

func newEvent(eventType string, booking model.Booking, status string) model.Event {
	return model.Event{
		Type:         eventType,
		BookingID:    booking.ID,
		RoomID:       booking.RoomID,
		CustomerID:   booking.CustomerID,
		Status:       status,
		CheckinDate:  booking.CheckinDate.Format(constant.DateOnlyFormat),
		CheckoutDate: booking.CheckoutDate.Format(constant.DateOnlyFormat),
	}
}

func mapStoreError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case constant.PqErrorCodeExclusionViolation:
			return failure.Conflict("room is already booked for the requested dates")
		case constant.PqErrorCodeFkViolation:
			return failure.BadRequestFromString("booking references a room or customer that does not exist")
		}
	}

	return fmt.Errorf("failed to save booking: %w", err)
}
