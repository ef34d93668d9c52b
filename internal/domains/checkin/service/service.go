package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=CheckIn=MockCheckInService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	availabilityModel "hotel/internal/domains/availability/model"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/event"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/checkin/model"
	"hotel/internal/domains/checkin/model/dto"
	"hotel/internal/domains/checkin/repository"
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
	cacheGetCheckIn    = "checkin:get"
	cacheGetAllCheckIn = "checkin:gets"

	// Check-ins move bookings, so booking listings are invalidated too.
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type CheckIn interface {
	Create(ctx context.Context, req dto.CreateCheckInRequest) (string, error)
	// Checkout closes the stay on the given date, early or late, and completes the booking.
	Checkout(ctx context.Context, req dto.CheckoutRequest, id string) error
	// CompleteDueStays completes checked-in bookings whose stay ended on or before asOf.
	CompleteDueStays(ctx context.Context, asOf time.Time) (int, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCheckInsResponse, error)
	Get(ctx context.Context, id string) (dto.CheckInResponse, error)
	// Delete undoes a check-in of a stay that is still open.
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.CheckIn
	bookingRepo  bookingRepo.Booking
	roomRepo     roomRepo.Room
	availability availabilityService.Availability
	reference    refService.Reference
	publisher    event.Publisher
	policy       availabilityModel.Policy
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.CheckIn,
	bookingRepo bookingRepo.Booking,
	roomRepo roomRepo.Room,
	availability availabilityService.Availability,
	reference refService.Reference,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) CheckIn {
	return &serviceImpl{
		repo:         repo,
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		availability: availability,
		reference:    reference,
		publisher:    publisher,
		policy:       availabilityModel.NewPolicy(cfg),
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCheckInRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.booking(ctx, req.BookingID)
	if err != nil {
		return constant.Empty, err
	}

	catalog, err := s.reference.Catalog(ctx)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to load reference catalog: %w", err)
	}

	status, _ := catalog.BookingStatusName(booking.StatusID)
	if !bookingModel.CanTransition(status, refModel.BookingStatusCheckedIn) {
		return constant.Empty, failure.BadRequestFromString(fmt.Sprintf("a %s booking cannot be checked in", status))
	}

	checkedInID, err := statusID(catalog, refModel.BookingStatusCheckedIn)
	if err != nil {
		return constant.Empty, err
	}

	taken, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Operator: gDto.FilterOperatorEq, Value: booking.ID, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing check-in")

		return constant.Empty, fmt.Errorf("failed to check existing check-in: %w", err)
	}

	if taken {
		return constant.Empty, failure.Conflict("booking is already checked in")
	}

	checkIn, checkOut, err := req.Dates(booking.CheckoutDate)
	if err != nil {
		return constant.Empty, err
	}

	stay, err := s.policy.NewInterval(checkIn, checkOut)
	if err != nil {
		return constant.Empty, err
	}

	roomID, customerID := booking.RoomID, booking.CustomerID
	if req.RoomID != constant.Empty && req.RoomID != booking.RoomID {
		if err = s.ensureRoomActive(ctx, req.RoomID); err != nil {
			return constant.Empty, err
		}

		roomID = req.RoomID
	}

	if req.CustomerID != constant.Empty {
		customerID = req.CustomerID
	}

	if err = s.ensureFree(ctx, roomID, stay, booking.ID); err != nil {
		return constant.Empty, err
	}

	record := req.ToModel(user, roomID, customerID, stay.Start, stay.End)

	if err = s.repo.Insert(ctx, record); err != nil {
		log.Error().Err(err).Msg("failed to insert check-in")

		return constant.Empty, mapStoreError(err)
	}

	if err = s.setBookingStatus(ctx, user, checkedInID, booking.ID); err != nil {
		return constant.Empty, err
	}

	s.invalidate(ctx, record.ID, booking.ID)
	s.publish(ctx, newEvent(bookingModel.EventCheckInCreated, record, refModel.BookingStatusCheckedIn))

	return record.ID, nil
}

func (s *serviceImpl) Checkout(ctx context.Context, req dto.CheckoutRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	record, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	booking, err := s.booking(ctx, record.BookingID)
	if err != nil {
		return err
	}

	catalog, err := s.reference.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reference catalog: %w", err)
	}

	if status, _ := catalog.BookingStatusName(booking.StatusID); status != refModel.BookingStatusCheckedIn {
		return failure.BadRequestFromString(fmt.Sprintf("stay of a %s booking is already closed", status))
	}

	completedID, err := statusID(catalog, refModel.BookingStatusCompleted)
	if err != nil {
		return err
	}

	checkoutDate, err := req.Date()
	if err != nil {
		return err
	}

	stay, err := s.policy.NewInterval(record.CheckInDate, checkoutDate)
	if err != nil {
		return err
	}

	if stay.End.After(s.policy.Normalize(record.CheckoutDate)) {
		if err = s.ensureFree(ctx, record.RoomID, stay, booking.ID); err != nil {
			return err
		}
	}

	fields := shared.TransformFields(struct{}{}, user)
	fields[model.FieldCheckoutDate] = stay.End

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update check-out date")

		return mapStoreError(err)
	}

	if err = s.setBookingStatus(ctx, user, completedID, booking.ID); err != nil {
		return err
	}

	record.CheckoutDate = stay.End

	s.invalidate(ctx, id, booking.ID)
	s.publish(ctx, newEvent(bookingModel.EventCheckedOut, record, refModel.BookingStatusCompleted))

	return nil
}

func (s *serviceImpl) CompleteDueStays(ctx context.Context, asOf time.Time) (completed int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompleteDueStays")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	catalog, err := s.reference.Catalog(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load reference catalog: %w", err)
	}

	checkedInID, err := statusID(catalog, refModel.BookingStatusCheckedIn)
	if err != nil {
		return 0, err
	}

	completedID, err := statusID(catalog, refModel.BookingStatusCompleted)
	if err != nil {
		return 0, err
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldStatusID, Operator: gDto.FilterOperatorEq, Value: checkedInID, Table: bookingModel.TableName},
		},
	}, bookingModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load checked-in bookings")

		return 0, fmt.Errorf("failed to load checked-in bookings: %w", err)
	}

	if len(bookings) == 0 {
		return 0, nil
	}

	bookingIDs := make([]string, len(bookings))
	for i, booking := range bookings {
		bookingIDs[i] = booking.ID
	}

	due, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBookingID, Operator: gDto.FilterOperatorIn, Value: bookingIDs, Table: model.TableName},
			gDto.Filter{Field: model.FieldCheckoutDate, Operator: gDto.FilterOperatorLessEq, Value: asOf, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load due check-ins")

		return 0, fmt.Errorf("failed to load due check-ins: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	dueBookingIDs := make([]string, len(due))
	for i, record := range due {
		dueBookingIDs[i] = record.BookingID
	}

	fields := shared.TransformFields(struct{}{}, constant.SystemUser)
	fields[bookingModel.FieldStatusID] = completedID

	if err = s.bookingRepo.Update(ctx, fields, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldID, Operator: gDto.FilterOperatorIn, Value: dueBookingIDs, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatusID, Operator: gDto.FilterOperatorEq, Value: checkedInID, Table: bookingModel.TableName},
		},
	}); err != nil {
		log.Error().Err(err).Msg("failed to complete due stays")

		return 0, fmt.Errorf("failed to complete due stays: %w", err)
	}

	for _, record := range due {
		s.invalidate(ctx, record.ID, record.BookingID)
		s.publish(ctx, newEvent(bookingModel.EventCheckedOut, record, refModel.BookingStatusCompleted))
	}

	scope.SetAttribute("checkin.completed", len(due))

	return len(due), nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCheckInsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCheckIn, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for check-ins")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count check-ins")

		return res, fmt.Errorf("failed to count check-ins: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get check-ins")

		return res, fmt.Errorf("failed to get check-ins: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save check-ins to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CheckInResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetCheckIn, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for check-in")

		return res, nil
	}

	record, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(record)

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save check-in to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	record, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	booking, err := s.booking(ctx, record.BookingID)
	if err != nil {
		return err
	}

	catalog, err := s.reference.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reference catalog: %w", err)
	}

	if status, _ := catalog.BookingStatusName(booking.StatusID); status != refModel.BookingStatusCheckedIn {
		return failure.BadRequestFromString(fmt.Sprintf("check-in of a %s booking cannot be undone", status))
	}

	confirmedID, err := statusID(catalog, refModel.BookingStatusConfirmed)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete check-in")

		return fmt.Errorf("failed to delete check-in: %w", err)
	}

	if err = s.setBookingStatus(ctx, user, confirmedID, booking.ID); err != nil {
		return err
	}

	s.invalidate(ctx, id, booking.ID)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.CheckIn, error) {
	record, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get check-in")

		return record, fmt.Errorf("failed to get check-in: %w", err)
	}

	if record.ID == constant.Empty {
		return record, failure.NotFound("check-in not found")
	}

	return record, nil
}

func (s *serviceImpl) booking(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) setBookingStatus(ctx context.Context, user string, statusID int, bookingID string) error {
	fields := shared.TransformFields(struct{}{}, user)
	fields[bookingModel.FieldStatusID] = statusID

	if err := s.bookingRepo.Update(ctx, fields, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	return nil
}

func (s *serviceImpl) ensureRoomActive(ctx context.Context, roomID string) error {
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

func (s *serviceImpl) ensureFree(ctx context.Context, roomID string, stay availabilityModel.Interval, bookingID string) error {
	conflict, err := s.availability.Conflicts(ctx, roomID, stay.Start, stay.End, bookingID)
	if err != nil {
		return err
	}

	if conflict {
		return failure.Conflict("room is occupied during the requested stay")
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id, bookingID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, key := range []string{shared.BuildCacheKey(cacheGetCheckIn, id), shared.BuildCacheKey(cacheGetBooking, bookingID)} {
			if err := s.cache.Delete(c, key); err != nil {
				log.Error().Err(err).Str("cacheKey", key).Msg("failed to delete cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCheckIn)
		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, evt bookingModel.Event) {
	go func() {
		if err := s.publisher.Publish(context.WithoutCancel(ctx), evt); err != nil {
			log.Warn().Err(err).Str("event", evt.Type).Str("booking", evt.BookingID).Msg("check-in event dropped")
		}
	}()
}

func statusID(catalog refModel.Catalog, name string) (int, error) {
	id, ok := catalog.BookingStatusID(name)
	if !ok {
		return 0, failure.InternalError(fmt.Errorf("booking status catalog has no %s status", name))
	}

	return id, nil
}

func newEvent(eventType string, record model.CheckIn, status string) bookingModel.Event {
	return bookingModel.Event{
		Type:         eventType,
		BookingID:    record.BookingID,
		RoomID:       record.RoomID,
		CustomerID:   record.CustomerID,
		Status:       status,
		CheckinDate:  record.CheckInDate.Format(constant.DateOnlyFormat),
		CheckoutDate: record.CheckoutDate.Format(constant.DateOnlyFormat),
	}
}

func mapStoreError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case constant.PqErrorCodeUniqueViolation:
			return failure.Conflict("booking is already checked in")
		case constant.PqErrorCodeFkViolation:
			return failure.BadRequestFromString("check-in references a room, booking or customer that does not exist")
		}
	}

	return fmt.Errorf("failed to save check-in: %w", err)
}
