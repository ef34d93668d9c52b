package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/availability/model"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	checkInModel "hotel/internal/domains/checkin/model"
	checkInRepo "hotel/internal/domains/checkin/repository"
	refModel "hotel/internal/domains/reference/model"
	refService "hotel/internal/domains/reference/service"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	storeRoom    = "room"
	storeBooking = "booking"
	storeCheckIn = "checkin"
)

var errNoCancelledStatus = errors.New("booking status catalog has no cancelled status")

// Availability answers which rooms are free for a stay. Every call reads the
// stores afresh; nothing is cached between calls.
type Availability interface {
	// GetAvailable returns the rooms free for [checkIn, checkOut) ordered by id.
	// A nil candidate set means every active room; an empty one yields an empty result.
	GetAvailable(ctx context.Context, checkIn, checkOut time.Time, candidateRoomIDs []string) ([]roomModel.Room, error)
	// Conflicts reports whether the room is occupied during the stay, ignoring excludeBookingID.
	Conflicts(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error)
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	checkInRepo checkInRepo.CheckIn
	reference   refService.Reference
	policy      model.Policy
	otel        otel.Otel
}

func New(roomRepo roomRepo.Room, bookingRepo bookingRepo.Booking, checkInRepo checkInRepo.CheckIn, reference refService.Reference, cfg *config.Config, otel otel.Otel) Availability {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		checkInRepo: checkInRepo,
		reference:   reference,
		policy:      model.NewPolicy(cfg),
		otel:        otel,
	}
}

func (s *serviceImpl) GetAvailable(ctx context.Context, checkIn, checkOut time.Time, candidateRoomIDs []string) (res []roomModel.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query, err := s.policy.NewInterval(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	if candidateRoomIDs != nil && len(candidateRoomIDs) == 0 {
		return []roomModel.Room{}, nil
	}

	cancelledID, err := s.cancelledStatusID(ctx)
	if err != nil {
		return nil, err
	}

	var (
		rooms    []roomModel.Room
		bookings []bookingModel.Booking
		roomIDs  []string
	)

	if candidateRoomIDs == nil {
		rooms, err = s.activeRooms(ctx)
		if err != nil {
			return nil, err
		}

		if len(rooms) == 0 {
			return []roomModel.Room{}, nil
		}

		roomIDs = idsOf(rooms)

		bookings, err = s.liveBookings(ctx, roomIDs, cancelledID)
		if err != nil {
			return nil, err
		}
	} else {
		roomIDs = uniqueIDs(candidateRoomIDs)

		group, groupCtx := errgroup.WithContext(ctx)

		group.Go(func() (err error) {
			rooms, err = s.candidateRooms(groupCtx, roomIDs)

			return err
		})

		group.Go(func() (err error) {
			bookings, err = s.liveBookings(groupCtx, roomIDs, cancelledID)

			return err
		})

		if err = group.Wait(); err != nil {
			return nil, err
		}
	}

	occupied, err := s.occupancy(ctx, roomIDs, bookings, cancelledID, constant.Empty)
	if err != nil {
		return nil, err
	}

	res = make([]roomModel.Room, 0, len(rooms))

	for _, room := range rooms {
		if s.overlapsAny(query, occupied[room.ID]) {
			continue
		}

		res = append(res, room)
	}

	slices.SortFunc(res, func(a, b roomModel.Room) int {
		return strings.Compare(a.ID, b.ID)
	})

	scope.SetAttributes(map[string]any{
		"availability.candidates": len(rooms),
		"availability.available":  len(res),
	})

	return res, nil
}

func (s *serviceImpl) Conflicts(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (conflict bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Conflicts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query, err := s.policy.NewInterval(checkIn, checkOut)
	if err != nil {
		return false, err
	}

	cancelledID, err := s.cancelledStatusID(ctx)
	if err != nil {
		return false, err
	}

	roomIDs := []string{roomID}

	bookings, err := s.liveBookings(ctx, roomIDs, cancelledID)
	if err != nil {
		return false, err
	}

	occupied, err := s.occupancy(ctx, roomIDs, bookings, cancelledID, excludeBookingID)
	if err != nil {
		return false, err
	}

	return s.overlapsAny(query, occupied[roomID]), nil
}

func (s *serviceImpl) cancelledStatusID(ctx context.Context) (int, error) {
	catalog, err := s.reference.Catalog(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load reference catalog: %w", err)
	}

	id, ok := catalog.BookingStatusID(refModel.BookingStatusCancelled)
	if !ok {
		log.Error().Msg("booking status catalog has no cancelled status")

		return 0, failure.InternalError(errNoCancelledStatus)
	}

	return id, nil
}

func (s *serviceImpl) activeRooms(ctx context.Context) ([]roomModel.Room, error) {
	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: roomModel.FieldActive, Operator: gDto.FilterOperatorEq, Value: true, Table: roomModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load active rooms")

		return nil, failure.StoreUnavailable(storeRoom, err)
	}

	return rooms, nil
}

// candidateRooms loads the requested rooms. Unknown ids fail the query, retired rooms are dropped.
func (s *serviceImpl) candidateRooms(ctx context.Context, roomIDs []string) ([]roomModel.Room, error) {
	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: roomModel.FieldID, Operator: gDto.FilterOperatorIn, Value: roomIDs, Table: roomModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load candidate rooms")

		return nil, failure.StoreUnavailable(storeRoom, err)
	}

	known := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		known[room.ID] = true
	}

	for _, id := range roomIDs {
		if !known[id] {
			return nil, failure.NotFound(fmt.Sprintf("room %s not found", id))
		}
	}

	return slices.DeleteFunc(rooms, func(room roomModel.Room) bool { return !room.Active }), nil
}

func (s *serviceImpl) liveBookings(ctx context.Context, roomIDs []string, cancelledID int) ([]bookingModel.Booking, error) {
	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldRoomID, Operator: gDto.FilterOperatorIn, Value: roomIDs, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatusID, Operator: gDto.FilterOperatorNotEq, Value: cancelledID, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings")

		return nil, failure.StoreUnavailable(storeBooking, err)
	}

	return bookings, nil
}

// occupancy computes the effective occupied intervals per room. A booking with check-ins
// is represented by them, on the room they name; otherwise by its own interval.
func (s *serviceImpl) occupancy(ctx context.Context, roomIDs []string, bookings []bookingModel.Booking, cancelledID int, excludeBookingID string) (map[string][]model.Interval, error) {
	live := make(map[string]bookingModel.Booking, len(bookings))

	for _, booking := range bookings {
		if booking.StatusID == cancelledID || booking.ID == excludeBookingID {
			continue
		}

		live[booking.ID] = booking
	}

	checkIns, err := s.checkIns(ctx, roomIDs, slices.Sorted(maps.Keys(live)))
	if err != nil {
		return nil, err
	}

	ignored, err := s.foreignCancelled(ctx, checkIns, live, cancelledID, excludeBookingID)
	if err != nil {
		return nil, err
	}

	occupied := map[string][]model.Interval{}
	covered := map[string]bool{}

	for _, checkIn := range checkIns {
		if checkIn.BookingID == excludeBookingID || ignored[checkIn.BookingID] {
			continue
		}

		occupied[checkIn.RoomID] = append(occupied[checkIn.RoomID], s.stay(checkIn.CheckInDate, checkIn.CheckoutDate))
		covered[checkIn.BookingID] = true
	}

	for id, booking := range live {
		if covered[id] {
			continue
		}

		occupied[booking.RoomID] = append(occupied[booking.RoomID], s.stay(booking.CheckinDate, booking.CheckoutDate))
	}

	return occupied, nil
}

func (s *serviceImpl) checkIns(ctx context.Context, roomIDs, bookingIDs []string) ([]checkInModel.CheckIn, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: checkInModel.FieldRoomID, Operator: gDto.FilterOperatorIn, Value: roomIDs, Table: checkInModel.TableName},
		},
	}

	if len(bookingIDs) > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    checkInModel.FieldBookingID,
			Operator: gDto.FilterOperatorIn,
			Value:    bookingIDs,
			Table:    checkInModel.TableName,
		})
	}

	checkIns, err := s.checkInRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load check-ins")

		return nil, failure.StoreUnavailable(storeCheckIn, err)
	}

	return checkIns, nil
}

// foreignCancelled looks up bookings of check-ins that moved into a candidate room
// and returns the ones that were cancelled.
func (s *serviceImpl) foreignCancelled(ctx context.Context, checkIns []checkInModel.CheckIn, live map[string]bookingModel.Booking, cancelledID int, excludeBookingID string) (map[string]bool, error) {
	foreign := []string{}

	for _, checkIn := range checkIns {
		if _, ok := live[checkIn.BookingID]; ok || checkIn.BookingID == excludeBookingID || slices.Contains(foreign, checkIn.BookingID) {
			continue
		}

		foreign = append(foreign, checkIn.BookingID)
	}

	ignored := map[string]bool{}
	if len(foreign) == 0 {
		return ignored, nil
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldID, Operator: gDto.FilterOperatorIn, Value: foreign, Table: bookingModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings of moved check-ins")

		return nil, failure.StoreUnavailable(storeBooking, err)
	}

	for _, booking := range bookings {
		if booking.StatusID == cancelledID {
			ignored[booking.ID] = true
		}
	}

	return ignored, nil
}

func (s *serviceImpl) stay(start, end time.Time) model.Interval {
	return model.Interval{Start: s.policy.Normalize(start), End: s.policy.Normalize(end)}
}

func (s *serviceImpl) overlapsAny(query model.Interval, intervals []model.Interval) bool {
	return slices.ContainsFunc(intervals, func(interval model.Interval) bool {
		return s.policy.Overlaps(query, interval)
	})
}

func idsOf(rooms []roomModel.Room) []string {
	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}

	return ids
}

func uniqueIDs(ids []string) []string {
	unique := slices.Clone(ids)
	slices.Sort(unique)

	return slices.Compact(unique)
}
