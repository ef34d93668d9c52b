package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	availabilityMocks "hotel/internal/domains/availability/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	checkInMocks "hotel/internal/domains/checkin/mocks"
	"hotel/internal/domains/checkin/model"
	"hotel/internal/domains/checkin/model/dto"
	"hotel/internal/domains/checkin/service"
	refMocks "hotel/internal/domains/reference/mocks"
	refModel "hotel/internal/domains/reference/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	pending   = 1
	confirmed = 2
	checkedIn = 3
	completed = 4
	cancelled = 5
)

type checkInDeps struct {
	repo         *checkInMocks.MockCheckIn
	bookings     *bookingMocks.MockBooking
	rooms        *roomMocks.MockRoom
	availability *availabilityMocks.MockAvailability
	svc          service.CheckIn
}

func newCheckInDeps(t *testing.T) checkInDeps {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	reference := refMocks.NewMockReference(ctrl)
	publisher := bookingMocks.NewMockPublisher(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	d := checkInDeps{
		repo:         checkInMocks.NewMockCheckIn(ctrl),
		bookings:     bookingMocks.NewMockBooking(ctrl),
		rooms:        roomMocks.NewMockRoom(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
	}

	d.svc = service.New(d.repo, d.bookings, d.rooms, d.availability, reference, publisher, cfg, redis, mocks.NewOtel())

	reference.EXPECT().Catalog(gomock.Any()).Return(refModel.NewCatalog([]refModel.BookingStatus{
		{ID: pending, Name: refModel.BookingStatusPending},
		{ID: confirmed, Name: refModel.BookingStatusConfirmed},
		{ID: checkedIn, Name: refModel.BookingStatusCheckedIn},
		{ID: completed, Name: refModel.BookingStatusCompleted},
		{ID: cancelled, Name: refModel.BookingStatusCancelled},
	}, nil, nil), nil).AnyTimes()
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).AnyTimes()
	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return d
}

func staffCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func booking(statusID int) bookingModel.Booking {
	return bookingModel.Booking{
		ID:           "b1",
		RoomID:       "room-1",
		CustomerID:   "cust-1",
		CheckinDate:  day(1),
		CheckoutDate: day(5),
		StatusID:     statusID,
	}
}

func stay() model.CheckIn {
	return model.CheckIn{
		ID:           "c1",
		BookingID:    "b1",
		RoomID:       "room-1",
		CustomerID:   "cust-1",
		CheckInDate:  day(1),
		CheckoutDate: day(5),
	}
}

// expectStatus asserts the booking is moved to the given status.
func expectStatus(t *testing.T, d checkInDeps, statusID int) {
	t.Helper()

	d.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, statusID, fields[bookingModel.FieldStatusID])

			return nil
		})
}

func TestCheckInService_Create(t *testing.T) {
	base := dto.CreateCheckInRequest{BookingID: "b1", CheckInDate: "2024-01-01"}

	tests := []struct {
		name      string
		req       func() dto.CreateCheckInRequest
		setupMock func(t *testing.T, d checkInDeps)
		wantCode  int
	}{
		{
			name: "defaults come from the booking",
			req:  func() dto.CreateCheckInRequest { return base },
			setupMock: func(t *testing.T, d checkInDeps) {
				d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(confirmed), nil)
				d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				d.availability.EXPECT().Conflicts(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "b1").Return(false, nil)
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, record model.CheckIn) error {
					assert.Equal(t, "room-1", record.RoomID)
					assert.Equal(t, "cust-1", record.CustomerID)
					assert.Equal(t, "staff-1", record.StaffID)
					assert.Equal(t, 4*24*time.Hour, record.CheckoutDate.Sub(record.CheckInDate))

					return nil
				})
				expectStatus(t, d, checkedIn)
			},
		},
		{
			name: "room change",
			req: func() dto.CreateCheckInRequest {
				req := base
				req.RoomID = "room-2"
				req.CheckoutDate = "2024-01-03"

				return req
			},
			setupMock: func(t *testing.T, d checkInDeps) {
				d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(confirmed), nil)
				d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				d.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "room-2", Active: true}, nil)
				d.availability.EXPECT().Conflicts(gomock.Any(), "room-2", gomock.Any(), gomock.Any(), "b1").Return(false, nil)
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, record model.CheckIn) error {
					assert.Equal(t, "room-2", record.RoomID)
					assert.Equal(t, 2*24*time.Hour, record.CheckoutDate.Sub(record.CheckInDate))

					return nil
				})
				expectStatus(t, d, checkedIn)
			},
		},
		{
			name: "booking not found",
			req:  func() dto.CreateCheckInRequest { return base },
			setupMock: func(t *testing.T, d checkInDeps) {
				d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "pending booking must be confirmed first",
			req:  func() dto.CreateCheckInRequest { return base },
			setupMock: func(t *testing.T, d checkInDeps) {
				d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(pending), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "cancelled booking",
			req:  func() dto.CreateCheckInRequest { return base },
			setupMock: func(t *testing.T, d checkInDeps) {
				d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(cancelled), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "one check-in per booking",
			req:  func() dto.CreateCheckInRequest { return base },
			setupMock: func(t *testing.T, d checkInDeps) {
				d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(confirmed), nil)
				d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "check-in after the booked check-out",
			req: func() dto.CreateCheckInRequest {
				req := base
				req.CheckInDate = "2024-01-06"

				return req
			},
			setupMock: func(t *testing.T, d checkInDeps) {
				d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(confirmed), nil)
				d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "target room occupied",
			req:  func() dto.CreateCheckInRequest { return base },
			setupMock: func(t *testing.T, d checkInDeps) {
				d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(confirmed), nil)
				d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				d.availability.EXPECT().Conflicts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unique index rejects a concurrent check-in",
			req:  func() dto.CreateCheckInRequest { return base },
			setupMock: func(t *testing.T, d checkInDeps) {
				d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(confirmed), nil)
				d.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				d.availability.EXPECT().Conflicts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				d.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (checkin): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newCheckInDeps(t)
			tt.setupMock(t, d)

			id, err := d.svc.Create(staffCtx(), tt.req())

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, id)
		})
	}
}

func TestCheckInService_Checkout(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		status    int
		setupMock func(t *testing.T, d checkInDeps)
		wantCode  int
	}{
		{
			name:   "early checkout skips the conflict check",
			date:   "2024-01-03",
			status: checkedIn,
			setupMock: func(t *testing.T, d checkInDeps) {
				d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						checkout, ok := fields[model.FieldCheckoutDate].(time.Time)
						assert.True(t, ok)
						assert.Equal(t, 3, checkout.Day())

						return nil
					})
				expectStatus(t, d, completed)
			},
		},
		{
			name:   "late checkout",
			date:   "2024-01-07",
			status: checkedIn,
			setupMock: func(t *testing.T, d checkInDeps) {
				d.availability.EXPECT().Conflicts(gomock.Any(), "room-1", gomock.Any(), gomock.Any(), "b1").Return(false, nil)
				d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				expectStatus(t, d, completed)
			},
		},
		{
			name:   "late checkout into the next stay",
			date:   "2024-01-07",
			status: checkedIn,
			setupMock: func(t *testing.T, d checkInDeps) {
				d.availability.EXPECT().Conflicts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:      "checkout on the check-in day",
			date:      "2024-01-01",
			status:    checkedIn,
			setupMock: func(t *testing.T, d checkInDeps) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "stay already closed",
			date:      "2024-01-04",
			status:    completed,
			setupMock: func(t *testing.T, d checkInDeps) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newCheckInDeps(t)

			d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stay(), nil)
			d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(tt.status), nil)
			tt.setupMock(t, d)

			err := d.svc.Checkout(staffCtx(), dto.CheckoutRequest{CheckoutDate: tt.date}, "c1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCheckInService_Checkout_NotFound(t *testing.T) {
	d := newCheckInDeps(t)

	d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.CheckIn{}, nil)

	err := d.svc.Checkout(staffCtx(), dto.CheckoutRequest{}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestCheckInService_CompleteDueStays(t *testing.T) {
	t.Run("completes due stays only", func(t *testing.T) {
		d := newCheckInDeps(t)

		d.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), bookingModel.FieldID).
			Return([]bookingModel.Booking{{ID: "b1"}, {ID: "b2"}}, nil)
		d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.CheckIn, error) {
				assert.Len(t, filter.Filters, 2)

				return []model.CheckIn{stay()}, nil
			})
		d.bookings.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
				assert.Equal(t, completed, fields[bookingModel.FieldStatusID])
				assert.Equal(t, constant.SystemUser, fields[constant.FieldModifiedBy])

				byID, ok := filter.Filters[0].(gDto.Filter)
				assert.True(t, ok)
				assert.Equal(t, []string{"b1"}, byID.Value)

				return nil
			})

		completedCount, err := d.svc.CompleteDueStays(context.Background(), day(5))
		assert.NoError(t, err)
		assert.Equal(t, 1, completedCount)
	})

	t.Run("nothing checked in", func(t *testing.T) {
		d := newCheckInDeps(t)

		d.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		completedCount, err := d.svc.CompleteDueStays(context.Background(), day(5))
		assert.NoError(t, err)
		assert.Zero(t, completedCount)
	})

	t.Run("store failure", func(t *testing.T) {
		d := newCheckInDeps(t)

		d.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		_, err := d.svc.CompleteDueStays(context.Background(), day(5))
		assert.Error(t, err)
	})
}

func TestCheckInService_Delete(t *testing.T) {
	t.Run("reverts the booking to confirmed", func(t *testing.T) {
		d := newCheckInDeps(t)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stay(), nil)
		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(checkedIn), nil)
		d.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		expectStatus(t, d, confirmed)

		assert.NoError(t, d.svc.Delete(staffCtx(), "c1"))
	})

	t.Run("closed stay", func(t *testing.T) {
		d := newCheckInDeps(t)

		d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stay(), nil)
		d.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(completed), nil)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(d.svc.Delete(staffCtx(), "c1")))
	})
}

func TestCheckInService_Get(t *testing.T) {
	d := newCheckInDeps(t)

	d.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stay(), nil)

	res, err := d.svc.Get(context.Background(), "c1")
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-05", res.CheckoutDate)

	d.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	d.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.CheckIn{stay()}, nil)

	list, err := d.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	assert.NoError(t, err)
	assert.Equal(t, 1, list.TotalData)
	assert.Len(t, list.CheckIns, 1)
}
