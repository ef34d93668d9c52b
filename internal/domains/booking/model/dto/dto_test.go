package dto_test

import (
	"net/http"
	"testing"
	"time"

	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	refModel "hotel/internal/domains/reference/model"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestCreateBookingRequest_Dates(t *testing.T) {
	req := dto.CreateBookingRequest{CheckinDate: "2024-01-01", CheckoutDate: "2024-01-05"}

	checkIn, checkOut, err := req.Dates()
	assert.NoError(t, err)
	assert.Equal(t, 4*24*time.Hour, checkOut.Sub(checkIn))

	req.CheckoutDate = "2024-13-40"

	_, _, err = req.Dates()
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestUpdateBookingRequest_Dates(t *testing.T) {
	current := model.Booking{
		CheckinDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckoutDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	req := dto.UpdateBookingRequest{}
	assert.False(t, req.Reschedules())

	checkIn, checkOut, err := req.Dates(current)
	assert.NoError(t, err)
	assert.Equal(t, current.CheckinDate, checkIn)
	assert.Equal(t, current.CheckoutDate, checkOut)

	req.CheckoutDate = "2024-01-08"
	assert.True(t, req.Reschedules())

	checkIn, checkOut, err = req.Dates(current)
	assert.NoError(t, err)
	assert.Equal(t, current.CheckinDate, checkIn)
	assert.Equal(t, 8, checkOut.Day())

	req.CheckinDate = "soon"

	_, _, err = req.Dates(current)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	catalog := refModel.NewCatalog([]refModel.BookingStatus{{ID: 2, Name: refModel.BookingStatusConfirmed}}, nil, nil)

	var res dto.GetBookingsResponse
	res.FromModels([]model.Booking{
		{ID: "b1", StatusID: 2, CheckinDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), CheckoutDate: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "b2", StatusID: 9},
	}, catalog, 11, 5)

	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, 11, res.TotalData)
	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, refModel.BookingStatusConfirmed, res.Bookings[0].StatusName)
	assert.Empty(t, res.Bookings[1].StatusName)
}
