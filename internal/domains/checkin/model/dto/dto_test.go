package dto_test

import (
	"net/http"
	"testing"
	"time"

	"hotel/internal/domains/checkin/model/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateCheckInRequest_Dates(t *testing.T) {
	bookedCheckout := time.Date(2024, 1, 5, 0, 0, 0, 0, timezone.GetLocation())

	req := dto.CreateCheckInRequest{CheckInDate: "2024-01-01"}

	checkIn, checkOut, err := req.Dates(bookedCheckout)
	assert.NoError(t, err)
	assert.Equal(t, 1, checkIn.Day())
	assert.Equal(t, bookedCheckout, checkOut)

	req.CheckoutDate = "2024-01-03"

	_, checkOut, err = req.Dates(bookedCheckout)
	assert.NoError(t, err)
	assert.Equal(t, 3, checkOut.Day())

	req.CheckInDate = "first of january"

	_, _, err = req.Dates(bookedCheckout)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestCheckoutRequest_Date(t *testing.T) {
	req := dto.CheckoutRequest{}

	today, err := req.Date()
	assert.NoError(t, err)
	assert.WithinDuration(t, timezone.Now(), today, time.Minute)

	req.CheckoutDate = "2024-02-30"

	_, err = req.Date()
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
