package dto

import (
	"fmt"
	"time"

	"hotel/internal/domains/booking/model"
	refModel "hotel/internal/domains/reference/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID       string `json:"room_id"       validate:"required,uuid"`
	CustomerID   string `json:"customer_id"   validate:"required,uuid"`
	CheckinDate  string `json:"checkin_date"  validate:"required,datetime=2006-01-02"`
	CheckoutDate string `json:"checkout_date" validate:"required,datetime=2006-01-02"`
	Status       string `json:"status"        validate:"omitempty,oneof=Pending Confirmed"`
}

func (c *CreateBookingRequest) Dates() (time.Time, time.Time, error) {
	return parseStay(c.CheckinDate, c.CheckoutDate)
}

// ToModel builds the booking from already normalized stay dates.
func (c *CreateBookingRequest) ToModel(user string, checkIn, checkOut time.Time, statusID int) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:           uuid.NewString(),
		BookingDate:  now,
		RoomID:       c.RoomID,
		CheckinDate:  checkIn,
		CheckoutDate: checkOut,
		CustomerID:   c.CustomerID,
		StaffID:      user,
		StatusID:     statusID,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBookingRequest reschedules a booking. Omitted fields keep their current value.
type UpdateBookingRequest struct {
	RoomID       string `db:"room_id"       json:"room_id"       validate:"omitempty,uuid"`
	CustomerID   string `db:"customer_id"   json:"customer_id"   validate:"omitempty,uuid"`
	CheckinDate  string `json:"checkin_date"  validate:"omitempty,datetime=2006-01-02"`
	CheckoutDate string `json:"checkout_date" validate:"omitempty,datetime=2006-01-02"`
}

// Dates merges the requested dates over the current stay.
func (u *UpdateBookingRequest) Dates(current model.Booking) (time.Time, time.Time, error) {
	checkIn, checkOut := current.CheckinDate, current.CheckoutDate

	if u.CheckinDate != constant.Empty {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, u.CheckinDate)
		if err != nil {
			return checkIn, checkOut, failure.BadRequestFromString(fmt.Sprintf("invalid checkin_date %q", u.CheckinDate))
		}

		checkIn = parsed
	}

	if u.CheckoutDate != constant.Empty {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, u.CheckoutDate)
		if err != nil {
			return checkIn, checkOut, failure.BadRequestFromString(fmt.Sprintf("invalid checkout_date %q", u.CheckoutDate))
		}

		checkOut = parsed
	}

	return checkIn, checkOut, nil
}

func (u *UpdateBookingRequest) Reschedules() bool {
	return u.RoomID != constant.Empty || u.CheckinDate != constant.Empty || u.CheckoutDate != constant.Empty
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Confirmed CheckedIn Completed Cancelled"`
}

type BookingResponse struct {
	ID           string `json:"id"`
	BookingDate  string `json:"booking_date"`
	RoomID       string `json:"room_id"`
	CustomerID   string `json:"customer_id"`
	StaffID      string `json:"staff_id"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
	StatusID     int    `json:"status_id"`
	StatusName   string `json:"status_name"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking, catalog refModel.Catalog) {
	r.ID = model.ID
	r.BookingDate = timezone.Format(model.BookingDate, time.RFC3339)
	r.RoomID = model.RoomID
	r.CustomerID = model.CustomerID
	r.StaffID = model.StaffID
	r.CheckinDate = timezone.Format(model.CheckinDate, constant.DateOnlyFormat)
	r.CheckoutDate = timezone.Format(model.CheckoutDate, constant.DateOnlyFormat)
	r.StatusID = model.StatusID
	r.StatusName, _ = catalog.BookingStatusName(model.StatusID)
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, catalog refModel.Catalog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, catalog)
	}
}

type CreateBookingResponse struct {
	ID string `json:"id"`
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	start, err := timezone.Parse(constant.DateOnlyFormat, checkIn)
	if err != nil {
		return start, time.Time{}, failure.BadRequestFromString(fmt.Sprintf("invalid checkin_date %q", checkIn))
	}

	end, err := timezone.Parse(constant.DateOnlyFormat, checkOut)
	if err != nil {
		return start, end, failure.BadRequestFromString(fmt.Sprintf("invalid checkout_date %q", checkOut))
	}

	return start, end, nil
}
