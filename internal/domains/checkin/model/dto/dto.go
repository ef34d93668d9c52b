package dto

import (
	"fmt"
	"time"

	"hotel/internal/domains/checkin/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

// CreateCheckInRequest opens a stay for a booking. Room, customer and check-out default to the booking's.
type CreateCheckInRequest struct {
	BookingID    string `json:"booking_id"    validate:"required,uuid"`
	RoomID       string `json:"room_id"       validate:"omitempty,uuid"`
	CustomerID   string `json:"customer_id"   validate:"omitempty,uuid"`
	CheckInDate  string `json:"checkin_date"  validate:"required,datetime=2006-01-02"`
	CheckoutDate string `json:"checkout_date" validate:"omitempty,datetime=2006-01-02"`
}

// Dates parses the stay, falling back to defaultCheckout when no check-out date was sent.
func (c *CreateCheckInRequest) Dates(defaultCheckout time.Time) (time.Time, time.Time, error) {
	checkIn, err := parseDate("checkin_date", c.CheckInDate)
	if err != nil {
		return checkIn, defaultCheckout, err
	}

	if c.CheckoutDate == constant.Empty {
		return checkIn, defaultCheckout, nil
	}

	checkOut, err := parseDate("checkout_date", c.CheckoutDate)

	return checkIn, checkOut, err
}

func (c *CreateCheckInRequest) ToModel(user, roomID, customerID string, checkIn, checkOut time.Time) model.CheckIn {
	now := timezone.Now()

	return model.CheckIn{
		ID:           uuid.NewString(),
		CheckInDate:  checkIn,
		CheckoutDate: checkOut,
		RoomID:       roomID,
		BookingID:    c.BookingID,
		CustomerID:   customerID,
		StaffID:      user,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// CheckoutRequest closes a stay. An empty date means today.
type CheckoutRequest struct {
	CheckoutDate string `json:"checkout_date" validate:"omitempty,datetime=2006-01-02"`
}

func (c *CheckoutRequest) Date() (time.Time, error) {
	if c.CheckoutDate == constant.Empty {
		return timezone.Now(), nil
	}

	return parseDate("checkout_date", c.CheckoutDate)
}

type CheckInResponse struct {
	ID           string `json:"id"`
	BookingID    string `json:"booking_id"`
	RoomID       string `json:"room_id"`
	CustomerID   string `json:"customer_id"`
	StaffID      string `json:"staff_id"`
	CheckInDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
	gDto.Metadata
}

func (r *CheckInResponse) FromModel(model model.CheckIn) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.RoomID = model.RoomID
	r.CustomerID = model.CustomerID
	r.StaffID = model.StaffID
	r.CheckInDate = timezone.Format(model.CheckInDate, constant.DateOnlyFormat)
	r.CheckoutDate = timezone.Format(model.CheckoutDate, constant.DateOnlyFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetCheckInsResponse struct {
	CheckIns  []CheckInResponse `json:"checkins"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetCheckInsResponse) FromModels(models []model.CheckIn, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.CheckIns = make([]CheckInResponse, len(models))
	for i, mod := range models {
		r.CheckIns[i].FromModel(mod)
	}
}

type CreateCheckInResponse struct {
	ID string `json:"id"`
}

// CompleteDueStaysResponse reports how many stays a sweep closed.
type CompleteDueStaysResponse struct {
	Completed int `json:"completed"`
}

func parseDate(field, value string) (time.Time, error) {
	date, err := timezone.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return date, failure.BadRequestFromString(fmt.Sprintf("invalid %s %q", field, value))
	}

	return date, nil
}
