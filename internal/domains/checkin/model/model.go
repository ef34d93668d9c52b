package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "checkins"
	EntityName = "checkin"

	FieldID           = "id"
	FieldCheckInDate  = "checkin_date"
	FieldCheckoutDate = "checkout_date"
	FieldRoomID       = "room_id"
	FieldBookingID    = "booking_id"
	FieldCustomerID   = "customer_id"
	FieldStaffID      = "staff_id"
)

var Entity = model.Entity{Name: EntityName, Table: TableName, PrimaryColumn: FieldID}

// CheckIn records realized occupancy. Its interval and room take precedence over the booking's.
type CheckIn struct {
	ID           string    `db:"id"`
	CheckInDate  time.Time `db:"checkin_date"`
	CheckoutDate time.Time `db:"checkout_date"`
	RoomID       string    `db:"room_id"`
	BookingID    string    `db:"booking_id"`
	CustomerID   string    `db:"customer_id"`
	StaffID      string    `db:"staff_id"`
	model.Metadata
}
