package model

import (
	"slices"
	"time"

	refModel "hotel/internal/domains/reference/model"
	"hotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldBookingDate  = "booking_date"
	FieldRoomID       = "room_id"
	FieldCheckinDate  = "checkin_date"
	FieldCheckoutDate = "checkout_date"
	FieldCustomerID   = "customer_id"
	FieldStaffID      = "staff_id"
	FieldStatusID     = "status_id"
	FieldCreatedBy    = "created_by"
)

var Entity = model.Entity{Name: EntityName, Table: TableName, PrimaryColumn: FieldID}

// Booking reserves a room for [CheckinDate, CheckoutDate).
type Booking struct {
	ID           string    `db:"id"`
	BookingDate  time.Time `db:"booking_date"`
	RoomID       string    `db:"room_id"`
	CheckinDate  time.Time `db:"checkin_date"`
	CheckoutDate time.Time `db:"checkout_date"`
	CustomerID   string    `db:"customer_id"`
	StaffID      string    `db:"staff_id"`
	StatusID     int       `db:"status_id"`
	model.Metadata
}

var transitions = map[string][]string{
	refModel.BookingStatusPending:   {refModel.BookingStatusConfirmed, refModel.BookingStatusCancelled},
	refModel.BookingStatusConfirmed: {refModel.BookingStatusCheckedIn, refModel.BookingStatusCancelled},
	refModel.BookingStatusCheckedIn: {refModel.BookingStatusCompleted},
}

// CanTransition reports whether a booking may move from one status to another.
// Completed and Cancelled are terminal.
func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

// Event types published for bookings and check-ins.
const (
	EventBookingCreated       = "booking.created"
	EventBookingUpdated       = "booking.updated"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingDeleted       = "booking.deleted"
	EventCheckInCreated       = "checkin.created"
	EventCheckedOut           = "checkin.checked_out"
)

// Event is the payload written to the booking topic, keyed by room id.
type Event struct {
	Type         string    `json:"type"`
	BookingID    string    `json:"booking_id"`
	RoomID       string    `json:"room_id"`
	CustomerID   string    `json:"customer_id"`
	Status       string    `json:"status"`
	CheckinDate  string    `json:"checkin_date"`
	CheckoutDate string    `json:"checkout_date"`
	OccurredAt   time.Time `json:"occurred_at"`
}
