package model

import gModel "hotel/shared/model"

const (
	BookingStatusTableName = "booking_statuses"
	RoomStatusTableName    = "room_statuses"
	RoomTypeTableName      = "room_types"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldMaxGuests   = "max_guests"
)

// Booking status names. Identifiers are seeded by migrations and resolved through a Catalog.
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCheckedIn = "CheckedIn"
	BookingStatusCompleted = "Completed"
	BookingStatusCancelled = "Cancelled"
)

const (
	RoomStatusAvailable   = "Available"
	RoomStatusOccupied    = "Occupied"
	RoomStatusMaintenance = "Maintenance"
)

var (
	BookingStatusEntity = gModel.Entity{Name: "booking_status", Table: BookingStatusTableName, PrimaryColumn: FieldID}
	RoomStatusEntity    = gModel.Entity{Name: "room_status", Table: RoomStatusTableName, PrimaryColumn: FieldID}
	RoomTypeEntity      = gModel.Entity{Name: "room_type", Table: RoomTypeTableName, PrimaryColumn: FieldID}
)

type BookingStatus struct {
	ID          int    `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

type RoomStatus struct {
	ID          int    `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

type RoomType struct {
	ID          int    `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	MaxGuests   int    `db:"max_guests"`
}
