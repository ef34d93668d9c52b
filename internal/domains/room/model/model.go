package model

import gModel "hotel/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID       = "id"
	FieldNumber   = "number"
	FieldTypeID   = "type_id"
	FieldStatusID = "status_id"
	FieldPrice    = "price"
	FieldImage    = "image"
	FieldActive   = "active"
)

var Entity = gModel.Entity{Name: EntityName, Table: TableName, PrimaryColumn: FieldID}

// Room is a bookable unit. Inactive rooms are retired and never offered.
type Room struct {
	ID       string  `db:"id"`
	Number   string  `db:"number"`
	TypeID   int     `db:"type_id"`
	StatusID int     `db:"status_id"`
	Price    float64 `db:"price"`
	Image    string  `db:"image"`
	Active   bool    `db:"active"`
	gModel.Metadata
}
