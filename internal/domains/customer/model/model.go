package model

import gModel "hotel/shared/model"

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID             = "id"
	FieldFullName       = "full_name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldIdentityNumber = "identity_number"
	FieldAddress        = "address"
)

var Entity = gModel.Entity{Name: EntityName, Table: TableName, PrimaryColumn: FieldID}

type Customer struct {
	ID             string `db:"id"`
	FullName       string `db:"full_name"`
	Email          string `db:"email"`
	Phone          string `db:"phone"`
	IdentityNumber string `db:"identity_number"`
	Address        string `db:"address"`
	gModel.Metadata
}
