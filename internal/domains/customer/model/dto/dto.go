package dto

import (
	"hotel/internal/domains/customer/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	FullName       string `json:"full_name"       validate:"required,max=150"`
	Email          string `json:"email"           validate:"omitempty,email,max=100"`
	Phone          string `json:"phone"           validate:"required,max=20"`
	IdentityNumber string `json:"identity_number" validate:"omitempty,max=50"`
	Address        string `json:"address"         validate:"omitempty,max=255"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:             uuid.NewString(),
		FullName:       c.FullName,
		Email:          c.Email,
		Phone:          c.Phone,
		IdentityNumber: c.IdentityNumber,
		Address:        c.Address,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	FullName       string `db:"full_name"       json:"full_name"       validate:"omitempty,max=150"`
	Email          string `db:"email"           json:"email"           validate:"omitempty,email,max=100"`
	Phone          string `db:"phone"           json:"phone"           validate:"omitempty,max=20"`
	IdentityNumber string `db:"identity_number" json:"identity_number" validate:"omitempty,max=50"`
	Address        string `db:"address"         json:"address"         validate:"omitempty,max=255"`
}

type CustomerResponse struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	IdentityNumber string `json:"identity_number"`
	Address        string `json:"address"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.FullName = model.FullName
	r.Email = model.Email
	r.Phone = model.Phone
	r.IdentityNumber = model.IdentityNumber
	r.Address = model.Address
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}

type CreateCustomerResponse struct {
	ID string `json:"id"`
}
