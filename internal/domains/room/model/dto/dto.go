package dto

import (
	"mime/multipart"

	refModel "hotel/internal/domains/reference/model"
	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number    string                `json:"number"    validate:"required,max=20"`
	TypeID    int                   `json:"type_id"   validate:"required,min=1"`
	StatusID  int                   `json:"status_id" validate:"omitempty,min=1"`
	Price     float64               `json:"price"     validate:"gte=0"`
	Image     *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
	Active    *bool                 `json:"active"    validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user, imageURL string, statusID int) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		ID:       uuid.NewString(),
		Number:   c.Number,
		TypeID:   c.TypeID,
		StatusID: statusID,
		Price:    c.Price,
		Image:    imageURL,
		Active:   active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number    string                `db:"number"    json:"number"                                                                validate:"omitempty,max=20"`
	TypeID    int                   `db:"type_id"   json:"type_id"                                                               validate:"omitempty,min=1"`
	StatusID  int                   `db:"status_id" json:"status_id"                                                             validate:"omitempty,min=1"`
	Price     *float64              `db:"price"     json:"price"                                                                 validate:"omitempty,gte=0"`
	Image     *multipart.FileHeader `json:"image"   validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
	Active    *bool                 `db:"active"    json:"active"                                                                validate:"omitempty"`
}

type RoomResponse struct {
	ID         string  `json:"id"`
	Number     string  `json:"number"`
	TypeID     int     `json:"type_id"`
	TypeName   string  `json:"type_name"`
	StatusID   int     `json:"status_id"`
	StatusName string  `json:"status_name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room, catalog refModel.Catalog) {
	r.ID = model.ID
	r.Number = model.Number
	r.TypeID = model.TypeID
	r.TypeName, _ = catalog.RoomTypeName(model.TypeID)
	r.StatusID = model.StatusID
	r.StatusName, _ = catalog.RoomStatusName(model.StatusID)
	r.Price = model.Price
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, catalog refModel.Catalog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod, catalog)
	}
}
