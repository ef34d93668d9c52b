package dto

import (
	"fmt"
	"time"

	refModel "hotel/internal/domains/reference/model"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

// AvailabilityRequest is the query of GET /v1/rooms/available. A nil RoomIDs asks about every room.
type AvailabilityRequest struct {
	CheckIn  string   `json:"check_in"  validate:"required,datetime=2006-01-02"`
	CheckOut string   `json:"check_out" validate:"required,datetime=2006-01-02"`
	RoomIDs  []string `json:"room_ids"  validate:"omitempty,dive,uuid"`
}

// Dates parses the stay in the application timezone.
func (r *AvailabilityRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.Parse(constant.DateOnlyFormat, r.CheckIn)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString(fmt.Sprintf("invalid check_in date %q", r.CheckIn))
	}

	checkOut, err = timezone.Parse(constant.DateOnlyFormat, r.CheckOut)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString(fmt.Sprintf("invalid check_out date %q", r.CheckOut))
	}

	return checkIn, checkOut, nil
}

type AvailabilityResponse struct {
	CheckIn  string                 `json:"check_in"`
	CheckOut string                 `json:"check_out"`
	Total    int                    `json:"total"`
	Rooms    []roomDto.RoomResponse `json:"rooms"`
}

func (r *AvailabilityResponse) FromModels(req AvailabilityRequest, rooms []roomModel.Room, catalog refModel.Catalog) {
	r.CheckIn = req.CheckIn
	r.CheckOut = req.CheckOut
	r.Total = len(rooms)

	r.Rooms = make([]roomDto.RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room, catalog)
	}
}
