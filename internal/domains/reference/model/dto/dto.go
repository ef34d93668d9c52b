package dto

import "hotel/internal/domains/reference/model"

type LookupResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type RoomTypeResponse struct {
	LookupResponse
	MaxGuests int `json:"max_guests"`
}

type CatalogResponse struct {
	BookingStatuses []LookupResponse   `json:"booking_statuses"`
	RoomStatuses    []LookupResponse   `json:"room_statuses"`
	RoomTypes       []RoomTypeResponse `json:"room_types"`
}

func (r *CatalogResponse) FromModel(catalog model.Catalog) {
	bookingStatuses := catalog.BookingStatuses()
	r.BookingStatuses = make([]LookupResponse, len(bookingStatuses))

	for i, status := range bookingStatuses {
		r.BookingStatuses[i] = LookupResponse{ID: status.ID, Name: status.Name, Description: status.Description}
	}

	roomStatuses := catalog.RoomStatuses()
	r.RoomStatuses = make([]LookupResponse, len(roomStatuses))

	for i, status := range roomStatuses {
		r.RoomStatuses[i] = LookupResponse{ID: status.ID, Name: status.Name, Description: status.Description}
	}

	roomTypes := catalog.RoomTypes()
	r.RoomTypes = make([]RoomTypeResponse, len(roomTypes))

	for i, roomType := range roomTypes {
		r.RoomTypes[i] = RoomTypeResponse{
			LookupResponse: LookupResponse{ID: roomType.ID, Name: roomType.Name, Description: roomType.Description},
			MaxGuests:      roomType.MaxGuests,
		}
	}
}
