package model

import (
	"cmp"
	"slices"
	"strings"
)

// Catalog is an immutable snapshot of the lookup tables. Accessors hand out copies.
type Catalog struct {
	bookingStatuses []BookingStatus
	roomStatuses    []RoomStatus
	roomTypes       []RoomType
}

func NewCatalog(bookingStatuses []BookingStatus, roomStatuses []RoomStatus, roomTypes []RoomType) Catalog {
	catalog := Catalog{
		bookingStatuses: slices.Clone(bookingStatuses),
		roomStatuses:    slices.Clone(roomStatuses),
		roomTypes:       slices.Clone(roomTypes),
	}

	slices.SortFunc(catalog.bookingStatuses, func(a, b BookingStatus) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(catalog.roomStatuses, func(a, b RoomStatus) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(catalog.roomTypes, func(a, b RoomType) int { return cmp.Compare(a.ID, b.ID) })

	return catalog
}

func (c Catalog) BookingStatuses() []BookingStatus {
	return slices.Clone(c.bookingStatuses)
}

func (c Catalog) RoomStatuses() []RoomStatus {
	return slices.Clone(c.roomStatuses)
}

func (c Catalog) RoomTypes() []RoomType {
	return slices.Clone(c.roomTypes)
}

// BookingStatusID resolves a status name, ignoring case.
func (c Catalog) BookingStatusID(name string) (int, bool) {
	idx := slices.IndexFunc(c.bookingStatuses, func(s BookingStatus) bool {
		return strings.EqualFold(s.Name, name)
	})
	if idx == -1 {
		return 0, false
	}

	return c.bookingStatuses[idx].ID, true
}

func (c Catalog) BookingStatusName(id int) (string, bool) {
	idx := slices.IndexFunc(c.bookingStatuses, func(s BookingStatus) bool { return s.ID == id })
	if idx == -1 {
		return "", false
	}

	return c.bookingStatuses[idx].Name, true
}

func (c Catalog) RoomStatusName(id int) (string, bool) {
	idx := slices.IndexFunc(c.roomStatuses, func(s RoomStatus) bool { return s.ID == id })
	if idx == -1 {
		return "", false
	}

	return c.roomStatuses[idx].Name, true
}

func (c Catalog) RoomStatusID(name string) (int, bool) {
	idx := slices.IndexFunc(c.roomStatuses, func(s RoomStatus) bool {
		return strings.EqualFold(s.Name, name)
	})
	if idx == -1 {
		return 0, false
	}

	return c.roomStatuses[idx].ID, true
}

func (c Catalog) RoomTypeName(id int) (string, bool) {
	idx := slices.IndexFunc(c.roomTypes, func(t RoomType) bool { return t.ID == id })
	if idx == -1 {
		return "", false
	}

	return c.roomTypes[idx].Name, true
}

func (c Catalog) HasRoomStatus(id int) bool {
	_, ok := c.RoomStatusName(id)

	return ok
}

func (c Catalog) HasRoomType(id int) bool {
	_, ok := c.RoomTypeName(id)

	return ok
}
