package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/reference/model"
	gRepo "hotel/shared/repository"
)

type BookingStatus interface {
	gRepo.CRUD[model.BookingStatus]
}

type RoomStatus interface {
	gRepo.CRUD[model.RoomStatus]
}

type RoomType interface {
	gRepo.CRUD[model.RoomType]
}

type bookingStatusRepository struct {
	gRepo.Repository[model.BookingStatus]
}

type roomStatusRepository struct {
	gRepo.Repository[model.RoomStatus]
}

type roomTypeRepository struct {
	gRepo.Repository[model.RoomType]
}

func NewBookingStatus(db *postgres.Connection, otel otel.Otel) BookingStatus {
	return &bookingStatusRepository{
		Repository: gRepo.NewRepository[model.BookingStatus](model.BookingStatusEntity, db, otel),
	}
}

func NewRoomStatus(db *postgres.Connection, otel otel.Otel) RoomStatus {
	return &roomStatusRepository{
		Repository: gRepo.NewRepository[model.RoomStatus](model.RoomStatusEntity, db, otel),
	}
}

func NewRoomType(db *postgres.Connection, otel otel.Otel) RoomType {
	return &roomTypeRepository{
		Repository: gRepo.NewRepository[model.RoomType](model.RoomTypeEntity, db, otel),
	}
}
