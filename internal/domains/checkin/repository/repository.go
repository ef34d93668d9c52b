package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/checkin/model"
	gRepo "hotel/shared/repository"
)

type CheckIn interface {
	gRepo.CRUD[model.CheckIn]
}

type repositoryImpl struct {
	gRepo.Repository[model.CheckIn]
}

func New(db *postgres.Connection, otel otel.Otel) CheckIn {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.CheckIn](model.Entity, db, otel),
	}
}
