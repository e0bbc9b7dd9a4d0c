package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"cohost/infras/otel"
	"cohost/infras/postgres"
	"cohost/internal/domains/party/model"
	gDto "cohost/shared/dto"
	gRepo "cohost/shared/repository"
)

type Party interface {
	Insert(ctx context.Context, model model.Party) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Party, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Party, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Party]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Party {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Party](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
