package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_store_mock.go -package=mock

// UserRepository persists user accounts on the server side.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// ServerProfileRepository persists connection profiles on the server side.
// Every method is scoped to one user: a profile is only ever visible to the
// account that uploaded it.
type ServerProfileRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Profile, error)
	Upsert(ctx context.Context, userID int64, profile models.Profile) error
	Delete(ctx context.Context, userID int64, id uuid.UUID) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
