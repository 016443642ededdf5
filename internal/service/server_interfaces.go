package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/models"
)

//go:generate mockgen -source=server_interfaces.go -destination=../mock/server_service_mock.go -package=mock

// AuthService handles account lifecycle and JWT token lifecycle on the
// server side. Passwords never reach it: the client sends a derived auth
// hash, and the service applies its own keyed hash on top before storage.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)

	// Salt returns the public key-derivation parameters for a login, so
	// that any device of the same user derives the same encryption key.
	Salt(ctx context.Context, login string) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ProfileService exposes the per-user profile collection to the transport
// layer. Every operation is scoped by the authenticated user's ID; profiles
// of other accounts are invisible.
type ProfileService interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Profile, error)
	Upsert(ctx context.Context, userID int64, profile models.Profile) error
	Delete(ctx context.Context, userID int64, id uuid.UUID) error
}
