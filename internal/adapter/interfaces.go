// Package adapter provides transport-layer abstractions for communicating
// with the host-keeper server.
//
// The primary abstraction is [RemoteProfileClient], which decouples the sync
// engine from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPRemoteClient]); sentinel errors defined in
// errors.go are mapped from HTTP status codes so that callers can use
// [errors.Is] for transport-agnostic error handling.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/vkotlyar/go-host-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_client_mock.go -package=mock

// RemoteProfileClient is the remote CRUD surface for connection profiles.
// Profiles crossing this boundary carry EncryptedSecret only; plaintext
// credentials never appear in a request or response body. Implementations
// are responsible for serialization, bearer-token management, and mapping
// transport-level failures to the sentinel errors of this package.
type RemoteProfileClient interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Called after a successful Register or Login.
	SetToken(token string)

	// Token returns the stored bearer token, or "" if none is set.
	Token() string

	// Register creates an account on the server with the user's derived
	// auth hash and encryption salt. On success the returned token is
	// stored via SetToken.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates with the server using the derived auth hash.
	// On success the returned token is stored via SetToken.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// RequestSalt fetches the encryption salt stored for the login during
	// registration, so that another device of the same user can derive
	// the same credential-encryption key.
	RequestSalt(ctx context.Context, login string) (string, error)

	// List returns an atomic snapshot of the server-side profile set for
	// the authenticated user.
	List(ctx context.Context) (models.Snapshot, error)

	// Upsert creates the profile on the server or fully replaces the
	// existing one with the same ID. Idempotent.
	Upsert(ctx context.Context, profile models.Profile) error

	// Delete removes the profile with the given ID from the server.
	// Deleting an absent ID is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
