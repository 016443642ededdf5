package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/vkotlyar/go-host-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/profile_store_mock.go -package=mock

// ProfileStore is the on-device persistent keyed store of connection
// profiles. It is shared between the UI (direct user edits) and the sync
// orchestrator; the store serializes concurrent writers internally so that
// the orchestrator can assume single-writer-at-a-time semantics.
type ProfileStore interface {
	// List returns an atomic snapshot of every profile in the store.
	// No concurrent write is ever observed half-applied: the snapshot is
	// taken inside a single read transaction.
	List(ctx context.Context) (models.Snapshot, error)

	// Upsert inserts the profile or fully replaces an existing row with
	// the same ID. Idempotent: re-applying the same profile is a no-op.
	Upsert(ctx context.Context, profile models.Profile) error

	// Delete removes the profile with the given ID. Deleting an absent
	// ID is not an error, so a partially completed sync pass can always
	// be safely re-run.
	Delete(ctx context.Context, id uuid.UUID) error
}
