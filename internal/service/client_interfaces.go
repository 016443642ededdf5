package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/models"
)

// InconsistencyDetector compares two profile snapshots and classifies their
// difference. Detection is a pure function of the snapshot data: it has no
// side effects, never fails, and never decides winners.
type InconsistencyDetector interface {
	// Detect returns the classified difference between the local and
	// remote snapshots. Two profiles with the same ID count as a conflict
	// when any persisted field differs, UpdatedAt included.
	Detect(local, remote models.Snapshot) models.Inconsistency
}

// ConflictResolver turns an inconsistency and a chosen strategy into the set
// of operations needed to converge the two replicas. Resolution is
// deterministic and pure given its inputs.
type ConflictResolver interface {
	// Resolve computes the operation set for the given strategy. An
	// inconsistency of none yields an empty set regardless of strategy.
	// StrategyAskUser yields no operations and an error wrapping
	// [ErrConflictUnresolved]; the caller must resolve again with one of
	// the other three strategies to make progress.
	Resolve(
		inconsistency models.Inconsistency,
		strategy models.SyncStrategy,
		local, remote models.Snapshot,
	) ([]models.SyncOperation, error)
}

// SyncConfigProvider returns the current synchronization configuration. The
// orchestrator calls it at the start of every pass so that configuration
// edits take effect on the next pass without restarting anything.
type SyncConfigProvider func() models.SyncConfig

// SyncOrchestrator drives one synchronization pass end to end: snapshot
// reads, inconsistency detection, strategy resolution, and operation
// execution against the two replicas. At most one pass is ever active per
// orchestrator; overlapping requests are coalesced onto the in-flight pass.
type SyncOrchestrator interface {
	// PerformSync starts a sync pass, or joins the one already in
	// flight. The returned channel delivers exactly one terminal
	// [models.SyncState] (success, error, or conflictPending) and is
	// then closed. Coalesced callers all receive the same terminal
	// state. Passing an empty strategy uses the configured default.
	//
	// Once the pass is past its snapshot reads it is not cancellable:
	// aborting mid-operation-set would leave the replicas in a state
	// indistinguishable from a partial failure, so cancellation of ctx
	// only prevents the pass from starting, never interrupts writes.
	PerformSync(ctx context.Context, override models.SyncStrategy) <-chan models.SyncState

	// ResolveConflict resumes a pass parked in conflictPending with the
	// strategy now fixed. It replays the inconsistency captured when the
	// pending state was entered; snapshots are not re-read, because the
	// decision is about the conflict as the user observed it. Returns
	// [ErrNoPendingConflict] when no conflict is parked or a pass is
	// already running.
	ResolveConflict(ctx context.Context, strategy models.SyncStrategy) (<-chan models.SyncState, error)

	// Acknowledge moves a terminal state (success, error, or
	// conflictPending) back to idle. Acknowledging conflictPending
	// abandons the parked conflict; it will resurface on the next pass.
	// No-op while a pass is running.
	Acknowledge()

	// States exposes the observable sync status for presentation layers.
	States() *SyncStateStore
}

// ClientAuthService handles account creation and login from the device
// side. It owns the key-derivation flow: the master password never leaves
// the process, only the derived auth hash is sent to the server.
type ClientAuthService interface {
	// Register creates a server account. A fresh encryption salt is
	// generated, the credential-encryption key is derived and installed
	// into the cipher, and the derived auth hash plus the salt are sent
	// to the server.
	Register(ctx context.Context, login, masterPassword string) (models.Token, error)

	// Login authenticates against the server. The stored salt is fetched
	// first so that this device derives the same key as the one that
	// registered the account.
	Login(ctx context.Context, login, masterPassword string) (models.Token, error)
}

// ProfileDraft is the user-entered form data for creating or editing a
// profile. Secret is plaintext here and only here: the profile service seals
// it before anything is persisted.
type ProfileDraft struct {
	Name       string
	Host       string
	Port       int
	Username   string
	AuthMethod models.AuthMethod
	Secret     string
}

// ClientProfileService manages the local profile collection on behalf of
// the UI. All writes go to the local store only; propagation to the server
// is the sync engine's job.
type ClientProfileService interface {
	// List returns the local profiles sorted by name.
	List(ctx context.Context) ([]models.Profile, error)

	// Create builds a profile from the draft, seals its secret, assigns
	// a fresh ID, and stores it locally.
	Create(ctx context.Context, draft ProfileDraft) (models.Profile, error)

	// Update applies the draft to an existing profile. An empty draft
	// secret keeps the sealed secret already on record.
	Update(ctx context.Context, existing models.Profile, draft ProfileDraft) (models.Profile, error)

	// Delete removes the profile from the local store.
	Delete(ctx context.Context, id uuid.UUID) error

	// RevealSecret unseals the profile's credential for display or
	// clipboard use. Fails for agent profiles, which carry no secret.
	RevealSecret(profile models.Profile) (string, error)
}

// SyncJob is the background worker that triggers periodic sync passes when
// auto-sync is enabled.
type SyncJob interface {
	// Start launches the background goroutine, stopping any previous
	// one first. It triggers a pass every interval, defaulting to
	// 5 minutes if interval is zero or negative, and exits when ctx is
	// cancelled or Stop is called. Stopping the job never interrupts a
	// pass already in flight.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the goroutine to exit and blocks until it has fully
	// terminated. Safe to call when the job is not running.
	Stop()
}
