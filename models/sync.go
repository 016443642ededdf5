package models

import (
	"time"

	"github.com/google/uuid"
)

// SyncStrategy is the policy used to resolve an inconsistency between the
// local and remote profile sets into concrete operations. It is a pure
// value; its meaning is interpreted exclusively by the conflict resolver.
type SyncStrategy string

const (
	// StrategyUploadLocal makes the local replica authoritative: every
	// local-only or conflicting profile is uploaded, and server-only
	// profiles are deleted from the server.
	StrategyUploadLocal SyncStrategy = "upload_local"

	// StrategyDownloadRemote makes the remote replica authoritative:
	// every server-only or conflicting profile is downloaded, and
	// local-only profiles are deleted from the local store.
	StrategyDownloadRemote SyncStrategy = "download_remote"

	// StrategyMerge unions the two replicas. Conflicts are settled by
	// UpdatedAt, newer copy wins; equal timestamps fall to the local copy.
	// Merge never deletes anything.
	StrategyMerge SyncStrategy = "merge"

	// StrategyAskUser defers the decision: resolution pauses until the
	// caller supplies one of the other three strategies interactively.
	StrategyAskUser SyncStrategy = "ask_user"
)

// IsValid reports whether the strategy is one of the recognized values.
func (s SyncStrategy) IsValid() bool {
	switch s {
	case StrategyUploadLocal, StrategyDownloadRemote, StrategyMerge, StrategyAskUser:
		return true
	default:
		return false
	}
}

// String returns the string representation of the strategy.
func (s SyncStrategy) String() string {
	return string(s)
}

// Description returns a human-readable summary of what the strategy does,
// suitable for display on the conflict-resolution screen.
func (s SyncStrategy) Description() string {
	switch s {
	case StrategyUploadLocal:
		return "Replace the server's profiles with this device's profiles"
	case StrategyDownloadRemote:
		return "Replace this device's profiles with the server's profiles"
	case StrategyMerge:
		return "Keep profiles from both sides, newer copy wins on conflict"
	case StrategyAskUser:
		return "Pause and ask which side should win"
	default:
		return "Unknown strategy"
	}
}

// InconsistencyKind classifies the overall shape of the difference between
// two snapshots.
type InconsistencyKind string

const (
	InconsistencyNone       InconsistencyKind = "none"
	InconsistencyLocalOnly  InconsistencyKind = "local_only"
	InconsistencyServerOnly InconsistencyKind = "server_only"
	InconsistencyConflicts  InconsistencyKind = "conflicts"
	InconsistencyMixed      InconsistencyKind = "mixed"
)

// Inconsistency is the classified difference between a local and a remote
// snapshot. It records which profile IDs exist only locally, only on the
// server, and which exist on both sides with differing content. The
// classification never decides winners; that is the resolver's job.
type Inconsistency struct {
	// LocalOnly lists IDs present in the local snapshot only.
	LocalOnly []uuid.UUID `json:"local_only,omitempty"`

	// ServerOnly lists IDs present in the remote snapshot only.
	ServerOnly []uuid.UUID `json:"server_only,omitempty"`

	// Conflicts lists IDs present on both sides with differing content.
	Conflicts []uuid.UUID `json:"conflicts,omitempty"`
}

// Kind derives the variant of the inconsistency from its category sets:
// none when all are empty, the single-category kind when exactly one is
// non-empty, and mixed otherwise.
func (i Inconsistency) Kind() InconsistencyKind {
	nonEmpty := 0
	kind := InconsistencyNone
	if len(i.LocalOnly) > 0 {
		nonEmpty++
		kind = InconsistencyLocalOnly
	}
	if len(i.ServerOnly) > 0 {
		nonEmpty++
		kind = InconsistencyServerOnly
	}
	if len(i.Conflicts) > 0 {
		nonEmpty++
		kind = InconsistencyConflicts
	}
	if nonEmpty > 1 {
		return InconsistencyMixed
	}
	return kind
}

// IsNone reports whether the two snapshots were identical.
func (i Inconsistency) IsNone() bool {
	return len(i.LocalOnly) == 0 && len(i.ServerOnly) == 0 && len(i.Conflicts) == 0
}

// Total returns the number of profile IDs involved in the inconsistency.
func (i Inconsistency) Total() int {
	return len(i.LocalOnly) + len(i.ServerOnly) + len(i.Conflicts)
}

// SyncDirection says where a single convergence operation applies.
type SyncDirection string

const (
	// DirectionUpload writes the local copy to the server.
	DirectionUpload SyncDirection = "upload"

	// DirectionDownload writes the server copy to the local store.
	DirectionDownload SyncDirection = "download"

	// DirectionDeleteRemote removes the profile from the server.
	DirectionDeleteRemote SyncDirection = "delete_remote"

	// DirectionDeleteLocal removes the profile from the local store.
	DirectionDeleteLocal SyncDirection = "delete_local"
)

// IsDelete reports whether the direction removes a profile from a replica.
func (d SyncDirection) IsDelete() bool {
	return d == DirectionDeleteRemote || d == DirectionDeleteLocal
}

// SyncOperation is the unit of convergence work: one directional action for
// one profile ID. A resolved strategy always yields a finite set of these;
// their relative order is irrelevant because they target disjoint IDs.
type SyncOperation struct {
	// ProfileID identifies the profile the operation converges.
	ProfileID uuid.UUID `json:"profile_id"`

	// Direction selects the action and the replica it applies to.
	Direction SyncDirection `json:"direction"`

	// Source carries the full profile content for upload and download
	// operations. Zero-valued for deletes.
	Source Profile `json:"source,omitempty"`
}

// OperationErrorKind categorizes why a single sync operation failed.
type OperationErrorKind string

const (
	// OperationErrorNetwork marks a failed call to the remote service.
	OperationErrorNetwork OperationErrorKind = "network"

	// OperationErrorStore marks a failed local store write.
	OperationErrorStore OperationErrorKind = "store"

	// OperationErrorEncryption marks a profile whose secret could not be
	// handled by the cipher. Fatal for that profile only.
	OperationErrorEncryption OperationErrorKind = "encryption"
)

// FailedOperation records one operation that did not converge during a pass.
type FailedOperation struct {
	ProfileID uuid.UUID          `json:"profile_id"`
	Kind      OperationErrorKind `json:"kind"`
	Message   string             `json:"message"`
}

// SyncResult is the immutable record of one completed sync pass. Succeeded
// and Failed partition the executed operation set exactly: every attempted
// operation appears in exactly one of the two.
type SyncResult struct {
	// StartedAt is when the pass began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the pass took end to end.
	Duration time.Duration `json:"duration"`

	// Strategy is the strategy that produced the executed operations.
	Strategy SyncStrategy `json:"strategy"`

	// Succeeded lists the profile IDs whose operations applied cleanly.
	Succeeded []uuid.UUID `json:"succeeded"`

	// Failed lists the operations that could not be applied, with the
	// error category for each.
	Failed []FailedOperation `json:"failed"`

	// Before is the inconsistency observed at the start of the pass.
	Before Inconsistency `json:"before"`
}

// SyncStateKind enumerates the orchestrator's observable states.
type SyncStateKind string

const (
	SyncIdle            SyncStateKind = "idle"
	SyncRunning         SyncStateKind = "syncing"
	SyncSuccess         SyncStateKind = "success"
	SyncError           SyncStateKind = "error"
	SyncConflictPending SyncStateKind = "conflict_pending"
)

// SyncState is the observable status of the synchronization engine. Exactly
// one value is active at a time; the orchestrator replaces it atomically.
type SyncState struct {
	// Kind is the state discriminant. The payload fields below are set
	// only for the kinds that carry them.
	Kind SyncStateKind `json:"kind"`

	// Result is set when Kind is SyncSuccess.
	Result *SyncResult `json:"result,omitempty"`

	// Message is a human-readable failure description, set when Kind is
	// SyncError.
	Message string `json:"message,omitempty"`

	// Pending is the unresolved inconsistency, set when Kind is
	// SyncConflictPending.
	Pending *Inconsistency `json:"pending,omitempty"`
}

// SyncStateIdle returns the idle state.
func SyncStateIdle() SyncState { return SyncState{Kind: SyncIdle} }

// SyncStateSyncing returns the in-progress state.
func SyncStateSyncing() SyncState { return SyncState{Kind: SyncRunning} }

// SyncStateSuccess returns a terminal success state carrying the result.
func SyncStateSuccess(result SyncResult) SyncState {
	return SyncState{Kind: SyncSuccess, Result: &result}
}

// SyncStateError returns a terminal error state with a human-readable message.
func SyncStateError(message string) SyncState {
	return SyncState{Kind: SyncError, Message: message}
}

// SyncStateConflictPending returns the paused state carrying the
// inconsistency that needs an interactive strategy choice.
func SyncStateConflictPending(inc Inconsistency) SyncState {
	return SyncState{Kind: SyncConflictPending, Pending: &inc}
}

// SyncConfig is the persisted synchronization configuration. It is read at
// the start of each pass and never mutated by sync itself.
type SyncConfig struct {
	// DefaultStrategy is applied when a pass is started without an
	// explicit strategy override.
	DefaultStrategy SyncStrategy `json:"default_strategy"`

	// AutoSync enables the background sync job.
	AutoSync bool `json:"auto_sync"`

	// Interval is the background sync period.
	Interval time.Duration `json:"interval"`
}
