package models

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuthMethod identifies how the client authenticates against the remote host
// described by a profile.
type AuthMethod string

const (
	// AuthPassword authenticates with a password held in EncryptedSecret.
	AuthPassword AuthMethod = "password"

	// AuthPrivateKey authenticates with a private key held in EncryptedSecret.
	AuthPrivateKey AuthMethod = "private_key"

	// AuthAgent delegates authentication to a local key agent;
	// EncryptedSecret is empty for such profiles.
	AuthAgent AuthMethod = "agent"
)

// IsValid reports whether the auth method is one of the recognized values.
func (m AuthMethod) IsValid() bool {
	switch m {
	case AuthPassword, AuthPrivateKey, AuthAgent:
		return true
	default:
		return false
	}
}

// EncryptedSecret is the sealed credential material of a profile. The sync
// subsystem treats it as opaque bytes; only the crypto layer ever produces
// or consumes its contents.
type EncryptedSecret []byte

// Profile is a single host connection record. It is the primary persistence
// model of the application and the unit of synchronization.
//
// ID is globally unique and stable across replicas: the same logical profile
// carries the same ID on the client and on the server. A profile is created
// by the owning UI flow, mutated only by explicit user edits or by sync
// convergence, and never deleted outside an explicit sync operation.
type Profile struct {
	// ID is the stable, globally unique identifier of the profile.
	ID uuid.UUID `json:"id"`

	// Name is the human-readable display name of the profile.
	Name string `json:"name"`

	// Host is the remote endpoint hostname or address.
	Host string `json:"host"`

	// Port is the remote endpoint TCP port.
	Port int `json:"port"`

	// Username is the login name used on the remote host.
	Username string `json:"username"`

	// AuthMethod selects how the credential in EncryptedSecret is used.
	AuthMethod AuthMethod `json:"auth_method"`

	// EncryptedSecret holds the sealed credential. Opaque to the database
	// and to the sync engine; plaintext never crosses a replica boundary.
	EncryptedSecret EncryptedSecret `json:"encrypted_secret"`

	// UpdatedAt is the timestamp of the last modification on the replica
	// that holds this copy. It participates in sync equality and in merge
	// conflict resolution.
	UpdatedAt time.Time `json:"updated_at"`
}

// Equal reports whether two profiles are identical for synchronization
// purposes. Every persisted field participates, including UpdatedAt: a touch
// without a content change still signals that a write occurred and therefore
// counts as a difference.
func (p Profile) Equal(other Profile) bool {
	return p.ID == other.ID &&
		p.Name == other.Name &&
		p.Host == other.Host &&
		p.Port == other.Port &&
		p.Username == other.Username &&
		p.AuthMethod == other.AuthMethod &&
		bytes.Equal(p.EncryptedSecret, other.EncryptedSecret) &&
		p.UpdatedAt.Equal(other.UpdatedAt)
}

// Address returns the host:port form of the profile endpoint.
func (p Profile) Address() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "profiles"
}

// Snapshot is an immutable point-in-time view of every profile held by one
// replica, keyed by profile ID. Snapshots are taken atomically, used only
// for comparison, and never mutated after creation.
type Snapshot map[uuid.UUID]Profile

// SnapshotOf builds a Snapshot from a profile slice. Later duplicates of the
// same ID overwrite earlier ones; replicas are expected not to produce them.
func SnapshotOf(profiles []Profile) Snapshot {
	snap := make(Snapshot, len(profiles))
	for _, p := range profiles {
		snap[p.ID] = p
	}
	return snap
}

// IDs returns the set of profile IDs present in the snapshot. Order is
// unspecified.
func (s Snapshot) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}
