package models

import "time"

// User is an account record used for authentication. Sensitive fields never
// leave trusted boundaries: AuthHash is a derived value, not a password.
type User struct {
	// UserID is the internal unique identifier of the user. Persistence
	// layer only; never exposed via JSON.
	UserID int64 `json:"-"`

	// Login is the unique login identifier used during authentication.
	Login string `json:"login"`

	// AuthHash is the client-derived authentication value (KDF output).
	// The server stores and compares it; plaintext passwords never cross
	// the wire.
	AuthHash string `json:"auth_hash"`

	// EncryptionSalt is the per-user salt the client needs to derive its
	// credential-encryption key. Stored server-side so any device of the
	// same user derives the same key.
	EncryptionSalt string `json:"encryption_salt,omitempty"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
