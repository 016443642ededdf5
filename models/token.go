package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT used for authenticated requests between client and
// server. SignedString holds the compact serialized form ready for an
// Authorization header; UserID caches the parsed "sub" claim.
type Token struct {
	// Token is the underlying JWT, used server-side for signing and
	// claim inspection. Not serialized; only the compact string form is
	// meaningful outside the process.
	*jwt.Token `json:"-"`

	// RegisteredClaims gives access to the standard claim set (RFC 7519).
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the token's "sub" claim as a base-10 int64 user ID.
func (t *Token) GetUserID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("extract subject from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("convert token subject to user id: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization. Implements [fmt.Stringer].
func (t *Token) String() string {
	return t.SignedString
}
