package validators

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/models"
)

const (
	FieldProfileID  = "profile_id"
	FieldName       = "name"
	FieldHost       = "host"
	FieldPort       = "port"
	FieldAuthMethod = "auth_method"

	FieldLogin          = "login"
	FieldAuthHash       = "auth_hash"
	FieldEncryptionSalt = "encryption_salt"
)

// ProfileValidator validates the structural invariants of connection profiles
// and of the user records exchanged during registration and login.
//
// EncryptedSecret is deliberately not inspected: it is opaque sealed bytes
// and may legitimately be empty for agent-based profiles.
type ProfileValidator struct {
}

func NewProfileValidator() Validator {
	return &ProfileValidator{}
}

func (v *ProfileValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Profile:
		return v.validateProfile(ctx, value, fields...)
	case *models.Profile:
		return v.validateProfile(ctx, *value, fields...)

	case models.User:
		return v.validateUser(ctx, value, fields...)
	case *models.User:
		return v.validateUser(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ProfileValidator) validateProfile(_ context.Context, profile models.Profile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldProfileID, FieldName, FieldHost, FieldPort, FieldAuthMethod}
	}

	for _, f := range fields {
		switch f {
		case FieldProfileID:
			if profile.ID == uuid.Nil {
				return ErrInvalidProfileID
			}
		case FieldName:
			if profile.Name == "" {
				return ErrEmptyProfileName
			}
		case FieldHost:
			if profile.Host == "" {
				return ErrEmptyHost
			}
		case FieldPort:
			if profile.Port < 1 || profile.Port > 65535 {
				return fmt.Errorf("%w: %d", ErrInvalidPort, profile.Port)
			}
		case FieldAuthMethod:
			if !profile.AuthMethod.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidAuthMethod, profile.AuthMethod)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ProfileValidator) validateUser(_ context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldAuthHash, FieldEncryptionSalt}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if user.Login == "" {
				return ErrEmptyLogin
			}
		case FieldAuthHash:
			if user.AuthHash == "" {
				return ErrEmptyAuthHash
			}
		case FieldEncryptionSalt:
			if user.EncryptionSalt == "" {
				return ErrEmptyEncryptionSalt
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
