package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidProfileID  = errors.New("invalid profile ID")
	ErrEmptyProfileName  = errors.New("profile name is required")
	ErrEmptyHost         = errors.New("host is required")
	ErrInvalidPort       = errors.New("port out of range")
	ErrInvalidAuthMethod = errors.New("invalid auth method")

	ErrEmptyLogin          = errors.New("login is required")
	ErrEmptyAuthHash       = errors.New("auth hash is required")
	ErrEmptyEncryptionSalt = errors.New("encryption salt is required")
)
