package service

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/vkotlyar/go-host-keeper/internal/adapter"
	"github.com/vkotlyar/go-host-keeper/internal/crypto"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/models"
)

type clientAuthService struct {
	remote adapter.RemoteProfileClient
	keys   crypto.KeyChain
	cipher crypto.CredentialCipher

	logger *logger.Logger
}

// NewClientAuthService wires the device-side authentication flow: key
// derivation through the key chain, credential sealing through the cipher,
// and server calls through the remote client.
func NewClientAuthService(
	remote adapter.RemoteProfileClient,
	keys crypto.KeyChain,
	cipher crypto.CredentialCipher,
	logger *logger.Logger,
) ClientAuthService {
	return &clientAuthService{
		remote: remote,
		keys:   keys,
		cipher: cipher,
		logger: logger,
	}
}

// Register implements [ClientAuthService].
//
// The generated salt is sent to the server hex-encoded so that any other
// device of the same user can fetch it and derive the same key.
func (a *clientAuthService) Register(ctx context.Context, login, masterPassword string) (models.Token, error) {
	if login == "" || masterPassword == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	salt, err := a.keys.GenerateSalt()
	if err != nil {
		return models.Token{}, fmt.Errorf("generate encryption salt: %w", err)
	}

	key := a.keys.DeriveKey(masterPassword, salt)

	token, err := a.remote.Register(ctx, models.User{
		Login:          login,
		AuthHash:       a.keys.DeriveAuthHash(key),
		EncryptionSalt: hex.EncodeToString(salt),
	})
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrRegisterOnServer, err)
	}

	a.cipher.SetKey(key)

	return token, nil
}

// Login implements [ClientAuthService].
func (a *clientAuthService) Login(ctx context.Context, login, masterPassword string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if login == "" || masterPassword == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	saltHex, err := a.remote.RequestSalt(ctx, login)
	if err != nil {
		log.Err(err).Str("login", login).Msg("salt request failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return models.Token{}, fmt.Errorf("decode encryption salt: %w", err)
	}

	key := a.keys.DeriveKey(masterPassword, salt)

	token, err := a.remote.Login(ctx, models.User{
		Login:    login,
		AuthHash: a.keys.DeriveAuthHash(key),
	})
	if err != nil {
		log.Err(err).Str("login", login).Msg("login on server failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}

	a.cipher.SetKey(key)

	return token, nil
}
