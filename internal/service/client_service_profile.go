// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/internal/crypto"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/store"
	"github.com/vkotlyar/go-host-keeper/internal/utils"
	"github.com/vkotlyar/go-host-keeper/models"
)

type clientProfileService struct {
	local  store.ProfileStore
	cipher crypto.CredentialCipher
	ids    *utils.UUIDGenerator
	now    func() time.Time

	logger *logger.Logger
}

// NewClientProfileService builds the profile service backing the UI. Writes
// land in the local store only; the sync engine moves them to the server.
func NewClientProfileService(
	local store.ProfileStore,
	cipher crypto.CredentialCipher,
	logger *logger.Logger,
) ClientProfileService {
	return &clientProfileService{
		local:  local,
		cipher: cipher,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: logger,
	}
}

// List implements [ClientProfileService].
func (s *clientProfileService) List(ctx context.Context) ([]models.Profile, error) {
	snapshot, err := s.local.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	profiles := make([]models.Profile, 0, len(snapshot))
	for _, p := range snapshot {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Name != profiles[j].Name {
			return profiles[i].Name < profiles[j].Name
		}
		return profiles[i].ID.String() < profiles[j].ID.String()
	})

	return profiles, nil
}

// Create implements [ClientProfileService].
func (s *clientProfileService) Create(ctx context.Context, draft ProfileDraft) (models.Profile, error) {
	secret, err := s.sealDraftSecret(draft)
	if err != nil {
		return models.Profile{}, err
	}

	profile := models.Profile{
		ID:              s.ids.Generate(),
		Name:            draft.Name,
		Host:            draft.Host,
		Port:            draft.Port,
		Username:        draft.Username,
		AuthMethod:      draft.AuthMethod,
		EncryptedSecret: secret,
		UpdatedAt:       s.now().UTC(),
	}

	if err := validateProfile(ctx, profile); err != nil {
		return models.Profile{}, err
	}

	if err := s.local.Upsert(ctx, profile); err != nil {
		return models.Profile{}, fmt.Errorf("store profile: %w", err)
	}

	return profile, nil
}

// Update implements [ClientProfileService].
func (s *clientProfileService) Update(ctx context.Context, existing models.Profile, draft ProfileDraft) (models.Profile, error) {
	profile := existing
	profile.Name = draft.Name
	profile.Host = draft.Host
	profile.Port = draft.Port
	profile.Username = draft.Username
	profile.AuthMethod = draft.AuthMethod
	profile.UpdatedAt = s.now().UTC()

	switch {
	case draft.AuthMethod == models.AuthAgent:
		profile.EncryptedSecret = nil
	case draft.Secret != "":
		sealed, err := s.cipher.Encrypt([]byte(draft.Secret))
		if err != nil {
			return models.Profile{}, fmt.Errorf("seal credential: %w", err)
		}
		profile.EncryptedSecret = sealed
	}
	// An empty draft secret on a non-agent profile keeps the sealed
	// secret already on record.

	if err := validateProfile(ctx, profile); err != nil {
		return models.Profile{}, err
	}

	if err := s.local.Upsert(ctx, profile); err != nil {
		return models.Profile{}, fmt.Errorf("store profile: %w", err)
	}

	return profile, nil
}

// Delete implements [ClientProfileService].
func (s *clientProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: empty profile id", ErrInvalidProfile)
	}

	if err := s.local.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	return nil
}

// RevealSecret implements [ClientProfileService].
func (s *clientProfileService) RevealSecret(profile models.Profile) (string, error) {
	if profile.AuthMethod == models.AuthAgent || len(profile.EncryptedSecret) == 0 {
		return "", fmt.Errorf("%w: profile carries no secret", ErrInvalidProfile)
	}

	plaintext, err := s.cipher.Decrypt(profile.EncryptedSecret)
	if err != nil {
		return "", fmt.Errorf("unseal credential: %w", err)
	}

	return string(plaintext), nil
}

func (s *clientProfileService) sealDraftSecret(draft ProfileDraft) (models.EncryptedSecret, error) {
	if draft.AuthMethod == models.AuthAgent || draft.Secret == "" {
		return nil, nil
	}

	sealed, err := s.cipher.Encrypt([]byte(draft.Secret))
	if err != nil {
		return nil, fmt.Errorf("seal credential: %w", err)
	}
	return sealed, nil
}
