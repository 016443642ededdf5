// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/store"
	"github.com/vkotlyar/go-host-keeper/internal/validators"
	"github.com/vkotlyar/go-host-keeper/models"
)

// profileService is the server-side implementation of ProfileService. It
// validates incoming profiles and delegates persistence to the repository,
// which scopes every statement by user ID.
type profileService struct {
	profileRepository store.ServerProfileRepository

	logger *logger.Logger
}

// NewProfileService constructs a ProfileService backed by the given
// repository.
func NewProfileService(profileRepository store.ServerProfileRepository, logger *logger.Logger) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		logger:            logger,
	}
}

// ListByUser returns every profile the user has uploaded.
func (p *profileService) ListByUser(ctx context.Context, userID int64) ([]models.Profile, error) {
	profiles, err := p.profileRepository.ListByUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("userID", userID).Msg("profile listing failed")
		return nil, fmt.Errorf("profile listing failed: %w", err)
	}

	return profiles, nil
}

// Upsert stores one profile for the user, replacing any previous version
// with the same ID. The stored record carries the client's UpdatedAt
// untouched: the server is a replica, not a clock authority.
//
// Returns ErrInvalidProfile if the profile fails validation.
func (p *profileService) Upsert(ctx context.Context, userID int64, profile models.Profile) error {
	log := logger.FromContext(ctx)

	if err := validateProfile(ctx, profile); err != nil {
		log.Err(err).Int64("userID", userID).Str("profileID", profile.ID.String()).Msg("profile rejected")
		return err
	}

	if err := p.profileRepository.Upsert(ctx, userID, profile); err != nil {
		log.Err(err).Int64("userID", userID).Str("profileID", profile.ID.String()).Msg("profile upsert failed")
		return fmt.Errorf("profile upsert failed: %w", err)
	}

	return nil
}

// Delete removes one profile of the user. Deleting an absent profile is not
// an error: the desired end state already holds.
func (p *profileService) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: empty profile id", ErrInvalidProfile)
	}

	if err := p.profileRepository.Delete(ctx, userID, id); err != nil {
		logger.FromContext(ctx).Err(err).Int64("userID", userID).Str("profileID", id.String()).Msg("profile delete failed")
		return fmt.Errorf("profile delete failed: %w", err)
	}

	return nil
}

// profileValidator holds the shared structural rules every stored profile
// must satisfy. Package-level because the rules are stateless.
var profileValidator = validators.NewProfileValidator()

// validateProfile checks the structural invariants of a profile and maps any
// violation onto ErrInvalidProfile for the transport layers.
func validateProfile(ctx context.Context, profile models.Profile) error {
	if err := profileValidator.Validate(ctx, profile); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return nil
}
