// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/mock"
	"github.com/vkotlyar/go-host-keeper/models"
)

func newTestProfileService(t *testing.T, ctrl *gomock.Controller) (ProfileService, *mock.MockServerProfileRepository) {
	t.Helper()

	repo := mock.NewMockServerProfileRepository(ctrl)
	return NewProfileService(repo, logger.Nop()), repo
}

func validServerProfile() models.Profile {
	return models.Profile{
		ID:              uuid.MustParse("5f2b1c9e-0000-0000-0000-000000000001"),
		Name:            "build box",
		Host:            "build.internal",
		Port:            22,
		Username:        "deploy",
		AuthMethod:      models.AuthPrivateKey,
		EncryptedSecret: models.EncryptedSecret{0x01, 0x02},
		UpdatedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestProfileService_ListByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestProfileService(t, ctrl)
	want := []models.Profile{validServerProfile()}

	repo.EXPECT().ListByUser(gomock.Any(), int64(42)).Return(want, nil)

	got, err := svc.ListByUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProfileService_ListByUser_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestProfileService(t, ctrl)
	dbErr := errors.New("connection reset")

	repo.EXPECT().ListByUser(gomock.Any(), int64(42)).Return(nil, dbErr)

	_, err := svc.ListByUser(context.Background(), 42)
	assert.ErrorIs(t, err, dbErr)
}

func TestProfileService_Upsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestProfileService(t, ctrl)
	profile := validServerProfile()

	repo.EXPECT().Upsert(gomock.Any(), int64(42), profile).Return(nil)

	assert.NoError(t, svc.Upsert(context.Background(), 42, profile))
}

func TestProfileService_Upsert_RejectsInvalidProfiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository expectations: a rejected profile never reaches storage.
	svc, _ := newTestProfileService(t, ctrl)

	tests := []struct {
		name   string
		mutate func(*models.Profile)
	}{
		{name: "empty id", mutate: func(p *models.Profile) { p.ID = uuid.Nil }},
		{name: "empty name", mutate: func(p *models.Profile) { p.Name = "" }},
		{name: "empty host", mutate: func(p *models.Profile) { p.Host = "" }},
		{name: "zero port", mutate: func(p *models.Profile) { p.Port = 0 }},
		{name: "port too large", mutate: func(p *models.Profile) { p.Port = 70000 }},
		{name: "unknown auth method", mutate: func(p *models.Profile) { p.AuthMethod = "carrier-pigeon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := validServerProfile()
			tt.mutate(&profile)

			err := svc.Upsert(context.Background(), 42, profile)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestProfileService_Upsert_EmptySecretIsAllowedForAgentAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestProfileService(t, ctrl)

	profile := validServerProfile()
	profile.AuthMethod = models.AuthAgent
	profile.EncryptedSecret = nil

	repo.EXPECT().Upsert(gomock.Any(), int64(42), profile).Return(nil)

	assert.NoError(t, svc.Upsert(context.Background(), 42, profile))
}

func TestProfileService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestProfileService(t, ctrl)
	id := validServerProfile().ID

	repo.EXPECT().Delete(gomock.Any(), int64(42), id).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), 42, id))
}

func TestProfileService_Delete_EmptyID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestProfileService(t, ctrl)

	err := svc.Delete(context.Background(), 42, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestProfileService_Delete_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo := newTestProfileService(t, ctrl)
	id := validServerProfile().ID
	dbErr := errors.New("connection reset")

	repo.EXPECT().Delete(gomock.Any(), int64(42), id).Return(dbErr)

	assert.ErrorIs(t, svc.Delete(context.Background(), 42, id), dbErr)
}
