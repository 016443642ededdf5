// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vkotlyar/go-host-keeper/internal/crypto"
	"github.com/vkotlyar/go-host-keeper/internal/logger"
	"github.com/vkotlyar/go-host-keeper/internal/mock"
	"github.com/vkotlyar/go-host-keeper/models"
)

func newTestClientProfileService(t *testing.T, ctrl *gomock.Controller) (ClientProfileService, *mock.MockProfileStore, crypto.CredentialCipher) {
	t.Helper()

	local := mock.NewMockProfileStore(ctrl)
	cipher := crypto.NewCredentialCipher()
	cipher.SetKey([]byte("0123456789abcdef0123456789abcdef"))

	return NewClientProfileService(local, cipher, logger.Nop()), local, cipher
}

func testDraft() ProfileDraft {
	return ProfileDraft{
		Name:       "build box",
		Host:       "build.internal",
		Port:       22,
		Username:   "deploy",
		AuthMethod: models.AuthPassword,
		Secret:     "hunter2",
	}
}

// ---- Create ----

func TestClientProfileService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, local, cipher := newTestClientProfileService(t, ctrl)

	var stored models.Profile
	local.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, profile models.Profile) error {
			stored = profile
			return nil
		})

	created, err := svc.Create(context.Background(), testDraft())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "build box", created.Name)
	assert.Equal(t, "build.internal:22", created.Address())
	assert.False(t, created.UpdatedAt.IsZero())
	assert.True(t, created.Equal(stored))

	assert.NotContains(t, string(created.EncryptedSecret), "hunter2")
	plaintext, err := cipher.Decrypt(created.EncryptedSecret)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(plaintext))
}

func TestClientProfileService_Create_AgentCarriesNoSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, local, _ := newTestClientProfileService(t, ctrl)

	local.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	draft := testDraft()
	draft.AuthMethod = models.AuthAgent
	draft.Secret = "ignored"

	created, err := svc.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Empty(t, created.EncryptedSecret)
}

func TestClientProfileService_Create_InvalidDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestClientProfileService(t, ctrl)

	draft := testDraft()
	draft.Port = 0

	_, err := svc.Create(context.Background(), draft)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestClientProfileService_Create_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, local, _ := newTestClientProfileService(t, ctrl)

	local.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.Create(context.Background(), testDraft())
	assert.Error(t, err)
}

// ---- Update ----

func TestClientProfileService_Update_EmptySecretKeepsOld(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, local, cipher := newTestClientProfileService(t, ctrl)

	local.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	existing, err := svc.Create(context.Background(), testDraft())
	require.NoError(t, err)

	draft := testDraft()
	draft.Name = "build box (renamed)"
	draft.Secret = ""

	updated, err := svc.Update(context.Background(), existing, draft)
	require.NoError(t, err)

	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, "build box (renamed)", updated.Name)
	assert.Equal(t, existing.EncryptedSecret, updated.EncryptedSecret)
	assert.False(t, updated.UpdatedAt.Before(existing.UpdatedAt))

	plaintext, err := cipher.Decrypt(updated.EncryptedSecret)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(plaintext))
}

func TestClientProfileService_Update_NewSecretReplacesOld(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, local, cipher := newTestClientProfileService(t, ctrl)

	local.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	existing, err := svc.Create(context.Background(), testDraft())
	require.NoError(t, err)

	draft := testDraft()
	draft.Secret = "correct horse"

	updated, err := svc.Update(context.Background(), existing, draft)
	require.NoError(t, err)

	plaintext, err := cipher.Decrypt(updated.EncryptedSecret)
	require.NoError(t, err)
	assert.Equal(t, "correct horse", string(plaintext))
}

func TestClientProfileService_Update_SwitchToAgentDropsSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, local, _ := newTestClientProfileService(t, ctrl)

	local.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	existing, err := svc.Create(context.Background(), testDraft())
	require.NoError(t, err)

	draft := testDraft()
	draft.AuthMethod = models.AuthAgent
	draft.Secret = ""

	updated, err := svc.Update(context.Background(), existing, draft)
	require.NoError(t, err)
	assert.Empty(t, updated.EncryptedSecret)
}

// ---- Delete ----

func TestClientProfileService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, local, _ := newTestClientProfileService(t, ctrl)

	id := uuid.MustParse("5f2b1c9e-0000-0000-0000-000000000001")
	local.EXPECT().Delete(gomock.Any(), id).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), id))
}

func TestClientProfileService_Delete_EmptyID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestClientProfileService(t, ctrl)

	err := svc.Delete(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

// ---- List ----

func TestClientProfileService_List_SortedByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, local, _ := newTestClientProfileService(t, ctrl)

	a := models.Profile{ID: uuid.MustParse("5f2b1c9e-0000-0000-0000-00000000000a"), Name: "zeta", Host: "z.internal", Port: 22, AuthMethod: models.AuthAgent}
	b := models.Profile{ID: uuid.MustParse("5f2b1c9e-0000-0000-0000-00000000000b"), Name: "alpha", Host: "a.internal", Port: 22, AuthMethod: models.AuthAgent}

	local.EXPECT().List(gomock.Any()).Return(models.SnapshotOf([]models.Profile{a, b}), nil)

	profiles, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "alpha", profiles[0].Name)
	assert.Equal(t, "zeta", profiles[1].Name)
}

func TestClientProfileService_List_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, local, _ := newTestClientProfileService(t, ctrl)

	local.EXPECT().List(gomock.Any()).Return(nil, errors.New("database is locked"))

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}

// ---- RevealSecret ----

func TestClientProfileService_RevealSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, local, _ := newTestClientProfileService(t, ctrl)

	local.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

	created, err := svc.Create(context.Background(), testDraft())
	require.NoError(t, err)

	secret, err := svc.RevealSecret(created)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", secret)
}

func TestClientProfileService_RevealSecret_AgentProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestClientProfileService(t, ctrl)

	profile := models.Profile{
		ID:         uuid.MustParse("5f2b1c9e-0000-0000-0000-00000000000c"),
		Name:       "bastion",
		Host:       "bastion.internal",
		Port:       22,
		AuthMethod: models.AuthAgent,
	}

	_, err := svc.RevealSecret(profile)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}
