// SPDX-License-Identifier: Apache-2.0

package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/vkotlyar/go-host-keeper/models"
)

const (
	createUser = `INSERT INTO users (login, auth_hash, encryption_salt)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, auth_hash, encryption_salt, created_at;`

	findUserByLogin = `SELECT user_id, login, auth_hash, encryption_salt, created_at
    FROM users
    WHERE login = $1;`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildListProfilesQuery(userID int64) (string, []any, error) {
	return psql.
		Select(
			"id",
			"name",
			"host",
			"port",
			"username",
			"auth_method",
			"encrypted_secret",
			"updated_at",
		).
		From("profiles").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildUpsertProfileQuery(userID int64, p models.Profile) (string, []any, error) {
	return psql.
		Insert("profiles").
		Columns(
			"user_id",
			"id",
			"name",
			"host",
			"port",
			"username",
			"auth_method",
			"encrypted_secret",
			"updated_at",
		).
		Values(
			userID,
			p.ID.String(),
			p.Name,
			p.Host,
			p.Port,
			p.Username,
			string(p.AuthMethod),
			[]byte(p.EncryptedSecret),
			p.UpdatedAt.UTC(),
		).
		Suffix(`ON CONFLICT (user_id, id) DO UPDATE SET
			name             = excluded.name,
			host             = excluded.host,
			port             = excluded.port,
			username         = excluded.username,
			auth_method      = excluded.auth_method,
			encrypted_secret = excluded.encrypted_secret,
			updated_at       = excluded.updated_at`).
		ToSql()
}

func buildDeleteProfileQuery(userID int64, id uuid.UUID) (string, []any, error) {
	return psql.
		Delete("profiles").
		Where(sq.Eq{"user_id": userID, "id": id.String()}).
		ToSql()
}
