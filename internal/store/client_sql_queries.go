// SPDX-License-Identifier: Apache-2.0

package store

const (
	listProfiles = `
		SELECT
			id,
			name,
			host,
			port,
			username,
			auth_method,
			encrypted_secret,
			updated_at
		FROM profiles;`

	upsertProfile = `
		INSERT INTO profiles (
			id,
			name,
			host,
			port,
			username,
			auth_method,
			encrypted_secret,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name             = excluded.name,
			host             = excluded.host,
			port             = excluded.port,
			username         = excluded.username,
			auth_method      = excluded.auth_method,
			encrypted_secret = excluded.encrypted_secret,
			updated_at       = excluded.updated_at;`

	deleteProfile = `
		DELETE FROM profiles
		WHERE id = $1;`
)
