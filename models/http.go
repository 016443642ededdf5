package models

// ProfileListResponse carries every profile the server holds for the
// authenticated user. The client turns it into a Snapshot for inconsistency
// detection.
type ProfileListResponse struct {
	// Profiles is the full server-side profile set, encrypted secrets
	// included (still sealed; the server never sees plaintext).
	Profiles []Profile `json:"profiles"`

	// Length is len(Profiles), provided so the client can validate the
	// response without iterating it.
	Length int `json:"length"`
}

// ProfileUpsertRequest creates or fully replaces one profile on the server.
// Upserts are idempotent: re-sending the same profile is a no-op.
type ProfileUpsertRequest struct {
	Profile Profile `json:"profile"`
}

// ErrorResponse is the JSON body the server returns for non-2xx statuses.
type ErrorResponse struct {
	Error string `json:"error"`
}
