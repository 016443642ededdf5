// SPDX-License-Identifier: Apache-2.0

// Package app contains shared application-layer constants used across the
// host-keeper server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body is not valid JSON.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a decoded request fails basic
	// validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/auth-hash
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgUserNotFound is returned when a salt lookup targets a login with no
	// account behind it.
	MsgUserNotFound = "no user was found"

	// MsgInvalidProfileID is returned when a profile URL parameter cannot be
	// parsed as a UUID.
	MsgInvalidProfileID = "invalid profile id"
)
