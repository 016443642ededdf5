package service

import "errors"

var (
	// ErrConflictUnresolved pauses resolution until the user picks a
	// strategy. Not a failure: the orchestrator parks the inconsistency
	// and reports conflictPending.
	ErrConflictUnresolved = errors.New("conflict requires an interactive strategy choice")

	// ErrUnknownStrategy rejects a strategy value outside the closed set.
	ErrUnknownStrategy = errors.New("unknown sync strategy")

	// ErrNoPendingConflict rejects ResolveConflict when nothing is parked.
	ErrNoPendingConflict = errors.New("no pending conflict to resolve")

	// ErrRegisterOnServer and ErrLoginOnServer wrap adapter failures so
	// the UI can distinguish "server rejected you" from local problems.
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")

	ErrInvalidProfile      = errors.New("invalid profile data provided")
	ErrInvalidDataProvided = errors.New("invalid user data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrTokenIsExpired      = errors.New("token is expired or invalid")
)
