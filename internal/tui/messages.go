package tui

import (
	"github.com/vkotlyar/go-host-keeper/models"
)

// NavigateTo switches the root router to another page, optionally delivering
// a payload message to the target page.
type NavigateTo struct {
	Page    string
	Payload interface{}
}

// LoginResult finishes an async login command. A nil Err ends the login flow.
type LoginResult struct {
	Err      error
	Username string
	UserID   int64
}

// RegisterResult finishes an async registration command.
type RegisterResult struct {
	Err      error
	Username string
	UserID   int64
}

// RegisterSuccessNotice is shown on the menu after a successful registration.
type RegisterSuccessNotice struct {
	Username string
}

type listLoadedMsg struct {
	profiles []models.Profile
	err      error
}

type profileSavedMsg struct {
	err error
}

type profileDeletedMsg struct {
	err error
}

type secretRevealedMsg struct {
	secret string
	err    error
}

type syncStateMsg struct {
	state models.SyncState
}

type syncStartFailedMsg struct {
	err error
}

type copiedMsg struct {
	what string
}
