/*
Package user contains the core data structures for registered accounts.

It defines the User record shared by every store backend and the service layer,
together with the sentinel errors stores use to report conflicts and transient failures.
*/
package user

import (
	"errors"
	"time"
)

var (
	// ErrUsernameTaken is returned (wrapped) by a store when the username unique constraint rejects an insert.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrTransient marks store failures that happened before the operation reached the database
	// (connection refused, timeout, busy). Operations failing with it are safe to retry.
	ErrTransient = errors.New("transient store failure")
)

// User represents a registered account as persisted by the store.
type User struct {

	// ID is the store-assigned unique identifier (UUID).
	ID string `json:"id"`

	// Username is the login name. Unique across all users.
	Username string `json:"username"`

	// Name is the free-form display name.
	Name string `json:"name"`

	// PasswordHash is the encoded output of the password hasher. Never the plaintext.
	PasswordHash string `json:"-"`

	// CreatedAt is set by the store on insert.
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser carries the fields a caller supplies when creating a User.
// The store assigns ID and CreatedAt.
type NewUser struct {
	Username     string
	Name         string
	PasswordHash string
}
