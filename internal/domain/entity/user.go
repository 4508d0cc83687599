// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the persisted account record. The password hash lives here because
// the login flow needs it, but it must never cross the delivery boundary:
// anything returned to a caller goes through Identity instead.
type User struct {
	ID           int64     // Auto-incremented numeric identifier.
	Username     string    // Unique login name.
	Email        string    // Unique contact email, also usable as a login identifier.
	PasswordHash string    // bcrypt hash of the user's password.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// Identity is the resolved, trusted representation of "who is making this
// request". It is produced per request by an IdentityProvider and never
// persisted or carried across requests.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// AsIdentity strips the credential material from a user record.
func (u *User) AsIdentity() *Identity {
	if u == nil {
		return nil
	}

	return &Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
