package model

import "time"

// Session binds a cookie-carried identifier to a provider identity for the
// duration of a login. Expiry is fixed at creation, there is no sliding
// renewal.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
	User      *User
}
