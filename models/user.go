// models/user.go

package models

import "time"

// GuestUserID is the synthesized identity for sessions with no account.
// Guest data lives only in the local store, keyed by this id.
const GuestUserID = "guest"

// User is the top-level profile record for an authenticated account.
// Entity collections hang off the user id, never off the email.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:64"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255"`
	DisplayName  string    `json:"displayName"`
	PasswordHash string    `json:"-"`
	GoogleID     string    `json:"-" gorm:"index;size:64"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GuestUser returns the local-only identity used when nobody is signed in.
func GuestUser() User {
	return User{
		ID:          GuestUserID,
		Email:       "guest@example.com",
		DisplayName: "Guest User",
	}
}
