package models

import "time"

// Membership levels a user can hold.
const (
	MembershipBronze = "bronze"
	MembershipSilver = "silver"
	MembershipGold   = "gold"
)

// User represents a registered customer account.
type User struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	PassHash   []byte    `json:"-"`
	Membership string    `json:"membership"`
	CreatedAt  time.Time `json:"created_at"`
}
