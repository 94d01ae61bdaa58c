package users

import (
	"errors"
	"time"
)

// User is an allow-listed identity. Presence of a row is what grants access
// to generation at all; the numeric quota is enforced separately.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

// Subscription is the billing state associated with a user. It is read-only
// here; the checkout lifecycle lives elsewhere.
type Subscription struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	PlanID           string    `json:"planId"`
	Status           string    `json:"status"`
	CurrentPeriodEnd time.Time `json:"currentPeriodEnd"`
}

// ErrNotFound is returned when no user or subscription matches.
var ErrNotFound = errors.New("not found")
