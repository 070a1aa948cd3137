package domain

import (
	"fmt"
	"time"
)

// RegistrationRequest is a pending signup awaiting administrative approval.
// The password stays plaintext until approval; the digest is computed when
// the request is materialized into an AppUser, not at submission.
type RegistrationRequest struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRequestID returns a time-derived identifier for a registration request.
func NewRequestID(now time.Time) string {
	return fmt.Sprintf("req-%d", now.UnixNano())
}
