package domain

import (
	"strings"
	"time"
)

// Role is the closed set of operator categories. The role decides which
// dashboard a session routes to; no finer-grained permissions exist.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleRider      Role = "rider"
	RoleCook       Role = "cook"
	RoleSupervisor Role = "supervisor"
	RoleRefill     Role = "refill"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleRider, RoleCook, RoleSupervisor, RoleRefill:
		return true
	}
	return false
}

// AppUser models a registered operator account.
type AppUser struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail canonicalizes an email for case-insensitive comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
