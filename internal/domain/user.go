package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	Email        *string   `json:"email,omitempty" db:"email"`
	PushToken    *string   `json:"-" db:"push_token"`
	Role         string    `json:"role" db:"role"`
	Team         string    `json:"team" db:"team"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleMember  UserRole = "member"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleMember, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasRole treats roles as a hierarchy: admin covers manager, manager covers member.
func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "admin":
		return u.Role == "admin"
	case "manager":
		return u.Role == "manager" || u.Role == "admin"
	case "member":
		return u.Role == "member" || u.Role == "manager" || u.Role == "admin"
	default:
		return false
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
