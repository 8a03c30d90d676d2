package models

import "time"

// Role is the closed set of administrative roles. Keeping it a distinct type
// makes permission switches exhaustive instead of free-form string checks.
type Role string

const (
	RoleMasterAdmin Role = "master_admin"
	RoleAdmin       Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMasterAdmin, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID                      int        `json:"id"`
	Name                    string     `json:"name"`
	Email                   string     `json:"email"`
	Password                string     `json:"-"`
	Role                    Role       `json:"role"`
	BarangayID              *int       `json:"barangayId"`
	IsActive                bool       `json:"isActive"`
	PasswordBypassApproved  bool       `json:"-"`
	PasswordBypassExpiresAt *time.Time `json:"-"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

type UserResponse struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	BarangayID *int   `json:"barangayId"`
	IsActive   bool   `json:"isActive"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       Role   `json:"role" validate:"required,oneof=master_admin admin"`
	BarangayID *int   `json:"barangayId"`
}

type UpdateUserRequest struct {
	Role       *Role `json:"role" validate:"omitempty,oneof=master_admin admin"`
	BarangayID *int  `json:"barangayId"`
	IsActive   *bool `json:"isActive"`
}
