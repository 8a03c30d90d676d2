package models

import (
	"time"

	"github.com/google/uuid"
)

// ResetStatus is the lifecycle of a password reset request. A request only
// ever moves pending -> approved or pending -> denied; resolved rows are
// kept forever.
type ResetStatus string

const (
	ResetStatusPending  ResetStatus = "pending"
	ResetStatusApproved ResetStatus = "approved"
	ResetStatusDenied   ResetStatus = "denied"

	// ResetStatusNone is never persisted; it is what the status endpoint
	// reports when a user has no request history.
	ResetStatusNone ResetStatus = "none"
)

type PasswordResetRequest struct {
	ID         uuid.UUID   `json:"id"`
	UserID     int         `json:"userId"`
	Email      string      `json:"email"`
	Role       Role        `json:"role"`
	Status     ResetStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
	ResolvedAt *time.Time  `json:"resolvedAt"`
	ResolvedBy *int        `json:"resolvedBy"`
}

type ResetSubmitRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetStatusRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetStatusResponse struct {
	Status          ResetStatus `json:"status"`
	BypassApproved  bool        `json:"bypassApproved"`
	BypassExpiresAt *time.Time  `json:"bypassExpiresAt"`
}

type BypassGrantRequest struct {
	TTL string `json:"ttl" validate:"omitempty"`
}
