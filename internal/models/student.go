package models

import "time"

type Student struct {
	ID           int        `json:"id"`
	LRN          string     `json:"lrn"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	BirthDate    *time.Time `json:"birthDate"`
	Gender       string     `json:"gender"`
	BarangayID   *int       `json:"barangayId"`
	BarangayName *string    `json:"barangayName,omitempty"`
	ProgramID    *int       `json:"programId"`
	ProgramName  *string    `json:"programName,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type StudentRequest struct {
	LRN        string     `json:"lrn" validate:"required,len=12,number"`
	FirstName  string     `json:"firstName" validate:"required"`
	LastName   string     `json:"lastName" validate:"required"`
	BirthDate  *time.Time `json:"birthDate"`
	Gender     string     `json:"gender" validate:"omitempty,oneof=male female"`
	BarangayID *int       `json:"barangayId"`
	ProgramID  *int       `json:"programId"`
	Status     string     `json:"status" validate:"omitempty,oneof=enrolled completed dropped"`
}
