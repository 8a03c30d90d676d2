package models

import "time"

type ProgressEvent struct {
	ID         int       `json:"id"`
	StudentID  int       `json:"studentId"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes"`
	EventType  string    `json:"eventType"`
	RecordedBy *int      `json:"recordedBy"`
	OccurredAt time.Time `json:"occurredAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ProgressEventRequest struct {
	StudentID  int        `json:"studentId" validate:"required"`
	Title      string     `json:"title" validate:"required"`
	Notes      string     `json:"notes"`
	EventType  string     `json:"eventType" validate:"required,oneof=assessment attendance milestone remark"`
	OccurredAt *time.Time `json:"occurredAt"`
}
