package models

import "time"

// LoginLog is an append-only record of a successful login. Device, browser
// and OS are parsed from the User-Agent header at login time.
type LoginLog struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Email     string    `json:"email"`
	Device    string    `json:"device"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
	IP        string    `json:"ip"`
	LoginAt   time.Time `json:"loginAt"`
	CreatedAt time.Time `json:"createdAt"`
}
