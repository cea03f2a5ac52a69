package models

import "time"

// Location carries the coordinates reported with a check-in or check-out.
// Pointers so that a zero coordinate still satisfies the required check.
type Location struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

type AttendanceResponse struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// ExportRow is one line of the attendance export, joined to the owning user.
type ExportRow struct {
	NationalID string
	Timestamp  time.Time
	Type       string
}
