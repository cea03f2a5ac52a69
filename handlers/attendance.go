package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"attendance_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// State machine violations, per user per calendar day.
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrNotCheckedInYet   = errors.New("no check-in recorded today")
)

const (
	eventTypeIn  = "in"
	eventTypeOut = "out"

	// Every event is recorded with the same generic source tag.
	deviceInfo = "web"

	dateLayout = "2006-01-02"
)

type AttendanceHandler struct {
	db *sql.DB
}

func NewAttendanceHandler(db *sql.DB) *AttendanceHandler {
	return &AttendanceHandler{db: db}
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetInt64("userID")

	if err := h.recordEvent(userID, eventTypeIn, loc); err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already checked in today"})
			return
		}
		log.Printf("Error recording check-in for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record check-in"})
		return
	}

	c.JSON(http.StatusOK, models.AttendanceResponse{Message: "Check-in recorded", Location: loc})
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetInt64("userID")

	if err := h.recordEvent(userID, eventTypeOut, loc); err != nil {
		switch {
		case errors.Is(err, ErrNotCheckedInYet):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No check-in recorded today"})
		case errors.Is(err, ErrAlreadyCheckedOut):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already checked out today"})
		default:
			log.Printf("Error recording check-out for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record check-out"})
		}
		return
	}

	c.JSON(http.StatusOK, models.AttendanceResponse{Message: "Check-out recorded", Location: loc})
}

// recordEvent runs the per-day state checks and the insert inside a single
// transaction, rolled back on every error path. "Today" is the UTC date.
func (h *AttendanceHandler) recordEvent(userID int64, eventType string, loc models.Location) error {
	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	today := time.Now().UTC().Format(dateLayout)

	var checkedIn bool
	if err := tx.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM attendance WHERE user_id = $1 AND date(timestamp) = $2 AND type = 'in')`,
		userID, today,
	).Scan(&checkedIn); err != nil {
		return fmt.Errorf("error checking today's check-in: %w", err)
	}

	switch eventType {
	case eventTypeIn:
		if checkedIn {
			return ErrAlreadyCheckedIn
		}
	case eventTypeOut:
		if !checkedIn {
			return ErrNotCheckedInYet
		}
		var checkedOut bool
		if err := tx.QueryRow(
			`SELECT EXISTS(SELECT 1 FROM attendance WHERE user_id = $1 AND date(timestamp) = $2 AND type = 'out')`,
			userID, today,
		).Scan(&checkedOut); err != nil {
			return fmt.Errorf("error checking today's check-out: %w", err)
		}
		if checkedOut {
			return ErrAlreadyCheckedOut
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO attendance (user_id, device_info, type, latitude, longitude) VALUES ($1, $2, $3, $4, $5)`,
		userID, deviceInfo, eventType, *loc.Latitude, *loc.Longitude,
	); err != nil {
		// A concurrent request for the same user and day can pass the read
		// check above; the unique index turns the duplicate insert into a
		// conflict, mapped to the same state-machine error.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if eventType == eventTypeIn {
				return ErrAlreadyCheckedIn
			}
			return ErrAlreadyCheckedOut
		}
		return fmt.Errorf("error inserting attendance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
