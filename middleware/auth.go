package middleware

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"attendance_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

var (
	ErrUnauthenticated = errors.New("not logged in")
	ErrSessionExpired  = errors.New("session expired or invalid")
	ErrForbidden       = errors.New("admin privileges required")
)

// SessionService issues and validates opaque session tokens stored in the
// sessions table. Tokens are pure lookup keys with no decodable structure,
// so revoking one is a row deletion.
type SessionService struct {
	DB       *sql.DB
	Duration time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(db *sql.DB, duration time.Duration) *SessionService {
	return &SessionService{
		DB:       db,
		Duration: duration,
	}
}

// Issue creates a session for the user and returns the token and its expiry.
func (s *SessionService) Issue(userID int64) (string, time.Time, error) {
	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(s.Duration)

	if _, err := s.DB.Exec(
		`INSERT INTO sessions (session_id, user_id, expires_at) VALUES ($1, $2, $3)`,
		token, userID, expiresAt,
	); err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Validate resolves a token to its owning user id. Sessions are not sliding:
// expiry is never extended here.
func (s *SessionService) Validate(token string) (int64, error) {
	var userID int64
	var expiresAt time.Time
	err := s.DB.QueryRow(
		`SELECT user_id, expires_at FROM sessions WHERE session_id = $1`,
		token,
	).Scan(&userID, &expiresAt)

	if err == sql.ErrNoRows {
		return 0, ErrUnauthenticated
	}
	if err != nil {
		return 0, err
	}

	// A session is dead at the expiry instant, not after it.
	if !time.Now().UTC().Before(expiresAt) {
		return 0, ErrSessionExpired
	}

	return userID, nil
}

// AuthorizeAdmin checks that the user holds the admin role.
func (s *SessionService) AuthorizeAdmin(userID int64) error {
	var role models.Role
	err := s.DB.QueryRow(`SELECT role FROM users WHERE id = $1`, userID).Scan(&role)

	if err == sql.ErrNoRows {
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if !role.Valid() {
		return fmt.Errorf("unexpected role %q for user %d", role, userID)
	}

	if role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// Invalidate deletes a session row, revoking the token immediately.
func (s *SessionService) Invalidate(token string) error {
	_, err := s.DB.Exec(`DELETE FROM sessions WHERE session_id = $1`, token)
	return err
}

// RequireSession creates a gin middleware that resolves the session cookie
// to a user id and stores it in the request context.
func RequireSession(sessions *SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			c.Abort()
			return
		}

		userID, err := sessions.Validate(token)
		if err != nil {
			switch {
			case errors.Is(err, ErrUnauthenticated):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			case errors.Is(err, ErrSessionExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			default:
				log.Printf("Error validating session: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate session"})
			}
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// RequireAdmin creates a gin middleware that rejects non-admin users.
// It must run after RequireSession.
func RequireAdmin(sessions *SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("userID")

		if err := sessions.AuthorizeAdmin(userID); err != nil {
			if errors.Is(err, ErrForbidden) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			} else {
				log.Printf("Error checking admin role for user %d: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check user role"})
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

// VerifyPassword checks if a password matches the hashed version
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// HashPassword creates a bcrypt hash of a password
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
