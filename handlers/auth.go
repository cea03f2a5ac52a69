package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"attendance_backend/middleware"
	"attendance_backend/models"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	db            *sql.DB
	sessions      *middleware.SessionService
	secureCookies bool
}

func NewAuthHandler(db *sql.DB, sessions *middleware.SessionService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		db:            db,
		sessions:      sessions,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.db.QueryRow(
		`SELECT id, national_id, password_hash, role FROM users WHERE national_id = $1`,
		req.NationalID,
	).Scan(&user.ID, &user.NationalID, &user.PasswordHash, &user.Role)

	// Unknown national id and wrong password produce the same response.
	if err == sql.ErrNoRows || (err == nil && !middleware.VerifyPassword(user.PasswordHash, req.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	} else if err != nil {
		log.Printf("Error querying user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
		return
	}

	token, expiresAt, err := h.sessions.Issue(user.ID)
	if err != nil {
		log.Printf("Error creating session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		middleware.SessionCookieName,
		token,
		int(time.Until(expiresAt).Seconds()),
		"/",
		"",
		h.secureCookies,
		true,
	)

	c.JSON(http.StatusOK, models.LoginResponse{Message: "Logged in successfully", Role: user.Role})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("userID")})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No session provided"})
		return
	}

	if err := h.sessions.Invalidate(token); err != nil {
		log.Printf("Error invalidating session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureCookies, true)

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
