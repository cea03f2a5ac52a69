package routes

import (
	"database/sql"

	"attendance_backend/handlers"
	"attendance_backend/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, db *sql.DB, sessions *middleware.SessionService, secureCookies bool) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, sessions, secureCookies)
	attendanceHandler := handlers.NewAttendanceHandler(db)
	exportHandler := handlers.NewExportHandler(db)
	healthHandler := handlers.NewHealthHandler(db)

	// Public routes
	r.GET("/health", healthHandler.HealthCheck)
	r.POST("/auth/login", authHandler.Login)

	// Session-protected routes
	protected := r.Group("/")
	protected.Use(middleware.RequireSession(sessions))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/logout", authHandler.Logout)

		protected.POST("/attendance/check-in", attendanceHandler.CheckIn)
		protected.POST("/attendance/check-out", attendanceHandler.CheckOut)
	}

	// Admin-only routes
	admin := r.Group("/export")
	admin.Use(middleware.RequireSession(sessions), middleware.RequireAdmin(sessions))
	{
		admin.GET("/excel", exportHandler.ExportExcel)
	}
}
