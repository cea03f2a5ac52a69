package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"attendance_backend/models"

	"github.com/gin-gonic/gin"
)

// newCheckRouter wires the handler behind a stub that plays the role of the
// session middleware. The nil DB is never reached: binding rejects the body
// before any storage access.
func newCheckRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/attendance", func(c *gin.Context) { c.Set("userID", int64(1)) }, handler)
	return r
}

func postJSON(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendance", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCheckInRejectsInvalidLocation(t *testing.T) {
	h := NewAttendanceHandler(nil)
	r := newCheckRouter(h.CheckIn)

	cases := []struct {
		name string
		body string
	}{
		{"latitude too high", `{"latitude": 90.01, "longitude": 46.6}`},
		{"latitude too low", `{"latitude": -90.01, "longitude": 46.6}`},
		{"longitude too high", `{"latitude": 24.7, "longitude": 180.01}`},
		{"longitude too low", `{"latitude": 24.7, "longitude": -180.01}`},
		{"missing latitude", `{"longitude": 46.6}`},
		{"missing longitude", `{"latitude": 24.7}`},
		{"empty body", ``},
		{"not json", `latitude=24.7`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := postJSON(r, tc.body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestCheckOutRejectsInvalidLocation(t *testing.T) {
	h := NewAttendanceHandler(nil)
	r := newCheckRouter(h.CheckOut)

	if w := postJSON(r, `{"latitude": 91, "longitude": 0}`); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestBoundaryCoordinatesPassBinding(t *testing.T) {
	// Boundary values must survive binding; the ranges are inclusive.
	gin.SetMode(gin.TestMode)
	r := gin.New()
	bound := false
	r.POST("/attendance", func(c *gin.Context) {
		var loc models.Location
		if err := c.ShouldBindJSON(&loc); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		bound = true
		c.Status(http.StatusOK)
	})

	for _, body := range []string{
		`{"latitude": 90, "longitude": 180}`,
		`{"latitude": -90, "longitude": -180}`,
		`{"latitude": 0, "longitude": 0}`,
	} {
		bound = false
		if w := postJSON(r, body); w.Code != http.StatusOK || !bound {
			t.Errorf("body %s: status = %d, bound = %v", body, w.Code, bound)
		}
	}
}
