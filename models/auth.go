package models

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

type LoginRequest struct {
	NationalID string `json:"national_id" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Role    Role   `json:"role"`
}

type User struct {
	ID           int64  `json:"id"`
	NationalID   string `json:"national_id"`
	PasswordHash string `json:"-"` // "-" means this field won't be included in JSON
	Role         Role   `json:"role"`
}
