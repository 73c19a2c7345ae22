package domain

import "time"

// Role names understood by the authorization middleware.
const (
	RoleAdmin       = "admin"
	RoleOperational = "operasional"
)

// User represents an application user.
type User struct {
	UserID       string    `json:"userID"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
