package auth

import "time"

const (
	RoleOwner = "OWNER"
	RoleStaff = "STAFF"
	RoleAdmin = "ADMIN"
)

// User is a dashboard account that manages venues and their menus.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Claims is what a validated token tells us about the caller.
type Claims struct {
	UserID string
	Email  string
	Role   string
}
