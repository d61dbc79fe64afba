package domain

import "time"

// Roles a console account can hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	Role         string // RoleAdmin or RoleUser
	PasswordHash string // argon2id PHC encoded
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SortField is one entry of the grid sort model sent by the console:
// [{"field":"id","sort":"asc"}].
type SortField struct {
	Field string `json:"field"`
	Sort  string `json:"sort"`
}

// UserPage is one window of the user list plus the unpaged total.
type UserPage struct {
	Rows  []User
	Count int64
}
