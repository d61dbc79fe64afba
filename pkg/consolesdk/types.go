package consolesdk

import "time"

// User is the wire representation of an account as returned by the users and
// auth endpoints.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	Username  string    `json:"username"`
	Verified  bool      `json:"verified"`
	Created   time.Time `json:"created"`
}

// Roles an account can hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SortItem is one entry of the grid sort model. It is sent to the server as
// the JSON-encoded `sort` query parameter.
type SortItem struct {
	Field string `json:"field"`
	Sort  string `json:"sort"`
}

// UserPage is one page of the users grid plus the total row count for the
// pager.
type UserPage struct {
	Count int64  `json:"count"`
	Rows  []User `json:"rows"`
}

// RegisterRequest creates a new unverified account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest completes the mailed password-reset flow.
type ChangePasswordRequest struct {
	ConfirmPassword string `json:"confirm_password"`
	NewPassword     string `json:"new_password"`
}

// EmailRequest is the body of the resend-verification and request-reset
// endpoints.
type EmailRequest struct {
	Email string `json:"email"`
}

// SignInRequest authenticates with an e-mail address (or username) and
// password.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserUpsertRequest is the admin create/update body. The password is never
// part of it; new accounts get a reset mail instead.
type UserUpsertRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Username  string `json:"username"`
}

// UpdateEmailRequest changes the signed-in account's address.
type UpdateEmailRequest struct {
	CurrentEmail string `json:"current_email"`
	NewEmail     string `json:"new_email"`
	Password     string `json:"password"`
}

// UpdatePasswordRequest changes the signed-in account's password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// UpdateProfileRequest changes the display fields of the signed-in account.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
