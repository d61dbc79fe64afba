package consolesdk

import (
	"context"
	"fmt"
	"net/http"
)

// Register creates an unverified account. The backend sends a verification
// mail to the address.
func (c *Client) Register(ctx context.Context, email, password string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth", RegisterRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// SignIn authenticates and returns the session record. The username field
// accepts the e-mail address too. The session cookie lands in the client's
// jar.
func (c *Client) SignIn(ctx context.Context, username, password string) (User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/sign-in", SignInRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return User{}, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return User{}, err
	}
	return user, nil
}

// Resend asks for a fresh verification mail.
func (c *Client) Resend(ctx context.Context, email string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/resend", EmailRequest{Email: email})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Reset asks for a password reset mail.
func (c *Client) Reset(ctx context.Context, email string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/reset", EmailRequest{Email: email})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Verify redeems a verification token from a mailed link and returns the
// verified account. Stale, used or forged tokens come back as a 404 APIError.
func (c *Client) Verify(ctx context.Context, userID int64, token string) (User, error) {
	path := fmt.Sprintf("/api/v1/auth?userId=%d&token=%s", userID, token)
	resp, err := c.doJSON(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return User{}, err
	}
	return user, nil
}

// Change completes the mailed password-reset flow. On success the backend has
// revoked every session of the account.
func (c *Client) Change(ctx context.Context, userID int64, token, newPassword, confirmPassword string) error {
	path := fmt.Sprintf("/api/v1/auth?userId=%d&token=%s", userID, token)
	resp, err := c.doJSON(ctx, http.MethodPatch, path, ChangePasswordRequest{
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
