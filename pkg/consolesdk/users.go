package consolesdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ReadUsers fetches one page of the users grid. page is the zero-based page
// index; the backend computes the row offset from it. An empty sort model
// falls back to id ascending server-side.
func (c *Client) ReadUsers(ctx context.Context, pageSize, page int, sortModel []SortItem) (UserPage, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprint(pageSize))
	query.Set("offset", fmt.Sprint(page))
	if len(sortModel) > 0 {
		encoded, err := json.Marshal(sortModel)
		if err != nil {
			return UserPage{}, fmt.Errorf("failed to encode sort model: %w", err)
		}
		query.Set("sort", string(encoded))
	}

	resp, err := c.doJSON(ctx, http.MethodGet, "/api/v1/users?"+query.Encode(), nil)
	if err != nil {
		return UserPage{}, err
	}

	var result UserPage
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return UserPage{}, err
	}
	return result, nil
}

// CreateUser adds an account as an administrator. The account gets a reset
// mail so its owner can choose a password; callers must re-fetch the grid to
// observe the effect.
func (c *Client) CreateUser(ctx context.Context, req UserUpsertRequest) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/api/v1/users", req)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// UpdateUser replaces the admin-editable fields of an account.
func (c *Client) UpdateUser(ctx context.Context, id int64, req UserUpsertRequest) error {
	resp, err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", id), req)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// RemoveUser deletes an account. Deleting the signed-in account is rejected
// with a 403.
func (c *Client) RemoveUser(ctx context.Context, id int64) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", id), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// UpdateEmail changes the signed-in account's address. On success the backend
// has revoked every session; the caller must clear local state and
// re-authenticate.
func (c *Client) UpdateEmail(ctx context.Context, id int64, req UpdateEmailRequest) error {
	resp, err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d/email", id), req)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// UpdatePassword changes the signed-in account's password. Same forced
// re-authentication contract as UpdateEmail.
func (c *Client) UpdatePassword(ctx context.Context, id int64, req UpdatePasswordRequest) error {
	resp, err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d/password", id), req)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// UpdateProfile changes the display fields and returns the updated record so
// the caller can overwrite its cached session.
func (c *Client) UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (User, error) {
	resp, err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d/profile", id), req)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return User{}, err
	}
	return user, nil
}
