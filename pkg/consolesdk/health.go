package consolesdk

import (
	"context"
	"net/http"
)

// Livez reports whether the backend process is up.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/livez", nil)
	if err != nil {
		return HealthResponse{}, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return HealthResponse{}, err
	}
	return health, nil
}

// Readyz reports whether the backend can reach its database.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/readyz", nil)
	if err != nil {
		return HealthResponse{}, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return HealthResponse{}, err
	}
	return health, nil
}
