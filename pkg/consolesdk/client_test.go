package consolesdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	return client
}

func writeError(w http.ResponseWriter, apiErr APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	_ = json.NewEncoder(w).Encode(apiErr)
}

func TestClientSignInKeepsSessionCookie(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/sign-in", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "ss-id", Value: "session-token", Path: "/", HttpOnly: true})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(User{ID: 1, Email: "admin@example.com", Role: RoleAdmin, Verified: true})
	})
	var gotCookie string
	mux.HandleFunc("GET /api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("ss-id"); err == nil {
			gotCookie = c.Value
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(UserPage{Count: 0, Rows: []User{}})
	})

	client := newTestClient(t, mux)

	user, err := client.SignIn(ctx, "admin@example.com", "hunter22")
	require.NoError(t, err)
	require.EqualValues(t, 1, user.ID)
	require.Equal(t, RoleAdmin, user.Role)

	_, err = client.ReadUsers(ctx, 5, 0, nil)
	require.NoError(t, err)
	require.Equal(t, "session-token", gotCookie, "the jar must replay the session cookie")

	// After clearing the jar the cookie no longer travels.
	gotCookie = ""
	require.NoError(t, client.ClearCookies())
	_, err = client.ReadUsers(ctx, 5, 0, nil)
	require.NoError(t, err)
	require.Empty(t, gotCookie)
}

func TestClientNormalizesErrorBodies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, APIError{
			StatusCode: http.StatusConflict,
			Err:        "Conflict",
			Message:    "Email already exists",
			Field:      "email",
		})
	}))

	err := client.Register(ctx, "taken@example.com", "hunter22")
	require.Error(t, err)
	require.True(t, IsStatus(err, http.StatusConflict))

	field, message, ok := FieldOf(err)
	require.True(t, ok)
	require.Equal(t, "email", field)
	require.Equal(t, "Email already exists", message)
}

func TestClientFallsBackOnUnparsableBodies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>upstream down</html>")
	}))

	_, err := client.SignIn(ctx, "admin", "hunter22")
	require.True(t, IsStatus(err, http.StatusBadGateway))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Bad Gateway", apiErr.Err)
	require.Contains(t, apiErr.Message, "502")
}

func TestClientVerifyStaleToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "9", r.URL.Query().Get("userId"))
		require.Equal(t, "stale-token", r.URL.Query().Get("token"))
		writeError(w, APIError{
			StatusCode: http.StatusNotFound,
			Err:        "Not Found",
			Message:    "Token is invalid or expired",
		})
	}))

	_, err := client.Verify(ctx, 9, "stale-token")
	require.True(t, IsStatus(err, http.StatusNotFound))
}

func TestClientReadUsersEncodesTheGridQuery(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var gotQuery map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"limit":  r.URL.Query().Get("limit"),
			"offset": r.URL.Query().Get("offset"),
			"sort":   r.URL.Query().Get("sort"),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(UserPage{
			Count: 12,
			Rows:  []User{{ID: 3, Email: "c@example.com", Created: created}},
		})
	}))

	page, err := client.ReadUsers(ctx, 5, 2, []SortItem{{Field: "email", Sort: "desc"}})
	require.NoError(t, err)
	require.EqualValues(t, 12, page.Count)
	require.Len(t, page.Rows, 1)
	require.True(t, page.Rows[0].Created.Equal(created))

	require.Equal(t, "5", gotQuery["limit"])
	require.Equal(t, "2", gotQuery["offset"], "offset carries the page index, not a row offset")
	require.JSONEq(t, `[{"field":"email","sort":"desc"}]`, gotQuery["sort"])
}

func TestClientFieldOfCompatibilityFallback(t *testing.T) {
	t.Parallel()

	err := &APIError{StatusCode: http.StatusConflict, Err: "Conflict", Message: "Username already exists"}
	field, _, ok := FieldOf(err)
	require.True(t, ok)
	require.Equal(t, "username", field)

	_, _, ok = FieldOf(&APIError{StatusCode: 500, Err: "Internal Server Error", Message: "Something went wrong"})
	require.False(t, ok)
}
