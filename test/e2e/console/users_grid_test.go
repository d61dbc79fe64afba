package console_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/opsdeck/console/pkg/consolesdk"
	"github.com/stretchr/testify/require"
)

// seedGridUsers creates n accounts through the admin endpoint. Each one gets
// a reset mail so its owner can choose a password.
func seedGridUsers(t *testing.T, fx *fixture, n int) {
	t.Helper()
	ctx := context.Background()

	for i := 1; i <= n; i++ {
		require.NoError(t, fx.client.CreateUser(ctx, consolesdk.UserUpsertRequest{
			Email:     fmt.Sprintf("user%02d@example.com", i),
			Username:  fmt.Sprintf("user%02d", i),
			FirstName: "Grid",
			LastName:  fmt.Sprintf("Row%02d", i),
			Role:      consolesdk.RoleUser,
		}))
	}
}

func TestUsersGridPagination(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	signInAdmin(t, fx)
	seedGridUsers(t, fx, 7)
	require.Equal(t, 7, fx.mailer.count(), "every created account gets a reset mail")

	// 8 rows in total: the seeded admin plus 7 created accounts.
	page, err := fx.client.ReadUsers(ctx, 5, 0, nil)
	require.NoError(t, err)
	require.EqualValues(t, 8, page.Count)
	require.Len(t, page.Rows, 5)
	require.Equal(t, adminEmail, page.Rows[0].Email, "default order is id ascending")

	// The offset parameter is a page index, not a row offset.
	page, err = fx.client.ReadUsers(ctx, 5, 1, nil)
	require.NoError(t, err)
	require.EqualValues(t, 8, page.Count)
	require.Len(t, page.Rows, 3)

	page, err = fx.client.ReadUsers(ctx, 5, 2, nil)
	require.NoError(t, err)
	require.EqualValues(t, 8, page.Count)
	require.Empty(t, page.Rows)
}

func TestUsersGridSorting(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	signInAdmin(t, fx)
	seedGridUsers(t, fx, 3)

	page, err := fx.client.ReadUsers(ctx, 5, 0, []consolesdk.SortItem{{Field: "email", Sort: "desc"}})
	require.NoError(t, err)
	require.Equal(t, "user03@example.com", page.Rows[0].Email)
	require.Equal(t, adminEmail, page.Rows[len(page.Rows)-1].Email)

	// Unknown sort fields are rejected, they never reach the database.
	_, err = fx.client.ReadUsers(ctx, 5, 0, []consolesdk.SortItem{{Field: "password_hash", Sort: "asc"}})
	require.True(t, consolesdk.IsStatus(err, http.StatusBadRequest))

	var apiErr *consolesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Invalid sort model", apiErr.Message)
}

func TestUsersGridCreateConflicts(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	signInAdmin(t, fx)
	seedGridUsers(t, fx, 1)

	err := fx.client.CreateUser(ctx, consolesdk.UserUpsertRequest{
		Email:    "user01@example.com",
		Username: "someone-else",
		Role:     consolesdk.RoleUser,
	})
	field, _, ok := consolesdk.FieldOf(err)
	require.True(t, ok)
	require.Equal(t, "email", field)

	err = fx.client.CreateUser(ctx, consolesdk.UserUpsertRequest{
		Email:    "fresh@example.com",
		Username: "user01",
		Role:     consolesdk.RoleUser,
	})
	field, _, ok = consolesdk.FieldOf(err)
	require.True(t, ok)
	require.Equal(t, "username", field)
}

func TestUsersGridUpdateAndDelete(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	admin := signInAdmin(t, fx)
	seedGridUsers(t, fx, 2)

	page, err := fx.client.ReadUsers(ctx, 10, 0, nil)
	require.NoError(t, err)
	require.Len(t, page.Rows, 3)
	target := page.Rows[1]

	// Promote the first seeded account.
	require.NoError(t, fx.client.UpdateUser(ctx, target.ID, consolesdk.UserUpsertRequest{
		Email:     target.Email,
		Username:  target.Username,
		FirstName: "Promoted",
		Role:      consolesdk.RoleAdmin,
	}))

	page, err = fx.client.ReadUsers(ctx, 10, 0, nil)
	require.NoError(t, err)
	require.Equal(t, consolesdk.RoleAdmin, page.Rows[1].Role)
	require.Equal(t, "Promoted", page.Rows[1].FirstName)

	// Remove the other seeded account.
	require.NoError(t, fx.client.RemoveUser(ctx, page.Rows[2].ID))

	page, err = fx.client.ReadUsers(ctx, 10, 0, nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.Count)

	// Administrators cannot delete their own account.
	err = fx.client.RemoveUser(ctx, admin.ID)
	require.True(t, consolesdk.IsStatus(err, http.StatusForbidden))

	var apiErr *consolesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Not allowed: User prohibited from deleting self", apiErr.Message)
}

func TestUsersGridRequiresAdmin(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	// Anonymous callers are turned away before any role check.
	_, err := fx.client.ReadUsers(ctx, 5, 0, nil)
	require.True(t, consolesdk.IsStatus(err, http.StatusUnauthorized))

	// Regular accounts hold a session but lack the role.
	userClient, _ := registerVerified(t, fx, "pleb@example.com")
	_, err = userClient.ReadUsers(ctx, 5, 0, nil)
	require.True(t, consolesdk.IsStatus(err, http.StatusForbidden))

	err = userClient.CreateUser(ctx, consolesdk.UserUpsertRequest{
		Email:    "sneak@example.com",
		Username: "sneak",
		Role:     consolesdk.RoleAdmin,
	})
	require.True(t, consolesdk.IsStatus(err, http.StatusForbidden))
}
