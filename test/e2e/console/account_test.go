package console_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/opsdeck/console/pkg/consolesdk"
	"github.com/stretchr/testify/require"
)

func TestAccountProfileUpdate(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	client, user := registerVerified(t, fx, "profile@example.com")

	updated, err := client.UpdateProfile(ctx, user.ID, consolesdk.UpdateProfileRequest{
		Username:  "profiled",
		FirstName: "Pat",
		LastName:  "Profile",
	})
	require.NoError(t, err)
	require.Equal(t, "profiled", updated.Username)
	require.Equal(t, "Pat", updated.FirstName)
	require.Equal(t, "Profile", updated.LastName)
	require.Equal(t, user.Email, updated.Email, "profile updates never touch the address")
}

func TestAccountOwnership(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	admin := signInAdmin(t, fx)
	userClient, user := registerVerified(t, fx, "owned@example.com")

	// A regular account cannot touch anyone else's record.
	_, err := userClient.UpdateProfile(ctx, admin.ID, consolesdk.UpdateProfileRequest{Username: "hijack"})
	require.True(t, consolesdk.IsStatus(err, http.StatusForbidden))

	var apiErr *consolesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Insufficient privileges", apiErr.Message)

	// Administrators may edit any account.
	updated, err := fx.client.UpdateProfile(ctx, user.ID, consolesdk.UpdateProfileRequest{
		Username:  "renamed-by-admin",
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	require.NoError(t, err)
	require.Equal(t, "renamed-by-admin", updated.Username)
}

func TestAccountPasswordChange(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	client, user := registerVerified(t, fx, "rotate@example.com")

	// Wrong current password is attached to the form field.
	err := client.UpdatePassword(ctx, user.ID, consolesdk.UpdatePasswordRequest{
		CurrentPassword: "not-it",
		NewPassword:     "Rotated123!",
		ConfirmPassword: "Rotated123!",
	})
	require.True(t, consolesdk.IsStatus(err, http.StatusForbidden))
	field, _, ok := consolesdk.FieldOf(err)
	require.True(t, ok)
	require.Equal(t, "current_password", field)

	// Mismatched confirmation never reaches the credential check.
	err = client.UpdatePassword(ctx, user.ID, consolesdk.UpdatePasswordRequest{
		CurrentPassword: userPassword,
		NewPassword:     "Rotated123!",
		ConfirmPassword: "other",
	})
	require.True(t, consolesdk.IsStatus(err, http.StatusBadRequest))

	require.NoError(t, client.UpdatePassword(ctx, user.ID, consolesdk.UpdatePasswordRequest{
		CurrentPassword: userPassword,
		NewPassword:     "Rotated123!",
		ConfirmPassword: "Rotated123!",
	}))

	// Success revoked every session.
	_, err = client.UpdateProfile(ctx, user.ID, consolesdk.UpdateProfileRequest{Username: "rotate"})
	require.True(t, consolesdk.IsStatus(err, http.StatusUnauthorized))

	signedIn, err := client.SignIn(ctx, "rotate@example.com", "Rotated123!")
	require.NoError(t, err)
	require.Equal(t, user.ID, signedIn.ID)
}

func TestAccountEmailChange(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	client, user := registerVerified(t, fx, "old@example.com")

	// The password gate guards the address change.
	err := client.UpdateEmail(ctx, user.ID, consolesdk.UpdateEmailRequest{
		CurrentEmail: "old@example.com",
		NewEmail:     "new@example.com",
		Password:     "not-it",
	})
	require.True(t, consolesdk.IsStatus(err, http.StatusForbidden))
	field, _, ok := consolesdk.FieldOf(err)
	require.True(t, ok)
	require.Equal(t, "password", field)

	// The stated current address must match the record.
	err = client.UpdateEmail(ctx, user.ID, consolesdk.UpdateEmailRequest{
		CurrentEmail: "elsewhere@example.com",
		NewEmail:     "new@example.com",
		Password:     userPassword,
	})
	require.True(t, consolesdk.IsStatus(err, http.StatusBadRequest))

	require.NoError(t, client.UpdateEmail(ctx, user.ID, consolesdk.UpdateEmailRequest{
		CurrentEmail: "old@example.com",
		NewEmail:     "new@example.com",
		Password:     userPassword,
	}))

	// The new address needs verifying again.
	mail := fx.mailer.last(t)
	require.Equal(t, "new@example.com", mail.To)
	require.Contains(t, mail.Body, "/verify?")

	// Sessions are revoked, the user has to sign in again.
	_, err = client.UpdateProfile(ctx, user.ID, consolesdk.UpdateProfileRequest{Username: "renamed"})
	require.True(t, consolesdk.IsStatus(err, http.StatusUnauthorized))

	signedIn, err := client.SignIn(ctx, "new@example.com", userPassword)
	require.NoError(t, err)
	require.False(t, signedIn.Verified, "the replaced address starts out unverified")
}
