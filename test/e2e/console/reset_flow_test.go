package console_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/opsdeck/console/pkg/consolesdk"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetFlow(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	client, user := registerVerified(t, fx, "resetme@example.com")

	require.NoError(t, client.Reset(ctx, "resetme@example.com"))
	mail := fx.mailer.last(t)
	require.Equal(t, "resetme@example.com", mail.To)
	require.Contains(t, mail.Body, "/change?")
	userID, token := tokenFromMail(t, mail)
	require.Equal(t, user.ID, userID)

	// Mismatched confirmation is rejected before the token is spent.
	err := client.Change(ctx, userID, token, "NewPass123!", "other")
	require.True(t, consolesdk.IsStatus(err, http.StatusBadRequest))

	require.NoError(t, client.Change(ctx, userID, token, "NewPass123!", "NewPass123!"))

	// Reset tokens are single use.
	err = client.Change(ctx, userID, token, "Again123!", "Again123!")
	require.True(t, consolesdk.IsStatus(err, http.StatusNotFound))

	// The change revoked every session; the old cookie is dead.
	_, err = client.UpdateProfile(ctx, userID, consolesdk.UpdateProfileRequest{Username: "resetme"})
	require.True(t, consolesdk.IsStatus(err, http.StatusUnauthorized))

	// Old password is gone, the new one works.
	_, err = client.SignIn(ctx, "resetme@example.com", userPassword)
	require.True(t, consolesdk.IsStatus(err, http.StatusUnauthorized))

	signedIn, err := client.SignIn(ctx, "resetme@example.com", "NewPass123!")
	require.NoError(t, err)
	require.Equal(t, user.ID, signedIn.ID)
}

func TestResetIsSilentForUnknownAddresses(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	require.NoError(t, fx.client.Reset(ctx, "ghost@example.com"))
	require.Zero(t, fx.mailer.count())
}

func TestResetTokenCannotVerify(t *testing.T) {
	fx := setupConsole(t)
	ctx := context.Background()

	_, user := registerVerified(t, fx, "crossed@example.com")

	require.NoError(t, fx.client.Reset(ctx, "crossed@example.com"))
	userID, token := tokenFromMail(t, fx.mailer.last(t))
	require.Equal(t, user.ID, userID)

	// A reset token must not redeem on the verification endpoint.
	_, err := fx.client.Verify(ctx, userID, token)
	require.True(t, consolesdk.IsStatus(err, http.StatusNotFound))
}
