package consolesdk

import (
	"context"
	"errors"
)

// Notification variants mirror the console's snackbar kinds.
const (
	VariantSuccess = "success"
	VariantError   = "error"
	VariantInfo    = "info"
)

// Notification is a user-facing message. Persistent ones stay until the user
// dismisses them; the rest auto-expire after a few seconds. Action names an
// optional follow-up the UI offers (e.g. "Resend").
type Notification struct {
	Message string
	Variant string
	Persist bool
	Action  string
}

// Notifier displays notifications.
type Notifier interface {
	Notify(n Notification)
}

// Navigator abstracts the console's router.
type Navigator interface {
	Navigate(path string)
	CurrentPath() string
}

// Console ties the client, the session slot and the UI surfaces together and
// implements the error-surfacing policy: every remote failure is handled at
// the call site, attached to a form field or shown once as a notification,
// and never retried automatically.
type Console struct {
	Client     *Client
	Sessions   *SessionStore
	Notifier   Notifier
	Navigator  Navigator
	Visibility *Visibility
}

// NewConsole wires a flow layer with the default visibility gate.
func NewConsole(client *Client, sessions *SessionStore, notifier Notifier, navigator Navigator) *Console {
	return &Console{
		Client:     client,
		Sessions:   sessions,
		Notifier:   notifier,
		Navigator:  navigator,
		Visibility: DefaultVisibility(),
	}
}

// SignIn authenticates and persists the session. Any failure clears both the
// slot and the session cookie, so a half-authenticated state cannot survive,
// and surfaces one normalized message regardless of the cause.
func (c *Console) SignIn(ctx context.Context, username, password string) bool {
	user, err := c.Client.SignIn(ctx, username, password)
	if err != nil {
		_ = c.Sessions.Clear()
		_ = c.Client.ClearCookies()
		c.Notifier.Notify(Notification{
			Message: "Login failed: Invalid user ID or password",
			Variant: VariantError,
		})
		return false
	}

	if err := c.Sessions.Set(user); err != nil {
		c.Notifier.Notify(Notification{Message: err.Error(), Variant: VariantError})
		return false
	}
	c.Navigator.Navigate("/")
	return true
}

// SignOut clears the slot and the cookie and returns to the landing page.
func (c *Console) SignOut() {
	_ = c.Sessions.Clear()
	_ = c.Client.ClearCookies()
	c.Navigator.Navigate("/")
}

// Register creates an account and tells the user to check their mail. When
// called from outside the unauthenticated flow it navigates to the access
// page first.
func (c *Console) Register(ctx context.Context, email, password string) {
	if err := c.Client.Register(ctx, email, password); err != nil {
		c.notifyError(err)
		return
	}

	if !c.Visibility.IsDisplayed(c.Navigator.CurrentPath()) {
		c.Navigator.Navigate("/access")
	}
	c.Notifier.Notify(Notification{
		Message: "A verification link has been sent",
		Variant: VariantInfo,
		Persist: true,
	})
}

// CompleteReset finishes the mailed reset flow and sends the user to sign in
// again.
func (c *Console) CompleteReset(ctx context.Context, userID int64, token, newPassword, confirmPassword string) {
	if err := c.Client.Change(ctx, userID, token, newPassword, confirmPassword); err != nil {
		c.notifyError(err)
		return
	}

	c.Notifier.Notify(Notification{
		Message: "Password changed",
		Variant: VariantInfo,
		Persist: true,
	})
	c.Navigator.Navigate("/access")
}

// ChangePassword changes the signed-in account's password. Success means the
// backend revoked every session, so the flow signs the user out locally and
// routes them back to the access page.
func (c *Console) ChangePassword(ctx context.Context, req UpdatePasswordRequest) {
	session := c.Sessions.Get()
	if err := c.Client.UpdatePassword(ctx, session.ID, req); err != nil {
		c.notifyError(err)
		return
	}

	c.forceReauth("Password changed")
}

// ChangeEmail changes the address. The account drops back to unverified and
// loses all sessions, so this also forces re-authentication.
func (c *Console) ChangeEmail(ctx context.Context, req UpdateEmailRequest) {
	session := c.Sessions.Get()
	if err := c.Client.UpdateEmail(ctx, session.ID, req); err != nil {
		c.notifyError(err)
		return
	}

	c.forceReauth("A verification link has been sent")
}

// UpdateProfile saves the display fields and overwrites the cached session
// with the server's fresh record.
func (c *Console) UpdateProfile(ctx context.Context, req UpdateProfileRequest) {
	session := c.Sessions.Get()
	user, err := c.Client.UpdateProfile(ctx, session.ID, req)
	if err != nil {
		c.notifyError(err)
		return
	}

	if err := c.Sessions.Set(user); err != nil {
		c.Notifier.Notify(Notification{Message: err.Error(), Variant: VariantError})
		return
	}
	c.Notifier.Notify(Notification{Message: "Profile updated", Variant: VariantSuccess})
}

// DeleteUser removes a row from the users grid. Deleting your own account is
// blocked before any request is made.
func (c *Console) DeleteUser(ctx context.Context, id int64) bool {
	if id == c.Sessions.Get().ID {
		c.Notifier.Notify(Notification{
			Message: "Not allowed: User prohibited from deleting self",
			Variant: VariantError,
		})
		return false
	}

	if err := c.Client.RemoveUser(ctx, id); err != nil {
		c.notifyError(err)
		return false
	}
	c.Notifier.Notify(Notification{Message: "User deleted", Variant: VariantSuccess})
	return true
}

// SendPasswordReset is the grid's reset-password row action.
func (c *Console) SendPasswordReset(ctx context.Context, email string) {
	if err := c.Client.Reset(ctx, email); err != nil {
		c.notifyError(err)
		return
	}
	c.Notifier.Notify(Notification{Message: "Request sent", Variant: VariantSuccess})
}

// CheckVerification raises the persistent unverified banner with a Resend
// action. The check is skipped on unauthenticated-flow pages and for
// anonymous or already verified sessions.
func (c *Console) CheckVerification() {
	if c.Visibility.IsDisplayed(c.Navigator.CurrentPath()) {
		return
	}

	session := c.Sessions.Get()
	if session.IsZero() || session.Verified {
		return
	}

	c.Notifier.Notify(Notification{
		Message: "Email unverified: please follow the link sent to your address",
		Variant: VariantInfo,
		Persist: true,
		Action:  "Resend",
	})
}

// ResendVerification is the banner's Resend action.
func (c *Console) ResendVerification(ctx context.Context) {
	session := c.Sessions.Get()
	if session.IsZero() {
		return
	}
	if err := c.Client.Resend(ctx, session.Email); err != nil {
		c.notifyError(err)
		return
	}
	c.Notifier.Notify(Notification{
		Message: "A verification link has been sent",
		Variant: VariantInfo,
		Persist: true,
	})
}

// forceReauth clears all local credentials, routes to the access page and
// leaves a persistent notification explaining why.
func (c *Console) forceReauth(message string) {
	_ = c.Sessions.Clear()
	_ = c.Client.ClearCookies()
	c.Navigator.Navigate("/access")
	c.Notifier.Notify(Notification{
		Message: message,
		Variant: VariantInfo,
		Persist: true,
	})
}

// notifyError surfaces a remote failure once, as a transient notification.
// Field-scoped errors (conflicts, wrong password) are expected to be handled
// by the form via FieldOf before reaching here.
func (c *Console) notifyError(err error) {
	c.Notifier.Notify(Notification{Message: errMessage(err), Variant: VariantError})
}

func errMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
