package console_test

import (
	"context"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/opsdeck/console/internal/console/app"
	"github.com/opsdeck/console/pkg/consolesdk"
	"github.com/stretchr/testify/require"

	"net/http/httptest"
)

/*
 * Common helpers for console end-to-end tests. Each test boots a complete
 * application (embedded SQLite, real router, real services) in-process,
 * wraps it in an httptest server and talks to it through the SDK, the same
 * way the browser frontend does. Only mail delivery is swapped for a capture
 * so the tests can follow the tokenized links.
 */

const (
	adminEmail    = "admin@example.com"
	adminPassword = "Admin123!"
	userPassword  = "Hunter22!"
)

// captureMailer records outbound mail instead of sending it.
type captureMailer struct {
	mu    sync.Mutex
	mails []capturedMail
}

type capturedMail struct {
	To      string
	Subject string
	Body    string
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mails = append(m.mails, capturedMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *captureMailer) last(t *testing.T) capturedMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.mails, "expected at least one captured mail")
	return m.mails[len(m.mails)-1]
}

func (m *captureMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.mails)
}

var tokenLinkRE = regexp.MustCompile(`userId=(\d+)&token=([A-Za-z0-9._-]+)`)

// tokenFromMail pulls the userId and token out of a mailed link.
func tokenFromMail(t *testing.T, mail capturedMail) (userID int64, token string) {
	t.Helper()
	match := tokenLinkRE.FindStringSubmatch(mail.Body)
	require.Len(t, match, 3, "mail body should contain a tokenized link: %s", mail.Body)
	id, err := strconv.ParseInt(match[1], 10, 64)
	require.NoError(t, err)
	return id, match[2]
}

type fixture struct {
	server *httptest.Server
	client *consolesdk.Client
	mailer *captureMailer
}

// setupConsole boots the application with a seeded administrator and returns
// a fixture whose SDK client is still anonymous.
func setupConsole(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	application, err := app.New(app.Config{
		Issuer:        "console-e2e",
		ConsoleURL:    "http://console.test",
		DatabaseFile:  filepath.Join(dir, "console.db"),
		PepperFile:    filepath.Join(dir, "pepper"),
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,

		MailMode:  "log",
		Env:       "test",
		LogLevel:  "error",
		LogFormat: "text",

		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		SessionTTL:           time.Hour,
	})
	require.NoError(t, err)

	mailer := &captureMailer{}
	application.Accounts().Mailer = mailer

	server := httptest.NewServer(application.Handler())
	t.Cleanup(server.Close)

	return &fixture{
		server: server,
		client: newSDKClient(t, server.URL),
		mailer: mailer,
	}
}

// newSDKClient creates an anonymous client with its own cookie jar.
func newSDKClient(t *testing.T, baseURL string) *consolesdk.Client {
	t.Helper()
	client, err := consolesdk.NewClient(baseURL)
	require.NoError(t, err)
	return client
}

// signInAdmin authenticates the fixture's client as the seeded administrator.
func signInAdmin(t *testing.T, fx *fixture) consolesdk.User {
	t.Helper()

	admin, err := fx.client.SignIn(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	require.Equal(t, consolesdk.RoleAdmin, admin.Role)
	return admin
}

// registerVerified registers an account on its own client, follows the mailed
// verification link and signs in. Returns the signed-in client and record.
func registerVerified(t *testing.T, fx *fixture, email string) (*consolesdk.Client, consolesdk.User) {
	t.Helper()
	ctx := context.Background()

	client := newSDKClient(t, fx.server.URL)
	require.NoError(t, client.Register(ctx, email, userPassword))

	userID, token := tokenFromMail(t, fx.mailer.last(t))
	_, err := client.Verify(ctx, userID, token)
	require.NoError(t, err)

	user, err := client.SignIn(ctx, email, userPassword)
	require.NoError(t, err)
	require.True(t, user.Verified)
	return client, user
}
