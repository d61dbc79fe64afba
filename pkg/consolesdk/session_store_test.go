package consolesdk

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionStoreStartsAnonymous(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.True(t, store.Get().IsZero())
}

func TestSessionStoreSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewSessionStore(path)
	require.NoError(t, err)

	user := User{
		ID:       7,
		Email:    "alice@example.com",
		Username: "alice",
		Role:     RoleAdmin,
		Verified: true,
		Created:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Set(user))

	reopened, err := NewSessionStore(path)
	require.NoError(t, err)
	require.Equal(t, user, reopened.Get())
}

func TestSessionStoreSetOverwritesWholesale(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Set(User{ID: 1, Email: "a@example.com", FirstName: "Ada"}))
	require.NoError(t, store.Set(User{ID: 2, Email: "b@example.com"}))

	got := store.Get()
	require.EqualValues(t, 2, got.ID)
	require.Empty(t, got.FirstName, "records replace, never merge")
}

func TestSessionStoreClear(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewSessionStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set(User{ID: 1}))
	require.NoError(t, store.Clear())
	require.True(t, store.Get().IsZero())

	// The durable slot is cleared too, not just memory.
	reopened, err := NewSessionStore(path)
	require.NoError(t, err)
	require.True(t, reopened.Get().IsZero())
}

func TestSessionStoreSubscribe(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	var seen []User
	cancel := store.Subscribe(func(u User) { seen = append(seen, u) })

	require.NoError(t, store.Set(User{ID: 1}))
	require.NoError(t, store.Set(User{ID: 2}))
	require.Len(t, seen, 2)
	require.EqualValues(t, 2, seen[1].ID)

	cancel()
	require.NoError(t, store.Set(User{ID: 3}))
	require.Len(t, seen, 2, "cancelled subscribers stop receiving")
}

func TestSessionStoreRejectsCorruptSlot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewSessionStore(path)
	require.Error(t, err)
}
