package security_test

import (
	"dating-chat-api/security"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func next(t *testing.T, ch <-chan security.AuthSession) security.AuthSession {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return s
	case <-time.After(time.Second):
		t.Fatal("no session state delivered")
	}
	return security.AuthSession{}
}

func TestSessionStore_Transitions(t *testing.T) {
	store := security.NewSessionStore()
	defer store.Close()
	updates, unsubscribe := store.Subscribe()
	defer unsubscribe()

	assert.Equal(t, security.Unauthenticated, next(t, updates).State)

	store.Begin()
	assert.Equal(t, security.Loading, next(t, updates).State)

	store.SignedIn("alice", time.Now().Add(time.Hour))
	signedIn := next(t, updates)
	assert.Equal(t, security.Authenticated, signedIn.State)
	assert.Equal(t, "alice", signedIn.UserID)

	// Begin does not leave an authenticated session
	store.Begin()
	assert.Equal(t, security.Authenticated, store.Current().State)

	store.SignedOut()
	signedOut := next(t, updates)
	assert.Equal(t, security.Unauthenticated, signedOut.State)
	assert.Empty(t, signedOut.UserID)
}

func TestSessionStore_ExpiresToken(t *testing.T) {
	store := security.NewSessionStore()
	defer store.Close()

	store.Begin()
	store.SignedIn("alice", time.Now().Add(30*time.Millisecond))
	require.Equal(t, security.Authenticated, store.Current().State)

	assert.Eventually(t, func() bool {
		return store.Current().State == security.Unauthenticated
	}, time.Second, 5*time.Millisecond)
}

func TestSessionStore_RefreshExtendsExpiry(t *testing.T) {
	store := security.NewSessionStore()
	defer store.Close()

	store.SignedIn("alice", time.Now().Add(30*time.Millisecond))
	store.SignedIn("alice", time.Now().Add(time.Hour))
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, security.Authenticated, store.Current().State)
}

func TestSessionStore_ExpiredTokenNeverAuthenticates(t *testing.T) {
	store := security.NewSessionStore()
	defer store.Close()

	store.Begin()
	store.SignedIn("alice", time.Now().Add(-time.Second))

	assert.Equal(t, security.Unauthenticated, store.Current().State)
}

func TestSessionStore_CloseEndsSubscriptions(t *testing.T) {
	store := security.NewSessionStore()
	updates, unsubscribe := store.Subscribe()
	<-updates

	store.Close()
	unsubscribe()

	_, ok := <-updates
	assert.False(t, ok)
}
