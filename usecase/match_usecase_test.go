package usecase_test

import (
	"context"
	"errors"
	"testing"

	"dating-chat-api/dto/req"
	"dating-chat-api/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanChat_FalseWithoutMatch(t *testing.T) {
	f := newFixture()

	ok, err := f.matches.CanChat(context.Background(), "alice", "bob")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanChat_EitherDirection(t *testing.T) {
	f := newFixture()
	f.store.Match("alice", "bob")

	ab, err := f.matches.CanChat(context.Background(), "alice", "bob")
	require.NoError(t, err)
	ba, err := f.matches.CanChat(context.Background(), "bob", "alice")
	require.NoError(t, err)

	assert.True(t, ab)
	assert.True(t, ba)
}

func TestCanChat_SelfOrEmptyIsFalse(t *testing.T) {
	f := newFixture()
	f.store.Match("alice", "alice")

	self, err := f.matches.CanChat(context.Background(), "alice", "alice")
	require.NoError(t, err)
	empty, err := f.matches.CanChat(context.Background(), "", "bob")
	require.NoError(t, err)

	assert.False(t, self)
	assert.False(t, empty)
}

func TestCanChat_LookupFailureIsError(t *testing.T) {
	f := newFixture()
	f.store.Err = errors.New("connection refused")

	ok, err := f.matches.CanChat(context.Background(), "alice", "bob")

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestLike_IsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.matches.Like(ctx, "alice", &req.LikeRequest{LikedID: "bob"})
	require.NoError(t, err)
	second, err := f.matches.Like(ctx, "alice", &req.LikeRequest{LikedID: "bob"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	ok, err := f.matches.CanChat(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLike_RejectsSelfAndInvalidRequest(t *testing.T) {
	f := newFixture()

	_, err := f.matches.Like(context.Background(), "alice", &req.LikeRequest{LikedID: "alice"})
	assert.ErrorIs(t, err, usecase.ErrInvalidPair)

	_, err = f.matches.Like(context.Background(), "alice", &req.LikeRequest{})
	assert.Error(t, err)
}
