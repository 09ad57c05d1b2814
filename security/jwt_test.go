package security_test

import (
	"dating-chat-api/config/common"
	"dating-chat-api/security"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWT(secret string) *security.JWT {
	v := viper.New()
	v.Set("JWT_SECRET", secret)
	return security.NewJWT(&common.Config{Viper: v})
}

func TestJWT_RoundTrip(t *testing.T) {
	j := newJWT("s3cret")

	token, err := j.GenerateToken("alice", time.Minute)
	require.NoError(t, err)

	userID, expiresAt, err := j.Identify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", userID)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 2*time.Second)
}

func TestJWT_RejectsForeignSecret(t *testing.T) {
	token, err := newJWT("one").GenerateToken("alice", time.Minute)
	require.NoError(t, err)

	_, _, err = newJWT("two").Identify(token)

	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWT_RejectsExpired(t *testing.T) {
	j := newJWT("s3cret")
	claims := jwt.MapClaims{"user_id": "alice", "exp": time.Now().Add(-time.Minute).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, _, err = j.Identify(token)

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_RequiresUserID(t *testing.T) {
	j := newJWT("s3cret")
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Minute).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, _, err = j.Identify(token)

	assert.ErrorIs(t, err, security.ErrMissingUserID)
}
