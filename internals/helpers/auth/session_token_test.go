package helper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	in := SessionClaims{UserID: uuid.New(), Email: "a@b.com", Role: "student", Name: "Ali"}

	tok, exp, err := SignSessionToken("secret", in, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(SessionTTL), exp)

	out, err := ParseSessionToken("secret", tok, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.Email, out.Email)
	assert.Equal(t, in.Role, out.Role)
	assert.Equal(t, in.Name, out.Name)

	got, ok := TokenExpiry(tok)
	require.True(t, ok)
	assert.Equal(t, exp.Unix(), got.Unix())
}

func TestSessionTokenRejects(t *testing.T) {
	now := time.Now()
	tok, _, err := SignSessionToken("secret", SessionClaims{UserID: uuid.New()}, now)
	require.NoError(t, err)

	_, err = ParseSessionToken("other", tok, now)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseSessionToken("secret", tok, now.Add(SessionTTL+time.Minute))
	assert.ErrorIs(t, err, ErrTokenExpired)

	// masih dalam skew
	_, err = ParseSessionToken("secret", tok, now.Add(SessionTTL+10*time.Second))
	assert.NoError(t, err)

	_, err = ParseSessionToken("secret", "garbage", now)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, _, err = SignSessionToken(" ", SessionClaims{}, now)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestTwoTokensSameSecondDiffer(t *testing.T) {
	now := time.Now()
	c := SessionClaims{UserID: uuid.New()}
	a, _, _ := SignSessionToken("s", c, now)
	b, _, _ := SignSessionToken("s", c, now)
	assert.NotEqual(t, a, b)
}
