package rettiwt

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAPIKey(t *testing.T) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(
		[]byte("kdt=abc;twid=u%3D42;ct0=csrf123;auth_token=tok456"))
}

func TestParseAPIKey(t *testing.T) {
	cred, err := ParseAPIKey(testAPIKey(t))
	require.NoError(t, err)
	assert.Equal(t, LevelUser, cred.Level())

	h := cred.Headers()
	assert.Equal(t, "csrf123", h["x-csrf-token"])
	assert.Contains(t, h["cookie"], "auth_token=tok456")
	assert.Contains(t, h["cookie"], "ct0=csrf123")
	assert.Contains(t, h["cookie"], "kdt=abc")
	assert.Contains(t, h["authorization"], "Bearer ")
}

func TestParseAPIKeyInvalid(t *testing.T) {
	_, err := ParseAPIKey("not base64!!")
	assert.Error(t, err)

	// Decodes fine but lacks the mandatory cookies.
	missing := base64.StdEncoding.EncodeToString([]byte("kdt=abc;twid=x"))
	_, err = ParseAPIKey(missing)
	assert.Error(t, err)
}

func TestGuestHeaders(t *testing.T) {
	cred := &guestCredential{token: "gt123"}
	assert.Equal(t, LevelGuest, cred.Level())

	h := cred.Headers()
	assert.Equal(t, "gt123", h["x-guest-token"])
	assert.Empty(t, h["x-csrf-token"])
	assert.Empty(t, h["cookie"])
}

func TestGuestAllowed(t *testing.T) {
	allowed := []Resource{
		ResourceTweetDetails,
		ResourceUserDetailsByUsername,
		ResourceUserDetailsByID,
		ResourceUserTimeline,
	}
	for _, res := range allowed {
		assert.True(t, guestAllowed(res), "%s should be guest-allowed", res)
	}

	restricted := []Resource{
		ResourceTweetSearch,
		ResourceUserFollowers,
		ResourceUserFollowing,
		ResourceTweetRetweeters,
		ResourceCreateTweet,
		ResourceFavoriteTweet,
	}
	for _, res := range restricted {
		assert.False(t, guestAllowed(res), "%s should require user level", res)
	}
}

func TestCredentialLevelString(t *testing.T) {
	assert.Equal(t, "guest", LevelGuest.String())
	assert.Equal(t, "user", LevelUser.String())
}
