package security

import (
	"testing"
	"time"

	"career_compass_v2/internal/platform/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestTokens(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{SessionKey: []byte("test-secret")}
	InitSessionTokens()
}

func TestEncodeSessionTokenRoundTrip(t *testing.T) {
	initTestTokens(t)

	tokenString, err := EncodeSessionToken("sid-123", 42, "alice", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	tok, err := TokenAuth.Decode(tokenString)
	require.NoError(t, err)

	sid, ok := tok.Get("sid")
	require.True(t, ok)
	assert.Equal(t, "sid-123", sid)

	userID, ok := tok.Get("user_id")
	require.True(t, ok)
	assert.Equal(t, "42", userID)

	username, ok := tok.Get("username")
	require.True(t, ok)
	assert.Equal(t, "alice", username)
}

func TestDecodeExpiredToken(t *testing.T) {
	initTestTokens(t)

	tokenString, err := EncodeSessionToken("sid-123", 42, "alice", -time.Minute)
	require.NoError(t, err)

	_, err = TokenAuth.Decode(tokenString)
	assert.Error(t, err)
}

func TestDecodeTamperedToken(t *testing.T) {
	initTestTokens(t)

	tokenString, err := EncodeSessionToken("sid-123", 42, "alice", time.Hour)
	require.NoError(t, err)

	_, err = TokenAuth.Decode(tokenString + "x")
	assert.Error(t, err)
}

func TestClaimExtraction(t *testing.T) {
	tests := []struct {
		name    string
		claims  jwt.MapClaims
		wantErr bool
	}{
		{"valid", jwt.MapClaims{"sid": "s1", "user_id": "7", "username": "bob"}, false},
		{"missing sid", jwt.MapClaims{"user_id": "7", "username": "bob"}, true},
		{"empty sid", jwt.MapClaims{"sid": "", "user_id": "7", "username": "bob"}, true},
		{"non-numeric user_id", jwt.MapClaims{"sid": "s1", "user_id": "abc", "username": "bob"}, true},
		{"numeric-typed user_id", jwt.MapClaims{"sid": "s1", "user_id": 7, "username": "bob"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, sidErr := GetSessionIDFromClaims(tt.claims)
			_, uidErr := GetUserIDFromClaims(tt.claims)
			if tt.wantErr {
				assert.True(t, sidErr != nil || uidErr != nil)
			} else {
				assert.NoError(t, sidErr)
				assert.NoError(t, uidErr)

				username, err := GetUsernameFromClaims(tt.claims)
				assert.NoError(t, err)
				assert.Equal(t, "bob", username)
			}
		})
	}
}
