package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJWT(t *testing.T) {
	valid, err := GenerateJWT(7, "secret", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateJWT(7, "secret", -time.Hour)
	require.NoError(t, err)
	wrongKey, err := GenerateJWT(7, "other-secret", time.Hour)
	require.NoError(t, err)
	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name         string
		token        string
		expectUserID uint
		expectError  bool
	}{
		{name: "Success", token: valid, expectUserID: 7},
		{name: "ExpiredToken", token: expired, expectError: true},
		{name: "InvalidSignature", token: wrongKey, expectError: true},
		{name: "MissingUser", token: noUser, expectError: true},
		{name: "EmptyToken", token: "", expectError: true},
		{name: "Garbage", token: "not.a.token", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseJWT(tt.token, "secret")
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectUserID, claims.UserID)
		})
	}
}
