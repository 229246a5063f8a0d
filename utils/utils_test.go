package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/vendora/products/abc123.jpg", "vendora/products/abc123"},
		{"https://res.cloudinary.com/demo/image/upload/w_300,c_fill/v17/vendora/products/abc.png", "vendora/products/abc"},
		{"https://res.cloudinary.com/demo/image/upload/vendora/products/abc.webp", "vendora/products/abc"},
		{"https://cdn.example.com/images/photo.gif", "photo"},
		{"vendora/products/abc123", "vendora/products/abc123"},
		{"  ", ""},
		{"https://cdn.example.com/", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractPublicID(tt.in), tt.in)
	}
}

func TestNewCloudinaryStoreRequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryStore(CloudinaryConfig{CloudName: "demo"})
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("6523f1a2b3c4d5e6f7a8b9c0", RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "6523f1a2b3c4d5e6f7a8b9c0", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestVerifyTokenRejectsBadTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	expired, err := GenerateToken("user", RoleVendor, -time.Minute)
	require.NoError(t, err)
	_, err = VerifyToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	t.Setenv("JWT_SECRET", "rotated")
	valid, err := GenerateToken("user", RoleVendor, time.Hour)
	require.NoError(t, err)
	t.Setenv("JWT_SECRET", "test-secret")
	_, err = VerifyToken(valid)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResponses(t *testing.T) {
	assert.Equal(t, false, ErrorResponse("boom")["success"])
	assert.Equal(t, "boom", ErrorResponse("boom")["error"])

	ok := SuccessResponse("done", map[string]int{"n": 1})
	assert.Equal(t, true, ok["success"])
	assert.Contains(t, ok, "data")
	assert.NotContains(t, SuccessResponse("done", nil), "data")
}
