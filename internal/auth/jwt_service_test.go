package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "taskboard/internal/errors"
)

const testSecret = "test-secret"

func TestJWTService_IssueAndDecode(t *testing.T) {
	svc := NewJWTService(testSecret, 30*time.Minute)

	token, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_Decode_Expired(t *testing.T) {
	tests := []struct {
		name     string
		lifetime time.Duration
	}{
		{"already past expiry", -time.Minute},
		{"expires inside the safety margin", 30 * time.Second},
		{"expires exactly at the margin boundary", ExpiryMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewJWTService(testSecret, tt.lifetime)
			token, err := svc.Issue(7)
			require.NoError(t, err)

			_, err = svc.Decode(token)
			assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
		})
	}
}

func TestJWTService_Decode_InvalidFormat(t *testing.T) {
	svc := NewJWTService(testSecret, 30*time.Minute)

	token, err := svc.Issue(7)
	require.NoError(t, err)

	other := NewJWTService("another-secret", 30*time.Minute)
	foreign, err := other.Issue(7)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
		{"tampered signature", token[:len(token)-2] + "$$"},
		{"wrong signing secret", foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Decode(tt.token)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTokenFormat)
		})
	}
}

func TestJWTService_Decode_MissingSubject(t *testing.T) {
	svc := NewJWTService(testSecret, 30*time.Minute)

	// A structurally valid, unexpired token without a subject claim.
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Decode(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestJWTService_Decode_RejectsUnexpectedAlgorithm(t *testing.T) {
	svc := NewJWTService(testSecret, 30*time.Minute)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Decode(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTokenFormat)
}
