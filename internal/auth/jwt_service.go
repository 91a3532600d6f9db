package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "taskboard/internal/errors"
)

// ExpiryMargin guards against races at the expiry boundary: tokens expiring
// within the margin are treated as already expired.
const ExpiryMargin = time.Minute

// Claims represents the session token payload.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTService issues and decodes signed, time-limited session tokens.
type JWTService struct {
	secret   []byte
	lifetime time.Duration
}

// NewJWTService creates a new JWT service with the given secret and token lifetime.
func NewJWTService(secret string, lifetime time.Duration) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// Issue generates a signed token for the user. A token moves from valid to
// expired once its lifetime elapses; there is no revocation.
func (s *JWTService) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Decode verifies a token and returns its claims. It fails with
// ErrInvalidTokenFormat on signature or structural problems, ErrTokenExpired
// when the expiry falls inside the safety margin, and ErrUnauthorized when the
// subject claim is missing.
func (s *JWTService) Decode(tokenString string) (*Claims, error) {
	// Expiry is validated by hand below so the safety margin applies.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.ErrInvalidTokenFormat
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidTokenFormat
	}

	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(time.Now().Add(ExpiryMargin)) {
		return nil, apperrors.ErrTokenExpired
	}

	if claims.UserID == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	return claims, nil
}
