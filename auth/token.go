package auth

import (
	"baro-server/domain"
	serrors "baro-server/errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the bearer tokens handed out at login.
// The signing secret comes from configuration; it must never be hardcoded.
type TokenManager struct {
	secret   []byte
	duration time.Duration
}

func NewTokenManager(secret string, duration time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), duration: duration}
}

// Generate creates a signed JWT for a verified identity.
func (m *TokenManager) Generate(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: identity.ID,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "baro-server",
		},
	}

	// HS256: HMAC with SHA256, symmetric secret.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", serrors.ErrTokenGeneration
	}
	return signed, nil
}

// Verify parses and validates the signature and expiration of a JWT string,
// turning it into the identity it was issued for.
func (m *TokenManager) Verify(tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return domain.Identity{}, serrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return domain.Identity{}, serrors.ErrInvalidToken
	}
	return domain.Identity{ID: claims.UserID, Email: claims.Email}, nil
}
