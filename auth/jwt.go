package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is the session validity window. The session cookie's
// Max-Age is derived from it so the two cannot drift apart.
const TokenLifetime = 7 * 24 * time.Hour

// ErrInvalidToken is the single outcome for every verification failure:
// bad signature, malformed token, wrong algorithm, or expired. Callers
// must not distinguish the reasons.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the session token payload
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a server-held secret.
type Codec struct {
	secret   []byte
	lifetime time.Duration
}

// NewCodec creates a Codec. The caller is responsible for refusing to
// start the process when the secret is empty.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), lifetime: TokenLifetime}
}

// Issue signs a token for a user
func (c *Codec) Issue(userID int, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the claims
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
