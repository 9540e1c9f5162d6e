package jwt

import (
	"errors"
	"time"

	"crm-console/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Claims is the subset of the CRM API's access token the console reads.
type Claims struct {
	UserID model.ID `json:"user_id,omitempty"`
	Email  string   `json:"email,omitempty"`
	Name   string   `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Owner returns user_id, falling back to the registered subject.
func (c *Claims) Owner() string {
	if c.UserID != "" {
		return string(c.UserID)
	}
	return c.Subject
}

// ParseClaims reads the token's claims. With a secret the HMAC signature and
// expiry are verified; without one the CRM API stays the authority and the
// claims are only decoded.
func ParseClaims(tokenString string, secret []byte) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	if len(secret) == 0 {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, ErrInvalidToken
		}
		return claims, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateToken signs an HS256 token, used by tooling and tests that stand
// in for the CRM API's issuer.
func GenerateToken(userID, email string, secret []byte, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID: model.ID(userID),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "crm-console",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
