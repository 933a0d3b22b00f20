package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkalinins/commportal/internal/portal"
)

// Claims carries the signed-in user inside the token so the stub server
// does not need a session table.
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  portal.Role `json:"role"`
	Phone string      `json:"phone,omitempty"`
}

// GenerateToken issues an HS256 token for the user, valid for ttl.
func GenerateToken(user portal.User, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		Phone: user.Phone,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// UserFromToken validates the token and reconstructs the user it was
// issued for. Expired or tampered tokens return ErrInvalidToken.
func UserFromToken(tokenString string, secret []byte) (portal.User, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return portal.User{}, ErrInvalidToken
	}

	return portal.User{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
		Phone: claims.Phone,
	}, nil
}
