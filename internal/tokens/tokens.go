package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/primeauto/showroom-api/internal/admins"
	"github.com/primeauto/showroom-api/internal/config"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the identity a verified access token carries.
type Claims struct {
	ID    string
	Email string
	Role  string
}

// GenerateAccessToken creates a signed JWT access token for the admin
func GenerateAccessToken(cfg *config.Config, a *admins.Admin, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   a.ID.Hex(),
		"email": a.Email,
		"role":  a.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// ParseAccessToken verifies signature and expiry and returns the embedded
// identity. Any parse or validation failure maps to ErrInvalidToken.
func ParseAccessToken(cfg *config.Config, raw string) (*Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	c := &Claims{}
	c.ID, _ = mc["sub"].(string)
	c.Email, _ = mc["email"].(string)
	c.Role, _ = mc["role"].(string)
	return c, nil
}
