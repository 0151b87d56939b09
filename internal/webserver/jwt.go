package webserver

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "token"

	ContextKeyDB  = "db"
	ContextKeyApp = "app"
)

// SessionClaims binds a session token to an admin identifier.
type SessionClaims struct {
	AdminID int64 `json:"aid,string"`
	jwt.RegisteredClaims
}

// CreateSessionToken mints a signed session token for the given admin with
// the given validity window.
func CreateSessionToken(secret string, adminID int64, validity time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken verifies signature and expiry and returns the claims.
func ParseSessionToken(secret, tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// SessionAdminID extracts the authenticated admin identifier placed in the
// context by the session middleware. Returns 0 when unauthenticated.
func SessionAdminID(c echo.Context) int64 {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return 0
	}
	return claims.AdminID
}
