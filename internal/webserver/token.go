package webserver

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionClaims is the payload carried by issued session tokens.
type SessionClaims struct {
	Login string `json:"login"`
	Level string `json:"level"`
	jwt.RegisteredClaims
}

func NewSessionClaims(c echo.Context) jwt.Claims {
	return new(SessionClaims)
}

// IssueToken signs a session token for a successfully authenticated employee.
func IssueToken(secret, login, level string, ttl time.Duration) (string, error) {
	claims := &SessionClaims{
		Login: login,
		Level: level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// CurrentLogin returns the login of the token holder, or "" on public routes.
func CurrentLogin(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return ""
	}
	return claims.Login
}
