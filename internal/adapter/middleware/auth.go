package middleware

import (
	"errors"
	"net/http"
	"strings"

	"friendloan-backend/pkg/id"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const callerKey = "ledger.caller"

// Auth authenticates mutating requests with an HS256 bearer token whose
// sub claim is the caller identity. Reads pass through unauthenticated.
func Auth(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			raw, ok := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			claims := &jwt.RegisteredClaims{}
			if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
				msg := "invalid token"
				if errors.Is(err, jwt.ErrTokenExpired) {
					msg = "token expired"
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": msg})
			}
			if !id.Valid(claims.Subject) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token subject must be 32-char lowercase hex"})
			}

			c.Set(callerKey, claims.Subject)
			return next(c)
		}
	}
}

// CallerFrom returns the identity Auth stored on c, or "" when the request
// was not authenticated.
func CallerFrom(c echo.Context) string {
	s, _ := c.Get(callerKey).(string)
	return s
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
