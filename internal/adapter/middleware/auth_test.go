package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, method jwt.SigningMethod, key any, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func setupAuthEcho() *echo.Echo {
	e := echo.New()
	e.Use(Auth(testSecret))
	h := func(c echo.Context) error {
		return c.String(http.StatusOK, CallerFrom(c))
	}
	e.GET("/loans", h)
	e.POST("/loans", h)
	return e
}

func authReq(e *echo.Echo, method, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/loans", strings.NewReader(`{}`))
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuth_ValidToken(t *testing.T) {
	e := setupAuthEcho()
	sub := strings.Repeat("b", 32)
	tok := signToken(t, jwt.SigningMethodHS256, testSecret, sub, time.Now().Add(time.Hour))

	rec := authReq(e, http.MethodPost, "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != sub {
		t.Fatalf("caller = %q, want %q", rec.Body.String(), sub)
	}
}

func TestAuth_GETBypass(t *testing.T) {
	rec := authReq(setupAuthEcho(), http.MethodGet, "")
	if rec.Code != http.StatusOK || rec.Body.String() != "" {
		t.Fatalf("GET => %d %q", rec.Code, rec.Body.String())
	}
}

func TestAuth_Rejections(t *testing.T) {
	e := setupAuthEcho()
	sub := strings.Repeat("b", 32)
	future := time.Now().Add(time.Hour)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc",
		"empty token":    "Bearer ",
		"garbage":        "Bearer not.a.token",
		"wrong secret":   "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), sub, future),
		"expired":        "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, sub, time.Now().Add(-time.Hour)),
		"wrong alg":      "Bearer " + signToken(t, jwt.SigningMethodHS512, testSecret, sub, future),
		"bad subject":    "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, "alice", future),
	}
	for name, header := range cases {
		rec := authReq(e, http.MethodPost, header)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: want 401, got %d", name, rec.Code)
		}
	}
}

func Test_bearer(t *testing.T) {
	if tok, ok := bearer("bearer  abc "); !ok || tok != "abc" {
		t.Fatalf("bearer = (%q, %v)", tok, ok)
	}
	if _, ok := bearer("Token abc"); ok {
		t.Fatal("accepted non-bearer scheme")
	}
}
