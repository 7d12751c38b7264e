package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-key"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// runChain sends a request through the given middleware with a handler
// that records the context values JWTAuth is supposed to set.
func runChain(mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	_ = h(c)
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "9",
		"role": "MEMBER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	rec, c := runChain(JWTAuth(testSecret), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "9", c.Get("user_id"))
	assert.Equal(t, "MEMBER", c.Get("role"))
}

func TestJWTAuthRejects(t *testing.T) {
	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": "9", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-key", jwt.MapClaims{
		"sub": "9", "exp": time.Now().Add(time.Hour).Unix(),
	})
	hs512tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "9", "exp": time.Now().Add(time.Hour).Unix(),
	})
	hs512, err := hs512tok.SignedString([]byte(testSecret))
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic Zm9vOmJhcg=="},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
		{"hmac variant", "Bearer " + hs512},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := runChain(JWTAuth(testSecret), tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	gate := RequireRole("ADMIN")

	e := echo.New()
	run := func(role any) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		h := gate(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		_ = h(c)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run("ADMIN"))
	assert.Equal(t, http.StatusForbidden, run("MEMBER"))
	assert.Equal(t, http.StatusForbidden, run(nil))
	assert.Equal(t, http.StatusForbidden, run(42))
}
