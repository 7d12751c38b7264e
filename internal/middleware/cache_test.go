package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/campuslabs/desk-reservation/internal/config"
)

func cacheContext(target, route string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(route)
	return c
}

func TestCacheKeyDistinguishesPathParams(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "deskcache"}

	// two desks resolved by the same registered route must not share
	// a cache entry
	k1 := cacheKeyFrom(cfg, cacheContext("/desk/1", "/desk/:id"))
	k2 := cacheKeyFrom(cfg, cacheContext("/desk/2", "/desk/:id"))
	assert.NotEqual(t, k1, k2)

	// the same desk hashes to the same key across requests
	assert.Equal(t, k1, cacheKeyFrom(cfg, cacheContext("/desk/1", "/desk/:id")))
}

func TestCacheKeyDistinguishesQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "deskcache"}

	plain := cacheKeyFrom(cfg, cacheContext("/desk/available", "/desk/available"))
	filtered := cacheKeyFrom(cfg, cacheContext("/desk/available?desk_type=Standing+Desk", "/desk/available"))
	assert.NotEqual(t, plain, filtered)
}
