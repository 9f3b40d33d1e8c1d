package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rxbridge/website-backend/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(limit int, exempt ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(RateLimitConfig{
		Store:          ratelimit.NewMemoryStore(limit, time.Minute),
		Limit:          limit,
		ExemptPrefixes: exempt,
	}))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/health", ok)
	router.GET("/static/site.css", ok)
	router.POST("/api/v1/quote", ok)
	return router
}

func doRequest(router *gin.Engine, method, path, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":52134"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksOverQuota(t *testing.T) {
	router := newLimitedRouter(3)

	var statuses []int
	for i := 0; i < 6; i++ {
		w := doRequest(router, http.MethodPost, "/api/v1/quote", "203.0.113.7")
		statuses = append(statuses, w.Code)

		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
			assert.Contains(t, w.Body.String(), "retryAfter")
		}
	}

	assert.Equal(t, []int{200, 200, 200, 429, 429, 429}, statuses)
}

func TestRateLimitKeysByClientIP(t *testing.T) {
	router := newLimitedRouter(1)

	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/v1/quote", "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, http.MethodPost, "/api/v1/quote", "203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/v1/quote", "203.0.113.8").Code)
}

func TestRateLimitExemptPaths(t *testing.T) {
	router := newLimitedRouter(1, "/health", "/static/")

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/health", "203.0.113.7").Code)
		assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/static/site.css", "203.0.113.7").Code)
	}

	// The same client is still limited on non-exempt routes
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodPost, "/api/v1/quote", "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(router, http.MethodPost, "/api/v1/quote", "203.0.113.7").Code)
}

func TestRateLimitSetsInformationalHeaders(t *testing.T) {
	router := newLimitedRouter(3)

	w := doRequest(router, http.MethodPost, "/api/v1/quote", "203.0.113.7")
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitHonorsXRealIP(t *testing.T) {
	router := newLimitedRouter(1)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote", nil)
	req.RemoteAddr = "10.0.0.1:40000"
	req.Header.Set("X-Real-IP", "198.51.100.9")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Same forwarded identity from a different proxy hop is still limited
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/quote", nil)
	req2.RemoteAddr = "10.0.0.2:40000"
	req2.Header.Set("X-Real-IP", "198.51.100.9")
	router.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}
