package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rxbridge/website-backend/internal/api/middleware"
	"github.com/rxbridge/website-backend/internal/config"
	"github.com/rxbridge/website-backend/internal/mailer"
	"github.com/rxbridge/website-backend/internal/quote"
	"github.com/rxbridge/website-backend/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockMailer records submissions instead of talking to an SMTP server
type mockMailer struct {
	err  error
	sent []*quote.Submission
}

func (m *mockMailer) SendQuoteRequest(ctx context.Context, sub *quote.Submission) (*mailer.Receipt, error) {
	m.sent = append(m.sent, sub)
	if m.err != nil {
		return nil, m.err
	}
	return &mailer.Receipt{MessageID: "test-message-id", Timestamp: time.Now()}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:     "test",
		MinDwellTime:    2 * time.Second,
		FallbackContact: "Please call us at (800) 555-0134",
		QuoteRateLimit:  3,
		QuoteRateWindow: time.Minute,
	}
}

func newQuoteRouter(m mailer.Mailer, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewQuoteHandler(m, cfg)
	router.POST("/api/v1/quote",
		middleware.RateLimitMiddleware(middleware.RateLimitConfig{
			Store: ratelimit.NewMemoryStore(cfg.QuoteRateLimit, cfg.QuoteRateWindow),
			Limit: cfg.QuoteRateLimit,
		}),
		handler.Submit,
	)
	return router
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"pharmacy_name":   "Main Street Pharmacy",
		"contact_person":  "Dana Whitfield",
		"phone":           "(313) 333-2133",
		"email":           "dana@mainstreetrx.com",
		"address":         "100 Main St",
		"city":            "Detroit",
		"state":           "MI",
		"weekly_scripts":  "25-to-125",
		"message":         "Looking for a weekly delivery quote.",
		"submission_time": time.Now().Add(-3 * time.Second).UnixMilli(),
	}
}

func postQuote(router *gin.Engine, payload map[string]interface{}, ip string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":51234"
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitQuoteSuccess(t *testing.T) {
	m := &mockMailer{}
	router := newQuoteRouter(m, testConfig())

	w := postQuote(router, validPayload(), "203.0.113.10")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success   bool      `json:"success"`
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
	assert.False(t, resp.Timestamp.IsZero())

	require.Len(t, m.sent, 1)
	assert.Equal(t, "Main Street Pharmacy", m.sent[0].PharmacyName)
	assert.Equal(t, "25 to 125", m.sent[0].Volume.Display)
}

func TestSubmitQuoteValidationErrors(t *testing.T) {
	m := &mockMailer{}
	router := newQuoteRouter(m, testConfig())

	payload := map[string]interface{}{
		"submission_time": time.Now().Add(-3 * time.Second).UnixMilli(),
	}
	w := postQuote(router, payload, "203.0.113.10")

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool     `json:"success"`
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, []string{
		"Pharmacy name is required",
		"Contact person is required",
		"Phone number is required",
		"Email address is required",
	}, resp.Details)

	assert.Empty(t, m.sent, "invalid submissions must not reach the mailer")
}

func TestSubmitQuoteTooFast(t *testing.T) {
	m := &mockMailer{}
	router := newQuoteRouter(m, testConfig())

	payload := validPayload()
	payload["submission_time"] = time.Now().Add(-500 * time.Millisecond).UnixMilli()
	w := postQuote(router, payload, "203.0.113.10")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Submission rejected")
	// The generic rejection must not reveal the timing heuristic
	assert.NotContains(t, strings.ToLower(w.Body.String()), "fast")
	assert.Empty(t, m.sent)
}

func TestSubmitQuoteHoneypot(t *testing.T) {
	m := &mockMailer{}
	router := newQuoteRouter(m, testConfig())

	// Autofill noise is tolerated
	payload := validPayload()
	payload["company_website"] = "https://"
	w := postQuote(router, payload, "203.0.113.10")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A spam-looking honeypot value is rejected with the generic body
	payload = validPayload()
	payload["company_website"] = "buy-cheap-pills-now"
	w = postQuote(router, payload, "203.0.113.11")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Submission rejected")
	assert.NotContains(t, strings.ToLower(w.Body.String()), "honeypot")
	assert.NotContains(t, strings.ToLower(w.Body.String()), "spam")
}

func TestSubmitQuoteSpamHeuristics(t *testing.T) {
	m := &mockMailer{}
	router := newQuoteRouter(m, testConfig())

	payload := validPayload()
	payload["message"] = "check http://a.example http://b.example http://c.example"
	w := postQuote(router, payload, "203.0.113.10")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Submission rejected")
	assert.Empty(t, m.sent)
}

func TestSubmitQuoteLegacyVolumeField(t *testing.T) {
	m := &mockMailer{}
	router := newQuoteRouter(m, testConfig())

	payload := validPayload()
	delete(payload, "weekly_scripts")
	payload["monthly_scripts"] = "100-to-500"
	w := postQuote(router, payload, "203.0.113.10")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, m.sent, 1)
	assert.Equal(t, "100 to 500", m.sent[0].Volume.Display)
}

func TestSubmitQuoteTransportFailure(t *testing.T) {
	m := &mockMailer{err: &mailer.TransportError{Op: "dial", Err: context.DeadlineExceeded}}
	cfg := testConfig()
	router := newQuoteRouter(m, cfg)

	w := postQuote(router, validPayload(), "203.0.113.10")

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Success     bool   `json:"success"`
		Error       string `json:"error"`
		ContactInfo string `json:"contactInfo"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, cfg.FallbackContact, resp.ContactInfo)
	// The raw transport error never leaks to the client
	assert.NotContains(t, w.Body.String(), "dial")
}

func TestSubmitQuoteRateLimited(t *testing.T) {
	m := &mockMailer{}
	router := newQuoteRouter(m, testConfig())

	var statuses []int
	for i := 0; i < 6; i++ {
		w := postQuote(router, validPayload(), "203.0.113.10")
		statuses = append(statuses, w.Code)
	}

	assert.Equal(t, []int{200, 200, 200, 429, 429, 429}, statuses)
	assert.Len(t, m.sent, 3, "blocked requests must not reach the mailer")
}

func TestSubmitQuoteMalformedBody(t *testing.T) {
	m := &mockMailer{}
	router := newQuoteRouter(m, testConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.10:51234"
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, m.sent)
}
