package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"campaignapi/handlers"
	"campaignapi/payment"
)

// ---- concrete mock implementing payment.CheckoutProvider ----

type mockProvider struct {
	calls   int
	lastReq *payment.CheckoutRequest
	url     string
	err     error
	summary *payment.SessionSummary
}

func (m *mockProvider) CreateSession(ctx context.Context, req *payment.CheckoutRequest) (string, error) {
	m.calls++
	m.lastReq = req
	return m.url, m.err
}

func (m *mockProvider) SessionSummary(ctx context.Context, sessionID string) (*payment.SessionSummary, error) {
	if m.summary == nil {
		return nil, fmt.Errorf("no such session")
	}
	return m.summary, nil
}

func setupCheckoutRouter(p payment.CheckoutProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewCheckoutHandler(p)
	r.POST("/api/checkout", h.CreateCheckout)
	r.GET("/api/checkout/session", h.GetSessionSummary)
	return r
}

func checkoutBody(amount any, ctype string, recurring bool) []byte {
	payload := map[string]any{
		"amount":          amount,
		"isRecurring":     recurring,
		"contributorType": ctype,
		"formData": map[string]string{
			"firstName":  "Jane",
			"lastName":   "Doe",
			"email":      "jane@example.com",
			"phone":      "555-0100",
			"address":    "12 Court St",
			"city":       "Wilmington",
			"state":      "DE",
			"zip":        "19801",
			"employer":   "Acme LLP",
			"occupation": "Attorney",
		},
	}
	if ctype == "corporate" {
		payload["formData"] = map[string]string{
			"firstName":           "Jane",
			"lastName":            "Doe",
			"email":               "jane@example.com",
			"address":             "12 Court St",
			"city":                "Wilmington",
			"state":               "DE",
			"zip":                 "19801",
			"corporateName":       "Acme LLP",
			"corporateAuthorizer": "John Smith",
		}
	}
	b, _ := json.Marshal(payload)
	return b
}

func postCheckout(r *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCheckout_Success(t *testing.T) {
	p := &mockProvider{url: "https://checkout.stripe.com/pay/cs_test_123"}
	r := setupCheckoutRouter(p)

	w := postCheckout(r, checkoutBody(25, "individual", false))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", resp["url"])

	assert.Equal(t, 1, p.calls)
	assert.Equal(t, 25, p.lastReq.Amount)
	assert.Equal(t, "Advocate", p.lastReq.Tier)
	assert.False(t, p.lastReq.Recurring)
	assert.Equal(t, "Jane Doe", p.lastReq.Metadata["donor_name"])
}

func TestCreateCheckout_CorporateOverCap(t *testing.T) {
	p := &mockProvider{url: "https://checkout.stripe.com/pay/cs_test_123"}
	r := setupCheckoutRouter(p)

	w := postCheckout(r, checkoutBody(1500, "corporate", false))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// Rejected before any provider call is made.
	assert.Equal(t, 0, p.calls)
}

func TestCreateCheckout_CapBoundaries(t *testing.T) {
	cases := []struct {
		amount int
		ctype  string
		status int
	}{
		{2500, "individual", http.StatusOK},
		{2501, "individual", http.StatusBadRequest},
		{1000, "corporate", http.StatusOK},
		{1001, "corporate", http.StatusBadRequest},
		{0, "individual", http.StatusBadRequest},
	}
	for _, tc := range cases {
		p := &mockProvider{url: "https://checkout.example/session"}
		r := setupCheckoutRouter(p)
		w := postCheckout(r, checkoutBody(tc.amount, tc.ctype, false))
		assert.Equal(t, tc.status, w.Code, "amount=%d type=%s", tc.amount, tc.ctype)
		if tc.status != http.StatusOK {
			assert.Equal(t, 0, p.calls)
		}
	}
}

func TestCreateCheckout_UnknownContributorType(t *testing.T) {
	for _, ctype := range []string{"pac", "business", "", "Individual"} {
		p := &mockProvider{}
		r := setupCheckoutRouter(p)
		w := postCheckout(r, checkoutBody(25, ctype, false))
		assert.Equal(t, http.StatusBadRequest, w.Code, "type=%q", ctype)
		assert.Equal(t, 0, p.calls)
	}
}

func TestCreateCheckout_NonIntegerAmount(t *testing.T) {
	p := &mockProvider{}
	r := setupCheckoutRouter(p)

	w := postCheckout(r, checkoutBody(25.5, "individual", false))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, p.calls)
}

func TestCreateCheckout_MissingDisclosureField(t *testing.T) {
	body := checkoutBody(25, "individual", false)
	var payload map[string]any
	_ = json.Unmarshal(body, &payload)
	payload["formData"].(map[string]any)["employer"] = ""
	b, _ := json.Marshal(payload)

	p := &mockProvider{}
	r := setupCheckoutRouter(p)
	w := postCheckout(r, b)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, p.calls)
}

func TestCreateCheckout_ProviderUnconfigured(t *testing.T) {
	r := setupCheckoutRouter(nil)
	w := postCheckout(r, checkoutBody(25, "individual", false))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateCheckout_ProviderFailure(t *testing.T) {
	p := &mockProvider{err: fmt.Errorf("stripe: secret sauce exploded")}
	r := setupCheckoutRouter(p)

	w := postCheckout(r, checkoutBody(25, "individual", false))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Provider internals are never leaked to the client.
	assert.NotContains(t, w.Body.String(), "secret sauce")
}

func TestCreateCheckout_RecurringTierPassedThrough(t *testing.T) {
	p := &mockProvider{url: "https://checkout.example/session"}
	r := setupCheckoutRouter(p)

	w := postCheckout(r, checkoutBody(50, "individual", true))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, p.lastReq.Recurring)
	assert.Equal(t, "true", p.lastReq.Metadata["recurring"])
}

func TestGetSessionSummary(t *testing.T) {
	p := &mockProvider{summary: &payment.SessionSummary{Amount: 25, Tier: "Advocate", Recurring: false}}
	r := setupCheckoutRouter(p)

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/session?session_id=cs_test_123", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp payment.SessionSummary
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, 25, resp.Amount)
	assert.Equal(t, "Advocate", resp.Tier)

	// Missing session_id is a client error.
	req = httptest.NewRequest(http.MethodGet, "/api/checkout/session", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
