package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"campaignapi/handlers"
	"campaignapi/store"
)

func setupNewsletterRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewNewsletterHandler(store.NewNewsletter(nil))
	r.POST("/api/newsletter", h.Subscribe)
	r.GET("/api/newsletter", h.Count)
	return r
}

func TestNewsletterSubscribe_InvalidEmail(t *testing.T) {
	r := setupNewsletterRouter()
	for _, email := range []string{"", "nope", "no@tld"} {
		b, _ := json.Marshal(map[string]string{"email": email})
		req := httptest.NewRequest(http.MethodPost, "/api/newsletter", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "email=%q", email)
	}
}

func TestNewsletterSubscribe_UnconfiguredStore(t *testing.T) {
	r := setupNewsletterRouter()
	b, _ := json.Marshal(map[string]string{"email": "jane@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/newsletter", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNewsletterCount_UnconfiguredStore(t *testing.T) {
	r := setupNewsletterRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/newsletter", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count": 0}`, w.Body.String())
}
