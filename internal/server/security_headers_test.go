package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/VirtualStore_Go/internal/testing/storetest"
)

var expectedSecurityHeaders = map[string]string{
	HeaderContentType:    HeaderValueNoSniff,
	HeaderFrameOptions:   HeaderValueSameOrigin,
	HeaderXSSProtection:  HeaderValueXSSBlock,
	HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
}

func assertSecurityHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	for header, want := range expectedSecurityHeaders {
		assert.Equal(t, want, rec.Header().Get(header), header)
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := SecurityHeadersMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assertSecurityHeaders(t, rec)
}

// Headers are set before auth runs, so rejected and unknown requests carry them too
func TestRouter_SecurityHeadersOnEveryResponse(t *testing.T) {
	r := newTestRouter(t)

	t.Run("store read", func(t *testing.T) {
		rec := do(t, r, "GET", "/api/v1/store/balance/"+storetest.Coin, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assertSecurityHeaders(t, rec)
	})

	t.Run("missing api key", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/store/give", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assertSecurityHeaders(t, rec)
	})

	t.Run("unknown item", func(t *testing.T) {
		rec := do(t, r, "GET", "/api/v1/store/items/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assertSecurityHeaders(t, rec)
	})
}
