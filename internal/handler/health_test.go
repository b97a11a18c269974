package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/VirtualStore_Go/internal/catalog"
	"github.com/osse101/VirtualStore_Go/internal/database/memory"
)

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	HandleHealthz().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
}

func TestHandleReadyz(t *testing.T) {
	t.Run("Ready", func(t *testing.T) {
		f := setup(t)

		w := httptest.NewRecorder()
		HandleReadyz(f.storage, f.catalog).ServeHTTP(w, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	})

	t.Run("Storage Unreachable", func(t *testing.T) {
		f := setup(t)
		pinger := &MockPinger{}
		pinger.On("Ping", mock.Anything).Return(context.DeadlineExceeded)

		w := httptest.NewRecorder()
		HandleReadyz(pinger, f.catalog).ServeHTTP(w, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
		assert.Contains(t, w.Body.String(), HealthMsgStorageFailed)
		pinger.AssertExpectations(t)
	})

	t.Run("Catalog Not Initialized", func(t *testing.T) {
		storage := memory.NewKeyValueStore()

		w := httptest.NewRecorder()
		HandleReadyz(storage, catalog.NewService(storage)).ServeHTTP(w, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), HealthMsgNotInitialized)
	})
}

func TestHandleVersion(t *testing.T) {
	f := setup(t)

	w := httptest.NewRecorder()
	HandleVersion(f.catalog).ServeHTTP(w, httptest.NewRequest("GET", "/version", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	info := decode[VersionInfo](t, w)
	assert.Equal(t, 1, info.CatalogVersion)
	assert.Equal(t, Version, info.Version)
}
