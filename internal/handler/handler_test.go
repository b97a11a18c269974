package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/osse101/VirtualStore_Go/internal/catalog"
	"github.com/osse101/VirtualStore_Go/internal/database/memory"
	"github.com/osse101/VirtualStore_Go/internal/event"
	"github.com/osse101/VirtualStore_Go/internal/inventory"
	"github.com/osse101/VirtualStore_Go/internal/testing/storetest"
)

type fixture struct {
	catalog   catalog.Service
	inventory inventory.Service
	storage   *memory.KeyValueStore
}

func setup(t *testing.T) *fixture {
	t.Helper()
	InitValidator()

	storage := memory.NewKeyValueStore()
	cat := catalog.NewService(storage)
	_, err := cat.Initialize(context.Background(), storetest.Assets(1))
	require.NoError(t, err)

	inv := inventory.NewService(cat, storage, "player-1", event.NewMemoryBus(), nil)
	return &fixture{catalog: cat, inventory: inv, storage: storage}
}

// serve routes a single request through a chi router so URL params resolve
func serve(t *testing.T, method, pattern, path string, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	r := chi.NewRouter()
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
