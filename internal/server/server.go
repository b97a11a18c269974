package server

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/VirtualStore_Go/internal/handler"
	"github.com/osse101/VirtualStore_Go/internal/logger"
	"github.com/osse101/VirtualStore_Go/internal/metrics"
	"github.com/osse101/VirtualStore_Go/internal/sse"
	"github.com/osse101/VirtualStore_Go/internal/store"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct {
	httpServer *http.Server
	store      *store.Store
}

// NewServer creates a new Server exposing st over HTTP. Events reach clients
// through hub, which must already be subscribed to the store's bus.
func NewServer(opts Options, storage handler.Pinger, st *store.Store, hub *sse.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, storage, st, hub),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		store: st,
	}
}

// NewRouter builds the chi router; split out so tests can serve it directly
func NewRouter(opts Options, storage handler.Pinger, st *store.Store, hub *sse.Hub) chi.Router {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	limiter := NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(limiter, opts.TrustedProxies))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	cat := st.Catalog()
	inv := st.Inventory()

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(storage, cat))
	r.Get("/version", handler.HandleVersion(cat))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/store", func(r chi.Router) {
		r.Get("/items", handler.HandleListItems(cat))
		r.Get("/items/{itemID}", handler.HandleGetItem(cat))
		r.Get("/items/{itemID}/wire", handler.HandleGetItemWire(cat))
		r.Get("/products/{productID}", handler.HandleGetProduct(cat))
		r.Get("/categories", handler.HandleListCategories(cat))
		r.Get("/goods/{goodID}/category", handler.HandleGetCategoryOf(cat))
		r.Get("/goods/{goodID}/upgrades", handler.HandleGetUpgrades(cat))

		r.Get("/balance/{itemID}", handler.HandleGetBalance(inv))
		r.Post("/buy", handler.HandleBuy(inv))
		r.Post("/give", handler.HandleGive(inv))
		r.Post("/take", handler.HandleTake(inv))

		r.Post("/equip", handler.HandleEquip(inv))
		r.Post("/unequip", handler.HandleUnequip(inv))
		r.Get("/equipped/{goodID}", handler.HandleIsEquipped(inv))

		r.Post("/upgrade", handler.HandleUpgrade(inv))
		r.Post("/remove-upgrades", handler.HandleRemoveUpgrades(inv))
		r.Get("/upgrades/{goodID}/current", handler.HandleGetCurrentUpgrade(inv))

		r.Get("/non-consumables/{itemID}", handler.HandleNonConsumableExists(inv))
		r.Post("/non-consumables/{itemID}", handler.HandleAddNonConsumable(inv))
		r.Delete("/non-consumables/{itemID}", handler.HandleRemoveNonConsumable(inv))

		r.Route("/market", func(r chi.Router) {
			r.Post("/buy", handler.HandleMarketBuy(st))
			r.Post("/refresh", handler.HandleMarketRefresh(st))
			r.Post("/restore", handler.HandleMarketRestore(st))
			r.Get("/restore", handler.HandleMarketRestoreStatus(st))
			r.Post("/callback", handler.HandleMarketCallback(st))
			r.Get("/iab", handler.HandleIabStatus(st))
			r.Post("/iab/start", handler.HandleIabStart(st))
			r.Post("/iab/stop", handler.HandleIabStop(st))
		})

		r.Get("/events", sse.Handler(hub))
		r.Get("/events/ws", sse.WebSocketHandler(hub))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush lets the event stream push frames through the logging wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack lets the WebSocket upgrade take over the connection
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	rw.written = true
	rw.statusCode = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for probes and scrapes
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
