package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/oklog/ulid/v2"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	// Webhook receives platform callbacks. Nil while the bot is still
	// connecting; the route then answers 200 so the platform keeps the
	// registration alive.
	Webhook http.Handler
	// AllowedOrigins enables CORS when non-empty.
	AllowedOrigins []string
	// StartedAt anchors the uptime reported by /health. Defaults to the
	// time the router is built.
	StartedAt time.Time
}

type healthResponse struct {
	OK     bool  `json:"ok"`
	Uptime int64 `json:"uptime"` // seconds since start
	TS     int64 `json:"ts"`     // unix milliseconds
}

// NewRouter creates the HTTP router with all routes registered.
func NewRouter(opts RouterOptions) http.Handler {
	startedAt := opts.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	r := chi.NewRouter()

	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         86400,
		}))
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Franky is running ✅"))
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(healthResponse{
			OK:     true,
			Uptime: int64(time.Since(startedAt).Seconds()),
			TS:     time.Now().UnixMilli(),
		})
	})

	webhook := normalizeWebhook(opts.Webhook)
	r.Post("/webhook", webhook)
	r.Post("/webhook/", webhook)

	return r
}

// normalizeWebhook wraps the platform webhook handler so the route always
// answers 200. The platform retries and eventually drops registrations on
// non-200 replies, and a handler error should not cause redelivery storms.
func normalizeWebhook(h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h == nil {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK: initializing"))
			return
		}

		rec := &bufferedResponse{header: make(http.Header), status: http.StatusOK}
		h.ServeHTTP(rec, r)

		if rec.status != http.StatusOK {
			slog.Warn("webhook handler returned non-200, normalizing",
				"status", rec.status,
				"body_preview", previewBytes(rec.body.Bytes(), 120),
			)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
			return
		}

		for k, vs := range rec.header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(rec.body.Bytes())
	}
}

// bufferedResponse captures a handler's reply instead of streaming it.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) { b.status = status }

func (b *bufferedResponse) Write(p []byte) (int, error) { return b.body.Write(p) }

func previewBytes(p []byte, n int) string {
	s := string(p)
	if len(s) > n {
		s = s[:n]
	}
	return s
}

// RequestLogger logs each request with a generated request id, exposed to
// clients via X-Request-Id.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ulid.Make().String()
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		slog.Info("http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
