// Package httpapi serves scoring results as a JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/huangsam/spacecap/core"
	"github.com/huangsam/spacecap/core/algo"
	"github.com/huangsam/spacecap/internal/contract"
	"github.com/huangsam/spacecap/internal/dataset"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	maxScoreBody    = 1 << 20
)

// Handler ties HTTP routes to the scoring engine.
type Handler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// NewRouter builds the API router. Every request works on a clone of baseCfg.
func NewRouter(baseCfg *contract.Config, mgr contract.CacheManager) http.Handler {
	h := &Handler{baseCfg: baseCfg, mgr: mgr}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	origins := baseCfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api/v1", func(ar chi.Router) {
		ar.Get("/rankings", h.Rankings)
		ar.Get("/countries/{id}", h.Breakdown)
		ar.Get("/compare", h.Compare)
		ar.Post("/score", h.Score)
		ar.Get("/weights", h.Weights)
		ar.Get("/tiers", h.Tiers)
	})
	return r
}

// Serve listens on cfg.ServeAddr until ctx is canceled, then shuts down gracefully.
func Serve(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	srv := &http.Server{
		Addr:              cfg.ServeAddr,
		Handler:           NewRouter(cfg, mgr),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("HTTP API listening", zap.String("addr", cfg.ServeAddr), zap.String("profile", cfg.ProfileName))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return eris.Wrap(err, "http server failed")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "http server shutdown failed")
		}
		return nil
	}
}

// requestLogger logs one line per request through the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			zap.L().Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// respondJSON writes data with the given status code.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		contract.LogWarn("Failed to encode response", err)
	}
}

// respondError maps engine errors to status codes.
func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusOf(err), map[string]string{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, core.ErrCountryNotFound):
		return http.StatusNotFound
	case errors.Is(err, algo.ErrTooFewCountries),
		errors.Is(err, algo.ErrDuplicateCountry),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNoDataset),
		errors.Is(err, dataset.ErrDatasetUnavailable),
		errors.Is(err, dataset.ErrInvalidDataset),
		errors.Is(err, dataset.ErrEmptyDataset):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
