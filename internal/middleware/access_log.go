package middleware

import (
	"net/http"
	"time"

	"tucing-suites-calendar/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// HTTPObserver recibe una observación por request (metrics.Metrics lo implementa).
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// AccessLog loguea cada request con su request id y, si obs != nil, la registra
// bajo el patrón de ruta de chi (no el path crudo).
func AccessLog(log logger.Logger, obs HTTPObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			if obs != nil {
				obs.ObserveHTTP(r.Method, route, status, elapsed)
			}

			fields := map[string]any{
				"request_id":  chimw.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"route":       route,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": elapsed.Milliseconds(),
			}
			if status >= http.StatusInternalServerError {
				log.Error("http request", fields)
				return
			}
			log.Info("http request", fields)
		})
	}
}
