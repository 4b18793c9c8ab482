package api

import (
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	commonerrors "onboarding-intake/internal/common/errors"
	"onboarding-intake/internal/common/logger"
)

// CORSOptions decides which browser origins may call the API.
// Production allows only AllowedOrigins; elsewhere every origin is echoed back.
type CORSOptions struct {
	AllowedOrigins []string
	Production     bool
}

func (o CORSOptions) allows(origin string) bool {
	if !o.Production {
		return true
	}
	return slices.Contains(o.AllowedOrigins, origin)
}

func CORS(opts CORSOptions, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !opts.allows(origin) {
			commonerrors.WriteJSON(w, http.StatusForbidden, map[string]string{"error": "Not allowed by CORS"})
			return
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Add("Vary", "Origin")

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func LoggingMiddleware(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if strings.HasPrefix(r.URL.Path, "/metrics") {
			return
		}
		log.Info("Completed request", map[string]interface{}{
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    rec.status,
			"latencyMs": time.Since(begin).Milliseconds(),
		})
	})
}

func RecoveryMiddleware(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				log.Error("Recovered from panic", map[string]interface{}{
					"panic":       rvr,
					"method":      r.Method,
					"path":        r.URL.Path,
					"stack_trace": string(debug.Stack()),
				})
				commonerrors.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
					"success": false,
					"message": "Internal server error",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
