package middleware

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"awc/internal/metrics"
	"awc/internal/sessions"
)

// loginRedirect sends the visitor to the login page, keeping the page they
// wanted so login can bounce them back.
func loginRedirect(w http.ResponseWriter, r *http.Request) {
	q := url.Values{"redirectTo": {r.URL.Path}}
	http.Redirect(w, r, "/login?"+q.Encode(), http.StatusFound)
}

// AdminOnly wraps a single handler:
// r.Post("/path", middleware.AdminOnly(sm, handler))
func AdminOnly(sm *sessions.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sm.UserID(r); !ok {
			loginRedirect(w, r)
			return
		}
		next(w, r)
	}
}

// AdminOnlyMW is the chi-compatible flavor:
// g.Use(middleware.AdminOnlyMW(sm))
func AdminOnlyMW(sm *sessions.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := sm.UserID(r); !ok {
				loginRedirect(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Metrics records request counts and latency per route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(pattern, strconv.Itoa(ww.Status())).Inc()
		metrics.RequestDuration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
	})
}
