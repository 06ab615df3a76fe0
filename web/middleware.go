package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"house-prices/utils"
)

type ctxKey struct{}

// withRequestID tags each request with an ID, echoes it in X-Request-ID and
// makes a logger carrying it available to handlers.
func withRequestID(logger *utils.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		log := logger.With(id)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, log)))
		log.Debug("[web] %s %s done in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func loggerFrom(ctx context.Context, fallback *utils.Logger) *utils.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*utils.Logger); ok {
		return l
	}
	return fallback
}
