package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type requestIdKey struct{}

const requestIdHeader = "X-Request-Id"

// RequestId tags every request with an id (generated when the client didn't
// send one) and echoes it back, so log lines and responses correlate.
func RequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, id)
		ctx := context.WithValue(r.Context(), requestIdKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestId returns the request's id, or empty when the middleware didn't
// run.
func GetRequestId(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey{}).(string)
	return id
}
