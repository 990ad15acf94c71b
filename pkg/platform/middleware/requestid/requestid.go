// Package requestid assigns every request an ID, echoed in X-Request-ID.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"nhi/pkg/requestcontext"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

// maxLength bounds caller-supplied IDs; longer values are replaced.
const maxLength = 128

// Middleware reuses a caller-supplied X-Request-ID or generates a UUID, sets it
// on the response and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" || len(requestID) > maxLength {
			requestID = uuid.NewString()
		}

		w.Header().Set(Header, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
