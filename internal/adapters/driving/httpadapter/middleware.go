package httpadapter

import (
	"log"
	"net/http"

	"github.com/gofrs/uuid/v5"
)

const requestIDHeader = "X-Request-Id"

func RequestSizeLimit(maxSize int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			r.Body = http.MaxBytesReader(w, r.Body, maxSize)
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID tags each request with a v7 uuid, echoed back in the
// response headers so a caller can correlate server logs. A caller
// supplied id is kept as-is.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		requestID := r.Header.Get(requestIDHeader)

		if requestID == "" {
			newUUID, err := uuid.NewV7()
			if err != nil {
				// id generation failing is not worth rejecting the request over
				log.Printf("WARN: could not generate request id: %v", err)
			} else {
				requestID = newUUID.String()
			}
		}

		if requestID != "" {
			r.Header.Set(requestIDHeader, requestID)
			w.Header().Set(requestIDHeader, requestID)
		}

		next.ServeHTTP(w, r)
	})
}
