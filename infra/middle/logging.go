package middle

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/payfront/payfront/infra/opensearch"
)

// statusWriter wraps http.ResponseWriter to capture the response status and
// the error message, if any, of an error-shaped body.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
	firstChunk []byte
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.firstChunk == nil {
		sw.firstChunk = append([]byte(nil), b...)
	}
	return sw.ResponseWriter.Write(b)
}

func (sw *statusWriter) WriteHeader(statusCode int) {
	sw.statusCode = statusCode
	sw.ResponseWriter.WriteHeader(statusCode)
}

// DispatchLoggingMiddleware ships one document per request to OpenSearch,
// asynchronously, so indexing latency never blocks the response.
func DispatchLoggingMiddleware(osLogger *opensearch.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
				r.Header.Set("X-Request-ID", requestID)
			}

			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			entry := opensearch.DispatchLog{
				Timestamp:        start,
				RequestID:        requestID,
				Method:           r.Method,
				Path:             r.URL.Path,
				StatusCode:       sw.statusCode,
				ProcessingTimeMs: time.Since(start).Milliseconds(),
				ClientIP:         GetClientIP(r),
				UserAgent:        r.UserAgent(),
			}
			if sw.statusCode >= 400 {
				entry.Error = extractErrorMessage(sw.firstChunk)
			}

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				// Indexing failures never fail the request.
				_ = osLogger.LogDispatch(ctx, entry)
			}()
		})
	}
}

// extractErrorMessage pulls the sanitized message from an error-shaped body.
func extractErrorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errBody); err != nil {
		return ""
	}
	return errBody.Error
}
