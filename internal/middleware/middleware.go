package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hws_news/internal/logger"
	"hws_news/internal/metrics"
)

const (
	// RequestIDHeader - имя заголовка с ID запроса
	RequestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware добавляет ID запроса в каждый запрос и ответ
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(RequestIDHeader, requestID)
		}
		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware логирует каждый запрос и учитывает его в m
func LoggingMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			pattern := r.Pattern
			if pattern == "" {
				pattern = "unmatched"
			}
			m.ObserveRequest(pattern, rw.statusCode)
			logger.Log.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rw.statusCode,
				"duration":    time.Since(start),
				"request_id":  r.Header.Get(RequestIDHeader),
				"remote_addr": r.RemoteAddr,
			}).Info("Request processed")
		})
	}
}

// responseWriter запоминает код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader сохраняет код ответа перед записью
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
