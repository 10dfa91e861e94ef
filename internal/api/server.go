// Package api exposes the profiler, recommendation engine, and session
// store over HTTP.
package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/wilson-adhikari/Insight-Bridge/internal/recommend"
	"github.com/wilson-adhikari/Insight-Bridge/internal/session"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Server wires the engine and session store into HTTP handlers.
type Server struct {
	engine *recommend.Engine
	store  *session.Store
}

// NewServer creates an API server. The store may be nil, in which case
// profiling results are returned but not persisted.
func NewServer(engine *recommend.Engine, store *session.Store) *Server {
	return &Server{engine: engine, store: store}
}

// ServeMux returns the API routes.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/profile", s.handleProfile)
	mux.HandleFunc("/charts/preview", s.handlePreview)
	mux.HandleFunc("/sessions", s.handleSessions)
	mux.HandleFunc("/config", s.handleConfig)
	return mux
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
