package pwa

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
)

// SecureHeaders applies the hardening headers to every response.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, h := range Headers {
			w.Header().Set(h.Key, h.Value)
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogging logs each request at debug level.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Debug("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Handler serves the built web app in dir. Unknown paths fall back to
// index.html for client-side routing.
func Handler(dir string, log *slog.Logger) http.Handler {
	root := os.DirFS(dir)
	fileServer := http.FileServerFS(root)

	r := chi.NewRouter()
	r.Use(RequestLogging(log))
	r.Use(SecureHeaders)

	r.Get("/"+ServiceWorkerFile, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Service-Worker-Allowed", "/")
		fileServer.ServeHTTP(w, req)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		name := path.Clean(req.URL.Path)[1:]
		if name == "" {
			name = "."
		}

		f, err := root.Open(name)
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, req)

			return
		}

		req.URL.Path = "/"
		fileServer.ServeHTTP(w, req)
	})

	return r
}
