package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	legacychat "github.com/tymeless/legacychat"
	"github.com/tymeless/legacychat/internal/mylog"
)

// Server exposes the conversation pipeline over HTTP. Persona replies are
// delivered as server-sent events so the client can render partial replies.
type Server struct {
	app    *legacychat.App
	logger *mylog.Logger
	http   *http.Server
}

func New(app *legacychat.App, logger *mylog.Logger, addr string) *Server {
	s := &Server{
		app:    app,
		logger: logger,
	}

	router := mux.NewRouter()
	s.registerRoutes(router.PathPrefix("/api").Subrouter())

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.PrintRecoveryStack(true),
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
	)

	s.http = &http.Server{
		Addr:    addr,
		Handler: cors(recovery(s.logRequests(router))),

		// WriteTimeout stays unset: message streams are long-lived.
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
