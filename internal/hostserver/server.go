// Package hostserver implements the small ops HTTP surface a running
// ec4xd host exposes alongside its Nostr-relay event processing: a
// liveness probe and a status page. The player-facing API travels over
// the signed wire events of internal/wireproto, not HTTP — this surface
// exists only for operators and orchestration health checks.
package hostserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gorilla/handlers"

	"github.com/greenm01/ec4x/internal/logger"
)

// ErrUnexpectedServeError indicates the HTTP listener died for a reason
// other than a graceful shutdown.
var ErrUnexpectedServeError = fmt.Errorf("unexpected error occurred while serving http requests")

// ErrServerShutdownError indicates the listener failed to shut down
// within the grace period.
var ErrServerShutdownError = fmt.Errorf("unexpected error occurred while shutting down the server")

// StatusProvider reports the minimal data the /status endpoint needs.
// cmd/ec4xd's daemonStatus implements this so hostserver stays
// decoupled from the engine.
type StatusProvider interface {
	ActiveGames() int
	Version() string
}

// Server is the ops HTTP listener. It wraps the teacher's
// listen-then-wait-for-SIGINT-then-gracefully-shutdown shape
// (internal/routes/server.go) around a fixed two-route mux instead of
// the teacher's full REST API, since the player surface is out of scope
// for HTTP here.
type Server struct {
	port   int
	log    logger.Logger
	status StatusProvider

	mu     sync.Mutex
	server *http.Server
}

// NewServer builds a Server bound to port, reporting status through the
// given StatusProvider.
func NewServer(port int, log logger.Logger, status StatusProvider) *Server {
	return &Server{port: port, log: log, status: status}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Version     string `json:"version"`
		ActiveGames int    `json:"active_games"`
	}{
		Version:     s.status.Version(),
		ActiveGames: s.status.ActiveGames(),
	})
}

// Serve starts the HTTP listener and blocks until SIGINT, then shuts it
// down gracefully. Requests are wrapped in gorilla/handlers' combined
// logging middleware, same as the teacher wraps its router in CORS.
func (s *Server) Serve() error {
	s.mu.Lock()
	if s.server != nil {
		s.mu.Unlock()
		panic(fmt.Errorf("hostserver: Serve called while already running"))
	}
	logged := handlers.CombinedLoggingHandler(os.Stdout, s.routes())
	server := &http.Server{Addr: fmt.Sprintf(":%d", s.port), Handler: logged}
	s.server = server
	s.mu.Unlock()

	var serveErr error
	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Trace(logger.Error, "hostserver", fmt.Sprintf("caught unexpected error while serving requests: %v", rec))
				serveErr = ErrUnexpectedServeError
			}
			wg.Done()
			s.log.Trace(logger.Info, "hostserver", "server has stopped")
		}()

		s.log.Trace(logger.Info, "hostserver", fmt.Sprintf("server listening on port %d", s.port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
		s.log.Trace(logger.Error, "hostserver", fmt.Sprintf("caught unexpected error while shutting down server: %v", err))
		return ErrServerShutdownError
	}

	wg.Wait()
	return serveErr
}
