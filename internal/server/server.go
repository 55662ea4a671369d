// Package server provides the HTTP server for the handrunner game.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/handrunner/internal/app"
	"github.com/ayusman/handrunner/internal/score"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	App       *app.App
	Scores    *score.Recorder
}

// Server represents the HTTP server for the handrunner application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scores", s.handleScores)

	if s.config.App != nil {
		gameHandler := NewGameHandler(s.config.App, s.config.Scores)
		s.mux.Handle("/api/game", gameHandler)

		// Register camera preview endpoint if the camera is running
		if cam := s.config.App.Camera(); cam != nil {
			s.mux.Handle("/api/stream", NewStreamHandler(cam))
		}
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	writeJSON(w, response)
}

// handleScores handles GET requests to /api/scores, returning the current
// high score board, best first.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	scores := []int{}
	best := 0
	if s.config.Scores != nil {
		scores = s.config.Scores.Top()
		best = s.config.Scores.Best()
	}

	writeJSON(w, map[string]interface{}{
		"scores": scores,
		"best":   best,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
