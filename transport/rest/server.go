package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/pkg/handlers"
)

type Server struct {
	srv *http.Server
}

// NewRouter - routes the game API to h.
func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", handlers.PingHandler)

	mux.HandleFunc("POST /games", h.CreateGame)
	mux.HandleFunc("GET /games/{id}", h.GetGame)
	mux.HandleFunc("DELETE /games/{id}", h.DeleteGame)
	mux.HandleFunc("POST /games/{id}/turn", h.MakeTurn)

	mux.HandleFunc("GET /scores/{owner}", h.GetScore)
	mux.HandleFunc("POST /analyze", h.Analyze)

	return mux
}

func NewServer(port string, h Handlers) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      NewRouter(h),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

func (that *Server) Start() error {
	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
