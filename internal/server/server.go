package server

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"evergrove/internal/config"
	"evergrove/internal/store"
)

// Server ties together HTTP routing and WebSocket handling.
type Server struct {
	handlers *Handlers
	cfg      *config.Config
	log      *zap.Logger
}

func New(cfg *config.Config, st store.Store, log *zap.Logger) *Server {
	return &Server{
		handlers: NewHandlers(cfg, st, log),
		cfg:      cfg,
		log:      log,
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/create", s.handlers.HandleCreateGame)
	mux.HandleFunc("/api/resume", s.handlers.HandleResume)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/api/player-id", s.handlers.HandlePlayerID)
	mux.HandleFunc("/ws", s.handlers.HandleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.log.Info("server listening",
		zap.String("addr", addr),
		zap.Bool("expansion", s.cfg.Expansion))
	return http.ListenAndServe(addr, mux)
}
