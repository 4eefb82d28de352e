package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"evergrove/internal/config"
	"evergrove/internal/lobby"
	qr "evergrove/internal/qrcode"
	"evergrove/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	mu       sync.Mutex
	LobbyMgr *lobby.Manager
	Hubs     map[string]*Hub

	cfg   *config.Config
	log   *zap.Logger
	store store.Store
}

func NewHandlers(cfg *config.Config, st store.Store, log *zap.Logger) *Handlers {
	return &Handlers{
		LobbyMgr: lobby.NewManager(),
		Hubs:     make(map[string]*Hub),
		cfg:      cfg,
		log:      log,
		store:    st,
	}
}

// HandleCreateGame creates a new game lobby and returns its ID and
// join URL.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	gameID := h.LobbyMgr.Create()
	lob := h.LobbyMgr.Get(gameID)
	hub := NewHub(gameID, lob, h.cfg.Expansion, h.store, h.log)

	h.mu.Lock()
	h.Hubs[gameID] = hub
	h.mu.Unlock()
	go hub.Run()

	h.log.Info("game created", zap.String("game", gameID))
	writeJSON(w, map[string]string{
		"game_id":  gameID,
		"join_url": h.joinURL(r, gameID),
	})
}

// HandleResume rebuilds a hub from a stored snapshot, so a game
// survives server restarts.
func (h *Handlers) HandleResume(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	_, running := h.Hubs[gameID]
	h.mu.Unlock()
	if running {
		writeJSON(w, map[string]string{"game_id": gameID, "status": "running"})
		return
	}

	snap, err := h.store.Load(r.Context(), gameID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("snapshot load failed", zap.String("game", gameID), zap.Error(err))
		http.Error(w, "snapshot load failed", http.StatusInternalServerError)
		return
	}

	hub, err := NewHubFromSnapshot(gameID, snap, h.store, h.log)
	if err != nil {
		h.log.Error("restore failed", zap.String("game", gameID), zap.Error(err))
		http.Error(w, "restore failed", http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	h.Hubs[gameID] = hub
	h.mu.Unlock()
	go hub.Run()

	h.log.Info("game resumed", zap.String("game", gameID))
	writeJSON(w, map[string]string{"game_id": gameID, "status": "resumed"})
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	png, err := qr.JoinLink(h.joinURL(r, gameID), size)
	if err != nil {
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	playerID := r.URL.Query().Get("player")
	clientType := r.URL.Query().Get("type") // "tv" or "player"

	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	hub, ok := h.Hubs[gameID]
	h.mu.Unlock()
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}

	ct := ClientPlayer
	if clientType == "tv" {
		ct = ClientTV
	}

	client := NewClient(hub, conn, playerID, ct)
	hub.register <- client

	go client.WritePump()
	go client.ReadPump()
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"player_id": uuid.NewString()})
}

func (h *Handlers) joinURL(r *http.Request, gameID string) string {
	base := h.cfg.PublicURL
	if base == "" {
		base = "http://" + r.Host
	}
	return fmt.Sprintf("%s/join?game=%s", base, gameID)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
