package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"evergrove/internal/engine"
	"evergrove/internal/engine/catalog"
	"evergrove/internal/lobby"
	"evergrove/internal/protocol"
	"evergrove/internal/store"
)

const persistTimeout = 5 * time.Second

// Hub manages WebSocket connections and game state for one game room.
type Hub struct {
	mu         sync.Mutex
	gameID     string
	lobby      *lobby.Lobby
	game       *engine.Game
	expansion  bool
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}

	log   *zap.Logger
	store store.Store
}

func NewHub(gameID string, lob *lobby.Lobby, expansion bool, st store.Store, log *zap.Logger) *Hub {
	return &Hub{
		gameID:     gameID,
		lobby:      lob,
		expansion:  expansion,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
		log:        log.With(zap.String("game", gameID)),
		store:      st,
	}
}

// NewHubFromSnapshot rebuilds a hub for a game restored from the store.
func NewHubFromSnapshot(gameID string, snap *engine.GameSnapshot, st store.Store, log *zap.Logger) (*Hub, error) {
	game, err := engine.Restore(catalog.Standard(), snap)
	if err != nil {
		return nil, err
	}
	lob := lobby.NewLobby(gameID)
	infos := make([]lobby.PlayerInfo, len(game.Players))
	for i, p := range game.Players {
		infos[i] = lobby.PlayerInfo{ID: p.ID, Name: p.Name}
	}
	lob.MarkStarted(infos)

	h := NewHub(gameID, lob, game.Options.Expansion, st, log)
	h.game = game
	return h, nil
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendLobbyUpdate()
			if h.game != nil {
				h.sendStateToClient(client)
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.quit:
			return
		}
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case protocol.MsgGameInput:
		h.handleGameInput(msg)
	default:
		h.sendError(msg.Client, fmt.Sprintf("unknown message type %q", msg.Envelope.Type))
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	msg.Client.PlayerID = join.PlayerID
	if err := h.lobby.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.log.Info("player joined", zap.String("player", join.PlayerID), zap.String("name", join.Name))
	h.sendLobbyUpdate()
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := msg.Envelope.Decode(&ready); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.lobby.SetReady(msg.Client.PlayerID, ready.Ready)
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	if h.game != nil {
		h.sendError(msg.Client, "game already started")
		return
	}
	if !h.lobby.CanStart() {
		h.sendError(msg.Client, "not all players ready")
		return
	}
	if err := h.lobby.Start(); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	lobbyPlayers := h.lobby.GetPlayers()
	players := make([]*engine.Player, len(lobbyPlayers))
	for i, lp := range lobbyPlayers {
		players[i] = engine.NewPlayer(lp.ID, lp.Name)
	}

	h.game = engine.NewGame(players, engine.GameOptions{Expansion: h.expansion}, catalog.Standard())
	h.log.Info("game started",
		zap.Int("players", len(players)),
		zap.Bool("expansion", h.expansion))

	h.persist()
	h.broadcastState()
}

func (h *Hub) handleGameInput(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, "game not started")
		return
	}

	in, err := decodeGameInput(msg.Envelope.Payload)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	events, err := h.game.Next(msg.Client.PlayerID, in)
	if err != nil {
		h.log.Debug("input rejected",
			zap.String("player", msg.Client.PlayerID),
			zap.String("input", string(in.Type)),
			zap.Error(err))
		h.sendError(msg.Client, err.Error())
		return
	}
	h.log.Info("input applied",
		zap.String("player", msg.Client.PlayerID),
		zap.String("input", string(in.Type)),
		zap.Int("events", len(events)))

	h.persist()
	h.broadcastEvents(events)
	h.broadcastState()
}

// decodeGameInput turns a raw JSON payload into a GameInput via a
// json-tagged mapstructure decoder, tolerating numeric types as sent
// by browsers.
func decodeGameInput(payload json.RawMessage) (engine.GameInput, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return engine.GameInput{}, fmt.Errorf("invalid payload")
	}
	var in engine.GameInput
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &in,
	})
	if err != nil {
		return engine.GameInput{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return engine.GameInput{}, fmt.Errorf("invalid payload: %v", err)
	}
	return in, nil
}

// persist writes a private snapshot to the store.
func (h *Hub) persist() {
	if h.game == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := h.store.Save(ctx, h.gameID, h.game.Snapshot(true)); err != nil {
		h.log.Error("snapshot save failed", zap.Error(err))
	}
}

func (h *Hub) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		env := protocol.MustEnvelope(protocol.MsgEvent, ev)
		h.broadcastAll(env)
	}
}

func (h *Hub) broadcastState() {
	if h.game == nil {
		return
	}
	h.mu.Lock()
	for client := range h.clients {
		h.sendStateToClient(client)
	}
	h.mu.Unlock()

	if h.game.Over {
		env := protocol.MustEnvelope(protocol.MsgGameOver, h.game.Scores)
		h.broadcastAll(env)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	if h.game == nil {
		return
	}
	if client.Type == ClientTV {
		env := protocol.MustEnvelope(protocol.MsgGameState, h.game.Snapshot(false))
		client.SendEnvelope(env)
		return
	}
	view := h.game.ViewFor(client.PlayerID)
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgPlayerState, view))

	// The active player also gets the pending choice, option sets
	// included, so the UI can render it directly.
	if view.IsMyTurn && len(h.game.Pending) > 0 {
		client.SendEnvelope(protocol.MustEnvelope(protocol.MsgPendingInput, h.game.Pending[0]))
	}
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready}
	}
	env := protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:  h.gameID,
		Players: lps,
		Started: h.lobby.Started,
	})
	h.broadcastAll(env)
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("broadcast marshal failed", zap.Error(err))
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.log.Warn("client buffer full", zap.String("player", client.PlayerID))
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message})
	client.SendEnvelope(env)
}
