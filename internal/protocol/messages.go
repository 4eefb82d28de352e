package protocol

// Message types: Server → Client
const (
	MsgLobbyUpdate  = "lobby_update"
	MsgGameState    = "game_state"    // spectator-safe projection
	MsgPlayerState  = "player_state"  // per-player projection
	MsgPendingInput = "pending_input" // next choice the active player owes
	MsgEvent        = "event"
	MsgGameOver     = "game_over"
	MsgError        = "error"
)

// Message types: Client → Server
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgStartGame = "start_game"
	// Every in-game message carries a single GameInput payload.
	MsgGameInput = "game_input"
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID  string        `json:"game_id"`
	Players []LobbyPlayer `json:"players"`
	Started bool          `json:"started"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

// JoinMsg is sent by a player to join the game.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
