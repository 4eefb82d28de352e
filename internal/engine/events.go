package engine

// EventType identifies events emitted by the engine.
type EventType string

const (
	EvtWorkerPlaced    EventType = "worker_placed"
	EvtWorkerRecalled  EventType = "worker_recalled"
	EvtCardPlayed      EventType = "card_played"
	EvtCardDiscarded   EventType = "card_discarded"
	EvtCardsDrawn      EventType = "cards_drawn"
	EvtCardGiven       EventType = "card_given"
	EvtResourcesGained EventType = "resources_gained"
	EvtResourcesSpent  EventType = "resources_spent"
	EvtDestination     EventType = "destination_visited"
	EvtEventClaimed    EventType = "event_claimed"
	EvtWonderClaimed   EventType = "wonder_claimed"
	EvtAdornmentPlayed EventType = "adornment_played"
	EvtTrainTicket     EventType = "train_ticket_played"
	EvtSeasonChange    EventType = "season_change"
	EvtProduction      EventType = "production"
	EvtPendingInput    EventType = "pending_input"
	EvtTurnEnd         EventType = "turn_end"
	EvtPlayerFinished  EventType = "player_finished"
	EvtGameOver        EventType = "game_over"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type   EventType              `json:"type"`
	Player string                 `json:"player,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
}
