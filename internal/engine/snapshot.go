package engine

import "fmt"

// PlayerSnapshot is one player's serialized state. The public
// projection replaces hand contents with a count.
type PlayerSnapshot struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Resources Resources    `json:"resources"`
	HandSize  int          `json:"handSize"`
	Hand      []CardName   `json:"hand,omitempty"` // private only
	City      []*PlayedCard `json:"city"`
	Workers   int          `json:"workers"`
	Season    string       `json:"season"`
	Status    PlayerStatus `json:"status"`

	ClaimedEvents map[EventName]*ClaimPayload `json:"claimedEvents,omitempty"`
	Adornments    []AdornmentName             `json:"adornments,omitempty"`
	AdornmentHandSize int                     `json:"adornmentHandSize,omitempty"`
	AdornmentHand []AdornmentName             `json:"adornmentHand,omitempty"` // private only
	Wonders       []WonderName                `json:"wonders,omitempty"`
	TrainTickets  int                         `json:"trainTickets,omitempty"`
}

// GameSnapshot is a serializable projection of a Game. With private
// data included it reconstructs the exact state; the public projection
// hides deck order, discard content and hand contents.
type GameSnapshot struct {
	Players []PlayerSnapshot `json:"players"`

	DeckSize    int        `json:"deckSize"`
	Deck        []CardName `json:"deck,omitempty"` // private only
	DiscardSize int        `json:"discardSize"`
	Discard     []CardName `json:"discard,omitempty"` // private only
	Meadow      []CardName `json:"meadow"`

	Locations map[LocationName][]string `json:"locations"`
	Events    map[EventName]string      `json:"events"`
	Wonders   map[WonderName]string     `json:"wonders,omitempty"`

	ActivePlayer int          `json:"activePlayer"`
	Pending      []GameInput  `json:"pendingInputs,omitempty"`
	Log          []string     `json:"log"`
	Options      GameOptions  `json:"options"`
	Over         bool         `json:"over"`
	Scores       []ScoreEntry `json:"scores,omitempty"`
}

// Snapshot projects the game state. includePrivate selects between the
// full persistence/replay projection and the spectator-safe one.
func (g *Game) Snapshot(includePrivate bool) *GameSnapshot {
	s := &GameSnapshot{
		DeckSize:     g.Deck.Len(),
		DiscardSize:  g.Deck.DiscardLen(),
		Meadow:       append([]CardName(nil), g.Meadow...),
		Locations:    map[LocationName][]string{},
		Events:       map[EventName]string{},
		ActivePlayer: g.ActivePlayer,
		Pending:      append([]GameInput(nil), g.Pending...),
		Log:          append([]string(nil), g.Log...),
		Options:      g.Options,
		Over:         g.Over,
		Scores:       append([]ScoreEntry(nil), g.Scores...),
	}
	for name, workers := range g.Locations {
		s.Locations[name] = append([]string(nil), workers...)
	}
	for name, claimant := range g.Events {
		s.Events[name] = claimant
	}
	if len(g.Wonders) > 0 {
		s.Wonders = map[WonderName]string{}
		for name, claimant := range g.Wonders {
			s.Wonders[name] = claimant
		}
	}
	if includePrivate {
		s.Deck = append([]CardName(nil), g.Deck.draw...)
		s.Discard = append([]CardName(nil), g.Deck.discard...)
	}

	for _, p := range g.Players {
		ps := PlayerSnapshot{
			ID:        p.ID,
			Name:      p.Name,
			Resources: p.Resources.Clone(),
			HandSize:  len(p.Hand),
			Workers:   p.Workers,
			Season:    p.Season.String(),
			Status:    p.Status,
			Adornments:    append([]AdornmentName(nil), p.Adornments...),
			AdornmentHandSize: len(p.AdornmentHand),
			Wonders:       append([]WonderName(nil), p.Wonders...),
			TrainTickets:  p.TrainTickets,
		}
		for _, pc := range p.City {
			ps.City = append(ps.City, pc.clone())
		}
		if len(p.ClaimedEvents) > 0 {
			ps.ClaimedEvents = map[EventName]*ClaimPayload{}
			for name, payload := range p.ClaimedEvents {
				ps.ClaimedEvents[name] = &ClaimPayload{
					Cards:     append([]CardName(nil), payload.Cards...),
					Resources: payload.Resources.Clone(),
				}
			}
		}
		if includePrivate {
			ps.Hand = append([]CardName(nil), p.Hand...)
			ps.AdornmentHand = append([]AdornmentName(nil), p.AdornmentHand...)
		}
		s.Players = append(s.Players, ps)
	}
	return s
}

// Restore rebuilds a Game from a private snapshot and the registry the
// original game was created with.
func Restore(reg *Registry, s *GameSnapshot) (*Game, error) {
	if s.DeckSize > 0 && len(s.Deck) == 0 {
		return nil, fmt.Errorf("snapshot lacks private deck contents")
	}
	g := &Game{
		Deck:         newDeckFromSnapshot(s.Deck, s.Discard),
		Meadow:       append([]CardName(nil), s.Meadow...),
		Locations:    map[LocationName][]string{},
		Events:       map[EventName]string{},
		Wonders:      map[WonderName]string{},
		ActivePlayer: s.ActivePlayer,
		Pending:      append([]GameInput(nil), s.Pending...),
		Log:          append([]string(nil), s.Log...),
		Options:      s.Options,
		Over:         s.Over,
		Scores:       append([]ScoreEntry(nil), s.Scores...),
		reg:          reg,
	}
	for name, workers := range s.Locations {
		g.Locations[name] = append([]string(nil), workers...)
	}
	for name, claimant := range s.Events {
		g.Events[name] = claimant
	}
	for name, claimant := range s.Wonders {
		g.Wonders[name] = claimant
	}

	for _, ps := range s.Players {
		p := NewPlayer(ps.ID, ps.Name)
		p.Resources = ps.Resources.Clone()
		p.Hand = append([]CardName(nil), ps.Hand...)
		p.Workers = ps.Workers
		p.Season = parseSeason(ps.Season)
		p.Status = ps.Status
		p.Adornments = append([]AdornmentName(nil), ps.Adornments...)
		p.AdornmentHand = append([]AdornmentName(nil), ps.AdornmentHand...)
		p.Wonders = append([]WonderName(nil), ps.Wonders...)
		p.TrainTickets = ps.TrainTickets
		for _, pc := range ps.City {
			p.City = append(p.City, pc.clone())
		}
		for name, payload := range ps.ClaimedEvents {
			p.ClaimedEvents[name] = &ClaimPayload{
				Cards:     append([]CardName(nil), payload.Cards...),
				Resources: payload.Resources.Clone(),
			}
		}
		g.Players = append(g.Players, p)
	}
	return g, nil
}

func parseSeason(name string) Season {
	for s, n := range seasonNames {
		if n == name {
			return s
		}
	}
	return Winter
}

// PlayerView is the state one seated player is allowed to see: the
// public projection plus their own hidden cards.
type PlayerView struct {
	*GameSnapshot
	Hand          []CardName      `json:"hand"`
	AdornmentHand []AdornmentName `json:"adornmentHand,omitempty"`
	IsMyTurn      bool            `json:"isMyTurn"`
}

// ViewFor builds the per-player projection.
func (g *Game) ViewFor(playerID string) PlayerView {
	v := PlayerView{GameSnapshot: g.Snapshot(false)}
	p := g.GetPlayer(playerID)
	if p == nil {
		return v
	}
	v.Hand = append([]CardName(nil), p.Hand...)
	v.AdornmentHand = append([]AdornmentName(nil), p.AdornmentHand...)
	v.IsMyTurn = g.Active() == p && !g.Over
	return v
}
