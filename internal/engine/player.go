package engine

import "fmt"

// ClaimPayload is the effect-specific state stored on a claimed event,
// adornment or wonder (cards set aside, resources placed on it).
type ClaimPayload struct {
	Cards     []CardName `json:"cards,omitempty"`
	Resources Resources  `json:"resources,omitempty"`
}

// Player holds one player's state.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Resources Resources     `json:"resources"`
	Hand      []CardName    `json:"hand"` // order matters for reveals
	City      []*PlayedCard `json:"city"`
	Workers   int           `json:"workers"` // available, not placed
	Season    Season        `json:"season"`
	Status    PlayerStatus  `json:"status"`

	ClaimedEvents map[EventName]*ClaimPayload `json:"claimedEvents,omitempty"`
	Adornments    []AdornmentName             `json:"adornments,omitempty"`    // played
	AdornmentHand []AdornmentName             `json:"adornmentHand,omitempty"` // dealt, unplayed
	Wonders       []WonderName                `json:"wonders,omitempty"`
	TrainTickets  int                         `json:"trainTickets,omitempty"`
}

func NewPlayer(id, name string) *Player {
	return &Player{
		ID:            id,
		Name:          name,
		Resources:     Resources{},
		Workers:       workerAllotment(Winter),
		Season:        Winter,
		Status:        StatusActive,
		ClaimedEvents: map[EventName]*ClaimPayload{},
	}
}

// GainResources adds resources to the player's pool.
func (p *Player) GainResources(r Resources) {
	for k, v := range r {
		if v > 0 {
			p.Resources[k] += v
		}
	}
}

// SpendResources removes resources; errors before mutating anything
// if any count would go negative.
func (p *Player) SpendResources(r Resources) error {
	for k, v := range r {
		if p.Resources[k] < v {
			return fmt.Errorf("insufficient %s: have %d, need %d", k, p.Resources[k], v)
		}
	}
	for k, v := range r {
		p.Resources[k] -= v
	}
	return nil
}

// NumResource returns the held count of one kind.
func (p *Player) NumResource(t ResourceType) int {
	return p.Resources[t]
}

// AddToHand puts a card in hand, respecting the hand limit.
func (p *Player) AddToHand(c CardName) error {
	if len(p.Hand) >= HandLimit {
		return fmt.Errorf("hand is full (limit %d)", HandLimit)
	}
	p.Hand = append(p.Hand, c)
	return nil
}

// RemoveFromHand removes the first copy of c from hand.
func (p *Player) RemoveFromHand(c CardName) error {
	for i, h := range p.Hand {
		if h == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("card %s not in hand", c)
}

// HasInHand reports whether c is in hand.
func (p *Player) HasInHand(c CardName) bool {
	for _, h := range p.Hand {
		if h == c {
			return true
		}
	}
	return false
}

// OccupiedSlots counts used city slots; slot-sharing cards are free.
func (p *Player) OccupiedSlots() int {
	n := 0
	for _, pc := range p.City {
		if !pc.SharesSlot {
			n++
		}
	}
	return n
}

// HasInCity reports whether the player has played a card with this name.
func (p *Player) HasInCity(c CardName) bool {
	return p.FindInCity(c) != nil
}

// FindInCity returns the first played copy of c, or nil.
func (p *Player) FindInCity(c CardName) *PlayedCard {
	for _, pc := range p.City {
		if pc.Card == c {
			return pc
		}
	}
	return nil
}

// CityCard returns the played card at index idx, or nil.
func (p *Player) CityCard(idx int) *PlayedCard {
	if idx < 0 || idx >= len(p.City) {
		return nil
	}
	return p.City[idx]
}

// RemoveFromCity removes the played card at index idx.
func (p *Player) RemoveFromCity(idx int) (*PlayedCard, error) {
	pc := p.CityCard(idx)
	if pc == nil {
		return nil, fmt.Errorf("invalid city index %d", idx)
	}
	p.City = append(p.City[:idx], p.City[idx+1:]...)
	return pc, nil
}

// PlaceWorker consumes one available worker.
func (p *Player) PlaceWorker() error {
	if p.Workers <= 0 {
		return fmt.Errorf("no workers available")
	}
	p.Workers--
	return nil
}

// ReturnWorker gives one worker back, capped at the season allotment.
func (p *Player) ReturnWorker() {
	if p.Workers < workerAllotment(p.Season) {
		p.Workers++
	}
}

// TotalWorkers is the season-adjusted allotment.
func (p *Player) TotalWorkers() int {
	return workerAllotment(p.Season)
}
