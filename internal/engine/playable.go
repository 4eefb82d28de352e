package engine

import "fmt"

// CheckFunc is an entity's legality check. It returns a descriptive
// error when the input is not legal right now, and must not mutate
// any state.
type CheckFunc func(g *Game, p *Player, in GameInput) error

// ResolveFunc executes an entity's effect. It may mutate player and
// game state, write to the game log, and push pending inputs.
type ResolveFunc func(g *Game, p *Player, in GameInput) ([]Event, error)

// PointsFunc computes an entity's end-game points for one player.
// It must be pure.
type PointsFunc func(g *Game, p *Player) int

// TriggerFunc fires after the owner plays any card (governance hooks).
type TriggerFunc func(g *Game, p *Player, played *PlayedCard) ([]Event, error)

// HelperDiscount describes a card that can be spent (or occupied) to
// reduce another card's cost.
type HelperDiscount struct {
	Wild         int          `json:"wild,omitempty"`     // up to N required units of any kind free
	Kind         ResourceType `json:"kind,omitempty"`     // one specific kind free...
	KindAmount   int          `json:"kindAmount,omitempty"` // ...up to this many units
	ForCritters  bool         `json:"forCritters,omitempty"`
	ForConstructions bool     `json:"forConstructions,omitempty"`
	Consumes     bool         `json:"consumes,omitempty"` // discard the helper after use
}

// CardDef is one card's static definition plus its effect callbacks.
type CardDef struct {
	Name     CardName
	Type     CardType
	Cost     Resources
	BaseVP   int
	Critter  bool // otherwise a construction
	Unique   bool // at most one copy per city
	NumInDeck int

	// AssociatedCard links a critter to the construction that can host
	// it for free (sharing the construction's slot).
	AssociatedCard CardName
	// PairsWith lets two named cards occupy a single slot together.
	PairsWith CardName
	// TakesNoSlot marks cards that never consume a city slot.
	TakesNoSlot bool
	// Open destinations admit other players' workers.
	Open bool
	// ExpansionOnly cards only enter the deck with the expansion.
	ExpansionOnly bool

	Check   CheckFunc
	Resolve ResolveFunc
	// PointsFn supplements BaseVP for prosperity-style scoring.
	PointsFn PointsFunc
	// OnCardPlayed fires after the owner plays any other card.
	OnCardPlayed TriggerFunc
	// Discount makes this card usable as a payment helper.
	Discount *HelperDiscount
}

// LocationDef is one worker-placement spot.
type LocationDef struct {
	Name          LocationName
	Occupancy     Occupancy
	Basic         bool // copyable by copy-a-basic-location effects
	ExpansionOnly bool

	Check   CheckFunc
	Resolve ResolveFunc
}

// Capacity returns how many workers the location admits in total.
func (l *LocationDef) Capacity(numPlayers int) int {
	switch l.Occupancy {
	case Exclusive:
		return 1
	case ExclusiveFour:
		if numPlayers < 4 {
			return 1
		}
		return 2
	}
	return -1 // unlimited
}

// EventDef is a claimable event. Exactly one player may ever claim it.
type EventDef struct {
	Name EventName
	VP   int
	// RequiredType/RequiredCount gate basic events on city composition.
	RequiredType  CardType
	RequiredCount int
	// RequiredCards gate special events on specific played cards.
	RequiredCards []CardName
	ExpansionOnly bool

	Check   CheckFunc
	Resolve ResolveFunc
	// PointsFn scores the claim payload (stored cards/resources).
	PointsFn PointsFunc
}

// AdornmentDef is an expansion card played from the adornment hand for
// one pearl.
type AdornmentDef struct {
	Name AdornmentName

	Check    CheckFunc
	Resolve  ResolveFunc
	PointsFn PointsFunc
}

// WonderDef is an expansion monument claimed once per game.
type WonderDef struct {
	Name         WonderName
	Cost         Resources
	CardsToDiscard int
	VP           int

	Check   CheckFunc
	Resolve ResolveFunc
}

// Registry holds the immutable effect-definition tables, built once at
// startup and injected into NewGame. Tests swap in reduced registries.
type Registry struct {
	cards      map[CardName]*CardDef
	locations  map[LocationName]*LocationDef
	events     map[EventName]*EventDef
	adornments map[AdornmentName]*AdornmentDef
	wonders    map[WonderName]*WonderDef
}

func NewRegistry() *Registry {
	return &Registry{
		cards:      map[CardName]*CardDef{},
		locations:  map[LocationName]*LocationDef{},
		events:     map[EventName]*EventDef{},
		adornments: map[AdornmentName]*AdornmentDef{},
		wonders:    map[WonderName]*WonderDef{},
	}
}

func (r *Registry) RegisterCard(d *CardDef)           { r.cards[d.Name] = d }
func (r *Registry) RegisterLocation(d *LocationDef)   { r.locations[d.Name] = d }
func (r *Registry) RegisterEvent(d *EventDef)         { r.events[d.Name] = d }
func (r *Registry) RegisterAdornment(d *AdornmentDef) { r.adornments[d.Name] = d }
func (r *Registry) RegisterWonder(d *WonderDef)       { r.wonders[d.Name] = d }

func (r *Registry) Card(name CardName) (*CardDef, error) {
	d, ok := r.cards[name]
	if !ok {
		return nil, fmt.Errorf("unknown card %q", name)
	}
	return d, nil
}

func (r *Registry) Location(name LocationName) (*LocationDef, error) {
	d, ok := r.locations[name]
	if !ok {
		return nil, fmt.Errorf("unknown location %q", name)
	}
	return d, nil
}

func (r *Registry) Event(name EventName) (*EventDef, error) {
	d, ok := r.events[name]
	if !ok {
		return nil, fmt.Errorf("unknown event %q", name)
	}
	return d, nil
}

func (r *Registry) Adornment(name AdornmentName) (*AdornmentDef, error) {
	d, ok := r.adornments[name]
	if !ok {
		return nil, fmt.Errorf("unknown adornment %q", name)
	}
	return d, nil
}

func (r *Registry) Wonder(name WonderName) (*WonderDef, error) {
	d, ok := r.wonders[name]
	if !ok {
		return nil, fmt.Errorf("unknown wonder %q", name)
	}
	return d, nil
}

// Cards lists every card definition (deck construction, tests).
func (r *Registry) Cards() []*CardDef {
	out := make([]*CardDef, 0, len(r.cards))
	for _, d := range r.cards {
		out = append(out, d)
	}
	return out
}

// Locations lists every location definition.
func (r *Registry) Locations() []*LocationDef {
	out := make([]*LocationDef, 0, len(r.locations))
	for _, d := range r.locations {
		out = append(out, d)
	}
	return out
}

// Events lists every event definition.
func (r *Registry) Events() []*EventDef {
	out := make([]*EventDef, 0, len(r.events))
	for _, d := range r.events {
		out = append(out, d)
	}
	return out
}

// Adornments lists every adornment definition.
func (r *Registry) Adornments() []*AdornmentDef {
	out := make([]*AdornmentDef, 0, len(r.adornments))
	for _, d := range r.adornments {
		out = append(out, d)
	}
	return out
}

// Wonders lists every wonder definition.
func (r *Registry) Wonders() []*WonderDef {
	out := make([]*WonderDef, 0, len(r.wonders))
	for _, d := range r.wonders {
		out = append(out, d)
	}
	return out
}
