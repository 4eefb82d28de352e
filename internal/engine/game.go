package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotYourTurn    = errors.New("not your turn")
	ErrInvalidInput   = errors.New("invalid input")
	ErrPlayerNotFound = errors.New("player not found")
	ErrGameOver       = errors.New("game is over")
	ErrAlreadyClaimed = errors.New("already claimed")
)

// GameOptions holds game-creation flags.
type GameOptions struct {
	// Expansion enables pearls, adornments, wonders and train tickets.
	Expansion bool `json:"expansion"`
}

// Game holds the entire game state. One Game instance serves one match;
// callers must serialize Next calls for the same instance.
type Game struct {
	Players []*Player `json:"players"`
	Deck    *Deck     `json:"-"`
	Meadow  []CardName `json:"meadow"`

	// Locations maps each location to the player IDs of placed workers.
	Locations map[LocationName][]string `json:"locations"`
	// Events maps each claimable event to its claimant ("" = unclaimed).
	Events map[EventName]string `json:"events"`
	// Wonders maps each wonder to its claimant.
	Wonders map[WonderName]string `json:"wonders,omitempty"`

	ActivePlayer int         `json:"activePlayer"`
	Pending      []GameInput `json:"pendingInputs"`
	Log          []string    `json:"log"`
	Options      GameOptions `json:"options"`

	Over   bool         `json:"over"`
	Scores []ScoreEntry `json:"scores,omitempty"`

	reg *Registry
}

// NewGame creates a game: builds the deck from the registry, deals
// opening hands (5 + seat-order cards each), fills the meadow and
// seeds the location/event tables.
func NewGame(players []*Player, opts GameOptions, reg *Registry) *Game {
	g := &Game{
		Players:   players,
		Locations: map[LocationName][]string{},
		Events:    map[EventName]string{},
		Wonders:   map[WonderName]string{},
		Options:   opts,
		reg:       reg,
	}

	var pool []CardName
	for _, d := range reg.Cards() {
		if d.ExpansionOnly && !opts.Expansion {
			continue
		}
		n := d.NumInDeck
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			pool = append(pool, d.Name)
		}
	}
	g.Deck = NewDeck(pool)

	for i, p := range g.Players {
		for _, c := range g.Deck.Draw(5 + i) {
			p.Hand = append(p.Hand, c)
		}
		if opts.Expansion {
			p.TrainTickets = 1
		}
	}

	for _, l := range reg.Locations() {
		if l.ExpansionOnly && !opts.Expansion {
			continue
		}
		g.Locations[l.Name] = []string{}
	}
	for _, e := range reg.Events() {
		if e.ExpansionOnly && !opts.Expansion {
			continue
		}
		g.Events[e.Name] = ""
	}
	if opts.Expansion {
		for _, w := range reg.Wonders() {
			g.Wonders[w.Name] = ""
		}
		g.dealAdornments()
	}

	g.replenishMeadow()
	return g
}

func (g *Game) dealAdornments() {
	all := g.reg.Adornments()
	i := 0
	for _, p := range g.Players {
		for n := 0; n < 2 && i < len(all); n++ {
			p.AdornmentHand = append(p.AdornmentHand, all[i].Name)
			i++
		}
	}
}

// Next is the single authoritative entry point: it translates one
// GameInput into the next game state. On error the state is unchanged
// for that call; the caller retries with a corrected input.
func (g *Game) Next(playerID string, in GameInput) ([]Event, error) {
	if g.Over {
		return nil, ErrGameOver
	}
	p := g.GetPlayer(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	if p != g.Active() {
		return nil, ErrNotYourTurn
	}

	if len(g.Pending) > 0 {
		events, err := g.resolvePending(p, in)
		if err != nil {
			return nil, err
		}
		return g.afterInput(p, events), nil
	}
	if in.Type.isFollowUp() {
		return nil, fmt.Errorf("%w: no pending input expects %s", ErrInvalidInput, in.Type)
	}

	var (
		events []Event
		err    error
	)
	switch in.Type {
	case InputPlaceWorker:
		events, err = g.placeWorker(p, in)
	case InputPlayCard:
		events, err = g.playCard(p, in)
	case InputVisitDestination:
		events, err = g.visitDestination(p, in)
	case InputClaimEvent:
		events, err = g.claimEvent(p, in)
	case InputClaimWonder:
		events, err = g.claimWonder(p, in)
	case InputPlayAdornment:
		events, err = g.playAdornment(p, in)
	case InputPlayTrainTicket:
		events, err = g.playTrainTicket(p, in)
	case InputPrepareForSeason:
		events, err = g.prepareForSeason(p)
	case InputGameEnd:
		events, err = g.endForPlayer(p)
	default:
		return nil, fmt.Errorf("%w: unknown input type %q", ErrInvalidInput, in.Type)
	}
	if err != nil {
		return nil, err
	}
	return g.afterInput(p, events), nil
}

// afterInput runs auto-advance on any freshly pushed pending entries
// and rotates the turn once the queue is empty.
func (g *Game) afterInput(p *Player, events []Event) []Event {
	events = append(events, g.autoAdvance(p)...)
	if len(g.Pending) == 0 && !g.Over {
		events = append(events, g.advanceTurn()...)
	}
	return events
}

// advanceTurn passes the active seat to the next player still playing.
func (g *Game) advanceTurn() []Event {
	events := []Event{{Type: EvtTurnEnd, Player: g.Players[g.ActivePlayer].ID}}
	for i := 1; i <= len(g.Players); i++ {
		idx := (g.ActivePlayer + i) % len(g.Players)
		if g.Players[idx].Status == StatusActive {
			g.ActivePlayer = idx
			return events
		}
	}
	// Nobody left: score the game.
	events = append(events, g.finishGame()...)
	return events
}

// Active returns the player whose turn it is.
func (g *Game) Active() *Player {
	return g.Players[g.ActivePlayer]
}

// GetPlayer finds a player by ID.
func (g *Game) GetPlayer(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerIDs returns all player IDs, optionally excluding one.
func (g *Game) PlayerIDs(exclude string) []string {
	var out []string
	for _, p := range g.Players {
		if p.ID != exclude {
			out = append(out, p.ID)
		}
	}
	return out
}

// Registry definition lookups for effect callbacks.

func (g *Game) CardDef(name CardName) (*CardDef, error)           { return g.reg.Card(name) }
func (g *Game) LocationDef(name LocationName) (*LocationDef, error) { return g.reg.Location(name) }
func (g *Game) EventDef(name EventName) (*EventDef, error)        { return g.reg.Event(name) }
func (g *Game) AdornmentDef(name AdornmentName) (*AdornmentDef, error) { return g.reg.Adornment(name) }
func (g *Game) WonderDef(name WonderName) (*WonderDef, error)     { return g.reg.Wonder(name) }

// ---- worker placement ----

// CanPlaceWorker returns nil iff p may place a worker on the location.
func (g *Game) CanPlaceWorker(p *Player, name LocationName) error {
	def, err := g.reg.Location(name)
	if err != nil {
		return err
	}
	workers, ok := g.Locations[name]
	if !ok {
		return fmt.Errorf("location %s is not in this game", name)
	}
	if p.Workers <= 0 {
		return fmt.Errorf("no workers available")
	}
	if cap := def.Capacity(len(g.Players)); cap >= 0 && len(workers) >= cap {
		return fmt.Errorf("location %s is fully occupied (%s)", name, def.Occupancy)
	}
	if def.Check != nil {
		return def.Check(g, p, GameInput{Type: InputPlaceWorker, Location: name})
	}
	return nil
}

func (g *Game) placeWorker(p *Player, in GameInput) ([]Event, error) {
	if err := g.CanPlaceWorker(p, in.Location); err != nil {
		return nil, err
	}
	def, _ := g.reg.Location(in.Location)

	if err := p.PlaceWorker(); err != nil {
		return nil, err
	}
	g.Locations[in.Location] = append(g.Locations[in.Location], p.ID)
	g.Logf("%s places a worker on %s", p.Name, in.Location)

	events := []Event{{Type: EvtWorkerPlaced, Player: p.ID, Data: map[string]interface{}{
		"location": string(in.Location),
	}}}
	resolved, err := def.Resolve(g, p, in)
	if err != nil {
		// The worker stays; resolution errors here are contract bugs in
		// the location definition, not player mistakes.
		return nil, err
	}
	return append(events, resolved...), nil
}

// ResolveLocation runs a location's yield without placing a worker
// (copy effects). The copying entity must not name itself.
func (g *Game) ResolveLocation(p *Player, name LocationName, in GameInput) ([]Event, error) {
	def, err := g.reg.Location(name)
	if err != nil {
		return nil, err
	}
	copied := in
	copied.Location = name
	return def.Resolve(g, p, copied)
}

// ---- cards ----

// CanPlayCard returns nil iff the PLAY_CARD input is legal, ignoring
// the exact payment breakdown (affordability is checked by any means).
func (g *Game) CanPlayCard(p *Player, in GameInput) error {
	def, err := g.reg.Card(in.Card)
	if err != nil {
		return err
	}
	if def.ExpansionOnly && !g.Options.Expansion {
		return fmt.Errorf("card %s requires the expansion", def.Name)
	}
	switch in.Source {
	case SourceHand:
		if !p.HasInHand(def.Name) {
			return fmt.Errorf("card %s not in hand", def.Name)
		}
	case SourceMeadow:
		if !g.meadowHas(def.Name) {
			return fmt.Errorf("must select card from meadow: %s is not there", def.Name)
		}
	default:
		return fmt.Errorf("%w: missing card source", ErrInvalidInput)
	}
	if def.Unique && p.HasInCity(def.Name) {
		return fmt.Errorf("unique card %s is already in your city", def.Name)
	}
	if !g.cardWouldShareSlot(p, def, in.Payment) && p.OccupiedSlots() >= CityLimit {
		return fmt.Errorf("city is full (limit %d)", CityLimit)
	}
	if !g.CanAffordCard(p, def) {
		return fmt.Errorf("insufficient resources for %s", def.Name)
	}
	if def.Check != nil {
		return def.Check(g, p, in)
	}
	return nil
}

func (g *Game) playCard(p *Player, in GameInput) ([]Event, error) {
	if err := g.CanPlayCard(p, in); err != nil {
		return nil, err
	}
	def, _ := g.reg.Card(in.Card)
	if err := g.ValidatePaidResources(p, def, in.Payment); err != nil {
		return nil, err
	}
	return g.commitCardPlay(p, def, in)
}

// CanPlayCardFree returns nil iff PlayCardFree would succeed, without
// touching any state.
func (g *Game) CanPlayCardFree(p *Player, in GameInput) error {
	def, err := g.reg.Card(in.Card)
	if err != nil {
		return err
	}
	if def.Unique && p.HasInCity(def.Name) {
		return fmt.Errorf("unique card %s is already in your city", def.Name)
	}
	if err := g.checkCardSource(p, def, in.Source); err != nil {
		return err
	}
	free := in
	free.Payment = nil
	_, err = g.planCityPlacement(p, def, free)
	return err
}

// PlayCardFree moves a card into p's city without payment (effects
// that grant a free play). The input's Source must still be valid.
func (g *Game) PlayCardFree(p *Player, in GameInput) ([]Event, error) {
	if err := g.CanPlayCardFree(p, in); err != nil {
		return nil, err
	}
	def, _ := g.reg.Card(in.Card)
	free := in
	free.Payment = nil
	return g.commitCardPlay(p, def, free)
}

func (g *Game) checkCardSource(p *Player, def *CardDef, src CardSource) error {
	switch src {
	case SourceHand:
		if !p.HasInHand(def.Name) {
			return fmt.Errorf("card %s not in hand", def.Name)
		}
	case SourceMeadow:
		if !g.meadowHas(def.Name) {
			return fmt.Errorf("must select card from meadow: %s is not there", def.Name)
		}
	case SourceDrawn:
		// Already outside any zone.
	default:
		return fmt.Errorf("%w: missing card source", ErrInvalidInput)
	}
	return nil
}

// commitCardPlay performs the mutations of a validated card play:
// payment, source removal, city placement, on-play effect, triggers.
// The placement is planned up front so a refused play leaves the
// hand, meadow and resource pools untouched.
func (g *Game) commitCardPlay(p *Player, def *CardDef, in GameInput) ([]Event, error) {
	if err := g.checkCardSource(p, def, in.Source); err != nil {
		return nil, err
	}
	placement, err := g.planCityPlacement(p, def, in)
	if err != nil {
		return nil, err
	}
	var events []Event

	pay := in.Payment
	if pay != nil {
		if pay.Resources.Total() > 0 {
			if err := p.SpendResources(pay.Resources); err != nil {
				return nil, err
			}
			events = append(events, Event{Type: EvtResourcesSpent, Player: p.ID, Data: map[string]interface{}{
				"resources": pay.Resources, "for": string(def.Name),
			}})
		}
		if pay.CardToUse != "" {
			helper, _ := g.reg.Card(pay.CardToUse)
			if helper.Discount != nil && helper.Discount.Consumes {
				if idx := g.cityIndex(p, pay.CardToUse); idx >= 0 {
					removed, _ := p.RemoveFromCity(idx)
					g.Deck.Discard(removed.Card)
					g.Logf("%s spends %s to reduce the cost of %s", p.Name, pay.CardToUse, def.Name)
					events = append(events, Event{Type: EvtCardDiscarded, Player: p.ID, Data: map[string]interface{}{
						"card": string(pay.CardToUse), "from": "city",
					}})
				}
			}
		}
	}

	switch in.Source {
	case SourceHand:
		if err := p.RemoveFromHand(def.Name); err != nil {
			return nil, err
		}
	case SourceMeadow:
		if err := g.takeFromMeadow(def.Name); err != nil {
			return nil, err
		}
	case SourceDrawn:
		// Already outside any zone.
	}

	pc := placement.place(def)
	g.Logf("%s plays %s", p.Name, def.Name)
	events = append(events, Event{Type: EvtCardPlayed, Player: pc.Owner, Data: map[string]interface{}{
		"card": string(def.Name), "type": string(def.Type),
	}})

	if def.Resolve != nil {
		ctx := GameInput{
			Type:    in.Type,
			Card:    def.Name,
			Context: EffectContext{Kind: KindCard, Name: string(def.Name)},
		}
		resolved, err := def.Resolve(g, p, ctx)
		if err != nil {
			return nil, err
		}
		events = append(events, resolved...)
	}

	triggered, err := g.fireCardPlayedTriggers(p, pc)
	if err != nil {
		return nil, err
	}
	return append(events, triggered...), nil
}

// cityPlacement is a validated landing spot for a card, computed
// before any zone is touched.
type cityPlacement struct {
	owner      *Player
	sharesSlot bool
	host       *PlayedCard // associated construction the critter will occupy
}

// planCityPlacement resolves where the card lands and whether it
// consumes a slot: travelers that settle nowhere, critters hosted by
// their construction, and paired critters all share slots. Fool-style
// cards land in the city named by SelectedPlayer instead. It performs
// no mutation.
func (g *Game) planCityPlacement(p *Player, def *CardDef, in GameInput) (*cityPlacement, error) {
	owner := p
	if in.SelectedPlayer != "" && in.SelectedPlayer != p.ID {
		owner = g.GetPlayer(in.SelectedPlayer)
		if owner == nil {
			return nil, ErrPlayerNotFound
		}
	}

	pl := &cityPlacement{owner: owner}
	if def.TakesNoSlot {
		pl.sharesSlot = true
	}
	if in.Payment != nil && in.Payment.UseAssociated {
		host := owner.FindInCity(def.AssociatedCard)
		if host == nil || host.UsedForCritter {
			return nil, fmt.Errorf("invalid payment: cannot occupy %s", def.AssociatedCard)
		}
		pl.host = host
		pl.sharesSlot = true
	}
	if !pl.sharesSlot && def.PairsWith != "" && g.hasUnpairedPartner(owner, def) {
		pl.sharesSlot = true
	}
	if !pl.sharesSlot {
		occupied := owner.OccupiedSlots()
		// A consumed discount helper frees its slot before the new
		// card settles.
		if in.Payment != nil && in.Payment.CardToUse != "" && owner == p {
			if helper, err := g.reg.Card(in.Payment.CardToUse); err == nil &&
				helper.Discount != nil && helper.Discount.Consumes {
				if pc := p.FindInCity(in.Payment.CardToUse); pc != nil && !pc.SharesSlot {
					occupied--
				}
			}
		}
		if occupied >= CityLimit {
			return nil, fmt.Errorf("city is full (limit %d)", CityLimit)
		}
	}
	return pl, nil
}

// place appends the PlayedCard and claims the associated host, if any.
func (pl *cityPlacement) place(def *CardDef) *PlayedCard {
	pc := &PlayedCard{Card: def.Name, Owner: pl.owner.ID, SharesSlot: pl.sharesSlot}
	if pl.host != nil {
		pl.host.UsedForCritter = true
	}
	pl.owner.City = append(pl.owner.City, pc)
	return pc
}

// hasUnpairedPartner reports whether owner holds more partner cards
// than critters already sharing through them.
func (g *Game) hasUnpairedPartner(owner *Player, def *CardDef) bool {
	partners, sharing := 0, 0
	for _, pc := range owner.City {
		if pc.Card == def.PairsWith {
			partners++
		}
		if pc.Card == def.Name && pc.SharesSlot {
			sharing++
		}
	}
	return partners > sharing
}

func (g *Game) fireCardPlayedTriggers(p *Player, played *PlayedCard) ([]Event, error) {
	var events []Event
	for _, pc := range p.City {
		if pc == played {
			continue
		}
		def, err := g.reg.Card(pc.Card)
		if err != nil || def.OnCardPlayed == nil {
			continue
		}
		fired, err := def.OnCardPlayed(g, p, played)
		if err != nil {
			return nil, err
		}
		events = append(events, fired...)
	}
	return events, nil
}

func (g *Game) cityIndex(p *Player, name CardName) int {
	for i, pc := range p.City {
		if pc.Card == name {
			return i
		}
	}
	return -1
}

// cardWouldShareSlot predicts whether the play will consume a slot.
func (g *Game) cardWouldShareSlot(p *Player, def *CardDef, pay *CardPayment) bool {
	if def.TakesNoSlot {
		return true
	}
	if pay != nil && pay.UseAssociated {
		return true
	}
	return def.PairsWith != "" && g.hasUnpairedPartner(p, def)
}

// ---- destinations ----

func (g *Game) visitDestination(p *Player, in GameInput) ([]Event, error) {
	if in.PlayedCard == nil {
		return nil, fmt.Errorf("%w: missing destination card", ErrInvalidInput)
	}
	ref := *in.PlayedCard
	owner := g.GetPlayer(ref.Owner)
	if owner == nil {
		return nil, ErrPlayerNotFound
	}
	pc := owner.CityCard(ref.Index)
	if pc == nil || pc.Card != ref.Card {
		return nil, fmt.Errorf("%w: no %s at city index %d", ErrInvalidInput, ref.Card, ref.Index)
	}
	def, err := g.reg.Card(pc.Card)
	if err != nil {
		return nil, err
	}
	if def.Type != Destination || def.Resolve == nil {
		return nil, fmt.Errorf("%s is not a destination", def.Name)
	}
	if owner != p && !def.Open {
		return nil, fmt.Errorf("%s only admits its owner's workers", def.Name)
	}
	if p.Workers <= 0 {
		return nil, fmt.Errorf("no workers available")
	}
	if len(pc.Workers) >= destinationCapacity(def) {
		return nil, fmt.Errorf("%s is fully occupied", def.Name)
	}
	if def.Check != nil {
		if err := def.Check(g, p, in); err != nil {
			return nil, err
		}
	}

	_ = p.PlaceWorker()
	pc.Workers = append(pc.Workers, p.ID)
	g.Logf("%s sends a worker to %s", p.Name, def.Name)
	events := []Event{{Type: EvtDestination, Player: p.ID, Data: map[string]interface{}{
		"card": string(def.Name), "owner": owner.ID,
	}}}

	ctx := in
	ctx.Context = EffectContext{Kind: KindCard, Name: string(def.Name)}
	resolved, err := def.Resolve(g, p, ctx)
	if err != nil {
		return nil, err
	}
	return append(events, resolved...), nil
}

func destinationCapacity(def *CardDef) int {
	// Destinations admit one visiting worker at a time.
	return 1
}

// ---- events ----

// CanClaimEvent returns nil iff p may claim the event now.
func (g *Game) CanClaimEvent(p *Player, name EventName) error {
	def, err := g.reg.Event(name)
	if err != nil {
		return err
	}
	claimant, ok := g.Events[name]
	if !ok {
		return fmt.Errorf("event %s is not in this game", name)
	}
	if claimant != "" {
		return fmt.Errorf("event %s: %w", name, ErrAlreadyClaimed)
	}
	if p.Workers <= 0 {
		return fmt.Errorf("no workers available")
	}
	if def.RequiredCount > 0 && g.CardTypeCount(p, def.RequiredType) < def.RequiredCount {
		return fmt.Errorf("event %s requires %d %s cards, you have %d",
			name, def.RequiredCount, def.RequiredType, g.CardTypeCount(p, def.RequiredType))
	}
	for _, c := range def.RequiredCards {
		if !p.HasInCity(c) {
			return fmt.Errorf("event %s requires %s in your city", name, c)
		}
	}
	if def.Check != nil {
		return def.Check(g, p, GameInput{Type: InputClaimEvent, Event: name})
	}
	return nil
}

func (g *Game) claimEvent(p *Player, in GameInput) ([]Event, error) {
	if err := g.CanClaimEvent(p, in.Event); err != nil {
		return nil, err
	}
	def, _ := g.reg.Event(in.Event)

	// The worker stays on the event for the rest of the game.
	if err := p.PlaceWorker(); err != nil {
		return nil, err
	}
	g.Events[def.Name] = p.ID
	p.ClaimedEvents[def.Name] = &ClaimPayload{}
	g.Logf("%s claims the event %s", p.Name, def.Name)

	events := []Event{{Type: EvtEventClaimed, Player: p.ID, Data: map[string]interface{}{
		"event": string(def.Name),
	}}}
	if def.Resolve != nil {
		ctx := in
		ctx.Context = EffectContext{Kind: KindEvent, Name: string(def.Name)}
		resolved, err := def.Resolve(g, p, ctx)
		if err != nil {
			return nil, err
		}
		events = append(events, resolved...)
	}
	return events, nil
}

// CardTypeCount counts cards of one type in p's city.
func (g *Game) CardTypeCount(p *Player, t CardType) int {
	n := 0
	for _, pc := range p.City {
		if def, err := g.reg.Card(pc.Card); err == nil && def.Type == t {
			n++
		}
	}
	return n
}

// ---- wonders ----

func (g *Game) claimWonder(p *Player, in GameInput) ([]Event, error) {
	if !g.Options.Expansion {
		return nil, fmt.Errorf("wonders require the expansion")
	}
	def, err := g.reg.Wonder(in.Wonder)
	if err != nil {
		return nil, err
	}
	claimant, ok := g.Wonders[def.Name]
	if !ok {
		return nil, fmt.Errorf("wonder %s is not in this game", def.Name)
	}
	if claimant != "" {
		return nil, fmt.Errorf("wonder %s: %w", def.Name, ErrAlreadyClaimed)
	}
	if p.Workers <= 0 {
		return nil, fmt.Errorf("no workers available")
	}
	if !p.Resources.Covers(def.Cost) {
		return nil, fmt.Errorf("insufficient resources for wonder %s", def.Name)
	}
	if len(p.Hand) < def.CardsToDiscard {
		return nil, fmt.Errorf("wonder %s requires discarding %d cards, hand has %d",
			def.Name, def.CardsToDiscard, len(p.Hand))
	}
	if def.Check != nil {
		if err := def.Check(g, p, in); err != nil {
			return nil, err
		}
	}

	_ = p.PlaceWorker()
	if err := p.SpendResources(def.Cost); err != nil {
		return nil, err
	}
	g.Wonders[def.Name] = p.ID
	p.Wonders = append(p.Wonders, def.Name)
	g.Logf("%s builds the wonder %s", p.Name, def.Name)

	events := []Event{{Type: EvtWonderClaimed, Player: p.ID, Data: map[string]interface{}{
		"wonder": string(def.Name), "cost": def.Cost,
	}}}
	if def.CardsToDiscard > 0 {
		g.PushPending(GameInput{
			Type:        InputDiscardCards,
			Context:     EffectContext{Kind: KindWonder, Name: string(def.Name)},
			Prev:        InputClaimWonder,
			CardOptions: append([]CardName(nil), p.Hand...),
			MinToSelect: def.CardsToDiscard,
			MaxToSelect: def.CardsToDiscard,
		})
	}
	if def.Resolve != nil {
		resolved, err := def.Resolve(g, p, in)
		if err != nil {
			return nil, err
		}
		events = append(events, resolved...)
	}
	return events, nil
}

// ---- adornments ----

func (g *Game) playAdornment(p *Player, in GameInput) ([]Event, error) {
	if !g.Options.Expansion {
		return nil, fmt.Errorf("adornments require the expansion")
	}
	def, err := g.reg.Adornment(in.Adornment)
	if err != nil {
		return nil, err
	}
	held := -1
	for i, a := range p.AdornmentHand {
		if a == def.Name {
			held = i
			break
		}
	}
	if held < 0 {
		return nil, fmt.Errorf("adornment %s is not in your hand", def.Name)
	}
	if p.NumResource(ResourcePearl) < 1 {
		return nil, fmt.Errorf("insufficient PEARL: adornments cost 1")
	}
	if def.Check != nil {
		if err := def.Check(g, p, in); err != nil {
			return nil, err
		}
	}

	_ = p.SpendResources(Resources{ResourcePearl: 1})
	p.AdornmentHand = append(p.AdornmentHand[:held], p.AdornmentHand[held+1:]...)
	p.Adornments = append(p.Adornments, def.Name)
	g.Logf("%s plays the adornment %s", p.Name, def.Name)

	events := []Event{{Type: EvtAdornmentPlayed, Player: p.ID, Data: map[string]interface{}{
		"adornment": string(def.Name),
	}}}
	if def.Resolve != nil {
		ctx := in
		ctx.Context = EffectContext{Kind: KindAdornment, Name: string(def.Name)}
		resolved, err := def.Resolve(g, p, ctx)
		if err != nil {
			return nil, err
		}
		events = append(events, resolved...)
	}
	return events, nil
}

// ---- train tickets ----

func (g *Game) playTrainTicket(p *Player, in GameInput) ([]Event, error) {
	if !g.Options.Expansion {
		return nil, fmt.Errorf("train tickets require the expansion")
	}
	if p.TrainTickets <= 0 {
		return nil, fmt.Errorf("no train tickets left")
	}
	deployed := g.PlacementsOf(p)
	if len(deployed) == 0 {
		return nil, fmt.Errorf("no deployed workers to reassign")
	}

	p.TrainTickets--
	g.Logf("%s plays a train ticket", p.Name)
	g.PushPending(GameInput{
		Type:            InputSelectWorkerPlacement,
		Context:         EffectContext{Kind: KindTrain, Name: "TRAIN_TICKET"},
		Prev:            InputPlayTrainTicket,
		LocationOptions: deployed,
		MinToSelect:     1,
		MaxToSelect:     1,
	})
	return []Event{{Type: EvtTrainTicket, Player: p.ID}}, nil
}

// PlacementsOf lists locations holding at least one of p's workers.
func (g *Game) PlacementsOf(p *Player) []LocationName {
	var out []LocationName
	for name, workers := range g.Locations {
		for _, id := range workers {
			if id == p.ID {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// recallFromLocation removes one of p's workers from the location.
func (g *Game) recallFromLocation(p *Player, name LocationName) error {
	workers := g.Locations[name]
	for i, id := range workers {
		if id == p.ID {
			g.Locations[name] = append(workers[:i], workers[i+1:]...)
			p.ReturnWorker()
			return nil
		}
	}
	return fmt.Errorf("no worker of yours on %s", name)
}

// RecallWorker pulls one of p's workers back from the named location.
func (g *Game) RecallWorker(p *Player, name LocationName) error {
	return g.recallFromLocation(p, name)
}

// PlaceWorkerOn deploys one of p's workers without spending a turn action.
// Card effects that relocate workers go through here.
func (g *Game) PlaceWorkerOn(p *Player, name LocationName) ([]Event, error) {
	return g.placeWorker(p, GameInput{Type: InputPlaceWorker, Location: name})
}

// ---- meadow ----

func (g *Game) meadowHas(c CardName) bool {
	for _, m := range g.Meadow {
		if m == c {
			return true
		}
	}
	return false
}

func (g *Game) takeFromMeadow(c CardName) error {
	for i, m := range g.Meadow {
		if m == c {
			g.Meadow = append(g.Meadow[:i], g.Meadow[i+1:]...)
			g.replenishMeadow()
			return nil
		}
	}
	return fmt.Errorf("must select card from meadow: %s is not there", c)
}

// replenishMeadow tops the meadow back up to its fixed capacity.
func (g *Game) replenishMeadow() {
	for len(g.Meadow) < MeadowSize {
		c, ok := g.Deck.DrawOne()
		if !ok {
			return
		}
		g.Meadow = append(g.Meadow, c)
	}
}

// ---- game end ----

func (g *Game) endForPlayer(p *Player) ([]Event, error) {
	if p.Season != Autumn {
		return nil, fmt.Errorf("cannot end the game before AUTUMN")
	}
	p.Status = StatusGameEnded
	g.Logf("%s has finished the game", p.Name)
	return []Event{{Type: EvtPlayerFinished, Player: p.ID}}, nil
}

func (g *Game) finishGame() []Event {
	g.Over = true
	g.Scores = g.CalculateScores()
	g.Logf("the game is over")
	return []Event{{Type: EvtGameOver, Data: map[string]interface{}{"scores": g.Scores}}}
}
