package engine

import (
	"errors"
	"strings"
	"testing"
)

// testRegistry builds a reduced content set: enough cards, locations
// and events to drive every engine path without the full catalog.
func testRegistry() *Registry {
	r := NewRegistry()

	r.RegisterCard(&CardDef{
		Name: "Orchard", Type: Production,
		Cost:      Resources{ResourceTwig: 2, ResourceResin: 1},
		BaseVP:    1,
		NumInDeck: 12,
		Resolve: func(g *Game, p *Player, in GameInput) ([]Event, error) {
			return g.GainResources(p, Resources{ResourceBerry: 1}, "Orchard"), nil
		},
	})
	r.RegisterCard(&CardDef{
		Name: "Gatherer", Type: Production, Critter: true,
		Cost:      Resources{ResourceBerry: 2},
		BaseVP:    2,
		NumInDeck: 4,
		Resolve: func(g *Game, p *Player, in GameInput) ([]Event, error) {
			if in.Type == InputSelectResources {
				return g.GainResources(p, in.SelectedResources, "Gatherer"), nil
			}
			g.PushPending(GameInput{
				Type:            InputSelectResources,
				Context:         EffectContext{Kind: KindCard, Name: "Gatherer"},
				Prev:            in.Type,
				ResourceOptions: BaseResourceTypes(),
				MinResources:    1,
				MaxResources:    1,
			})
			return nil, nil
		},
	})
	r.RegisterCard(&CardDef{
		Name: "Tower", Type: Prosperity, Unique: true,
		Cost:      Resources{ResourcePebble: 2},
		BaseVP:    3,
		NumInDeck: 2,
		PointsFn: func(g *Game, p *Player) int {
			return g.CardTypeCount(p, Production)
		},
	})

	r.RegisterCard(&CardDef{
		Name: "Tavern", Type: Destination,
		Cost:      Resources{ResourceTwig: 1},
		BaseVP:    2,
		NumInDeck: 2,
		Resolve: func(g *Game, p *Player, in GameInput) ([]Event, error) {
			return g.GainResources(p, Resources{ResourceBerry: 2}, "Tavern"), nil
		},
	})
	r.RegisterCard(&CardDef{
		Name: "Market", Type: Destination, Open: true,
		Cost:      Resources{ResourceTwig: 1},
		BaseVP:    1,
		NumInDeck: 2,
		Resolve: func(g *Game, p *Player, in GameInput) ([]Event, error) {
			return g.GainResources(p, Resources{ResourceTwig: 1}, "Market"), nil
		},
	})

	r.RegisterAdornment(&AdornmentDef{
		Name: "Pennant",
		Resolve: func(g *Game, p *Player, in GameInput) ([]Event, error) {
			return g.GainResources(p, Resources{ResourceTwig: 1}, "Pennant"), nil
		},
		PointsFn: func(g *Game, p *Player) int { return 2 },
	})

	r.RegisterWonder(&WonderDef{
		Name:           "Moon Gate",
		Cost:           Resources{ResourcePearl: 1, ResourceTwig: 1},
		CardsToDiscard: 1,
		VP:             10,
	})

	r.RegisterLocation(&LocationDef{
		Name: "Twig Pile", Occupancy: Exclusive, Basic: true,
		Resolve: func(g *Game, p *Player, in GameInput) ([]Event, error) {
			return g.GainResources(p, Resources{ResourceTwig: 3}, "Twig Pile"), nil
		},
	})
	r.RegisterLocation(&LocationDef{
		Name: "Open Grove", Occupancy: Unlimited, Basic: true,
		Resolve: func(g *Game, p *Player, in GameInput) ([]Event, error) {
			events := g.GainResources(p, Resources{ResourceBerry: 1}, "Open Grove")
			_, drawn := g.DrawCards(p, 1)
			return append(events, drawn...), nil
		},
	})

	r.RegisterEvent(&EventDef{
		Name: "Festival", VP: 3,
		RequiredType:  Production,
		RequiredCount: 2,
	})

	return r
}

func newTestGame(t *testing.T) (*Game, *Player, *Player) {
	t.Helper()
	p1 := NewPlayer("p1", "Alice")
	p2 := NewPlayer("p2", "Bob")
	g := NewGame([]*Player{p1, p2}, GameOptions{}, testRegistry())
	// Tests control zones explicitly.
	for _, p := range g.Players {
		p.Hand = nil
		p.Resources = Resources{}
	}
	return g, p1, p2
}

func TestPlayCardExactPayment(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.Hand = []CardName{"Orchard"}
	p1.Resources = Resources{ResourceTwig: 2, ResourceResin: 1}

	in := GameInput{
		Type:    InputPlayCard,
		Card:    "Orchard",
		Source:  SourceHand,
		Payment: &CardPayment{Resources: Resources{ResourceTwig: 2, ResourceResin: 1}},
	}
	if err := g.CanPlayCard(p1, in); err != nil {
		t.Fatalf("CanPlayCard: %v", err)
	}
	if _, err := g.Next("p1", in); err != nil {
		t.Fatalf("Next: %v", err)
	}

	if !p1.HasInCity("Orchard") {
		t.Error("Orchard not in city")
	}
	if len(p1.Hand) != 0 {
		t.Errorf("hand = %v, want empty", p1.Hand)
	}
	if p1.Resources[ResourceTwig] != 0 || p1.Resources[ResourceResin] != 0 {
		t.Errorf("resources not spent: %v", p1.Resources)
	}
	// The on-play production effect fires immediately.
	if p1.Resources[ResourceBerry] != 1 {
		t.Errorf("berries = %d, want 1", p1.Resources[ResourceBerry])
	}
	if g.Active().ID != "p2" {
		t.Errorf("active = %s, want p2", g.Active().ID)
	}
}

func TestPlayCardValidation(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(g *Game, p *Player)
		in      GameInput
		wantErr string
	}{
		{
			name:  "insufficient resources",
			setup: func(g *Game, p *Player) { p.Hand = []CardName{"Orchard"} },
			in: GameInput{Type: InputPlayCard, Card: "Orchard", Source: SourceHand,
				Payment: &CardPayment{Resources: Resources{}}},
			wantErr: "insufficient resources",
		},
		{
			name: "wrong payment breakdown",
			setup: func(g *Game, p *Player) {
				p.Hand = []CardName{"Orchard"}
				p.Resources = Resources{ResourceTwig: 5, ResourceResin: 5}
			},
			in: GameInput{Type: InputPlayCard, Card: "Orchard", Source: SourceHand,
				Payment: &CardPayment{Resources: Resources{ResourceTwig: 3}}},
			wantErr: "too many TWIG paid",
		},
		{
			name: "not in hand",
			setup: func(g *Game, p *Player) {
				p.Resources = Resources{ResourceTwig: 2, ResourceResin: 1}
			},
			in: GameInput{Type: InputPlayCard, Card: "Orchard", Source: SourceHand,
				Payment: &CardPayment{Resources: Resources{ResourceTwig: 2, ResourceResin: 1}}},
			wantErr: "not in hand",
		},
		{
			name: "not in meadow",
			setup: func(g *Game, p *Player) {
				g.Meadow = nil
				p.Resources = Resources{ResourceTwig: 2, ResourceResin: 1}
			},
			in: GameInput{Type: InputPlayCard, Card: "Orchard", Source: SourceMeadow,
				Payment: &CardPayment{Resources: Resources{ResourceTwig: 2, ResourceResin: 1}}},
			wantErr: "must select card from meadow",
		},
		{
			name: "unique already in city",
			setup: func(g *Game, p *Player) {
				p.Hand = []CardName{"Tower"}
				p.Resources = Resources{ResourcePebble: 4}
				p.City = append(p.City, &PlayedCard{Card: "Tower", Owner: p.ID})
			},
			in: GameInput{Type: InputPlayCard, Card: "Tower", Source: SourceHand,
				Payment: &CardPayment{Resources: Resources{ResourcePebble: 2}}},
			wantErr: "already in your city",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, p1, _ := newTestGame(t)
			tt.setup(g, p1)
			before := len(p1.City)
			_, err := g.Next("p1", tt.in)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
			if len(p1.City) != before {
				t.Error("state mutated by rejected input")
			}
			if g.Active().ID != "p1" {
				t.Error("turn advanced on rejected input")
			}
		})
	}
}

func TestPlaceWorker(t *testing.T) {
	g, p1, p2 := newTestGame(t)

	if _, err := g.Next("p1", GameInput{Type: InputPlaceWorker, Location: "Twig Pile"}); err != nil {
		t.Fatalf("place worker: %v", err)
	}
	if p1.Resources[ResourceTwig] != 3 {
		t.Errorf("twigs = %d, want 3", p1.Resources[ResourceTwig])
	}
	if p1.Workers != 1 {
		t.Errorf("workers = %d, want 1", p1.Workers)
	}

	// Exclusive locations admit one worker total.
	if _, err := g.Next("p2", GameInput{Type: InputPlaceWorker, Location: "Twig Pile"}); err == nil {
		t.Fatal("second worker on exclusive location should fail")
	}
	if p2.Workers != 2 {
		t.Errorf("p2 workers = %d, want 2", p2.Workers)
	}
}

func TestPlaceWorkerNoWorkersLeft(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.Workers = 0
	_, err := g.Next("p1", GameInput{Type: InputPlaceWorker, Location: "Open Grove"})
	if err == nil || !strings.Contains(err.Error(), "no workers available") {
		t.Fatalf("err = %v, want no workers available", err)
	}
}

func TestTurnOrderEnforced(t *testing.T) {
	g, _, _ := newTestGame(t)
	_, err := g.Next("p2", GameInput{Type: InputPlaceWorker, Location: "Open Grove"})
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("err = %v, want ErrNotYourTurn", err)
	}
}

func TestPendingInputFlow(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.Hand = []CardName{"Gatherer"}
	p1.Resources = Resources{ResourceBerry: 2}

	in := GameInput{
		Type:    InputPlayCard,
		Card:    "Gatherer",
		Source:  SourceHand,
		Payment: &CardPayment{Resources: Resources{ResourceBerry: 2}},
	}
	if _, err := g.Next("p1", in); err != nil {
		t.Fatalf("play: %v", err)
	}
	if len(g.Pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(g.Pending))
	}
	if g.Active().ID != "p1" {
		t.Fatal("turn advanced with pending input open")
	}

	// A fresh top-level action is rejected while the queue is open.
	_, err := g.Next("p1", GameInput{Type: InputPlaceWorker, Location: "Open Grove"})
	if err == nil {
		t.Fatal("top-level action should be rejected while pending")
	}

	// Wrong answer type.
	_, err = g.Next("p1", GameInput{
		Type:    InputSelectCards,
		Context: EffectContext{Kind: KindCard, Name: "Gatherer"},
	})
	if err == nil || !strings.Contains(err.Error(), "pending input is") {
		t.Fatalf("err = %v, want pending mismatch", err)
	}

	// Wrong context.
	_, err = g.Next("p1", GameInput{
		Type:              InputSelectResources,
		Context:           EffectContext{Kind: KindCard, Name: "Orchard"},
		SelectedResources: Resources{ResourceTwig: 1},
	})
	if err == nil || !strings.Contains(err.Error(), "belongs to") {
		t.Fatalf("err = %v, want context mismatch", err)
	}

	// Over the maximum: always an error, never clamped.
	_, err = g.Next("p1", GameInput{
		Type:              InputSelectResources,
		Context:           EffectContext{Kind: KindCard, Name: "Gatherer"},
		SelectedResources: Resources{ResourceTwig: 2},
	})
	if err == nil || !strings.Contains(err.Error(), "too many resources") {
		t.Fatalf("err = %v, want too many resources", err)
	}

	// Resource kind outside the offered set.
	_, err = g.Next("p1", GameInput{
		Type:              InputSelectResources,
		Context:           EffectContext{Kind: KindCard, Name: "Gatherer"},
		SelectedResources: Resources{ResourcePearl: 1},
	})
	if err == nil || !strings.Contains(err.Error(), "not an eligible resource") {
		t.Fatalf("err = %v, want ineligible resource", err)
	}

	// Valid answer resolves, empties the queue and passes the turn.
	if _, err := g.Next("p1", GameInput{
		Type:              InputSelectResources,
		Context:           EffectContext{Kind: KindCard, Name: "Gatherer"},
		SelectedResources: Resources{ResourcePebble: 1},
	}); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if p1.Resources[ResourcePebble] != 1 {
		t.Errorf("pebbles = %d, want 1", p1.Resources[ResourcePebble])
	}
	if len(g.Pending) != 0 {
		t.Errorf("pending = %d, want 0", len(g.Pending))
	}
	if g.Active().ID != "p2" {
		t.Errorf("active = %s, want p2", g.Active().ID)
	}
}

func TestPrepareForSeason(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.City = append(p1.City,
		&PlayedCard{Card: "Orchard", Owner: "p1"},
		&PlayedCard{Card: "Orchard", Owner: "p1"},
	)
	p1.Workers = 0
	g.Locations["Twig Pile"] = []string{"p1"}
	g.Locations["Open Grove"] = []string{"p1"}

	if _, err := g.Next("p1", GameInput{Type: InputPrepareForSeason}); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if p1.Season != Spring {
		t.Errorf("season = %v, want SPRING", p1.Season)
	}
	if p1.Workers != 3 {
		t.Errorf("workers = %d, want 3", p1.Workers)
	}
	if len(g.Locations["Twig Pile"]) != 0 || len(g.Locations["Open Grove"]) != 0 {
		t.Error("workers not recalled")
	}
	// Spring activates both production cards.
	if p1.Resources[ResourceBerry] != 2 {
		t.Errorf("berries = %d, want 2", p1.Resources[ResourceBerry])
	}
}

func TestSummerMeadowDraft(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.Season = Spring
	g.Meadow = []CardName{"Orchard", "Gatherer", "Tower"}

	if _, err := g.Next("p1", GameInput{Type: InputPrepareForSeason}); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if p1.Season != Summer {
		t.Fatalf("season = %v, want SUMMER", p1.Season)
	}
	if len(g.Pending) != 1 || g.Pending[0].Type != InputSelectCards {
		t.Fatalf("expected meadow draft pending, got %+v", g.Pending)
	}

	if _, err := g.Next("p1", GameInput{
		Type:          InputSelectCards,
		Context:       EffectContext{Kind: KindSeason, Name: "SUMMER"},
		SelectedCards: []CardName{"Orchard", "Tower"},
	}); err != nil {
		t.Fatalf("draft: %v", err)
	}
	if len(p1.Hand) != 2 {
		t.Errorf("hand = %v, want 2 cards", p1.Hand)
	}
}

func TestAutumnIsTerminal(t *testing.T) {
	g, p1, p2 := newTestGame(t)
	p1.Season = Autumn
	p2.Season = Autumn

	_, err := g.Next("p1", GameInput{Type: InputPrepareForSeason})
	if err == nil || !strings.Contains(err.Error(), "no season after AUTUMN") {
		t.Fatalf("err = %v, want terminal season error", err)
	}

	if _, err := g.Next("p1", GameInput{Type: InputGameEnd}); err != nil {
		t.Fatalf("game end p1: %v", err)
	}
	if p1.Status != StatusGameEnded {
		t.Errorf("status = %s, want GAME_ENDED", p1.Status)
	}
	if g.Over {
		t.Fatal("game over with a player still active")
	}

	if _, err := g.Next("p2", GameInput{Type: InputGameEnd}); err != nil {
		t.Fatalf("game end p2: %v", err)
	}
	if !g.Over {
		t.Fatal("game not over after all players finished")
	}
	if len(g.Scores) != 2 {
		t.Fatalf("scores = %d entries, want 2", len(g.Scores))
	}

	_, err = g.Next("p1", GameInput{Type: InputPlaceWorker, Location: "Open Grove"})
	if !errors.Is(err, ErrGameOver) {
		t.Fatalf("err = %v, want ErrGameOver", err)
	}
}

func TestClaimEvent(t *testing.T) {
	g, p1, p2 := newTestGame(t)
	p1.City = append(p1.City,
		&PlayedCard{Card: "Orchard", Owner: "p1"},
		&PlayedCard{Card: "Orchard", Owner: "p1"},
	)
	p2.City = append(p2.City,
		&PlayedCard{Card: "Orchard", Owner: "p2"},
		&PlayedCard{Card: "Orchard", Owner: "p2"},
	)

	if _, err := g.Next("p1", GameInput{Type: InputClaimEvent, Event: "Festival"}); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if g.Events["Festival"] != "p1" {
		t.Errorf("claimant = %q, want p1", g.Events["Festival"])
	}
	if p1.Workers != 1 {
		t.Errorf("workers = %d, want 1 (one spent for good)", p1.Workers)
	}

	_, err := g.Next("p2", GameInput{Type: InputClaimEvent, Event: "Festival"})
	if !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("err = %v, want ErrAlreadyClaimed", err)
	}
}

func TestClaimEventRequirementsUnmet(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.City = append(p1.City, &PlayedCard{Card: "Orchard", Owner: "p1"})
	_, err := g.Next("p1", GameInput{Type: InputClaimEvent, Event: "Festival"})
	if err == nil || !strings.Contains(err.Error(), "requires 2 PRODUCTION") {
		t.Fatalf("err = %v, want requirement error", err)
	}
}

func TestEventWorkerIsPermanent(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.City = append(p1.City,
		&PlayedCard{Card: "Orchard", Owner: "p1"},
		&PlayedCard{Card: "Orchard", Owner: "p1"},
	)
	if _, err := g.Next("p1", GameInput{Type: InputClaimEvent, Event: "Festival"}); err != nil {
		t.Fatalf("claim: %v", err)
	}
	g.ActivePlayer = 0
	// Winter -> Spring: 3 workers minus the one parked on the event.
	if _, err := g.Next("p1", GameInput{Type: InputPrepareForSeason}); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if p1.Workers != 2 {
		t.Errorf("workers = %d, want 2", p1.Workers)
	}
}

func TestScoring(t *testing.T) {
	g, p1, _ := newTestGame(t)
	p1.City = append(p1.City,
		&PlayedCard{Card: "Orchard", Owner: "p1"},                                        // 1 VP
		&PlayedCard{Card: "Orchard", Owner: "p1", StoredResources: Resources{ResourcePoint: 2}}, // 1 VP + 2 tokens
		&PlayedCard{Card: "Tower", Owner: "p1"},                                          // 3 VP + 2 bonus
	)
	p1.Resources = Resources{ResourcePoint: 4}
	p1.ClaimedEvents["Festival"] = &ClaimPayload{}

	e := g.scoreFor(p1)
	if e.CardScore != 5 {
		t.Errorf("card score = %d, want 5", e.CardScore)
	}
	if e.BonusScore != 2 {
		t.Errorf("bonus score = %d, want 2", e.BonusScore)
	}
	if e.EventScore != 3 {
		t.Errorf("event score = %d, want 3", e.EventScore)
	}
	if e.TokenScore != 6 {
		t.Errorf("token score = %d, want 6", e.TokenScore)
	}
	if e.Total != 16 {
		t.Errorf("total = %d, want 16", e.Total)
	}
}

func TestPlayCardFreeLeavesStateOnError(t *testing.T) {
	g, p1, _ := newTestGame(t)
	for i := 0; i < CityLimit; i++ {
		p1.City = append(p1.City, &PlayedCard{Card: "Orchard", Owner: "p1"})
	}
	p1.Hand = []CardName{"Gatherer"}

	_, err := g.PlayCardFree(p1, GameInput{
		Type: InputPlayCard, Card: "Gatherer", Source: SourceHand,
	})
	if err == nil || !strings.Contains(err.Error(), "city is full") {
		t.Fatalf("err = %v, want city is full", err)
	}
	if len(p1.Hand) != 1 || p1.Hand[0] != "Gatherer" {
		t.Errorf("hand = %v, want [Gatherer] untouched", p1.Hand)
	}
	if len(p1.City) != CityLimit {
		t.Errorf("city = %d cards, want %d", len(p1.City), CityLimit)
	}

	g.Meadow = []CardName{"Tower"}
	_, err = g.PlayCardFree(p1, GameInput{
		Type: InputPlayCard, Card: "Tower", Source: SourceMeadow,
	})
	if err == nil || !strings.Contains(err.Error(), "city is full") {
		t.Fatalf("meadow err = %v, want city is full", err)
	}
	if len(g.Meadow) != 1 || g.Meadow[0] != "Tower" {
		t.Errorf("meadow = %v, want [Tower] untouched", g.Meadow)
	}
}

func TestPlayCardFreeValidatesSource(t *testing.T) {
	g, p1, _ := newTestGame(t)
	_, err := g.PlayCardFree(p1, GameInput{
		Type: InputPlayCard, Card: "Gatherer", Source: SourceHand,
	})
	if err == nil || !strings.Contains(err.Error(), "not in hand") {
		t.Fatalf("err = %v, want not in hand", err)
	}
	if len(p1.City) != 0 {
		t.Errorf("city = %v, want empty", p1.City)
	}
}

func TestMeadowReplenishes(t *testing.T) {
	g, _, _ := newTestGame(t)
	if len(g.Meadow) != MeadowSize {
		t.Fatalf("meadow = %d, want %d", len(g.Meadow), MeadowSize)
	}
	c := g.Meadow[0]
	if err := g.takeFromMeadow(c); err != nil {
		t.Fatalf("take: %v", err)
	}
	if len(g.Meadow) != MeadowSize {
		t.Errorf("meadow = %d after take, want %d", len(g.Meadow), MeadowSize)
	}
}

func TestDeckReshufflesDiscard(t *testing.T) {
	d := NewDeck([]CardName{"Orchard"})
	if _, ok := d.DrawOne(); !ok {
		t.Fatal("first draw failed")
	}
	if _, ok := d.DrawOne(); ok {
		t.Fatal("draw from empty deck and empty discard should fail")
	}
	d.Discard("Gatherer")
	c, ok := d.DrawOne()
	if !ok || c != "Gatherer" {
		t.Fatalf("draw after reshuffle = %q %v, want Gatherer", c, ok)
	}
}
