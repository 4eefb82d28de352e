package engine

import "fmt"

// Season transitions are only ever explicit: a player submits
// PREPARE_FOR_SEASON, which recalls their workers, grants the season
// bonus and, at SPRING and AUTUMN, activates every production card in
// their city in order. Production effects may chain further pending
// inputs (e.g. choosing which wild resource a card yields).

func (g *Game) prepareForSeason(p *Player) ([]Event, error) {
	if p.Season == Autumn {
		return nil, fmt.Errorf("no season after AUTUMN: submit GAME_END instead")
	}
	recalled := g.recallAllWorkers(p)
	p.Season = p.Season.Next()
	p.Workers = workerAllotment(p.Season) - g.permanentWorkers(p)
	g.Logf("%s prepares for %s (%d workers recalled)", p.Name, p.Season, recalled)

	events := []Event{{Type: EvtSeasonChange, Player: p.ID, Data: map[string]interface{}{
		"season": p.Season.String(), "workers": p.Workers,
	}}}

	switch p.Season {
	case Spring, Autumn:
		produced, err := g.activateProduction(p)
		if err != nil {
			return nil, err
		}
		events = append(events, produced...)
	case Summer:
		// Take up to two cards from the meadow.
		if opts := g.MeadowCards(); len(opts) > 0 {
			max := 2
			if room := HandLimit - len(p.Hand); room < max {
				max = room
			}
			if max > 0 {
				g.PushPending(GameInput{
					Type:        InputSelectCards,
					Context:     EffectContext{Kind: KindSeason, Name: Summer.String()},
					Prev:        InputPrepareForSeason,
					CardOptions: opts,
					MinToSelect: 0,
					MaxToSelect: max,
				})
			}
		}
	}
	return events, nil
}

// activateProduction runs every production card's effect in city order.
func (g *Game) activateProduction(p *Player) ([]Event, error) {
	var events []Event
	for _, pc := range append([]*PlayedCard(nil), p.City...) {
		def, err := g.reg.Card(pc.Card)
		if err != nil || def.Type != Production || def.Resolve == nil {
			continue
		}
		events = append(events, Event{Type: EvtProduction, Player: p.ID, Data: map[string]interface{}{
			"card": string(def.Name),
		}})
		resolved, err := def.Resolve(g, p, GameInput{
			Type:    InputPrepareForSeason,
			Card:    def.Name,
			Context: EffectContext{Kind: KindCard, Name: string(def.Name)},
		})
		if err != nil {
			return nil, err
		}
		events = append(events, resolved...)
	}
	return events, nil
}

// ActivateProductionCard re-runs one production card's effect (copy
// effects and reactivation abilities).
func (g *Game) ActivateProductionCard(p *Player, name CardName) ([]Event, error) {
	def, err := g.reg.Card(name)
	if err != nil {
		return nil, err
	}
	if def.Type != Production || def.Resolve == nil {
		return nil, fmt.Errorf("%s is not a production card", name)
	}
	return def.Resolve(g, p, GameInput{
		Type:    InputPrepareForSeason,
		Card:    name,
		Context: EffectContext{Kind: KindCard, Name: string(name)},
	})
}

// resolveSeasonPending handles the SUMMER meadow draft.
func (g *Game) resolveSeasonPending(p *Player, in GameInput) ([]Event, error) {
	if in.Type != InputSelectCards {
		return nil, fmt.Errorf("%w: season cannot resolve %s", ErrInvalidInput, in.Type)
	}
	var events []Event
	for _, c := range in.SelectedCards {
		if err := g.takeFromMeadow(c); err != nil {
			return nil, err
		}
		if err := p.AddToHand(c); err != nil {
			return nil, err
		}
	}
	if n := len(in.SelectedCards); n > 0 {
		g.Logf("%s takes %d card(s) from the meadow", p.Name, n)
		events = append(events, Event{Type: EvtCardsDrawn, Player: p.ID, Data: map[string]interface{}{
			"count": n, "source": "meadow",
		}})
	}
	return events, nil
}

// resolveTrainPending handles both steps of a train ticket: first the
// placement to recall from, then the new placement.
func (g *Game) resolveTrainPending(p *Player, in GameInput) ([]Event, error) {
	if in.Type != InputSelectWorkerPlacement {
		return nil, fmt.Errorf("%w: train ticket cannot resolve %s", ErrInvalidInput, in.Type)
	}
	switch in.Prev {
	case InputPlayTrainTicket:
		if err := g.recallFromLocation(p, in.SelectedLocation); err != nil {
			return nil, err
		}
		g.Logf("%s recalls a worker from %s", p.Name, in.SelectedLocation)
		events := []Event{{Type: EvtWorkerRecalled, Player: p.ID, Data: map[string]interface{}{
			"location": string(in.SelectedLocation),
		}}}
		opts := g.OpenLocations(p)
		if len(opts) == 0 {
			return events, nil
		}
		g.PushPending(GameInput{
			Type:            InputSelectWorkerPlacement,
			Context:         EffectContext{Kind: KindTrain, Name: "TRAIN_TICKET"},
			Prev:            InputSelectWorkerPlacement,
			LocationOptions: opts,
			MinToSelect:     1,
			MaxToSelect:     1,
		})
		return events, nil

	case InputSelectWorkerPlacement:
		return g.placeWorker(p, GameInput{Type: InputPlaceWorker, Location: in.SelectedLocation})
	}
	return nil, fmt.Errorf("%w: unexpected train ticket step", ErrInvalidInput)
}

// OpenLocations lists locations p could legally place a worker on.
func (g *Game) OpenLocations(p *Player) []LocationName {
	var out []LocationName
	for name := range g.Locations {
		if g.CanPlaceWorker(p, name) == nil {
			out = append(out, name)
		}
	}
	return out
}

// recallAllWorkers pulls p's workers back from locations and
// destination cards. Workers on events and wonders stay for good.
func (g *Game) recallAllWorkers(p *Player) int {
	n := 0
	for name, workers := range g.Locations {
		kept := workers[:0]
		for _, id := range workers {
			if id == p.ID {
				n++
			} else {
				kept = append(kept, id)
			}
		}
		g.Locations[name] = kept
	}
	for _, other := range g.Players {
		for _, pc := range other.City {
			kept := pc.Workers[:0]
			for _, id := range pc.Workers {
				if id == p.ID {
					n++
				} else {
					kept = append(kept, id)
				}
			}
			pc.Workers = kept
		}
	}
	return n
}

// deployedWorkers counts p's workers currently placed anywhere.
func (g *Game) deployedWorkers(p *Player) int {
	n := 0
	for _, workers := range g.Locations {
		for _, id := range workers {
			if id == p.ID {
				n++
			}
		}
	}
	for _, other := range g.Players {
		for _, pc := range other.City {
			for _, id := range pc.Workers {
				if id == p.ID {
					n++
				}
			}
		}
	}
	return n + g.permanentWorkers(p)
}

// permanentWorkers counts workers spent for good on events and wonders.
func (g *Game) permanentWorkers(p *Player) int {
	n := len(p.ClaimedEvents)
	for _, claimant := range g.Wonders {
		if claimant == p.ID {
			n++
		}
	}
	return n
}
