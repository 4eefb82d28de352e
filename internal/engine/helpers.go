package engine

import "fmt"

// Shared mutation helpers used by effect callbacks. Each one narrates
// its change in the game log and returns the emitted events.

// GainResources adds resources to p, attributing them to source.
func (g *Game) GainResources(p *Player, r Resources, source string) []Event {
	if r.Total() == 0 {
		return nil
	}
	p.GainResources(r)
	g.Logf("%s gains %s from %s", p.Name, formatResources(r), source)
	return []Event{{Type: EvtResourcesGained, Player: p.ID, Data: map[string]interface{}{
		"resources": r, "source": source,
	}}}
}

// DrawCards draws up to n cards into p's hand, stopping at the hand
// limit or when both deck piles are empty.
func (g *Game) DrawCards(p *Player, n int) ([]CardName, []Event) {
	room := HandLimit - len(p.Hand)
	if n > room {
		n = room
	}
	if n <= 0 {
		return nil, nil
	}
	drawn := g.Deck.Draw(n)
	for _, c := range drawn {
		p.Hand = append(p.Hand, c)
	}
	if len(drawn) == 0 {
		return nil, nil
	}
	g.Logf("%s draws %d card(s)", p.Name, len(drawn))
	return drawn, []Event{{Type: EvtCardsDrawn, Player: p.ID, Data: map[string]interface{}{
		"count": len(drawn),
	}}}
}

// DiscardFromHand removes the named cards from p's hand onto the
// discard pile. Errors before mutating if any card is missing.
func (g *Game) DiscardFromHand(p *Player, cards []CardName) ([]Event, error) {
	remaining := map[CardName]int{}
	for _, c := range p.Hand {
		remaining[c]++
	}
	for _, c := range cards {
		if remaining[c] <= 0 {
			return nil, fmt.Errorf("invalid selection: %s not in hand", c)
		}
		remaining[c]--
	}
	for _, c := range cards {
		_ = p.RemoveFromHand(c)
		g.Deck.Discard(c)
	}
	if len(cards) == 0 {
		return nil, nil
	}
	g.Logf("%s discards %d card(s)", p.Name, len(cards))
	return []Event{{Type: EvtCardDiscarded, Player: p.ID, Data: map[string]interface{}{
		"count": len(cards), "from": "hand",
	}}}, nil
}

// RemoveFromCityToDiscard destroys a played card, returning any stored
// cards and the card itself to the discard pile. Attached workers are
// returned to their owners.
func (g *Game) RemoveFromCityToDiscard(owner *Player, idx int) (*PlayedCard, []Event, error) {
	pc, err := owner.RemoveFromCity(idx)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range pc.Workers {
		if wp := g.GetPlayer(id); wp != nil {
			wp.ReturnWorker()
		}
	}
	g.Deck.Discard(pc.StoredCards...)
	g.Deck.Discard(pc.Card)
	g.Logf("%s removes %s from their city", owner.Name, pc.Card)
	return pc, []Event{{Type: EvtCardDiscarded, Player: owner.ID, Data: map[string]interface{}{
		"card": string(pc.Card), "from": "city",
	}}}, nil
}

// MeadowCards returns a copy of the current meadow offer.
func (g *Game) MeadowCards() []CardName {
	return append([]CardName(nil), g.Meadow...)
}

// ProductionCardRefs lists p's production cards, optionally excluding
// one name (copy effects must not name themselves).
func (g *Game) ProductionCardRefs(p *Player, exclude CardName) []PlayedCardRef {
	var out []PlayedCardRef
	for i, pc := range p.City {
		if pc.Card == exclude {
			continue
		}
		if def, err := g.reg.Card(pc.Card); err == nil && def.Type == Production {
			out = append(out, pc.ref(i))
		}
	}
	return out
}

func formatResources(r Resources) string {
	s := ""
	for _, k := range []ResourceType{ResourceTwig, ResourceResin, ResourceBerry, ResourcePebble, ResourcePearl, ResourcePoint} {
		if r[k] > 0 {
			if s != "" {
				s += ", "
			}
			s += fmt.Sprintf("%d %s", r[k], k)
		}
	}
	if s == "" {
		return "nothing"
	}
	return s
}
