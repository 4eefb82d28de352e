package engine

// ScoreEntry holds the scoring breakdown for one player.
type ScoreEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	CardScore  int    `json:"card_score"`  // base points of played cards
	BonusScore int    `json:"bonus_score"` // prosperity-style callbacks
	EventScore int    `json:"event_score"`
	AdornmentScore int `json:"adornment_score,omitempty"`
	WonderScore    int `json:"wonder_score,omitempty"`
	TokenScore int    `json:"token_score"` // point tokens and pearls
	Total      int    `json:"total"`
}

// CalculateScores computes final scores for all players. Pure: it may
// read any derived state but performs no mutation.
func (g *Game) CalculateScores() []ScoreEntry {
	entries := make([]ScoreEntry, len(g.Players))
	for i, p := range g.Players {
		entries[i] = g.scoreFor(p)
	}
	return entries
}

func (g *Game) scoreFor(p *Player) ScoreEntry {
	e := ScoreEntry{PlayerID: p.ID, PlayerName: p.Name}

	for _, pc := range p.City {
		def, err := g.reg.Card(pc.Card)
		if err != nil {
			continue
		}
		e.CardScore += def.BaseVP
		if def.PointsFn != nil {
			e.BonusScore += def.PointsFn(g, p)
		}
		e.TokenScore += pc.StoredResources[ResourcePoint]
	}

	for name := range p.ClaimedEvents {
		def, err := g.reg.Event(name)
		if err != nil {
			continue
		}
		e.EventScore += def.VP
		if def.PointsFn != nil {
			e.EventScore += def.PointsFn(g, p)
		}
	}

	for _, name := range p.Adornments {
		if def, err := g.reg.Adornment(name); err == nil && def.PointsFn != nil {
			e.AdornmentScore += def.PointsFn(g, p)
		}
	}
	for _, name := range p.Wonders {
		if def, err := g.reg.Wonder(name); err == nil {
			e.WonderScore += def.VP
		}
	}

	e.TokenScore += p.Resources[ResourcePoint]
	e.TokenScore += 2 * p.Resources[ResourcePearl]

	e.Total = e.CardScore + e.BonusScore + e.EventScore + e.AdornmentScore + e.WonderScore + e.TokenScore
	return e
}

// Points exposes one entity kind's score contribution without running
// a full game scoring pass.
func (g *Game) Points(kind EntityKind, name string, playerID string) int {
	p := g.GetPlayer(playerID)
	if p == nil {
		return 0
	}
	switch kind {
	case KindCard:
		if def, err := g.reg.Card(CardName(name)); err == nil {
			pts := def.BaseVP
			if def.PointsFn != nil {
				pts += def.PointsFn(g, p)
			}
			return pts
		}
	case KindEvent:
		if def, err := g.reg.Event(EventName(name)); err == nil {
			pts := def.VP
			if def.PointsFn != nil {
				pts += def.PointsFn(g, p)
			}
			return pts
		}
	case KindAdornment:
		if def, err := g.reg.Adornment(AdornmentName(name)); err == nil && def.PointsFn != nil {
			return def.PointsFn(g, p)
		}
	case KindWonder:
		if def, err := g.reg.Wonder(WonderName(name)); err == nil {
			return def.VP
		}
	}
	return 0
}
