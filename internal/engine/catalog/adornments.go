package catalog

import "evergrove/internal/engine"

// Adornment names.
const (
	AdornmentSpyglass  engine.AdornmentName = "Spyglass"
	AdornmentMirror    engine.AdornmentName = "Mirror"
	AdornmentBell      engine.AdornmentName = "Bell"
	AdornmentCompass   engine.AdornmentName = "Compass"
	AdornmentSundial   engine.AdornmentName = "Sundial"
	AdornmentKey       engine.AdornmentName = "Key to the City"
	AdornmentMasque    engine.AdornmentName = "Masque"
	AdornmentTiara     engine.AdornmentName = "Tiara"
)

func registerAdornments(r *engine.Registry) {
	r.RegisterAdornment(&engine.AdornmentDef{
		Name: AdornmentSpyglass,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectResources {
				return g.GainResources(p, in.SelectedResources, string(AdornmentSpyglass)), nil
			}
			events := g.GainResources(p, engine.Resources{engine.ResourcePearl: 1}, string(AdornmentSpyglass))
			_, drawn := g.DrawCards(p, 1)
			events = append(events, drawn...)
			g.PushPending(engine.GameInput{
				Type:            engine.InputSelectResources,
				Context:         adornmentCtx(AdornmentSpyglass),
				Prev:            in.Type,
				ResourceOptions: engine.BaseResourceTypes(),
				MinResources:    1,
				MaxResources:    1,
			})
			return events, nil
		},
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			return 3 * len(p.Wonders)
		},
	})

	r.RegisterAdornment(&engine.AdornmentDef{
		Name: AdornmentMirror,
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			n := 0
			for _, t := range engine.AllCardTypes() {
				if g.CardTypeCount(p, t) > 0 {
					n++
				}
			}
			return n
		},
	})

	r.RegisterAdornment(&engine.AdornmentDef{
		Name: AdornmentBell,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			return g.GainResources(p, engine.Resources{engine.ResourceBerry: 3}, string(AdornmentBell)), nil
		},
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			return countMatching(g, p, func(d *engine.CardDef) bool { return d.Critter }) / 2
		},
	})

	r.RegisterAdornment(&engine.AdornmentDef{
		Name: AdornmentCompass,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			_, events := g.DrawCards(p, 2)
			return events, nil
		},
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			return g.CardTypeCount(p, engine.Traveler)
		},
	})

	// Sundial re-runs one production card.
	r.RegisterAdornment(&engine.AdornmentDef{
		Name: AdornmentSundial,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectPlayedCards {
				if len(in.SelectedPlayedCards) == 0 {
					return nil, nil
				}
				return g.ActivateProductionCard(p, in.SelectedPlayedCards[0].Card)
			}
			opts := g.ProductionCardRefs(p, "")
			if len(opts) == 0 {
				return nil, nil
			}
			g.PushPending(engine.GameInput{
				Type:              engine.InputSelectPlayedCards,
				Context:           adornmentCtx(AdornmentSundial),
				Prev:              in.Type,
				PlayedCardOptions: opts,
				MinToSelect:       0,
				MaxToSelect:       1,
			})
			return nil, nil
		},
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			return g.CardTypeCount(p, engine.Production) / 2
		},
	})

	r.RegisterAdornment(&engine.AdornmentDef{
		Name: AdornmentKey,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectResources {
				return g.GainResources(p, in.SelectedResources, string(AdornmentKey)), nil
			}
			g.PushPending(engine.GameInput{
				Type:            engine.InputSelectResources,
				Context:         adornmentCtx(AdornmentKey),
				Prev:            in.Type,
				ResourceOptions: engine.BaseResourceTypes(),
				MinResources:    2,
				MaxResources:    2,
			})
			return nil, nil
		},
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			return countMatching(g, p, func(d *engine.CardDef) bool { return !d.Critter }) / 2
		},
	})

	r.RegisterAdornment(&engine.AdornmentDef{
		Name: AdornmentMasque,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			return g.GainResources(p, engine.Resources{engine.ResourcePoint: 3}, string(AdornmentMasque)), nil
		},
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			return len(p.ClaimedEvents)
		},
	})

	r.RegisterAdornment(&engine.AdornmentDef{
		Name: AdornmentTiara,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectResources {
				return g.GainResources(p, in.SelectedResources, string(AdornmentTiara)), nil
			}
			n := g.CardTypeCount(p, engine.Prosperity)
			if n == 0 {
				return nil, nil
			}
			g.PushPending(engine.GameInput{
				Type:            engine.InputSelectResources,
				Context:         adornmentCtx(AdornmentTiara),
				Prev:            in.Type,
				ResourceOptions: engine.BaseResourceTypes(),
				MinResources:    n,
				MaxResources:    n,
			})
			return nil, nil
		},
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			return g.CardTypeCount(p, engine.Prosperity)
		},
	})
}

func countMatching(g *engine.Game, p *engine.Player, match func(*engine.CardDef) bool) int {
	n := 0
	for _, pc := range p.City {
		if def, err := g.CardDef(pc.Card); err == nil && match(def) {
			n++
		}
	}
	return n
}
