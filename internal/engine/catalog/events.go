package catalog

import (
	"fmt"
	"sort"

	"evergrove/internal/engine"
)

// Event names.
const (
	EventHarvestFestival engine.EventName = "Harvest Festival"
	EventGrandTour       engine.EventName = "Grand Tour"
	EventTownAssembly    engine.EventName = "Town Assembly"
	EventCaravan         engine.EventName = "Caravan"

	EventFireworksDisplay engine.EventName = "Fireworks Display"
	EventFloodRelief      engine.EventName = "Flood Relief"
	EventRoyalWedding     engine.EventName = "Royal Wedding"
	EventPearlRegatta     engine.EventName = "Pearl Regatta"
)

func registerEvents(r *engine.Registry) {
	// Basic events: three cards of one type, three points.
	basics := []struct {
		name engine.EventName
		t    engine.CardType
	}{
		{EventHarvestFestival, engine.Production},
		{EventGrandTour, engine.Destination},
		{EventTownAssembly, engine.Governance},
		{EventCaravan, engine.Traveler},
	}
	for _, b := range basics {
		r.RegisterEvent(&engine.EventDef{
			Name:          b.name,
			VP:            3,
			RequiredType:  b.t,
			RequiredCount: 3,
		})
	}

	// Fireworks Display stores up to three twigs on the claim; each is
	// worth two points at the end.
	r.RegisterEvent(&engine.EventDef{
		Name:          EventFireworksDisplay,
		RequiredCards: []engine.CardName{CardMine, CardTwigCarrier},
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectResources {
				if in.SelectedResources.Total() == 0 {
					return nil, nil
				}
				if err := p.SpendResources(in.SelectedResources); err != nil {
					return nil, err
				}
				payload := p.ClaimedEvents[EventFireworksDisplay]
				payload.Resources = in.SelectedResources.Clone()
				g.Logf("%s places %d twig(s) on %s", p.Name,
					in.SelectedResources.Total(), EventFireworksDisplay)
				return nil, nil
			}
			g.PushPending(engine.GameInput{
				Type:            engine.InputSelectResources,
				Context:         eventCtx(EventFireworksDisplay),
				Prev:            in.Type,
				ResourceOptions: []engine.ResourceType{engine.ResourceTwig},
				MinResources:    0,
				MaxResources:    3,
			})
			return nil, nil
		},
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			payload := p.ClaimedEvents[EventFireworksDisplay]
			if payload == nil {
				return 0
			}
			return 2 * payload.Resources[engine.ResourceTwig]
		},
	})

	// Flood Relief sacrifices two production cards from the city; each
	// is worth three points at the end.
	r.RegisterEvent(&engine.EventDef{
		Name:          EventFloodRelief,
		RequiredCards: []engine.CardName{CardFarm, CardDoctor},
		Check: func(g *engine.Game, p *engine.Player, in engine.GameInput) error {
			if g.CardTypeCount(p, engine.Production) < 2 {
				return fmt.Errorf("event %s requires two production cards to give up", EventFloodRelief)
			}
			return nil
		},
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectPlayedCards {
				// Remove highest index first so earlier refs stay valid.
				sel := append([]engine.PlayedCardRef(nil), in.SelectedPlayedCards...)
				sort.Slice(sel, func(i, j int) bool { return sel[i].Index > sel[j].Index })
				payload := p.ClaimedEvents[EventFloodRelief]
				var events []engine.Event
				for _, ref := range sel {
					_, removed, err := g.RemoveFromCityToDiscard(p, ref.Index)
					if err != nil {
						return nil, err
					}
					payload.Cards = append(payload.Cards, ref.Card)
					events = append(events, removed...)
				}
				return events, nil
			}
			g.PushPending(engine.GameInput{
				Type:              engine.InputSelectPlayedCards,
				Context:           eventCtx(EventFloodRelief),
				Prev:              in.Type,
				PlayedCardOptions: g.ProductionCardRefs(p, ""),
				MinToSelect:       2,
				MaxToSelect:       2,
			})
			return nil, nil
		},
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			payload := p.ClaimedEvents[EventFloodRelief]
			if payload == nil {
				return 0
			}
			return 3 * len(payload.Cards)
		},
	})

	r.RegisterEvent(&engine.EventDef{
		Name:          EventRoyalWedding,
		VP:            5,
		RequiredCards: []engine.CardName{CardHusband, CardWife},
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectResources {
				return g.GainResources(p, in.SelectedResources, string(EventRoyalWedding)), nil
			}
			g.PushPending(engine.GameInput{
				Type:            engine.InputSelectResources,
				Context:         eventCtx(EventRoyalWedding),
				Prev:            in.Type,
				ResourceOptions: engine.BaseResourceTypes(),
				MinResources:    3,
				MaxResources:    3,
			})
			return nil, nil
		},
	})

	r.RegisterEvent(&engine.EventDef{
		Name:          EventPearlRegatta,
		VP:            4,
		RequiredType:  engine.Destination,
		RequiredCount: 2,
		ExpansionOnly: true,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			return g.GainResources(p, engine.Resources{engine.ResourcePearl: 1}, string(EventPearlRegatta)), nil
		},
	})
}
