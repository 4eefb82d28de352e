package catalog

import "evergrove/internal/engine"

// Location names.
const (
	LocThreeTwigs       engine.LocationName = "Three Twigs"
	LocTwoTwigsCard     engine.LocationName = "Two Twigs and a Card"
	LocTwoResin         engine.LocationName = "Two Resin"
	LocResinCard        engine.LocationName = "One Resin and a Card"
	LocOnePebble        engine.LocationName = "One Pebble"
	LocBerryCard        engine.LocationName = "One Berry and a Card"
	LocOneBerry         engine.LocationName = "One Berry"
	LocTwoCardsPoint    engine.LocationName = "Two Cards and a Point"
	LocTwoAny           engine.LocationName = "Two Any Resources"
	LocTwoBerriesCard   engine.LocationName = "Two Berries and a Card"
	LocCopyBasic        engine.LocationName = "Copy Any Basic Location"
	LocDiscardForAny    engine.LocationName = "Discard Up to Three Cards"
	LocHaven            engine.LocationName = "Haven"
	LocPearlShoal       engine.LocationName = "Pearl Shoal"
)

// yield builds the resolve callback of an immediate location: gain a
// fixed bundle and optionally draw cards.
func yield(res engine.Resources, draw int) engine.ResolveFunc {
	return func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
		events := g.GainResources(p, res, string(in.Location))
		if draw > 0 {
			_, drawn := g.DrawCards(p, draw)
			events = append(events, drawn...)
		}
		return events, nil
	}
}

func registerLocations(r *engine.Registry) {
	basics := []*engine.LocationDef{
		{Name: LocThreeTwigs, Occupancy: engine.ExclusiveFour,
			Resolve: yield(engine.Resources{engine.ResourceTwig: 3}, 0)},
		{Name: LocTwoTwigsCard, Occupancy: engine.Unlimited,
			Resolve: yield(engine.Resources{engine.ResourceTwig: 2}, 1)},
		{Name: LocTwoResin, Occupancy: engine.ExclusiveFour,
			Resolve: yield(engine.Resources{engine.ResourceResin: 2}, 0)},
		{Name: LocResinCard, Occupancy: engine.Unlimited,
			Resolve: yield(engine.Resources{engine.ResourceResin: 1}, 1)},
		{Name: LocOnePebble, Occupancy: engine.ExclusiveFour,
			Resolve: yield(engine.Resources{engine.ResourcePebble: 1}, 0)},
		{Name: LocBerryCard, Occupancy: engine.Unlimited,
			Resolve: yield(engine.Resources{engine.ResourceBerry: 1}, 1)},
		{Name: LocOneBerry, Occupancy: engine.ExclusiveFour,
			Resolve: yield(engine.Resources{engine.ResourceBerry: 1}, 0)},
		{Name: LocTwoCardsPoint, Occupancy: engine.Unlimited,
			Resolve: yield(engine.Resources{engine.ResourcePoint: 1}, 2)},
	}
	for _, d := range basics {
		d.Basic = true
		r.RegisterLocation(d)
	}

	r.RegisterLocation(&engine.LocationDef{
		Name:      LocTwoAny,
		Occupancy: engine.Exclusive,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectResources {
				return g.GainResources(p, in.SelectedResources, string(LocTwoAny)), nil
			}
			g.PushPending(engine.GameInput{
				Type:            engine.InputSelectResources,
				Context:         locCtx(LocTwoAny),
				Prev:            in.Type,
				ResourceOptions: engine.BaseResourceTypes(),
				MinResources:    2,
				MaxResources:    2,
			})
			return nil, nil
		},
	})

	r.RegisterLocation(&engine.LocationDef{
		Name:      LocTwoBerriesCard,
		Occupancy: engine.Exclusive,
		Resolve:   yield(engine.Resources{engine.ResourceBerry: 2}, 1),
	})

	r.RegisterLocation(&engine.LocationDef{
		Name:      LocCopyBasic,
		Occupancy: engine.Exclusive,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectWorkerPlacement {
				return g.ResolveLocation(p, in.SelectedLocation, engine.GameInput{Type: engine.InputPlaceWorker})
			}
			var opts []engine.LocationName
			for name := range g.Locations {
				if def, err := g.LocationDef(name); err == nil && def.Basic {
					opts = append(opts, name)
				}
			}
			if len(opts) == 0 {
				return nil, nil
			}
			g.PushPending(engine.GameInput{
				Type:            engine.InputSelectWorkerPlacement,
				Context:         locCtx(LocCopyBasic),
				Prev:            in.Type,
				LocationOptions: opts,
				MinToSelect:     1,
				MaxToSelect:     1,
			})
			return nil, nil
		},
	})

	r.RegisterLocation(&engine.LocationDef{
		Name:      LocDiscardForAny,
		Occupancy: engine.Exclusive,
		Resolve:   discardForResources(LocDiscardForAny, 3, 1),
	})

	// Haven pays out one resource per two cards discarded.
	r.RegisterLocation(&engine.LocationDef{
		Name:      LocHaven,
		Occupancy: engine.Unlimited,
		Resolve:   discardForResources(LocHaven, engine.HandLimit, 2),
	})

	r.RegisterLocation(&engine.LocationDef{
		Name:          LocPearlShoal,
		Occupancy:     engine.Exclusive,
		ExpansionOnly: true,
		Resolve:       yield(engine.Resources{engine.ResourcePearl: 1}, 0),
	})
}

// discardForResources builds a two-step location: discard up to maxCards
// from hand, then pick one resource of any kind per perResource cards
// discarded.
func discardForResources(name engine.LocationName, maxCards, perResource int) engine.ResolveFunc {
	return func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
		switch in.Type {
		case engine.InputDiscardCards:
			events, err := g.DiscardFromHand(p, in.SelectedCards)
			if err != nil {
				return nil, err
			}
			if n := len(in.SelectedCards) / perResource; n > 0 {
				g.PushPending(engine.GameInput{
					Type:            engine.InputSelectResources,
					Context:         locCtx(name),
					Prev:            engine.InputDiscardCards,
					ResourceOptions: engine.BaseResourceTypes(),
					MinResources:    n,
					MaxResources:    n,
				})
			}
			return events, nil

		case engine.InputSelectResources:
			return g.GainResources(p, in.SelectedResources, string(name)), nil

		default:
			if len(p.Hand) == 0 {
				return nil, nil
			}
			max := maxCards
			if len(p.Hand) < max {
				max = len(p.Hand)
			}
			g.PushPending(engine.GameInput{
				Type:        engine.InputDiscardCards,
				Context:     locCtx(name),
				Prev:        in.Type,
				CardOptions: append([]engine.CardName(nil), p.Hand...),
				MinToSelect: 0,
				MaxToSelect: max,
			})
			return nil, nil
		}
	}
}
