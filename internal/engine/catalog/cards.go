package catalog

import "evergrove/internal/engine"

// Card names.
const (
	CardFarm          engine.CardName = "Farm"
	CardGeneralStore  engine.CardName = "General Store"
	CardResinRefinery engine.CardName = "Resin Refinery"
	CardMine          engine.CardName = "Mine"
	CardTwigCarrier   engine.CardName = "Twig Carrier"
	CardPeddler       engine.CardName = "Peddler"
	CardWoodcarver    engine.CardName = "Woodcarver"
	CardDoctor        engine.CardName = "Doctor"
	CardChipSweep     engine.CardName = "Chip Sweep"
	CardTeacher       engine.CardName = "Teacher"
	CardHusband       engine.CardName = "Husband"
	CardWife          engine.CardName = "Wife"
	CardPearlDiver    engine.CardName = "Pearl Diver"

	CardInn        engine.CardName = "Inn"
	CardStorehouse engine.CardName = "Storehouse"
	CardPostOffice engine.CardName = "Post Office"
	CardQueen      engine.CardName = "Queen"
	CardUniversity engine.CardName = "University"
	CardChapel     engine.CardName = "Chapel"

	CardShopkeeper engine.CardName = "Shopkeeper"
	CardHistorian  engine.CardName = "Historian"
	CardCourthouse engine.CardName = "Courthouse"
	CardCrane      engine.CardName = "Crane"
	CardInnkeeper  engine.CardName = "Innkeeper"

	CardWanderer engine.CardName = "Wanderer"
	CardRanger   engine.CardName = "Ranger"
	CardFool     engine.CardName = "Fool"

	CardKing      engine.CardName = "King"
	CardArchitect engine.CardName = "Architect"
	CardCastle    engine.CardName = "Castle"
	CardPalace    engine.CardName = "Palace"
)

// produce builds the resolve callback of a fixed-yield production card.
func produce(res engine.Resources) engine.ResolveFunc {
	return func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
		return g.GainResources(p, res, string(in.Card)), nil
	}
}

// payUpToFor builds a one-step effect: pay up to max units of kind,
// gain reward units per unit paid.
func payUpToFor(name engine.CardName, kind engine.ResourceType, max int, reward engine.ResourceType) engine.ResolveFunc {
	return func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
		if in.Type != engine.InputSelectResources {
			g.PushPending(engine.GameInput{
				Type:            engine.InputSelectResources,
				Context:         cardCtx(name),
				Prev:            in.Type,
				ResourceOptions: []engine.ResourceType{kind},
				MinResources:    0,
				MaxResources:    max,
			})
			return nil, nil
		}
		n := in.SelectedResources.Total()
		if n == 0 {
			return nil, nil
		}
		if err := p.SpendResources(in.SelectedResources); err != nil {
			return nil, err
		}
		events := []engine.Event{{Type: engine.EvtResourcesSpent, Player: p.ID, Data: map[string]interface{}{
			"resources": in.SelectedResources, "for": string(name),
		}}}
		return append(events, g.GainResources(p, engine.Resources{reward: n}, string(name))...), nil
	}
}

func registerCards(r *engine.Registry) {
	registerProductionCards(r)
	registerDestinationCards(r)
	registerGovernanceCards(r)
	registerTravelerCards(r)
	registerProsperityCards(r)
}

func registerProductionCards(r *engine.Registry) {
	r.RegisterCard(&engine.CardDef{
		Name: CardFarm, Type: engine.Production,
		Cost:      engine.Resources{engine.ResourceTwig: 2, engine.ResourceResin: 1},
		BaseVP:    1,
		NumInDeck: 8,
		Resolve:   produce(engine.Resources{engine.ResourceBerry: 1}),
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardGeneralStore, Type: engine.Production,
		Cost:      engine.Resources{engine.ResourceResin: 1, engine.ResourcePebble: 1},
		BaseVP:    1,
		NumInDeck: 3,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			gain := engine.Resources{engine.ResourceBerry: 1}
			if p.HasInCity(CardFarm) {
				gain[engine.ResourceBerry] = 2
			}
			return g.GainResources(p, gain, string(CardGeneralStore)), nil
		},
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardResinRefinery, Type: engine.Production,
		Cost:      engine.Resources{engine.ResourceResin: 1, engine.ResourcePebble: 1},
		BaseVP:    1,
		NumInDeck: 3,
		Resolve:   produce(engine.Resources{engine.ResourceResin: 1}),
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardMine, Type: engine.Production,
		Cost:      engine.Resources{engine.ResourceTwig: 1, engine.ResourceResin: 1, engine.ResourcePebble: 1},
		BaseVP:    2,
		NumInDeck: 3,
		Resolve:   produce(engine.Resources{engine.ResourcePebble: 1}),
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardTwigCarrier, Type: engine.Production,
		Cost:      engine.Resources{engine.ResourceTwig: 1, engine.ResourcePebble: 1},
		BaseVP:    1,
		NumInDeck: 3,
		Resolve:   produce(engine.Resources{engine.ResourceTwig: 2}),
	})

	// Peddler trades up to two resources for the same number of any
	// other kinds, in two chained selections: pay, then receive.
	r.RegisterCard(&engine.CardDef{
		Name: CardPeddler, Type: engine.Production, Critter: true,
		Cost:           engine.Resources{engine.ResourceBerry: 2},
		BaseVP:         1,
		NumInDeck:      3,
		AssociatedCard: CardPostOffice,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type != engine.InputSelectResources {
				g.PushPending(engine.GameInput{
					Type:            engine.InputSelectResources,
					Context:         cardCtx(CardPeddler),
					Prev:            in.Type,
					ResourceOptions: engine.BaseResourceTypes(),
					MinResources:    0,
					MaxResources:    2,
				})
				return nil, nil
			}
			if in.Prev != engine.InputSelectResources {
				n := in.SelectedResources.Total()
				if n == 0 {
					return nil, nil
				}
				if err := p.SpendResources(in.SelectedResources); err != nil {
					return nil, err
				}
				events := []engine.Event{{Type: engine.EvtResourcesSpent, Player: p.ID, Data: map[string]interface{}{
					"resources": in.SelectedResources, "for": string(CardPeddler),
				}}}
				g.PushPending(engine.GameInput{
					Type:            engine.InputSelectResources,
					Context:         cardCtx(CardPeddler),
					Prev:            engine.InputSelectResources,
					ResourceOptions: engine.BaseResourceTypes(),
					MinResources:    n,
					MaxResources:    n,
				})
				return events, nil
			}
			return g.GainResources(p, in.SelectedResources, string(CardPeddler)), nil
		},
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardWoodcarver, Type: engine.Production, Critter: true,
		Cost:      engine.Resources{engine.ResourceBerry: 2},
		BaseVP:    2,
		NumInDeck: 3,
		Resolve:   payUpToFor(CardWoodcarver, engine.ResourceTwig, 3, engine.ResourcePoint),
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardDoctor, Type: engine.Production, Critter: true, Unique: true,
		Cost:           engine.Resources{engine.ResourceBerry: 4},
		BaseVP:         4,
		NumInDeck:      2,
		AssociatedCard: CardUniversity,
		Resolve:        payUpToFor(CardDoctor, engine.ResourceBerry, 3, engine.ResourcePoint),
	})

	// Chip Sweep re-runs one other production card in the owner's city.
	r.RegisterCard(&engine.CardDef{
		Name: CardChipSweep, Type: engine.Production, Critter: true,
		Cost:      engine.Resources{engine.ResourceBerry: 2},
		BaseVP:    2,
		NumInDeck: 3,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectPlayedCards {
				if len(in.SelectedPlayedCards) == 0 {
					return nil, nil
				}
				return g.ActivateProductionCard(p, in.SelectedPlayedCards[0].Card)
			}
			opts := g.ProductionCardRefs(p, CardChipSweep)
			if len(opts) == 0 {
				return nil, nil
			}
			g.PushPending(engine.GameInput{
				Type:              engine.InputSelectPlayedCards,
				Context:           cardCtx(CardChipSweep),
				Prev:              in.Type,
				PlayedCardOptions: opts,
				MinToSelect:       1,
				MaxToSelect:       1,
			})
			return nil, nil
		},
	})

	// Teacher reveals two cards, keeps one and gives the other away.
	r.RegisterCard(&engine.CardDef{
		Name: CardTeacher, Type: engine.Production, Critter: true,
		Cost:           engine.Resources{engine.ResourceBerry: 2},
		BaseVP:         2,
		NumInDeck:      3,
		AssociatedCard: CardChapel,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			switch in.Type {
			case engine.InputSelectCards:
				kept := in.SelectedCards[0]
				if err := p.AddToHand(kept); err != nil {
					g.Deck.Discard(kept)
				}
				other := otherRevealed(in.CardOptions, kept)
				others := g.PlayerIDs(p.ID)
				if other == "" || len(others) == 0 {
					if other != "" {
						g.Deck.Discard(other)
					}
					return nil, nil
				}
				g.PushPending(engine.GameInput{
					Type:          engine.InputSelectPlayer,
					Context:       cardCtx(CardTeacher),
					Prev:          engine.InputSelectCards,
					PlayerOptions: others,
					CardOptions:   []engine.CardName{other},
				})
				return nil, nil

			case engine.InputSelectPlayer:
				target := g.GetPlayer(in.SelectedPlayer)
				if target == nil {
					return nil, engine.ErrPlayerNotFound
				}
				card := in.CardOptions[0]
				if err := target.AddToHand(card); err != nil {
					g.Deck.Discard(card)
					return nil, nil
				}
				g.Logf("%s gives %s to %s", p.Name, card, target.Name)
				return []engine.Event{{Type: engine.EvtCardGiven, Player: p.ID, Data: map[string]interface{}{
					"card": string(card), "to": target.ID,
				}}}, nil

			default:
				drawn := g.Deck.Draw(2)
				switch len(drawn) {
				case 0:
					return nil, nil
				case 1:
					if err := p.AddToHand(drawn[0]); err != nil {
						g.Deck.Discard(drawn[0])
					}
					return nil, nil
				}
				g.PushPending(engine.GameInput{
					Type:        engine.InputSelectCards,
					Context:     cardCtx(CardTeacher),
					Prev:        in.Type,
					CardOptions: drawn,
					MinToSelect: 1,
					MaxToSelect: 1,
				})
				return nil, nil
			}
		},
	})

	// Husband produces one resource of any kind while the city holds
	// both a Farm and a Wife.
	r.RegisterCard(&engine.CardDef{
		Name: CardHusband, Type: engine.Production, Critter: true,
		Cost:           engine.Resources{engine.ResourceBerry: 3},
		BaseVP:         2,
		NumInDeck:      4,
		AssociatedCard: CardFarm,
		PairsWith:      CardWife,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectResources {
				return g.GainResources(p, in.SelectedResources, string(CardHusband)), nil
			}
			if !p.HasInCity(CardFarm) || !p.HasInCity(CardWife) {
				return nil, nil
			}
			g.PushPending(engine.GameInput{
				Type:            engine.InputSelectResources,
				Context:         cardCtx(CardHusband),
				Prev:            in.Type,
				ResourceOptions: engine.BaseResourceTypes(),
				MinResources:    1,
				MaxResources:    1,
			})
			return nil, nil
		},
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardPearlDiver, Type: engine.Production, Critter: true,
		Cost:          engine.Resources{engine.ResourceBerry: 2},
		BaseVP:        1,
		NumInDeck:     3,
		ExpansionOnly: true,
		Resolve:       produce(engine.Resources{engine.ResourcePearl: 1}),
	})
}

// otherRevealed returns the revealed card that was not kept.
func otherRevealed(revealed []engine.CardName, kept engine.CardName) engine.CardName {
	skipped := false
	for _, c := range revealed {
		if c == kept && !skipped {
			skipped = true
			continue
		}
		return c
	}
	return ""
}

func registerDestinationCards(r *engine.Registry) {
	// Inn lets the visitor play a meadow card for up to three fewer
	// resources of any kind.
	r.RegisterCard(&engine.CardDef{
		Name: CardInn, Type: engine.Destination,
		Cost:      engine.Resources{engine.ResourceTwig: 2, engine.ResourceResin: 1},
		BaseVP:    2,
		NumInDeck: 3,
		Open:      true,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			switch in.Type {
			case engine.InputSelectCards:
				chosen := in.SelectedCards[0]
				def, err := g.CardDef(chosen)
				if err != nil {
					return nil, err
				}
				g.PushPending(engine.GameInput{
					Type:         engine.InputSelectPaymentForCard,
					Context:      cardCtx(CardInn),
					Prev:         engine.InputSelectCards,
					Card:         chosen,
					PaymentCost:  def.Cost,
					WildDiscount: 3,
				})
				return nil, nil

			case engine.InputSelectPaymentForCard:
				def, err := g.CardDef(in.Card)
				if err != nil {
					return nil, err
				}
				paid := engine.Resources{}
				if in.Payment != nil {
					paid = in.Payment.Resources
				}
				if err := engine.ValidateDiscountedPayment(p, def.Cost, paid, in.WildDiscount); err != nil {
					return nil, err
				}
				play := engine.GameInput{
					Type:   engine.InputPlayCard,
					Card:   in.Card,
					Source: engine.SourceMeadow,
				}
				if err := g.CanPlayCardFree(p, play); err != nil {
					return nil, err
				}
				if err := p.SpendResources(paid); err != nil {
					return nil, err
				}
				return g.PlayCardFree(p, play)

			default:
				var opts []engine.CardName
				for _, c := range g.MeadowCards() {
					if def, err := g.CardDef(c); err == nil && !(def.Unique && p.HasInCity(c)) {
						opts = append(opts, c)
					}
				}
				if len(opts) == 0 {
					return nil, nil
				}
				g.PushPending(engine.GameInput{
					Type:        engine.InputSelectCards,
					Context:     cardCtx(CardInn),
					Prev:        in.Type,
					CardOptions: opts,
					MinToSelect: 1,
					MaxToSelect: 1,
				})
				return nil, nil
			}
		},
	})

	// Storehouse pays out one of four fixed bundles per visit.
	r.RegisterCard(&engine.CardDef{
		Name: CardStorehouse, Type: engine.Destination,
		Cost:      engine.Resources{engine.ResourceTwig: 1, engine.ResourceResin: 1, engine.ResourcePebble: 1},
		BaseVP:    2,
		NumInDeck: 3,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			bundles := map[string]engine.Resources{
				"3 TWIG":   {engine.ResourceTwig: 3},
				"2 RESIN":  {engine.ResourceResin: 2},
				"2 BERRY":  {engine.ResourceBerry: 2},
				"1 PEBBLE": {engine.ResourcePebble: 1},
			}
			if in.Type == engine.InputSelectOption {
				return g.GainResources(p, bundles[in.SelectedOption], string(CardStorehouse)), nil
			}
			g.PushPending(engine.GameInput{
				Type:    engine.InputSelectOption,
				Context: cardCtx(CardStorehouse),
				Prev:    in.Type,
				Options: []string{"3 TWIG", "2 RESIN", "2 BERRY", "1 PEBBLE"},
			})
			return nil, nil
		},
	})

	// Post Office hands two cards to an opponent, then refills the
	// visitor's hand from the deck.
	r.RegisterCard(&engine.CardDef{
		Name: CardPostOffice, Type: engine.Destination,
		Cost:      engine.Resources{engine.ResourceTwig: 1, engine.ResourceResin: 2},
		BaseVP:    2,
		NumInDeck: 3,
		Open:      true,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			switch in.Type {
			case engine.InputSelectPlayer:
				give := 2
				if len(p.Hand) < give {
					give = len(p.Hand)
				}
				g.PushPending(engine.GameInput{
					Type:          engine.InputSelectCards,
					Context:       cardCtx(CardPostOffice),
					Prev:          engine.InputSelectPlayer,
					CardOptions:   append([]engine.CardName(nil), p.Hand...),
					PlayerOptions: []string{in.SelectedPlayer},
					MinToSelect:   give,
					MaxToSelect:   give,
				})
				return nil, nil

			case engine.InputSelectCards:
				target := g.GetPlayer(in.PlayerOptions[0])
				if target == nil {
					return nil, engine.ErrPlayerNotFound
				}
				var events []engine.Event
				for _, c := range in.SelectedCards {
					if err := p.RemoveFromHand(c); err != nil {
						return nil, err
					}
					if err := target.AddToHand(c); err != nil {
						g.Deck.Discard(c)
						continue
					}
					events = append(events, engine.Event{Type: engine.EvtCardGiven, Player: p.ID, Data: map[string]interface{}{
						"card": string(c), "to": target.ID,
					}})
				}
				if len(in.SelectedCards) > 0 {
					g.Logf("%s gives %d card(s) to %s", p.Name, len(in.SelectedCards), target.Name)
				}
				_, drawn := g.DrawCards(p, engine.HandLimit)
				return append(events, drawn...), nil

			default:
				others := g.PlayerIDs(p.ID)
				if len(others) == 0 {
					return nil, nil
				}
				g.PushPending(engine.GameInput{
					Type:          engine.InputSelectPlayer,
					Context:       cardCtx(CardPostOffice),
					Prev:          in.Type,
					PlayerOptions: others,
				})
				return nil, nil
			}
		},
	})

	// Queen plays any card worth up to three base points for free.
	r.RegisterCard(&engine.CardDef{
		Name: CardQueen, Type: engine.Destination, Critter: true, Unique: true,
		Cost:           engine.Resources{engine.ResourceBerry: 5},
		BaseVP:         4,
		NumInDeck:      2,
		AssociatedCard: CardPalace,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectCards {
				chosen := in.SelectedCards[0]
				src := engine.SourceMeadow
				if p.HasInHand(chosen) {
					src = engine.SourceHand
				}
				return g.PlayCardFree(p, engine.GameInput{
					Type:   engine.InputPlayCard,
					Card:   chosen,
					Source: src,
				})
			}
			var opts []engine.CardName
			for _, c := range append(append([]engine.CardName(nil), p.Hand...), g.MeadowCards()...) {
				def, err := g.CardDef(c)
				if err != nil || def.BaseVP > 3 {
					continue
				}
				if def.Unique && p.HasInCity(c) {
					continue
				}
				opts = append(opts, c)
			}
			if len(opts) == 0 {
				return nil, nil
			}
			g.PushPending(engine.GameInput{
				Type:        engine.InputSelectCards,
				Context:     cardCtx(CardQueen),
				Prev:        in.Type,
				CardOptions: opts,
				MinToSelect: 1,
				MaxToSelect: 1,
			})
			return nil, nil
		},
	})

	// University razes one city card, refunding its cost plus one
	// resource of any kind and a point token.
	r.RegisterCard(&engine.CardDef{
		Name: CardUniversity, Type: engine.Destination, Unique: true,
		Cost:      engine.Resources{engine.ResourceResin: 1, engine.ResourcePebble: 2},
		BaseVP:    3,
		NumInDeck: 2,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			switch in.Type {
			case engine.InputSelectPlayedCards:
				ref := in.SelectedPlayedCards[0]
				def, err := g.CardDef(ref.Card)
				if err != nil {
					return nil, err
				}
				_, events, err := g.RemoveFromCityToDiscard(p, ref.Index)
				if err != nil {
					return nil, err
				}
				refund := def.Cost.Clone()
				refund[engine.ResourcePoint]++
				events = append(events, g.GainResources(p, refund, string(CardUniversity))...)
				g.PushPending(engine.GameInput{
					Type:            engine.InputSelectResources,
					Context:         cardCtx(CardUniversity),
					Prev:            engine.InputSelectPlayedCards,
					ResourceOptions: engine.BaseResourceTypes(),
					MinResources:    1,
					MaxResources:    1,
				})
				return events, nil

			case engine.InputSelectResources:
				return g.GainResources(p, in.SelectedResources, string(CardUniversity)), nil

			default:
				var opts []engine.PlayedCardRef
				for i, pc := range p.City {
					if pc.Card == CardUniversity {
						continue
					}
					opts = append(opts, engine.PlayedCardRef{Owner: p.ID, Card: pc.Card, Index: i})
				}
				if len(opts) == 0 {
					return nil, nil
				}
				g.PushPending(engine.GameInput{
					Type:              engine.InputSelectPlayedCards,
					Context:           cardCtx(CardUniversity),
					Prev:              in.Type,
					PlayedCardOptions: opts,
					MinToSelect:       1,
					MaxToSelect:       1,
				})
				return nil, nil
			}
		},
	})

	// Chapel accumulates a point token per visit and draws two cards
	// per token on it.
	r.RegisterCard(&engine.CardDef{
		Name: CardChapel, Type: engine.Destination, Unique: true,
		Cost:      engine.Resources{engine.ResourceTwig: 2, engine.ResourcePebble: 1},
		BaseVP:    2,
		NumInDeck: 2,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			pc := p.FindInCity(CardChapel)
			if pc == nil {
				return nil, nil
			}
			if pc.StoredResources == nil {
				pc.StoredResources = engine.Resources{}
			}
			pc.StoredResources[engine.ResourcePoint]++
			g.Logf("%s places a point on %s", p.Name, CardChapel)
			_, drawn := g.DrawCards(p, 2*pc.StoredResources[engine.ResourcePoint])
			return drawn, nil
		},
	})
}

func registerGovernanceCards(r *engine.Registry) {
	r.RegisterCard(&engine.CardDef{
		Name: CardShopkeeper, Type: engine.Governance, Critter: true, Unique: true,
		Cost:           engine.Resources{engine.ResourceBerry: 2},
		BaseVP:         1,
		NumInDeck:      3,
		AssociatedCard: CardGeneralStore,
		OnCardPlayed: func(g *engine.Game, p *engine.Player, played *engine.PlayedCard) ([]engine.Event, error) {
			def, err := g.CardDef(played.Card)
			if err != nil || !def.Critter {
				return nil, nil
			}
			return g.GainResources(p, engine.Resources{engine.ResourceBerry: 1}, string(CardShopkeeper)), nil
		},
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardHistorian, Type: engine.Governance, Critter: true, Unique: true,
		Cost:      engine.Resources{engine.ResourceBerry: 2},
		BaseVP:    1,
		NumInDeck: 3,
		OnCardPlayed: func(g *engine.Game, p *engine.Player, played *engine.PlayedCard) ([]engine.Event, error) {
			_, events := g.DrawCards(p, 1)
			return events, nil
		},
	})

	// Courthouse grants a non-berry resource after each construction.
	r.RegisterCard(&engine.CardDef{
		Name: CardCourthouse, Type: engine.Governance, Unique: true,
		Cost:      engine.Resources{engine.ResourceTwig: 1, engine.ResourceResin: 1, engine.ResourcePebble: 1},
		BaseVP:    2,
		NumInDeck: 2,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectResources {
				return g.GainResources(p, in.SelectedResources, string(CardCourthouse)), nil
			}
			return nil, nil
		},
		OnCardPlayed: func(g *engine.Game, p *engine.Player, played *engine.PlayedCard) ([]engine.Event, error) {
			def, err := g.CardDef(played.Card)
			if err != nil || def.Critter {
				return nil, nil
			}
			g.PushPending(engine.GameInput{
				Type:    engine.InputSelectResources,
				Context: cardCtx(CardCourthouse),
				Prev:    engine.InputPlayCard,
				ResourceOptions: []engine.ResourceType{
					engine.ResourceTwig, engine.ResourceResin, engine.ResourcePebble,
				},
				MinResources: 1,
				MaxResources: 1,
			})
			return nil, nil
		},
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardCrane, Type: engine.Governance, Unique: true,
		Cost:      engine.Resources{engine.ResourcePebble: 1},
		BaseVP:    1,
		NumInDeck: 3,
		Discount: &engine.HelperDiscount{
			Wild:             3,
			ForConstructions: true,
			Consumes:         true,
		},
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardInnkeeper, Type: engine.Governance, Critter: true, Unique: true,
		Cost:           engine.Resources{engine.ResourceBerry: 1},
		BaseVP:         1,
		NumInDeck:      3,
		AssociatedCard: CardInn,
		Discount: &engine.HelperDiscount{
			Kind:        engine.ResourceBerry,
			KindAmount:  3,
			ForCritters: true,
			Consumes:    true,
		},
	})
}

func registerTravelerCards(r *engine.Registry) {
	r.RegisterCard(&engine.CardDef{
		Name: CardWanderer, Type: engine.Traveler, Critter: true,
		Cost:        engine.Resources{engine.ResourceBerry: 1},
		BaseVP:      1,
		NumInDeck:   3,
		TakesNoSlot: true,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			_, events := g.DrawCards(p, 3)
			return events, nil
		},
	})

	// Ranger moves one deployed worker to a fresh placement.
	r.RegisterCard(&engine.CardDef{
		Name: CardRanger, Type: engine.Traveler, Critter: true, Unique: true,
		Cost:      engine.Resources{engine.ResourceBerry: 2},
		BaseVP:    1,
		NumInDeck: 2,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type != engine.InputSelectWorkerPlacement {
				opts := g.PlacementsOf(p)
				if len(opts) == 0 {
					return nil, nil
				}
				g.PushPending(engine.GameInput{
					Type:            engine.InputSelectWorkerPlacement,
					Context:         cardCtx(CardRanger),
					Prev:            in.Type,
					LocationOptions: opts,
					MinToSelect:     1,
					MaxToSelect:     1,
				})
				return nil, nil
			}
			if in.Prev != engine.InputSelectWorkerPlacement {
				if err := g.RecallWorker(p, in.SelectedLocation); err != nil {
					return nil, err
				}
				g.Logf("%s recalls a worker from %s", p.Name, in.SelectedLocation)
				events := []engine.Event{{Type: engine.EvtWorkerRecalled, Player: p.ID, Data: map[string]interface{}{
					"location": string(in.SelectedLocation),
				}}}
				opts := g.OpenLocations(p)
				if len(opts) == 0 {
					return events, nil
				}
				g.PushPending(engine.GameInput{
					Type:            engine.InputSelectWorkerPlacement,
					Context:         cardCtx(CardRanger),
					Prev:            engine.InputSelectWorkerPlacement,
					LocationOptions: opts,
					MinToSelect:     1,
					MaxToSelect:     1,
				})
				return events, nil
			}
			return g.PlaceWorkerOn(p, in.SelectedLocation)
		},
	})

	// Fool is worth negative points and settles in an opponent's city.
	r.RegisterCard(&engine.CardDef{
		Name: CardFool, Type: engine.Traveler, Critter: true, Unique: true,
		Cost:        engine.Resources{engine.ResourceBerry: 3},
		BaseVP:      -2,
		NumInDeck:   2,
		TakesNoSlot: true,
		Resolve: func(g *engine.Game, p *engine.Player, in engine.GameInput) ([]engine.Event, error) {
			if in.Type == engine.InputSelectPlayer {
				target := g.GetPlayer(in.SelectedPlayer)
				if target == nil {
					return nil, engine.ErrPlayerNotFound
				}
				idx := -1
				for i := len(p.City) - 1; i >= 0; i-- {
					if p.City[i].Card == CardFool {
						idx = i
						break
					}
				}
				if idx < 0 {
					return nil, nil
				}
				pc, err := p.RemoveFromCity(idx)
				if err != nil {
					return nil, err
				}
				pc.Owner = target.ID
				target.City = append(target.City, pc)
				g.Logf("%s sends the %s to %s's city", p.Name, CardFool, target.Name)
				return []engine.Event{{Type: engine.EvtCardGiven, Player: p.ID, Data: map[string]interface{}{
					"card": string(CardFool), "to": target.ID,
				}}}, nil
			}
			var opts []string
			for _, id := range g.PlayerIDs(p.ID) {
				if other := g.GetPlayer(id); other != nil && !other.HasInCity(CardFool) {
					opts = append(opts, id)
				}
			}
			if len(opts) == 0 {
				return nil, nil
			}
			g.PushPending(engine.GameInput{
				Type:          engine.InputSelectPlayer,
				Context:       cardCtx(CardFool),
				Prev:          in.Type,
				PlayerOptions: opts,
			})
			return nil, nil
		},
	})
}

func registerProsperityCards(r *engine.Registry) {
	r.RegisterCard(&engine.CardDef{
		Name: CardWife, Type: engine.Prosperity, Critter: true,
		Cost:           engine.Resources{engine.ResourceBerry: 2},
		BaseVP:         2,
		NumInDeck:      4,
		AssociatedCard: CardFarm,
		PairsWith:      CardHusband,
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			if p.HasInCity(CardHusband) {
				return 3
			}
			return 0
		},
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardKing, Type: engine.Prosperity, Critter: true, Unique: true,
		Cost:           engine.Resources{engine.ResourceBerry: 6},
		BaseVP:         4,
		NumInDeck:      2,
		AssociatedCard: CardCastle,
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			pts := 0
			for name := range p.ClaimedEvents {
				if def, err := g.EventDef(name); err == nil {
					if def.RequiredCount > 0 {
						pts++
					} else {
						pts += 2
					}
				}
			}
			return pts
		},
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardArchitect, Type: engine.Prosperity, Critter: true, Unique: true,
		Cost:      engine.Resources{engine.ResourceBerry: 4},
		BaseVP:    2,
		NumInDeck: 2,
		PointsFn: func(g *engine.Game, p *engine.Player) int {
			n := p.NumResource(engine.ResourceResin) + p.NumResource(engine.ResourcePebble)
			if n > 6 {
				n = 6
			}
			return n
		},
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardCastle, Type: engine.Prosperity, Unique: true,
		Cost:      engine.Resources{engine.ResourceTwig: 2, engine.ResourceResin: 3, engine.ResourcePebble: 3},
		BaseVP:    4,
		NumInDeck: 2,
		PointsFn:  countCityCards(func(d *engine.CardDef) bool { return !d.Critter && !d.Unique }),
	})

	r.RegisterCard(&engine.CardDef{
		Name: CardPalace, Type: engine.Prosperity, Unique: true,
		Cost:      engine.Resources{engine.ResourceTwig: 2, engine.ResourceResin: 3, engine.ResourcePebble: 3},
		BaseVP:    4,
		NumInDeck: 2,
		PointsFn: countCityCards(func(d *engine.CardDef) bool {
			return !d.Critter && d.Unique && d.Name != CardPalace
		}),
	})
}

// countCityCards builds a prosperity scorer counting city cards that
// match the predicate.
func countCityCards(match func(*engine.CardDef) bool) engine.PointsFunc {
	return func(g *engine.Game, p *engine.Player) int {
		n := 0
		for _, pc := range p.City {
			if def, err := g.CardDef(pc.Card); err == nil && match(def) {
				n++
			}
		}
		return n
	}
}
