package engine

import "fmt"

// The pending input queue sequences chained decisions within one
// logical action. It is processed strictly in order: Next only accepts
// an input matching the head entry, and every answer is validated
// against the offered option set before any entity logic runs.

// PushPending appends follow-up entries for the active player.
func (g *Game) PushPending(entries ...GameInput) {
	g.Pending = append(g.Pending, entries...)
}

// resolvePending matches the submitted input against the queue head,
// validates the concrete choice, pops the head and dispatches to the
// owning entity's resolution callback.
func (g *Game) resolvePending(p *Player, in GameInput) ([]Event, error) {
	head := g.Pending[0]
	if in.Type != head.Type {
		return nil, fmt.Errorf("%w: pending input is %s for %s, got %s",
			ErrInvalidInput, head.Type, head.Context.Name, in.Type)
	}
	if in.Context != head.Context {
		return nil, fmt.Errorf("%w: pending input belongs to %s %s",
			ErrInvalidInput, head.Context.Kind, head.Context.Name)
	}

	// The head entry's option set is authoritative; only the client's
	// answer fields are taken from the submitted input.
	merged := head
	merged.SelectedCards = in.SelectedCards
	merged.SelectedPlayedCards = in.SelectedPlayedCards
	merged.SelectedResources = in.SelectedResources
	merged.SelectedPlayer = in.SelectedPlayer
	merged.SelectedLocation = in.SelectedLocation
	merged.SelectedOption = in.SelectedOption
	merged.Payment = in.Payment
	merged.AutoAdvanced = in.AutoAdvanced

	if err := validateSelection(merged); err != nil {
		return nil, err
	}

	g.Pending = g.Pending[1:]
	events, err := g.dispatchPending(p, merged)
	if err != nil {
		// Restore the head so the caller can retry the step.
		g.Pending = append([]GameInput{head}, g.Pending...)
		return nil, err
	}
	return events, nil
}

func (g *Game) dispatchPending(p *Player, in GameInput) ([]Event, error) {
	switch in.Context.Kind {
	case KindCard:
		def, err := g.reg.Card(CardName(in.Context.Name))
		if err != nil {
			return nil, err
		}
		return def.Resolve(g, p, in)
	case KindLocation:
		def, err := g.reg.Location(LocationName(in.Context.Name))
		if err != nil {
			return nil, err
		}
		return def.Resolve(g, p, in)
	case KindEvent:
		def, err := g.reg.Event(EventName(in.Context.Name))
		if err != nil {
			return nil, err
		}
		return def.Resolve(g, p, in)
	case KindAdornment:
		def, err := g.reg.Adornment(AdornmentName(in.Context.Name))
		if err != nil {
			return nil, err
		}
		return def.Resolve(g, p, in)
	case KindWonder:
		def, err := g.reg.Wonder(WonderName(in.Context.Name))
		if err != nil {
			return nil, err
		}
		if def.Resolve != nil {
			return def.Resolve(g, p, in)
		}
		if in.Type == InputDiscardCards {
			return g.DiscardFromHand(p, in.SelectedCards)
		}
		return nil, fmt.Errorf("%w: wonder %s cannot resolve %s", ErrInvalidInput, def.Name, in.Type)
	case KindSeason:
		return g.resolveSeasonPending(p, in)
	case KindTrain:
		return g.resolveTrainPending(p, in)
	}
	return nil, fmt.Errorf("%w: unknown pending context kind %q", ErrInvalidInput, in.Context.Kind)
}

// validateSelection enforces the uniform rules every answer must obey,
// independent of entity kind: selections are subsets of the offered
// options and counts fall within the entry's bounds.
func validateSelection(in GameInput) error {
	switch in.Type {
	case InputSelectCards, InputDiscardCards:
		n := len(in.SelectedCards)
		if n < in.MinToSelect {
			return fmt.Errorf("too few cards selected: need at least %d", in.MinToSelect)
		}
		if n > in.MaxToSelect {
			return fmt.Errorf("too many cards selected: at most %d allowed", in.MaxToSelect)
		}
		remaining := map[CardName]int{}
		for _, c := range in.CardOptions {
			remaining[c]++
		}
		for _, c := range in.SelectedCards {
			if remaining[c] <= 0 {
				return fmt.Errorf("invalid selection: %s was not offered", c)
			}
			remaining[c]--
		}

	case InputSelectPlayedCards:
		n := len(in.SelectedPlayedCards)
		if n < in.MinToSelect {
			return fmt.Errorf("too few cards selected: need at least %d", in.MinToSelect)
		}
		if n > in.MaxToSelect {
			return fmt.Errorf("too many cards selected: at most %d allowed", in.MaxToSelect)
		}
		for _, sel := range in.SelectedPlayedCards {
			found := false
			for _, opt := range in.PlayedCardOptions {
				if sel == opt {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("invalid selection: %s (owner %s, index %d) was not offered",
					sel.Card, sel.Owner, sel.Index)
			}
		}

	case InputSelectResources:
		total := 0
		for k, v := range in.SelectedResources {
			if v < 0 {
				return fmt.Errorf("invalid selection: negative %s", k)
			}
			total += v
			if len(in.ResourceOptions) > 0 && v > 0 {
				allowed := false
				for _, opt := range in.ResourceOptions {
					if k == opt {
						allowed = true
						break
					}
				}
				if !allowed {
					return fmt.Errorf("invalid selection: %s is not an eligible resource here", k)
				}
			}
		}
		if total < in.MinResources {
			return fmt.Errorf("too few resources selected: need at least %d", in.MinResources)
		}
		if total > in.MaxResources {
			return fmt.Errorf("too many resources selected: at most %d allowed", in.MaxResources)
		}

	case InputSelectPlayer:
		if in.SelectedPlayer == "" {
			return fmt.Errorf("invalid selection: no player chosen")
		}
		for _, opt := range in.PlayerOptions {
			if in.SelectedPlayer == opt {
				return nil
			}
		}
		return fmt.Errorf("invalid selection: player %s was not offered", in.SelectedPlayer)

	case InputSelectWorkerPlacement:
		if in.SelectedLocation == "" {
			return fmt.Errorf("invalid selection: no location chosen")
		}
		for _, opt := range in.LocationOptions {
			if in.SelectedLocation == opt {
				return nil
			}
		}
		return fmt.Errorf("invalid selection: location %s was not offered", in.SelectedLocation)

	case InputSelectOption:
		if in.SelectedOption == "" {
			return fmt.Errorf("invalid selection: no option chosen")
		}
		for _, opt := range in.Options {
			if in.SelectedOption == opt {
				return nil
			}
		}
		return fmt.Errorf("invalid selection: option %q was not offered", in.SelectedOption)

	case InputSelectPaymentForCard:
		if in.Payment == nil {
			return fmt.Errorf("invalid selection: missing payment")
		}
	}
	return nil
}

// autoAdvance resolves queue heads that admit exactly one legal answer
// without round-tripping to the client. Synthesized inputs are marked
// AutoAdvanced so log messages can be phrased accordingly.
func (g *Game) autoAdvance(p *Player) []Event {
	var events []Event
	for len(g.Pending) > 0 {
		answer, ok := singleAnswer(g.Pending[0])
		if !ok {
			break
		}
		resolved, err := g.resolvePending(p, answer)
		if err != nil {
			// A definition pushed an unanswerable entry; leave it for
			// the client rather than wedging the queue.
			break
		}
		events = append(events, resolved...)
	}
	return events
}

// singleAnswer returns the synthesized input when the entry has exactly
// one legal resolution.
func singleAnswer(head GameInput) (GameInput, bool) {
	ans := GameInput{Type: head.Type, Context: head.Context, AutoAdvanced: true}
	switch head.Type {
	case InputSelectCards, InputDiscardCards:
		if head.MaxToSelect == 0 {
			return ans, true
		}
		if len(head.CardOptions) == head.MinToSelect && head.MinToSelect == head.MaxToSelect {
			ans.SelectedCards = append([]CardName(nil), head.CardOptions...)
			return ans, true
		}
	case InputSelectPlayedCards:
		if head.MaxToSelect == 0 {
			return ans, true
		}
		if len(head.PlayedCardOptions) == head.MinToSelect && head.MinToSelect == head.MaxToSelect {
			ans.SelectedPlayedCards = append([]PlayedCardRef(nil), head.PlayedCardOptions...)
			return ans, true
		}
	case InputSelectResources:
		if head.MaxResources == 0 {
			ans.SelectedResources = Resources{}
			return ans, true
		}
		if len(head.ResourceOptions) == 1 && head.MinResources == head.MaxResources {
			ans.SelectedResources = Resources{head.ResourceOptions[0]: head.MinResources}
			return ans, true
		}
	case InputSelectPlayer:
		if len(head.PlayerOptions) == 1 {
			ans.SelectedPlayer = head.PlayerOptions[0]
			return ans, true
		}
	case InputSelectWorkerPlacement:
		if len(head.LocationOptions) == 1 {
			ans.SelectedLocation = head.LocationOptions[0]
			return ans, true
		}
	case InputSelectOption:
		if len(head.Options) == 1 {
			ans.SelectedOption = head.Options[0]
			return ans, true
		}
	}
	return GameInput{}, false
}
