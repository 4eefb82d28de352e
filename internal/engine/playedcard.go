package engine

// PlayedCard is one card sitting in a player's city. Effects may store
// resources or cards on it, attach workers to it, or remove it.
type PlayedCard struct {
	Card  CardName `json:"card"`
	Owner string   `json:"owner"`

	// StoredResources holds resources placed on the card by effects
	// (including point tokens).
	StoredResources Resources `json:"storedResources,omitempty"`
	// StoredCards holds face-down cards placed under the card.
	StoredCards []CardName `json:"storedCards,omitempty"`
	// Workers counts workers currently visiting this destination.
	Workers []string `json:"workers,omitempty"`

	// SharesSlot marks a card that does not consume a city slot of its
	// own (a paired critter, or a traveler that never settles).
	SharesSlot bool `json:"sharesSlot,omitempty"`
	// UsedForCritter marks a construction whose slot also hosts a critter.
	UsedForCritter bool `json:"usedForCritter,omitempty"`
}

func (pc *PlayedCard) clone() *PlayedCard {
	out := *pc
	out.StoredResources = pc.StoredResources.Clone()
	out.StoredCards = append([]CardName(nil), pc.StoredCards...)
	out.Workers = append([]string(nil), pc.Workers...)
	return &out
}

// ref builds the wire reference for this card at position idx.
func (pc *PlayedCard) ref(idx int) PlayedCardRef {
	return PlayedCardRef{Owner: pc.Owner, Card: pc.Card, Index: idx}
}
