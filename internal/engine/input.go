package engine

// InputType identifies player inputs sent to Game.Next.
type InputType string

// Top-level actions (legal only when the pending queue is empty).
const (
	InputPlaceWorker      InputType = "PLACE_WORKER"
	InputPlayCard         InputType = "PLAY_CARD"
	InputVisitDestination InputType = "VISIT_DESTINATION_CARD"
	InputClaimEvent       InputType = "CLAIM_EVENT"
	InputClaimWonder      InputType = "CLAIM_WONDER"
	InputPlayAdornment    InputType = "PLAY_ADORNMENT"
	InputPlayTrainTicket  InputType = "PLAY_TRAIN_TICKET"
	InputPrepareForSeason InputType = "PREPARE_FOR_SEASON"
	InputGameEnd          InputType = "GAME_END"
)

// Follow-up inputs (legal only against a matching pending queue head).
const (
	InputSelectCards           InputType = "SELECT_CARDS"
	InputSelectPlayedCards     InputType = "SELECT_PLAYED_CARDS"
	InputSelectResources       InputType = "SELECT_RESOURCES"
	InputSelectPlayer          InputType = "SELECT_PLAYER"
	InputSelectPaymentForCard  InputType = "SELECT_PAYMENT_FOR_CARD"
	InputSelectWorkerPlacement InputType = "SELECT_WORKER_PLACEMENT"
	InputSelectOption          InputType = "SELECT_OPTION_GENERIC"
	InputDiscardCards          InputType = "DISCARD_CARDS"
)

// CardSource says where a card is being played or selected from.
type CardSource string

const (
	SourceHand   CardSource = "HAND"
	SourceMeadow CardSource = "MEADOW"
	SourceDrawn  CardSource = "DRAWN" // cards revealed mid-effect
)

// EffectContext names the entity driving a multi-step interaction.
// It is threaded value-to-value through every pending entry spawned
// by that entity, never as a back-pointer into prior inputs.
type EffectContext struct {
	Kind EntityKind `json:"kind"`
	Name string     `json:"name"`
}

// PlayedCardRef identifies one card inside a player's city.
type PlayedCardRef struct {
	Owner string   `json:"owner"`
	Card  CardName `json:"card"`
	Index int      `json:"index"` // position in the owner's city list
}

// CardPayment is a client-proposed payment breakdown for one card.
type CardPayment struct {
	Resources     Resources `json:"resources,omitempty"`
	CardToUse     CardName  `json:"cardToUse,omitempty"`     // discount helper in city
	UseAssociated bool      `json:"useAssociated,omitempty"` // critter onto its construction, free
}

// GameInput is the single tagged union submitted to Game.Next.
// Which fields are meaningful depends on Type; pending queue entries
// reuse the same shape with the option-set fields filled in so the
// client can render a choice and the engine can re-validate the answer.
type GameInput struct {
	Type InputType `json:"inputType"`

	// Top-level action parameters.
	Card      CardName      `json:"card,omitempty"`
	Source    CardSource    `json:"source,omitempty"`
	Location  LocationName  `json:"location,omitempty"`
	Event     EventName     `json:"event,omitempty"`
	Adornment AdornmentName `json:"adornment,omitempty"`
	Wonder    WonderName    `json:"wonder,omitempty"`
	Payment   *CardPayment  `json:"payment,omitempty"`
	// PlayedCard names a card in someone's city (destination visits).
	PlayedCard *PlayedCardRef `json:"playedCard,omitempty"`

	// Continuation carried by pending entries.
	Context EffectContext `json:"context,omitempty"`
	Prev    InputType     `json:"prevInputType,omitempty"`

	// Option sets offered to the client.
	CardOptions       []CardName      `json:"cardOptions,omitempty"`
	PlayedCardOptions []PlayedCardRef `json:"playedCardOptions,omitempty"`
	ResourceOptions   []ResourceType  `json:"resourceOptions,omitempty"`
	PlayerOptions     []string        `json:"playerOptions,omitempty"`
	LocationOptions   []LocationName  `json:"locationOptions,omitempty"`
	Options           []string        `json:"options,omitempty"`
	MinToSelect       int             `json:"minToSelect,omitempty"`
	MaxToSelect       int             `json:"maxToSelect,omitempty"`
	MinResources      int             `json:"minResources,omitempty"`
	MaxResources      int             `json:"maxResources,omitempty"`
	PaymentCost       Resources       `json:"paymentCost,omitempty"`  // SELECT_PAYMENT_FOR_CARD
	WildDiscount      int             `json:"wildDiscount,omitempty"` // free units allowed on that payment

	// The client's concrete answer.
	SelectedCards       []CardName      `json:"selectedCards,omitempty"`
	SelectedPlayedCards []PlayedCardRef `json:"selectedPlayedCards,omitempty"`
	SelectedResources   Resources       `json:"selectedResources,omitempty"`
	SelectedPlayer      string          `json:"selectedPlayer,omitempty"`
	SelectedLocation    LocationName    `json:"selectedLocation,omitempty"`
	SelectedOption      string          `json:"selectedOption,omitempty"`

	// AutoAdvanced marks answers the engine synthesized itself because
	// only one resolution was legal.
	AutoAdvanced bool `json:"autoAdvanced,omitempty"`
}

// isFollowUp reports whether an input type only ever answers a pending entry.
func (t InputType) isFollowUp() bool {
	switch t {
	case InputSelectCards, InputSelectPlayedCards, InputSelectResources,
		InputSelectPlayer, InputSelectPaymentForCard, InputSelectWorkerPlacement,
		InputSelectOption, InputDiscardCards:
		return true
	}
	return false
}
