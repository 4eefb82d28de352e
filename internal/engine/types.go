package engine

// ResourceType identifies the spendable resource kinds.
type ResourceType string

const (
	ResourceTwig   ResourceType = "TWIG"
	ResourceResin  ResourceType = "RESIN"
	ResourceBerry  ResourceType = "BERRY"
	ResourcePebble ResourceType = "PEBBLE"
	ResourcePearl  ResourceType = "PEARL" // expansion only
	ResourcePoint  ResourceType = "VP"    // point tokens
)

// AllResourceTypes returns the payable kinds (excludes point tokens).
func AllResourceTypes() []ResourceType {
	return []ResourceType{ResourceTwig, ResourceResin, ResourceBerry, ResourcePebble, ResourcePearl}
}

// BaseResourceTypes returns the four base-game kinds.
func BaseResourceTypes() []ResourceType {
	return []ResourceType{ResourceTwig, ResourceResin, ResourceBerry, ResourcePebble}
}

// Resources maps a resource kind to a count. Counts are never negative.
type Resources map[ResourceType]int

// Clone returns a copy with zero entries dropped.
func (r Resources) Clone() Resources {
	out := Resources{}
	for k, v := range r {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}

// Total sums all counts.
func (r Resources) Total() int {
	n := 0
	for _, v := range r {
		n += v
	}
	return n
}

// Add merges other into r.
func (r Resources) Add(other Resources) {
	for k, v := range other {
		r[k] += v
	}
}

// Covers returns true if r holds at least the counts in cost.
func (r Resources) Covers(cost Resources) bool {
	for k, v := range cost {
		if r[k] < v {
			return false
		}
	}
	return true
}

// Season is the per-player four-step cycle.
type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Autumn
)

var seasonNames = map[Season]string{
	Winter: "WINTER",
	Spring: "SPRING",
	Summer: "SUMMER",
	Autumn: "AUTUMN",
}

func (s Season) String() string {
	if n, ok := seasonNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Next returns the following season. Autumn is terminal.
func (s Season) Next() Season {
	if s >= Autumn {
		return Autumn
	}
	return s + 1
}

// workerAllotment is the total worker count per season.
func workerAllotment(s Season) int {
	switch s {
	case Winter:
		return 2
	case Spring:
		return 3
	case Summer:
		return 4
	case Autumn:
		return 6
	}
	return 2
}

// CardType is the effect category of a card.
type CardType string

const (
	Production  CardType = "PRODUCTION"
	Destination CardType = "DESTINATION"
	Governance  CardType = "GOVERNANCE"
	Traveler    CardType = "TRAVELER"
	Prosperity  CardType = "PROSPERITY"
)

// AllCardTypes returns every card type.
func AllCardTypes() []CardType {
	return []CardType{Production, Destination, Governance, Traveler, Prosperity}
}

// Occupancy is a location's worker-capacity policy.
type Occupancy int

const (
	Unlimited     Occupancy = iota // any number of workers
	Exclusive                      // at most one worker ever
	ExclusiveFour                  // one worker below 4 players, two otherwise
)

var occupancyNames = map[Occupancy]string{
	Unlimited:     "UNLIMITED",
	Exclusive:     "EXCLUSIVE",
	ExclusiveFour: "EXCLUSIVE_FOUR",
}

func (o Occupancy) String() string {
	if n, ok := occupancyNames[o]; ok {
		return n
	}
	return "Unknown"
}

// EntityKind identifies which registry a pending input's context refers to.
type EntityKind string

const (
	KindCard      EntityKind = "card"
	KindLocation  EntityKind = "location"
	KindEvent     EntityKind = "event"
	KindAdornment EntityKind = "adornment"
	KindWonder    EntityKind = "wonder"
	KindSeason    EntityKind = "season"
	KindTrain     EntityKind = "train"
)

// Name aliases keep registry keys distinct from plain strings at call sites.
type (
	CardName      string
	LocationName  string
	EventName     string
	AdornmentName string
	WonderName    string
)

// PlayerStatus tracks whether a player is still taking turns.
type PlayerStatus string

const (
	StatusActive    PlayerStatus = "ACTIVE"
	StatusGameEnded PlayerStatus = "GAME_ENDED"
)

const (
	// MeadowSize is the shared face-up card offer capacity.
	MeadowSize = 8
	// HandLimit is the maximum hand size.
	HandLimit = 8
	// CityLimit is the maximum number of occupied city slots.
	CityLimit = 15
)
