package holdem

// Street is one betting round of a hand.
type Street uint8

const (
	PreFlop Street = 0
	Flop    Street = 1
	Turn    Street = 2
	River   Street = 3
)

// StreetCount is the number of betting rounds.
const StreetCount = 4

var streetNames = map[Street]string{
	PreFlop: "preflop",
	Flop:    "flop",
	Turn:    "turn",
	River:   "river",
}

func (s Street) String() string {
	if name, ok := streetNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStreet inverts String.
func ParseStreet(name string) (Street, bool) {
	for s, n := range streetNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// CommunityCardCount is the number of revealed community cards on s.
func (s Street) CommunityCardCount() int {
	switch s {
	case PreFlop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	default:
		return 5
	}
}

// Previous returns the street before s, if any.
func (s Street) Previous() (Street, bool) {
	if s == PreFlop {
		return 0, false
	}
	return s - 1, true
}

// Next returns the street after s, if any.
func (s Street) Next() (Street, bool) {
	if s == River {
		return 0, false
	}
	return s + 1, true
}
