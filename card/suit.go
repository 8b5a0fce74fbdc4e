package card

type Suit byte

const (
	Spade Suit = iota // ♠️
	Heart             // ♥️
	Club              // ♣️
	Diamond           // ♦️
)

func (s Suit) String() string {
	switch s {
	case Diamond:
		return "♦️"
	case Club:
		return "♣️"
	case Heart:
		return "♥️"
	case Spade:
		return "♠️"
	}
	return "?"
}

// Letter is the one-letter suit used in textual hand notation ("As", "Td").
func (s Suit) Letter() string {
	switch s {
	case Diamond:
		return "d"
	case Club:
		return "c"
	case Heart:
		return "h"
	case Spade:
		return "s"
	}
	return "?"
}
