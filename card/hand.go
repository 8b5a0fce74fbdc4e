package card

import "fmt"

// HandCount is the number of distinct two-card hands, C(52,2).
const HandCount = DeckSize * (DeckSize - 1) / 2

// Hand is an unordered pair of distinct cards, stored canonically so that
// equal hands compare equal regardless of input order: the higher card
// (by rank, suit breaking ties) comes first. The zero value means "unknown".
type Hand struct {
	high Card
	low  Card
}

// NoHand is the unknown hand.
var NoHand = Hand{}

var handByIndex [HandCount]Hand

func init() {
	index := 0
	for low := 0; low < DeckSize; low++ {
		for high := low + 1; high < DeckSize; high++ {
			handByIndex[index] = Hand{high: FromIndex(high), low: FromIndex(low)}
			index++
		}
	}
	if index != HandCount {
		panic("hand table size mismatch")
	}
}

// NewHand canonicalizes two distinct cards into a Hand.
func NewHand(a, b Card) (Hand, error) {
	if !a.Valid() || !b.Valid() {
		return NoHand, fmt.Errorf("hand: invalid card")
	}
	switch cmp := a.Compare(b); {
	case cmp > 0:
		return Hand{high: a, low: b}, nil
	case cmp < 0:
		return Hand{high: b, low: a}, nil
	default:
		return NoHand, fmt.Errorf("hand: duplicate card %s", a)
	}
}

// ParseHand parses four-character hand notation such as "AsKd".
func ParseHand(s string) (Hand, error) {
	if len(s) != 4 {
		return NoHand, fmt.Errorf("hand: expected 4 characters, got %q", s)
	}
	a, err := Parse(s[:2])
	if err != nil {
		return NoHand, err
	}
	b, err := Parse(s[2:])
	if err != nil {
		return NoHand, err
	}
	return NewHand(a, b)
}

func (h Hand) High() Card { return h.high }
func (h Hand) Low() Card  { return h.low }

func (h Hand) Known() bool {
	return h != NoHand
}

func (h Hand) Suited() bool {
	return h.high.Suit() == h.low.Suit()
}

func (h Hand) Cards() [2]Card {
	return [2]Card{h.high, h.low}
}

// Contains reports whether c is one of the two cards.
func (h Hand) Contains(c Card) bool {
	return h.high == c || h.low == c
}

// Index maps the hand bijectively onto [0, HandCount). Pairs are ordered by
// the card indices (i, j) of the low and high card, i < j, enumerated with
// the low card outermost.
func (h Hand) Index() int {
	i := h.low.Index()
	j := h.high.Index()
	return i*(DeckSize-1) - i*(i-1)/2 + (j - i - 1)
}

// HandFromIndex inverts Index.
func HandFromIndex(index int) Hand {
	if index < 0 || index >= HandCount {
		return NoHand
	}
	return handByIndex[index]
}

func (h Hand) String() string {
	if !h.Known() {
		return "Unknown"
	}
	return h.high.String() + h.low.String()
}
