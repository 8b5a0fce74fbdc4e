package holdem

import (
	"fmt"

	"nlhe-lite/card"
)

// MaxRunouts is the maximum number of boards a single hand can run out.
const MaxRunouts = 4

// Board holds the community cards revealed so far on one runout. The zero
// value is the empty preflop board.
type Board struct {
	cards  [5]card.Card
	street Street
}

// EmptyBoard is the board before any cards are dealt.
var EmptyBoard = Board{}

// BoardFromCards builds a board from 0, 3, 4 or 5 distinct cards.
func BoardFromCards(cards []card.Card) (Board, error) {
	var street Street
	switch len(cards) {
	case 0:
		street = PreFlop
	case 3:
		street = Flop
	case 4:
		street = Turn
	case 5:
		street = River
	default:
		return Board{}, fmt.Errorf("board: bad cards length %d", len(cards))
	}
	var b Board
	var seen card.Set
	for i, c := range cards {
		if !c.Valid() {
			return Board{}, fmt.Errorf("board: invalid card at %d", i)
		}
		if seen.Has(c) {
			return Board{}, fmt.Errorf("board: duplicate card %s", c)
		}
		seen = seen.With(c)
		b.cards[i] = c
	}
	b.street = street
	return b, nil
}

func (b Board) Street() Street {
	return b.street
}

// Cards returns the revealed community cards.
func (b Board) Cards() []card.Card {
	return b.cards[:b.street.CommunityCardCount()]
}

func (b Board) FlopCards() ([3]card.Card, bool) {
	if b.street < Flop {
		return [3]card.Card{}, false
	}
	return [3]card.Card{b.cards[0], b.cards[1], b.cards[2]}, true
}

func (b Board) TurnCard() (card.Card, bool) {
	if b.street < Turn {
		return card.CardInvalid, false
	}
	return b.cards[3], true
}

func (b Board) RiverCard() (card.Card, bool) {
	if b.street < River {
		return card.CardInvalid, false
	}
	return b.cards[4], true
}

func (b Board) String() string {
	if b.street == PreFlop {
		return "empty"
	}
	return card.CardList(b.Cards()).String()
}
