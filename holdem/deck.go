package holdem

import (
	"math/rand"

	"nlhe-lite/card"
)

// Deck is a shuffled deck with the already visible cards removed. Drawing
// with the same seed and the same known cards is deterministic.
type Deck struct {
	cards card.CardList
}

// NewDeck shuffles the full deck minus the excluded cards.
func NewDeck(rng *rand.Rand, exclude card.Set) *Deck {
	remaining := make(card.CardList, 0, card.DeckSize-exclude.Count())
	for _, c := range card.FullDeck() {
		if !exclude.Has(c) {
			remaining = append(remaining, c)
		}
	}
	rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})
	return &Deck{cards: remaining}
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (card.Card, bool) {
	if len(d.cards) == 0 {
		return card.CardInvalid, false
	}
	c := d.cards.PopCard()
	return c, true
}

// DrawHand removes two cards and builds a hand.
func (d *Deck) DrawHand() (card.Hand, bool) {
	a, ok := d.Draw()
	if !ok {
		return card.NoHand, false
	}
	b, ok := d.Draw()
	if !ok {
		return card.NoHand, false
	}
	hand, err := card.NewHand(a, b)
	if err != nil {
		return card.NoHand, false
	}
	return hand, true
}

// Remaining reports how many cards are left.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// DrawNextStreet deals the next street (or the next runout's street) from a
// fresh deck excluding all known cards.
func (g *Game) DrawNextStreet(rng *rand.Rand) error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	street, err := g.prepareNewStreet(0, false)
	if err != nil {
		return err
	}
	deck := NewDeck(rng, g.KnownCards())
	switch street {
	case Flop:
		a, _ := deck.Draw()
		b, _ := deck.Draw()
		c, _ := deck.Draw()
		return g.DealFlop([3]card.Card{a, b, c})
	case Turn:
		c, _ := deck.Draw()
		return g.DealTurn(c)
	case River:
		c, _ := deck.Draw()
		return g.DealRiver(c)
	}
	panic("draw next street: preflop cannot be dealt")
}

// DrawUnsetHands assigns random hole cards to every player without a known
// hand.
func (g *Game) DrawUnsetHands(rng *rand.Rand) {
	deck := NewDeck(rng, g.KnownCards())
	for player := 0; player < g.playerCount; player++ {
		if g.hands[player].Known() {
			continue
		}
		hand, ok := deck.DrawHand()
		if !ok {
			panic("draw unset hands: deck exhausted")
		}
		g.hands[player] = hand
	}
	if _, err := g.checkCards(); err != nil {
		panic(err)
	}
}
