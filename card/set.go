package card

import "math/bits"

// Set is a bitset of cards keyed by Index.
type Set uint64

func NewSet(cards ...Card) Set {
	var s Set
	for _, c := range cards {
		s = s.With(c)
	}
	return s
}

func (s Set) Has(c Card) bool {
	if !c.Valid() {
		return false
	}
	return s&(1<<uint(c.Index())) != 0
}

func (s Set) With(c Card) Set {
	if !c.Valid() {
		return s
	}
	return s | 1<<uint(c.Index())
}

func (s Set) Without(c Card) Set {
	if !c.Valid() {
		return s
	}
	return s &^ (1 << uint(c.Index()))
}

func (s Set) Count() int {
	return bits.OnesCount64(uint64(s))
}

// Cards lists the members in deck index order.
func (s Set) Cards() []Card {
	out := make([]Card, 0, s.Count())
	for index := 0; index < DeckSize; index++ {
		c := FromIndex(index)
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
