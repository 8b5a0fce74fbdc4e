package card

import "strings"

type CardList []Card

func (ds *CardList) Init(cards []Card) {
	*ds = make([]Card, len(cards))
	copy(*ds, cards)
}

func (ds CardList) Count() int {
	return len(ds)
}

func (ds CardList) Bytes() []byte {
	out := make([]byte, 0, len(ds))
	for _, c := range ds {
		out = append(out, byte(c))
	}
	return out
}

func (ds *CardList) Add(cards ...Card) {
	*ds = append(*ds, cards...)
}

func (ds CardList) Contains(c Card) bool {
	for _, cc := range ds {
		if cc == c {
			return true
		}
	}
	return false
}

func (ds *CardList) PopCard() Card {
	totalCount := ds.Count()
	if totalCount == 0 {
		return CardInvalid
	}
	card := (*ds)[totalCount-1]
	*ds = (*ds)[:totalCount-1]
	return card
}

func (ds *CardList) PopCards(size int) ([]Card, bool) {
	if size > ds.Count() {
		return nil, false
	}
	cards := make([]Card, size)
	copy(cards, (*ds)[:size])
	*ds = (*ds)[size:]
	return cards, true
}

func (ds CardList) String() string {
	parts := make([]string, 0, len(ds))
	for _, c := range ds {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

// ParseList parses space separated card notation ("As Kd 2h").
func ParseList(s string) (CardList, error) {
	fields := strings.Fields(s)
	out := make(CardList, 0, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
