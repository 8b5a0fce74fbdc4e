package card

import "testing"

func TestParseRoundTrip(t *testing.T) {
	for index := 0; index < DeckSize; index++ {
		c := FromIndex(index)
		if !c.Valid() {
			t.Fatalf("FromIndex(%d) invalid", index)
		}
		if c.Index() != index {
			t.Fatalf("Index round trip failed: %d -> %s -> %d", index, c, c.Index())
		}
		parsed, err := Parse(c.String())
		if err != nil {
			t.Fatalf("Parse(%q) err: %v", c.String(), err)
		}
		if parsed != c {
			t.Fatalf("Parse round trip failed: %s != %s", parsed, c)
		}
	}
}

func TestParseTenVariants(t *testing.T) {
	a, err := Parse("Th")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("10h")
	if err != nil {
		t.Fatal(err)
	}
	if a != b || a != CardHeartT {
		t.Fatalf("expected both notations to map to Th, got %s and %s", a, b)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "A", "Ax", "1s", "Asd"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("expected Parse(%q) to fail", s)
		}
	}
}

func TestCompareAceHigh(t *testing.T) {
	if !CardSpadeK.Less(CardSpadeA) {
		t.Fatalf("ace must rank above king")
	}
	if !CardHeart2.Less(CardHeart3) {
		t.Fatalf("deuce must rank below trey")
	}
	if CardSpadeA.Less(CardSpadeA) {
		t.Fatalf("card must not be less than itself")
	}
}

func TestFullDeckDistinct(t *testing.T) {
	deck := FullDeck()
	if len(deck) != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, len(deck))
	}
	seen := make(map[Card]struct{}, DeckSize)
	for _, c := range deck {
		if _, ok := seen[c]; ok {
			t.Fatalf("duplicate card %s in deck", c)
		}
		seen[c] = struct{}{}
	}
}
