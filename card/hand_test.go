package card

import "testing"

func TestNewHandCanonicalOrder(t *testing.T) {
	a, err := NewHand(CardSpadeK, CardHeartA)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewHand(CardHeartA, CardSpadeK)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("hands built from swapped cards must be equal: %s != %s", a, b)
	}
	if a.High() != CardHeartA || a.Low() != CardSpadeK {
		t.Fatalf("expected AhKs, got %s", a)
	}
}

func TestNewHandRejectsDuplicate(t *testing.T) {
	if _, err := NewHand(CardClub7, CardClub7); err == nil {
		t.Fatalf("expected duplicate card error")
	}
}

func TestHandIndexBijective(t *testing.T) {
	seen := make([]bool, HandCount)
	for i := 0; i < DeckSize; i++ {
		for j := i + 1; j < DeckSize; j++ {
			h, err := NewHand(FromIndex(i), FromIndex(j))
			if err != nil {
				t.Fatal(err)
			}
			index := h.Index()
			if index < 0 || index >= HandCount {
				t.Fatalf("index %d out of range for %s", index, h)
			}
			if seen[index] {
				t.Fatalf("index %d assigned twice (%s)", index, h)
			}
			seen[index] = true
			if HandFromIndex(index) != h {
				t.Fatalf("HandFromIndex(%d) = %s, want %s", index, HandFromIndex(index), h)
			}
		}
	}
}

func TestParseHand(t *testing.T) {
	h, err := ParseHand("KdAs")
	if err != nil {
		t.Fatal(err)
	}
	if h.String() != "AsKd" {
		t.Fatalf("expected canonical AsKd, got %s", h)
	}
	if h.Suited() {
		t.Fatalf("AsKd is not suited")
	}
	if _, err := ParseHand("AsAs"); err == nil {
		t.Fatalf("expected duplicate card error")
	}
	if _, err := ParseHand("As"); err == nil {
		t.Fatalf("expected length error")
	}
}

func TestHandContains(t *testing.T) {
	h, err := ParseHand("QhQc")
	if err != nil {
		t.Fatal(err)
	}
	if !h.Contains(CardHeartQ) || !h.Contains(CardClubQ) {
		t.Fatalf("hand must contain its own cards")
	}
	if h.Contains(CardSpadeQ) {
		t.Fatalf("hand must not contain other cards")
	}
	if NoHand.Known() {
		t.Fatalf("zero hand must be unknown")
	}
}
