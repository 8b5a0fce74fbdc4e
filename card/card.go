package card

import (
	"fmt"
	"strings"
)

// Card is a single playing card.
//
// Encoding:
// - high 4 bits: suit (0:Spade, 1:Heart, 2:Club, 3:Diamond)
// - low 4 bits: rank (1:A, 2..9, 10:T, 11:J, 12:Q, 13:K)
type Card byte

func (c Card) String() string {
	if c == CardInvalid {
		return "Invalid"
	}

	rank := c & 0x0F

	rankStr := ""
	switch rank {
	case 1:
		rankStr = "A"
	case 10:
		rankStr = "T"
	case 11:
		rankStr = "J"
	case 12:
		rankStr = "Q"
	case 13:
		rankStr = "K"
	default:
		rankStr = fmt.Sprintf("%d", rank)
	}

	return rankStr + c.Suit().Letter()
}

// Rank returns the raw rank 1-13 (A=1, K=13).
func (c Card) Rank() byte {
	if c == CardInvalid {
		return 0
	}
	return byte(c & 0x0F)
}

// Suit returns the suit (0:Spade, 1:Heart, 2:Club, 3:Diamond).
func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

func (c Card) IsAce() bool {
	return c.Rank() == 1
}

func (c Card) Valid() bool {
	r := c & 0x0F
	return r >= 1 && r <= 13 && c>>4 <= 3
}

// RankValue returns the rank used for comparisons: A counts as 14.
func (c Card) RankValue() int {
	r := int(c & 0x0F)
	if r == 1 {
		return 14
	}
	return r
}

// RankIndex maps ranks to 0..12 with the deuce lowest and the ace highest.
func (c Card) RankIndex() int {
	return c.RankValue() - 2
}

// Index orders all 52 cards by rank first, suit second: 2s=0 .. Ad=51.
func (c Card) Index() int {
	return c.RankIndex()*4 + int(c.Suit())
}

// FromIndex inverts Index.
func FromIndex(index int) Card {
	if index < 0 || index >= DeckSize {
		return CardInvalid
	}
	rank := byte(index/4) + 2
	if rank == 14 {
		rank = 1
	}
	return Card(byte(index%4)<<4 | rank)
}

// Compare orders cards for display: by rank (ace high), suit breaks ties.
func (c Card) Compare(other Card) int {
	if d := c.RankValue() - other.RankValue(); d != 0 {
		return d
	}
	return int(c.Suit()) - int(other.Suit())
}

func (c Card) Less(other Card) bool {
	return c.Compare(other) < 0
}

// Parse converts a string such as "As", "Td" or "10h" into a Card.
func Parse(cardStr string) (Card, error) {
	if len(cardStr) < 2 {
		return 0, fmt.Errorf("invalid card string: %s", cardStr)
	}

	suitChar := cardStr[len(cardStr)-1]
	var suitBase Card

	switch suitChar {
	case 's', 'S':
		suitBase = 0x00
	case 'h', 'H':
		suitBase = 0x10
	case 'c', 'C':
		suitBase = 0x20
	case 'd', 'D':
		suitBase = 0x30
	default:
		return 0, fmt.Errorf("invalid suit: %c", suitChar)
	}

	rankStr := cardStr[:len(cardStr)-1]
	var rankVal Card

	switch strings.ToUpper(rankStr) {
	case "A":
		rankVal = 0x01
	case "2":
		rankVal = 0x02
	case "3":
		rankVal = 0x03
	case "4":
		rankVal = 0x04
	case "5":
		rankVal = 0x05
	case "6":
		rankVal = 0x06
	case "7":
		rankVal = 0x07
	case "8":
		rankVal = 0x08
	case "9":
		rankVal = 0x09
	case "T", "10":
		rankVal = 0x0A
	case "J":
		rankVal = 0x0B
	case "Q":
		rankVal = 0x0C
	case "K":
		rankVal = 0x0D
	default:
		return 0, fmt.Errorf("invalid rank: %s", rankStr)
	}

	return suitBase + rankVal, nil
}

// MustParse is Parse for fixtures and constants.
func MustParse(cardStr string) Card {
	c, err := Parse(cardStr)
	if err != nil {
		panic(err)
	}
	return c
}
