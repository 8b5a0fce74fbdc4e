package holdem

import "nlhe-lite/card"

// SeatUnset marks a player without a seat assignment.
const SeatUnset = -1

// Player is the immutable per-seat configuration of a hand. Name may be
// empty, in which case the position short name stands in. Hand may be
// card.NoHand when the hole cards are unknown.
type Player struct {
	Name          string
	Seat          int
	Hand          card.Hand
	StartingStack int64
}

// NewPlayer builds a player without seat or hole card information.
func NewPlayer(name string, startingStack int64) Player {
	return Player{Name: name, Seat: SeatUnset, StartingStack: startingStack}
}

// Position is the table position of a player relative to the button.
type Position struct {
	Short string
	Long  string
}

var positionNames = [][]Position{
	{{"BTN", "Small Blind / Dealer"}, {"BB", "Big Blind"}},
	{{"BTN", "Button"}, {"SB", "Small Blind"}, {"BB", "Big Blind"}},
	{{"BTN", "Button"}, {"SB", "Small Blind"}, {"BB", "Big Blind"}, {"UTG", "Under the Gun"}},
	{
		{"BTN", "Button"}, {"SB", "Small Blind"}, {"BB", "Big Blind"},
		{"UTG", "Under the Gun"}, {"CO", "Cutoff"},
	},
	{
		{"BTN", "Button"}, {"SB", "Small Blind"}, {"BB", "Big Blind"},
		{"UTG", "Under the Gun"}, {"HJ", "Hijack"}, {"CO", "Cutoff"},
	},
	{
		{"BTN", "Button"}, {"SB", "Small Blind"}, {"BB", "Big Blind"},
		{"UTG", "Under the Gun"}, {"LJ", "Lowjack"}, {"HJ", "Hijack"}, {"CO", "Cutoff"},
	},
	{
		{"BTN", "Button"}, {"SB", "Small Blind"}, {"BB", "Big Blind"},
		{"UTG", "Under the Gun"}, {"UTG+1", "Under the Gun +1"},
		{"LJ", "Lowjack"}, {"HJ", "Hijack"}, {"CO", "Cutoff"},
	},
	{
		{"BTN", "Button"}, {"SB", "Small Blind"}, {"BB", "Big Blind"},
		{"UTG", "Under the Gun"}, {"UTG+1", "Under the Gun +1"}, {"UTG+2", "Under the Gun +2"},
		{"LJ", "Lowjack"}, {"HJ", "Hijack"}, {"CO", "Cutoff"},
	},
}

// PositionNames lists the positions in button-first order for a table size.
func PositionNames(playerCount int) ([]Position, bool) {
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return nil, false
	}
	return positionNames[playerCount-MinPlayers], true
}

// PositionName resolves the position of a player index given the button.
func PositionName(playerCount, buttonIndex, player int) (Position, bool) {
	names, ok := PositionNames(playerCount)
	if !ok || buttonIndex >= playerCount || player >= playerCount {
		return Position{}, false
	}
	return names[(playerCount-buttonIndex+player)%playerCount], true
}
