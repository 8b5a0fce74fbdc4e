package holdem

import "fmt"

// StateKind discriminates what the hand is waiting for next.
type StateKind uint8

const (
	// StatePost waits for the blinds to be posted.
	StatePost StateKind = iota
	// StatePlayer waits for a betting decision.
	StatePlayer
	// StateStreet waits for community cards.
	StateStreet
	// StateUncalledBet waits for an uncalled bet to be returned.
	StateUncalledBet
	// StateShowOrMuck waits for a player to show or muck at showdown.
	StateShowOrMuck
	// StateShowdownOrNextRunout waits for settlement or another runout.
	StateShowdownOrNextRunout
	// StateEnd means the hand is over.
	StateEnd
)

// State is the derived answer to "what happens next". It is never stored;
// Game.State recomputes it from the action log.
type State struct {
	Kind   StateKind
	Player int
	Amount int64
	Street Street
}

func PostState() State {
	return State{Kind: StatePost}
}

func PlayerState(player int) State {
	return State{Kind: StatePlayer, Player: player}
}

func StreetState(street Street) State {
	return State{Kind: StateStreet, Street: street}
}

func UncalledBetState(player int, amount int64) State {
	return State{Kind: StateUncalledBet, Player: player, Amount: amount}
}

func ShowOrMuckState(player int) State {
	return State{Kind: StateShowOrMuck, Player: player}
}

func ShowdownOrNextRunoutState() State {
	return State{Kind: StateShowdownOrNextRunout}
}

func EndState() State {
	return State{Kind: StateEnd}
}

func (s State) String() string {
	switch s.Kind {
	case StatePost:
		return "waiting for posts"
	case StatePlayer:
		return fmt.Sprintf("waiting for player %d", s.Player)
	case StateStreet:
		return fmt.Sprintf("waiting for %s", s.Street)
	case StateUncalledBet:
		return fmt.Sprintf("uncalled bet of %d to player %d", s.Amount, s.Player)
	case StateShowOrMuck:
		return fmt.Sprintf("player %d shows or mucks", s.Player)
	case StateShowdownOrNextRunout:
		return "showdown or next runout"
	case StateEnd:
		return "end"
	}
	return "unknown"
}
