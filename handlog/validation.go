package handlog

import "nlhe-lite/holdem"

// ValidationRecord pairs a hand record with the legality snapshot at every
// replay position, for cross-checking independent implementations.
type ValidationRecord struct {
	Hand        *HandRecord       `json:"hand"`
	Validations []ValidationEntry `json:"validations"`
}

type ValidationEntry struct {
	State       string `json:"state"`
	StatePlayer int    `json:"state_player,omitempty"`
	Check       bool   `json:"check"`
	Call        *int64 `json:"call,omitempty"`
	Bet         *int64 `json:"bet,omitempty"`
	RaiseAmount *int64 `json:"raise_amount,omitempty"`
	RaiseTo     *int64 `json:"raise_to,omitempty"`
}

// Validation walks a clone of the game from the start to the end and
// captures state and legality at every position.
func Validation(g *holdem.Game) *ValidationRecord {
	record := &ValidationRecord{Hand: FromGame(g)}
	walker := g.Clone()
	walker.Rewind()
	for {
		record.Validations = append(record.Validations, StateEntry(walker))
		if !walker.Next() {
			break
		}
	}
	return record
}

// StateEntry captures state and legality at the game's current position.
func StateEntry(g *holdem.Game) ValidationEntry {
	state := g.State()
	entry := ValidationEntry{
		State: stateName(state.Kind),
		Check: g.CanCheck(),
	}
	if state.Kind == holdem.StatePlayer || state.Kind == holdem.StateShowOrMuck ||
		state.Kind == holdem.StateUncalledBet {
		entry.StatePlayer = state.Player
	}
	if amount, ok := g.CanCall(); ok {
		entry.Call = &amount
	}
	if amount, ok := g.CanBet(); ok {
		entry.Bet = &amount
	}
	if amount, to, ok := g.CanRaise(); ok {
		entry.RaiseAmount = &amount
		entry.RaiseTo = &to
	}
	return entry
}

func stateName(kind holdem.StateKind) string {
	switch kind {
	case holdem.StatePost:
		return "post"
	case holdem.StatePlayer:
		return "player"
	case holdem.StateStreet:
		return "street"
	case holdem.StateUncalledBet:
		return "uncalled_bet"
	case holdem.StateShowOrMuck:
		return "show_or_muck"
	case holdem.StateShowdownOrNextRunout:
		return "showdown_or_next_runout"
	case holdem.StateEnd:
		return "end"
	}
	return "unknown"
}
