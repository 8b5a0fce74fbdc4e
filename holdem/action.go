package holdem

import (
	"fmt"
	"strings"

	"nlhe-lite/card"
)

// ActionKind discriminates the entries of a hand's action log.
type ActionKind uint8

const (
	ActionInvalid ActionKind = iota
	ActionPost
	ActionStraddle
	ActionFold
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
	ActionFlop
	ActionTurn
	ActionRiver
	ActionUncalledBet
	ActionShows
	ActionMucks
)

var actionKindNames = map[ActionKind]string{
	ActionPost:        "post",
	ActionStraddle:    "straddle",
	ActionFold:        "fold",
	ActionCheck:       "check",
	ActionCall:        "call",
	ActionBet:         "bet",
	ActionRaise:       "raise",
	ActionFlop:        "flop",
	ActionTurn:        "turn",
	ActionRiver:       "river",
	ActionUncalledBet: "uncalled_bet",
	ActionShows:       "shows",
	ActionMucks:       "mucks_or_unknown",
}

func (k ActionKind) String() string {
	if name, ok := actionKindNames[k]; ok {
		return name
	}
	return "invalid"
}

// ParseActionKind inverts ActionKind.String.
func ParseActionKind(name string) (ActionKind, bool) {
	for k, n := range actionKindNames {
		if n == name {
			return k, true
		}
	}
	return ActionInvalid, false
}

// Action is one immutable entry of the hand log. The zero value is invalid.
// Only the fields relevant to Kind are set; the rest stay zero so that
// actions compare equal with ==.
type Action struct {
	Kind     ActionKind
	Player   int
	Amount   int64
	To       int64
	OldStack int64
	Dead     bool
	Cards    [3]card.Card
	Hand     card.Hand
}

func PostAction(player int, amount int64, dead bool) Action {
	return Action{Kind: ActionPost, Player: player, Amount: amount, Dead: dead}
}

func StraddleAction(player int, amount int64) Action {
	return Action{Kind: ActionStraddle, Player: player, Amount: amount}
}

func FoldAction(player int) Action {
	return Action{Kind: ActionFold, Player: player}
}

func CheckAction(player int) Action {
	return Action{Kind: ActionCheck, Player: player}
}

func CallAction(player int, amount int64) Action {
	return Action{Kind: ActionCall, Player: player, Amount: amount}
}

func BetAction(player int, amount int64) Action {
	return Action{Kind: ActionBet, Player: player, Amount: amount}
}

func RaiseAction(player int, oldStack, amount, to int64) Action {
	return Action{Kind: ActionRaise, Player: player, OldStack: oldStack, Amount: amount, To: to}
}

func FlopAction(cards [3]card.Card) Action {
	return Action{Kind: ActionFlop, Cards: cards}
}

func TurnAction(c card.Card) Action {
	return Action{Kind: ActionTurn, Cards: [3]card.Card{c}}
}

func RiverAction(c card.Card) Action {
	return Action{Kind: ActionRiver, Cards: [3]card.Card{c}}
}

func UncalledBetAction(player int, amount int64) Action {
	return Action{Kind: ActionUncalledBet, Player: player, Amount: amount}
}

func ShowsAction(player int, hand card.Hand) Action {
	return Action{Kind: ActionShows, Player: player, Hand: hand}
}

func MucksAction(player int) Action {
	return Action{Kind: ActionMucks, Player: player}
}

// StreetDealt returns the street this action deals, if it is a card action.
func (a Action) StreetDealt() (Street, bool) {
	switch a.Kind {
	case ActionFlop:
		return Flop, true
	case ActionTurn:
		return Turn, true
	case ActionRiver:
		return River, true
	}
	return 0, false
}

func (a Action) IsStreet() bool {
	_, ok := a.StreetDealt()
	return ok
}

// ActingPlayer returns the player the action belongs to. Only betting round
// actions carry one; uncalled bets, shows and mucks do not count.
func (a Action) ActingPlayer() (int, bool) {
	switch a.Kind {
	case ActionPost, ActionStraddle, ActionFold, ActionCheck, ActionCall, ActionBet, ActionRaise:
		return a.Player, true
	}
	return 0, false
}

func (a Action) IsPlayer() bool {
	_, ok := a.ActingPlayer()
	return ok
}

// DealtCards lists the community cards the action reveals.
func (a Action) DealtCards() []card.Card {
	switch a.Kind {
	case ActionFlop:
		return a.Cards[:]
	case ActionTurn, ActionRiver:
		return a.Cards[:1]
	}
	return nil
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPost:
		if a.Dead {
			return fmt.Sprintf("player %d posts %d dead", a.Player, a.Amount)
		}
		return fmt.Sprintf("player %d posts %d", a.Player, a.Amount)
	case ActionStraddle:
		return fmt.Sprintf("player %d straddles to %d", a.Player, a.Amount)
	case ActionFold:
		return fmt.Sprintf("player %d folds", a.Player)
	case ActionCheck:
		return fmt.Sprintf("player %d checks", a.Player)
	case ActionCall:
		return fmt.Sprintf("player %d calls %d", a.Player, a.Amount)
	case ActionBet:
		return fmt.Sprintf("player %d bets %d", a.Player, a.Amount)
	case ActionRaise:
		return fmt.Sprintf("player %d raises to %d", a.Player, a.To)
	case ActionFlop:
		parts := []string{a.Cards[0].String(), a.Cards[1].String(), a.Cards[2].String()}
		return "flop " + strings.Join(parts, " ")
	case ActionTurn:
		return "turn " + a.Cards[0].String()
	case ActionRiver:
		return "river " + a.Cards[0].String()
	case ActionUncalledBet:
		return fmt.Sprintf("uncalled bet of %d returns to player %d", a.Amount, a.Player)
	case ActionShows:
		return fmt.Sprintf("player %d shows %s", a.Player, a.Hand)
	case ActionMucks:
		return fmt.Sprintf("player %d mucks", a.Player)
	}
	return "invalid action"
}
