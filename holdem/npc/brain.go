// Package npc provides scripted opponents that act through the engine's own
// legality queries, so every decision they emit is a legal action.
package npc

import (
	"fmt"

	"nlhe-lite/card"
	"nlhe-lite/holdem"
)

// GameView is a read-only projection of the game state visible to one
// seat. Amount fields are nil when the matching action is not legal.
type GameView struct {
	Player    int
	HoleCards []card.Card
	Community []card.Card
	Street    holdem.Street
	Pot       int64
	Stack     int64
	BigBlind  int64

	CanCheck       bool
	CallAmount     *int64
	MinBet         *int64
	MinRaiseAmount *int64
	MinRaiseTo     *int64
	MaxRaiseTo     int64

	ActiveCount int
}

// Decision is a single action to take. To is only read for raises.
type Decision struct {
	Kind   holdem.ActionKind
	Amount int64
	To     int64
}

// Brain decides for one seat when it is that seat's turn.
type Brain interface {
	// Decide returns exactly one legal action for the given view.
	Decide(view GameView) Decision
	// Name returns a human-readable identifier for debugging.
	Name() string
}

// ViewFor builds the projection for the current player. It reports false
// when no player is to act.
func ViewFor(g *holdem.Game) (GameView, bool) {
	player, ok := g.CurrentPlayer()
	if !ok {
		return GameView{}, false
	}

	view := GameView{
		Player:      player,
		Community:   g.CurrentBoard().Cards(),
		Street:      g.CurrentBoard().Street(),
		Pot:         g.TotalPot(),
		Stack:       g.CurrentStreetStacks()[player],
		BigBlind:    g.BigBlind(),
		CanCheck:    g.CanCheck(),
		MaxRaiseTo:  g.PreviousStreetStacks()[player],
		ActiveCount: len(g.PlayersNotFolded()),
	}
	if hand, known := g.GetHand(player); known {
		cards := hand.Cards()
		view.HoleCards = cards[:]
	}
	if amount, canCall := g.CanCall(); canCall {
		view.CallAmount = &amount
	}
	if amount, canBet := g.CanBet(); canBet {
		view.MinBet = &amount
	}
	if amount, to, canRaise := g.CanRaise(); canRaise {
		view.MinRaiseAmount = &amount
		view.MinRaiseTo = &to
	}
	return view, true
}

// Apply commits a decision through the validating mutators.
func Apply(g *holdem.Game, decision Decision) error {
	switch decision.Kind {
	case holdem.ActionFold:
		return g.Fold()
	case holdem.ActionCheck:
		return g.Check()
	case holdem.ActionCall:
		return g.Call()
	case holdem.ActionBet:
		return g.Bet(decision.Amount)
	case holdem.ActionRaise:
		return g.Raise(decision.To)
	}
	return fmt.Errorf("npc: unsupported decision %s", decision.Kind)
}

// Play runs one turn for the current player with the given brain.
func Play(g *holdem.Game, brain Brain) error {
	view, ok := ViewFor(g)
	if !ok {
		return fmt.Errorf("npc: no player to act")
	}
	return Apply(g, brain.Decide(view))
}
