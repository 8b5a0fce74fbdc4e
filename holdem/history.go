package holdem

import "fmt"

// CanPrevious reports whether the replay cursor can step backward.
func (g *Game) CanPrevious() bool {
	return g.currentActionIndex > 0
}

// Rewind steps back to before the blinds.
func (g *Game) Rewind() {
	for g.Previous() {
	}
}

// Forward steps to the end of the recorded log.
func (g *Game) Forward() {
	for g.Next() {
	}
}

// Previous undoes the effect of the last action without dropping it from
// the log. Posts and straddles rewind as one block back to the start.
func (g *Game) Previous() bool {
	if !g.CanPrevious() {
		return false
	}
	switch g.State().Kind {
	case StatePost:
		panic("previous: at start with actions applied")
	case StateEnd:
		g.atEnd = false
		return true
	}

	action := g.actions[g.currentActionIndex-1]
	switch action.Kind {
	case ActionPost, ActionStraddle:
		g.referenceStacks = g.startingStacks
		g.stacksInStreet[PreFlop] = g.startingStacks
		g.currentPlayer = noPlayer
		g.currentActionIndex = 0
		return true
	case ActionFold:
		g.currentPlayer = action.Player
		g.notFolded.Set(action.Player)
	case ActionCheck:
		g.currentPlayer = action.Player
	case ActionCall, ActionBet:
		g.currentPlayer = action.Player
		g.currentStreetStacksMut()[action.Player] += action.Amount
	case ActionRaise:
		g.currentPlayer = action.Player
		g.currentStreetStacksMut()[action.Player] = action.OldStack
	case ActionFlop, ActionTurn, ActionRiver:
		g.previousStreet()
	case ActionUncalledBet:
		g.currentStreetStacksMut()[action.Player] -= action.Amount
	case ActionShows:
		g.handShown.Clear(action.Player)
	case ActionMucks:
		g.handMucked.Clear(action.Player)
	}
	g.currentActionIndex--
	return true
}

// previousStreet undoes a street deal. When the action before the deal is a
// river, the deal opened a new runout and the whole branch board goes away.
func (g *Game) previousStreet() {
	currentStreet := g.board().Street()
	actionBefore := g.actions[g.currentActionIndex-2]
	beforeStreet, beforeIsStreet := actionBefore.StreetDealt()

	if beforeIsStreet && beforeStreet == River {
		*g.boardMut() = Board{}
		if g.currentBoard == 0 {
			panic("previous street: no runout to drop")
		}
		g.currentBoard--
	} else {
		previousStreet, _ := currentStreet.Previous()
		board := g.boardMut()
		board.street = previousStreet
		for i := previousStreet.CommunityCardCount(); i < len(board.cards); i++ {
			board.cards[i] = 0
		}
	}

	g.currentStreetIndex = 0
	for index := g.currentActionIndex - 2; index >= 0; index-- {
		if g.actions[index].IsStreet() {
			g.currentStreetIndex = index + 1
			break
		}
	}
	g.currentPlayer = noPlayer
}

// Undo steps back one action and truncates it from the log.
func (g *Game) Undo() error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	if !g.CanPrevious() {
		return fmt.Errorf("undo: cannot go to previous action")
	}
	if g.State().Kind == StateEnd {
		g.showdownStacks = [MaxPlayers]int64{}
	}
	if !g.Previous() {
		panic("undo: previous failed")
	}
	g.actions = g.actions[:g.currentActionIndex]
	return nil
}

// CanNext reports whether the replay cursor can step forward, either into
// recorded actions or into a recorded settlement.
func (g *Game) CanNext() bool {
	showdownStacksSet := false
	for player := 0; player < g.playerCount; player++ {
		if g.showdownStacks[player] != 0 {
			showdownStacksSet = true
			break
		}
	}
	atFinalAction := g.currentActionIndex == len(g.actions)
	if g.State().Kind == StateShowdownOrNextRunout {
		return showdownStacksSet || !atFinalAction
	}
	return !atFinalAction
}

// Next re-applies the next recorded action through the regular mutators,
// checking the recorded log entry against what the mutator records.
func (g *Game) Next() bool {
	if !g.CanNext() {
		return false
	}
	switch g.State().Kind {
	case StateShowdownOrNextRunout:
		if g.currentActionIndex == len(g.actions) {
			g.atEnd = true
			return true
		}
	case StateEnd:
		panic("next: already at end")
	}

	next := g.actions[g.currentActionIndex]
	g.inNext = true
	var err error
	switch next.Kind {
	case ActionPost:
		err = g.nextPostsStraddles()
	case ActionStraddle:
		panic("next: straddle without preceding posts")
	case ActionFold:
		err = g.Fold()
	case ActionCheck:
		err = g.Check()
	case ActionCall:
		err = g.Call()
	case ActionBet:
		err = g.Bet(next.Amount)
	case ActionRaise:
		err = g.Raise(next.To)
	case ActionFlop:
		err = g.DealFlop(next.Cards)
	case ActionTurn:
		err = g.DealTurn(next.Cards[0])
	case ActionRiver:
		err = g.DealRiver(next.Cards[0])
	case ActionUncalledBet:
		err = g.UncalledBet()
	case ActionShows:
		err = g.ShowHand()
	case ActionMucks:
		err = g.MuckHand()
	default:
		err = fmt.Errorf("next: invalid action kind")
	}
	g.inNext = false
	if err != nil {
		panic(fmt.Sprintf("next: replaying recorded action failed: %v", err))
	}
	return true
}

// nextPostsStraddles replays the initial post and straddle block as one
// step, matching how Previous rewinds it.
func (g *Game) nextPostsStraddles() error {
	if err := g.PostBlinds(); err != nil {
		return err
	}
	for g.currentActionIndex < len(g.actions) {
		action := g.actions[g.currentActionIndex]
		switch action.Kind {
		case ActionPost:
			if err := g.AdditionalPost(action.Player, action.Amount, action.Dead); err != nil {
				return err
			}
		case ActionStraddle:
			if err := g.Straddle(action.Player, action.Amount); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}
