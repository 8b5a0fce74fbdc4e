package holdem

import "fmt"

// CanCheck reports whether the player to act may check.
func (g *Game) CanCheck() bool {
	player, ok := g.CurrentPlayer()
	if !ok {
		return false
	}
	return g.callAmount(player) == 0
}

// CanCall returns the chips a call moves into the pot, capped by the stack.
func (g *Game) CanCall() (int64, bool) {
	player, ok := g.CurrentPlayer()
	if !ok {
		return 0, false
	}
	amount := g.callAmount(player)
	if amount == 0 {
		return 0, false
	}
	return min(g.CurrentStreetStacks()[player], amount), true
}

func (g *Game) callAmount(player int) int64 {
	return g.maxInvested() - g.Invested(player)
}

// CanBet returns the minimum bet. Betting only opens a street where nothing
// but checks and folds happened.
func (g *Game) CanBet() (int64, bool) {
	player, ok := g.CurrentPlayer()
	if !ok {
		return 0, false
	}
	for _, action := range g.ActionsInStreet() {
		if action.Kind != ActionCheck && action.Kind != ActionFold {
			return 0, false
		}
	}
	return min(g.CurrentStreetStacks()[player], g.bigBlind), true
}

// CanRaise returns the minimum raise increment and the minimum total "to"
// sizing. A short all-in raise caps both at the start-of-street stack.
func (g *Game) CanRaise() (amount, to int64, ok bool) {
	player, hasPlayer := g.CurrentPlayer()
	if !hasPlayer {
		return 0, 0, false
	}
	actions := g.ActionsInStreet()
	var lastAmount, lastTo int64
	for _, action := range actions {
		switch action.Kind {
		case ActionBet:
			if action.Amount > lastAmount {
				lastAmount = action.Amount
			}
			lastTo = action.Amount
		case ActionRaise:
			if action.Amount > lastAmount {
				lastAmount = action.Amount
			}
			lastTo = action.To
		}
	}

	if lastAmount == 0 {
		// Preflop the blinds, straddles and live posts open the raise.
		if g.board().Street() != PreFlop {
			return 0, 0, false
		}
		for _, action := range actions {
			switch action.Kind {
			case ActionStraddle:
				if action.Amount > lastAmount {
					lastAmount = action.Amount
				}
			case ActionPost:
				if !action.Dead && action.Amount > lastAmount {
					lastAmount = action.Amount
				}
			}
		}
		lastTo = lastAmount
	}
	if lastAmount < g.bigBlind {
		lastAmount = g.bigBlind
	}

	callAmount := g.callAmount(player)
	oldStack := g.PreviousStreetStacks()[player]
	currentStack := g.CurrentStreetStacks()[player]
	minTo := lastTo + lastAmount
	switch {
	case callAmount >= currentStack:
		return 0, 0, false
	case minTo > oldStack:
		return oldStack - lastTo, oldStack, true
	default:
		return lastAmount, minTo, true
	}
}

// CanStraddle returns the minimum straddle for a player. Straddles are only
// allowed preflop between the posts and the first voluntary action, each one
// doubling the last full straddle (or the big blind), capped by the stack.
func (g *Game) CanStraddle(player int) (int64, error) {
	if player < 0 || player >= g.playerCount {
		return 0, fmt.Errorf("straddle: invalid player index %d", player)
	}
	if g.atStart() || g.board().Street() != PreFlop {
		return 0, fmt.Errorf("straddle: only allowed pre flop after small/big blind post")
	}
	if g.isAllIn(player) {
		return 0, fmt.Errorf("straddle: player is already all-in")
	}

	lastFullStraddle := g.bigBlind
	for _, action := range g.ActionsInStreet() {
		switch action.Kind {
		case ActionStraddle:
			if action.Amount >= lastFullStraddle*2 {
				lastFullStraddle = action.Amount
			}
		case ActionPost:
		default:
			return 0, fmt.Errorf("straddle: only allowed after posters and before other actions")
		}
	}
	return min(g.referenceStacks[player], lastFullStraddle*2), nil
}

// CanAllIn returns the sizing that moves the current player all in and the
// action kind it would be recorded as.
func (g *Game) CanAllIn() (amount int64, kind ActionKind, ok bool) {
	player, hasPlayer := g.CurrentPlayer()
	if !hasPlayer {
		return 0, ActionInvalid, false
	}
	if _, _, canRaise := g.CanRaise(); canRaise {
		return g.PreviousStreetStacks()[player], ActionRaise, true
	}
	if _, canBet := g.CanBet(); canBet {
		return g.CurrentStreetStacks()[player], ActionBet, true
	}
	if callAmount, canCall := g.CanCall(); canCall && callAmount == g.CurrentStreetStacks()[player] {
		return callAmount, ActionCall, true
	}
	return 0, ActionInvalid, false
}

func (g *Game) actionEnded() bool {
	_, hasPlayer := g.CurrentPlayer()
	return g.notFolded.Count() == 1 ||
		(!hasPlayer && g.board().Street() == River) ||
		(!hasPlayer && g.allInTerminatedHand())
}

func (g *Game) allInTerminatedHand() bool {
	return g.notFolded.Count()-1 <= g.allInCount()
}

// canUncalledBet finds the single over-invested player owed chips back.
func (g *Game) canUncalledBet() (player int, amount int64, ok bool) {
	if !g.actionEnded() {
		return 0, 0, false
	}
	maxPlayer, secondPlayer := 0, 1
	if g.Invested(1) > g.Invested(0) {
		maxPlayer, secondPlayer = 1, 0
	}
	for p := 2; p < g.playerCount; p++ {
		switch {
		case g.Invested(p) > g.Invested(maxPlayer):
			secondPlayer = maxPlayer
			maxPlayer = p
		case g.Invested(p) > g.Invested(secondPlayer):
			secondPlayer = p
		}
	}
	diff := g.Invested(maxPlayer) - g.Invested(secondPlayer)
	if diff == 0 {
		return 0, 0, false
	}
	return maxPlayer, diff, true
}

// nextShowOrMuck finds who owes a show-or-muck decision, starting with the
// last aggressor (or first to act post flop) and going clockwise.
func (g *Game) nextShowOrMuck() (int, bool) {
	shownOrMucked := g.handShown.Count() + g.handMucked.Count()
	if !g.actionEnded() || g.notFolded.Count() == 1 || shownOrMucked == g.notFolded.Count() {
		return 0, false
	}
	startIndex := g.firstToActPostFlop()
	actions := g.ActionsInStreet()
	for index := len(actions) - 1; index >= 0; index-- {
		if actions[index].Kind == ActionBet || actions[index].Kind == ActionRaise {
			startIndex = actions[index].Player
			break
		}
	}
	for offset := 0; offset < g.playerCount; offset++ {
		player := (startIndex + offset) % g.playerCount
		if g.Folded(player) || g.handShown.Has(player) || g.handMucked.Has(player) {
			continue
		}
		return player, true
	}
	return 0, false
}

// CanNextStreet returns the street waiting to be dealt on this runout.
func (g *Game) CanNextStreet() (Street, bool) {
	_, waitingOnShowdown := g.nextShowOrMuck()
	_, hasPlayer := g.CurrentPlayer()
	allowed := !waitingOnShowdown &&
		!hasPlayer &&
		(len(g.ActionsInStreet()) > 0 || g.playersNotFoldedNotAllIn() <= 1) &&
		g.notFolded.Count() > 1 &&
		g.board().Street() != River
	if !allowed {
		return 0, false
	}
	next, _ := g.board().Street().Next()
	return next, true
}

// canNextStreetMultipleRunouts extends CanNextStreet to starting a new
// runout after an all-in hand completed its board.
func (g *Game) canNextStreetMultipleRunouts() (street Street, newRunout, ok bool) {
	switch state := g.State(); state.Kind {
	case StateStreet:
		return state.Street, false, true
	case StateShowdownOrNextRunout:
		if g.currentBoard >= MaxRunouts-1 {
			return 0, false, false
		}
		street, ok := g.multipleRunoutsStartingStreet()
		return street, true, ok
	default:
		return 0, false, false
	}
}

// multipleRunoutsStartingStreet determines which street a fresh runout
// starts on by finding the first street that was dealt more than once, or
// the final river when no runout happened yet.
func (g *Game) multipleRunoutsStartingStreet() (Street, bool) {
	if !g.allInTerminatedHand() {
		return 0, false
	}
	for index, action := range g.actions {
		street, isStreet := action.StreetDealt()
		if !isStreet {
			continue
		}
		if index+1 == len(g.actions) {
			return street, true
		}
		if g.actions[index+1].IsStreet() {
			return street, true
		}
	}
	return 0, false
}

// State derives what the hand waits for next. Nothing is cached; the answer
// follows from the log and cursor alone.
func (g *Game) State() State {
	if g.atStart() {
		return PostState()
	}
	if player, ok := g.CurrentPlayer(); ok {
		return PlayerState(player)
	}
	if player, amount, ok := g.canUncalledBet(); ok {
		return UncalledBetState(player, amount)
	}
	if player, ok := g.nextShowOrMuck(); ok {
		return ShowOrMuckState(player)
	}
	if street, ok := g.CanNextStreet(); ok {
		return StreetState(street)
	}
	if g.atEnd {
		return EndState()
	}
	return ShowdownOrNextRunoutState()
}
