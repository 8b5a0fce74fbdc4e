package holdem

import (
	"fmt"

	"nlhe-lite/card"
)

func (g *Game) checkPreUpdate() error {
	if !g.inNext && g.currentActionIndex != len(g.actions) {
		return ErrNotAtLastAction
	}
	return nil
}

// addAction records a fresh action or, while stepping forward through
// history, checks the recomputed action against the recorded one.
func (g *Game) addAction(action Action) {
	if g.inNext {
		if recorded := g.actions[g.currentActionIndex]; recorded != action {
			panic(fmt.Sprintf("%v: recorded %s, applied %s", ErrReplayMismatch, recorded, action))
		}
	} else {
		if g.currentActionIndex != len(g.actions) {
			panic(ErrNotAtLastAction)
		}
		g.actions = append(g.actions, action)
	}
	g.currentActionIndex++
}

func (g *Game) nextPlayer() {
	actions := g.ActionsInStreet()

	var notFoldedNotAllIn PlayerSet
	for player := 0; player < g.playerCount; player++ {
		if g.inHandNotAllIn(player) {
			notFoldedNotAllIn.Set(player)
		}
	}

	var playersWithAction PlayerSet
	for _, action := range actions {
		if action.Kind == ActionPost || action.Kind == ActionStraddle {
			continue
		}
		if player, ok := action.ActingPlayer(); ok {
			playersWithAction.Set(player)
		}
	}

	maxInvested := g.maxInvested()
	allEqualInvestments := true
	for player := 0; player < g.playerCount; player++ {
		if notFoldedNotAllIn.Has(player) && g.Invested(player) != maxInvested {
			allEqualInvestments = false
			break
		}
	}

	canSkip := (notFoldedNotAllIn.Count() == 1 ||
		notFoldedNotAllIn.SubsetOf(playersWithAction)) && allEqualInvestments
	if canSkip {
		g.currentPlayer = noPlayer
		return
	}
	g.nextPlayerInHandNotAllIn()
}

func (g *Game) nextPlayerInHandNotAllIn() {
	start := g.currentPlayer
	for {
		g.currentPlayer = (g.currentPlayer + 1) % g.playerCount
		if g.currentPlayer == start {
			g.currentPlayer = noPlayer
			return
		}
		if g.inHandNotAllIn(g.currentPlayer) {
			return
		}
	}
}

func (g *Game) updateStack(amount int64) error {
	player, ok := g.CurrentPlayer()
	if !ok {
		return fmt.Errorf("%w: no player to act", ErrIllegalAction)
	}
	if amount > g.CurrentStreetStacks()[player] {
		return fmt.Errorf("%w: player cannot afford sizing", ErrIllegalAction)
	}
	g.currentStreetStacksMut()[player] -= amount
	return nil
}

func (g *Game) actionPostSimple(amount int64) error {
	player, ok := g.CurrentPlayer()
	if !ok {
		return fmt.Errorf("%w: no player to post", ErrIllegalAction)
	}
	amount = min(g.CurrentStreetStacks()[player], amount)
	if err := g.updateStack(amount); err != nil {
		return err
	}
	g.addAction(PostAction(player, amount, false))
	g.nextPlayer()
	return nil
}

// PostBlinds posts the small and big blind and opens the preflop action.
// Short stacks post what they have.
func (g *Game) PostBlinds() error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	if !g.atStart() {
		return fmt.Errorf("%w: can only post blinds before other actions", ErrIllegalAction)
	}
	g.currentPlayer = g.buttonIndex
	if !g.IsHeadsUpTable() {
		g.currentPlayer = (g.currentPlayer + 1) % g.playerCount
	}
	if err := g.actionPostSimple(g.smallBlind); err != nil {
		return err
	}
	return g.actionPostSimple(g.bigBlind)
}

// AdditionalPost records an ante, missed-blind or other extra post. Dead
// posts go straight into the pot and do not count as investment. For a
// single player dead posts come first and amounts must be non-decreasing;
// across players posts follow seat order from the small blind.
func (g *Game) AdditionalPost(player int, amount int64, dead bool) error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	if player < 0 || player >= g.playerCount {
		return fmt.Errorf("additional post: invalid player index %d", player)
	}
	if g.atStart() || g.board().Street() != PreFlop {
		return fmt.Errorf("%w: posts only allowed pre flop after the blinds", ErrIllegalAction)
	}

	var posters PlayerSet
	for _, action := range g.ActionsInStreet() {
		if action.Kind != ActionPost {
			return fmt.Errorf("%w: posts only allowed before all other actions", ErrIllegalAction)
		}
		posters.Set(action.Player)
	}

	for offset := g.playerCount - 1; offset >= 0; offset-- {
		current := (g.SmallBlindIndex() + offset) % g.playerCount
		if current == player {
			break
		}
		if posters.Has(current) {
			return fmt.Errorf("%w: post out of order", ErrIllegalAction)
		}
	}

	last := g.actions[g.currentActionIndex-1]
	if last.Kind != ActionPost {
		panic("additional post: log must end in a post")
	}
	if last.Player == player {
		if dead && !last.Dead {
			return fmt.Errorf("%w: dead posts must come before live posts", ErrIllegalAction)
		}
		if last.Dead == dead && last.Amount > amount {
			return fmt.Errorf("%w: posts for one player must be ordered by amount", ErrIllegalAction)
		}
	}

	if amount > g.stacksInStreet[PreFlop][player] {
		return fmt.Errorf("%w: player cannot afford post", ErrIllegalAction)
	}
	g.stacksInStreet[PreFlop][player] -= amount
	if dead {
		g.referenceStacks[player] -= amount
	}
	g.addAction(PostAction(player, amount, dead))
	return nil
}

// Straddle posts a voluntary blind raise before cards are acted on. The
// action reopens left of the straddler.
func (g *Game) Straddle(player int, amount int64) error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	required, err := g.CanStraddle(player)
	if err != nil {
		return err
	}
	if amount < required {
		return fmt.Errorf("%w: straddle below minimum %d", ErrIllegalAction, required)
	}
	if amount > g.referenceStacks[player] {
		return fmt.Errorf("%w: player cannot afford straddle", ErrIllegalAction)
	}
	g.currentStreetStacksMut()[player] = g.referenceStacks[player] - amount
	g.addAction(StraddleAction(player, amount))
	g.currentPlayer = (player + 1) % g.playerCount
	return nil
}

func (g *Game) Fold() error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	player, ok := g.CurrentPlayer()
	if !ok {
		return fmt.Errorf("%w: no player to act", ErrIllegalAction)
	}
	g.notFolded.Clear(player)
	g.addAction(FoldAction(player))
	g.nextPlayer()
	return nil
}

func (g *Game) Check() error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	player, ok := g.CurrentPlayer()
	if !ok {
		return fmt.Errorf("%w: no player to act", ErrIllegalAction)
	}
	if !g.CanCheck() {
		return fmt.Errorf("%w: player is not allowed to check", ErrIllegalAction)
	}
	g.addAction(CheckAction(player))
	g.nextPlayer()
	return nil
}

func (g *Game) Call() error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	player, ok := g.CurrentPlayer()
	if !ok {
		return fmt.Errorf("%w: no player to act", ErrIllegalAction)
	}
	amount, canCall := g.CanCall()
	if !canCall {
		return fmt.Errorf("%w: player is not allowed to call", ErrIllegalAction)
	}
	if err := g.updateStack(amount); err != nil {
		return err
	}
	g.addAction(CallAction(player, amount))
	g.nextPlayer()
	return nil
}

func (g *Game) Bet(amount int64) error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	player, ok := g.CurrentPlayer()
	if !ok {
		return fmt.Errorf("%w: no player to act", ErrIllegalAction)
	}
	minAmount, canBet := g.CanBet()
	if !canBet {
		return fmt.Errorf("%w: player is not allowed to bet", ErrIllegalAction)
	}
	if amount < minAmount {
		return fmt.Errorf("%w: bet below minimum %d", ErrIllegalAction, minAmount)
	}
	if err := g.updateStack(amount); err != nil {
		return err
	}
	g.addAction(BetAction(player, amount))
	g.nextPlayer()
	return nil
}

// Raise raises the total street investment of the player to the given
// sizing.
func (g *Game) Raise(to int64) error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	player, ok := g.CurrentPlayer()
	if !ok {
		return fmt.Errorf("%w: no player to act", ErrIllegalAction)
	}
	minAmount, minTo, canRaise := g.CanRaise()
	if !canRaise {
		return fmt.Errorf("%w: player is not allowed to raise", ErrIllegalAction)
	}
	if to < minTo {
		return fmt.Errorf("%w: raise below minimum %d", ErrIllegalAction, minTo)
	}
	amount := minAmount + to - minTo
	previousStreetStack := g.PreviousStreetStacks()[player]
	if to > previousStreetStack {
		return fmt.Errorf("%w: player cannot afford raise", ErrIllegalAction)
	}
	oldStack := g.CurrentStreetStacks()[player]
	g.currentStreetStacksMut()[player] = previousStreetStack - to
	g.addAction(RaiseAction(player, oldStack, amount, to))
	g.nextPlayer()
	return nil
}

// UncalledBet returns the over-invested part of the final bet or raise to
// its owner.
func (g *Game) UncalledBet() error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	state := g.State()
	if state.Kind != StateUncalledBet {
		return fmt.Errorf("%w: no uncalled bet to return", ErrIllegalAction)
	}
	g.currentStreetStacksMut()[state.Player] += state.Amount
	g.addAction(UncalledBetAction(state.Player, state.Amount))
	return nil
}

// prepareNewStreet sets up either the plain next street or a fresh runout
// board branching off the all-in point, copying the shared card prefix and
// forward-filling stacks.
func (g *Game) prepareNewStreet(expected Street, expectStreet bool) (Street, error) {
	street, newRunout, ok := g.canNextStreetMultipleRunouts()
	if !ok {
		return 0, fmt.Errorf("%w: cannot go to next street", ErrIllegalAction)
	}
	if expectStreet && street != expected {
		return 0, fmt.Errorf("%w: cannot go to street %s", ErrIllegalAction, expected)
	}

	if newRunout {
		g.currentBoard++
		previousBoard := g.boards[g.currentBoard-1]
		previousStreet, _ := street.Previous()
		copyCount := previousStreet.CommunityCardCount()
		next := &g.boards[g.currentBoard]
		*next = Board{}
		copy(next.cards[:copyCount], previousBoard.cards[:copyCount])
		next.street = previousStreet

		previousStacks := g.stacksInStreet[street-1]
		for s := int(street); s < StreetCount; s++ {
			g.stacksInStreet[s] = previousStacks
		}
	}
	return street, nil
}

func (g *Game) nextStreetFinal() error {
	if _, err := g.checkCards(); err != nil {
		return err
	}
	currentStreet := g.board().Street()
	// The new street and everything after it start from the previous
	// street's ending stacks.
	previousStacks := g.stacksInStreet[currentStreet-1]
	for s := int(currentStreet); s < StreetCount; s++ {
		g.stacksInStreet[s] = previousStacks
	}
	if g.allInTerminatedHand() {
		g.currentPlayer = noPlayer
	} else {
		g.currentPlayer = g.buttonIndex
		g.nextPlayerInHandNotAllIn()
	}
	g.currentStreetIndex = g.currentActionIndex
	return nil
}

// DealFlop reveals the three flop cards.
func (g *Game) DealFlop(flop [3]card.Card) error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	if _, err := g.prepareNewStreet(Flop, true); err != nil {
		return err
	}
	g.addAction(FlopAction(flop))
	board := g.boardMut()
	board.street = Flop
	copy(board.cards[:3], flop[:])
	return g.nextStreetFinal()
}

// DealTurn reveals the turn card.
func (g *Game) DealTurn(turn card.Card) error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	if _, err := g.prepareNewStreet(Turn, true); err != nil {
		return err
	}
	g.addAction(TurnAction(turn))
	board := g.boardMut()
	board.street = Turn
	board.cards[3] = turn
	return g.nextStreetFinal()
}

// DealRiver reveals the river card.
func (g *Game) DealRiver(river card.Card) error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	if _, err := g.prepareNewStreet(River, true); err != nil {
		return err
	}
	g.addAction(RiverAction(river))
	board := g.boardMut()
	board.street = River
	board.cards[4] = river
	return g.nextStreetFinal()
}

// ShowHand reveals the hole cards of the player owing a showdown decision.
func (g *Game) ShowHand() error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	state := g.State()
	if state.Kind != StateShowOrMuck {
		return fmt.Errorf("%w: cannot show hand now", ErrIllegalAction)
	}
	player := state.Player
	if !g.hands[player].Known() {
		return fmt.Errorf("show: hand for player index %d not set", player)
	}
	g.handShown.Set(player)
	g.addAction(ShowsAction(player, g.hands[player]))
	return nil
}

// MuckHand discards the hand of the player owing a showdown decision
// without revealing it.
func (g *Game) MuckHand() error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	state := g.State()
	if state.Kind != StateShowOrMuck {
		return fmt.Errorf("%w: cannot muck hand now", ErrIllegalAction)
	}
	g.handMucked.Set(state.Player)
	g.addAction(MucksAction(state.Player))
	return nil
}

// ApplyAction validates a recorded action against the current state and
// applies it through the regular mutators. Posts cannot be applied this way;
// they go through PostBlinds and AdditionalPost.
func (g *Game) ApplyAction(action Action) error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	if action.Kind != ActionStraddle {
		actionPlayer, hasActionPlayer := action.ActingPlayer()
		currentPlayer, hasCurrentPlayer := g.CurrentPlayer()
		if hasActionPlayer != hasCurrentPlayer ||
			(hasActionPlayer && actionPlayer != currentPlayer) {
			return fmt.Errorf("%w: current player and action don't match", ErrReplayMismatch)
		}
	}
	switch action.Kind {
	case ActionPost:
		return fmt.Errorf("%w: cannot apply post", ErrReplayMismatch)
	case ActionStraddle:
		return g.Straddle(action.Player, action.Amount)
	case ActionFold:
		return g.Fold()
	case ActionCheck:
		return g.Check()
	case ActionCall:
		amount, canCall := g.CanCall()
		if !canCall || amount != action.Amount {
			return fmt.Errorf("%w: cannot call or amount mismatch", ErrReplayMismatch)
		}
		return g.Call()
	case ActionBet:
		return g.Bet(action.Amount)
	case ActionRaise:
		return g.Raise(action.To)
	case ActionFlop:
		return g.DealFlop(action.Cards)
	case ActionTurn:
		return g.DealTurn(action.Cards[0])
	case ActionRiver:
		return g.DealRiver(action.Cards[0])
	case ActionUncalledBet:
		if g.State() != UncalledBetState(action.Player, action.Amount) {
			return fmt.Errorf("%w: uncalled bet not allowed or invalid", ErrReplayMismatch)
		}
		return g.UncalledBet()
	case ActionShows:
		hand, known := g.GetHand(action.Player)
		if g.State() != ShowOrMuckState(action.Player) || !known || hand != action.Hand {
			return fmt.Errorf("%w: show not allowed or invalid", ErrReplayMismatch)
		}
		return g.ShowHand()
	case ActionMucks:
		if g.State() != ShowOrMuckState(action.Player) {
			return fmt.Errorf("%w: muck not allowed or invalid", ErrReplayMismatch)
		}
		return g.MuckHand()
	}
	return fmt.Errorf("%w: invalid action", ErrReplayMismatch)
}
