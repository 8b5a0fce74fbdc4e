package holdem

import (
	"fmt"
	"time"

	"nlhe-lite/card"
)

const (
	// MinPlayers is the smallest supported table size.
	MinPlayers = 2
	// MaxPlayers is the largest supported table size.
	MaxPlayers = 9
)

const noPlayer = -1

// Game is a single no-limit hold'em hand. The append-only action log is the
// source of truth; everything else is bookkeeping derived from it. A replay
// cursor allows stepping backward and forward through the log without losing
// recorded actions.
type Game struct {
	playerCount int
	buttonIndex int
	smallBlind  int64
	bigBlind    int64

	startingStacks [MaxPlayers]int64
	names          [MaxPlayers]string
	seats          [MaxPlayers]int
	hands          [MaxPlayers]card.Hand

	unit       string
	maxPlayers int
	location   string
	date       time.Time
	tableName  string
	handName   string
	heroIndex  int

	actions            []Action
	boards             [MaxRunouts]Board
	currentBoard       int
	referenceStacks    [MaxPlayers]int64
	stacksInStreet     [StreetCount][MaxPlayers]int64
	showdownStacks     [MaxPlayers]int64
	currentStreetIndex int
	currentActionIndex int
	currentPlayer      int
	notFolded          PlayerSet
	handShown          PlayerSet
	handMucked         PlayerSet
	atEnd              bool
	inNext             bool
}

// NewGame starts a hand before any blinds are posted.
func NewGame(players []Player, buttonIndex int, smallBlind, bigBlind int64) (*Game, error) {
	playerCount := len(players)
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return nil, fmt.Errorf("%w: player count %d outside [%d, %d]",
			ErrBadConfig, playerCount, MinPlayers, MaxPlayers)
	}
	if buttonIndex < 0 || buttonIndex >= playerCount {
		return nil, fmt.Errorf("%w: invalid button position %d", ErrBadConfig, buttonIndex)
	}
	if smallBlind <= 0 || bigBlind <= 0 || smallBlind > bigBlind {
		return nil, fmt.Errorf("%w: blinds %d/%d", ErrBadConfig, smallBlind, bigBlind)
	}

	g := &Game{
		playerCount:   playerCount,
		buttonIndex:   buttonIndex,
		smallBlind:    smallBlind,
		bigBlind:      bigBlind,
		heroIndex:     noPlayer,
		currentPlayer: noPlayer,
		notFolded:     FullPlayerSet(playerCount),
	}
	for index, player := range players {
		if player.StartingStack <= 0 {
			return nil, fmt.Errorf("%w: empty stack for player %d", ErrBadConfig, index)
		}
		g.startingStacks[index] = player.StartingStack
		g.names[index] = player.Name
		g.hands[index] = player.Hand
	}

	names := make(map[string]struct{}, playerCount)
	for player := 0; player < playerCount; player++ {
		name := g.PlayerName(player)
		if name == "" {
			return nil, fmt.Errorf("%w: empty player name", ErrBadConfig)
		}
		if _, ok := names[name]; ok {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrBadConfig, name)
		}
		names[name] = struct{}{}
	}

	seatCount := 0
	for index, player := range players {
		if player.Seat != SeatUnset {
			g.seats[index] = player.Seat
			seatCount++
		} else {
			g.seats[index] = index
		}
	}
	if seatCount != 0 {
		if seatCount != playerCount {
			return nil, fmt.Errorf("%w: all players need a seat (or none)", ErrBadConfig)
		}
		seats := make(map[int]struct{}, playerCount)
		for player := 0; player < playerCount; player++ {
			seat := g.seats[player]
			if seat < 0 || seat >= MaxPlayers {
				return nil, fmt.Errorf("%w: seat %d out of range", ErrBadConfig, seat)
			}
			if _, ok := seats[seat]; ok {
				return nil, fmt.Errorf("%w: duplicate seat %d", ErrBadConfig, seat)
			}
			seats[seat] = struct{}{}
		}
	}

	g.referenceStacks = g.startingStacks
	for street := range g.stacksInStreet {
		g.stacksInStreet[street] = g.startingStacks
	}
	if _, err := g.checkCards(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset drops the action log and returns to the pre-post state, keeping the
// table configuration, names, seats and known hole cards.
func (g *Game) Reset() {
	g.actions = g.actions[:0]
	g.referenceStacks = g.startingStacks
	for street := range g.stacksInStreet {
		g.stacksInStreet[street] = g.startingStacks
	}
	g.showdownStacks = [MaxPlayers]int64{}
	g.boards = [MaxRunouts]Board{}
	g.currentBoard = 0
	g.currentStreetIndex = 0
	g.currentActionIndex = 0
	g.currentPlayer = noPlayer
	g.notFolded = FullPlayerSet(g.playerCount)
	g.handShown = 0
	g.handMucked = 0
	g.atEnd = false
	g.inNext = false
}

// Clone returns a deep copy sharing no mutable state with g.
func (g *Game) Clone() *Game {
	clone := *g
	clone.actions = make([]Action, len(g.actions))
	copy(clone.actions, g.actions)
	return &clone
}

// Equal reports whether both games describe the same hand at the same replay
// position. Street stack snapshots above the current street are scratch
// space and do not participate.
func (g *Game) Equal(other *Game) bool {
	if g == other {
		return true
	}
	if g == nil || other == nil {
		return false
	}
	same := g.playerCount == other.playerCount &&
		g.buttonIndex == other.buttonIndex &&
		g.smallBlind == other.smallBlind &&
		g.bigBlind == other.bigBlind &&
		g.startingStacks == other.startingStacks &&
		g.names == other.names &&
		g.seats == other.seats &&
		g.hands == other.hands &&
		g.unit == other.unit &&
		g.maxPlayers == other.maxPlayers &&
		g.location == other.location &&
		g.date.Equal(other.date) &&
		g.tableName == other.tableName &&
		g.handName == other.handName &&
		g.heroIndex == other.heroIndex &&
		g.boards == other.boards &&
		g.currentBoard == other.currentBoard &&
		g.referenceStacks == other.referenceStacks &&
		g.showdownStacks == other.showdownStacks &&
		g.currentStreetIndex == other.currentStreetIndex &&
		g.currentActionIndex == other.currentActionIndex &&
		g.currentPlayer == other.currentPlayer &&
		g.notFolded == other.notFolded &&
		g.handShown == other.handShown &&
		g.handMucked == other.handMucked &&
		g.atEnd == other.atEnd
	if !same {
		return false
	}
	if len(g.actions) != len(other.actions) {
		return false
	}
	for index := range g.actions {
		if g.actions[index] != other.actions[index] {
			return false
		}
	}
	for street := Street(0); street <= g.board().Street(); street++ {
		if g.stacksInStreet[street] != other.stacksInStreet[street] {
			return false
		}
	}
	return true
}

func (g *Game) PlayerCount() int {
	return g.playerCount
}

func (g *Game) ButtonIndex() int {
	return g.buttonIndex
}

func (g *Game) SmallBlind() int64 {
	return g.smallBlind
}

func (g *Game) BigBlind() int64 {
	return g.bigBlind
}

func (g *Game) IsHeadsUpTable() bool {
	return g.playerCount == MinPlayers
}

func (g *Game) SmallBlindIndex() int {
	offset := 1
	if g.IsHeadsUpTable() {
		offset = 0
	}
	return (g.buttonIndex + offset) % g.playerCount
}

func (g *Game) BigBlindIndex() int {
	offset := 2
	if g.IsHeadsUpTable() {
		offset = 1
	}
	return (g.buttonIndex + offset) % g.playerCount
}

func (g *Game) firstToActPostFlop() int {
	return (g.buttonIndex + 1) % g.playerCount
}

// PlayerName returns the configured name or the position short name.
func (g *Game) PlayerName(player int) string {
	if g.names[player] != "" {
		return g.names[player]
	}
	position, _ := PositionName(g.playerCount, g.buttonIndex, player)
	return position.Short
}

// PlayerByName inverts PlayerName.
func (g *Game) PlayerByName(name string) (int, bool) {
	for player := 0; player < g.playerCount; player++ {
		if g.PlayerName(player) == name {
			return player, true
		}
	}
	return 0, false
}

func (g *Game) Seat(player int) int {
	return g.seats[player]
}

func (g *Game) StartingStack(player int) int64 {
	return g.startingStacks[player]
}

// Players reconstructs the per-seat configuration.
func (g *Game) Players() []Player {
	players := make([]Player, g.playerCount)
	for index := range players {
		players[index] = Player{
			Name:          g.names[index],
			Seat:          g.seats[index],
			Hand:          g.hands[index],
			StartingStack: g.startingStacks[index],
		}
	}
	return players
}

func (g *Game) board() Board {
	return g.boards[g.currentBoard]
}

func (g *Game) boardMut() *Board {
	return &g.boards[g.currentBoard]
}

// CurrentBoard returns the board of the runout in progress.
func (g *Game) CurrentBoard() Board {
	return g.board()
}

// Runouts lists all boards dealt so far, first runout first.
func (g *Game) Runouts() []Board {
	return g.boards[:g.currentBoard+1]
}

// CurrentStreetStacks returns the live stacks on the current street.
func (g *Game) CurrentStreetStacks() []int64 {
	return g.stacksInStreet[g.board().Street()][:g.playerCount]
}

func (g *Game) currentStreetStacksMut() []int64 {
	return g.stacksInStreet[g.board().Street()][:g.playerCount]
}

// PreviousStreetStacks returns the stacks at the start of the current
// street. Preflop this includes dead posts already taken out.
func (g *Game) PreviousStreetStacks() []int64 {
	if street, ok := g.board().Street().Previous(); ok {
		return g.stacksInStreet[street][:g.playerCount]
	}
	return g.referenceStacks[:g.playerCount]
}

// CurrentStacks returns showdown stacks once the hand ended, otherwise the
// live street stacks.
func (g *Game) CurrentStacks() []int64 {
	if g.State().Kind == StateEnd {
		return g.showdownStacks[:g.playerCount]
	}
	return g.CurrentStreetStacks()
}

// TotalPot is the sum of everything all players put in, dead posts included.
func (g *Game) TotalPot() int64 {
	var total int64
	for player := 0; player < g.playerCount; player++ {
		total += g.TotalInvested(player)
	}
	return total
}

// TotalInvested includes dead posts.
func (g *Game) TotalInvested(player int) int64 {
	return g.startingStacks[player] - g.CurrentStreetStacks()[player]
}

// Invested is the live amount counted for pot building, dead posts excluded.
func (g *Game) Invested(player int) int64 {
	return g.referenceStacks[player] - g.CurrentStreetStacks()[player]
}

// InvestedInStreet is the live amount put in on the current street only.
func (g *Game) InvestedInStreet(player int) int64 {
	return g.PreviousStreetStacks()[player] - g.CurrentStreetStacks()[player]
}

func (g *Game) maxInvested() int64 {
	var most int64
	for player := 0; player < g.playerCount; player++ {
		if invested := g.Invested(player); invested > most {
			most = invested
		}
	}
	return most
}

func (g *Game) Folded(player int) bool {
	return !g.notFolded.Has(player)
}

// PlayersNotFolded lists the players still in the hand.
func (g *Game) PlayersNotFolded() []int {
	players := make([]int, 0, g.notFolded.Count())
	for player := 0; player < g.playerCount; player++ {
		if g.notFolded.Has(player) {
			players = append(players, player)
		}
	}
	return players
}

func (g *Game) isAllIn(player int) bool {
	return g.CurrentStreetStacks()[player] == 0
}

func (g *Game) inHandNotAllIn(player int) bool {
	return g.notFolded.Has(player) && !g.isAllIn(player)
}

func (g *Game) allInCount() int {
	count := 0
	for player := 0; player < g.playerCount; player++ {
		if g.notFolded.Has(player) && g.isAllIn(player) {
			count++
		}
	}
	return count
}

func (g *Game) playersNotFoldedNotAllIn() int {
	count := 0
	for player := 0; player < g.playerCount; player++ {
		if g.inHandNotAllIn(player) {
			count++
		}
	}
	return count
}

// Actions returns the log up to the replay cursor.
func (g *Game) Actions() []Action {
	return g.actions[:g.currentActionIndex]
}

// ActionsInStreet returns the betting actions of the current street up to
// the cursor, stopping before trailing non-player actions.
func (g *Game) ActionsInStreet() []Action {
	for index := g.currentStreetIndex; index < g.currentActionIndex; index++ {
		if !g.actions[index].IsPlayer() {
			return g.actions[g.currentStreetIndex:index]
		}
	}
	return g.actions[g.currentStreetIndex:g.currentActionIndex]
}

// CurrentPlayer returns the player to act, if any.
func (g *Game) CurrentPlayer() (int, bool) {
	if g.currentPlayer == noPlayer {
		return 0, false
	}
	return g.currentPlayer, true
}

// CurrentStack returns the stack of the player to act.
func (g *Game) CurrentStack() (int64, bool) {
	player, ok := g.CurrentPlayer()
	if !ok {
		return 0, false
	}
	return g.CurrentStreetStacks()[player], true
}

func (g *Game) atStart() bool {
	return g.currentActionIndex == 0
}

// HandShown reports whether the player revealed at showdown.
func (g *Game) HandShown(player int) bool {
	return g.handShown.Has(player)
}

// HandMucked reports whether the player mucked at showdown.
func (g *Game) HandMucked(player int) bool {
	return g.handMucked.Has(player)
}

// GetHand returns the known hole cards of a player.
func (g *Game) GetHand(player int) (card.Hand, bool) {
	if player < 0 || player >= g.playerCount || !g.hands[player].Known() {
		return card.NoHand, false
	}
	return g.hands[player], true
}

// SetHand attaches known hole cards to a player. An already known hand
// cannot be replaced by a different one.
func (g *Game) SetHand(player int, hand card.Hand) error {
	if player < 0 || player >= g.playerCount {
		return fmt.Errorf("set hand: unknown player index %d", player)
	}
	if g.hands[player].Known() && g.hands[player] != hand {
		return fmt.Errorf("set hand: cannot set different hand for player index %d", player)
	}
	previous := g.hands[player]
	g.hands[player] = hand
	if _, err := g.checkCards(); err != nil {
		g.hands[player] = previous
		return err
	}
	return nil
}

// KnownCards collects every card visible in the hand so far.
func (g *Game) KnownCards() card.Set {
	known, err := g.checkCards()
	if err != nil {
		panic(err)
	}
	return known
}

// checkCards validates that no card occurs twice across hole cards and all
// runout boards. Later runouts must share the prefix they branched from.
func (g *Game) checkCards() (card.Set, error) {
	var known card.Set
	for player := 0; player < g.playerCount; player++ {
		hand := g.hands[player]
		if !hand.Known() {
			continue
		}
		for _, c := range hand.Cards() {
			if known.Has(c) {
				return 0, fmt.Errorf("%w: %s in hand", ErrDuplicateCard, c)
			}
			known = known.With(c)
		}
	}

	for _, c := range g.boards[0].Cards() {
		if known.Has(c) {
			return 0, fmt.Errorf("%w: %s on board", ErrDuplicateCard, c)
		}
		known = known.With(c)
	}

	if g.currentBoard > 0 {
		var streetCounts [StreetCount]int
		for _, action := range g.actions {
			if street, ok := action.StreetDealt(); ok {
				streetCounts[street]++
			}
		}
		var matching int
		switch {
		case streetCounts[Flop] > 1:
			matching = PreFlop.CommunityCardCount()
		case streetCounts[Turn] > 1:
			matching = Flop.CommunityCardCount()
		case streetCounts[River] > 1:
			matching = Turn.CommunityCardCount()
		default:
			return 0, fmt.Errorf("holdem: runout without repeated street")
		}

		for boardIndex := 1; boardIndex <= g.currentBoard; boardIndex++ {
			cards := g.boards[boardIndex].Cards()
			for i := 0; i < matching && i < len(cards); i++ {
				if cards[i] != g.boards[0].Cards()[i] {
					return 0, fmt.Errorf("holdem: runout boards diverge before branch point")
				}
			}
			for _, c := range cards[min(matching, len(cards)):] {
				if known.Has(c) {
					return 0, fmt.Errorf("%w: %s on board", ErrDuplicateCard, c)
				}
				known = known.With(c)
			}
		}
	}
	return known, nil
}
