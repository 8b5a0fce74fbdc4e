package holdem

import (
	"math/rand"
	"testing"

	"nlhe-lite/card"
)

// playFullHand plays a scripted three-handed hand to the end state.
func playFullHand(t *testing.T) *Game {
	t.Helper()
	players := stacks(500, 500, 500)
	players[0].Hand = mustHand(t, "AsAh")
	players[1].Hand = mustHand(t, "KsKh")
	players[2].Hand = mustHand(t, "QdJd")
	g := mustGame(t, players, 0, 5, 10)
	mustPost(t, g)

	steps := []func() error{
		func() error { return g.Raise(30) },
		g.Call,
		g.Fold,
		func() error {
			return g.DealFlop([3]card.Card{
				card.MustParse("2c"), card.MustParse("5d"), card.MustParse("7h"),
			})
		},
		g.Check,
		func() error { return g.Bet(40) },
		g.Call,
		func() error { return g.DealTurn(card.MustParse("9s")) },
		g.Check,
		g.Check,
		func() error { return g.DealRiver(card.MustParse("3d")) },
		g.Check,
		func() error { return g.Bet(60) },
		g.Call,
		g.ShowHand,
		g.ShowHand,
		g.ShowdownSimple,
	}
	for index, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", index, err)
		}
	}
	if g.State() != EndState() {
		t.Fatalf("expected end state, got %s", g.State())
	}
	return g
}

func checkLegalityExclusive(t *testing.T, g *Game) {
	t.Helper()
	callAmount, canCall := g.CanCall()
	_, canBet := g.CanBet()
	_, raiseTo, canRaise := g.CanRaise()

	if player, ok := g.CurrentPlayer(); ok {
		if g.State() != PlayerState(player) {
			t.Fatalf("state %s does not match current player %d", g.State(), player)
		}
		if g.Folded(player) {
			t.Fatal("folded player to act")
		}
		if !g.CanCheck() && !canCall && !canBet && !canRaise {
			t.Fatal("player to act without any legal action")
		}
	}
	if g.CanCheck() && canCall {
		t.Fatal("check and call cannot both be legal")
	}
	if canCall && canBet {
		t.Fatal("call and bet cannot both be legal")
	}
	if canBet {
		if g.CurrentBoard().Street() == PreFlop {
			t.Fatal("bet is never legal preflop")
		}
		if !g.CanCheck() {
			t.Fatal("a legal bet implies a legal check")
		}
		if canRaise {
			t.Fatal("bet and raise cannot both be legal")
		}
	}
	if canRaise && canCall {
		player, _ := g.CurrentPlayer()
		raiseInvestment := raiseTo - g.InvestedInStreet(player)
		if callAmount >= raiseInvestment {
			t.Fatalf("raise to %d does not exceed call of %d", raiseTo, callAmount)
		}
	}
}

// checkHistoryCompare verifies that a walked-to position matches a snapshot
// taken while the hand was played. Snapshots have shorter logs and no
// settlement, so the full log and the showdown stacks stay out of it.
func checkHistoryCompare(t *testing.T, g, expected *Game) {
	t.Helper()
	if expected.currentActionIndex != g.currentActionIndex {
		t.Fatalf("cursor mismatch: %d != %d", g.currentActionIndex, expected.currentActionIndex)
	}
	if expected.currentStreetIndex != g.currentStreetIndex {
		t.Fatalf("street index mismatch: %d != %d", g.currentStreetIndex, expected.currentStreetIndex)
	}
	if expected.currentPlayer != g.currentPlayer {
		t.Fatalf("current player mismatch: %d != %d", g.currentPlayer, expected.currentPlayer)
	}
	if expected.boards != g.boards || expected.currentBoard != g.currentBoard {
		t.Fatal("board mismatch")
	}
	if expected.referenceStacks != g.referenceStacks {
		t.Fatal("reference stack mismatch")
	}
	for street := Street(0); street <= expected.board().Street(); street++ {
		if expected.stacksInStreet[street] != g.stacksInStreet[street] {
			t.Fatalf("stack mismatch on %s", street)
		}
	}
	if expected.notFolded != g.notFolded ||
		expected.handShown != g.handShown ||
		expected.handMucked != g.handMucked {
		t.Fatal("player set mismatch")
	}
	if expected.State() != g.State() {
		t.Fatalf("state mismatch: %s != %s", g.State(), expected.State())
	}
	if expected.CanCheck() != g.CanCheck() {
		t.Fatal("can check mismatch")
	}
	expectedCall, expectedOK := expected.CanCall()
	call, ok := g.CanCall()
	if expectedCall != call || expectedOK != ok {
		t.Fatal("can call mismatch")
	}
	expectedAmount, expectedTo, expectedOK := expected.CanRaise()
	amount, to, ok := g.CanRaise()
	if expectedAmount != amount || expectedTo != to || expectedOK != ok {
		t.Fatal("can raise mismatch")
	}
}

func TestHistoryWalkMatchesSnapshots(t *testing.T) {
	final := playFullHand(t)

	// Rebuild the hand step by step, snapshotting after every action.
	g := final.Clone()
	g.Reset()
	if g.Previous() || g.Next() {
		t.Fatal("fresh game must not step in either direction")
	}

	var snapshots []*Game
	snapshots = append(snapshots, g.Clone())
	if err := g.PostBlinds(); err != nil {
		t.Fatal(err)
	}
	snapshots = append(snapshots, g.Clone())

	for _, action := range final.actions[2:] {
		if action.Kind == ActionPost || action.Kind == ActionStraddle {
			t.Fatal("scripted hand has no extra posts")
		}
		if err := g.ApplyAction(action); err != nil {
			t.Fatalf("apply %s: %v", action, err)
		}
		snapshots = append(snapshots, g.Clone())
	}
	if g.Next() {
		t.Fatal("next past the final action without settlement must fail")
	}

	var finalStacks []int64
	finalStacks = append(finalStacks, final.showdownStacks[:final.playerCount]...)
	if err := g.ShowdownStacks(finalStacks); err != nil {
		t.Fatal(err)
	}
	snapshots = append(snapshots, g.Clone())
	if !g.Equal(final) {
		t.Fatal("replayed game must equal the original")
	}

	// Walk all the way back, checking each snapshot on the way.
	for index := len(snapshots) - 2; index >= 0; index-- {
		if !g.Previous() {
			t.Fatalf("previous failed at snapshot %d", index)
		}
		checkLegalityExclusive(t, g)
		checkHistoryCompare(t, g, snapshots[index])
	}
	if g.Previous() {
		t.Fatal("previous at the start must fail")
	}

	// And forward again.
	for index := 1; index < len(snapshots); index++ {
		if !g.Next() {
			t.Fatalf("next failed at snapshot %d", index)
		}
		checkLegalityExclusive(t, g)
		checkHistoryCompare(t, g, snapshots[index])
	}
	if g.Next() {
		t.Fatal("next at the end must fail")
	}
}

func TestRewindForwardRoundTrip(t *testing.T) {
	g := playFullHand(t)
	reference := g.Clone()

	g.Rewind()
	if g.State() != PostState() {
		t.Fatalf("expected post state after rewind, got %s", g.State())
	}
	if len(g.actions) != len(reference.actions) {
		t.Fatal("rewind must not drop recorded actions")
	}
	g.Forward()
	if !g.Equal(reference) {
		t.Fatal("rewind plus forward must restore the final state")
	}
}

func TestPreviousAcrossStreetRestoresBoard(t *testing.T) {
	g := playFullHand(t)
	g.Rewind()

	// Step forward until the flop is on the board, then one step back.
	for g.CurrentBoard().Street() != Flop {
		if !g.Next() {
			t.Fatal("ran out of actions before the flop")
		}
	}
	if !g.Previous() {
		t.Fatal("previous across the flop deal failed")
	}
	if g.CurrentBoard().Street() != PreFlop {
		t.Fatalf("expected preflop board, got %s", g.CurrentBoard().Street())
	}
	if len(g.CurrentBoard().Cards()) != 0 {
		t.Fatal("expected empty board after undoing the flop")
	}
	if !g.Next() {
		t.Fatal("re-dealing the flop through next failed")
	}
	if g.CurrentBoard().Street() != Flop {
		t.Fatalf("expected flop board again, got %s", g.CurrentBoard().Street())
	}
}

func TestDrawNextStreetDeterministic(t *testing.T) {
	build := func(seed int64) *Game {
		t.Helper()
		players := stacks(100, 100)
		g := mustGame(t, players, 0, 5, 10)
		rng := rand.New(rand.NewSource(seed))
		g.DrawUnsetHands(rng)
		mustPost(t, g)
		if err := g.Call(); err != nil {
			t.Fatal(err)
		}
		if err := g.Check(); err != nil {
			t.Fatal(err)
		}
		if err := g.DrawNextStreet(rng); err != nil {
			t.Fatal(err)
		}
		return g
	}

	a := build(42)
	b := build(42)
	c := build(43)
	if !a.Equal(b) {
		t.Fatal("same seed must produce the same hand")
	}
	if a.CurrentBoard() != b.CurrentBoard() {
		t.Fatal("same seed must deal the same flop")
	}
	if a.Equal(c) {
		t.Fatal("different seeds should diverge")
	}
}

func TestDrawUnsetHandsKeepsKnownHands(t *testing.T) {
	players := stacks(100, 100, 100)
	players[1].Hand = mustHand(t, "AsKs")
	g := mustGame(t, players, 0, 5, 10)
	g.DrawUnsetHands(rand.New(rand.NewSource(7)))

	hand, ok := g.GetHand(1)
	if !ok || hand != mustHand(t, "AsKs") {
		t.Fatalf("known hand must survive, got %s (%t)", hand, ok)
	}
	var seen card.Set
	for player := 0; player < g.PlayerCount(); player++ {
		hand, ok := g.GetHand(player)
		if !ok {
			t.Fatalf("player %d has no hand after drawing", player)
		}
		for _, c := range hand.Cards() {
			if seen.Has(c) {
				t.Fatalf("duplicate card %s across drawn hands", c)
			}
			seen = seen.With(c)
		}
	}
}
