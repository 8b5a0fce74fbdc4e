package holdem

import (
	"errors"
	"testing"

	"nlhe-lite/card"
)

func mustGame(t *testing.T, players []Player, button int, smallBlind, bigBlind int64) *Game {
	t.Helper()
	g, err := NewGame(players, button, smallBlind, bigBlind)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func mustPost(t *testing.T, g *Game) {
	t.Helper()
	if err := g.PostBlinds(); err != nil {
		t.Fatal(err)
	}
}

func mustHand(t *testing.T, s string) card.Hand {
	t.Helper()
	h, err := card.ParseHand(s)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func stacks(values ...int64) []Player {
	players := make([]Player, len(values))
	for index, value := range values {
		players[index] = Player{Seat: SeatUnset, StartingStack: value}
	}
	return players
}

func TestNewGameValidation(t *testing.T) {
	if _, err := NewGame(stacks(100), 0, 5, 10); err == nil {
		t.Fatal("expected error for single player")
	}
	if _, err := NewGame(stacks(100, 100), 2, 5, 10); err == nil {
		t.Fatal("expected error for button out of range")
	}
	if _, err := NewGame(stacks(100, 0), 0, 5, 10); err == nil {
		t.Fatal("expected error for empty stack")
	}
	if _, err := NewGame(stacks(100, 100), 0, 10, 5); err == nil {
		t.Fatal("expected error for small blind above big blind")
	}
	players := stacks(100, 100)
	players[0].Name = "alice"
	players[1].Name = "alice"
	if _, err := NewGame(players, 0, 5, 10); err == nil {
		t.Fatal("expected error for duplicate name")
	}
}

func TestHeadsUpPreflopLegality(t *testing.T) {
	g := mustGame(t, stacks(100, 100), 0, 5, 10)
	if g.State() != PostState() {
		t.Fatalf("expected post state, got %s", g.State())
	}
	mustPost(t, g)

	// Heads up the button posts the small blind and acts first.
	if g.State() != PlayerState(0) {
		t.Fatalf("expected player 0 to act, got %s", g.State())
	}
	if g.CanCheck() {
		t.Fatal("small blind cannot check facing the big blind")
	}
	amount, ok := g.CanCall()
	if !ok || amount != 5 {
		t.Fatalf("expected call of 5, got %d (%t)", amount, ok)
	}
	if _, ok := g.CanBet(); ok {
		t.Fatal("no bet preflop, blinds already opened the action")
	}
	raiseAmount, raiseTo, ok := g.CanRaise()
	if !ok || raiseAmount != 10 || raiseTo != 20 {
		t.Fatalf("expected min raise (10, 20), got (%d, %d) %t", raiseAmount, raiseTo, ok)
	}

	if err := g.Call(); err != nil {
		t.Fatal(err)
	}
	if g.State() != PlayerState(1) {
		t.Fatalf("expected big blind option, got %s", g.State())
	}
	if !g.CanCheck() {
		t.Fatal("big blind must have the option to check")
	}
	if err := g.Check(); err != nil {
		t.Fatal(err)
	}
	if g.State() != StreetState(Flop) {
		t.Fatalf("expected flop next, got %s", g.State())
	}
}

func TestThreeHandedPostingAndOrder(t *testing.T) {
	g := mustGame(t, stacks(200, 200, 200), 0, 5, 10)
	mustPost(t, g)

	actions := g.Actions()
	if len(actions) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(actions))
	}
	if actions[0] != PostAction(1, 5, false) || actions[1] != PostAction(2, 10, false) {
		t.Fatalf("unexpected posts: %s, %s", actions[0], actions[1])
	}
	if g.State() != PlayerState(0) {
		t.Fatalf("expected button to act first three handed, got %s", g.State())
	}
}

func TestBetFoldCallStreetTransition(t *testing.T) {
	g := mustGame(t, stacks(200, 200, 200), 0, 5, 10)
	mustPost(t, g)

	for _, step := range []error{g.Call(), g.Call(), g.Check()} {
		if step != nil {
			t.Fatal(step)
		}
	}
	if g.State() != StreetState(Flop) {
		t.Fatalf("expected flop, got %s", g.State())
	}
	flop := [3]card.Card{card.MustParse("2c"), card.MustParse("7d"), card.MustParse("Jh")}
	if err := g.DealFlop(flop); err != nil {
		t.Fatal(err)
	}
	if g.State() != PlayerState(1) {
		t.Fatalf("expected small blind first post flop, got %s", g.State())
	}

	minBet, ok := g.CanBet()
	if !ok || minBet != 10 {
		t.Fatalf("expected min bet 10, got %d (%t)", minBet, ok)
	}
	if err := g.Bet(10); err != nil {
		t.Fatal(err)
	}
	if err := g.Fold(); err != nil {
		t.Fatal(err)
	}
	if err := g.Call(); err != nil {
		t.Fatal(err)
	}
	if g.State() != StreetState(Turn) {
		t.Fatalf("expected turn after bet/fold/call, got %s", g.State())
	}
	if g.TotalPot() != 50 {
		t.Fatalf("expected pot of 50, got %d", g.TotalPot())
	}
}

func TestDealtStreetStartsFromPreviousStacks(t *testing.T) {
	g := mustGame(t, stacks(200, 200), 0, 5, 10)
	mustPost(t, g)

	if err := g.Raise(30); err != nil {
		t.Fatal(err)
	}
	if err := g.Call(); err != nil {
		t.Fatal(err)
	}
	flop := [3]card.Card{card.MustParse("2c"), card.MustParse("7d"), card.MustParse("Jh")}
	if err := g.DealFlop(flop); err != nil {
		t.Fatal(err)
	}

	for player, stack := range g.CurrentStreetStacks() {
		if stack != 170 {
			t.Fatalf("player %d starts the flop with %d, want 170", player, stack)
		}
	}
	if g.TotalPot() != 60 {
		t.Fatalf("expected pot of 60 on the flop, got %d", g.TotalPot())
	}
	if err := g.DealTurn(card.MustParse("9s")); err == nil {
		t.Fatal("turn must not be dealt with flop action pending")
	}
}

func TestAllInPlayerStaysAllInAcrossStreets(t *testing.T) {
	g := mustGame(t, stacks(50, 300), 0, 5, 10)
	mustPost(t, g)

	if err := g.Raise(50); err != nil {
		t.Fatal(err)
	}
	if err := g.Call(); err != nil {
		t.Fatal(err)
	}
	if err := g.MuckHand(); err != nil {
		t.Fatal(err)
	}
	if err := g.MuckHand(); err != nil {
		t.Fatal(err)
	}
	flop := [3]card.Card{card.MustParse("2c"), card.MustParse("7d"), card.MustParse("Jh")}
	if err := g.DealFlop(flop); err != nil {
		t.Fatal(err)
	}

	if stack := g.CurrentStreetStacks()[0]; stack != 0 {
		t.Fatalf("all-in player regained chips: stack %d", stack)
	}
	if _, ok := g.CurrentPlayer(); ok {
		t.Fatal("no action remains when the hand is all-in")
	}
	if street, ok := g.CanNextStreet(); !ok || street != Turn {
		t.Fatalf("expected runout to continue with the turn, got %s (%t)", street, ok)
	}
}

func TestRaiseMinimumSizing(t *testing.T) {
	g := mustGame(t, stacks(1000, 1000), 0, 5, 10)
	mustPost(t, g)

	if err := g.Raise(15); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("expected illegal raise below minimum, got %v", err)
	}
	if err := g.Raise(30); err != nil {
		t.Fatal(err)
	}
	amount, to, ok := g.CanRaise()
	if !ok || amount != 20 || to != 50 {
		t.Fatalf("expected min re-raise (20, 50), got (%d, %d) %t", amount, to, ok)
	}
	if err := g.Raise(49); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("expected illegal re-raise below minimum, got %v", err)
	}
	if err := g.Raise(50); err != nil {
		t.Fatal(err)
	}
}

func TestStraddleDoubling(t *testing.T) {
	g := mustGame(t, stacks(1000, 1000, 1000), 0, 5, 10)
	if _, err := g.CanStraddle(0); err == nil {
		t.Fatal("straddle before posts must fail")
	}
	mustPost(t, g)

	required, err := g.CanStraddle(0)
	if err != nil {
		t.Fatal(err)
	}
	if required != 20 {
		t.Fatalf("expected first straddle of 20, got %d", required)
	}
	if err := g.Straddle(0, 19); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("expected straddle below minimum to fail, got %v", err)
	}
	if err := g.Straddle(0, 20); err != nil {
		t.Fatal(err)
	}
	if g.State() != PlayerState(1) {
		t.Fatalf("action must reopen left of the straddler, got %s", g.State())
	}

	required, err = g.CanStraddle(1)
	if err != nil {
		t.Fatal(err)
	}
	if required != 40 {
		t.Fatalf("expected second straddle of 40, got %d", required)
	}
	if err := g.Straddle(1, 40); err != nil {
		t.Fatal(err)
	}

	// The last full straddle opens the raise sizing.
	amount, to, ok := g.CanRaise()
	if !ok || amount != 40 || to != 80 {
		t.Fatalf("expected min raise (40, 80) over straddle, got (%d, %d) %t", amount, to, ok)
	}
}

func TestAdditionalPostAndDeadMoney(t *testing.T) {
	g := mustGame(t, stacks(500, 500, 500), 0, 5, 10)
	mustPost(t, g)

	if err := g.AdditionalPost(0, 5, true); err != nil {
		t.Fatal(err)
	}
	if err := g.AdditionalPost(0, 10, false); err != nil {
		t.Fatal(err)
	}
	// Dead posts do not count as live investment.
	if g.Invested(0) != 10 {
		t.Fatalf("expected live investment 10, got %d", g.Invested(0))
	}
	if g.TotalInvested(0) != 15 {
		t.Fatalf("expected total investment 15, got %d", g.TotalInvested(0))
	}

	// Earlier seats may no longer post once a later seat posted.
	if err := g.AdditionalPost(1, 10, false); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("expected out of order post to fail, got %v", err)
	}
}

func TestUncalledBetReturned(t *testing.T) {
	g := mustGame(t, stacks(100, 100), 0, 5, 10)
	mustPost(t, g)
	if err := g.Raise(30); err != nil {
		t.Fatal(err)
	}
	if err := g.Fold(); err != nil {
		t.Fatal(err)
	}

	state := g.State()
	if state != UncalledBetState(0, 20) {
		t.Fatalf("expected uncalled bet of 20 to player 0, got %s", state)
	}
	if err := g.UncalledBet(); err != nil {
		t.Fatal(err)
	}
	if err := g.ShowdownSimple(); err != nil {
		t.Fatal(err)
	}
	final := g.CurrentStacks()
	if final[0] != 110 || final[1] != 90 {
		t.Fatalf("expected stacks [110 90], got %v", final)
	}
}

func TestThreeWayAllInSidePots(t *testing.T) {
	players := stacks(100, 200, 300)
	players[0].Hand = mustHand(t, "AsAh")
	players[1].Hand = mustHand(t, "KsKh")
	players[2].Hand = mustHand(t, "QsQh")
	g := mustGame(t, players, 0, 5, 10)
	mustPost(t, g)

	if err := g.Raise(100); err != nil {
		t.Fatal(err)
	}
	if err := g.Raise(200); err != nil {
		t.Fatal(err)
	}
	if err := g.Raise(300); err != nil {
		t.Fatal(err)
	}

	if g.State() != UncalledBetState(2, 100) {
		t.Fatalf("expected uncalled 100 back to player 2, got %s", g.State())
	}
	if err := g.UncalledBet(); err != nil {
		t.Fatal(err)
	}

	// Show or muck starts at the last aggressor.
	if g.State() != ShowOrMuckState(2) {
		t.Fatalf("expected player 2 to show first, got %s", g.State())
	}
	for i := 0; i < 3; i++ {
		if err := g.ShowHand(); err != nil {
			t.Fatal(err)
		}
	}

	if err := g.DealFlop([3]card.Card{
		card.MustParse("2c"), card.MustParse("5d"), card.MustParse("7h"),
	}); err != nil {
		t.Fatal(err)
	}
	if err := g.DealTurn(card.MustParse("9s")); err != nil {
		t.Fatal(err)
	}
	if err := g.DealRiver(card.MustParse("3c")); err != nil {
		t.Fatal(err)
	}

	if err := g.ShowdownSimple(); err != nil {
		t.Fatal(err)
	}
	final := g.CurrentStacks()
	// Main pot 300 to the aces, side pot 200 to the kings, the short
	// 100 of the queens already went back uncalled.
	if final[0] != 300 || final[1] != 200 || final[2] != 100 {
		t.Fatalf("expected stacks [300 200 100], got %v", final)
	}
}

func TestMultipleRunoutsSplitPot(t *testing.T) {
	players := stacks(100, 100)
	players[0].Hand = mustHand(t, "AsAh")
	players[1].Hand = mustHand(t, "KsKh")
	g := mustGame(t, players, 0, 5, 10)
	mustPost(t, g)

	if err := g.Raise(100); err != nil {
		t.Fatal(err)
	}
	if err := g.Call(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := g.ShowHand(); err != nil {
			t.Fatal(err)
		}
	}

	runout1 := []string{"2c 5d 7h", "9s", "3c"}
	runout2 := []string{"Kd 5s 7c", "9c", "3d"}
	for _, runout := range [][]string{runout1, runout2} {
		flopCards, err := card.ParseList(runout[0])
		if err != nil {
			t.Fatal(err)
		}
		if err := g.DealFlop([3]card.Card{flopCards[0], flopCards[1], flopCards[2]}); err != nil {
			t.Fatal(err)
		}
		if err := g.DealTurn(card.MustParse(runout[1])); err != nil {
			t.Fatal(err)
		}
		if err := g.DealRiver(card.MustParse(runout[2])); err != nil {
			t.Fatal(err)
		}
	}

	if len(g.Runouts()) != 2 {
		t.Fatalf("expected 2 runouts, got %d", len(g.Runouts()))
	}
	if err := g.ShowdownSimple(); err != nil {
		t.Fatal(err)
	}
	final := g.CurrentStacks()
	// Aces take the first runout, the kings spike their set on the
	// second, so each board wins half the pot.
	if final[0] != 100 || final[1] != 100 {
		t.Fatalf("expected split [100 100], got %v", final)
	}
}

func TestRunoutRejectsDuplicateCard(t *testing.T) {
	players := stacks(100, 100)
	players[0].Hand = mustHand(t, "AsAh")
	players[1].Hand = mustHand(t, "KsKh")
	g := mustGame(t, players, 0, 5, 10)
	mustPost(t, g)
	if err := g.Raise(100); err != nil {
		t.Fatal(err)
	}
	if err := g.Call(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := g.ShowHand(); err != nil {
			t.Fatal(err)
		}
	}
	err := g.DealFlop([3]card.Card{
		card.MustParse("As"), card.MustParse("5d"), card.MustParse("7h"),
	})
	if !errors.Is(err, ErrDuplicateCard) {
		t.Fatalf("expected duplicate card error, got %v", err)
	}
}

func TestShowdownCustomConservation(t *testing.T) {
	g := mustGame(t, stacks(100, 100), 0, 5, 10)
	mustPost(t, g)
	if err := g.Call(); err != nil {
		t.Fatal(err)
	}
	if err := g.Check(); err != nil {
		t.Fatal(err)
	}
	if err := g.DealFlop([3]card.Card{
		card.MustParse("2c"), card.MustParse("5d"), card.MustParse("7h"),
	}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := g.Check(); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.DealTurn(card.MustParse("9s")); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := g.Check(); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.DealRiver(card.MustParse("3d")); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := g.Check(); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 2; i++ {
		if err := g.MuckHand(); err != nil {
			t.Fatal(err)
		}
	}

	clone := g.Clone()
	if err := clone.ShowdownCustom(1, []PotShare{{Player: 0, Amount: 20}}); !errors.Is(err, ErrConservation) {
		t.Fatalf("expected conservation error, got %v", err)
	}
	if err := clone.ShowdownCustom(2, []PotShare{{Player: 0, Amount: 18}}); err != nil {
		t.Fatal(err)
	}
	final := clone.CurrentStacks()
	if final[0] != 108 || final[1] != 90 {
		t.Fatalf("expected stacks [108 90] after rake, got %v", final)
	}
}

func TestShowdownStacksRejectsFoldedWinner(t *testing.T) {
	g := mustGame(t, stacks(100, 100), 0, 5, 10)
	mustPost(t, g)
	if err := g.Fold(); err != nil {
		t.Fatal(err)
	}
	if err := g.UncalledBet(); err != nil {
		t.Fatal(err)
	}
	if err := g.ShowdownStacks([]int64{105, 95}); !errors.Is(err, ErrConservation) {
		t.Fatalf("expected folded winner rejection, got %v", err)
	}
	if err := g.ShowdownStacks([]int64{95, 105}); err != nil {
		t.Fatal(err)
	}
	if g.State() != EndState() {
		t.Fatalf("expected end state, got %s", g.State())
	}
}

func TestMutatorsRejectWhenRewound(t *testing.T) {
	g := mustGame(t, stacks(100, 100), 0, 5, 10)
	mustPost(t, g)
	if err := g.Call(); err != nil {
		t.Fatal(err)
	}
	if !g.Previous() {
		t.Fatal("expected previous to step back")
	}
	if err := g.Check(); !errors.Is(err, ErrNotAtLastAction) {
		t.Fatalf("expected mutation while rewound to fail, got %v", err)
	}
	if !g.Next() {
		t.Fatal("expected next to step forward")
	}
	if err := g.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestUndoTruncatesLog(t *testing.T) {
	g := mustGame(t, stacks(100, 100), 0, 5, 10)
	mustPost(t, g)
	if err := g.Call(); err != nil {
		t.Fatal(err)
	}
	before := len(g.Actions())
	if err := g.Undo(); err != nil {
		t.Fatal(err)
	}
	if len(g.Actions()) != before-1 {
		t.Fatalf("expected %d actions after undo, got %d", before-1, len(g.Actions()))
	}
	if g.State() != PlayerState(0) {
		t.Fatalf("expected player 0 to act again, got %s", g.State())
	}
	// The action can be taken differently now.
	if err := g.Raise(30); err != nil {
		t.Fatal(err)
	}
}

func TestResetKeepsConfiguration(t *testing.T) {
	players := stacks(100, 100)
	players[0].Name = "alice"
	players[1].Name = "bob"
	g := mustGame(t, players, 0, 5, 10)
	mustPost(t, g)
	if err := g.Call(); err != nil {
		t.Fatal(err)
	}
	g.Reset()
	if g.State() != PostState() {
		t.Fatalf("expected post state after reset, got %s", g.State())
	}
	if len(g.Actions()) != 0 {
		t.Fatalf("expected empty log after reset, got %d actions", len(g.Actions()))
	}
	if g.PlayerName(0) != "alice" || g.PlayerName(1) != "bob" {
		t.Fatal("reset must keep player names")
	}
	mustPost(t, g)
}

func TestCloneIsIndependent(t *testing.T) {
	g := mustGame(t, stacks(100, 100), 0, 5, 10)
	mustPost(t, g)
	clone := g.Clone()
	if !g.Equal(clone) {
		t.Fatal("clone must equal the original")
	}
	if err := clone.Call(); err != nil {
		t.Fatal(err)
	}
	if g.Equal(clone) {
		t.Fatal("mutating the clone must not affect the original")
	}
	if len(g.Actions()) != 2 {
		t.Fatalf("original log changed: %d actions", len(g.Actions()))
	}
}

func TestPositionNames(t *testing.T) {
	names, ok := PositionNames(2)
	if !ok || names[0].Short != "BTN" || names[1].Short != "BB" {
		t.Fatalf("unexpected heads-up positions: %v", names)
	}
	if _, ok := PositionNames(10); ok {
		t.Fatal("expected no positions for 10 players")
	}
	position, ok := PositionName(6, 2, 3)
	if !ok || position.Short != "SB" {
		t.Fatalf("expected SB for player 3 with button 2, got %v", position)
	}
	g := mustGame(t, stacks(100, 100, 100), 0, 5, 10)
	if g.PlayerName(1) != "SB" {
		t.Fatalf("expected fallback name SB, got %s", g.PlayerName(1))
	}
	player, ok := g.PlayerByName("BTN")
	if !ok || player != 0 {
		t.Fatalf("expected to find the button at 0, got %d (%t)", player, ok)
	}
}
