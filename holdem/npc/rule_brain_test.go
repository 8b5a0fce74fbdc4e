package npc

import (
	"math/rand"
	"testing"

	"nlhe-lite/card"
	"nlhe-lite/holdem"
)

func marginalView() GameView {
	call := int64(100)
	raiseAmount := int64(200)
	raiseTo := int64(400)
	return GameView{
		Player:         2,
		Street:         holdem.PreFlop,
		HoleCards:      []card.Card{card.CardSpadeT, card.CardHeart9},
		Pot:            450,
		Stack:          20000,
		BigBlind:       100,
		CallAmount:     &call,
		MinRaiseAmount: &raiseAmount,
		MinRaiseTo:     &raiseTo,
		MaxRaiseTo:     20000,
		ActiveCount:    3,
	}
}

func TestRuleBrainPassivePreflopRaiseRateCapped(t *testing.T) {
	persona := Persona{
		ID:   "passive_test",
		Name: "PASSIVE_TEST",
		Brain: PersonalityProfile{
			Aggression: 0.20,
			Tightness:  0.20,
			Bluffing:   0.10,
			Randomness: 0.0,
		},
	}
	brain := NewRuleBrain(persona, 42)
	view := marginalView()

	const rounds = 4000
	raises := 0
	for i := 0; i < rounds; i++ {
		if brain.Decide(view).Kind == holdem.ActionRaise {
			raises++
		}
	}

	rate := float64(raises) / float64(rounds)
	if rate > 0.20 {
		t.Fatalf("passive profile raise rate too high: got %.3f, want <= 0.20", rate)
	}
}

func TestRuleBrainTightPersonaFoldsTrash(t *testing.T) {
	persona, ok := PersonaByID("rock")
	if !ok {
		t.Fatal("missing built-in persona")
	}
	brain := NewRuleBrain(persona, 7)

	view := marginalView()
	view.HoleCards = []card.Card{card.CardSpade7, card.CardHeart2}

	folds := 0
	const rounds = 1000
	for i := 0; i < rounds; i++ {
		if brain.Decide(view).Kind == holdem.ActionFold {
			folds++
		}
	}
	if rate := float64(folds) / float64(rounds); rate < 0.9 {
		t.Fatalf("rock must fold 72o almost always: got fold rate %.3f", rate)
	}
}

func TestRuleBrainRaiseSizingInsideBounds(t *testing.T) {
	persona, ok := PersonaByID("maniac")
	if !ok {
		t.Fatal("missing built-in persona")
	}
	brain := NewRuleBrain(persona, 3)

	view := marginalView()
	view.HoleCards = []card.Card{card.CardSpadeA, card.CardHeartA}
	view.MaxRaiseTo = 600

	for i := 0; i < 1000; i++ {
		decision := brain.Decide(view)
		if decision.Kind != holdem.ActionRaise {
			continue
		}
		if decision.To < *view.MinRaiseTo || decision.To > view.MaxRaiseTo {
			t.Fatalf("raise to %d outside [%d, %d]", decision.To, *view.MinRaiseTo, view.MaxRaiseTo)
		}
	}
}

// Every decision a brain emits must be accepted by the engine, whatever the
// persona and however the hand develops.
func TestRuleBrainAlwaysLegal(t *testing.T) {
	for _, persona := range Personas {
		persona := persona
		t.Run(persona.ID, func(t *testing.T) {
			rng := rand.New(rand.NewSource(11))
			for handIndex := 0; handIndex < 50; handIndex++ {
				playBrainHand(t, persona, rng, int64(handIndex))
			}
		})
	}
}

func playBrainHand(t *testing.T, persona Persona, rng *rand.Rand, seed int64) {
	t.Helper()
	players := []holdem.Player{
		{Seat: holdem.SeatUnset, StartingStack: 150},
		{Seat: holdem.SeatUnset, StartingStack: 200},
		{Seat: holdem.SeatUnset, StartingStack: 400},
	}
	g, err := holdem.NewGame(players, 0, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	g.DrawUnsetHands(rng)
	if err := g.PostBlinds(); err != nil {
		t.Fatal(err)
	}
	brain := NewRuleBrain(persona, seed)

	for step := 0; step < 200; step++ {
		state := g.State()
		switch state.Kind {
		case holdem.StatePlayer:
			if err := Play(g, brain); err != nil {
				t.Fatalf("hand %d step %d: %v", seed, step, err)
			}
		case holdem.StateUncalledBet:
			if err := g.UncalledBet(); err != nil {
				t.Fatal(err)
			}
		case holdem.StateShowOrMuck:
			if err := g.ShowHand(); err != nil {
				t.Fatal(err)
			}
		case holdem.StateStreet:
			if err := g.DrawNextStreet(rng); err != nil {
				t.Fatal(err)
			}
		case holdem.StateShowdownOrNextRunout:
			if err := g.ShowdownSimple(); err != nil {
				t.Fatal(err)
			}
		case holdem.StateEnd:
			return
		default:
			t.Fatalf("hand %d step %d: unexpected state %v", seed, step, state.Kind)
		}
	}
	t.Fatalf("hand %d did not finish", seed)
}
