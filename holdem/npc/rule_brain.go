package npc

import (
	"math/rand"

	"nlhe-lite/holdem"
)

// RuleBrain makes decisions based on a PersonalityProfile with tunable
// parameters.
type RuleBrain struct {
	Persona Persona
	rng     *rand.Rand
}

// NewRuleBrain creates a RuleBrain from a persona definition.
func NewRuleBrain(persona Persona, seed int64) *RuleBrain {
	return &RuleBrain{
		Persona: persona,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (b *RuleBrain) Name() string { return b.Persona.Name }

// Decide implements Brain. It selects an action based on personality
// parameters and the current view, sized inside the engine's own bounds.
func (b *RuleBrain) Decide(view GameView) Decision {
	p := b.Persona.Brain

	// Add randomness noise to parameters for this decision
	aggression := clamp01(p.Aggression + (b.rng.Float64()-0.5)*p.Randomness*0.4)
	tightness := clamp01(p.Tightness + (b.rng.Float64()-0.5)*p.Randomness*0.3)

	strength := b.estimateHandStrength(view)

	// Preflop: tight players fold more marginal hands
	if view.Street == holdem.PreFlop {
		foldThreshold := tightness * 0.6
		if strength < foldThreshold {
			if view.CanCheck {
				return Decision{Kind: holdem.ActionCheck}
			}
			return Decision{Kind: holdem.ActionFold}
		}
	}

	// The threshold runs from 0.9 for fully passive profiles down to 0.5
	// for fully aggressive ones.
	aggressivePlay := strength > 0.5+(1.0-aggression)*0.4

	// Strong hand + aggressive: bet or raise
	if aggressivePlay {
		if view.MinRaiseTo != nil {
			return Decision{Kind: holdem.ActionRaise, To: b.raiseTo(view, aggression)}
		}
		if view.MinBet != nil {
			return Decision{Kind: holdem.ActionBet, Amount: b.betAmount(view, aggression)}
		}
	}

	// Bluff attempt
	if !aggressivePlay && b.rng.Float64() < p.Bluffing*0.3 {
		if view.MinBet != nil {
			return Decision{Kind: holdem.ActionBet, Amount: b.betAmount(view, 0.4)}
		}
		if view.MinRaiseTo != nil {
			return Decision{Kind: holdem.ActionRaise, To: b.raiseTo(view, 0.4)}
		}
	}

	// Marginal hand: check or call
	if view.CanCheck {
		return Decision{Kind: holdem.ActionCheck}
	}
	if view.CallAmount != nil {
		// Loose players call more often; tight players fold facing bets
		callThreshold := tightness * 0.4
		if strength > callThreshold || b.rng.Float64() < (1.0-tightness)*0.5 {
			return Decision{Kind: holdem.ActionCall, Amount: *view.CallAmount}
		}
		return Decision{Kind: holdem.ActionFold}
	}

	return Decision{Kind: holdem.ActionFold}
}

// estimateHandStrength returns a 0.0-1.0 heuristic.
// This is intentionally simple; can be replaced with a proper equity
// calculator later.
func (b *RuleBrain) estimateHandStrength(view GameView) float64 {
	if len(view.HoleCards) < 2 {
		return 0.3
	}
	c0 := view.HoleCards[0]
	c1 := view.HoleCards[1]

	rank0 := c0.RankValue()
	rank1 := c1.RankValue()

	strength := (float64(rank0) + float64(rank1)) / 28.0

	// Pair bonus
	if rank0 == rank1 {
		strength += 0.25
	}

	// Suited bonus
	if c0.Suit() == c1.Suit() {
		strength += 0.05
	}

	// Connected bonus
	gap := rank0 - rank1
	if gap < 0 {
		gap = -gap
	}
	if gap <= 2 {
		strength += 0.05
	}

	// Post-flop: add noise. Real evaluation would use community cards.
	if view.Street > holdem.PreFlop {
		strength += (b.rng.Float64() - 0.5) * 0.2
	}

	return clamp01(strength)
}

// betAmount sizes a bet between a third of pot and full pot, clamped to the
// engine's minimum and the stack.
func (b *RuleBrain) betAmount(view GameView, aggression float64) int64 {
	fraction := 0.33 + aggression*0.67
	bet := int64(float64(view.Pot) * fraction)
	if view.MinBet != nil && bet < *view.MinBet {
		bet = *view.MinBet
	}
	if bet > view.Stack {
		bet = view.Stack
	}
	return bet
}

// raiseTo sizes a raise between the engine minimum and roughly three times
// the minimum, clamped to the reference stack.
func (b *RuleBrain) raiseTo(view GameView, aggression float64) int64 {
	if view.MinRaiseTo == nil {
		return 0
	}
	multiplier := 1.0 + aggression*2.0
	to := int64(float64(*view.MinRaiseTo) * multiplier)
	if to < *view.MinRaiseTo {
		to = *view.MinRaiseTo
	}
	if to > view.MaxRaiseTo {
		to = view.MaxRaiseTo
	}
	return to
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
