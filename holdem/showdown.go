package holdem

import (
	"fmt"

	"github.com/paulhankin/poker"

	"nlhe-lite/card"
)

// Evaluator suit order: clubs, diamonds, hearts, spades.
var pokerSuits = [4]poker.Suit{
	card.Spade:   3,
	card.Heart:   2,
	card.Club:    0,
	card.Diamond: 1,
}

func toPokerCard(c card.Card) poker.Card {
	pc, err := poker.MakeCard(pokerSuits[c.Suit()], poker.Rank(c.Rank()))
	if err != nil {
		panic(fmt.Sprintf("holdem: cannot convert card %s: %v", c, err))
	}
	return pc
}

// scoreHand ranks two hole cards against a full five-card board. Higher is
// better.
func scoreHand(board []card.Card, hand card.Hand) int16 {
	if len(board) != 5 {
		panic("holdem: scoring requires a complete board")
	}
	var cards [7]poker.Card
	for i, c := range board {
		cards[i] = toPokerCard(c)
	}
	cards[5] = toPokerCard(hand.High())
	cards[6] = toPokerCard(hand.Low())
	return poker.Eval7(&cards)
}

// PotShare assigns part of the pot to a player in a custom settlement.
type PotShare struct {
	Player int
	Amount int64
}

type potTier struct {
	amount   int64
	eligible PlayerSet
}

// ShowdownSimple settles the hand rake-free: side pots are built from the
// live investments, each pot goes to the best eligible hand per runout, and
// odd chips go to the first winners clockwise from the small blind.
func (g *Game) ShowdownSimple() error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	if g.State().Kind != StateShowdownOrNextRunout {
		return fmt.Errorf("%w: not in showdown state", ErrIllegalAction)
	}

	street := g.board().Street()
	g.showdownStacks = g.stacksInStreet[street]

	winnersByPot, err := g.showdownWinnersByPot()
	if err != nil {
		return err
	}
	for _, tier := range winnersByPot {
		winnerCount := int64(tier.eligible.Count())
		wonPerPlayer := tier.amount / winnerCount
		for player := 0; player < g.playerCount; player++ {
			if tier.eligible.Has(player) {
				g.showdownStacks[player] += wonPerPlayer
			}
		}

		extraChips := int(tier.amount % winnerCount)
		for offset := 0; offset < g.playerCount && extraChips > 0; offset++ {
			player := (g.SmallBlindIndex() + offset) % g.playerCount
			if tier.eligible.Has(player) {
				g.showdownStacks[player]++
				extraChips--
			}
		}
	}
	g.atEnd = true
	return nil
}

// ShowdownCustom settles with caller-provided pot shares and rake. Shares
// plus rake must add up to the total pot and folded players cannot win.
func (g *Game) ShowdownCustom(totalRake int64, shares []PotShare) error {
	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	if g.State().Kind != StateShowdownOrNextRunout {
		return fmt.Errorf("%w: not in showdown state", ErrIllegalAction)
	}

	street := g.board().Street()
	g.showdownStacks = g.stacksInStreet[street]

	var totalPot int64
	for _, share := range shares {
		if share.Player < 0 || share.Player >= g.playerCount {
			return fmt.Errorf("showdown: invalid player index %d", share.Player)
		}
		if share.Amount < 0 {
			return fmt.Errorf("showdown: negative pot share")
		}
		// Winners cannot be verified in general, only that they have
		// not folded.
		if share.Amount > 0 && g.Folded(share.Player) {
			return fmt.Errorf("%w: folded player won part of the pot", ErrConservation)
		}
		totalPot += share.Amount
		g.showdownStacks[share.Player] += share.Amount
	}

	if totalRake < 0 || totalPot+totalRake != g.TotalPot() {
		return fmt.Errorf("%w: pot shares and rake don't match the pot", ErrConservation)
	}
	g.atEnd = true
	return nil
}

// ShowdownStacks settles with externally computed final stacks, for example
// from a hand history. The total cannot exceed the starting chips and
// folded players cannot gain.
func (g *Game) ShowdownStacks(stacks []int64) error {
	if len(stacks) != g.playerCount {
		return fmt.Errorf("showdown stacks: got %d stacks for %d players",
			len(stacks), g.playerCount)
	}
	var total, startingTotal int64
	for player, stack := range stacks {
		if stack < 0 {
			return fmt.Errorf("showdown stacks: negative stack")
		}
		total += stack
		startingTotal += g.startingStacks[player]
		// Winners cannot be verified in general, only that they have
		// not folded.
		if stack > g.startingStacks[player] && g.Folded(player) {
			return fmt.Errorf("%w: folded player won part of the pot", ErrConservation)
		}
	}
	if total > startingTotal {
		return fmt.Errorf("%w: showdown stacks larger than starting stacks", ErrConservation)
	}

	if err := g.checkPreUpdate(); err != nil {
		return err
	}
	if g.State().Kind != StateShowdownOrNextRunout {
		return fmt.Errorf("%w: not in showdown state", ErrIllegalAction)
	}
	copy(g.showdownStacks[:g.playerCount], stacks)
	g.atEnd = true
	return nil
}

func (g *Game) showdownWinnersByPot() ([]potTier, error) {
	if g.notFolded.Count() == 1 {
		return []potTier{{amount: g.TotalPot(), eligible: g.notFolded}}, nil
	}

	if g.notFolded.SubsetOf(g.handMucked) {
		return nil, fmt.Errorf("showdown: all players mucked in multi-way showdown")
	}
	for _, player := range g.PlayersNotFolded() {
		if g.handMucked.Has(player) {
			continue
		}
		if !g.hands[player].Known() {
			return nil, fmt.Errorf("showdown: missing hand for player %d", player)
		}
	}

	investments := make([]int64, g.playerCount)
	for player := range investments {
		investments[player] = g.Invested(player)
	}
	pots := g.showdownPots(investments)
	if len(pots) == 0 {
		return nil, fmt.Errorf("showdown: no pot to distribute")
	}

	winnersByPot := g.showdownWinners(pots)
	var distributed int64
	for _, tier := range winnersByPot {
		distributed += tier.amount
	}
	if distributed != g.TotalPot() {
		return nil, fmt.Errorf("%w: distributed %d of %d", ErrConservation, distributed, g.TotalPot())
	}
	return winnersByPot, nil
}

// showdownPots tiers the live investments into main and side pots. Dead
// money joins the first pot.
func (g *Game) showdownPots(investments []int64) []potTier {
	var deadMoney int64
	for player := 0; player < g.playerCount; player++ {
		deadMoney += g.startingStacks[player] - g.referenceStacks[player]
	}

	var pots []potTier
	for {
		var eligible PlayerSet
		var minInvestment int64
		for player := 0; player < g.playerCount; player++ {
			if g.Folded(player) || g.handMucked.Has(player) || investments[player] <= 0 {
				continue
			}
			if eligible == 0 || investments[player] < minInvestment {
				minInvestment = investments[player]
			}
			eligible.Set(player)
		}
		if eligible == 0 {
			return pots
		}

		var pot int64
		for player := range investments {
			contribution := min(minInvestment, investments[player])
			pot += contribution
			investments[player] -= contribution
			if investments[player] < 0 {
				investments[player] = 0
			}
		}

		pot += deadMoney
		deadMoney = 0
		pots = append(pots, potTier{amount: pot, eligible: eligible})
	}
}

// showdownWinners splits every pot across the runouts, scoring each board
// separately. Division remainders against the runout count stay with the
// first runout.
func (g *Game) showdownWinners(pots []potTier) []potTier {
	runouts := g.Runouts()
	runoutCount := int64(len(runouts))
	scores := make([]int16, g.playerCount)
	var winnersByPot []potTier

	for runoutIndex, board := range runouts {
		for _, player := range g.PlayersNotFolded() {
			if g.handMucked.Has(player) {
				continue
			}
			scores[player] = scoreHand(board.Cards(), g.hands[player])
		}

		for _, tier := range pots {
			winners := winnersSingle(tier.eligible, scores, g.playerCount)
			potPerRunout := tier.amount / runoutCount
			pot := potPerRunout
			if runoutIndex == 0 {
				pot += tier.amount % runoutCount
			}
			winnersByPot = append(winnersByPot, potTier{amount: pot, eligible: winners})
		}
	}
	return winnersByPot
}

func winnersSingle(eligible PlayerSet, scores []int16, playerCount int) PlayerSet {
	var maxScore int16
	first := true
	for player := 0; player < playerCount; player++ {
		if eligible.Has(player) && (first || scores[player] > maxScore) {
			maxScore = scores[player]
			first = false
		}
	}
	var winners PlayerSet
	for player := 0; player < playerCount; player++ {
		if eligible.Has(player) && scores[player] == maxScore {
			winners.Set(player)
		}
	}
	return winners
}
