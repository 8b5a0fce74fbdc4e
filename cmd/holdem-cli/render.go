package main

import (
	"github.com/pterm/pterm"

	"nlhe-lite/holdem"
)

// renderTable prints the table state: one box per opponent, the board with
// the pot, and the hero's box last.
func renderTable(g *holdem.Game, hero int) {
	var opponents []pterm.Panel
	var heroPanel pterm.Panel
	for player := 0; player < g.PlayerCount(); player++ {
		if player == hero {
			heroPanel = pterm.Panel{Data: playerInfo(g, player, true)}
			continue
		}
		opponents = append(opponents, pterm.Panel{Data: playerInfo(g, player, false)})
	}
	board := pterm.Panel{Data: boardInfo(g)}

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		opponents,
		{board},
		{heroPanel},
	}).Render()
}

func playerInfo(g *holdem.Game, player int, hero bool) string {
	hpadding := 4
	if hero {
		hpadding = 10
	}
	pbox := pterm.DefaultBox.WithLeftPadding(hpadding).WithRightPadding(hpadding).WithTopPadding(1).WithBottomPadding(1)

	title := g.PlayerName(player)
	if position, ok := holdem.PositionName(g.PlayerCount(), g.ButtonIndex(), player); ok {
		title += " (" + position.Short + ")"
	}

	var status string
	switch {
	case g.Folded(player):
		status = pterm.LightRed("Folded")
	case g.CurrentStreetStacks()[player] == 0:
		status = pterm.LightYellow("All-in")
	default:
		status = pterm.LightGreen("Active")
	}

	hand := pterm.Gray("? ?")
	if cards, known := g.GetHand(player); known && (hero || g.HandShown(player)) {
		hand = pterm.BgGreen.Sprintf("%s %s", cards.High(), cards.Low())
	}

	return pbox.WithTitle(title).WithTitleTopLeft().Sprintf(
		"%s\nStack: %d\nIn for: %d\n%s\n",
		status, g.CurrentStreetStacks()[player], g.TotalInvested(player), hand)
}

func boardInfo(g *holdem.Game) string {
	board := ""
	for _, c := range g.CurrentBoard().Cards() {
		board += c.String() + " "
	}
	if board == "" {
		board = "(no cards)"
	}
	return pterm.BgGreen.Sprintf("\n %s | Pot: %d%s | %s \n",
		board, g.TotalPot(), g.Unit(), g.CurrentBoard().Street())
}

func announce(text string) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	pterm.Println(pbox.WithTitle(pterm.LightYellow("|ACTION|")).WithTitleTopCenter().Sprintf("%s", text))
}

func announceWinners(g *holdem.Game) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	info := ""
	stacks := g.CurrentStacks()
	for player := 0; player < g.PlayerCount(); player++ {
		won := stacks[player] - g.StartingStack(player)
		if won > 0 {
			info += pterm.Sprintfln("%s won %d", pterm.LightCyan(g.PlayerName(player)), won)
		}
	}
	if info == "" {
		info = pterm.Sprintfln("split pot, nobody up")
	}
	pterm.Println(pbox.WithTitle(pterm.LightGreen("|SHOWDOWN|")).WithTitleTopCenter().Sprintf("%s", info))
}
