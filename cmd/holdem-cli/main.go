package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"

	"nlhe-lite/handlog"
	"nlhe-lite/holdem"
	"nlhe-lite/holdem/npc"
	"nlhe-lite/storage"
)

func main() {
	seats := flag.Int("seats", 3, "number of seats including you")
	stack := flag.Int64("stack", 1000, "starting stack")
	smallBlind := flag.Int64("sb", 5, "small blind")
	bigBlind := flag.Int64("bb", 10, "big blind")
	seed := flag.Int64("seed", 0, "deck seed (0 = time based)")
	save := flag.Bool("save", false, "save the finished hand to storage")
	flag.Parse()

	pterm.Print("\n")
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("NLHE", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("-lite", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}

	name, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your name").WithDefaultValue("Hero").Show()
	pterm.Println()

	if *seats < holdem.MinPlayers || *seats > holdem.MaxPlayers {
		pterm.Fatal.Printfln("seats must be between %d and %d", holdem.MinPlayers, holdem.MaxPlayers)
	}

	players := make([]holdem.Player, *seats)
	brains := make(map[int]*npc.RuleBrain)
	players[0] = holdem.Player{Name: name, Seat: holdem.SeatUnset, StartingStack: *stack}
	for index := 1; index < *seats; index++ {
		persona := npc.Personas[(index-1)%len(npc.Personas)]
		players[index] = holdem.Player{
			Name:          fmt.Sprintf("%s %d", persona.Name, index),
			Seat:          holdem.SeatUnset,
			StartingStack: *stack,
		}
		brains[index] = npc.NewRuleBrain(persona, int64(index)*7919)
	}

	g, err := holdem.NewGame(players, 0, *smallBlind, *bigBlind)
	if err != nil {
		pterm.Fatal.Printfln("bad table setup: %v", err)
	}
	g.SetTableName("terminal table")
	if err := g.SetHero(0); err != nil {
		pterm.Fatal.Printfln("hero seat: %v", err)
	}

	deckSeed := *seed
	if deckSeed == 0 {
		deckSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(deckSeed))
	g.DrawUnsetHands(rng)
	if err := g.PostBlinds(); err != nil {
		pterm.Fatal.Printfln("posting blinds: %v", err)
	}

	if err := playHand(g, brains, rng); err != nil {
		pterm.Fatal.Printfln("hand aborted: %v", err)
	}

	record := handlog.FromGame(g)
	data, err := handlog.Encode(record)
	if err != nil {
		pterm.Fatal.Printfln("encoding hand: %v", err)
	}
	pterm.Println(string(data))

	if *save {
		saveHand(record)
	}
}

func playHand(g *holdem.Game, brains map[int]*npc.RuleBrain, rng *rand.Rand) error {
	for {
		state := g.State()
		switch state.Kind {
		case holdem.StatePlayer:
			renderTable(g, 0)
			if state.Player == 0 {
				if err := promptAction(g); err != nil {
					return err
				}
			} else {
				if err := npc.Play(g, brains[state.Player]); err != nil {
					return err
				}
			}
			announceLast(g)

		case holdem.StateUncalledBet:
			if err := g.UncalledBet(); err != nil {
				return err
			}
			announceLast(g)

		case holdem.StateShowOrMuck:
			if err := showOrMuck(g, state.Player); err != nil {
				return err
			}
			announceLast(g)

		case holdem.StateStreet:
			if err := g.DrawNextStreet(rng); err != nil {
				return err
			}
			announceLast(g)

		case holdem.StateShowdownOrNextRunout:
			if err := g.ShowdownSimple(); err != nil {
				return err
			}

		case holdem.StateEnd:
			renderTable(g, 0)
			announceWinners(g)
			return nil

		default:
			return fmt.Errorf("unexpected state %v", state.Kind)
		}
	}
}

func announceLast(g *holdem.Game) {
	actions := g.Actions()
	if len(actions) == 0 {
		return
	}
	action := actions[len(actions)-1]
	text := action.String()
	if player, ok := action.ActingPlayer(); ok {
		text = g.PlayerName(player) + ": " + text
	}
	announce(text)
}

func promptAction(g *holdem.Game) error {
	options := []string{"fold"}
	if g.CanCheck() {
		options = append(options, "check")
	}
	callAmount, canCall := g.CanCall()
	if canCall {
		options = append(options, fmt.Sprintf("call %d", callAmount))
	}
	minBet, canBet := g.CanBet()
	if canBet {
		options = append(options, "bet")
	}
	minRaiseAmount, minRaiseTo, canRaise := g.CanRaise()
	if canRaise {
		options = append(options, "raise")
	}
	allInAmount, _, canAllIn := g.CanAllIn()
	if canAllIn {
		options = append(options, fmt.Sprintf("all-in %d", allInAmount))
	}

	selected, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Select your next action").
		WithOptions(options).
		Show()

	switch {
	case selected == "fold":
		return g.Fold()
	case selected == "check":
		return g.Check()
	case strings.HasPrefix(selected, "call"):
		return g.Call()
	case selected == "bet":
		amount, err := promptAmount("Bet amount", minBet)
		if err != nil {
			return err
		}
		return g.Bet(amount)
	case selected == "raise":
		pterm.Info.Printfln("minimum raise: %d more, to %d", minRaiseAmount, minRaiseTo)
		to, err := promptAmount("Raise to", minRaiseTo)
		if err != nil {
			return err
		}
		return g.Raise(to)
	case strings.HasPrefix(selected, "all-in"):
		return applyAllIn(g)
	}
	return fmt.Errorf("unknown selection %q", selected)
}

func promptAmount(prompt string, fallback int64) (int64, error) {
	raw, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText(prompt).
		WithDefaultValue(strconv.FormatInt(fallback, 10)).
		Show()
	amount, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad amount %q: %w", raw, err)
	}
	return amount, nil
}

func applyAllIn(g *holdem.Game) error {
	amount, kind, ok := g.CanAllIn()
	if !ok {
		return fmt.Errorf("all-in not available")
	}
	switch kind {
	case holdem.ActionRaise:
		return g.Raise(amount)
	case holdem.ActionBet:
		return g.Bet(amount)
	case holdem.ActionCall:
		return g.Call()
	}
	return fmt.Errorf("all-in not available")
}

func showOrMuck(g *holdem.Game, player int) error {
	if player != 0 {
		if _, known := g.GetHand(player); known {
			return g.ShowHand()
		}
		return g.MuckHand()
	}
	selected, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Showdown: reveal your hand?").
		WithOptions([]string{"show", "muck"}).
		Show()
	if selected == "show" {
		return g.ShowHand()
	}
	return g.MuckHand()
}

func saveHand(record *handlog.HandRecord) {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	store, mode, err := storage.NewStoreFromEnv(log)
	if err != nil {
		pterm.Error.Printfln("storage init failed: %v", err)
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	id, err := store.SaveHand(ctx, record)
	if err != nil {
		pterm.Error.Printfln("saving hand failed: %v", err)
		return
	}
	pterm.Success.Printfln("hand saved to %s storage as %s", mode, id)
}
