// Package handlog serializes complete hands to a stable JSON record and
// rebuilds games from it by replaying the action log through the engine.
package handlog

import (
	"encoding/json"
	"fmt"
	"time"

	"nlhe-lite/card"
	"nlhe-lite/holdem"
)

// DateLayout is the wire format for the optional hand date.
const DateLayout = "2006-01-02T15:04:05"

type HandRecord struct {
	Unit       string `json:"unit,omitempty"`
	MaxPlayers int    `json:"max_players,omitempty"`
	Location   string `json:"location,omitempty"`
	Date       string `json:"date,omitempty"`
	TableName  string `json:"table_name,omitempty"`
	HandName   string `json:"hand_name,omitempty"`
	HeroIndex  *int   `json:"hero_index,omitempty"`

	Players        []PlayerRecord `json:"players"`
	ButtonIndex    int            `json:"button_index"`
	SmallBlind     int64          `json:"small_blind"`
	BigBlind       int64          `json:"big_blind"`
	Actions        []ActionRecord `json:"actions"`
	ShowdownStacks []int64        `json:"showdown_stacks,omitempty"`
}

type PlayerRecord struct {
	Name          string `json:"name,omitempty"`
	Seat          *int   `json:"seat,omitempty"`
	Hand          string `json:"hand,omitempty"`
	StartingStack int64  `json:"starting_stack"`
}

type ActionRecord struct {
	Type     string   `json:"type"`
	Player   int      `json:"player,omitempty"`
	Amount   int64    `json:"amount,omitempty"`
	To       int64    `json:"to,omitempty"`
	OldStack int64    `json:"old_stack,omitempty"`
	Dead     bool     `json:"dead,omitempty"`
	Cards    []string `json:"cards,omitempty"`
	Hand     string   `json:"hand,omitempty"`
}

// Encode renders the record as indented JSON. The field order is fixed, so
// encoding the same record twice yields identical bytes.
func Encode(record *HandRecord) ([]byte, error) {
	return json.MarshalIndent(record, "", "  ")
}

// Decode parses a record previously produced by Encode.
func Decode(data []byte) (*HandRecord, error) {
	var record HandRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("handlog: decode: %w", err)
	}
	return &record, nil
}

// FromGame snapshots a game into a serializable record.
func FromGame(g *holdem.Game) *HandRecord {
	record := &HandRecord{
		Unit:        g.Unit(),
		Location:    g.Location(),
		TableName:   g.TableName(),
		HandName:    g.HandName(),
		ButtonIndex: g.ButtonIndex(),
		SmallBlind:  g.SmallBlind(),
		BigBlind:    g.BigBlind(),
	}
	if maxPlayers, ok := g.MaxPlayers(); ok {
		record.MaxPlayers = maxPlayers
	}
	if date, ok := g.Date(); ok {
		record.Date = date.Format(DateLayout)
	}
	if hero, ok := g.Hero(); ok {
		heroIndex := hero
		record.HeroIndex = &heroIndex
	}

	for _, player := range g.Players() {
		playerRecord := PlayerRecord{
			Name:          player.Name,
			StartingStack: player.StartingStack,
		}
		seat := player.Seat
		playerRecord.Seat = &seat
		if player.Hand.Known() {
			playerRecord.Hand = player.Hand.String()
		}
		record.Players = append(record.Players, playerRecord)
	}

	for _, action := range g.Actions() {
		record.Actions = append(record.Actions, RecordFromAction(action))
	}

	if g.State().Kind == holdem.StateEnd {
		record.ShowdownStacks = append([]int64(nil), g.CurrentStacks()...)
	}
	return record
}

// RecordFromAction converts an engine action to its wire form.
func RecordFromAction(action holdem.Action) ActionRecord {
	record := ActionRecord{Type: action.Kind.String()}
	switch action.Kind {
	case holdem.ActionPost:
		record.Player = action.Player
		record.Amount = action.Amount
		record.Dead = action.Dead
	case holdem.ActionStraddle, holdem.ActionCall, holdem.ActionBet, holdem.ActionUncalledBet:
		record.Player = action.Player
		record.Amount = action.Amount
	case holdem.ActionFold, holdem.ActionCheck, holdem.ActionMucks:
		record.Player = action.Player
	case holdem.ActionRaise:
		record.Player = action.Player
		record.Amount = action.Amount
		record.To = action.To
		record.OldStack = action.OldStack
	case holdem.ActionFlop, holdem.ActionTurn, holdem.ActionRiver:
		for _, c := range action.DealtCards() {
			record.Cards = append(record.Cards, c.String())
		}
	case holdem.ActionShows:
		record.Player = action.Player
		record.Hand = action.Hand.String()
	}
	return record
}

// ActionFromRecord parses a wire action back into an engine action.
func ActionFromRecord(record ActionRecord) (holdem.Action, error) {
	kind, ok := holdem.ParseActionKind(record.Type)
	if !ok {
		return holdem.Action{}, fmt.Errorf("handlog: unknown action type %q", record.Type)
	}
	switch kind {
	case holdem.ActionPost:
		return holdem.PostAction(record.Player, record.Amount, record.Dead), nil
	case holdem.ActionStraddle:
		return holdem.StraddleAction(record.Player, record.Amount), nil
	case holdem.ActionFold:
		return holdem.FoldAction(record.Player), nil
	case holdem.ActionCheck:
		return holdem.CheckAction(record.Player), nil
	case holdem.ActionCall:
		return holdem.CallAction(record.Player, record.Amount), nil
	case holdem.ActionBet:
		return holdem.BetAction(record.Player, record.Amount), nil
	case holdem.ActionRaise:
		return holdem.RaiseAction(record.Player, record.OldStack, record.Amount, record.To), nil
	case holdem.ActionFlop:
		if len(record.Cards) != 3 {
			return holdem.Action{}, fmt.Errorf("handlog: flop needs 3 cards, got %d", len(record.Cards))
		}
		var cards [3]card.Card
		for index, notation := range record.Cards {
			c, err := card.Parse(notation)
			if err != nil {
				return holdem.Action{}, fmt.Errorf("handlog: %w", err)
			}
			cards[index] = c
		}
		return holdem.FlopAction(cards), nil
	case holdem.ActionTurn, holdem.ActionRiver:
		if len(record.Cards) != 1 {
			return holdem.Action{}, fmt.Errorf("handlog: %s needs 1 card, got %d", record.Type, len(record.Cards))
		}
		c, err := card.Parse(record.Cards[0])
		if err != nil {
			return holdem.Action{}, fmt.Errorf("handlog: %w", err)
		}
		if kind == holdem.ActionTurn {
			return holdem.TurnAction(c), nil
		}
		return holdem.RiverAction(c), nil
	case holdem.ActionUncalledBet:
		return holdem.UncalledBetAction(record.Player, record.Amount), nil
	case holdem.ActionShows:
		hand, err := card.ParseHand(record.Hand)
		if err != nil {
			return holdem.Action{}, fmt.Errorf("handlog: %w", err)
		}
		return holdem.ShowsAction(record.Player, hand), nil
	case holdem.ActionMucks:
		return holdem.MucksAction(record.Player), nil
	}
	return holdem.Action{}, fmt.Errorf("handlog: unhandled action type %q", record.Type)
}

// ToGame rebuilds a live game by replaying the recorded actions through the
// engine mutators. The rebuilt log must match the record action for action.
func (record *HandRecord) ToGame() (*holdem.Game, error) {
	players := make([]holdem.Player, len(record.Players))
	for index, playerRecord := range record.Players {
		player := holdem.Player{
			Name:          playerRecord.Name,
			Seat:          holdem.SeatUnset,
			StartingStack: playerRecord.StartingStack,
		}
		if playerRecord.Seat != nil {
			player.Seat = *playerRecord.Seat
		}
		if playerRecord.Hand != "" {
			hand, err := card.ParseHand(playerRecord.Hand)
			if err != nil {
				return nil, fmt.Errorf("handlog: player %d: %w", index, err)
			}
			player.Hand = hand
		}
		players[index] = player
	}

	g, err := holdem.NewGame(players, record.ButtonIndex, record.SmallBlind, record.BigBlind)
	if err != nil {
		return nil, err
	}
	if record.Unit != "" {
		g.SetUnit(record.Unit)
	}
	if record.MaxPlayers != 0 {
		if err := g.SetMaxPlayers(record.MaxPlayers); err != nil {
			return nil, err
		}
	}
	if record.Location != "" {
		g.SetLocation(record.Location)
	}
	if record.Date != "" {
		date, err := time.Parse(DateLayout, record.Date)
		if err != nil {
			return nil, fmt.Errorf("handlog: %w", err)
		}
		g.SetDate(date)
	}
	if record.TableName != "" {
		g.SetTableName(record.TableName)
	}
	if record.HandName != "" {
		g.SetHandName(record.HandName)
	}
	if record.HeroIndex != nil {
		if err := g.SetHero(*record.HeroIndex); err != nil {
			return nil, err
		}
	}

	actions := make([]holdem.Action, len(record.Actions))
	for index, actionRecord := range record.Actions {
		action, err := ActionFromRecord(actionRecord)
		if err != nil {
			return nil, err
		}
		actions[index] = action
	}

	if len(actions) > 0 {
		if err := g.PostBlinds(); err != nil {
			return nil, err
		}
		index := 2
		for index < len(actions) && actions[index].Kind == holdem.ActionPost {
			action := actions[index]
			if err := g.AdditionalPost(action.Player, action.Amount, action.Dead); err != nil {
				return nil, err
			}
			index++
		}
		for _, action := range actions[index:] {
			if err := g.ApplyAction(action); err != nil {
				return nil, err
			}
		}
	}

	rebuilt := g.Actions()
	if len(rebuilt) != len(actions) {
		return nil, fmt.Errorf("%w: rebuilt %d actions, recorded %d",
			holdem.ErrReplayMismatch, len(rebuilt), len(actions))
	}
	for index := range rebuilt {
		if rebuilt[index] != actions[index] {
			return nil, fmt.Errorf("%w: action %d: rebuilt %s, recorded %s",
				holdem.ErrReplayMismatch, index, rebuilt[index], actions[index])
		}
	}

	if len(record.ShowdownStacks) > 0 {
		if err := g.ShowdownStacks(record.ShowdownStacks); err != nil {
			return nil, err
		}
	}
	return g, nil
}
