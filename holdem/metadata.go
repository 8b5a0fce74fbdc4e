package holdem

import (
	"fmt"
	"time"
)

// Metadata accessors. All of these are optional annotations carried along
// with the hand; empty or zero values mean "unset".

func (g *Game) Unit() string {
	return g.unit
}

func (g *Game) SetUnit(unit string) {
	g.unit = unit
}

func (g *Game) MaxPlayers() (int, bool) {
	if g.maxPlayers == 0 {
		return 0, false
	}
	return g.maxPlayers, true
}

func (g *Game) SetMaxPlayers(maxPlayers int) error {
	if maxPlayers < MinPlayers || maxPlayers > MaxPlayers || maxPlayers < g.playerCount {
		return fmt.Errorf("%w: invalid max players %d", ErrBadConfig, maxPlayers)
	}
	g.maxPlayers = maxPlayers
	return nil
}

func (g *Game) ClearMaxPlayers() {
	g.maxPlayers = 0
}

func (g *Game) Location() string {
	return g.location
}

func (g *Game) SetLocation(location string) {
	g.location = location
}

func (g *Game) Date() (time.Time, bool) {
	return g.date, !g.date.IsZero()
}

func (g *Game) SetDate(date time.Time) {
	g.date = date
}

func (g *Game) ClearDate() {
	g.date = time.Time{}
}

func (g *Game) TableName() string {
	return g.tableName
}

func (g *Game) SetTableName(tableName string) {
	g.tableName = tableName
}

func (g *Game) HandName() string {
	return g.handName
}

func (g *Game) SetHandName(handName string) {
	g.handName = handName
}

func (g *Game) Hero() (int, bool) {
	if g.heroIndex == noPlayer {
		return 0, false
	}
	return g.heroIndex, true
}

func (g *Game) SetHero(hero int) error {
	if hero < 0 || hero >= g.playerCount {
		return fmt.Errorf("%w: hero index %d out of range", ErrBadConfig, hero)
	}
	g.heroIndex = hero
	return nil
}

func (g *Game) ClearHero() {
	g.heroIndex = noPlayer
}
