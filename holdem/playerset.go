package holdem

import "math/bits"

// PlayerSet is a bitset over seat indices [0, MaxPlayers).
type PlayerSet uint16

// FullPlayerSet has the first n seats set.
func FullPlayerSet(n int) PlayerSet {
	return PlayerSet(1<<uint(n)) - 1
}

func (s PlayerSet) Has(player int) bool {
	return s&(1<<uint(player)) != 0
}

func (s *PlayerSet) Set(player int) {
	*s |= 1 << uint(player)
}

func (s *PlayerSet) Clear(player int) {
	*s &^= 1 << uint(player)
}

func (s PlayerSet) Count() int {
	return bits.OnesCount16(uint16(s))
}

// SubsetOf reports whether every member of s is in other.
func (s PlayerSet) SubsetOf(other PlayerSet) bool {
	return s&^other == 0
}
