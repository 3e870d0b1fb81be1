package typesxml

import (
	"fmt"
	"strings"
)

// Flag identifies one of the six spawn-counting flags.
type Flag int

const (
	FlagCountInCargo Flag = iota
	FlagCountInHoarder
	FlagCountInMap
	FlagCountInPlayer
	FlagCrafted
	FlagDeloot
)

var flagNames = [...]string{
	FlagCountInCargo:   "count_in_cargo",
	FlagCountInHoarder: "count_in_hoarder",
	FlagCountInMap:     "count_in_map",
	FlagCountInPlayer:  "count_in_player",
	FlagCrafted:        "crafted",
	FlagDeloot:         "deloot",
}

// AllFlags lists flags in wire order.
var AllFlags = []Flag{
	FlagCountInCargo,
	FlagCountInHoarder,
	FlagCountInMap,
	FlagCountInPlayer,
	FlagCrafted,
	FlagDeloot,
}

func (f Flag) String() string {
	if f < 0 || int(f) >= len(flagNames) {
		return fmt.Sprintf("Flag(%d)", int(f))
	}
	return flagNames[f]
}

// ParseFlag resolves a flag by its attribute name. Dashes are accepted
// in place of underscores ("count-in-map").
func ParseFlag(s string) (Flag, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, n := range flagNames {
		if n == key {
			return Flag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown flag %q", s)
}

// Flags holds what the economy takes into account for nominal and min.
type Flags struct {
	countInCargo   bool
	countInHoarder bool
	countInMap     bool
	countInPlayer  bool
	crafted        bool
	deloot         bool
}

func (f *Flags) CountInCargo() bool { return f.countInCargo }
func (f *Flags) CountInHoarder() bool { return f.countInHoarder }
func (f *Flags) CountInMap() bool { return f.countInMap }
func (f *Flags) CountInPlayer() bool { return f.countInPlayer }
func (f *Flags) Crafted() bool { return f.crafted }
func (f *Flags) Deloot() bool { return f.deloot }

func (f *Flags) SetCountInCargo(v bool) { f.countInCargo = v }
func (f *Flags) SetCountInHoarder(v bool) { f.countInHoarder = v }
func (f *Flags) SetCountInMap(v bool) { f.countInMap = v }
func (f *Flags) SetCountInPlayer(v bool) { f.countInPlayer = v }
func (f *Flags) SetCrafted(v bool) { f.crafted = v }
func (f *Flags) SetDeloot(v bool) { f.deloot = v }

// Get returns the value of the given flag.
func (f *Flags) Get(flag Flag) bool {
	switch flag {
	case FlagCountInCargo:
		return f.countInCargo
	case FlagCountInHoarder:
		return f.countInHoarder
	case FlagCountInMap:
		return f.countInMap
	case FlagCountInPlayer:
		return f.countInPlayer
	case FlagCrafted:
		return f.crafted
	case FlagDeloot:
		return f.deloot
	}
	return false
}

// Set assigns the value of the given flag. Unknown flags are ignored.
func (f *Flags) Set(flag Flag, v bool) {
	switch flag {
	case FlagCountInCargo:
		f.countInCargo = v
	case FlagCountInHoarder:
		f.countInHoarder = v
	case FlagCountInMap:
		f.countInMap = v
	case FlagCountInPlayer:
		f.countInPlayer = v
	case FlagCrafted:
		f.crafted = v
	case FlagDeloot:
		f.deloot = v
	}
}

// String renders flags for terminal output:
//
//	[ count_in_cargo = false, ..., deloot = true ]
func (f Flags) String() string {
	var b strings.Builder
	b.WriteString("[ ")
	for i, flag := range AllFlags {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s = %t", flag, f.Get(flag))
	}
	b.WriteString(" ]")
	return b.String()
}
