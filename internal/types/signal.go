package types

import (
	"sort"
	"time"
)

type SignalType string

const (
	// SignalTypeEnter is a bar whose entry rule set is satisfied
	SignalTypeEnter SignalType = "enter"
	// SignalTypeExit is a bar whose exit rule set is satisfied
	SignalTypeExit SignalType = "exit"
	// SignalTypeHold is a defined bar where neither rule set is satisfied
	SignalTypeHold SignalType = "hold"
	// SignalTypeUndefined is a bar inside the warm-up window of a required indicator
	SignalTypeUndefined SignalType = "undefined"
)

// Signal is the per-bar outcome of the configured conditions.
type Signal struct {
	Time     time.Time
	BarIndex int
	Type     SignalType
	// Defined is false when any indicator a configured condition depends on is undefined
	// at the current or the previous bar. Enter and Exit are always false then.
	Defined bool
	// Conditions holds every evaluated condition by name.
	Conditions map[string]bool
	// EntryMet and ExitMet count the satisfied conditions of each rule set.
	EntryMet int
	ExitMet  int
	Enter    bool
	Exit     bool
	// Score is the 0-100 technical score of the bar.
	Score float64
}

// UndefinedSignal returns a signal for a bar that cannot be evaluated.
func UndefinedSignal(barIndex int, at time.Time) Signal {
	return Signal{
		Time:       at,
		BarIndex:   barIndex,
		Type:       SignalTypeUndefined,
		Conditions: map[string]bool{},
	}
}

// MetConditions returns the names of satisfied conditions in sorted order.
func (s Signal) MetConditions() []string {
	names := make([]string, 0, len(s.Conditions))

	for name, met := range s.Conditions {
		if met {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}
