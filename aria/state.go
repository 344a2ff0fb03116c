package aria

import (
	"fmt"
	"strings"
)

// StateKind identifies an ARIA state.
type StateKind int

const (
	StateBusy StateKind = iota
	StateChecked
	StateCurrent
	StateDisabled
	StateExpanded
	StateGrabbed
	StateHidden
	StateInvalid
	StatePressed
	StateSelected

	numStates
)

type stateInfo struct {
	attrInfo
	// implicit returns the native selectors that express the same state,
	// terminated by a comma, or "" when there is no native equivalent.
	implicit func(Value) string
}

var stateTable = [numStates]stateInfo{
	StateBusy: {attrInfo: attrInfo{"busy", parseBool}},
	StateChecked: {
		attrInfo: attrInfo{"checked", tokenParser[TriState](triStateNames)},
		implicit: when(TriTrue, "input[type=checkbox]:checked,input[type=radio]:checked,"),
	},
	StateCurrent: {attrInfo: attrInfo{"current", tokenParser[CurrentToken](currentNames)}},
	StateDisabled: {
		attrInfo: attrInfo{"disabled", parseBool},
		implicit: when(Bool(true), ":disabled,"),
	},
	StateExpanded: {attrInfo: attrInfo{"expanded", tokenParser[DuoState](duoStateNames)}},
	StateGrabbed:  {attrInfo: attrInfo{"grabbed", tokenParser[DuoState](duoStateNames)}},
	StateHidden: {
		attrInfo: attrInfo{"hidden", tokenParser[DuoState](duoStateNames)},
		implicit: when(DuoTrue, ":hidden,"),
	},
	StateInvalid:  {attrInfo: attrInfo{"invalid", tokenParser[InvalidToken](invalidNames)}},
	StatePressed:  {attrInfo: attrInfo{"pressed", tokenParser[TriState](triStateNames)}},
	StateSelected: {attrInfo: attrInfo{"selected", tokenParser[DuoState](duoStateNames)}},
}

func when(want Value, prefix string) func(Value) string {
	return func(v Value) string {
		if v == want {
			return prefix
		}
		return ""
	}
}

func (k StateKind) valid() bool { return k >= 0 && k < numStates }

// Name is the attribute name without the "aria-" prefix.
func (k StateKind) Name() string {
	if !k.valid() {
		return ""
	}
	return stateTable[k].name
}

func (k StateKind) String() string { return "aria-" + k.Name() }

// State is an ARIA state paired with its value.
type State struct {
	kind  StateKind
	value Value
}

func (s State) Kind() StateKind { return s.kind }
func (s State) Value() Value    { return s.value }

// Implicit returns the native selector prefix for the state's value.
func (s State) Implicit() string {
	if !s.kind.valid() || stateTable[s.kind].implicit == nil {
		return ""
	}
	return stateTable[s.kind].implicit(s.value)
}

// Selector renders the state as its native selectors, if any, unioned with
// the aria attribute selector.
func (s State) Selector() string {
	return s.Implicit() + attrSelector(s.kind.Name(), s.value)
}

func (s State) String() string { return s.Selector() }

func (State) isQuery() {}

func Busy(v bool) State            { return State{StateBusy, Bool(v)} }
func Checked(v TriState) State     { return State{StateChecked, v} }
func Current(v CurrentToken) State { return State{StateCurrent, v} }
func Disabled(v bool) State        { return State{StateDisabled, Bool(v)} }
func Expanded(v DuoState) State    { return State{StateExpanded, v} }
func Hidden(v DuoState) State      { return State{StateHidden, v} }
func Invalid(v InvalidToken) State { return State{StateInvalid, v} }
func Pressed(v TriState) State     { return State{StatePressed, v} }
func Selected(v DuoState) State    { return State{StateSelected, v} }

// Grabbed is deprecated in ARIA 1.1 but still compiles.
func Grabbed(v DuoState) State { return State{StateGrabbed, v} }

// ParseState builds a state from its attribute name, with or without the
// "aria-" prefix, and a textual value.
func ParseState(name, value string) (State, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "aria-")
	for i, info := range stateTable {
		if info.name != key {
			continue
		}
		v, err := info.parse(value)
		if err != nil {
			return State{}, fmt.Errorf("aria-%s: %w", key, err)
		}
		return State{StateKind(i), v}, nil
	}
	return State{}, fmt.Errorf("%w: %q", ErrUnknownState, name)
}
