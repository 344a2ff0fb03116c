package aria

import (
	"fmt"
	"strings"
)

// DropEffectToken values of aria-dropeffect (deprecated in ARIA 1.1).
type DropEffectToken int

const (
	DropEffectCopy DropEffectToken = iota
	DropEffectExecute
	DropEffectLink
	DropEffectMove
	DropEffectNone
	DropEffectPopup
)

var dropEffectNames = []string{"copy", "execute", "link", "move", "none", "popup"}

func (t DropEffectToken) String() string   { return tokenName(dropEffectNames, int(t)) }
func (t DropEffectToken) Fragment() string { return t.String() }

// AutoCompleteToken values of aria-autocomplete.
type AutoCompleteToken int

const (
	AutoCompleteInline AutoCompleteToken = iota
	AutoCompleteList
	AutoCompleteBoth
	AutoCompleteNone
)

var autoCompleteNames = []string{"inline", "list", "both", "none"}

func (t AutoCompleteToken) String() string   { return tokenName(autoCompleteNames, int(t)) }
func (t AutoCompleteToken) Fragment() string { return t.String() }

// HasPopupToken values of aria-haspopup.
type HasPopupToken int

const (
	HasPopupFalse HasPopupToken = iota
	HasPopupTrue
	HasPopupMenu
	HasPopupListBox
	HasPopupTree
	HasPopupGrid
	HasPopupDialog
)

var hasPopupNames = []string{"false", "true", "menu", "listbox", "tree", "grid", "dialog"}

func (t HasPopupToken) String() string   { return tokenName(hasPopupNames, int(t)) }
func (t HasPopupToken) Fragment() string { return t.String() }

// LiveToken values of aria-live.
type LiveToken int

const (
	LiveAssertive LiveToken = iota
	LiveOff
	LivePolite
)

var liveNames = []string{"assertive", "off", "polite"}

func (t LiveToken) String() string   { return tokenName(liveNames, int(t)) }
func (t LiveToken) Fragment() string { return t.String() }

// OrientationToken values of aria-orientation.
type OrientationToken int

const (
	OrientationHorizontal OrientationToken = iota
	OrientationUndefined
	OrientationVertical
)

var orientationNames = []string{"horizontal", "undefined", "vertical"}

func (t OrientationToken) String() string   { return tokenName(orientationNames, int(t)) }
func (t OrientationToken) Fragment() string { return t.String() }

// RelevantToken values of aria-relevant.
type RelevantToken int

const (
	RelevantAdditions RelevantToken = iota
	RelevantAdditionsText
	RelevantAll
	RelevantRemovals
	RelevantText
)

var relevantNames = []string{"additions", "additionstext", "all", "removals", "text"}

func (t RelevantToken) String() string   { return tokenName(relevantNames, int(t)) }
func (t RelevantToken) Fragment() string { return t.String() }

// SortToken values of aria-sort.
type SortToken int

const (
	SortAscending SortToken = iota
	SortDescending
	SortNone
	SortOther
)

var sortNames = []string{"ascending", "descending", "none", "other"}

func (t SortToken) String() string   { return tokenName(sortNames, int(t)) }
func (t SortToken) Fragment() string { return t.String() }

// DuoState is a true/false state that may also be left undefined.
type DuoState int

const (
	DuoTrue DuoState = iota
	DuoFalse
	DuoUndefined
)

var duoStateNames = []string{"true", "false", "undefined"}

func (t DuoState) String() string   { return tokenName(duoStateNames, int(t)) }
func (t DuoState) Fragment() string { return t.String() }

// TriState adds "mixed" to DuoState.
type TriState int

const (
	TriFalse TriState = iota
	TriMixed
	TriTrue
	TriUndefined
)

var triStateNames = []string{"false", "mixed", "true", "undefined"}

func (t TriState) String() string   { return tokenName(triStateNames, int(t)) }
func (t TriState) Fragment() string { return t.String() }

// CurrentToken values of aria-current.
type CurrentToken int

const (
	CurrentPage CurrentToken = iota
	CurrentStep
	CurrentLocation
	CurrentDate
	CurrentTime
	CurrentTrue
	CurrentFalse
)

var currentNames = []string{"page", "step", "location", "date", "time", "true", "false"}

func (t CurrentToken) String() string   { return tokenName(currentNames, int(t)) }
func (t CurrentToken) Fragment() string { return t.String() }

// InvalidToken values of aria-invalid.
type InvalidToken int

const (
	InvalidGrammar InvalidToken = iota
	InvalidFalse
	InvalidSpelling
	InvalidTrue
)

var invalidNames = []string{"grammar", "false", "spelling", "true"}

func (t InvalidToken) String() string   { return tokenName(invalidNames, int(t)) }
func (t InvalidToken) Fragment() string { return t.String() }

func tokenName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return ""
	}
	return names[i]
}

func invalid(s string) error { return fmt.Errorf("%w: %q", ErrInvalidValue, s) }

// tokenParser returns a parser for a single token of type T.
func tokenParser[T ~int](names []string) func(string) (Value, error) {
	return func(s string) (Value, error) {
		t, err := parseToken[T](names, s)
		if err != nil {
			return nil, err
		}
		return any(t).(Value), nil
	}
}

// tokenListParser returns a parser for a comma or space separated list of T.
func tokenListParser[T interface {
	~int
	Token
}](names []string) func(string) (Value, error) {
	return func(s string) (Value, error) {
		parts := splitList(s)
		if len(parts) == 0 {
			return nil, invalid(s)
		}
		list := make(TokenList[T], 0, len(parts))
		for _, p := range parts {
			t, err := parseToken[T](names, p)
			if err != nil {
				return nil, err
			}
			list = append(list, t)
		}
		return list, nil
	}
}

func parseToken[T ~int](names []string, s string) (T, error) {
	s = strings.TrimSpace(s)
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return T(i), nil
		}
	}
	return 0, invalid(s)
}
