package aria

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrUnknownRole     = errors.New("unknown role")
	ErrUnknownProperty = errors.New("unknown property")
	ErrUnknownState    = errors.New("unknown state")
	ErrInvalidValue    = errors.New("invalid value")
)

// Value is the typed payload of a property or state.
type Value interface {
	// Fragment renders the value as it appears inside an attribute selector.
	Fragment() string
}

// Bool is a true/false attribute value.
type Bool bool

func (v Bool) Fragment() string { return strconv.FormatBool(bool(v)) }

// Integer is an integer attribute value. It is not range checked.
type Integer int32

func (v Integer) Fragment() string { return strconv.FormatInt(int64(v), 10) }

// Number is a decimal attribute value, rendered in its shortest form.
type Number float32

func (v Number) Fragment() string { return strconv.FormatFloat(float64(v), 'f', -1, 32) }

// String is a free-form attribute value.
type String string

func (v String) Fragment() string { return string(v) }

// IDRefs is an ordered list of element ids. Duplicates are kept.
type IDRefs []string

func (v IDRefs) Fragment() string { return strings.Join(v, " ") }

// Token is an enumerated attribute value.
type Token interface {
	Value
	comparable
}

// TokenList is an ordered list of tokens, rendered comma separated.
type TokenList[T Token] []T

func (l TokenList[T]) Fragment() string {
	var b strings.Builder
	for i, t := range l {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.Fragment())
	}
	return b.String()
}

func parseBool(s string) (Value, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil, invalid(s)
	}
	return Bool(b), nil
}

func parseInteger(s string) (Value, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return nil, invalid(s)
	}
	return Integer(n), nil
}

func parseNumber(s string) (Value, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return nil, invalid(s)
	}
	return Number(f), nil
}

func parseString(s string) (Value, error) { return String(s), nil }

func parseIDRefs(s string) (Value, error) {
	ids := strings.Fields(s)
	if len(ids) == 0 {
		return nil, invalid(s)
	}
	return IDRefs(ids), nil
}

// splitList accepts comma and/or space separated items.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
}
