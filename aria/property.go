package aria

import (
	"fmt"
	"strings"
)

// PropertyKind identifies an ARIA property.
type PropertyKind int

const (
	PropAtomic PropertyKind = iota
	PropControls
	PropDescribedBy
	PropDetails
	PropDropEffect
	PropErrorMessage
	PropActiveDescendant
	PropAutoComplete
	PropColCount
	PropColIndex
	PropColSpan
	PropFlowTo
	PropHasPopup
	PropKeyShortcuts
	PropLabel
	PropLabelledBy
	PropLevel
	PropLive
	PropModal
	PropMultiLine
	PropMultiSelectable
	PropOrientation
	PropOwns
	PropPlaceholder
	PropPosInSet
	PropReadOnly
	PropRelevant
	PropRequired
	PropRoleDescription
	PropRowCount
	PropRowIndex
	PropRowSpan
	PropSetSize
	PropSort
	PropValueMax
	PropValueMin
	PropValueNow
	PropValueText

	numProps
)

type attrInfo struct {
	name  string
	parse func(string) (Value, error)
}

var propertyTable = [numProps]attrInfo{
	PropAtomic:           {"atomic", parseBool},
	PropControls:         {"controls", parseIDRefs},
	PropDescribedBy:      {"describedby", parseIDRefs},
	PropDetails:          {"details", parseString},
	PropDropEffect:       {"dropeffect", tokenListParser[DropEffectToken](dropEffectNames)},
	PropErrorMessage:     {"errormessage", parseString},
	PropActiveDescendant: {"activedescendant", parseString},
	PropAutoComplete:     {"autocomplete", tokenParser[AutoCompleteToken](autoCompleteNames)},
	PropColCount:         {"colcount", parseInteger},
	PropColIndex:         {"colindex", parseInteger},
	PropColSpan:          {"colspan", parseInteger},
	PropFlowTo:           {"flowto", parseIDRefs},
	PropHasPopup:         {"haspopup", tokenParser[HasPopupToken](hasPopupNames)},
	PropKeyShortcuts:     {"keyshortcuts", parseString},
	PropLabel:            {"label", parseString},
	PropLabelledBy:       {"labelledby", parseIDRefs},
	PropLevel:            {"level", parseInteger},
	PropLive:             {"live", tokenParser[LiveToken](liveNames)},
	PropModal:            {"modal", parseBool},
	PropMultiLine:        {"multiline", parseBool},
	PropMultiSelectable:  {"multiselectable", parseBool},
	PropOrientation:      {"orientation", tokenParser[OrientationToken](orientationNames)},
	PropOwns:             {"owns", parseIDRefs},
	PropPlaceholder:      {"placeholder", parseString},
	PropPosInSet:         {"posinset", parseInteger},
	PropReadOnly:         {"readonly", parseBool},
	PropRelevant:         {"relevant", tokenListParser[RelevantToken](relevantNames)},
	PropRequired:         {"required", parseBool},
	PropRoleDescription:  {"roledescription", parseString},
	PropRowCount:         {"rowcount", parseInteger},
	PropRowIndex:         {"rowindex", parseInteger},
	PropRowSpan:          {"rowspan", parseInteger},
	PropSetSize:          {"setsize", parseInteger},
	PropSort:             {"sort", tokenParser[SortToken](sortNames)},
	PropValueMax:         {"valuemax", parseNumber},
	PropValueMin:         {"valuemin", parseNumber},
	PropValueNow:         {"valuenow", parseNumber},
	PropValueText:        {"valuetext", parseString},
}

func (k PropertyKind) valid() bool { return k >= 0 && k < numProps }

// Name is the attribute name without the "aria-" prefix.
func (k PropertyKind) Name() string {
	if !k.valid() {
		return ""
	}
	return propertyTable[k].name
}

func (k PropertyKind) String() string { return "aria-" + k.Name() }

// Property is an ARIA property paired with its value.
type Property struct {
	kind  PropertyKind
	value Value
}

func (p Property) Kind() PropertyKind { return p.kind }
func (p Property) Value() Value       { return p.value }

// Selector renders the property as an attribute selector.
func (p Property) Selector() string {
	return attrSelector(p.kind.Name(), p.value)
}

func (p Property) String() string { return p.Selector() }

func (Property) isQuery() {}

func attrSelector(name string, v Value) string {
	var frag string
	if v != nil {
		frag = v.Fragment()
	}
	return "[aria-" + name + "=" + frag + "]"
}

func Atomic(v bool) Property                    { return Property{PropAtomic, Bool(v)} }
func Controls(ids ...string) Property           { return Property{PropControls, IDRefs(ids)} }
func DescribedBy(ids ...string) Property        { return Property{PropDescribedBy, IDRefs(ids)} }
func Details(id string) Property                { return Property{PropDetails, String(id)} }
func ErrorMessage(id string) Property           { return Property{PropErrorMessage, String(id)} }
func ActiveDescendant(id string) Property       { return Property{PropActiveDescendant, String(id)} }
func ColCount(n int32) Property                 { return Property{PropColCount, Integer(n)} }
func ColIndex(n int32) Property                 { return Property{PropColIndex, Integer(n)} }
func ColSpan(n int32) Property                  { return Property{PropColSpan, Integer(n)} }
func FlowTo(ids ...string) Property             { return Property{PropFlowTo, IDRefs(ids)} }
func KeyShortcuts(keys string) Property         { return Property{PropKeyShortcuts, String(keys)} }
func Label(name string) Property                { return Property{PropLabel, String(name)} }
func LabelledBy(ids ...string) Property         { return Property{PropLabelledBy, IDRefs(ids)} }
func Level(n int32) Property                    { return Property{PropLevel, Integer(n)} }
func Modal(v bool) Property                     { return Property{PropModal, Bool(v)} }
func MultiLine(v bool) Property                 { return Property{PropMultiLine, Bool(v)} }
func MultiSelectable(v bool) Property           { return Property{PropMultiSelectable, Bool(v)} }
func Owns(ids ...string) Property               { return Property{PropOwns, IDRefs(ids)} }
func Placeholder(text string) Property          { return Property{PropPlaceholder, String(text)} }
func PosInSet(n int32) Property                 { return Property{PropPosInSet, Integer(n)} }
func ReadOnly(v bool) Property                  { return Property{PropReadOnly, Bool(v)} }
func Required(v bool) Property                  { return Property{PropRequired, Bool(v)} }
func RoleDescription(text string) Property      { return Property{PropRoleDescription, String(text)} }
func RowCount(n int32) Property                 { return Property{PropRowCount, Integer(n)} }
func RowIndex(n int32) Property                 { return Property{PropRowIndex, Integer(n)} }
func RowSpan(n int32) Property                  { return Property{PropRowSpan, Integer(n)} }
func SetSize(n int32) Property                  { return Property{PropSetSize, Integer(n)} }
func ValueMax(v float32) Property               { return Property{PropValueMax, Number(v)} }
func ValueMin(v float32) Property               { return Property{PropValueMin, Number(v)} }
func ValueNow(v float32) Property               { return Property{PropValueNow, Number(v)} }
func ValueText(text string) Property            { return Property{PropValueText, String(text)} }
func AutoComplete(t AutoCompleteToken) Property { return Property{PropAutoComplete, t} }
func HasPopup(t HasPopupToken) Property         { return Property{PropHasPopup, t} }
func Live(t LiveToken) Property                 { return Property{PropLive, t} }
func Orientation(t OrientationToken) Property   { return Property{PropOrientation, t} }
func Sort(t SortToken) Property                 { return Property{PropSort, t} }

// DropEffect is deprecated in ARIA 1.1 but still compiles.
func DropEffect(t ...DropEffectToken) Property {
	return Property{PropDropEffect, TokenList[DropEffectToken](t)}
}

func Relevant(t ...RelevantToken) Property {
	return Property{PropRelevant, TokenList[RelevantToken](t)}
}

// ParseProperty builds a property from its attribute name, with or without
// the "aria-" prefix, and a textual value.
func ParseProperty(name, value string) (Property, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "aria-")
	for i, info := range propertyTable {
		if info.name != key {
			continue
		}
		v, err := info.parse(value)
		if err != nil {
			return Property{}, fmt.Errorf("aria-%s: %w", key, err)
		}
		return Property{PropertyKind(i), v}, nil
	}
	return Property{}, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
}
