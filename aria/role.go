package aria

import (
	"fmt"
	"strings"
)

// Role is a WAI-ARIA role.
type Role int

const (
	RoleAlert Role = iota
	RoleAlertDialog
	RoleApplication
	RoleAriaLabel
	RoleArticle
	RoleButton
	RoleCheckbox
	RoleCombobox
	RoleComplementary
	RoleDialog
	RoleFigure
	RoleForm
	RoleHeading
	RoleImage
	RoleLink
	RoleList
	RoleListBox
	RoleListItem
	RoleLog
	RoleMain
	RoleMath
	RoleMenu
	RoleMenuItem
	RoleMenuItemCheckbox
	RoleMenuItemRadio
	RoleNavigation
	RoleNone
	RoleNote
	RoleOption
	RoleOutput
	RolePresentation
	RoleProgressbar
	RoleRadio
	RoleRegion
	RoleRow
	RoleRowGroup
	RoleRowHeader
	RoleScrollbar
	RoleSearch
	RoleSearchbox
	RoleSlider
	RoleSpinButton
	RoleSwitch
	RoleTab
	RoleTable
	RoleTabPanel
	RoleTerm
	RoleTextBox
	RoleToolbar
	RoleTooltip
	RoleTreeItem

	numRoles
)

type roleInfo struct {
	name     string
	implicit []string
}

// roleTable maps each role to its attribute value and the native elements
// that carry it implicitly, in selector order.
var roleTable = [numRoles]roleInfo{
	RoleAlert:       {name: "alert"},
	RoleAlertDialog: {name: "alertdialog"},
	RoleApplication: {name: "application"},
	RoleAriaLabel:   {name: "aria-label"},
	RoleArticle:     {name: "article", implicit: []string{"article"}},
	RoleButton: {name: "button", implicit: []string{
		"button",
		"input[type=button], input[type=img], input[type=reset], input[type=submit], summary",
	}},
	RoleCheckbox: {name: "checkbox", implicit: []string{"input[type=checkbox]"}},
	RoleCombobox: {name: "combobox", implicit: []string{
		"input:not([type])",
		"input[type=text][list]",
		"input[type=search][list]",
		"input[type=tel][list]",
		"input[type=url][list]",
		"input[type=email][list]",
		"select",
	}},
	RoleComplementary:    {name: "complementary", implicit: []string{"aside"}},
	RoleDialog:           {name: "dialog", implicit: []string{"dialog"}},
	RoleFigure:           {name: "figure", implicit: []string{"figure"}},
	RoleForm:             {name: "form", implicit: []string{"form"}},
	RoleHeading:          {name: "heading", implicit: []string{"h1", "h2", "h3", "h4", "h5", "h6"}},
	RoleImage:            {name: "img", implicit: []string{"img"}},
	RoleLink:             {name: "link", implicit: []string{"a[href]", "area[href]"}},
	RoleList:             {name: "list", implicit: []string{"menu", "ol", "ul"}},
	RoleListBox:          {name: "listbox", implicit: []string{"datalist", "select"}},
	RoleListItem:         {name: "listitem", implicit: []string{"li"}},
	RoleLog:              {name: "log"},
	RoleMain:             {name: "main", implicit: []string{"main"}},
	RoleMath:             {name: "math", implicit: []string{"math"}},
	RoleMenu:             {name: "menu"},
	RoleMenuItem:         {name: "menuitem"},
	RoleMenuItemCheckbox: {name: "menuitemcheckbox"},
	RoleMenuItemRadio:    {name: "menuitemradio"},
	RoleNavigation:       {name: "navigation", implicit: []string{"nav"}},
	RoleNone:             {name: "none"},
	RoleNote:             {name: "note"},
	RoleOption:           {name: "option", implicit: []string{"option"}},
	RoleOutput:           {name: "status", implicit: []string{"output"}},
	RolePresentation:     {name: "presentation", implicit: []string{`img[alt=""]`}},
	RoleProgressbar:      {name: "progressbar", implicit: []string{"progress"}},
	RoleRadio:            {name: "radio", implicit: []string{"input[type=radio]"}},
	RoleRegion:           {name: "region", implicit: []string{"section"}},
	RoleRow:              {name: "row", implicit: []string{"tr"}},
	RoleRowGroup:         {name: "rowgroup", implicit: []string{"tbody", "tfoot", "thead"}},
	RoleRowHeader:        {name: "rowheader", implicit: []string{"table>th"}},
	RoleScrollbar:        {name: "scrollbar"},
	RoleSearch:           {name: "search"},
	RoleSearchbox:        {name: "searchbox", implicit: []string{"input[type=search]"}},
	RoleSlider:           {name: "slider", implicit: []string{"input[type=range]"}},
	RoleSpinButton:       {name: "spinbutton", implicit: []string{"input[type=number]"}},
	RoleSwitch:           {name: "switch"},
	RoleTab:              {name: "tab"},
	RoleTable:            {name: "table", implicit: []string{"table"}},
	RoleTabPanel:         {name: "tabpanel"},
	RoleTerm:             {name: "term", implicit: []string{"dfn", "dt"}},
	RoleTextBox: {name: "textbox", implicit: []string{
		"input:not([type])",
		"input[type=email]",
		"input[type=tel]",
		"input[type=text]",
		"input[type=url]",
		"textarea",
	}},
	RoleToolbar:  {name: "toolbar"},
	RoleTooltip:  {name: "tooltip"},
	RoleTreeItem: {name: "treeitem"},
}

// Roles returns every role in declaration order.
func Roles() []Role {
	out := make([]Role, numRoles)
	for i := range out {
		out[i] = Role(i)
	}
	return out
}

func (r Role) valid() bool { return r >= 0 && r < numRoles }

// Name returns the value used in the role attribute.
func (r Role) Name() string {
	if !r.valid() {
		return ""
	}
	return roleTable[r].name
}

func (r Role) String() string {
	if !r.valid() {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleTable[r].name
}

// Implicit returns the selectors of native elements that carry the role
// without an explicit role attribute.
func (r Role) Implicit() []string {
	if !r.valid() {
		return nil
	}
	return append([]string(nil), roleTable[r].implicit...)
}

// Selector returns the explicit role attribute selector unioned with every
// implicit element selector.
func (r Role) Selector() string {
	if !r.valid() {
		return ""
	}
	var b strings.Builder
	b.WriteString("[role=")
	b.WriteString(r.Name())
	b.WriteByte(']')
	for _, s := range roleTable[r].implicit {
		b.WriteByte(',')
		b.WriteString(s)
	}
	return b.String()
}

func (Role) isQuery() {}

// ParseRole resolves a role attribute value such as "button" or "img".
// Matching is case-insensitive.
func ParseRole(name string) (Role, error) {
	name = strings.TrimSpace(name)
	for i, info := range roleTable {
		if strings.EqualFold(info.name, name) {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, name)
}
