package aria

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompileRole(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleButton, "[role=button],button,input[type=button], input[type=img], input[type=reset], input[type=submit], summary"},
		{RoleAlert, "[role=alert]"},
		{RoleHeading, "[role=heading],h1,h2,h3,h4,h5,h6"},
		{RoleOutput, "[role=status],output"},
		{RoleImage, "[role=img],img"},
		{RolePresentation, `[role=presentation],img[alt=""]`},
		{RoleRowHeader, "[role=rowheader],table>th"},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if got := Compile(tt.role); got != tt.want {
				t.Errorf("Compile(%v) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}

func TestRoleTableComplete(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Roles() {
		if r.Name() == "" {
			t.Errorf("role %d has no name", int(r))
		}
		if seen[r.Name()] {
			t.Errorf("duplicate role name %q", r.Name())
		}
		seen[r.Name()] = true
	}
	if len(Roles()) != 51 {
		t.Errorf("expected 51 roles, got %d", len(Roles()))
	}
}

func TestCompileProperty(t *testing.T) {
	tests := []struct {
		name string
		prop Property
		want string
	}{
		{"bool", Required(true), "[aria-required=true]"},
		{"bool false", Atomic(false), "[aria-atomic=false]"},
		{"int", Level(2), "[aria-level=2]"},
		{"negative int passes through", ColCount(-1), "[aria-colcount=-1]"},
		{"whole float", ValueNow(1), "[aria-valuenow=1]"},
		{"fraction", ValueMax(1.5), "[aria-valuemax=1.5]"},
		{"string", Label("Close"), "[aria-label=Close]"},
		{"id refs keep order and duplicates", LabelledBy("a", "b", "a"), "[aria-labelledby=a b a]"},
		{"token", HasPopup(HasPopupListBox), "[aria-haspopup=listbox]"},
		{"token list", Relevant(RelevantAdditionsText, RelevantRemovals), "[aria-relevant=additionstext,removals]"},
		{"single token list", Relevant(RelevantAll), "[aria-relevant=all]"},
		{"deprecated", DropEffect(DropEffectCopy, DropEffectMove), "[aria-dropeffect=copy,move]"},
		{"camel name lowered", MultiSelectable(true), "[aria-multiselectable=true]"},
		{"active descendant", ActiveDescendant("opt1"), "[aria-activedescendant=opt1]"},
		{"orientation", Orientation(OrientationVertical), "[aria-orientation=vertical]"},
		{"sort", Sort(SortDescending), "[aria-sort=descending]"},
		{"autocomplete", AutoComplete(AutoCompleteBoth), "[aria-autocomplete=both]"},
		{"live", Live(LivePolite), "[aria-live=polite]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compile(tt.prop); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileState(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"disabled", Disabled(true), ":disabled,[aria-disabled=true]"},
		{"enabled", Disabled(false), "[aria-disabled=false]"},
		{"checked", Checked(TriTrue), "input[type=checkbox]:checked,input[type=radio]:checked,[aria-checked=true]"},
		{"mixed", Checked(TriMixed), "[aria-checked=mixed]"},
		{"hidden", Hidden(DuoTrue), ":hidden,[aria-hidden=true]"},
		{"not hidden", Hidden(DuoFalse), "[aria-hidden=false]"},
		{"busy", Busy(true), "[aria-busy=true]"},
		{"current", Current(CurrentPage), "[aria-current=page]"},
		{"expanded", Expanded(DuoUndefined), "[aria-expanded=undefined]"},
		{"grabbed", Grabbed(DuoTrue), "[aria-grabbed=true]"},
		{"invalid", Invalid(InvalidSpelling), "[aria-invalid=spelling]"},
		{"pressed", Pressed(TriTrue), "[aria-pressed=true]"},
		{"selected", Selected(DuoFalse), "[aria-selected=false]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compile(tt.state); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileStable(t *testing.T) {
	queries := []Query{RoleCombobox, Relevant(RelevantAll, RelevantText), Checked(TriTrue)}
	for _, q := range queries {
		first := Compile(q)
		for range 3 {
			if got := Compile(q); got != first {
				t.Fatalf("Compile not stable: %q then %q", first, got)
			}
		}
	}
}

func TestImplicitReturnsCopy(t *testing.T) {
	got := RoleList.Implicit()
	got[0] = "changed"
	if diff := cmp.Diff([]string{"menu", "ol", "ul"}, RoleList.Implicit()); diff != "" {
		t.Errorf("implicit table mutated (-want +got):\n%s", diff)
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("Button")
	if err != nil {
		t.Fatal(err)
	}
	if r != RoleButton {
		t.Errorf("got %v, want button", r)
	}
	if r, _ := ParseRole("status"); r != RoleOutput {
		t.Errorf("status should map to output role, got %v", r)
	}
	if _, err := ParseRole("nope"); !errors.Is(err, ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got %v", err)
	}
}

func TestParseProperty(t *testing.T) {
	tests := []struct {
		name, value string
		want        Property
	}{
		{"required", "true", Required(true)},
		{"aria-level", "3", Level(3)},
		{"valuenow", "2.5", ValueNow(2.5)},
		{"labelledby", "a  b", LabelledBy("a", "b")},
		{"relevant", "additions, text", Relevant(RelevantAdditions, RelevantText)},
		{"haspopup", "ListBox", HasPopup(HasPopupListBox)},
		{"label", "Your name", Label("Your name")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProperty(tt.name, tt.value)
			if err != nil {
				t.Fatal(err)
			}
			if Compile(got) != Compile(tt.want) {
				t.Errorf("got %q, want %q", Compile(got), Compile(tt.want))
			}
		})
	}
}

func TestParsePropertyErrors(t *testing.T) {
	if _, err := ParseProperty("bogus", "1"); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("expected ErrUnknownProperty, got %v", err)
	}
	if _, err := ParseProperty("level", "two"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
	if _, err := ParseProperty("live", "loud"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestParseState(t *testing.T) {
	s, err := ParseState("aria-checked", "true")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := Compile(s), Compile(Checked(TriTrue)); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, err := ParseState("checked", "maybe"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
	if _, err := ParseState("open", "true"); !errors.Is(err, ErrUnknownState) {
		t.Errorf("expected ErrUnknownState, got %v", err)
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		kind, name, value string
		want              string
	}{
		{"role", "checkbox", "", "[role=checkbox],input[type=checkbox]"},
		{"property", "required", "true", "[aria-required=true]"},
		{"state", "disabled", "true", ":disabled,[aria-disabled=true]"},
	}
	for _, tt := range tests {
		q, err := Parse(tt.kind, tt.name, tt.value)
		if err != nil {
			t.Fatalf("Parse(%q, %q): %v", tt.kind, tt.name, err)
		}
		if got := Compile(q); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
	if _, err := Parse("attribute", "x", ""); err == nil {
		t.Error("expected error for unknown kind")
	}
}
