package htmltree

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pinchtab/ariaquery/dom"
)

func ids(seq func(func(dom.Node) bool)) []string {
	var out []string
	for n := range seq {
		if id := dom.ID(n); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func selectIDs(t *testing.T, d *Document, expr string) []string {
	t.Helper()
	m, err := d.CompileSelector(expr)
	if err != nil {
		t.Fatalf("CompileSelector(%q): %v", expr, err)
	}
	var out []string
	for n := range dom.Descendants(d.Body()) {
		if m.Match(n) {
			out = append(out, dom.ID(n))
		}
	}
	return out
}

func TestWrapIdentity(t *testing.T) {
	d := MustParse(`<div id="a"><input id="b"><span id="c">x</span></div>`)
	a := d.ElementByID("a")
	b := d.ElementByID("b")
	if _, ok := b.(InputElement); !ok {
		t.Fatalf("expected InputElement, got %T", b)
	}
	if b.Parent() != a {
		t.Error("parent of b should equal a")
	}
	if a.Children()[0] != b {
		t.Error("first child of a should equal b")
	}
	if b.NextSibling() != d.ElementByID("c") {
		t.Error("next sibling of b should be c")
	}
	seen := map[dom.Node]bool{a: true}
	if !seen[d.ElementByID("a")] {
		t.Error("wrapped nodes must be usable as map keys")
	}
}

func TestElementByID(t *testing.T) {
	d := MustParse(`<p id="x">first</p><p id="x">second</p>`)
	n := d.ElementByID("x")
	if n == nil || n.Text() != "first" {
		t.Fatalf("expected first element with id, got %v", n)
	}
	if d.ElementByID("missing") != nil {
		t.Error("missing id should return nil")
	}
	if d.ElementByID("") != nil {
		t.Error("empty id should return nil")
	}
}

func TestHidden(t *testing.T) {
	d := MustParse(`
		<div id="none" style="display: none">a</div>
		<div id="vis" style="visibility:hidden"><span id="inherit">b</span><span id="back" style="visibility: visible">c</span></div>
		<div id="attr" hidden>d</div>
		<input id="hid" type="hidden">
		<div id="shown" style="color: red">e</div>
		<div id="important" style="DISPLAY:NONE !important">f</div>
		<div id="marked" data-ariaquery-hidden>g</div>
		<div id="wrap" style="display:none"><span id="child">h</span></div>
	`, WithHiddenMarker(HiddenMarker))
	tests := []struct {
		id       string
		hidden   bool
		inHidden bool
	}{
		{"none", true, true},
		{"vis", true, true},
		{"inherit", true, true},
		{"back", false, true},
		{"attr", true, true},
		{"hid", true, true},
		{"shown", false, false},
		{"important", true, true},
		{"marked", true, true},
		{"child", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n := d.ElementByID(tt.id)
			if got := n.Hidden(); got != tt.hidden {
				t.Errorf("Hidden() = %v, want %v", got, tt.hidden)
			}
			if got := dom.HiddenWithin(n); got != tt.inHidden {
				t.Errorf("HiddenWithin() = %v, want %v", got, tt.inHidden)
			}
		})
	}
}

func TestSelectorUnquotedValues(t *testing.T) {
	d := MustParse(`
		<h2 id="h" aria-level="2"></h2>
		<span id="l" aria-labelledby="a b"></span>
		<div id="r" aria-relevant="additions,text"></div>
		<div id="q" aria-label="Your name is?"></div>
		<img id="empty" alt="">
		<div id="neg" aria-colcount="-1"></div>
		<button id="padded" aria-label=" Close "></button>
		<button id="trimmed" aria-label="Close"></button>
	`)
	tests := []struct {
		expr string
		want []string
	}{
		{"[aria-level=2]", []string{"h"}},
		{"[aria-labelledby=a b]", []string{"l"}},
		{"[aria-relevant=additions,text]", []string{"r"}},
		{"[aria-label=Your name is?]", []string{"q"}},
		{`img[alt=""]`, []string{"empty"}},
		{"[aria-colcount=-1]", []string{"neg"}},
		{"[aria-level=2],[aria-colcount=-1]", []string{"h", "neg"}},
		{"[aria-label= Close ]", []string{"padded"}},
		{"[aria-label=Close]", []string{"trimmed"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, selectIDs(t, d, tt.expr)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectorPseudoClasses(t *testing.T) {
	d := MustParse(`
		<input id="cb" type="checkbox" checked>
		<input id="cb2" type="checkbox">
		<input id="rd" type="radio" checked>
		<button id="off" disabled>x</button>
		<button id="on">y</button>
		<div id="gone" style="display:none"><span id="inner">z</span></div>
		<input id="plain">
		<input id="typed" type="text">
	`)
	tests := []struct {
		expr string
		want []string
	}{
		{"input[type=checkbox]:checked,input[type=radio]:checked", []string{"cb", "rd"}},
		{":disabled", []string{"off"}},
		{":hidden", []string{"gone", "inner"}},
		{"span:hidden", []string{"inner"}},
		{"input:not([type])", []string{"plain"}},
		{"button, input[type=button], summary", []string{"off", "on"}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, selectIDs(t, d, tt.expr)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectorErrors(t *testing.T) {
	d := MustParse(`<div></div>`)
	for _, expr := range []string{"", "div,", "[[", "div >"} {
		if _, err := d.CompileSelector(expr); err == nil {
			t.Errorf("CompileSelector(%q) expected error", expr)
		}
	}
}

func TestQuoteAttrValues(t *testing.T) {
	tests := []struct{ in, want string }{
		{"[role=button]", `[role="button"]`},
		{`[alt=""]`, `[alt=""]`},
		{"input:not([type])", "input:not([type])"},
		{`[title=say "hi"]`, `[title="say \"hi\""]`},
		{"[class~=a]", `[class~="a"]`},
		{"[aria-label=]", `[aria-label=""]`},
		{"[aria-label= Close ]", `[aria-label=" Close "]`},
	}
	for _, tt := range tests {
		if got := quoteAttrValues(tt.in); got != tt.want {
			t.Errorf("quoteAttrValues(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTypedElements(t *testing.T) {
	d := MustParse(`
		<input id="i" type="CHECKBOX" value="v" placeholder="p" checked>
		<input id="odd" type="bogus">
		<textarea id="ta">hello</textarea>
		<select id="s"><option value="1">One</option><option selected>Two</option></select>
		<select id="first"><option>Only</option></select>
		<button id="b">go</button>
		<label id="l1" for="i">Check</label>
		<label id="l2">Name <input id="nested"></label>
		<fieldset disabled><input id="fs"></fieldset>
	`)
	in := d.ElementByID("i").(InputElement)
	if in.Type() != "checkbox" || in.Value() != "v" || in.Placeholder() != "p" || !in.Checked() {
		t.Errorf("unexpected input accessors: %q %q %q %v", in.Type(), in.Value(), in.Placeholder(), in.Checked())
	}
	if got := d.ElementByID("odd").(InputElement).Type(); got != "text" {
		t.Errorf("unknown type should be text, got %q", got)
	}
	if got := d.ElementByID("ta").(TextAreaElement).Value(); got != "hello" {
		t.Errorf("textarea value = %q", got)
	}
	if got := d.ElementByID("s").(SelectElement).Value(); got != "Two" {
		t.Errorf("select value = %q, want Two", got)
	}
	if got := d.ElementByID("first").(SelectElement).Value(); got != "Only" {
		t.Errorf("select default value = %q, want Only", got)
	}
	if got := d.ElementByID("b").(ButtonElement).Type(); got != "submit" {
		t.Errorf("button type = %q", got)
	}
	if c := d.ElementByID("l1").(LabelElement).Control(); c != d.ElementByID("i") {
		t.Errorf("label for control = %v", c)
	}
	if c := d.ElementByID("l2").(LabelElement).Control(); c != d.ElementByID("nested") {
		t.Errorf("nested label control = %v", c)
	}
	if !d.ElementByID("fs").(InputElement).Disabled() {
		t.Error("input in disabled fieldset should be disabled")
	}
}

func TestRenderedText(t *testing.T) {
	d := MustParse(`<div id="d">  Hello <b>big</b>
		<span style="display:none">secret</span> world </div>`)
	if got := dom.RenderedText(d.ElementByID("d")); got != "Hello big world" {
		t.Errorf("RenderedText = %q", got)
	}
}

func TestWalkOrder(t *testing.T) {
	d := MustParse(`<div id="a"><div id="b"><i id="c"></i></div><div id="d"></div></div>`)
	got := ids(dom.Walk(d.ElementByID("a")))
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, got); diff != "" {
		t.Errorf("walk order (-want +got):\n%s", diff)
	}
	got = ids(dom.Descendants(d.ElementByID("a")))
	if diff := cmp.Diff([]string{"b", "c", "d"}, got); diff != "" {
		t.Errorf("descendants (-want +got):\n%s", diff)
	}
}
