package accname

import (
	"testing"

	"github.com/pinchtab/ariaquery/dom/htmltree"
)

func nameOf(t *testing.T, markup, id string) string {
	t.Helper()
	d := htmltree.MustParse(markup)
	n := d.ElementByID(id)
	if n == nil {
		t.Fatalf("no element with id %q", id)
	}
	return Compute(n)
}

type nameCase struct {
	name   string
	markup string
	id     string
	want   string
}

func runCases(t *testing.T, tests []nameCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nameOf(t, tt.markup, tt.id); got != tt.want {
				t.Errorf("Compute(#%s) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestComputeContent(t *testing.T) {
	runCases(t, []nameCase{
		{
			name:   "button from nested content",
			markup: `<button id="b"><span>Delete</span><span><img alt="Profile"/> Jane Doe</span></button>`,
			id:     "b",
			want:   "Delete Profile Jane Doe",
		},
		{
			name: "descendant aria-label replaces its content",
			markup: `<button id="b">
				<span class="action">Delete</span>
				<span class="profile" aria-label="all records of Matt Tress">
					<img src="pict.jpg" alt="Profile" /> Matt Tress
				</span>
			</button>`,
			id:   "b",
			want: "Delete all records of Matt Tress",
		},
		{
			name: "own aria-label wins over content",
			markup: `<button id="b" aria-label="Remove all trace of Matt Tress">
				<span>Delete</span>
				<span aria-label="all records of Matt Tress">Matt Tress</span>
			</button>`,
			id:   "b",
			want: "Remove all trace of Matt Tress",
		},
		{
			name: "role textbox content inlined",
			markup: `<div id="c" role="checkbox" aria-checked="false">
				Flash the screen
				<span role="textbox" aria-multiline="false"> 5 </span>
				times
			</div>`,
			id:   "c",
			want: "Flash the screen 5 times",
		},
		{
			name:   "output content",
			markup: `<output id="o">42</output>`,
			id:     "o",
			want:   "42",
		},
		{
			name:   "empty link falls back to title",
			markup: `<a id="l" href="/x" title="Home page"></a>`,
			id:     "l",
			want:   "Home page",
		},
	})
}

func TestComputeLabelledBy(t *testing.T) {
	runCases(t, []nameCase{
		{
			name:   "labelledby an ancestor",
			markup: `<div id="p">Email: <input id="i" aria-labelledby="p" type="text"/></div>`,
			id:     "i",
			want:   "Email:",
		},
		{
			name:   "self reference is skipped",
			markup: `<div id="p">Email: <input id="i" aria-labelledby="p i" type="text"/></div>`,
			id:     "i",
			want:   "Email:",
		},
		{
			name:   "aria-label and self labelledby",
			markup: `<input id="my_name" aria-labelledby="my_name" aria-label="Your name is?" type="text" />`,
			id:     "my_name",
			want:   "Your name is?",
		},
		{
			name: "aria-label prefixes labelledby names",
			markup: `<a id="file_row1" href="./files/Documentation.pdf">Documentation.pdf</a>` +
				`<span role="button" tabindex="0" id="del_row1" aria-label="Delete" aria-labelledby="del_row1 file_row1"></span>`,
			id:   "del_row1",
			want: "Delete Documentation.pdf",
		},
		{
			name: "second pass through labelledby ignored",
			markup: `<div id="parentId">
				<button aria-labelledby="parentId" aria-label="Remove event:">X</button>
				<span class="event">Blindfolded Dart Throwing Contest</span>
			</div>`,
			id:   "parentId",
			want: "Remove event: Blindfolded Dart Throwing Contest",
		},
		{
			name:   "missing ids contribute nothing",
			markup: `<span id="a">Alpha</span><button id="b" aria-labelledby="nope a">X</button>`,
			id:     "b",
			want:   "Alpha X",
		},
		{
			name:   "hidden element named through labelledby",
			markup: `<div id="lbl">Name</div><input id="x" style="display:none" aria-labelledby="lbl">`,
			id:     "x",
			want:   "Name",
		},
	})
}

func TestComputeLabelledByFollowedOnce(t *testing.T) {
	markup := `<div id="e11" aria-labelledby="e13"></div><div id="e12" aria-labelledby="e11"></div><div id="e13">hello</div>`
	if got := nameOf(t, markup, "e11"); got != "hello" {
		t.Errorf("e11 = %q, want hello", got)
	}
	if got := nameOf(t, markup, "e12"); got != "" {
		t.Errorf("e12 = %q, want empty", got)
	}
}

func TestComputeCycleTerminates(t *testing.T) {
	d := htmltree.MustParse(`<div id="a" aria-labelledby="b">A</div><div id="b" aria-labelledby="a">B</div>`)
	a := d.ElementByID("a")
	first := Compute(a)
	if first != "B A" {
		t.Errorf("Compute(a) = %q, want %q", first, "B A")
	}
	for range 3 {
		if got := Compute(a); got != first {
			t.Fatalf("not deterministic: %q then %q", first, got)
		}
	}
}

func TestComputeHidden(t *testing.T) {
	runCases(t, []nameCase{
		{
			name: "display none child",
			markup: `<div id="d">
				<span style="display:none;">Choose the country where you currently reside.</span>
			</div>`,
			id:   "d",
			want: "",
		},
		{
			name:   "display none ignores aria-label",
			markup: `<button id="b" style="display:none" aria-label="Close">x</button>`,
			id:     "b",
			want:   "",
		},
		{
			name: "aria-hidden true child skipped",
			markup: `<div id="parentId">
				Email address:
				<input aria-labelledby="parentId" type="text" />
				<div class="validationError" aria-hidden="true">Error: A valid email address is required.</div>
			</div>`,
			id:   "parentId",
			want: "Email address:",
		},
		{
			name: "aria-hidden false overrides display none",
			markup: `<div id="parentId">
				Email address:
				<input aria-labelledby="parentId" type="text" />
				<div class="validationError" style="display:none;" aria-hidden="false">Error: A valid email address is required.</div>
			</div>`,
			id:   "parentId",
			want: "Email address: Error: A valid email address is required.",
		},
		{
			name: "visibility hidden child",
			markup: `<div id="parentId">
				Email address:
				<input aria-labelledby="parentId" type="text" />
				<div style="visibility:hidden;">Error: A valid email address is required.</div>
			</div>`,
			id:   "parentId",
			want: "Email address:",
		},
		{
			name:   "visibility hidden inherited",
			markup: `<div id="w"><input type="text" /><div style="visibility:hidden;"><span>Choose a country</span></div></div>`,
			id:     "w",
			want:   "",
		},
	})
}

func TestComputePresentational(t *testing.T) {
	runCases(t, []nameCase{
		{
			name: "presentation ignores aria-label",
			markup: `<button id="b">
				<div aria-label="This is the best!" role="presentation"><span>Wow!</span></div>
			</button>`,
			id:   "b",
			want: "Wow!",
		},
		{
			name:   "role none ignores labelledby",
			markup: `<span id="l">Label</span><div id="d" role="none" aria-labelledby="l"><b>one</b> <i>two</i></div>`,
			id:     "d",
			want:   "one two",
		},
	})
}

func TestComputeFormControls(t *testing.T) {
	runCases(t, []nameCase{
		{
			name:   "enclosing label with for",
			markup: `<label for="user-password">Password: <input id="user-password" type="password" /></label>`,
			id:     "user-password",
			want:   "Password:",
		},
		{
			name:   "checkbox from following label",
			markup: `<input id="myinput" type="checkbox"/><label for="myinput">My Input!</label>`,
			id:     "myinput",
			want:   "My Input!",
		},
		{
			name:   "radio from enclosing label",
			markup: `<label>Subscribe <input id="r" type="radio"></label>`,
			id:     "r",
			want:   "Subscribe",
		},
		{
			name:   "labels joined in document order",
			markup: `<label for="n">First</label><input id="n"><label for="n">Second</label>`,
			id:     "n",
			want:   "First Second",
		},
		{
			name:   "label skips aria-hidden content",
			markup: `<label for="x">Email <span aria-hidden="true">*</span></label><input id="x">`,
			id:     "x",
			want:   "Email",
		},
		{
			name: "label whitespace collapsed",
			markup: `<label for="x">
				First
				name
			</label><input id="x">`,
			id:   "x",
			want: "First name",
		},
		{
			name:   "title before placeholder",
			markup: `<input id="x" title="Search term" placeholder="Type here">`,
			id:     "x",
			want:   "Search term",
		},
		{
			name:   "placeholder last",
			markup: `<input id="x" type="search" placeholder="Type here">`,
			id:     "x",
			want:   "Type here",
		},
		{
			name:   "textarea placeholder",
			markup: `<textarea id="t" placeholder="Notes"></textarea>`,
			id:     "t",
			want:   "Notes",
		},
		{
			name:   "button input value",
			markup: `<input id="x" type="button" value="Go" title="ignored">`,
			id:     "x",
			want:   "Go",
		},
		{
			name:   "button input title",
			markup: `<input id="x" type="button" title="Go">`,
			id:     "x",
			want:   "Go",
		},
		{
			name:   "submit without value uses type",
			markup: `<input id="x" type="submit">`,
			id:     "x",
			want:   "submit",
		},
		{
			name:   "reset value",
			markup: `<input id="x" type="reset" value="Clear form">`,
			id:     "x",
			want:   "Clear form",
		},
		{
			name:   "image input alt",
			markup: `<input id="x" type="image" alt="Send">`,
			id:     "x",
			want:   "Send",
		},
		{
			name:   "image input default",
			markup: `<input id="x" type="image">`,
			id:     "x",
			want:   "Submit",
		},
		{
			name:   "range valuetext",
			markup: `<input id="x" type="range" aria-valuetext="Medium" aria-valuenow="5" value="5">`,
			id:     "x",
			want:   "Medium",
		},
		{
			name:   "range valuenow",
			markup: `<input id="x" type="range" aria-valuenow="5" value="4">`,
			id:     "x",
			want:   "5",
		},
		{
			name:   "number value",
			markup: `<input id="x" type="number" value="7">`,
			id:     "x",
			want:   "7",
		},
		{
			name:   "file input has no name",
			markup: `<label for="x">Upload</label><input id="x" type="file">`,
			id:     "x",
			want:   "",
		},
		{
			name:   "select from label",
			markup: `<label for="s">Country</label><select id="s"><option>US</option></select>`,
			id:     "s",
			want:   "Country",
		},
		{
			name:   "select title",
			markup: `<select id="s" title="Country"><option>US</option></select>`,
			id:     "s",
			want:   "Country",
		},
	})
}

func TestComputeCaptions(t *testing.T) {
	runCases(t, []nameCase{
		{
			name:   "fieldset legend",
			markup: `<fieldset id="f"><legend>Shipping <b>address</b></legend><input></fieldset>`,
			id:     "f",
			want:   "Shipping address",
		},
		{
			name:   "empty legend falls back to title",
			markup: `<fieldset id="f" title="Shipping"><legend></legend></fieldset>`,
			id:     "f",
			want:   "Shipping",
		},
		{
			name:   "no legend",
			markup: `<fieldset id="f" title="Shipping"><div>content</div></fieldset>`,
			id:     "f",
			want:   "",
		},
		{
			name:   "figure caption",
			markup: `<figure id="f"><img alt="chart"><figcaption>Sales by month</figcaption></figure>`,
			id:     "f",
			want:   "Sales by month",
		},
		{
			name:   "table caption",
			markup: `<table id="t"><caption>Prices</caption><tr><td>1</td></tr></table>`,
			id:     "t",
			want:   "Prices",
		},
	})
}

func TestComputeSummaryAndImages(t *testing.T) {
	runCases(t, []nameCase{
		{"summary text", `<details><summary id="s">More info</summary></details>`, "s", "More info"},
		{"empty summary in details", `<details><summary id="s"></summary></details>`, "s", ""},
		{"empty summary outside details", `<div><summary id="s"></summary></div>`, "s", "details"},
		{"img alt", `<img id="i" alt="Logo" title="Company">`, "i", "Logo"},
		{"img title", `<img id="i" title="Company">`, "i", "Company"},
		{"area alt", `<map name="m"><area id="a" alt="Home" href="/"></map>`, "a", "Home"},
	})
}

func TestComputeNil(t *testing.T) {
	if got := Compute(nil); got != "" {
		t.Errorf("Compute(nil) = %q", got)
	}
}
