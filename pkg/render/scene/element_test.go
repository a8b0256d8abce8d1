package scene

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestSetReplacesInPlace(t *testing.T) {
	e := New("circle").Set("cx", "1").Set("cy", "2")
	e.Set("cx", "5")

	if len(e.Attrs) != 2 {
		t.Fatalf("len(Attrs) = %d, want 2", len(e.Attrs))
	}
	if e.Attrs[0] != (Attr{"cx", "5"}) {
		t.Errorf("Attrs[0] = %v, want cx=5 kept first", e.Attrs[0])
	}
	if v, ok := e.Get("cy"); !ok || v != "2" {
		t.Errorf("Get(cy) = %q, %v", v, ok)
	}
	if _, ok := e.Get("r"); ok {
		t.Error("Get(r) should report missing attribute")
	}
}

func TestRevisionCountsWrites(t *testing.T) {
	e := New("g")
	if e.Revision() != 0 {
		t.Fatalf("new element revision = %d, want 0", e.Revision())
	}

	e.Set("transform", "scale(1, 1)")
	e.AddClass("person")
	e.AddClass("person") // duplicate: no write
	e.SetText("x")
	if got := e.Revision(); got != 3 {
		t.Errorf("Revision() = %d, want 3", got)
	}

	before := e.Revision()
	_, _ = e.Get("transform")
	_ = e.HasClass("person")
	if e.Revision() != before {
		t.Error("reads must not bump the revision")
	}
}

func TestAppendAndDetach(t *testing.T) {
	root := New("svg")
	a := root.Append(New("g"))
	b := root.Append(New("g"))

	if a.Parent() != root || len(root.Children) != 2 {
		t.Fatalf("Append did not attach children")
	}

	a.Detach()
	if a.Parent() != nil {
		t.Error("detached element should have no parent")
	}
	if len(root.Children) != 1 || root.Children[0] != b {
		t.Errorf("Children after Detach = %v", root.Children)
	}

	// Re-appending moves the element.
	other := New("g")
	other.Append(b)
	if len(root.Children) != 0 || b.Parent() != other {
		t.Error("Append should move the child from its old parent")
	}

	// Detaching an orphan is harmless.
	New("g").Detach()
}

func TestReplaceKeepsPosition(t *testing.T) {
	root := New("svg")
	a := root.Append(New("style"))
	old := root.Append(New("g"))
	b := root.Append(New("desc"))
	next := New("g").Set("id", "next")

	old.Replace(next)

	if len(root.Children) != 3 || root.Children[1] != next {
		t.Fatalf("Children = %v, want next at index 1", root.Children)
	}
	if root.Children[0] != a || root.Children[2] != b {
		t.Error("siblings moved")
	}
	if old.Parent() != nil {
		t.Error("replaced element should be detached")
	}
	if next.Parent() != root {
		t.Error("next.Parent() should be root")
	}
}

func TestReplaceAfterChildrenEdited(t *testing.T) {
	root := New("svg")
	old := root.Append(New("g"))
	other := root.Append(New("desc"))
	root.Children = []*Element{other}
	next := New("g")

	old.Replace(next)

	if len(root.Children) != 1 || root.Children[0] != other {
		t.Errorf("Children = %v, want only desc", root.Children)
	}
	if old.Parent() != nil || next.Parent() != nil {
		t.Error("old and next should both be detached")
	}
}

func TestCloneIsDeep(t *testing.T) {
	root := New("svg").Set("width", "10").AddClass("a")
	root.Append(New("circle").Set("r", "4"))

	c := root.Clone()
	c.Set("width", "20")
	c.Children[0].Set("r", "8")

	if v, _ := root.Get("width"); v != "10" {
		t.Errorf("original width = %q, want 10", v)
	}
	if v, _ := root.Children[0].Get("r"); v != "4" {
		t.Errorf("original child r = %q, want 4", v)
	}
	if c.Parent() != nil || c.Children[0].Parent() != c {
		t.Error("clone parent links are wrong")
	}
}

func TestFindAll(t *testing.T) {
	root := New("g")
	p := root.Append(New("g").AddClass("person"))
	p.Append(New("circle"))
	p.Append(New("text").AddClass("name"))
	root.Append(New("g").AddClass("person"))

	if got := len(root.FindAll(ByClass("person"))); got != 2 {
		t.Errorf("persons = %d, want 2", got)
	}
	if got := len(root.FindAll(ByTag("circle"))); got != 1 {
		t.Errorf("circles = %d, want 1", got)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{20, "20"},
		{-26, "-26"},
		{0.5, "0.5"},
		{1e21, "1000000000000000000000"},
		{400, "400"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeSVG(t *testing.T) {
	root := NewRoot().Set("width", "100px")
	g := root.Append(New("g").Set("transform", "translate(50, 50)"))
	g.Append(New("circle").SetFloat("r", 20))
	g.Append(New("text").AddClass("name").SetText(`Ada <"Countess"> & co`))

	out := string(MarshalSVG(root))

	want := []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="100px">`,
		`  <g transform="translate(50, 50)">`,
		`    <circle r="20"/>`,
		`    <text class="name">Ada &lt;&#34;Countess&#34;&gt; &amp; co</text>`,
		`  </g>`,
		`</svg>`,
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Errorf("EncodeSVG() output missing %q\nGot:\n%s", line, out)
		}
	}
}

func TestEncodeSVGEscapesAttributes(t *testing.T) {
	e := New("text").Set("data-name", `a"b<c`)
	out := string(MarshalSVG(e))
	if !strings.Contains(out, `data-name="a&#34;b&lt;c"`) {
		t.Errorf("attribute not escaped: %s", out)
	}
}

func TestEncodeSVGStyleCDATA(t *testing.T) {
	e := New("style").SetText(".person > circle { fill: red; }")
	out := string(MarshalSVG(e))
	if !strings.Contains(out, "<![CDATA[.person > circle { fill: red; }]]>") {
		t.Errorf("style should be wrapped in CDATA: %s", out)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	root := NewRoot().Set("width", "10px").Set("height", "10px")
	g := root.Append(New("g").AddClass("person").AddClass("root"))
	g.Append(New("text").Set("x", "0").SetText("Ada"))

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, root); err != nil {
		t.Fatalf("EncodeJSON() error: %v", err)
	}
	got, err := DecodeJSON(&buf)
	if err != nil {
		t.Fatalf("DecodeJSON() error: %v", err)
	}

	if !bytes.Equal(MarshalSVG(got), MarshalSVG(root)) {
		t.Errorf("round trip changed markup:\n%s\nvs\n%s", MarshalSVG(got), MarshalSVG(root))
	}
	if got.Children[0].Parent() != got {
		t.Error("decoded children should link to their parent")
	}
}
