package radial

import (
	"bytes"
	"math"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

// threeGenerations builds a small layout: a root with a child and a
// grandchild, placed on both sides of the root.
func threeGenerations() *layout.Layout {
	root := &family.Person{ID: "r", FirstName: "Root", Birth: "1900", Deceased: true, Gender: family.GenderMale}
	child := &family.Person{ID: "c", FirstName: "Child", Birth: "1930", Gender: family.GenderFemale}
	grand := &family.Person{ID: "g", FirstName: "Grand", Birth: "2020", Child: true}

	l := layout.New(20)
	l.Root = root
	l.Place(root, geom.V(0, 0), 0)
	l.Place(child, geom.V(100, 0), 0)
	l.Place(grand, geom.V(-200, 0), math.Pi)
	l.AddShape(geom.Line{From: geom.V(0, 0), To: geom.V(100, 0)})
	l.AddShape(geom.Arc{From: geom.V(100, 0), To: geom.V(-100, 0), R: 100, FromAngle: 0, ToAngle: math.Pi})
	l.AddShape(geom.Line{From: geom.V(-100, 0), To: geom.V(-200, 0)})
	return l
}

func mustNew(t *testing.T, w, h float64, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(w, h, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func encode(t *testing.T, e *scene.Element) string {
	t.Helper()
	var buf bytes.Buffer
	if err := scene.EncodeSVG(&buf, e); err != nil {
		t.Fatalf("EncodeSVG: %v", err)
	}
	return buf.String()
}

func TestNewInitialState(t *testing.T) {
	r := mustNew(t, 800, 600)

	if r.Dirty() {
		t.Error("new renderer should be clean")
	}
	if r.Scale() != 1 || r.Offset() != (geom.Vec{}) || r.Layout() != nil {
		t.Errorf("initial state = scale %v offset %v layout %v", r.Scale(), r.Offset(), r.Layout())
	}
	if w, h := r.Size(); w != 800 || h != 600 {
		t.Errorf("Size() = %v, %v", w, h)
	}
	if got := attr(t, r.Element(), "width"); got != "800px" {
		t.Errorf("width = %q, want 800px", got)
	}
	if got := attr(t, r.Element(), "height"); got != "600px" {
		t.Errorf("height = %q, want 600px", got)
	}
	if got := attr(t, r.container, "transform"); got != "translate(400, 300) translate(0, 0) scale(1, 1)" {
		t.Errorf("transform = %q", got)
	}
	if r.container.Parent() != r.Element() {
		t.Error("container should be attached to the root element")
	}
}

func TestNewRejectsInvalidSize(t *testing.T) {
	for _, sz := range [][2]float64{{-1, 10}, {10, math.NaN()}, {math.Inf(1), 1}} {
		if _, err := New(sz[0], sz[1]); !errors.Is(err, errors.ErrCodeInvalidView) {
			t.Errorf("New(%v, %v) err = %v, want INVALID_VIEW", sz[0], sz[1], err)
		}
	}
}

func TestRenderWithoutLayout(t *testing.T) {
	r := mustNew(t, 100, 100)
	if err := r.Render(); !errors.Is(err, errors.ErrCodeNoLayout) {
		t.Errorf("Render() err = %v, want NO_LAYOUT", err)
	}
}

func TestSetLayoutDirtiesOnlyOnChange(t *testing.T) {
	r := mustNew(t, 100, 100)
	l := threeGenerations()

	r.SetLayout(l)
	if !r.Dirty() {
		t.Fatal("SetLayout with a new layout should mark dirty")
	}
	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.Dirty() {
		t.Fatal("Render should leave the renderer clean")
	}

	r.SetLayout(l)
	if r.Dirty() {
		t.Error("SetLayout with the same pointer should not mark dirty")
	}
	r.SetLayout(threeGenerations())
	if !r.Dirty() {
		t.Error("SetLayout with a different pointer should mark dirty")
	}
}

func TestRenderBuildsScene(t *testing.T) {
	r := mustNew(t, 800, 600)
	l := threeGenerations()
	r.SetLayout(l)
	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	g := r.container
	if g.Parent() != r.Element() {
		t.Fatal("rebuilt group is not attached")
	}
	if got := attr(t, g, "transform"); got != r.View().String() {
		t.Errorf("transform = %q, want %q", got, r.View().String())
	}
	if g.Children[0].Tag != "path" {
		t.Errorf("first child = <%s>, want the scaffold path", g.Children[0].Tag)
	}

	nodes := g.FindAll(scene.ByClass("person"))
	if len(nodes) != l.Len() {
		t.Fatalf("rendered %d person groups, want %d", len(nodes), l.Len())
	}
	for i, p := range l.People() {
		if got := nodes[i].Children[1].Text; got != p.FullName() {
			t.Errorf("node %d name = %q, want %q", i, got, p.FullName())
		}
	}
	if roots := g.FindAll(scene.ByClass("root")); len(roots) != 1 {
		t.Errorf("found %d root nodes, want 1", len(roots))
	}

	svg := encode(t, r.Element())
	for _, want := range []string{
		`d="M 0 0 L 100 0 M 100 0 A 100 100 0 0 1 -100 0 M -100 0 L -200 0"`,
		`class="person deceased sex-male root"`,
		`class="person sex-other infant"`,
		`transform="translate(-200, 0) rotate(0)"`,
		`text-anchor="end"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %s", want)
		}
	}
}

func TestRenderCleanIsNoop(t *testing.T) {
	r := mustNew(t, 400, 400)
	r.SetLayout(threeGenerations())
	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	g := r.container
	rev := g.Revision()
	first := encode(t, r.Element())

	if err := r.Render(); err != nil {
		t.Fatalf("second Render: %v", err)
	}
	if r.container != g {
		t.Error("clean Render replaced the drawing group")
	}
	if g.Revision() != rev {
		t.Error("clean Render wrote to the drawing group")
	}
	if second := encode(t, r.Element()); second != first {
		t.Error("clean Render changed the document")
	}
}

func TestRenderDirtyReplacesGroup(t *testing.T) {
	r := mustNew(t, 400, 400, WithStyleSheet(DefaultStyleSheet))
	r.SetLayout(threeGenerations())
	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	old := r.container

	r.SetLayout(threeGenerations())
	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.container == old {
		t.Fatal("dirty Render should build a new group")
	}
	if old.Parent() != nil {
		t.Error("old group still attached")
	}
	kids := r.Element().Children
	if len(kids) != 2 || kids[0].Tag != "style" || kids[1] != r.container {
		t.Errorf("root children = %d, want style then the drawing group", len(kids))
	}
}

func TestRenderFailureKeepsPreviousScene(t *testing.T) {
	r := mustNew(t, 400, 400)
	r.SetLayout(threeGenerations())
	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	old := r.container

	broken := threeGenerations()
	broken.SetPosition(&family.Person{ID: "orphan"}, geom.V(1, 1))
	r.SetLayout(broken)

	if err := r.Render(); !errors.Is(err, errors.ErrCodeMissingPlacement) {
		t.Fatalf("Render err = %v, want MISSING_PLACEMENT", err)
	}
	if r.container != old || old.Parent() != r.Element() {
		t.Error("failed Render should keep the previous group attached")
	}
	if !r.Dirty() {
		t.Error("failed Render should leave the renderer dirty")
	}

	bad := threeGenerations()
	bad.Scaffolding = append(bad.Scaffolding, nil)
	r.SetLayout(bad)
	if err := r.Render(); !errors.Is(err, errors.ErrCodeUnknownShape) {
		t.Errorf("Render err = %v, want UNKNOWN_SHAPE", err)
	}
}

func TestSetSizeSameIsNoWrite(t *testing.T) {
	r := mustNew(t, 800, 600)
	g, root := r.container, r.Element()
	gRev, rootRev := g.Revision(), root.Revision()

	if err := r.SetSize(800, 600+geom.Epsilon/10); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	if g.Revision() != gRev || root.Revision() != rootRev {
		t.Error("SetSize with the current size wrote attributes")
	}

	if err := r.SetSize(1024, 768); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	if got := attr(t, g, "transform"); got != "translate(512, 384) translate(0, 0) scale(1, 1)" {
		t.Errorf("transform = %q", got)
	}
	if got := attr(t, root, "width"); got != "1024px" {
		t.Errorf("width = %q", got)
	}
}

func TestViewSettersRewriteTransform(t *testing.T) {
	r := mustNew(t, 200, 100)
	r.SetLayout(threeGenerations())
	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	g := r.container

	if err := r.SetScale(2); err != nil {
		t.Fatalf("SetScale: %v", err)
	}
	if err := r.SetOffset(geom.V(-5, 7.5)); err != nil {
		t.Fatalf("SetOffset: %v", err)
	}
	if r.container != g {
		t.Error("view changes should not rebuild the scene")
	}
	if r.Dirty() {
		t.Error("view changes should not mark dirty")
	}
	if got := attr(t, g, "transform"); got != "translate(100, 50) translate(-5, 7.5) scale(2, 2)" {
		t.Errorf("transform = %q", got)
	}
}

func TestViewSettersRejectInvalid(t *testing.T) {
	r := mustNew(t, 200, 100)
	before := r.View()

	for _, s := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := r.SetScale(s); !errors.Is(err, errors.ErrCodeInvalidView) {
			t.Errorf("SetScale(%v) err = %v, want INVALID_VIEW", s, err)
		}
	}
	if err := r.SetOffset(geom.V(math.NaN(), 0)); !errors.Is(err, errors.ErrCodeInvalidView) {
		t.Errorf("SetOffset(NaN) err = %v", err)
	}
	if err := r.SetSize(-5, 5); !errors.Is(err, errors.ErrCodeInvalidView) {
		t.Errorf("SetSize(-5, 5) err = %v", err)
	}
	if r.View() != before {
		t.Errorf("view changed to %v after rejected updates", r.View())
	}
}

func TestRendererPublicSurface(t *testing.T) {
	want := []string{
		"Dirty", "Element", "Layout", "Offset", "Render", "Scale",
		"SetLayout", "SetOffset", "SetScale", "SetSize", "Size", "View",
	}
	typ := reflect.TypeOf(&Renderer{})
	var got []string
	for i := 0; i < typ.NumMethod(); i++ {
		got = append(got, typ.Method(i).Name)
	}
	if !slices.Equal(got, want) {
		t.Errorf("Renderer methods = %v, want %v", got, want)
	}
}
