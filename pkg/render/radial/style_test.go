package radial

import (
	"strings"
	"testing"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

func TestApplyPresentation(t *testing.T) {
	r := mustNew(t, 400, 400)
	r.SetLayout(threeGenerations())
	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	ApplyPresentation(r.Element())

	nodes := r.container.FindAll(scene.ByClass("person"))
	want := []struct{ fill, width, dash string }{
		{"#a8cdf0", "3", "3,2"}, // deceased male root
		{"#f4b8c5", "1.5", ""},  // female
		{"#d9d9d9", "1.5", ""},  // infant, other
	}
	for i, node := range nodes {
		c := node.Children[0]
		if got, _ := c.Get("fill"); got != want[i].fill {
			t.Errorf("node %d fill = %q, want %q", i, got, want[i].fill)
		}
		if got, _ := c.Get("stroke-width"); got != want[i].width {
			t.Errorf("node %d stroke-width = %q, want %q", i, got, want[i].width)
		}
		if got, _ := c.Get("stroke-dasharray"); got != want[i].dash {
			t.Errorf("node %d dasharray = %q, want %q", i, got, want[i].dash)
		}
	}
	if got, _ := nodes[2].Children[0].Get("stroke"); got != "#999" {
		t.Errorf("infant stroke = %q, want #999", got)
	}
}

func TestApplyPresentationIcon(t *testing.T) {
	icon, err := PersonIcon(12, family.GenderMale, false, false)
	if err != nil {
		t.Fatal(err)
	}
	ApplyPresentation(icon)
	if svg := string(scene.MarshalSVG(icon)); !strings.Contains(svg, `fill="#a8cdf0"`) {
		t.Errorf("icon not painted:\n%s", svg)
	}
}

func TestStyleElement(t *testing.T) {
	svg := string(scene.MarshalSVG(StyleElement(DefaultStyleSheet)))
	if !strings.Contains(svg, "<style><![CDATA[") || !strings.Contains(svg, ".person.sex-male circle") {
		t.Errorf("unexpected style element:\n%s", svg)
	}
}
