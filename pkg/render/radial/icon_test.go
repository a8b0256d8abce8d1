package radial

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

func TestPersonIcon(t *testing.T) {
	svg, err := PersonIcon(20, family.GenderFemale, true, true)
	if err != nil {
		t.Fatalf("PersonIcon: %v", err)
	}
	if svg.Tag != "svg" {
		t.Fatalf("Tag = %q, want svg", svg.Tag)
	}
	if attr(t, svg, "width") != "22" || attr(t, svg, "height") != "22" {
		t.Errorf("size = %sx%s, want 22x22", attr(t, svg, "width"), attr(t, svg, "height"))
	}

	circles := svg.FindAll(scene.ByTag("circle"))
	if len(circles) != 1 {
		t.Fatalf("found %d circles, want 1", len(circles))
	}
	c := circles[0]
	for name, want := range map[string]string{"cx": "11", "cy": "11", "r": "10"} {
		if got := attr(t, c, name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if got := strings.Join(c.Classes, " "); got != "person deceased sex-female infant" {
		t.Errorf("classes = %q", got)
	}
}

func TestPersonIconInvalidSize(t *testing.T) {
	for _, size := range []float64{0, -4, math.NaN()} {
		if _, err := PersonIcon(size, family.GenderOther, false, false); !errors.Is(err, errors.ErrCodeInvalidView) {
			t.Errorf("PersonIcon(%v) err = %v, want INVALID_VIEW", size, err)
		}
	}
}
