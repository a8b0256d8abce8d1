package radial

import (
	"fmt"
	"math"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

// TextPadding is the gap between a marker's edge and its labels.
const TextPadding = 6

// Label anchors and baselines.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"

	BaselineAbove = "text-after-edge"  // text sits above the anchor point
	BaselineBelow = "text-before-edge" // text hangs below the anchor point
)

// Placement is the resolved drawing geometry of one person node.
type Placement struct {
	Position   geom.Vec
	Rotation   float64 // normalized into [0, 2π)
	TextOnLeft bool
	Degrees    float64 // rotation actually drawn, in degrees
	IsRoot     bool
	LabelX     float64
	LabelY     float64
	Anchor     string
}

// TextOnLeft reports whether a node rotated by rotation radians points left
// of vertical and must have its labels flipped.
func TextOnLeft(rotation float64) bool {
	r := geom.NormalizeRad(rotation)
	return r > math.Pi/2 && r < 3*math.Pi/2
}

// Place resolves the placement of p in l.
func Place(l *layout.Layout, p *family.Person) (Placement, error) {
	pos, ok := l.Position(p)
	if !ok {
		return Placement{}, errors.New(errors.ErrCodeMissingPlacement, "no position for person %q", p.ID)
	}
	rot, ok := l.Rotation(p)
	if !ok {
		return Placement{}, errors.New(errors.ErrCodeMissingPlacement, "no rotation for person %q", p.ID)
	}

	pl := Placement{
		Position: pos,
		Rotation: geom.NormalizeRad(rot),
		IsRoot:   p == l.Root,
	}
	pl.TextOnLeft = TextOnLeft(pl.Rotation)

	drawn := pl.Rotation
	if pl.TextOnLeft {
		drawn -= math.Pi
	}
	pl.Degrees = geom.RadToDeg(drawn)

	r := l.PersonRadius
	switch {
	case pl.IsRoot:
		pl.LabelX, pl.LabelY, pl.Anchor = 0, r, AnchorMiddle
	case pl.TextOnLeft:
		pl.LabelX, pl.LabelY, pl.Anchor = -r-TextPadding, 0, AnchorEnd
	default:
		pl.LabelX, pl.LabelY, pl.Anchor = r+TextPadding, 0, AnchorStart
	}
	return pl, nil
}

// Classes returns the CSS classes of a person node: "person", then
// "deceased", one sex class, "infant" and "root" as they apply.
func Classes(p *family.Person, isRoot bool) []string {
	classes := personClasses(p.Gender, p.IsChild(), p.Deceased)
	if isRoot {
		classes = append(classes, "root")
	}
	return classes
}

func personClasses(g family.Gender, child, deceased bool) []string {
	classes := []string{"person"}
	if deceased {
		classes = append(classes, "deceased")
	}
	switch g {
	case family.GenderMale:
		classes = append(classes, "sex-male")
	case family.GenderFemale:
		classes = append(classes, "sex-female")
	default:
		classes = append(classes, "sex-other")
	}
	if child {
		classes = append(classes, "infant")
	}
	return classes
}

// RenderPerson appends the node group of p to container.
func RenderPerson(container *scene.Element, l *layout.Layout, p *family.Person) error {
	pl, err := Place(l, p)
	if err != nil {
		return err
	}

	g := scene.New("g").Set("transform", fmt.Sprintf("translate(%s, %s) rotate(%s)",
		scene.FormatFloat(pl.Position.X), scene.FormatFloat(pl.Position.Y), scene.FormatFloat(pl.Degrees)))
	for _, c := range Classes(p, pl.IsRoot) {
		g.AddClass(c)
	}

	g.Append(scene.New("circle").SetFloat("r", l.PersonRadius))
	g.Append(label("name", p.FullName(), pl.LabelX, pl.LabelY, pl.Anchor, BaselineAbove))
	g.Append(label("dates", p.Dates(), pl.LabelX, pl.LabelY, pl.Anchor, BaselineBelow))

	container.Append(g)
	return nil
}

func label(class, text string, x, y float64, anchor, baseline string) *scene.Element {
	return scene.New("text").
		SetFloat("x", x).
		SetFloat("y", y).
		Set("text-anchor", anchor).
		Set("dominant-baseline", baseline).
		AddClass(class).
		SetText(text)
}
