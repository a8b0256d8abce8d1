package radial

import (
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

// iconPadding is the empty border around a person icon.
const iconPadding = 1

// PersonIcon builds a standalone <svg> person marker of diameter size, for
// legends and list glyphs. The circle carries the same classes as a scene
// node so one style sheet colours both.
func PersonIcon(size float64, gender family.Gender, child, deceased bool) (*scene.Element, error) {
	if !geom.IsFinite(size) || size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidView, "icon size must be a finite number > 0, got %v", size)
	}
	r := size / 2
	outer := size + 2*iconPadding

	svg := scene.NewRoot().
		SetFloat("width", outer).
		SetFloat("height", outer).
		Set("viewBox", "0 0 "+scene.FormatFloat(outer)+" "+scene.FormatFloat(outer))
	circle := svg.Append(scene.New("circle").
		SetFloat("cx", r+iconPadding).
		SetFloat("cy", r+iconPadding).
		SetFloat("r", r))
	for _, c := range personClasses(gender, child, deceased) {
		circle.AddClass(c)
	}
	return svg, nil
}
