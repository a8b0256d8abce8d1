package radial

import (
	"fmt"

	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

// ViewTransform is the pan/zoom state of a viewport.
type ViewTransform struct {
	Width, Height float64
	Offset        geom.Vec
	Scale         float64
}

// String returns the SVG transform list, in the fixed order centre, pan,
// scale.
func (v ViewTransform) String() string {
	f := scene.FormatFloat
	return fmt.Sprintf("translate(%s, %s) translate(%s, %s) scale(%s, %s)",
		f(v.Width/2), f(v.Height/2),
		f(v.Offset.X), f(v.Offset.Y),
		f(v.Scale), f(v.Scale))
}

// Matrix composes the transform list of String with SVG semantics.
func (v ViewTransform) Matrix() geom.Matrix {
	return geom.Translate(v.Width/2, v.Height/2).
		Then(geom.Translate(v.Offset.X, v.Offset.Y)).
		Then(geom.ScaleXY(v.Scale, v.Scale))
}

// Apply maps a layout-space point to viewport coordinates.
func (v ViewTransform) Apply(p geom.Vec) geom.Vec {
	return v.Matrix().Apply(p)
}
