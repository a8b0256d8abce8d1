package radial

import (
	"math"
	"strings"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

// ScaffoldStroke is the stroke colour of the connector path.
const ScaffoldStroke = "gray"

// ScaffoldPath builds the single <path> element drawing every connector in
// order. It fails on an unknown shape without producing a partial path.
func ScaffoldPath(shapes []geom.Shape) (*scene.Element, error) {
	d, err := PathData(shapes)
	if err != nil {
		return nil, err
	}
	return scene.New("path").
		Set("d", d).
		Set("fill", "none").
		Set("stroke", ScaffoldStroke).
		AddClass("scaffolding"), nil
}

// PathData returns the path "d" attribute for shapes.
//
//	Line:   M fx fy L tx ty
//	Arc:    M fx fy A r r 0 large 1 tx ty
//	Bezier: M fx fy Q cx cy tx ty
func PathData(shapes []geom.Shape) (string, error) {
	var b strings.Builder
	for i, s := range shapes {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch s := s.(type) {
		case geom.Line:
			writeCmd(&b, 'M', s.From.X, s.From.Y)
			writeCmd(&b, 'L', s.To.X, s.To.Y)
		case geom.Arc:
			large := 0.0
			if IsLargeArc(s) {
				large = 1
			}
			writeCmd(&b, 'M', s.From.X, s.From.Y)
			writeCmd(&b, 'A', s.R, s.R, 0, large, 1, s.To.X, s.To.Y)
		case geom.Bezier:
			writeCmd(&b, 'M', s.From.X, s.From.Y)
			writeCmd(&b, 'Q', s.CP.X, s.CP.Y, s.To.X, s.To.Y)
		default:
			return "", errors.New(errors.ErrCodeUnknownShape, "scaffolding[%d]: unknown shape %T", i, s)
		}
	}
	return b.String(), nil
}

// IsLargeArc reports whether the arc spans more than half a turn. Arcs are
// always drawn with a positive sweep, so this alone picks which of the two
// candidate arcs is drawn.
func IsLargeArc(a geom.Arc) bool {
	return a.Sweep() > math.Pi
}

func writeCmd(b *strings.Builder, cmd byte, args ...float64) {
	if b.Len() > 0 && cmd != 'M' {
		b.WriteByte(' ')
	}
	b.WriteByte(cmd)
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(scene.FormatFloat(a))
	}
}
