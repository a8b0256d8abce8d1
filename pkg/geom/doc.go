// Package geom provides the small set of 2D geometry primitives the radial
// renderer is built on.
//
// # Vectors and angles
//
// [Vec] is a plain value type for points and offsets. Angles are radians
// unless a function name says otherwise; [NormalizeRad] folds any angle into
// [0, 2π) and [RadToDeg] converts for SVG rotate() attributes.
//
// # Connector shapes
//
// [Shape] is a closed variant implemented only by [Line], [Arc] and
// [Bezier]. Code that consumes shapes switches over the three concrete types
// and treats anything else as a contract violation:
//
//	switch s := shape.(type) {
//	case geom.Line:
//	case geom.Arc:
//	case geom.Bezier:
//	default:
//	    return fmt.Errorf("unknown shape %T", s)
//	}
//
// # Affine transforms
//
// [Matrix] is a 2D affine matrix with SVG composition semantics: the
// transform list "A B" maps a point p to A(B(p)).
package geom
