package geom

// Shape is one connector primitive of a layout's scaffolding.
// The set of implementations is closed: Line, Arc and Bezier.
type Shape interface {
	shape()
}

// Line is a straight segment.
type Line struct {
	From, To Vec
}

// Arc is a circular arc of radius R from From to To. FromAngle and ToAngle
// are the polar angles (radians) of the endpoints around the arc's centre.
type Arc struct {
	From, To           Vec
	R                  float64
	FromAngle, ToAngle float64
}

// Bezier is a quadratic curve from From to To through control point CP.
type Bezier struct {
	From, To, CP Vec
}

func (Line) shape()   {}
func (Arc) shape()    {}
func (Bezier) shape() {}

// Sweep returns the arc's angular extent folded into [0, 2π).
func (a Arc) Sweep() float64 {
	return NormalizeRad(a.ToAngle - a.FromAngle)
}
