// Package layout holds a precomputed radial placement of a family tree:
// where each person sits, which way their branch points, and the connector
// shapes ("scaffolding") drawn between them.
//
// Layouts are produced by an external layout engine and are read-only to
// renderers. Positions iterate in insertion order so that rendering the
// same layout always yields the same document.
package layout

import (
	"slices"

	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
)

// Layout is a positioned family tree.
type Layout struct {
	// Scaffolding is the ordered connector sequence; order is draw order.
	Scaffolding []geom.Shape
	// PersonRadius is the radius of every person marker.
	PersonRadius float64
	// Root is the designated root person, drawn with centred labels.
	Root *family.Person

	order     []*family.Person
	positions map[*family.Person]geom.Vec
	rotations map[*family.Person]float64
}

// New returns an empty layout with the given marker radius.
func New(personRadius float64) *Layout {
	return &Layout{
		PersonRadius: personRadius,
		positions:    make(map[*family.Person]geom.Vec),
		rotations:    make(map[*family.Person]float64),
	}
}

// Place sets both position and rotation (radians) of p.
func (l *Layout) Place(p *family.Person, pos geom.Vec, rotation float64) {
	l.SetPosition(p, pos)
	l.SetRotation(p, rotation)
}

// SetPosition sets p's position. The first call for a person fixes its
// place in iteration order.
func (l *Layout) SetPosition(p *family.Person, pos geom.Vec) {
	l.init()
	if _, ok := l.positions[p]; !ok {
		l.order = append(l.order, p)
	}
	l.positions[p] = pos
}

// SetRotation sets p's rotation in radians.
func (l *Layout) SetRotation(p *family.Person, rotation float64) {
	l.init()
	l.rotations[p] = rotation
}

// AddShape appends a connector to the scaffolding.
func (l *Layout) AddShape(s geom.Shape) {
	l.Scaffolding = append(l.Scaffolding, s)
}

// People returns every positioned person in insertion order. The slice is a
// copy.
func (l *Layout) People() []*family.Person {
	return slices.Clone(l.order)
}

// Len returns the number of positioned persons.
func (l *Layout) Len() int { return len(l.order) }

// Position returns p's position.
func (l *Layout) Position(p *family.Person) (geom.Vec, bool) {
	v, ok := l.positions[p]
	return v, ok
}

// Rotation returns p's rotation in radians.
func (l *Layout) Rotation(p *family.Person) (float64, bool) {
	r, ok := l.rotations[p]
	return r, ok
}

// Person looks a positioned person up by ID.
func (l *Layout) Person(id string) (*family.Person, bool) {
	for _, p := range l.order {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (l *Layout) init() {
	if l.positions == nil {
		l.positions = make(map[*family.Person]geom.Vec)
	}
	if l.rotations == nil {
		l.rotations = make(map[*family.Person]float64)
	}
}
