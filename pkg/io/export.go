package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/layout"
)

const (
	shapeLine   = "line"
	shapeArc    = "arc"
	shapeBezier = "bezier"
)

type document struct {
	PersonRadius float64  `json:"person_radius"`
	Root         string   `json:"root,omitempty"`
	Persons      []person `json:"persons"`
	Scaffolding  []shape  `json:"scaffolding"`
}

type person struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Birth     string    `json:"birth,omitempty"`
	Death     string    `json:"death,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Deceased  bool      `json:"deceased,omitempty"`
	Child     bool      `json:"child,omitempty"`
	Position  *geom.Vec `json:"position,omitempty"`
	Rotation  *float64  `json:"rotation,omitempty"`
}

type shape struct {
	Type      string   `json:"type"`
	From      geom.Vec `json:"from"`
	To        geom.Vec `json:"to"`
	CP        geom.Vec `json:"cp,omitzero"`
	R         float64  `json:"r,omitempty"`
	FromAngle float64  `json:"from_angle,omitempty"`
	ToAngle   float64  `json:"to_angle,omitempty"`
}

// WriteJSON encodes l as an indented layout document and writes it to w.
func WriteJSON(l *layout.Layout, w io.Writer) error {
	doc := document{
		PersonRadius: l.PersonRadius,
		Persons:      make([]person, 0, l.Len()),
		Scaffolding:  make([]shape, 0, len(l.Scaffolding)),
	}
	if l.Root != nil {
		doc.Root = l.Root.ID
	}

	for _, p := range l.People() {
		pd := person{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Birth:     p.Birth,
			Death:     p.Death,
			Deceased:  p.Deceased,
			Child:     p.Child,
		}
		if p.Gender != family.GenderOther {
			pd.Gender = p.Gender.String()
		}
		if pos, ok := l.Position(p); ok {
			pd.Position = &pos
		}
		if rot, ok := l.Rotation(p); ok {
			pd.Rotation = &rot
		}
		doc.Persons = append(doc.Persons, pd)
	}

	for i, s := range l.Scaffolding {
		switch s := s.(type) {
		case geom.Line:
			doc.Scaffolding = append(doc.Scaffolding, shape{Type: shapeLine, From: s.From, To: s.To})
		case geom.Arc:
			doc.Scaffolding = append(doc.Scaffolding, shape{Type: shapeArc, From: s.From, To: s.To,
				R: s.R, FromAngle: s.FromAngle, ToAngle: s.ToAngle})
		case geom.Bezier:
			doc.Scaffolding = append(doc.Scaffolding, shape{Type: shapeBezier, From: s.From, To: s.To, CP: s.CP})
		default:
			return errors.New(errors.ErrCodeUnknownShape, "scaffolding[%d]: unknown shape %T", i, s)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

// ExportJSON writes l to a JSON file at path.
func ExportJSON(l *layout.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(l, f)
}
