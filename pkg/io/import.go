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

// ReadJSON decodes a layout document from r. See the package
// documentation for the format. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*layout.Layout, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "decode")
	}
	return doc.toLayout()
}

// ImportJSON reads a layout document from the file at path.
func ImportJSON(path string) (*layout.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

func (d *document) toLayout() (*layout.Layout, error) {
	if !geom.IsFinite(d.PersonRadius) || d.PersonRadius <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "person_radius must be a finite number > 0, got %v", d.PersonRadius)
	}

	l := layout.New(d.PersonRadius)
	seen := make(map[string]bool, len(d.Persons))
	for i, pd := range d.Persons {
		if err := errors.ValidatePersonID(pd.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "persons[%d]", i)
		}
		if seen[pd.ID] {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "persons[%d]: duplicate id %q", i, pd.ID)
		}
		seen[pd.ID] = true

		p := &family.Person{
			ID:        pd.ID,
			FirstName: pd.FirstName,
			LastName:  pd.LastName,
			Birth:     pd.Birth,
			Death:     pd.Death,
			Gender:    family.ParseGender(pd.Gender),
			Deceased:  pd.Deceased,
			Child:     pd.Child,
		}
		if pd.Position == nil {
			continue
		}
		if !pd.Position.IsFinite() {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "person %s: non-finite position", pd.ID)
		}
		l.SetPosition(p, *pd.Position)
		if pd.Rotation != nil {
			if !geom.IsFinite(*pd.Rotation) {
				return nil, errors.New(errors.ErrCodeInvalidLayout, "person %s: non-finite rotation", pd.ID)
			}
			l.SetRotation(p, *pd.Rotation)
		}
	}

	if d.Root != "" {
		root, ok := l.Person(d.Root)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "root %q is not a positioned person", d.Root)
		}
		l.Root = root
	}

	for i, sd := range d.Scaffolding {
		s, err := sd.toShape()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLayout, err, "scaffolding[%d]", i)
		}
		l.AddShape(s)
	}
	return l, nil
}

func (s shape) toShape() (geom.Shape, error) {
	for _, v := range []geom.Vec{s.From, s.To, s.CP} {
		if !v.IsFinite() {
			return nil, errors.New(errors.ErrCodeInvalidLayout, "non-finite point")
		}
	}
	switch s.Type {
	case shapeLine:
		return geom.Line{From: s.From, To: s.To}, nil
	case shapeArc:
		for _, f := range []float64{s.R, s.FromAngle, s.ToAngle} {
			if !geom.IsFinite(f) {
				return nil, errors.New(errors.ErrCodeInvalidLayout, "non-finite arc parameter")
			}
		}
		return geom.Arc{From: s.From, To: s.To, R: s.R, FromAngle: s.FromAngle, ToAngle: s.ToAngle}, nil
	case shapeBezier:
		return geom.Bezier{From: s.From, To: s.To, CP: s.CP}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnknownShape, "unknown shape type %q", s.Type)
	}
}
