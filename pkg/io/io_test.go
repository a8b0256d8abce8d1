package io

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
)

const sample = `{
  "person_radius": 20,
  "root": "ada",
  "persons": [
    {"id": "ada", "first_name": "Ada", "last_name": "Lovelace", "birth": "1815", "death": "1852",
     "deceased": true, "gender": "female", "position": {"x": 0, "y": 0}, "rotation": 0},
    {"id": "byron", "first_name": "Byron", "gender": "M", "position": {"x": -100, "y": 0}, "rotation": 3.14159},
    {"id": "ghost", "first_name": "Unplaced"}
  ],
  "scaffolding": [
    {"type": "line", "from": {"x": 0, "y": 0}, "to": {"x": -50, "y": 0}},
    {"type": "arc", "from": {"x": -50, "y": 0}, "to": {"x": 0, "y": 50}, "r": 50, "from_angle": 3.14159, "to_angle": 1.5708},
    {"type": "bezier", "from": {"x": 0, "y": 50}, "to": {"x": -100, "y": 0}, "cp": {"x": -60, "y": 60}}
  ]
}`

func TestReadJSON(t *testing.T) {
	l, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if l.PersonRadius != 20 {
		t.Errorf("PersonRadius = %v, want 20", l.PersonRadius)
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 positioned persons", l.Len())
	}
	if l.Root == nil || l.Root.ID != "ada" {
		t.Fatalf("Root = %v, want ada", l.Root)
	}
	if l.Root != l.People()[0] {
		t.Error("Root should be the positioned person pointer")
	}
	ada := l.Root
	if ada.FullName() != "Ada Lovelace" || ada.Gender != family.GenderFemale || !ada.Deceased {
		t.Errorf("ada = %+v", ada)
	}
	byron := l.People()[1]
	if byron.Gender != family.GenderMale {
		t.Errorf("byron gender = %v, want male", byron.Gender)
	}
	if pos, _ := l.Position(byron); pos != geom.V(-100, 0) {
		t.Errorf("byron position = %v", pos)
	}
	if _, ok := l.Person("ghost"); ok {
		t.Error("unpositioned person should not be placed")
	}

	if len(l.Scaffolding) != 3 {
		t.Fatalf("len(Scaffolding) = %d, want 3", len(l.Scaffolding))
	}
	if _, ok := l.Scaffolding[0].(geom.Line); !ok {
		t.Errorf("Scaffolding[0] = %T, want Line", l.Scaffolding[0])
	}
	if a, ok := l.Scaffolding[1].(geom.Arc); !ok || a.R != 50 || a.ToAngle != 1.5708 {
		t.Errorf("Scaffolding[1] = %#v", l.Scaffolding[1])
	}
	if b, ok := l.Scaffolding[2].(geom.Bezier); !ok || b.CP != geom.V(-60, 60) {
		t.Errorf("Scaffolding[2] = %#v", l.Scaffolding[2])
	}
}

func TestReadJSONPositionWithoutRotation(t *testing.T) {
	l, err := ReadJSON(strings.NewReader(`{"person_radius": 5, "persons": [{"id": "a", "position": {"x": 1, "y": 2}}]}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	p := l.People()[0]
	if _, ok := l.Rotation(p); ok {
		t.Error("rotation should be missing")
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"malformed", `{`, "decode"},
		{"zero radius", `{"persons": []}`, "person_radius"},
		{"empty id", `{"person_radius": 1, "persons": [{"id": ""}]}`, "persons[0]"},
		{"duplicate id", `{"person_radius": 1, "persons": [{"id": "a"}, {"id": "a"}]}`, "duplicate"},
		{"dangling root", `{"person_radius": 1, "root": "x", "persons": [{"id": "x"}]}`, "root"},
		{"unknown shape", `{"person_radius": 1, "scaffolding": [{"type": "spiral"}]}`, "spiral"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Fatalf("err = %v, want INVALID_LAYOUT", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	l, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	var first bytes.Buffer
	if err := WriteJSON(l, &first); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	again, err := ReadJSON(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	var second bytes.Buffer
	if err := WriteJSON(again, &second); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("round trip changed the document:\n%s\n---\n%s", first.String(), second.String())
	}
	if strings.Contains(first.String(), "ghost") {
		t.Error("unpositioned persons are not exported")
	}
}

func TestImportExportFile(t *testing.T) {
	l, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := ExportJSON(l, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.Len() != l.Len() || got.Root.ID != l.Root.ID {
		t.Errorf("imported %d persons root %v", got.Len(), got.Root)
	}

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteJSONNonFiniteRadius(t *testing.T) {
	l, err := ReadJSON(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	l.PersonRadius = math.Inf(1)
	var buf bytes.Buffer
	// encoding/json refuses to encode infinities.
	if err := WriteJSON(l, &buf); err == nil {
		t.Error("WriteJSON should fail on a non-finite radius")
	}
}

func TestImportBundledExample(t *testing.T) {
	l, err := ImportJSON(filepath.Join("..", "..", "examples", "three-generations.json"))
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if l.Len() != 6 || len(l.Scaffolding) != 5 {
		t.Errorf("got %d persons, %d shapes; want 6, 5", l.Len(), len(l.Scaffolding))
	}
	if l.Root == nil || l.Root.ID != "mara" {
		t.Errorf("root = %v, want mara", l.Root)
	}
	if _, ok := l.Scaffolding[2].(geom.Arc); !ok {
		t.Errorf("scaffolding[2] = %T, want geom.Arc", l.Scaffolding[2])
	}
}
