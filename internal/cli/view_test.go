package cli

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/io"
	"github.com/matzehuels/kintree/pkg/render/radial"
)

type recordedWrites struct {
	last []byte
	n    int
}

func newTestViewModel(t *testing.T) (viewModel, *recordedWrites) {
	t.Helper()
	l, err := io.ReadJSON(strings.NewReader(testLayout))
	if err != nil {
		t.Fatal(err)
	}
	r, err := radial.New(200, 100)
	if err != nil {
		t.Fatal(err)
	}
	rec := &recordedWrites{}
	m := viewModel{renderer: r, layout: l, output: "view.svg", initScale: 1,
		write: func(_ string, data []byte) error {
			rec.last = bytes.Clone(data)
			rec.n++
			return nil
		}}
	r.SetLayout(l)
	if err := m.flush(); err != nil {
		t.Fatal(err)
	}
	return m, rec
}

func press(t *testing.T, m viewModel, keys ...tea.KeyMsg) viewModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(viewModel)
		if m.err != nil {
			t.Fatalf("key %s: %v", k, m.err)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestViewModelPanAndZoom(t *testing.T) {
	m, rec := newTestViewModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.renderer.Offset(); got != geom.V(-panStep, -panStep) {
		t.Errorf("offset = %v, want (-%v, -%v)", got, panStep, panStep)
	}

	m = press(t, m, runes("+"))
	if got := m.renderer.Scale(); got != zoomFactor {
		t.Errorf("scale = %v, want %v", got, zoomFactor)
	}
	if !strings.Contains(string(rec.last), "translate(100, 50) translate(-40, -40) scale(1.25, 1.25)") {
		t.Errorf("written svg does not carry the current view:\n%s", rec.last)
	}
	if rec.n != 4 || m.writes != 3 {
		t.Errorf("writes = %d (model %d), want 4 (model 3)", rec.n, m.writes)
	}

	m = press(t, m, runes("0"))
	if m.renderer.Scale() != 1 || m.renderer.Offset() != (geom.Vec{}) {
		t.Errorf("reset view = %v @ %v", m.renderer.Offset(), m.renderer.Scale())
	}
}

func TestViewModelZoomClamped(t *testing.T) {
	m, _ := newTestViewModel(t)
	for range 40 {
		m = press(t, m, runes("-"))
	}
	if m.renderer.Scale() < minScale {
		t.Errorf("scale %v below minimum %v", m.renderer.Scale(), minScale)
	}
}

func TestViewModelQuitAndIgnoredKeys(t *testing.T) {
	m, rec := newTestViewModel(t)
	before := rec.n

	if _, cmd := m.Update(runes("z")); cmd != nil || rec.n != before {
		t.Error("unbound key should be ignored")
	}
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Error("q should quit")
	}
}

func TestViewModelView(t *testing.T) {
	m, _ := newTestViewModel(t)
	out := m.View()
	for _, want := range []string{"view.svg", "200 × 100", "persons", "q quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
}
