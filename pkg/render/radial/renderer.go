package radial

import (
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyleSheet embeds css in a <style> element ahead of the drawing group.
func WithStyleSheet(css string) Option { return func(r *Renderer) { r.css = css } }

// Renderer keeps an SVG scene in sync with a layout and a view.
//
// Setting a different layout marks the scene dirty; Render then rebuilds
// the drawing group from scratch. View changes only rewrite the group's
// transform. A Renderer is not safe for concurrent use.
type Renderer struct {
	element   *scene.Element
	container *scene.Element
	view      ViewTransform
	layout    *layout.Layout
	dirty     bool
	css       string
}

// New creates a renderer for a width×height viewport with scale 1, zero
// offset and no layout.
func New(width, height float64, opts ...Option) (*Renderer, error) {
	if err := errors.ValidateSize(width, height); err != nil {
		return nil, err
	}
	r := &Renderer{
		element: scene.NewRoot(),
		view:    ViewTransform{Scale: 1},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.css != "" {
		r.element.Append(StyleElement(r.css))
	}
	r.container = r.element.Append(scene.New("g"))
	r.resize(width, height)
	return r, nil
}

// Element returns the root <svg> element.
func (r *Renderer) Element() *scene.Element { return r.element }

// Size returns the viewport size.
func (r *Renderer) Size() (width, height float64) { return r.view.Width, r.view.Height }

// Scale returns the zoom factor.
func (r *Renderer) Scale() float64 { return r.view.Scale }

// Offset returns the pan offset.
func (r *Renderer) Offset() geom.Vec { return r.view.Offset }

// View returns the current view transform.
func (r *Renderer) View() ViewTransform { return r.view }

// Layout returns the layout being drawn, or nil.
func (r *Renderer) Layout() *layout.Layout { return r.layout }

// Dirty reports whether the next Render rebuilds the scene.
func (r *Renderer) Dirty() bool { return r.dirty }

// SetSize resizes the viewport. Sizes equal to the current one within
// [geom.Epsilon] leave the scene untouched.
func (r *Renderer) SetSize(width, height float64) error {
	if err := errors.ValidateSize(width, height); err != nil {
		return err
	}
	if geom.Eq(width, r.view.Width) && geom.Eq(height, r.view.Height) {
		return nil
	}
	r.resize(width, height)
	return nil
}

// SetScale sets the zoom factor.
func (r *Renderer) SetScale(scale float64) error {
	if err := errors.ValidateScale(scale); err != nil {
		return err
	}
	r.view.Scale = scale
	r.applyTransform()
	return nil
}

// SetOffset sets the pan offset.
func (r *Renderer) SetOffset(offset geom.Vec) error {
	if !offset.IsFinite() {
		return errors.New(errors.ErrCodeInvalidView, "offset must be finite, got %v", offset)
	}
	r.view.Offset = offset
	r.applyTransform()
	return nil
}

// SetLayout swaps the layout. The scene becomes dirty only when l is a
// different layout; mutating the current layout in place is not detected.
func (r *Renderer) SetLayout(l *layout.Layout) {
	if l == r.layout {
		return
	}
	r.layout = l
	r.dirty = true
}

// Render rebuilds the drawing group if the scene is dirty. On error the
// previous group stays attached and the scene stays dirty.
func (r *Renderer) Render() error {
	if r.layout == nil {
		return errors.New(errors.ErrCodeNoLayout, "render called before a layout was set")
	}
	if !r.dirty {
		return nil
	}

	g := scene.New("g").Set("transform", r.view.String())
	path, err := ScaffoldPath(r.layout.Scaffolding)
	if err != nil {
		return err
	}
	g.Append(path)
	for _, p := range r.layout.People() {
		if err := RenderPerson(g, r.layout, p); err != nil {
			return err
		}
	}

	r.container.Replace(g)
	r.container = g
	r.dirty = false
	return nil
}

func (r *Renderer) resize(width, height float64) {
	r.view.Width, r.view.Height = width, height
	r.element.Set("width", scene.FormatFloat(width)+"px")
	r.element.Set("height", scene.FormatFloat(height)+"px")
	r.applyTransform()
}

func (r *Renderer) applyTransform() {
	r.container.Set("transform", r.view.String())
}
