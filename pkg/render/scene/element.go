package scene

import (
	"slices"
	"strconv"
)

// Namespace is the SVG XML namespace set on root elements.
const Namespace = "http://www.w3.org/2000/svg"

// Attr is a single name/value attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of a scene tree.
type Element struct {
	Tag      string
	Attrs    []Attr
	Classes  []string
	Text     string
	Children []*Element

	parent   *Element
	revision uint64
}

// New creates an element with the given tag name.
func New(tag string) *Element {
	return &Element{Tag: tag}
}

// NewRoot creates an <svg> element carrying the SVG namespace.
func NewRoot() *Element {
	return New("svg").Set("xmlns", Namespace)
}

// Revision counts mutations made through the element's methods.
func (e *Element) Revision() uint64 { return e.revision }

// Parent returns the element this one is attached to, or nil.
func (e *Element) Parent() *Element { return e.parent }

// Set writes attribute name, replacing an existing value in place.
func (e *Element) Set(name, value string) *Element {
	e.revision++
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// SetFloat writes a numeric attribute using [FormatFloat].
func (e *Element) SetFloat(name string, v float64) *Element {
	return e.Set(name, FormatFloat(v))
}

// Get returns the value of attribute name.
func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AddClass appends c to the class list unless already present.
func (e *Element) AddClass(c string) *Element {
	if !slices.Contains(e.Classes, c) {
		e.revision++
		e.Classes = append(e.Classes, c)
	}
	return e
}

// HasClass reports whether c is in the class list.
func (e *Element) HasClass(c string) bool {
	return slices.Contains(e.Classes, c)
}

// SetText replaces the element's text content.
func (e *Element) SetText(s string) *Element {
	e.revision++
	e.Text = s
	return e
}

// Append attaches child as the last child, detaching it from any previous
// parent first. It returns child.
func (e *Element) Append(child *Element) *Element {
	child.Detach()
	e.revision++
	child.parent = e
	e.Children = append(e.Children, child)
	return child
}

// Detach removes the element from its parent, if any.
func (e *Element) Detach() {
	p := e.parent
	if p == nil {
		return
	}
	if i := slices.Index(p.Children, e); i >= 0 {
		p.revision++
		p.Children = slices.Delete(p.Children, i, i+1)
	}
	e.parent = nil
}

// Replace puts next in e's position under e's parent and detaches e. If e
// has no parent, or its parent's Children no longer hold it, next is only
// detached from its own parent.
func (e *Element) Replace(next *Element) {
	next.Detach()
	p := e.parent
	if p == nil {
		return
	}
	i := slices.Index(p.Children, e)
	if i < 0 {
		e.parent = nil
		return
	}
	p.revision++
	p.Children[i] = next
	next.parent = p
	e.parent = nil
}

// Clone returns a detached deep copy of e.
func (e *Element) Clone() *Element {
	c := &Element{
		Tag:     e.Tag,
		Attrs:   slices.Clone(e.Attrs),
		Classes: slices.Clone(e.Classes),
		Text:    e.Text,
	}
	for _, child := range e.Children {
		c.Append(child.Clone())
	}
	return c
}

// Walk visits e and its descendants depth-first in document order.
// Returning false from fn skips the element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// FindAll returns every element in the subtree (e included) matching pred.
func (e *Element) FindAll(pred func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(el *Element) bool {
		if pred(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// ByClass is a FindAll predicate selecting elements with class c.
func ByClass(c string) func(*Element) bool {
	return func(e *Element) bool { return e.HasClass(c) }
}

// ByTag is a FindAll predicate selecting elements with the given tag.
func ByTag(tag string) func(*Element) bool {
	return func(e *Element) bool { return e.Tag == tag }
}

// FormatFloat renders v in the shortest decimal form that round-trips,
// without exponents ("20", "-26", "0.5").
func FormatFloat(v float64) string {
	if v == 0 {
		// Normalizes negative zero.
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
