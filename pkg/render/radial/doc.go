// Package radial renders a precomputed radial family-tree layout into a
// vector scene.
//
// # Overview
//
// A [Renderer] owns an <svg> root element holding one drawing group. The
// group carries the view transform (centre, pan, zoom) and contains:
//
//   - one stroked <path> with every scaffolding connector ([ScaffoldPath])
//   - one rotated <g class="person ..."> per positioned person ([RenderPerson])
//
// # Lifecycle
//
// Renderers are dirty-flag driven. [Renderer.SetLayout] only records the
// layout pointer; [Renderer.Render] rebuilds the whole group from scratch
// when the layout changed and does nothing otherwise, so it may be called
// once per frame. View changes ([Renderer.SetSize], [Renderer.SetScale],
// [Renderer.SetOffset]) rewrite the transform attribute of the current
// group without a rebuild.
//
//	r, _ := radial.New(800, 600, radial.WithStyleSheet(radial.DefaultStyleSheet))
//	r.SetLayout(l)
//	if err := r.Render(); err != nil {
//	    return err
//	}
//	svg := scene.MarshalSVG(r.Element())
//
// # Labels
//
// Labels sit beside each marker in the direction of its branch. Nodes whose
// branch points left of vertical (rotation in (π/2, 3π/2)) are drawn rotated
// by an extra π with end-anchored labels on the negative x side, so text is
// never upside down. The root person gets its name and dates centred under
// the marker instead.
//
// A Renderer is not safe for concurrent use.
package radial
