// Package render converts finished SVG scenes into other output formats.
//
// The radial family-tree renderer lives in [radial]; the element tree and
// its encoders in [scene]. This package turns an encoded scene into:
//
//   - PNG, rasterised in-process with oksvg/rasterx ([ToPNG])
//   - PDF, through the external rsvg-convert tool from librsvg ([ToPDF])
//
// The in-process rasteriser draws shapes only: text and CSS are ignored, so
// callers inline presentation attributes first (see
// [radial.ApplyPresentation]).
//
//	r, _ := radial.New(800, 600)
//	r.SetLayout(l)
//	_ = r.Render()
//	png, err := render.ToPNG(r.Element(), 2.0)
//
// [radial]: github.com/matzehuels/kintree/pkg/render/radial
// [scene]: github.com/matzehuels/kintree/pkg/render/scene
// [radial.ApplyPresentation]: github.com/matzehuels/kintree/pkg/render/radial.ApplyPresentation
package render
