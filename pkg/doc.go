// Package pkg holds the libraries behind kintree, a renderer for radial
// family-tree layouts.
//
// # Overview
//
// An external layout engine places every person on concentric rings around
// a root and describes the connecting lines, arcs and curves. Kintree
// turns that precomputed layout into an SVG scene and, optionally, PNG,
// PDF or a JSON scene tree. The packages are organized in layers:
//
//  1. [geom], [family], [layout] - the positioned tree model
//  2. [io] - the JSON layout document
//  3. [render/scene], [render/radial] - scene tree and the radial renderer
//  4. [render] - raster and PDF conversion
//  5. [cache], [config], [observability], [errors], [buildinfo] - infrastructure
//  6. [pipeline] - orchestration (decode → render → encode, cached)
//
// # Data Flow
//
//	layout.json
//	     ↓
//	[io.ReadJSON]           (validate, build *layout.Layout)
//	     ↓
//	[radial.Renderer]       (view transform, scaffolding path, person nodes)
//	     ↓
//	[scene.Element] tree
//	     ↓
//	SVG / JSON / PNG / PDF
//
// # Quick Start
//
//	l, err := io.ImportJSON("family.json")
//	if err != nil {
//	    return err
//	}
//	r, err := radial.New(800, 800, radial.WithStyleSheet(radial.DefaultStyleSheet))
//	if err != nil {
//	    return err
//	}
//	r.SetLayout(l)
//	if err := r.Render(); err != nil {
//	    return err
//	}
//	return scene.EncodeSVG(os.Stdout, r.Element())
//
// Later pan and zoom calls only rewrite the transform of the container
// group; person nodes are rebuilt only after SetLayout hands over a
// different layout.
//
// For repeated renders with caching, use [pipeline.Runner].
package pkg
