// Package scene is a retained description of a vector drawing: a tree of
// elements with ordered attributes, CSS classes and text content.
//
// The radial renderer builds scenes as plain data; encoders in this package
// materialize them for a concrete surface:
//
//   - [EncodeSVG] writes SVG markup
//   - [EncodeJSON] writes the tree as JSON for non-SVG surfaces
//
// Every attribute, class or child mutation bumps the element's
// [Element.Revision], which lets callers observe whether a write happened
// without diffing markup.
package scene
