package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os/exec"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

// maxPixels bounds the raster size of a single PNG.
const maxPixels = 64 << 20

// PNGOption configures PNG rasterisation.
type PNGOption func(*pngOptions)

type pngOptions struct {
	background color.Color
}

// WithBackground fills the image with c before drawing. The default is
// transparent.
func WithBackground(c color.Color) PNGOption {
	return func(o *pngOptions) { o.background = c }
}

// ToPNG rasterises an SVG scene at scale (2.0 gives a 2x image). The
// element is not modified.
func ToPNG(svg *scene.Element, scale float64, opts ...PNGOption) ([]byte, error) {
	o := pngOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if err := errors.ValidateScale(scale); err != nil {
		return nil, err
	}

	w, h, err := pixelSize(svg)
	if err != nil {
		return nil, err
	}
	fw, fh := math.Ceil(w*scale), math.Ceil(h*scale)
	if !(fw >= 1 && fh >= 1) || fw*fh > maxPixels {
		return nil, errors.New(errors.ErrCodeInvalidView, "cannot rasterise %gx%g pixels", fw, fh)
	}
	pw, ph := int(fw), int(fh)

	// oksvg understands neither unit suffixes nor a missing viewBox.
	flat := svg.Clone()
	flat.SetFloat("width", w).SetFloat("height", h)
	if _, ok := flat.Get("viewBox"); !ok {
		flat.Set("viewBox", fmt.Sprintf("0 0 %s %s", scene.FormatFloat(w), scene.FormatFloat(h)))
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(scene.MarshalSVG(flat)), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse svg for rasterisation")
	}
	icon.SetTarget(0, 0, float64(pw), float64(ph))

	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	if o.background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(o.background), image.Point{}, draw.Src)
	}
	scanner := rasterx.NewScannerGV(pw, ph, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(pw, ph, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// pixelSize reads the root's width and height, accepting a "px" suffix and
// falling back to the viewBox.
func pixelSize(svg *scene.Element) (w, h float64, err error) {
	wv, wok := svg.Get("width")
	hv, hok := svg.Get("height")
	if wok && hok {
		w, werr := parseLength(wv)
		h, herr := parseLength(hv)
		if werr == nil && herr == nil {
			return w, h, nil
		}
	}
	if vb, ok := svg.Get("viewBox"); ok {
		var x, y float64
		if _, err := fmt.Sscanf(vb, "%g %g %g %g", &x, &y, &w, &h); err == nil {
			return w, h, nil
		}
	}
	return 0, 0, errors.New(errors.ErrCodeInvalidInput, "svg root has no usable width/height or viewBox")
}

func parseLength(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(strings.TrimSuffix(strings.TrimSpace(s), "px"), "%g", &v)
	return v, err
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

func rsvgConvert(svg []byte, format string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	cmd := exec.Command("rsvg-convert", "-f", format)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}
