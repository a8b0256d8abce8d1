package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/observability"
	"github.com/matzehuels/kintree/pkg/render"
	"github.com/matzehuels/kintree/pkg/render/radial"
	"github.com/matzehuels/kintree/pkg/render/scene"
)

// RenderLayout draws l once and encodes it in every requested format.
// opts must have defaults applied.
func RenderLayout(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	var rOpts []radial.Option
	if opts.Styled {
		rOpts = append(rOpts, radial.WithStyleSheet(radial.DefaultStyleSheet))
	}
	r, err := radial.New(opts.Width, opts.Height, rOpts...)
	if err != nil {
		return nil, err
	}
	if err := r.SetScale(opts.Scale); err != nil {
		return nil, err
	}
	if err := r.SetOffset(opts.Offset()); err != nil {
		return nil, err
	}
	r.SetLayout(l)
	if err := r.Render(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := encode(ctx, r.Element(), format, opts.PNGScale)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderIcon draws a standalone person icon.
func RenderIcon(ctx context.Context, opts IconOptions) ([]byte, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	icon, err := radial.PersonIcon(opts.Size, opts.Gender, opts.Child, opts.Deceased)
	if err != nil {
		return nil, err
	}
	if opts.Styled {
		icon.Append(radial.StyleElement(radial.DefaultStyleSheet))
	}
	return encode(ctx, icon, opts.Format, opts.PNGScale)
}

func encode(ctx context.Context, svg *scene.Element, format string, pngScale float64) ([]byte, error) {
	start := time.Now()
	switch format {
	case errors.FormatSVG:
		return scene.MarshalSVG(svg), nil
	case errors.FormatJSON:
		var buf bytes.Buffer
		if err := scene.EncodeJSON(&buf, svg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
		return buf.Bytes(), nil
	case errors.FormatPNG:
		painted := svg.Clone()
		radial.ApplyPresentation(painted)
		data, err := render.ToPNG(painted, pngScale)
		observability.Render().OnConvert(ctx, format, len(data), time.Since(start), err)
		return data, err
	case errors.FormatPDF:
		data, err := render.ToPDF(scene.MarshalSVG(svg))
		observability.Render().OnConvert(ctx, format, len(data), time.Since(start), err)
		return data, err
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}
