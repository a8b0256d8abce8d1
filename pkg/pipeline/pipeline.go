// Package pipeline turns layout documents into rendered artifacts.
//
// This package implements the decode → render → convert sequence shared by
// the CLI and the HTTP service, with artifact caching in front of it.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Render(ctx, layoutJSON, pipeline.Options{
//	    Width:   1200,
//	    Height:  900,
//	    Formats: []string{"svg", "png"},
//	    Styled:  true,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Use [RenderLayout] to render an already decoded layout without a cache,
// and [RenderIcon] for standalone person icons.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/layout"
)

const (
	// DefaultWidth is the default viewport width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height in pixels.
	DefaultHeight = 800.0

	// DefaultPNGScale renders PNGs at 2x resolution.
	DefaultPNGScale = 2.0

	// DefaultCacheTTL is how long rendered artifacts stay cached.
	DefaultCacheTTL = 7 * 24 * time.Hour
)

// Options configures one render.
type Options struct {
	// View
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
	OffsetX float64 `json:"x,omitempty"`
	OffsetY float64 `json:"y,omitempty"`

	// Output
	Formats  []string `json:"formats,omitempty"`
	Styled   bool     `json:"styled,omitempty"` // embed the default style sheet
	PNGScale float64  `json:"png_scale,omitempty"`

	// Caching
	Refresh  bool          `json:"refresh,omitempty"` // skip cache reads
	CacheTTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{errors.FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks view and output settings. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := errors.ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.PNGScale); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidView, err, "png scale")
	}
	if !o.Offset().IsFinite() {
		return errors.New(errors.ErrCodeInvalidView, "offset must be finite, got (%v, %v)", o.OffsetX, o.OffsetY)
	}
	return errors.ValidateFormats(o.Formats)
}

// Offset returns the pan offset as a vector.
func (o *Options) Offset() geom.Vec { return geom.V(o.OffsetX, o.OffsetY) }

// ArtifactKeyOpts returns the cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		Width:   o.Width,
		Height:  o.Height,
		Scale:   o.Scale,
		OffsetX: o.OffsetX,
		OffsetY: o.OffsetY,
		Styled:  o.Styled,
	}
	if format == errors.FormatPNG {
		k.PNGScale = o.PNGScale
	}
	return k
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the decoded layout; nil when every artifact came from cache.
	Layout *layout.Layout

	// LayoutHash is the content hash of the layout document.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether all artifacts came from cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Persons    int
	Shapes     int
	DecodeTime time.Duration
	RenderTime time.Duration
}

// IconOptions describes a standalone person icon.
type IconOptions struct {
	Size     float64       `json:"size"`
	Gender   family.Gender `json:"-"`
	Child    bool          `json:"child,omitempty"`
	Deceased bool          `json:"deceased,omitempty"`
	Format   string        `json:"format,omitempty"` // svg or png
	Styled   bool          `json:"styled,omitempty"`
	PNGScale float64       `json:"png_scale,omitempty"`
}

// DefaultIconSize is the icon diameter used when none is given.
const DefaultIconSize = 16.0

// SetDefaults fills unset fields.
func (o *IconOptions) SetDefaults() {
	if o.Size == 0 {
		o.Size = DefaultIconSize
	}
	if o.Format == "" {
		o.Format = errors.FormatSVG
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
}

// Validate checks size and format. Icons support svg and png only.
func (o *IconOptions) Validate() error {
	if err := errors.ValidateScale(o.Size); err != nil {
		return errors.New(errors.ErrCodeInvalidView, "icon size must be a finite number > 0, got %v", o.Size)
	}
	switch o.Format {
	case errors.FormatSVG, errors.FormatPNG:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid icon format: %q (must be one of: svg, png)", o.Format)
	}
}

// KeyOpts returns the icon's cache key options.
func (o *IconOptions) KeyOpts() cache.IconKeyOpts {
	return cache.IconKeyOpts{
		Format:   o.Format,
		Size:     o.Size,
		Gender:   o.Gender.String(),
		Child:    o.Child,
		Deceased: o.Deceased,
		Styled:   o.Styled,
	}
}
