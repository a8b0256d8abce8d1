package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/io"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/observability"
)

// Runner renders layout documents with artifact caching.
//
// The Runner holds no per-render state; multiple goroutines can share one
// Runner. Each render creates its own scene renderer.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Render decodes a layout document and renders it in every requested
// format. Artifacts are served from cache when all formats are present.
func (r *Runner) Render(ctx context.Context, layoutJSON []byte, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{LayoutHash: cache.Hash(layoutJSON)}

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, result.LayoutHash, opts); ok {
			opts.Logger.Debug("artifacts served from cache", "formats", opts.Formats)
			result.Artifacts = artifacts
			result.CacheHit = true
			return result, nil
		}
	}

	decodeStart := time.Now()
	l, err := io.ReadJSON(bytes.NewReader(layoutJSON))
	result.Stats.DecodeTime = time.Since(decodeStart)
	if l != nil {
		result.Stats.Persons, result.Stats.Shapes = l.Len(), len(l.Scaffolding)
	}
	observability.Render().OnDecode(ctx, result.Stats.Persons, result.Stats.Shapes, result.Stats.DecodeTime, err)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	opts.Logger.Debug("decoded layout",
		"persons", result.Stats.Persons,
		"shapes", result.Stats.Shapes,
		"duration", result.Stats.DecodeTime)

	renderStart := time.Now()
	artifacts, err := r.renderLayout(ctx, l, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	opts.Logger.Info("rendered layout",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(result.LayoutHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, "artifact", key, data, opts)
	}
	return result, nil
}

func (r *Runner) renderLayout(ctx context.Context, l *layout.Layout, opts Options) (map[string][]byte, error) {
	observability.Render().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := RenderLayout(ctx, l, opts)
	observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// Icon renders a person icon with caching.
func (r *Runner) Icon(ctx context.Context, opts IconOptions) ([]byte, bool, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.IconKey(opts.KeyOpts())
	if data, ok := r.load(ctx, "icon", key); ok {
		return data, true, nil
	}
	data, err := RenderIcon(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	r.store(ctx, "icon", key, data, Options{CacheTTL: DefaultCacheTTL, Logger: r.Logger})
	return data, false, nil
}

func (r *Runner) cachedArtifacts(ctx context.Context, layoutHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := r.load(ctx, "artifact", r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
		if !ok {
			return nil, false
		}
		artifacts[format] = data
	}
	return artifacts, true
}

// load reads one entry. Backend errors are logged and treated as misses.
func (r *Runner) load(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	switch {
	case err != nil:
		observability.Cache().OnCacheError(ctx, keyType, err)
		r.Logger.Warn("cache read failed", "key", key, "err", errors.UserMessage(err))
		return nil, false
	case !hit:
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// store writes one entry. Backend errors are logged, never returned.
func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, opts Options) {
	if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
		observability.Cache().OnCacheError(ctx, keyType, err)
		opts.Logger.Warn("cache write failed", "key", key, "err", errors.UserMessage(err))
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
